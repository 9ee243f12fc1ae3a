package auth

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrInvalidCredentials indica falha na autenticação.
	ErrInvalidCredentials = errors.New("credenciais inválidas")
	// ErrAccountDisabled indica conta desativada.
	ErrAccountDisabled = errors.New("conta desativada")
	// ErrUserNotFound indica usuário inexistente.
	ErrUserNotFound = errors.New("usuário não encontrado")
)

const (
	RoleAdmin    = "ADMIN"
	RoleSindico  = "SINDICO"
	RoleZelador  = "ZELADOR"
	RolePortaria = "PORTARIA"
)

// Usuario representa um membro da equipe do condomínio.
type Usuario struct {
	ID           uuid.UUID  `json:"id"`
	CondominioID uuid.UUID  `json:"condominio_id"`
	Nome         string     `json:"nome"`
	Email        string     `json:"email"`
	SenhaHash    string     `json:"-"`
	Papel        string     `json:"papel"`
	Ativo        bool       `json:"ativo"`
	CriadoEm     time.Time  `json:"criado_em"`
	UltimoLogin  *time.Time `json:"ultimo_login,omitempty"`
}

// Profile é a projeção pública do usuário autenticado.
type Profile struct {
	ID           string `json:"id"`
	Nome         string `json:"nome"`
	Email        string `json:"email"`
	Papel        string `json:"papel"`
	CondominioID string `json:"condominio_id"`
}

// LoginResult representa retorno padrão de autenticações.
type LoginResult struct {
	AccessToken   string
	RefreshToken  string
	Subject       uuid.UUID
	Roles         []string
	Profile       Profile
	RefreshExpiry time.Time
}
