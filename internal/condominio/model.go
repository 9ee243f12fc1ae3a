package condominio

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound = errors.New("condomínio não encontrado")
)

// Condominio representa um condomínio/cliente na plataforma.
type Condominio struct {
	ID           uuid.UUID `json:"id"`
	Slug         string    `json:"slug"`
	Nome         string    `json:"nome"`
	Endereco     string    `json:"endereco"`
	Cidade       string    `json:"cidade"`
	UF           string    `json:"uf"`
	Ativo        bool      `json:"ativo"`
	CriadoEm     time.Time `json:"criado_em"`
	AtualizadoEm time.Time `json:"atualizado_em"`
}

// CreateInput contém os campos necessários para registrar um condomínio.
type CreateInput struct {
	Slug     string `json:"slug"`
	Nome     string `json:"nome"`
	Endereco string `json:"endereco"`
	Cidade   string `json:"cidade"`
	UF       string `json:"uf"`
}
