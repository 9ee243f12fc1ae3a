package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository provê acesso à tabela de usuários.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository cria instância do repositório.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const usuarioColumns = `id, condominio_id, nome, email, senha_hash, papel, ativo, criado_em, ultimo_login`

// GetByEmail busca usuário por e-mail normalizado.
func (r *Repository) GetByEmail(ctx context.Context, email string) (*Usuario, error) {
	query := `SELECT ` + usuarioColumns + ` FROM usuarios WHERE lower(email) = $1`
	row := r.pool.QueryRow(ctx, query, strings.ToLower(strings.TrimSpace(email)))
	return scanUsuario(row)
}

// GetByID busca usuário por id.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Usuario, error) {
	query := `SELECT ` + usuarioColumns + ` FROM usuarios WHERE id = $1`
	row := r.pool.QueryRow(ctx, query, id)
	return scanUsuario(row)
}

// TouchLogin registra instante do último acesso.
func (r *Repository) TouchLogin(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `UPDATE usuarios SET ultimo_login = now() WHERE id = $1`, id)
	return err
}

func scanUsuario(row pgx.Row) (*Usuario, error) {
	var u Usuario
	if err := row.Scan(&u.ID, &u.CondominioID, &u.Nome, &u.Email, &u.SenhaHash, &u.Papel, &u.Ativo, &u.CriadoEm, &u.UltimoLogin); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}
