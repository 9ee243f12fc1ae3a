package condominio

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository provê acesso ao armazenamento de condomínios.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository cria um novo repositório de condomínios.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const condominioColumns = `id, slug, nome, endereco, cidade, uf, ativo, criado_em, atualizado_em`

// GetByID busca condomínio pelo identificador.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Condominio, error) {
	query := `SELECT ` + condominioColumns + ` FROM condominios WHERE id = $1`
	row := r.pool.QueryRow(ctx, query, id)
	return scanCondominio(row)
}

// GetBySlug busca condomínio pelo slug normalizado.
func (r *Repository) GetBySlug(ctx context.Context, slug string) (*Condominio, error) {
	query := `SELECT ` + condominioColumns + ` FROM condominios WHERE slug = $1`
	row := r.pool.QueryRow(ctx, query, strings.ToLower(strings.TrimSpace(slug)))
	return scanCondominio(row)
}

// List devolve todos os condomínios ordenados por criação.
func (r *Repository) List(ctx context.Context) ([]Condominio, error) {
	query := `SELECT ` + condominioColumns + ` FROM condominios ORDER BY criado_em DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Condominio
	for rows.Next() {
		c, err := scanCondominio(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *c)
	}

	if rows.Err() != nil {
		return nil, rows.Err()
	}

	return items, nil
}

// Create insere um novo condomínio e devolve os dados persistidos.
func (r *Repository) Create(ctx context.Context, input CreateInput) (*Condominio, error) {
	query := `
        INSERT INTO condominios (slug, nome, endereco, cidade, uf, ativo)
        VALUES ($1, $2, $3, $4, $5, true)
        RETURNING ` + condominioColumns

	row := r.pool.QueryRow(ctx, query,
		input.Slug,
		strings.TrimSpace(input.Nome),
		strings.TrimSpace(input.Endereco),
		strings.TrimSpace(input.Cidade),
		strings.ToUpper(strings.TrimSpace(input.UF)),
	)
	return scanCondominio(row)
}

// Deactivate marca condomínio como inativo (soft delete).
func (r *Repository) Deactivate(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `UPDATE condominios SET ativo = false, atualizado_em = now() WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanCondominio(row pgx.Row) (*Condominio, error) {
	var c Condominio
	if err := row.Scan(&c.ID, &c.Slug, &c.Nome, &c.Endereco, &c.Cidade, &c.UF, &c.Ativo, &c.CriadoEm, &c.AtualizadoEm); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}
