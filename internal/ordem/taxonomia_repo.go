package ordem

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/gestaopredial/condominio/internal/db"
)

// Inputs de criação/atualização da taxonomia. Ponteiros nil não alteram o campo.

type CreateCategoriaInput struct {
	Nome      string
	Descricao string
	Cor       string
}

type UpdateCategoriaInput struct {
	Nome      *string
	Descricao *string
	Cor       *string
}

type CreatePrioridadeInput struct {
	Nome  string
	Nivel *int
	Cor   string
}

type UpdatePrioridadeInput struct {
	Nome  *string
	Nivel *int
	Cor   *string
}

type CreateStatusInput struct {
	Nome         string
	Ordem        *int
	Cor          string
	Finalizadora bool
}

type UpdateStatusInput struct {
	Nome         *string
	Ordem        *int
	Cor          *string
	Finalizadora *bool
}

type CreateSetorInput struct {
	Nome string
}

type UpdateSetorInput struct {
	Nome *string
}

const categoriaColumns = `id, condominio_id, nome, descricao, cor, ativo, padrao, criado_em`
const prioridadeColumns = `id, condominio_id, nome, nivel, cor, ativo, padrao, criado_em`
const statusColumns = `id, condominio_id, nome, ordem, cor, finalizadora, ativo, padrao, criado_em`
const setorColumns = `id, condominio_id, nome, ativo, padrao, criado_em`

// ListCategorias lista categorias ativas em ordem alfabética.
func (r *Repository) ListCategorias(ctx context.Context, condominioID uuid.UUID) ([]Categoria, error) {
	rows, err := r.pool.Query(ctx, `
        SELECT `+categoriaColumns+` FROM os_categorias
        WHERE condominio_id = $1 AND ativo ORDER BY nome ASC`, condominioID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var itens []Categoria
	for rows.Next() {
		var c Categoria
		if err := rows.Scan(&c.ID, &c.CondominioID, &c.Nome, &c.Descricao, &c.Cor, &c.Ativo, &c.Padrao, &c.CriadoEm); err != nil {
			return nil, err
		}
		itens = append(itens, c)
	}
	return itens, rows.Err()
}

// ListCategoriasTodas inclui categorias desativadas. Usado pelas
// estatísticas, que precisam rotular ordens presas a categoria inativa.
func (r *Repository) ListCategoriasTodas(ctx context.Context, condominioID uuid.UUID) ([]Categoria, error) {
	rows, err := r.pool.Query(ctx, `
        SELECT `+categoriaColumns+` FROM os_categorias
        WHERE condominio_id = $1 ORDER BY nome ASC`, condominioID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var itens []Categoria
	for rows.Next() {
		var c Categoria
		if err := rows.Scan(&c.ID, &c.CondominioID, &c.Nome, &c.Descricao, &c.Cor, &c.Ativo, &c.Padrao, &c.CriadoEm); err != nil {
			return nil, err
		}
		itens = append(itens, c)
	}
	return itens, rows.Err()
}

// CreateCategoria insere nova categoria.
func (r *Repository) CreateCategoria(ctx context.Context, condominioID uuid.UUID, input CreateCategoriaInput) (*Categoria, error) {
	row := r.pool.QueryRow(ctx, `
        INSERT INTO os_categorias (condominio_id, nome, descricao, cor, ativo, padrao)
        VALUES ($1, $2, $3, $4, true, false)
        RETURNING `+categoriaColumns,
		condominioID, strings.TrimSpace(input.Nome), strings.TrimSpace(input.Descricao), strings.TrimSpace(input.Cor))

	var c Categoria
	if err := row.Scan(&c.ID, &c.CondominioID, &c.Nome, &c.Descricao, &c.Cor, &c.Ativo, &c.Padrao, &c.CriadoEm); err != nil {
		return nil, err
	}
	return &c, nil
}

// UpdateCategoria aplica patch parcial.
func (r *Repository) UpdateCategoria(ctx context.Context, id, condominioID uuid.UUID, input UpdateCategoriaInput) error {
	return r.updateTaxonomia(ctx, "os_categorias", id, condominioID, map[string]any{
		"nome":      strPtrValue(input.Nome),
		"descricao": strPtrValue(input.Descricao),
		"cor":       strPtrValue(input.Cor),
	})
}

// DeactivateCategoria faz soft delete; ordens existentes mantêm a referência.
func (r *Repository) DeactivateCategoria(ctx context.Context, id, condominioID uuid.UUID) error {
	return r.execOrdem(ctx, `UPDATE os_categorias SET ativo = false WHERE id = $1 AND condominio_id = $2`, id, condominioID)
}

// SeedCategorias insere o conjunto padrão caso não exista nenhuma categoria
// ativa. Idempotente: usa advisory lock transacional e re-verifica antes de
// inserir, então uma segunda chamada concorrente não duplica linhas.
func (r *Repository) SeedCategorias(ctx context.Context, condominioID uuid.UUID, nomes []string) (bool, error) {
	seeded := false
	err := db.WithTx(ctx, r.pool, func(ctx context.Context, tx pgx.Tx) error {
		ok, err := lockAndCheckEmpty(ctx, tx, "os_categorias", condominioID)
		if err != nil || !ok {
			return err
		}
		for _, nome := range nomes {
			if _, err := tx.Exec(ctx, `
                INSERT INTO os_categorias (condominio_id, nome, descricao, cor, ativo, padrao)
                VALUES ($1, $2, '', '', true, true)`, condominioID, nome); err != nil {
				return err
			}
		}
		seeded = true
		return nil
	})
	return seeded, err
}

// GetCategoria busca categoria por id (inclusive inativas, para exibição).
func (r *Repository) GetCategoria(ctx context.Context, id uuid.UUID) (*Categoria, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+categoriaColumns+` FROM os_categorias WHERE id = $1`, id)
	var c Categoria
	if err := row.Scan(&c.ID, &c.CondominioID, &c.Nome, &c.Descricao, &c.Cor, &c.Ativo, &c.Padrao, &c.CriadoEm); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNaoEncontrado
		}
		return nil, err
	}
	return &c, nil
}

// ListPrioridades lista prioridades ativas por nível.
func (r *Repository) ListPrioridades(ctx context.Context, condominioID uuid.UUID) ([]Prioridade, error) {
	rows, err := r.pool.Query(ctx, `
        SELECT `+prioridadeColumns+` FROM os_prioridades
        WHERE condominio_id = $1 AND ativo ORDER BY nivel ASC`, condominioID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var itens []Prioridade
	for rows.Next() {
		var p Prioridade
		if err := rows.Scan(&p.ID, &p.CondominioID, &p.Nome, &p.Nivel, &p.Cor, &p.Ativo, &p.Padrao, &p.CriadoEm); err != nil {
			return nil, err
		}
		itens = append(itens, p)
	}
	return itens, rows.Err()
}

// CreatePrioridade insere prioridade; sem nível explícito usa max+1.
func (r *Repository) CreatePrioridade(ctx context.Context, condominioID uuid.UUID, input CreatePrioridadeInput) (*Prioridade, error) {
	row := r.pool.QueryRow(ctx, `
        INSERT INTO os_prioridades (condominio_id, nome, nivel, cor, ativo, padrao)
        VALUES ($1, $2,
            COALESCE($3, (SELECT COALESCE(MAX(nivel), 0) + 1 FROM os_prioridades WHERE condominio_id = $1)),
            $4, true, false)
        RETURNING `+prioridadeColumns,
		condominioID, strings.TrimSpace(input.Nome), input.Nivel, strings.TrimSpace(input.Cor))

	var p Prioridade
	if err := row.Scan(&p.ID, &p.CondominioID, &p.Nome, &p.Nivel, &p.Cor, &p.Ativo, &p.Padrao, &p.CriadoEm); err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdatePrioridade aplica patch parcial.
func (r *Repository) UpdatePrioridade(ctx context.Context, id, condominioID uuid.UUID, input UpdatePrioridadeInput) error {
	campos := map[string]any{
		"nome": strPtrValue(input.Nome),
		"cor":  strPtrValue(input.Cor),
	}
	if input.Nivel != nil {
		campos["nivel"] = *input.Nivel
	}
	return r.updateTaxonomia(ctx, "os_prioridades", id, condominioID, campos)
}

// DeactivatePrioridade faz soft delete.
func (r *Repository) DeactivatePrioridade(ctx context.Context, id, condominioID uuid.UUID) error {
	return r.execOrdem(ctx, `UPDATE os_prioridades SET ativo = false WHERE id = $1 AND condominio_id = $2`, id, condominioID)
}

// SeedPrioridades insere o conjunto padrão (nome, nível sequencial).
func (r *Repository) SeedPrioridades(ctx context.Context, condominioID uuid.UUID, nomes []string) (bool, error) {
	seeded := false
	err := db.WithTx(ctx, r.pool, func(ctx context.Context, tx pgx.Tx) error {
		ok, err := lockAndCheckEmpty(ctx, tx, "os_prioridades", condominioID)
		if err != nil || !ok {
			return err
		}
		for i, nome := range nomes {
			if _, err := tx.Exec(ctx, `
                INSERT INTO os_prioridades (condominio_id, nome, nivel, cor, ativo, padrao)
                VALUES ($1, $2, $3, '', true, true)`, condominioID, nome, i+1); err != nil {
				return err
			}
		}
		seeded = true
		return nil
	})
	return seeded, err
}

// GetPrioridade busca prioridade por id (inclusive inativas, para exibição).
func (r *Repository) GetPrioridade(ctx context.Context, id uuid.UUID) (*Prioridade, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+prioridadeColumns+` FROM os_prioridades WHERE id = $1`, id)
	var p Prioridade
	if err := row.Scan(&p.ID, &p.CondominioID, &p.Nome, &p.Nivel, &p.Cor, &p.Ativo, &p.Padrao, &p.CriadoEm); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNaoEncontrado
		}
		return nil, err
	}
	return &p, nil
}

// ListStatus lista status ativos pela ordem do fluxo.
func (r *Repository) ListStatus(ctx context.Context, condominioID uuid.UUID) ([]Status, error) {
	rows, err := r.pool.Query(ctx, `
        SELECT `+statusColumns+` FROM os_status
        WHERE condominio_id = $1 AND ativo ORDER BY ordem ASC`, condominioID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var itens []Status
	for rows.Next() {
		s, err := scanStatus(rows)
		if err != nil {
			return nil, err
		}
		itens = append(itens, *s)
	}
	return itens, rows.Err()
}

// ListStatusTodos inclui status desativados. A desativação é não
// destrutiva: ordens que ficaram num status inativo continuam sendo
// classificadas por ele.
func (r *Repository) ListStatusTodos(ctx context.Context, condominioID uuid.UUID) ([]Status, error) {
	rows, err := r.pool.Query(ctx, `
        SELECT `+statusColumns+` FROM os_status
        WHERE condominio_id = $1 ORDER BY ordem ASC`, condominioID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var itens []Status
	for rows.Next() {
		s, err := scanStatus(rows)
		if err != nil {
			return nil, err
		}
		itens = append(itens, *s)
	}
	return itens, rows.Err()
}

// GetStatus busca status por id (inclusive inativos, para exibição).
func (r *Repository) GetStatus(ctx context.Context, id uuid.UUID) (*Status, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+statusColumns+` FROM os_status WHERE id = $1`, id)
	return scanStatus(row)
}

// GetStatusInicial devolve o status ativo de menor ordem do condomínio.
func (r *Repository) GetStatusInicial(ctx context.Context, condominioID uuid.UUID) (*Status, error) {
	row := r.pool.QueryRow(ctx, `
        SELECT `+statusColumns+` FROM os_status
        WHERE condominio_id = $1 AND ativo ORDER BY ordem ASC LIMIT 1`, condominioID)
	return scanStatus(row)
}

// CreateStatus insere status; sem ordem explícita usa max+1.
func (r *Repository) CreateStatus(ctx context.Context, condominioID uuid.UUID, input CreateStatusInput) (*Status, error) {
	row := r.pool.QueryRow(ctx, `
        INSERT INTO os_status (condominio_id, nome, ordem, cor, finalizadora, ativo, padrao)
        VALUES ($1, $2,
            COALESCE($3, (SELECT COALESCE(MAX(ordem), 0) + 1 FROM os_status WHERE condominio_id = $1)),
            $4, $5, true, false)
        RETURNING `+statusColumns,
		condominioID, strings.TrimSpace(input.Nome), input.Ordem, strings.TrimSpace(input.Cor), input.Finalizadora)
	return scanStatus(row)
}

// UpdateStatus aplica patch parcial.
func (r *Repository) UpdateStatus(ctx context.Context, id, condominioID uuid.UUID, input UpdateStatusInput) error {
	campos := map[string]any{
		"nome": strPtrValue(input.Nome),
		"cor":  strPtrValue(input.Cor),
	}
	if input.Ordem != nil {
		campos["ordem"] = *input.Ordem
	}
	if input.Finalizadora != nil {
		campos["finalizadora"] = *input.Finalizadora
	}
	return r.updateTaxonomia(ctx, "os_status", id, condominioID, campos)
}

// DeactivateStatus faz soft delete.
func (r *Repository) DeactivateStatus(ctx context.Context, id, condominioID uuid.UUID) error {
	return r.execOrdem(ctx, `UPDATE os_status SET ativo = false WHERE id = $1 AND condominio_id = $2`, id, condominioID)
}

// SeedStatusItem descreve um status padrão.
type SeedStatusItem struct {
	Nome         string
	Finalizadora bool
}

// SeedStatus insere o fluxo padrão (ordem sequencial).
func (r *Repository) SeedStatus(ctx context.Context, condominioID uuid.UUID, itens []SeedStatusItem) (bool, error) {
	seeded := false
	err := db.WithTx(ctx, r.pool, func(ctx context.Context, tx pgx.Tx) error {
		ok, err := lockAndCheckEmpty(ctx, tx, "os_status", condominioID)
		if err != nil || !ok {
			return err
		}
		for i, item := range itens {
			if _, err := tx.Exec(ctx, `
                INSERT INTO os_status (condominio_id, nome, ordem, cor, finalizadora, ativo, padrao)
                VALUES ($1, $2, $3, '', $4, true, true)`, condominioID, item.Nome, i+1, item.Finalizadora); err != nil {
				return err
			}
		}
		seeded = true
		return nil
	})
	return seeded, err
}

// ListSetores lista setores ativos em ordem alfabética.
func (r *Repository) ListSetores(ctx context.Context, condominioID uuid.UUID) ([]Setor, error) {
	rows, err := r.pool.Query(ctx, `
        SELECT `+setorColumns+` FROM os_setores
        WHERE condominio_id = $1 AND ativo ORDER BY nome ASC`, condominioID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var itens []Setor
	for rows.Next() {
		var s Setor
		if err := rows.Scan(&s.ID, &s.CondominioID, &s.Nome, &s.Ativo, &s.Padrao, &s.CriadoEm); err != nil {
			return nil, err
		}
		itens = append(itens, s)
	}
	return itens, rows.Err()
}

// CreateSetor insere novo setor.
func (r *Repository) CreateSetor(ctx context.Context, condominioID uuid.UUID, input CreateSetorInput) (*Setor, error) {
	row := r.pool.QueryRow(ctx, `
        INSERT INTO os_setores (condominio_id, nome, ativo, padrao)
        VALUES ($1, $2, true, false)
        RETURNING `+setorColumns, condominioID, strings.TrimSpace(input.Nome))

	var s Setor
	if err := row.Scan(&s.ID, &s.CondominioID, &s.Nome, &s.Ativo, &s.Padrao, &s.CriadoEm); err != nil {
		return nil, err
	}
	return &s, nil
}

// GetSetor busca setor por id (inclusive inativos, para exibição).
func (r *Repository) GetSetor(ctx context.Context, id uuid.UUID) (*Setor, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+setorColumns+` FROM os_setores WHERE id = $1`, id)
	var s Setor
	if err := row.Scan(&s.ID, &s.CondominioID, &s.Nome, &s.Ativo, &s.Padrao, &s.CriadoEm); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNaoEncontrado
		}
		return nil, err
	}
	return &s, nil
}

// UpdateSetor aplica patch parcial.
func (r *Repository) UpdateSetor(ctx context.Context, id, condominioID uuid.UUID, input UpdateSetorInput) error {
	return r.updateTaxonomia(ctx, "os_setores", id, condominioID, map[string]any{
		"nome": strPtrValue(input.Nome),
	})
}

// DeactivateSetor faz soft delete.
func (r *Repository) DeactivateSetor(ctx context.Context, id, condominioID uuid.UUID) error {
	return r.execOrdem(ctx, `UPDATE os_setores SET ativo = false WHERE id = $1 AND condominio_id = $2`, id, condominioID)
}

// SeedSetores insere o conjunto padrão.
func (r *Repository) SeedSetores(ctx context.Context, condominioID uuid.UUID, nomes []string) (bool, error) {
	seeded := false
	err := db.WithTx(ctx, r.pool, func(ctx context.Context, tx pgx.Tx) error {
		ok, err := lockAndCheckEmpty(ctx, tx, "os_setores", condominioID)
		if err != nil || !ok {
			return err
		}
		for _, nome := range nomes {
			if _, err := tx.Exec(ctx, `
                INSERT INTO os_setores (condominio_id, nome, ativo, padrao)
                VALUES ($1, $2, true, true)`, condominioID, nome); err != nil {
				return err
			}
		}
		seeded = true
		return nil
	})
	return seeded, err
}

// updateTaxonomia monta UPDATE dinâmico; campos nil são ignorados.
func (r *Repository) updateTaxonomia(ctx context.Context, table string, id, condominioID uuid.UUID, campos map[string]any) error {
	setParts := []string{}
	args := []any{id, condominioID}
	idx := 3

	for _, col := range []string{"nome", "descricao", "cor", "nivel", "ordem", "finalizadora"} {
		val, ok := campos[col]
		if !ok || val == nil {
			continue
		}
		setParts = append(setParts, fmt.Sprintf("%s = $%d", col, idx))
		args = append(args, val)
		idx++
	}

	if len(setParts) == 0 {
		return nil
	}

	query := fmt.Sprintf(`UPDATE %s SET %s WHERE id = $1 AND condominio_id = $2`, table, strings.Join(setParts, ", "))
	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNaoEncontrado
	}
	return nil
}

// lockAndCheckEmpty serializa seeds concorrentes por (tabela, condomínio) e
// indica se a tabela ainda não tem itens ativos para o condomínio.
func lockAndCheckEmpty(ctx context.Context, tx pgx.Tx, table string, condominioID uuid.UUID) (bool, error) {
	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, table+":"+condominioID.String()); err != nil {
		return false, err
	}

	var exists bool
	err := tx.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM `+table+` WHERE condominio_id = $1 AND ativo)`, condominioID,
	).Scan(&exists)
	if err != nil {
		return false, err
	}
	return !exists, nil
}

func scanStatus(row pgx.Row) (*Status, error) {
	var s Status
	if err := row.Scan(&s.ID, &s.CondominioID, &s.Nome, &s.Ordem, &s.Cor, &s.Finalizadora, &s.Ativo, &s.Padrao, &s.CriadoEm); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNaoEncontrado
		}
		return nil, err
	}
	return &s, nil
}

func strPtrValue(s *string) any {
	if s == nil {
		return nil
	}
	return strings.TrimSpace(*s)
}
