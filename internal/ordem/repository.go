package ordem

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gestaopredial/condominio/internal/db"
)

// Repository provê acesso às tabelas de ordens de serviço e satélites.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository cria instância do repositório.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const ordemColumns = `id, condominio_id, protocolo, titulo, descricao, categoria_id, prioridade_id, status_id, setor_id,
    local_endereco, local_descricao, latitude, longitude,
    tempo_estimado_dias, tempo_estimado_horas, tempo_estimado_minutos, valor_estimado, valor_gasto,
    manutencao_id, solicitante_id, solicitante_nome, solicitante_tipo,
    iniciado_em, finalizado_em, tempo_gasto_minutos, chat_token, chat_ativo, share_token,
    criado_em, atualizado_em`

// CreateOrdem insere uma nova ordem de serviço.
func (r *Repository) CreateOrdem(ctx context.Context, o OrdemServico) (*OrdemServico, error) {
	query := `
        INSERT INTO ordens_servico (
            condominio_id, protocolo, titulo, descricao, categoria_id, prioridade_id, status_id, setor_id,
            local_endereco, local_descricao, latitude, longitude,
            tempo_estimado_dias, tempo_estimado_horas, tempo_estimado_minutos, valor_estimado,
            manutencao_id, solicitante_id, solicitante_nome, solicitante_tipo,
            chat_token, chat_ativo, share_token
        )
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23)
        RETURNING ` + ordemColumns

	row := r.pool.QueryRow(ctx, query,
		o.CondominioID,
		o.Protocolo,
		strings.TrimSpace(o.Titulo),
		strings.TrimSpace(o.Descricao),
		o.CategoriaID,
		o.PrioridadeID,
		o.StatusID,
		o.SetorID,
		strings.TrimSpace(o.LocalEndereco),
		strings.TrimSpace(o.LocalDescricao),
		o.Latitude,
		o.Longitude,
		o.TempoEstimadoDias,
		o.TempoEstimadoHoras,
		o.TempoEstimadoMinutos,
		o.ValorEstimado,
		o.ManutencaoID,
		o.SolicitanteID,
		strings.TrimSpace(o.SolicitanteNome),
		strings.TrimSpace(o.SolicitanteTipo),
		o.ChatToken,
		o.ChatAtivo,
		o.ShareToken,
	)
	return scanOrdem(row)
}

// GetOrdem busca ordem pelo id dentro do condomínio. Ordem de outro
// condomínio responde como inexistente.
func (r *Repository) GetOrdem(ctx context.Context, id, condominioID uuid.UUID) (*OrdemServico, error) {
	query := `SELECT ` + ordemColumns + ` FROM ordens_servico WHERE id = $1 AND condominio_id = $2`
	row := r.pool.QueryRow(ctx, query, id, condominioID)
	return scanOrdem(row)
}

// GetOrdemPorChatToken busca ordem pelo token público de chat.
func (r *Repository) GetOrdemPorChatToken(ctx context.Context, token string) (*OrdemServico, error) {
	query := `SELECT ` + ordemColumns + ` FROM ordens_servico WHERE chat_token = $1`
	row := r.pool.QueryRow(ctx, query, token)
	return scanOrdem(row)
}

// GetOrdemPorShareToken busca ordem pelo token público de compartilhamento.
func (r *Repository) GetOrdemPorShareToken(ctx context.Context, token string) (*OrdemServico, error) {
	query := `SELECT ` + ordemColumns + ` FROM ordens_servico WHERE share_token = $1`
	row := r.pool.QueryRow(ctx, query, token)
	return scanOrdem(row)
}

// ListOrdens lista ordens do condomínio aplicando filtros simples.
func (r *Repository) ListOrdens(ctx context.Context, filter OrdemFilter) ([]OrdemServico, error) {
	query := `SELECT ` + ordemColumns + ` FROM ordens_servico WHERE condominio_id = $1`
	args := []any{filter.CondominioID}
	idx := 2

	addClause := func(column string, value any) {
		query += fmt.Sprintf(" AND %s = $%d", column, idx)
		args = append(args, value)
		idx++
	}

	if filter.StatusID != nil {
		addClause("status_id", *filter.StatusID)
	}
	if filter.CategoriaID != nil {
		addClause("categoria_id", *filter.CategoriaID)
	}
	if filter.PrioridadeID != nil {
		addClause("prioridade_id", *filter.PrioridadeID)
	}
	if filter.SetorID != nil {
		addClause("setor_id", *filter.SetorID)
	}
	if busca := strings.TrimSpace(filter.Busca); busca != "" {
		query += fmt.Sprintf(" AND (titulo ILIKE $%d OR descricao ILIKE $%d OR protocolo = $%d)", idx, idx, idx+1)
		args = append(args, "%"+busca+"%", busca)
		idx += 2
	}

	limit := filter.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query += fmt.Sprintf(" ORDER BY criado_em DESC LIMIT $%d OFFSET $%d", idx, idx+1)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ordens []OrdemServico
	for rows.Next() {
		o, err := scanOrdem(rows)
		if err != nil {
			return nil, err
		}
		ordens = append(ordens, *o)
	}
	return ordens, rows.Err()
}

// ListOrdensPorCondominio carrega todas as ordens do condomínio, sem
// paginação. Usado pelas estatísticas, que agregam em memória.
func (r *Repository) ListOrdensPorCondominio(ctx context.Context, condominioID uuid.UUID) ([]OrdemServico, error) {
	query := `SELECT ` + ordemColumns + ` FROM ordens_servico WHERE condominio_id = $1 ORDER BY criado_em DESC`

	rows, err := r.pool.Query(ctx, query, condominioID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ordens []OrdemServico
	for rows.Next() {
		o, err := scanOrdem(rows)
		if err != nil {
			return nil, err
		}
		ordens = append(ordens, *o)
	}
	return ordens, rows.Err()
}

// UpdateOrdem aplica patch parcial e devolve a ordem atualizada.
func (r *Repository) UpdateOrdem(ctx context.Context, id, condominioID uuid.UUID, input UpdateOrdemInput) (*OrdemServico, error) {
	setParts := []string{}
	args := []any{}
	idx := 1

	set := func(column string, value any) {
		setParts = append(setParts, fmt.Sprintf("%s = $%d", column, idx))
		args = append(args, value)
		idx++
	}

	if input.Titulo != nil {
		set("titulo", strings.TrimSpace(*input.Titulo))
	}
	if input.Descricao != nil {
		set("descricao", strings.TrimSpace(*input.Descricao))
	}
	if input.CategoriaID != nil {
		set("categoria_id", *input.CategoriaID)
	}
	if input.PrioridadeID != nil {
		set("prioridade_id", *input.PrioridadeID)
	}
	if input.StatusID != nil {
		set("status_id", *input.StatusID)
	}
	if input.SetorID != nil {
		set("setor_id", *input.SetorID)
	}
	if input.LocalEndereco != nil {
		set("local_endereco", strings.TrimSpace(*input.LocalEndereco))
	}
	if input.LocalDescricao != nil {
		set("local_descricao", strings.TrimSpace(*input.LocalDescricao))
	}
	if input.TempoEstimadoDias != nil {
		set("tempo_estimado_dias", *input.TempoEstimadoDias)
	}
	if input.TempoEstimadoHoras != nil {
		set("tempo_estimado_horas", *input.TempoEstimadoHoras)
	}
	if input.TempoEstimadoMinutos != nil {
		set("tempo_estimado_minutos", *input.TempoEstimadoMinutos)
	}
	if input.ValorEstimado != nil {
		set("valor_estimado", *input.ValorEstimado)
	}
	if input.ValorGasto != nil {
		set("valor_gasto", *input.ValorGasto)
	}

	if len(setParts) == 0 {
		return r.GetOrdem(ctx, id, condominioID)
	}

	setParts = append(setParts, "atualizado_em = now()")
	args = append(args, id, condominioID)

	query := fmt.Sprintf(`UPDATE ordens_servico SET %s WHERE id = $%d AND condominio_id = $%d RETURNING `+ordemColumns,
		strings.Join(setParts, ", "), idx, idx+1)

	row := r.pool.QueryRow(ctx, query, args...)
	return scanOrdem(row)
}

// SetInicio grava o instante de início da execução.
func (r *Repository) SetInicio(ctx context.Context, id, condominioID uuid.UUID, t time.Time) error {
	return r.execOrdem(ctx, `UPDATE ordens_servico SET iniciado_em = $3, atualizado_em = now() WHERE id = $1 AND condominio_id = $2`, id, condominioID, t)
}

// SetFim grava o fim da execução e o tempo decorrido.
func (r *Repository) SetFim(ctx context.Context, id, condominioID uuid.UUID, t time.Time, minutos int) error {
	return r.execOrdem(ctx, `UPDATE ordens_servico SET finalizado_em = $3, tempo_gasto_minutos = $4, atualizado_em = now() WHERE id = $1 AND condominio_id = $2`, id, condominioID, t, minutos)
}

// SetLocalizacao atualiza os campos de geolocalização.
func (r *Repository) SetLocalizacao(ctx context.Context, id, condominioID uuid.UUID, lat, long *float64, endereco string) error {
	return r.execOrdem(ctx, `UPDATE ordens_servico SET latitude = $3, longitude = $4, local_endereco = $5, atualizado_em = now() WHERE id = $1 AND condominio_id = $2`, id, condominioID, lat, long, strings.TrimSpace(endereco))
}

// SetChatAtivo liga/desliga o canal público de chat.
func (r *Repository) SetChatAtivo(ctx context.Context, id, condominioID uuid.UUID, ativo bool) error {
	return r.execOrdem(ctx, `UPDATE ordens_servico SET chat_ativo = $3, atualizado_em = now() WHERE id = $1 AND condominio_id = $2`, id, condominioID, ativo)
}

func (r *Repository) execOrdem(ctx context.Context, query string, args ...any) error {
	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNaoEncontrado
	}
	return nil
}

// DeleteOrdem remove a ordem e todos os satélites em uma única transação.
// Devolve false quando a ordem não existia no condomínio (no-op para o
// chamador); os satélites só são tocados depois de confirmado o vínculo.
func (r *Repository) DeleteOrdem(ctx context.Context, id, condominioID uuid.UUID) (bool, error) {
	existed := false
	err := db.WithTx(ctx, r.pool, func(ctx context.Context, tx pgx.Tx) error {
		var dummy int
		err := tx.QueryRow(ctx, `SELECT 1 FROM ordens_servico WHERE id = $1 AND condominio_id = $2`, id, condominioID).Scan(&dummy)
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		if err != nil {
			return err
		}

		for _, table := range []string{
			"os_timeline", "os_chat_mensagens", "os_imagens", "os_materiais", "os_orcamentos", "os_responsaveis",
		} {
			if _, err := tx.Exec(ctx, `DELETE FROM `+table+` WHERE ordem_id = $1`, id); err != nil {
				return err
			}
		}

		if _, err := tx.Exec(ctx, `DELETE FROM ordens_servico WHERE id = $1`, id); err != nil {
			return err
		}
		existed = true
		return nil
	})
	return existed, err
}

// InsertEvento acrescenta um registro imutável na timeline.
func (r *Repository) InsertEvento(ctx context.Context, ev EventoTimeline) error {
	anteriores, err := marshalDados(ev.DadosAnteriores)
	if err != nil {
		return err
	}
	novos, err := marshalDados(ev.DadosNovos)
	if err != nil {
		return err
	}

	_, err = r.pool.Exec(ctx, `
        INSERT INTO os_timeline (ordem_id, tipo, descricao, autor_id, autor_nome, dados_anteriores, dados_novos)
        VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		ev.OrdemID, string(ev.Tipo), ev.Descricao, ev.AutorID, ev.AutorNome, anteriores, novos,
	)
	return err
}

// ListEventos lista a timeline da ordem em ordem cronológica.
func (r *Repository) ListEventos(ctx context.Context, ordemID uuid.UUID) ([]EventoTimeline, error) {
	rows, err := r.pool.Query(ctx, `
        SELECT id, ordem_id, tipo, descricao, autor_id, autor_nome, dados_anteriores, dados_novos, criado_em
        FROM os_timeline
        WHERE ordem_id = $1
        ORDER BY criado_em ASC, id ASC`, ordemID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var eventos []EventoTimeline
	for rows.Next() {
		var (
			ev         EventoTimeline
			tipo       string
			anteriores []byte
			novos      []byte
		)
		if err := rows.Scan(&ev.ID, &ev.OrdemID, &tipo, &ev.Descricao, &ev.AutorID, &ev.AutorNome, &anteriores, &novos, &ev.CriadoEm); err != nil {
			return nil, err
		}
		ev.Tipo = EventoTipo(tipo)
		if ev.DadosAnteriores, err = unmarshalDados(anteriores); err != nil {
			return nil, err
		}
		if ev.DadosNovos, err = unmarshalDados(novos); err != nil {
			return nil, err
		}
		eventos = append(eventos, ev)
	}
	return eventos, rows.Err()
}

// InsertResponsavel vincula um responsável à ordem.
func (r *Repository) InsertResponsavel(ctx context.Context, ordemID uuid.UUID, input CreateResponsavelInput) (*Responsavel, error) {
	row := r.pool.QueryRow(ctx, `
        INSERT INTO os_responsaveis (ordem_id, nome, funcao, telefone, email, usuario_id, principal)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id, ordem_id, nome, funcao, telefone, email, usuario_id, principal, criado_em`,
		ordemID, strings.TrimSpace(input.Nome), strings.TrimSpace(input.Funcao),
		strings.TrimSpace(input.Telefone), strings.TrimSpace(input.Email), input.UsuarioID, input.Principal,
	)
	return scanResponsavel(row)
}

// GetResponsavel busca responsável por id dentro da ordem.
func (r *Repository) GetResponsavel(ctx context.Context, id, ordemID uuid.UUID) (*Responsavel, error) {
	row := r.pool.QueryRow(ctx, `
        SELECT id, ordem_id, nome, funcao, telefone, email, usuario_id, principal, criado_em
        FROM os_responsaveis WHERE id = $1 AND ordem_id = $2`, id, ordemID)
	return scanResponsavel(row)
}

// DeleteResponsavel remove o vínculo.
func (r *Repository) DeleteResponsavel(ctx context.Context, id, ordemID uuid.UUID) error {
	return r.execOrdem(ctx, `DELETE FROM os_responsaveis WHERE id = $1 AND ordem_id = $2`, id, ordemID)
}

// ListResponsaveis lista responsáveis da ordem.
func (r *Repository) ListResponsaveis(ctx context.Context, ordemID uuid.UUID) ([]Responsavel, error) {
	rows, err := r.pool.Query(ctx, `
        SELECT id, ordem_id, nome, funcao, telefone, email, usuario_id, principal, criado_em
        FROM os_responsaveis WHERE ordem_id = $1`, ordemID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var itens []Responsavel
	for rows.Next() {
		item, err := scanResponsavel(rows)
		if err != nil {
			return nil, err
		}
		itens = append(itens, *item)
	}
	return itens, rows.Err()
}

// InsertMaterial registra material necessário; valor_total já vem calculado.
func (r *Repository) InsertMaterial(ctx context.Context, ordemID uuid.UUID, input CreateMaterialInput, valorTotal *float64) (*Material, error) {
	row := r.pool.QueryRow(ctx, `
        INSERT INTO os_materiais (ordem_id, nome, descricao, quantidade, unidade, em_estoque, precisa_comprar, obs_compra, valor_unitario, valor_total)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
        RETURNING id, ordem_id, nome, descricao, quantidade, unidade, em_estoque, precisa_comprar, obs_compra, valor_unitario, valor_total, criado_em`,
		ordemID, strings.TrimSpace(input.Nome), strings.TrimSpace(input.Descricao), input.Quantidade,
		strings.TrimSpace(input.Unidade), input.EmEstoque, input.PrecisaComprar,
		strings.TrimSpace(input.ObsCompra), input.ValorUnitario, valorTotal,
	)
	return scanMaterial(row)
}

// GetMaterial busca material por id dentro da ordem.
func (r *Repository) GetMaterial(ctx context.Context, id, ordemID uuid.UUID) (*Material, error) {
	row := r.pool.QueryRow(ctx, `
        SELECT id, ordem_id, nome, descricao, quantidade, unidade, em_estoque, precisa_comprar, obs_compra, valor_unitario, valor_total, criado_em
        FROM os_materiais WHERE id = $1 AND ordem_id = $2`, id, ordemID)
	return scanMaterial(row)
}

// DeleteMaterial remove o material.
func (r *Repository) DeleteMaterial(ctx context.Context, id, ordemID uuid.UUID) error {
	return r.execOrdem(ctx, `DELETE FROM os_materiais WHERE id = $1 AND ordem_id = $2`, id, ordemID)
}

// ListMateriais lista materiais da ordem.
func (r *Repository) ListMateriais(ctx context.Context, ordemID uuid.UUID) ([]Material, error) {
	rows, err := r.pool.Query(ctx, `
        SELECT id, ordem_id, nome, descricao, quantidade, unidade, em_estoque, precisa_comprar, obs_compra, valor_unitario, valor_total, criado_em
        FROM os_materiais WHERE ordem_id = $1 ORDER BY criado_em ASC`, ordemID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var itens []Material
	for rows.Next() {
		item, err := scanMaterial(rows)
		if err != nil {
			return nil, err
		}
		itens = append(itens, *item)
	}
	return itens, rows.Err()
}

const orcamentoColumns = `id, ordem_id, fornecedor, descricao, valor, valido_ate, anexo_url, aprovado, aprovado_por, aprovado_em, motivo_recusa, criado_em`

// InsertOrcamento registra proposta com aprovação pendente.
func (r *Repository) InsertOrcamento(ctx context.Context, ordemID uuid.UUID, input CreateOrcamentoInput) (*Orcamento, error) {
	row := r.pool.QueryRow(ctx, `
        INSERT INTO os_orcamentos (ordem_id, fornecedor, descricao, valor, valido_ate, anexo_url, aprovado)
        VALUES ($1, $2, $3, $4, $5, $6, NULL)
        RETURNING `+orcamentoColumns,
		ordemID, strings.TrimSpace(input.Fornecedor), strings.TrimSpace(input.Descricao),
		input.Valor, input.ValidoAte, strings.TrimSpace(input.AnexoURL),
	)
	return scanOrcamento(row)
}

// GetOrcamento busca orçamento por id dentro da ordem.
func (r *Repository) GetOrcamento(ctx context.Context, id, ordemID uuid.UUID) (*Orcamento, error) {
	row := r.pool.QueryRow(ctx, `
        SELECT `+orcamentoColumns+` FROM os_orcamentos WHERE id = $1 AND ordem_id = $2`, id, ordemID)
	return scanOrcamento(row)
}

// AprovarOrcamento marca a proposta como aprovada.
func (r *Repository) AprovarOrcamento(ctx context.Context, id, ordemID uuid.UUID, aprovadoPor string, aprovadoEm time.Time) (*Orcamento, error) {
	row := r.pool.QueryRow(ctx, `
        UPDATE os_orcamentos
        SET aprovado = true, aprovado_por = $3, aprovado_em = $4, motivo_recusa = ''
        WHERE id = $1 AND ordem_id = $2
        RETURNING `+orcamentoColumns, id, ordemID, aprovadoPor, aprovadoEm)
	return scanOrcamento(row)
}

// RejeitarOrcamento marca a proposta como rejeitada.
func (r *Repository) RejeitarOrcamento(ctx context.Context, id, ordemID uuid.UUID, motivo string) (*Orcamento, error) {
	row := r.pool.QueryRow(ctx, `
        UPDATE os_orcamentos
        SET aprovado = false, aprovado_por = NULL, aprovado_em = NULL, motivo_recusa = $3
        WHERE id = $1 AND ordem_id = $2
        RETURNING `+orcamentoColumns, id, ordemID, strings.TrimSpace(motivo))
	return scanOrcamento(row)
}

// DeleteOrcamento remove a proposta.
func (r *Repository) DeleteOrcamento(ctx context.Context, id, ordemID uuid.UUID) error {
	return r.execOrdem(ctx, `DELETE FROM os_orcamentos WHERE id = $1 AND ordem_id = $2`, id, ordemID)
}

// ListOrcamentos lista propostas da ordem.
func (r *Repository) ListOrcamentos(ctx context.Context, ordemID uuid.UUID) ([]Orcamento, error) {
	rows, err := r.pool.Query(ctx, `
        SELECT `+orcamentoColumns+` FROM os_orcamentos WHERE ordem_id = $1 ORDER BY criado_em ASC`, ordemID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var itens []Orcamento
	for rows.Next() {
		item, err := scanOrcamento(rows)
		if err != nil {
			return nil, err
		}
		itens = append(itens, *item)
	}
	return itens, rows.Err()
}

// InsertMensagem acrescenta mensagem ao chat da ordem.
func (r *Repository) InsertMensagem(ctx context.Context, ordemID uuid.UUID, m MensagemChat) (*MensagemChat, error) {
	row := r.pool.QueryRow(ctx, `
        INSERT INTO os_chat_mensagens (ordem_id, remetente_id, remetente_nome, remetente_tipo, mensagem, anexo_url, anexo_nome, anexo_tipo, anexo_tamanho)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        RETURNING id, ordem_id, remetente_id, remetente_nome, remetente_tipo, mensagem, anexo_url, anexo_nome, anexo_tipo, anexo_tamanho, criado_em`,
		ordemID, m.RemetenteID, strings.TrimSpace(m.RemetenteNome), m.RemetenteTipo,
		strings.TrimSpace(m.Mensagem), strings.TrimSpace(m.AnexoURL),
		strings.TrimSpace(m.AnexoNome), strings.TrimSpace(m.AnexoTipo), m.AnexoTamanho,
	)
	return scanMensagem(row)
}

// ListMensagens lista o chat em ordem cronológica.
func (r *Repository) ListMensagens(ctx context.Context, ordemID uuid.UUID) ([]MensagemChat, error) {
	rows, err := r.pool.Query(ctx, `
        SELECT id, ordem_id, remetente_id, remetente_nome, remetente_tipo, mensagem, anexo_url, anexo_nome, anexo_tipo, anexo_tamanho, criado_em
        FROM os_chat_mensagens WHERE ordem_id = $1 ORDER BY criado_em ASC, id ASC`, ordemID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var msgs []MensagemChat
	for rows.Next() {
		m, err := scanMensagem(rows)
		if err != nil {
			return nil, err
		}
		msgs = append(msgs, *m)
	}
	return msgs, rows.Err()
}

// InsertImagem registra foto vinculada à ordem.
func (r *Repository) InsertImagem(ctx context.Context, ordemID uuid.UUID, input CreateImagemInput) (*Imagem, error) {
	row := r.pool.QueryRow(ctx, `
        INSERT INTO os_imagens (ordem_id, url, tipo, descricao, posicao)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, ordem_id, url, tipo, descricao, posicao, criado_em`,
		ordemID, strings.TrimSpace(input.URL), input.Tipo, strings.TrimSpace(input.Descricao), input.Posicao,
	)
	var img Imagem
	if err := row.Scan(&img.ID, &img.OrdemID, &img.URL, &img.Tipo, &img.Descricao, &img.Posicao, &img.CriadoEm); err != nil {
		return nil, err
	}
	return &img, nil
}

// ListImagens lista fotos da ordem por posição.
func (r *Repository) ListImagens(ctx context.Context, ordemID uuid.UUID) ([]Imagem, error) {
	rows, err := r.pool.Query(ctx, `
        SELECT id, ordem_id, url, tipo, descricao, posicao, criado_em
        FROM os_imagens WHERE ordem_id = $1 ORDER BY posicao ASC, criado_em ASC`, ordemID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var imgs []Imagem
	for rows.Next() {
		var img Imagem
		if err := rows.Scan(&img.ID, &img.OrdemID, &img.URL, &img.Tipo, &img.Descricao, &img.Posicao, &img.CriadoEm); err != nil {
			return nil, err
		}
		imgs = append(imgs, img)
	}
	return imgs, rows.Err()
}

func scanOrdem(row pgx.Row) (*OrdemServico, error) {
	var o OrdemServico
	err := row.Scan(
		&o.ID, &o.CondominioID, &o.Protocolo, &o.Titulo, &o.Descricao,
		&o.CategoriaID, &o.PrioridadeID, &o.StatusID, &o.SetorID,
		&o.LocalEndereco, &o.LocalDescricao, &o.Latitude, &o.Longitude,
		&o.TempoEstimadoDias, &o.TempoEstimadoHoras, &o.TempoEstimadoMinutos,
		&o.ValorEstimado, &o.ValorGasto,
		&o.ManutencaoID, &o.SolicitanteID, &o.SolicitanteNome, &o.SolicitanteTipo,
		&o.IniciadoEm, &o.FinalizadoEm, &o.TempoGastoMinutos,
		&o.ChatToken, &o.ChatAtivo, &o.ShareToken,
		&o.CriadoEm, &o.AtualizadoEm,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNaoEncontrado
		}
		return nil, err
	}
	return &o, nil
}

func scanResponsavel(row pgx.Row) (*Responsavel, error) {
	var p Responsavel
	if err := row.Scan(&p.ID, &p.OrdemID, &p.Nome, &p.Funcao, &p.Telefone, &p.Email, &p.UsuarioID, &p.Principal, &p.CriadoEm); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNaoEncontrado
		}
		return nil, err
	}
	return &p, nil
}

func scanMaterial(row pgx.Row) (*Material, error) {
	var m Material
	if err := row.Scan(&m.ID, &m.OrdemID, &m.Nome, &m.Descricao, &m.Quantidade, &m.Unidade, &m.EmEstoque, &m.PrecisaComprar, &m.ObsCompra, &m.ValorUnitario, &m.ValorTotal, &m.CriadoEm); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNaoEncontrado
		}
		return nil, err
	}
	return &m, nil
}

func scanOrcamento(row pgx.Row) (*Orcamento, error) {
	var o Orcamento
	if err := row.Scan(&o.ID, &o.OrdemID, &o.Fornecedor, &o.Descricao, &o.Valor, &o.ValidoAte, &o.AnexoURL, &o.Aprovado, &o.AprovadoPor, &o.AprovadoEm, &o.MotivoRecusa, &o.CriadoEm); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNaoEncontrado
		}
		return nil, err
	}
	return &o, nil
}

func scanMensagem(row pgx.Row) (*MensagemChat, error) {
	var m MensagemChat
	if err := row.Scan(&m.ID, &m.OrdemID, &m.RemetenteID, &m.RemetenteNome, &m.RemetenteTipo, &m.Mensagem, &m.AnexoURL, &m.AnexoNome, &m.AnexoTipo, &m.AnexoTamanho, &m.CriadoEm); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNaoEncontrado
		}
		return nil, err
	}
	return &m, nil
}

func marshalDados(dados map[string]any) ([]byte, error) {
	if dados == nil {
		return nil, nil
	}
	return json.Marshal(dados)
}

func unmarshalDados(raw []byte) (map[string]any, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	return m, nil
}
