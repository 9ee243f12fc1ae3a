package ordem

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrNaoEncontrado é retornado quando o registro (ou token) não existe.
	// Tokens desabilitados retornam o mesmo erro para não vazar existência.
	ErrNaoEncontrado = errors.New("registro não encontrado")
	// ErrValidacao indica entrada malformada ou campo obrigatório ausente.
	ErrValidacao = errors.New("dados inválidos")
)

func validationError(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidacao, msg)
}

// EventoTipo identifica o tipo de um evento da timeline.
// Valores desconhecidos vindos de dados legados são preservados como estão.
type EventoTipo string

const (
	EventoCriacao               EventoTipo = "creation"
	EventoStatusAlterado        EventoTipo = "status_alterado"
	EventoResponsavelAdicionado EventoTipo = "responsavel_adicionado"
	EventoResponsavelRemovido   EventoTipo = "responsavel_removido"
	EventoMaterialAdicionado    EventoTipo = "material_adicionado"
	EventoMaterialRemovido      EventoTipo = "material_removido"
	EventoOrcamentoAdicionado   EventoTipo = "orcamento_adicionado"
	EventoOrcamentoAprovado     EventoTipo = "orcamento_aprovado"
	EventoOrcamentoRejeitado    EventoTipo = "orcamento_rejeitado"
	EventoOrcamentoRemovido     EventoTipo = "orcamento_removido"
	EventoFotoAdicionada        EventoTipo = "foto_adicionada"
	EventoInicioServico         EventoTipo = "inicio_servico"
	EventoFimServico            EventoTipo = "fim_servico"
	EventoComentario            EventoTipo = "comentario"
	EventoLocalizacaoAtualizada EventoTipo = "localizacao_atualizada"
)

// Tipos de remetente no chat.
const (
	RemetenteEquipe    = "staff"
	RemetenteVisitante = "visitor"
)

// Tipos de imagem anexada à ordem.
const (
	ImagemAntes     = "before"
	ImagemDurante   = "during"
	ImagemDepois    = "after"
	ImagemOrcamento = "budget"
	ImagemOutra     = "other"
)

// Autor identifica quem executou uma mutação, quando conhecido.
type Autor struct {
	ID   *uuid.UUID
	Nome string
}

// Categoria classifica ordens de serviço por tipo de problema.
type Categoria struct {
	ID           uuid.UUID `json:"id"`
	CondominioID uuid.UUID `json:"condominio_id"`
	Nome         string    `json:"nome"`
	Descricao    string    `json:"descricao"`
	Cor          string    `json:"cor"`
	Ativo        bool      `json:"ativo"`
	Padrao       bool      `json:"padrao"`
	CriadoEm     time.Time `json:"criado_em"`
}

// Prioridade ordena ordens por urgência via nível numérico.
type Prioridade struct {
	ID           uuid.UUID `json:"id"`
	CondominioID uuid.UUID `json:"condominio_id"`
	Nome         string    `json:"nome"`
	Nivel        int       `json:"nivel"`
	Cor          string    `json:"cor"`
	Ativo        bool      `json:"ativo"`
	Padrao       bool      `json:"padrao"`
	CriadoEm     time.Time `json:"criado_em"`
}

// Status define uma etapa do fluxo, customizável por condomínio.
// Finalizadora marca estados terminais (usado apenas nas estatísticas,
// não como guarda de transição).
type Status struct {
	ID           uuid.UUID `json:"id"`
	CondominioID uuid.UUID `json:"condominio_id"`
	Nome         string    `json:"nome"`
	Ordem        int       `json:"ordem"`
	Cor          string    `json:"cor"`
	Finalizadora bool      `json:"finalizadora"`
	Ativo        bool      `json:"ativo"`
	Padrao       bool      `json:"padrao"`
	CriadoEm     time.Time `json:"criado_em"`
}

// Setor agrupa ordens por área do condomínio.
type Setor struct {
	ID           uuid.UUID `json:"id"`
	CondominioID uuid.UUID `json:"condominio_id"`
	Nome         string    `json:"nome"`
	Ativo        bool      `json:"ativo"`
	Padrao       bool      `json:"padrao"`
	CriadoEm     time.Time `json:"criado_em"`
}

// OrdemServico é a raiz do agregado de manutenção.
type OrdemServico struct {
	ID           uuid.UUID  `json:"id"`
	CondominioID uuid.UUID  `json:"condominio_id"`
	Protocolo    string     `json:"protocolo"`
	Titulo       string     `json:"titulo"`
	Descricao    string     `json:"descricao"`
	CategoriaID  *uuid.UUID `json:"categoria_id,omitempty"`
	PrioridadeID *uuid.UUID `json:"prioridade_id,omitempty"`
	StatusID     *uuid.UUID `json:"status_id,omitempty"`
	SetorID      *uuid.UUID `json:"setor_id,omitempty"`

	LocalEndereco  string   `json:"local_endereco"`
	LocalDescricao string   `json:"local_descricao"`
	Latitude       *float64 `json:"latitude,omitempty"`
	Longitude      *float64 `json:"longitude,omitempty"`

	TempoEstimadoDias    *int     `json:"tempo_estimado_dias,omitempty"`
	TempoEstimadoHoras   *int     `json:"tempo_estimado_horas,omitempty"`
	TempoEstimadoMinutos *int     `json:"tempo_estimado_minutos,omitempty"`
	ValorEstimado        *float64 `json:"valor_estimado,omitempty"`
	ValorGasto           *float64 `json:"valor_gasto,omitempty"`

	ManutencaoID *uuid.UUID `json:"manutencao_id,omitempty"`

	SolicitanteID   *uuid.UUID `json:"solicitante_id,omitempty"`
	SolicitanteNome string     `json:"solicitante_nome"`
	SolicitanteTipo string     `json:"solicitante_tipo"`

	IniciadoEm        *time.Time `json:"iniciado_em,omitempty"`
	FinalizadoEm      *time.Time `json:"finalizado_em,omitempty"`
	TempoGastoMinutos int        `json:"tempo_gasto_minutos"`

	ChatToken  string `json:"chat_token,omitempty"`
	ChatAtivo  bool   `json:"chat_ativo"`
	ShareToken string `json:"share_token,omitempty"`

	CriadoEm     time.Time `json:"criado_em"`
	AtualizadoEm time.Time `json:"atualizado_em"`
}

// Responsavel é uma pessoa designada para executar a ordem.
type Responsavel struct {
	ID        uuid.UUID  `json:"id"`
	OrdemID   uuid.UUID  `json:"ordem_id"`
	Nome      string     `json:"nome"`
	Funcao    string     `json:"funcao"`
	Telefone  string     `json:"telefone"`
	Email     string     `json:"email"`
	UsuarioID *uuid.UUID `json:"usuario_id,omitempty"`
	Principal bool       `json:"principal"`
	CriadoEm  time.Time  `json:"criado_em"`
}

// Material é um insumo necessário para a execução.
type Material struct {
	ID             uuid.UUID `json:"id"`
	OrdemID        uuid.UUID `json:"ordem_id"`
	Nome           string    `json:"nome"`
	Descricao      string    `json:"descricao"`
	Quantidade     *float64  `json:"quantidade,omitempty"`
	Unidade        string    `json:"unidade"`
	EmEstoque      bool      `json:"em_estoque"`
	PrecisaComprar bool      `json:"precisa_comprar"`
	ObsCompra      string    `json:"obs_compra"`
	ValorUnitario  *float64  `json:"valor_unitario,omitempty"`
	ValorTotal     *float64  `json:"valor_total,omitempty"`
	CriadoEm       time.Time `json:"criado_em"`
}

// Orcamento é uma proposta de fornecedor vinculada à ordem.
// Aprovado é tri-estado: nil=pendente, true=aprovado, false=rejeitado.
type Orcamento struct {
	ID            uuid.UUID  `json:"id"`
	OrdemID       uuid.UUID  `json:"ordem_id"`
	Fornecedor    string     `json:"fornecedor"`
	Descricao     string     `json:"descricao"`
	Valor         float64    `json:"valor"`
	ValidoAte     *time.Time `json:"valido_ate,omitempty"`
	AnexoURL      string     `json:"anexo_url"`
	Aprovado      *bool      `json:"aprovado"`
	AprovadoPor   *string    `json:"aprovado_por,omitempty"`
	AprovadoEm    *time.Time `json:"aprovado_em,omitempty"`
	MotivoRecusa  string     `json:"motivo_recusa"`
	CriadoEm      time.Time  `json:"criado_em"`
}

// EventoTimeline é um registro imutável da trilha de auditoria.
type EventoTimeline struct {
	ID              uuid.UUID      `json:"id"`
	OrdemID         uuid.UUID      `json:"ordem_id"`
	Tipo            EventoTipo     `json:"tipo"`
	Descricao       string         `json:"descricao"`
	AutorID         *uuid.UUID     `json:"autor_id,omitempty"`
	AutorNome       string         `json:"autor_nome"`
	DadosAnteriores map[string]any `json:"dados_anteriores,omitempty"`
	DadosNovos      map[string]any `json:"dados_novos,omitempty"`
	CriadoEm        time.Time      `json:"criado_em"`
}

// MensagemChat é uma mensagem no canal interno ou público da ordem.
type MensagemChat struct {
	ID            uuid.UUID  `json:"id"`
	OrdemID       uuid.UUID  `json:"ordem_id"`
	RemetenteID   *uuid.UUID `json:"remetente_id,omitempty"`
	RemetenteNome string     `json:"remetente_nome"`
	RemetenteTipo string     `json:"remetente_tipo"`
	Mensagem      string     `json:"mensagem"`
	AnexoURL      string     `json:"anexo_url"`
	AnexoNome     string     `json:"anexo_nome"`
	AnexoTipo     string     `json:"anexo_tipo"`
	AnexoTamanho  *int64     `json:"anexo_tamanho,omitempty"`
	CriadoEm      time.Time  `json:"criado_em"`
}

// Imagem é uma foto vinculada à ordem de serviço.
type Imagem struct {
	ID        uuid.UUID `json:"id"`
	OrdemID   uuid.UUID `json:"ordem_id"`
	URL       string    `json:"url"`
	Tipo      string    `json:"tipo"`
	Descricao string    `json:"descricao"`
	Posicao   int       `json:"posicao"`
	CriadoEm  time.Time `json:"criado_em"`
}

// CreateOrdemInput reúne os campos aceitos na abertura de uma ordem.
type CreateOrdemInput struct {
	CondominioID uuid.UUID
	Titulo       string
	Descricao    string
	CategoriaID  *uuid.UUID
	PrioridadeID *uuid.UUID
	StatusID     *uuid.UUID
	SetorID      *uuid.UUID

	LocalEndereco  string
	LocalDescricao string
	Latitude       *float64
	Longitude      *float64

	TempoEstimadoDias    *int
	TempoEstimadoHoras   *int
	TempoEstimadoMinutos *int
	ValorEstimado        *float64

	ManutencaoID *uuid.UUID

	SolicitanteID   *uuid.UUID
	SolicitanteNome string
	SolicitanteTipo string
}

// UpdateOrdemInput é um patch parcial; ponteiros nil não alteram o campo.
type UpdateOrdemInput struct {
	Titulo       *string
	Descricao    *string
	CategoriaID  *uuid.UUID
	PrioridadeID *uuid.UUID
	StatusID     *uuid.UUID
	SetorID      *uuid.UUID

	LocalEndereco  *string
	LocalDescricao *string

	TempoEstimadoDias    *int
	TempoEstimadoHoras   *int
	TempoEstimadoMinutos *int
	ValorEstimado        *float64
	ValorGasto           *float64
}

// CreateResponsavelInput descreve um novo responsável.
type CreateResponsavelInput struct {
	Nome      string
	Funcao    string
	Telefone  string
	Email     string
	UsuarioID *uuid.UUID
	Principal bool
}

// CreateMaterialInput descreve um novo material.
type CreateMaterialInput struct {
	Nome           string
	Descricao      string
	Quantidade     *float64
	Unidade        string
	EmEstoque      bool
	PrecisaComprar bool
	ObsCompra      string
	ValorUnitario  *float64
}

// CreateOrcamentoInput descreve uma nova proposta de orçamento.
type CreateOrcamentoInput struct {
	Fornecedor string
	Descricao  string
	Valor      float64
	ValidoAte  *time.Time
	AnexoURL   string
}

// CreateMensagemInput descreve uma nova mensagem de chat.
type CreateMensagemInput struct {
	Mensagem     string
	AnexoURL     string
	AnexoNome    string
	AnexoTipo    string
	AnexoTamanho *int64
}

// CreateImagemInput descreve uma nova foto da ordem.
type CreateImagemInput struct {
	URL       string
	Tipo      string
	Descricao string
	Posicao   int
}

// OrdemFilter permite filtrar a listagem de ordens.
type OrdemFilter struct {
	CondominioID uuid.UUID
	StatusID     *uuid.UUID
	CategoriaID  *uuid.UUID
	PrioridadeID *uuid.UUID
	SetorID      *uuid.UUID
	Busca        string
	Limit        int
	Offset       int
}

// OrdemDetalhe agrega a ordem e seus satélites para a tela de detalhe.
type OrdemDetalhe struct {
	Ordem        OrdemServico     `json:"ordem"`
	Responsaveis []Responsavel    `json:"responsaveis"`
	Materiais    []Material       `json:"materiais"`
	Orcamentos   []Orcamento      `json:"orcamentos"`
	Imagens      []Imagem         `json:"imagens"`
	Timeline     []EventoTimeline `json:"timeline"`
}

// NovoEvento monta um evento de timeline preenchendo autor quando conhecido.
func NovoEvento(ordemID uuid.UUID, tipo EventoTipo, descricao string, autor Autor) EventoTimeline {
	return EventoTimeline{
		OrdemID:   ordemID,
		Tipo:      tipo,
		Descricao: descricao,
		AutorID:   autor.ID,
		AutorNome: autor.Nome,
	}
}
