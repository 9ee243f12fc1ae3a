package ordem

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type chatRepository interface {
	GetOrdem(ctx context.Context, id, condominioID uuid.UUID) (*OrdemServico, error)
	GetOrdemPorChatToken(ctx context.Context, token string) (*OrdemServico, error)
	GetOrdemPorShareToken(ctx context.Context, token string) (*OrdemServico, error)

	InsertMensagem(ctx context.Context, ordemID uuid.UUID, m MensagemChat) (*MensagemChat, error)
	ListMensagens(ctx context.Context, ordemID uuid.UUID) ([]MensagemChat, error)
	ListImagens(ctx context.Context, ordemID uuid.UUID) ([]Imagem, error)
	ListEventos(ctx context.Context, ordemID uuid.UUID) ([]EventoTimeline, error)

	GetStatus(ctx context.Context, id uuid.UUID) (*Status, error)
	GetCategoria(ctx context.Context, id uuid.UUID) (*Categoria, error)
	GetPrioridade(ctx context.Context, id uuid.UUID) (*Prioridade, error)
	GetSetor(ctx context.Context, id uuid.UUID) (*Setor, error)
}

// ChatService atende os dois canais de comunicação da ordem: o interno
// (equipe autenticada) e o público, acessado por token portador. Tokens
// desconhecidos e tokens com chat desligado falham de forma idêntica
// para não permitir enumeração.
type ChatService struct {
	repo chatRepository
}

// NewChatService cria o serviço de chat e compartilhamento.
func NewChatService(repo chatRepository) *ChatService {
	return &ChatService{repo: repo}
}

// ChatPublico é a visão do chat entregue ao visitante.
type ChatPublico struct {
	Protocolo string         `json:"protocolo"`
	Titulo    string         `json:"titulo"`
	Mensagens []MensagemChat `json:"mensagens"`
}

// ImagemPublica omite identificadores internos.
type ImagemPublica struct {
	URL       string `json:"url"`
	Tipo      string `json:"tipo"`
	Descricao string `json:"descricao"`
}

// EventoPublico omite autor e dados internos.
type EventoPublico struct {
	Tipo      EventoTipo `json:"tipo"`
	Descricao string     `json:"descricao"`
	CriadoEm  time.Time  `json:"criado_em"`
}

// OrdemPublica é a projeção somente leitura exposta pelo share token.
type OrdemPublica struct {
	Protocolo         string          `json:"protocolo"`
	Titulo            string          `json:"titulo"`
	Descricao         string          `json:"descricao"`
	Status            string          `json:"status"`
	Categoria         string          `json:"categoria"`
	Prioridade        string          `json:"prioridade"`
	Setor             string          `json:"setor"`
	LocalEndereco     string          `json:"local_endereco"`
	LocalDescricao    string          `json:"local_descricao"`
	IniciadoEm        *time.Time      `json:"iniciado_em,omitempty"`
	FinalizadoEm      *time.Time      `json:"finalizado_em,omitempty"`
	TempoGastoMinutos int             `json:"tempo_gasto_minutos"`
	ChatAtivo         bool            `json:"chat_ativo"`
	CriadoEm          time.Time       `json:"criado_em"`
	Imagens           []ImagemPublica `json:"imagens"`
	Timeline          []EventoPublico `json:"timeline"`
}

// SendMessage envia mensagem pelo canal interno autenticado.
func (s *ChatService) SendMessage(ctx context.Context, ordemID, condominioID uuid.UUID, autor Autor, input CreateMensagemInput) (*MensagemChat, error) {
	if err := validarMensagem(input); err != nil {
		return nil, err
	}

	if _, err := s.repo.GetOrdem(ctx, ordemID, condominioID); err != nil {
		return nil, err
	}

	return s.repo.InsertMensagem(ctx, ordemID, MensagemChat{
		RemetenteID:   autor.ID,
		RemetenteNome: autor.Nome,
		RemetenteTipo: RemetenteEquipe,
		Mensagem:      input.Mensagem,
		AnexoURL:      input.AnexoURL,
		AnexoNome:     input.AnexoNome,
		AnexoTipo:     input.AnexoTipo,
		AnexoTamanho:  input.AnexoTamanho,
	})
}

// ListMensagens lista o chat da ordem para a equipe.
func (s *ChatService) ListMensagens(ctx context.Context, ordemID, condominioID uuid.UUID) ([]MensagemChat, error) {
	if _, err := s.repo.GetOrdem(ctx, ordemID, condominioID); err != nil {
		return nil, err
	}
	return s.repo.ListMensagens(ctx, ordemID)
}

// ResolveByChatToken devolve a visão pública do chat quando o token é
// válido e o chat está ligado.
func (s *ChatService) ResolveByChatToken(ctx context.Context, token string) (*ChatPublico, error) {
	ordem, err := s.ordemPorChatToken(ctx, token)
	if err != nil {
		return nil, err
	}

	mensagens, err := s.repo.ListMensagens(ctx, ordem.ID)
	if err != nil {
		return nil, err
	}

	return &ChatPublico{
		Protocolo: ordem.Protocolo,
		Titulo:    ordem.Titulo,
		Mensagens: mensagens,
	}, nil
}

// SendMessageByToken envia mensagem de visitante pelo canal público.
// O flag de chat é reavaliado a cada envio.
func (s *ChatService) SendMessageByToken(ctx context.Context, token, nomeVisitante string, input CreateMensagemInput) (*MensagemChat, error) {
	if err := validarMensagem(input); err != nil {
		return nil, err
	}

	nomeVisitante = strings.TrimSpace(nomeVisitante)
	if nomeVisitante == "" {
		return nil, validationError("nome do visitante obrigatório")
	}

	ordem, err := s.ordemPorChatToken(ctx, token)
	if err != nil {
		return nil, err
	}

	return s.repo.InsertMensagem(ctx, ordem.ID, MensagemChat{
		RemetenteNome: nomeVisitante,
		RemetenteTipo: RemetenteVisitante,
		Mensagem:      input.Mensagem,
		AnexoURL:      input.AnexoURL,
		AnexoNome:     input.AnexoNome,
		AnexoTipo:     input.AnexoTipo,
		AnexoTamanho:  input.AnexoTamanho,
	})
}

// ResolveByShareToken devolve a projeção pública da ordem.
func (s *ChatService) ResolveByShareToken(ctx context.Context, token string) (*OrdemPublica, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrNaoEncontrado
	}

	ordem, err := s.repo.GetOrdemPorShareToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if !ordem.ChatAtivo {
		// mesma resposta de token inexistente
		return nil, ErrNaoEncontrado
	}

	publica := OrdemPublica{
		Protocolo:         ordem.Protocolo,
		Titulo:            ordem.Titulo,
		Descricao:         ordem.Descricao,
		Status:            s.nomeStatus(ctx, ordem.StatusID),
		Categoria:         s.nomeCategoria(ctx, ordem.CategoriaID),
		Prioridade:        s.nomePrioridade(ctx, ordem.PrioridadeID),
		Setor:             s.nomeSetor(ctx, ordem.SetorID),
		LocalEndereco:     ordem.LocalEndereco,
		LocalDescricao:    ordem.LocalDescricao,
		IniciadoEm:        ordem.IniciadoEm,
		FinalizadoEm:      ordem.FinalizadoEm,
		TempoGastoMinutos: ordem.TempoGastoMinutos,
		ChatAtivo:         ordem.ChatAtivo,
		CriadoEm:          ordem.CriadoEm,
		Imagens:           []ImagemPublica{},
		Timeline:          []EventoPublico{},
	}

	imagens, err := s.repo.ListImagens(ctx, ordem.ID)
	if err != nil {
		return nil, err
	}
	for _, img := range imagens {
		publica.Imagens = append(publica.Imagens, ImagemPublica{URL: img.URL, Tipo: img.Tipo, Descricao: img.Descricao})
	}

	eventos, err := s.repo.ListEventos(ctx, ordem.ID)
	if err != nil {
		return nil, err
	}
	for _, ev := range eventos {
		publica.Timeline = append(publica.Timeline, EventoPublico{Tipo: ev.Tipo, Descricao: ev.Descricao, CriadoEm: ev.CriadoEm})
	}

	return &publica, nil
}

func (s *ChatService) ordemPorChatToken(ctx context.Context, token string) (*OrdemServico, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrNaoEncontrado
	}

	ordem, err := s.repo.GetOrdemPorChatToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if !ordem.ChatAtivo {
		// mesma resposta de token inexistente
		return nil, ErrNaoEncontrado
	}
	return ordem, nil
}

func (s *ChatService) nomeStatus(ctx context.Context, id *uuid.UUID) string {
	if id == nil {
		return ""
	}
	st, err := s.repo.GetStatus(ctx, *id)
	if err != nil {
		logLookupFalha(err, "status")
		return ""
	}
	return st.Nome
}

func (s *ChatService) nomeCategoria(ctx context.Context, id *uuid.UUID) string {
	if id == nil {
		return ""
	}
	c, err := s.repo.GetCategoria(ctx, *id)
	if err != nil {
		logLookupFalha(err, "categoria")
		return ""
	}
	return c.Nome
}

func (s *ChatService) nomePrioridade(ctx context.Context, id *uuid.UUID) string {
	if id == nil {
		return ""
	}
	p, err := s.repo.GetPrioridade(ctx, *id)
	if err != nil {
		logLookupFalha(err, "prioridade")
		return ""
	}
	return p.Nome
}

func (s *ChatService) nomeSetor(ctx context.Context, id *uuid.UUID) string {
	if id == nil {
		return ""
	}
	st, err := s.repo.GetSetor(ctx, *id)
	if err != nil {
		logLookupFalha(err, "setor")
		return ""
	}
	return st.Nome
}

func logLookupFalha(err error, campo string) {
	log.Warn().Err(err).Str("campo", campo).Msg("falha ao resolver nome da taxonomia")
}

func validarMensagem(input CreateMensagemInput) error {
	if strings.TrimSpace(input.Mensagem) == "" && strings.TrimSpace(input.AnexoURL) == "" {
		return validationError("mensagem ou anexo obrigatório")
	}
	return nil
}
