package ordem

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	httpmiddleware "github.com/gestaopredial/condominio/internal/http/middleware"
)

// Handler orquestra as rotas de ordens de serviço.
type Handler struct {
	ordens       *Service
	taxonomia    *TaxonomiaService
	recursos     *RecursosService
	orcamentos   *OrcamentoService
	chat         *ChatService
	estatisticas *EstatisticasService
}

func NewHandler(ordens *Service, taxonomia *TaxonomiaService, recursos *RecursosService, orcamentos *OrcamentoService, chat *ChatService, estatisticas *EstatisticasService) *Handler {
	return &Handler{
		ordens:       ordens,
		taxonomia:    taxonomia,
		recursos:     recursos,
		orcamentos:   orcamentos,
		chat:         chat,
		estatisticas: estatisticas,
	}
}

// RegisterRoutes registra as rotas autenticadas do painel.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/categorias", func(r chi.Router) {
		r.Get("/", h.handleListCategorias)
		r.Post("/", h.handleCreateCategoria)
		r.Patch("/{id}", h.handleUpdateCategoria)
		r.Delete("/{id}", h.handleDeactivateCategoria)
	})

	r.Route("/prioridades", func(r chi.Router) {
		r.Get("/", h.handleListPrioridades)
		r.Post("/", h.handleCreatePrioridade)
		r.Patch("/{id}", h.handleUpdatePrioridade)
		r.Delete("/{id}", h.handleDeactivatePrioridade)
	})

	r.Route("/status", func(r chi.Router) {
		r.Get("/", h.handleListStatus)
		r.Post("/", h.handleCreateStatus)
		r.Patch("/{id}", h.handleUpdateStatus)
		r.Delete("/{id}", h.handleDeactivateStatus)
	})

	r.Route("/setores", func(r chi.Router) {
		r.Get("/", h.handleListSetores)
		r.Post("/", h.handleCreateSetor)
		r.Patch("/{id}", h.handleUpdateSetor)
		r.Delete("/{id}", h.handleDeactivateSetor)
	})

	r.Get("/estatisticas", h.handleEstatisticas)

	r.Route("/ordens", func(r chi.Router) {
		r.Get("/", h.handleListOrdens)
		r.Post("/", h.handleCreateOrdem)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.handleGetOrdem)
			r.Patch("/", h.handleUpdateOrdem)
			r.With(httpmiddleware.RequireSindico).Delete("/", h.handleDeleteOrdem)

			r.Post("/iniciar", h.handleIniciar)
			r.Post("/finalizar", h.handleFinalizar)
			r.Patch("/localizacao", h.handleLocalizacao)
			r.Patch("/chat", h.handleToggleChat)
			r.Post("/comentarios", h.handleComentar)
			r.Get("/timeline", h.handleTimeline)
			r.Post("/imagens", h.handleAddImagem)

			r.Get("/responsaveis", h.handleListResponsaveis)
			r.Post("/responsaveis", h.handleAddResponsavel)
			r.Delete("/responsaveis/{respID}", h.handleRemoveResponsavel)

			r.Get("/materiais", h.handleListMateriais)
			r.Post("/materiais", h.handleAddMaterial)
			r.Delete("/materiais/{materialID}", h.handleRemoveMaterial)

			r.Get("/orcamentos", h.handleListOrcamentos)
			r.Post("/orcamentos", h.handleAddOrcamento)
			r.Post("/orcamentos/{orcamentoID}/aprovar", h.handleAprovarOrcamento)
			r.Post("/orcamentos/{orcamentoID}/recusar", h.handleRecusarOrcamento)
			r.Delete("/orcamentos/{orcamentoID}", h.handleRemoveOrcamento)

			r.Get("/chat/mensagens", h.handleListMensagens)
			r.Post("/chat/mensagens", h.handleSendMensagem)
		})
	})
}

// RegisterPublicRoutes registra as rotas acessadas por token portador,
// sem autenticação.
func (h *Handler) RegisterPublicRoutes(r chi.Router) {
	r.Get("/chat/{token}", h.handlePublicChat)
	r.Post("/chat/{token}/mensagens", h.handlePublicSendMensagem)
	r.Get("/ordens/{token}", h.handlePublicOrdem)
}

// ---- taxonomia ----

func (h *Handler) handleListCategorias(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	condominioID, ok := condominioFromContext(ctx, w)
	if !ok {
		return
	}

	categorias, err := h.taxonomia.ListCategorias(ctx, condominioID)
	if err != nil {
		writeInternalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"categorias": categorias})
}

type categoriaRequest struct {
	Nome      *string `json:"nome"`
	Descricao *string `json:"descricao"`
	Cor       *string `json:"cor"`
}

func (h *Handler) handleCreateCategoria(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	condominioID, ok := condominioFromContext(ctx, w)
	if !ok {
		return
	}

	var req categoriaRequest
	if !decodeBody(w, r, &req) {
		return
	}

	categoria, err := h.taxonomia.CreateCategoria(ctx, condominioID, CreateCategoriaInput{
		Nome:      strValue(req.Nome),
		Descricao: strValue(req.Descricao),
		Cor:       strValue(req.Cor),
	})
	if err != nil {
		handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, categoria)
}

func (h *Handler) handleUpdateCategoria(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	condominioID, ok := condominioFromContext(ctx, w)
	if !ok {
		return
	}

	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req categoriaRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := h.taxonomia.UpdateCategoria(ctx, id, condominioID, UpdateCategoriaInput{
		Nome:      req.Nome,
		Descricao: req.Descricao,
		Cor:       req.Cor,
	}); err != nil {
		handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) handleDeactivateCategoria(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	condominioID, ok := condominioFromContext(ctx, w)
	if !ok {
		return
	}

	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.taxonomia.DeactivateCategoria(ctx, id, condominioID); err != nil {
		handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) handleListPrioridades(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	condominioID, ok := condominioFromContext(ctx, w)
	if !ok {
		return
	}

	prioridades, err := h.taxonomia.ListPrioridades(ctx, condominioID)
	if err != nil {
		writeInternalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"prioridades": prioridades})
}

type prioridadeRequest struct {
	Nome  *string `json:"nome"`
	Nivel *int    `json:"nivel"`
	Cor   *string `json:"cor"`
}

func (h *Handler) handleCreatePrioridade(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	condominioID, ok := condominioFromContext(ctx, w)
	if !ok {
		return
	}

	var req prioridadeRequest
	if !decodeBody(w, r, &req) {
		return
	}

	prioridade, err := h.taxonomia.CreatePrioridade(ctx, condominioID, CreatePrioridadeInput{
		Nome:  strValue(req.Nome),
		Nivel: req.Nivel,
		Cor:   strValue(req.Cor),
	})
	if err != nil {
		handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, prioridade)
}

func (h *Handler) handleUpdatePrioridade(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	condominioID, ok := condominioFromContext(ctx, w)
	if !ok {
		return
	}

	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req prioridadeRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := h.taxonomia.UpdatePrioridade(ctx, id, condominioID, UpdatePrioridadeInput{
		Nome:  req.Nome,
		Nivel: req.Nivel,
		Cor:   req.Cor,
	}); err != nil {
		handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) handleDeactivatePrioridade(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	condominioID, ok := condominioFromContext(ctx, w)
	if !ok {
		return
	}

	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.taxonomia.DeactivatePrioridade(ctx, id, condominioID); err != nil {
		handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) handleListStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	condominioID, ok := condominioFromContext(ctx, w)
	if !ok {
		return
	}

	status, err := h.taxonomia.ListStatus(ctx, condominioID)
	if err != nil {
		writeInternalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"status": status})
}

type statusRequest struct {
	Nome         *string `json:"nome"`
	Ordem        *int    `json:"ordem"`
	Cor          *string `json:"cor"`
	Finalizadora *bool   `json:"finalizadora"`
}

func (h *Handler) handleCreateStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	condominioID, ok := condominioFromContext(ctx, w)
	if !ok {
		return
	}

	var req statusRequest
	if !decodeBody(w, r, &req) {
		return
	}

	status, err := h.taxonomia.CreateStatus(ctx, condominioID, CreateStatusInput{
		Nome:         strValue(req.Nome),
		Ordem:        req.Ordem,
		Cor:          strValue(req.Cor),
		Finalizadora: req.Finalizadora != nil && *req.Finalizadora,
	})
	if err != nil {
		handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, status)
}

func (h *Handler) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	condominioID, ok := condominioFromContext(ctx, w)
	if !ok {
		return
	}

	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req statusRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := h.taxonomia.UpdateStatus(ctx, id, condominioID, UpdateStatusInput{
		Nome:         req.Nome,
		Ordem:        req.Ordem,
		Cor:          req.Cor,
		Finalizadora: req.Finalizadora,
	}); err != nil {
		handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) handleDeactivateStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	condominioID, ok := condominioFromContext(ctx, w)
	if !ok {
		return
	}

	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.taxonomia.DeactivateStatus(ctx, id, condominioID); err != nil {
		handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) handleListSetores(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	condominioID, ok := condominioFromContext(ctx, w)
	if !ok {
		return
	}

	setores, err := h.taxonomia.ListSetores(ctx, condominioID)
	if err != nil {
		writeInternalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"setores": setores})
}

type setorRequest struct {
	Nome *string `json:"nome"`
}

func (h *Handler) handleCreateSetor(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	condominioID, ok := condominioFromContext(ctx, w)
	if !ok {
		return
	}

	var req setorRequest
	if !decodeBody(w, r, &req) {
		return
	}

	setor, err := h.taxonomia.CreateSetor(ctx, condominioID, CreateSetorInput{Nome: strValue(req.Nome)})
	if err != nil {
		handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, setor)
}

func (h *Handler) handleUpdateSetor(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	condominioID, ok := condominioFromContext(ctx, w)
	if !ok {
		return
	}

	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req setorRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := h.taxonomia.UpdateSetor(ctx, id, condominioID, UpdateSetorInput{Nome: req.Nome}); err != nil {
		handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) handleDeactivateSetor(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	condominioID, ok := condominioFromContext(ctx, w)
	if !ok {
		return
	}

	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.taxonomia.DeactivateSetor(ctx, id, condominioID); err != nil {
		handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ---- ordens ----

type ordemRequest struct {
	Titulo       *string    `json:"titulo"`
	Descricao    *string    `json:"descricao"`
	CategoriaID  *uuid.UUID `json:"categoria_id"`
	PrioridadeID *uuid.UUID `json:"prioridade_id"`
	StatusID     *uuid.UUID `json:"status_id"`
	SetorID      *uuid.UUID `json:"setor_id"`

	LocalEndereco  *string  `json:"local_endereco"`
	LocalDescricao *string  `json:"local_descricao"`
	Latitude       *float64 `json:"latitude"`
	Longitude      *float64 `json:"longitude"`

	TempoEstimadoDias    *int     `json:"tempo_estimado_dias"`
	TempoEstimadoHoras   *int     `json:"tempo_estimado_horas"`
	TempoEstimadoMinutos *int     `json:"tempo_estimado_minutos"`
	ValorEstimado        *float64 `json:"valor_estimado"`
	ValorGasto           *float64 `json:"valor_gasto"`

	ManutencaoID *uuid.UUID `json:"manutencao_id"`

	SolicitanteID   *uuid.UUID `json:"solicitante_id"`
	SolicitanteNome *string    `json:"solicitante_nome"`
	SolicitanteTipo *string    `json:"solicitante_tipo"`
}

func (h *Handler) handleCreateOrdem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	condominioID, ok := condominioFromContext(ctx, w)
	if !ok {
		return
	}

	var req ordemRequest
	if !decodeBody(w, r, &req) {
		return
	}

	resultado, err := h.ordens.Create(ctx, CreateOrdemInput{
		CondominioID:         condominioID,
		Titulo:               strValue(req.Titulo),
		Descricao:            strValue(req.Descricao),
		CategoriaID:          req.CategoriaID,
		PrioridadeID:         req.PrioridadeID,
		StatusID:             req.StatusID,
		SetorID:              req.SetorID,
		LocalEndereco:        strValue(req.LocalEndereco),
		LocalDescricao:       strValue(req.LocalDescricao),
		Latitude:             req.Latitude,
		Longitude:            req.Longitude,
		TempoEstimadoDias:    req.TempoEstimadoDias,
		TempoEstimadoHoras:   req.TempoEstimadoHoras,
		TempoEstimadoMinutos: req.TempoEstimadoMinutos,
		ValorEstimado:        req.ValorEstimado,
		ManutencaoID:         req.ManutencaoID,
		SolicitanteID:        req.SolicitanteID,
		SolicitanteNome:      strValue(req.SolicitanteNome),
		SolicitanteTipo:      strValue(req.SolicitanteTipo),
	}, autorFromContext(ctx))
	if err != nil {
		handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, resultado)
}

func (h *Handler) handleListOrdens(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	condominioID, ok := condominioFromContext(ctx, w)
	if !ok {
		return
	}

	filter := OrdemFilter{
		CondominioID: condominioID,
		Busca:        r.URL.Query().Get("busca"),
	}
	filter.StatusID = queryUUID(r, "status_id")
	filter.CategoriaID = queryUUID(r, "categoria_id")
	filter.PrioridadeID = queryUUID(r, "prioridade_id")
	filter.SetorID = queryUUID(r, "setor_id")
	if limit, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil {
		filter.Limit = limit
	}
	if offset, err := strconv.Atoi(r.URL.Query().Get("offset")); err == nil {
		filter.Offset = offset
	}

	ordens, err := h.ordens.List(ctx, filter)
	if err != nil {
		writeInternalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"ordens": ordens})
}

func (h *Handler) handleGetOrdem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	condominioID, ok := condominioFromContext(ctx, w)
	if !ok {
		return
	}

	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	detalhe, err := h.ordens.Get(ctx, id, condominioID)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, detalhe)
}

func (h *Handler) handleUpdateOrdem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	condominioID, ok := condominioFromContext(ctx, w)
	if !ok {
		return
	}

	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req ordemRequest
	if !decodeBody(w, r, &req) {
		return
	}

	ordem, err := h.ordens.Update(ctx, id, condominioID, UpdateOrdemInput{
		Titulo:               req.Titulo,
		Descricao:            req.Descricao,
		CategoriaID:          req.CategoriaID,
		PrioridadeID:         req.PrioridadeID,
		StatusID:             req.StatusID,
		SetorID:              req.SetorID,
		LocalEndereco:        req.LocalEndereco,
		LocalDescricao:       req.LocalDescricao,
		TempoEstimadoDias:    req.TempoEstimadoDias,
		TempoEstimadoHoras:   req.TempoEstimadoHoras,
		TempoEstimadoMinutos: req.TempoEstimadoMinutos,
		ValorEstimado:        req.ValorEstimado,
		ValorGasto:           req.ValorGasto,
	}, autorFromContext(ctx))
	if err != nil {
		handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, ordem)
}

func (h *Handler) handleDeleteOrdem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	condominioID, ok := condominioFromContext(ctx, w)
	if !ok {
		return
	}

	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.ordens.Delete(ctx, id, condominioID); err != nil {
		writeInternalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) handleIniciar(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	condominioID, ok := condominioFromContext(ctx, w)
	if !ok {
		return
	}

	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.ordens.StartWork(ctx, id, condominioID, autorFromContext(ctx)); err != nil {
		handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "iniciada"})
}

func (h *Handler) handleFinalizar(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	condominioID, ok := condominioFromContext(ctx, w)
	if !ok {
		return
	}

	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	minutos, err := h.ordens.FinishWork(ctx, id, condominioID, autorFromContext(ctx))
	if err != nil {
		handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"status": "finalizada", "tempo_gasto_minutos": minutos})
}

type localizacaoRequest struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Endereco  string   `json:"endereco"`
}

func (h *Handler) handleLocalizacao(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	condominioID, ok := condominioFromContext(ctx, w)
	if !ok {
		return
	}

	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req localizacaoRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := h.ordens.UpdateLocation(ctx, id, condominioID, req.Latitude, req.Longitude, req.Endereco, autorFromContext(ctx)); err != nil {
		handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type toggleChatRequest struct {
	Ativo bool `json:"ativo"`
}

func (h *Handler) handleToggleChat(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	condominioID, ok := condominioFromContext(ctx, w)
	if !ok {
		return
	}

	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req toggleChatRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := h.ordens.ToggleChat(ctx, id, condominioID, req.Ativo); err != nil {
		handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"chat_ativo": req.Ativo})
}

type comentarioRequest struct {
	Texto string `json:"texto"`
}

func (h *Handler) handleComentar(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	condominioID, ok := condominioFromContext(ctx, w)
	if !ok {
		return
	}

	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req comentarioRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := h.ordens.Comentar(ctx, id, condominioID, req.Texto, autorFromContext(ctx)); err != nil {
		handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"status": "ok"})
}

func (h *Handler) handleTimeline(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	condominioID, ok := condominioFromContext(ctx, w)
	if !ok {
		return
	}

	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	eventos, err := h.ordens.Timeline(ctx, id, condominioID)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"timeline": eventos})
}

type imagemRequest struct {
	URL       string `json:"url"`
	Tipo      string `json:"tipo"`
	Descricao string `json:"descricao"`
	Posicao   int    `json:"posicao"`
}

func (h *Handler) handleAddImagem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	condominioID, ok := condominioFromContext(ctx, w)
	if !ok {
		return
	}

	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req imagemRequest
	if !decodeBody(w, r, &req) {
		return
	}

	imagem, err := h.ordens.AddImagem(ctx, id, condominioID, CreateImagemInput{
		URL:       req.URL,
		Tipo:      req.Tipo,
		Descricao: req.Descricao,
		Posicao:   req.Posicao,
	}, autorFromContext(ctx))
	if err != nil {
		handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, imagem)
}

// ---- responsáveis ----

type responsavelRequest struct {
	Nome      string     `json:"nome"`
	Funcao    string     `json:"funcao"`
	Telefone  string     `json:"telefone"`
	Email     string     `json:"email"`
	UsuarioID *uuid.UUID `json:"usuario_id"`
	Principal bool       `json:"principal"`
}

func (h *Handler) handleListResponsaveis(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	condominioID, ok := condominioFromContext(ctx, w)
	if !ok {
		return
	}

	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	responsaveis, err := h.recursos.ListResponsaveis(ctx, id, condominioID)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"responsaveis": responsaveis})
}

func (h *Handler) handleAddResponsavel(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	condominioID, ok := condominioFromContext(ctx, w)
	if !ok {
		return
	}

	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req responsavelRequest
	if !decodeBody(w, r, &req) {
		return
	}

	responsavel, err := h.recursos.AddResponsavel(ctx, id, condominioID, CreateResponsavelInput{
		Nome:      req.Nome,
		Funcao:    req.Funcao,
		Telefone:  req.Telefone,
		Email:     req.Email,
		UsuarioID: req.UsuarioID,
		Principal: req.Principal,
	}, autorFromContext(ctx))
	if err != nil {
		handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, responsavel)
}

func (h *Handler) handleRemoveResponsavel(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	condominioID, ok := condominioFromContext(ctx, w)
	if !ok {
		return
	}

	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	respID, ok := pathUUID(w, r, "respID")
	if !ok {
		return
	}

	if err := h.recursos.RemoveResponsavel(ctx, respID, id, condominioID, autorFromContext(ctx)); err != nil {
		handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ---- materiais ----

type materialRequest struct {
	Nome           string   `json:"nome"`
	Descricao      string   `json:"descricao"`
	Quantidade     *float64 `json:"quantidade"`
	Unidade        string   `json:"unidade"`
	EmEstoque      bool     `json:"em_estoque"`
	PrecisaComprar bool     `json:"precisa_comprar"`
	ObsCompra      string   `json:"obs_compra"`
	ValorUnitario  *float64 `json:"valor_unitario"`
}

func (h *Handler) handleListMateriais(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	condominioID, ok := condominioFromContext(ctx, w)
	if !ok {
		return
	}

	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	materiais, err := h.recursos.ListMateriais(ctx, id, condominioID)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"materiais": materiais})
}

func (h *Handler) handleAddMaterial(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	condominioID, ok := condominioFromContext(ctx, w)
	if !ok {
		return
	}

	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req materialRequest
	if !decodeBody(w, r, &req) {
		return
	}

	material, err := h.recursos.AddMaterial(ctx, id, condominioID, CreateMaterialInput{
		Nome:           req.Nome,
		Descricao:      req.Descricao,
		Quantidade:     req.Quantidade,
		Unidade:        req.Unidade,
		EmEstoque:      req.EmEstoque,
		PrecisaComprar: req.PrecisaComprar,
		ObsCompra:      req.ObsCompra,
		ValorUnitario:  req.ValorUnitario,
	}, autorFromContext(ctx))
	if err != nil {
		handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, material)
}

func (h *Handler) handleRemoveMaterial(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	condominioID, ok := condominioFromContext(ctx, w)
	if !ok {
		return
	}

	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	materialID, ok := pathUUID(w, r, "materialID")
	if !ok {
		return
	}

	if err := h.recursos.RemoveMaterial(ctx, materialID, id, condominioID, autorFromContext(ctx)); err != nil {
		handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ---- orçamentos ----

type orcamentoRequest struct {
	Fornecedor string     `json:"fornecedor"`
	Descricao  string     `json:"descricao"`
	Valor      float64    `json:"valor"`
	ValidoAte  *time.Time `json:"valido_ate"`
	AnexoURL   string     `json:"anexo_url"`
}

func (h *Handler) handleListOrcamentos(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	condominioID, ok := condominioFromContext(ctx, w)
	if !ok {
		return
	}

	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	orcamentos, err := h.orcamentos.List(ctx, id, condominioID)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"orcamentos": orcamentos})
}

func (h *Handler) handleAddOrcamento(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	condominioID, ok := condominioFromContext(ctx, w)
	if !ok {
		return
	}

	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req orcamentoRequest
	if !decodeBody(w, r, &req) {
		return
	}

	orcamento, err := h.orcamentos.Add(ctx, id, condominioID, CreateOrcamentoInput{
		Fornecedor: req.Fornecedor,
		Descricao:  req.Descricao,
		Valor:      req.Valor,
		ValidoAte:  req.ValidoAte,
		AnexoURL:   req.AnexoURL,
	}, autorFromContext(ctx))
	if err != nil {
		handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, orcamento)
}

func (h *Handler) handleAprovarOrcamento(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	condominioID, ok := condominioFromContext(ctx, w)
	if !ok {
		return
	}

	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	orcamentoID, ok := pathUUID(w, r, "orcamentoID")
	if !ok {
		return
	}

	orcamento, err := h.orcamentos.Approve(ctx, orcamentoID, id, condominioID, autorFromContext(ctx))
	if err != nil {
		handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, orcamento)
}

type recusaRequest struct {
	Motivo string `json:"motivo"`
}

func (h *Handler) handleRecusarOrcamento(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	condominioID, ok := condominioFromContext(ctx, w)
	if !ok {
		return
	}

	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	orcamentoID, ok := pathUUID(w, r, "orcamentoID")
	if !ok {
		return
	}

	var req recusaRequest
	if !decodeBody(w, r, &req) {
		return
	}

	orcamento, err := h.orcamentos.Reject(ctx, orcamentoID, id, condominioID, req.Motivo, autorFromContext(ctx))
	if err != nil {
		handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, orcamento)
}

func (h *Handler) handleRemoveOrcamento(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	condominioID, ok := condominioFromContext(ctx, w)
	if !ok {
		return
	}

	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	orcamentoID, ok := pathUUID(w, r, "orcamentoID")
	if !ok {
		return
	}

	if err := h.orcamentos.Remove(ctx, orcamentoID, id, condominioID, autorFromContext(ctx)); err != nil {
		handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ---- chat interno ----

type mensagemRequest struct {
	Mensagem     string `json:"mensagem"`
	AnexoURL     string `json:"anexo_url"`
	AnexoNome    string `json:"anexo_nome"`
	AnexoTipo    string `json:"anexo_tipo"`
	AnexoTamanho *int64 `json:"anexo_tamanho"`
	Nome         string `json:"nome"`
}

func (r mensagemRequest) input() CreateMensagemInput {
	return CreateMensagemInput{
		Mensagem:     r.Mensagem,
		AnexoURL:     r.AnexoURL,
		AnexoNome:    r.AnexoNome,
		AnexoTipo:    r.AnexoTipo,
		AnexoTamanho: r.AnexoTamanho,
	}
}

func (h *Handler) handleListMensagens(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	condominioID, ok := condominioFromContext(ctx, w)
	if !ok {
		return
	}

	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	mensagens, err := h.chat.ListMensagens(ctx, id, condominioID)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"mensagens": mensagens})
}

func (h *Handler) handleSendMensagem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	condominioID, ok := condominioFromContext(ctx, w)
	if !ok {
		return
	}

	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req mensagemRequest
	if !decodeBody(w, r, &req) {
		return
	}

	mensagem, err := h.chat.SendMessage(ctx, id, condominioID, autorFromContext(ctx), req.input())
	if err != nil {
		handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, mensagem)
}

// ---- estatísticas ----

func (h *Handler) handleEstatisticas(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	condominioID, ok := condominioFromContext(ctx, w)
	if !ok {
		return
	}

	resumo, err := h.estatisticas.Resumo(ctx, condominioID)
	if err != nil {
		writeInternalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resumo)
}

// ---- rotas públicas ----

func (h *Handler) handlePublicChat(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	token := chi.URLParam(r, "token")

	chat, err := h.chat.ResolveByChatToken(ctx, token)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, chat)
}

func (h *Handler) handlePublicSendMensagem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	token := chi.URLParam(r, "token")

	var req mensagemRequest
	if !decodeBody(w, r, &req) {
		return
	}

	mensagem, err := h.chat.SendMessageByToken(ctx, token, req.Nome, req.input())
	if err != nil {
		handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, mensagem)
}

func (h *Handler) handlePublicOrdem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	token := chi.URLParam(r, "token")

	ordem, err := h.chat.ResolveByShareToken(ctx, token)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, ordem)
}

// ---- helpers ----

func condominioFromContext(ctx context.Context, w http.ResponseWriter) (uuid.UUID, bool) {
	id, err := uuid.Parse(httpmiddleware.GetCondominio(ctx))
	if err != nil {
		writeError(w, http.StatusUnauthorized, "AUTH", "condomínio inválido no token", nil)
		return uuid.Nil, false
	}
	return id, true
}

func autorFromContext(ctx context.Context) Autor {
	autor := Autor{Nome: httpmiddleware.GetNome(ctx)}
	if id, err := uuid.Parse(httpmiddleware.GetSubject(ctx)); err == nil {
		autor.ID = &id
	}
	return autor
}

func pathUUID(w http.ResponseWriter, r *http.Request, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, param))
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION", "identificador inválido", nil)
		return uuid.Nil, false
	}
	return id, true
}

func queryUUID(r *http.Request, param string) *uuid.UUID {
	raw := r.URL.Query().Get(param)
	if raw == "" {
		return nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil
	}
	return &id
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION", "corpo inválido", nil)
		return false
	}
	return true
}

func strValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func handleDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrValidacao):
		writeError(w, http.StatusBadRequest, "VALIDATION", err.Error(), nil)
	case errors.Is(err, ErrNaoEncontrado):
		writeError(w, http.StatusNotFound, "NOT_FOUND", "registro não encontrado", nil)
	default:
		writeInternalError(w, err)
	}
}

func writeInternalError(w http.ResponseWriter, err error) {
	log.Error().Err(err).Msg("ordem handler error")
	writeError(w, http.StatusInternalServerError, "INTERNAL", "erro interno", nil)
}

// Helpers de resposta JSON compatíveis com o resto do projeto.
type successEnvelope struct {
	Data  any `json:"data"`
	Error any `json:"error"`
}

type errorEnvelope struct {
	Data  any            `json:"data"`
	Error *errorResponse `json:"error"`
}

type errorResponse struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(successEnvelope{Data: payload, Error: nil})
}

func writeError(w http.ResponseWriter, status int, code, message string, details interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorEnvelope{Data: nil, Error: &errorResponse{Code: code, Message: message, Details: details}})
}
