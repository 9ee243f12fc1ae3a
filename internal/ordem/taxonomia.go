package ordem

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

// Conjuntos padrão criados na primeira consulta de cada condomínio.
var (
	categoriasPadrao = []string{
		"Elétrica", "Hidráulica", "Estrutural", "Pintura", "Limpeza", "Jardinagem", "Elevadores", "Outros",
	}
	prioridadesPadrao = []string{"Baixa", "Média", "Alta", "Urgente"}
	statusPadrao      = []SeedStatusItem{
		{Nome: "Aberta"},
		{Nome: "Em Análise"},
		{Nome: "Aguardando Orçamento"},
		{Nome: "Orçamento Aprovado"},
		{Nome: "Em Execução"},
		{Nome: "Concluída", Finalizadora: true},
		{Nome: "Cancelada", Finalizadora: true},
	}
	setoresPadrao = []string{
		"Áreas Comuns", "Garagem", "Piscina", "Salão de Festas", "Portaria", "Fachada",
	}
)

type taxonomiaRepository interface {
	ListCategorias(ctx context.Context, condominioID uuid.UUID) ([]Categoria, error)
	CreateCategoria(ctx context.Context, condominioID uuid.UUID, input CreateCategoriaInput) (*Categoria, error)
	UpdateCategoria(ctx context.Context, id, condominioID uuid.UUID, input UpdateCategoriaInput) error
	DeactivateCategoria(ctx context.Context, id, condominioID uuid.UUID) error
	SeedCategorias(ctx context.Context, condominioID uuid.UUID, nomes []string) (bool, error)

	ListPrioridades(ctx context.Context, condominioID uuid.UUID) ([]Prioridade, error)
	CreatePrioridade(ctx context.Context, condominioID uuid.UUID, input CreatePrioridadeInput) (*Prioridade, error)
	UpdatePrioridade(ctx context.Context, id, condominioID uuid.UUID, input UpdatePrioridadeInput) error
	DeactivatePrioridade(ctx context.Context, id, condominioID uuid.UUID) error
	SeedPrioridades(ctx context.Context, condominioID uuid.UUID, nomes []string) (bool, error)

	ListStatus(ctx context.Context, condominioID uuid.UUID) ([]Status, error)
	CreateStatus(ctx context.Context, condominioID uuid.UUID, input CreateStatusInput) (*Status, error)
	UpdateStatus(ctx context.Context, id, condominioID uuid.UUID, input UpdateStatusInput) error
	DeactivateStatus(ctx context.Context, id, condominioID uuid.UUID) error
	SeedStatus(ctx context.Context, condominioID uuid.UUID, itens []SeedStatusItem) (bool, error)

	ListSetores(ctx context.Context, condominioID uuid.UUID) ([]Setor, error)
	CreateSetor(ctx context.Context, condominioID uuid.UUID, input CreateSetorInput) (*Setor, error)
	UpdateSetor(ctx context.Context, id, condominioID uuid.UUID, input UpdateSetorInput) error
	DeactivateSetor(ctx context.Context, id, condominioID uuid.UUID) error
	SeedSetores(ctx context.Context, condominioID uuid.UUID, nomes []string) (bool, error)
}

// TaxonomiaService administra os cadastros de categorias, prioridades,
// status e setores de cada condomínio.
type TaxonomiaService struct {
	repo taxonomiaRepository
}

// NewTaxonomiaService cria o serviço de taxonomia.
func NewTaxonomiaService(repo taxonomiaRepository) *TaxonomiaService {
	return &TaxonomiaService{repo: repo}
}

// ListCategorias lista categorias ativas, semeando os padrões na primeira consulta.
func (s *TaxonomiaService) ListCategorias(ctx context.Context, condominioID uuid.UUID) ([]Categoria, error) {
	itens, err := s.repo.ListCategorias(ctx, condominioID)
	if err != nil {
		return nil, err
	}
	if len(itens) > 0 {
		return itens, nil
	}

	if _, err := s.repo.SeedCategorias(ctx, condominioID, categoriasPadrao); err != nil {
		return nil, err
	}
	return s.repo.ListCategorias(ctx, condominioID)
}

// CreateCategoria cadastra categoria nova.
func (s *TaxonomiaService) CreateCategoria(ctx context.Context, condominioID uuid.UUID, input CreateCategoriaInput) (*Categoria, error) {
	if strings.TrimSpace(input.Nome) == "" {
		return nil, validationError("nome obrigatório")
	}
	return s.repo.CreateCategoria(ctx, condominioID, input)
}

// UpdateCategoria altera campos da categoria.
func (s *TaxonomiaService) UpdateCategoria(ctx context.Context, id, condominioID uuid.UUID, input UpdateCategoriaInput) error {
	if input.Nome != nil && strings.TrimSpace(*input.Nome) == "" {
		return validationError("nome obrigatório")
	}
	return s.repo.UpdateCategoria(ctx, id, condominioID, input)
}

// DeactivateCategoria desativa sem remover; ordens antigas seguem apontando.
func (s *TaxonomiaService) DeactivateCategoria(ctx context.Context, id, condominioID uuid.UUID) error {
	return s.repo.DeactivateCategoria(ctx, id, condominioID)
}

// ListPrioridades lista prioridades ativas por nível, semeando na primeira consulta.
func (s *TaxonomiaService) ListPrioridades(ctx context.Context, condominioID uuid.UUID) ([]Prioridade, error) {
	itens, err := s.repo.ListPrioridades(ctx, condominioID)
	if err != nil {
		return nil, err
	}
	if len(itens) > 0 {
		return itens, nil
	}

	if _, err := s.repo.SeedPrioridades(ctx, condominioID, prioridadesPadrao); err != nil {
		return nil, err
	}
	return s.repo.ListPrioridades(ctx, condominioID)
}

// CreatePrioridade cadastra prioridade nova.
func (s *TaxonomiaService) CreatePrioridade(ctx context.Context, condominioID uuid.UUID, input CreatePrioridadeInput) (*Prioridade, error) {
	if strings.TrimSpace(input.Nome) == "" {
		return nil, validationError("nome obrigatório")
	}
	return s.repo.CreatePrioridade(ctx, condominioID, input)
}

// UpdatePrioridade altera campos da prioridade.
func (s *TaxonomiaService) UpdatePrioridade(ctx context.Context, id, condominioID uuid.UUID, input UpdatePrioridadeInput) error {
	if input.Nome != nil && strings.TrimSpace(*input.Nome) == "" {
		return validationError("nome obrigatório")
	}
	return s.repo.UpdatePrioridade(ctx, id, condominioID, input)
}

// DeactivatePrioridade desativa sem remover.
func (s *TaxonomiaService) DeactivatePrioridade(ctx context.Context, id, condominioID uuid.UUID) error {
	return s.repo.DeactivatePrioridade(ctx, id, condominioID)
}

// ListStatus lista o fluxo ativo, semeando na primeira consulta.
func (s *TaxonomiaService) ListStatus(ctx context.Context, condominioID uuid.UUID) ([]Status, error) {
	itens, err := s.repo.ListStatus(ctx, condominioID)
	if err != nil {
		return nil, err
	}
	if len(itens) > 0 {
		return itens, nil
	}

	if _, err := s.repo.SeedStatus(ctx, condominioID, statusPadrao); err != nil {
		return nil, err
	}
	return s.repo.ListStatus(ctx, condominioID)
}

// CreateStatus cadastra status novo.
func (s *TaxonomiaService) CreateStatus(ctx context.Context, condominioID uuid.UUID, input CreateStatusInput) (*Status, error) {
	if strings.TrimSpace(input.Nome) == "" {
		return nil, validationError("nome obrigatório")
	}
	return s.repo.CreateStatus(ctx, condominioID, input)
}

// UpdateStatus altera campos do status.
func (s *TaxonomiaService) UpdateStatus(ctx context.Context, id, condominioID uuid.UUID, input UpdateStatusInput) error {
	if input.Nome != nil && strings.TrimSpace(*input.Nome) == "" {
		return validationError("nome obrigatório")
	}
	return s.repo.UpdateStatus(ctx, id, condominioID, input)
}

// DeactivateStatus desativa sem remover.
func (s *TaxonomiaService) DeactivateStatus(ctx context.Context, id, condominioID uuid.UUID) error {
	return s.repo.DeactivateStatus(ctx, id, condominioID)
}

// ListSetores lista setores ativos, semeando na primeira consulta.
func (s *TaxonomiaService) ListSetores(ctx context.Context, condominioID uuid.UUID) ([]Setor, error) {
	itens, err := s.repo.ListSetores(ctx, condominioID)
	if err != nil {
		return nil, err
	}
	if len(itens) > 0 {
		return itens, nil
	}

	if _, err := s.repo.SeedSetores(ctx, condominioID, setoresPadrao); err != nil {
		return nil, err
	}
	return s.repo.ListSetores(ctx, condominioID)
}

// CreateSetor cadastra setor novo.
func (s *TaxonomiaService) CreateSetor(ctx context.Context, condominioID uuid.UUID, input CreateSetorInput) (*Setor, error) {
	if strings.TrimSpace(input.Nome) == "" {
		return nil, validationError("nome obrigatório")
	}
	return s.repo.CreateSetor(ctx, condominioID, input)
}

// UpdateSetor altera campos do setor.
func (s *TaxonomiaService) UpdateSetor(ctx context.Context, id, condominioID uuid.UUID, input UpdateSetorInput) error {
	if input.Nome != nil && strings.TrimSpace(*input.Nome) == "" {
		return validationError("nome obrigatório")
	}
	return s.repo.UpdateSetor(ctx, id, condominioID, input)
}

// DeactivateSetor desativa sem remover.
func (s *TaxonomiaService) DeactivateSetor(ctx context.Context, id, condominioID uuid.UUID) error {
	return s.repo.DeactivateSetor(ctx, id, condominioID)
}
