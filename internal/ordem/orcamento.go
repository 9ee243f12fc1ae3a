package ordem

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type orcamentoRepository interface {
	GetOrdem(ctx context.Context, id, condominioID uuid.UUID) (*OrdemServico, error)
	InsertEvento(ctx context.Context, ev EventoTimeline) error

	InsertOrcamento(ctx context.Context, ordemID uuid.UUID, input CreateOrcamentoInput) (*Orcamento, error)
	GetOrcamento(ctx context.Context, id, ordemID uuid.UUID) (*Orcamento, error)
	AprovarOrcamento(ctx context.Context, id, ordemID uuid.UUID, aprovadoPor string, aprovadoEm time.Time) (*Orcamento, error)
	RejeitarOrcamento(ctx context.Context, id, ordemID uuid.UUID, motivo string) (*Orcamento, error)
	DeleteOrcamento(ctx context.Context, id, ordemID uuid.UUID) error
	ListOrcamentos(ctx context.Context, ordemID uuid.UUID) ([]Orcamento, error)
}

// OrcamentoService administra propostas de orçamento e sua aprovação.
// Mais de uma proposta pode estar aprovada ao mesmo tempo; não há
// exclusão mútua.
type OrcamentoService struct {
	repo orcamentoRepository
}

// NewOrcamentoService cria o serviço de orçamentos.
func NewOrcamentoService(repo orcamentoRepository) *OrcamentoService {
	return &OrcamentoService{repo: repo}
}

// Add registra proposta com aprovação pendente.
func (s *OrcamentoService) Add(ctx context.Context, ordemID, condominioID uuid.UUID, input CreateOrcamentoInput, autor Autor) (*Orcamento, error) {
	if input.Valor <= 0 {
		return nil, validationError("valor do orçamento deve ser positivo")
	}

	if _, err := s.repo.GetOrdem(ctx, ordemID, condominioID); err != nil {
		return nil, err
	}

	orc, err := s.repo.InsertOrcamento(ctx, ordemID, input)
	if err != nil {
		return nil, err
	}

	descricao := fmt.Sprintf("Orçamento de R$ %.2f adicionado", orc.Valor)
	if orc.Fornecedor != "" {
		descricao = fmt.Sprintf("Orçamento de R$ %.2f (%s) adicionado", orc.Valor, orc.Fornecedor)
	}
	if err := s.repo.InsertEvento(ctx, NovoEvento(ordemID, EventoOrcamentoAdicionado, descricao, autor)); err != nil {
		return nil, err
	}
	return orc, nil
}

// Approve marca a proposta como aprovada pelo autor.
func (s *OrcamentoService) Approve(ctx context.Context, id, ordemID, condominioID uuid.UUID, autor Autor) (*Orcamento, error) {
	if _, err := s.repo.GetOrdem(ctx, ordemID, condominioID); err != nil {
		return nil, err
	}
	if _, err := s.repo.GetOrcamento(ctx, id, ordemID); err != nil {
		return nil, err
	}

	orc, err := s.repo.AprovarOrcamento(ctx, id, ordemID, autor.Nome, time.Now())
	if err != nil {
		return nil, err
	}

	ev := NovoEvento(ordemID, EventoOrcamentoAprovado,
		fmt.Sprintf("Orçamento de R$ %.2f aprovado", orc.Valor), autor)
	if err := s.repo.InsertEvento(ctx, ev); err != nil {
		return nil, err
	}
	return orc, nil
}

// Reject marca a proposta como rejeitada, com motivo opcional.
func (s *OrcamentoService) Reject(ctx context.Context, id, ordemID, condominioID uuid.UUID, motivo string, autor Autor) (*Orcamento, error) {
	if _, err := s.repo.GetOrdem(ctx, ordemID, condominioID); err != nil {
		return nil, err
	}
	if _, err := s.repo.GetOrcamento(ctx, id, ordemID); err != nil {
		return nil, err
	}

	orc, err := s.repo.RejeitarOrcamento(ctx, id, ordemID, motivo)
	if err != nil {
		return nil, err
	}

	descricao := fmt.Sprintf("Orçamento de R$ %.2f rejeitado", orc.Valor)
	if motivo != "" {
		descricao += ": " + motivo
	}
	if err := s.repo.InsertEvento(ctx, NovoEvento(ordemID, EventoOrcamentoRejeitado, descricao, autor)); err != nil {
		return nil, err
	}
	return orc, nil
}

// Remove exclui a proposta em definitivo.
func (s *OrcamentoService) Remove(ctx context.Context, id, ordemID, condominioID uuid.UUID, autor Autor) error {
	if _, err := s.repo.GetOrdem(ctx, ordemID, condominioID); err != nil {
		return err
	}

	orc, err := s.repo.GetOrcamento(ctx, id, ordemID)
	if err != nil {
		return err
	}

	if err := s.repo.DeleteOrcamento(ctx, id, ordemID); err != nil {
		return err
	}

	ev := NovoEvento(ordemID, EventoOrcamentoRemovido,
		fmt.Sprintf("Orçamento de R$ %.2f removido", orc.Valor), autor)
	return s.repo.InsertEvento(ctx, ev)
}

// List lista propostas da ordem.
func (s *OrcamentoService) List(ctx context.Context, ordemID, condominioID uuid.UUID) ([]Orcamento, error) {
	if _, err := s.repo.GetOrdem(ctx, ordemID, condominioID); err != nil {
		return nil, err
	}
	return s.repo.ListOrcamentos(ctx, ordemID)
}
