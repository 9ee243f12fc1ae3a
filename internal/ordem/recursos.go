package ordem

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

type recursosRepository interface {
	GetOrdem(ctx context.Context, id, condominioID uuid.UUID) (*OrdemServico, error)
	InsertEvento(ctx context.Context, ev EventoTimeline) error

	InsertResponsavel(ctx context.Context, ordemID uuid.UUID, input CreateResponsavelInput) (*Responsavel, error)
	GetResponsavel(ctx context.Context, id, ordemID uuid.UUID) (*Responsavel, error)
	DeleteResponsavel(ctx context.Context, id, ordemID uuid.UUID) error
	ListResponsaveis(ctx context.Context, ordemID uuid.UUID) ([]Responsavel, error)

	InsertMaterial(ctx context.Context, ordemID uuid.UUID, input CreateMaterialInput, valorTotal *float64) (*Material, error)
	GetMaterial(ctx context.Context, id, ordemID uuid.UUID) (*Material, error)
	DeleteMaterial(ctx context.Context, id, ordemID uuid.UUID) error
	ListMateriais(ctx context.Context, ordemID uuid.UUID) ([]Material, error)
}

// RecursosService administra responsáveis e materiais de uma ordem.
type RecursosService struct {
	repo recursosRepository
}

// NewRecursosService cria o serviço de recursos.
func NewRecursosService(repo recursosRepository) *RecursosService {
	return &RecursosService{repo: repo}
}

// AddResponsavel vincula responsável e registra na timeline.
func (s *RecursosService) AddResponsavel(ctx context.Context, ordemID, condominioID uuid.UUID, input CreateResponsavelInput, autor Autor) (*Responsavel, error) {
	if strings.TrimSpace(input.Nome) == "" {
		return nil, validationError("nome do responsável obrigatório")
	}

	if _, err := s.repo.GetOrdem(ctx, ordemID, condominioID); err != nil {
		return nil, err
	}

	resp, err := s.repo.InsertResponsavel(ctx, ordemID, input)
	if err != nil {
		return nil, err
	}

	ev := NovoEvento(ordemID, EventoResponsavelAdicionado,
		fmt.Sprintf("Responsável %s adicionado", resp.Nome), autor)
	if err := s.repo.InsertEvento(ctx, ev); err != nil {
		return nil, err
	}
	return resp, nil
}

// RemoveResponsavel desvincula responsável e registra na timeline.
func (s *RecursosService) RemoveResponsavel(ctx context.Context, id, ordemID, condominioID uuid.UUID, autor Autor) error {
	if _, err := s.repo.GetOrdem(ctx, ordemID, condominioID); err != nil {
		return err
	}

	resp, err := s.repo.GetResponsavel(ctx, id, ordemID)
	if err != nil {
		return err
	}

	if err := s.repo.DeleteResponsavel(ctx, id, ordemID); err != nil {
		return err
	}

	ev := NovoEvento(ordemID, EventoResponsavelRemovido,
		fmt.Sprintf("Responsável %s removido", resp.Nome), autor)
	return s.repo.InsertEvento(ctx, ev)
}

// ListResponsaveis lista responsáveis da ordem.
func (s *RecursosService) ListResponsaveis(ctx context.Context, ordemID, condominioID uuid.UUID) ([]Responsavel, error) {
	if _, err := s.repo.GetOrdem(ctx, ordemID, condominioID); err != nil {
		return nil, err
	}
	return s.repo.ListResponsaveis(ctx, ordemID)
}

// AddMaterial registra material necessário. O valor total é calculado na
// inserção quando quantidade e valor unitário existem; alterações
// posteriores não recalculam.
func (s *RecursosService) AddMaterial(ctx context.Context, ordemID, condominioID uuid.UUID, input CreateMaterialInput, autor Autor) (*Material, error) {
	if strings.TrimSpace(input.Nome) == "" {
		return nil, validationError("nome do material obrigatório")
	}

	if _, err := s.repo.GetOrdem(ctx, ordemID, condominioID); err != nil {
		return nil, err
	}

	var valorTotal *float64
	if input.Quantidade != nil && input.ValorUnitario != nil {
		total := *input.Quantidade * *input.ValorUnitario
		valorTotal = &total
	}

	mat, err := s.repo.InsertMaterial(ctx, ordemID, input, valorTotal)
	if err != nil {
		return nil, err
	}

	ev := NovoEvento(ordemID, EventoMaterialAdicionado,
		fmt.Sprintf("Material %s adicionado%s", mat.Nome, resumoQuantidade(mat)), autor)
	if err := s.repo.InsertEvento(ctx, ev); err != nil {
		return nil, err
	}
	return mat, nil
}

// RemoveMaterial exclui material e registra na timeline.
func (s *RecursosService) RemoveMaterial(ctx context.Context, id, ordemID, condominioID uuid.UUID, autor Autor) error {
	if _, err := s.repo.GetOrdem(ctx, ordemID, condominioID); err != nil {
		return err
	}

	mat, err := s.repo.GetMaterial(ctx, id, ordemID)
	if err != nil {
		return err
	}

	if err := s.repo.DeleteMaterial(ctx, id, ordemID); err != nil {
		return err
	}

	ev := NovoEvento(ordemID, EventoMaterialRemovido,
		fmt.Sprintf("Material %s removido", mat.Nome), autor)
	return s.repo.InsertEvento(ctx, ev)
}

// ListMateriais lista materiais da ordem.
func (s *RecursosService) ListMateriais(ctx context.Context, ordemID, condominioID uuid.UUID) ([]Material, error) {
	if _, err := s.repo.GetOrdem(ctx, ordemID, condominioID); err != nil {
		return nil, err
	}
	return s.repo.ListMateriais(ctx, ordemID)
}

func resumoQuantidade(m *Material) string {
	if m.Quantidade == nil {
		return ""
	}
	unidade := m.Unidade
	if unidade == "" {
		unidade = "un"
	}
	return fmt.Sprintf(" (%g %s)", *m.Quantidade, unidade)
}
