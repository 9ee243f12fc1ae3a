package ordem

import (
	"context"

	"github.com/google/uuid"
)

type estatisticasRepository interface {
	ListOrdensPorCondominio(ctx context.Context, condominioID uuid.UUID) ([]OrdemServico, error)
	ListStatusTodos(ctx context.Context, condominioID uuid.UUID) ([]Status, error)
	ListCategoriasTodas(ctx context.Context, condominioID uuid.UUID) ([]Categoria, error)
}

// EstatisticasService agrega números do condomínio em memória. O volume
// de ordens por condomínio é pequeno o bastante para dispensar agregação
// no banco.
type EstatisticasService struct {
	repo estatisticasRepository
}

// NewEstatisticasService cria o serviço de estatísticas.
func NewEstatisticasService(repo estatisticasRepository) *EstatisticasService {
	return &EstatisticasService{repo: repo}
}

// ContagemNomeada é uma fatia das contagens com o rótulo legível.
type ContagemNomeada struct {
	ID    uuid.UUID `json:"id"`
	Nome  string    `json:"nome"`
	Total int       `json:"total"`
}

// Estatisticas resume o estado atual das ordens do condomínio.
type Estatisticas struct {
	Total             int     `json:"total"`
	Abertas           int     `json:"abertas"`
	Concluidas        int     `json:"concluidas"`
	ValorEstimado     float64 `json:"valor_estimado_total"`
	ValorGasto        float64 `json:"valor_gasto_total"`
	TempoMedioMinutos float64 `json:"tempo_medio_minutos"`

	PorStatus    []ContagemNomeada `json:"por_status"`
	PorCategoria []ContagemNomeada `json:"por_categoria"`
}

// Resumo calcula as estatísticas do condomínio. Ordens sem status ou
// categoria não entram nas fatias, mas contam no total.
func (s *EstatisticasService) Resumo(ctx context.Context, condominioID uuid.UUID) (*Estatisticas, error) {
	ordens, err := s.repo.ListOrdensPorCondominio(ctx, condominioID)
	if err != nil {
		return nil, err
	}

	// inclui inativos: ordem presa em taxonomia desativada continua
	// classificada e rotulada por ela
	status, err := s.repo.ListStatusTodos(ctx, condominioID)
	if err != nil {
		return nil, err
	}
	categorias, err := s.repo.ListCategoriasTodas(ctx, condominioID)
	if err != nil {
		return nil, err
	}

	finalizadoras := make(map[uuid.UUID]bool, len(status))
	porStatus := make(map[uuid.UUID]int)
	porCategoria := make(map[uuid.UUID]int)
	for _, st := range status {
		finalizadoras[st.ID] = st.Finalizadora
	}

	resumo := Estatisticas{
		Total:        len(ordens),
		PorStatus:    []ContagemNomeada{},
		PorCategoria: []ContagemNomeada{},
	}

	var somaMinutos, concluidasComTempo int
	for _, o := range ordens {
		if o.StatusID != nil {
			porStatus[*o.StatusID]++
			if finalizadoras[*o.StatusID] {
				resumo.Concluidas++
			} else {
				resumo.Abertas++
			}
		} else {
			resumo.Abertas++
		}
		if o.CategoriaID != nil {
			porCategoria[*o.CategoriaID]++
		}
		if o.ValorEstimado != nil {
			resumo.ValorEstimado += *o.ValorEstimado
		}
		if o.ValorGasto != nil {
			resumo.ValorGasto += *o.ValorGasto
		}
		if o.IniciadoEm != nil && o.FinalizadoEm != nil {
			somaMinutos += o.TempoGastoMinutos
			concluidasComTempo++
		}
	}

	if concluidasComTempo > 0 {
		resumo.TempoMedioMinutos = float64(somaMinutos) / float64(concluidasComTempo)
	}

	for _, st := range status {
		if total := porStatus[st.ID]; total > 0 {
			resumo.PorStatus = append(resumo.PorStatus, ContagemNomeada{ID: st.ID, Nome: st.Nome, Total: total})
		}
	}
	for _, c := range categorias {
		if total := porCategoria[c.ID]; total > 0 {
			resumo.PorCategoria = append(resumo.PorCategoria, ContagemNomeada{ID: c.ID, Nome: c.Nome, Total: total})
		}
	}

	return &resumo, nil
}
