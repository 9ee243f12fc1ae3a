package ordem

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/gestaopredial/condominio/internal/notify"
	"github.com/gestaopredial/condominio/internal/util"
)

type lifecycleRepository interface {
	CreateOrdem(ctx context.Context, o OrdemServico) (*OrdemServico, error)
	GetOrdem(ctx context.Context, id, condominioID uuid.UUID) (*OrdemServico, error)
	ListOrdens(ctx context.Context, filter OrdemFilter) ([]OrdemServico, error)
	UpdateOrdem(ctx context.Context, id, condominioID uuid.UUID, input UpdateOrdemInput) (*OrdemServico, error)
	SetInicio(ctx context.Context, id, condominioID uuid.UUID, t time.Time) error
	SetFim(ctx context.Context, id, condominioID uuid.UUID, t time.Time, minutos int) error
	SetLocalizacao(ctx context.Context, id, condominioID uuid.UUID, lat, long *float64, endereco string) error
	SetChatAtivo(ctx context.Context, id, condominioID uuid.UUID, ativo bool) error
	DeleteOrdem(ctx context.Context, id, condominioID uuid.UUID) (bool, error)

	GetStatus(ctx context.Context, id uuid.UUID) (*Status, error)

	InsertEvento(ctx context.Context, ev EventoTimeline) error
	ListEventos(ctx context.Context, ordemID uuid.UUID) ([]EventoTimeline, error)

	ListResponsaveis(ctx context.Context, ordemID uuid.UUID) ([]Responsavel, error)
	ListMateriais(ctx context.Context, ordemID uuid.UUID) ([]Material, error)
	ListOrcamentos(ctx context.Context, ordemID uuid.UUID) ([]Orcamento, error)
	InsertImagem(ctx context.Context, ordemID uuid.UUID, input CreateImagemInput) (*Imagem, error)
	ListImagens(ctx context.Context, ordemID uuid.UUID) ([]Imagem, error)
}

// Service orquestra o ciclo de vida da ordem de serviço. Toda mutação
// visível gera exatamente um evento na timeline.
type Service struct {
	repo      lifecycleRepository
	taxonomia *TaxonomiaService
	notifier  notify.Notifier
}

// NewService cria o serviço de ordens.
func NewService(repo lifecycleRepository, taxonomia *TaxonomiaService, notifier notify.Notifier) *Service {
	if notifier == nil {
		notifier = notify.NoopNotifier{}
	}
	return &Service{repo: repo, taxonomia: taxonomia, notifier: notifier}
}

// CriacaoResult devolve os identificadores visíveis da nova ordem.
type CriacaoResult struct {
	ID        uuid.UUID `json:"id"`
	Protocolo string    `json:"protocolo"`
}

// Create abre uma nova ordem de serviço.
func (s *Service) Create(ctx context.Context, input CreateOrdemInput, autor Autor) (*CriacaoResult, error) {
	if err := util.RequireString(input.Titulo, "título"); err != nil {
		return nil, validationError(err.Error())
	}

	statusID := input.StatusID
	if statusID == nil {
		// lista dispara a semeadura dos padrões em condomínio novo
		status, err := s.taxonomia.ListStatus(ctx, input.CondominioID)
		if err != nil {
			return nil, err
		}
		if len(status) > 0 {
			statusID = &status[0].ID
		}
	}

	protocolo, err := util.NovoProtocolo()
	if err != nil {
		return nil, err
	}
	chatToken, err := util.NovoTokenOpaco()
	if err != nil {
		return nil, err
	}
	shareToken, err := util.NovoTokenOpaco()
	if err != nil {
		return nil, err
	}

	ordem, err := s.repo.CreateOrdem(ctx, OrdemServico{
		CondominioID: input.CondominioID,
		Protocolo:    protocolo,
		Titulo:       input.Titulo,
		Descricao:    input.Descricao,
		CategoriaID:  input.CategoriaID,
		PrioridadeID: input.PrioridadeID,
		StatusID:     statusID,
		SetorID:      input.SetorID,

		LocalEndereco:  input.LocalEndereco,
		LocalDescricao: input.LocalDescricao,
		Latitude:       input.Latitude,
		Longitude:      input.Longitude,

		TempoEstimadoDias:    input.TempoEstimadoDias,
		TempoEstimadoHoras:   input.TempoEstimadoHoras,
		TempoEstimadoMinutos: input.TempoEstimadoMinutos,
		ValorEstimado:        input.ValorEstimado,

		ManutencaoID: input.ManutencaoID,

		SolicitanteID:   input.SolicitanteID,
		SolicitanteNome: input.SolicitanteNome,
		SolicitanteTipo: input.SolicitanteTipo,

		ChatToken:  chatToken,
		ChatAtivo:  false,
		ShareToken: shareToken,
	})
	if err != nil {
		return nil, err
	}

	ev := NovoEvento(ordem.ID, EventoCriacao,
		fmt.Sprintf("Ordem de serviço %s criada", ordem.Protocolo), autor)
	if err := s.repo.InsertEvento(ctx, ev); err != nil {
		return nil, err
	}

	return &CriacaoResult{ID: ordem.ID, Protocolo: ordem.Protocolo}, nil
}

// Get devolve a ordem com satélites e timeline.
func (s *Service) Get(ctx context.Context, id, condominioID uuid.UUID) (*OrdemDetalhe, error) {
	ordem, err := s.repo.GetOrdem(ctx, id, condominioID)
	if err != nil {
		return nil, err
	}

	detalhe := OrdemDetalhe{Ordem: *ordem}
	if detalhe.Responsaveis, err = s.repo.ListResponsaveis(ctx, id); err != nil {
		return nil, err
	}
	if detalhe.Materiais, err = s.repo.ListMateriais(ctx, id); err != nil {
		return nil, err
	}
	if detalhe.Orcamentos, err = s.repo.ListOrcamentos(ctx, id); err != nil {
		return nil, err
	}
	if detalhe.Imagens, err = s.repo.ListImagens(ctx, id); err != nil {
		return nil, err
	}
	if detalhe.Timeline, err = s.repo.ListEventos(ctx, id); err != nil {
		return nil, err
	}
	return &detalhe, nil
}

// List lista ordens do condomínio com filtros.
func (s *Service) List(ctx context.Context, filter OrdemFilter) ([]OrdemServico, error) {
	return s.repo.ListOrdens(ctx, filter)
}

// Update aplica patch parcial. Mudança de status gera evento próprio e
// notificação melhor-esforço ao solicitante.
func (s *Service) Update(ctx context.Context, id, condominioID uuid.UUID, input UpdateOrdemInput, autor Autor) (*OrdemServico, error) {
	anterior, err := s.repo.GetOrdem(ctx, id, condominioID)
	if err != nil {
		return nil, err
	}

	statusMudou := input.StatusID != nil &&
		(anterior.StatusID == nil || *anterior.StatusID != *input.StatusID)

	atualizada, err := s.repo.UpdateOrdem(ctx, id, condominioID, input)
	if err != nil {
		return nil, err
	}

	if statusMudou {
		novoStatus, err := s.repo.GetStatus(ctx, *input.StatusID)
		if err != nil {
			return nil, err
		}

		ev := NovoEvento(id, EventoStatusAlterado,
			fmt.Sprintf("Status alterado para %q", novoStatus.Nome), autor)
		ev.DadosAnteriores = map[string]any{"status_id": uuidOrNil(anterior.StatusID)}
		ev.DadosNovos = map[string]any{"status_id": input.StatusID.String()}
		if err := s.repo.InsertEvento(ctx, ev); err != nil {
			return nil, err
		}

		s.notificarSolicitante(ctx, atualizada, novoStatus.Nome)
	}

	return atualizada, nil
}

// Delete remove a ordem e todos os satélites. Repetir a exclusão é um
// no-op bem-sucedido.
func (s *Service) Delete(ctx context.Context, id, condominioID uuid.UUID) error {
	_, err := s.repo.DeleteOrdem(ctx, id, condominioID)
	return err
}

// StartWork grava o início da execução. Chamar de novo sobrescreve o instante.
func (s *Service) StartWork(ctx context.Context, id, condominioID uuid.UUID, autor Autor) error {
	agora := time.Now()
	if err := s.repo.SetInicio(ctx, id, condominioID, agora); err != nil {
		return err
	}

	return s.repo.InsertEvento(ctx, NovoEvento(id, EventoInicioServico, "Serviço iniciado", autor))
}

// FinishWork grava o fim da execução e devolve os minutos decorridos
// (zero quando o serviço nunca foi iniciado).
func (s *Service) FinishWork(ctx context.Context, id, condominioID uuid.UUID, autor Autor) (int, error) {
	ordem, err := s.repo.GetOrdem(ctx, id, condominioID)
	if err != nil {
		return 0, err
	}

	agora := time.Now()
	minutos := 0
	if ordem.IniciadoEm != nil && agora.After(*ordem.IniciadoEm) {
		minutos = int(agora.Sub(*ordem.IniciadoEm).Minutes())
	}

	if err := s.repo.SetFim(ctx, id, condominioID, agora, minutos); err != nil {
		return 0, err
	}

	ev := NovoEvento(id, EventoFimServico,
		fmt.Sprintf("Serviço finalizado em %s", FormatDuracao(minutos)), autor)
	if err := s.repo.InsertEvento(ctx, ev); err != nil {
		return 0, err
	}

	return minutos, nil
}

// UpdateLocation atualiza a geolocalização da ordem.
func (s *Service) UpdateLocation(ctx context.Context, id, condominioID uuid.UUID, lat, long *float64, endereco string, autor Autor) error {
	if err := s.repo.SetLocalizacao(ctx, id, condominioID, lat, long, endereco); err != nil {
		return err
	}

	return s.repo.InsertEvento(ctx, NovoEvento(id, EventoLocalizacaoAtualizada, "Localização atualizada", autor))
}

// ToggleChat liga/desliga o canal público de chat da ordem.
func (s *Service) ToggleChat(ctx context.Context, id, condominioID uuid.UUID, ativo bool) error {
	return s.repo.SetChatAtivo(ctx, id, condominioID, ativo)
}

// AddImagem vincula foto e registra na timeline.
func (s *Service) AddImagem(ctx context.Context, ordemID, condominioID uuid.UUID, input CreateImagemInput, autor Autor) (*Imagem, error) {
	if strings.TrimSpace(input.URL) == "" {
		return nil, validationError("url da imagem obrigatória")
	}
	if !imagemTipoValido(input.Tipo) {
		input.Tipo = ImagemOutra
	}

	if _, err := s.repo.GetOrdem(ctx, ordemID, condominioID); err != nil {
		return nil, err
	}

	img, err := s.repo.InsertImagem(ctx, ordemID, input)
	if err != nil {
		return nil, err
	}

	if err := s.repo.InsertEvento(ctx, NovoEvento(ordemID, EventoFotoAdicionada, "Foto adicionada", autor)); err != nil {
		return nil, err
	}
	return img, nil
}

// Comentar registra comentário avulso na timeline.
func (s *Service) Comentar(ctx context.Context, ordemID, condominioID uuid.UUID, texto string, autor Autor) error {
	texto = strings.TrimSpace(texto)
	if texto == "" {
		return validationError("comentário vazio")
	}

	if _, err := s.repo.GetOrdem(ctx, ordemID, condominioID); err != nil {
		return err
	}

	return s.repo.InsertEvento(ctx, NovoEvento(ordemID, EventoComentario, texto, autor))
}

// Timeline devolve a trilha de auditoria da ordem.
func (s *Service) Timeline(ctx context.Context, ordemID, condominioID uuid.UUID) ([]EventoTimeline, error) {
	if _, err := s.repo.GetOrdem(ctx, ordemID, condominioID); err != nil {
		return nil, err
	}
	return s.repo.ListEventos(ctx, ordemID)
}

// notificarSolicitante dispara push para o solicitante sem bloquear nem
// falhar a mutação que o originou.
func (s *Service) notificarSolicitante(ctx context.Context, ordem *OrdemServico, statusNome string) {
	if ordem.SolicitanteID == nil {
		return
	}

	usuarioID := *ordem.SolicitanteID
	msg := notify.Notificacao{
		Titulo:   "Ordem de serviço atualizada",
		Mensagem: fmt.Sprintf("A ordem %s agora está %q", ordem.Protocolo, statusNome),
		Link:     "/ordens/" + ordem.ID.String(),
	}

	go func() {
		nctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		if err := s.notifier.Notify(nctx, usuarioID, msg); err != nil {
			log.Warn().Err(err).Str("ordem", ordem.ID.String()).Msg("falha ao notificar solicitante")
		}
	}()
}

// FormatDuracao monta resumo legível tipo "1 dia, 2 horas e 5 minutos".
func FormatDuracao(minutos int) string {
	if minutos <= 0 {
		return "menos de 1 minuto"
	}

	dias := minutos / (24 * 60)
	horas := (minutos % (24 * 60)) / 60
	mins := minutos % 60

	var partes []string
	if dias == 1 {
		partes = append(partes, "1 dia")
	} else if dias > 1 {
		partes = append(partes, fmt.Sprintf("%d dias", dias))
	}
	if horas == 1 {
		partes = append(partes, "1 hora")
	} else if horas > 1 {
		partes = append(partes, fmt.Sprintf("%d horas", horas))
	}
	if mins == 1 {
		partes = append(partes, "1 minuto")
	} else if mins > 1 {
		partes = append(partes, fmt.Sprintf("%d minutos", mins))
	}

	switch len(partes) {
	case 1:
		return partes[0]
	case 2:
		return partes[0] + " e " + partes[1]
	default:
		return partes[0] + ", " + partes[1] + " e " + partes[2]
	}
}

func imagemTipoValido(tipo string) bool {
	switch tipo {
	case ImagemAntes, ImagemDurante, ImagemDepois, ImagemOrcamento, ImagemOutra:
		return true
	}
	return false
}

func uuidOrNil(id *uuid.UUID) any {
	if id == nil {
		return nil
	}
	return id.String()
}
