package ordem

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
)

var protocoloRe = regexp.MustCompile(`^\d{6}$`)

func novoServico(repo *memRepo) *Service {
	return NewService(repo, NewTaxonomiaService(repo), nil)
}

func TestCreateOrdem(t *testing.T) {
	repo := newMemRepo()
	svc := novoServico(repo)
	ctx := context.Background()
	condominioID := uuid.New()

	resultado, err := svc.Create(ctx, CreateOrdemInput{
		CondominioID: condominioID,
		Titulo:       "Troca de lâmpada",
	}, Autor{Nome: "Síndico"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if !protocoloRe.MatchString(resultado.Protocolo) {
		t.Fatalf("protocolo %q fora do formato de 6 dígitos", resultado.Protocolo)
	}

	ordem, err := repo.GetOrdem(ctx, resultado.ID, condominioID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	if ordem.ChatAtivo {
		t.Fatal("chat deveria nascer desligado")
	}
	if ordem.ChatToken == "" || ordem.ShareToken == "" {
		t.Fatal("tokens públicos não gerados")
	}
	if ordem.ChatToken == ordem.ShareToken {
		t.Fatal("tokens de chat e compartilhamento devem ser distintos")
	}

	if ordem.StatusID == nil {
		t.Fatal("status inicial não atribuído")
	}
	status, err := repo.GetStatus(ctx, *ordem.StatusID)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if status.Nome != "Aberta" {
		t.Fatalf("status inicial = %q, esperado Aberta", status.Nome)
	}

	eventos, _ := repo.ListEventos(ctx, ordem.ID)
	if len(eventos) != 1 || eventos[0].Tipo != EventoCriacao {
		t.Fatalf("esperado único evento creation, obtido %+v", eventos)
	}
}

func TestCreateOrdemSemTitulo(t *testing.T) {
	repo := newMemRepo()
	svc := novoServico(repo)

	_, err := svc.Create(context.Background(), CreateOrdemInput{CondominioID: uuid.New()}, Autor{})
	if !errors.Is(err, ErrValidacao) {
		t.Fatalf("esperado ErrValidacao, obtido %v", err)
	}
}

func TestUpdateStatusGeraEvento(t *testing.T) {
	repo := newMemRepo()
	svc := novoServico(repo)
	ctx := context.Background()
	condominioID := uuid.New()

	resultado, err := svc.Create(ctx, CreateOrdemInput{CondominioID: condominioID, Titulo: "Vazamento"}, Autor{})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	status, _ := repo.ListStatus(ctx, condominioID)
	var emExecucao Status
	for _, st := range status {
		if st.Nome == "Em Execução" {
			emExecucao = st
		}
	}

	if _, err := svc.Update(ctx, resultado.ID, condominioID, UpdateOrdemInput{StatusID: &emExecucao.ID}, Autor{Nome: "Zelador"}); err != nil {
		t.Fatalf("update: %v", err)
	}

	eventos, _ := repo.ListEventos(ctx, resultado.ID)
	ultimo := eventos[len(eventos)-1]
	if ultimo.Tipo != EventoStatusAlterado {
		t.Fatalf("tipo = %q, esperado status_alterado", ultimo.Tipo)
	}
	if ultimo.DadosNovos["status_id"] != emExecucao.ID.String() {
		t.Fatalf("dados novos sem status_id: %+v", ultimo.DadosNovos)
	}
	if ultimo.DadosAnteriores["status_id"] == ultimo.DadosNovos["status_id"] {
		t.Fatal("dados anteriores deveriam registrar o status antigo")
	}
}

func TestUpdateMesmoStatusNaoGeraEvento(t *testing.T) {
	repo := newMemRepo()
	svc := novoServico(repo)
	ctx := context.Background()
	condominioID := uuid.New()

	resultado, err := svc.Create(ctx, CreateOrdemInput{CondominioID: condominioID, Titulo: "Pintura"}, Autor{})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	ordem, _ := repo.GetOrdem(ctx, resultado.ID, condominioID)
	if _, err := svc.Update(ctx, resultado.ID, condominioID, UpdateOrdemInput{StatusID: ordem.StatusID}, Autor{}); err != nil {
		t.Fatalf("update: %v", err)
	}

	eventos, _ := repo.ListEventos(ctx, resultado.ID)
	if len(eventos) != 1 {
		t.Fatalf("status inalterado não deveria gerar evento, timeline: %d eventos", len(eventos))
	}
}

func TestStartFinishWork(t *testing.T) {
	repo := newMemRepo()
	svc := novoServico(repo)
	ctx := context.Background()
	condominioID := uuid.New()

	resultado, err := svc.Create(ctx, CreateOrdemInput{CondominioID: condominioID, Titulo: "Reparo"}, Autor{})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.StartWork(ctx, resultado.ID, condominioID, Autor{}); err != nil {
		t.Fatalf("start: %v", err)
	}

	// retroage o início para simular 90 minutos de execução
	inicio := time.Now().Add(-90 * time.Minute)
	repo.ordens[resultado.ID].IniciadoEm = &inicio

	minutos, err := svc.FinishWork(ctx, resultado.ID, condominioID, Autor{})
	if err != nil {
		t.Fatalf("finish: %v", err)
	}
	if minutos != 90 {
		t.Fatalf("minutos = %d, esperado 90", minutos)
	}

	ordem, _ := repo.GetOrdem(ctx, resultado.ID, condominioID)
	if ordem.TempoGastoMinutos != 90 || ordem.FinalizadoEm == nil {
		t.Fatalf("fim não persistido: %+v", ordem)
	}

	eventos, _ := repo.ListEventos(ctx, resultado.ID)
	tipos := make([]EventoTipo, 0, len(eventos))
	for _, ev := range eventos {
		tipos = append(tipos, ev.Tipo)
	}
	esperado := []EventoTipo{EventoCriacao, EventoInicioServico, EventoFimServico}
	if len(tipos) != len(esperado) {
		t.Fatalf("timeline = %v", tipos)
	}
	for i := range esperado {
		if tipos[i] != esperado[i] {
			t.Fatalf("timeline fora de ordem: %v", tipos)
		}
	}
}

func TestFinishSemInicio(t *testing.T) {
	repo := newMemRepo()
	svc := novoServico(repo)
	ctx := context.Background()
	condominioID := uuid.New()

	resultado, err := svc.Create(ctx, CreateOrdemInput{CondominioID: condominioID, Titulo: "Ajuste"}, Autor{})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	minutos, err := svc.FinishWork(ctx, resultado.ID, condominioID, Autor{})
	if err != nil {
		t.Fatalf("finish: %v", err)
	}
	if minutos != 0 {
		t.Fatalf("minutos = %d, esperado 0 sem início", minutos)
	}
}

func TestDeleteIdempotente(t *testing.T) {
	repo := newMemRepo()
	svc := novoServico(repo)
	ctx := context.Background()
	condominioID := uuid.New()

	resultado, err := svc.Create(ctx, CreateOrdemInput{CondominioID: condominioID, Titulo: "Remoção"}, Autor{})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.Delete(ctx, resultado.ID, condominioID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := svc.Delete(ctx, resultado.ID, condominioID); err != nil {
		t.Fatalf("delete repetido deveria ser no-op: %v", err)
	}

	if _, err := repo.GetOrdem(ctx, resultado.ID, condominioID); !errors.Is(err, ErrNaoEncontrado) {
		t.Fatal("ordem deveria ter sido removida")
	}
}

func TestOrdemDeOutroCondominioInvisivel(t *testing.T) {
	repo := newMemRepo()
	svc := novoServico(repo)
	ctx := context.Background()
	condominioID := uuid.New()
	outro := uuid.New()

	resultado, err := svc.Create(ctx, CreateOrdemInput{CondominioID: condominioID, Titulo: "Portaria"}, Autor{})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// leitura, mutação e exclusão com o condomínio errado respondem
	// como se a ordem não existisse
	if _, err := svc.Get(ctx, resultado.ID, outro); !errors.Is(err, ErrNaoEncontrado) {
		t.Fatalf("get cruzado deveria falhar com ErrNaoEncontrado, obtido %v", err)
	}
	titulo := "invadido"
	if _, err := svc.Update(ctx, resultado.ID, outro, UpdateOrdemInput{Titulo: &titulo}, Autor{}); !errors.Is(err, ErrNaoEncontrado) {
		t.Fatalf("update cruzado deveria falhar, obtido %v", err)
	}
	if err := svc.StartWork(ctx, resultado.ID, outro, Autor{}); !errors.Is(err, ErrNaoEncontrado) {
		t.Fatalf("start cruzado deveria falhar, obtido %v", err)
	}
	if _, err := svc.Timeline(ctx, resultado.ID, outro); !errors.Is(err, ErrNaoEncontrado) {
		t.Fatalf("timeline cruzada deveria falhar, obtido %v", err)
	}

	if err := svc.Delete(ctx, resultado.ID, outro); err != nil {
		t.Fatalf("delete cruzado deveria ser no-op silencioso: %v", err)
	}
	ordem, err := repo.GetOrdem(ctx, resultado.ID, condominioID)
	if err != nil {
		t.Fatalf("ordem sumiu após delete cruzado: %v", err)
	}
	if ordem.Titulo != "Portaria" {
		t.Fatalf("ordem alterada por outro condomínio: %q", ordem.Titulo)
	}
}

func TestComentarValidacao(t *testing.T) {
	repo := newMemRepo()
	svc := novoServico(repo)
	ctx := context.Background()
	condominioID := uuid.New()

	resultado, err := svc.Create(ctx, CreateOrdemInput{CondominioID: condominioID, Titulo: "Obs"}, Autor{})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.Comentar(ctx, resultado.ID, condominioID, "   ", Autor{}); !errors.Is(err, ErrValidacao) {
		t.Fatalf("comentário vazio deveria falhar, obtido %v", err)
	}

	if err := svc.Comentar(ctx, resultado.ID, condominioID, "verificar de novo amanhã", Autor{Nome: "Zelador"}); err != nil {
		t.Fatalf("comentar: %v", err)
	}

	eventos, _ := repo.ListEventos(ctx, resultado.ID)
	ultimo := eventos[len(eventos)-1]
	if ultimo.Tipo != EventoComentario || ultimo.Descricao != "verificar de novo amanhã" {
		t.Fatalf("evento de comentário incorreto: %+v", ultimo)
	}
}

func TestAddImagemTipoInvalido(t *testing.T) {
	repo := newMemRepo()
	svc := novoServico(repo)
	ctx := context.Background()
	condominioID := uuid.New()

	resultado, err := svc.Create(ctx, CreateOrdemInput{CondominioID: condominioID, Titulo: "Foto"}, Autor{})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	img, err := svc.AddImagem(ctx, resultado.ID, condominioID, CreateImagemInput{URL: "https://cdn/x.jpg", Tipo: "panorama"}, Autor{})
	if err != nil {
		t.Fatalf("imagem: %v", err)
	}
	if img.Tipo != ImagemOutra {
		t.Fatalf("tipo = %q, esperado fallback %q", img.Tipo, ImagemOutra)
	}

	if _, err := svc.AddImagem(ctx, resultado.ID, condominioID, CreateImagemInput{}, Autor{}); !errors.Is(err, ErrValidacao) {
		t.Fatalf("imagem sem url deveria falhar, obtido %v", err)
	}

	eventos, _ := repo.ListEventos(ctx, resultado.ID)
	ultimo := eventos[len(eventos)-1]
	if ultimo.Tipo != EventoFotoAdicionada {
		t.Fatalf("tipo = %q, esperado foto_adicionada", ultimo.Tipo)
	}
}

func TestFormatDuracao(t *testing.T) {
	casos := []struct {
		minutos  int
		esperado string
	}{
		{0, "menos de 1 minuto"},
		{-5, "menos de 1 minuto"},
		{1, "1 minuto"},
		{59, "59 minutos"},
		{60, "1 hora"},
		{90, "1 hora e 30 minutos"},
		{1440, "1 dia"},
		{1565, "1 dia, 2 horas e 5 minutos"},
	}

	for _, c := range casos {
		if got := FormatDuracao(c.minutos); got != c.esperado {
			t.Errorf("FormatDuracao(%d) = %q, esperado %q", c.minutos, got, c.esperado)
		}
	}
}

func TestCicloCompletoDaOrdem(t *testing.T) {
	repo := newMemRepo()
	svc := novoServico(repo)
	orcamentos := NewOrcamentoService(repo)
	ctx := context.Background()
	condominioID := uuid.New()

	resultado, err := svc.Create(ctx, CreateOrdemInput{
		CondominioID: condominioID,
		Titulo:       "Troca de lâmpada",
	}, Autor{Nome: "Síndico"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !protocoloRe.MatchString(resultado.Protocolo) {
		t.Fatalf("protocolo inválido: %q", resultado.Protocolo)
	}

	// condomínio novo: a criação semeia os status e aponta para o primeiro
	statusList, _ := repo.ListStatus(ctx, condominioID)
	if len(statusList) != 7 {
		t.Fatalf("status semeados = %d, esperado 7", len(statusList))
	}
	ordem, _ := repo.GetOrdem(ctx, resultado.ID, condominioID)
	if ordem.StatusID == nil || *ordem.StatusID != statusList[0].ID {
		t.Fatalf("ordem não abriu no status inicial: %+v", ordem.StatusID)
	}

	if err := svc.StartWork(ctx, resultado.ID, condominioID, Autor{}); err != nil {
		t.Fatalf("start: %v", err)
	}
	inicio := time.Now().Add(-2 * time.Minute)
	repo.ordens[resultado.ID].IniciadoEm = &inicio

	minutos, err := svc.FinishWork(ctx, resultado.ID, condominioID, Autor{})
	if err != nil {
		t.Fatalf("finish: %v", err)
	}
	if minutos <= 0 {
		t.Fatalf("minutos = %d, esperado > 0", minutos)
	}

	orc, err := orcamentos.Add(ctx, resultado.ID, condominioID, CreateOrcamentoInput{Fornecedor: "Elétrica Luz", Valor: 150.00}, Autor{})
	if err != nil {
		t.Fatalf("orçamento: %v", err)
	}
	if _, err := orcamentos.Approve(ctx, orc.ID, resultado.ID, condominioID, Autor{Nome: "Síndico"}); err != nil {
		t.Fatalf("aprovação: %v", err)
	}

	eventos, _ := repo.ListEventos(ctx, resultado.ID)
	esperados := []EventoTipo{EventoCriacao, EventoInicioServico, EventoFimServico, EventoOrcamentoAdicionado, EventoOrcamentoAprovado}
	if len(eventos) != len(esperados) {
		t.Fatalf("timeline com %d eventos, esperado %d", len(eventos), len(esperados))
	}
	for i, tipo := range esperados {
		if eventos[i].Tipo != tipo {
			t.Fatalf("evento %d = %q, esperado %q", i, eventos[i].Tipo, tipo)
		}
	}
}
