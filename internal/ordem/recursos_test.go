package ordem

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
)

func criaOrdemDeTeste(t *testing.T, repo *memRepo) (uuid.UUID, uuid.UUID) {
	t.Helper()
	condominioID := uuid.New()
	svc := novoServico(repo)
	resultado, err := svc.Create(context.Background(), CreateOrdemInput{
		CondominioID: condominioID,
		Titulo:       "Manutenção geral",
	}, Autor{Nome: "Síndico"})
	if err != nil {
		t.Fatalf("create ordem: %v", err)
	}
	return resultado.ID, condominioID
}

func ultimoEvento(t *testing.T, repo *memRepo, ordemID uuid.UUID) EventoTimeline {
	t.Helper()
	eventos, _ := repo.ListEventos(context.Background(), ordemID)
	if len(eventos) == 0 {
		t.Fatal("timeline vazia")
	}
	return eventos[len(eventos)-1]
}

func TestAddRemoveResponsavel(t *testing.T) {
	repo := newMemRepo()
	svc := NewRecursosService(repo)
	ctx := context.Background()
	ordemID, condominioID := criaOrdemDeTeste(t, repo)

	if _, err := svc.AddResponsavel(ctx, ordemID, condominioID, CreateResponsavelInput{}, Autor{}); !errors.Is(err, ErrValidacao) {
		t.Fatalf("responsável sem nome deveria falhar, obtido %v", err)
	}

	resp, err := svc.AddResponsavel(ctx, ordemID, condominioID, CreateResponsavelInput{Nome: "João", Funcao: "Eletricista"}, Autor{Nome: "Síndico"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	ev := ultimoEvento(t, repo, ordemID)
	if ev.Tipo != EventoResponsavelAdicionado {
		t.Fatalf("tipo = %q, esperado responsavel_adicionado", ev.Tipo)
	}
	if ev.Descricao != "Responsável João adicionado" {
		t.Fatalf("descrição = %q", ev.Descricao)
	}

	if err := svc.RemoveResponsavel(ctx, resp.ID, ordemID, condominioID, Autor{}); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if ev := ultimoEvento(t, repo, ordemID); ev.Tipo != EventoResponsavelRemovido {
		t.Fatalf("tipo = %q, esperado responsavel_removido", ev.Tipo)
	}

	restantes, _ := svc.ListResponsaveis(ctx, ordemID, condominioID)
	if len(restantes) != 0 {
		t.Fatalf("responsáveis restantes: %d", len(restantes))
	}
}

func TestAddMaterialCalculaValorTotal(t *testing.T) {
	repo := newMemRepo()
	svc := NewRecursosService(repo)
	ctx := context.Background()
	ordemID, condominioID := criaOrdemDeTeste(t, repo)

	quantidade := 3.0
	valorUnitario := 12.5
	mat, err := svc.AddMaterial(ctx, ordemID, condominioID, CreateMaterialInput{
		Nome:          "Lâmpada LED",
		Quantidade:    &quantidade,
		ValorUnitario: &valorUnitario,
	}, Autor{})
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	if mat.ValorTotal == nil || *mat.ValorTotal != 37.5 {
		t.Fatalf("valor total = %v, esperado 37.5", mat.ValorTotal)
	}
	if ev := ultimoEvento(t, repo, ordemID); ev.Tipo != EventoMaterialAdicionado {
		t.Fatalf("tipo = %q, esperado material_adicionado", ev.Tipo)
	}

	// sem quantidade ou valor unitário o total fica em aberto
	semPreco, err := svc.AddMaterial(ctx, ordemID, condominioID, CreateMaterialInput{Nome: "Fita isolante"}, Autor{})
	if err != nil {
		t.Fatalf("add sem preço: %v", err)
	}
	if semPreco.ValorTotal != nil {
		t.Fatalf("valor total deveria ser nil, obtido %v", *semPreco.ValorTotal)
	}

	if err := svc.RemoveMaterial(ctx, mat.ID, ordemID, condominioID, Autor{}); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if ev := ultimoEvento(t, repo, ordemID); ev.Tipo != EventoMaterialRemovido {
		t.Fatalf("tipo = %q, esperado material_removido", ev.Tipo)
	}
}

func TestRecursosOrdemInexistente(t *testing.T) {
	repo := newMemRepo()
	svc := NewRecursosService(repo)
	ctx := context.Background()

	if _, err := svc.AddResponsavel(ctx, uuid.New(), uuid.New(), CreateResponsavelInput{Nome: "X"}, Autor{}); !errors.Is(err, ErrNaoEncontrado) {
		t.Fatalf("esperado ErrNaoEncontrado, obtido %v", err)
	}
	if _, err := svc.AddMaterial(ctx, uuid.New(), uuid.New(), CreateMaterialInput{Nome: "X"}, Autor{}); !errors.Is(err, ErrNaoEncontrado) {
		t.Fatalf("esperado ErrNaoEncontrado, obtido %v", err)
	}
}
