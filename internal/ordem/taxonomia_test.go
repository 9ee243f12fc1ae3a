package ordem

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestListStatusSemeiaPadroes(t *testing.T) {
	repo := newMemRepo()
	svc := NewTaxonomiaService(repo)
	ctx := context.Background()
	condominioID := uuid.New()

	status, err := svc.ListStatus(ctx, condominioID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(status) != 7 {
		t.Fatalf("esperados 7 status padrão, obtidos %d", len(status))
	}
	if status[0].Nome != "Aberta" {
		t.Fatalf("primeiro status = %q, esperado Aberta", status[0].Nome)
	}

	finalizadoras := map[string]bool{}
	for _, st := range status {
		if st.Finalizadora {
			finalizadoras[st.Nome] = true
		}
	}
	if len(finalizadoras) != 2 || !finalizadoras["Concluída"] || !finalizadoras["Cancelada"] {
		t.Fatalf("finalizadoras incorretas: %v", finalizadoras)
	}

	// segunda listagem não deve semear de novo
	if _, err := svc.ListStatus(ctx, condominioID); err != nil {
		t.Fatalf("relist: %v", err)
	}
	if repo.seedCalls["status"] != 1 {
		t.Fatalf("seed executado %d vezes, esperado 1", repo.seedCalls["status"])
	}
}

func TestListCategoriasSemeiaPadroes(t *testing.T) {
	repo := newMemRepo()
	svc := NewTaxonomiaService(repo)
	ctx := context.Background()

	categorias, err := svc.ListCategorias(ctx, uuid.New())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(categorias) != 8 {
		t.Fatalf("esperadas 8 categorias padrão, obtidas %d", len(categorias))
	}
}

func TestListPrioridadesESetoresSemeiamPadroes(t *testing.T) {
	repo := newMemRepo()
	svc := NewTaxonomiaService(repo)
	ctx := context.Background()
	condominioID := uuid.New()

	prioridades, err := svc.ListPrioridades(ctx, condominioID)
	if err != nil {
		t.Fatalf("prioridades: %v", err)
	}
	if len(prioridades) != 4 {
		t.Fatalf("esperadas 4 prioridades, obtidas %d", len(prioridades))
	}
	if prioridades[0].Nome != "Baixa" || prioridades[3].Nome != "Urgente" {
		t.Fatalf("ordem de prioridades incorreta: %+v", prioridades)
	}

	setores, err := svc.ListSetores(ctx, condominioID)
	if err != nil {
		t.Fatalf("setores: %v", err)
	}
	if len(setores) != 6 {
		t.Fatalf("esperados 6 setores, obtidos %d", len(setores))
	}
}

func TestSeedIsoladoPorCondominio(t *testing.T) {
	repo := newMemRepo()
	svc := NewTaxonomiaService(repo)
	ctx := context.Background()

	a, _ := svc.ListCategorias(ctx, uuid.New())
	b, _ := svc.ListCategorias(ctx, uuid.New())

	vistos := map[uuid.UUID]bool{}
	for _, c := range a {
		vistos[c.ID] = true
	}
	for _, c := range b {
		if vistos[c.ID] {
			t.Fatal("categorias compartilhadas entre condomínios")
		}
	}
}

func TestCreateTaxonomiaValidaNome(t *testing.T) {
	repo := newMemRepo()
	svc := NewTaxonomiaService(repo)
	ctx := context.Background()
	condominioID := uuid.New()

	if _, err := svc.CreateCategoria(ctx, condominioID, CreateCategoriaInput{Nome: "  "}); !errors.Is(err, ErrValidacao) {
		t.Fatalf("categoria sem nome deveria falhar, obtido %v", err)
	}
	if _, err := svc.CreateStatus(ctx, condominioID, CreateStatusInput{}); !errors.Is(err, ErrValidacao) {
		t.Fatalf("status sem nome deveria falhar, obtido %v", err)
	}
	if _, err := svc.CreateSetor(ctx, condominioID, CreateSetorInput{Nome: "Telhado"}); err != nil {
		t.Fatalf("setor válido: %v", err)
	}
}

func TestDeactivateCategoriaSomeDaListagem(t *testing.T) {
	repo := newMemRepo()
	svc := NewTaxonomiaService(repo)
	ctx := context.Background()
	condominioID := uuid.New()

	categorias, _ := svc.ListCategorias(ctx, condominioID)
	alvo := categorias[0]

	if err := svc.DeactivateCategoria(ctx, alvo.ID, condominioID); err != nil {
		t.Fatalf("deactivate: %v", err)
	}

	depois, _ := svc.ListCategorias(ctx, condominioID)
	for _, c := range depois {
		if c.ID == alvo.ID {
			t.Fatal("categoria desativada continua listada")
		}
	}
	if len(depois) != len(categorias)-1 {
		t.Fatalf("esperadas %d categorias, obtidas %d", len(categorias)-1, len(depois))
	}
}
