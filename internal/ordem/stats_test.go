package ordem

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestResumoEstatisticas(t *testing.T) {
	repo := newMemRepo()
	ordens := novoServico(repo)
	stats := NewEstatisticasService(repo)
	ctx := context.Background()
	condominioID := uuid.New()

	valor1, valor2 := 100.0, 250.0
	a, err := ordens.Create(ctx, CreateOrdemInput{CondominioID: condominioID, Titulo: "Elétrica hall", ValorEstimado: &valor1}, Autor{})
	if err != nil {
		t.Fatalf("create a: %v", err)
	}
	if _, err := ordens.Create(ctx, CreateOrdemInput{CondominioID: condominioID, Titulo: "Pintura fachada", ValorEstimado: &valor2}, Autor{}); err != nil {
		t.Fatalf("create b: %v", err)
	}

	// conclui a primeira ordem com 60 minutos de execução
	status, _ := repo.ListStatus(ctx, condominioID)
	var concluida Status
	for _, st := range status {
		if st.Nome == "Concluída" {
			concluida = st
		}
	}
	inicio := time.Now().Add(-60 * time.Minute)
	repo.ordens[a.ID].IniciadoEm = &inicio
	if _, err := ordens.FinishWork(ctx, a.ID, condominioID, Autor{}); err != nil {
		t.Fatalf("finish: %v", err)
	}
	if _, err := ordens.Update(ctx, a.ID, condominioID, UpdateOrdemInput{StatusID: &concluida.ID}, Autor{}); err != nil {
		t.Fatalf("update: %v", err)
	}

	resumo, err := stats.Resumo(ctx, condominioID)
	if err != nil {
		t.Fatalf("resumo: %v", err)
	}

	if resumo.Total != 2 {
		t.Fatalf("total = %d, esperado 2", resumo.Total)
	}
	if resumo.Concluidas != 1 || resumo.Abertas != 1 {
		t.Fatalf("abertas/concluídas = %d/%d, esperado 1/1", resumo.Abertas, resumo.Concluidas)
	}
	if resumo.ValorEstimado != 350 {
		t.Fatalf("valor estimado = %v, esperado 350", resumo.ValorEstimado)
	}
	if resumo.TempoMedioMinutos != 60 {
		t.Fatalf("tempo médio = %v, esperado 60", resumo.TempoMedioMinutos)
	}

	porStatus := map[string]int{}
	for _, c := range resumo.PorStatus {
		porStatus[c.Nome] = c.Total
	}
	if porStatus["Concluída"] != 1 || porStatus["Aberta"] != 1 {
		t.Fatalf("fatias por status incorretas: %v", porStatus)
	}

	// ordem de outro condomínio não entra na conta
	if _, err := ordens.Create(ctx, CreateOrdemInput{CondominioID: uuid.New(), Titulo: "Outro prédio"}, Autor{}); err != nil {
		t.Fatalf("create externo: %v", err)
	}
	resumo2, _ := stats.Resumo(ctx, condominioID)
	if resumo2.Total != 2 {
		t.Fatalf("total vazou entre condomínios: %d", resumo2.Total)
	}
}

func TestResumoCondominioVazio(t *testing.T) {
	repo := newMemRepo()
	stats := NewEstatisticasService(repo)

	resumo, err := stats.Resumo(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("resumo: %v", err)
	}
	if resumo.Total != 0 || resumo.TempoMedioMinutos != 0 {
		t.Fatalf("resumo vazio incorreto: %+v", resumo)
	}
	if resumo.PorStatus == nil || resumo.PorCategoria == nil {
		t.Fatal("fatias devem ser listas vazias, não nil")
	}
}

func TestResumoContaStatusDesativado(t *testing.T) {
	repo := newMemRepo()
	ordens := novoServico(repo)
	taxonomia := NewTaxonomiaService(repo)
	stats := NewEstatisticasService(repo)
	ctx := context.Background()
	condominioID := uuid.New()

	a, err := ordens.Create(ctx, CreateOrdemInput{CondominioID: condominioID, Titulo: "Troca de fechadura"}, Autor{})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	status, _ := repo.ListStatus(ctx, condominioID)
	var concluida Status
	for _, st := range status {
		if st.Nome == "Concluída" {
			concluida = st
		}
	}
	if _, err := ordens.Update(ctx, a.ID, condominioID, UpdateOrdemInput{StatusID: &concluida.ID}, Autor{}); err != nil {
		t.Fatalf("update: %v", err)
	}

	// desativar o status não pode reclassificar a ordem presa nele
	if err := taxonomia.DeactivateStatus(ctx, concluida.ID, condominioID); err != nil {
		t.Fatalf("deactivate: %v", err)
	}

	resumo, err := stats.Resumo(ctx, condominioID)
	if err != nil {
		t.Fatalf("resumo: %v", err)
	}
	if resumo.Concluidas != 1 || resumo.Abertas != 0 {
		t.Fatalf("abertas/concluídas = %d/%d, esperado 0/1", resumo.Abertas, resumo.Concluidas)
	}

	var fatia *ContagemNomeada
	for i := range resumo.PorStatus {
		if resumo.PorStatus[i].Nome == "Concluída" {
			fatia = &resumo.PorStatus[i]
		}
	}
	if fatia == nil || fatia.Total != 1 {
		t.Fatalf("fatia do status desativado ausente: %+v", resumo.PorStatus)
	}
}
