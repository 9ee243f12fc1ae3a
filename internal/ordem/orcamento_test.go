package ordem

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestOrcamentoCicloCompleto(t *testing.T) {
	repo := newMemRepo()
	svc := NewOrcamentoService(repo)
	ctx := context.Background()
	ordemID, condominioID := criaOrdemDeTeste(t, repo)

	if _, err := svc.Add(ctx, ordemID, condominioID, CreateOrcamentoInput{Valor: 0}, Autor{}); !errors.Is(err, ErrValidacao) {
		t.Fatalf("valor zero deveria falhar, obtido %v", err)
	}

	orc, err := svc.Add(ctx, ordemID, condominioID, CreateOrcamentoInput{Fornecedor: "Eletro Silva", Valor: 150}, Autor{})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if orc.Aprovado != nil {
		t.Fatal("proposta nova deveria estar pendente")
	}
	if ev := ultimoEvento(t, repo, ordemID); ev.Tipo != EventoOrcamentoAdicionado {
		t.Fatalf("tipo = %q, esperado orcamento_adicionado", ev.Tipo)
	}

	aprovado, err := svc.Approve(ctx, orc.ID, ordemID, condominioID, Autor{Nome: "Síndico"})
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if aprovado.Aprovado == nil || !*aprovado.Aprovado {
		t.Fatal("proposta não ficou aprovada")
	}
	if aprovado.AprovadoPor == nil || *aprovado.AprovadoPor != "Síndico" || aprovado.AprovadoEm == nil {
		t.Fatalf("metadados de aprovação ausentes: %+v", aprovado)
	}
	if ev := ultimoEvento(t, repo, ordemID); ev.Tipo != EventoOrcamentoAprovado {
		t.Fatalf("tipo = %q, esperado orcamento_aprovado", ev.Tipo)
	}
}

func TestOrcamentosAprovadosCoexistem(t *testing.T) {
	repo := newMemRepo()
	svc := NewOrcamentoService(repo)
	ctx := context.Background()
	ordemID, condominioID := criaOrdemDeTeste(t, repo)

	a, _ := svc.Add(ctx, ordemID, condominioID, CreateOrcamentoInput{Valor: 100}, Autor{})
	b, _ := svc.Add(ctx, ordemID, condominioID, CreateOrcamentoInput{Valor: 200}, Autor{})

	if _, err := svc.Approve(ctx, a.ID, ordemID, condominioID, Autor{}); err != nil {
		t.Fatalf("approve a: %v", err)
	}
	if _, err := svc.Approve(ctx, b.ID, ordemID, condominioID, Autor{}); err != nil {
		t.Fatalf("approve b: %v", err)
	}

	propostas, _ := svc.List(ctx, ordemID, condominioID)
	aprovadas := 0
	for _, p := range propostas {
		if p.Aprovado != nil && *p.Aprovado {
			aprovadas++
		}
	}
	if aprovadas != 2 {
		t.Fatalf("aprovar uma proposta não deve desaprovar outra; aprovadas = %d", aprovadas)
	}
}

func TestRejectComMotivo(t *testing.T) {
	repo := newMemRepo()
	svc := NewOrcamentoService(repo)
	ctx := context.Background()
	ordemID, condominioID := criaOrdemDeTeste(t, repo)

	orc, _ := svc.Add(ctx, ordemID, condominioID, CreateOrcamentoInput{Valor: 500}, Autor{})

	rejeitado, err := svc.Reject(ctx, orc.ID, ordemID, condominioID, "acima do teto aprovado", Autor{})
	if err != nil {
		t.Fatalf("reject: %v", err)
	}
	if rejeitado.Aprovado == nil || *rejeitado.Aprovado {
		t.Fatal("proposta não ficou rejeitada")
	}
	if rejeitado.MotivoRecusa != "acima do teto aprovado" {
		t.Fatalf("motivo = %q", rejeitado.MotivoRecusa)
	}

	ev := ultimoEvento(t, repo, ordemID)
	if ev.Tipo != EventoOrcamentoRejeitado {
		t.Fatalf("tipo = %q, esperado orcamento_rejeitado", ev.Tipo)
	}
	if ev.Descricao != "Orçamento de R$ 500.00 rejeitado: acima do teto aprovado" {
		t.Fatalf("descrição = %q", ev.Descricao)
	}
}

func TestRemoveOrcamento(t *testing.T) {
	repo := newMemRepo()
	svc := NewOrcamentoService(repo)
	ctx := context.Background()
	ordemID, condominioID := criaOrdemDeTeste(t, repo)

	orc, _ := svc.Add(ctx, ordemID, condominioID, CreateOrcamentoInput{Valor: 80}, Autor{})

	if err := svc.Remove(ctx, orc.ID, ordemID, condominioID, Autor{}); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if ev := ultimoEvento(t, repo, ordemID); ev.Tipo != EventoOrcamentoRemovido {
		t.Fatalf("tipo = %q, esperado orcamento_removido", ev.Tipo)
	}

	if err := svc.Remove(ctx, orc.ID, ordemID, condominioID, Autor{}); !errors.Is(err, ErrNaoEncontrado) {
		t.Fatalf("remover de novo deveria falhar com ErrNaoEncontrado, obtido %v", err)
	}

	if _, err := svc.Approve(ctx, uuid.New(), ordemID, condominioID, Autor{}); !errors.Is(err, ErrNaoEncontrado) {
		t.Fatalf("aprovar inexistente deveria falhar, obtido %v", err)
	}
}
