package ordem

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// memRepo implementa os contratos de repositório em memória para os
// testes de serviço e de handler.
type memRepo struct {
	ordens       map[uuid.UUID]*OrdemServico
	eventos      map[uuid.UUID][]EventoTimeline
	responsaveis map[uuid.UUID][]Responsavel
	materiais    map[uuid.UUID][]Material
	orcamentos   map[uuid.UUID][]Orcamento
	mensagens    map[uuid.UUID][]MensagemChat
	imagens      map[uuid.UUID][]Imagem

	categorias  map[uuid.UUID][]Categoria
	prioridades map[uuid.UUID][]Prioridade
	statusList  map[uuid.UUID][]Status
	setores     map[uuid.UUID][]Setor

	seedCalls map[string]int
}

func newMemRepo() *memRepo {
	return &memRepo{
		ordens:       map[uuid.UUID]*OrdemServico{},
		eventos:      map[uuid.UUID][]EventoTimeline{},
		responsaveis: map[uuid.UUID][]Responsavel{},
		materiais:    map[uuid.UUID][]Material{},
		orcamentos:   map[uuid.UUID][]Orcamento{},
		mensagens:    map[uuid.UUID][]MensagemChat{},
		imagens:      map[uuid.UUID][]Imagem{},
		categorias:   map[uuid.UUID][]Categoria{},
		prioridades:  map[uuid.UUID][]Prioridade{},
		statusList:   map[uuid.UUID][]Status{},
		setores:      map[uuid.UUID][]Setor{},
		seedCalls:    map[string]int{},
	}
}

// ---- ordens ----

func (m *memRepo) CreateOrdem(ctx context.Context, o OrdemServico) (*OrdemServico, error) {
	o.ID = uuid.New()
	o.CriadoEm = time.Now()
	o.AtualizadoEm = o.CriadoEm
	m.ordens[o.ID] = &o
	copia := o
	return &copia, nil
}

func (m *memRepo) GetOrdem(ctx context.Context, id, condominioID uuid.UUID) (*OrdemServico, error) {
	o, ok := m.ordens[id]
	if !ok || o.CondominioID != condominioID {
		return nil, ErrNaoEncontrado
	}
	copia := *o
	return &copia, nil
}

func (m *memRepo) GetOrdemPorChatToken(ctx context.Context, token string) (*OrdemServico, error) {
	for _, o := range m.ordens {
		if o.ChatToken == token {
			copia := *o
			return &copia, nil
		}
	}
	return nil, ErrNaoEncontrado
}

func (m *memRepo) GetOrdemPorShareToken(ctx context.Context, token string) (*OrdemServico, error) {
	for _, o := range m.ordens {
		if o.ShareToken == token {
			copia := *o
			return &copia, nil
		}
	}
	return nil, ErrNaoEncontrado
}

func (m *memRepo) ListOrdens(ctx context.Context, filter OrdemFilter) ([]OrdemServico, error) {
	var out []OrdemServico
	for _, o := range m.ordens {
		if o.CondominioID != filter.CondominioID {
			continue
		}
		if filter.StatusID != nil && (o.StatusID == nil || *o.StatusID != *filter.StatusID) {
			continue
		}
		if filter.Busca != "" && !strings.Contains(strings.ToLower(o.Titulo), strings.ToLower(filter.Busca)) {
			continue
		}
		out = append(out, *o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CriadoEm.After(out[j].CriadoEm) })
	return out, nil
}

func (m *memRepo) ListOrdensPorCondominio(ctx context.Context, condominioID uuid.UUID) ([]OrdemServico, error) {
	return m.ListOrdens(ctx, OrdemFilter{CondominioID: condominioID})
}

func (m *memRepo) UpdateOrdem(ctx context.Context, id, condominioID uuid.UUID, input UpdateOrdemInput) (*OrdemServico, error) {
	o, ok := m.ordens[id]
	if !ok || o.CondominioID != condominioID {
		return nil, ErrNaoEncontrado
	}
	if input.Titulo != nil {
		o.Titulo = *input.Titulo
	}
	if input.Descricao != nil {
		o.Descricao = *input.Descricao
	}
	if input.CategoriaID != nil {
		o.CategoriaID = input.CategoriaID
	}
	if input.PrioridadeID != nil {
		o.PrioridadeID = input.PrioridadeID
	}
	if input.StatusID != nil {
		o.StatusID = input.StatusID
	}
	if input.SetorID != nil {
		o.SetorID = input.SetorID
	}
	if input.LocalEndereco != nil {
		o.LocalEndereco = *input.LocalEndereco
	}
	if input.LocalDescricao != nil {
		o.LocalDescricao = *input.LocalDescricao
	}
	if input.ValorEstimado != nil {
		o.ValorEstimado = input.ValorEstimado
	}
	if input.ValorGasto != nil {
		o.ValorGasto = input.ValorGasto
	}
	o.AtualizadoEm = time.Now()
	copia := *o
	return &copia, nil
}

func (m *memRepo) SetInicio(ctx context.Context, id, condominioID uuid.UUID, t time.Time) error {
	o, ok := m.ordens[id]
	if !ok || o.CondominioID != condominioID {
		return ErrNaoEncontrado
	}
	o.IniciadoEm = &t
	return nil
}

func (m *memRepo) SetFim(ctx context.Context, id, condominioID uuid.UUID, t time.Time, minutos int) error {
	o, ok := m.ordens[id]
	if !ok || o.CondominioID != condominioID {
		return ErrNaoEncontrado
	}
	o.FinalizadoEm = &t
	o.TempoGastoMinutos = minutos
	return nil
}

func (m *memRepo) SetLocalizacao(ctx context.Context, id, condominioID uuid.UUID, lat, long *float64, endereco string) error {
	o, ok := m.ordens[id]
	if !ok || o.CondominioID != condominioID {
		return ErrNaoEncontrado
	}
	o.Latitude = lat
	o.Longitude = long
	o.LocalEndereco = endereco
	return nil
}

func (m *memRepo) SetChatAtivo(ctx context.Context, id, condominioID uuid.UUID, ativo bool) error {
	o, ok := m.ordens[id]
	if !ok || o.CondominioID != condominioID {
		return ErrNaoEncontrado
	}
	o.ChatAtivo = ativo
	return nil
}

func (m *memRepo) DeleteOrdem(ctx context.Context, id, condominioID uuid.UUID) (bool, error) {
	o, ok := m.ordens[id]
	if !ok || o.CondominioID != condominioID {
		return false, nil
	}
	delete(m.ordens, id)
	delete(m.eventos, id)
	delete(m.responsaveis, id)
	delete(m.materiais, id)
	delete(m.orcamentos, id)
	delete(m.mensagens, id)
	delete(m.imagens, id)
	return true, nil
}

// ---- timeline ----

func (m *memRepo) InsertEvento(ctx context.Context, ev EventoTimeline) error {
	ev.ID = uuid.New()
	ev.CriadoEm = time.Now()
	m.eventos[ev.OrdemID] = append(m.eventos[ev.OrdemID], ev)
	return nil
}

func (m *memRepo) ListEventos(ctx context.Context, ordemID uuid.UUID) ([]EventoTimeline, error) {
	return append([]EventoTimeline(nil), m.eventos[ordemID]...), nil
}

// ---- responsáveis ----

func (m *memRepo) InsertResponsavel(ctx context.Context, ordemID uuid.UUID, input CreateResponsavelInput) (*Responsavel, error) {
	r := Responsavel{
		ID:        uuid.New(),
		OrdemID:   ordemID,
		Nome:      input.Nome,
		Funcao:    input.Funcao,
		Telefone:  input.Telefone,
		Email:     input.Email,
		UsuarioID: input.UsuarioID,
		Principal: input.Principal,
		CriadoEm:  time.Now(),
	}
	m.responsaveis[ordemID] = append(m.responsaveis[ordemID], r)
	return &r, nil
}

func (m *memRepo) GetResponsavel(ctx context.Context, id, ordemID uuid.UUID) (*Responsavel, error) {
	for _, r := range m.responsaveis[ordemID] {
		if r.ID == id {
			copia := r
			return &copia, nil
		}
	}
	return nil, ErrNaoEncontrado
}

func (m *memRepo) DeleteResponsavel(ctx context.Context, id, ordemID uuid.UUID) error {
	lista := m.responsaveis[ordemID]
	for i, r := range lista {
		if r.ID == id {
			m.responsaveis[ordemID] = append(lista[:i], lista[i+1:]...)
			return nil
		}
	}
	return ErrNaoEncontrado
}

func (m *memRepo) ListResponsaveis(ctx context.Context, ordemID uuid.UUID) ([]Responsavel, error) {
	return append([]Responsavel(nil), m.responsaveis[ordemID]...), nil
}

// ---- materiais ----

func (m *memRepo) InsertMaterial(ctx context.Context, ordemID uuid.UUID, input CreateMaterialInput, valorTotal *float64) (*Material, error) {
	mat := Material{
		ID:             uuid.New(),
		OrdemID:        ordemID,
		Nome:           input.Nome,
		Descricao:      input.Descricao,
		Quantidade:     input.Quantidade,
		Unidade:        input.Unidade,
		EmEstoque:      input.EmEstoque,
		PrecisaComprar: input.PrecisaComprar,
		ObsCompra:      input.ObsCompra,
		ValorUnitario:  input.ValorUnitario,
		ValorTotal:     valorTotal,
		CriadoEm:       time.Now(),
	}
	m.materiais[ordemID] = append(m.materiais[ordemID], mat)
	return &mat, nil
}

func (m *memRepo) GetMaterial(ctx context.Context, id, ordemID uuid.UUID) (*Material, error) {
	for _, mat := range m.materiais[ordemID] {
		if mat.ID == id {
			copia := mat
			return &copia, nil
		}
	}
	return nil, ErrNaoEncontrado
}

func (m *memRepo) DeleteMaterial(ctx context.Context, id, ordemID uuid.UUID) error {
	lista := m.materiais[ordemID]
	for i, mat := range lista {
		if mat.ID == id {
			m.materiais[ordemID] = append(lista[:i], lista[i+1:]...)
			return nil
		}
	}
	return ErrNaoEncontrado
}

func (m *memRepo) ListMateriais(ctx context.Context, ordemID uuid.UUID) ([]Material, error) {
	return append([]Material(nil), m.materiais[ordemID]...), nil
}

// ---- orçamentos ----

func (m *memRepo) InsertOrcamento(ctx context.Context, ordemID uuid.UUID, input CreateOrcamentoInput) (*Orcamento, error) {
	o := Orcamento{
		ID:         uuid.New(),
		OrdemID:    ordemID,
		Fornecedor: input.Fornecedor,
		Descricao:  input.Descricao,
		Valor:      input.Valor,
		ValidoAte:  input.ValidoAte,
		AnexoURL:   input.AnexoURL,
		CriadoEm:   time.Now(),
	}
	m.orcamentos[ordemID] = append(m.orcamentos[ordemID], o)
	return &o, nil
}

func (m *memRepo) GetOrcamento(ctx context.Context, id, ordemID uuid.UUID) (*Orcamento, error) {
	for _, o := range m.orcamentos[ordemID] {
		if o.ID == id {
			copia := o
			return &copia, nil
		}
	}
	return nil, ErrNaoEncontrado
}

func (m *memRepo) AprovarOrcamento(ctx context.Context, id, ordemID uuid.UUID, aprovadoPor string, aprovadoEm time.Time) (*Orcamento, error) {
	lista := m.orcamentos[ordemID]
	for i := range lista {
		if lista[i].ID == id {
			aprovado := true
			lista[i].Aprovado = &aprovado
			lista[i].AprovadoPor = &aprovadoPor
			lista[i].AprovadoEm = &aprovadoEm
			lista[i].MotivoRecusa = ""
			copia := lista[i]
			return &copia, nil
		}
	}
	return nil, ErrNaoEncontrado
}

func (m *memRepo) RejeitarOrcamento(ctx context.Context, id, ordemID uuid.UUID, motivo string) (*Orcamento, error) {
	lista := m.orcamentos[ordemID]
	for i := range lista {
		if lista[i].ID == id {
			rejeitado := false
			lista[i].Aprovado = &rejeitado
			lista[i].AprovadoPor = nil
			lista[i].AprovadoEm = nil
			lista[i].MotivoRecusa = motivo
			copia := lista[i]
			return &copia, nil
		}
	}
	return nil, ErrNaoEncontrado
}

func (m *memRepo) DeleteOrcamento(ctx context.Context, id, ordemID uuid.UUID) error {
	lista := m.orcamentos[ordemID]
	for i, o := range lista {
		if o.ID == id {
			m.orcamentos[ordemID] = append(lista[:i], lista[i+1:]...)
			return nil
		}
	}
	return ErrNaoEncontrado
}

func (m *memRepo) ListOrcamentos(ctx context.Context, ordemID uuid.UUID) ([]Orcamento, error) {
	return append([]Orcamento(nil), m.orcamentos[ordemID]...), nil
}

// ---- chat ----

func (m *memRepo) InsertMensagem(ctx context.Context, ordemID uuid.UUID, msg MensagemChat) (*MensagemChat, error) {
	msg.ID = uuid.New()
	msg.OrdemID = ordemID
	msg.CriadoEm = time.Now()
	m.mensagens[ordemID] = append(m.mensagens[ordemID], msg)
	return &msg, nil
}

func (m *memRepo) ListMensagens(ctx context.Context, ordemID uuid.UUID) ([]MensagemChat, error) {
	return append([]MensagemChat(nil), m.mensagens[ordemID]...), nil
}

// ---- imagens ----

func (m *memRepo) InsertImagem(ctx context.Context, ordemID uuid.UUID, input CreateImagemInput) (*Imagem, error) {
	img := Imagem{
		ID:        uuid.New(),
		OrdemID:   ordemID,
		URL:       input.URL,
		Tipo:      input.Tipo,
		Descricao: input.Descricao,
		Posicao:   input.Posicao,
		CriadoEm:  time.Now(),
	}
	m.imagens[ordemID] = append(m.imagens[ordemID], img)
	return &img, nil
}

func (m *memRepo) ListImagens(ctx context.Context, ordemID uuid.UUID) ([]Imagem, error) {
	return append([]Imagem(nil), m.imagens[ordemID]...), nil
}

// ---- taxonomia ----

func (m *memRepo) ListCategorias(ctx context.Context, condominioID uuid.UUID) ([]Categoria, error) {
	var out []Categoria
	for _, c := range m.categorias[condominioID] {
		if c.Ativo {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memRepo) ListCategoriasTodas(ctx context.Context, condominioID uuid.UUID) ([]Categoria, error) {
	return append([]Categoria(nil), m.categorias[condominioID]...), nil
}

func (m *memRepo) CreateCategoria(ctx context.Context, condominioID uuid.UUID, input CreateCategoriaInput) (*Categoria, error) {
	c := Categoria{
		ID:           uuid.New(),
		CondominioID: condominioID,
		Nome:         input.Nome,
		Descricao:    input.Descricao,
		Cor:          input.Cor,
		Ativo:        true,
		CriadoEm:     time.Now(),
	}
	m.categorias[condominioID] = append(m.categorias[condominioID], c)
	return &c, nil
}

func (m *memRepo) UpdateCategoria(ctx context.Context, id, condominioID uuid.UUID, input UpdateCategoriaInput) error {
	lista := m.categorias[condominioID]
	for i := range lista {
		if lista[i].ID == id {
			if input.Nome != nil {
				lista[i].Nome = *input.Nome
			}
			if input.Descricao != nil {
				lista[i].Descricao = *input.Descricao
			}
			if input.Cor != nil {
				lista[i].Cor = *input.Cor
			}
			return nil
		}
	}
	return ErrNaoEncontrado
}

func (m *memRepo) DeactivateCategoria(ctx context.Context, id, condominioID uuid.UUID) error {
	lista := m.categorias[condominioID]
	for i := range lista {
		if lista[i].ID == id {
			lista[i].Ativo = false
			return nil
		}
	}
	return ErrNaoEncontrado
}

func (m *memRepo) SeedCategorias(ctx context.Context, condominioID uuid.UUID, nomes []string) (bool, error) {
	m.seedCalls["categorias"]++
	if len(m.categorias[condominioID]) > 0 {
		return false, nil
	}
	for _, nome := range nomes {
		m.categorias[condominioID] = append(m.categorias[condominioID], Categoria{
			ID:           uuid.New(),
			CondominioID: condominioID,
			Nome:         nome,
			Ativo:        true,
			Padrao:       true,
			CriadoEm:     time.Now(),
		})
	}
	return true, nil
}

func (m *memRepo) GetCategoria(ctx context.Context, id uuid.UUID) (*Categoria, error) {
	for _, lista := range m.categorias {
		for _, c := range lista {
			if c.ID == id {
				copia := c
				return &copia, nil
			}
		}
	}
	return nil, ErrNaoEncontrado
}

func (m *memRepo) ListPrioridades(ctx context.Context, condominioID uuid.UUID) ([]Prioridade, error) {
	var out []Prioridade
	for _, p := range m.prioridades[condominioID] {
		if p.Ativo {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Nivel < out[j].Nivel })
	return out, nil
}

func (m *memRepo) CreatePrioridade(ctx context.Context, condominioID uuid.UUID, input CreatePrioridadeInput) (*Prioridade, error) {
	nivel := len(m.prioridades[condominioID]) + 1
	if input.Nivel != nil {
		nivel = *input.Nivel
	}
	p := Prioridade{
		ID:           uuid.New(),
		CondominioID: condominioID,
		Nome:         input.Nome,
		Nivel:        nivel,
		Cor:          input.Cor,
		Ativo:        true,
		CriadoEm:     time.Now(),
	}
	m.prioridades[condominioID] = append(m.prioridades[condominioID], p)
	return &p, nil
}

func (m *memRepo) UpdatePrioridade(ctx context.Context, id, condominioID uuid.UUID, input UpdatePrioridadeInput) error {
	lista := m.prioridades[condominioID]
	for i := range lista {
		if lista[i].ID == id {
			if input.Nome != nil {
				lista[i].Nome = *input.Nome
			}
			if input.Nivel != nil {
				lista[i].Nivel = *input.Nivel
			}
			if input.Cor != nil {
				lista[i].Cor = *input.Cor
			}
			return nil
		}
	}
	return ErrNaoEncontrado
}

func (m *memRepo) DeactivatePrioridade(ctx context.Context, id, condominioID uuid.UUID) error {
	lista := m.prioridades[condominioID]
	for i := range lista {
		if lista[i].ID == id {
			lista[i].Ativo = false
			return nil
		}
	}
	return ErrNaoEncontrado
}

func (m *memRepo) SeedPrioridades(ctx context.Context, condominioID uuid.UUID, nomes []string) (bool, error) {
	m.seedCalls["prioridades"]++
	if len(m.prioridades[condominioID]) > 0 {
		return false, nil
	}
	for i, nome := range nomes {
		m.prioridades[condominioID] = append(m.prioridades[condominioID], Prioridade{
			ID:           uuid.New(),
			CondominioID: condominioID,
			Nome:         nome,
			Nivel:        i + 1,
			Ativo:        true,
			Padrao:       true,
			CriadoEm:     time.Now(),
		})
	}
	return true, nil
}

func (m *memRepo) GetPrioridade(ctx context.Context, id uuid.UUID) (*Prioridade, error) {
	for _, lista := range m.prioridades {
		for _, p := range lista {
			if p.ID == id {
				copia := p
				return &copia, nil
			}
		}
	}
	return nil, ErrNaoEncontrado
}

func (m *memRepo) ListStatus(ctx context.Context, condominioID uuid.UUID) ([]Status, error) {
	var out []Status
	for _, st := range m.statusList[condominioID] {
		if st.Ativo {
			out = append(out, st)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Ordem < out[j].Ordem })
	return out, nil
}

func (m *memRepo) ListStatusTodos(ctx context.Context, condominioID uuid.UUID) ([]Status, error) {
	out := append([]Status(nil), m.statusList[condominioID]...)
	sort.Slice(out, func(i, j int) bool { return out[i].Ordem < out[j].Ordem })
	return out, nil
}

func (m *memRepo) CreateStatus(ctx context.Context, condominioID uuid.UUID, input CreateStatusInput) (*Status, error) {
	ordem := len(m.statusList[condominioID]) + 1
	if input.Ordem != nil {
		ordem = *input.Ordem
	}
	st := Status{
		ID:           uuid.New(),
		CondominioID: condominioID,
		Nome:         input.Nome,
		Ordem:        ordem,
		Cor:          input.Cor,
		Finalizadora: input.Finalizadora,
		Ativo:        true,
		CriadoEm:     time.Now(),
	}
	m.statusList[condominioID] = append(m.statusList[condominioID], st)
	return &st, nil
}

func (m *memRepo) UpdateStatus(ctx context.Context, id, condominioID uuid.UUID, input UpdateStatusInput) error {
	lista := m.statusList[condominioID]
	for i := range lista {
		if lista[i].ID == id {
			if input.Nome != nil {
				lista[i].Nome = *input.Nome
			}
			if input.Ordem != nil {
				lista[i].Ordem = *input.Ordem
			}
			if input.Cor != nil {
				lista[i].Cor = *input.Cor
			}
			if input.Finalizadora != nil {
				lista[i].Finalizadora = *input.Finalizadora
			}
			return nil
		}
	}
	return ErrNaoEncontrado
}

func (m *memRepo) DeactivateStatus(ctx context.Context, id, condominioID uuid.UUID) error {
	lista := m.statusList[condominioID]
	for i := range lista {
		if lista[i].ID == id {
			lista[i].Ativo = false
			return nil
		}
	}
	return ErrNaoEncontrado
}

func (m *memRepo) SeedStatus(ctx context.Context, condominioID uuid.UUID, itens []SeedStatusItem) (bool, error) {
	m.seedCalls["status"]++
	if len(m.statusList[condominioID]) > 0 {
		return false, nil
	}
	for i, item := range itens {
		m.statusList[condominioID] = append(m.statusList[condominioID], Status{
			ID:           uuid.New(),
			CondominioID: condominioID,
			Nome:         item.Nome,
			Ordem:        i + 1,
			Finalizadora: item.Finalizadora,
			Ativo:        true,
			Padrao:       true,
			CriadoEm:     time.Now(),
		})
	}
	return true, nil
}

func (m *memRepo) GetStatus(ctx context.Context, id uuid.UUID) (*Status, error) {
	for _, lista := range m.statusList {
		for _, st := range lista {
			if st.ID == id {
				copia := st
				return &copia, nil
			}
		}
	}
	return nil, ErrNaoEncontrado
}

func (m *memRepo) GetStatusInicial(ctx context.Context, condominioID uuid.UUID) (*Status, error) {
	status, _ := m.ListStatus(ctx, condominioID)
	if len(status) == 0 {
		return nil, ErrNaoEncontrado
	}
	copia := status[0]
	return &copia, nil
}

func (m *memRepo) ListSetores(ctx context.Context, condominioID uuid.UUID) ([]Setor, error) {
	var out []Setor
	for _, s := range m.setores[condominioID] {
		if s.Ativo {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *memRepo) CreateSetor(ctx context.Context, condominioID uuid.UUID, input CreateSetorInput) (*Setor, error) {
	s := Setor{
		ID:           uuid.New(),
		CondominioID: condominioID,
		Nome:         input.Nome,
		Ativo:        true,
		CriadoEm:     time.Now(),
	}
	m.setores[condominioID] = append(m.setores[condominioID], s)
	return &s, nil
}

func (m *memRepo) UpdateSetor(ctx context.Context, id, condominioID uuid.UUID, input UpdateSetorInput) error {
	lista := m.setores[condominioID]
	for i := range lista {
		if lista[i].ID == id {
			if input.Nome != nil {
				lista[i].Nome = *input.Nome
			}
			return nil
		}
	}
	return ErrNaoEncontrado
}

func (m *memRepo) DeactivateSetor(ctx context.Context, id, condominioID uuid.UUID) error {
	lista := m.setores[condominioID]
	for i := range lista {
		if lista[i].ID == id {
			lista[i].Ativo = false
			return nil
		}
	}
	return ErrNaoEncontrado
}

func (m *memRepo) SeedSetores(ctx context.Context, condominioID uuid.UUID, nomes []string) (bool, error) {
	m.seedCalls["setores"]++
	if len(m.setores[condominioID]) > 0 {
		return false, nil
	}
	for _, nome := range nomes {
		m.setores[condominioID] = append(m.setores[condominioID], Setor{
			ID:           uuid.New(),
			CondominioID: condominioID,
			Nome:         nome,
			Ativo:        true,
			Padrao:       true,
			CriadoEm:     time.Now(),
		})
	}
	return true, nil
}

func (m *memRepo) GetSetor(ctx context.Context, id uuid.UUID) (*Setor, error) {
	for _, lista := range m.setores {
		for _, s := range lista {
			if s.ID == id {
				copia := s
				return &copia, nil
			}
		}
	}
	return nil, ErrNaoEncontrado
}
