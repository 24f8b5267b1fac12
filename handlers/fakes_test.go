package handlers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/arrancadaroraima/inscricoes-api/models"
	"github.com/arrancadaroraima/inscricoes-api/pagamento"
)

type fakeContas struct {
	porEmail map[string]*models.Conta
	proximo  int
}

func novoFakeContas() *fakeContas {
	return &fakeContas{porEmail: map[string]*models.Conta{}}
}

func (f *fakeContas) Insert(ctx context.Context, c *models.Conta) error {
	if _, ok := f.porEmail[c.Email]; ok {
		return errors.New(`duplicate key value violates unique constraint "contas_email_key"`)
	}
	f.proximo++
	c.ID = f.proximo
	f.porEmail[c.Email] = c
	return nil
}

func (f *fakeContas) PorEmail(ctx context.Context, email string) (*models.Conta, error) {
	return f.porEmail[email], nil
}

func (f *fakeContas) PorToken(ctx context.Context, token string) (*models.Conta, error) {
	for _, c := range f.porEmail {
		if c.TokenVerificacao != nil && *c.TokenVerificacao == token {
			return c, nil
		}
	}
	return nil, nil
}

func (f *fakeContas) MarcarVerificado(ctx context.Context, id int) error {
	for _, c := range f.porEmail {
		if c.ID == id {
			c.Verificado = true
			c.TokenVerificacao = nil
			return nil
		}
	}
	return errors.New("conta não encontrada")
}

type fakeEventos struct {
	porID map[string]*models.Evento
}

func novoFakeEventos() *fakeEventos {
	return &fakeEventos{porID: map[string]*models.Evento{}}
}

func (f *fakeEventos) Listar(ctx context.Context) ([]models.Evento, error) {
	out := make([]models.Evento, 0, len(f.porID))
	for _, ev := range f.porID {
		out = append(out, *ev)
	}
	return out, nil
}

func (f *fakeEventos) Obter(ctx context.Context, id string) (*models.Evento, error) {
	ev, ok := f.porID[id]
	if !ok {
		return nil, nil
	}
	copia := *ev
	return &copia, nil
}

func (f *fakeEventos) Criar(ctx context.Context, ev *models.Evento) error {
	f.porID[ev.ID] = ev
	return nil
}

func (f *fakeEventos) Atualizar(ctx context.Context, ev *models.Evento) error {
	f.porID[ev.ID] = ev
	return nil
}

func (f *fakeEventos) Deletar(ctx context.Context, id string) error {
	delete(f.porID, id)
	return nil
}

type fakePendentes struct {
	porReferencia map[string]*models.Pendente
}

func novoFakePendentes() *fakePendentes {
	return &fakePendentes{porReferencia: map[string]*models.Pendente{}}
}

func (f *fakePendentes) Insert(ctx context.Context, p *models.Pendente) error {
	f.porReferencia[p.Referencia] = p
	return nil
}

func (f *fakePendentes) Lookup(ctx context.Context, referencia string) (*models.Pendente, error) {
	p, ok := f.porReferencia[referencia]
	if !ok || !p.ExpiraEm.After(time.Now()) {
		return nil, nil
	}
	return p, nil
}

func (f *fakePendentes) MarkConsumed(ctx context.Context, referencia string, when time.Time) error {
	if p, ok := f.porReferencia[referencia]; ok {
		p.ConsumidoEm = &when
	}
	return nil
}

func (f *fakePendentes) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	return 0, nil
}

type fakeInscricoes struct {
	linhas map[string]models.Inscricao
}

func novoFakeInscricoes() *fakeInscricoes {
	return &fakeInscricoes{linhas: map[string]models.Inscricao{}}
}

func (f *fakeInscricoes) InsertRows(ctx context.Context, rows []models.Inscricao) (int64, error) {
	var novas int64
	for _, l := range rows {
		k := fmt.Sprintf("%s/%d", l.Referencia, l.MotoIdx)
		if _, ok := f.linhas[k]; ok {
			continue
		}
		f.linhas[k] = l
		novas++
	}
	return novas, nil
}

func (f *fakeInscricoes) All(ctx context.Context) ([]models.Inscricao, error) {
	out := make([]models.Inscricao, 0, len(f.linhas))
	for _, l := range f.linhas {
		out = append(out, l)
	}
	return out, nil
}

type fakeProvider struct {
	link     string
	erro     error
	detalhes map[int]*pagamento.Detalhes

	ultimaReferencia string
	ultimaQuantidade int
	ultimoPreco      float64
}

func (f *fakeProvider) CriarCheckout(ctx context.Context, referencia, titulo string, quantidade int, precoUnitario float64) (string, error) {
	if f.erro != nil {
		return "", f.erro
	}
	f.ultimaReferencia = referencia
	f.ultimaQuantidade = quantidade
	f.ultimoPreco = precoUnitario
	return f.link, nil
}

func (f *fakeProvider) Consultar(ctx context.Context, pagamentoID int) (*pagamento.Detalhes, error) {
	d, ok := f.detalhes[pagamentoID]
	if !ok {
		return nil, fmt.Errorf("pagamento %d não existe", pagamentoID)
	}
	return d, nil
}

type fakeVerificacao struct {
	enviados []string
	links    []string
}

func (f *fakeVerificacao) EnviarVerificacao(ctx context.Context, para, nome, link string) error {
	f.enviados = append(f.enviados, para)
	f.links = append(f.links, link)
	return nil
}
