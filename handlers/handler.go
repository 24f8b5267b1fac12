package handlers

import (
	"context"
	"time"

	"github.com/arrancadaroraima/inscricoes-api/pagamento"
	"github.com/arrancadaroraima/inscricoes-api/pipeline"
	"github.com/arrancadaroraima/inscricoes-api/store"
)

// EnviadorVerificacao sends the signup verification link.
type EnviadorVerificacao interface {
	EnviarVerificacao(ctx context.Context, para, nome, link string) error
}

// Deps holds shared dependencies used by all route handlers.
type Deps struct {
	Contas     store.Contas
	Eventos    store.Eventos
	Pendentes  store.Pendentes
	Inscricoes store.Inscricoes

	Provider    pagamento.Provider
	Confirmador *pipeline.Confirmador
	// Verificacao may be nil when outbound mail is not configured.
	Verificacao EnviadorVerificacao

	JWTKey     []byte
	AdminEmail string
	AdminSenha string

	// Preco is the per-vehicle registration price in BRL.
	Preco float64
	// PendenteTTL bounds how long an unpaid registration stays claimable.
	PendenteTTL time.Duration

	BaseURL      string
	SiteURL      string
	PlanilhaPath string

	// Timeout bounds outbound calls made directly from handlers.
	Timeout time.Duration
}

// Handler carries Deps into the route methods.
type Handler struct {
	d Deps
}

// New creates a Handler with the given dependencies.
func New(d Deps) *Handler {
	if d.Timeout == 0 {
		d.Timeout = 15 * time.Second
	}
	if d.PendenteTTL == 0 {
		d.PendenteTTL = 48 * time.Hour
	}
	return &Handler{d: d}
}
