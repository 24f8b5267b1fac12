// Package store wraps each persisted collection behind an owned component
// so handlers and the confirmation pipeline never share ambient state.
package store

import (
	"context"
	"time"

	"github.com/arrancadaroraima/inscricoes-api/models"
)

// Pendentes holds registrations that are waiting for payment confirmation.
type Pendentes interface {
	// Insert stores a freshly submitted registration keyed by its reference.
	Insert(ctx context.Context, p *models.Pendente) error
	// Lookup returns the pending registration for a reference, or nil when
	// the reference is unknown or its claim window has expired.
	Lookup(ctx context.Context, referencia string) (*models.Pendente, error)
	// MarkConsumed stamps the registration as claimed by an approved payment.
	MarkConsumed(ctx context.Context, referencia string, when time.Time) error
	// DeleteExpired removes abandoned registrations and returns how many went.
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}

// Inscricoes holds the confirmed, paid per-vehicle rows.
type Inscricoes interface {
	// InsertRows appends rows, silently skipping any that were already
	// written for the same reference and vehicle index. Returns the number
	// of rows actually written.
	InsertRows(ctx context.Context, rows []models.Inscricao) (int64, error)
	// All returns every confirmed row ordered by confirmation time.
	All(ctx context.Context) ([]models.Inscricao, error)
}

// Contas holds user accounts.
type Contas interface {
	Insert(ctx context.Context, c *models.Conta) error
	// PorEmail returns nil, nil when no account uses the address.
	PorEmail(ctx context.Context, email string) (*models.Conta, error)
	// PorToken returns nil, nil when no account carries the token.
	PorToken(ctx context.Context, token string) (*models.Conta, error)
	// MarcarVerificado flips the verified flag and clears the token.
	MarcarVerificado(ctx context.Context, id int) error
}

// Eventos holds the event catalog.
type Eventos interface {
	Listar(ctx context.Context) ([]models.Evento, error)
	// Obter returns nil, nil when the id is unknown.
	Obter(ctx context.Context, id string) (*models.Evento, error)
	Criar(ctx context.Context, ev *models.Evento) error
	Atualizar(ctx context.Context, ev *models.Evento) error
	Deletar(ctx context.Context, id string) error
}
