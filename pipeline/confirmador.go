// Package pipeline drives the payment-confirmation workflow: re-fetch the
// payment, claim the pending registration, commit one row per vehicle, then
// fan out the post-commit side effects (local xlsx, email ticket, sheet
// push). Side effects never roll back the commit and never fail the webhook.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/arrancadaroraima/inscricoes-api/ingresso"
	"github.com/arrancadaroraima/inscricoes-api/models"
	"github.com/arrancadaroraima/inscricoes-api/pagamento"
	"github.com/arrancadaroraima/inscricoes-api/store"
)

// ErrReferenciaDesconhecida means the provider echoed a reference with no
// live pending registration: never created, expired, or forged. The webhook
// answers 404 so the provider keeps retrying instead of treating it as done.
var ErrReferenciaDesconhecida = errors.New("inscrição pendente não encontrada")

// Enviador delivers the confirmation ticket by email.
type Enviador interface {
	EnviarIngresso(ctx context.Context, para string, pdf []byte) error
}

// Artefato rewrites the local spreadsheet artifact.
type Artefato interface {
	Gravar(linhas []models.Inscricao) error
}

// Exportador replaces the remote copy of the confirmed table.
type Exportador interface {
	Substituir(ctx context.Context, linhas []models.Inscricao) error
}

// Opcoes wires the Confirmador. Enviador, Artefato and Exportador may be
// nil; the matching side effect is then skipped.
type Opcoes struct {
	Provider   pagamento.Provider
	Pendentes  store.Pendentes
	Inscricoes store.Inscricoes
	Enviador   Enviador
	Artefato   Artefato
	Exportador Exportador
	Log        *zap.Logger
	// Timeout bounds each outbound call. Zero means 15s.
	Timeout time.Duration
	// Agora stamps confirmations; tests override it.
	Agora func() time.Time
}

// Confirmador processes approved-payment notifications.
type Confirmador struct {
	opts Opcoes
}

// New builds a Confirmador.
func New(opts Opcoes) *Confirmador {
	if opts.Timeout == 0 {
		opts.Timeout = 15 * time.Second
	}
	if opts.Agora == nil {
		opts.Agora = time.Now
	}
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}
	return &Confirmador{opts: opts}
}

// Confirmar runs the pipeline for one notification. A nil return means the
// webhook must be acknowledged; the commit may or may not have written rows
// (non-approved payments and redeliveries both acknowledge without writing).
func (c *Confirmador) Confirmar(ctx context.Context, pagamentoID int) error {
	log := c.opts.Log

	cctx, cancel := context.WithTimeout(ctx, c.opts.Timeout)
	det, err := c.opts.Provider.Consultar(cctx, pagamentoID)
	cancel()
	if err != nil {
		return fmt.Errorf("consultar pagamento %d: %w", pagamentoID, err)
	}

	if det.Status != pagamento.StatusAprovado {
		log.Info("pagamento não aprovado, nada a gravar",
			zap.Int("pagamento", pagamentoID),
			zap.String("status", det.Status))
		return nil
	}

	pend, err := c.opts.Pendentes.Lookup(ctx, det.Referencia)
	if err != nil {
		return fmt.Errorf("buscar pendente %s: %w", det.Referencia, err)
	}
	if pend == nil {
		return fmt.Errorf("%w: %s", ErrReferenciaDesconhecida, det.Referencia)
	}

	agora := c.opts.Agora()
	linhas := Expandir(pend, det.ModoPagamento, agora)

	gravadas, err := c.opts.Inscricoes.InsertRows(ctx, linhas)
	if err != nil {
		return fmt.Errorf("gravar inscrições %s: %w", det.Referencia, err)
	}
	if gravadas == 0 {
		// Redelivery after a previous commit: the unique constraint
		// swallowed every row, so acknowledge and skip the side effects.
		log.Info("webhook reentregue, inscrições já gravadas",
			zap.String("referencia", det.Referencia))
		return nil
	}

	if err := c.opts.Pendentes.MarkConsumed(ctx, det.Referencia, agora); err != nil {
		log.Warn("marcar pendente como consumida",
			zap.String("referencia", det.Referencia), zap.Error(err))
	}

	log.Info("inscrição confirmada",
		zap.String("referencia", det.Referencia),
		zap.Int64("motos", gravadas),
		zap.String("modo_pagamento", det.ModoPagamento))

	c.fanOut(ctx, pend, agora)
	return nil
}

// fanOut runs the post-commit side effects. Each failure is logged and
// swallowed independently of the others.
func (c *Confirmador) fanOut(ctx context.Context, pend *models.Pendente, agora time.Time) {
	log := c.opts.Log

	if c.opts.Artefato != nil || c.opts.Exportador != nil {
		todas, err := c.opts.Inscricoes.All(ctx)
		if err != nil {
			log.Warn("carregar inscrições para exportação", zap.Error(err))
		} else {
			if c.opts.Artefato != nil {
				if err := c.opts.Artefato.Gravar(todas); err != nil {
					log.Warn("gravar planilha local", zap.Error(err))
				}
			}
			if c.opts.Exportador != nil {
				ectx, cancel := context.WithTimeout(ctx, c.opts.Timeout)
				if err := c.opts.Exportador.Substituir(ectx, todas); err != nil {
					log.Warn("exportar planilha remota", zap.Error(err))
				}
				cancel()
			}
		}
	}

	if c.opts.Enviador != nil {
		pdf, err := ingresso.Gerar(ingresso.Dados{
			Referencia: pend.Referencia,
			Preparador: pend.Preparador,
			Equipe:     pend.Equipe,
			Piloto:     pend.Piloto,
			Email:      pend.Email,
			Evento:     pend.Evento,
			Motos:      pend.Motos,
			Confirmado: agora,
		})
		if err != nil {
			log.Warn("gerar comprovante", zap.String("referencia", pend.Referencia), zap.Error(err))
			return
		}
		mctx, cancel := context.WithTimeout(ctx, c.opts.Timeout)
		defer cancel()
		if err := c.opts.Enviador.EnviarIngresso(mctx, pend.Email, pdf); err != nil {
			log.Warn("enviar comprovante",
				zap.String("referencia", pend.Referencia),
				zap.String("email", pend.Email),
				zap.Error(err))
		}
	}
}

// Expandir turns a pending registration into one confirmed row per vehicle.
func Expandir(p *models.Pendente, modoPagamento string, quando time.Time) []models.Inscricao {
	linhas := make([]models.Inscricao, len(p.Motos))
	for i, m := range p.Motos {
		linhas[i] = models.Inscricao{
			Referencia:      p.Referencia,
			MotoIdx:         i,
			Preparador:      p.Preparador,
			Equipe:          p.Equipe,
			Piloto:          p.Piloto,
			Email:           p.Email,
			Evento:          p.Evento,
			Modelo:          m.Modelo,
			Numero:          m.Numero,
			Cor:             m.Cor,
			Categoria:       m.Categoria,
			DataInscricao:   quando,
			StatusPagamento: "Pago",
			ModoPagamento:   modoPagamento,
		}
	}
	return linhas
}
