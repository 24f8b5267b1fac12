package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/uptrace/bun"

	"github.com/arrancadaroraima/inscricoes-api/models"
)

type eventosStore struct {
	db *bun.DB
}

// NewEventos returns the Postgres-backed event catalog.
func NewEventos(db *bun.DB) Eventos {
	return &eventosStore{db: db}
}

func (s *eventosStore) Listar(ctx context.Context) ([]models.Evento, error) {
	var evs []models.Evento
	err := s.db.NewSelect().Model(&evs).
		OrderExpr("criado_em ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return evs, nil
}

func (s *eventosStore) Obter(ctx context.Context, id string) (*models.Evento, error) {
	ev := new(models.Evento)
	err := s.db.NewSelect().Model(ev).
		Where("id = ?", id).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return ev, nil
}

func (s *eventosStore) Criar(ctx context.Context, ev *models.Evento) error {
	_, err := s.db.NewInsert().Model(ev).Exec(ctx)
	return err
}

func (s *eventosStore) Atualizar(ctx context.Context, ev *models.Evento) error {
	_, err := s.db.NewUpdate().Model(ev).
		WherePK().
		Exec(ctx)
	return err
}

func (s *eventosStore) Deletar(ctx context.Context, id string) error {
	_, err := s.db.NewDelete().Model((*models.Evento)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	return err
}
