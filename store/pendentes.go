package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/uptrace/bun"

	"github.com/arrancadaroraima/inscricoes-api/models"
)

type pendentesStore struct {
	db *bun.DB
}

// NewPendentes returns the Postgres-backed pending-registration store.
func NewPendentes(db *bun.DB) Pendentes {
	return &pendentesStore{db: db}
}

func (s *pendentesStore) Insert(ctx context.Context, p *models.Pendente) error {
	_, err := s.db.NewInsert().Model(p).Exec(ctx)
	return err
}

func (s *pendentesStore) Lookup(ctx context.Context, referencia string) (*models.Pendente, error) {
	p := new(models.Pendente)
	err := s.db.NewSelect().Model(p).
		Where("referencia = ?", referencia).
		Where("expira_em > ?", time.Now()).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (s *pendentesStore) MarkConsumed(ctx context.Context, referencia string, when time.Time) error {
	_, err := s.db.NewUpdate().Model((*models.Pendente)(nil)).
		Set("consumido_em = ?", when).
		Where("referencia = ?", referencia).
		Exec(ctx)
	return err
}

func (s *pendentesStore) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	res, err := s.db.NewDelete().Model((*models.Pendente)(nil)).
		Where("expira_em <= ?", before).
		Exec(ctx)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
