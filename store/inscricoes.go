package store

import (
	"context"

	"github.com/uptrace/bun"

	"github.com/arrancadaroraima/inscricoes-api/models"
)

type inscricoesStore struct {
	db *bun.DB
}

// NewInscricoes returns the Postgres-backed confirmed-registration store.
func NewInscricoes(db *bun.DB) Inscricoes {
	return &inscricoesStore{db: db}
}

func (s *inscricoesStore) InsertRows(ctx context.Context, rows []models.Inscricao) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	res, err := s.db.NewInsert().Model(&rows).
		On("CONFLICT (referencia, moto_idx) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *inscricoesStore) All(ctx context.Context) ([]models.Inscricao, error) {
	var rows []models.Inscricao
	err := s.db.NewSelect().Model(&rows).
		OrderExpr("data_inscricao ASC, moto_idx ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return rows, nil
}
