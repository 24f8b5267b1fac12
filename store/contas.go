package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/uptrace/bun"

	"github.com/arrancadaroraima/inscricoes-api/models"
)

type contasStore struct {
	db *bun.DB
}

// NewContas returns the Postgres-backed account store.
func NewContas(db *bun.DB) Contas {
	return &contasStore{db: db}
}

func (s *contasStore) Insert(ctx context.Context, c *models.Conta) error {
	_, err := s.db.NewInsert().Model(c).Exec(ctx)
	return err
}

func (s *contasStore) PorEmail(ctx context.Context, email string) (*models.Conta, error) {
	c := new(models.Conta)
	err := s.db.NewSelect().Model(c).
		Where("email = ?", email).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (s *contasStore) PorToken(ctx context.Context, token string) (*models.Conta, error) {
	c := new(models.Conta)
	err := s.db.NewSelect().Model(c).
		Where("token_verificacao = ?", token).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (s *contasStore) MarcarVerificado(ctx context.Context, id int) error {
	_, err := s.db.NewUpdate().Model((*models.Conta)(nil)).
		Set("verificado = TRUE").
		Set("token_verificacao = NULL").
		Where("id = ?", id).
		Exec(ctx)
	return err
}
