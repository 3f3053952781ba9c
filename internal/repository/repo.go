package repository

import (
	"context"
	"fmt"

	"github.com/evgeniy-krivenko/mynotes/internal/entity"
	"github.com/evgeniy-krivenko/mynotes/pkg/database"
)

type db interface {
	database.Tx
	RunInTx(ctx context.Context, f func(context.Context) error) error
	Ping(ctx context.Context) error
}

// Repo is the PostgreSQL note storage.
type Repo struct {
	db db
}

func New(db db) *Repo {
	return &Repo{db: db}
}

func (r *Repo) RunInTx(ctx context.Context, f func(context.Context) error) error {
	if err := r.db.RunInTx(ctx, f); err != nil {
		return wrapErr("run in tx", err)
	}

	return nil
}

func (r *Repo) Ping(ctx context.Context) error {
	if err := r.db.Ping(ctx); err != nil {
		return fmt.Errorf("%w: ping: %v", entity.ErrStorageUnavailable, err)
	}

	return nil
}

func wrapErr(op string, err error) error {
	if database.IsUnavailable(err) {
		return fmt.Errorf("%w: %s: %v", entity.ErrStorageUnavailable, op, err)
	}

	return fmt.Errorf("%s: %w", op, err)
}
