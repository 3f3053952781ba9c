package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/evgeniy-krivenko/mynotes/internal/config"
	"github.com/evgeniy-krivenko/mynotes/internal/repository"
	"github.com/evgeniy-krivenko/mynotes/internal/repository/boltrepo"
	"github.com/evgeniy-krivenko/mynotes/internal/repository/migrations"
	"github.com/evgeniy-krivenko/mynotes/internal/usecase/notes"
	"github.com/evgeniy-krivenko/mynotes/pkg/database"
	"github.com/evgeniy-krivenko/mynotes/pkg/logger/slogx"
)

// Open connects the backend selected by cfg.Storage.Driver. Postgres schemas
// are migrated before the repository is returned.
func Open(ctx context.Context, cfg config.Config) (notes.Repository, io.Closer, error) {
	switch cfg.Storage.Driver {
	case config.StorageBolt:
		repo, err := boltrepo.Open(cfg.Storage.BoltPath)
		if err != nil {
			return nil, nil, fmt.Errorf("open bolt storage: %w", err)
		}

		slogx.Info(ctx, "bolt storage opened", slog.String("path", cfg.Storage.BoltPath))
		return repo, repo, nil

	case config.StoragePostgres:
		return openPostgres(ctx, cfg.Database)

	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

func openPostgres(ctx context.Context, cfg config.DatabaseConfig) (notes.Repository, io.Closer, error) {
	pool, err := database.NewPGX(ctx, database.NewOptions(
		cfg.Addr(),
		cfg.User,
		cfg.Password,
		cfg.Name,
		database.WithRetryAttempts(cfg.RetryAttempts),
		database.WithLogger(slogx.Default()),
	))
	if err != nil {
		return nil, nil, fmt.Errorf("open postgres storage: %w", err)
	}

	db := database.NewDatabase(pool)

	if err := migrations.Up(ctx, db.StdDB()); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("open postgres storage: %w", err)
	}

	slogx.Info(ctx, "postgres storage opened", slog.String("addr", cfg.Addr()), slog.String("db", cfg.Name))
	return repository.New(db), db, nil
}
