package boltrepo

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/evgeniy-krivenko/mynotes/internal/entity"
)

var (
	bucketNotes  = []byte("notes")
	bucketColors = []byte("colors")
)

// Repo is the embedded single-file note storage.
type Repo struct {
	db *bolt.DB
}

func Open(path string) (*Repo, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("bolt db path is required")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create bolt dir: %v", err)
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 2 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("%w: open bolt db: %v", entity.ErrStorageUnavailable, err)
	}

	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init bolt schema: %v", err)
	}

	return &Repo{db: db}, nil
}

func initSchema(db *bolt.DB) error {
	return db.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(bucketNotes); err != nil {
			return err
		}
		if _, err := tx.CreateBucketIfNotExists(bucketColors); err != nil {
			return err
		}
		return nil
	})
}

func (r *Repo) Close() error {
	if r == nil || r.db == nil {
		return nil
	}

	return r.db.Close()
}

// RunInTx runs f inside one read-write bolt transaction. Repo calls made with
// the ctx passed to f join it; a nested RunInTx joins the outer transaction.
func (r *Repo) RunInTx(ctx context.Context, f func(context.Context) error) error {
	if txFromContext(ctx) != nil {
		return f(ctx)
	}

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("run in tx: %w", err)
	}

	return wrapErr("run in tx", r.db.Update(func(tx *bolt.Tx) error {
		return f(newTxContext(ctx, tx))
	}))
}

func (r *Repo) Ping(ctx context.Context) error {
	return r.view(ctx, "ping", func(*bolt.Tx) error { return nil })
}

func (r *Repo) view(ctx context.Context, op string, fn func(*bolt.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if tx := txFromContext(ctx); tx != nil {
		return wrapErr(op, fn(tx))
	}

	return wrapErr(op, r.db.View(fn))
}

func (r *Repo) update(ctx context.Context, op string, fn func(*bolt.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if tx := txFromContext(ctx); tx != nil {
		return wrapErr(op, fn(tx))
	}

	return wrapErr(op, r.db.Update(fn))
}

type txCtxKey struct{}

func txFromContext(ctx context.Context) *bolt.Tx {
	tx, _ := ctx.Value(txCtxKey{}).(*bolt.Tx)

	return tx
}

func newTxContext(parent context.Context, tx *bolt.Tx) context.Context {
	return context.WithValue(parent, txCtxKey{}, tx)
}

func wrapErr(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, entity.ErrNoteNotFound), errors.Is(err, entity.ErrValidation):
		return err
	case errors.Is(err, bolt.ErrDatabaseNotOpen), errors.Is(err, bolt.ErrTimeout):
		return fmt.Errorf("%w: %s: %v", entity.ErrStorageUnavailable, op, err)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

func itob(id int64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(id))
	return b
}

func btoi(b []byte) int64 {
	return int64(binary.BigEndian.Uint64(b))
}
