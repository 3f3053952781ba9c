package boltrepo

import (
	"context"
	"encoding/json"

	bolt "go.etcd.io/bbolt"

	"github.com/evgeniy-krivenko/mynotes/internal/entity"
	"github.com/evgeniy-krivenko/mynotes/internal/repository/converter"
	"github.com/evgeniy-krivenko/mynotes/internal/repository/model"
)

func (r *Repo) HasColors(ctx context.Context) (bool, error) {
	var ok bool
	err := r.view(ctx, "has colors", func(tx *bolt.Tx) error {
		k, _ := tx.Bucket(bucketColors).Cursor().First()
		ok = k != nil
		return nil
	})

	return ok, err
}

func (r *Repo) SeedColors(ctx context.Context, colors []entity.Color) error {
	for _, c := range colors {
		if err := c.Validate(); err != nil {
			return err
		}
	}

	return r.update(ctx, "seed colors", func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketColors)
		for _, c := range colors {
			raw, err := json.Marshal(converter.ConvertColorToModel(c))
			if err != nil {
				return err
			}
			if err := b.Put(itob(c.ID), raw); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *Repo) ListColors(ctx context.Context) ([]entity.Color, error) {
	rows := make([]model.Color, 0)
	err := r.view(ctx, "list colors", func(tx *bolt.Tx) error {
		return tx.Bucket(bucketColors).ForEach(func(_, v []byte) error {
			var row model.Color
			if err := json.Unmarshal(v, &row); err != nil {
				return err
			}
			rows = append(rows, row)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	return converter.ConvertColorsToEntity(rows), nil
}

func (r *Repo) ColorExists(ctx context.Context, id int64) (bool, error) {
	var ok bool
	err := r.view(ctx, "color exists", func(tx *bolt.Tx) error {
		ok = tx.Bucket(bucketColors).Get(itob(id)) != nil
		return nil
	})

	return ok, err
}
