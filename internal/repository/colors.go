package repository

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/evgeniy-krivenko/mynotes/internal/entity"
	"github.com/evgeniy-krivenko/mynotes/internal/repository/converter"
	"github.com/evgeniy-krivenko/mynotes/internal/repository/model"
)

var colorColumns = strings.Join(model.ColorColumns, ", ")

func (r *Repo) HasColors(ctx context.Context) (bool, error) {
	var ok bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM colors)`).Scan(&ok); err != nil {
		return false, wrapErr("has colors", err)
	}

	return ok, nil
}

func (r *Repo) SeedColors(ctx context.Context, colors []entity.Color) error {
	rows := make([][]any, 0, len(colors))
	for _, c := range colors {
		if err := c.Validate(); err != nil {
			return err
		}
		rows = append(rows, []any{c.ID, c.Name, c.Hex})
	}

	if _, err := r.db.CopyFrom(ctx, pgx.Identifier{"colors"}, model.ColorColumns, pgx.CopyFromRows(rows)); err != nil {
		return wrapErr("seed colors", err)
	}

	return nil
}

func (r *Repo) ListColors(ctx context.Context) ([]entity.Color, error) {
	rows, err := r.db.Query(ctx, "SELECT "+colorColumns+" FROM colors ORDER BY id")
	if err != nil {
		return nil, wrapErr("list colors", err)
	}

	list, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Color])
	if err != nil {
		return nil, wrapErr("list colors", err)
	}

	return converter.ConvertColorsToEntity(list), nil
}

func (r *Repo) ColorExists(ctx context.Context, id int64) (bool, error) {
	var ok bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM colors WHERE id = $1)`, id).Scan(&ok); err != nil {
		return false, wrapErr("color exists", err)
	}

	return ok, nil
}
