package repository

import (
	"cmp"
	"context"
	"errors"
	"slices"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/evgeniy-krivenko/mynotes/internal/entity"
	"github.com/evgeniy-krivenko/mynotes/internal/repository/converter"
	"github.com/evgeniy-krivenko/mynotes/internal/repository/model"
	"github.com/evgeniy-krivenko/mynotes/pkg/logger/slogx"
)

var noteColumns = strings.Join(model.NoteColumns, ", ")

const (
	hasNotesSQL = `SELECT EXISTS (SELECT 1 FROM notes)`

	lastNoteIDSQL = `SELECT CASE WHEN is_called THEN last_value ELSE 0 END FROM notes_id_seq`

	advanceNoteIDSQL = `SELECT setval('notes_id_seq', (SELECT max(id) FROM notes))`

	createNoteSQL = `
INSERT INTO notes (title, content, category, can_be_checked_off, is_checked_off, color_id, in_trash)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING `

	updateNoteSQL = `
UPDATE notes
SET title = $2, content = $3, category = $4, can_be_checked_off = $5,
    is_checked_off = $6, color_id = $7, in_trash = $8
WHERE id = $1`

	deleteNoteSQL = `DELETE FROM notes WHERE id = $1`

	deleteTrashedNotesSQL = `DELETE FROM notes WHERE in_trash RETURNING id`
)

func (r *Repo) HasNotes(ctx context.Context) (bool, error) {
	var ok bool
	if err := r.db.QueryRow(ctx, hasNotesSQL).Scan(&ok); err != nil {
		return false, wrapErr("has notes", err)
	}

	return ok, nil
}

// LastNoteID returns the last id handed out by the sequence, 0 if none ever was.
func (r *Repo) LastNoteID(ctx context.Context) (int64, error) {
	var id int64
	if err := r.db.QueryRow(ctx, lastNoteIDSQL).Scan(&id); err != nil {
		return 0, wrapErr("last note id", err)
	}

	return id, nil
}

// SeedNotes inserts notes with their own ids and moves the sequence past them.
func (r *Repo) SeedNotes(ctx context.Context, notes []entity.Note) error {
	rows := make([][]any, 0, len(notes))
	for _, n := range notes {
		rows = append(rows, converter.NoteValues(n))
	}

	if _, err := r.db.CopyFrom(ctx, pgx.Identifier{"notes"}, model.NoteColumns, pgx.CopyFromRows(rows)); err != nil {
		return wrapErr("seed notes", err)
	}

	if _, err := r.db.Exec(ctx, advanceNoteIDSQL); err != nil {
		return wrapErr("advance note id", err)
	}

	slogx.Debug(ctx, "seeded notes", slogx.NoteIDs(entity.NoteIDs(notes)))

	return nil
}

func (r *Repo) CreateNote(ctx context.Context, note entity.Note) (entity.Note, error) {
	rows, err := r.db.Query(ctx, createNoteSQL+noteColumns,
		note.Title,
		note.Content,
		note.Category,
		note.CanBeCheckedOff,
		note.IsCheckedOff,
		note.ColorID,
		note.IsInTrash,
	)
	if err != nil {
		return entity.Note{}, wrapErr("create note", err)
	}

	row, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Note])
	if err != nil {
		return entity.Note{}, wrapErr("create note", err)
	}

	slogx.Debug(ctx, "success to create note", slogx.NoteID(row.ID))

	return converter.ConvertNoteToEntity(row), nil
}

func (r *Repo) UpdateNote(ctx context.Context, note entity.Note) error {
	tag, err := r.db.Exec(ctx, updateNoteSQL, converter.NoteValues(note)...)
	if err != nil {
		return wrapErr("update note", err)
	}

	if tag.RowsAffected() == 0 {
		return entity.ErrNoteNotFound
	}

	return nil
}

func (r *Repo) GetNote(ctx context.Context, id int64) (entity.Note, error) {
	rows, err := r.db.Query(ctx, "SELECT "+noteColumns+" FROM notes WHERE id = $1", id)
	if err != nil {
		return entity.Note{}, wrapErr("get note", err)
	}

	row, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Note])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.Note{}, entity.ErrNoteNotFound
		}
		return entity.Note{}, wrapErr("get note", err)
	}

	return converter.ConvertNoteToEntity(row), nil
}

func (r *Repo) ListNotes(ctx context.Context, inTrash bool) ([]entity.Note, error) {
	rows, err := r.db.Query(ctx,
		"SELECT "+noteColumns+" FROM notes WHERE in_trash = $1 ORDER BY id DESC", inTrash)
	if err != nil {
		return nil, wrapErr("list notes", err)
	}

	list, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Note])
	if err != nil {
		return nil, wrapErr("list notes", err)
	}

	return converter.ConvertNotesToEntity(list), nil
}

func (r *Repo) DeleteNote(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, deleteNoteSQL, id)
	if err != nil {
		return wrapErr("delete note", err)
	}

	if tag.RowsAffected() == 0 {
		return entity.ErrNoteNotFound
	}

	return nil
}

func (r *Repo) DeleteTrashedNotes(ctx context.Context) ([]int64, error) {
	rows, err := r.db.Query(ctx, deleteTrashedNotesSQL)
	if err != nil {
		return nil, wrapErr("delete trashed notes", err)
	}

	ids, err := pgx.CollectRows(rows, pgx.RowTo[int64])
	if err != nil {
		return nil, wrapErr("delete trashed notes", err)
	}

	slices.SortFunc(ids, func(a, b int64) int { return cmp.Compare(b, a) })

	return ids, nil
}
