package boltrepo

import (
	"context"
	"encoding/json"

	bolt "go.etcd.io/bbolt"

	"github.com/evgeniy-krivenko/mynotes/internal/entity"
	"github.com/evgeniy-krivenko/mynotes/internal/repository/converter"
	"github.com/evgeniy-krivenko/mynotes/internal/repository/model"
	"github.com/evgeniy-krivenko/mynotes/pkg/logger/slogx"
)

func putNote(b *bolt.Bucket, note entity.Note) error {
	raw, err := json.Marshal(converter.ConvertNoteToModel(note))
	if err != nil {
		return err
	}

	return b.Put(itob(note.ID), raw)
}

func decodeNote(raw []byte) (entity.Note, error) {
	var row model.Note
	if err := json.Unmarshal(raw, &row); err != nil {
		return entity.Note{}, err
	}

	return converter.ConvertNoteToEntity(row), nil
}

func (r *Repo) HasNotes(ctx context.Context) (bool, error) {
	var ok bool
	err := r.view(ctx, "has notes", func(tx *bolt.Tx) error {
		k, _ := tx.Bucket(bucketNotes).Cursor().First()
		ok = k != nil
		return nil
	})

	return ok, err
}

// LastNoteID returns the bucket sequence, 0 if no id was ever assigned.
func (r *Repo) LastNoteID(ctx context.Context) (int64, error) {
	var id int64
	err := r.view(ctx, "last note id", func(tx *bolt.Tx) error {
		id = int64(tx.Bucket(bucketNotes).Sequence())
		return nil
	})

	return id, err
}

func (r *Repo) SeedNotes(ctx context.Context, notes []entity.Note) error {
	err := r.update(ctx, "seed notes", func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketNotes)

		maxID := b.Sequence()
		for _, n := range notes {
			if err := putNote(b, n); err != nil {
				return err
			}
			maxID = max(maxID, uint64(n.ID))
		}

		return b.SetSequence(maxID)
	})
	if err != nil {
		return err
	}

	slogx.Debug(ctx, "seeded notes", slogx.NoteIDs(entity.NoteIDs(notes)))

	return nil
}

func (r *Repo) CreateNote(ctx context.Context, note entity.Note) (entity.Note, error) {
	err := r.update(ctx, "create note", func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketNotes)

		seq, err := b.NextSequence()
		if err != nil {
			return err
		}
		note.ID = int64(seq)

		return putNote(b, note)
	})
	if err != nil {
		return entity.Note{}, err
	}

	slogx.Debug(ctx, "success to create note", slogx.NoteID(note.ID))

	return note, nil
}

func (r *Repo) UpdateNote(ctx context.Context, note entity.Note) error {
	return r.update(ctx, "update note", func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketNotes)
		if b.Get(itob(note.ID)) == nil {
			return entity.ErrNoteNotFound
		}

		return putNote(b, note)
	})
}

func (r *Repo) GetNote(ctx context.Context, id int64) (entity.Note, error) {
	var note entity.Note
	err := r.view(ctx, "get note", func(tx *bolt.Tx) error {
		raw := tx.Bucket(bucketNotes).Get(itob(id))
		if raw == nil {
			return entity.ErrNoteNotFound
		}

		var err error
		note, err = decodeNote(raw)
		return err
	})
	if err != nil {
		return entity.Note{}, err
	}

	return note, nil
}

// ListNotes walks keys backwards so the result is ordered by descending id.
func (r *Repo) ListNotes(ctx context.Context, inTrash bool) ([]entity.Note, error) {
	out := make([]entity.Note, 0)
	err := r.view(ctx, "list notes", func(tx *bolt.Tx) error {
		c := tx.Bucket(bucketNotes).Cursor()
		for k, v := c.Last(); k != nil; k, v = c.Prev() {
			note, err := decodeNote(v)
			if err != nil {
				return err
			}
			if note.IsInTrash == inTrash {
				out = append(out, note)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

func (r *Repo) DeleteNote(ctx context.Context, id int64) error {
	return r.update(ctx, "delete note", func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketNotes)
		if b.Get(itob(id)) == nil {
			return entity.ErrNoteNotFound
		}

		return b.Delete(itob(id))
	})
}

func (r *Repo) DeleteTrashedNotes(ctx context.Context) ([]int64, error) {
	ids := make([]int64, 0)
	err := r.update(ctx, "delete trashed notes", func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketNotes)

		c := b.Cursor()
		for k, v := c.Last(); k != nil; k, v = c.Prev() {
			note, err := decodeNote(v)
			if err != nil {
				return err
			}
			if note.IsInTrash {
				ids = append(ids, btoi(k))
			}
		}

		for _, id := range ids {
			if err := b.Delete(itob(id)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return ids, nil
}
