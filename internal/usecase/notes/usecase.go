package notes

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/imkira/go-observer"

	"github.com/evgeniy-krivenko/mynotes/internal/entity"
	"github.com/evgeniy-krivenko/mynotes/pkg/logger/slogx"
)

// Repository is the storage contract implemented by every backend.
// Lists are ordered by descending id; missing rows yield entity.ErrNoteNotFound.
type Repository interface {
	RunInTx(ctx context.Context, f func(context.Context) error) error
	Ping(ctx context.Context) error

	HasNotes(ctx context.Context) (bool, error)
	LastNoteID(ctx context.Context) (int64, error)
	SeedNotes(ctx context.Context, notes []entity.Note) error
	CreateNote(ctx context.Context, note entity.Note) (entity.Note, error)
	UpdateNote(ctx context.Context, note entity.Note) error
	GetNote(ctx context.Context, id int64) (entity.Note, error)
	ListNotes(ctx context.Context, inTrash bool) ([]entity.Note, error)
	DeleteNote(ctx context.Context, id int64) error
	DeleteTrashedNotes(ctx context.Context) ([]int64, error)

	HasColors(ctx context.Context) (bool, error)
	SeedColors(ctx context.Context, colors []entity.Color) error
	ListColors(ctx context.Context) ([]entity.Color, error)
	ColorExists(ctx context.Context, id int64) (bool, error)
}

//go:generate go run github.com/kazhuravlev/options-gen/cmd/options-gen@v0.55.3 -out-filename=usecase_options.gen.go -from-struct=Options
type Options struct {
	repo Repository `option:"mandatory" validate:"required"`
}

// Store is the single source of truth for notes.
type Store struct {
	Options
	observer observer.Property
}

func New(opts Options) (*Store, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("validate notes usecase options: %v", err)
	}

	prop := observer.NewProperty(entity.NotesChangedEvent{})

	return &Store{Options: opts, observer: prop}, nil
}

// SeedIfEmpty fills the palette and the default notes on the first run only.
// Notes are not seeded once any id was handed out, even if the table is empty now.
func (s *Store) SeedIfEmpty(ctx context.Context) error {
	var seeded bool
	err := s.repo.RunInTx(ctx, func(ctx context.Context) error {
		hasColors, err := s.repo.HasColors(ctx)
		if err != nil {
			return err
		}
		if !hasColors {
			if err := s.repo.SeedColors(ctx, entity.DefaultColors()); err != nil {
				return err
			}
		}

		hasNotes, err := s.repo.HasNotes(ctx)
		if err != nil {
			return err
		}
		lastID, err := s.repo.LastNoteID(ctx)
		if err != nil {
			return err
		}
		if hasNotes || lastID > 0 {
			return nil
		}

		if err := s.repo.SeedNotes(ctx, entity.DefaultNotes()); err != nil {
			return err
		}
		seeded = true

		return nil
	})
	if err != nil {
		return fmt.Errorf("usecase seed if empty: %w", err)
	}

	if seeded {
		ids := entity.NoteIDs(entity.DefaultNotes())
		s.publish(entity.ChangeSeeded, ids...)
		slogx.Info(ctx, "seeded default notes", slogx.NoteIDs(ids))
	}

	return nil
}

func (s *Store) Insert(ctx context.Context, note entity.Note) (int64, error) {
	if !note.IsNew() {
		return 0, fmt.Errorf("usecase insert note: %w: id must be %d, got %d",
			entity.ErrValidation, entity.NewNoteID, note.ID)
	}

	colorID, err := s.resolveColor(ctx, note.ColorID)
	if err != nil {
		return 0, fmt.Errorf("usecase insert note: %w", err)
	}
	note.ColorID = colorID

	created, err := s.repo.CreateNote(ctx, note)
	if err != nil {
		return 0, fmt.Errorf("usecase insert note: %w", err)
	}

	s.publish(entity.ChangeCreated, created.ID)

	slogx.Info(ctx, "success to create note", slogx.NoteID(created.ID))
	return created.ID, nil
}

// Update replaces the whole row keyed by note.ID.
func (s *Store) Update(ctx context.Context, note entity.Note) error {
	if note.IsNew() {
		return fmt.Errorf("usecase update note: %w", entity.ErrNoteNotFound)
	}

	var kind entity.ChangeKind
	err := s.repo.RunInTx(ctx, func(ctx context.Context) error {
		prev, err := s.repo.GetNote(ctx, note.ID)
		if err != nil {
			return err
		}

		colorID, err := s.resolveColor(ctx, note.ColorID)
		if err != nil {
			return err
		}
		note.ColorID = colorID

		if err := s.repo.UpdateNote(ctx, note); err != nil {
			return err
		}

		kind = changeKind(prev, note)
		return nil
	})
	if err != nil {
		return fmt.Errorf("usecase update note: %w", err)
	}

	s.publish(kind, note.ID)

	slogx.Info(ctx, "success to update note", slogx.NoteID(note.ID), slog.String("change", string(kind)))
	return nil
}

func changeKind(prev, next entity.Note) entity.ChangeKind {
	switch {
	case !prev.IsInTrash && next.IsInTrash:
		return entity.ChangeTrashed
	case prev.IsInTrash && !next.IsInTrash:
		return entity.ChangeRestored
	default:
		return entity.ChangeUpdated
	}
}

// Delete removes the row permanently.
func (s *Store) Delete(ctx context.Context, id int64) error {
	if err := s.repo.DeleteNote(ctx, id); err != nil {
		return fmt.Errorf("usecase delete note: %w", err)
	}

	s.publish(entity.ChangeDeleted, id)

	slogx.Info(ctx, "success to delete note", slogx.NoteID(id))
	return nil
}

// Get returns false when the note does not exist.
func (s *Store) Get(ctx context.Context, id int64) (entity.Note, bool, error) {
	note, err := s.repo.GetNote(ctx, id)
	if err != nil {
		if errors.Is(err, entity.ErrNoteNotFound) {
			return entity.Note{}, false, nil
		}
		return entity.Note{}, false, fmt.Errorf("usecase get note: %w", err)
	}

	return note, true, nil
}

func (s *Store) ListActive(ctx context.Context) ([]entity.Note, error) {
	notes, err := s.repo.ListNotes(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("usecase list active notes: %w", err)
	}

	return notes, nil
}

func (s *Store) ListTrash(ctx context.Context) ([]entity.Note, error) {
	notes, err := s.repo.ListNotes(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("usecase list trash: %w", err)
	}

	return notes, nil
}

// Restore takes notes out of the trash. Either every id is restored or none.
func (s *Store) Restore(ctx context.Context, ids ...int64) error {
	if len(ids) == 0 {
		return nil
	}

	err := s.repo.RunInTx(ctx, func(ctx context.Context) error {
		notes := make([]entity.Note, 0, len(ids))
		for _, id := range ids {
			note, err := s.repo.GetNote(ctx, id)
			if err != nil {
				return fmt.Errorf("note %d: %w", id, err)
			}
			notes = append(notes, note)
		}

		for _, note := range notes {
			if !note.IsInTrash {
				continue
			}
			note.IsInTrash = false
			if err := s.repo.UpdateNote(ctx, note); err != nil {
				return fmt.Errorf("note %d: %w", note.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("usecase restore notes: %w", err)
	}

	s.publish(entity.ChangeRestored, ids...)

	slogx.Info(ctx, "success to restore notes", slogx.NoteIDs(ids))
	return nil
}

// PurgeTrash hard-deletes every trashed note and returns the removed ids.
func (s *Store) PurgeTrash(ctx context.Context) ([]int64, error) {
	ids, err := s.repo.DeleteTrashedNotes(ctx)
	if err != nil {
		return nil, fmt.Errorf("usecase purge trash: %w", err)
	}

	if len(ids) > 0 {
		s.publish(entity.ChangePurged, ids...)
	}

	slogx.Info(ctx, "success to purge trash", slogx.NoteIDs(ids))
	return ids, nil
}

func (s *Store) ListColors(ctx context.Context) ([]entity.Color, error) {
	colors, err := s.repo.ListColors(ctx)
	if err != nil {
		return nil, fmt.Errorf("usecase list colors: %w", err)
	}

	return colors, nil
}

// DefaultColor is the first palette entry, or FallbackColorID for an empty palette.
func (s *Store) DefaultColor(ctx context.Context) (entity.Color, error) {
	colors, err := s.ListColors(ctx)
	if err != nil {
		return entity.Color{}, err
	}

	if len(colors) == 0 {
		return entity.Color{ID: entity.FallbackColorID}, nil
	}

	return colors[0], nil
}

func (s *Store) resolveColor(ctx context.Context, id int64) (int64, error) {
	if id != 0 {
		ok, err := s.repo.ColorExists(ctx, id)
		if err != nil {
			return 0, err
		}
		if ok {
			return id, nil
		}
	}

	def, err := s.DefaultColor(ctx)
	if err != nil {
		return 0, err
	}

	if id != 0 {
		slogx.Debug(ctx, "unknown color, using default",
			slog.Int64("color_id", id), slog.Int64("default_color_id", def.ID))
	}

	return def.ID, nil
}

func (s *Store) Ping(ctx context.Context) error {
	if err := s.repo.Ping(ctx); err != nil {
		return fmt.Errorf("usecase ping: %w", err)
	}

	return nil
}

func (s *Store) publish(kind entity.ChangeKind, ids ...int64) {
	s.observer.Update(entity.NotesChangedEvent{Kind: kind, NoteIDs: ids})
}

// Subscribe streams a fresh active-notes snapshot after every completed write.
// The channel is closed when ctx is done.
func (s *Store) Subscribe(ctx context.Context) <-chan entity.NotesSnapshot {
	stream := s.observer.Observe()

	result := make(chan entity.NotesSnapshot)
	go func() {
		defer close(result)
		for {
			select {
			case <-ctx.Done():
				return

			case <-stream.Changes():
				event := stream.Next().(entity.NotesChangedEvent)

				active, err := s.ListActive(ctx)
				if err != nil {
					if ctx.Err() != nil {
						return
					}
					slogx.Warn(ctx, "failed to load notes snapshot", slogx.Err(err))
					continue
				}

				select {
				case <-ctx.Done():
					return
				case result <- entity.NotesSnapshot{Event: event, Active: active}:
				}
			}
		}
	}()

	return result
}
