package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/imkira/go-observer"

	"github.com/evgeniy-krivenko/mynotes/internal/entity"
	"github.com/evgeniy-krivenko/mynotes/pkg/logger/slogx"
)

type noteStore interface {
	Get(ctx context.Context, id int64) (entity.Note, bool, error)
	Insert(ctx context.Context, note entity.Note) (int64, error)
	Update(ctx context.Context, note entity.Note) error
	ListColors(ctx context.Context) ([]entity.Color, error)
	DefaultColor(ctx context.Context) (entity.Color, error)
}

//go:generate go run github.com/kazhuravlev/options-gen/cmd/options-gen@v0.55.3 -out-filename=session_options.gen.go -from-struct=Options
type Options struct {
	store noteStore `option:"mandatory" validate:"required"`
}

// Session owns exactly one draft for the lifetime of an edit or view.
// Methods are safe for concurrent use; storage calls happen under the session
// lock so a draft is never written twice.
type Session struct {
	Options

	mu       sync.Mutex
	draft    entity.Draft
	observer observer.Property
}

func New(opts Options) (*Session, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("validate session options: %v", err)
	}

	s := &Session{Options: opts}
	s.observer = observer.NewProperty(s.draft)

	return s, nil
}

// LoadDraft starts editing. entity.NewNoteID creates a blank draft with the
// default color; any other id loads that note.
func (s *Session) LoadDraft(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.expect(entity.SessionEmpty); err != nil {
		return fmt.Errorf("load draft: %w", err)
	}

	s.setState(entity.SessionLoading)

	note, err := s.loadNote(ctx, id)
	if err != nil {
		s.setState(entity.SessionEmpty)
		return fmt.Errorf("load draft: %w", err)
	}

	s.draft = entity.Draft{Note: note, State: entity.SessionEditing}
	s.publish()

	slogx.Debug(ctx, "draft loaded", slogx.NoteID(note.ID), slog.Bool("new", note.IsNew()))
	return nil
}

func (s *Session) loadNote(ctx context.Context, id int64) (entity.Note, error) {
	if id == entity.NewNoteID {
		color, err := s.store.DefaultColor(ctx)
		if err != nil {
			return entity.Note{}, err
		}

		return entity.Note{ID: entity.NewNoteID, ColorID: color.ID}, nil
	}

	note, ok, err := s.store.Get(ctx, id)
	if err != nil {
		return entity.Note{}, err
	}
	if !ok {
		return entity.Note{}, fmt.Errorf("note %d: %w", id, entity.ErrNoteNotFound)
	}

	return note, nil
}

// UpdateDraftField merges one field into the draft without touching storage.
func (s *Session) UpdateDraftField(field Field, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.expect(entity.SessionEditing); err != nil {
		return fmt.Errorf("update draft field: %w", err)
	}

	note := s.draft.Note
	if err := apply(&note, field, value); err != nil {
		return fmt.Errorf("update draft field: %w", err)
	}

	s.draft.Note = note
	s.publish()

	return nil
}

// Save inserts a new draft or replaces the stored row, then closes the session.
func (s *Session) Save(ctx context.Context) (entity.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.expect(entity.SessionEditing); err != nil {
		return entity.Note{}, fmt.Errorf("save draft: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return entity.Note{}, fmt.Errorf("save draft: %w", err)
	}

	note := s.draft.Note
	if note.IsNew() {
		id, err := s.store.Insert(ctx, note)
		if err != nil {
			return entity.Note{}, fmt.Errorf("save draft: %w", err)
		}
		note.ID = id
	} else if err := s.store.Update(ctx, note); err != nil {
		return entity.Note{}, fmt.Errorf("save draft: %w", err)
	}

	s.draft = entity.Draft{Note: note, State: entity.SessionSaved}
	s.publish()

	slogx.Info(ctx, "draft saved", slogx.NoteID(note.ID))
	return note, nil
}

// MoveToTrash soft-deletes the note behind the draft. A draft that was never
// saved has nothing to trash and fails with entity.ErrUnsavedNote.
func (s *Session) MoveToTrash(ctx context.Context) (entity.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.expect(entity.SessionEditing); err != nil {
		return entity.Note{}, fmt.Errorf("move to trash: %w", err)
	}

	if s.draft.IsNew() {
		return entity.Note{}, fmt.Errorf("move to trash: %w", entity.ErrUnsavedNote)
	}

	if err := ctx.Err(); err != nil {
		return entity.Note{}, fmt.Errorf("move to trash: %w", err)
	}

	note := s.draft.Note
	note.IsInTrash = true
	if err := s.store.Update(ctx, note); err != nil {
		return entity.Note{}, fmt.Errorf("move to trash: %w", err)
	}

	s.draft = entity.Draft{Note: note, State: entity.SessionSaved}
	s.publish()

	slogx.Info(ctx, "note moved to trash", slogx.NoteID(note.ID))
	return note, nil
}

// Discard abandons the draft. Calling it on a finished session is a no-op.
func (s *Session) Discard() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.draft.State.Terminal() {
		return
	}

	s.setState(entity.SessionDiscarded)
}

func (s *Session) ListColors(ctx context.Context) ([]entity.Color, error) {
	colors, err := s.store.ListColors(ctx)
	if err != nil {
		return nil, fmt.Errorf("session list colors: %w", err)
	}

	return colors, nil
}

func (s *Session) Draft() entity.Draft {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.draft
}

// Subscribe streams draft snapshots after every mutation until ctx is done.
func (s *Session) Subscribe(ctx context.Context) <-chan entity.Draft {
	stream := s.observer.Observe()

	result := make(chan entity.Draft)
	go func() {
		defer close(result)
		for {
			select {
			case <-ctx.Done():
				return

			case <-stream.Changes():
				draft := stream.Next().(entity.Draft)

				select {
				case <-ctx.Done():
					return
				case result <- draft:
				}
			}
		}
	}()

	return result
}

func (s *Session) expect(state entity.SessionState) error {
	if s.draft.State.Terminal() {
		return fmt.Errorf("%w: %s", entity.ErrSessionClosed, s.draft.State)
	}

	if s.draft.State != state {
		return fmt.Errorf("%w: %s, want %s", entity.ErrSessionState, s.draft.State, state)
	}

	return nil
}

func (s *Session) setState(state entity.SessionState) {
	s.draft.State = state
	s.publish()
}

func (s *Session) publish() {
	s.observer.Update(s.draft)
}
