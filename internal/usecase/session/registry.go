package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/evgeniy-krivenko/mynotes/internal/entity"
	"github.com/evgeniy-krivenko/mynotes/pkg/logger/slogx"
)

// Registry hands out session handles to callers that cannot hold a *Session
// themselves, such as HTTP clients. Handles untouched for longer than the idle
// TTL are discarded by Run.
type Registry struct {
	store   noteStore
	idleTTL time.Duration
	now     func() time.Time

	mu       sync.Mutex
	sessions map[string]*entry
}

type entry struct {
	session *Session
	touched time.Time
}

// NewRegistry returns a registry that evicts handles idle for longer than
// idleTTL. A non-positive idleTTL keeps handles until they are closed.
func NewRegistry(store noteStore, idleTTL time.Duration) *Registry {
	return &Registry{
		store:    store,
		idleTTL:  idleTTL,
		now:      time.Now,
		sessions: make(map[string]*entry),
	}
}

// Open creates a session and loads its draft; see Session.LoadDraft.
func (r *Registry) Open(ctx context.Context, noteID int64) (string, *Session, error) {
	s, err := New(NewOptions(r.store))
	if err != nil {
		return "", nil, fmt.Errorf("open session: %w", err)
	}

	if err := s.LoadDraft(ctx, noteID); err != nil {
		return "", nil, fmt.Errorf("open session: %w", err)
	}

	id := uuid.NewString()

	r.mu.Lock()
	r.sessions[id] = &entry{session: s, touched: r.now()}
	r.mu.Unlock()

	slogx.Debug(ctx, "session opened", slogx.SessionID(id), slogx.NoteID(noteID))
	return id, s, nil
}

func (r *Registry) Get(id string) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.sessions[id]
	if !ok {
		return nil, fmt.Errorf("session %s: %w", id, entity.ErrSessionNotFound)
	}
	e.touched = r.now()

	return e.session, nil
}

// Close discards the session's draft and forgets the handle.
func (r *Registry) Close(id string) error {
	r.mu.Lock()
	e, ok := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()

	if !ok {
		return fmt.Errorf("session %s: %w", id, entity.ErrSessionNotFound)
	}

	e.session.Discard()
	return nil
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.sessions)
}

// Run sweeps idle handles every half TTL until ctx is done.
func (r *Registry) Run(ctx context.Context) error {
	if r.idleTTL <= 0 {
		<-ctx.Done()
		return nil
	}

	ticker := time.NewTicker(r.idleTTL / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if n := r.Sweep(r.now()); n > 0 {
				slogx.Debug(ctx, "idle sessions evicted", slog.Int("count", n))
			}
		}
	}
}

// Sweep discards every handle last touched more than the idle TTL before now
// and returns how many were evicted.
func (r *Registry) Sweep(now time.Time) int {
	if r.idleTTL <= 0 {
		return 0
	}

	var idle []*Session

	r.mu.Lock()
	for id, e := range r.sessions {
		if now.Sub(e.touched) > r.idleTTL {
			idle = append(idle, e.session)
			delete(r.sessions, id)
		}
	}
	r.mu.Unlock()

	for _, s := range idle {
		s.Discard()
	}

	return len(idle)
}
