package notes

import (
	"context"
	"fmt"
	"net/http"

	"github.com/evgeniy-krivenko/mynotes/internal/entity"
	"github.com/evgeniy-krivenko/mynotes/internal/usecase/session"
)

type noteStore interface {
	Get(ctx context.Context, id int64) (entity.Note, bool, error)
	ListActive(ctx context.Context) ([]entity.Note, error)
	ListTrash(ctx context.Context) ([]entity.Note, error)
	Delete(ctx context.Context, id int64) error
	Restore(ctx context.Context, ids ...int64) error
	PurgeTrash(ctx context.Context) ([]int64, error)
	ListColors(ctx context.Context) ([]entity.Color, error)
	Subscribe(ctx context.Context) <-chan entity.NotesSnapshot
}

type sessionRegistry interface {
	Open(ctx context.Context, noteID int64) (string, *session.Session, error)
	Get(id string) (*session.Session, error)
	Close(id string) error
}

//go:generate go run github.com/kazhuravlev/options-gen/cmd/options-gen@v0.55.3 -out-filename=handler_options.gen.go -from-struct=Options
type Options struct {
	store    noteStore       `option:"mandatory" validate:"required"`
	sessions sessionRegistry `option:"mandatory" validate:"required"`
}

// Handler serves the /v1 JSON API over the note store and edit sessions.
type Handler struct {
	Options
	mux *http.ServeMux
}

func New(opts Options) (*Handler, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("validate notes api options: %v", err)
	}

	h := &Handler{Options: opts, mux: http.NewServeMux()}

	h.mux.HandleFunc("GET /v1/notes", h.listNotes)
	h.mux.HandleFunc("GET /v1/notes/{id}", h.getNote)
	h.mux.HandleFunc("DELETE /v1/notes/{id}", h.deleteNote)
	h.mux.HandleFunc("POST /v1/notes/restore", h.restoreNotes)
	h.mux.HandleFunc("DELETE /v1/trash", h.purgeTrash)
	h.mux.HandleFunc("GET /v1/colors", h.listColors)

	h.mux.HandleFunc("POST /v1/sessions", h.openSession)
	h.mux.HandleFunc("GET /v1/sessions/{sid}", h.getSession)
	h.mux.HandleFunc("PATCH /v1/sessions/{sid}/draft", h.updateDraft)
	h.mux.HandleFunc("POST /v1/sessions/{sid}/save", h.saveSession)
	h.mux.HandleFunc("POST /v1/sessions/{sid}/trash", h.trashSession)
	h.mux.HandleFunc("DELETE /v1/sessions/{sid}", h.closeSession)

	h.mux.HandleFunc("GET /v1/events", h.streamEvents)

	return h, nil
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}
