package notes

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/evgeniy-krivenko/mynotes/internal/entity"
	"github.com/evgeniy-krivenko/mynotes/internal/usecase/session"
	"github.com/evgeniy-krivenko/mynotes/pkg/logger/slogx"
)

// openSession starts an edit session; an empty body or note_id 0 opens a new draft.
func (h *Handler) openSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req openSessionRequest
	if err := decodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		writeError(ctx, w, err)
		return
	}

	sid, s, err := h.sessions.Open(ctx, req.NoteID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeJSON(w, http.StatusCreated, sessionDTO{SessionID: sid, Draft: toDraftDTO(s.Draft())})
}

func (h *Handler) getSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sid := r.PathValue("sid")

	s, err := h.sessions.Get(sid)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeJSON(w, http.StatusOK, sessionDTO{SessionID: sid, Draft: toDraftDTO(s.Draft())})
}

func (h *Handler) updateDraft(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sid := r.PathValue("sid")

	var req updateDraftRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	s, err := h.sessions.Get(sid)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := s.UpdateDraftField(session.Field(req.Field), req.Value); err != nil {
		writeError(ctx, w, err)
		return
	}

	writeJSON(w, http.StatusOK, sessionDTO{SessionID: sid, Draft: toDraftDTO(s.Draft())})
}

func (h *Handler) saveSession(w http.ResponseWriter, r *http.Request) {
	h.finishSession(w, r, (*session.Session).Save)
}

func (h *Handler) trashSession(w http.ResponseWriter, r *http.Request) {
	h.finishSession(w, r, (*session.Session).MoveToTrash)
}

// finishSession runs a terminal session operation and releases the handle on success.
func (h *Handler) finishSession(
	w http.ResponseWriter,
	r *http.Request,
	op func(*session.Session, context.Context) (entity.Note, error),
) {
	ctx := r.Context()
	sid := r.PathValue("sid")

	s, err := h.sessions.Get(sid)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	if _, err := op(s, ctx); err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.sessions.Close(sid); err != nil {
		slogx.Debug(ctx, "session already released", slogx.SessionID(sid), slogx.Err(err))
	}

	writeJSON(w, http.StatusOK, sessionDTO{SessionID: sid, Draft: toDraftDTO(s.Draft())})
}

func (h *Handler) closeSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.sessions.Close(r.PathValue("sid")); err != nil {
		writeError(ctx, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
