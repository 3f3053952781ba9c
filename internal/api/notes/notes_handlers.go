package notes

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/evgeniy-krivenko/mynotes/internal/entity"
)

func (h *Handler) listNotes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	trash := false
	if raw := r.URL.Query().Get("trash"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			writeError(ctx, w, fmt.Errorf("%w: invalid trash flag %q", errBadRequest, raw))
			return
		}
		trash = v
	}

	var (
		notes []entity.Note
		err   error
	)
	if trash {
		notes, err = h.store.ListTrash(ctx)
	} else {
		notes, err = h.store.ListActive(ctx)
	}
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeJSON(w, http.StatusOK, toNoteDTOs(notes))
}

func (h *Handler) getNote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathID(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	note, ok, err := h.store.Get(ctx, id)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if !ok {
		writeError(ctx, w, fmt.Errorf("note %d: %w", id, entity.ErrNoteNotFound))
		return
	}

	writeJSON(w, http.StatusOK, toNoteDTO(note))
}

func (h *Handler) deleteNote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathID(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.store.Delete(ctx, id); err != nil {
		writeError(ctx, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) restoreNotes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req restoreRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.store.Restore(ctx, req.IDs...); err != nil {
		writeError(ctx, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) purgeTrash(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	ids, err := h.store.PurgeTrash(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	if ids == nil {
		ids = []int64{}
	}

	writeJSON(w, http.StatusOK, purgeResponse{IDs: ids})
}

func (h *Handler) listColors(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	colors, err := h.store.ListColors(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeJSON(w, http.StatusOK, toColorDTOs(colors))
}
