package notes

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/evgeniy-krivenko/mynotes/pkg/logger/slogx"
)

const heartbeatInterval = 15 * time.Second

// streamEvents pushes a NotesSnapshot as a server-sent event after every store write.
func (h *Handler) streamEvents(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "streaming unsupported"})
		return
	}

	snapshots := h.store.Subscribe(ctx)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	_, _ = w.Write([]byte(":\n\n"))
	flusher.Flush()

	heartbeat := time.NewTicker(heartbeatInterval)
	defer heartbeat.Stop()

	var count int
	defer func() {
		slogx.Debug(ctx, "events stream closed", slog.Int("sent", count))
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case <-heartbeat.C:
			if _, err := w.Write([]byte(": ping\n\n")); err != nil {
				return
			}
			flusher.Flush()

		case snap, ok := <-snapshots:
			if !ok {
				return
			}

			data, err := json.Marshal(toEventDTO(snap))
			if err != nil {
				slogx.Warn(ctx, "failed to encode notes event", slogx.Err(err))
				continue
			}

			if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", snap.Event.Kind, data); err != nil {
				return
			}
			flusher.Flush()
			count++
		}
	}
}
