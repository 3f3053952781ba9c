package notes_test

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	notesapi "github.com/evgeniy-krivenko/mynotes/internal/api/notes"
	"github.com/evgeniy-krivenko/mynotes/internal/entity"
	"github.com/evgeniy-krivenko/mynotes/internal/repository/boltrepo"
	"github.com/evgeniy-krivenko/mynotes/internal/usecase/notes"
	"github.com/evgeniy-krivenko/mynotes/internal/usecase/session"
)

type note struct {
	ID              int64  `json:"id"`
	Title           string `json:"title"`
	Content         string `json:"content"`
	Category        string `json:"category"`
	CanBeCheckedOff bool   `json:"can_be_checked_off"`
	IsCheckedOff    bool   `json:"is_checked_off"`
	ColorID         int64  `json:"color_id"`
	IsInTrash       bool   `json:"is_in_trash"`
}

type sessionResp struct {
	SessionID string `json:"session_id"`
	Draft     struct {
		State string `json:"state"`
		IsNew bool   `json:"is_new"`
		Note  note   `json:"note"`
	} `json:"draft"`
}

type fixture struct {
	store   *notes.Store
	repo    *boltrepo.Repo
	handler http.Handler
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	repo, err := boltrepo.Open(filepath.Join(t.TempDir(), "notes.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })

	store, err := notes.New(notes.NewOptions(repo))
	require.NoError(t, err)
	require.NoError(t, store.SeedIfEmpty(context.Background()))

	h, err := notesapi.New(notesapi.NewOptions(store, session.NewRegistry(store, time.Minute)))
	require.NoError(t, err)

	return &fixture{store: store, repo: repo, handler: h}
}

func (f *fixture) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)

	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())

	return v
}

func TestListNotes(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodGet, "/v1/notes", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	active := decode[[]note](t, rec)
	require.Len(t, active, 2)
	assert.EqualValues(t, 2, active[0].ID)
	assert.Equal(t, "Ter", active[0].Title)
	assert.EqualValues(t, 1, active[1].ID)

	rec = f.do(t, http.MethodGet, "/v1/notes?trash=true", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[[]note](t, rec))

	rec = f.do(t, http.MethodGet, "/v1/notes?trash=maybe", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetAndDeleteNote(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodGet, "/v1/notes/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "0963711479", decode[note](t, rec).Content)

	rec = f.do(t, http.MethodGet, "/v1/notes/99", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, decode[map[string]string](t, rec)["error"], "not found")

	rec = f.do(t, http.MethodGet, "/v1/notes/abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(t, http.MethodDelete, "/v1/notes/1", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = f.do(t, http.MethodDelete, "/v1/notes/1", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestEditSessionFlow(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/v1/sessions", "")
	require.Equal(t, http.StatusCreated, rec.Code)

	opened := decode[sessionResp](t, rec)
	require.NotEmpty(t, opened.SessionID)
	assert.True(t, opened.Draft.IsNew)
	assert.Equal(t, "editing", opened.Draft.State)
	assert.EqualValues(t, 1, opened.Draft.Note.ColorID)

	base := "/v1/sessions/" + opened.SessionID

	rec = f.do(t, http.MethodPatch, base+"/draft", `{"field":"title","value":"Mom"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Mom", decode[sessionResp](t, rec).Draft.Note.Title)

	colorEdits := []struct {
		value string
		code  int
		want  int64
	}{
		{`2.0`, http.StatusOK, 2},
		{`1e0`, http.StatusOK, 1},
		{`2.5`, http.StatusUnprocessableEntity, 1},
		{`"5"`, http.StatusUnprocessableEntity, 1},
		{`5`, http.StatusOK, 5},
	}
	for _, tc := range colorEdits {
		rec = f.do(t, http.MethodPatch, base+"/draft", `{"field":"color_id","value":`+tc.value+`}`)
		require.Equal(t, tc.code, rec.Code, "color_id=%s: %s", tc.value, rec.Body.String())

		rec = f.do(t, http.MethodGet, base, "")
		assert.Equal(t, tc.want, decode[sessionResp](t, rec).Draft.Note.ColorID, "color_id=%s", tc.value)
	}

	rec = f.do(t, http.MethodPost, base+"/trash", "")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code, "unsaved drafts cannot be trashed")

	rec = f.do(t, http.MethodGet, base, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "editing", decode[sessionResp](t, rec).Draft.State)

	rec = f.do(t, http.MethodPost, base+"/save", "")
	require.Equal(t, http.StatusOK, rec.Code)

	saved := decode[sessionResp](t, rec)
	assert.Equal(t, "saved", saved.Draft.State)
	assert.EqualValues(t, 3, saved.Draft.Note.ID)
	assert.EqualValues(t, 5, saved.Draft.Note.ColorID)

	rec = f.do(t, http.MethodPost, base+"/save", "")
	assert.Equal(t, http.StatusNotFound, rec.Code, "handle is released after save")

	got, ok, err := f.store.Get(context.Background(), 3)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Mom", got.Title)
}

func TestTrashAndRestoreFlow(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/v1/sessions", `{"note_id":2}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	sid := decode[sessionResp](t, rec).SessionID

	rec = f.do(t, http.MethodPost, "/v1/sessions/"+sid+"/trash", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decode[sessionResp](t, rec).Draft.Note.IsInTrash)

	rec = f.do(t, http.MethodGet, "/v1/notes?trash=true", "")
	require.Equal(t, http.StatusOK, rec.Code)
	trash := decode[[]note](t, rec)
	require.Len(t, trash, 1)
	assert.EqualValues(t, 2, trash[0].ID)

	rec = f.do(t, http.MethodPost, "/v1/notes/restore", `{"ids":[2]}`)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = f.do(t, http.MethodPost, "/v1/notes/restore", `{"ids":[77]}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = f.do(t, http.MethodPost, "/v1/notes/restore", `{"ids":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(t, http.MethodGet, "/v1/notes", "")
	assert.Len(t, decode[[]note](t, rec), 2)
}

func TestPurgeTrash(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	n, _, err := f.store.Get(ctx, 1)
	require.NoError(t, err)
	n.IsInTrash = true
	require.NoError(t, f.store.Update(ctx, n))

	rec := f.do(t, http.MethodDelete, "/v1/trash", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []int64{1}, decode[map[string][]int64](t, rec)["ids"])

	rec = f.do(t, http.MethodDelete, "/v1/trash", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[map[string][]int64](t, rec)["ids"])
}

func TestSessionErrors(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/v1/sessions", `{"note_id":404}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = f.do(t, http.MethodGet, "/v1/sessions/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = f.do(t, http.MethodPost, "/v1/sessions", `{"note_id":1}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	sid := decode[sessionResp](t, rec).SessionID

	rec = f.do(t, http.MethodPatch, "/v1/sessions/"+sid+"/draft", `{"field":"owner","value":"me"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = f.do(t, http.MethodDelete, "/v1/sessions/"+sid, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = f.do(t, http.MethodDelete, "/v1/sessions/"+sid, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStorageUnavailable(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.repo.Close())

	rec := f.do(t, http.MethodGet, "/v1/notes", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestListColors(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodGet, "/v1/colors", "")
	require.Equal(t, http.StatusOK, rec.Code)

	colors := decode[[]map[string]any](t, rec)
	require.Len(t, colors, len(entity.DefaultColors()))
	assert.Equal(t, "White", colors[0]["name"])
	assert.Equal(t, "FFFFFF", colors[0]["hex"])
}

func TestEventsStream(t *testing.T) {
	f := newFixture(t)

	srv := httptest.NewServer(f.handler)
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/v1/events", nil)
	require.NoError(t, err)

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	reader := bufio.NewReader(resp.Body)

	line, err := reader.ReadString('\n')
	require.NoError(t, err)
	require.Equal(t, ":\n", line)

	require.NoError(t, f.store.Delete(context.Background(), 1))

	var event, data string
	for data == "" {
		line, err := reader.ReadString('\n')
		require.NoError(t, err)

		switch {
		case strings.HasPrefix(line, "event: "):
			event = strings.TrimSpace(strings.TrimPrefix(line, "event: "))
		case strings.HasPrefix(line, "data: "):
			data = strings.TrimSpace(strings.TrimPrefix(line, "data: "))
		}
	}

	assert.Equal(t, string(entity.ChangeDeleted), event)

	var payload struct {
		Kind    string  `json:"kind"`
		NoteIDs []int64 `json:"note_ids"`
		Active  []note  `json:"active"`
	}
	require.NoError(t, json.Unmarshal([]byte(data), &payload))
	assert.Equal(t, "deleted", payload.Kind)
	assert.Equal(t, []int64{1}, payload.NoteIDs)
	require.Len(t, payload.Active, 1)
	assert.EqualValues(t, 2, payload.Active[0].ID)
}
