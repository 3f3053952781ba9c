package notes_test

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/evgeniy-krivenko/mynotes/internal/entity"
	"github.com/evgeniy-krivenko/mynotes/internal/repository/boltrepo"
	"github.com/evgeniy-krivenko/mynotes/internal/usecase/notes"
)

var dbCounter atomic.Int64

func newStore(t *testing.T) (*notes.Store, *boltrepo.Repo) {
	t.Helper()

	repo, err := boltrepo.Open(filepath.Join(t.TempDir(), "notes.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })

	store, err := notes.New(notes.NewOptions(repo))
	require.NoError(t, err)

	return store, repo
}

func newSeededStore(t *testing.T) *notes.Store {
	t.Helper()

	store, _ := newStore(t)
	require.NoError(t, store.SeedIfEmpty(context.Background()))

	return store
}

func TestNewRequiresRepo(t *testing.T) {
	_, err := notes.New(notes.NewOptions(nil))
	assert.Error(t, err)
}

func TestSeedIfEmptyIsIdempotent(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()

	require.NoError(t, store.SeedIfEmpty(ctx))
	require.NoError(t, store.SeedIfEmpty(ctx))

	active, err := store.ListActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{2, 1}, entity.NoteIDs(active))
	assert.Equal(t, "Ter", active[0].Title)
	assert.Equal(t, "Thanapat Pongpipat", active[1].Title)

	colors, err := store.ListColors(ctx)
	require.NoError(t, err)
	assert.Len(t, colors, len(entity.DefaultColors()))
}

func TestSeedIfEmptySkipsWhenIDsWereIssued(t *testing.T) {
	store := newSeededStore(t)
	ctx := context.Background()

	id, err := store.Insert(ctx, entity.Note{Title: "mine"})
	require.NoError(t, err)

	for _, n := range []int64{1, 2, id} {
		require.NoError(t, store.Delete(ctx, n))
	}

	require.NoError(t, store.SeedIfEmpty(ctx))

	active, err := store.ListActive(ctx)
	require.NoError(t, err)
	assert.Empty(t, active)
}

func TestInsertAfterSeed(t *testing.T) {
	store := newSeededStore(t)
	ctx := context.Background()

	id, err := store.Insert(ctx, entity.Note{Title: "A", Content: "1", Category: "Home", ColorID: 1})
	require.NoError(t, err)
	assert.EqualValues(t, 3, id)

	got, ok, err := store.Get(ctx, id)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, entity.Note{ID: 3, Title: "A", Content: "1", Category: "Home", ColorID: 1}, got)
	assert.False(t, got.IsInTrash)
}

func TestInsertRejectsAssignedID(t *testing.T) {
	store := newSeededStore(t)

	_, err := store.Insert(context.Background(), entity.Note{ID: 9, Title: "A"})
	assert.ErrorIs(t, err, entity.ErrValidation)
}

func TestInsertAllowsEmptyFields(t *testing.T) {
	store := newSeededStore(t)

	id, err := store.Insert(context.Background(), entity.Note{})
	require.NoError(t, err)
	assert.NotZero(t, id)
}

func TestInsertFallsBackToDefaultColor(t *testing.T) {
	store := newSeededStore(t)
	ctx := context.Background()

	id, err := store.Insert(ctx, entity.Note{Title: "A", ColorID: 404})
	require.NoError(t, err)

	got, _, err := store.Get(ctx, id)
	require.NoError(t, err)
	assert.EqualValues(t, 1, got.ColorID)
}

func TestDefaultColorWithEmptyPalette(t *testing.T) {
	store, _ := newStore(t)

	c, err := store.DefaultColor(context.Background())
	require.NoError(t, err)
	assert.Equal(t, entity.FallbackColorID, c.ID)
}

func TestUpdateUnknownIDLeavesTableUnchanged(t *testing.T) {
	store := newSeededStore(t)
	ctx := context.Background()

	before, err := store.ListActive(ctx)
	require.NoError(t, err)

	err = store.Update(ctx, entity.Note{ID: 42, Title: "ghost"})
	assert.ErrorIs(t, err, entity.ErrNoteNotFound)

	after, err := store.ListActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestUpdateReplacesRow(t *testing.T) {
	store := newSeededStore(t)
	ctx := context.Background()

	note, _, err := store.Get(ctx, 1)
	require.NoError(t, err)

	note.CanBeCheckedOff = true
	note.IsCheckedOff = true
	note.ColorID = 5
	require.NoError(t, store.Update(ctx, note))

	got, _, err := store.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, note, got)
}

func TestDeleteUnknownID(t *testing.T) {
	store := newSeededStore(t)

	assert.ErrorIs(t, store.Delete(context.Background(), 77), entity.ErrNoteNotFound)
}

func TestGetMissingIsNotAnError(t *testing.T) {
	store := newSeededStore(t)

	_, ok, err := store.Get(context.Background(), 77)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestTrashedNotesOnlyInTrashList(t *testing.T) {
	store := newSeededStore(t)
	ctx := context.Background()

	note, _, err := store.Get(ctx, 2)
	require.NoError(t, err)
	note.IsInTrash = true
	require.NoError(t, store.Update(ctx, note))

	active, err := store.ListActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, entity.NoteIDs(active))

	trash, err := store.ListTrash(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{2}, entity.NoteIDs(trash))
}

func TestRestoreAndPurge(t *testing.T) {
	store := newSeededStore(t)
	ctx := context.Background()

	for _, id := range []int64{1, 2} {
		note, _, err := store.Get(ctx, id)
		require.NoError(t, err)
		note.IsInTrash = true
		require.NoError(t, store.Update(ctx, note))
	}

	assert.ErrorIs(t, store.Restore(ctx, 1, 99), entity.ErrNoteNotFound)
	trash, err := store.ListTrash(ctx)
	require.NoError(t, err)
	assert.Len(t, trash, 2, "failed restore must not touch any note")

	require.NoError(t, store.Restore(ctx, 1))

	ids, err := store.PurgeTrash(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{2}, ids)

	_, ok, err := store.Get(ctx, 2)
	require.NoError(t, err)
	assert.False(t, ok)

	active, err := store.ListActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, entity.NoteIDs(active))
}

// flakyRepo fails the n-th UpdateNote and every SeedNotes call.
type flakyRepo struct {
	*boltrepo.Repo
	failUpdateAt int
	updates      int
}

var errDiskFull = errors.New("disk full")

func (r *flakyRepo) UpdateNote(ctx context.Context, note entity.Note) error {
	r.updates++
	if r.updates == r.failUpdateAt {
		return errDiskFull
	}

	return r.Repo.UpdateNote(ctx, note)
}

func (r *flakyRepo) SeedNotes(context.Context, []entity.Note) error {
	return errDiskFull
}

func TestRestoreIsAllOrNothing(t *testing.T) {
	store, repo := newStore(t)
	ctx := context.Background()

	require.NoError(t, store.SeedIfEmpty(ctx))
	for _, id := range []int64{1, 2} {
		note, _, err := store.Get(ctx, id)
		require.NoError(t, err)
		note.IsInTrash = true
		require.NoError(t, store.Update(ctx, note))
	}

	flaky, err := notes.New(notes.NewOptions(&flakyRepo{Repo: repo, failUpdateAt: 2}))
	require.NoError(t, err)

	err = flaky.Restore(ctx, 1, 2)
	assert.ErrorIs(t, err, errDiskFull)

	trash, err := store.ListTrash(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{2, 1}, entity.NoteIDs(trash), "first restore is rolled back")

	active, err := store.ListActive(ctx)
	require.NoError(t, err)
	assert.Empty(t, active)
}

func TestSeedIfEmptyIsAllOrNothing(t *testing.T) {
	_, repo := newStore(t)
	ctx := context.Background()

	flaky, err := notes.New(notes.NewOptions(&flakyRepo{Repo: repo}))
	require.NoError(t, err)

	assert.ErrorIs(t, flaky.SeedIfEmpty(ctx), errDiskFull)

	hasColors, err := repo.HasColors(ctx)
	require.NoError(t, err)
	assert.False(t, hasColors, "palette is rolled back with the notes")
}

func TestSubscribeDeliversSnapshots(t *testing.T) {
	store := newSeededStore(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events := store.Subscribe(ctx)

	id, err := store.Insert(ctx, entity.Note{Title: "fresh"})
	require.NoError(t, err)

	select {
	case snap := <-events:
		assert.Equal(t, entity.ChangeCreated, snap.Event.Kind)
		assert.Equal(t, []int64{id}, snap.Event.NoteIDs)
		assert.Equal(t, []int64{id, 2, 1}, entity.NoteIDs(snap.Active))
	case <-time.After(2 * time.Second):
		t.Fatal("no snapshot delivered")
	}

	cancel()
	require.Eventually(t, func() bool {
		select {
		case _, ok := <-events:
			return !ok
		default:
			return false
		}
	}, 2*time.Second, 10*time.Millisecond)
}

func TestStorageUnavailableSurfaces(t *testing.T) {
	store, repo := newStore(t)
	require.NoError(t, repo.Close())

	ctx := context.Background()

	_, err := store.ListActive(ctx)
	assert.ErrorIs(t, err, entity.ErrStorageUnavailable)

	_, err = store.Insert(ctx, entity.Note{Title: "x"})
	assert.ErrorIs(t, err, entity.ErrStorageUnavailable)

	_, _, err = store.Get(ctx, 1)
	assert.ErrorIs(t, err, entity.ErrStorageUnavailable)

	assert.ErrorIs(t, store.Ping(ctx), entity.ErrStorageUnavailable)
}

func TestInsertedIDsAreNeverReused(t *testing.T) {
	dir := t.TempDir()

	rapid.Check(t, func(t *rapid.T) {
		repo, err := boltrepo.Open(filepath.Join(dir, fmt.Sprintf("%d.db", dbCounter.Add(1))))
		if err != nil {
			t.Fatalf("open repo: %v", err)
		}
		defer repo.Close()

		store, err := notes.New(notes.NewOptions(repo))
		if err != nil {
			t.Fatalf("new store: %v", err)
		}

		ctx := context.Background()
		var last int64
		if rapid.Bool().Draw(t, "seed") {
			if err := store.SeedIfEmpty(ctx); err != nil {
				t.Fatalf("seed: %v", err)
			}
			last = 2
		}

		var live []int64
		steps := rapid.IntRange(1, 30).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			if len(live) > 0 && rapid.Bool().Draw(t, "delete") {
				idx := rapid.IntRange(0, len(live)-1).Draw(t, "idx")
				if err := store.Delete(ctx, live[idx]); err != nil {
					t.Fatalf("delete %d: %v", live[idx], err)
				}
				live = append(live[:idx], live[idx+1:]...)
				continue
			}

			title := rapid.StringMatching(`[A-Za-z0-9 ]{0,20}`).Draw(t, "title")
			id, err := store.Insert(ctx, entity.Note{Title: title})
			if err != nil {
				t.Fatalf("insert: %v", err)
			}
			if id <= last {
				t.Fatalf("id %d not greater than previous %d", id, last)
			}
			last = id
			live = append(live, id)
		}
	})
}
