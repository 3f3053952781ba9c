package repository_test

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evgeniy-krivenko/mynotes/internal/entity"
	"github.com/evgeniy-krivenko/mynotes/internal/repository"
	"github.com/evgeniy-krivenko/mynotes/internal/repository/migrations"
	"github.com/evgeniy-krivenko/mynotes/internal/usecase/notes"
	"github.com/evgeniy-krivenko/mynotes/pkg/database"
)

const dsnEnv = "MYNOTES_TEST_PG_DSN"

func openRepo(t *testing.T) (*repository.Repo, *database.Database) {
	t.Helper()

	dsn := os.Getenv(dsnEnv)
	if dsn == "" {
		t.Skipf("%s is not set", dsnEnv)
	}

	ctx := context.Background()

	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)

	db := database.NewDatabase(pool)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(ctx, `DROP TABLE IF EXISTS notes, colors, goose_db_version`)
	require.NoError(t, err)
	require.NoError(t, migrations.Up(ctx, db.StdDB()))

	return repository.New(db), db
}

func TestRepoCRUD(t *testing.T) {
	repo, _ := openRepo(t)
	ctx := context.Background()

	created, err := repo.CreateNote(ctx, entity.Note{Title: "A", Content: "1", Category: "Home", ColorID: 1})
	require.NoError(t, err)
	assert.EqualValues(t, 1, created.ID)

	got, err := repo.GetNote(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	got.Title = "B"
	got.IsInTrash = true
	require.NoError(t, repo.UpdateNote(ctx, got))

	active, err := repo.ListNotes(ctx, false)
	require.NoError(t, err)
	assert.Empty(t, active)

	trash, err := repo.ListNotes(ctx, true)
	require.NoError(t, err)
	require.Len(t, trash, 1)
	assert.Equal(t, "B", trash[0].Title)

	require.NoError(t, repo.DeleteNote(ctx, created.ID))
	_, err = repo.GetNote(ctx, created.ID)
	assert.ErrorIs(t, err, entity.ErrNoteNotFound)
	assert.ErrorIs(t, repo.DeleteNote(ctx, created.ID), entity.ErrNoteNotFound)
	assert.ErrorIs(t, repo.UpdateNote(ctx, got), entity.ErrNoteNotFound)

	last, err := repo.LastNoteID(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, last, "deleted ids stay issued")
}

func TestRepoSeedThroughStore(t *testing.T) {
	repo, _ := openRepo(t)
	ctx := context.Background()

	store, err := notes.New(notes.NewOptions(repo))
	require.NoError(t, err)

	require.NoError(t, store.SeedIfEmpty(ctx))
	require.NoError(t, store.SeedIfEmpty(ctx))

	active, err := store.ListActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{2, 1}, entity.NoteIDs(active))

	colors, err := store.ListColors(ctx)
	require.NoError(t, err)
	assert.Equal(t, entity.DefaultColors(), colors)

	id, err := store.Insert(ctx, entity.Note{Title: "Mom", ColorID: 404})
	require.NoError(t, err)
	assert.EqualValues(t, 3, id, "sequence continues after seeded ids")

	got, ok, err := store.Get(ctx, id)
	require.NoError(t, err)
	require.True(t, ok)
	assert.EqualValues(t, 1, got.ColorID, "unknown colours fall back to the default")
}

func TestRepoRunInTxRollsBack(t *testing.T) {
	repo, _ := openRepo(t)
	ctx := context.Background()

	err := repo.RunInTx(ctx, func(ctx context.Context) error {
		if _, err := repo.CreateNote(ctx, entity.Note{Title: "gone"}); err != nil {
			return err
		}
		return entity.ErrValidation
	})
	assert.ErrorIs(t, err, entity.ErrValidation)

	ok, err := repo.HasNotes(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRepoDeleteTrashedNotes(t *testing.T) {
	repo, _ := openRepo(t)
	ctx := context.Background()

	for _, trashed := range []bool{true, false, true} {
		_, err := repo.CreateNote(ctx, entity.Note{ColorID: 1, IsInTrash: trashed})
		require.NoError(t, err)
	}

	ids, err := repo.DeleteTrashedNotes(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 1}, ids)

	ids, err = repo.DeleteTrashedNotes(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestRepoClosedPoolIsUnavailable(t *testing.T) {
	repo, db := openRepo(t)
	ctx := context.Background()

	require.NoError(t, db.Close())

	_, err := repo.ListNotes(ctx, false)
	assert.ErrorIs(t, err, entity.ErrStorageUnavailable)
	assert.ErrorIs(t, repo.Ping(ctx), entity.ErrStorageUnavailable)
}
