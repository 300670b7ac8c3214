package sqlite_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/notebook/pkg/adapters/sqlite"
	"github.com/aretw0/notebook/pkg/core"
)

// setupStore opens a file-backed store inside a fresh temp dir.
// It returns the store and the path of its backing file.
func setupStore(t *testing.T) (*sqlite.Store, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "notebook.db3")
	store, err := sqlite.Open(context.Background(), sqlite.Config{Path: path})
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store, path
}

func TestRoundTrip(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	notes := []core.Note{
		{Title: "First title", Text: "first text\n ladedadeda"},
		{Title: "Another title!!!", Text: "Aren't I cool😊"},
		{Title: "Ünïcödé", Text: "línea uno\r\nlínea dos\n"},
		{Title: "", Text: ""},
	}

	for _, n := range notes {
		id, err := store.Insert(ctx, n)
		require.NoError(t, err)
		assert.Positive(t, id)

		got, err := store.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, n, got)
	}
}

func TestConcreteScenario(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	id, err := store.Insert(ctx, core.Note{Title: "First", Text: "hello\nworld"})
	require.NoError(t, err)
	require.Positive(t, id)

	got, err := store.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, core.Note{Title: "First", Text: "hello\nworld"}, got)

	affected, err := store.Update(ctx, id, core.Note{Title: "Second", Text: "bye"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, affected)

	got, err = store.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, core.Note{Title: "Second", Text: "bye"}, got)

	affected, err = store.Delete(ctx, id)
	require.NoError(t, err)
	assert.EqualValues(t, 1, affected)

	_, err = store.Get(ctx, id)
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestOpen_Idempotent(t *testing.T) {
	store, path := setupStore(t)
	ctx := context.Background()

	idA, err := store.Insert(ctx, core.Note{Title: "A", Text: "a"})
	require.NoError(t, err)
	idB, err := store.Insert(ctx, core.Note{Title: "B", Text: "b"})
	require.NoError(t, err)
	require.NoError(t, store.Close())

	for i := 0; i < 2; i++ {
		reopened, err := sqlite.Open(ctx, sqlite.Config{Path: path})
		require.NoError(t, err, "open #%d", i+2)

		rows, err := reopened.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, []core.NoteRow{
			{ID: idA, Title: "A", Text: "a"},
			{ID: idB, Title: "B", Text: "b"},
		}, rows)
		require.NoError(t, reopened.Close())
	}
}

func TestOpen_CreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "notebook.db3")
	store, err := sqlite.Open(context.Background(), sqlite.Config{Path: path})
	require.NoError(t, err)
	defer store.Close()

	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestOpen_Failures(t *testing.T) {
	ctx := context.Background()

	t.Run("Empty Path", func(t *testing.T) {
		_, err := sqlite.Open(ctx, sqlite.Config{})
		require.Error(t, err)
		kind, ok := core.KindOf(err)
		require.True(t, ok)
		assert.Equal(t, core.KindConnection, kind)
	})

	t.Run("Path Is A Directory", func(t *testing.T) {
		_, err := sqlite.Open(ctx, sqlite.Config{Path: t.TempDir()})
		require.Error(t, err)
		var se *core.StorageError
		assert.ErrorAs(t, err, &se)
	})

	t.Run("Not A Database", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "garbage.db3")
		junk := bytes.Repeat([]byte("this is definitely not sqlite "), 200)
		require.NoError(t, os.WriteFile(path, junk, 0o644))

		_, err := sqlite.Open(ctx, sqlite.Config{Path: path})
		require.Error(t, err)
		kind, ok := core.KindOf(err)
		require.True(t, ok)
		assert.Equal(t, core.KindConnection, kind)

		// The file must be left untouched.
		after, readErr := os.ReadFile(path)
		require.NoError(t, readErr)
		assert.Equal(t, junk, after)
	})

	t.Run("Read Only Missing File", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "missing.db3")
		_, err := sqlite.Open(ctx, sqlite.Config{Path: path, ReadOnly: true})
		require.Error(t, err)

		_, statErr := os.Stat(path)
		assert.True(t, os.IsNotExist(statErr), "read-only open must not create the file")
	})
}

func TestUpdate(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	t.Run("Overwrites Both Fields", func(t *testing.T) {
		id, err := store.Insert(ctx, core.Note{Title: "old title", Text: "old text"})
		require.NoError(t, err)

		affected, err := store.Update(ctx, id, core.Note{Title: "new", Text: ""})
		require.NoError(t, err)
		assert.EqualValues(t, 1, affected)

		got, err := store.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, core.Note{Title: "new", Text: ""}, got)
	})

	t.Run("Missing ID Returns Zero", func(t *testing.T) {
		before, err := store.List(ctx)
		require.NoError(t, err)

		affected, err := store.Update(ctx, 9999, core.Note{Title: "ghost", Text: "boo"})
		require.NoError(t, err)
		assert.EqualValues(t, 0, affected)

		after, err := store.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})
}

func TestDelete(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	keep, err := store.Insert(ctx, core.Note{Title: "keep", Text: "me"})
	require.NoError(t, err)
	drop, err := store.Insert(ctx, core.Note{Title: "drop", Text: "me"})
	require.NoError(t, err)

	affected, err := store.Delete(ctx, drop)
	require.NoError(t, err)
	assert.EqualValues(t, 1, affected)

	_, err = store.Get(ctx, drop)
	assert.ErrorIs(t, err, core.ErrNotFound)

	affected, err = store.Delete(ctx, drop)
	require.NoError(t, err)
	assert.EqualValues(t, 0, affected)

	got, err := store.Get(ctx, keep)
	require.NoError(t, err)
	assert.Equal(t, core.Note{Title: "keep", Text: "me"}, got)
}

func TestList(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	t.Run("Empty Table", func(t *testing.T) {
		rows, err := store.List(ctx)
		require.NoError(t, err)
		assert.NotNil(t, rows)
		assert.Empty(t, rows)
	})

	t.Run("Reflects Current State", func(t *testing.T) {
		idA, err := store.Insert(ctx, core.Note{Title: "A", Text: "a"})
		require.NoError(t, err)
		idB, err := store.Insert(ctx, core.Note{Title: "B", Text: "b"})
		require.NoError(t, err)
		idC, err := store.Insert(ctx, core.Note{Title: "C", Text: "c"})
		require.NoError(t, err)

		_, err = store.Delete(ctx, idB)
		require.NoError(t, err)

		rows, err := store.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, []core.NoteRow{
			{ID: idA, Title: "A", Text: "a"},
			{ID: idC, Title: "C", Text: "c"},
		}, rows)
	})
}

func TestIDsAreNotReused(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	first, err := store.Insert(ctx, core.Note{Title: "one"})
	require.NoError(t, err)
	last, err := store.Insert(ctx, core.Note{Title: "two"})
	require.NoError(t, err)
	require.Greater(t, last, first)

	_, err = store.Delete(ctx, last)
	require.NoError(t, err)

	next, err := store.Insert(ctx, core.Note{Title: "three"})
	require.NoError(t, err)
	assert.Greater(t, next, last)
}

func TestReadOnly(t *testing.T) {
	store, path := setupStore(t)
	ctx := context.Background()

	id, err := store.Insert(ctx, core.Note{Title: "frozen", Text: "ice"})
	require.NoError(t, err)
	require.NoError(t, store.Close())

	ro, err := sqlite.Open(ctx, sqlite.Config{Path: path, ReadOnly: true})
	require.NoError(t, err)
	defer ro.Close()

	got, err := ro.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, core.Note{Title: "frozen", Text: "ice"}, got)

	rows, err := ro.List(ctx)
	require.NoError(t, err)
	assert.Len(t, rows, 1)

	_, err = ro.Insert(ctx, core.Note{Title: "nope"})
	assert.ErrorIs(t, err, core.ErrReadOnly)
	_, err = ro.Update(ctx, id, core.Note{Title: "nope"})
	assert.ErrorIs(t, err, core.ErrReadOnly)
	_, err = ro.Delete(ctx, id)
	assert.ErrorIs(t, err, core.ErrReadOnly)
}

func TestClose(t *testing.T) {
	store, err := sqlite.Open(context.Background(), sqlite.Config{Path: sqlite.MemoryPath})
	require.NoError(t, err)

	require.NoError(t, store.Close())
	require.NoError(t, store.Close())

	_, err = store.List(context.Background())
	require.Error(t, err)
	kind, ok := core.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, core.KindConnection, kind)

	state, ok := store.State().(sqlite.StoreState)
	require.True(t, ok)
	assert.False(t, state.Open)
	assert.Zero(t, state.Statements)
}

func TestState(t *testing.T) {
	store, path := setupStore(t)

	state, ok := store.State().(sqlite.StoreState)
	require.True(t, ok)
	assert.Equal(t, sqlite.StoreState{
		Path:       path,
		Table:      sqlite.TableName,
		ReadOnly:   false,
		Open:       true,
		Statements: 5,
	}, state)
	assert.Equal(t, "sqlite-store", store.ComponentType())
}
