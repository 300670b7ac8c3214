package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/notebook/pkg/core"
)

func openMemory(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), Config{Path: MemoryPath})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestClassify_Constraint(t *testing.T) {
	s := openMemory(t)

	_, err := s.db.ExecContext(context.Background(), `INSERT INTO notebook(title, text) VALUES(NULL, 'x')`)
	require.Error(t, err)

	classified := classify("insert note", err)
	kind, ok := core.KindOf(classified)
	require.True(t, ok)
	assert.Equal(t, core.KindConstraint, kind)
	assert.ErrorIs(t, classified, err)
}

func TestClassify_NoRows(t *testing.T) {
	err := classify("get note", sql.ErrNoRows)
	assert.ErrorIs(t, err, core.ErrNotFound)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestClassify_PassThrough(t *testing.T) {
	assert.NoError(t, classify("op", nil))

	original := &core.StorageError{Op: "inner", Kind: core.KindIO, Err: errors.New("x")}
	assert.Same(t, original, classify("outer", original))

	kind, ok := core.KindOf(classify("op", errors.New("mystery")))
	require.True(t, ok)
	assert.Equal(t, core.KindQuery, kind)
}

func TestGet_NullTextReadsEmpty(t *testing.T) {
	s := openMemory(t)
	ctx := context.Background()

	res, err := s.db.ExecContext(ctx, `INSERT INTO notebook(title, text) VALUES('untitled body', NULL)`)
	require.NoError(t, err)
	id, err := res.LastInsertId()
	require.NoError(t, err)

	got, err := s.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, core.Note{Title: "untitled body", Text: ""}, got)

	rows, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "", rows[0].Text)
}

func TestDataSourceName(t *testing.T) {
	tests := []struct {
		name   string
		config Config
		want   string
	}{
		{name: "Read Write", config: Config{Path: "/data/notebook.db3"}, want: "/data/notebook.db3"},
		{name: "Memory", config: Config{Path: MemoryPath, ReadOnly: true}, want: MemoryPath},
		{name: "Read Only Absolute", config: Config{Path: "/data/notebook.db3", ReadOnly: true}, want: "file:///data/notebook.db3?mode=ro"},
		{name: "Read Only Relative", config: Config{Path: "notebook.db3", ReadOnly: true}, want: "file:notebook.db3?mode=ro"},
		{name: "Read Only URI", config: Config{Path: "file:notes.db3?cache=private", ReadOnly: true}, want: "file:notes.db3?cache=private&mode=ro"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, dataSourceName(tt.config))
		})
	}
}
