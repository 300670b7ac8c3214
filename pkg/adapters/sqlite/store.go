// Package sqlite implements core.Repository on a single SQLite file.
// Uses ncruces/go-sqlite3/driver which provides a database/sql interface.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/aretw0/notebook/pkg/core"
)

const (
	driverName = "sqlite3"

	// MemoryPath opens a private in-memory database, mostly for tests.
	MemoryPath = ":memory:"

	// TableName is the single table holding notes.
	TableName = "notebook"
)

// schema is executed on every open; IF NOT EXISTS keeps it idempotent.
const schema = `
CREATE TABLE IF NOT EXISTS notebook (
    id    INTEGER PRIMARY KEY AUTOINCREMENT,
    title TEXT NOT NULL,
    text  TEXT
);`

const (
	insertNoteSQL = `INSERT INTO notebook(title, text) VALUES(:title, :text)`
	getNoteSQL    = `SELECT title, text FROM notebook WHERE id = ?`
	listNotesSQL  = `SELECT id, title, text FROM notebook ORDER BY id`
	updateNoteSQL = `UPDATE notebook SET title = :title, text = :text WHERE id = :id`
	deleteNoteSQL = `DELETE FROM notebook WHERE id = ?`
)

// Config holds the configuration for the SQLite store.
type Config struct {
	Path     string // File path, or MemoryPath.
	ReadOnly bool   // Open with mode=ro; writes fail with core.ErrReadOnly.
}

// Store is the SQLite-backed note store.
// It owns one connection for its whole lifetime and is meant for
// single-threaded use; the mutex only guards open/close state.
type Store struct {
	mu     sync.RWMutex
	db     *sql.DB
	config Config
	stmts  statements
	closed bool
}

type statements struct {
	insert *sql.Stmt
	get    *sql.Stmt
	list   *sql.Stmt
	update *sql.Stmt
	delete *sql.Stmt
}

func (s statements) all() []*sql.Stmt {
	return []*sql.Stmt{s.insert, s.get, s.list, s.update, s.delete}
}

// NewStore creates a store that is not yet connected. Call Initialize.
func NewStore(config Config) *Store {
	return &Store{config: config}
}

// Open creates a store and initializes it. On failure nothing stays open.
func Open(ctx context.Context, config Config) (*Store, error) {
	s := NewStore(config)
	if err := s.Initialize(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Initialize opens or creates the backing file, ensures the schema exists and
// prepares the statements used by every operation. It is safe to run against
// a file that already holds notes.
func (s *Store) Initialize(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db != nil {
		return nil
	}
	if s.closed {
		return errClosed("initialize")
	}

	path := s.config.Path
	if path == "" {
		return core.NewStorageError("open store", core.KindConnection, errors.New("empty database path"))
	}

	if !s.config.ReadOnly && path != MemoryPath && !strings.HasPrefix(path, "file:") {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return core.NewStorageError("open store", core.KindIO, fmt.Errorf("create parent dir: %w", err))
		}
	}

	db, err := sql.Open(driverName, dataSourceName(s.config))
	if err != nil {
		return core.NewStorageError("open store", core.KindConnection, err)
	}
	// One handle, owned exclusively. It also keeps ":memory:" alive, since
	// every connection would otherwise get its own empty database.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if s.config.ReadOnly {
		err = db.PingContext(ctx)
	} else {
		_, err = db.ExecContext(ctx, schema)
	}
	if err != nil {
		_ = db.Close()
		return classify("open store", err)
	}

	stmts, err := prepare(ctx, db)
	if err != nil {
		_ = db.Close()
		return err
	}

	s.db = db
	s.stmts = stmts
	return nil
}

func prepare(ctx context.Context, db *sql.DB) (statements, error) {
	var stmts statements
	targets := []struct {
		dst   **sql.Stmt
		query string
	}{
		{&stmts.insert, insertNoteSQL},
		{&stmts.get, getNoteSQL},
		{&stmts.list, listNotesSQL},
		{&stmts.update, updateNoteSQL},
		{&stmts.delete, deleteNoteSQL},
	}
	for _, t := range targets {
		stmt, err := db.PrepareContext(ctx, t.query)
		if err != nil {
			closeStatements(stmts)
			return statements{}, classify("prepare statement", err)
		}
		*t.dst = stmt
	}
	return stmts, nil
}

func closeStatements(stmts statements) error {
	var errs []error
	for _, stmt := range stmts.all() {
		if stmt == nil {
			continue
		}
		if err := stmt.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Close releases the prepared statements and the database handle.
// Calling it more than once is a no-op.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	if s.db == nil {
		return nil
	}

	stmtErr := closeStatements(s.stmts)
	dbErr := s.db.Close()
	s.stmts = statements{}
	s.db = nil
	if err := errors.Join(stmtErr, dbErr); err != nil {
		return core.NewStorageError("close store", core.KindConnection, err)
	}
	return nil
}

// Path returns the configured database path.
func (s *Store) Path() string {
	return s.config.Path
}

// ReadOnly reports whether writes are refused.
func (s *Store) ReadOnly() bool {
	return s.config.ReadOnly
}

// ready returns the prepared statements, or an error when the store is not open.
func (s *Store) ready(op string) (statements, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed || s.db == nil {
		return statements{}, errClosed(op)
	}
	return s.stmts, nil
}

func (s *Store) writable(op string) (statements, error) {
	if s.config.ReadOnly {
		return statements{}, &core.StorageError{Op: op, Kind: core.KindReadOnly, Err: core.ErrReadOnly}
	}
	return s.ready(op)
}

func errClosed(op string) error {
	return core.NewStorageError(op, core.KindConnection, errors.New("store is not open"))
}

func dataSourceName(c Config) string {
	if !c.ReadOnly || c.Path == MemoryPath {
		return c.Path
	}
	if strings.HasPrefix(c.Path, "file:") {
		sep := "?"
		if strings.Contains(c.Path, "?") {
			sep = "&"
		}
		return c.Path + sep + "mode=ro"
	}
	p := filepath.ToSlash(c.Path)
	if filepath.IsAbs(c.Path) && !strings.HasPrefix(p, "/") {
		p = "/" + p // C:/x becomes /C:/x
	}
	if strings.HasPrefix(p, "/") {
		u := url.URL{Scheme: "file", Path: p, RawQuery: "mode=ro"}
		return u.String()
	}
	// Relative paths must not gain "//", which would turn them into a host.
	return "file:" + (&url.URL{Path: p}).EscapedPath() + "?mode=ro"
}

var _ core.Repository = (*Store)(nil)
