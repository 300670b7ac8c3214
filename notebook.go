package notebook

import (
	"context"
	"log/slog"

	"github.com/aretw0/notebook/internal/platform"
	"github.com/aretw0/notebook/pkg/core"
)

// Version exposes the version of the library.
// See version.go for the implementation using go:embed.

// --- Types ---

// Note is a public alias for the note content.
type Note = core.Note

// NoteRow is a public alias for a persisted note.
type NoteRow = core.NoteRow

// --- Configuration ---

// Option defines a functional option for configuring the notebook.
type Option = platform.Option

// WithLogger sets the logger for the service.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithRepository allows injecting a custom storage adapter.
func WithRepository(repo core.Repository) Option {
	return platform.WithRepository(repo)
}

// WithAdapter allows specifying the storage adapter to use by name.
func WithAdapter(name string) Option {
	return platform.WithAdapter(name)
}

// WithForceTemp forces the database into the dev sandbox directory.
func WithForceTemp(force bool) Option {
	return platform.WithForceTemp(force)
}

// WithReadOnly opens the database without write access.
func WithReadOnly(enabled bool) Option {
	return platform.WithReadOnly(enabled)
}

// WithDevSafety controls the go run / go test sandbox.
func WithDevSafety(enabled bool) Option {
	return platform.WithDevSafety(enabled)
}

// --- Factory ---

// New opens the database at path and returns a Service over it.
func New(path string, opts ...Option) (*core.Service, error) {
	return platform.New(context.Background(), path, opts...)
}

// Open opens a repository explicitly.
func Open(ctx context.Context, path string, opts ...Option) (core.Repository, error) {
	return platform.Init(ctx, path, opts...)
}

// --- Utilities ---

// IsDevRun reports whether the process was started by go run or go test.
func IsDevRun() bool {
	return platform.IsDevRun()
}

// ResolveDBPath returns the path the database would actually be opened at.
func ResolveDBPath(path string, forceTemp bool) string {
	return platform.ResolveDBPath(path, forceTemp)
}
