package core

import (
	"context"
	"io"
)

// Repository defines the contract for storing and retrieving notes.
// Adhering to this interface keeps the core independent of the
// underlying storage engine.
//
// Every method issues a single statement; there is no multi-step protocol
// and no transaction spans two calls.
type Repository interface {
	// Insert appends a note and returns the identifier the store assigned.
	Insert(ctx context.Context, n Note) (int64, error)

	// Get returns the note with the given id.
	// A missing row is reported as an error matching ErrNotFound.
	Get(ctx context.Context, id int64) (Note, error)

	// List returns every row, fully materialised, in id order.
	// An empty store yields an empty slice and no error.
	List(ctx context.Context) ([]NoteRow, error)

	// Update overwrites title and text of the row with the given id.
	// It returns the number of rows affected; 0 means no such row.
	Update(ctx context.Context, id int64, n Note) (int64, error)

	// Delete removes the row with the given id.
	// It returns the number of rows affected; 0 means no such row.
	Delete(ctx context.Context, id int64) (int64, error)

	// Close releases the handle to the backing storage.
	io.Closer
}
