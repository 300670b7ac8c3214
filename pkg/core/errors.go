package core

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	ErrNotFound = errors.New("note not found")
	ErrReadOnly = errors.New("store is in read-only mode")
)

// ErrorKind tells callers which failure domain a StorageError came from.
type ErrorKind int

const (
	// KindQuery is any statement failure that fits no narrower kind.
	KindQuery ErrorKind = iota
	// KindIO covers filesystem and engine I/O failures.
	KindIO
	// KindConnection covers a handle that cannot be opened or used:
	// missing permissions, a file that is not a database, a closed store.
	KindConnection
	// KindConstraint is a schema constraint violation (e.g. NULL title).
	KindConstraint
	// KindNotFound is a fetch that matched no row.
	KindNotFound
	// KindReadOnly is a write attempted on a read-only store.
	KindReadOnly
)

func (k ErrorKind) String() string {
	switch k {
	case KindIO:
		return "io"
	case KindConnection:
		return "connection"
	case KindConstraint:
		return "constraint"
	case KindNotFound:
		return "not found"
	case KindReadOnly:
		return "read-only"
	default:
		return "query"
	}
}

// StorageError is any failure originating from the storage engine.
type StorageError struct {
	Op   string
	Kind ErrorKind
	Err  error
}

func (e *StorageError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s error", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrNotFound) and errors.Is(err, ErrReadOnly) match on
// the kind even when the cause came from the engine.
func (e *StorageError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.Kind == KindNotFound
	case ErrReadOnly:
		return e.Kind == KindReadOnly
	}
	return false
}

// NewStorageError builds a StorageError. A nil err yields nil.
func NewStorageError(op string, kind ErrorKind, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Op: op, Kind: kind, Err: err}
}

// KindOf reports the kind of the first StorageError in err's chain.
// ok is false when err carries no StorageError.
func KindOf(err error) (kind ErrorKind, ok bool) {
	var se *StorageError
	if errors.As(err, &se) {
		return se.Kind, true
	}
	return KindQuery, false
}

// ValidationError is a caller-side error: a malformed id or command argument.
// It never reaches the store.
type ValidationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
