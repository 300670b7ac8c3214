package sqlite

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"io/fs"

	"github.com/ncruces/go-sqlite3"

	"github.com/aretw0/notebook/pkg/core"
)

// classify wraps an engine error in a core.StorageError whose kind lets
// callers branch on cause. Errors that are already classified pass through.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	var se *core.StorageError
	if errors.As(err, &se) {
		return err
	}
	return &core.StorageError{Op: op, Kind: kindOf(err), Err: err}
}

func kindOf(err error) core.ErrorKind {
	var serr *sqlite3.Error
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return core.KindNotFound
	case errors.Is(err, sql.ErrConnDone), errors.Is(err, driver.ErrBadConn):
		return core.KindConnection
	case errors.As(err, &serr):
		return kindOfCode(serr.Code())
	case errors.Is(err, fs.ErrPermission), errors.Is(err, fs.ErrNotExist):
		return core.KindIO
	}
	return core.KindQuery
}

func kindOfCode(code sqlite3.ErrorCode) core.ErrorKind {
	switch code {
	case sqlite3.CONSTRAINT:
		return core.KindConstraint
	case sqlite3.READONLY:
		return core.KindReadOnly
	case sqlite3.IOERR, sqlite3.FULL:
		return core.KindIO
	case sqlite3.CANTOPEN, sqlite3.NOTADB, sqlite3.CORRUPT, sqlite3.PERM,
		sqlite3.AUTH, sqlite3.BUSY, sqlite3.LOCKED:
		return core.KindConnection
	}
	return core.KindQuery
}
