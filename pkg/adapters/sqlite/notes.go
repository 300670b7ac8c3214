package sqlite

import (
	"context"
	"database/sql"

	"github.com/aretw0/notebook/pkg/core"
)

// Insert appends a note and returns the rowid the engine assigned.
func (s *Store) Insert(ctx context.Context, n core.Note) (int64, error) {
	const op = "insert note"
	stmts, err := s.writable(op)
	if err != nil {
		return 0, err
	}

	res, err := stmts.insert.ExecContext(ctx,
		sql.Named("title", n.Title),
		sql.Named("text", n.Text),
	)
	if err != nil {
		return 0, classify(op, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, classify(op, err)
	}
	return id, nil
}

// Get returns title and text of the row with the given id.
func (s *Store) Get(ctx context.Context, id int64) (core.Note, error) {
	const op = "get note"
	stmts, err := s.ready(op)
	if err != nil {
		return core.Note{}, err
	}

	var (
		n    core.Note
		text sql.NullString
	)
	if err := stmts.get.QueryRowContext(ctx, id).Scan(&n.Title, &text); err != nil {
		return core.Note{}, classify(op, err)
	}
	n.Text = text.String
	return n, nil
}

// List returns every row in id order. The result is fully materialised.
func (s *Store) List(ctx context.Context) ([]core.NoteRow, error) {
	const op = "list notes"
	stmts, err := s.ready(op)
	if err != nil {
		return nil, err
	}

	rows, err := stmts.list.QueryContext(ctx)
	if err != nil {
		return nil, classify(op, err)
	}
	defer rows.Close()

	notes := make([]core.NoteRow, 0)
	for rows.Next() {
		var (
			row  core.NoteRow
			text sql.NullString
		)
		if err := rows.Scan(&row.ID, &row.Title, &text); err != nil {
			return nil, classify(op, err)
		}
		row.Text = text.String
		notes = append(notes, row)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(op, err)
	}
	return notes, nil
}

// Update overwrites title and text of the row with the given id.
// No matching row is not an error: the returned count is 0.
func (s *Store) Update(ctx context.Context, id int64, n core.Note) (int64, error) {
	const op = "update note"
	stmts, err := s.writable(op)
	if err != nil {
		return 0, err
	}

	res, err := stmts.update.ExecContext(ctx,
		sql.Named("title", n.Title),
		sql.Named("text", n.Text),
		sql.Named("id", id),
	)
	if err != nil {
		return 0, classify(op, err)
	}
	return rowsAffected(op, res)
}

// Delete removes the row with the given id and returns how many rows went away.
func (s *Store) Delete(ctx context.Context, id int64) (int64, error) {
	const op = "delete note"
	stmts, err := s.writable(op)
	if err != nil {
		return 0, err
	}

	res, err := stmts.delete.ExecContext(ctx, id)
	if err != nil {
		return 0, classify(op, err)
	}
	return rowsAffected(op, res)
}

func rowsAffected(op string, res sql.Result) (int64, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return 0, classify(op, err)
	}
	return n, nil
}
