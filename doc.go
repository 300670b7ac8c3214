// Package notebook is the Composition Root for the notebook application.
//
// It connects the core note logic (Domain Layer) with the SQLite adapter
// (Persistence Layer) using the Hexagonal Architecture pattern.
//
// A notebook is a single local SQLite file holding one table of notes. Each
// note has a title and a free-text body and is addressed by an id that the
// store assigns and never reuses.
//
// Features:
//
//   - **Hexagonal Architecture**: Core domain is isolated from persistence details.
//   - **Prepared Statements**: Every operation runs one parameter-bound statement.
//   - **Classified Errors**: Storage failures carry a kind (not found, constraint, I/O...).
//   - **Dev Safety**: Under `go run`/`go test` the database is sandboxed in a temp dir.
//   - **Read-Only Mode**: Inspect a notebook without any chance of writing to it.
//
// Usage:
//
//	svc, err := notebook.New("./notebook.db3",
//		notebook.WithLogger(logger),
//	)
//
//	// Save a note
//	id, err := svc.InsertNote(ctx, notebook.Note{Title: "First", Text: "hello"})
package notebook
