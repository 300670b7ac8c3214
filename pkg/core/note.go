// Package core holds the notebook domain: the note model, the storage port
// and the service that sits between the command loop and a store.
package core

import "fmt"

// Note is the content of a note without its row identity.
// It is what callers write, and what a single-note read returns.
type Note struct {
	Title string `json:"title" yaml:"title"`
	Text  string `json:"text" yaml:"text"`
}

// NoteRow is the persisted representation of a note.
// ID is assigned by the store on insert and is never chosen by callers.
type NoteRow struct {
	ID    int64  `json:"id" yaml:"id"`
	Title string `json:"title" yaml:"title"`
	Text  string `json:"text" yaml:"text"`
}

// Note drops the row identity.
func (r NoteRow) Note() Note {
	return Note{Title: r.Title, Text: r.Text}
}

// String renders the row the way the "all" listing prints it.
func (r NoteRow) String() string {
	return fmt.Sprintf("%d\t| %s\n\t|\t%s", r.ID, r.Title, r.Text)
}

// ListingHeader is printed above a sequence of NoteRow.String values.
const ListingHeader = "id\t| Title\n\t|\tText"
