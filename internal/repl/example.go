package repl

import (
	"context"
	"fmt"
	"io"

	"github.com/aretw0/notebook/pkg/core"
)

// RunExample walks through every operation once against nb, narrating as it
// goes. Data persists, so repeated runs keep adding notes.
func RunExample(ctx context.Context, nb Notebook, out io.Writer) error {
	fmt.Fprint(out, "You can see that the data persists across multiple runs if you just run this multiple times in a row.\n\n")

	firstID, err := nb.InsertNote(ctx, core.Note{
		Title: "First title",
		Text:  "first text\n ladedadeda",
	})
	if err != nil {
		return err
	}
	first, err := nb.GetNote(ctx, firstID)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Inserted a note! here it is: %+v\n", first)

	updated, err := nb.UpdateNote(ctx, firstID, core.Note{
		Title: "hey look mom I updated a note",
		Text:  "fancy dancy text",
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "updated %d notes\n", updated)

	secondID, err := nb.InsertNote(ctx, core.Note{
		Title: "Another title!!!",
		Text:  "Aren't I cool😊",
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "Just inserted another one! Let's show all the notes we've got:")
	rows, err := nb.ListNotes(ctx)
	if err != nil {
		return err
	}
	printRows(out, rows)

	fmt.Fprintf(out, "Time to delete the second one with id %d\n", secondID)
	deleted, err := nb.DeleteNote(ctx, secondID)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Tada! deleted %d. here's all the notes we've got:\n", deleted)
	rows, err = nb.ListNotes(ctx)
	if err != nil {
		return err
	}
	printRows(out, rows)
	return nil
}

func printRows(out io.Writer, rows []core.NoteRow) {
	fmt.Fprintln(out, core.ListingHeader)
	for _, row := range rows {
		fmt.Fprintln(out, row.String())
	}
}
