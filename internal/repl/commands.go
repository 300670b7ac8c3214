package repl

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aretw0/notebook/pkg/core"
)

func (s *Shell) printAll(ctx context.Context) error {
	rows, err := s.nb.ListNotes(ctx)
	if err != nil {
		return err
	}
	printRows(s.out, rows)
	return nil
}

func (s *Shell) get(ctx context.Context, arg string) error {
	id, err := core.ParseID(arg)
	if err != nil {
		return withUsage(usageGet, err)
	}
	n, err := s.nb.GetNote(ctx, id)
	if err != nil {
		return withUsage(usageGet, err)
	}
	fmt.Fprintf(s.out, "%s\n\t%s\n", n.Title, n.Text)
	return nil
}

func (s *Shell) insert(ctx context.Context, title string) error {
	if title == "" {
		return withUsage(usageInsert, &core.ValidationError{Field: "title", Reason: "missing"})
	}
	text, err := s.readLine()
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	id, err := s.nb.InsertNote(ctx, core.Note{Title: title, Text: text})
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Inserted note %d\n", id)
	return nil
}

func (s *Shell) update(ctx context.Context, arg string) error {
	id, err := core.ParseID(arg)
	if err != nil {
		return withUsage(usageUpdate, err)
	}
	existing, err := s.nb.GetNote(ctx, id)
	if err != nil {
		return withUsage(usageUpdate, err)
	}
	fmt.Fprintf(s.out, "%s previously said:\n--%s\nnew text:\n", existing.Title, existing.Text)

	text, err := s.readLine()
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	_, err = s.nb.UpdateNote(ctx, id, core.Note{Title: existing.Title, Text: text})
	return withUsage(usageUpdate, err)
}

func (s *Shell) delete(ctx context.Context, arg string) error {
	id, err := core.ParseID(arg)
	if err != nil {
		return withUsage(usageDelete, err)
	}
	n, err := s.nb.DeleteNote(ctx, id)
	if err != nil {
		return withUsage(usageDelete, err)
	}
	fmt.Fprintf(s.out, "Deleted %d row(s)\n", n)
	return nil
}
