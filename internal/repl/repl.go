// Package repl is the interactive command loop: it reads one command per
// line, runs it against a notebook and prints the outcome.
package repl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/fatih/color"

	"github.com/aretw0/notebook/pkg/core"
)

// Notebook is the subset of core.Service the loop drives.
type Notebook interface {
	InsertNote(ctx context.Context, n core.Note) (int64, error)
	GetNote(ctx context.Context, id int64) (core.Note, error)
	ListNotes(ctx context.Context) ([]core.NoteRow, error)
	UpdateNote(ctx context.Context, id int64, n core.Note) (int64, error)
	DeleteNote(ctx context.Context, id int64) (int64, error)
}

const (
	Prompt  = "> "
	Welcome = "Welcome to your persistent notebook! type `help` to get started"
	Goodbye = "Ok, goodbye! 👋"

	Usage = "Usage: This is a mini database that runs locally.\n" +
		"  `help` to see this message.\n" +
		"  `exit` or `quit` to leave this dialogue\n" +
		"  `insert [title]` and then be prompted one line of text.\n" +
		"  `all` lists all notes and their IDs\n" +
		"  `get [id]` prints the note with the specified ID\n" +
		"  `delete [id]` removes the specified note from the database.\n" +
		"  `update [id]` prints the specified note and changes the text to what you input\n" +
		"  `example` runs a short demo against this notebook"

	usageInsert = "invalid input to insert. Try `insert [title]`, then type the text on the next line"
	usageGet    = "invalid input to get. Try `get [noteId]`"
	usageDelete = "invalid input to delete. Try `delete [noteId]` where noteId is a number"
	usageUpdate = "invalid input to update. Try `update [noteId]` where noteId is a number. " +
		"You will be prompted for the new text. Can't change title"
)

type Options struct {
	In      io.Reader
	Out     io.Writer
	NoColor bool
	Logger  *slog.Logger
}

// Shell runs commands read from In against a Notebook.
type Shell struct {
	nb     Notebook
	in     *bufio.Reader
	out    io.Writer
	logger *slog.Logger
	eof    bool

	errColor  *color.Color
	infoColor *color.Color
}

func New(nb Notebook, opts Options) *Shell {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Shell{
		nb:        nb,
		in:        bufio.NewReader(opts.In),
		out:       opts.Out,
		logger:    logger,
		errColor:  color.New(color.FgRed),
		infoColor: color.New(color.FgCyan),
	}
	if opts.NoColor {
		s.errColor.DisableColor()
		s.infoColor.DisableColor()
	}
	return s
}

// Run loops until quit/exit, end of input, or ctx is cancelled.
// Failed commands are reported and the loop goes on.
func (s *Shell) Run(ctx context.Context) error {
	s.infoColor.Fprintln(s.out, Welcome)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprint(s.out, Prompt)
		line, err := s.readLine()
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(s.out)
				return nil
			}
			return fmt.Errorf("read command: %w", err)
		}

		if quit := s.Exec(ctx, line); quit {
			s.infoColor.Fprintln(s.out, Goodbye)
			return nil
		}
	}
}

// Exec runs a single command line. It reports true when the line asks the
// loop to stop.
func (s *Shell) Exec(ctx context.Context, line string) (quit bool) {
	verb, arg := splitCommand(line)
	s.logger.Debug("command", "verb", verb)

	var err error
	switch verb {
	case "quit", "exit":
		return true
	case "all":
		err = s.printAll(ctx)
	case "get":
		err = s.get(ctx, arg)
	case "insert":
		err = s.insert(ctx, arg)
	case "delete":
		err = s.delete(ctx, arg)
	case "update":
		err = s.update(ctx, arg)
	case "example":
		err = RunExample(ctx, s.nb, s.out)
	default:
		fmt.Fprintln(s.out, Usage)
	}

	if err != nil {
		s.report(err)
	}
	return false
}

// splitCommand returns the lower-cased first word of the line and the
// trimmed text after its first space. The verb ends at any whitespace but
// the argument only starts after a space, so "get\t1" has no argument.
func splitCommand(line string) (verb, arg string) {
	line = strings.TrimSpace(line)
	if fields := strings.Fields(line); len(fields) > 0 {
		verb = strings.ToLower(fields[0])
	}
	if _, rest, ok := strings.Cut(line, " "); ok {
		arg = strings.TrimSpace(rest)
	}
	return verb, arg
}

// readLine returns the next line without its line ending. A final line
// without a newline is returned before io.EOF.
func (s *Shell) readLine() (string, error) {
	if s.eof {
		return "", io.EOF
	}
	line, err := s.in.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", err
		}
		s.eof = true
		if line == "" {
			return "", io.EOF
		}
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// report prints a failure. Bad arguments get the command's usage line.
func (s *Shell) report(err error) {
	var usage *usageError
	if errors.As(err, &usage) {
		fmt.Fprintln(s.out, usage.msg)
		return
	}
	s.logger.Debug("command failed", "error", err)
	s.errColor.Fprintf(s.out, "Oops! That threw an error😢: %v. Try something different.\n", err)
}

// usageError carries the usage line to print for a rejected argument.
type usageError struct {
	msg string
	err error
}

func (e *usageError) Error() string { return e.msg + ": " + e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

// withUsage marks validation failures so they print msg instead of the
// generic error line.
func withUsage(msg string, err error) error {
	if core.IsValidation(err) {
		return &usageError{msg: msg, err: err}
	}
	return err
}
