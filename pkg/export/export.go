// Package export renders a snapshot of the notebook in file formats other
// tools can read.
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/notebook/pkg/core"
)

// Encoder writes a list of notes to w.
type Encoder interface {
	Encode(w io.Writer, rows []core.NoteRow) error
}

// EncoderFunc adapts a function to the Encoder interface.
type EncoderFunc func(w io.Writer, rows []core.NoteRow) error

func (f EncoderFunc) Encode(w io.Writer, rows []core.NoteRow) error {
	return f(w, rows)
}

// Extension maps each format to the file extension used for it.
var Extension = map[string]string{
	"json":     ".json",
	"yaml":     ".yaml",
	"markdown": ".md",
	"csv":      ".csv",
}

// DefaultEncoders returns the standard set of encoders keyed by format name.
func DefaultEncoders() map[string]Encoder {
	return map[string]Encoder{
		"json":     EncoderFunc(encodeJSON),
		"yaml":     EncoderFunc(encodeYAML),
		"markdown": EncoderFunc(encodeMarkdown),
		"csv":      EncoderFunc(encodeCSV),
	}
}

// Formats lists the supported format names in sorted order.
func Formats() []string {
	names := make([]string, 0, len(Extension))
	for name := range Extension {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the encoder for format ("md" and "yml" are accepted aliases).
func Lookup(format string) (Encoder, error) {
	name := strings.ToLower(strings.TrimSpace(format))
	switch name {
	case "md":
		name = "markdown"
	case "yml":
		name = "yaml"
	}
	enc, ok := DefaultEncoders()[name]
	if !ok {
		return nil, fmt.Errorf("unknown export format %q (want one of %s)", format, strings.Join(Formats(), ", "))
	}
	return enc, nil
}

// Render encodes rows into memory.
func Render(format string, rows []core.NoteRow) ([]byte, error) {
	enc, err := Lookup(format)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := enc.Encode(&buf, rows); err != nil {
		return nil, fmt.Errorf("encode %s: %w", format, err)
	}
	return buf.Bytes(), nil
}

// --- JSON ---

func encodeJSON(w io.Writer, rows []core.NoteRow) error {
	if rows == nil {
		rows = []core.NoteRow{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(rows)
}

// --- YAML ---

func encodeYAML(w io.Writer, rows []core.NoteRow) error {
	if rows == nil {
		rows = []core.NoteRow{}
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(rows); err != nil {
		return err
	}
	return enc.Close()
}

// --- Markdown ---

// frontmatter is the metadata block of one exported note.
type frontmatter struct {
	ID    int64  `yaml:"id"`
	Title string `yaml:"title"`
}

// encodeMarkdown writes each note as a frontmatter block followed by its text.
// Notes are separated by a blank line.
func encodeMarkdown(w io.Writer, rows []core.NoteRow) error {
	var buf bytes.Buffer
	for i, row := range rows {
		if i > 0 {
			buf.WriteString("\n")
		}
		buf.WriteString("---\n")
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(frontmatter{ID: row.ID, Title: row.Title}); err != nil {
			return err
		}
		if err := enc.Close(); err != nil {
			return err
		}
		buf.WriteString("---\n")
		buf.WriteString(row.Text)
		if row.Text != "" && !strings.HasSuffix(row.Text, "\n") {
			buf.WriteString("\n")
		}
	}
	_, err := w.Write(buf.Bytes())
	return err
}

// --- CSV ---

func encodeCSV(w io.Writer, rows []core.NoteRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"id", "title", "text"}); err != nil {
		return err
	}
	for _, row := range rows {
		if err := cw.Write([]string{strconv.FormatInt(row.ID, 10), row.Title, row.Text}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
