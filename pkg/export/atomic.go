package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/aretw0/notebook/pkg/core"
)

// TempFilePrefix names the scratch file that becomes the export on rename.
const TempFilePrefix = "notebook-export-"

// WriteFile renders rows in format and replaces filename with the result.
// A reader of filename sees either the old content or the full export.
func WriteFile(filename, format string, rows []core.NoteRow) error {
	data, err := Render(format, rows)
	if err != nil {
		return err
	}
	return WriteFileAtomic(filename, data, 0o644)
}

// WriteFileAtomic writes data to a temp file next to filename, then renames
// it over filename.
func WriteFileAtomic(filename string, data []byte, perm os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(filename), TempFilePrefix+"*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if err := tmp.Chmod(perm); err != nil {
		tmp.Close()
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmpName, filename); err != nil {
		return fmt.Errorf("rename temp file to %s: %w", filename, err)
	}
	return nil
}
