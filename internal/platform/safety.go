package platform

import (
	"os"
	"path/filepath"
	"strings"
)

// DevDirName is the directory under os.TempDir() that receives sandboxed databases.
const DevDirName = "notebook-dev"

// IsDevRun checks if the current process is running via `go run` or `go test`.
// It relies on the fact that these commands build binaries in temporary directories.
func IsDevRun() bool {
	exe, err := os.Executable()
	if err != nil {
		return false
	}

	// go run builds into the system temp dir.
	tempDir := os.TempDir()
	if strings.HasPrefix(strings.ToLower(exe), strings.ToLower(tempDir)) {
		return true
	}

	// go test binaries end in .test
	if strings.HasSuffix(exe, ".test") || strings.HasSuffix(exe, ".test.exe") {
		return true
	}

	return false
}

// ResolveDBPath determines the actual database path based on safety rules.
// If forceTemp is true, the file is re-rooted into a temporary directory
// to avoid touching the user's real notebook.
func ResolveDBPath(userPath string, forceTemp bool) string {
	if !forceTemp || isInMemory(userPath) {
		return userPath
	}

	// EXCEPTION: a path already inside the system temp directory is trusted
	// (e.g. created by t.TempDir()).
	cleanUserPath := filepath.Clean(userPath)
	if filepath.IsAbs(cleanUserPath) {
		rel, err := filepath.Rel(os.TempDir(), cleanUserPath)
		if err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return cleanUserPath
		}
	}

	baseTemp := filepath.Join(os.TempDir(), DevDirName)
	name := filepath.Base(cleanUserPath)
	if userPath == "" || name == "." || name == string(filepath.Separator) {
		name = "notebook.db3"
	}

	return filepath.Join(baseTemp, name)
}

func isInMemory(path string) bool {
	return path == ":memory:" || strings.HasPrefix(path, "file::memory:")
}
