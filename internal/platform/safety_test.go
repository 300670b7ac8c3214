package platform_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/notebook/internal/platform"
)

func TestResolveDBPath(t *testing.T) {
	t.Parallel()

	tempRoot := os.TempDir()
	devBase := filepath.Join(tempRoot, platform.DevDirName)

	tests := []struct {
		name      string
		userPath  string
		forceTemp bool
		expected  string
	}{
		{
			name:      "Normal Mode - Relative File",
			userPath:  "notebook.db3",
			forceTemp: false,
			expected:  "notebook.db3",
		},
		{
			name:      "Normal Mode - Specific Path",
			userPath:  "/some/path/notes.db3",
			forceTemp: false,
			expected:  "/some/path/notes.db3",
		},
		{
			name:      "Dev Mode - Empty Path",
			userPath:  "",
			forceTemp: true,
			expected:  filepath.Join(devBase, "notebook.db3"),
		},
		{
			name:      "Dev Mode - Current Dir",
			userPath:  ".",
			forceTemp: true,
			expected:  filepath.Join(devBase, "notebook.db3"),
		},
		{
			name:      "Dev Mode - Relative Name",
			userPath:  "mine.db3",
			forceTemp: true,
			expected:  filepath.Join(devBase, "mine.db3"),
		},
		{
			name:      "Dev Mode - Clean Name",
			userPath:  "../bad/path.db3",
			forceTemp: true,
			expected:  filepath.Join(devBase, "path.db3"),
		},
		{
			name:      "Dev Mode - Exception for Temp Dir",
			userPath:  filepath.Join(tempRoot, "my-test", "n.db3"),
			forceTemp: true,
			expected:  filepath.Join(tempRoot, "my-test", "n.db3"),
		},
		{
			name:      "Dev Mode - Memory Passes Through",
			userPath:  ":memory:",
			forceTemp: true,
			expected:  ":memory:",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := platform.ResolveDBPath(tt.userPath, tt.forceTemp)
			if got != tt.expected {
				t.Errorf("ResolveDBPath(%q, %v) = %q; want %q", tt.userPath, tt.forceTemp, got, tt.expected)
			}
		})
	}
}

func TestIsDevRun(t *testing.T) {
	// This test runs inside "go test", so IsDevRun() MUST return true.
	if !platform.IsDevRun() {
		t.Errorf("IsDevRun() = false; want true inside go test")
	}
}
