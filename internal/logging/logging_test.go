package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aretw0/notebook/internal/config"
)

func TestNewWritesJSONToStderr(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger, closer, err := New(config.LoggingConfig{Level: "info", Format: "json"}, &buf)
	require.NoError(t, err)
	t.Cleanup(func() { _ = closer.Close() })

	logger.Debug("hidden")
	logger.Info("note inserted", "id", 7)

	var out map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	require.Equal(t, "note inserted", out["msg"])
	require.EqualValues(t, 7, out["id"])
}

func TestNewRedactsNoteText(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger, _, err := New(config.LoggingConfig{Level: "debug", Format: "json"}, &buf)
	require.NoError(t, err)

	logger.With("text", "dear diary").Debug("updating", slog.Group("note", "title", "t", "body", "secret"))

	var out map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	require.Equal(t, "[REDACTED]", out["text"])
	note, ok := out["note"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "t", note["title"])
	require.Equal(t, "[REDACTED]", note["body"])
}

func TestNewWritesToRotatingFile(t *testing.T) {
	t.Parallel()

	logPath := filepath.Join(t.TempDir(), "logs", "notebook.log")
	var stderr bytes.Buffer
	logger, closer, err := New(config.LoggingConfig{Level: "info", Format: "text", File: logPath}, &stderr)
	require.NoError(t, err)

	logger.Info("store opened", "path", "x.db3")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	require.Contains(t, string(data), "store opened")
	require.Empty(t, stderr.String())
}

func TestNewRejectsUnknownSettings(t *testing.T) {
	t.Parallel()

	_, _, err := New(config.LoggingConfig{Level: "chatty"}, &bytes.Buffer{})
	require.Error(t, err)

	_, _, err = New(config.LoggingConfig{Level: "info", Format: "xml"}, &bytes.Buffer{})
	require.Error(t, err)
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]slog.Level{
		"":        slog.LevelInfo,
		"DEBUG":   slog.LevelDebug,
		"warning": slog.LevelWarn,
		" error ": slog.LevelError,
	} {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		require.Equal(t, want, got, in)
	}
}

func TestRotatingWriterRequiresFile(t *testing.T) {
	t.Parallel()

	_, err := NewRotatingWriter(RotationConfig{})
	require.Error(t, err)
}

func TestLogRotationCreatesNewFileAfterLimit(t *testing.T) {
	logDir := t.TempDir()
	logPath := filepath.Join(logDir, "notebook.log")

	writer, err := NewRotatingWriter(RotationConfig{
		File:      logPath,
		MaxSizeMB: 1,
		MaxFiles:  2,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = writer.Close() })

	chunk := bytes.Repeat([]byte("a"), 512*1024)
	for i := 0; i < 3; i++ {
		_, err := writer.Write(chunk)
		require.NoError(t, err)
	}

	matches, err := filepath.Glob(filepath.Join(logDir, "notebook-*.log"))
	require.NoError(t, err)
	require.NotEmpty(t, matches, "expected a rotated backup")
}
