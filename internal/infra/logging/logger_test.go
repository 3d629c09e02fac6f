package logging

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/goals/internal/domain"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"unknown", slog.LevelInfo}, // default
		{"", slog.LevelInfo},        // default
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := ParseLevel(tt.input)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestLogger_Info(t *testing.T) {
	// Setup
	path := domain.LogPath(t.TempDir())
	logger := New(path, slog.LevelInfo)
	defer func() { _ = logger.Close() }()

	// Execute
	logger.Info("wizard", "test message")

	// Verify
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "level=INFO")
	assert.Contains(t, string(content), "category=wizard")
	assert.Contains(t, string(content), `msg="test message"`)
}

func TestLogger_CreatesLogsDirectory(t *testing.T) {
	dataDir := t.TempDir()
	path := domain.LogPath(dataDir)
	logger := New(path, slog.LevelInfo)
	defer func() { _ = logger.Close() }()

	// Nothing is created before the first entry
	_, err := os.Stat(filepath.Join(dataDir, "logs"))
	assert.True(t, os.IsNotExist(err))

	logger.Error("store", "boom")

	_, err = os.Stat(path)
	require.NoError(t, err)
}

func TestLogger_LevelFiltering(t *testing.T) {
	// Setup
	path := domain.LogPath(t.TempDir())
	logger := New(path, slog.LevelWarn)
	defer func() { _ = logger.Close() }()

	// Execute
	logger.Debug("test", "debug message")
	logger.Info("test", "info message")
	logger.Warn("test", "warn message")
	logger.Error("test", "error message")

	// Verify
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	contentStr := string(content)
	assert.NotContains(t, contentStr, "debug message")
	assert.NotContains(t, contentStr, "info message")
	assert.Contains(t, contentStr, "warn message")
	assert.Contains(t, contentStr, "error message")
	assert.Equal(t, 2, strings.Count(contentStr, "\n"))
}

func TestLogger_Disabled(t *testing.T) {
	logger := New("", slog.LevelDebug)

	// Should not panic or create anything
	logger.Info("test", "message")
	logger.Debug("test", "message")
	assert.Empty(t, logger.Path())
	assert.NoError(t, logger.Close())
}

func TestLogger_CloseTwice(t *testing.T) {
	path := domain.LogPath(t.TempDir())
	logger := New(path, slog.LevelInfo)
	logger.Info("test", "before close")

	require.NoError(t, logger.Close())
	require.NoError(t, logger.Close())

	// Writes after close are dropped
	logger.Info("test", "after close")
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(content), "after close")
}
