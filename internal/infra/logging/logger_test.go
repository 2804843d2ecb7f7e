package logging

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_WritesGlobalAndProjectFiles(t *testing.T) {
	// Setup
	dir := t.TempDir()
	logger := New(dir, slog.LevelInfo)
	defer func() { _ = logger.Close() }()

	// Execute
	logger.Info("p1", "task", "created t1")
	logger.Warn("", "push", "stream closed")

	// Assert
	global, err := os.ReadFile(filepath.Join(dir, "boardsync.log"))
	require.NoError(t, err)
	assert.Contains(t, string(global), "created t1")
	assert.Contains(t, string(global), "stream closed")

	project, err := os.ReadFile(filepath.Join(dir, "project-p1.log"))
	require.NoError(t, err)
	assert.Contains(t, string(project), "created t1")
	assert.NotContains(t, string(project), "stream closed")
}

func TestLogger_LevelFiltering(t *testing.T) {
	// Setup
	dir := t.TempDir()
	logger := New(dir, slog.LevelWarn)
	defer func() { _ = logger.Close() }()

	// Execute
	logger.Debug("", "task", "debug line")
	logger.Info("", "task", "info line")
	logger.Error("", "task", "error line")

	// Assert
	global, err := os.ReadFile(filepath.Join(dir, "boardsync.log"))
	require.NoError(t, err)
	assert.NotContains(t, string(global), "debug line")
	assert.NotContains(t, string(global), "info line")
	assert.Contains(t, string(global), "error line")
}

func TestLogger_DisabledWhenDirEmpty(t *testing.T) {
	// Setup
	logger := New("", slog.LevelInfo)

	// Execute & Assert: no panic, no files
	logger.Info("p1", "task", "ignored")
	assert.NoError(t, logger.Close())
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warn"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("unknown"))
}
