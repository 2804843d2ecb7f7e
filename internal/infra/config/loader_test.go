package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mhiguchi/boardsync/internal/domain"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0o600))
}

func TestLoader_Load_MissingFileUsesDefaults(t *testing.T) {
	// Setup
	loader := NewLoaderWithDir(t.TempDir())

	// Execute
	cfg, err := loader.Load()

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080", cfg.Server.URL)
	assert.Equal(t, 15, cfg.Server.Timeout)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoader_Load_PartialFileFillsGaps(t *testing.T) {
	// Setup
	dir := t.TempDir()
	writeConfig(t, dir, "[server]\nurl = \"https://tracker.example.com\"\n")
	loader := NewLoaderWithDir(dir)

	// Execute
	cfg, err := loader.Load()

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "https://tracker.example.com", cfg.Server.URL)
	assert.Equal(t, 15, cfg.Server.Timeout) // Default kept
	assert.Equal(t, "info", cfg.Log.Level)  // Default kept
}

func TestLoader_Load_ExtraNotificationKinds(t *testing.T) {
	// Setup
	dir := t.TempDir()
	writeConfig(t, dir, "[notifications]\nextra_kinds = [\"deploy\", \"billing\"]\n")
	loader := NewLoaderWithDir(dir)

	// Execute
	cfg, err := loader.Load()

	// Assert
	require.NoError(t, err)
	assert.Equal(t, []domain.NotificationKind{"deploy", "billing"}, cfg.ExtraKinds())
}

func TestLoader_Load_MalformedFile(t *testing.T) {
	// Setup
	dir := t.TempDir()
	writeConfig(t, dir, "not [valid toml")
	loader := NewLoaderWithDir(dir)

	// Execute
	_, err := loader.Load()

	// Assert
	assert.Error(t, err)
}
