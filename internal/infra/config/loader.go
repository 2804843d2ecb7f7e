// Package config provides configuration loading functionality.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/mhiguchi/boardsync/internal/domain"
)

// ConfigFileName is the name of the config file inside the config directory.
const ConfigFileName = "config.toml"

// Config is the application configuration loaded from TOML.
type Config struct {
	Server        ServerConfig        `toml:"server"`
	Log           LogConfig           `toml:"log"`
	Notifications NotificationsConfig `toml:"notifications"`
}

// ServerConfig holds settings from the [server] section.
type ServerConfig struct {
	URL     string `toml:"url"`     // Base URL of the tracker API
	Timeout int    `toml:"timeout"` // Request timeout in seconds (0 = default)
}

// LogConfig holds settings from the [log] section.
type LogConfig struct {
	Level string `toml:"level"` // debug, info, warn, error
}

// NotificationsConfig holds settings from the [notifications] section.
type NotificationsConfig struct {
	// ExtraKinds extends the built-in set of notification kinds that are
	// surfaced to the user.
	ExtraKinds []string `toml:"extra_kinds"`
}

// NewDefaultConfig returns the configuration used when no file exists.
func NewDefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{URL: "http://localhost:8080", Timeout: 15},
		Log:    LogConfig{Level: "info"},
	}
}

// ExtraKinds returns the configured extra notification kinds as typed values.
func (c *Config) ExtraKinds() []domain.NotificationKind {
	kinds := make([]domain.NotificationKind, 0, len(c.Notifications.ExtraKinds))
	for _, k := range c.Notifications.ExtraKinds {
		kinds = append(kinds, domain.NotificationKind(k))
	}
	return kinds
}

// Loader loads configuration from TOML files.
type Loader struct {
	confDir string // Path to the boardsync config directory
}

// NewLoader creates a new Loader using the default config directory.
func NewLoader() *Loader {
	return &Loader{confDir: DefaultConfigDir()}
}

// NewLoaderWithDir creates a new Loader with a custom config directory.
// This is useful for testing.
func NewLoaderWithDir(confDir string) *Loader {
	return &Loader{confDir: confDir}
}

// DefaultConfigDir returns the default config directory.
func DefaultConfigDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "boardsync")
}

// Dir returns the config directory the loader reads from.
func (l *Loader) Dir() string {
	return l.confDir
}

// Load returns the configuration, falling back to defaults when no file
// exists.
func (l *Loader) Load() (*Config, error) {
	if l.confDir == "" {
		return NewDefaultConfig(), nil
	}
	cfg, err := l.loadFile(filepath.Join(l.confDir, ConfigFileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return NewDefaultConfig(), nil
		}
		return nil, err
	}

	// Fill gaps with defaults
	base := NewDefaultConfig()
	if cfg.Server.URL == "" {
		cfg.Server.URL = base.Server.URL
	}
	if cfg.Server.Timeout == 0 {
		cfg.Server.Timeout = base.Server.Timeout
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = base.Log.Level
	}
	return cfg, nil
}

func (l *Loader) loadFile(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := toml.Unmarshal(content, &cfg); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return &cfg, nil
}
