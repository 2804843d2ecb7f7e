// Package session persists the authenticated session to a YAML file.
package session

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/mhiguchi/boardsync/internal/domain"
)

// SessionFileName is the name of the session file inside the config directory.
const SessionFileName = "session.yaml"

// Ensure Store implements domain.SessionStore interface.
var _ domain.SessionStore = (*Store)(nil)

// Store implements domain.SessionStore using a YAML file.
type Store struct {
	path string
}

// New creates a new Store writing into the given config directory.
func New(confDir string) *Store {
	return &Store{path: filepath.Join(confDir, SessionFileName)}
}

// Load reads the saved session. A missing file yields ErrNotAuthenticated.
func (s *Store) Load() (*domain.Session, error) {
	content, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrNotAuthenticated
		}
		return nil, fmt.Errorf("read session file: %w", err)
	}

	var sess domain.Session
	if err := yaml.Unmarshal(content, &sess); err != nil {
		return nil, fmt.Errorf("parse session file: %w", err)
	}
	if sess.Token == "" {
		return nil, domain.ErrNotAuthenticated
	}
	return &sess, nil
}

// Save writes the session to disk, creating the directory if needed.
func (s *Store) Save(sess *domain.Session) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("create session directory: %w", err)
	}

	content, err := yaml.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	// Write to temp file first, then rename for atomicity
	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, content, 0o600); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath) // Clean up
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

// Clear removes the session file. A missing file is not an error.
func (s *Store) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove session file: %w", err)
	}
	return nil
}
