// Package logging provides file-based logging for boardsync.
// It outputs logs to both a global log file (boardsync.log) and
// project-specific log files (project-<id>.log) under the config directory.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/mhiguchi/boardsync/internal/domain"
)

// Ensure Logger implements domain.Logger interface.
var _ domain.Logger = (*Logger)(nil)

// Logger wraps slog levels with file-based output.
// Fields are ordered to minimize memory padding.
type Logger struct {
	globalFile   *os.File
	projectFiles map[string]*os.File
	logDir       string
	mu           sync.Mutex
	level        slog.Level
}

// New creates a new Logger that writes into logDir.
// If logDir is empty, logging is disabled (returns a no-op logger).
func New(logDir string, level slog.Level) *Logger {
	return &Logger{
		logDir:       logDir,
		level:        level,
		projectFiles: make(map[string]*os.File),
	}
}

// ParseLevel parses a log level string into slog.Level.
func ParseLevel(levelStr string) slog.Level {
	switch levelStr {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (l *Logger) ensureLogsDir() error {
	return os.MkdirAll(l.logDir, 0o750)
}

// ensureGlobalFile opens or returns the global log file.
func (l *Logger) ensureGlobalFile() (*os.File, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.globalFile != nil {
		return l.globalFile, nil
	}

	if err := l.ensureLogsDir(); err != nil {
		return nil, fmt.Errorf("create logs directory: %w", err)
	}

	path := filepath.Join(l.logDir, "boardsync.log")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o640) //nolint:gosec // Log file readable by owner and group
	if err != nil {
		return nil, fmt.Errorf("open global log file: %w", err)
	}
	l.globalFile = f
	return f, nil
}

// ensureProjectFile opens or returns the project log file.
func (l *Logger) ensureProjectFile(projectID string) (*os.File, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if f, ok := l.projectFiles[projectID]; ok {
		return f, nil
	}

	if err := l.ensureLogsDir(); err != nil {
		return nil, fmt.Errorf("create logs directory: %w", err)
	}

	path := filepath.Join(l.logDir, "project-"+projectID+".log")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o640) //nolint:gosec // Log file readable by owner and group
	if err != nil {
		return nil, fmt.Errorf("open project log file: %w", err)
	}
	l.projectFiles[projectID] = f
	return f, nil
}

// Close closes all open log files.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	var lastErr error
	if l.globalFile != nil {
		if err := l.globalFile.Close(); err != nil {
			lastErr = err
		}
		l.globalFile = nil
	}
	for id, f := range l.projectFiles {
		if err := f.Close(); err != nil {
			lastErr = err
		}
		delete(l.projectFiles, id)
	}
	return lastErr
}

// formatLog formats a log entry.
// Format: [2025-12-30 09:32:51] [INFO] [project-abc] [category] message
func formatLog(t time.Time, level slog.Level, projectID, category, msg string) string {
	scope := "global"
	if projectID != "" {
		scope = "project-" + projectID
	}
	return fmt.Sprintf("[%s] [%s] [%s] [%s] %s\n",
		t.Format("2006-01-02 15:04:05"),
		levelToString(level),
		scope,
		category,
		msg,
	)
}

func levelToString(level slog.Level) string {
	switch level {
	case slog.LevelDebug:
		return "DEBUG"
	case slog.LevelInfo:
		return "INFO"
	case slog.LevelWarn:
		return "WARN"
	case slog.LevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}

// log writes a log entry to appropriate files based on projectID.
// If projectID is empty, logs only to the global log.
func (l *Logger) log(level slog.Level, projectID, category, msg string) {
	if l.logDir == "" {
		return // Logging disabled
	}

	if level < l.level {
		return // Skip if below minimum level
	}

	now := time.Now()
	entry := formatLog(now, level, projectID, category, msg)

	if gf, err := l.ensureGlobalFile(); err == nil {
		_, _ = io.WriteString(gf, entry)
	}

	if projectID != "" {
		if pf, err := l.ensureProjectFile(projectID); err == nil {
			_, _ = io.WriteString(pf, entry)
		}
	}
}

// Debug logs a debug message.
func (l *Logger) Debug(projectID, category, msg string) {
	l.log(slog.LevelDebug, projectID, category, msg)
}

// Info logs an info message.
func (l *Logger) Info(projectID, category, msg string) {
	l.log(slog.LevelInfo, projectID, category, msg)
}

// Warn logs a warning message.
func (l *Logger) Warn(projectID, category, msg string) {
	l.log(slog.LevelWarn, projectID, category, msg)
}

// Error logs an error message.
func (l *Logger) Error(projectID, category, msg string) {
	l.log(slog.LevelError, projectID, category, msg)
}
