// Package logging provides file-based logging for goals.
// Entries go to a single rotating log file (<data dir>/logs/goals.log).
package logging

import (
	"context"
	"log/slog"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/runoshun/goals/internal/domain"
)

// Rotation settings for the log file.
const (
	maxSizeMB  = 5
	maxBackups = 3
	maxAgeDays = 28
)

// Ensure Logger implements domain.Logger interface.
var _ domain.Logger = (*Logger)(nil)

// Logger wraps slog.Logger with rotating file output.
// Fields are ordered to minimize memory padding.
type Logger struct {
	out    *lumberjack.Logger
	slog   *slog.Logger
	path   string
	mu     sync.Mutex
	closed bool
}

// New creates a new Logger that writes to path.
// If path is empty, logging is disabled (returns a no-op logger).
// The file and its directory are created on the first write.
func New(path string, level slog.Level) *Logger {
	l := &Logger{path: path}
	if path == "" {
		return l
	}

	l.out = &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
		MaxAge:     maxAgeDays,
		Compress:   true,
	}
	l.slog = slog.New(slog.NewTextHandler(l.out, &slog.HandlerOptions{Level: level}))
	return l
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

// Path returns the log file path (empty when disabled).
func (l *Logger) Path() string {
	return l.path
}

// Close closes the log file.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.out == nil || l.closed {
		return nil
	}
	l.closed = true
	return l.out.Close()
}

// log writes an entry tagged with its category.
func (l *Logger) log(level slog.Level, category, msg string) {
	if l.slog == nil {
		return // Logging disabled
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return
	}
	l.slog.Log(context.Background(), level, msg, slog.String("category", category))
}

// Info logs an info message.
func (l *Logger) Info(category, msg string) {
	l.log(slog.LevelInfo, category, msg)
}

// Debug logs a debug message.
func (l *Logger) Debug(category, msg string) {
	l.log(slog.LevelDebug, category, msg)
}

// Warn logs a warning message.
func (l *Logger) Warn(category, msg string) {
	l.log(slog.LevelWarn, category, msg)
}

// Error logs an error message.
func (l *Logger) Error(category, msg string) {
	l.log(slog.LevelError, category, msg)
}
