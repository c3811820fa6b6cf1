// ABOUTME: Leveled logging wrapper around slog; printf-style helpers write to stderr by default
// ABOUTME: Global level via SetLevel; SetOutput redirects output (tests, TUI log files)

package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
)

// Level constants matching slog levels.
const (
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError
)

var (
	level  slog.LevelVar
	mu     sync.RWMutex
	logger *slog.Logger
)

func init() {
	level.Set(LevelInfo)
	logger = newLogger(os.Stderr)
}

func newLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: &level}))
}

// SetLevel sets the global log level.
func SetLevel(l slog.Level) {
	level.Set(l)
}

// GetLevel returns the current log level.
func GetLevel() slog.Level {
	return level.Level()
}

// ParseLevel maps "debug", "info", "warn" or "error" to a level.
// Unknown names yield LevelInfo and false.
func ParseLevel(name string) (slog.Level, bool) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(name)); err != nil {
		return LevelInfo, false
	}
	return l, true
}

// SetOutput redirects log output to w.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	logger = newLogger(w)
}

// Logger returns the structured logger for callers that want key/value attrs.
func Logger() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

func logf(l slog.Level, format string, args ...any) {
	lg := Logger()
	if !lg.Enabled(context.Background(), l) {
		return
	}
	lg.Log(context.Background(), l, fmt.Sprintf(format, args...))
}

// Debug logs a debug message if the level allows it.
func Debug(format string, args ...any) { logf(LevelDebug, format, args...) }

// Info logs an info message if the level allows it.
func Info(format string, args ...any) { logf(LevelInfo, format, args...) }

// Warn logs a warning message if the level allows it.
func Warn(format string, args ...any) { logf(LevelWarn, format, args...) }

// Error logs an error message.
func Error(format string, args ...any) { logf(LevelError, format, args...) }
