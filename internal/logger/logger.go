// Package logger writes structured debug logs to a file so they never
// interfere with the terminal UI. Output goes to DefaultLogPath unless Init
// names another file before the first message.
package logger

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// DefaultLogPath is the log file of the interactive application.
const DefaultLogPath = "/tmp/loom-debug.log"

const demoLogPattern = "/tmp/loom-demo-*.log"

var (
	mu    sync.Mutex
	level = new(slog.LevelVar)
	file  *os.File
	base  *slog.Logger
	// tried records that the default file was attempted, so a failure is
	// reported once.
	tried bool
)

// DemoLogPath returns the log file of a headless demo run.
func DemoLogPath(scenario string) string {
	return strings.Replace(demoLogPattern, "*", scenario, 1)
}

// SetDebug switches between debug and info output.
func SetDebug(enabled bool) {
	if enabled {
		level.Set(slog.LevelDebug)
	} else {
		level.Set(slog.LevelInfo)
	}
}

// Init sends output to path. It does nothing once a file is open.
func Init(path string) error {
	mu.Lock()
	defer mu.Unlock()

	if base != nil {
		return nil
	}
	tried = true
	return open(path)
}

func open(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file %s: %w", path, err)
	}
	file = f
	base = slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level}))
	base.Info("logger initialized", "path", path)
	return nil
}

// current returns the shared logger, opening the default file on first use.
// Callers hold mu. The result is nil when no file could be opened.
func current() *slog.Logger {
	if base == nil && !tried {
		tried = true
		if err := open(DefaultLogPath); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}
	}
	return base
}

func logf(lvl slog.Level, format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()

	l := current()
	if l == nil || !l.Enabled(context.Background(), lvl) {
		return
	}
	l.Log(context.Background(), lvl, fmt.Sprintf(format, args...))
}

// Debug writes a printf-style message at debug level.
func Debug(format string, args ...any) { logf(slog.LevelDebug, format, args...) }

// Info writes a printf-style message at info level.
func Info(format string, args ...any) { logf(slog.LevelInfo, format, args...) }

// Warn writes a printf-style message at warn level.
func Warn(format string, args ...any) { logf(slog.LevelWarn, format, args...) }

// Error writes a printf-style message at error level.
func Error(format string, args ...any) { logf(slog.LevelError, format, args...) }

func with(key, value string) *slog.Logger {
	mu.Lock()
	defer mu.Unlock()

	l := current()
	if l == nil {
		return slog.Default()
	}
	return l.With(slog.String(key, value))
}

// WithComponent returns a logger tagged with component=name.
//
//	log := logger.WithComponent("console")
//	log.Info("command dispatched", "command", cmd)
func WithComponent(name string) *slog.Logger { return with("component", name) }

// WithScreen returns a logger tagged with screen=name.
func WithScreen(name string) *slog.Logger { return with("screen", name) }

// Close closes the log file. Later messages are dropped.
func Close() {
	mu.Lock()
	defer mu.Unlock()

	if file != nil {
		file.Close()
		file = nil
	}
	base = nil
}

// ClearLogs removes the application and demo log files and reports how many
// were deleted.
func ClearLogs() (int, error) {
	demos, err := filepath.Glob(demoLogPattern)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, path := range append([]string{DefaultLogPath}, demos...) {
		switch err := os.Remove(path); {
		case err == nil:
			count++
		case !errors.Is(err, fs.ErrNotExist):
			return count, err
		}
	}
	return count, nil
}
