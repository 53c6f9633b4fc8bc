// Package log writes structured debug logs for panejump.
// Output goes to a file (the terminal is owned by the UI) and every line is
// republished so the problems view can show recent warnings.
package log

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/guzus/panejump/internal/pubsub"
)

// Level represents log severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel parses a level name such as "warn". Case is ignored.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return LevelDebug, nil
	case "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelDebug, fmt.Errorf("unknown log level %q", s)
	}
}

// Category groups related log messages.
type Category string

const (
	CatSession Category = "session" // jump sessions and key resolution
	CatHistory Category = "history" // history pushes and toggles
	CatFocus   Category = "focus"   // host focus notifications
	CatHost    Category = "host"    // host commands and panes
	CatConfig  Category = "config"  // configuration loading/saving
	CatUI      Category = "ui"      // terminal UI updates
	CatWatcher Category = "watcher" // file reloads
)

// Entry is one published log line.
type Entry struct {
	Level Level
	Line  string
}

// Logger writes formatted entries to a writer and a broker.
type Logger struct {
	mu       sync.Mutex
	file     *os.File
	writer   io.Writer
	minLevel Level
	broker   *pubsub.Broker[Entry]
}

var (
	defaultMu     sync.RWMutex
	defaultLogger *Logger
)

// New returns a logger writing to w.
func New(w io.Writer) *Logger {
	return &Logger{
		writer:   w,
		minLevel: LevelDebug,
		broker:   pubsub.NewBroker[Entry](),
	}
}

// Init opens path through tea.LogToFile and installs it as the default
// logger. The returned func closes the file.
func Init(path string) (func(), error) {
	f, err := tea.LogToFile(path, "panejump")
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	l := New(f)
	l.file = f
	SetDefault(l)
	return func() {
		SetDefault(nil)
		l.broker.Close()
		_ = f.Close()
	}, nil
}

// SetDefault installs l as the package-level logger. Nil disables logging.
func SetDefault(l *Logger) {
	defaultMu.Lock()
	defaultLogger = l
	defaultMu.Unlock()
}

func current() *Logger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLogger
}

// SetMinLevel sets the minimum log level.
func SetMinLevel(level Level) {
	if l := current(); l != nil {
		l.mu.Lock()
		l.minLevel = level
		l.mu.Unlock()
	}
}

// Debug logs at debug level.
func Debug(cat Category, msg string, fields ...any) {
	write(LevelDebug, cat, msg, fields...)
}

// Info logs at info level.
func Info(cat Category, msg string, fields ...any) {
	write(LevelInfo, cat, msg, fields...)
}

// Warn logs at warning level.
func Warn(cat Category, msg string, fields ...any) {
	write(LevelWarn, cat, msg, fields...)
}

// ErrorErr logs an error with the error value.
func ErrorErr(cat Category, msg string, err error, fields ...any) {
	if err != nil {
		fields = append(fields, "error", err.Error())
	} else {
		fields = append(fields, "error", "<nil>")
	}
	write(LevelError, cat, msg, fields...)
}

func write(level Level, cat Category, msg string, fields ...any) {
	l := current()
	if l == nil {
		return
	}
	l.log(level, cat, msg, fields...)
}

func (l *Logger) log(level Level, cat Category, msg string, fields ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if level < l.minLevel {
		return
	}

	line := Format(time.Now(), level, cat, msg, fields...)
	if l.writer != nil {
		_, _ = io.WriteString(l.writer, line+"\n")
	}
	if l.broker != nil {
		l.broker.Publish(pubsub.UpdatedEvent, Entry{Level: level, Line: line})
	}
}

// Format renders one entry as
// "2025-12-06T10:45:00 [ERROR] [session] message key=value".
func Format(ts time.Time, level Level, cat Category, msg string, fields ...any) string {
	entry := fmt.Sprintf("%s [%s] [%s] %s", ts.Format("2006-01-02T15:04:05"), level, cat, msg)
	for i := 0; i+1 < len(fields); i += 2 {
		entry += fmt.Sprintf(" %v=%v", fields[i], fields[i+1])
	}
	if len(fields)%2 != 0 {
		entry += fmt.Sprintf(" %v=<missing>", fields[len(fields)-1])
	}
	return entry
}

// Subscribe returns log entries published after the call until ctx ends.
// It returns nil when no logger is installed.
func Subscribe(ctx context.Context) <-chan pubsub.Event[Entry] {
	l := current()
	if l == nil {
		return nil
	}
	return l.broker.Subscribe(ctx)
}
