// Package console holds the terminal-facing helpers shared by commands:
// a leveled logger that writes to stderr and a progress spinner.
package console

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
)

// Level orders log messages by severity.
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
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return fmt.Sprintf("level(%d)", int(l))
	}
}

// ParseLevel maps a level name to a Level. Empty means info.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "", "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, fmt.Errorf("unknown log level %q (expected debug, info, warn or error)", s)
	}
}

// Logger prints timestamped, leveled lines.
type Logger struct {
	mu    sync.Mutex
	w     io.Writer
	level Level
	now   func() time.Time
}

// NewLogger creates a logger writing to w. A nil w means stderr.
func NewLogger(w io.Writer, level Level) *Logger {
	if w == nil {
		w = os.Stderr
	}
	return &Logger{w: w, level: level, now: time.Now}
}

// Discard returns a logger that prints nothing.
func Discard() *Logger {
	return NewLogger(io.Discard, LevelError+1)
}

// Level returns the minimum level that is printed.
func (l *Logger) Level() Level {
	return l.level
}

// Writer returns the destination of log lines.
func (l *Logger) Writer() io.Writer {
	return l.w
}

func (l *Logger) Debugf(format string, a ...any) { l.logf(LevelDebug, format, a...) }
func (l *Logger) Infof(format string, a ...any)  { l.logf(LevelInfo, format, a...) }
func (l *Logger) Warnf(format string, a ...any)  { l.logf(LevelWarn, format, a...) }
func (l *Logger) Errorf(format string, a ...any) { l.logf(LevelError, format, a...) }

func (l *Logger) logf(level Level, format string, a ...any) {
	if l == nil || level < l.level {
		return
	}

	var sb strings.Builder
	sb.WriteString("[")
	sb.WriteString(l.now().Format("15:04:05"))
	sb.WriteString("] ")
	sb.WriteString(levelTag(level))
	sb.WriteString(" ")
	sb.WriteString(strings.TrimRight(fmt.Sprintf(format, a...), "\n"))
	sb.WriteString("\n")

	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = io.WriteString(l.w, sb.String())
}

func levelTag(level Level) string {
	tag := strings.ToUpper(level.String())
	switch level {
	case LevelDebug:
		return color.HiBlackString(tag)
	case LevelWarn:
		return color.YellowString(tag)
	case LevelError:
		return color.RedString(tag)
	default:
		return color.CyanString(tag)
	}
}
