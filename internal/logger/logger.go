package logger

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// LogFilePath is the log file, relative to the working directory.
const LogFilePath = "logs/zoombox.txt"

// maxLines bounds the in-memory history; the file keeps everything.
const maxLines = 500

// Logger stores recent log lines in memory (for the on-screen HUD) and appends them to a file on disk.
// It is an io.Writer so slog handlers can write into it.
type Logger struct {
	mu    sync.Mutex
	path  string
	lines []string
}

// New returns a Logger writing to LogFilePath and ensures the logs directory exists.
func New() *Logger {
	return NewAt(LogFilePath)
}

// NewAt returns a Logger writing to path. An empty path keeps lines in memory only.
func NewAt(path string) *Logger {
	if path != "" {
		_ = os.MkdirAll(filepath.Dir(path), 0755)
	}
	return &Logger{path: path, lines: make([]string, 0)}
}

// Log appends a line prefixed with [timestamp] using computer time.
func (l *Logger) Log(line string) {
	ts := time.Now().Format("2006-01-02 15:04:05")
	l.append([]string{"[" + ts + "] " + line})
}

// Write stores each newline-terminated line in p as-is. Handlers already stamp records.
func (l *Logger) Write(p []byte) (int, error) {
	var lines []string
	for _, line := range bytes.Split(bytes.TrimRight(p, "\n"), []byte("\n")) {
		lines = append(lines, string(line))
	}
	l.append(lines)
	return len(p), nil
}

func (l *Logger) append(lines []string) {
	l.mu.Lock()
	l.lines = append(l.lines, lines...)
	if over := len(l.lines) - maxLines; over > 0 {
		l.lines = append(l.lines[:0], l.lines[over:]...)
	}
	l.mu.Unlock()

	if l.path == "" {
		return
	}
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return
	}
	_, _ = f.WriteString(strings.Join(lines, "\n") + "\n")
	_ = f.Close()
}

// Lines returns a copy of all stored lines.
func (l *Logger) Lines() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.lines))
	copy(out, l.lines)
	return out
}

// Tail returns a copy of the last n stored lines.
func (l *Logger) Tail(n int) []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	start := max(len(l.lines)-n, 0)
	out := make([]string, len(l.lines)-start)
	copy(out, l.lines[start:])
	return out
}

// ParseLevel maps "debug", "info", "warn" or "error" to a slog level (default info).
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Setup builds the process logger, installs it as the slog default and returns it.
// Records go to stdout and, when sink is non-nil, to sink as well.
// format may be "json" or "text" (default "text").
func Setup(level, format string, sink io.Writer) *slog.Logger {
	var out io.Writer = os.Stdout
	if sink != nil {
		out = io.MultiWriter(os.Stdout, sink)
	}
	log := slog.New(NewHandler(out, level, format))
	slog.SetDefault(log)
	return log
}

// NewHandler returns a text or JSON handler writing to w at the given level.
func NewHandler(w io.Writer, level, format string) slog.Handler {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}
	if strings.ToLower(format) == "json" {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}
