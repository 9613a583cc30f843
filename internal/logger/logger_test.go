package logger

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogStampsAndPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "zoombox.txt")
	l := NewAt(path)

	l.Log("hello")
	lines := l.Lines()
	require.Len(t, lines, 1)
	assert.True(t, strings.HasPrefix(lines[0], "["))
	assert.True(t, strings.HasSuffix(lines[0], "] hello"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, lines[0]+"\n", string(data))
}

func TestWriteSplitsLines(t *testing.T) {
	l := NewAt("")
	n, err := l.Write([]byte("one\ntwo\n"))
	require.NoError(t, err)
	assert.Equal(t, 8, n)
	assert.Equal(t, []string{"one", "two"}, l.Lines())
}

func TestHistoryIsBounded(t *testing.T) {
	l := NewAt("")
	for i := 0; i < maxLines+10; i++ {
		l.Log("x")
	}
	assert.Len(t, l.Lines(), maxLines)
}

func TestTail(t *testing.T) {
	l := NewAt("")
	_, _ = l.Write([]byte("a\nb\nc\n"))
	assert.Equal(t, []string{"b", "c"}, l.Tail(2))
	assert.Equal(t, []string{"a", "b", "c"}, l.Tail(10))
	assert.Empty(t, l.Tail(0))
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warn"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("bogus"))
}

func TestHandlerFormats(t *testing.T) {
	sink := NewAt("")
	log := slog.New(NewHandler(sink, "debug", "json"))
	log.Debug("drag started", "x", 1)

	lines := sink.Lines()
	require.Len(t, lines, 1)
	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &rec))
	assert.Equal(t, "drag started", rec["msg"])

	text := NewAt("")
	slog.New(NewHandler(text, "warn", "text")).Info("dropped")
	assert.Empty(t, text.Lines())
}

func TestSetupInstallsDefault(t *testing.T) {
	prev := slog.Default()
	defer slog.SetDefault(prev)

	sink := NewAt("")
	log := Setup("info", "text", sink)
	assert.Same(t, log, slog.Default())

	slog.Info("via default")
	require.NotEmpty(t, sink.Lines())
	assert.Contains(t, sink.Lines()[0], "via default")
}
