package logger

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ayanami-Ley/vibe2025-Palnov3333/internal/common/constants"
)

func TestLogger_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "todo", "warn")

	log.Info("hidden")
	log.Warn("shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "[WARNING] [todo]")
	assert.Contains(t, out, "shown")
}

func TestLogger_WithFieldsSortedAndTraceID(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "todo", "debug")

	ctx := context.WithValue(context.Background(), constants.TraceIDKey, "abc123")
	log.WithFields(ctx, Fields{"user_id": 7, "action": "add_item"}).Infof("item %d added", 42)

	out := buf.String()
	assert.Contains(t, out, "[trace_id=abc123 action=add_item user_id=7]")
	assert.Contains(t, out, "item 42 added")
	assert.True(t, strings.Contains(out, "logger_test.go:"), "caller file expected in %q", out)
}

func TestLogger_ShouldLog(t *testing.T) {
	log := NewWithWriter(&bytes.Buffer{}, "", "error")

	assert.False(t, log.ShouldLog(DEBUG))
	assert.False(t, log.ShouldLog(WARNING))
	assert.True(t, log.ShouldLog(ERROR))
	assert.True(t, log.ShouldLog(CRITICAL))

	assert.True(t, NewWithWriter(&bytes.Buffer{}, "", "debug").ShouldLog(DEBUG))
}

func TestParseLevel_UnknownDefaultsToInfo(t *testing.T) {
	assert.Equal(t, INFO, parseLevel("verbose"))
	assert.Equal(t, WARNING, parseLevel(" warn "))
}

func TestNew_WritesRotatedFile(t *testing.T) {
	dir := t.TempDir()

	log, err := New(dir, "todo", "info")
	require.NoError(t, err)
	t.Cleanup(func() { _ = log.Close() })

	log.Info("to file")

	data, err := os.ReadFile(filepath.Join(dir, "app.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "to file")
}
