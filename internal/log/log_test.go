package log

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests replace the default logger, so they do not run in parallel.

func TestSetupConsole(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	SetupConsole(&buf, false)
	slog.Debug("Hidden message")
	slog.Info("Window rendered", "items", 12)

	out := buf.String()
	assert.Contains(t, out, "Window rendered")
	assert.Contains(t, out, "items=12")
	assert.NotContains(t, out, "Hidden message")
}

func TestSetup(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	logFile := filepath.Join(t.TempDir(), "logs", "vlist.log")
	Setup(logFile, true)
	require.True(t, Initialized())

	slog.Debug("Data source length changed", "from", 10, "to", 3)

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"Data source length changed"`)
	assert.Contains(t, string(data), `"to":3`)
}

func TestRecoverPanic(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })
	SetupConsole(&bytes.Buffer{}, false)
	t.Chdir(t.TempDir())

	cleaned := false
	func() {
		defer RecoverPanic("test", func() { cleaned = true })
		panic("boom")
	}()
	assert.True(t, cleaned)

	matches, err := filepath.Glob("vlist-panic-test-*.log")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	data, err := os.ReadFile(matches[0])
	require.NoError(t, err)
	assert.Contains(t, string(data), "Panic in test: boom")
}
