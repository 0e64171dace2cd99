package logging

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogLevel_String(t *testing.T) {
	tests := []struct {
		level    LogLevel
		expected string
	}{
		{LevelTrace, "TRACE"},
		{LevelDebug, "DEBUG"},
		{LevelInfo, "INFO"},
		{LevelWarn, "WARN"},
		{LevelError, "ERROR"},
		{LevelFatal, "FATAL"},
		{LogLevel(999), "UNKNOWN"},
	}

	for _, test := range tests {
		assert.Equal(t, test.expected, test.level.String())
	}
}

func TestLogLevel_SlogLevel(t *testing.T) {
	tests := []struct {
		level    LogLevel
		expected slog.Level
	}{
		{LevelDebug, slog.LevelDebug},
		{LevelInfo, slog.LevelInfo},
		{LevelWarn, slog.LevelWarn},
		{LevelError, slog.LevelError},
		{LogLevel(999), slog.LevelInfo},
	}

	for _, test := range tests {
		assert.Equal(t, test.expected, test.level.SlogLevel())
	}

	assert.Less(t, LevelTrace.SlogLevel(), slog.LevelDebug)
	assert.Greater(t, LevelFatal.SlogLevel(), slog.LevelError)
}

func TestInitForCLI(t *testing.T) {
	var buf bytes.Buffer
	InitForCLI(LevelInfo, &buf)

	require.NotNil(t, defaultLogger)

	Info("test-subsystem", "test message")

	output := buf.String()
	assert.Contains(t, output, "test message")
	assert.Contains(t, output, "test-subsystem")
}

func TestCLILevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	InitForCLI(LevelInfo, &buf)

	Debug("test", "debug message")
	Info("test", "info message")

	output := buf.String()
	assert.NotContains(t, output, "debug message")
	assert.Contains(t, output, "info message")
}

func TestErrorIncludesErrorField(t *testing.T) {
	var buf bytes.Buffer
	InitForCLI(LevelInfo, &buf)

	Error("probe", errors.New("boom"), "probe failed")

	output := buf.String()
	assert.Contains(t, output, "probe failed")
	assert.Contains(t, output, "boom")
}

func TestFatalCallsExitHook(t *testing.T) {
	var buf bytes.Buffer
	InitForCLI(LevelInfo, &buf)

	var exitCode int
	prevHook := exitHook
	exitHook = func(code int) { exitCode = code }
	defer func() { exitHook = prevHook }()

	Fatal("startup", errors.New("cannot acquire environment"), "fatal startup error")

	assert.Equal(t, 1, exitCode)
	assert.Contains(t, buf.String(), "fatal startup error")
}

func TestInitFileSinkWritesFlushedLines(t *testing.T) {
	var buf bytes.Buffer
	InitForCLI(LevelInfo, &buf)

	dir := t.TempDir()
	path := filepath.Join(dir, "run.log")

	f, err := InitFileSink(path)
	require.NoError(t, err)
	defer func() {
		f.Close()
		mu.Lock()
		fileSink = nil
		mu.Unlock()
	}()

	Info("harness", "category %s starting", "connection")

	contents, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(contents), "category connection starting"))
}
