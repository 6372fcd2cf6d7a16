package util

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{Level: LevelInfo, Format: FormatJSON, Output: &buf})

	logger.Debug("hidden")
	logger.Info("scan complete", "count", 3)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "scan complete", entry["msg"])
	assert.Equal(t, float64(3), entry["count"])
	assert.NotContains(t, buf.String(), "hidden")
}

func TestNewLogger_DebugText(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{Level: LevelDebug, Format: FormatText, Output: &buf})

	logger.Debug("extracting", "file", "Button.tsx")
	assert.Contains(t, buf.String(), "msg=extracting")
	assert.Contains(t, buf.String(), "file=Button.tsx")
}

func TestResolveFormat(t *testing.T) {
	var buf bytes.Buffer
	assert.Equal(t, FormatText, ResolveFormat(FormatText, &buf))
	assert.Equal(t, FormatJSON, ResolveFormat(FormatJSON, &buf))
	// A buffer is never a terminal.
	assert.Equal(t, FormatJSON, ResolveFormat(FormatAuto, &buf))
	assert.Equal(t, FormatJSON, ResolveFormat("yaml", &buf))
}

func TestParseLevel_UnknownIsInfo(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{Level: "loud", Format: FormatText, Output: &buf})
	logger.Debug("no")
	logger.Warn("yes")
	assert.NotContains(t, buf.String(), "msg=no")
	assert.Contains(t, buf.String(), "msg=yes")
}

func TestCommandLoggerConfig(t *testing.T) {
	var buf bytes.Buffer
	quiet := NewLogger(CommandLoggerConfig(&buf, false))
	quiet.Info("scan started")
	quiet.Warn("skipping unreadable file", "path", "a.tsx")
	assert.NotContains(t, buf.String(), "scan started")
	assert.Contains(t, buf.String(), "skipping unreadable file")

	buf.Reset()
	NewLogger(CommandLoggerConfig(&buf, true)).Debug("extracting", "file", "Button.tsx")
	assert.Contains(t, buf.String(), "Button.tsx")
}

func TestNewLogger_NilOutputIsStderr(t *testing.T) {
	assert.NotNil(t, NewLogger(LoggerConfig{}))
}
