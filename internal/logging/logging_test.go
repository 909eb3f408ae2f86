package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, ParseLevel("debug"))
	assert.Equal(t, zapcore.WarnLevel, ParseLevel("warn"))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel("loud"))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel(""))
}

func TestNewWithWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, "info")

	logger.Debug("hidden")
	logger.Info("punched in", zap.String("client", "ACME"))
	require.NoError(t, logger.Sync())

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "punched in", entry["msg"])
	assert.Equal(t, "ACME", entry["client"])
	assert.Contains(t, entry, "timestamp")
}

func TestNew_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "worklog.log")
	logger := New(path, "debug")
	logger.Debug("hello")
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello")
}

func TestNew_EmptyPathIsNop(t *testing.T) {
	logger := New("", "debug")
	assert.NotPanics(t, func() { logger.Info("dropped") })
}
