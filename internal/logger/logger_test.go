package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel(""))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "info", "json")

	l.Debug("hidden")
	l.Info("qr generated", "bank_bin", "970418")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "qr generated", entry["msg"])
	assert.Equal(t, "970418", entry["bank_bin"])
}

func TestNewTextHasNoColorOffTerminal(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "debug", "text")

	l.Error("decode failed", "error", errors.New("no qr code"))

	out := buf.String()
	assert.Contains(t, out, "decode failed")
	assert.Contains(t, out, "no qr code")
	assert.NotContains(t, out, "\x1b[")
}
