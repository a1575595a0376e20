package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	l := New(WithOutput(&buf), WithAttr(slog.String("service", "fieldschema")))
	l.Debug("hidden")
	l.Info("evaluated", slog.Int("failed", 2))

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "evaluated", rec["msg"])
	assert.Equal(t, "fieldschema", rec["service"])
	assert.InDelta(t, 2, rec["failed"], 0)
}

func TestNew_Text(t *testing.T) {
	var buf bytes.Buffer
	l := New(WithOutput(&buf), WithFormat(FormatText), WithLevel(slog.LevelDebug))
	l.Debug("shown")
	assert.Contains(t, buf.String(), "msg=shown")
}

func TestWithFormat_Panics(t *testing.T) {
	assert.Panics(t, func() { New(WithFormat("xml")) })
}

func TestParseLevel(t *testing.T) {
	l, err := ParseLevel("DEBUG")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, l)

	l, err = ParseLevel(" warn ")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, l)

	_, err = ParseLevel("loud")
	require.Error(t, err)
}
