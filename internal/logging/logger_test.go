package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoggerToJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerTo(&buf, "json", "debug")

	logger.Debug().Str("dataset", "q1.json").Msg("loaded")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "debug", entry["level"])
	assert.Equal(t, "q1.json", entry["dataset"])
	assert.Equal(t, "loaded", entry["message"])
	assert.Contains(t, entry, "time")
}

func TestNewLoggerToLevelFallback(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerTo(&buf, "json", "loud")

	logger.Debug().Msg("hidden")
	assert.Empty(t, buf.String())

	logger.Info().Msg("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestNewLoggerToConsole(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerTo(&buf, "console", "info")

	logger.Warn().Str("seller_id", "s1").Msg("careful")
	out := buf.String()
	assert.Contains(t, out, "WRN")
	assert.Contains(t, out, "careful")
	assert.Contains(t, out, "seller_id=s1")
}
