package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitWriterJSON(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.TraceLevel) })

	var buf bytes.Buffer
	InitWriter(Config{Level: "warn", Format: "json"}, &buf)

	Info().Msg("dropped")
	Warn().Str("locale", "fr").Msg("kept")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "fr", entry["locale"])
	assert.Equal(t, "kept", entry["message"])
}

func TestInitWriterBadLevelDefaultsToInfo(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.TraceLevel) })

	var buf bytes.Buffer
	InitWriter(Config{Level: "loud"}, &buf)

	Debug().Msg("dropped")
	assert.Zero(t, buf.Len())
	Info().Msg("kept")
	assert.NotZero(t, buf.Len())
}
