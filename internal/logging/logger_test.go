package logging_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2index-ninja/sdk-go/internal/logging"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
	t.Helper()

	var entries []map[string]interface{}

	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}

		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(line), &entry))

		entries = append(entries, entry)
	}

	return entries
}

func TestLogger_Levels(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	logger := logging.New(&buf, zerolog.DebugLevel)

	logger.Debug("HTTP Request", map[string]interface{}{"method": "GET", "url": "https://2index.ninja/api/v1/account"})
	logger.Info("info", nil)
	logger.Warn("warn", map[string]interface{}{"attempt": 2})
	logger.Error("HTTP Request Failed", map[string]interface{}{"error": "boom"})

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 4)

	assert.Equal(t, "debug", entries[0]["level"])
	assert.Equal(t, "HTTP Request", entries[0]["message"])
	assert.Equal(t, "GET", entries[0]["method"])
	assert.Equal(t, "info", entries[1]["level"])
	assert.Equal(t, "warn", entries[2]["level"])
	assert.InDelta(t, 2, entries[2]["attempt"], 0)
	assert.Equal(t, "error", entries[3]["level"])
	assert.Equal(t, "boom", entries[3]["error"])
	assert.Contains(t, entries[0], "time")
}

func TestLogger_LevelFilter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	logger := logging.New(&buf, zerolog.WarnLevel)
	logger.Debug("hidden", nil)
	logger.Info("hidden", nil)
	logger.Warn("shown", nil)

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "shown", entries[0]["message"])
}

func TestNewConsole(t *testing.T) {
	t.Parallel()

	var quiet bytes.Buffer

	logging.NewConsole(&quiet, false).Debug("HTTP Request", nil)
	assert.Empty(t, quiet.String())

	var verbose bytes.Buffer

	logging.NewConsole(&verbose, true).Debug("HTTP Request", map[string]interface{}{"status": 200})
	assert.Contains(t, verbose.String(), "HTTP Request")
	assert.Contains(t, verbose.String(), "status=")
}

func TestFromZerolog(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	logger := logging.FromZerolog(zerolog.New(&buf).With().Str("component", "cli").Logger())
	logger.Info("ready", nil)

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "cli", entries[0]["component"])
}
