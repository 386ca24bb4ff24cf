package jsonlog

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()

	var entries []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		entries = append(entries, entry)
	}
	return entries
}

func TestLogger_PrintInfo(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, LevelInfo)

	logger.PrintInfo("starting server", map[string]string{"addr": ":4000", "env": "development"})

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "info", entries[0]["level"])
	assert.Equal(t, "starting server", entries[0]["message"])
	assert.Contains(t, entries[0], "time")
	assert.Equal(t, map[string]any{"addr": ":4000", "env": "development"}, entries[0]["properties"])
	assert.NotContains(t, entries[0], "trace")
}

func TestLogger_PrintErrorIncludesTrace(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, LevelInfo)

	logger.PrintError(errors.New("boom"), nil)

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "error", entries[0]["level"])
	assert.Equal(t, "boom", entries[0]["message"])
	assert.NotEmpty(t, entries[0]["trace"])
	assert.NotContains(t, entries[0], "properties")
}

func TestLogger_MinLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, LevelError)

	logger.PrintInfo("dropped", nil)
	assert.Empty(t, buf.String())

	logger.PrintError(errors.New("kept"), nil)
	assert.Len(t, decodeLines(t, &buf), 1)

	buf.Reset()
	off := New(&buf, LevelOff)
	off.PrintError(errors.New("dropped"), nil)
	assert.Empty(t, buf.String())
}

func TestLogger_PrintFatalExits(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, LevelInfo)

	code := -1
	logger.exit = func(c int) { code = c }

	logger.PrintFatal(errors.New("cannot start"), nil)

	assert.Equal(t, 1, code)
	entries := decodeLines(t, &buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "fatal", entries[0]["level"])
}

func TestLogger_Write(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, LevelInfo)

	n, err := logger.Write([]byte("http: TLS handshake error\n"))
	require.NoError(t, err)
	assert.Equal(t, len("http: TLS handshake error\n"), n)

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "http: TLS handshake error", entries[0]["message"])
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, LevelInfo, ParseLevel("info"))
	assert.Equal(t, LevelError, ParseLevel("ERROR"))
	assert.Equal(t, LevelOff, ParseLevel("off"))
	assert.Equal(t, LevelInfo, ParseLevel("bogus"))
	assert.Equal(t, "FATAL", LevelFatal.String())
}
