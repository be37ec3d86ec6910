package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]zerolog.Level{
		"debug":   zerolog.DebugLevel,
		"DEBUG":   zerolog.DebugLevel,
		"info":    zerolog.InfoLevel,
		"":        zerolog.InfoLevel,
		"warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"bogus":   zerolog.InfoLevel,
	}
	for in, want := range tests {
		assert.Equal(t, want, parseLevel(in), in)
	}
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, false, zerolog.InfoLevel)

	logger.Debug().Msg("hidden")
	logger.Info().Str("playlist", "PL1").Msg("report built")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "report built", line["message"])
	assert.Equal(t, "PL1", line["playlist"])
	assert.Equal(t, "info", line["level"])
	assert.NotContains(t, line, "caller")
}

func TestNew_DebugAddsCaller(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, false, zerolog.DebugLevel)

	logger.Debug().Msg("visible")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Contains(t, line, "caller")
}

func TestNew_Console(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, true, zerolog.InfoLevel)

	logger.Info().Msg("listening")

	assert.Contains(t, buf.String(), "listening")
	assert.False(t, json.Valid(bytes.TrimSpace(buf.Bytes())))
}

func TestInit_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "playtime.log")
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.TraceLevel) })

	closer, err := Init(Config{Level: "info", File: path})
	require.NoError(t, err)
	zerolog.DefaultContextLogger.Info().Msg("to file")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"message":"to file"`)
}

func TestInit_BadFile(t *testing.T) {
	_, err := Init(Config{File: filepath.Join(t.TempDir(), "missing", "playtime.log")})
	assert.Error(t, err)
}

func TestShortCaller(t *testing.T) {
	file := filepath.Join("root", "module", "internal", "infra", "youtube", "client.go")
	assert.Equal(t, filepath.Join("youtube", "client.go")+":42", shortCaller(0, file, 42))
	assert.Equal(t, "main.go:7", shortCaller(0, "main.go", 7))
}
