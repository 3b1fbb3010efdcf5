package logger_test

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"testing"

	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fwm-platform/ecosystem-console/internal/logger"
)

// captureStdout redirects stdout for the duration of fn and returns what was written.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()

	orig := os.Stdout

	r, w, err := os.Pipe()
	require.NoError(t, err)

	os.Stdout = w

	fn()

	require.NoError(t, w.Close())
	os.Stdout = orig

	var buf bytes.Buffer
	_, err = io.Copy(&buf, r)
	require.NoError(t, err)

	return buf.String()
}

func TestInitValidation(t *testing.T) {
	err := logger.Init(logger.Log{LogLevel: "bogus", ServiceName: "test", AppName: "test"})
	require.Error(t, err)

	err = logger.Init(logger.Log{LogLevel: "info", AppName: "test"})
	require.ErrorIs(t, err, logger.ErrServiceNameIsEmpty)

	err = logger.Init(logger.Log{LogLevel: "info", ServiceName: "test"})
	require.ErrorIs(t, err, logger.ErrAppNameIsEmpty)
}

func TestConsoleOutputIsJSON(t *testing.T) {
	cfg := logger.Log{
		LogLevel:    "info",
		ServiceName: "test",
		AppName:     "test",
		Console:     logger.Console{Enabled: true},
	}

	out := captureStdout(t, func() {
		require.NoError(t, logger.Init(cfg))
		log.Info().Str("check", "value").Msg("hello")
	})

	require.NotEmpty(t, out)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &entry))
	assert.Equal(t, "hello", entry["message"])
	assert.Equal(t, "value", entry["check"])
}

func TestDisabledLoggerProducesNoOutput(t *testing.T) {
	cfg := logger.Log{
		LogLevel:    "error",
		ServiceName: "test",
		AppName:     "test",
		Console:     logger.Console{Enabled: true},
	}

	out := captureStdout(t, func() {
		require.NoError(t, logger.Init(cfg))
		log.Info().Msg("below level")
	})

	assert.Empty(t, out)
}
