package observability

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"":        slog.LevelInfo,
		"INFO":    slog.LevelInfo,
		"debug":   slog.LevelDebug,
		" warn ":  slog.LevelWarn,
		"warning": slog.LevelWarn,
		"Error":   slog.LevelError,
	}
	for raw, want := range cases {
		got, err := ParseLevel(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got, raw)
	}

	_, err := ParseLevel("verbose")
	require.Error(t, err)
}

func TestInit_LoggerHonoursLevel(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	var buf bytes.Buffer
	instruments, shutdown, err := Init(context.Background(), "test-service",
		WithLogLevel(slog.LevelWarn), WithLogOutput(&buf), WithEnvironment("test"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = shutdown(context.Background()) })

	instruments.Logger.Info("hidden")
	instruments.Logger.Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")

	assert.NotNil(t, instruments.Tracer("x"))
	assert.NotNil(t, instruments.Meter("x"))
}

func TestNilInstrumentsFallBack(t *testing.T) {
	var i *Instruments
	assert.NotNil(t, i.Tracer("x"))
	assert.NotNil(t, i.Meter("x"))
}
