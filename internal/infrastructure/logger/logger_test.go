package logger

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestParseLogLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"debug":   zerolog.DebugLevel,
		"INFO":    zerolog.InfoLevel,
		"warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"":        zerolog.InfoLevel,
		"verbose": zerolog.InfoLevel,
	}

	for in, want := range cases {
		require.Equal(t, want, parseLogLevel(in), in)
	}
}

func TestNewWithWriter_TagsService(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("info", "kinobot", &buf)
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.TraceLevel) })

	log.Info().Msg("hello")

	require.Contains(t, buf.String(), `"service":"kinobot"`)
	require.Contains(t, buf.String(), `"message":"hello"`)
}
