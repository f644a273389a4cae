package logging_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stemkit/kitbot/internal/config"
	"github.com/stemkit/kitbot/internal/logging"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]zerolog.Level{
		"debug":   zerolog.DebugLevel,
		" WARN ":  zerolog.WarnLevel,
		"warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"info":    zerolog.InfoLevel,
		"":        zerolog.InfoLevel,
		"loud":    zerolog.InfoLevel,
	}
	for in, want := range tests {
		if got := logging.ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestSetup_FileSink(t *testing.T) {
	prev, prevLevel := log.Logger, zerolog.GlobalLevel()
	t.Cleanup(func() {
		log.Logger = prev
		zerolog.SetGlobalLevel(prevLevel)
	})

	path := filepath.Join(t.TempDir(), "kitbot.log")
	closer := logging.Setup(config.LoggingConfig{Level: "info", File: path, MaxSizeMB: 1})
	log.Info().Str("intent", "LIST_PROJECTS").Msg("Chat handled")
	log.Debug().Msg("hidden")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"intent":"LIST_PROJECTS"`)
	assert.Contains(t, string(data), `"message":"Chat handled"`)
	assert.NotContains(t, string(data), "hidden")
}

func TestSetup_ConsoleOnly(t *testing.T) {
	prev, prevLevel := log.Logger, zerolog.GlobalLevel()
	t.Cleanup(func() {
		log.Logger = prev
		zerolog.SetGlobalLevel(prevLevel)
	})

	closer := logging.Setup(config.LoggingConfig{Level: "debug"})
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
	assert.NoError(t, closer.Close())
}
