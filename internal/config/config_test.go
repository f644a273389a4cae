package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stemkit/kitbot/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "", cfg.KB.Source)
	assert.Equal(t, "https://api.openai.com/v1", cfg.Generation.BaseURL)
	assert.Equal(t, "gpt-4o-mini", cfg.Generation.Model)
	assert.Equal(t, 6, cfg.Generation.HistoryTurns)
	assert.Equal(t, 0.4, cfg.Generation.Temperature)
	assert.Equal(t, "imagen-3.0-generate-002", cfg.Image.Model)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.Telemetry.Enabled)
	assert.Equal(t, 1.0, cfg.Telemetry.SampleRatio)
	assert.True(t, cfg.Telemetry.Insecure)
	assert.Equal(t, "kitbot", cfg.Telemetry.ServiceName)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("KB_URL", "  https://kb.example.com/kit.json ")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("OPENAI_BASE_URL", "http://localhost:11434/v1/")
	t.Setenv("HISTORY_TURNS", "4")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com,")
	t.Setenv("OTEL_ENABLED", "true")
	t.Setenv("OTEL_SAMPLE_RATIO", "0.25")
	t.Setenv("CHAT_TEMPERATURE", "0.9")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "https://kb.example.com/kit.json", cfg.KB.Source)
	assert.Equal(t, "sk-test", cfg.Generation.APIKey)
	assert.Equal(t, "http://localhost:11434/v1", cfg.Generation.BaseURL)
	assert.Equal(t, 4, cfg.Generation.HistoryTurns)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORS.AllowedOrigins)
	assert.True(t, cfg.Telemetry.Enabled)
	assert.Equal(t, 0.25, cfg.Telemetry.SampleRatio)
	assert.Equal(t, 0.9, cfg.Generation.Temperature)
}

func TestLoadFrom(t *testing.T) {
	v := viper.New()
	v.Set("port", 7000)
	v.Set("log_file", "/tmp/kitbot.log")
	v.Set("log_max_backups", 2)

	cfg := config.LoadFrom(v)

	assert.Equal(t, 7000, cfg.Port)
	assert.Equal(t, "/tmp/kitbot.log", cfg.Logging.File)
	assert.Equal(t, 2, cfg.Logging.MaxBackups)
	assert.Nil(t, cfg.CORS.AllowedOrigins)
}

func writeConfigFile(t *testing.T, body string) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "kitbot.yaml"), []byte(body), 0o644))
	t.Chdir(dir)
}

func TestLoad_ConfigFile(t *testing.T) {
	writeConfigFile(t, "port: 9191\nkb_url: ./kit.yaml\n")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, 9191, cfg.Port)
	assert.Equal(t, "./kit.yaml", cfg.KB.Source)
}

func TestLoad_MalformedConfigFile(t *testing.T) {
	writeConfigFile(t, "port: [oops\nkb_url: ./kit.yaml\n")

	cfg, err := config.Load()
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "kitbot.yaml")
}
