package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the kitbot service.
type Config struct {
	Port       int
	Version    string
	KB         KBConfig
	Generation GenerationConfig
	Image      ImageConfig
	CORS       CORSConfig
	Logging    LoggingConfig
	Telemetry  TelemetryConfig
}

type KBConfig struct {
	// Source is an http(s) URL or a local .json/.yaml file path.
	Source string
}

type GenerationConfig struct {
	APIKey       string
	BaseURL      string
	Model        string
	HistoryTurns int
	Temperature  float64
}

type ImageConfig struct {
	APIKey string
	Model  string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LoggingConfig struct {
	Level      string
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

type TelemetryConfig struct {
	Enabled      bool
	OTLPEndpoint string
	ServiceName  string

	// SampleRatio is the fraction of root traces kept, clamped to [0, 1].
	SampleRatio float64
	Insecure    bool
}

// Load reads configuration from environment variables (and an optional
// kitbot.yaml in the working directory) with sensible defaults. A missing
// file is fine; an unreadable or malformed one is an error.
func Load() (*Config, error) {
	v, err := newViper()
	if err != nil {
		return nil, err
	}
	return LoadFrom(v), nil
}

// LoadFrom builds a Config from an already-populated viper instance.
func LoadFrom(v *viper.Viper) *Config {
	return &Config{
		Port:    v.GetInt("port"),
		Version: v.GetString("version"),
		KB: KBConfig{
			Source: strings.TrimSpace(v.GetString("kb_url")),
		},
		Generation: GenerationConfig{
			APIKey:       v.GetString("openai_api_key"),
			BaseURL:      strings.TrimRight(v.GetString("openai_base_url"), "/"),
			Model:        v.GetString("chat_model"),
			HistoryTurns: v.GetInt("history_turns"),
			Temperature:  v.GetFloat64("chat_temperature"),
		},
		Image: ImageConfig{
			APIKey: v.GetString("genai_api_key"),
			Model:  v.GetString("image_model"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(v.GetString("allowed_origins")),
		},
		Logging: LoggingConfig{
			Level:      v.GetString("log_level"),
			File:       v.GetString("log_file"),
			MaxSizeMB:  v.GetInt("log_max_size_mb"),
			MaxBackups: v.GetInt("log_max_backups"),
			MaxAgeDays: v.GetInt("log_max_age_days"),
		},
		Telemetry: TelemetryConfig{
			Enabled:      v.GetBool("otel_enabled"),
			OTLPEndpoint: v.GetString("otel_exporter_otlp_endpoint"),
			ServiceName:  v.GetString("otel_service_name"),
			SampleRatio:  v.GetFloat64("otel_sample_ratio"),
			Insecure:     v.GetBool("otel_insecure"),
		},
	}
}

func newViper() (*viper.Viper, error) {
	v := viper.New()
	v.SetConfigName("kitbot")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetDefault("port", 8080)
	v.SetDefault("version", "0.1.0")
	v.SetDefault("kb_url", "")
	v.SetDefault("openai_api_key", "")
	v.SetDefault("openai_base_url", "https://api.openai.com/v1")
	v.SetDefault("chat_model", "gpt-4o-mini")
	v.SetDefault("history_turns", 6)
	v.SetDefault("chat_temperature", 0.4)
	v.SetDefault("genai_api_key", "")
	v.SetDefault("image_model", "imagen-3.0-generate-002")
	v.SetDefault("allowed_origins", "*")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_file", "")
	v.SetDefault("log_max_size_mb", 10)
	v.SetDefault("log_max_backups", 5)
	v.SetDefault("log_max_age_days", 30)
	v.SetDefault("otel_enabled", false)
	v.SetDefault("otel_exporter_otlp_endpoint", "localhost:4317")
	v.SetDefault("otel_service_name", "kitbot")
	v.SetDefault("otel_sample_ratio", 1.0)
	v.SetDefault("otel_insecure", true)

	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return v, nil
		}
		return nil, fmt.Errorf("reading kitbot.yaml: %w", err)
	}
	return v, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
