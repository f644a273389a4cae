// Package server provides the public entry point for initializing the
// kitbot HTTP service.
//
// Usage:
//
//	srv, err := server.New(ctx)
//	http.ListenAndServe(":8080", srv.Handler)
package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/stemkit/kitbot/internal/api"
	"github.com/stemkit/kitbot/internal/api/handlers"
	"github.com/stemkit/kitbot/internal/config"
	"github.com/stemkit/kitbot/internal/generation"
	"github.com/stemkit/kitbot/internal/kb"
	"github.com/stemkit/kitbot/internal/pipeline"
	"github.com/stemkit/kitbot/internal/telemetry"
	"github.com/stemkit/kitbot/pkg/contracts"
)

// Server holds the initialized kitbot service.
type Server struct {
	// Handler is the HTTP handler with all routes and middleware.
	Handler http.Handler

	// Pipeline answers chat requests; exposed for the CLI.
	Pipeline *pipeline.Pipeline

	// Config is the loaded configuration.
	Config *config.Config

	// Port is the port the server should listen on.
	Port int

	// ShutdownFunc should be called on graceful shutdown to flush telemetry.
	ShutdownFunc func(context.Context) error
}

// New loads configuration from the environment and builds a Server.
func New(ctx context.Context) (*Server, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return NewWithConfig(ctx, cfg)
}

// NewWithConfig builds a Server from an explicit configuration.
func NewWithConfig(ctx context.Context, cfg *config.Config) (*Server, error) {
	shutdown, err := telemetry.Init(ctx, cfg.Telemetry, cfg.Version)
	if err != nil {
		return nil, fmt.Errorf("init telemetry: %w", err)
	}

	p := NewPipeline(cfg)

	var images contracts.ImageGenerator
	if cfg.Image.APIKey != "" {
		ic, err := generation.NewImageClient(ctx, cfg.Image.APIKey, cfg.Image.Model)
		if err != nil {
			return nil, fmt.Errorf("init image client: %w", err)
		}
		images = ic
		log.Info().Str("model", cfg.Image.Model).Msg("Image generation enabled")
	} else {
		log.Warn().Msg("GENAI_API_KEY not set; /api/image will return a configuration error")
	}

	h := handlers.New(p, images)
	return &Server{
		Handler:      api.NewRouter(cfg, h),
		Pipeline:     p,
		Config:       cfg,
		Port:         cfg.Port,
		ShutdownFunc: shutdown,
	}, nil
}

// NewPipeline wires the knowledge source and text generator from cfg.
// A missing KB location or credential is reported per request.
func NewPipeline(cfg *config.Config) *pipeline.Pipeline {
	opts := []pipeline.Option{pipeline.WithHistoryTurns(cfg.Generation.HistoryTurns)}
	if cfg.Generation.APIKey != "" {
		opts = append(opts, pipeline.WithGenerator(generation.NewChatClient(
			cfg.Generation.APIKey,
			cfg.Generation.Model,
			generation.WithEndpoint(cfg.Generation.BaseURL),
			generation.WithTemperature(cfg.Generation.Temperature),
		)))
		log.Info().Str("model", cfg.Generation.Model).Msg("Text generation enabled")
	} else {
		log.Warn().Msg("OPENAI_API_KEY not set; only deterministic answers are available")
	}
	if cfg.KB.Source == "" {
		log.Warn().Msg("KB_URL not set; chat requests will fail until it is configured")
	}
	return pipeline.New(kb.NewSource(cfg.KB.Source), opts...)
}
