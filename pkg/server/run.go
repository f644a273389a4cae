package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/stemkit/kitbot/internal/config"
)

// Run builds the server, listens on cfg.Port and blocks until SIGINT or
// SIGTERM triggers a graceful shutdown.
func Run(ctx context.Context, cfg *config.Config) error {
	log.Info().Str("version", cfg.Version).Msg("kitbot starting")

	srv, err := NewWithConfig(ctx, cfg)
	if err != nil {
		return fmt.Errorf("initialize server: %w", err)
	}
	defer srv.ShutdownFunc(context.Background())

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", srv.Port),
		Handler:      srv.Handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 150 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Info().Msg("Shutting down gracefully...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		httpServer.Shutdown(shutdownCtx)
	}()

	log.Info().Int("port", srv.Port).Msg("kitbot listening")

	if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
