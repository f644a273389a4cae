// kitbot server: the chat and image API for the electronics kit helper.
package main

import (
	"context"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/stemkit/kitbot/internal/config"
	"github.com/stemkit/kitbot/internal/logging"
	"github.com/stemkit/kitbot/pkg/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	closer := logging.Setup(cfg.Logging)
	defer closer.Close()

	if err := server.Run(context.Background(), cfg); err != nil {
		log.Error().Err(err).Msg("Server failed")
		closer.Close()
		os.Exit(1)
	}
}
