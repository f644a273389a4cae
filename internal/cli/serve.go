package cli

import (
	"github.com/spf13/cobra"

	"github.com/stemkit/kitbot/internal/config"
	"github.com/stemkit/kitbot/internal/logging"
	"github.com/stemkit/kitbot/pkg/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the chat and image HTTP API",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if servePort > 0 {
			cfg.Port = servePort
		}
		closer := logging.Setup(cfg.Logging)
		defer closer.Close()
		return server.Run(cmd.Context(), cfg)
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "listen port (overrides PORT)")
	rootCmd.AddCommand(serveCmd)
}
