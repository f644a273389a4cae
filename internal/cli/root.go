// Package cli implements the kitbot operator command line.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var appVersion = "dev"

// SetVersion sets the version injected via ldflags.
func SetVersion(version string) {
	appVersion = version
}

var rootCmd = &cobra.Command{
	Use:   "kitbot",
	Short: "kitbot - knowledge-grounded helper for electronics kits",
	Long: `kitbot answers questions about an electronics kit's projects, components
and video lessons using a knowledge base document, and hands anything it
cannot answer directly to a language model with a grounded context.

Use "serve" to run the HTTP API, "inspect" to check what a knowledge base
yields, and "ask" to run one question through the full pipeline.`,
	SilenceUsage: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "kitbot %s\n", appVersion)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
