package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/stemkit/kitbot/internal/config"
	"github.com/stemkit/kitbot/pkg/models"
	"github.com/stemkit/kitbot/pkg/server"
)

var (
	askKB      string
	askHistory string
)

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Run one question through the full chat pipeline",
	Long: `Answer a question the same way POST /api/chat would and print the reply
with its debug information. --history takes a JSON file holding an array of
{"role","content"} turns.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if askKB != "" {
			cfg.KB.Source = askKB
		}

		req := models.ChatRequest{Message: strings.Join(args, " ")}
		if askHistory != "" {
			data, err := os.ReadFile(askHistory)
			if err != nil {
				return fmt.Errorf("read history: %w", err)
			}
			if err := json.Unmarshal(data, &req.History); err != nil {
				return fmt.Errorf("parse history: %w", err)
			}
		}

		resp, err := server.NewPipeline(cfg).Handle(cmd.Context(), req)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, resp.Text)
		fmt.Fprintln(out)
		fmt.Fprintf(out, "intent=%s mode=%s project=%q component=%q",
			resp.Debug.Intent, resp.Debug.KBMode, resp.Debug.DetectedProject, resp.Debug.DetectedComponent)
		if resp.Debug.SupportReason != "" {
			fmt.Fprintf(out, " support=%s", resp.Debug.SupportReason)
		}
		fmt.Fprintln(out)
		return nil
	},
}

func init() {
	askCmd.Flags().StringVar(&askKB, "kb", "", "knowledge base URL or file (defaults to KB_URL)")
	askCmd.Flags().StringVar(&askHistory, "history", "", "JSON file with prior conversation turns")
	rootCmd.AddCommand(askCmd)
}
