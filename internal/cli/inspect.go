package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/stemkit/kitbot/internal/config"
	"github.com/stemkit/kitbot/internal/kb"
)

var inspectKB string

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Show what a knowledge base yields after indexing",
	Long: `Fetch a knowledge base (URL or .json/.yaml file), build its indexes and
print the project names, block sizes, lesson counts and global sections.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := kbLocation(inspectKB)
		if err != nil {
			return err
		}
		doc, err := kb.NewSource(src).Fetch(cmd.Context())
		if err != nil {
			return fmt.Errorf("fetch knowledge base: %w", err)
		}
		printIndexes(cmd.OutOrStdout(), src, kb.BuildFromDocument(doc))
		return nil
	},
}

func init() {
	inspectCmd.Flags().StringVar(&inspectKB, "kb", "", "knowledge base URL or file (defaults to KB_URL)")
	rootCmd.AddCommand(inspectCmd)
}

// kbLocation prefers the flag, then the configured KB_URL.
func kbLocation(flag string) (string, error) {
	if flag != "" {
		return flag, nil
	}
	cfg, err := config.Load()
	if err != nil {
		return "", err
	}
	return cfg.KB.Source, nil
}

func printIndexes(w io.Writer, src string, ix *kb.Indexes) {
	fmt.Fprintf(w, "Knowledge base: %s\n", src)
	fmt.Fprintf(w, "Projects: %d\n", len(ix.ProjectNames))
	for _, name := range ix.ProjectNames {
		fmt.Fprintf(w, "  %-28s block=%d chars  lessons=%d\n", name, len(ix.Block(name)), len(ix.LessonsFor(name)))
	}
	fmt.Fprintf(w, "Components: %d\n", ix.Components.Len())
	fmt.Fprintf(w, "Kit overview: %d chars\n", len(ix.KitOverview))
	fmt.Fprintf(w, "Safety text: %d chars\n", len(ix.SafetyText))
	fmt.Fprintf(w, "Pin text: %d chars\n", len(ix.PinText))
	if ix.Support.Enabled {
		fmt.Fprintf(w, "Support escalation: enabled (%d triggers)\n", len(ix.Support.Triggers))
	} else {
		fmt.Fprintln(w, "Support escalation: disabled")
	}
}
