package cli

import (
	"fmt"
	"os"

	"github.com/law-makers/grabfood/internal/config"
	"github.com/spf13/cobra"
)

// parseCmd represents the parse command
var parseCmd = &cobra.Command{
	Use:   "parse <html-file>",
	Short: "Extract listings from a saved page snapshot",
	Long: `Runs the listing extractor over markup captured earlier (for example with
scrape --snapshot) and saves the result exactly like a live scrape.`,
	Example: `  # Re-extract a snapshot
  grabfood parse last.html -o replay.ndjson`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
	config.RegisterOutputFlags(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	a := GetAppFromCmd(cmd)
	if a == nil {
		return fmt.Errorf("application not initialized")
	}

	content, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read snapshot: %w", err)
	}

	result, err := a.NewScraper(a.Config.TargetURL).ProcessSnapshot(cmd.Context(), string(content))
	if err != nil {
		return err
	}

	printSaved(cmd.OutOrStdout(), result)
	return nil
}
