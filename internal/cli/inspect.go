package cli

import (
	"fmt"

	"github.com/law-makers/grabfood/internal/sink"
	"github.com/law-makers/grabfood/internal/utils/output"
	"github.com/spf13/cobra"
)

var (
	inspectFormat string
	inspectLimit  int
)

// inspectCmd represents the inspect command
var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Summarize a saved NDJSON or .gz output file",
	Example: `  # Summary and the first 20 listings
  grabfood inspect data.ndjson.gz

  # Every listing as CSV
  grabfood inspect data.ndjson --format=csv --limit=0`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)

	inspectCmd.Flags().StringVarP(&inspectFormat, "format", "f", output.FormatTable, "Listing format: table, csv, json or markdown")
	inspectCmd.Flags().IntVar(&inspectLimit, "limit", 20, "Maximum listings to print (0 for all)")
}

func runInspect(cmd *cobra.Command, args []string) error {
	listings, err := sink.Load(args[0])
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", args[0], err)
	}

	w := cmd.OutOrStdout()
	if err := output.WriteSummary(w, output.Summarize(listings)); err != nil {
		return err
	}

	if inspectLimit > 0 && len(listings) > inspectLimit {
		listings = listings[:inspectLimit]
	}
	if len(listings) == 0 {
		return nil
	}

	fmt.Fprintln(w)
	return output.Write(w, inspectFormat, listings)
}
