package cli

import (
	"fmt"
	"io"

	"github.com/law-makers/grabfood/internal/config"
	"github.com/law-makers/grabfood/internal/scraper"
	urlutil "github.com/law-makers/grabfood/internal/utils/url"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

// scrapeCmd represents the scrape command
var scrapeCmd = &cobra.Command{
	Use:   "scrape [url]",
	Short: "Scrape restaurant listings from a GrabFood search page",
	Long: `Opens the search page in headless Chrome, scrolls until the page stops
growing, then scrolls again while extracting listings after every pause.
Listings are deduplicated by restaurant name and written as NDJSON together
with a gzip-compressed copy.

Without a URL the default chinese-food search in Singapore is used.`,
	Example: `  # Scrape the default search
  grabfood scrape

  # Scrape another search with shorter pauses
  grabfood scrape "https://food.grab.com/sg/en/restaurants?search=pizza" --scroll-wait=5s --harvest-wait=20s

  # Keep only the compressed output
  grabfood scrape -o pizza.ndjson --remove-ndjson`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScrape,
}

func init() {
	rootCmd.AddCommand(scrapeCmd)
	config.RegisterScrapeFlags(scrapeCmd)
}

func runScrape(cmd *cobra.Command, args []string) error {
	a := GetAppFromCmd(cmd)
	if a == nil {
		return fmt.Errorf("application not initialized")
	}

	target := a.Config.TargetURL
	if len(args) == 1 {
		if err := urlutil.ValidateURL(args[0]); err != nil {
			return err
		}
		target = args[0]
	}

	s := a.NewScraper(target)

	bar := newScrollBar(cmd.ErrOrStderr(), a.Config)
	s.OnProgress = func(stage string, iteration int) {
		bar.Describe(stage)
		_ = bar.Add(1)
	}

	result, err := s.Run(cmd.Context())
	_ = bar.Finish()
	if err != nil {
		return err
	}

	printSaved(cmd.OutOrStdout(), result)
	return nil
}

// newScrollBar counts scroll iterations across both loops. It stays hidden
// for quiet and JSON-log runs.
func newScrollBar(w io.Writer, cfg *config.Config) *progressbar.ProgressBar {
	return progressbar.NewOptions(cfg.MaxScrolls*2,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetVisibility(!cfg.JSONLog && cfg.LogLevel != "error"),
		progressbar.OptionSetDescription(scraper.StageWarmUp),
		progressbar.OptionShowCount(),
		progressbar.OptionSetElapsedTime(true),
		progressbar.OptionClearOnFinish(),
	)
}

func printSaved(w io.Writer, result *scraper.Result) {
	fmt.Fprintf(w, "Data saved and compressed to %s\n", result.CompressedFile)
}
