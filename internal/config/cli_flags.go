package config

import "github.com/spf13/cobra"

// RegisterFlags registers common CLI flags on the provided root command
func RegisterFlags(cmd *cobra.Command) {
	if cmd == nil {
		return
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	cmd.PersistentFlags().BoolP("quiet", "q", false, "Suppress all output except errors")
	cmd.PersistentFlags().Bool("json", false, "Emit logs as JSON on stderr")
	cmd.PersistentFlags().String("proxy", "", "Set HTTP/SOCKS5 proxy for the browser (e.g., http://localhost:8080)")
	cmd.PersistentFlags().String("timeout", DefaultNavigationTimeout.String(), "Timeout for the initial page navigation")
	cmd.PersistentFlags().String("user-agent", "", "Custom user agent string")
	cmd.PersistentFlags().String("env-file", "", "Path to a .env file (default: ./.env if present)")
}

// RegisterScrapeFlags registers flags that tune the scroll loop and the output files.
func RegisterScrapeFlags(cmd *cobra.Command) {
	if cmd == nil {
		return
	}

	cmd.Flags().IntP("scrolls", "n", DefaultMaxScrolls, "Maximum scroll iterations per loop")
	cmd.Flags().String("scroll-wait", DefaultScrollWait.String(), "Pause after each warm-up scroll")
	cmd.Flags().String("harvest-wait", DefaultHarvestWait.String(), "Pause after each harvesting scroll")
	cmd.Flags().Bool("headful", false, "Show the browser window")
	cmd.Flags().String("snapshot", "", "Write the last markup snapshot to this file")
	RegisterOutputFlags(cmd)
}

// RegisterOutputFlags registers the flags that control where listings are saved.
func RegisterOutputFlags(cmd *cobra.Command) {
	if cmd == nil {
		return
	}

	cmd.Flags().StringP("output", "o", DefaultOutputFile, "NDJSON output path (a .gz copy is written next to it)")
	cmd.Flags().Bool("remove-ndjson", false, "Delete the uncompressed NDJSON once the .gz copy is written")
}
