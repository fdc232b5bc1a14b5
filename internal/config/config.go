package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// Config holds application configuration values
type Config struct {
	// Logging
	LogLevel string
	JSONLog  bool

	// Browser
	TargetURL         string
	NavigationTimeout time.Duration
	UserAgent         string
	Proxy             string
	BrowserHeadless   bool
	ChromePath        string
	ChromeFlags       map[string]any

	// Scroll loop
	MaxScrolls  int
	ScrollWait  time.Duration
	HarvestWait time.Duration

	// Output
	OutputFile   string
	KeepNDJSON   bool
	SnapshotFile string
	DeliveryRate float64
}

// Load builds a Config by combining defaults, an optional .env file, environment variables, and CLI flags.
// Caller should pass the executing *cobra.Command so flags can be read.
func Load(cmd *cobra.Command) (*Config, error) {
	cfg := &Config{
		LogLevel:          DefaultLogLevel,
		JSONLog:           DefaultJSONLog,
		TargetURL:         DefaultTargetURL,
		NavigationTimeout: DefaultNavigationTimeout,
		UserAgent:         DefaultUserAgent,
		BrowserHeadless:   DefaultBrowserHeadless,
		MaxScrolls:        DefaultMaxScrolls,
		ScrollWait:        DefaultScrollWait,
		HarvestWait:       DefaultHarvestWait,
		OutputFile:        DefaultOutputFile,
		KeepNDJSON:        DefaultKeepNDJSON,
		DeliveryRate:      DefaultDeliveryRate,
	}

	if err := loadEnvFile(flagString(cmd, "env-file")); err != nil {
		return nil, err
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	if err := applyFlags(cfg, cmd); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// loadEnvFile populates the process environment from a .env file. Variables
// already set in the environment win. A missing default file is not an error.
func loadEnvFile(path string) error {
	explicit := path != ""
	if !explicit {
		path = DefaultEnvFile
	}

	err := godotenv.Load(path)
	if err == nil {
		return nil
	}
	if !explicit && errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("failed to load env file %s: %w", path, err)
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("GRABFOOD_URL"); v != "" {
		cfg.TargetURL = v
	}
	if v := os.Getenv("GRABFOOD_USER_AGENT"); v != "" {
		cfg.UserAgent = v
	}
	if v := os.Getenv("GRABFOOD_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("GRABFOOD_CHROME_PATH"); v != "" {
		cfg.ChromePath = v
	}
	if v := os.Getenv("GRABFOOD_CHROME_FLAGS"); v != "" {
		flags, err := ParseChromeFlags(v)
		if err != nil {
			return fmt.Errorf("GRABFOOD_CHROME_FLAGS: %w", err)
		}
		cfg.ChromeFlags = flags
	}
	if v := os.Getenv("GRABFOOD_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("GRABFOOD_OUTPUT"); v != "" {
		cfg.OutputFile = v
	}
	if v := os.Getenv("GRABFOOD_SCROLLS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("GRABFOOD_SCROLLS: %w", err)
		}
		cfg.MaxScrolls = n
	}
	if v := os.Getenv("GRABFOOD_SCROLL_WAIT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("GRABFOOD_SCROLL_WAIT: %w", err)
		}
		cfg.ScrollWait = d
	}
	if v := os.Getenv("GRABFOOD_HARVEST_WAIT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("GRABFOOD_HARVEST_WAIT: %w", err)
		}
		cfg.HarvestWait = d
	}
	return nil
}

func applyFlags(cfg *Config, cmd *cobra.Command) error {
	if cmd == nil {
		return nil
	}

	if s := flagString(cmd, "user-agent"); s != "" {
		cfg.UserAgent = s
	}
	if s := flagString(cmd, "proxy"); s != "" {
		cfg.Proxy = s
	}
	if s := flagString(cmd, "timeout"); s != "" && flagChanged(cmd, "timeout") {
		d, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("--timeout: %w", err)
		}
		cfg.NavigationTimeout = d
	}
	if flagString(cmd, "json") == "true" {
		cfg.JSONLog = true
	}
	if flagString(cmd, "quiet") == "true" {
		cfg.LogLevel = "error"
	}
	if flagString(cmd, "verbose") == "true" {
		cfg.LogLevel = "debug"
	}

	if flagChanged(cmd, "scrolls") {
		n, err := strconv.Atoi(flagString(cmd, "scrolls"))
		if err != nil {
			return fmt.Errorf("--scrolls: %w", err)
		}
		cfg.MaxScrolls = n
	}
	if flagChanged(cmd, "scroll-wait") {
		d, err := time.ParseDuration(flagString(cmd, "scroll-wait"))
		if err != nil {
			return fmt.Errorf("--scroll-wait: %w", err)
		}
		cfg.ScrollWait = d
	}
	if flagChanged(cmd, "harvest-wait") {
		d, err := time.ParseDuration(flagString(cmd, "harvest-wait"))
		if err != nil {
			return fmt.Errorf("--harvest-wait: %w", err)
		}
		cfg.HarvestWait = d
	}
	if flagChanged(cmd, "output") {
		cfg.OutputFile = flagString(cmd, "output")
	}
	if flagString(cmd, "remove-ndjson") == "true" {
		cfg.KeepNDJSON = false
	}
	if flagString(cmd, "headful") == "true" {
		cfg.BrowserHeadless = false
	}
	if s := flagString(cmd, "snapshot"); s != "" {
		cfg.SnapshotFile = s
	}
	return nil
}

// ParseChromeFlags parses a comma-separated list of Chrome switches such as
// "--lang=en-US,--disable-web-security". A switch without a value maps to true.
func ParseChromeFlags(s string) (map[string]any, error) {
	flags := make(map[string]any)
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		name, value, hasValue := strings.Cut(strings.TrimLeft(item, "-"), "=")
		if name == "" {
			return nil, fmt.Errorf("invalid chrome flag %q", item)
		}
		if hasValue {
			flags[name] = value
		} else {
			flags[name] = true
		}
	}
	return flags, nil
}

// flagString returns the string value of a flag, or "" when it is not registered.
func flagString(cmd *cobra.Command, name string) string {
	if cmd == nil {
		return ""
	}
	if f := cmd.Flags().Lookup(name); f != nil {
		return f.Value.String()
	}
	return ""
}

func flagChanged(cmd *cobra.Command, name string) bool {
	if cmd == nil {
		return false
	}
	f := cmd.Flags().Lookup(name)
	return f != nil && f.Changed
}
