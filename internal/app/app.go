// Package app provides the core application initialization and lifecycle management.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/law-makers/grabfood/internal/browser"
	"github.com/law-makers/grabfood/internal/config"
	"github.com/law-makers/grabfood/internal/extract"
	"github.com/law-makers/grabfood/internal/scraper"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Application holds all application dependencies and manages their lifecycle.
//
// It is created once per command invocation and shared by the command that
// runs. Browser sessions are not held here; each scrape owns its own session
// and closes it before returning.
type Application struct {
	Config    *config.Config
	Logger    *zerolog.Logger
	Extractor *extract.Extractor
	Launch    browser.LaunchFunc
	startTime time.Time
}

// New creates and initializes a new Application with all dependencies.
//
// It performs the following initialization steps:
//   - Configures the global logger from the config
//   - Creates the listing extractor with the configured fee rate
//   - Selects the Chrome launcher (Chrome itself starts per scrape)
func New(ctx context.Context, cfg *config.Config) (*Application, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	logger := ConfigureLogging(cfg, os.Stderr)

	logger.Debug().
		Str("level", cfg.LogLevel).
		Bool("json", cfg.JSONLog).
		Msg("Logger initialized")

	extractor := extract.New(extract.DefaultSelectors(), cfg.DeliveryRate)
	logger.Debug().
		Float64("delivery_rate", cfg.DeliveryRate).
		Msg("Extractor initialized")

	a := &Application{
		Config:    cfg,
		Logger:    &logger,
		Extractor: extractor,
		Launch:    browser.LaunchPage,
		startTime: time.Now(),
	}

	logger.Info().Msg("Application initialized successfully")
	return a, nil
}

// ConfigureLogging sets the global zerolog level and output from cfg and
// returns the resulting logger. Info logs are hidden unless debug is asked for.
func ConfigureLogging(cfg *config.Config, w io.Writer) zerolog.Logger {
	level := zerolog.ErrorLevel
	switch strings.ToLower(cfg.LogLevel) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.JSONLog {
		log.Logger = zerolog.New(w).With().Timestamp().Logger()
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: w})
	}
	return log.Logger
}

// BrowserOptions maps the config onto Chrome session options.
func (a *Application) BrowserOptions() browser.Options {
	return browser.Options{
		Headless:          a.Config.BrowserHeadless,
		UserAgent:         a.Config.UserAgent,
		Proxy:             a.Config.Proxy,
		ChromePath:        a.Config.ChromePath,
		NavigationTimeout: a.Config.NavigationTimeout,
		ExtraFlags:        a.Config.ChromeFlags,
	}
}

// NewScraper builds a scraper for targetURL from the application config.
func (a *Application) NewScraper(targetURL string) *scraper.Scraper {
	cfg := a.Config
	return scraper.New(scraper.Options{
		URL:                targetURL,
		MaxScrolls:         cfg.MaxScrolls,
		ScrollWait:         cfg.ScrollWait,
		HarvestWait:        cfg.HarvestWait,
		OutputFile:         cfg.OutputFile,
		SnapshotFile:       cfg.SnapshotFile,
		RemoveUncompressed: !cfg.KeepNDJSON,
		Browser:            a.BrowserOptions(),
	}, a.Launch, a.Extractor)
}

// Close shuts down the application.
//
// Browser sessions are closed by the scrape that opened them, so this only
// reports the uptime.
func (a *Application) Close(ctx context.Context) error {
	uptime := time.Since(a.startTime)
	a.Logger.Info().Dur("uptime", uptime).Msg("Application shutdown complete")
	return nil
}
