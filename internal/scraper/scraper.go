// Package scraper runs one listing scrape end to end: open the page, load
// content by scrolling, extract listings from every snapshot and save them.
package scraper

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/law-makers/grabfood/internal/browser"
	"github.com/law-makers/grabfood/internal/extract"
	"github.com/law-makers/grabfood/internal/reqctx"
	"github.com/law-makers/grabfood/internal/sink"
)

// Stage names reported to OnProgress.
const (
	StageWarmUp  = "warm-up"
	StageHarvest = "harvest"
)

// Options configures a run.
type Options struct {
	URL          string
	MaxScrolls   int
	ScrollWait   time.Duration
	HarvestWait  time.Duration
	OutputFile   string
	SnapshotFile string

	RemoveUncompressed bool

	Browser browser.Options
}

// Result summarizes a finished run.
type Result struct {
	RunID          string
	WarmUpScrolls  int
	HarvestScrolls int
	Extracted      int // listings seen across all snapshots, duplicates included
	Saved          int
	OutputFile     string
	CompressedFile string
	Duration       time.Duration
}

// Scraper wires the browser driver, the extractor and the sink together.
type Scraper struct {
	opts      Options
	launch    browser.LaunchFunc
	extractor *extract.Extractor

	// OnProgress, if set, is called after every scroll with the stage name
	// and the iteration within that stage.
	OnProgress func(stage string, iteration int)
}

// New creates a Scraper. A nil launch uses a real Chrome session and a nil
// extractor uses the default selectors and fee rate.
func New(opts Options, launch browser.LaunchFunc, extractor *extract.Extractor) *Scraper {
	if launch == nil {
		launch = browser.LaunchPage
	}
	if extractor == nil {
		extractor = extract.New(extract.DefaultSelectors(), extract.DefaultFeeRate)
	}
	return &Scraper{
		opts:      opts,
		launch:    launch,
		extractor: extractor,
	}
}

// Run performs one scrape. Every run starts from an empty record set; the
// browser session is closed before Run returns.
func (s *Scraper) Run(ctx context.Context) (*Result, error) {
	ctx = reqctx.WithRunContext(ctx)
	rc := reqctx.GetRunContext(ctx)
	logger := reqctx.Logger(ctx)

	logger.Info().
		Str("url", s.opts.URL).
		Int("max_scrolls", s.opts.MaxScrolls).
		Msg("Starting scrape")

	result := &Result{RunID: rc.RunID}
	acc := NewAccumulator()

	err := browser.WithSession(ctx, s.launch, s.opts.Browser, func(page browser.Page) error {
		driver := browser.NewDriver(page)

		if err := driver.Open(ctx, s.opts.URL); err != nil {
			return NewScrapeError(ErrCodeNavigation, "failed to open listing page", err).
				WithDetail("url", s.opts.URL)
		}

		driver.OnScroll = s.progress(StageWarmUp, &result.WarmUpScrolls)
		warm, err := driver.ScrollLoop(ctx, s.opts.MaxScrolls, s.opts.ScrollWait)
		if err != nil {
			return stageError(ErrCodeBrowser, "warm-up scrolling failed", err)
		}
		logger.Debug().
			Int("scrolls", result.WarmUpScrolls).
			Int("markup_bytes", len(warm)).
			Msg("Warm-up finished")

		last := warm
		driver.OnScroll = s.progress(StageHarvest, &result.HarvestScrolls)
		_, err = driver.Harvest(ctx, s.opts.MaxScrolls, s.opts.HarvestWait, func(iteration int, snapshot string) error {
			last = snapshot
			listings, err := s.extractor.Extract(snapshot)
			if err != nil {
				return NewScrapeError(ErrCodeParse, "failed to extract listings", err).
					WithDetail("iteration", iteration)
			}
			acc.Add(listings...)
			logger.Debug().
				Int("iteration", iteration).
				Int("listings", len(listings)).
				Int("total", acc.Len()).
				Msg("Snapshot extracted")
			return nil
		})
		if err != nil {
			return stageError(ErrCodeBrowser, "harvest scrolling failed", err)
		}

		if s.opts.SnapshotFile != "" {
			if err := os.WriteFile(s.opts.SnapshotFile, []byte(last), 0644); err != nil {
				return NewScrapeError(ErrCodeWrite, "failed to write snapshot", err).
					WithDetail("file", s.opts.SnapshotFile)
			}
		}
		return nil
	})
	if err != nil {
		return nil, reqctx.NewRunError(ctx, stageError(ErrCodeBrowser, "browser session failed", err))
	}

	result.Extracted = acc.Len()
	if err := s.save(acc, result); err != nil {
		return nil, reqctx.NewRunError(ctx, err)
	}
	result.Duration = time.Since(rc.StartTime)

	logger.Info().
		Int("extracted", result.Extracted).
		Int("saved", result.Saved).
		Str("file", result.CompressedFile).
		Dur("duration", result.Duration).
		Msg("Scrape complete")

	return result, nil
}

// ProcessSnapshot extracts listings from previously captured markup and
// saves them exactly like a live run would.
func (s *Scraper) ProcessSnapshot(ctx context.Context, markup string) (*Result, error) {
	ctx = reqctx.WithRunContext(ctx)
	rc := reqctx.GetRunContext(ctx)

	listings, err := s.extractor.Extract(markup)
	if err != nil {
		return nil, reqctx.NewRunError(ctx, NewScrapeError(ErrCodeParse, "failed to extract listings", err))
	}

	acc := NewAccumulator()
	acc.Add(listings...)

	result := &Result{RunID: rc.RunID, Extracted: acc.Len()}
	if err := s.save(acc, result); err != nil {
		return nil, reqctx.NewRunError(ctx, err)
	}
	result.Duration = time.Since(rc.StartTime)
	return result, nil
}

func (s *Scraper) save(acc *Accumulator, result *Result) error {
	gzPath, n, err := sink.Save(acc.Listings(), s.opts.OutputFile, sink.Options{
		RemoveUncompressed: s.opts.RemoveUncompressed,
	})
	if err != nil {
		return NewScrapeError(ErrCodeWrite, fmt.Sprintf("failed to save %s", s.opts.OutputFile), err)
	}

	result.Saved = n
	result.CompressedFile = gzPath
	if !s.opts.RemoveUncompressed {
		result.OutputFile = s.opts.OutputFile
	}
	return nil
}

func (s *Scraper) progress(stage string, counter *int) func(int) {
	return func(iteration int) {
		*counter = iteration
		if s.OnProgress != nil {
			s.OnProgress(stage, iteration)
		}
	}
}
