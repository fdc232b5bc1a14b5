// Package browser drives a headless Chrome through a scroll-to-load listing page.
package browser

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

// ScrollToBottomScript scrolls the window to the current end of the document.
const ScrollToBottomScript = `window.scrollTo(0, document.body.scrollHeight);`

var (
	ErrBrowserStart = errors.New("browser could not be started")
	ErrNavigation   = errors.New("navigation failed")
)

// Page is the browser capability the driver needs.
type Page interface {
	Navigate(ctx context.Context, url string) error
	Scroll(ctx context.Context, script string) error
	ScrollHeight(ctx context.Context) (int64, error)
	HTML(ctx context.Context) (string, error)
	Close() error
}

// LaunchFunc opens a new Page.
type LaunchFunc func(ctx context.Context, opts Options) (Page, error)

// SnapshotFunc receives the markup captured after each harvesting scroll.
type SnapshotFunc func(iteration int, snapshot string) error

// Driver runs scroll loops against a Page. Pauses are fixed wall-clock
// durations; a pause ends early only if the context is cancelled.
type Driver struct {
	page Page

	// OnScroll, if set, is called after every completed scroll iteration.
	OnScroll func(iteration int)

	sleep func(ctx context.Context, d time.Duration) error
}

// NewDriver creates a Driver for page.
func NewDriver(page Page) *Driver {
	return &Driver{
		page:  page,
		sleep: sleepContext,
	}
}

// Open navigates to url.
func (d *Driver) Open(ctx context.Context, url string) error {
	log.Debug().Str("url", url).Msg("Opening listing page")
	if err := d.page.Navigate(ctx, url); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrNavigation, url, err)
	}
	return nil
}

// ScrollLoop scrolls to the bottom up to maxIterations times, pausing wait
// after each scroll, and stops as soon as the scroll height stops growing.
// It returns the markup as of the last iteration.
func (d *Driver) ScrollLoop(ctx context.Context, maxIterations int, wait time.Duration) (string, error) {
	if _, err := d.loop(ctx, maxIterations, wait, nil); err != nil {
		return "", err
	}

	html, err := d.page.HTML(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to read page markup: %w", err)
	}
	return html, nil
}

// Harvest runs the same loop as ScrollLoop but captures the markup after
// every pause and hands it to fn before checking the height. It returns the
// number of scroll actions performed.
func (d *Driver) Harvest(ctx context.Context, maxIterations int, wait time.Duration, fn SnapshotFunc) (int, error) {
	return d.loop(ctx, maxIterations, wait, func(iteration int) error {
		html, err := d.page.HTML(ctx)
		if err != nil {
			return fmt.Errorf("failed to read page markup: %w", err)
		}
		return fn(iteration, html)
	})
}

func (d *Driver) loop(ctx context.Context, maxIterations int, wait time.Duration, afterPause func(iteration int) error) (int, error) {
	if maxIterations <= 0 {
		return 0, fmt.Errorf("max iterations must be > 0, got %d", maxIterations)
	}

	lastHeight, err := d.page.ScrollHeight(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to read scroll height: %w", err)
	}

	scrolls := 0
	for scrolls < maxIterations {
		if err := d.page.Scroll(ctx, ScrollToBottomScript); err != nil {
			return scrolls, fmt.Errorf("failed to scroll: %w", err)
		}
		scrolls++

		if err := d.sleep(ctx, wait); err != nil {
			return scrolls, err
		}

		if afterPause != nil {
			if err := afterPause(scrolls); err != nil {
				return scrolls, err
			}
		}

		if d.OnScroll != nil {
			d.OnScroll(scrolls)
		}

		height, err := d.page.ScrollHeight(ctx)
		if err != nil {
			return scrolls, fmt.Errorf("failed to read scroll height: %w", err)
		}

		log.Debug().
			Int("iteration", scrolls).
			Int64("previous_height", lastHeight).
			Int64("height", height).
			Msg("Scrolled")

		if height == lastHeight {
			log.Debug().Int("iteration", scrolls).Msg("Scroll height unchanged, no more content")
			break
		}
		lastHeight = height
	}

	return scrolls, nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
