package browser

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog/log"
)

// Options configures the Chrome session
type Options struct {
	Headless          bool
	UserAgent         string
	Proxy             string
	ChromePath        string
	NavigationTimeout time.Duration
	// ExtraFlags are passed to Chrome as command-line switches; a true value
	// is a bare switch.
	ExtraFlags map[string]any
}

// Session is a single chromedp tab in its own browser process. It implements Page.
type Session struct {
	ctx         context.Context
	cancel      context.CancelFunc
	allocCancel context.CancelFunc
	navTimeout  time.Duration

	mu         sync.Mutex
	lastStatus int64

	closeOnce sync.Once
}

// Launch starts Chrome and opens one tab. The browser lives until Close is
// called or ctx is cancelled.
func Launch(ctx context.Context, opts Options) (*Session, error) {
	start := time.Now()

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, allocatorOptions(opts)...)
	tabCtx, tabCancel := chromedp.NewContext(allocCtx)

	s := &Session{
		ctx:         tabCtx,
		cancel:      tabCancel,
		allocCancel: allocCancel,
		navTimeout:  opts.NavigationTimeout,
	}

	chromedp.ListenTarget(tabCtx, func(ev interface{}) {
		if resp, ok := ev.(*network.EventResponseReceived); ok && resp.Type == network.ResourceTypeDocument {
			s.mu.Lock()
			s.lastStatus = resp.Response.Status
			s.mu.Unlock()
		}
	})

	// The first Run starts the browser process
	if err := chromedp.Run(tabCtx, network.Enable()); err != nil {
		s.Close()
		return nil, fmt.Errorf("failed to start browser: %w", err)
	}

	log.Debug().
		Bool("headless", opts.Headless).
		Dur("elapsed", time.Since(start)).
		Msg("Browser session started")

	return s, nil
}

func allocatorOptions(opts Options) []chromedp.ExecAllocatorOption {
	allocOpts := []chromedp.ExecAllocatorOption{
		chromedp.NoFirstRun,
		chromedp.NoDefaultBrowserCheck,
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-background-networking", true),
		chromedp.Flag("disable-breakpad", true),
		chromedp.Flag("disable-default-apps", true),
		chromedp.Flag("disable-hang-monitor", true),
		chromedp.Flag("disable-renderer-backgrounding", true),
		chromedp.Flag("disable-sync", true),
		chromedp.Flag("disable-translate", true),
		chromedp.Flag("mute-audio", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.Flag("disable-infobars", true),
		chromedp.Flag("window-size", "1920,1080"),
	}
	if opts.UserAgent != "" {
		allocOpts = append(allocOpts, chromedp.UserAgent(opts.UserAgent))
	}

	if chromePath := FindChrome(opts.ChromePath); chromePath != "" {
		allocOpts = append([]chromedp.ExecAllocatorOption{chromedp.ExecPath(chromePath)}, allocOpts...)
	}

	if opts.Headless {
		allocOpts = append(allocOpts, chromedp.Flag("headless", "new"))
	} else {
		allocOpts = append(allocOpts, chromedp.Flag("headless", false))
	}

	if opts.Proxy != "" {
		allocOpts = append(allocOpts, chromedp.ProxyServer(opts.Proxy))
	}

	for name, value := range opts.ExtraFlags {
		allocOpts = append(allocOpts, chromedp.Flag(name, value))
	}
	return allocOpts
}

// Navigate loads url and waits for the document to finish loading.
func (s *Session) Navigate(ctx context.Context, url string) error {
	if err := s.run(ctx, s.navTimeout, chromedp.Navigate(url)); err != nil {
		return err
	}

	log.Debug().
		Str("url", url).
		Int64("status", s.Status()).
		Msg("Navigation completed")
	return nil
}

// Scroll evaluates a scrolling expression in the page.
func (s *Session) Scroll(ctx context.Context, script string) error {
	return s.run(ctx, 0, chromedp.Evaluate(script, nil))
}

// ScrollHeight reads document.body.scrollHeight.
func (s *Session) ScrollHeight(ctx context.Context) (int64, error) {
	var height int64
	err := s.run(ctx, 0, chromedp.Evaluate(`document.body.scrollHeight`, &height))
	return height, err
}

// HTML returns the current serialized document.
func (s *Session) HTML(ctx context.Context) (string, error) {
	var html string
	err := s.run(ctx, 0, chromedp.OuterHTML("html", &html, chromedp.ByQuery))
	return html, err
}

// Status returns the HTTP status of the last document response, or 0.
func (s *Session) Status() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastStatus
}

// Close shuts down the tab and the browser process. Safe to call more than once.
func (s *Session) Close() error {
	s.closeOnce.Do(func() {
		s.cancel()
		s.allocCancel()
		log.Debug().Msg("Browser session closed")
	})
	return nil
}

// run executes actions on the tab, bounded by timeout (if positive) and
// aborted when ctx is cancelled.
func (s *Session) run(ctx context.Context, timeout time.Duration, actions ...chromedp.Action) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var runCtx context.Context
	var cancel context.CancelFunc
	if timeout > 0 {
		runCtx, cancel = context.WithTimeout(s.ctx, timeout)
	} else {
		runCtx, cancel = context.WithCancel(s.ctx)
	}
	defer cancel()

	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	return chromedp.Run(runCtx, actions...)
}

// LaunchPage adapts Launch to LaunchFunc.
func LaunchPage(ctx context.Context, opts Options) (Page, error) {
	s, err := Launch(ctx, opts)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// WithSession launches a page, hands it to fn and closes it on every exit
// path, including errors returned by fn.
func WithSession(ctx context.Context, launch LaunchFunc, opts Options, fn func(Page) error) error {
	page, err := launch(ctx, opts)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBrowserStart, err)
	}
	defer func() {
		if cerr := page.Close(); cerr != nil {
			log.Warn().Err(cerr).Msg("Error closing browser session")
		}
	}()

	return fn(page)
}
