// Package browsertest provides an in-memory browser.Page for tests.
package browsertest

import (
	"context"
	"sync"
)

// FakePage replays scripted scroll heights and markup snapshots.
type FakePage struct {
	// Heights are returned by successive ScrollHeight calls; the last value repeats.
	Heights []int64
	// Snapshots are returned by successive HTML calls; the last value repeats.
	Snapshots []string

	NavigateErr error
	ScrollErr   error

	mu          sync.Mutex
	heightCalls int
	htmlCalls   int
	scrolls     []string
	navigated   []string
	closed      int
}

func (p *FakePage) Navigate(ctx context.Context, url string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.NavigateErr != nil {
		return p.NavigateErr
	}
	p.navigated = append(p.navigated, url)
	return nil
}

func (p *FakePage) Scroll(ctx context.Context, script string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ScrollErr != nil {
		return p.ScrollErr
	}
	p.scrolls = append(p.scrolls, script)
	return nil
}

func (p *FakePage) ScrollHeight(ctx context.Context) (int64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.Heights) == 0 {
		return 0, nil
	}
	i := p.heightCalls
	if i >= len(p.Heights) {
		i = len(p.Heights) - 1
	}
	p.heightCalls++
	return p.Heights[i], nil
}

func (p *FakePage) HTML(ctx context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.Snapshots) == 0 {
		return "", nil
	}
	i := p.htmlCalls
	if i >= len(p.Snapshots) {
		i = len(p.Snapshots) - 1
	}
	p.htmlCalls++
	return p.Snapshots[i], nil
}

func (p *FakePage) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed++
	return nil
}

// Scrolls returns the scripts passed to Scroll, in order.
func (p *FakePage) Scrolls() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.scrolls...)
}

// Navigated returns the URLs passed to Navigate.
func (p *FakePage) Navigated() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.navigated...)
}

// CloseCount reports how many times Close was called.
func (p *FakePage) CloseCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closed
}
