package browser

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/law-makers/grabfood/internal/browser/browsertest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDriver(page Page) (*Driver, *[]time.Duration) {
	var pauses []time.Duration
	d := NewDriver(page)
	d.sleep = func(ctx context.Context, wait time.Duration) error {
		pauses = append(pauses, wait)
		return ctx.Err()
	}
	return d, &pauses
}

func TestScrollLoop_StopsWhenHeightRepeats(t *testing.T) {
	page := &browsertest.FakePage{
		Heights:   []int64{100, 200, 200},
		Snapshots: []string{"<html>final</html>"},
	}
	d, pauses := newTestDriver(page)

	html, err := d.ScrollLoop(context.Background(), 20, 15*time.Second)
	require.NoError(t, err)

	assert.Len(t, page.Scrolls(), 2)
	assert.Equal(t, []time.Duration{15 * time.Second, 15 * time.Second}, *pauses)
	assert.Equal(t, "<html>final</html>", html)
	for _, script := range page.Scrolls() {
		assert.Equal(t, ScrollToBottomScript, script)
	}
}

func TestScrollLoop_StopsAtMaxIterations(t *testing.T) {
	page := &browsertest.FakePage{Heights: []int64{100, 200, 300, 400, 500, 600}}
	d, _ := newTestDriver(page)

	_, err := d.ScrollLoop(context.Background(), 3, 0)
	require.NoError(t, err)
	assert.Len(t, page.Scrolls(), 3)
}

func TestScrollLoop_UnchangedFirstHeight(t *testing.T) {
	page := &browsertest.FakePage{Heights: []int64{100}}
	d, _ := newTestDriver(page)

	_, err := d.ScrollLoop(context.Background(), 20, 0)
	require.NoError(t, err)
	assert.Len(t, page.Scrolls(), 1, "a stalled load ends the loop after one scroll")
}

func TestScrollLoop_RejectsNonPositiveMax(t *testing.T) {
	d, _ := newTestDriver(&browsertest.FakePage{})

	_, err := d.ScrollLoop(context.Background(), 0, 0)
	assert.Error(t, err)
}

func TestScrollLoop_ScrollError(t *testing.T) {
	page := &browsertest.FakePage{Heights: []int64{100}, ScrollErr: errors.New("target closed")}
	d, _ := newTestDriver(page)

	_, err := d.ScrollLoop(context.Background(), 5, 0)
	assert.ErrorContains(t, err, "target closed")
}

func TestHarvest_SnapshotPerIteration(t *testing.T) {
	page := &browsertest.FakePage{
		Heights:   []int64{100, 200, 300, 300},
		Snapshots: []string{"one", "two", "three"},
	}
	d, _ := newTestDriver(page)

	var progress []int
	d.OnScroll = func(i int) { progress = append(progress, i) }

	var seen []string
	scrolls, err := d.Harvest(context.Background(), 20, 100*time.Second, func(i int, snapshot string) error {
		seen = append(seen, snapshot)
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, 3, scrolls)
	assert.Equal(t, []string{"one", "two", "three"}, seen)
	assert.Equal(t, []int{1, 2, 3}, progress)
}

func TestHarvest_CallbackErrorAborts(t *testing.T) {
	page := &browsertest.FakePage{Heights: []int64{100, 200, 300}}
	d, _ := newTestDriver(page)

	boom := errors.New("bad snapshot")
	_, err := d.Harvest(context.Background(), 20, 0, func(int, string) error { return boom })
	assert.ErrorIs(t, err, boom)
	assert.Len(t, page.Scrolls(), 1)
}

func TestOpen_WrapsNavigationError(t *testing.T) {
	page := &browsertest.FakePage{NavigateErr: errors.New("net::ERR_NAME_NOT_RESOLVED")}
	d := NewDriver(page)

	err := d.Open(context.Background(), "https://food.grab.com")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNavigation)
}

func TestSleepContext_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	err := sleepContext(ctx, time.Minute)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Less(t, time.Since(start), time.Second)
}

func TestWithSession_ClosesOnError(t *testing.T) {
	page := &browsertest.FakePage{}
	launch := func(context.Context, Options) (Page, error) { return page, nil }

	boom := errors.New("scrape failed")
	err := WithSession(context.Background(), launch, Options{}, func(Page) error { return boom })

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, page.CloseCount())
}

func TestWithSession_ClosesOnPanic(t *testing.T) {
	page := &browsertest.FakePage{}
	launch := func(context.Context, Options) (Page, error) { return page, nil }

	assert.Panics(t, func() {
		_ = WithSession(context.Background(), launch, Options{}, func(Page) error { panic("boom") })
	})
	assert.Equal(t, 1, page.CloseCount())
}

func TestWithSession_LaunchFailure(t *testing.T) {
	launch := func(context.Context, Options) (Page, error) { return nil, errors.New("no chrome") }

	called := false
	err := WithSession(context.Background(), launch, Options{}, func(Page) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, ErrBrowserStart)
	assert.False(t, called)
}
