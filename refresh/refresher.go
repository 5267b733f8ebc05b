package refresh

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"arso-weather/session"
)

// Refresher keeps the currently selected location's forecast fresh by
// periodically re-fetching it through the session. Each successful fetch
// replaces the forecast cell whole, so subscribers always observe a
// complete forecast.
type Refresher struct {
	sess         *session.Session
	interval     time.Duration
	fetchTimeout time.Duration
}

// NewRefresher creates a refresher for the given session
func NewRefresher(sess *session.Session, interval time.Duration) *Refresher {
	return &Refresher{
		sess:         sess,
		interval:     interval,
		fetchTimeout: 30 * time.Second, // Default timeout
	}
}

// SetFetchTimeout changes the timeout applied to each refresh fetch
func (r *Refresher) SetFetchTimeout(timeout time.Duration) {
	r.fetchTimeout = timeout
}

// Start begins the refresh loop with an immediate first pass.
// The returned function stops the loop and waits for it to finish.
func (r *Refresher) Start(ctx context.Context) func() {
	loopCtx, cancel := context.WithCancel(ctx)

	var wg sync.WaitGroup
	wg.Add(1)
	go r.run(loopCtx, &wg)

	return func() {
		cancel()
		wg.Wait()
	}
}

// run refreshes on the ticker schedule until the context is canceled
func (r *Refresher) run(ctx context.Context, wg *sync.WaitGroup) {
	defer wg.Done()

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.refreshOnce(ctx)

	for {
		select {
		case <-ticker.C:
			r.refreshOnce(ctx)
		case <-ctx.Done():
			return
		}
	}
}

// refreshOnce performs a single refresh with its own timeout. Failures are
// logged and otherwise absorbed: the previous forecast stays displayed.
func (r *Refresher) refreshOnce(ctx context.Context) {
	fetchCtx, cancel := context.WithTimeout(ctx, r.fetchTimeout)
	defer cancel()

	if err := r.sess.Refresh(fetchCtx); err != nil {
		slog.Warn("forecast refresh failed", "error", err)
	}
}
