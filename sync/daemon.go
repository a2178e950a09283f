package sync

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/gaurav-prasanna/dayscribe/core/graph"
)

// Daemon runs sync cycles continuously until its context is cancelled.
type Daemon struct {
	engine   *Engine
	interval time.Duration
	log      *slog.Logger
}

// NewDaemon creates a continuous sync runner.
func NewDaemon(engine *Engine, interval time.Duration, log *slog.Logger) *Daemon {
	if log == nil {
		log = slog.Default()
	}
	return &Daemon{engine: engine, interval: interval, log: log}
}

// Run performs an immediate sync cycle, then one per interval. Rate-limit
// responses push the next cycle back by the server-requested delay. Run
// returns nil when ctx is cancelled.
func (d *Daemon) Run(ctx context.Context) error {
	d.log.Info("continuous sync started", "interval", d.interval)

	for {
		wait := d.interval
		if delay := d.cycle(ctx); delay > wait {
			wait = delay
		}

		select {
		case <-ctx.Done():
			d.log.Info("continuous sync stopped")
			return nil
		case <-time.After(wait):
		}
	}
}

// cycle runs one sync window and returns a minimum delay before the next
// cycle (zero unless the API asked us to back off).
func (d *Daemon) cycle(ctx context.Context) time.Duration {
	start, end := DefaultWindow(time.Now())
	if _, err := d.engine.Sync(ctx, start, end); err != nil {
		var apiErr *graph.APIError
		if errors.As(err, &apiErr) && apiErr.RetryAfter > 0 {
			d.log.Warn("rate limited, backing off", "retry_after", apiErr.RetryAfter)
			return apiErr.RetryAfter
		}
		d.log.Error("sync cycle failed", "error", err)
	}
	return 0
}
