package collector

import (
	"context"
	"log/slog"
	"time"
)

// Refresher is the slice of the sensor service the collector drives.
type Refresher interface {
	RefreshAll(ctx context.Context) error
}

// Collector refreshes every registered location on a fixed interval. The
// first cycle runs immediately so sensors are populated right after startup.
type Collector struct {
	refresher Refresher
	interval  time.Duration
	timeout   time.Duration
	logger    *slog.Logger
}

// New builds a collector. A non-positive interval falls back to 15 minutes,
// the cadence the sensor surface documents.
func New(refresher Refresher, interval, timeout time.Duration, logger *slog.Logger) *Collector {
	if interval <= 0 {
		interval = 15 * time.Minute
	}
	if timeout <= 0 || timeout > interval {
		timeout = interval
	}
	return &Collector{
		refresher: refresher,
		interval:  interval,
		timeout:   timeout,
		logger:    logger.With("component", "collector"),
	}
}

// Run blocks until ctx is canceled, refreshing on every tick. A failing
// cycle is logged and the loop keeps going; stale snapshots simply age out.
func (c *Collector) Run(ctx context.Context) {
	c.logger.Info("collector started", "interval", c.interval.String())

	c.cycle(ctx)

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			c.logger.Info("collector stopped")
			return
		case <-ticker.C:
			c.cycle(ctx)
		}
	}
}

func (c *Collector) cycle(ctx context.Context) {
	cycleCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	if err := c.refresher.RefreshAll(cycleCtx); err != nil {
		c.logger.Error("refresh cycle failed", "error", err)
		return
	}
	c.logger.Info("refresh cycle complete", "elapsed_ms", time.Since(start).Milliseconds())
}
