// Package sweeper runs the periodic background pass that closes auctions
// whose time window has expired without manual intervention.
package sweeper

import (
	"context"
	"time"

	"parts-auction/internal/closer"
	"parts-auction/utils"
)

// DefaultInterval is how often the sweep runs unless configured otherwise.
const DefaultInterval = 10 * time.Second

// Sweeper drives AuctionCloser.SweepExpired on a ticker.
type Sweeper struct {
	closer   *closer.AuctionCloser
	interval time.Duration
}

// NewSweeper creates a new Sweeper instance. Non-positive intervals fall
// back to DefaultInterval.
func NewSweeper(c *closer.AuctionCloser, interval time.Duration) *Sweeper {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Sweeper{closer: c, interval: interval}
}

// Run sweeps until the context is cancelled. Sweep failures are logged and
// the loop keeps going; a broken store must not kill the ticker.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	utils.Info("auction sweeper started", map[string]any{"interval": s.interval.String()})

	for {
		select {
		case <-ctx.Done():
			utils.Info("auction sweeper stopped", nil)
			return
		case <-ticker.C:
			closed, err := s.closer.SweepExpired(ctx)
			if err != nil {
				utils.Error("sweep pass failed", map[string]any{"error": err.Error()})
				continue
			}
			if len(closed) > 0 {
				utils.Info("sweep closed expired auctions", map[string]any{"count": len(closed)})
			}
		}
	}
}
