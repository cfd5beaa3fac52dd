package gist

import (
	"context"
	"log/slog"
	"time"

	"github.com/gogpu/codeshot"
)

// Sweeper periodically deletes ephemeral gists older than Retention.
type Sweeper struct {
	Store     Store
	Retention time.Duration
	Interval  time.Duration

	// Logger defaults to codeshot.Component("gist").
	Logger *slog.Logger

	// Now defaults to time.Now.
	Now func() time.Time
}

// Run sweeps every Interval until ctx is done. It returns nil on
// cancellation; sweep errors are logged and do not stop the loop.
func (s *Sweeper) Run(ctx context.Context) error {
	interval := s.Interval
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.logger().Info("gist sweeper started", "interval", interval, "retention", s.Retention)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if _, err := s.Sweep(ctx); err != nil && ctx.Err() == nil {
				s.logger().Warn("gist sweep failed", "err", err)
			}
		}
	}
}

// Sweep runs one deletion pass and returns the number of gists removed.
func (s *Sweeper) Sweep(ctx context.Context) (int, error) {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	n, err := s.Store.DeleteExpired(ctx, now().Add(-s.Retention))
	if n > 0 {
		s.logger().Debug("swept expired gists", "count", n)
	}
	return n, err
}

func (s *Sweeper) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return codeshot.Component("gist")
}
