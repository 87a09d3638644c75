package poll

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"pmconsole/internal/location"
)

// DefaultInterval is the period between project refreshes.
const DefaultInterval = 30000 * time.Millisecond

// Schedule decides when a refresh runs.
type Schedule struct {
	Interval time.Duration
	// Blocked reports whether a modal is open; blocked ticks are skipped,
	// not queued.
	Blocked func() bool
}

// ShouldStart reports whether polling applies to the route.
func ShouldStart(path string) bool {
	return location.IsProjectDetail(path)
}

// ShouldRun reports whether the current tick may refresh.
func (s Schedule) ShouldRun() bool {
	return s.Blocked == nil || !s.Blocked()
}

// Period returns the interval, falling back to DefaultInterval.
func (s Schedule) Period() time.Duration {
	if s.Interval <= 0 {
		return DefaultInterval
	}
	return s.Interval
}

// Poller runs refreshes on a fixed period until its context ends.
type Poller struct {
	schedule Schedule
	refresh  func(ctx context.Context)
	logger   *slog.Logger
}

// New builds a poller.
func New(schedule Schedule, refresh func(ctx context.Context), logger *slog.Logger) *Poller {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Poller{schedule: schedule, refresh: refresh, logger: logger}
}

// Run ticks until ctx is done. Each refresh runs on its own goroutine, so
// a slow response may land after a newer one; Run waits for outstanding
// refreshes before returning.
func (p *Poller) Run(ctx context.Context) error {
	if p.refresh == nil {
		return errors.New("poll: refresh func is nil")
	}
	ticker := time.NewTicker(p.schedule.Period())
	defer ticker.Stop()
	var wg sync.WaitGroup
	defer wg.Wait()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if !p.schedule.ShouldRun() {
				p.logger.Debug("poll tick skipped: modal open")
				continue
			}
			wg.Add(1)
			go func() {
				defer wg.Done()
				p.refresh(ctx)
			}()
		}
	}
}
