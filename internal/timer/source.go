package timer

import (
	"context"
	"time"
)

// DefaultInterval is the tick period of the attribution loop.
const DefaultInterval = time.Second

// Source fires a callback on a fixed interval until its context is done.
type Source struct {
	interval time.Duration
}

func NewSource(interval time.Duration) *Source {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Source{interval: interval}
}

func (s *Source) Interval() time.Duration {
	return s.interval
}

// Run blocks, invoking fn with the tick time on the calling goroutine.
func (s *Source) Run(ctx context.Context, fn func(time.Time)) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			fn(now)
		}
	}
}

// Channel starts a goroutine that forwards ticks to the returned channel. The
// channel is closed once ctx is done. Ticks are dropped rather than queued
// when the consumer falls behind.
func (s *Source) Channel(ctx context.Context) <-chan time.Time {
	out := make(chan time.Time, 1)
	go func() {
		defer close(out)
		s.Run(ctx, func(now time.Time) {
			select {
			case out <- now:
			default:
			}
		})
	}()
	return out
}
