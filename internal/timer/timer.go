package timer

import (
	"sync"
	"time"
)

// Stopwatch accumulates elapsed time between Start and Stop calls. It is
// driven by the timestamps passed in rather than a background goroutine, so
// the caller's tick loop owns the clock.
type Stopwatch struct {
	mu      sync.RWMutex
	elapsed time.Duration
	running bool
	since   time.Time
}

func NewStopwatch() *Stopwatch {
	return &Stopwatch{}
}

func (s *Stopwatch) Start(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return
	}

	s.running = true
	s.since = now
}

func (s *Stopwatch) Stop(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}

	s.elapsed += clampSince(now, s.since)
	s.running = false
}

func (s *Stopwatch) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.running = false
	s.elapsed = 0
	s.since = time.Time{}
}

// Elapsed reports the accumulated time, including the open span up to now
// when running.
func (s *Stopwatch) Elapsed(now time.Time) time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.running {
		return s.elapsed + clampSince(now, s.since)
	}
	return s.elapsed
}

func (s *Stopwatch) Running() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

// clampSince guards against wall clock steps backwards.
func clampSince(now, since time.Time) time.Duration {
	d := now.Sub(since)
	if d < 0 {
		return 0
	}
	return d
}
