package storage

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
)

type writeJob struct {
	name string
	fn   func(context.Context) error
	done chan struct{}
}

// Writer runs saves on one background goroutine, in submission order, so the
// tick loop never waits on disk. Failures are logged and otherwise dropped.
type Writer struct {
	mu     sync.Mutex
	closed bool
	jobs   chan writeJob
	done   chan struct{}
	logger zerolog.Logger
}

func NewWriter(logger zerolog.Logger) *Writer {
	w := &Writer{
		jobs:   make(chan writeJob, 64),
		done:   make(chan struct{}),
		logger: logger,
	}
	go w.loop()
	return w
}

func (w *Writer) loop() {
	defer close(w.done)
	for j := range w.jobs {
		if j.fn != nil {
			w.run(j)
		}
		if j.done != nil {
			close(j.done)
		}
	}
}

func (w *Writer) run(j writeJob) {
	if err := j.fn(context.Background()); err != nil {
		w.logger.Error().Err(err).Str("collection", j.name).Msg("failed to save")
		return
	}
	w.logger.Debug().Str("collection", j.name).Msg("saved")
}

// Submit queues fn. After Close it runs fn synchronously instead.
func (w *Writer) Submit(name string, fn func(context.Context) error) {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		w.run(writeJob{name: name, fn: fn})
		return
	}
	w.jobs <- writeJob{name: name, fn: fn}
	w.mu.Unlock()
}

// Flush blocks until every job submitted so far has run.
func (w *Writer) Flush() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	done := make(chan struct{})
	w.jobs <- writeJob{done: done}
	w.mu.Unlock()
	<-done
}

// Close drains pending jobs and stops the goroutine.
func (w *Writer) Close() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.closed = true
	close(w.jobs)
	w.mu.Unlock()
	<-w.done
}
