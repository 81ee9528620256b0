// Package dashboard is the view-model behind every front end: it owns the
// task list, the time log, the tracker and the side collections, and
// persists each collection whenever it changes.
package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"tabtime/internal/memo"
	"tabtime/internal/sampler"
	"tabtime/internal/settings"
	"tabtime/internal/storage"
	"tabtime/internal/task"
	"tabtime/internal/timelog"
	"tabtime/internal/todo"
	"tabtime/internal/tracker"
)

type Option func(*Dashboard)

// WithClock replaces time.Now for operations that are not driven by a tick.
func WithClock(now func() time.Time) Option {
	return func(d *Dashboard) {
		d.now = now
	}
}

type Dashboard struct {
	store    storage.Store
	writer   *storage.Writer
	settings *settings.Manager
	tracker  *tracker.Tracker
	logger   zerolog.Logger
	now      func() time.Time

	tasks *task.List
	log   *timelog.Log
	todos *todo.List
	memos *memo.Board

	// totals caches today's figures from the log alone.
	totals timelog.Totals

	unsubscribe func()
	closed      bool
}

func New(store storage.Store, mgr *settings.Manager, s sampler.Sampler, logger zerolog.Logger, opts ...Option) *Dashboard {
	d := &Dashboard{
		store:    store,
		writer:   storage.NewWriter(logger),
		settings: mgr,
		logger:   logger,
		now:      time.Now,
		tasks:    task.NewList(nil),
		log:      timelog.NewLog(nil),
		todos:    todo.NewList(nil),
		memos:    memo.NewBoard(nil),
	}
	for _, opt := range opts {
		opt(d)
	}

	d.tracker = tracker.New(mgr.Current(), s, d.tasks, logger.With().Str("component", "tracker").Logger())
	d.unsubscribe = mgr.Subscribe(d.tracker.SetSettings)
	d.log.Subscribe(d.onLogChange)
	d.recalculate()
	return d
}

// Load reads every collection from the store, replacing what is in memory.
// An open tracking session is left alone.
func (d *Dashboard) Load(ctx context.Context) {
	*d.tasks = *task.NewList(d.store.LoadTasks(ctx))
	d.todos = todo.NewList(d.store.LoadTodos(ctx))
	d.memos = memo.NewBoard(d.store.LoadMemos(ctx))

	// Replace notifies, which would write the file straight back.
	entries := d.store.LoadTimeLogs(ctx)
	d.log = timelog.NewLog(entries)
	d.log.Subscribe(d.onLogChange)
	d.recalculate()

	d.logger.Info().
		Int("tasks", d.tasks.Len()).
		Int("entries", d.log.Len()).
		Msg("data loaded")
}

func (d *Dashboard) onLogChange(c timelog.Change) {
	d.recalculate()
	d.saveLogs()
	d.logger.Debug().Str("change", c.Kind.String()).Int("ids", len(c.IDs)).Msg("time log changed")
}

func (d *Dashboard) recalculate() {
	d.totals = timelog.DailyTotals(d.log.Entries(), d.now())
}

// Tick advances the tracker and records a finalized session.
func (d *Dashboard) Tick(now time.Time) tracker.Result {
	if !timelog.SameDay(d.totals.Day, now) {
		d.totals = timelog.DailyTotals(d.log.Entries(), now)
	}

	res := d.tracker.Tick(now)
	d.record(res.Entry)
	if res.Nag != "" {
		d.logger.Info().Str("process", res.Sample.Process).Msg("focus mode nag")
	}
	return res
}

func (d *Dashboard) record(e *timelog.Entry) {
	if e != nil {
		d.log.Prepend(*e)
	}
}

// Shutdown closes the open session, saves settings with the selected task
// and waits for pending writes. It is safe to call more than once.
func (d *Dashboard) Shutdown() error {
	if d.closed {
		return nil
	}
	d.closed = true

	d.record(d.tracker.Shutdown(d.now()))

	selected := d.tracker.Selected()
	if selected == "" {
		selected = settings.NoTask
	}
	err := d.settings.Update(func(s *settings.Settings) { s.CurrentTask = selected })

	d.release()
	d.logger.Info().Msg("dashboard shut down")
	return err
}

// Close waits for pending writes without touching the tracker or settings.
// One-shot commands use it instead of Shutdown.
func (d *Dashboard) Close() {
	if d.closed {
		return
	}
	d.closed = true
	d.release()
}

func (d *Dashboard) release() {
	d.unsubscribe()
	d.writer.Close()
}

// Flush waits for queued writes.
func (d *Dashboard) Flush() {
	d.writer.Flush()
}

// Settings returns a copy of the live settings.
func (d *Dashboard) Settings() *settings.Settings {
	return d.settings.Current()
}

// UpdateSettings applies fn through the settings manager; the tracker picks
// up the result by subscription.
func (d *Dashboard) UpdateSettings(fn func(*settings.Settings)) error {
	return d.settings.Update(fn)
}

// Status is a snapshot of the tracker for display.
type Status struct {
	State    tracker.State
	Task     string
	Selected string
	Started  time.Time
	Elapsed  time.Duration
}

func (d *Dashboard) Status(now time.Time) Status {
	return Status{
		State:    d.tracker.State(),
		Task:     d.tracker.Task(),
		Selected: d.tracker.Selected(),
		Started:  d.tracker.SessionStart(),
		Elapsed:  d.tracker.Elapsed(now),
	}
}

// Totals returns the figures for day. For today the open session's active
// time is added to its task and to the day total.
func (d *Dashboard) Totals(day, now time.Time) timelog.Totals {
	if !timelog.SameDay(day, now) {
		return timelog.DailyTotals(d.log.Entries(), day)
	}
	base := d.totals
	if !timelog.SameDay(base.Day, now) {
		base = timelog.DailyTotals(d.log.Entries(), now)
	}
	return base.WithLive(d.tracker.Task(), d.tracker.Elapsed(now))
}

// Tasks lists the tasks with today's live totals filled in.
func (d *Dashboard) Tasks(now time.Time) []task.Task {
	d.tasks.ApplyTotals(d.Totals(now, now).ByTask)
	return d.tasks.Tasks()
}

func (d *Dashboard) TaskNames() []string {
	return d.tasks.Names()
}

// Entries returns the whole log, newest machine entries first.
func (d *Dashboard) Entries() []timelog.Entry {
	return d.log.Entries()
}

func (d *Dashboard) EntriesOn(day time.Time) []timelog.Entry {
	return d.log.OnDate(day)
}

func (d *Dashboard) saveLogs() {
	snapshot := d.log.Entries()
	d.writer.Submit("timelogs", func(ctx context.Context) error {
		return d.store.SaveTimeLogs(ctx, snapshot)
	})
}

func (d *Dashboard) saveTasks() {
	snapshot := d.tasks.Tasks()
	d.writer.Submit("tasks", func(ctx context.Context) error {
		return d.store.SaveTasks(ctx, snapshot)
	})
}

func (d *Dashboard) saveTodos() {
	snapshot := d.todos.Items()
	d.writer.Submit("todos", func(ctx context.Context) error {
		return d.store.SaveTodos(ctx, snapshot)
	})
}

func (d *Dashboard) saveMemos() {
	snapshot := d.memos.Memos()
	d.writer.Submit("memos", func(ctx context.Context) error {
		return d.store.SaveMemos(ctx, snapshot)
	})
}

func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}
