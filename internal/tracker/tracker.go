// Package tracker attributes wall-clock time to tasks based on which process
// is in the foreground. It is driven one tick at a time by the caller.
package tracker

import (
	"time"

	"github.com/rs/zerolog"

	"tabtime/internal/sampler"
	"tabtime/internal/settings"
	"tabtime/internal/timelog"
	"tabtime/internal/timer"
)

// MinSession is the shortest session that is written to the log.
const MinSession = time.Second

type State int

const (
	Idle State = iota
	Running
	GracePeriod
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case GracePeriod:
		return "grace"
	}
	return "unknown"
}

// TaskSource is the set of tasks a session can be attributed to.
type TaskSource interface {
	First() string
	Has(name string) bool
}

// Sample is the classified view of one foreground observation.
type Sample struct {
	Process     string
	Work        bool
	Distraction bool
	Idle        bool
}

// Result reports what a tick did.
type Result struct {
	State  State
	Sample Sample
	// Entry is set when a session was finalized on this tick.
	Entry *timelog.Entry
	// Nag is set when focus mode wants to remind the user.
	Nag string
}

type Tracker struct {
	settings *settings.Settings
	sampler  sampler.Sampler
	tasks    TaskSource
	watch    *timer.Stopwatch
	logger   zerolog.Logger

	state        State
	task         string
	selected     string
	sessionStart time.Time
	graceStart   time.Time
	lastNag      time.Time
}

func New(cfg *settings.Settings, s sampler.Sampler, tasks TaskSource, logger zerolog.Logger) *Tracker {
	return &Tracker{
		settings: cfg.Clone(),
		sampler:  s,
		tasks:    tasks,
		watch:    timer.NewStopwatch(),
		logger:   logger,
		selected: cfg.SelectedTask(),
	}
}

// SetSettings swaps the configuration used from the next tick on. It is
// meant to be registered with settings.Manager.Subscribe.
func (t *Tracker) SetSettings(cfg *settings.Settings) {
	t.settings = cfg.Clone()
}

func (t *Tracker) State() State {
	return t.state
}

// Task is the task of the open session, "" when idle.
func (t *Tracker) Task() string {
	return t.task
}

// Selected is the task the user picked, which may differ from Task while idle.
func (t *Tracker) Selected() string {
	return t.selected
}

// SessionStart is the start of the open session, zero when idle.
func (t *Tracker) SessionStart() time.Time {
	return t.sessionStart
}

// Elapsed is the active time of the open session. Time spent in the grace
// period is not counted.
func (t *Tracker) Elapsed(now time.Time) time.Duration {
	if t.state == Idle {
		return 0
	}
	return t.watch.Elapsed(now)
}

// Classify turns a process name into a Sample using the current settings
// and, when idle detection is on, the sampler's idle time. A distraction or
// an idle user never counts as work.
func (t *Tracker) Classify(process string) Sample {
	s := Sample{
		Process:     process,
		Distraction: t.settings.IsDistraction(process),
	}
	if t.settings.IdleDetectionEnabled {
		if is, ok := t.sampler.(sampler.IdleSampler); ok {
			if d, err := is.IdleDuration(); err == nil && d >= t.settings.IdleTimeout() {
				s.Idle = true
			}
		}
	}
	s.Work = t.settings.IsWorkProcess(process) && !s.Distraction && !s.Idle
	return s
}

// Tick samples the foreground process and advances the state machine.
func (t *Tracker) Tick(now time.Time) Result {
	return t.Step(now, t.Classify(t.sampler.ActiveProcessName()))
}

// Step advances the state machine with an already classified sample.
func (t *Tracker) Step(now time.Time, s Sample) Result {
	res := Result{Sample: s}

	if s.Work {
		switch t.state {
		case GracePeriod:
			t.watch.Start(now)
			t.state = Running
			t.logger.Debug().Str("task", t.task).Msg("work resumed within grace period")
		case Idle:
			t.begin(t.resolve(t.selected), now)
		}
	} else {
		switch t.state {
		case Running:
			t.watch.Stop(now)
			t.state = GracePeriod
			t.graceStart = now
			t.logger.Debug().Str("task", t.task).Str("process", s.Process).Msg("entering grace period")
		case GracePeriod:
			if now.Sub(t.graceStart) > t.settings.GraceTimeout() {
				res.Entry = t.finalize(t.graceStart)
			}
		}
	}

	if s.Distraction && t.settings.FocusModeEnabled {
		if t.lastNag.IsZero() || now.Sub(t.lastNag) >= t.settings.NagInterval() {
			t.lastNag = now
			res.Nag = t.settings.FocusModeNagMessage
		}
	}

	res.State = t.state
	return res
}

// Select changes the user's task. A running session is closed and a new one
// opened for the new task right away; a session in its grace period is
// closed at the moment work stopped.
func (t *Tracker) Select(name string, now time.Time) *timelog.Entry {
	t.selected = name
	next := t.resolve(name)

	switch t.state {
	case Running:
		if next == t.task {
			return nil
		}
		e := t.finalize(now)
		t.begin(next, now)
		return e
	case GracePeriod:
		if next == t.task {
			return nil
		}
		return t.finalize(t.graceStart)
	}
	return nil
}

// Shutdown closes any open session synchronously.
func (t *Tracker) Shutdown(now time.Time) *timelog.Entry {
	switch t.state {
	case Running:
		return t.finalize(now)
	case GracePeriod:
		return t.finalize(t.graceStart)
	}
	return nil
}

func (t *Tracker) resolve(name string) string {
	if name != "" && t.tasks.Has(name) {
		return name
	}
	return t.tasks.First()
}

func (t *Tracker) begin(task string, now time.Time) {
	if task == "" {
		return
	}
	t.task = task
	t.sessionStart = now
	t.watch.Reset()
	t.watch.Start(now)
	t.state = Running
	t.logger.Debug().Str("task", task).Time("start", now).Msg("session started")
}

// finalize ends the open session at end and resets to Idle. Sessions with
// less than MinSession of active time are dropped.
func (t *Tracker) finalize(end time.Time) *timelog.Entry {
	t.watch.Stop(end)
	elapsed := t.watch.Elapsed(end)
	task, start := t.task, t.sessionStart

	t.state = Idle
	t.task = ""
	t.sessionStart = time.Time{}
	t.graceStart = time.Time{}
	t.watch.Reset()

	if task == "" || elapsed < MinSession {
		t.logger.Debug().Str("task", task).Dur("elapsed", elapsed).Msg("session too short, discarded")
		return nil
	}

	e := timelog.NewEntry(task, start, end)
	t.logger.Info().
		Str("task", task).
		Time("start", start).
		Time("end", end).
		Dur("active", elapsed).
		Msg("session logged")
	return &e
}
