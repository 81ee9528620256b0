package timelog

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Entry is a finalized interval of work attributed to a task.
type Entry struct {
	ID              string    `json:"id"`
	Start           time.Time `json:"start_time"`
	End             time.Time `json:"end_time"`
	Task            string    `json:"task_text"`
	FocusScore      int       `json:"focus_score,omitempty"`
	BreakActivities []string  `json:"break_activities,omitempty"`
}

// NewEntry builds a machine-generated entry. The interval is kept as given.
func NewEntry(task string, start, end time.Time) Entry {
	return Entry{
		ID:    uuid.NewString(),
		Start: start,
		End:   end,
		Task:  task,
	}
}

// NewManualEntry builds an entry from user input. An end that is not after
// start is corrected to start plus one hour.
func NewManualEntry(task string, start, end time.Time) Entry {
	e := NewEntry(task, start, end)
	e.Normalize()
	return e
}

func (e Entry) Duration() time.Duration {
	return e.End.Sub(e.Start)
}

// Normalize enforces End > Start for user-entered intervals.
func (e *Entry) Normalize() {
	if !e.End.After(e.Start) {
		e.End = e.Start.Add(time.Hour)
	}
}

// Overlaps reports whether the entry intersects [from, to).
func (e Entry) Overlaps(from, to time.Time) bool {
	return e.Start.Before(to) && e.End.After(from)
}

func (e Entry) String() string {
	return fmt.Sprintf("%s - %s (%s)", e.Start.Format("15:04"), e.End.Format("15:04"), e.Task)
}

// SameDay compares local calendar dates.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Local().Date()
	by, bm, bd := b.Local().Date()
	return ay == by && am == bm && ad == bd
}

// StartOfDay returns local midnight of t's calendar date.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Local().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}
