package timelog

import (
	"sort"
	"time"
)

// Totals is the per-task and whole-day time for one calendar date.
type Totals struct {
	Day    time.Time
	ByTask map[string]time.Duration
	Total  time.Duration
}

// DailyTotals groups entries starting on day by task name and sums them.
func DailyTotals(entries []Entry, day time.Time) Totals {
	t := Totals{
		Day:    StartOfDay(day),
		ByTask: make(map[string]time.Duration),
	}
	for _, e := range entries {
		if !SameDay(e.Start, day) {
			continue
		}
		d := e.Duration()
		t.ByTask[e.Task] += d
		t.Total += d
	}
	return t
}

// WithLive returns a copy that includes an in-progress session's elapsed
// time. Nothing is added when task is empty or elapsed is not positive.
func (t Totals) WithLive(task string, elapsed time.Duration) Totals {
	out := Totals{
		Day:    t.Day,
		ByTask: make(map[string]time.Duration, len(t.ByTask)+1),
		Total:  t.Total,
	}
	for k, v := range t.ByTask {
		out.ByTask[k] = v
	}
	if task == "" || elapsed <= 0 {
		return out
	}
	out.ByTask[task] += elapsed
	out.Total += elapsed
	return out
}

// TaskTotal pairs a task name with its total, for ordered listings.
type TaskTotal struct {
	Task  string
	Total time.Duration
}

// Sorted lists the per-task totals, largest first, ties by name.
func (t Totals) Sorted() []TaskTotal {
	out := make([]TaskTotal, 0, len(t.ByTask))
	for k, v := range t.ByTask {
		out = append(out, TaskTotal{Task: k, Total: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		return out[i].Task < out[j].Task
	})
	return out
}
