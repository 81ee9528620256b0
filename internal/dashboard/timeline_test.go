package dashboard

import (
	"testing"
	"time"

	"tabtime/internal/timelog"
)

func TestBuildTimeline(t *testing.T) {
	t.Parallel()

	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.Local)
	at := func(h, m int) time.Time { return day.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute) }

	entries := []timelog.Entry{
		{ID: "a", Task: "Math", Start: at(9, 0), End: at(9, 26)},
		{ID: "b", Task: "Art", Start: at(9, 26), End: at(9, 40)},
		{ID: "c", Task: "Late", Start: at(23, 55), End: at(24, 30)},
		{ID: "d", Task: "Other", Start: at(-2, 0), End: at(-1, 0)},
	}
	tl := BuildTimeline(entries, at(15, 0))

	if !tl.Day.Equal(day) {
		t.Errorf("Expected day %v, got %v", day, tl.Day)
	}

	tests := []struct {
		name    string
		hour    int
		cell    int
		task    string
		covered time.Duration
		ids     int
	}{
		{"full block", 9, 0, "Math", 10 * time.Minute, 1},
		{"split block goes to larger share", 9, 2, "Math", 10 * time.Minute, 2},
		{"second task", 9, 3, "Art", 10 * time.Minute, 1},
		{"before first entry", 8, 5, "", 0, 0},
		{"clipped at midnight", 23, 5, "Late", 5 * time.Minute, 1},
		{"empty", 0, 0, "", 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := tl.Rows[tt.hour][tt.cell]
			if c.Task != tt.task {
				t.Errorf("Expected task %q, got %q", tt.task, c.Task)
			}
			if c.Covered != tt.covered {
				t.Errorf("Expected %v covered, got %v", tt.covered, c.Covered)
			}
			if len(c.EntryIDs) != tt.ids {
				t.Errorf("Expected %d ids, got %v", tt.ids, c.EntryIDs)
			}
		})
	}
}

func TestTimelineTieBreaksByName(t *testing.T) {
	t.Parallel()

	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.Local)
	entries := []timelog.Entry{
		{ID: "z", Task: "Zoo", Start: day, End: day.Add(5 * time.Minute)},
		{ID: "a", Task: "Ant", Start: day.Add(5 * time.Minute), End: day.Add(10 * time.Minute)},
	}
	for i := 0; i < 5; i++ {
		if got := BuildTimeline(entries, day).Rows[0][0].Task; got != "Ant" {
			t.Fatalf("Expected Ant, got %q", got)
		}
	}
}

func TestCellRange(t *testing.T) {
	t.Parallel()

	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.Local)
	tl := BuildTimeline(nil, day)

	start, end := tl.CellRange(10, 3, 9, 1)
	if want := day.Add(9*time.Hour + 10*time.Minute); !start.Equal(want) {
		t.Errorf("Expected start %v, got %v", want, start)
	}
	if want := day.Add(10*time.Hour + 40*time.Minute); !end.Equal(want) {
		t.Errorf("Expected end %v, got %v", want, end)
	}
}
