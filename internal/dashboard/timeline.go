package dashboard

import (
	"time"

	"tabtime/internal/timelog"
)

const (
	Hours        = 24
	CellsPerHour = 6
	CellSpan     = time.Hour / CellsPerHour
)

// Cell is one ten-minute block of the day grid.
type Cell struct {
	Start time.Time
	// Task is the task covering most of the block, "" when empty.
	Task     string
	Covered  time.Duration
	EntryIDs []string
}

type Timeline struct {
	Day  time.Time
	Rows [Hours][CellsPerHour]Cell
}

// Timeline lays the day's entries onto a 24 x 6 grid of ten-minute blocks.
// Entries crossing midnight are clipped to the day.
func (d *Dashboard) Timeline(day time.Time) Timeline {
	return BuildTimeline(d.log.Entries(), day)
}

func BuildTimeline(entries []timelog.Entry, day time.Time) Timeline {
	dayStart := timelog.StartOfDay(day)
	dayEnd := dayStart.AddDate(0, 0, 1)

	tl := Timeline{Day: dayStart}
	for h := 0; h < Hours; h++ {
		for c := 0; c < CellsPerHour; c++ {
			tl.Rows[h][c].Start = dayStart.Add(time.Duration(h)*time.Hour + time.Duration(c)*CellSpan)
		}
	}

	// per-cell coverage by task, to pick the dominant one
	cover := make(map[int]map[string]time.Duration)

	for _, e := range entries {
		if !e.Overlaps(dayStart, dayEnd) {
			continue
		}
		from := maxTime(e.Start, dayStart)
		to := minTime(e.End, dayEnd)

		first := int(from.Sub(dayStart) / CellSpan)
		last := int((to.Sub(dayStart) - 1) / CellSpan)
		for i := first; i <= last && i < Hours*CellsPerHour; i++ {
			cell := &tl.Rows[i/CellsPerHour][i%CellsPerHour]
			cs, ce := cell.Start, cell.Start.Add(CellSpan)
			overlap := minTime(to, ce).Sub(maxTime(from, cs))
			if overlap <= 0 {
				continue
			}
			cell.Covered += overlap
			cell.EntryIDs = append(cell.EntryIDs, e.ID)
			if cover[i] == nil {
				cover[i] = make(map[string]time.Duration)
			}
			cover[i][e.Task] += overlap
		}
	}

	for i, byTask := range cover {
		cell := &tl.Rows[i/CellsPerHour][i%CellsPerHour]
		var best time.Duration
		for name, dur := range byTask {
			if dur > best || (dur == best && name < cell.Task) {
				best = dur
				cell.Task = name
			}
		}
		if cell.Covered > CellSpan {
			cell.Covered = CellSpan
		}
	}
	return tl
}

// CellRange converts a span of grid positions (inclusive, in either order)
// into the time range they cover.
func (tl Timeline) CellRange(fromHour, fromCell, toHour, toCell int) (time.Time, time.Time) {
	a := fromHour*CellsPerHour + fromCell
	b := toHour*CellsPerHour + toCell
	if b < a {
		a, b = b, a
	}
	start := tl.Day.Add(time.Duration(a) * CellSpan)
	end := tl.Day.Add(time.Duration(b+1) * CellSpan)
	return start, end
}

func minTime(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}

func maxTime(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}
