package dashboard

import (
	"errors"
	"fmt"
	"time"

	"tabtime/internal/task"
	"tabtime/internal/timelog"
)

var ErrEmptySelection = errors.New("no entries selected")

// AddManualEntry appends a user-entered interval. An end not after start is
// corrected to start plus one hour.
func (d *Dashboard) AddManualEntry(taskName string, start, end time.Time) (timelog.Entry, error) {
	if !d.tasks.Has(taskName) {
		return timelog.Entry{}, fmt.Errorf("failed to add entry: %w: %s", task.ErrNotFound, taskName)
	}
	e := timelog.NewManualEntry(taskName, start, end)
	d.log.Add(e)
	return e, nil
}

// EditEntry rewrites an entry's task and interval, applying the same
// correction as AddManualEntry.
func (d *Dashboard) EditEntry(id, taskName string, start, end time.Time) (timelog.Entry, error) {
	e, ok := d.log.Get(id)
	if !ok {
		return timelog.Entry{}, fmt.Errorf("failed to edit entry: %w", timelog.ErrEntryNotFound)
	}
	if !d.tasks.Has(taskName) {
		return timelog.Entry{}, fmt.Errorf("failed to edit entry: %w: %s", task.ErrNotFound, taskName)
	}
	e.Task = taskName
	e.Start = start
	e.End = end
	e.Normalize()
	if err := d.log.Update(e); err != nil {
		return timelog.Entry{}, wrap("edit entry", err)
	}
	return e, nil
}

func (d *Dashboard) DeleteEntry(id string) error {
	if d.log.Delete(id) == 0 {
		return fmt.Errorf("failed to delete entry: %w", timelog.ErrEntryNotFound)
	}
	return nil
}

// SelectRange returns the entries intersecting [from, to). It stands in for
// drag-selecting blocks on the timeline.
func (d *Dashboard) SelectRange(from, to time.Time) []timelog.Entry {
	if to.Before(from) {
		from, to = to, from
	}
	return d.log.Overlapping(from, to)
}

// BulkReassign moves the given entries to taskName in one mutation.
func (d *Dashboard) BulkReassign(ids []string, taskName string) (int, error) {
	if len(ids) == 0 {
		return 0, ErrEmptySelection
	}
	if !d.tasks.Has(taskName) {
		return 0, fmt.Errorf("failed to reassign entries: %w: %s", task.ErrNotFound, taskName)
	}
	return d.log.Reassign(taskName, ids...), nil
}

// BulkDelete removes the given entries in one mutation.
func (d *Dashboard) BulkDelete(ids []string) (int, error) {
	if len(ids) == 0 {
		return 0, ErrEmptySelection
	}
	return d.log.Delete(ids...), nil
}

// IDs extracts entry ids, for feeding a selection into the bulk operations.
func IDs(entries []timelog.Entry) []string {
	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.ID
	}
	return ids
}
