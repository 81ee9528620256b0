package dashboard

import (
	"fmt"

	"tabtime/internal/task"
)

// SelectTask makes name the user's task. "" clears the selection. A running
// session for another task is closed and logged.
func (d *Dashboard) SelectTask(name string) error {
	if name != "" && !d.tasks.Has(name) {
		return fmt.Errorf("failed to select task: %w: %s", task.ErrNotFound, name)
	}
	d.record(d.tracker.Select(name, d.now()))
	return nil
}

func (d *Dashboard) AddTask(name string) error {
	if err := d.tasks.Add(name); err != nil {
		return wrap("add task", err)
	}
	d.saveTasks()
	return nil
}

// RemoveTask drops a task. Logged entries keep its name. If it was selected
// the selection falls back to the first remaining task.
func (d *Dashboard) RemoveTask(name string) error {
	if err := d.tasks.Remove(name); err != nil {
		return wrap("remove task", err)
	}
	sel := d.tracker.Selected()
	if sel == name {
		sel = ""
	}
	if sel != d.tracker.Selected() || d.tracker.Task() == name {
		d.record(d.tracker.Select(sel, d.now()))
	}
	d.saveTasks()
	return nil
}

// RenameTask renames a task in the list only; past entries are not
// rewritten, so they no longer count toward the renamed task.
func (d *Dashboard) RenameTask(old, name string) error {
	if err := d.tasks.Rename(old, name); err != nil {
		return wrap("rename task", err)
	}
	sel := d.tracker.Selected()
	if sel == old {
		sel = name
	}
	if sel != d.tracker.Selected() || d.tracker.Task() == old {
		d.record(d.tracker.Select(sel, d.now()))
	}
	d.saveTasks()
	return nil
}

func (d *Dashboard) SetTaskColor(name, color string) error {
	if err := d.tasks.SetColor(name, color); err != nil {
		return wrap("set task color", err)
	}
	d.saveTasks()
	return nil
}

// TaskColor returns the configured color or "".
func (d *Dashboard) TaskColor(name string) string {
	t, _ := d.tasks.Get(name)
	return t.Color
}
