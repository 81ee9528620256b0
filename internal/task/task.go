package task

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"
)

var (
	ErrBlankName     = errors.New("task name is blank")
	ErrDuplicateName = errors.New("task already exists")
	ErrNotFound      = errors.New("task not found")
)

// Task is a user-defined bucket that time is attributed to. It is identified
// by Name only; Total is derived from the log and never persisted.
type Task struct {
	Name  string        `json:"text"`
	Color string        `json:"color,omitempty"`
	Total time.Duration `json:"-"`
}

func NewTask(name string) Task {
	return Task{Name: strings.TrimSpace(name)}
}

// TotalFormatted renders Total as HH:MM:SS.
func (t Task) TotalFormatted() string {
	total := int(t.Total.Seconds())
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total%3600)/60, total%60)
}

// List is the ordered, name-unique set of tasks.
type List struct {
	tasks []Task
}

func NewList(tasks []Task) *List {
	l := &List{}
	for _, t := range tasks {
		// Drop blanks and duplicates left behind by hand-edited files.
		_ = l.Add(t.Name)
		if t.Color != "" {
			_ = l.SetColor(t.Name, t.Color)
		}
	}
	return l
}

func (l *List) Len() int {
	return len(l.tasks)
}

func (l *List) Tasks() []Task {
	return slices.Clone(l.tasks)
}

func (l *List) Names() []string {
	names := make([]string, len(l.tasks))
	for i, t := range l.tasks {
		names[i] = t.Name
	}
	return names
}

// First returns the first task name, or "" for an empty list.
func (l *List) First() string {
	if len(l.tasks) == 0 {
		return ""
	}
	return l.tasks[0].Name
}

func (l *List) Has(name string) bool {
	return l.index(name) >= 0
}

func (l *List) Get(name string) (Task, bool) {
	i := l.index(name)
	if i < 0 {
		return Task{}, false
	}
	return l.tasks[i], true
}

func (l *List) Add(name string) error {
	t := NewTask(name)
	if t.Name == "" {
		return ErrBlankName
	}
	if l.Has(t.Name) {
		return fmt.Errorf("%w: %s", ErrDuplicateName, t.Name)
	}
	l.tasks = append(l.tasks, t)
	return nil
}

func (l *List) Remove(name string) error {
	i := l.index(name)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	l.tasks = slices.Delete(l.tasks, i, i+1)
	return nil
}

// Rename changes a task's name in the list. Log entries keep the old name.
func (l *List) Rename(old, name string) error {
	i := l.index(old)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, old)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrBlankName
	}
	if name != old && l.Has(name) {
		return fmt.Errorf("%w: %s", ErrDuplicateName, name)
	}
	l.tasks[i].Name = name
	return nil
}

func (l *List) SetColor(name, color string) error {
	i := l.index(name)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	l.tasks[i].Color = color
	return nil
}

// ApplyTotals sets each task's Total from the given map; absent tasks get 0.
func (l *List) ApplyTotals(totals map[string]time.Duration) {
	for i := range l.tasks {
		l.tasks[i].Total = totals[l.tasks[i].Name]
	}
}

func (l *List) index(name string) int {
	return slices.IndexFunc(l.tasks, func(t Task) bool { return t.Name == name })
}
