package timelog

import (
	"errors"
	"slices"
	"time"
)

var ErrEntryNotFound = errors.New("time log entry not found")

type ChangeKind int

const (
	Loaded ChangeKind = iota
	Inserted
	Updated
	Deleted
	Reassigned
)

func (k ChangeKind) String() string {
	switch k {
	case Loaded:
		return "loaded"
	case Inserted:
		return "inserted"
	case Updated:
		return "updated"
	case Deleted:
		return "deleted"
	case Reassigned:
		return "reassigned"
	}
	return "unknown"
}

// Change describes one mutation of a Log.
type Change struct {
	Kind ChangeKind
	IDs  []string
}

// Log is the ordered collection of finalized entries. Newest machine entries
// sit at the head. Every mutation notifies subscribers.
type Log struct {
	entries []Entry
	subs    []func(Change)
}

func NewLog(entries []Entry) *Log {
	return &Log{entries: slices.Clone(entries)}
}

// Subscribe registers fn for change notifications.
func (l *Log) Subscribe(fn func(Change)) {
	l.subs = append(l.subs, fn)
}

func (l *Log) notify(c Change) {
	for _, fn := range l.subs {
		fn(c)
	}
}

func (l *Log) Len() int {
	return len(l.entries)
}

// Entries returns a copy of the log in order.
func (l *Log) Entries() []Entry {
	return slices.Clone(l.entries)
}

// Replace swaps the whole content, as after a reload.
func (l *Log) Replace(entries []Entry) {
	l.entries = slices.Clone(entries)
	l.notify(Change{Kind: Loaded})
}

// Prepend inserts a machine-generated entry at the head.
func (l *Log) Prepend(e Entry) {
	l.entries = slices.Insert(l.entries, 0, e)
	l.notify(Change{Kind: Inserted, IDs: []string{e.ID}})
}

// Add appends a manually created entry.
func (l *Log) Add(e Entry) {
	l.entries = append(l.entries, e)
	l.notify(Change{Kind: Inserted, IDs: []string{e.ID}})
}

func (l *Log) Get(id string) (Entry, bool) {
	i := l.index(id)
	if i < 0 {
		return Entry{}, false
	}
	return l.entries[i], true
}

// Update replaces the entry carrying e.ID.
func (l *Log) Update(e Entry) error {
	i := l.index(e.ID)
	if i < 0 {
		return ErrEntryNotFound
	}
	l.entries[i] = e
	l.notify(Change{Kind: Updated, IDs: []string{e.ID}})
	return nil
}

// Delete removes the given ids and returns how many were present.
func (l *Log) Delete(ids ...string) int {
	set := idSet(ids)
	var removed []string
	l.entries = slices.DeleteFunc(l.entries, func(e Entry) bool {
		if _, ok := set[e.ID]; ok {
			removed = append(removed, e.ID)
			return true
		}
		return false
	})
	if len(removed) > 0 {
		l.notify(Change{Kind: Deleted, IDs: removed})
	}
	return len(removed)
}

// Reassign moves the given entries to task and returns how many changed.
func (l *Log) Reassign(task string, ids ...string) int {
	set := idSet(ids)
	var changed []string
	for i := range l.entries {
		if _, ok := set[l.entries[i].ID]; ok {
			l.entries[i].Task = task
			changed = append(changed, l.entries[i].ID)
		}
	}
	if len(changed) > 0 {
		l.notify(Change{Kind: Reassigned, IDs: changed})
	}
	return len(changed)
}

// OnDate returns entries starting on day's local calendar date.
func (l *Log) OnDate(day time.Time) []Entry {
	var out []Entry
	for _, e := range l.entries {
		if SameDay(e.Start, day) {
			out = append(out, e)
		}
	}
	return out
}

// Overlapping returns entries intersecting [from, to), in log order.
func (l *Log) Overlapping(from, to time.Time) []Entry {
	var out []Entry
	for _, e := range l.entries {
		if e.Overlaps(from, to) {
			out = append(out, e)
		}
	}
	return out
}

func (l *Log) index(id string) int {
	return slices.IndexFunc(l.entries, func(e Entry) bool { return e.ID == id })
}

func idSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
