package todo

import (
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrBlankText = errors.New("todo text is blank")
	ErrNotFound  = errors.New("todo not found")
)

type Item struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Done      bool      `json:"is_done"`
	CreatedAt time.Time `json:"created_at"`
}

type List struct {
	items []Item
}

func NewList(items []Item) *List {
	return &List{items: slices.Clone(items)}
}

func (l *List) Items() []Item {
	return slices.Clone(l.items)
}

func (l *List) Add(text string, now time.Time) (Item, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Item{}, ErrBlankText
	}
	it := Item{ID: uuid.NewString(), Text: text, CreatedAt: now}
	l.items = append(l.items, it)
	return it, nil
}

// Toggle flips the done flag and returns the new value.
func (l *List) Toggle(id string) (bool, error) {
	i := l.index(id)
	if i < 0 {
		return false, ErrNotFound
	}
	l.items[i].Done = !l.items[i].Done
	return l.items[i].Done, nil
}

func (l *List) Remove(id string) error {
	i := l.index(id)
	if i < 0 {
		return ErrNotFound
	}
	l.items = slices.Delete(l.items, i, i+1)
	return nil
}

// ClearDone drops finished items and returns how many were removed.
func (l *List) ClearDone() int {
	before := len(l.items)
	l.items = slices.DeleteFunc(l.items, func(it Item) bool { return it.Done })
	return before - len(l.items)
}

// Pending counts unfinished items.
func (l *List) Pending() int {
	n := 0
	for _, it := range l.items {
		if !it.Done {
			n++
		}
	}
	return n
}

func (l *List) index(id string) int {
	return slices.IndexFunc(l.items, func(it Item) bool { return it.ID == id })
}
