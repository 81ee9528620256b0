package memo

import (
	"errors"
	"slices"
	"time"

	"github.com/google/uuid"
)

// DefaultContent seeds a freshly created memo.
const DefaultContent = "New memo"

var ErrNotFound = errors.New("memo not found")

type Memo struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	Pinned    bool      `json:"is_pinned"`
	CreatedAt time.Time `json:"created_at"`
}

// Board holds memos newest first. At most one memo is pinned.
type Board struct {
	memos []Memo
}

func NewBoard(memos []Memo) *Board {
	b := &Board{memos: slices.Clone(memos)}
	// keep only the first pin
	pinned := false
	for i := range b.memos {
		if b.memos[i].Pinned {
			b.memos[i].Pinned = !pinned
			pinned = true
		}
	}
	return b
}

func (b *Board) Memos() []Memo {
	return slices.Clone(b.memos)
}

// New inserts a memo at the head and returns it.
func (b *Board) New(now time.Time) Memo {
	m := Memo{
		ID:        uuid.NewString(),
		Content:   DefaultContent,
		CreatedAt: now,
	}
	b.memos = slices.Insert(b.memos, 0, m)
	return m
}

func (b *Board) SetContent(id, content string) error {
	i := b.index(id)
	if i < 0 {
		return ErrNotFound
	}
	b.memos[i].Content = content
	return nil
}

// Pin marks id as the pinned memo and unpins every other one. Passing
// pinned=false just clears the pin on id.
func (b *Board) Pin(id string, pinned bool) error {
	i := b.index(id)
	if i < 0 {
		return ErrNotFound
	}
	for j := range b.memos {
		b.memos[j].Pinned = false
	}
	b.memos[i].Pinned = pinned
	return nil
}

func (b *Board) Pinned() (Memo, bool) {
	for _, m := range b.memos {
		if m.Pinned {
			return m, true
		}
	}
	return Memo{}, false
}

func (b *Board) Delete(id string) error {
	i := b.index(id)
	if i < 0 {
		return ErrNotFound
	}
	b.memos = slices.Delete(b.memos, i, i+1)
	return nil
}

func (b *Board) index(id string) int {
	return slices.IndexFunc(b.memos, func(m Memo) bool { return m.ID == id })
}
