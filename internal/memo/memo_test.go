package memo

import (
	"testing"
	"time"
)

func TestBoardSinglePin(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.Local)
	b := NewBoard(nil)
	first := b.New(now)
	second := b.New(now.Add(time.Minute))

	if got := b.Memos(); got[0].ID != second.ID {
		t.Errorf("Expected newest memo first, got %v", got)
	}

	if err := b.Pin(first.ID, true); err != nil {
		t.Fatalf("Pin failed: %v", err)
	}
	if err := b.Pin(second.ID, true); err != nil {
		t.Fatalf("Pin failed: %v", err)
	}

	p, ok := b.Pinned()
	if !ok || p.ID != second.ID {
		t.Errorf("Expected second memo pinned, got %v", p)
	}
	count := 0
	for _, m := range b.Memos() {
		if m.Pinned {
			count++
		}
	}
	if count != 1 {
		t.Errorf("Expected exactly one pinned memo, got %d", count)
	}
}

func TestNewBoardKeepsFirstPin(t *testing.T) {
	t.Parallel()

	b := NewBoard([]Memo{{ID: "a", Pinned: true}, {ID: "b", Pinned: true}})
	p, _ := b.Pinned()
	if p.ID != "a" {
		t.Errorf("Expected a pinned, got %q", p.ID)
	}
	if b.Memos()[1].Pinned {
		t.Error("Expected b unpinned")
	}
}

func TestBoardEditDelete(t *testing.T) {
	t.Parallel()

	b := NewBoard(nil)
	m := b.New(time.Now())
	if m.Content != DefaultContent {
		t.Errorf("Expected default content, got %q", m.Content)
	}
	if err := b.SetContent(m.ID, "buy milk"); err != nil {
		t.Fatalf("SetContent failed: %v", err)
	}
	if b.Memos()[0].Content != "buy milk" {
		t.Error("Expected content updated")
	}
	if err := b.Delete(m.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := b.Delete(m.ID); err != ErrNotFound {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}
