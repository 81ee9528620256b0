package internal

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"tabtime/internal/dashboard"
	"tabtime/internal/sampler"
	"tabtime/internal/settings"
	"tabtime/internal/storage"
	"tabtime/internal/task"
	"tabtime/internal/tracker"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
)

var start = time.Date(2026, 3, 2, 9, 0, 0, 0, time.Local)

type harness struct {
	m       *Model
	dash    *dashboard.Dashboard
	sampler *sampler.Static
	now     time.Time
}

func newHarness(t *testing.T, tasks ...string) *harness {
	t.Helper()

	dir := t.TempDir()
	store := storage.NewJSONStore(dir, zerolog.Nop())
	var ts []task.Task
	for _, name := range tasks {
		ts = append(ts, task.Task{Name: name})
	}
	if err := store.SaveTasks(context.Background(), ts); err != nil {
		t.Fatal(err)
	}

	cfgPath := filepath.Join(dir, storage.SettingsFile)
	cfg := settings.Default()
	cfg.WorkProcesses = []string{"code"}
	cfg.DistractionProcesses = []string{"steam"}
	cfg.FocusModeEnabled = true
	if err := settings.Save(cfgPath, cfg); err != nil {
		t.Fatal(err)
	}
	mgr := settings.NewManager(settings.NewFileStore(cfgPath, zerolog.Nop()), zerolog.Nop())

	h := &harness{sampler: &sampler.Static{}, now: start}
	clock := func() time.Time { return h.now }
	h.dash = dashboard.New(store, mgr, h.sampler, zerolog.Nop(), dashboard.WithClock(clock))
	h.dash.Load(context.Background())
	h.m = NewModel(h.dash, clock)
	t.Cleanup(func() { h.m.Close() })
	return h
}

func (h *harness) key(s string) tea.Cmd {
	var msg tea.KeyMsg
	switch s {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		msg = tea.KeyMsg{Type: tea.KeyTab}
	case "down":
		msg = tea.KeyMsg{Type: tea.KeyDown}
	case " ":
		msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
	_, cmd := h.m.Update(msg)
	return cmd
}

func (h *harness) typeText(s string) {
	for _, r := range s {
		h.key(string(r))
	}
}

func (h *harness) tick(process string, n int) {
	h.sampler.Process = process
	for i := 0; i < n; i++ {
		h.m.Update(MsgTick{Time: h.now})
		h.now = h.now.Add(time.Second)
	}
}

func TestAddTaskThroughForm(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	if !strings.Contains(h.m.View(), "No tasks yet") {
		t.Error("Expected empty state view")
	}

	h.key("n")
	if h.m.Form != formAddTask {
		t.Fatalf("Expected add task form, got %v", h.m.Form)
	}
	h.typeText("Math")
	h.key("tab")
	h.typeText("#ff0000")
	h.key("enter")

	if h.m.Form != formNone {
		t.Fatalf("Expected form closed, err %v", h.m.Err)
	}
	if names := h.dash.TaskNames(); len(names) != 1 || names[0] != "Math" {
		t.Errorf("Expected [Math], got %v", names)
	}
	if h.dash.TaskColor("Math") != "#ff0000" {
		t.Errorf("Expected color saved, got %q", h.dash.TaskColor("Math"))
	}
}

func TestFormKeepsOpenOnError(t *testing.T) {
	t.Parallel()

	h := newHarness(t, "Math")
	h.key("n")
	h.typeText("Math")
	h.key("enter")
	h.key("enter")

	if h.m.Form != formAddTask || h.m.Err == nil {
		t.Errorf("Expected form to stay open with an error, got form %v err %v", h.m.Form, h.m.Err)
	}
	h.key("esc")
	if h.m.Form != formNone {
		t.Error("Expected esc to close the form")
	}
}

func TestQuitKeyIgnoredInsideForm(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.key("n")
	h.key("q")
	if h.m.Form != formAddTask {
		t.Fatal("Expected form to stay open")
	}
	if h.m.Inputs[0].Value() != "q" {
		t.Errorf("Expected q typed, got %q", h.m.Inputs[0].Value())
	}
}

func TestTickUpdatesStatusAndView(t *testing.T) {
	t.Parallel()

	h := newHarness(t, "Math", "Art")
	h.tick("code", 6)

	if h.m.Status.State != tracker.Running || h.m.Status.Task != "Math" {
		t.Fatalf("Expected running on Math, got %+v", h.m.Status)
	}
	view := h.m.View()
	if !strings.Contains(view, "Tracking Math") {
		t.Errorf("Expected tracking status in view:\n%s", view)
	}

	h.key("down")
	h.key("enter")
	if h.m.Status.Selected != "Art" || h.m.Status.Task != "Art" {
		t.Errorf("Expected Art selected and running, got %+v", h.m.Status)
	}
	if len(h.dash.Entries()) != 1 {
		t.Errorf("Expected Math session logged, got %v", h.dash.Entries())
	}
}

func TestNagShownForDistraction(t *testing.T) {
	t.Parallel()

	h := newHarness(t, "Math")
	h.tick("steam", 1)
	if h.m.Nag == "" {
		t.Fatal("Expected nag while distracted")
	}
	if !strings.Contains(h.m.View(), h.m.Nag) {
		t.Error("Expected nag in view")
	}

	h.tick("code", 1)
	if h.m.Nag != "" {
		t.Error("Expected nag cleared once back at work")
	}
}

func TestManualEntryAndBulkReassign(t *testing.T) {
	t.Parallel()

	h := newHarness(t, "Math", "Art")

	for _, span := range [][2]string{{"08:00", "08:30"}, {"10:00", "10:45"}, {"13:00", "14:00"}} {
		h.key("a")
		if h.m.Form != formAddEntry {
			t.Fatal("Expected add entry form")
		}
		h.key("tab")
		h.key("tab")
		h.typeText(span[0])
		h.key("tab")
		h.typeText(span[1])
		h.key("enter")
		if h.m.Err != nil {
			t.Fatalf("Unexpected error: %v", h.m.Err)
		}
	}
	if got := h.dash.Totals(start, start).ByTask["Math"]; got != 135*time.Minute {
		t.Fatalf("Expected 2h15m on Math, got %v", got)
	}

	h.key("l")
	if !h.m.ShowLogView || len(h.m.LogEntries()) != 3 {
		t.Fatalf("Expected log view with 3 entries, got %d", len(h.m.LogEntries()))
	}
	if !strings.Contains(h.m.View(), "ended") {
		t.Error("Expected relative end times in log view")
	}

	h.key("s")
	h.typeText("09:00")
	h.key("tab")
	h.typeText("13:30")
	h.key("enter")
	if len(h.m.Marked) != 2 {
		t.Fatalf("Expected 2 marked, got %d", len(h.m.Marked))
	}

	h.key("r")
	if h.m.Form != formReassign {
		t.Fatal("Expected reassign form")
	}
	h.m.Inputs[0].SetValue("Art")
	h.key("enter")
	if h.m.Err != nil {
		t.Fatalf("Unexpected error: %v", h.m.Err)
	}

	totals := h.dash.Totals(start, start)
	if totals.ByTask["Art"] != 105*time.Minute || totals.ByTask["Math"] != 30*time.Minute {
		t.Errorf("Unexpected totals after reassign: %v", totals.ByTask)
	}
	if len(h.m.Marked) != 0 {
		t.Error("Expected marks cleared after reassign")
	}

	h.key("d")
	if len(h.m.LogEntries()) != 2 {
		t.Errorf("Expected cursor entry deleted, got %d left", len(h.m.LogEntries()))
	}
}

func TestNotesView(t *testing.T) {
	t.Parallel()

	h := newHarness(t, "Math")
	h.key("m")
	h.key("n")
	h.typeText("read chapter 4")
	h.key("enter")

	todos := h.dash.Todos()
	if len(todos) != 1 || todos[0].Text != "read chapter 4" {
		t.Fatalf("Expected todo added, got %v", todos)
	}
	h.key(" ")
	if !h.dash.Todos()[0].Done {
		t.Error("Expected todo toggled")
	}

	h.key("N")
	h.m.Inputs[0].SetValue("exam friday")
	h.key("enter")
	h.key("p")
	if memo, ok := h.dash.PinnedMemo(); !ok || memo.Content != "exam friday" {
		t.Errorf("Expected pinned memo, got %v", memo)
	}

	h.key("esc")
	if !strings.Contains(h.m.View(), "exam friday") {
		t.Error("Expected pinned memo on main view")
	}
}

func TestDayNavigation(t *testing.T) {
	t.Parallel()

	h := newHarness(t, "Math")
	h.key("[")
	if h.m.Day.Day() != 1 {
		t.Errorf("Expected previous day, got %v", h.m.Day)
	}
	h.key("t")
	if h.m.Day.Day() != 2 {
		t.Errorf("Expected today, got %v", h.m.Day)
	}
}

func TestFocusModeToggle(t *testing.T) {
	t.Parallel()

	h := newHarness(t, "Math")
	h.key("f")
	if h.dash.Settings().FocusModeEnabled {
		t.Error("Expected focus mode toggled off")
	}
}
