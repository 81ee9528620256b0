package dashboard

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"tabtime/internal/sampler"
	"tabtime/internal/settings"
	"tabtime/internal/storage"
	"tabtime/internal/task"
	"tabtime/internal/timelog"
	"tabtime/internal/tracker"
)

var t0 = time.Date(2026, 3, 2, 9, 0, 0, 0, time.Local)

type fixture struct {
	d       *Dashboard
	store   storage.Store
	mgr     *settings.Manager
	sampler *sampler.Static
	now     time.Time
	dir     string
}

func newFixture(t *testing.T, tasks ...string) *fixture {
	t.Helper()

	dir := t.TempDir()
	store := storage.NewJSONStore(dir, zerolog.Nop())
	if len(tasks) > 0 {
		var ts []task.Task
		for _, name := range tasks {
			ts = append(ts, task.Task{Name: name})
		}
		if err := store.SaveTasks(context.Background(), ts); err != nil {
			t.Fatalf("SaveTasks failed: %v", err)
		}
	}

	settingsPath := filepath.Join(dir, storage.SettingsFile)
	cfg := settings.Default()
	cfg.WorkProcesses = []string{"code"}
	if err := settings.Save(settingsPath, cfg); err != nil {
		t.Fatalf("Save settings failed: %v", err)
	}
	mgr := settings.NewManager(settings.NewFileStore(settingsPath, zerolog.Nop()), zerolog.Nop())

	f := &fixture{store: store, mgr: mgr, sampler: &sampler.Static{}, now: t0, dir: dir}
	f.d = New(store, mgr, f.sampler, zerolog.Nop(), WithClock(func() time.Time { return f.now }))
	f.d.Load(context.Background())
	t.Cleanup(func() { f.d.Shutdown() })
	return f
}

// run ticks once per second for n seconds with the given process in front.
func (f *fixture) run(process string, n int) []tracker.Result {
	f.sampler.Process = process
	var out []tracker.Result
	for i := 0; i < n; i++ {
		out = append(out, f.d.Tick(f.now))
		f.now = f.now.Add(time.Second)
	}
	return out
}

func TestTickRecordsFinalizedSession(t *testing.T) {
	t.Parallel()

	f := newFixture(t, "Math")
	f.run("code", 30)
	f.run("slack", 130)

	entries := f.d.Entries()
	if len(entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(entries))
	}
	if entries[0].Task != "Math" || entries[0].Duration() != 30*time.Second {
		t.Errorf("Unexpected entry %v (%v)", entries[0], entries[0].Duration())
	}

	f.d.Flush()
	if got := f.store.LoadTimeLogs(context.Background()); len(got) != 1 {
		t.Errorf("Expected entry persisted, got %d", len(got))
	}
}

func TestLiveTotalsIncludeOpenSession(t *testing.T) {
	t.Parallel()

	f := newFixture(t, "Math", "Art")
	if _, err := f.d.AddManualEntry("Art", t0.Add(-2*time.Hour), t0.Add(-time.Hour)); err != nil {
		t.Fatalf("AddManualEntry failed: %v", err)
	}
	f.run("code", 10)

	totals := f.d.Totals(f.now, f.now)
	if totals.ByTask["Math"] != 10*time.Second {
		t.Errorf("Expected 10s live for Math, got %v", totals.ByTask["Math"])
	}
	if totals.Total != time.Hour+10*time.Second {
		t.Errorf("Expected 1h10s total, got %v", totals.Total)
	}

	var math task.Task
	for _, tk := range f.d.Tasks(f.now) {
		if tk.Name == "Math" {
			math = tk
		}
	}
	if math.TotalFormatted() != "00:00:10" {
		t.Errorf("Expected Math 00:00:10, got %s", math.TotalFormatted())
	}

	if len(f.d.Entries()) != 1 {
		t.Error("Expected live time not to be persisted")
	}

	past := f.d.Totals(t0.AddDate(0, 0, -1), f.now)
	if past.Total != 0 {
		t.Errorf("Expected nothing yesterday, got %v", past.Total)
	}
}

func TestDailyTotalEqualsSumOfEntries(t *testing.T) {
	t.Parallel()

	f := newFixture(t, "A", "B")
	f.now = t0.Add(12 * time.Hour)
	spans := []struct {
		task     string
		from, to time.Duration
	}{
		{"A", 0, 45 * time.Minute},
		{"B", time.Hour, 90 * time.Minute},
		{"A", 2 * time.Hour, 2*time.Hour + 5*time.Minute},
	}
	var want time.Duration
	for _, s := range spans {
		e, err := f.d.AddManualEntry(s.task, t0.Add(s.from), t0.Add(s.to))
		if err != nil {
			t.Fatalf("AddManualEntry failed: %v", err)
		}
		want += e.Duration()
	}
	if _, err := f.d.AddManualEntry("A", t0.AddDate(0, 0, -1), t0.AddDate(0, 0, -1).Add(time.Hour)); err != nil {
		t.Fatal(err)
	}

	if got := f.d.Totals(t0, f.now).Total; got != want {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestSelectTaskSplitsRunningSession(t *testing.T) {
	t.Parallel()

	f := newFixture(t, "A", "B")
	f.run("code", 20)

	if err := f.d.SelectTask("missing"); !errors.Is(err, task.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
	if err := f.d.SelectTask("B"); err != nil {
		t.Fatalf("SelectTask failed: %v", err)
	}

	entries := f.d.Entries()
	if len(entries) != 1 || entries[0].Task != "A" {
		t.Fatalf("Expected A entry, got %v", entries)
	}
	if st := f.d.Status(f.now); st.Task != "B" || st.State != tracker.Running {
		t.Errorf("Expected running on B, got %+v", st)
	}
}

func TestShutdownFinalizesAndPersistsSelection(t *testing.T) {
	t.Parallel()

	f := newFixture(t, "A", "B")
	if err := f.d.SelectTask("B"); err != nil {
		t.Fatal(err)
	}
	f.run("code", 5)

	if err := f.d.Shutdown(); err != nil {
		t.Fatalf("Shutdown failed: %v", err)
	}
	if err := f.d.Shutdown(); err != nil {
		t.Fatalf("Second Shutdown failed: %v", err)
	}

	logs := f.store.LoadTimeLogs(context.Background())
	if len(logs) != 1 || logs[0].Task != "B" {
		t.Fatalf("Expected B entry persisted on shutdown, got %v", logs)
	}

	reloaded := settings.Load(filepath.Join(f.dir, storage.SettingsFile), zerolog.Nop())
	if reloaded.CurrentTask != "B" {
		t.Errorf("Expected current task B saved, got %q", reloaded.CurrentTask)
	}
}

func TestSelectionRestoredFromSettings(t *testing.T) {
	t.Parallel()

	f := newFixture(t, "A", "B")
	if err := f.mgr.Update(func(s *settings.Settings) { s.CurrentTask = "B" }); err != nil {
		t.Fatal(err)
	}

	d := New(f.store, f.mgr, f.sampler, zerolog.Nop())
	d.Load(context.Background())
	defer d.Shutdown()

	if d.Status(t0).Selected != "B" {
		t.Errorf("Expected B selected, got %q", d.Status(t0).Selected)
	}
}

func TestSettingsChangesReachTracker(t *testing.T) {
	t.Parallel()

	f := newFixture(t, "A")
	f.run("vim", 3)
	if f.d.Status(f.now).State != tracker.Idle {
		t.Fatal("Expected vim not to count as work yet")
	}

	if err := f.d.UpdateSettings(func(s *settings.Settings) {
		s.WorkProcesses = append(s.WorkProcesses, "vim")
	}); err != nil {
		t.Fatal(err)
	}
	f.run("vim", 1)
	if f.d.Status(f.now).State != tracker.Running {
		t.Error("Expected vim to count as work after settings change")
	}
}

func TestManualEntryLifecycle(t *testing.T) {
	t.Parallel()

	f := newFixture(t, "A", "B")

	if _, err := f.d.AddManualEntry("Z", t0, t0.Add(time.Hour)); !errors.Is(err, task.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}

	e, err := f.d.AddManualEntry("A", t0, t0.Add(-time.Hour))
	if err != nil {
		t.Fatalf("AddManualEntry failed: %v", err)
	}
	if e.Duration() != time.Hour {
		t.Errorf("Expected corrected 1h entry, got %v", e.Duration())
	}

	edited, err := f.d.EditEntry(e.ID, "B", t0, t0.Add(30*time.Minute))
	if err != nil {
		t.Fatalf("EditEntry failed: %v", err)
	}
	if edited.Task != "B" || edited.Duration() != 30*time.Minute {
		t.Errorf("Unexpected edit result %v", edited)
	}
	if _, err := f.d.EditEntry("missing", "B", t0, t0); !errors.Is(err, timelog.ErrEntryNotFound) {
		t.Errorf("Expected ErrEntryNotFound, got %v", err)
	}

	if err := f.d.DeleteEntry(e.ID); err != nil {
		t.Fatalf("DeleteEntry failed: %v", err)
	}
	if err := f.d.DeleteEntry(e.ID); !errors.Is(err, timelog.ErrEntryNotFound) {
		t.Errorf("Expected ErrEntryNotFound, got %v", err)
	}
}

func TestBulkEditOverRange(t *testing.T) {
	t.Parallel()

	f := newFixture(t, "A", "B")
	for h := 0; h < 4; h++ {
		start := t0.Add(time.Duration(h) * time.Hour)
		if _, err := f.d.AddManualEntry("A", start, start.Add(30*time.Minute)); err != nil {
			t.Fatal(err)
		}
	}

	// 12:15 back to 10:45 catches the 11:00 and 12:00 blocks
	sel := f.d.SelectRange(t0.Add(195*time.Minute), t0.Add(105*time.Minute))
	if len(sel) != 2 {
		t.Fatalf("Expected 2 selected, got %d", len(sel))
	}

	n, err := f.d.BulkReassign(IDs(sel), "B")
	if err != nil || n != 2 {
		t.Fatalf("Expected 2 reassigned, got %d (%v)", n, err)
	}
	if got := f.d.Totals(t0, t0).ByTask["B"]; got != time.Hour {
		t.Errorf("Expected 1h on B, got %v", got)
	}

	if _, err := f.d.BulkReassign(nil, "B"); !errors.Is(err, ErrEmptySelection) {
		t.Errorf("Expected ErrEmptySelection, got %v", err)
	}
	if _, err := f.d.BulkReassign(IDs(sel), "Z"); !errors.Is(err, task.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}

	n, err = f.d.BulkDelete(IDs(sel))
	if err != nil || n != 2 {
		t.Fatalf("Expected 2 deleted, got %d (%v)", n, err)
	}
	f.d.Flush()
	if got := f.store.LoadTimeLogs(context.Background()); len(got) != 2 {
		t.Errorf("Expected 2 entries persisted after bulk delete, got %d", len(got))
	}
}

func TestTaskManagement(t *testing.T) {
	t.Parallel()

	f := newFixture(t, "A")
	if err := f.d.AddTask("B"); err != nil {
		t.Fatalf("AddTask failed: %v", err)
	}
	if err := f.d.AddTask("B"); !errors.Is(err, task.ErrDuplicateName) {
		t.Errorf("Expected ErrDuplicateName, got %v", err)
	}
	if err := f.d.SetTaskColor("B", "#00ff00"); err != nil {
		t.Fatal(err)
	}
	if f.d.TaskColor("B") != "#00ff00" {
		t.Error("Expected color set")
	}

	if err := f.d.SelectTask("B"); err != nil {
		t.Fatal(err)
	}
	if err := f.d.RenameTask("B", "C"); err != nil {
		t.Fatalf("RenameTask failed: %v", err)
	}
	if f.d.Status(f.now).Selected != "C" {
		t.Errorf("Expected selection to follow rename, got %q", f.d.Status(f.now).Selected)
	}

	if err := f.d.RemoveTask("C"); err != nil {
		t.Fatalf("RemoveTask failed: %v", err)
	}
	if f.d.Status(f.now).Selected != "" {
		t.Errorf("Expected selection cleared, got %q", f.d.Status(f.now).Selected)
	}

	f.d.Flush()
	got := f.store.LoadTasks(context.Background())
	if len(got) != 1 || got[0].Name != "A" {
		t.Errorf("Expected only A persisted, got %v", got)
	}
}

func TestRemoveRunningTaskClosesSession(t *testing.T) {
	t.Parallel()

	f := newFixture(t, "A", "B")
	f.run("code", 10)
	if err := f.d.RemoveTask("A"); err != nil {
		t.Fatal(err)
	}

	entries := f.d.Entries()
	if len(entries) != 1 || entries[0].Task != "A" {
		t.Fatalf("Expected A session logged, got %v", entries)
	}
	if st := f.d.Status(f.now); st.Task != "B" {
		t.Errorf("Expected session to move to B, got %+v", st)
	}
}

func TestNotes(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	it, err := f.d.AddTodo("review notes")
	if err != nil {
		t.Fatal(err)
	}
	if err := f.d.ToggleTodo(it.ID); err != nil {
		t.Fatal(err)
	}
	if n := f.d.ClearDoneTodos(); n != 1 {
		t.Errorf("Expected 1 cleared, got %d", n)
	}
	if _, err := f.d.AddTodo(""); err == nil {
		t.Error("Expected error for blank todo")
	}

	m := f.d.NewMemo()
	if err := f.d.SetMemoContent(m.ID, "quiz on monday"); err != nil {
		t.Fatal(err)
	}
	if err := f.d.PinMemo(m.ID, true); err != nil {
		t.Fatal(err)
	}
	if p, ok := f.d.PinnedMemo(); !ok || p.Content != "quiz on monday" {
		t.Errorf("Expected pinned memo, got %v", p)
	}

	f.d.Flush()
	if got := f.store.LoadMemos(context.Background()); len(got) != 1 || !got[0].Pinned {
		t.Errorf("Expected pinned memo persisted, got %v", got)
	}
	if got := f.store.LoadTodos(context.Background()); len(got) != 0 {
		t.Errorf("Expected todos cleared on disk, got %v", got)
	}
}
