package internal

import (
	"slices"
	"strings"
	"time"

	"tabtime/internal/dashboard"
	"tabtime/internal/settings"
	"tabtime/internal/timelog"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// MsgTick drives the tracker. It is sent once per second from outside the
// program.
type MsgTick struct {
	Time time.Time
}

type formKind int

const (
	formNone formKind = iota
	formAddTask
	formEditTask
	formAddEntry
	formEditEntry
	formReassign
	formRange
	formTodo
	formMemo
)

type Model struct {
	dash *dashboard.Dashboard
	now  func() time.Time

	SelectedIndex int
	Day           time.Time
	Status        dashboard.Status
	LastTick      time.Time
	Nag           string
	Err           error
	Width         int

	// Form state, shared by every dialog
	Form         formKind
	Inputs       []textinput.Model
	Labels       []string
	InputFocus   int
	EditingTask  string
	EditingEntry string
	EditingMemo  string

	// Log viewer state
	ShowLogView bool
	LogCursor   int
	Marked      map[string]bool

	// Todo and memo viewer state
	ShowNotes   bool
	NotesCursor int
}

func NewModel(d *dashboard.Dashboard, now func() time.Time) *Model {
	if now == nil {
		now = time.Now
	}
	t := now()
	return &Model{
		dash:     d,
		now:      now,
		Day:      timelog.StartOfDay(t),
		Status:   d.Status(t),
		LastTick: t,
		Marked:   make(map[string]bool),
		Width:    80,
	}
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case MsgTick:
		m.tick(msg.Time)
		return m, nil
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.Width = msg.Width
		}
		return m, nil
	}
	return m, nil
}

func (m *Model) tick(now time.Time) {
	// follow midnight when the user is looking at today
	if timelog.SameDay(m.Day, m.LastTick) && !timelog.SameDay(m.LastTick, now) {
		m.Day = timelog.StartOfDay(now)
	}
	m.LastTick = now

	res := m.dash.Tick(now)
	m.Status = m.dash.Status(now)
	switch {
	case res.Nag != "":
		m.Nag = res.Nag
	case !res.Sample.Distraction:
		m.Nag = ""
	}
}

func (m *Model) View() string {
	if m.Form != formNone {
		return m.formView()
	}

	if m.ShowLogView {
		return m.logView()
	}

	if m.ShowNotes {
		return m.notesView()
	}

	if len(m.dash.TaskNames()) == 0 {
		return m.emptyStateView()
	}

	return m.mainView()
}

// SelectedTask is the task under the cursor, "" when the list is empty.
func (m *Model) SelectedTask() string {
	names := m.dash.TaskNames()
	if m.SelectedIndex >= 0 && m.SelectedIndex < len(names) {
		return names[m.SelectedIndex]
	}
	return ""
}

// Close ends the open session and flushes everything to disk.
func (m *Model) Close() error {
	return m.dash.Shutdown()
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.Form != formNone {
		return m.handleFormInput(msg)
	}

	if m.ShowLogView {
		return m.handleLogViewInput(msg)
	}

	if m.ShowNotes {
		return m.handleNotesInput(msg)
	}

	m.Err = nil
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "up", "k":
		if m.SelectedIndex > 0 {
			m.SelectedIndex--
		}
	case "down", "j":
		if m.SelectedIndex < len(m.dash.TaskNames())-1 {
			m.SelectedIndex++
		}
	case "enter":
		name := m.SelectedTask()
		if name == "" {
			break
		}
		if m.Status.Selected == name {
			name = ""
		}
		m.Err = m.dash.SelectTask(name)
		m.refresh()
	case "n":
		m.openForm(formAddTask, []string{"Task Name", "Color"}, []string{"", ""})
	case "e":
		if name := m.SelectedTask(); name != "" {
			m.EditingTask = name
			m.openForm(formEditTask, []string{"Task Name", "Color"}, []string{name, m.dash.TaskColor(name)})
		}
	case "d":
		if name := m.SelectedTask(); name != "" {
			m.Err = m.dash.RemoveTask(name)
			m.clampSelection()
			m.refresh()
		}
	case "a":
		m.EditingEntry = ""
		m.openForm(formAddEntry, entryLabels, []string{m.SelectedTask(), m.Day.Format(time.DateOnly), "", ""})
	case "l":
		m.ShowLogView = true
		m.LogCursor = 0
		clear(m.Marked)
	case "m":
		m.ShowNotes = true
		m.NotesCursor = 0
	case "[":
		m.Day = m.Day.AddDate(0, 0, -1)
	case "]":
		m.Day = m.Day.AddDate(0, 0, 1)
	case "t":
		m.Day = timelog.StartOfDay(m.now())
	case "f":
		m.Err = m.dash.UpdateSettings(func(s *settings.Settings) {
			s.FocusModeEnabled = !s.FocusModeEnabled
		})
	case "i":
		m.Err = m.dash.UpdateSettings(func(s *settings.Settings) {
			s.IdleDetectionEnabled = !s.IdleDetectionEnabled
		})
	}
	return m, nil
}

func (m *Model) refresh() {
	m.Status = m.dash.Status(m.now())
}

func (m *Model) clampSelection() {
	if n := len(m.dash.TaskNames()); m.SelectedIndex >= n {
		m.SelectedIndex = max(n-1, 0)
	}
}

// LogEntries are the entries of the viewed day, earliest first.
func (m *Model) LogEntries() []timelog.Entry {
	entries := m.dash.EntriesOn(m.Day)
	slices.SortStableFunc(entries, func(a, b timelog.Entry) int {
		return a.Start.Compare(b.Start)
	})
	return entries
}

// targetIDs is the marked entries, or the one under the cursor when nothing
// is marked.
func (m *Model) targetIDs() []string {
	entries := m.LogEntries()
	var ids []string
	for _, e := range entries {
		if m.Marked[e.ID] {
			ids = append(ids, e.ID)
		}
	}
	if len(ids) == 0 && m.LogCursor < len(entries) {
		ids = append(ids, entries[m.LogCursor].ID)
	}
	return ids
}

func (m *Model) handleLogViewInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.Err = nil
	entries := m.LogEntries()
	switch msg.String() {
	case "ctrl+c", "q", "esc", "l":
		m.ShowLogView = false
		clear(m.Marked)
	case "up", "k":
		if m.LogCursor > 0 {
			m.LogCursor--
		}
	case "down", "j":
		if m.LogCursor < len(entries)-1 {
			m.LogCursor++
		}
	case " ":
		if m.LogCursor < len(entries) {
			id := entries[m.LogCursor].ID
			if m.Marked[id] {
				delete(m.Marked, id)
			} else {
				m.Marked[id] = true
			}
		}
	case "s":
		m.openForm(formRange, []string{"From (HH:MM)", "To (HH:MM)"}, []string{"", ""})
	case "a":
		m.EditingEntry = ""
		m.openForm(formAddEntry, entryLabels, []string{m.SelectedTask(), m.Day.Format(time.DateOnly), "", ""})
	case "e":
		if m.LogCursor < len(entries) {
			e := entries[m.LogCursor]
			m.EditingEntry = e.ID
			m.openForm(formEditEntry, entryLabels, []string{
				e.Task,
				e.Start.Format(time.DateOnly),
				e.Start.Format("15:04"),
				e.End.Format("15:04"),
			})
		}
	case "r":
		if len(m.targetIDs()) > 0 {
			m.openForm(formReassign, []string{"Task"}, []string{m.SelectedTask()})
		}
	case "d", "x":
		if ids := m.targetIDs(); len(ids) > 0 {
			_, m.Err = m.dash.BulkDelete(ids)
			clear(m.Marked)
			m.LogCursor = max(min(m.LogCursor, len(m.LogEntries())-1), 0)
		}
	case "[":
		m.Day = m.Day.AddDate(0, 0, -1)
		m.LogCursor = 0
		clear(m.Marked)
	case "]":
		m.Day = m.Day.AddDate(0, 0, 1)
		m.LogCursor = 0
		clear(m.Marked)
	}
	return m, nil
}

func (m *Model) handleNotesInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.Err = nil
	todos := m.dash.Todos()
	memos := m.dash.Memos()
	total := len(todos) + len(memos)

	onTodo := m.NotesCursor < len(todos)
	onMemo := !onTodo && m.NotesCursor < total

	switch msg.String() {
	case "ctrl+c", "q", "esc", "m":
		m.ShowNotes = false
	case "up", "k":
		if m.NotesCursor > 0 {
			m.NotesCursor--
		}
	case "down", "j":
		if m.NotesCursor < total-1 {
			m.NotesCursor++
		}
	case "n":
		m.openForm(formTodo, []string{"Todo"}, []string{""})
	case "N":
		memo := m.dash.NewMemo()
		m.EditingMemo = memo.ID
		m.NotesCursor = len(todos)
		m.openForm(formMemo, []string{"Memo"}, []string{memo.Content})
	case " ", "enter":
		if onTodo {
			m.Err = m.dash.ToggleTodo(todos[m.NotesCursor].ID)
		}
	case "e":
		if onMemo {
			memo := memos[m.NotesCursor-len(todos)]
			m.EditingMemo = memo.ID
			m.openForm(formMemo, []string{"Memo"}, []string{memo.Content})
		}
	case "p":
		if onMemo {
			memo := memos[m.NotesCursor-len(todos)]
			m.Err = m.dash.PinMemo(memo.ID, !memo.Pinned)
		}
	case "d", "x":
		switch {
		case onTodo:
			m.Err = m.dash.RemoveTodo(todos[m.NotesCursor].ID)
		case onMemo:
			m.Err = m.dash.DeleteMemo(memos[m.NotesCursor-len(todos)].ID)
		}
		if m.NotesCursor > 0 && m.NotesCursor >= total-1 {
			m.NotesCursor--
		}
	case "c":
		m.dash.ClearDoneTodos()
		m.NotesCursor = 0
	}
	return m, nil
}

var entryLabels = []string{"Task", "Date (YYYY-MM-DD)", "Start (HH:MM)", "End (HH:MM)"}

func (m *Model) openForm(kind formKind, labels, values []string) {
	m.Form = kind
	m.Labels = labels
	m.Inputs = make([]textinput.Model, len(labels))
	for i := range labels {
		in := textinput.New()
		in.Prompt = ""
		in.CharLimit = 256
		in.SetValue(values[i])
		m.Inputs[i] = in
	}
	m.InputFocus = 0
	m.Inputs[0].Focus()
	m.Err = nil
}

func (m *Model) closeForm() {
	m.Form = formNone
	m.Inputs = nil
	m.Labels = nil
	m.EditingTask = ""
	m.EditingEntry = ""
	m.EditingMemo = ""
}

func (m *Model) focusInput(i int) {
	m.Inputs[m.InputFocus].Blur()
	m.InputFocus = (i + len(m.Inputs)) % len(m.Inputs)
	m.Inputs[m.InputFocus].Focus()
}

func (m *Model) handleFormInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		m.closeForm()
		m.Err = nil
		return m, nil
	case "tab", "down":
		m.focusInput(m.InputFocus + 1)
		return m, nil
	case "shift+tab", "up":
		m.focusInput(m.InputFocus - 1)
		return m, nil
	case "enter":
		if m.InputFocus < len(m.Inputs)-1 {
			m.focusInput(m.InputFocus + 1)
			return m, nil
		}
		if m.Err = m.submitForm(); m.Err == nil {
			m.closeForm()
		}
		m.refresh()
		return m, nil
	}

	var cmd tea.Cmd
	m.Inputs[m.InputFocus], cmd = m.Inputs[m.InputFocus].Update(msg)
	return m, cmd
}

func (m *Model) value(i int) string {
	return strings.TrimSpace(m.Inputs[i].Value())
}

func (m *Model) submitForm() error {
	switch m.Form {
	case formAddTask:
		if err := m.dash.AddTask(m.value(0)); err != nil {
			return err
		}
		m.SelectedIndex = len(m.dash.TaskNames()) - 1
		if color := m.value(1); color != "" {
			return m.dash.SetTaskColor(m.value(0), color)
		}
	case formEditTask:
		name := m.value(0)
		if name != m.EditingTask {
			if err := m.dash.RenameTask(m.EditingTask, name); err != nil {
				return err
			}
		}
		return m.dash.SetTaskColor(name, m.value(1))
	case formAddEntry, formEditEntry:
		start, end, err := m.entryTimes()
		if err != nil {
			return err
		}
		if m.Form == formAddEntry {
			_, err = m.dash.AddManualEntry(m.value(0), start, end)
		} else {
			_, err = m.dash.EditEntry(m.EditingEntry, m.value(0), start, end)
		}
		return err
	case formReassign:
		_, err := m.dash.BulkReassign(m.targetIDs(), m.value(0))
		if err == nil {
			clear(m.Marked)
		}
		return err
	case formRange:
		from, err := timelog.ParseClock(m.Day, m.value(0))
		if err != nil {
			return err
		}
		to, err := timelog.ParseClock(m.Day, m.value(1))
		if err != nil {
			return err
		}
		clear(m.Marked)
		for _, e := range m.dash.SelectRange(from, to) {
			m.Marked[e.ID] = true
		}
	case formTodo:
		_, err := m.dash.AddTodo(m.value(0))
		return err
	case formMemo:
		return m.dash.SetMemoContent(m.EditingMemo, m.value(0))
	}
	return nil
}

func (m *Model) entryTimes() (time.Time, time.Time, error) {
	day, err := timelog.ParseDay(m.value(1), m.now())
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	start, err := timelog.ParseClock(day, m.value(2))
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := timelog.ParseClock(day, m.value(3))
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}
