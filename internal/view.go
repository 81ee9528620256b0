package internal

import (
	"fmt"
	"strings"
	"time"

	"tabtime/internal/dashboard"
	"tabtime/internal/timelog"
	"tabtime/internal/tracker"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Align(lipgloss.Center)

	taskItemStyle = lipgloss.NewStyle().
			Padding(0, 1)

	taskItemSelectedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("170")).
				Background(lipgloss.Color("235")).
				Padding(0, 1)

	timerDisplayStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("69")).
				Bold(true)

	timerRunningStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("82")).
				Bold(true)

	graceStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	nagStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("214")).
			Bold(true).
			Padding(0, 1)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 0)

	inputStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("170"))

	inputInactiveStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240"))

	logHeaderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")).
			Bold(true)

	logTagStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("170"))

	logTimeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	inactiveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

// palette colors tasks that have no color of their own.
var palette = []string{"39", "208", "141", "42", "203", "220", "81", "177"}

func formatDuration(d time.Duration) string {
	total := int(d.Seconds())
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60

	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

func (m *Model) title(text string) string {
	accent := m.dash.Settings().AccentColor
	if accent == "" {
		accent = "86"
	}
	return titleStyle.Foreground(lipgloss.Color(accent)).Width(m.Width).Render(text)
}

func (m *Model) taskColor(name string) lipgloss.Color {
	if c := m.dash.TaskColor(name); c != "" {
		return lipgloss.Color(c)
	}
	sum := 0
	for _, r := range name {
		sum += int(r)
	}
	return lipgloss.Color(palette[sum%len(palette)])
}

func (m *Model) emptyStateView() string {
	return lipgloss.Place(
		m.Width, 24,
		lipgloss.Center, lipgloss.Center,
		m.title("TabTime")+"\n\n"+
			inactiveStyle.Render("No tasks yet. Press 'n' to add one.")+"\n"+
			m.errorLine(),
	)
}

func (m *Model) mainView() string {
	var sb strings.Builder

	sb.WriteString(m.title("TabTime"))
	sb.WriteString("\n")
	if m.Nag != "" {
		sb.WriteString(nagStyle.Render(m.Nag))
	}
	sb.WriteString("\n")

	boxes := lipgloss.JoinHorizontal(lipgloss.Top,
		m.taskListView(),
		"  ",
		m.statusView(),
	)
	sb.WriteString(boxes)
	sb.WriteString("\n")
	sb.WriteString(m.timelineView())
	sb.WriteString("\n")
	sb.WriteString(helpStyle.Render("Select: Enter | New: n | Edit: e | Delete: d | Add log: a | Logs: l | Notes: m"))
	sb.WriteString("\n")
	sb.WriteString(helpStyle.Render("Day: [ ] t | Focus mode: f | Idle detection: i | Quit: q"))
	sb.WriteString("\n")
	sb.WriteString(m.errorLine())

	return sb.String()
}

func (m *Model) errorLine() string {
	if m.Err == nil {
		return ""
	}
	return errorStyle.Render("Error: " + m.Err.Error())
}

func (m *Model) taskListView() string {
	var sb strings.Builder

	sb.WriteString("Tasks\n\n")

	for i, t := range m.dash.Tasks(m.LastTick) {
		marker := "  "
		if t.Name == m.Status.Selected {
			marker = "▸ "
		}
		running := ""
		if t.Name == m.Status.Task && m.Status.State != tracker.Idle {
			running = " ●"
		}
		swatch := lipgloss.NewStyle().Foreground(m.taskColor(t.Name)).Render("■")
		line := fmt.Sprintf("%s%s %s %s%s", marker, swatch, t.Name, t.TotalFormatted(), running)

		if i == m.SelectedIndex {
			sb.WriteString(taskItemSelectedStyle.Render(line))
		} else {
			sb.WriteString(taskItemStyle.Render(line))
		}
		sb.WriteString("\n")
	}

	return boxStyle.Width(34).Height(12).Render(sb.String())
}

func (m *Model) statusView() string {
	st := m.Status
	totals := m.dash.Totals(m.LastTick, m.LastTick)

	var timerStr, status string
	switch st.State {
	case tracker.Running:
		timerStr = timerRunningStyle.Render(formatDuration(st.Elapsed))
		status = timerRunningStyle.Render("Tracking " + st.Task)
	case tracker.GracePeriod:
		timerStr = graceStyle.Render(formatDuration(st.Elapsed))
		status = graceStyle.Render("Paused " + st.Task)
	default:
		timerStr = timerDisplayStyle.Render(formatDuration(0))
		status = inactiveStyle.Render("Idle")
	}

	cfg := m.dash.Settings()
	var sb strings.Builder
	sb.WriteString(timerStr)
	sb.WriteString(fmt.Sprintf("\n%s\n", status))
	if !st.Started.IsZero() {
		sb.WriteString(logTimeStyle.Render("since " + st.Started.Format("15:04")))
		sb.WriteString("\n")
	}
	sb.WriteString(fmt.Sprintf("\nToday: %s\n", timelog.FormatClock(totals.Total)))
	sb.WriteString(fmt.Sprintf("Focus mode: %s\n", onOff(cfg.FocusModeEnabled)))
	sb.WriteString(fmt.Sprintf("Idle detection: %s\n", onOff(cfg.IdleDetectionEnabled)))

	if memo, ok := m.dash.PinnedMemo(); ok {
		sb.WriteString("\n")
		sb.WriteString(logHeaderStyle.Render("Pinned"))
		sb.WriteString("\n")
		sb.WriteString(memo.Content)
	}

	return boxStyle.Width(34).Height(12).Render(sb.String())
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

// timelineView draws the viewed day as two columns of twelve hour rows, one
// glyph per ten-minute cell.
func (m *Model) timelineView() string {
	tl := m.dash.Timeline(m.Day)

	col := func(from int) string {
		var sb strings.Builder
		for h := from; h < from+dashboard.Hours/2; h++ {
			sb.WriteString(logTimeStyle.Render(fmt.Sprintf("%02d ", h)))
			for _, c := range tl.Rows[h] {
				if c.Task == "" {
					sb.WriteString(inactiveStyle.Render("·"))
					continue
				}
				sb.WriteString(lipgloss.NewStyle().Foreground(m.taskColor(c.Task)).Render("█"))
			}
			sb.WriteString("\n")
		}
		return strings.TrimRight(sb.String(), "\n")
	}

	header := logHeaderStyle.Render(m.Day.Format("Mon Jan 02 2006"))
	total := m.dash.Totals(m.Day, m.LastTick).Total
	header += "  " + logTimeStyle.Render(timelog.FormatClock(total))

	grid := lipgloss.JoinHorizontal(lipgloss.Top, col(0), "    ", col(dashboard.Hours/2))
	return boxStyle.Width(70).Render(header + "\n" + grid)
}

func (m *Model) logView() string {
	var sb strings.Builder
	sb.WriteString(m.title("Time Logs"))
	sb.WriteString("\n\n")
	sb.WriteString(logHeaderStyle.Render(m.Day.Format("Mon Jan 02 2006")))
	if n := len(m.Marked); n > 0 {
		sb.WriteString(logTagStyle.Render(fmt.Sprintf("  %d marked", n)))
	}
	sb.WriteString("\n\n")

	entries := m.LogEntries()
	if len(entries) == 0 {
		sb.WriteString(inactiveStyle.Render("No entries for this day."))
		sb.WriteString("\n")
	}
	for i, e := range entries {
		line := m.formatLogEntry(e)
		if i == m.LogCursor {
			sb.WriteString(taskItemSelectedStyle.Render(line))
		} else {
			sb.WriteString(taskItemStyle.Render(line))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(helpStyle.Render("Mark: Space | Mark range: s | Reassign: r | Delete: d | Edit: e | Add: a | Day: [ ] | Back: Esc"))
	sb.WriteString("\n")
	sb.WriteString(m.errorLine())
	return sb.String()
}

func (m *Model) formatLogEntry(e timelog.Entry) string {
	mark := "[ ]"
	if m.Marked[e.ID] {
		mark = "[x]"
	}
	span := fmt.Sprintf("%s-%s", e.Start.Format("15:04"), e.End.Format("15:04"))
	ago := humanize.RelTime(e.End, m.LastTick, "ago", "from now")
	return fmt.Sprintf("%s %s  %s  %s  %s",
		mark,
		logTimeStyle.Render(span),
		formatDuration(e.Duration()),
		logTagStyle.Render(e.Task),
		logTimeStyle.Render("ended "+ago),
	)
}

func (m *Model) notesView() string {
	var sb strings.Builder
	sb.WriteString(m.title("Notes"))
	sb.WriteString("\n\n")

	todos := m.dash.Todos()
	sb.WriteString(logHeaderStyle.Render("Todos"))
	sb.WriteString("\n")
	for i, it := range todos {
		check := "[ ]"
		if it.Done {
			check = "[x]"
		}
		m.writeNoteLine(&sb, i, check+" "+it.Text)
	}

	sb.WriteString("\n")
	sb.WriteString(logHeaderStyle.Render("Memos"))
	sb.WriteString("\n")
	for i, memo := range m.dash.Memos() {
		pin := "  "
		if memo.Pinned {
			pin = "📌"
		}
		first, _, _ := strings.Cut(memo.Content, "\n")
		m.writeNoteLine(&sb, len(todos)+i, pin+" "+first)
	}

	sb.WriteString("\n")
	sb.WriteString(helpStyle.Render("New todo: n | New memo: N | Toggle: Space | Edit memo: e | Pin: p | Delete: d | Clear done: c | Back: Esc"))
	sb.WriteString("\n")
	sb.WriteString(m.errorLine())
	return sb.String()
}

func (m *Model) writeNoteLine(sb *strings.Builder, i int, line string) {
	if i == m.NotesCursor {
		sb.WriteString(taskItemSelectedStyle.Render(line))
	} else {
		sb.WriteString(taskItemStyle.Render(line))
	}
	sb.WriteString("\n")
}

var formTitles = map[formKind]string{
	formAddTask:   "Add New Task",
	formEditTask:  "Edit Task",
	formAddEntry:  "Add Time Log",
	formEditEntry: "Edit Time Log",
	formReassign:  "Reassign Entries",
	formRange:     "Mark Time Range",
	formTodo:      "Add Todo",
	formMemo:      "Edit Memo",
}

func (m *Model) formView() string {
	var sb strings.Builder
	sb.WriteString(m.title(formTitles[m.Form]))
	sb.WriteString("\n\n")

	var form strings.Builder
	for i, label := range m.Labels {
		// a visible marker makes the focused field obvious
		marker := "  "
		if i == m.InputFocus {
			marker = "→ "
		}
		text := fmt.Sprintf("%s%s: ", marker, label)
		if i == m.InputFocus {
			text = inputStyle.Render(text)
		} else {
			text = inputInactiveStyle.Render(text)
		}
		form.WriteString(text)
		form.WriteString(m.Inputs[i].View())
		form.WriteString("\n\n")
	}

	focusName := m.Labels[m.InputFocus]
	form.WriteString(helpStyle.Render(fmt.Sprintf("Tab: Switch (Focused: %s) | Enter: Save | Esc: Cancel", focusName)))
	if m.Err != nil {
		form.WriteString("\n")
		form.WriteString(m.errorLine())
	}

	sb.WriteString(lipgloss.Place(
		m.Width, 20,
		lipgloss.Center, lipgloss.Center,
		boxStyle.Width(56).Render(form.String()),
	))
	return sb.String()
}
