package calendar

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"hyprfocus/internal/modules/calendar/dto"
	"hyprfocus/internal/ui/theme"
)

const (
	days        = 7
	slotsPerDay = 96
	slotMinutes = 15

	headerRows = 2
	gutter     = 6
	taskPaneW  = 30
	minColW    = 4
	defaultTop = 28 // 07:00
)

// ─── port ────────────────────────────────────────────────────────────────────

// Port is the minimal interface this view needs from the calendar use-case.
type Port interface {
	WeekOf(ctx context.Context, at time.Time) (dto.WeekOutput, error)
	Gesture(ctx context.Context, input dto.GestureInput) (dto.GestureOutcome, error)
	CreateAt(ctx context.Context, start, end time.Time, goal, intention string) (dto.EventView, error)
	Delete(ctx context.Context, id string) error
	Tasks(ctx context.Context) ([]dto.TaskView, error)
	DropTaskAt(ctx context.Context, task int, week time.Time, day, slot int) (dto.DropOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

// LoadedMsg carries a freshly read week and task list.
type LoadedMsg struct {
	Week  dto.WeekOutput
	Tasks []dto.TaskView
	Err   error
}

// ChangedMsg reports a write; the view reloads after it.
type ChangedMsg struct {
	Status string
	Err    error
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the week grid. Pointer input is forwarded to the scheduler in
// arrival order, so gesture calls run inline rather than as commands.
type Model struct {
	port  Port
	now   func() time.Time
	at    time.Time
	week  dto.WeekOutput
	tasks []dto.TaskView

	top     int
	width   int
	height  int
	status  string
	loaded  bool
	editor  *editor
	preview *dto.GestureOutcome

	// pointer state for the gesture in flight
	gestureKind string
	gestureID   string
	pressY      int
	dragTask    int
}

func New(port Port) Model {
	return Model{port: port, now: time.Now, top: defaultTop}
}

// WithClock replaces the wall clock used to pick the current week.
func (m Model) WithClock(now func() time.Time) Model {
	m.now = now
	return m
}

func (m Model) Init() tea.Cmd {
	return m.loadCmd()
}

// Capturing reports whether the view needs raw keyboard input.
func (m Model) Capturing() bool { return m.editor != nil }

// Week returns the week currently shown.
func (m Model) Week() dto.WeekOutput { return m.week }

// Status returns the last message the view produced.
func (m Model) Status() string { return m.status }

// Shift moves the shown week by n weeks and reloads.
func (m *Model) Shift(n int) tea.Cmd {
	m.at = m.weekStart().AddDate(0, 0, 7*n)
	return m.loadCmd()
}

// Today jumps back to the current week.
func (m *Model) Today() tea.Cmd {
	m.at = time.Time{}
	return m.loadCmd()
}

// Reload re-reads the week after an outside change.
func (m Model) Reload() tea.Cmd { return m.loadCmd() }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.editor != nil {
		switch msg.(type) {
		case tea.MouseMsg:
			return m, nil
		case tea.WindowSizeMsg, LoadedMsg, ChangedMsg:
		default:
			return m.updateEditor(msg)
		}
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.clampTop()
		if m.editor != nil {
			return m.updateEditor(msg)
		}

	case LoadedMsg:
		m.loaded = true
		if msg.Err != nil {
			m.status = "calendar: " + msg.Err.Error()
			return m, nil
		}
		m.week = msg.Week
		m.tasks = msg.Tasks

	case ChangedMsg:
		if msg.Err != nil {
			m.status = msg.Err.Error()
		} else {
			m.status = msg.Status
		}
		return m, m.loadCmd()

	case tea.MouseMsg:
		return m.updateMouse(msg)

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			m.top--
			m.clampTop()
		case "down", "j":
			m.top++
			m.clampTop()
		case "pgup":
			m.top -= m.visibleRows()
			m.clampTop()
		case "pgdown":
			m.top += m.visibleRows()
			m.clampTop()
		case "[", "h":
			return m, m.Shift(-1)
		case "]", "l":
			return m, m.Shift(1)
		case ".":
			return m, m.Today()
		case "esc":
			m.cancelGesture()
		}
	}
	return m, nil
}

func (m Model) View() string {
	if !m.loaded {
		return theme.Muted.Render("loading week…")
	}
	if m.editor != nil {
		title := theme.Title.Render(fmt.Sprintf("New block  %s %s–%s",
			m.dayStart(m.editor.day).Format("Mon 02 Jan"),
			slotLabel(m.editor.start), slotLabel(m.editor.end)))
		box := theme.PaneActive.Render(title + "\n\n" + m.editor.View())
		return lipgloss.Place(m.width, max(m.height, 1), lipgloss.Center, lipgloss.Center, box)
	}

	grid := m.renderGrid()
	if m.width-m.gridWidth() >= taskPaneW {
		grid = lipgloss.JoinHorizontal(lipgloss.Top, grid, "  ", m.renderTasks())
	}
	footer := theme.Muted.Render("drag: create/move  edges: resize  right-click: delete  [ ]: week  .: today")
	if m.status != "" {
		footer = m.status + "  " + footer
	}
	return lipgloss.JoinVertical(lipgloss.Left, grid, footer)
}

// ─── pointer handling ────────────────────────────────────────────────────────

func (m Model) updateMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.top -= 2
		m.clampTop()
		return m, nil
	case tea.MouseButtonWheelDown:
		m.top += 2
		m.clampTop()
		return m, nil
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonRight {
			if day, slot, ok := m.cellAt(msg.X, msg.Y); ok {
				if e, found := m.eventAt(day, slot); found {
					return m, m.deleteCmd(e)
				}
			}
			return m, nil
		}
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		if task, ok := m.taskAt(msg.X, msg.Y); ok {
			m.dragTask = task
			m.status = "drop the task on the grid"
			return m, nil
		}
		day, slot, ok := m.cellAt(msg.X, msg.Y)
		if !ok {
			return m, nil
		}
		return m.beginGesture(day, slot, msg.Y)

	case tea.MouseActionMotion:
		if m.gestureKind == "" {
			return m, nil
		}
		return m.sendGesture("update", float64(msg.Y-m.pressY))

	case tea.MouseActionRelease:
		if m.dragTask > 0 {
			task := m.dragTask
			m.dragTask = 0
			day, slot, ok := m.cellAt(msg.X, msg.Y)
			if !ok {
				m.status = "task drop cancelled"
				return m, nil
			}
			return m, m.dropCmd(task, day, slot)
		}
		if m.gestureKind == "" {
			return m, nil
		}
		return m.sendGesture("end", float64(msg.Y-m.pressY))
	}
	return m, nil
}

func (m Model) beginGesture(day, slot, y int) (Model, tea.Cmd) {
	kind, id := "create", ""
	if e, found := m.eventAt(day, slot); found {
		id = e.ID
		kind = "move"
		if e.EndSlot-e.StartSlot >= 3 {
			switch slot {
			case e.StartSlot:
				kind = "resize-top"
			case e.EndSlot - 1:
				kind = "resize-bottom"
			}
		}
	}
	out, err := m.port.Gesture(context.Background(), dto.GestureInput{
		Kind:      "begin",
		Gesture:   kind,
		Week:      m.week.Start,
		Day:       day,
		Slot:      slot,
		EventID:   id,
		RowHeight: 1,
	})
	if err != nil {
		m.status = err.Error()
		return m, nil
	}
	if out.Kind == "rejected" {
		m.status = "slot taken"
		return m, nil
	}
	m.gestureKind, m.gestureID, m.pressY = kind, id, y
	m.preview = &out
	return m, nil
}

func (m Model) sendGesture(kind string, offset float64) (Model, tea.Cmd) {
	out, err := m.port.Gesture(context.Background(), dto.GestureInput{
		Kind:      kind,
		Gesture:   m.gestureKind,
		Week:      m.week.Start,
		EventID:   m.gestureID,
		OffsetY:   offset,
		RowHeight: 1,
	})
	if err != nil {
		m.clearGesture()
		m.status = err.Error()
		return m, m.loadCmd()
	}
	switch out.Kind {
	case "preview":
		m.preview = &out
		if out.Refused {
			m.status = "slot taken"
		} else {
			m.status = ""
		}
		return m, nil
	case "open-editor":
		m.clearGesture()
		m.editor = newEditor(m.week.Goals, out.Day, out.StartSlot, out.EndSlot)
		return m, m.editor.Init()
	case "committed":
		m.clearGesture()
		m.status = "saved"
		return m, m.loadCmd()
	case "rejected":
		m.clearGesture()
		m.status = "slot taken, change dropped"
		return m, m.loadCmd()
	}
	m.clearGesture()
	return m, nil
}

func (m *Model) cancelGesture() {
	if m.gestureKind == "" {
		m.dragTask = 0
		return
	}
	_, _ = m.port.Gesture(context.Background(), dto.GestureInput{Kind: "cancel", Gesture: m.gestureKind})
	m.clearGesture()
	m.status = "cancelled"
}

func (m *Model) clearGesture() {
	m.gestureKind, m.gestureID = "", ""
	m.preview = nil
}

func (m Model) updateEditor(msg tea.Msg) (Model, tea.Cmd) {
	cmd := m.editor.Update(msg)
	if !m.editor.done {
		return m, cmd
	}
	e := m.editor
	m.editor = nil
	if e.cancelled {
		m.status = "cancelled"
		return m, nil
	}
	start := m.slotTime(e.day, e.start)
	end := m.slotTime(e.day, e.end)
	port := m.port
	return m, func() tea.Msg {
		view, err := port.CreateAt(context.Background(), start, end, e.goal, e.intention)
		if err != nil {
			return ChangedMsg{Err: err}
		}
		return ChangedMsg{Status: "created " + view.Goal + " " + view.Start.Format("Mon 15:04")}
	}
}

// ─── geometry ────────────────────────────────────────────────────────────────

func (m Model) colWidth() int {
	avail := m.width - gutter
	if m.width-gutter-minColW*days >= taskPaneW+2 {
		avail -= taskPaneW + 2
	}
	return max(avail/days, minColW)
}

func (m Model) gridWidth() int { return gutter + days*m.colWidth() }

func (m Model) visibleRows() int {
	return max(m.height-headerRows-1, 1)
}

func (m *Model) clampTop() {
	m.top = min(max(m.top, 0), max(slotsPerDay-m.visibleRows(), 0))
}

// cellAt maps a screen position inside the view to a day column and slot.
func (m Model) cellAt(x, y int) (int, int, bool) {
	if x < gutter || x >= m.gridWidth() || y < headerRows {
		return 0, 0, false
	}
	row := y - headerRows
	if row >= m.visibleRows() {
		return 0, 0, false
	}
	slot := m.top + row
	if slot >= slotsPerDay {
		return 0, 0, false
	}
	return (x - gutter) / m.colWidth(), slot, true
}

// taskAt maps a position on the task pane to a 1-based task index.
func (m Model) taskAt(x, y int) (int, bool) {
	if x < m.gridWidth()+2 || m.width-m.gridWidth() < taskPaneW {
		return 0, false
	}
	i := y - headerRows
	if i < 0 || i >= len(m.tasks) {
		return 0, false
	}
	return m.tasks[i].Index, true
}

func (m Model) eventAt(day, slot int) (dto.EventView, bool) {
	for _, e := range m.week.Events {
		if e.Day == day && slot >= e.StartSlot && slot < e.EndSlot {
			return e, true
		}
	}
	return dto.EventView{}, false
}

func (m Model) weekStart() time.Time {
	if !m.week.Start.IsZero() {
		return m.week.Start
	}
	return m.now()
}

func (m Model) dayStart(day int) time.Time {
	w := m.week.Start
	return time.Date(w.Year(), w.Month(), w.Day()+day, 0, 0, 0, 0, w.Location())
}

func (m Model) slotTime(day, slot int) time.Time {
	w := m.week.Start
	return time.Date(w.Year(), w.Month(), w.Day()+day, slot/4, (slot%4)*slotMinutes, 0, 0, w.Location())
}

func (m Model) asleep(slot int) bool {
	s, e := m.week.SleepStart, m.week.SleepEnd
	if !m.week.SleepEnabled {
		return false
	}
	if s < e {
		return slot >= s && slot < e
	}
	return slot >= s || slot < e
}

// ─── rendering ───────────────────────────────────────────────────────────────

var (
	eventStyle   = theme.Block
	previewStyle = theme.Preview
	refusedStyle = theme.Refused
	sleepStyle   = theme.Sleep
	todayStyle   = theme.Hot
)

func (m Model) renderGrid() string {
	colW := m.colWidth()
	var sb strings.Builder

	sb.WriteString(theme.Title.Render(fit("Week of "+m.week.Start.Format("Mon 02 Jan 2006"), m.gridWidth())) + "\n")
	sb.WriteString(strings.Repeat(" ", gutter))
	today := m.now()
	for d := 0; d < days; d++ {
		date := m.dayStart(d)
		label := pad(fit(date.Format("Mon 02"), colW-1), colW)
		if sameDay(date, today) {
			label = todayStyle.Render(label)
		} else {
			label = theme.Muted.Render(label)
		}
		sb.WriteString(label)
	}

	for row := 0; row < m.visibleRows() && m.top+row < slotsPerDay; row++ {
		slot := m.top + row
		sb.WriteString("\n")
		if slot%4 == 0 {
			sb.WriteString(theme.Muted.Render(pad(slotLabel(slot), gutter)))
		} else {
			sb.WriteString(strings.Repeat(" ", gutter))
		}
		for d := 0; d < days; d++ {
			sb.WriteString(m.renderCell(d, slot, colW))
		}
	}
	return sb.String()
}

func (m Model) renderCell(day, slot, colW int) string {
	w := colW - 1
	if p := m.preview; p != nil && p.Day == day && slot >= p.StartSlot && slot < p.EndSlot {
		text := ""
		if slot == p.StartSlot {
			text = slotLabel(p.StartSlot) + "–" + slotLabel(p.EndSlot)
		}
		style := previewStyle
		if p.Refused {
			style = refusedStyle
		}
		return style.Render(pad(fit(text, w), w)) + " "
	}
	for _, e := range m.week.Events {
		if m.preview != nil && e.ID == m.preview.EventID {
			continue
		}
		if e.Day != day || slot < e.StartSlot || slot >= e.EndSlot {
			continue
		}
		text := ""
		switch slot {
		case e.StartSlot:
			text = e.Goal
		case e.StartSlot + 1:
			text = e.Intention
		}
		return eventStyle.Render(pad(fit(text, w), w)) + " "
	}
	if m.asleep(slot) {
		return sleepStyle.Render(strings.Repeat("·", w)) + " "
	}
	return strings.Repeat(" ", colW)
}

func (m Model) renderTasks() string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Tasks") + "\n")
	sb.WriteString(theme.Muted.Render("drag onto the grid"))
	for _, t := range m.tasks {
		mark := "[ ]"
		if t.Done {
			mark = "[x]"
		}
		line := fmt.Sprintf("%s %d. %s", mark, t.Index, t.Title)
		if t.Goal != "" {
			line += " (" + t.Goal + ")"
		}
		line = fit(line, taskPaneW)
		if t.Index == m.dragTask {
			line = theme.Hot.Render(line)
		} else if t.Done {
			line = theme.Muted.Render(line)
		}
		sb.WriteString("\n" + line)
	}
	return sb.String()
}

// ─── commands ────────────────────────────────────────────────────────────────

func (m Model) loadCmd() tea.Cmd {
	if m.port == nil {
		return nil
	}
	port, at := m.port, m.at
	if at.IsZero() {
		at = m.now()
	}
	return func() tea.Msg {
		ctx := context.Background()
		week, err := port.WeekOf(ctx, at)
		if err != nil {
			return LoadedMsg{Err: err}
		}
		tasks, err := port.Tasks(ctx)
		return LoadedMsg{Week: week, Tasks: tasks, Err: err}
	}
}

func (m Model) deleteCmd(e dto.EventView) tea.Cmd {
	port := m.port
	return func() tea.Msg {
		if err := port.Delete(context.Background(), e.ID); err != nil {
			return ChangedMsg{Err: err}
		}
		return ChangedMsg{Status: "deleted " + e.Goal}
	}
}

func (m Model) dropCmd(task, day, slot int) tea.Cmd {
	port, week := m.port, m.week.Start
	return func() tea.Msg {
		out, err := port.DropTaskAt(context.Background(), task, week, day, slot)
		if err != nil {
			return ChangedMsg{Err: err}
		}
		if !out.Placed {
			return ChangedMsg{Status: "slot taken, task not placed"}
		}
		return ChangedMsg{Status: "scheduled " + out.Event.Intention}
	}
}

// ─── helpers ─────────────────────────────────────────────────────────────────

func slotLabel(slot int) string {
	return fmt.Sprintf("%02d:%02d", slot/4, (slot%4)*slotMinutes)
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.In(a.Location()).Date()
	return ay == by && am == bm && ad == bd
}

func fit(s string, w int) string {
	r := []rune(s)
	if w <= 0 {
		return ""
	}
	if len(r) <= w {
		return s
	}
	if w == 1 {
		return "…"
	}
	return string(r[:w-1]) + "…"
}

func pad(s string, w int) string {
	if n := lipgloss.Width(s); n < w {
		return s + strings.Repeat(" ", w-n)
	}
	return s
}
