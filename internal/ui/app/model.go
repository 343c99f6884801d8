package app

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	blockdto "hyprfocus/internal/modules/blocklist/dto"
	calendardto "hyprfocus/internal/modules/calendar/dto"
	preferencesdto "hyprfocus/internal/modules/preferences/dto"
	sessiondto "hyprfocus/internal/modules/session/dto"
	statsdto "hyprfocus/internal/modules/stats/dto"
	"hyprfocus/internal/ui/components"
	"hyprfocus/internal/ui/theme"
	calendarview "hyprfocus/internal/ui/views/calendar"
	pluginsview "hyprfocus/internal/ui/views/plugins"
	statusview "hyprfocus/internal/ui/views/status"
)

// ─── ports ───────────────────────────────────────────────────────────────────
// Each port is the minimal interface that this orchestration layer requires.
// Sub-view ports are defined in their own packages and narrowed further.

type sessionPort interface {
	Status(ctx context.Context) (sessiondto.CurrentOutput, error)
	Launch(ctx context.Context, goal, intention string, duration int, pomodoro bool) (sessiondto.DescriptorOutput, error)
	Feedback(ctx context.Context, goal, intention string, rating int, comment string) (sessiondto.EventOutput, error)
}

type statsPort interface {
	Show(ctx context.Context) (statsdto.SummaryOutput, error)
}

type calendarPort interface {
	calendarview.Port
	AddTask(ctx context.Context, title, goal string) (calendardto.TaskView, error)
	ToggleTask(ctx context.Context, index int) (calendardto.TaskView, error)
	DeleteTask(ctx context.Context, index int) error
	LaunchDue(ctx context.Context) (calendardto.LaunchOutput, error)
}

type blockPort interface {
	Ads(ctx context.Context, enabled bool) (blockdto.BlockOutput, error)
	UpdateAds(ctx context.Context) (blockdto.BlockOutput, error)
}

type preferencesPort interface {
	AddGoal(ctx context.Context, name string) (bool, error)
	DeleteGoal(ctx context.Context, name string) error
	SetTheme(ctx context.Context, goal, theme string) error
	AddFilters(ctx context.Context, goal string, args []string) (int, error)
	DeleteFilter(ctx context.Context, goal, domain string) error
	SetPomodoro(ctx context.Context, input preferencesdto.PomodoroInput) (preferencesdto.PomodoroView, error)
}

// tabBarRows is the height of the tab bar above every view; mouse
// coordinates are shifted by it before reaching a view.
const tabBarRows = 2

// ─── tab index ───────────────────────────────────────────────────────────────

type tabID int

const (
	tabStatus tabID = iota
	tabCalendar
	tabPlugins
	tabCount
)

var tabLabels = [tabCount]string{
	"Status", "Calendar", "Plugins",
}

// ─── async messages ───────────────────────────────────────────────────────────

// actionDoneMsg reports the result of a palette command.
type actionDoneMsg struct {
	status   string
	err      error
	calendar bool // calendar data changed
}

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Tab     key.Binding
	Help    key.Binding
	Palette key.Binding
	Quit    key.Binding
	Week    key.Binding
	Scroll  key.Binding
	Doctor  key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette: key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		Week:    key.NewBinding(key.WithKeys("[", "]", "."), key.WithHelp("[ ] .", "prev/next/this week")),
		Scroll:  key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑/↓", "scroll hours")),
		Doctor:  key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "plugin doctor")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Help, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.Week, k.Scroll},
		{k.Doctor},
		{k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It owns tab routing, the global help
// overlay, and the command palette. All business logic is delegated to port
// interfaces; all rendering is delegated to sub-views.
type Model struct {
	session  sessionPort
	calendar calendarPort
	block    blockPort
	prefs    preferencesPort

	statusView   statusview.Model
	calendarView calendarview.Model
	pluginView   pluginsview.Model

	activeTab tabID
	keys      keyMap
	help      help.Model
	showHelp  bool
	palette   components.Palette
	status    string
	width     int
	height    int
}

// ─── constructor ─────────────────────────────────────────────────────────────

func NewModel(
	session sessionPort,
	stats statsPort,
	calendar calendarPort,
	block blockPort,
	prefs preferencesPort,
	plugin pluginsview.Port,
) Model {
	return Model{
		session:      session,
		calendar:     calendar,
		block:        block,
		prefs:        prefs,
		statusView:   statusview.New(statusPortBridge{session: session, stats: stats}),
		calendarView: calendarview.New(calendar),
		pluginView:   pluginsview.New(plugin),
		activeTab:    tabStatus,
		keys:         defaultKeys(),
		help:         help.New(),
		palette:      components.NewPalette(),
		status:       "ready",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.statusView.Init(),
		m.calendarView.Init(),
		m.pluginView.Init(),
	)
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// The palette intercepts all input while open.
	if m.palette.Visible() {
		if _, isKey := msg.(tea.KeyMsg); isKey {
			var cmd tea.Cmd
			m.palette, cmd = m.palette.Update(msg)
			return m, cmd
		}
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		return m, m.propagateSize()

	// Polls and calendar results route to their owning view regardless of
	// which tab is on screen.
	case statusview.TickMsg, statusview.LoadedMsg:
		var cmd tea.Cmd
		m.statusView, cmd = m.statusView.Update(msg)
		return m, cmd

	case calendarview.LoadedMsg, calendarview.ChangedMsg:
		var cmd tea.Cmd
		m.calendarView, cmd = m.calendarView.Update(msg)
		return m, cmd

	case pluginsview.ListedMsg, pluginsview.DoctorDoneMsg:
		var cmd tea.Cmd
		m.pluginView, cmd = m.pluginView.Update(msg)
		return m, cmd

	case actionDoneMsg:
		if msg.err != nil {
			m.status = msg.err.Error()
		} else {
			m.status = msg.status
		}
		if msg.calendar {
			return m, m.calendarView.Reload()
		}
		return m, nil

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"
		return m, nil

	case tea.MouseMsg:
		if m.activeTab != tabCalendar || m.showHelp || m.palette.Visible() {
			return m, nil
		}
		msg.Y -= tabBarRows
		var cmd tea.Cmd
		m.calendarView, cmd = m.calendarView.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}

		// Yield to a sub-view that is taking free text.
		if m.subViewCapturing() {
			break
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab":
			m.activeTab = (m.activeTab + 1) % tabCount
			return m, nil
		case "shift+tab":
			m.activeTab = (m.activeTab + tabCount - 1) % tabCount
			return m, nil
		case "?":
			m.showHelp = !m.showHelp
			return m, nil
		case ":":
			cmds = append(cmds, m.palette.Open())
			return m, tea.Batch(cmds...)
		}
	}

	// Propagate the message to the active tab's sub-view.
	var tabCmd tea.Cmd
	switch m.activeTab {
	case tabStatus:
		m.statusView, tabCmd = m.statusView.Update(msg)
	case tabCalendar:
		m.calendarView, tabCmd = m.calendarView.Update(msg)
		if s := m.calendarView.Status(); s != "" {
			m.status = s
		}
	case tabPlugins:
		m.pluginView, tabCmd = m.pluginView.Update(msg)
	}
	cmds = append(cmds, tabCmd)

	return m, tea.Batch(cmds...)
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	tabBarH := lipgloss.Height(tabBar)
	statusBarH := lipgloss.Height(statusBar)

	contentH := m.height - tabBarH - statusBarH
	if contentH < 1 {
		contentH = 1
	}

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).
			Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH,
			lipgloss.Center, lipgloss.Center, m.palette.View())
	default:
		content = lipgloss.NewStyle().Height(contentH).MaxHeight(contentH).Render(m.activeView())
	}

	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) activeView() string {
	switch m.activeTab {
	case tabStatus:
		return m.statusView.View()
	case tabCalendar:
		return m.calendarView.View()
	case tabPlugins:
		return m.pluginView.View()
	}
	return ""
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		label := tabLabels[i]
		if i == m.activeTab {
			parts[i] = theme.Hot.Render(" " + label + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + label + " ")
		}
	}
	sep := theme.Muted.Render(" │ ")
	bar := "hyprfocus  " + strings.Join(parts, sep)
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	if c := m.statusView.Current(); c.Source == "running" {
		left = theme.Hot.Render("● "+c.Goal+" "+c.TimerLine) + "  " + left
	}
	right := theme.Muted.Render("?:help  tab:switch  :::palette  q:quit")
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── palette execution ────────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	if strings.TrimSpace(input) == "" {
		return m, nil
	}
	parts := strings.Fields(input)
	rest := func(n int) string {
		if len(parts) <= n {
			return ""
		}
		return strings.Join(parts[n:], " ")
	}

	switch parts[0] {
	case "session:launch", "session:pomodoro":
		if len(parts) < 3 {
			m.status = "usage: " + parts[0] + " <goal> <minutes> [intention]"
			return m, nil
		}
		minutes, err := strconv.Atoi(parts[2])
		if err != nil || minutes <= 0 {
			m.status = "minutes must be a positive number"
			return m, nil
		}
		goal, intention, pomodoro := parts[1], rest(3), parts[0] == "session:pomodoro"
		return m, m.action(false, func(ctx context.Context) (string, error) {
			out, err := m.session.Launch(ctx, goal, intention, minutes, pomodoro)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("queued %s for %d min", out.Goal, out.Duration), nil
		})

	case "session:feedback":
		if len(parts) < 2 {
			m.status = "usage: session:feedback <rating> [comment]"
			return m, nil
		}
		rating, err := strconv.Atoi(parts[1])
		if err != nil {
			m.status = "rating must be a number"
			return m, nil
		}
		comment := rest(2)
		return m, m.action(false, func(ctx context.Context) (string, error) {
			if _, err := m.session.Feedback(ctx, "", "", rating, comment); err != nil {
				return "", err
			}
			return "feedback recorded", nil
		})

	case "task:add":
		if len(parts) < 2 {
			m.status = "usage: task:add <title> [@goal]"
			return m, nil
		}
		title, goal := splitGoal(parts[1:])
		return m, m.action(true, func(ctx context.Context) (string, error) {
			task, err := m.calendar.AddTask(ctx, title, goal)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("task %d added", task.Index), nil
		})

	case "task:done", "task:delete":
		if len(parts) < 2 {
			m.status = "usage: " + parts[0] + " <n>"
			return m, nil
		}
		n, err := strconv.Atoi(parts[1])
		if err != nil {
			m.status = "task number expected"
			return m, nil
		}
		if parts[0] == "task:delete" {
			return m, m.action(true, func(ctx context.Context) (string, error) {
				return fmt.Sprintf("task %d deleted", n), m.calendar.DeleteTask(ctx, n)
			})
		}
		return m, m.action(true, func(ctx context.Context) (string, error) {
			task, err := m.calendar.ToggleTask(ctx, n)
			if err != nil {
				return "", err
			}
			if task.Done {
				return "done: " + task.Title, nil
			}
			return "reopened: " + task.Title, nil
		})

	case "week:next", "week:prev", "week:today":
		m.activeTab = tabCalendar
		switch parts[0] {
		case "week:next":
			return m, m.calendarView.Shift(1)
		case "week:prev":
			return m, m.calendarView.Shift(-1)
		}
		return m, m.calendarView.Today()

	case "calendar:launch-due":
		return m, m.action(false, func(ctx context.Context) (string, error) {
			out, err := m.calendar.LaunchDue(ctx)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("queued %s for %d min", out.Goal, out.Minutes), nil
		})

	case "ads:on", "ads:off":
		enabled := parts[0] == "ads:on"
		return m, m.action(false, func(ctx context.Context) (string, error) {
			out, err := m.block.Ads(ctx, enabled)
			if err != nil {
				return "", err
			}
			if !enabled {
				return "ad blocking off", nil
			}
			return fmt.Sprintf("ad blocking on (%d rules)", out.Rules), nil
		})

	case "ads:update":
		return m, m.action(false, func(ctx context.Context) (string, error) {
			out, err := m.block.UpdateAds(ctx)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("ad list refreshed (%d rules)", out.Rules), nil
		})

	case "goal:add", "goal:delete":
		if len(parts) < 2 {
			m.status = "usage: " + parts[0] + " <name>"
			return m, nil
		}
		name := rest(1)
		if parts[0] == "goal:delete" {
			return m, m.action(true, func(ctx context.Context) (string, error) {
				return "goal deleted: " + name, m.prefs.DeleteGoal(ctx, name)
			})
		}
		return m, m.action(true, func(ctx context.Context) (string, error) {
			added, err := m.prefs.AddGoal(ctx, name)
			if err != nil {
				return "", err
			}
			if !added {
				return "goal already exists: " + name, nil
			}
			return "goal added: " + name, nil
		})

	case "goal:theme":
		if len(parts) < 3 {
			m.status = "usage: goal:theme <name> <theme>"
			return m, nil
		}
		goal, name := parts[1], rest(2)
		return m, m.action(false, func(ctx context.Context) (string, error) {
			return fmt.Sprintf("%s uses theme %s", goal, name), m.prefs.SetTheme(ctx, goal, name)
		})

	case "filter:add", "filter:delete":
		if len(parts) < 3 {
			m.status = "usage: " + parts[0] + " <goal> <domain>"
			return m, nil
		}
		goal, domains := parts[1], parts[2:]
		if parts[0] == "filter:delete" {
			return m, m.action(false, func(ctx context.Context) (string, error) {
				return "unblocked " + domains[0] + " for " + goal, m.prefs.DeleteFilter(ctx, goal, domains[0])
			})
		}
		return m, m.action(false, func(ctx context.Context) (string, error) {
			n, err := m.prefs.AddFilters(ctx, goal, domains)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("%d domain(s) added to %s", n, goal), nil
		})

	case "pomodoro:set":
		if len(parts) < 4 {
			m.status = "usage: pomodoro:set <work> <short> <long>"
			return m, nil
		}
		var minutes [3]int
		for i := range minutes {
			v, err := strconv.Atoi(parts[i+1])
			if err != nil {
				m.status = "minutes must be numbers"
				return m, nil
			}
			minutes[i] = v
		}
		return m, m.action(false, func(ctx context.Context) (string, error) {
			p, err := m.prefs.SetPomodoro(ctx, preferencesdto.PomodoroInput{
				WorkMinutes:       &minutes[0],
				ShortBreakMinutes: &minutes[1],
				LongBreakMinutes:  &minutes[2],
			})
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("pomodoro %d/%d/%d", p.WorkMinutes, p.ShortBreakMinutes, p.LongBreakMinutes), nil
		})

	case "plugin:doctor":
		m.activeTab = tabPlugins
		return m, m.pluginView.RunDoctor()

	default:
		m.status = "unknown command: " + parts[0]
	}
	return m, nil
}

// ─── helpers ─────────────────────────────────────────────────────────────────

// subViewCapturing reports whether the active tab is taking free text, in
// which case global key bindings must yield.
func (m Model) subViewCapturing() bool {
	switch m.activeTab {
	case tabCalendar:
		return m.calendarView.Capturing()
	case tabPlugins:
		return m.pluginView.Filtering()
	}
	return false
}

func (m *Model) propagateSize() tea.Cmd {
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - tabBarRows - 2}
	var cmds [3]tea.Cmd
	m.statusView, cmds[0] = m.statusView.Update(sz)
	m.calendarView, cmds[1] = m.calendarView.Update(sz)
	m.pluginView, cmds[2] = m.pluginView.Update(sz)
	return tea.Batch(cmds[:]...)
}

func (m Model) action(calendar bool, fn func(ctx context.Context) (string, error)) tea.Cmd {
	return func() tea.Msg {
		status, err := fn(context.Background())
		return actionDoneMsg{status: status, err: err, calendar: calendar}
	}
}

// splitGoal pulls a trailing "@goal" word off a task title.
func splitGoal(words []string) (string, string) {
	if n := len(words); n > 1 && strings.HasPrefix(words[n-1], "@") {
		return strings.Join(words[:n-1], " "), strings.TrimPrefix(words[n-1], "@")
	}
	return strings.Join(words, " "), ""
}

// ─── port bridges ─────────────────────────────────────────────────────────────

type statusPortBridge struct {
	session sessionPort
	stats   statsPort
}

func (b statusPortBridge) Status(ctx context.Context) (sessiondto.CurrentOutput, error) {
	return b.session.Status(ctx)
}

func (b statusPortBridge) Show(ctx context.Context) (statsdto.SummaryOutput, error) {
	return b.stats.Show(ctx)
}
