package plugins

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	plugindto "hyprfocus/internal/modules/plugin/dto"
	"hyprfocus/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

// Port is the minimal interface this view needs from the plugin use-case.
type Port interface {
	List(ctx context.Context) ([]plugindto.PluginInfo, error)
	Doctor(ctx context.Context) ([]plugindto.DoctorResult, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

// ListedMsg is sent when the manifest has been read.
type ListedMsg struct {
	Plugins []plugindto.PluginInfo
	Err     error
}

// DoctorDoneMsg is sent when every plugin has been checked.
type DoctorDoneMsg struct {
	Results []plugindto.DoctorResult
	Err     error
}

// ─── list item ───────────────────────────────────────────────────────────────

type pluginItem struct{ info plugindto.PluginInfo }

func (i pluginItem) Title() string {
	if !i.info.Enabled {
		return i.info.Name + " (disabled)"
	}
	return i.info.Name
}

func (i pluginItem) Description() string {
	return i.info.Version + "  " + strings.Join(i.info.Capabilities, ", ")
}

func (i pluginItem) FilterValue() string { return i.info.Name }

// ─── pane ────────────────────────────────────────────────────────────────────

type pane int

const (
	paneList   pane = iota
	paneDoctor      // doctor report is displayed
)

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the self-contained Bubble Tea model for the Plugins tab.
type Model struct {
	port    Port
	pane    pane
	list    list.Model
	output  viewport.Model
	spinner spinner.Model
	loading bool
	err     error
	width   int
	height  int
}

func New(port Port) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.
		Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Collaborator plugins"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().
		Background(theme.Mantle).
		Foreground(theme.Text).
		Padding(1)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	return Model{port: port, list: l, output: vp, spinner: sp}
}

// Filtering reports whether the list's search filter is active.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

// RunDoctor starts a health check of every plugin; used by the palette.
func (m *Model) RunDoctor() tea.Cmd {
	if m.port == nil {
		return nil
	}
	m.loading = true
	return tea.Batch(m.doctorCmd(), m.spinner.Tick)
}

func (m Model) Init() tea.Cmd {
	return m.listCmd()
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(m.width, m.height-2)
		m.output.Width = m.width - 4
		m.output.Height = m.height - 4

	case ListedMsg:
		m.err = msg.Err
		items := make([]list.Item, len(msg.Plugins))
		for i, p := range msg.Plugins {
			items[i] = pluginItem{info: p}
		}
		cmds = append(cmds, m.list.SetItems(items))

	case DoctorDoneMsg:
		m.loading = false
		if msg.Err != nil {
			m.output.SetContent(theme.Hot.Render("doctor: " + msg.Err.Error()))
		} else {
			m.output.SetContent(renderDoctor(msg.Results))
		}
		m.output.GotoTop()
		m.pane = paneDoctor

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case tea.KeyMsg:
		switch m.pane {
		case paneList:
			if !m.Filtering() {
				switch msg.String() {
				case "d":
					return m, m.RunDoctor()
				case "r":
					return m, m.listCmd()
				}
			}
			var cmd tea.Cmd
			m.list, cmd = m.list.Update(msg)
			cmds = append(cmds, cmd)
		case paneDoctor:
			if msg.String() == "esc" {
				m.pane = paneList
				return m, nil
			}
			var cmd tea.Cmd
			m.output, cmd = m.output.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Checking plugins…")
	}
	switch m.pane {
	case paneDoctor:
		hint := theme.Muted.Render("esc: back  ↑/↓: scroll")
		return lipgloss.JoinVertical(lipgloss.Left, hint, m.output.View())
	default:
		hint := theme.Muted.Render("d: doctor  r: reload")
		if m.err != nil {
			hint = theme.Hot.Render("manifest: "+m.err.Error()) + "  " + hint
		}
		return lipgloss.JoinVertical(lipgloss.Left, m.list.View(), hint)
	}
}

// ─── private ─────────────────────────────────────────────────────────────────

func renderDoctor(results []plugindto.DoctorResult) string {
	if len(results) == 0 {
		return theme.Muted.Render("no plugins installed")
	}
	var sb strings.Builder
	for _, r := range results {
		sb.WriteString(theme.Title.Render(r.Name) + "\n")
		sb.WriteString(fmt.Sprintf("  checksum  %s\n", mark(r.ChecksumValid)))
		sb.WriteString(fmt.Sprintf("  binary    %s\n", mark(r.BinaryReachable)))
		sb.WriteString(fmt.Sprintf("  handshake %s\n", mark(r.LifecycleOK)))
		if r.Error != "" {
			sb.WriteString(theme.Hot.Render("  "+r.Error) + "\n")
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func mark(ok bool) string {
	if ok {
		return lipgloss.NewStyle().Foreground(theme.Green).Render("ok")
	}
	return theme.Hot.Render("fail")
}

func (m Model) listCmd() tea.Cmd {
	if m.port == nil {
		return nil
	}
	port := m.port
	return func() tea.Msg {
		plugins, err := port.List(context.Background())
		return ListedMsg{Plugins: plugins, Err: err}
	}
}

func (m Model) doctorCmd() tea.Cmd {
	port := m.port
	return func() tea.Msg {
		results, err := port.Doctor(context.Background())
		return DoctorDoneMsg{Results: results, Err: err}
	}
}
