package status

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	sessiondto "hyprfocus/internal/modules/session/dto"
	statsdto "hyprfocus/internal/modules/stats/dto"
	"hyprfocus/internal/ui/theme"
)

// PollInterval is how often the tab re-reads the running session.
const PollInterval = time.Second

// ─── port ────────────────────────────────────────────────────────────────────

// Port is the minimal interface this view needs from the session and stats
// use-cases.
type Port interface {
	Status(ctx context.Context) (sessiondto.CurrentOutput, error)
	Show(ctx context.Context) (statsdto.SummaryOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

// TickMsg triggers one poll.
type TickMsg time.Time

// LoadedMsg carries one poll result.
type LoadedMsg struct {
	Current sessiondto.CurrentOutput
	Summary statsdto.SummaryOutput
	Err     error
}

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port    Port
	current sessiondto.CurrentOutput
	summary statsdto.SummaryOutput
	err     error
	loaded  bool
	width   int
	height  int
}

func New(port Port) Model {
	return Model{port: port}
}

func (m Model) Init() tea.Cmd {
	return m.loadCmd()
}

// Current returns the last polled session state.
func (m Model) Current() sessiondto.CurrentOutput { return m.current }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case TickMsg:
		return m, m.loadCmd()
	case LoadedMsg:
		m.loaded = true
		m.err = msg.Err
		if msg.Err == nil {
			m.current = msg.Current
			m.summary = msg.Summary
		}
		return m, tick()
	}
	return m, nil
}

func (m Model) View() string {
	if !m.loaded {
		return theme.Muted.Render("loading…")
	}
	left := theme.Pane.Width(max(m.width/2-4, 30)).Render(m.renderSession())
	right := theme.Pane.Width(max(m.width/2-4, 30)).Render(m.renderStats())
	body := lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right)
	if m.err != nil {
		body = lipgloss.JoinVertical(lipgloss.Left, body, theme.Hot.Render("poll: "+m.err.Error()))
	}
	return body
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m Model) renderSession() string {
	c := m.current
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Session") + "\n\n")
	switch c.Source {
	case "running":
		sb.WriteString(theme.Hot.Render("● "+c.Goal) + "\n")
		if c.Intention != "" {
			sb.WriteString(c.Intention + "\n")
		}
		sb.WriteString("\n")
		phase := c.State
		if c.Pomodoro && c.Phase != "" {
			phase = fmt.Sprintf("%s (%s, %d done)", c.State, c.Phase, c.Completed)
		}
		sb.WriteString(theme.Muted.Render("state   ") + phase + "\n")
		sb.WriteString(theme.Muted.Render("left    ") + clock(c.RemainingSeconds) + "\n")
		if !c.EndsAt.IsZero() {
			sb.WriteString(theme.Muted.Render("ends    ") + c.EndsAt.Local().Format("15:04") + "\n")
		}
		if c.TimerLine != "" {
			sb.WriteString("\n" + theme.Hot.Render(c.TimerLine) + "\n")
		}
	case "pending":
		sb.WriteString(theme.Muted.Render("queued: ") + c.Goal + "\n")
		if c.Intention != "" {
			sb.WriteString(c.Intention + "\n")
		}
		kind := "countdown"
		if c.Pomodoro {
			kind = "pomodoro"
		}
		sb.WriteString(theme.Muted.Render(fmt.Sprintf("%d min %s", c.Duration, kind)) + "\n")
	default:
		sb.WriteString(theme.Muted.Render("no session") + "\n")
	}
	return sb.String()
}

func (m Model) renderStats() string {
	s := m.summary
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Today") + "\n\n")
	sb.WriteString(fmt.Sprintf("%.1fh focused, %d sessions\n", s.TodayHours, s.TodaySessions))
	if s.Ratings > 0 {
		sb.WriteString(fmt.Sprintf("avg rating %.1f (%d)\n", s.AverageRating, s.Ratings))
	}
	if len(s.History) > 0 {
		peak := 0.0
		for _, d := range s.History {
			peak = max(peak, d.Hours)
		}
		sb.WriteString("\n")
		for _, d := range s.History {
			filled := 0
			if peak > 0 {
				filled = int(d.Hours / peak * 100)
			}
			sb.WriteString(d.Date.Format("Mon ") + bar(filled, 100, 16) + fmt.Sprintf(" %.1fh\n", d.Hours))
		}
	}
	if len(s.Recent) > 0 {
		sb.WriteString("\n" + theme.Title.Render("Recent") + "\n")
		for _, r := range s.Recent {
			sb.WriteString(theme.Muted.Render(r.Timestamp.Local().Format("Jan 02 15:04")) + " " + r.Type + " " + r.Goal + "\n")
		}
	}
	return sb.String()
}

func (m Model) loadCmd() tea.Cmd {
	if m.port == nil {
		return nil
	}
	return func() tea.Msg {
		ctx := context.Background()
		current, err := m.port.Status(ctx)
		if err != nil {
			return LoadedMsg{Err: err}
		}
		summary, err := m.port.Show(ctx)
		return LoadedMsg{Current: current, Summary: summary, Err: err}
	}
}

func tick() tea.Cmd {
	return tea.Tick(PollInterval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func clock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

func bar(done, total, width int) string {
	if total <= 0 {
		return ""
	}
	filled := done * width / total
	filled = min(max(filled, 0), width)
	return theme.Filled.Render(strings.Repeat("█", filled)) +
		theme.Empty.Render(strings.Repeat("░", width-filled))
}
