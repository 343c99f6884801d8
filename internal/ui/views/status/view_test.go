package status_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	sessiondto "hyprfocus/internal/modules/session/dto"
	statsdto "hyprfocus/internal/modules/stats/dto"
	"hyprfocus/internal/ui/views/status"
)

type fakePort struct {
	current sessiondto.CurrentOutput
	summary statsdto.SummaryOutput
	err     error
}

func (p fakePort) Status(context.Context) (sessiondto.CurrentOutput, error) {
	return p.current, p.err
}

func (p fakePort) Show(context.Context) (statsdto.SummaryOutput, error) {
	return p.summary, nil
}

func TestInitPollsSessionAndStats(t *testing.T) {
	t.Parallel()
	port := fakePort{
		current: sessiondto.CurrentOutput{Source: "running", Goal: "Work", Intention: "Ship", State: "work", RemainingSeconds: 90, TimerLine: "W 01:30"},
		summary: statsdto.SummaryOutput{TodayHours: 1.5, TodaySessions: 2},
	}
	m := status.New(port)
	m, _ = m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	msg := m.Init()()
	m, next := m.Update(msg)
	if next == nil {
		t.Fatalf("a loaded poll must schedule the next tick")
	}
	if m.Current().Goal != "Work" {
		t.Fatalf("unexpected current %+v", m.Current())
	}
	view := m.View()
	for _, want := range []string{"Work", "Ship", "01:30", "1.5h focused, 2 sessions"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view is missing %q:\n%s", want, view)
		}
	}
}

func TestPollFailureKeepsLastState(t *testing.T) {
	t.Parallel()
	m := status.New(fakePort{})
	m, _ = m.Update(status.LoadedMsg{Current: sessiondto.CurrentOutput{Source: "pending", Goal: "Study", Duration: 45}})
	m, _ = m.Update(status.LoadedMsg{Err: errors.New("log unreadable")})
	if m.Current().Goal != "Study" {
		t.Fatalf("a failed poll must not clear the last session, got %+v", m.Current())
	}
	view := m.View()
	if !strings.Contains(view, "log unreadable") || !strings.Contains(view, "45 min countdown") {
		t.Fatalf("unexpected view:\n%s", view)
	}
}
