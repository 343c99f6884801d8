package calendar

import (
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

// editor collects goal and intention for a freshly drawn range.
type editor struct {
	form      *huh.Form
	day       int
	start     int
	end       int
	goal      string
	intention string
	done      bool
	cancelled bool
}

func newEditor(goals []string, day, start, end int) *editor {
	e := &editor{day: day, start: start, end: end}
	var goalField huh.Field
	if len(goals) > 0 {
		e.goal = goals[0]
		goalField = huh.NewSelect[string]().
			Title("Goal").
			Options(huh.NewOptions(goals...)...).
			Value(&e.goal)
	} else {
		goalField = huh.NewInput().
			Title("Goal").
			Value(&e.goal).
			Validate(func(s string) error {
				if strings.TrimSpace(s) == "" {
					return errors.New("goal required")
				}
				return nil
			})
	}
	e.form = huh.NewForm(
		huh.NewGroup(
			goalField,
			huh.NewInput().
				Title("Intention").
				Placeholder("what will you get done?").
				Value(&e.intention),
		),
	).WithWidth(48)
	return e
}

func (e *editor) Init() tea.Cmd { return e.form.Init() }

func (e *editor) Update(msg tea.Msg) tea.Cmd {
	if k, ok := msg.(tea.KeyMsg); ok && (k.String() == "esc" || k.String() == "ctrl+c") {
		e.cancelled = true
		e.done = true
		return nil
	}
	model, cmd := e.form.Update(msg)
	if f, ok := model.(*huh.Form); ok {
		e.form = f
	}
	switch e.form.State {
	case huh.StateCompleted:
		e.done = true
		return nil
	case huh.StateAborted:
		e.cancelled = true
		e.done = true
		return nil
	}
	return cmd
}

func (e *editor) View() string { return e.form.View() }
