package calendar_test

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"hyprfocus/internal/modules/calendar/dto"
	calendarview "hyprfocus/internal/ui/views/calendar"
)

var monday = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

type fakePort struct {
	gestures []dto.GestureInput
	reply    func(dto.GestureInput) dto.GestureOutcome
	deleted  []string
	drops    []dto.DropInput
}

func (f *fakePort) WeekOf(context.Context, time.Time) (dto.WeekOutput, error) {
	return dto.WeekOutput{Start: monday}, nil
}

func (f *fakePort) Gesture(_ context.Context, in dto.GestureInput) (dto.GestureOutcome, error) {
	f.gestures = append(f.gestures, in)
	return f.reply(in), nil
}

func (f *fakePort) CreateAt(_ context.Context, start, end time.Time, goal, intention string) (dto.EventView, error) {
	return dto.EventView{Start: start, End: end, Goal: goal, Intention: intention}, nil
}

func (f *fakePort) Delete(_ context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakePort) Tasks(context.Context) ([]dto.TaskView, error) { return nil, nil }

func (f *fakePort) DropTaskAt(_ context.Context, task int, week time.Time, day, slot int) (dto.DropOutput, error) {
	f.drops = append(f.drops, dto.DropInput{Task: task, Week: week, Day: day, Slot: slot})
	return dto.DropOutput{Placed: true}, nil
}

// With a 120x40 view the day columns are 11 cells wide from x=6 and the
// first visible row (y=2) is 07:00.
func newView(port *fakePort) calendarview.Model {
	m := calendarview.New(port).WithClock(func() time.Time { return monday.Add(10 * time.Hour) })
	m, _ = m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m, _ = m.Update(calendarview.LoadedMsg{
		Week: dto.WeekOutput{
			Start: monday,
			Goals: []string{"Work", "Study"},
			Events: []dto.EventView{
				{ID: "deep", Goal: "Work", Day: 1, StartSlot: 36, EndSlot: 40},
				{ID: "short", Goal: "Study", Day: 2, StartSlot: 40, EndSlot: 42},
			},
		},
		Tasks: []dto.TaskView{{Index: 1, Title: "write report"}},
	})
	return m
}

func mouse(action tea.MouseAction, button tea.MouseButton, x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: action, Button: button}
}

func TestDragOnEmptyCellCreatesAndOpensEditor(t *testing.T) {
	t.Parallel()
	port := &fakePort{reply: func(in dto.GestureInput) dto.GestureOutcome {
		if in.Kind == "end" {
			return dto.GestureOutcome{Kind: "open-editor", Gesture: "create", Day: 0, StartSlot: 32, EndSlot: 36}
		}
		return dto.GestureOutcome{Kind: "preview", Gesture: "create", Day: 0, StartSlot: 32, EndSlot: 34}
	}}
	m := newView(port)

	m, _ = m.Update(mouse(tea.MouseActionPress, tea.MouseButtonLeft, 8, 6))
	m, _ = m.Update(mouse(tea.MouseActionMotion, tea.MouseButtonLeft, 8, 9))
	m, _ = m.Update(mouse(tea.MouseActionRelease, tea.MouseButtonLeft, 8, 9))

	if len(port.gestures) != 3 {
		t.Fatalf("expected begin, update and end, got %+v", port.gestures)
	}
	begin := port.gestures[0]
	if begin.Kind != "begin" || begin.Gesture != "create" || begin.Day != 0 || begin.Slot != 32 || !begin.Week.Equal(monday) {
		t.Fatalf("unexpected begin %+v", begin)
	}
	if update := port.gestures[1]; update.Kind != "update" || update.OffsetY != 3 || update.RowHeight != 1 {
		t.Fatalf("unexpected update %+v", update)
	}
	if !m.Capturing() {
		t.Fatalf("releasing a new range must open the editor")
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.Capturing() {
		t.Fatalf("esc must close the editor")
	}
}

func TestPressOnEventPicksGestureByRow(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name string
		x, y int
		want string
	}{
		{"top edge", 18, 10, "resize-top"},
		{"middle", 18, 11, "move"},
		{"bottom edge", 18, 13, "resize-bottom"},
		{"short event", 29, 14, "move"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			port := &fakePort{reply: func(in dto.GestureInput) dto.GestureOutcome {
				return dto.GestureOutcome{Kind: "preview", Gesture: in.Gesture, EventID: in.EventID}
			}}
			m := newView(port)
			m.Update(mouse(tea.MouseActionPress, tea.MouseButtonLeft, tc.x, tc.y))
			if len(port.gestures) != 1 || port.gestures[0].Gesture != tc.want {
				t.Fatalf("expected %s, got %+v", tc.want, port.gestures)
			}
		})
	}
}

func TestRejectedBeginStartsNoGesture(t *testing.T) {
	t.Parallel()
	port := &fakePort{reply: func(dto.GestureInput) dto.GestureOutcome {
		return dto.GestureOutcome{Kind: "rejected"}
	}}
	m := newView(port)
	m, _ = m.Update(mouse(tea.MouseActionPress, tea.MouseButtonLeft, 8, 6))
	m, _ = m.Update(mouse(tea.MouseActionMotion, tea.MouseButtonLeft, 8, 8))
	m.Update(mouse(tea.MouseActionRelease, tea.MouseButtonLeft, 8, 8))
	if len(port.gestures) != 1 {
		t.Fatalf("motion after a rejected begin must not reach the scheduler, got %+v", port.gestures)
	}
}

func TestRightClickDeletesEvent(t *testing.T) {
	t.Parallel()
	port := &fakePort{}
	m := newView(port)
	_, cmd := m.Update(mouse(tea.MouseActionPress, tea.MouseButtonRight, 18, 11))
	if cmd == nil {
		t.Fatalf("expected a delete command")
	}
	if msg, ok := cmd().(calendarview.ChangedMsg); !ok || msg.Err != nil {
		t.Fatalf("unexpected result %+v", msg)
	}
	if len(port.deleted) != 1 || port.deleted[0] != "deep" {
		t.Fatalf("unexpected deletes %v", port.deleted)
	}
}

func TestTaskDragDropsOnReleaseCell(t *testing.T) {
	t.Parallel()
	port := &fakePort{}
	m := newView(port)
	m, _ = m.Update(mouse(tea.MouseActionPress, tea.MouseButtonLeft, 90, 2))
	_, cmd := m.Update(mouse(tea.MouseActionRelease, tea.MouseButtonLeft, 40, 4))
	if cmd == nil {
		t.Fatalf("expected a drop command")
	}
	cmd()
	if len(port.drops) != 1 {
		t.Fatalf("expected one drop, got %+v", port.drops)
	}
	if d := port.drops[0]; d.Task != 1 || d.Day != 3 || d.Slot != 30 || !d.Week.Equal(monday) {
		t.Fatalf("unexpected drop %+v", d)
	}
	if len(port.gestures) != 0 {
		t.Fatalf("a task drag is not a grid gesture")
	}
}
