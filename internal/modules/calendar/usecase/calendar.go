package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"hyprfocus/internal/modules/calendar/domain"
	"hyprfocus/internal/modules/calendar/dto"
	calendarin "hyprfocus/internal/modules/calendar/port/in"
	"hyprfocus/internal/modules/calendar/service"
	apperrors "hyprfocus/internal/platform/errors"
)

type Interactor struct {
	svc *service.CalendarService

	// mu serializes pointer input into the one interactive scheduler.
	mu        sync.Mutex
	scheduler *service.Scheduler
}

func NewInteractor(svc *service.CalendarService) calendarin.Usecase {
	return &Interactor{svc: svc, scheduler: service.NewScheduler(svc)}
}

func (i *Interactor) Week(ctx context.Context, week time.Time) (dto.WeekOutput, error) {
	grid, goals, err := i.svc.Week(ctx, week)
	if err != nil {
		return dto.WeekOutput{}, err
	}
	out := dto.WeekOutput{
		Start:        grid.Week,
		Goals:        goals,
		SleepEnabled: grid.Sleep.Enabled(),
		SleepStart:   grid.Sleep.Start,
		SleepEnd:     grid.Sleep.End,
	}
	for _, e := range grid.InWeek() {
		out.Events = append(out.Events, toView(grid.Week, e))
	}
	return out, nil
}

func (i *Interactor) Create(ctx context.Context, input dto.CreateInput) (dto.EventView, error) {
	e, err := i.svc.Create(ctx, domain.Event{
		Start:     input.Start,
		End:       input.End,
		Goal:      input.Goal,
		Intention: input.Intention,
	})
	if err != nil {
		return dto.EventView{}, err
	}
	return toView(domain.WeekStart(e.Start), e), nil
}

func (i *Interactor) Update(ctx context.Context, input dto.UpdateInput) (dto.EventView, error) {
	e, err := i.svc.Update(ctx, input.ID, input.Goal, input.Intention)
	if err != nil {
		return dto.EventView{}, err
	}
	return toView(domain.WeekStart(e.Start), e), nil
}

func (i *Interactor) Delete(ctx context.Context, id string) error {
	return i.svc.Delete(ctx, id)
}

func (i *Interactor) Gesture(ctx context.Context, input dto.GestureInput) (dto.GestureOutcome, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	out, err := i.scheduler.Handle(ctx, toInput(input))
	if err != nil {
		return dto.GestureOutcome{}, err
	}
	return toOutcome(out), nil
}

// Shift replays a keyboard or CLI edit as a begin, update, end sequence so
// it follows exactly the rules a drag does.
func (i *Interactor) Shift(ctx context.Context, input dto.ShiftInput) (dto.GestureOutcome, error) {
	kind := domain.GestureMove
	switch input.Edge {
	case "":
	case "top":
		kind = domain.GestureResizeTop
	case "bottom":
		kind = domain.GestureResizeBottom
	default:
		return dto.GestureOutcome{}, fmt.Errorf("%w: unknown edge %q", apperrors.ErrInvalidInput, input.Edge)
	}
	inputs := make(chan domain.Input, 3)
	inputs <- domain.Input{Kind: domain.InputBegin, Gesture: kind, EventID: input.EventID}
	inputs <- domain.Input{Kind: domain.InputUpdate, OffsetY: float64(input.Slots), RowHeight: 1}
	inputs <- domain.Input{Kind: domain.InputEnd}
	close(inputs)

	var last domain.Outcome
	if err := service.NewScheduler(i.svc).Run(ctx, inputs, func(o domain.Outcome) { last = o }); err != nil {
		return dto.GestureOutcome{}, err
	}
	return toOutcome(last), nil
}

func (i *Interactor) DropTask(ctx context.Context, input dto.DropInput) (dto.DropOutput, error) {
	e, placed, err := i.svc.DropTask(ctx, input.Task, input.Week, input.Day, input.Slot)
	if err != nil || !placed {
		return dto.DropOutput{}, err
	}
	return dto.DropOutput{Placed: true, Event: toView(domain.WeekStart(e.Start), e)}, nil
}

func (i *Interactor) AddTask(ctx context.Context, input dto.TaskInput) (dto.TaskView, error) {
	task, index, err := i.svc.AddTask(ctx, input.Title, input.Goal)
	if err != nil {
		return dto.TaskView{}, err
	}
	return toTaskView(index, task), nil
}

func (i *Interactor) ListTasks(ctx context.Context) ([]dto.TaskView, error) {
	tasks, err := i.svc.Tasks(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TaskView, 0, len(tasks))
	for n, task := range tasks {
		out = append(out, toTaskView(n+1, task))
	}
	return out, nil
}

func (i *Interactor) ToggleTask(ctx context.Context, index int) (dto.TaskView, error) {
	task, err := i.svc.ToggleTask(ctx, index)
	if err != nil {
		return dto.TaskView{}, err
	}
	return toTaskView(index, task), nil
}

func (i *Interactor) DeleteTask(ctx context.Context, index int) error {
	return i.svc.DeleteTask(ctx, index)
}

func (i *Interactor) SetSleepWindow(ctx context.Context, input dto.SleepInput) error {
	_, err := i.svc.SetSleepWindow(ctx, input.Start, input.End)
	return err
}

func (i *Interactor) LaunchDue(ctx context.Context) (dto.LaunchOutput, error) {
	e, minutes, err := i.svc.LaunchDue(ctx)
	if err != nil {
		return dto.LaunchOutput{}, err
	}
	return dto.LaunchOutput{EventID: e.ID, Goal: e.Goal, Intention: e.Intention, Minutes: minutes}, nil
}

func toView(week time.Time, e domain.Event) dto.EventView {
	p := domain.Place(week, e)
	return dto.EventView{
		ID:        e.ID,
		Goal:      e.Goal,
		Intention: e.Intention,
		Start:     e.Start,
		End:       e.End,
		Day:       p.Day,
		StartSlot: p.Start,
		EndSlot:   p.End,
	}
}

func toTaskView(index int, task domain.Task) dto.TaskView {
	return dto.TaskView{Index: index, Title: task.Title, Done: task.Done, Goal: task.Goal}
}

func toInput(in dto.GestureInput) domain.Input {
	return domain.Input{
		Kind:      domain.InputKind(in.Kind),
		Gesture:   domain.GestureKind(in.Gesture),
		Week:      in.Week,
		Day:       in.Day,
		Slot:      in.Slot,
		EventID:   in.EventID,
		OffsetY:   in.OffsetY,
		RowHeight: in.RowHeight,
	}
}

func toOutcome(o domain.Outcome) dto.GestureOutcome {
	return dto.GestureOutcome{
		Kind:      string(o.Kind),
		Gesture:   string(o.Gesture),
		EventID:   o.EventID,
		Day:       o.Day,
		StartSlot: o.Start,
		EndSlot:   o.End,
		Refused:   o.Refused,
	}
}
