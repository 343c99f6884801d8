package in

import (
	"context"
	"fmt"
	"time"

	"hyprfocus/internal/modules/calendar/dto"
	calendarin "hyprfocus/internal/modules/calendar/port/in"
	apperrors "hyprfocus/internal/platform/errors"
)

const (
	dateLayout  = "2006-01-02"
	clockLayout = "15:04"
)

type CLIHandler struct {
	usecase calendarin.Usecase
}

func NewCLIHandler(usecase calendarin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

// Week accepts an empty string for the current week or any date inside the
// wanted week.
func (h CLIHandler) Week(ctx context.Context, date string) (dto.WeekOutput, error) {
	var at time.Time
	if date != "" {
		parsed, err := time.ParseInLocation(dateLayout, date, time.Local)
		if err != nil {
			return dto.WeekOutput{}, fmt.Errorf("%w: date must look like 2006-01-02", apperrors.ErrInvalidInput)
		}
		at = parsed
	}
	return h.usecase.Week(ctx, at)
}

// WeekOf is Week for callers that already hold a time.
func (h CLIHandler) WeekOf(ctx context.Context, at time.Time) (dto.WeekOutput, error) {
	return h.usecase.Week(ctx, at)
}

// Create takes the day as YYYY-MM-DD and both edges as HH:MM. An end of
// 00:00 means midnight at the end of the day.
func (h CLIHandler) Create(ctx context.Context, date, start, end, goal, intention string) (dto.EventView, error) {
	from, err := at(date, start)
	if err != nil {
		return dto.EventView{}, err
	}
	var to time.Time
	if end == "00:00" || end == "24:00" {
		y, m, d := from.Date()
		to = time.Date(y, m, d+1, 0, 0, 0, 0, from.Location())
	} else if to, err = at(date, end); err != nil {
		return dto.EventView{}, err
	}
	return h.usecase.Create(ctx, dto.CreateInput{Start: from, End: to, Goal: goal, Intention: intention})
}

// CreateAt commits a range chosen on the grid, as the editor does after a
// create gesture.
func (h CLIHandler) CreateAt(ctx context.Context, start, end time.Time, goal, intention string) (dto.EventView, error) {
	return h.usecase.Create(ctx, dto.CreateInput{Start: start, End: end, Goal: goal, Intention: intention})
}

func (h CLIHandler) Edit(ctx context.Context, id, goal, intention string) (dto.EventView, error) {
	return h.usecase.Update(ctx, dto.UpdateInput{ID: id, Goal: goal, Intention: intention})
}

func (h CLIHandler) Delete(ctx context.Context, id string) error {
	return h.usecase.Delete(ctx, id)
}

func (h CLIHandler) Move(ctx context.Context, id string, slots int) (dto.GestureOutcome, error) {
	return h.usecase.Shift(ctx, dto.ShiftInput{EventID: id, Slots: slots})
}

func (h CLIHandler) Resize(ctx context.Context, id, edge string, slots int) (dto.GestureOutcome, error) {
	return h.usecase.Shift(ctx, dto.ShiftInput{EventID: id, Edge: edge, Slots: slots})
}

func (h CLIHandler) Gesture(ctx context.Context, input dto.GestureInput) (dto.GestureOutcome, error) {
	return h.usecase.Gesture(ctx, input)
}

// DropTask places task number task (1-based) at the given day and time.
func (h CLIHandler) DropTask(ctx context.Context, task int, date, clock string) (dto.DropOutput, error) {
	when, err := at(date, clock)
	if err != nil {
		return dto.DropOutput{}, err
	}
	day := (int(when.Weekday()) + 6) % 7
	y, m, d := when.Date()
	week := time.Date(y, m, d-day, 0, 0, 0, 0, when.Location())
	slot := (when.Hour()*60 + when.Minute()) / 15
	return h.usecase.DropTask(ctx, dto.DropInput{Task: task, Week: week, Day: day, Slot: slot})
}

func (h CLIHandler) DropTaskAt(ctx context.Context, task int, week time.Time, day, slot int) (dto.DropOutput, error) {
	return h.usecase.DropTask(ctx, dto.DropInput{Task: task, Week: week, Day: day, Slot: slot})
}

func (h CLIHandler) AddTask(ctx context.Context, title, goal string) (dto.TaskView, error) {
	return h.usecase.AddTask(ctx, dto.TaskInput{Title: title, Goal: goal})
}

func (h CLIHandler) Tasks(ctx context.Context) ([]dto.TaskView, error) {
	return h.usecase.ListTasks(ctx)
}

func (h CLIHandler) ToggleTask(ctx context.Context, index int) (dto.TaskView, error) {
	return h.usecase.ToggleTask(ctx, index)
}

func (h CLIHandler) DeleteTask(ctx context.Context, index int) error {
	return h.usecase.DeleteTask(ctx, index)
}

func (h CLIHandler) Sleep(ctx context.Context, start, end string) error {
	return h.usecase.SetSleepWindow(ctx, dto.SleepInput{Start: start, End: end})
}

func (h CLIHandler) LaunchDue(ctx context.Context) (dto.LaunchOutput, error) {
	return h.usecase.LaunchDue(ctx)
}

func at(date, clock string) (time.Time, error) {
	day := time.Now()
	if date != "" {
		parsed, err := time.ParseInLocation(dateLayout, date, time.Local)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: date must look like 2006-01-02", apperrors.ErrInvalidInput)
		}
		day = parsed
	}
	hm, err := time.Parse(clockLayout, clock)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: time must look like 15:04", apperrors.ErrInvalidInput)
	}
	y, m, d := day.Date()
	return time.Date(y, m, d, hm.Hour(), hm.Minute(), 0, 0, time.Local), nil
}
