package in

import (
	"context"
	"time"

	"hyprfocus/internal/modules/calendar/dto"
)

type Usecase interface {
	Week(ctx context.Context, week time.Time) (dto.WeekOutput, error)
	Create(ctx context.Context, input dto.CreateInput) (dto.EventView, error)
	Update(ctx context.Context, input dto.UpdateInput) (dto.EventView, error)
	Delete(ctx context.Context, id string) error
	Gesture(ctx context.Context, input dto.GestureInput) (dto.GestureOutcome, error)
	Shift(ctx context.Context, input dto.ShiftInput) (dto.GestureOutcome, error)
	DropTask(ctx context.Context, input dto.DropInput) (dto.DropOutput, error)
	AddTask(ctx context.Context, input dto.TaskInput) (dto.TaskView, error)
	ListTasks(ctx context.Context) ([]dto.TaskView, error)
	ToggleTask(ctx context.Context, index int) (dto.TaskView, error)
	DeleteTask(ctx context.Context, index int) error
	SetSleepWindow(ctx context.Context, input dto.SleepInput) error
	LaunchDue(ctx context.Context) (dto.LaunchOutput, error)
}
