package in

import (
	"context"

	"hyprfocus/internal/modules/preferences/dto"
)

type Usecase interface {
	Overview(ctx context.Context) (dto.Overview, error)
	Goal(ctx context.Context, name string) (dto.GoalView, error)
	AddGoal(ctx context.Context, name string) (bool, error)
	DeleteGoal(ctx context.Context, name string) error
	SetTheme(ctx context.Context, goal, theme string) error
	AddFilter(ctx context.Context, input dto.FilterInput) (bool, error)
	DeleteFilter(ctx context.Context, input dto.FilterInput) error
	SetPomodoro(ctx context.Context, input dto.PomodoroInput) (dto.PomodoroView, error)
	SetShutdownFeedback(ctx context.Context, enabled bool) error
}
