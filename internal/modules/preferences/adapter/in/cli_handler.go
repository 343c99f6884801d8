package in

import (
	"context"
	"strings"

	"hyprfocus/internal/modules/preferences/dto"
	preferencesin "hyprfocus/internal/modules/preferences/port/in"
)

type CLIHandler struct {
	usecase preferencesin.Usecase
}

func NewCLIHandler(usecase preferencesin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Overview(ctx context.Context) (dto.Overview, error) {
	return h.usecase.Overview(ctx)
}

func (h CLIHandler) Goal(ctx context.Context, name string) (dto.GoalView, error) {
	return h.usecase.Goal(ctx, name)
}

func (h CLIHandler) AddGoal(ctx context.Context, name string) (bool, error) {
	return h.usecase.AddGoal(ctx, name)
}

func (h CLIHandler) DeleteGoal(ctx context.Context, name string) error {
	return h.usecase.DeleteGoal(ctx, name)
}

func (h CLIHandler) SetTheme(ctx context.Context, goal, theme string) error {
	return h.usecase.SetTheme(ctx, goal, theme)
}

// AddFilters accepts domains as separate arguments or comma-joined and
// returns how many were new.
func (h CLIHandler) AddFilters(ctx context.Context, goal string, args []string) (int, error) {
	added := 0
	for _, arg := range args {
		for _, d := range strings.Split(arg, ",") {
			if strings.TrimSpace(d) == "" {
				continue
			}
			ok, err := h.usecase.AddFilter(ctx, dto.FilterInput{Goal: goal, Domain: d})
			if err != nil {
				return added, err
			}
			if ok {
				added++
			}
		}
	}
	return added, nil
}

func (h CLIHandler) DeleteFilter(ctx context.Context, goal, domain string) error {
	return h.usecase.DeleteFilter(ctx, dto.FilterInput{Goal: goal, Domain: domain})
}

func (h CLIHandler) SetPomodoro(ctx context.Context, input dto.PomodoroInput) (dto.PomodoroView, error) {
	return h.usecase.SetPomodoro(ctx, input)
}

func (h CLIHandler) SetShutdownFeedback(ctx context.Context, enabled bool) error {
	return h.usecase.SetShutdownFeedback(ctx, enabled)
}
