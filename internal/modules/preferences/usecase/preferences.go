package usecase

import (
	"context"

	"hyprfocus/internal/modules/preferences/domain"
	"hyprfocus/internal/modules/preferences/dto"
	preferencesin "hyprfocus/internal/modules/preferences/port/in"
	"hyprfocus/internal/modules/preferences/service"
)

type Interactor struct {
	svc *service.PreferencesService
}

func NewInteractor(svc *service.PreferencesService) preferencesin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Overview(ctx context.Context) (dto.Overview, error) {
	snap, err := i.svc.Snapshot(ctx)
	if err != nil {
		return dto.Overview{}, err
	}
	out := dto.Overview{Pomodoro: toPomodoroView(snap.Pomodoro), ShutdownFeedback: snap.ShutdownFeedback}
	for _, p := range snap.Profiles() {
		out.Goals = append(out.Goals, toGoalView(p))
	}
	return out, nil
}

func (i *Interactor) Goal(ctx context.Context, name string) (dto.GoalView, error) {
	p, err := i.svc.Profile(ctx, name)
	if err != nil {
		return dto.GoalView{}, err
	}
	return toGoalView(p), nil
}

func (i *Interactor) AddGoal(ctx context.Context, name string) (bool, error) {
	return i.svc.AddGoal(ctx, name)
}

func (i *Interactor) DeleteGoal(ctx context.Context, name string) error {
	return i.svc.DeleteGoal(ctx, name)
}

func (i *Interactor) SetTheme(ctx context.Context, goal, theme string) error {
	return i.svc.SetTheme(ctx, goal, theme)
}

func (i *Interactor) AddFilter(ctx context.Context, input dto.FilterInput) (bool, error) {
	return i.svc.AddFilter(ctx, input.Goal, input.Domain)
}

func (i *Interactor) DeleteFilter(ctx context.Context, input dto.FilterInput) error {
	return i.svc.DeleteFilter(ctx, input.Goal, input.Domain)
}

func (i *Interactor) SetPomodoro(ctx context.Context, input dto.PomodoroInput) (dto.PomodoroView, error) {
	p, err := i.svc.SetPomodoro(ctx, domain.PomodoroPatch{
		WorkMinutes:       input.WorkMinutes,
		ShortBreakMinutes: input.ShortBreakMinutes,
		LongBreakMinutes:  input.LongBreakMinutes,
		IntentionPopup:    input.IntentionPopup,
	})
	if err != nil {
		return dto.PomodoroView{}, err
	}
	return toPomodoroView(p), nil
}

func (i *Interactor) SetShutdownFeedback(ctx context.Context, enabled bool) error {
	return i.svc.SetShutdownFeedback(ctx, enabled)
}

func toGoalView(p domain.Profile) dto.GoalView {
	return dto.GoalView{Name: p.Goal, Theme: p.Theme, Domains: p.Domains}
}

func toPomodoroView(p domain.Pomodoro) dto.PomodoroView {
	return dto.PomodoroView{
		WorkMinutes:       p.WorkMinutes,
		ShortBreakMinutes: p.ShortBreakMinutes,
		LongBreakMinutes:  p.LongBreakMinutes,
		IntentionPopup:    p.IntentionPopup,
	}
}
