package service

import (
	"context"
	"fmt"
	"log/slog"

	"hyprfocus/internal/modules/preferences/domain"
	preferencesout "hyprfocus/internal/modules/preferences/port/out"
	apperrors "hyprfocus/internal/platform/errors"
	"hyprfocus/internal/platform/logging"
)

// PreferencesService edits goals, their themes and block lists, and the
// pomodoro cadence. A running session reads these when it starts.
type PreferencesService struct {
	store  preferencesout.Store
	logger *slog.Logger
}

func NewPreferencesService(store preferencesout.Store, logger *slog.Logger) *PreferencesService {
	return &PreferencesService{store: store, logger: logging.OrDiscard(logger)}
}

func (s *PreferencesService) Snapshot(ctx context.Context) (domain.Snapshot, error) {
	return s.store.Load(ctx)
}

func (s *PreferencesService) Profile(ctx context.Context, goal string) (domain.Profile, error) {
	snap, err := s.store.Load(ctx)
	if err != nil {
		return domain.Profile{}, err
	}
	if !snap.HasGoal(goal) {
		return domain.Profile{}, fmt.Errorf("%w: goal %q", apperrors.ErrNotFound, goal)
	}
	return snap.Profile(goal), nil
}

func (s *PreferencesService) AddGoal(ctx context.Context, name string) (bool, error) {
	var added bool
	err := s.store.Update(ctx, func(snap *domain.Snapshot) error {
		var err error
		added, err = snap.AddGoal(name)
		return err
	})
	if err == nil && added {
		s.logger.Info("goal added", "goal", name)
	}
	return added, err
}

func (s *PreferencesService) DeleteGoal(ctx context.Context, name string) error {
	err := s.store.Update(ctx, func(snap *domain.Snapshot) error {
		return snap.DeleteGoal(name)
	})
	if err == nil {
		s.logger.Info("goal deleted", "goal", name)
	}
	return err
}

func (s *PreferencesService) SetTheme(ctx context.Context, goal, theme string) error {
	return s.store.Update(ctx, func(snap *domain.Snapshot) error {
		return snap.SetTheme(goal, theme)
	})
}

func (s *PreferencesService) AddFilter(ctx context.Context, goal, domainName string) (bool, error) {
	var added bool
	err := s.store.Update(ctx, func(snap *domain.Snapshot) error {
		var err error
		added, err = snap.AddFilter(goal, domainName)
		return err
	})
	if err == nil && added {
		s.logger.Info("filter added", "goal", goal, "domain", domainName)
	}
	return added, err
}

func (s *PreferencesService) DeleteFilter(ctx context.Context, goal, domainName string) error {
	return s.store.Update(ctx, func(snap *domain.Snapshot) error {
		return snap.DeleteFilter(goal, domainName)
	})
}

func (s *PreferencesService) SetPomodoro(ctx context.Context, patch domain.PomodoroPatch) (domain.Pomodoro, error) {
	if patch.Empty() {
		return domain.Pomodoro{}, fmt.Errorf("%w: nothing to change", apperrors.ErrInvalidInput)
	}
	var out domain.Pomodoro
	err := s.store.Update(ctx, func(snap *domain.Snapshot) error {
		if err := snap.ApplyPomodoro(patch); err != nil {
			return err
		}
		out = snap.Pomodoro
		return nil
	})
	if err != nil {
		return domain.Pomodoro{}, err
	}
	s.logger.Info("pomodoro cadence updated", "work", out.WorkMinutes, "short", out.ShortBreakMinutes, "long", out.LongBreakMinutes)
	return out, nil
}

func (s *PreferencesService) SetShutdownFeedback(ctx context.Context, enabled bool) error {
	return s.store.Update(ctx, func(snap *domain.Snapshot) error {
		snap.ShutdownFeedback = enabled
		return nil
	})
}
