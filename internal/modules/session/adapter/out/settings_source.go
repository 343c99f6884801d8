package out

import (
	"context"
	"time"

	"hyprfocus/internal/modules/session/domain"
	sessionout "hyprfocus/internal/modules/session/port/out"
	"hyprfocus/internal/platform/settings"
)

type SettingsSource struct {
	store *settings.FileStore
}

func NewSettingsSource(store *settings.FileStore) sessionout.SettingsSource {
	return &SettingsSource{store: store}
}

func (s *SettingsSource) Profile(_ context.Context, goal string) (domain.Profile, error) {
	cfg, err := s.store.Load()
	if err != nil {
		return domain.Profile{Goal: goal}, err
	}
	return domain.Profile{
		Goal:    goal,
		Domains: append([]string(nil), cfg.Filters[goal]...),
		Theme:   cfg.GoalThemes[goal],
	}, nil
}

func (s *SettingsSource) Preferences(_ context.Context) (domain.Preferences, error) {
	cfg, err := s.store.Load()
	if err != nil {
		return domain.Preferences{}, err
	}
	return domain.Preferences{
		Cadence: domain.Cadence{
			Work:       time.Duration(cfg.Pomodoro.WorkMinutes) * time.Minute,
			ShortBreak: time.Duration(cfg.Pomodoro.ShortBreakMinutes) * time.Minute,
			LongBreak:  time.Duration(cfg.Pomodoro.LongBreakMinutes) * time.Minute,
		},
		IntentionPopup:   cfg.Pomodoro.IntentionPopup,
		AdBlocking:       cfg.AdBlocking,
		ShutdownFeedback: cfg.ShutdownFeedback,
	}, nil
}
