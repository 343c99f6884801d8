package out

import (
	"context"
	"maps"
	"slices"

	"hyprfocus/internal/modules/preferences/domain"
	preferencesout "hyprfocus/internal/modules/preferences/port/out"
	"hyprfocus/internal/platform/settings"
)

// SettingsStore maps goals, goal_themes, filters, pomodoro and
// shutdown_feedback of the shared settings document.
type SettingsStore struct {
	store *settings.FileStore
}

func NewSettingsStore(store *settings.FileStore) preferencesout.Store {
	return &SettingsStore{store: store}
}

func (s *SettingsStore) Load(_ context.Context) (domain.Snapshot, error) {
	cfg, err := s.store.Load()
	if err != nil {
		return domain.Snapshot{}, err
	}
	return toSnapshot(cfg), nil
}

func (s *SettingsStore) Update(_ context.Context, fn func(*domain.Snapshot) error) error {
	return s.store.Update(func(cfg *settings.Settings) error {
		snap := toSnapshot(*cfg)
		if err := fn(&snap); err != nil {
			return err
		}
		fromSnapshot(snap, cfg)
		return nil
	})
}

func toSnapshot(cfg settings.Settings) domain.Snapshot {
	filters := make(map[string][]string, len(cfg.Filters))
	for goal, list := range cfg.Filters {
		filters[goal] = slices.Clone(list)
	}
	return domain.Snapshot{
		Goals:   slices.Clone(cfg.Goals),
		Themes:  maps.Clone(cfg.GoalThemes),
		Filters: filters,
		Pomodoro: domain.Pomodoro{
			WorkMinutes:       cfg.Pomodoro.WorkMinutes,
			ShortBreakMinutes: cfg.Pomodoro.ShortBreakMinutes,
			LongBreakMinutes:  cfg.Pomodoro.LongBreakMinutes,
			IntentionPopup:    cfg.Pomodoro.IntentionPopup,
		},
		ShutdownFeedback: cfg.ShutdownFeedback,
	}
}

func fromSnapshot(snap domain.Snapshot, cfg *settings.Settings) {
	cfg.Goals = snap.Goals
	cfg.GoalThemes = snap.Themes
	if cfg.GoalThemes == nil {
		cfg.GoalThemes = map[string]string{}
	}
	cfg.Filters = snap.Filters
	if cfg.Filters == nil {
		cfg.Filters = map[string][]string{}
	}
	cfg.Pomodoro = settings.Pomodoro{
		WorkMinutes:       snap.Pomodoro.WorkMinutes,
		ShortBreakMinutes: snap.Pomodoro.ShortBreakMinutes,
		LongBreakMinutes:  snap.Pomodoro.LongBreakMinutes,
		IntentionPopup:    snap.Pomodoro.IntentionPopup,
	}
	cfg.ShutdownFeedback = snap.ShutdownFeedback
}
