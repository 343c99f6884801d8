package out

import (
	"context"
	"fmt"

	"hyprfocus/internal/modules/calendar/domain"
	calendarout "hyprfocus/internal/modules/calendar/port/out"
	"hyprfocus/internal/platform/settings"
)

// SettingsStore keeps the calendar inside the shared settings document:
// calendar_events, tasks and the bedtime pair.
type SettingsStore struct {
	store *settings.FileStore
}

func NewSettingsStore(store *settings.FileStore) calendarout.Store {
	return &SettingsStore{store: store}
}

func (s *SettingsStore) Load(_ context.Context) (domain.Snapshot, error) {
	cfg, err := s.store.Load()
	if err != nil {
		return domain.Snapshot{}, err
	}
	return toSnapshot(cfg)
}

func (s *SettingsStore) Update(_ context.Context, fn func(*domain.Snapshot) error) error {
	return s.store.Update(func(cfg *settings.Settings) error {
		snap, err := toSnapshot(*cfg)
		if err != nil {
			return err
		}
		if err := fn(&snap); err != nil {
			return err
		}
		fromSnapshot(snap, cfg)
		return nil
	})
}

func toSnapshot(cfg settings.Settings) (domain.Snapshot, error) {
	sleep, err := domain.ParseSleepWindow(cfg.BedtimeStart, cfg.BedtimeEnd)
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("read bedtime: %w", err)
	}
	snap := domain.Snapshot{
		Goals:  append([]string(nil), cfg.Goals...),
		Sleep:  sleep,
		Events: make([]domain.Event, 0, len(cfg.CalendarEvents)),
		Tasks:  make([]domain.Task, 0, len(cfg.Tasks)),
	}
	for _, e := range cfg.CalendarEvents {
		snap.Events = append(snap.Events, domain.Event{
			ID:        e.ID,
			Start:     e.Start,
			End:       e.End,
			Goal:      e.Goal,
			Intention: e.Intention,
		})
	}
	for _, t := range cfg.Tasks {
		snap.Tasks = append(snap.Tasks, domain.Task{Title: t.Title, Done: t.Done, Goal: t.Goal})
	}
	return snap, nil
}

func fromSnapshot(snap domain.Snapshot, cfg *settings.Settings) {
	cfg.CalendarEvents = make([]settings.CalendarEvent, 0, len(snap.Events))
	for _, e := range snap.Events {
		cfg.CalendarEvents = append(cfg.CalendarEvents, settings.CalendarEvent{
			ID:        e.ID,
			Start:     e.Start,
			End:       e.End,
			Goal:      e.Goal,
			Intention: e.Intention,
		})
	}
	cfg.Tasks = make([]settings.Task, 0, len(snap.Tasks))
	for _, t := range snap.Tasks {
		cfg.Tasks = append(cfg.Tasks, settings.Task{Title: t.Title, Done: t.Done, Goal: t.Goal})
	}
	cfg.BedtimeStart, cfg.BedtimeEnd = snap.Sleep.Format()
}
