package out_test

import (
	"context"
	"errors"
	"path/filepath"
	"slices"
	"testing"

	preferencesout "hyprfocus/internal/modules/preferences/adapter/out"
	"hyprfocus/internal/modules/preferences/domain"
	"hyprfocus/internal/platform/settings"
)

func TestSettingsStoreRoundTripKeepsCalendar(t *testing.T) {
	t.Parallel()
	file := settings.NewFileStore(filepath.Join(t.TempDir(), "hyprfocus.yaml"))
	if err := file.Update(func(cfg *settings.Settings) error {
		cfg.Tasks = append(cfg.Tasks, settings.Task{Title: "write report"})
		cfg.BedtimeStart = "22:00"
		return nil
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	store := preferencesout.NewSettingsStore(file)
	ctx := context.Background()

	err := store.Update(ctx, func(s *domain.Snapshot) error {
		if _, err := s.AddGoal("Reading"); err != nil {
			return err
		}
		if _, err := s.AddFilter("Reading", "news.ycombinator.com"); err != nil {
			return err
		}
		return s.SetTheme("Reading", "gruvbox")
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	cfg, err := file.Load()
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !slices.Contains(cfg.Goals, "Reading") || cfg.GoalThemes["Reading"] != "gruvbox" {
		t.Fatalf("goal or theme not saved: %+v", cfg)
	}
	if !slices.Equal(cfg.Filters["Reading"], []string{"news.ycombinator.com"}) {
		t.Fatalf("filters not saved: %v", cfg.Filters)
	}
	if len(cfg.Tasks) != 1 || cfg.BedtimeStart != "22:00" {
		t.Fatalf("calendar settings must be untouched: tasks=%v bedtime=%s", cfg.Tasks, cfg.BedtimeStart)
	}
}

func TestSettingsStoreFailedUpdateWritesNothing(t *testing.T) {
	t.Parallel()
	file := settings.NewFileStore(filepath.Join(t.TempDir(), "hyprfocus.yaml"))
	store := preferencesout.NewSettingsStore(file)
	boom := errors.New("boom")

	err := store.Update(context.Background(), func(s *domain.Snapshot) error {
		s.Goals = nil
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	snap, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(snap.Goals) == 0 {
		t.Fatalf("default goals must survive a failed update")
	}
}
