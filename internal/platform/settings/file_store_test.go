package settings_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"hyprfocus/internal/platform/settings"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	t.Parallel()
	store := settings.NewFileStore(filepath.Join(t.TempDir(), "hyprfocus.yaml"))
	got, err := store.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Pomodoro.WorkMinutes != 25 || got.Pomodoro.ShortBreakMinutes != 5 || got.Pomodoro.LongBreakMinutes != 20 {
		t.Fatalf("unexpected pomodoro defaults: %+v", got.Pomodoro)
	}
	if !got.ShutdownFeedback || got.BedtimeStart != "23:00" || got.BedtimeEnd != "05:00" {
		t.Fatalf("unexpected defaults: %+v", got)
	}
}

func TestLoadOverlaysPartialDocument(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "hyprfocus.yaml")
	doc := "filters:\n  Work: [reddit.com]\nshutdown_feedback: false\npomodoro:\n  work_duration: 50\n"
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write settings: %v", err)
	}
	got, err := settings.NewFileStore(path).Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.ShutdownFeedback {
		t.Fatalf("expected shutdown_feedback override to false")
	}
	if got.Pomodoro.WorkMinutes != 50 || got.Pomodoro.LongBreakMinutes != 20 {
		t.Fatalf("unexpected pomodoro overlay: %+v", got.Pomodoro)
	}
	if len(got.Filters["Work"]) != 1 || got.Filters["Work"][0] != "reddit.com" {
		t.Fatalf("unexpected filters: %+v", got.Filters)
	}
	if len(got.Goals) != 2 {
		t.Fatalf("expected default goals to survive, got %v", got.Goals)
	}
}

func TestUpdateRoundTripsCalendarEvents(t *testing.T) {
	t.Parallel()
	store := settings.NewFileStore(filepath.Join(t.TempDir(), "cfg", "hyprfocus.yaml"))
	start := time.Date(2025, 3, 3, 9, 0, 0, 0, time.Local)
	err := store.Update(func(s *settings.Settings) error {
		s.CalendarEvents = append(s.CalendarEvents, settings.CalendarEvent{
			ID: "e1", Start: start, End: start.Add(time.Hour), Goal: "Work", Intention: "write report",
		})
		return nil
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	got, err := store.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got.CalendarEvents) != 1 || !got.CalendarEvents[0].Start.Equal(start) {
		t.Fatalf("unexpected events: %+v", got.CalendarEvents)
	}
}

func TestUpdateFailureWritesNothing(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "hyprfocus.yaml")
	store := settings.NewFileStore(path)
	boom := errors.New("boom")
	if err := store.Update(func(*settings.Settings) error { return boom }); !errors.Is(err, boom) {
		t.Fatalf("expected callback error, got %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected no settings file to be written")
	}
}
