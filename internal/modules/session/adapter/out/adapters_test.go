package out_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	sessionout "hyprfocus/internal/modules/session/adapter/out"
	"hyprfocus/internal/modules/session/domain"
	apperrors "hyprfocus/internal/platform/errors"
	"hyprfocus/internal/platform/settings"
)

func TestDescriptorStoreRoundTripAndRemove(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "state", "session.json")
	store := sessionout.NewFileDescriptorStore(path)

	if _, err := store.Load(ctx); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not found before launch, got %v", err)
	}
	want := domain.Descriptor{Goal: "Work", Intention: "Ship", Duration: 50, Pomodoro: true}
	if err := store.Save(ctx, want); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := store.Load(ctx)
	if err != nil || got != want {
		t.Fatalf("expected %+v, got %+v (%v)", want, got, err)
	}
	if err := store.Remove(ctx); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := store.Remove(ctx); err != nil {
		t.Fatalf("second remove must be a no-op: %v", err)
	}
	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("descriptor file must be gone, stat err %v", err)
	}
}

func TestDescriptorStoreReadsHandWrittenFile(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "session.json")
	if err := os.WriteFile(path, []byte(`{"goal":"Study","intention":"Read","duration":"25","pomodoro":"false"}`), 0o644); err != nil {
		t.Fatalf("seed: %v", err)
	}
	got, err := sessionout.NewFileDescriptorStore(path).Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Duration != 25 || got.Pomodoro || got.Goal != "Study" {
		t.Fatalf("unexpected descriptor %+v", got)
	}
}

func TestEventLogConcurrentAppendsAndTail(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "events.jsonl")
	log := sessionout.NewJSONLEventLog(path, nil)
	at := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			e := domain.SegmentEvent(at.Add(time.Duration(i)*time.Minute), "Work", fmt.Sprintf("segment-%d", i))
			if err := log.Append(ctx, e); err != nil {
				t.Errorf("append: %v", err)
			}
		}(i)
	}
	wg.Wait()

	all, err := log.Tail(ctx, 0)
	if err != nil {
		t.Fatalf("tail: %v", err)
	}
	if len(all) != 20 {
		t.Fatalf("expected 20 intact records, got %d", len(all))
	}
	last, _ := log.Tail(ctx, 3)
	if len(last) != 3 || last[2].Intention != all[19].Intention || last[0].Intention != all[17].Intention {
		t.Fatalf("tail limit must keep the newest records")
	}
}

func TestEventLogReadsLegacyAndSkipsBrokenLines(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "events.jsonl")
	content := `{"timestamp":"2025-11-03T08:15:30.123456","type":"login","goal":"Work","intention":"Ship","duration":60,"pomodoro":false}
not json at all
{"timestamp":"yesterday","type":"login","goal":"Work"}

{"timestamp":"2025-11-03T09:15:30+01:00","type":"feedback","goal":"Work","intention":"Ship","rating":7,"comment":"ok"}
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("seed: %v", err)
	}
	events, err := sessionout.NewJSONLEventLog(path, nil).Tail(context.Background(), 0)
	if err != nil {
		t.Fatalf("tail: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 decodable records, got %d", len(events))
	}
	legacy := events[0].Timestamp
	if legacy.Location() != time.Local || legacy.Hour() != 8 || legacy.Nanosecond() != 123456000 {
		t.Fatalf("legacy timestamp parsed as %s", legacy)
	}
	if *events[0].Duration != 60 || events[1].Rating == nil || *events[1].Rating != 7 {
		t.Fatalf("unexpected records %+v", events)
	}
}

func TestEventLogMissingFileIsEmpty(t *testing.T) {
	t.Parallel()
	events, err := sessionout.NewJSONLEventLog(filepath.Join(t.TempDir(), "none.jsonl"), nil).Tail(context.Background(), 10)
	if err != nil || len(events) != 0 {
		t.Fatalf("expected empty history, got %v (%v)", events, err)
	}
}

func TestStatusStoreWritesTimerLine(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	dir := t.TempDir()
	statusPath := filepath.Join(dir, "status.json")
	timerPath := filepath.Join(dir, "timer")
	store := sessionout.NewFileStatusStore(statusPath, timerPath)

	if _, err := store.Load(ctx); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	status := domain.Status{
		Goal:      "Work",
		Intention: "Ship",
		State:     domain.StateRunning,
		Phase:     domain.PhaseWork,
		Remaining: 754,
		UpdatedAt: time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC),
	}
	if err := store.Publish(ctx, status); err != nil {
		t.Fatalf("publish: %v", err)
	}
	timer, err := os.ReadFile(timerPath)
	if err != nil || string(timer) != "12:34 [WORK]" {
		t.Fatalf("unexpected timer line %q (%v)", timer, err)
	}
	loaded, err := store.Load(ctx)
	if err != nil || loaded.Goal != "Work" || loaded.Remaining != 754 || !loaded.UpdatedAt.Equal(status.UpdatedAt) {
		t.Fatalf("unexpected status %+v (%v)", loaded, err)
	}
	if err := store.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	for _, path := range []string{statusPath, timerPath} {
		if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
			t.Fatalf("%s must be removed", path)
		}
	}
}

func TestSettingsSourceMapsGoalProfileAndPreferences(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := settings.NewFileStore(filepath.Join(t.TempDir(), "settings.yaml"))
	cfg := settings.Default()
	cfg.Filters["Work"] = []string{"reddit.com", "x.com"}
	cfg.GoalThemes["Work"] = "gruvbox"
	cfg.Pomodoro.WorkMinutes = 50
	cfg.Pomodoro.IntentionPopup = false
	cfg.AdBlocking = true
	if err := store.Save(cfg); err != nil {
		t.Fatalf("save: %v", err)
	}
	source := sessionout.NewSettingsSource(store)

	profile, err := source.Profile(ctx, "Work")
	if err != nil || len(profile.Domains) != 2 || profile.Theme != "gruvbox" {
		t.Fatalf("unexpected profile %+v (%v)", profile, err)
	}
	if other, _ := source.Profile(ctx, "Study"); len(other.Domains) != 0 || other.Theme != "" {
		t.Fatalf("unconfigured goal must be empty, got %+v", other)
	}
	prefs, err := source.Preferences(ctx)
	if err != nil {
		t.Fatalf("preferences: %v", err)
	}
	if prefs.Cadence.Work != 50*time.Minute || prefs.Cadence.ShortBreak != 5*time.Minute || prefs.IntentionPopup || !prefs.AdBlocking {
		t.Fatalf("unexpected preferences %+v", prefs)
	}
}
