package bootstrap_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"hyprfocus/internal/bootstrap"
	sessionoutadapter "hyprfocus/internal/modules/session/adapter/out"
	"hyprfocus/internal/platform/config"
	"hyprfocus/internal/platform/logging"
)

func newTestApp(t *testing.T) *bootstrap.App {
	t.Helper()
	home := t.TempDir()
	cfg, err := config.New(home)
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	cfg.HostsPath = filepath.Join(home, "hosts")
	cfg.SessionPath = filepath.Join(home, "session.json")
	cfg.TimerPath = filepath.Join(home, "session_timer")
	cfg.AdSourceURL = "http://127.0.0.1:1/hosts"
	if err := os.WriteFile(cfg.HostsPath, []byte("127.0.0.1 localhost\n"), 0o644); err != nil {
		t.Fatalf("seed hosts: %v", err)
	}
	if err := os.MkdirAll(cfg.ConfigDir, 0o755); err != nil {
		t.Fatalf("config dir: %v", err)
	}
	if err := os.WriteFile(cfg.AdCachePath(), []byte("0.0.0.0 ads.example\n"), 0o644); err != nil {
		t.Fatalf("seed ad cache: %v", err)
	}
	app, err := bootstrap.New(cfg, &logging.Handle{Logger: logging.Discard(), Writer: os.Stderr})
	if err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	t.Cleanup(func() { _ = app.Close() })
	return app
}

func TestAdsToggleSurvivesIntoNextSession(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()

	if _, err := app.BlockCLI.Ads(ctx, true); err != nil {
		t.Fatalf("ads on: %v", err)
	}
	hosts, err := os.ReadFile(app.Config.HostsPath)
	if err != nil {
		t.Fatalf("read hosts: %v", err)
	}
	if !strings.Contains(string(hosts), "0.0.0.0 ads.example") {
		t.Fatalf("ads region missing:\n%s", hosts)
	}

	cfg, err := app.Settings.Load()
	if err != nil {
		t.Fatalf("reload settings: %v", err)
	}
	if !cfg.AdBlocking {
		t.Fatalf("ad_blocking was not saved")
	}
	prefs, err := sessionoutadapter.NewSettingsSource(app.Settings).Preferences(ctx)
	if err != nil {
		t.Fatalf("preferences: %v", err)
	}
	if !prefs.AdBlocking {
		t.Fatalf("a new session would remove the ads region")
	}

	if _, err := app.BlockCLI.Ads(ctx, false); err != nil {
		t.Fatalf("ads off: %v", err)
	}
	if cfg, _ = app.Settings.Load(); cfg.AdBlocking {
		t.Fatalf("ad_blocking still set after ads off")
	}
}

func TestNewGoalFeedsSessionsAndCalendar(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()

	if _, err := app.PrefsCLI.AddGoal(ctx, "Reading"); err != nil {
		t.Fatalf("add goal: %v", err)
	}
	if n, err := app.PrefsCLI.AddFilters(ctx, "Reading", []string{"reddit.com,news.ycombinator.com"}); err != nil || n != 2 {
		t.Fatalf("add filters: n=%d err=%v", n, err)
	}
	if err := app.PrefsCLI.SetTheme(ctx, "Reading", "gruvbox"); err != nil {
		t.Fatalf("set theme: %v", err)
	}

	profile, err := sessionoutadapter.NewSettingsSource(app.Settings).Profile(ctx, "Reading")
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	if len(profile.Domains) != 2 || profile.Theme != "gruvbox" {
		t.Fatalf("session would start without the goal's blocks: %+v", profile)
	}

	if _, err := app.CalendarCLI.Create(ctx, "2026-03-04", "10:00", "11:00", "Reading", "chapter 3"); err != nil {
		t.Fatalf("calendar must accept the new goal: %v", err)
	}
}
