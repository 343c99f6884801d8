package clock_test

import (
	"context"
	"testing"
	"time"

	"hyprfocus/internal/platform/clock"
)

func TestFakeSleepAdvancesTime(t *testing.T) {
	t.Parallel()
	start := time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC)
	fake := clock.NewFake(start)
	if err := fake.Sleep(context.Background(), 90*time.Second); err != nil {
		t.Fatalf("sleep: %v", err)
	}
	if got := fake.Now().Sub(start); got != 90*time.Second {
		t.Fatalf("expected 90s elapsed, got %s", got)
	}
	if fake.Sleeps() != 1 {
		t.Fatalf("expected one sleep, got %d", fake.Sleeps())
	}
}

func TestFakeSleepHonorsCancellation(t *testing.T) {
	t.Parallel()
	fake := clock.NewFake(time.Unix(0, 0))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := fake.Sleep(ctx, time.Minute); err == nil {
		t.Fatalf("expected cancellation error")
	}
	if !fake.Now().Equal(time.Unix(0, 0)) {
		t.Fatalf("cancelled sleep must not advance time")
	}
}

func TestSystemClockSleepStopsOnCancel(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if err := (clock.SystemClock{}).Sleep(ctx, time.Hour); err == nil {
		t.Fatalf("expected deadline error")
	}
}
