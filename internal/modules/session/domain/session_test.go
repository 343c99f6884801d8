package domain_test

import (
	"errors"
	"testing"
	"time"

	"hyprfocus/internal/modules/session/domain"
)

func TestParseDescriptorAcceptsLooseScalars(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name string
		raw  string
		want domain.Descriptor
	}{
		{
			name: "typed",
			raw:  `{"goal":"Work","intention":"Ship","duration":45,"pomodoro":true}`,
			want: domain.Descriptor{Goal: "Work", Intention: "Ship", Duration: 45, Pomodoro: true},
		},
		{
			name: "stringly",
			raw:  `{"goal":"Work","intention":"Ship","duration":"90","pomodoro":"True"}`,
			want: domain.Descriptor{Goal: "Work", Intention: "Ship", Duration: 90, Pomodoro: true},
		},
		{
			name: "missing fields",
			raw:  `{"goal":"Study"}`,
			want: domain.Descriptor{Goal: "Study", Intention: domain.DefaultIntention, Duration: 60},
		},
		{
			name: "blank values",
			raw:  `{"goal":"  ","intention":"","duration":"0","pomodoro":"false"}`,
			want: domain.DefaultDescriptor(),
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := domain.ParseDescriptor([]byte(tc.raw))
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %+v, got %+v", tc.want, got)
			}
		})
	}
}

func TestParseDescriptorRejectsGarbage(t *testing.T) {
	t.Parallel()
	for _, raw := range []string{`{"goal":"Wo`, `{"duration":[1]}`, `[]`} {
		if _, err := domain.ParseDescriptor([]byte(raw)); !errors.Is(err, domain.ErrInvalidDescriptor) {
			t.Fatalf("%s: expected invalid descriptor, got %v", raw, err)
		}
	}
}

func TestBreakAfterEveryFourthIsLong(t *testing.T) {
	t.Parallel()
	c := domain.DefaultCadence()
	for completed := 1; completed <= 8; completed++ {
		length, long := c.BreakAfter(completed)
		wantLong := completed%4 == 0
		if long != wantLong {
			t.Fatalf("after %d: long=%v", completed, long)
		}
		if wantLong && length != 20*time.Minute || !wantLong && length != 5*time.Minute {
			t.Fatalf("after %d: unexpected length %s", completed, length)
		}
	}
}

func TestTimerLine(t *testing.T) {
	t.Parallel()
	cases := []struct {
		status domain.Status
		want   string
	}{
		{domain.Status{Phase: domain.PhaseWork, Remaining: 1499}, "24:59 [WORK]"},
		{domain.Status{Phase: domain.PhaseBreak, Remaining: 61}, "01:01 [BREAK]"},
		{domain.Status{Phase: domain.PhaseBreak, Remaining: 0}, "BREAK COMPLETE"},
		{domain.Status{Phase: domain.PhaseCountdown, Remaining: 3600}, "60:00"},
	}
	for _, tc := range cases {
		if got := tc.status.TimerLine(); got != tc.want {
			t.Fatalf("expected %q, got %q", tc.want, got)
		}
	}
}

func TestRemainingRoundsUp(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	if got := domain.Remaining(now, now.Add(1500*time.Millisecond)); got != 2 {
		t.Fatalf("expected 2, got %d", got)
	}
	if got := domain.Remaining(now, now.Add(-time.Second)); got != 0 {
		t.Fatalf("expected 0 past the end, got %d", got)
	}
}

func TestFeedbackEventValidatesRating(t *testing.T) {
	t.Parallel()
	at := time.Now()
	if _, err := domain.FeedbackEvent(at, domain.Feedback{Rating: 0}); !errors.Is(err, domain.ErrInvalidRating) {
		t.Fatalf("expected invalid rating, got %v", err)
	}
	e, err := domain.FeedbackEvent(at, domain.Feedback{Goal: "Work", Rating: 1})
	if err != nil || *e.Rating != 1 || e.Type != domain.EventFeedback {
		t.Fatalf("unexpected event %+v (%v)", e, err)
	}
}

func TestStatusStale(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	if !(domain.Status{}).Stale(now, time.Minute) {
		t.Fatalf("a status with no timestamp is stale")
	}
	fresh := domain.Status{UpdatedAt: now.Add(-30 * time.Second)}
	if fresh.Stale(now, time.Minute) {
		t.Fatalf("30s old status is fresh")
	}
}
