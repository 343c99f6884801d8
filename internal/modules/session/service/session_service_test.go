package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"hyprfocus/internal/modules/session/domain"
	"hyprfocus/internal/modules/session/service"
	"hyprfocus/internal/platform/clock"
	apperrors "hyprfocus/internal/platform/errors"
)

func newSessionService() (*service.SessionService, *memoryDescriptors, *memoryEvents, *memoryStatus, *clock.Fake) {
	clk := clock.NewFake(start)
	descriptors := &memoryDescriptors{}
	events := &memoryEvents{}
	status := &memoryStatus{}
	return service.NewSessionService(descriptors, events, status, clk, nil), descriptors, events, status, clk
}

func TestLaunchDefaultsIntentionAndValidates(t *testing.T) {
	t.Parallel()
	svc, descriptors, _, _, _ := newSessionService()
	ctx := context.Background()

	d, err := svc.Launch(ctx, domain.Descriptor{Goal: "Work", Duration: 45})
	if err != nil {
		t.Fatalf("launch: %v", err)
	}
	if d.Intention != domain.DefaultIntention || descriptors.d == nil || descriptors.d.Intention != domain.DefaultIntention {
		t.Fatalf("expected default intention persisted, got %+v", d)
	}

	if _, err := svc.Launch(ctx, domain.Descriptor{Goal: "Work", Duration: 0}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input for zero duration, got %v", err)
	}
	if _, err := svc.Launch(ctx, domain.Descriptor{Goal: "  ", Duration: 10}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input for blank goal, got %v", err)
	}
}

func TestCurrentPrefersLiveStatus(t *testing.T) {
	t.Parallel()
	svc, descriptors, _, status, _ := newSessionService()
	ctx := context.Background()

	snap, err := svc.Current(ctx)
	if err != nil || snap.Source != domain.SourceNone {
		t.Fatalf("expected no session, got %+v (%v)", snap, err)
	}

	descriptors.d = &domain.Descriptor{Goal: "Study", Intention: "Chapter 3", Duration: 30}
	snap, _ = svc.Current(ctx)
	if snap.Source != domain.SourcePending || snap.Goal() != "Study" {
		t.Fatalf("expected pending descriptor, got %+v", snap)
	}

	_ = status.Publish(ctx, domain.Status{Goal: "Work", Intention: "Ship", State: domain.StateRunning, UpdatedAt: start})
	snap, _ = svc.Current(ctx)
	if snap.Source != domain.SourceRunning || snap.Intention() != "Ship" {
		t.Fatalf("expected running status to win, got %+v", snap)
	}
}

func TestCurrentIgnoresStaleOrTerminatedStatus(t *testing.T) {
	t.Parallel()
	svc, descriptors, _, status, clk := newSessionService()
	ctx := context.Background()
	descriptors.d = &domain.Descriptor{Goal: "Study", Intention: "Chapter 3", Duration: 30}

	_ = status.Publish(ctx, domain.Status{Goal: "Work", State: domain.StateRunning, UpdatedAt: start})
	clk.Advance(6 * time.Minute)
	if snap, _ := svc.Current(ctx); snap.Source != domain.SourcePending {
		t.Fatalf("stale status must be ignored, got %+v", snap)
	}

	_ = status.Publish(ctx, domain.Status{Goal: "Work", State: domain.StateTerminated, UpdatedAt: clk.Now()})
	if snap, _ := svc.Current(ctx); snap.Source != domain.SourcePending {
		t.Fatalf("terminated status must be ignored, got %+v", snap)
	}
}

func TestRecordFeedbackRejectsBadRatings(t *testing.T) {
	t.Parallel()
	svc, _, events, _, _ := newSessionService()
	ctx := context.Background()

	for _, rating := range []int{0, 11, -3} {
		if _, err := svc.RecordFeedback(ctx, domain.Feedback{Goal: "Work", Rating: rating}); !errors.Is(err, apperrors.ErrInvalidInput) {
			t.Fatalf("rating %d: expected invalid input, got %v", rating, err)
		}
	}
	if len(events.events) != 0 {
		t.Fatalf("rejected feedback must not be logged")
	}

	e, err := svc.RecordFeedback(ctx, domain.Feedback{Goal: "Work", Intention: "Ship", Rating: 10, Comment: "  great  "})
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if *e.Comment != "great" || !e.Timestamp.Equal(start) {
		t.Fatalf("unexpected event: %+v", e)
	}

	history, err := svc.History(ctx, 5)
	if err != nil || len(history) != 1 || history[0].Type != domain.EventFeedback {
		t.Fatalf("unexpected history %+v (%v)", history, err)
	}
}
