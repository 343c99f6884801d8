package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"hyprfocus/internal/modules/stats/domain"
	"hyprfocus/internal/modules/stats/service"
	"hyprfocus/internal/platform/clock"
)

type staticRecords struct {
	records []domain.Record
	err     error
}

func (s staticRecords) Records(context.Context) ([]domain.Record, error) { return s.records, s.err }

type memoryProjection struct {
	records []domain.Record
	spans   []domain.Span
}

func (m *memoryProjection) Replace(_ context.Context, records []domain.Record, spans []domain.Span) error {
	m.records, m.spans = records, spans
	return nil
}

func (m *memoryProjection) GoalTotals(context.Context) ([]domain.GoalTotal, error) {
	return []domain.GoalTotal{{Goal: "Work", Sessions: len(m.records)}}, nil
}

func TestReindexProjectsPairedSpans(t *testing.T) {
	t.Parallel()
	start := time.Date(2026, 3, 4, 9, 0, 0, 0, time.UTC)
	records := []domain.Record{
		{Timestamp: start, Type: domain.TypeLogin, Goal: "Work"},
		{Timestamp: start.Add(time.Hour), Type: domain.TypeFeedback, Goal: "Work", Rating: 7},
	}
	projection := &memoryProjection{}
	svc := service.NewStatsService(staticRecords{records: records}, projection, clock.NewFake(start.Add(2*time.Hour)), nil)

	n, spans, err := svc.Reindex(context.Background())
	if err != nil || n != 2 || spans != 1 || len(projection.spans) != 1 {
		t.Fatalf("unexpected reindex %d/%d (%v)", n, spans, err)
	}
	summary, err := svc.Summary(context.Background())
	if err != nil || summary.TodayHours != 1 || summary.TodaySessions != 1 {
		t.Fatalf("unexpected summary %+v (%v)", summary, err)
	}
	totals, err := svc.GoalTotals(context.Background())
	if err != nil || len(totals) != 1 || totals[0].Sessions != 2 {
		t.Fatalf("unexpected totals %+v (%v)", totals, err)
	}
}

func TestSourceFailureSurfaces(t *testing.T) {
	t.Parallel()
	boom := errors.New("log unreadable")
	projection := &memoryProjection{}
	svc := service.NewStatsService(staticRecords{err: boom}, projection, clock.SystemClock{}, nil)
	if _, _, err := svc.Reindex(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected source error, got %v", err)
	}
	if projection.records != nil {
		t.Fatalf("a failed read must not touch the projection")
	}
	if _, err := svc.Summary(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected source error, got %v", err)
	}
}
