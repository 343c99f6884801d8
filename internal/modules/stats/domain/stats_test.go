package domain_test

import (
	"math"
	"testing"
	"time"

	"hyprfocus/internal/modules/stats/domain"
)

var now = time.Date(2026, 3, 4, 18, 0, 0, 0, time.UTC)

func ts(daysAgo, hour, minute int) time.Time {
	return time.Date(2026, 3, 4-daysAgo, hour, minute, 0, 0, time.UTC)
}

func login(at time.Time, goal string) domain.Record {
	return domain.Record{Timestamp: at, Type: domain.TypeLogin, Goal: goal, Duration: 60}
}

func feedback(at time.Time, goal string, rating int) domain.Record {
	return domain.Record{Timestamp: at, Type: domain.TypeFeedback, Goal: goal, Rating: rating}
}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestPairClosesEachLoginWithNextFeedback(t *testing.T) {
	t.Parallel()
	records := []domain.Record{
		feedback(ts(0, 8, 0), "Work", 5), // no open login
		login(ts(0, 9, 0), "Work"),
		{Timestamp: ts(0, 9, 30), Type: domain.TypeSegment, Goal: "Work"},
		feedback(ts(0, 10, 30), "Work", 8),
		feedback(ts(0, 11, 0), "Work", 6), // login already closed
		login(ts(0, 12, 0), "Study"),
		login(ts(0, 13, 0), "Study"), // replaces the open login
		feedback(ts(0, 14, 0), "Study", 7),
	}
	spans := domain.Pair(records)
	if len(spans) != 2 {
		t.Fatalf("expected two spans, got %+v", spans)
	}
	if !near(spans[0].Hours(), 1.5) || spans[0].Goal != "Work" {
		t.Fatalf("unexpected first span %+v", spans[0])
	}
	if !near(spans[1].Hours(), 1) || spans[1].Goal != "Study" {
		t.Fatalf("unexpected second span %+v", spans[1])
	}
}

func TestPairDropsGapsOfADayOrMore(t *testing.T) {
	t.Parallel()
	records := []domain.Record{
		login(ts(3, 9, 0), "Work"),
		feedback(ts(2, 9, 0), "Work", 4),
	}
	if spans := domain.Pair(records); len(spans) != 0 {
		t.Fatalf("a 24h gap must not pair, got %+v", spans)
	}
}

func TestPairSortsOutOfOrderInput(t *testing.T) {
	t.Parallel()
	records := []domain.Record{
		feedback(ts(0, 10, 0), "Work", 9),
		login(ts(0, 9, 0), "Work"),
	}
	if spans := domain.Pair(records); len(spans) != 1 || !near(spans[0].Hours(), 1) {
		t.Fatalf("unexpected spans %+v", spans)
	}
}

func TestSummarize(t *testing.T) {
	t.Parallel()
	records := []domain.Record{
		login(ts(8, 9, 0), "Work"), // outside the window
		feedback(ts(8, 10, 0), "Work", 2),
		login(ts(1, 23, 0), "Study"), // closes today, credited today
		feedback(ts(0, 0, 30), "Study", 6),
		login(ts(0, 9, 0), "Work"),
		feedback(ts(0, 11, 0), "Work", 10),
		login(ts(0, 15, 0), "Work"), // still open
	}
	s := domain.Summarize(records, now)

	if s.TodaySessions != 2 {
		t.Fatalf("expected two logins today, got %d", s.TodaySessions)
	}
	if !near(s.TodayHours, 3.5) {
		t.Fatalf("expected 3.5 hours today, got %v", s.TodayHours)
	}
	if s.Ratings != 3 || !near(s.AverageRating, 6) {
		t.Fatalf("unexpected rating %v over %d", s.AverageRating, s.Ratings)
	}
	if len(s.History) != domain.HistoryDays {
		t.Fatalf("expected %d history days, got %d", domain.HistoryDays, len(s.History))
	}
	last := s.History[len(s.History)-1]
	if !last.Date.Equal(ts(0, 0, 0)) || !near(last.Hours, 3.5) {
		t.Fatalf("today must be last in the history, got %+v", last)
	}
	if !s.History[0].Date.Equal(ts(6, 0, 0)) || s.History[0].Hours != 0 {
		t.Fatalf("unexpected oldest day %+v", s.History[0])
	}
	if len(s.Recent) != len(records) || !s.Recent[0].Timestamp.Equal(ts(0, 15, 0)) {
		t.Fatalf("recent activity is newest first, got %+v", s.Recent)
	}
}

func TestSummarizeCapsRecentActivity(t *testing.T) {
	t.Parallel()
	var records []domain.Record
	for i := 0; i < 25; i++ {
		records = append(records, login(ts(0, 0, i), "Work"))
	}
	s := domain.Summarize(records, now)
	if len(s.Recent) != domain.RecentLimit || !s.Recent[0].Timestamp.Equal(ts(0, 0, 24)) {
		t.Fatalf("unexpected recent list %+v", s.Recent)
	}
	if s.AverageRating != 0 || s.Ratings != 0 {
		t.Fatalf("no feedback means no average")
	}
}
