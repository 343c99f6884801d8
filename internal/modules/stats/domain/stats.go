package domain

import (
	"sort"
	"time"
)

const (
	TypeLogin    = "login"
	TypeFeedback = "feedback"
	TypeSegment  = "pomodoro_segment"

	HistoryDays  = 7
	RecentLimit  = 10
	maxPairedGap = 24 * time.Hour
)

// Record is one event-log entry. Rating is 0 when the record has none.
type Record struct {
	Timestamp time.Time
	Type      string
	Goal      string
	Intention string
	Duration  int
	Pomodoro  bool
	Rating    int
	Comment   string
}

// Span is a login paired with the feedback that closed it.
type Span struct {
	Goal  string
	Start time.Time
	End   time.Time
}

func (s Span) Hours() float64 { return s.End.Sub(s.Start).Hours() }

type DayHours struct {
	Date  time.Time
	Hours float64
}

type Summary struct {
	TodayHours    float64
	TodaySessions int
	AverageRating float64
	Ratings       int
	History       []DayHours
	Recent        []Record
}

type GoalTotal struct {
	Goal          string
	Sessions      int
	Hours         float64
	AverageRating float64
}

// Pair walks records in time order and closes each login with the next
// feedback. Pairs further apart than a day are dropped; a feedback without
// a preceding open login pairs with nothing.
func Pair(records []Record) []Span {
	ordered := sorted(records)
	var spans []Span
	var open *Record
	for i := range ordered {
		r := &ordered[i]
		switch r.Type {
		case TypeLogin:
			open = r
		case TypeFeedback:
			if open == nil {
				continue
			}
			gap := r.Timestamp.Sub(open.Timestamp)
			if gap > 0 && gap < maxPairedGap {
				spans = append(spans, Span{Goal: r.Goal, Start: open.Timestamp, End: r.Timestamp})
			}
			open = nil
		}
	}
	return spans
}

// Summarize computes the dashboard figures for the day containing now.
// Hours are credited to the day the closing feedback was written.
func Summarize(records []Record, now time.Time) Summary {
	today := midnight(now)
	out := Summary{History: make([]DayHours, HistoryDays)}
	for i := range out.History {
		out.History[i].Date = today.AddDate(0, 0, i-(HistoryDays-1))
	}

	for _, span := range Pair(records) {
		day := midnight(span.End.In(now.Location()))
		if idx := HistoryDays - 1 - int(today.Sub(day).Hours()/24+0.5); idx >= 0 && idx < HistoryDays {
			out.History[idx].Hours += span.Hours()
		}
		if day.Equal(today) {
			out.TodayHours += span.Hours()
		}
	}

	sum := 0
	for _, r := range records {
		switch r.Type {
		case TypeLogin:
			if midnight(r.Timestamp.In(now.Location())).Equal(today) {
				out.TodaySessions++
			}
		case TypeFeedback:
			if r.Rating > 0 {
				sum += r.Rating
				out.Ratings++
			}
		}
	}
	if out.Ratings > 0 {
		out.AverageRating = float64(sum) / float64(out.Ratings)
	}

	ordered := sorted(records)
	for i := len(ordered) - 1; i >= 0 && len(out.Recent) < RecentLimit; i-- {
		out.Recent = append(out.Recent, ordered[i])
	}
	return out
}

func sorted(records []Record) []Record {
	out := append([]Record(nil), records...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })
	return out
}

func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
