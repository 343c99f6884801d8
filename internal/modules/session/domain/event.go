package domain

import (
	"fmt"
	"strings"
	"time"
)

type EventType string

const (
	EventLogin           EventType = "login"
	EventFeedback        EventType = "feedback"
	EventPomodoroSegment EventType = "pomodoro_segment"
)

// Event is one line of the append-only session log. Duration and Pomodoro
// are set on login records, Rating and Comment on feedback records.
type Event struct {
	Timestamp time.Time
	Type      EventType
	Goal      string
	Intention string
	Duration  *int
	Pomodoro  *bool
	Rating    *int
	Comment   *string
}

func LoginEvent(at time.Time, d Descriptor) Event {
	duration := d.Duration
	pomodoro := d.Pomodoro
	return Event{
		Timestamp: at,
		Type:      EventLogin,
		Goal:      d.Goal,
		Intention: d.Intention,
		Duration:  &duration,
		Pomodoro:  &pomodoro,
	}
}

func SegmentEvent(at time.Time, goal, intention string) Event {
	return Event{Timestamp: at, Type: EventPomodoroSegment, Goal: goal, Intention: intention}
}

func FeedbackEvent(at time.Time, f Feedback) (Event, error) {
	if err := f.Validate(); err != nil {
		return Event{}, err
	}
	rating := f.Rating
	comment := strings.TrimSpace(f.Comment)
	return Event{
		Timestamp: at,
		Type:      EventFeedback,
		Goal:      f.Goal,
		Intention: f.Intention,
		Rating:    &rating,
		Comment:   &comment,
	}, nil
}

// Feedback is the end-of-session retrospective.
type Feedback struct {
	Goal      string
	Intention string
	Rating    int
	Comment   string
}

func (f Feedback) Validate() error {
	if f.Rating < 1 || f.Rating > 10 {
		return fmt.Errorf("%w: got %d", ErrInvalidRating, f.Rating)
	}
	return nil
}

type Urgency string

const (
	UrgencyNormal   Urgency = "normal"
	UrgencyCritical Urgency = "critical"
)

type Notification struct {
	Summary string
	Body    string
	Urgency Urgency
}
