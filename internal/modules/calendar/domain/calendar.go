package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	apperrors "hyprfocus/internal/platform/errors"
)

const (
	Days        = 7
	SlotsPerDay = 96
	SlotMinutes = 15

	// DropSlots is the length of an event created by dropping a task.
	DropSlots = 2
)

// MinDuration is the shortest event the calendar accepts.
const MinDuration = SlotMinutes * time.Minute

type Event struct {
	ID        string
	Start     time.Time
	End       time.Time
	Goal      string
	Intention string
}

func (e Event) Duration() time.Duration { return e.End.Sub(e.Start) }

func (e Event) Validate() error {
	if strings.TrimSpace(e.Goal) == "" {
		return fmt.Errorf("%w: goal is required", apperrors.ErrInvalidInput)
	}
	if !e.Start.Before(e.End) {
		return fmt.Errorf("%w: event must end after it starts", apperrors.ErrInvalidInput)
	}
	if e.Duration() < MinDuration {
		return fmt.Errorf("%w: event must last at least %s", apperrors.ErrInvalidInput, MinDuration)
	}
	return nil
}

type Task struct {
	Title string
	Done  bool
	Goal  string
}

// SleepWindow is a pair of slot indices. Start > End wraps past midnight;
// Start == End disables the window.
type SleepWindow struct {
	Start int
	End   int
}

// ParseSleepWindow reads two "HH:MM" (or bare "HH") clock values. Minutes
// are floored to the slot grid.
func ParseSleepWindow(start, end string) (SleepWindow, error) {
	s, err := parseClock(start)
	if err != nil {
		return SleepWindow{}, err
	}
	e, err := parseClock(end)
	if err != nil {
		return SleepWindow{}, err
	}
	return SleepWindow{Start: s, End: e}, nil
}

func parseClock(raw string) (int, error) {
	hh, mm, found := strings.Cut(strings.TrimSpace(raw), ":")
	hour, err := strconv.Atoi(hh)
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("%w: invalid clock value %q", apperrors.ErrInvalidInput, raw)
	}
	minute := 0
	if found {
		minute, err = strconv.Atoi(mm)
		if err != nil || minute < 0 || minute > 59 {
			return 0, fmt.Errorf("%w: invalid clock value %q", apperrors.ErrInvalidInput, raw)
		}
	}
	return hour*4 + minute/SlotMinutes, nil
}

func (w SleepWindow) Enabled() bool { return w.Start != w.End }

func (w SleepWindow) Overlaps(start, end int) bool {
	switch {
	case !w.Enabled():
		return false
	case w.Start > w.End:
		return overlaps(start, end, w.Start, SlotsPerDay) || overlaps(start, end, 0, w.End)
	default:
		return overlaps(start, end, w.Start, w.End)
	}
}

// Contains reports whether a single slot is inside the window.
func (w SleepWindow) Contains(slot int) bool { return w.Overlaps(slot, slot+1) }

func (w SleepWindow) Format() (string, string) {
	return SlotClock(w.Start), SlotClock(w.End)
}

// SlotClock renders a slot index as "HH:MM".
func SlotClock(slot int) string {
	return fmt.Sprintf("%02d:%02d", slot/4, (slot%4)*SlotMinutes)
}

func overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return max(aStart, bStart) < min(aEnd, bEnd)
}

// WeekStart returns Monday 00:00 of the week containing t, in t's location.
func WeekStart(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	y, m, d := t.Date()
	return time.Date(y, m, d-offset, 0, 0, 0, 0, t.Location())
}

// SlotTime is the wall-clock time of a slot boundary. Slot 96 is midnight
// of the following day.
func SlotTime(week time.Time, day, slot int) time.Time {
	y, m, d := week.Date()
	minutes := slot * SlotMinutes
	return time.Date(y, m, d+day, minutes/60, minutes%60, 0, 0, week.Location())
}

// Placement locates an event on the grid of a given week.
type Placement struct {
	Day   int
	Start int
	End   int
}

func (p Placement) Span() int { return p.End - p.Start }

// Place maps an event onto the week grid. The end slot is rounded up so
// that partial slots still count as occupied, and an event ending on a
// later day than it starts ends at the last slot boundary.
func Place(week time.Time, e Event) Placement {
	start := e.Start.In(week.Location())
	end := e.End.In(week.Location())
	p := Placement{
		Day:   daysBetween(week, start),
		Start: (start.Hour()*60 + start.Minute()) / SlotMinutes,
	}
	if daysBetween(start, end) > 0 {
		p.End = SlotsPerDay
	} else {
		endMinutes := end.Hour()*60 + end.Minute()
		if end.Second() > 0 || end.Nanosecond() > 0 {
			endMinutes++
		}
		p.End = (endMinutes + SlotMinutes - 1) / SlotMinutes
	}
	if p.End <= p.Start {
		p.End = p.Start + 1
	}
	return p
}

func daysBetween(from, to time.Time) int {
	fy, fm, fd := from.Date()
	ty, tm, td := to.Date()
	a := time.Date(fy, fm, fd, 0, 0, 0, 0, time.UTC)
	b := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}

// Grid is one week of the calendar as seen by the collision check.
type Grid struct {
	Week   time.Time
	Sleep  SleepWindow
	Events []Event
}

// Collides reports whether [start, end) on day overlaps the sleep window or
// any event other than excludeID. Ranges outside the day or empty ranges
// always collide.
func (g Grid) Collides(day, start, end int, excludeID string) bool {
	if day < 0 || day >= Days || start < 0 || end > SlotsPerDay || start >= end {
		return true
	}
	if g.Sleep.Overlaps(start, end) {
		return true
	}
	for _, e := range g.Events {
		if excludeID != "" && e.ID == excludeID {
			continue
		}
		p := Place(g.Week, e)
		if p.Day != day {
			continue
		}
		if overlaps(start, end, p.Start, p.End) {
			return true
		}
	}
	return false
}

// Find returns the event with the given id.
func (g Grid) Find(id string) (Event, bool) {
	for _, e := range g.Events {
		if e.ID == id {
			return e, true
		}
	}
	return Event{}, false
}

// InWeek returns the events starting within the grid's week, ordered as
// stored.
func (g Grid) InWeek() []Event {
	end := g.Week.AddDate(0, 0, Days)
	var out []Event
	for _, e := range g.Events {
		if !e.Start.Before(g.Week) && e.Start.Before(end) {
			out = append(out, e)
		}
	}
	return out
}

// Active returns the event running at now, if any.
func Active(events []Event, now time.Time) (Event, bool) {
	for _, e := range events {
		if !now.Before(e.Start) && now.Before(e.End) {
			return e, true
		}
	}
	return Event{}, false
}

// Snapshot is everything the calendar persists.
type Snapshot struct {
	Goals  []string
	Events []Event
	Tasks  []Task
	Sleep  SleepWindow
}

func (s Snapshot) Grid(week time.Time) Grid {
	return Grid{Week: week, Sleep: s.Sleep, Events: s.Events}
}

func (s Snapshot) EventIndex(id string) int {
	for i, e := range s.Events {
		if e.ID == id {
			return i
		}
	}
	return -1
}
