package dto

import "time"

// EventView is an event together with its position on the displayed week.
type EventView struct {
	ID        string
	Goal      string
	Intention string
	Start     time.Time
	End       time.Time
	Day       int
	StartSlot int
	EndSlot   int
}

type WeekOutput struct {
	Start        time.Time
	Events       []EventView
	Goals        []string
	SleepEnabled bool
	SleepStart   int
	SleepEnd     int
}

type CreateInput struct {
	Start     time.Time
	End       time.Time
	Goal      string
	Intention string
}

type UpdateInput struct {
	ID        string
	Goal      string
	Intention string
}

// GestureInput mirrors one pointer event on the week grid. Kind is begin,
// update, end or cancel; Gesture is create, move, resize-top or
// resize-bottom.
type GestureInput struct {
	Kind      string
	Gesture   string
	Week      time.Time
	Day       int
	Slot      int
	EventID   string
	OffsetY   float64
	RowHeight float64
}

type GestureOutcome struct {
	Kind      string
	Gesture   string
	EventID   string
	Day       int
	StartSlot int
	EndSlot   int
	Refused   bool
}

// ShiftInput moves or resizes an event by whole slots. Edge is empty for a
// move, "top" or "bottom" for a resize.
type ShiftInput struct {
	EventID string
	Edge    string
	Slots   int
}

type DropInput struct {
	Task int
	Week time.Time
	Day  int
	Slot int
}

type DropOutput struct {
	Placed bool
	Event  EventView
}

type TaskInput struct {
	Title string
	Goal  string
}

type TaskView struct {
	Index int
	Title string
	Done  bool
	Goal  string
}

type SleepInput struct {
	Start string
	End   string
}

type LaunchOutput struct {
	EventID   string
	Goal      string
	Intention string
	Minutes   int
}
