package domain

import "time"

type InputKind string

const (
	InputBegin  InputKind = "begin"
	InputUpdate InputKind = "update"
	InputEnd    InputKind = "end"
	InputCancel InputKind = "cancel"
)

type GestureKind string

const (
	GestureCreate       GestureKind = "create"
	GestureMove         GestureKind = "move"
	GestureResizeTop    GestureKind = "resize-top"
	GestureResizeBottom GestureKind = "resize-bottom"
)

func (k GestureKind) Valid() bool {
	switch k {
	case GestureCreate, GestureMove, GestureResizeTop, GestureResizeBottom:
		return true
	}
	return false
}

// Input is one pointer event. Day and Slot locate the press on Begin;
// updates carry the vertical distance travelled since the press.
type Input struct {
	Kind      InputKind
	Gesture   GestureKind
	Week      time.Time
	Day       int
	Slot      int
	EventID   string
	OffsetY   float64
	RowHeight float64
}

// SlotDelta converts the pointer offset to whole slots, truncating toward
// zero.
func (in Input) SlotDelta() int {
	if in.RowHeight <= 0 {
		return 0
	}
	return int(in.OffsetY / in.RowHeight)
}

type OutcomeKind string

const (
	OutcomeIgnored    OutcomeKind = "ignored"
	OutcomePreview    OutcomeKind = "preview"
	OutcomeRejected   OutcomeKind = "rejected"
	OutcomeOpenEditor OutcomeKind = "open-editor"
	OutcomeCommitted  OutcomeKind = "committed"
	OutcomeCancelled  OutcomeKind = "cancelled"
)

// Outcome describes what the scheduler did with an input. Day, Start and End
// are the range currently held by the gesture. Refused marks an update
// whose candidate collided, leaving the previous range in place.
type Outcome struct {
	Kind    OutcomeKind
	Gesture GestureKind
	EventID string
	Day     int
	Start   int
	End     int
	Refused bool
}

// CreateRange grows a selection from anchor toward pointer one slot at a
// time and stops before the first colliding slot. A single-slot result is
// widened to two slots when that is free.
func CreateRange(g Grid, day, anchor, pointer int) (int, int) {
	pointer = clamp(pointer, 0, SlotsPerDay-1)
	lo, hi := anchor, anchor+1
	if pointer >= anchor {
		for s := anchor + 1; s <= pointer; s++ {
			if g.Collides(day, s, s+1, "") {
				break
			}
			hi = s + 1
		}
	} else {
		for s := anchor - 1; s >= pointer; s-- {
			if g.Collides(day, s, s+1, "") {
				break
			}
			lo = s
		}
	}
	if hi-lo < 2 && !g.Collides(day, lo, lo+2, "") {
		hi = lo + 2
	}
	return lo, hi
}

// MoveTarget clamps a shifted start so the whole span stays on the day.
func MoveTarget(origStart, span, delta int) int {
	return clamp(origStart+delta, 0, SlotsPerDay-span)
}

// ResizeTopTarget moves the start edge, keeping at least one slot.
func ResizeTopTarget(origStart, end, delta int) int {
	return clamp(origStart+delta, 0, end-1)
}

// ResizeBottomTarget moves the end edge, keeping at least one slot and
// staying on the day.
func ResizeBottomTarget(start, origEnd, delta int) int {
	return clamp(origEnd+delta, start+1, SlotsPerDay)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
