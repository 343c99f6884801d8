package domain

import (
	"fmt"
	"time"
)

type State string

const (
	StateIdle       State = "idle"
	StatePreparing  State = "preparing"
	StateRunning    State = "running"
	StateEnding     State = "ending"
	StateTerminated State = "terminated"
)

type Phase string

const (
	PhaseNone      Phase = ""
	PhaseCountdown Phase = "countdown"
	PhaseWork      Phase = "work"
	PhaseBreak     Phase = "break"
)

// Status is the live snapshot a running controller publishes for the deny
// page, the TUI and status bars.
type Status struct {
	Goal      string    `json:"goal"`
	Intention string    `json:"intention"`
	State     State     `json:"state"`
	Phase     Phase     `json:"phase"`
	Pomodoro  bool      `json:"pomodoro"`
	EndsAt    time.Time `json:"ends_at"`
	Remaining int       `json:"remaining_seconds"`
	Completed int       `json:"completed"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TimerLine is the one-line form written for status bars.
func (s Status) TimerLine() string {
	clock := FormatRemaining(time.Duration(s.Remaining) * time.Second)
	switch s.Phase {
	case PhaseWork:
		return clock + " [WORK]"
	case PhaseBreak:
		if s.Remaining <= 0 {
			return "BREAK COMPLETE"
		}
		return clock + " [BREAK]"
	default:
		return clock
	}
}

// FormatRemaining renders d as MM:SS, truncating sub-second remainders and
// clamping negatives to zero.
func FormatRemaining(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

// Remaining rounds up so a countdown reads 00:01 until it has fully elapsed.
func Remaining(now, end time.Time) int {
	d := end.Sub(now)
	if d <= 0 {
		return 0
	}
	return int((d + time.Second - 1) / time.Second)
}
