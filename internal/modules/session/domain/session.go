package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultGoal            = "Default"
	DefaultIntention       = "No intention provided"
	DefaultDurationMinutes = 60
)

var (
	ErrInvalidDescriptor = errors.New("invalid session descriptor")
	ErrInvalidRating     = errors.New("rating must be between 1 and 10")
)

// Descriptor is the handoff record a launcher writes and the controller
// consumes exactly once.
type Descriptor struct {
	Goal      string `json:"goal"`
	Intention string `json:"intention"`
	Duration  int    `json:"duration"`
	Pomodoro  bool   `json:"pomodoro"`
}

func DefaultDescriptor() Descriptor {
	return Descriptor{
		Goal:      DefaultGoal,
		Intention: DefaultIntention,
		Duration:  DefaultDurationMinutes,
	}
}

// ParseDescriptor accepts duration and pomodoro either as JSON scalars or as
// strings, the way shell launchers tend to write them. Missing fields take
// the default session's values.
func ParseDescriptor(raw []byte) (Descriptor, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(raw, &doc); err != nil {
		return Descriptor{}, fmt.Errorf("%w: %v", ErrInvalidDescriptor, err)
	}
	d := DefaultDescriptor()
	if v, ok := doc["goal"]; ok {
		if s, err := scalarString(v); err == nil && strings.TrimSpace(s) != "" {
			d.Goal = strings.TrimSpace(s)
		}
	}
	if v, ok := doc["intention"]; ok {
		if s, err := scalarString(v); err == nil && strings.TrimSpace(s) != "" {
			d.Intention = strings.TrimSpace(s)
		}
	}
	if v, ok := doc["duration"]; ok {
		s, err := scalarString(v)
		if err != nil {
			return Descriptor{}, fmt.Errorf("%w: duration: %v", ErrInvalidDescriptor, err)
		}
		if n, err := strconv.ParseFloat(s, 64); err == nil && n > 0 {
			d.Duration = int(n)
		}
	}
	if v, ok := doc["pomodoro"]; ok {
		s, err := scalarString(v)
		if err != nil {
			return Descriptor{}, fmt.Errorf("%w: pomodoro: %v", ErrInvalidDescriptor, err)
		}
		d.Pomodoro = strings.EqualFold(s, "true")
	}
	return d, nil
}

func scalarString(raw json.RawMessage) (string, error) {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return "", err
	}
	switch t := v.(type) {
	case string:
		return t, nil
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), nil
	case bool:
		return strconv.FormatBool(t), nil
	case nil:
		return "", nil
	default:
		return "", fmt.Errorf("unexpected %T", v)
	}
}

func (d Descriptor) Validate() error {
	if strings.TrimSpace(d.Goal) == "" {
		return fmt.Errorf("%w: goal is required", ErrInvalidDescriptor)
	}
	if d.Duration <= 0 {
		return fmt.Errorf("%w: duration must be positive", ErrInvalidDescriptor)
	}
	return nil
}

func (d Descriptor) Length() time.Duration {
	return time.Duration(d.Duration) * time.Minute
}

// Profile is what settings say about one goal.
type Profile struct {
	Goal    string
	Domains []string
	Theme   string
}

// Preferences are the settings the controller reads once while preparing.
type Preferences struct {
	Cadence          Cadence
	IntentionPopup   bool
	AdBlocking       bool
	ShutdownFeedback bool
}

// Cadence is the pomodoro rhythm. Every fourth completed work phase earns
// the long break.
type Cadence struct {
	Work       time.Duration
	ShortBreak time.Duration
	LongBreak  time.Duration
}

const LongBreakEvery = 4

func DefaultCadence() Cadence {
	return Cadence{Work: 25 * time.Minute, ShortBreak: 5 * time.Minute, LongBreak: 20 * time.Minute}
}

func (c Cadence) BreakAfter(completed int) (time.Duration, bool) {
	if completed > 0 && completed%LongBreakEvery == 0 {
		return c.LongBreak, true
	}
	return c.ShortBreak, false
}
