package dto

import "time"

type LaunchInput struct {
	Goal      string
	Intention string
	Duration  int
	Pomodoro  bool
}

type DescriptorOutput struct {
	Goal      string
	Intention string
	Duration  int
	Pomodoro  bool
}

type RunInput struct {
	SkipShutdown bool
}

type RunOutput struct {
	Goal        string
	Intention   string
	Pomodoro    bool
	Completed   int
	Interrupted bool
}

// CurrentOutput.Source is "running", "pending" or "none".
type CurrentOutput struct {
	Source           string
	Goal             string
	Intention        string
	State            string
	Phase            string
	Pomodoro         bool
	Duration         int
	EndsAt           time.Time
	RemainingSeconds int
	Completed        int
	TimerLine        string
}

type FeedbackInput struct {
	Goal      string
	Intention string
	Rating    int
	Comment   string
}

// EventOutput carries zero values for fields the record type does not have.
type EventOutput struct {
	Timestamp time.Time
	Type      string
	Goal      string
	Intention string
	Duration  int
	Pomodoro  bool
	Rating    int
	Comment   string
}
