package dto

type GoalView struct {
	Name    string
	Theme   string
	Domains []string
}

type PomodoroView struct {
	WorkMinutes       int
	ShortBreakMinutes int
	LongBreakMinutes  int
	IntentionPopup    bool
}

type Overview struct {
	Goals            []GoalView
	Pomodoro         PomodoroView
	ShutdownFeedback bool
}

// PomodoroInput leaves nil fields unchanged.
type PomodoroInput struct {
	WorkMinutes       *int
	ShortBreakMinutes *int
	LongBreakMinutes  *int
	IntentionPopup    *bool
}

type FilterInput struct {
	Goal   string
	Domain string
}
