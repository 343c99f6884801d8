// Package settings is the single YAML document shared by the session
// controller, the calendar and the CLI. Missing keys fall back to defaults.
package settings

import (
	"time"
)

type Pomodoro struct {
	WorkMinutes       int  `yaml:"work_duration"`
	ShortBreakMinutes int  `yaml:"short_break"`
	LongBreakMinutes  int  `yaml:"long_break"`
	IntentionPopup    bool `yaml:"intention_popup"`
}

type CalendarEvent struct {
	ID        string    `yaml:"id"`
	Start     time.Time `yaml:"start"`
	End       time.Time `yaml:"end"`
	Goal      string    `yaml:"goal"`
	Intention string    `yaml:"intention"`
}

type Task struct {
	Title string `yaml:"title"`
	Done  bool   `yaml:"done"`
	Goal  string `yaml:"goal,omitempty"`
}

// Collaborators names the external programs and plugin used for the
// side effects a session triggers.
type Collaborators struct {
	NotifyCommand   []string `yaml:"notify_command"`
	LockCommand     []string `yaml:"lock_command"`
	ThemeCommand    []string `yaml:"theme_command"`
	ShutdownCommand []string `yaml:"shutdown_command"`
	Prompter        string   `yaml:"prompter"`
	Plugin          string   `yaml:"plugin,omitempty"`
}

type Settings struct {
	Goals            []string            `yaml:"goals"`
	GoalThemes       map[string]string   `yaml:"goal_themes"`
	Filters          map[string][]string `yaml:"filters"`
	Pomodoro         Pomodoro            `yaml:"pomodoro"`
	AdBlocking       bool                `yaml:"ad_blocking"`
	ShutdownFeedback bool                `yaml:"shutdown_feedback"`
	CalendarEvents   []CalendarEvent     `yaml:"calendar_events"`
	Tasks            []Task              `yaml:"tasks"`
	BedtimeStart     string              `yaml:"bedtime_start"`
	BedtimeEnd       string              `yaml:"bedtime_end"`
	Collaborators    Collaborators       `yaml:"collaborators"`
}

const (
	PrompterTerminal = "terminal"
	PrompterPlugin   = "plugin"
	PrompterNone     = "none"
)

func Default() Settings {
	return Settings{
		Goals:      []string{"Work", "Study"},
		GoalThemes: map[string]string{},
		Filters:    map[string][]string{},
		Pomodoro: Pomodoro{
			WorkMinutes:       25,
			ShortBreakMinutes: 5,
			LongBreakMinutes:  20,
			IntentionPopup:    true,
		},
		ShutdownFeedback: true,
		CalendarEvents:   []CalendarEvent{},
		Tasks:            []Task{},
		BedtimeStart:     "23:00",
		BedtimeEnd:       "05:00",
		Collaborators: Collaborators{
			NotifyCommand:   []string{"notify-send"},
			LockCommand:     []string{"hyprlock", "--config", "~/.config/hypr/hyprlock_unified.conf"},
			ThemeCommand:    []string{"~/.config/hypr/scripts/switch_theme.sh"},
			ShutdownCommand: []string{"systemctl", "poweroff"},
			Prompter:        PrompterTerminal,
		},
	}
}
