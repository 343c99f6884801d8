package domain

import (
	"fmt"
	"time"
)

func WorkStarted(intention string) Notification {
	return Notification{Summary: "Pomodoro Started", Body: "Focus: " + intention, Urgency: UrgencyNormal}
}

func BreakStarted(length time.Duration, long bool) Notification {
	minutes := int(length / time.Minute)
	if long {
		return Notification{
			Summary: "Long Break!",
			Body:    fmt.Sprintf("Great job! Enjoy a %d minute break.", minutes),
			Urgency: UrgencyCritical,
		}
	}
	return Notification{
		Summary: "Time's Up!",
		Body:    fmt.Sprintf("Locking screen for %d minute break.", minutes),
		Urgency: UrgencyCritical,
	}
}

func BreakNotOver() Notification {
	return Notification{Summary: "Break Not Over", Body: "Screen re-locking...", Urgency: UrgencyCritical}
}

func EndingSoon() Notification {
	return Notification{Summary: "System Shutdown", Body: "Session ending in 1 minute!", Urgency: UrgencyCritical}
}

func SessionEnded() Notification {
	return Notification{Summary: "Session Ended", Body: "Initiating shutdown sequence...", Urgency: UrgencyCritical}
}

func SessionDegraded(reason string) Notification {
	return Notification{Summary: "Session Degraded", Body: reason, Urgency: UrgencyCritical}
}
