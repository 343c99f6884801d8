package out

import (
	"context"

	calendarout "hyprfocus/internal/modules/calendar/port/out"
	sessiondto "hyprfocus/internal/modules/session/dto"
	sessionin "hyprfocus/internal/modules/session/port/in"
)

// SessionLauncher writes the session descriptor through the session module.
type SessionLauncher struct {
	sessions sessionin.Usecase
}

func NewSessionLauncher(sessions sessionin.Usecase) calendarout.SessionLauncher {
	return &SessionLauncher{sessions: sessions}
}

func (l *SessionLauncher) Launch(ctx context.Context, goal, intention string, minutes int) error {
	_, err := l.sessions.Launch(ctx, sessiondto.LaunchInput{Goal: goal, Intention: intention, Duration: minutes})
	return err
}
