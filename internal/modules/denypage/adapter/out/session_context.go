package out

import (
	"context"

	"hyprfocus/internal/modules/denypage/domain"
	denyout "hyprfocus/internal/modules/denypage/port/out"
	sessionin "hyprfocus/internal/modules/session/port/in"
)

// SessionContext reads the running session, falling back to the pending
// descriptor, through the session module.
type SessionContext struct {
	sessions sessionin.Usecase
}

func NewSessionContext(sessions sessionin.Usecase) denyout.ContextSource {
	return &SessionContext{sessions: sessions}
}

func (s *SessionContext) Current(ctx context.Context) (domain.Context, error) {
	current, err := s.sessions.Current(ctx)
	if err != nil {
		return domain.Context{}, err
	}
	return domain.Context{Goal: current.Goal, Intention: current.Intention}, nil
}
