package out

import (
	"context"

	sessionin "hyprfocus/internal/modules/session/port/in"
	"hyprfocus/internal/modules/stats/domain"
	statsout "hyprfocus/internal/modules/stats/port/out"
)

// SessionRecords reads the event log through the session module.
type SessionRecords struct {
	sessions sessionin.Usecase
}

func NewSessionRecords(sessions sessionin.Usecase) statsout.RecordSource {
	return &SessionRecords{sessions: sessions}
}

func (s *SessionRecords) Records(ctx context.Context) ([]domain.Record, error) {
	events, err := s.sessions.History(ctx, 0)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Record, 0, len(events))
	for _, e := range events {
		out = append(out, domain.Record{
			Timestamp: e.Timestamp,
			Type:      e.Type,
			Goal:      e.Goal,
			Intention: e.Intention,
			Duration:  e.Duration,
			Pomodoro:  e.Pomodoro,
			Rating:    e.Rating,
			Comment:   e.Comment,
		})
	}
	return out, nil
}
