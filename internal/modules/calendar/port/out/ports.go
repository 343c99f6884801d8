package out

import (
	"context"

	"hyprfocus/internal/modules/calendar/domain"
)

// Store persists the calendar snapshot. Update runs fn against a freshly
// loaded snapshot under an exclusive lock and saves only when fn succeeds.
type Store interface {
	Load(ctx context.Context) (domain.Snapshot, error)
	Update(ctx context.Context, fn func(*domain.Snapshot) error) error
}

// SessionLauncher hands a due event to the session controller.
type SessionLauncher interface {
	Launch(ctx context.Context, goal, intention string, minutes int) error
}
