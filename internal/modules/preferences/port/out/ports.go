package out

import (
	"context"

	"hyprfocus/internal/modules/preferences/domain"
)

// Store persists goals, filters and the pomodoro cadence. Update runs fn on
// a freshly loaded snapshot under an exclusive lock and saves only when fn
// succeeds.
type Store interface {
	Load(ctx context.Context) (domain.Snapshot, error)
	Update(ctx context.Context, fn func(*domain.Snapshot) error) error
}
