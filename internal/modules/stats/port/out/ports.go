package out

import (
	"context"

	"hyprfocus/internal/modules/stats/domain"
)

// RecordSource reads the whole event log, oldest first.
type RecordSource interface {
	Records(ctx context.Context) ([]domain.Record, error)
}

// Projection is the sqlite read model of the event log.
type Projection interface {
	Replace(ctx context.Context, records []domain.Record, spans []domain.Span) error
	GoalTotals(ctx context.Context) ([]domain.GoalTotal, error)
}
