package service

import (
	"context"
	"log/slog"

	"hyprfocus/internal/modules/stats/domain"
	statsout "hyprfocus/internal/modules/stats/port/out"
	"hyprfocus/internal/platform/clock"
	"hyprfocus/internal/platform/logging"
)

type StatsService struct {
	records    statsout.RecordSource
	projection statsout.Projection
	clock      clock.Clock
	logger     *slog.Logger
}

func NewStatsService(records statsout.RecordSource, projection statsout.Projection, clk clock.Clock, logger *slog.Logger) *StatsService {
	return &StatsService{records: records, projection: projection, clock: clk, logger: logging.OrDiscard(logger)}
}

// Summary is computed straight from the log so it never lags behind a
// missed reindex.
func (s *StatsService) Summary(ctx context.Context) (domain.Summary, error) {
	records, err := s.records.Records(ctx)
	if err != nil {
		return domain.Summary{}, err
	}
	return domain.Summarize(records, s.clock.Now()), nil
}

func (s *StatsService) Reindex(ctx context.Context) (int, int, error) {
	records, err := s.records.Records(ctx)
	if err != nil {
		return 0, 0, err
	}
	spans := domain.Pair(records)
	if err := s.projection.Replace(ctx, records, spans); err != nil {
		return 0, 0, err
	}
	s.logger.Info("stats projection rebuilt", "records", len(records), "spans", len(spans))
	return len(records), len(spans), nil
}

func (s *StatsService) GoalTotals(ctx context.Context) ([]domain.GoalTotal, error) {
	return s.projection.GoalTotals(ctx)
}
