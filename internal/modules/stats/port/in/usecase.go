package in

import (
	"context"

	"hyprfocus/internal/modules/stats/dto"
)

type Usecase interface {
	Summary(ctx context.Context) (dto.SummaryOutput, error)
	Reindex(ctx context.Context) (dto.ReindexOutput, error)
	GoalTotals(ctx context.Context) ([]dto.GoalTotal, error)
}
