package in

import (
	"context"

	"hyprfocus/internal/modules/stats/dto"
	statsin "hyprfocus/internal/modules/stats/port/in"
)

type CLIHandler struct {
	usecase statsin.Usecase
}

func NewCLIHandler(usecase statsin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Show(ctx context.Context) (dto.SummaryOutput, error) {
	return h.usecase.Summary(ctx)
}

func (h CLIHandler) Reindex(ctx context.Context) (dto.ReindexOutput, error) {
	return h.usecase.Reindex(ctx)
}

// Goals refreshes the projection before answering so totals include the
// latest sessions.
func (h CLIHandler) Goals(ctx context.Context) ([]dto.GoalTotal, error) {
	if _, err := h.usecase.Reindex(ctx); err != nil {
		return nil, err
	}
	return h.usecase.GoalTotals(ctx)
}
