package usecase

import (
	"context"

	"hyprfocus/internal/modules/stats/dto"
	statsin "hyprfocus/internal/modules/stats/port/in"
	"hyprfocus/internal/modules/stats/service"
)

type Interactor struct {
	svc *service.StatsService
}

func NewInteractor(svc *service.StatsService) statsin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Summary(ctx context.Context) (dto.SummaryOutput, error) {
	summary, err := i.svc.Summary(ctx)
	if err != nil {
		return dto.SummaryOutput{}, err
	}
	out := dto.SummaryOutput{
		TodayHours:    summary.TodayHours,
		TodaySessions: summary.TodaySessions,
		AverageRating: summary.AverageRating,
		Ratings:       summary.Ratings,
	}
	for _, day := range summary.History {
		out.History = append(out.History, dto.DayHours{Date: day.Date, Hours: day.Hours})
	}
	for _, r := range summary.Recent {
		out.Recent = append(out.Recent, dto.ActivityItem{Timestamp: r.Timestamp, Type: r.Type, Goal: r.Goal, Intention: r.Intention})
	}
	return out, nil
}

func (i *Interactor) Reindex(ctx context.Context) (dto.ReindexOutput, error) {
	records, spans, err := i.svc.Reindex(ctx)
	if err != nil {
		return dto.ReindexOutput{}, err
	}
	return dto.ReindexOutput{Records: records, Spans: spans}, nil
}

func (i *Interactor) GoalTotals(ctx context.Context) ([]dto.GoalTotal, error) {
	totals, err := i.svc.GoalTotals(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.GoalTotal, 0, len(totals))
	for _, t := range totals {
		out = append(out, dto.GoalTotal{Goal: t.Goal, Sessions: t.Sessions, Hours: t.Hours, AverageRating: t.AverageRating})
	}
	return out, nil
}
