package in

import (
	"context"

	"hyprfocus/internal/modules/session/dto"
)

type Usecase interface {
	Run(ctx context.Context, input dto.RunInput) (dto.RunOutput, error)
	Launch(ctx context.Context, input dto.LaunchInput) (dto.DescriptorOutput, error)
	Peek(ctx context.Context) (dto.DescriptorOutput, error)
	Current(ctx context.Context) (dto.CurrentOutput, error)
	RecordFeedback(ctx context.Context, input dto.FeedbackInput) (dto.EventOutput, error)
	History(ctx context.Context, limit int) ([]dto.EventOutput, error)
}
