package in

import (
	"context"

	"hyprfocus/internal/modules/certauthority/dto"
)

type Usecase interface {
	EnsureRoot(ctx context.Context) (dto.RootOutput, error)
	Issue(ctx context.Context, input dto.IssueInput) (dto.IssueOutput, error)
	Status(ctx context.Context) (dto.StatusOutput, error)
}
