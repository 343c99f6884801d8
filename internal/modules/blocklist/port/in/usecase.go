package in

import (
	"context"

	"hyprfocus/internal/modules/blocklist/dto"
)

type Usecase interface {
	BlockGoal(ctx context.Context, input dto.BlockInput) (dto.BlockOutput, error)
	ClearGoal(ctx context.Context) error
	SetAds(ctx context.Context, enabled bool) (dto.BlockOutput, error)
	// ToggleAds persists the choice before applying it.
	ToggleAds(ctx context.Context, enabled bool) (dto.BlockOutput, error)
	UpdateAds(ctx context.Context) (dto.BlockOutput, error)
	Status(ctx context.Context) (dto.StatusOutput, error)
}
