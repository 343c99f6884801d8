package usecase

import (
	"context"

	"hyprfocus/internal/modules/blocklist/domain"
	"hyprfocus/internal/modules/blocklist/dto"
	blocklistin "hyprfocus/internal/modules/blocklist/port/in"
	"hyprfocus/internal/modules/blocklist/service"
)

type Interactor struct {
	svc *service.BlocklistService
}

func NewInteractor(svc *service.BlocklistService) blocklistin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) BlockGoal(ctx context.Context, input dto.BlockInput) (dto.BlockOutput, error) {
	n, err := i.svc.BlockGoal(ctx, input.Domains)
	if err != nil {
		return dto.BlockOutput{}, err
	}
	return dto.BlockOutput{Region: string(domain.RegionGoal), Rules: n}, nil
}

func (i *Interactor) ClearGoal(ctx context.Context) error {
	return i.svc.ClearGoal(ctx)
}

func (i *Interactor) SetAds(ctx context.Context, enabled bool) (dto.BlockOutput, error) {
	n, err := i.svc.SetAds(ctx, enabled)
	if err != nil {
		return dto.BlockOutput{}, err
	}
	return dto.BlockOutput{Region: string(domain.RegionAds), Rules: n}, nil
}

func (i *Interactor) ToggleAds(ctx context.Context, enabled bool) (dto.BlockOutput, error) {
	n, err := i.svc.ToggleAds(ctx, enabled)
	if err != nil {
		return dto.BlockOutput{}, err
	}
	return dto.BlockOutput{Region: string(domain.RegionAds), Rules: n}, nil
}

func (i *Interactor) UpdateAds(ctx context.Context) (dto.BlockOutput, error) {
	n, err := i.svc.UpdateAds(ctx)
	if err != nil {
		return dto.BlockOutput{}, err
	}
	return dto.BlockOutput{Region: string(domain.RegionAds), Rules: n}, nil
}

func (i *Interactor) Status(ctx context.Context) (dto.StatusOutput, error) {
	status, err := i.svc.Status(ctx)
	if err != nil {
		return dto.StatusOutput{}, err
	}
	return dto.StatusOutput{GoalDomains: status.GoalDomains, AdRules: status.AdRules, AdsEnabled: status.AdsEnabled}, nil
}
