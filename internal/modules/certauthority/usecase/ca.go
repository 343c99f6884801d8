package usecase

import (
	"context"

	"hyprfocus/internal/modules/certauthority/dto"
	cain "hyprfocus/internal/modules/certauthority/port/in"
	"hyprfocus/internal/modules/certauthority/service"
)

type Interactor struct {
	svc *service.CAService
}

func NewInteractor(svc *service.CAService) cain.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) EnsureRoot(ctx context.Context) (dto.RootOutput, error) {
	created, err := i.svc.EnsureRoot(ctx)
	if err != nil {
		return dto.RootOutput{}, err
	}
	status, err := i.svc.Status(ctx)
	if err != nil {
		return dto.RootOutput{}, err
	}
	return dto.RootOutput{Created: created, RootPath: status.Root}, nil
}

func (i *Interactor) Issue(ctx context.Context, input dto.IssueInput) (dto.IssueOutput, error) {
	issued, err := i.svc.Issue(ctx, input.Domains)
	if err != nil {
		return dto.IssueOutput{}, err
	}
	return dto.IssueOutput{SANs: issued.SANs, BundlePath: issued.Bundle, RootPath: issued.Root, NotAfter: issued.Info.NotAfter}, nil
}

func (i *Interactor) Status(ctx context.Context) (dto.StatusOutput, error) {
	status, err := i.svc.Status(ctx)
	if err != nil {
		return dto.StatusOutput{}, err
	}
	out := dto.StatusOutput{RootPath: status.Root, BundlePath: status.Bundle}
	if status.RootInfo != nil {
		out.RootPresent = true
		out.RootNotAfter = status.RootInfo.NotAfter
	}
	if status.BundleInfo != nil {
		out.BundleSANs = status.BundleInfo.DNSNames
		out.BundleExpiry = status.BundleInfo.NotAfter
	}
	return out, nil
}
