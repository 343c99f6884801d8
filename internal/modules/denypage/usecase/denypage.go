package usecase

import (
	"context"
	"net/http"

	"hyprfocus/internal/modules/denypage/domain"
	"hyprfocus/internal/modules/denypage/dto"
	denyin "hyprfocus/internal/modules/denypage/port/in"
	"hyprfocus/internal/modules/denypage/service"
)

type Interactor struct {
	svc *service.DenyService
}

func NewInteractor(svc *service.DenyService) denyin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Page(ctx context.Context, host string) (dto.PageOutput, error) {
	page := i.svc.Page(ctx, host)
	return dto.PageOutput{Host: page.Host, Goal: page.Goal, Intention: page.Intention}, nil
}

func (i *Interactor) Serve(ctx context.Context, handler http.Handler) error {
	return i.svc.Serve(ctx, handler)
}

func (i *Interactor) EnsureRunning(ctx context.Context) (dto.StatusOutput, error) {
	status, err := i.svc.EnsureRunning(ctx)
	if err != nil {
		return dto.StatusOutput{}, err
	}
	return i.toDTO(status), nil
}

func (i *Interactor) Stop(ctx context.Context) error {
	return i.svc.Stop(ctx)
}

func (i *Interactor) Status(ctx context.Context) (dto.StatusOutput, error) {
	status, err := i.svc.Status(ctx)
	if err != nil {
		return dto.StatusOutput{}, err
	}
	return i.toDTO(status), nil
}

func (i *Interactor) toDTO(status domain.Status) dto.StatusOutput {
	httpAddr, httpsAddr := i.svc.Addrs()
	return dto.StatusOutput{
		PID:            status.PID,
		Running:        status.Running,
		Spawned:        status.Spawned,
		HTTPAddr:       httpAddr,
		HTTPSAddr:      httpsAddr,
		HTTPReachable:  status.HTTPReachable,
		HTTPSReachable: status.HTTPSReachable,
	}
}
