package in

import (
	"context"
	"net/http"

	"hyprfocus/internal/modules/denypage/dto"
)

type Usecase interface {
	Page(ctx context.Context, host string) (dto.PageOutput, error)
	Serve(ctx context.Context, handler http.Handler) error
	EnsureRunning(ctx context.Context) (dto.StatusOutput, error)
	Stop(ctx context.Context) error
	Status(ctx context.Context) (dto.StatusOutput, error)
}
