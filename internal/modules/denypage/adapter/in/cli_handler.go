package in

import (
	"context"
	"io"

	"hyprfocus/internal/modules/denypage/dto"
	denyin "hyprfocus/internal/modules/denypage/port/in"
)

type CLIHandler struct {
	usecase denyin.Usecase
}

func NewCLIHandler(usecase denyin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

// Serve blocks until ctx is cancelled.
func (h CLIHandler) Serve(ctx context.Context, logWriter io.Writer) error {
	return h.usecase.Serve(ctx, NewRouter(h.usecase, logWriter))
}

func (h CLIHandler) Start(ctx context.Context) (dto.StatusOutput, error) {
	return h.usecase.EnsureRunning(ctx)
}

func (h CLIHandler) Stop(ctx context.Context) error {
	return h.usecase.Stop(ctx)
}

func (h CLIHandler) Status(ctx context.Context) (dto.StatusOutput, error) {
	return h.usecase.Status(ctx)
}
