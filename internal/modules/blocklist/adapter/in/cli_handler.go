package in

import (
	"context"
	"strings"

	"hyprfocus/internal/modules/blocklist/dto"
	blocklistin "hyprfocus/internal/modules/blocklist/port/in"
)

type CLIHandler struct {
	usecase blocklistin.Usecase
}

func NewCLIHandler(usecase blocklistin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

// BlockGoal accepts domains either as separate arguments or comma-joined.
func (h CLIHandler) BlockGoal(ctx context.Context, args []string) (dto.BlockOutput, error) {
	var domains []string
	for _, arg := range args {
		domains = append(domains, strings.Split(arg, ",")...)
	}
	return h.usecase.BlockGoal(ctx, dto.BlockInput{Domains: domains})
}

func (h CLIHandler) Clear(ctx context.Context) error {
	return h.usecase.ClearGoal(ctx)
}

// Ads is the on/off switch; the choice survives into later sessions.
func (h CLIHandler) Ads(ctx context.Context, enabled bool) (dto.BlockOutput, error) {
	return h.usecase.ToggleAds(ctx, enabled)
}

func (h CLIHandler) UpdateAds(ctx context.Context) (dto.BlockOutput, error) {
	return h.usecase.UpdateAds(ctx)
}

func (h CLIHandler) Status(ctx context.Context) (dto.StatusOutput, error) {
	return h.usecase.Status(ctx)
}
