package in

import (
	"context"
	"strings"

	"hyprfocus/internal/modules/certauthority/dto"
	cain "hyprfocus/internal/modules/certauthority/port/in"
)

type CLIHandler struct {
	usecase cain.Usecase
}

func NewCLIHandler(usecase cain.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Init(ctx context.Context) (dto.RootOutput, error) {
	return h.usecase.EnsureRoot(ctx)
}

func (h CLIHandler) Issue(ctx context.Context, args []string) (dto.IssueOutput, error) {
	var domains []string
	for _, arg := range args {
		domains = append(domains, strings.Split(arg, ",")...)
	}
	return h.usecase.Issue(ctx, dto.IssueInput{Domains: domains})
}

func (h CLIHandler) Status(ctx context.Context) (dto.StatusOutput, error) {
	return h.usecase.Status(ctx)
}
