package in

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"hyprfocus/internal/modules/plugin/dto"
	pluginin "hyprfocus/internal/modules/plugin/port/in"
	apperrors "hyprfocus/internal/platform/errors"
)

type CLIHandler struct {
	usecase pluginin.Usecase
}

func NewCLIHandler(usecase pluginin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) List(ctx context.Context) ([]dto.PluginInfo, error) {
	return h.usecase.List(ctx)
}

func (h CLIHandler) Doctor(ctx context.Context) ([]dto.DoctorResult, error) {
	return h.usecase.Doctor(ctx)
}

// Invoke sends a raw JSON payload, "{}" when empty, to one capability.
func (h CLIHandler) Invoke(ctx context.Context, pluginName, capability, payloadJSON string) (dto.InvokeOutput, error) {
	payloadJSON = strings.TrimSpace(payloadJSON)
	if payloadJSON == "" {
		payloadJSON = "{}"
	}
	if !json.Valid([]byte(payloadJSON)) {
		return dto.InvokeOutput{}, fmt.Errorf("%w: payload is not valid JSON", apperrors.ErrInvalidInput)
	}
	return h.usecase.Invoke(ctx, dto.InvokeInput{PluginName: pluginName, Capability: capability, PayloadJSON: payloadJSON})
}
