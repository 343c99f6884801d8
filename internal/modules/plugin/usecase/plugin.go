package usecase

import (
	"context"
	"encoding/json"
	"fmt"

	"hyprfocus/internal/modules/plugin/domain"
	"hyprfocus/internal/modules/plugin/dto"
	pluginin "hyprfocus/internal/modules/plugin/port/in"
	"hyprfocus/internal/modules/plugin/service"
	apperrors "hyprfocus/internal/platform/errors"
)

type Interactor struct {
	svc *service.PluginService
}

func NewInteractor(svc *service.PluginService) pluginin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) List(ctx context.Context) ([]dto.PluginInfo, error) {
	return i.svc.List(ctx)
}

func (i *Interactor) Doctor(ctx context.Context) ([]dto.DoctorResult, error) {
	return i.svc.Doctor(ctx)
}

func (i *Interactor) Invoke(ctx context.Context, input dto.InvokeInput) (dto.InvokeOutput, error) {
	return i.svc.Invoke(ctx, input)
}

func (i *Interactor) Notify(ctx context.Context, plugin string, in dto.NotifyPayload) error {
	_, err := i.call(ctx, plugin, domain.CapabilityNotify, in, "", "")
	return err
}

func (i *Interactor) SetTheme(ctx context.Context, plugin, theme string) error {
	_, err := i.call(ctx, plugin, domain.CapabilityTheme, dto.ThemePayload{Theme: theme}, "", "")
	return err
}

func (i *Interactor) PromptIntention(ctx context.Context, plugin string, in dto.PromptIntentionPayload) (dto.PromptIntentionResult, error) {
	var result dto.PromptIntentionResult
	out, err := i.call(ctx, plugin, domain.CapabilityPromptIntention, in, in.Goal, in.Current)
	if err != nil {
		return result, err
	}
	if out.Cancelled {
		return result, apperrors.ErrPromptCancelled
	}
	if err := json.Unmarshal([]byte(out.OutputJSON), &result); err != nil {
		return result, fmt.Errorf("decode check-in answer from %s: %w", plugin, err)
	}
	return result, nil
}

func (i *Interactor) CollectFeedback(ctx context.Context, plugin string, in dto.FeedbackPayload) (dto.FeedbackResult, error) {
	var result dto.FeedbackResult
	out, err := i.call(ctx, plugin, domain.CapabilityFeedback, in, in.Goal, in.Intention)
	if err != nil {
		return result, err
	}
	if out.Cancelled {
		return result, apperrors.ErrPromptCancelled
	}
	if err := json.Unmarshal([]byte(out.OutputJSON), &result); err != nil {
		return result, fmt.Errorf("decode feedback from %s: %w", plugin, err)
	}
	return result, nil
}

func (i *Interactor) call(ctx context.Context, plugin string, capability domain.Capability, payload any, goal, intention string) (dto.InvokeOutput, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return dto.InvokeOutput{}, fmt.Errorf("marshal %s payload: %w", capability, err)
	}
	return i.svc.Invoke(ctx, dto.InvokeInput{
		PluginName:  plugin,
		Capability:  string(capability),
		PayloadJSON: string(raw),
		Goal:        goal,
		Intention:   intention,
	})
}
