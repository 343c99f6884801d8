package in

import (
	"context"

	"hyprfocus/internal/modules/plugin/dto"
)

type Usecase interface {
	List(ctx context.Context) ([]dto.PluginInfo, error)
	Doctor(ctx context.Context) ([]dto.DoctorResult, error)
	Invoke(ctx context.Context, input dto.InvokeInput) (dto.InvokeOutput, error)
	Collaborator
}

// Collaborator calls one capability of a named plugin with typed payloads.
// A dismissed prompt or feedback dialog comes back as ErrPromptCancelled.
type Collaborator interface {
	Notify(ctx context.Context, plugin string, in dto.NotifyPayload) error
	SetTheme(ctx context.Context, plugin, theme string) error
	PromptIntention(ctx context.Context, plugin string, in dto.PromptIntentionPayload) (dto.PromptIntentionResult, error)
	CollectFeedback(ctx context.Context, plugin string, in dto.FeedbackPayload) (dto.FeedbackResult, error)
}
