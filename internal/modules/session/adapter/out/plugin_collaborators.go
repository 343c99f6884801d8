package out

import (
	"context"

	plugindto "hyprfocus/internal/modules/plugin/dto"
	pluginin "hyprfocus/internal/modules/plugin/port/in"
	"hyprfocus/internal/modules/session/domain"
	sessionout "hyprfocus/internal/modules/session/port/out"
)

// PluginCollaborators routes notifications, theme switches and both
// prompts to one collaborator plugin.
type PluginCollaborators struct {
	plugins pluginin.Collaborator
	name    string
}

var (
	_ sessionout.Notifier          = (*PluginCollaborators)(nil)
	_ sessionout.ThemeSwitcher     = (*PluginCollaborators)(nil)
	_ sessionout.IntentionPrompter = (*PluginCollaborators)(nil)
	_ sessionout.FeedbackCollector = (*PluginCollaborators)(nil)
)

func NewPluginCollaborators(plugins pluginin.Collaborator, name string) *PluginCollaborators {
	return &PluginCollaborators{plugins: plugins, name: name}
}

func (p *PluginCollaborators) Notify(ctx context.Context, n domain.Notification) error {
	return p.plugins.Notify(ctx, p.name, plugindto.NotifyPayload{Summary: n.Summary, Body: n.Body, Urgency: string(n.Urgency)})
}

func (p *PluginCollaborators) Apply(ctx context.Context, theme string) error {
	return p.plugins.SetTheme(ctx, p.name, theme)
}

func (p *PluginCollaborators) PromptIntention(ctx context.Context, goal, current string) (string, error) {
	out, err := p.plugins.PromptIntention(ctx, p.name, plugindto.PromptIntentionPayload{Goal: goal, Current: current})
	if err != nil {
		return "", err
	}
	return out.Intention, nil
}

func (p *PluginCollaborators) CollectFeedback(ctx context.Context, goal, intention string) (domain.Feedback, error) {
	out, err := p.plugins.CollectFeedback(ctx, p.name, plugindto.FeedbackPayload{Goal: goal, Intention: intention})
	if err != nil {
		return domain.Feedback{}, err
	}
	return domain.Feedback{Goal: goal, Intention: intention, Rating: out.Rating, Comment: out.Comment}, nil
}
