package out

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"hyprfocus/internal/modules/session/domain"
	sessionout "hyprfocus/internal/modules/session/port/out"
	apperrors "hyprfocus/internal/platform/errors"
)

// TerminalPrompter asks for check-ins and feedback with huh forms on the
// controlling terminal.
type TerminalPrompter struct{}

var (
	_ sessionout.IntentionPrompter = TerminalPrompter{}
	_ sessionout.FeedbackCollector = TerminalPrompter{}
)

func (TerminalPrompter) PromptIntention(ctx context.Context, goal, current string) (string, error) {
	var next string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Check-in: " + goal).
				Description("Leave empty to continue with: " + current).
				Placeholder(current).
				Value(&next),
		),
	)
	if err := form.RunWithContext(ctx); err != nil {
		return "", promptError(ctx, err)
	}
	next = strings.TrimSpace(next)
	if next == "" {
		return "", apperrors.ErrPromptCancelled
	}
	return next, nil
}

func (TerminalPrompter) CollectFeedback(ctx context.Context, goal, intention string) (domain.Feedback, error) {
	rating := 5
	var comment string
	submit := true

	options := make([]huh.Option[int], 0, 10)
	for i := 1; i <= 10; i++ {
		options = append(options, huh.NewOption(strconv.Itoa(i)+"/10", i))
	}
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Session Complete").
				Description(fmt.Sprintf("GOAL: %s\nINTENTION: %s", goal, intention)),
			huh.NewSelect[int]().
				Title("Productivity Rating").
				Options(options...).
				Value(&rating),
			huh.NewText().
				Title("Comments / Retrospective").
				Value(&comment),
			huh.NewConfirm().
				Affirmative("Submit").
				Negative("Skip").
				Value(&submit),
		),
	)
	if err := form.RunWithContext(ctx); err != nil {
		return domain.Feedback{}, promptError(ctx, err)
	}
	if !submit {
		return domain.Feedback{}, apperrors.ErrPromptCancelled
	}
	return domain.Feedback{Goal: goal, Intention: intention, Rating: rating, Comment: strings.TrimSpace(comment)}, nil
}

func promptError(ctx context.Context, err error) error {
	if errors.Is(err, huh.ErrUserAborted) {
		return apperrors.ErrPromptCancelled
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	return fmt.Errorf("terminal prompt: %w", err)
}

// NoPrompter never asks; every prompt keeps the current answer.
type NoPrompter struct{}

func (NoPrompter) PromptIntention(context.Context, string, string) (string, error) {
	return "", apperrors.ErrPromptCancelled
}

func (NoPrompter) CollectFeedback(context.Context, string, string) (domain.Feedback, error) {
	return domain.Feedback{}, apperrors.ErrPromptCancelled
}
