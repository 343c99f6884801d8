package in

import (
	"context"

	sessiondto "hyprfocus/internal/modules/session/dto"
	sessionin "hyprfocus/internal/modules/session/port/in"
)

type CLIHandler struct {
	usecase sessionin.Usecase
}

func NewCLIHandler(usecase sessionin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Launch(ctx context.Context, goal, intention string, duration int, pomodoro bool) (sessiondto.DescriptorOutput, error) {
	return h.usecase.Launch(ctx, sessiondto.LaunchInput{Goal: goal, Intention: intention, Duration: duration, Pomodoro: pomodoro})
}

func (h CLIHandler) Run(ctx context.Context, skipShutdown bool) (sessiondto.RunOutput, error) {
	return h.usecase.Run(ctx, sessiondto.RunInput{SkipShutdown: skipShutdown})
}

func (h CLIHandler) Status(ctx context.Context) (sessiondto.CurrentOutput, error) {
	return h.usecase.Current(ctx)
}

// Feedback fills goal and intention from the current or pending session
// when they are not given.
func (h CLIHandler) Feedback(ctx context.Context, goal, intention string, rating int, comment string) (sessiondto.EventOutput, error) {
	if goal == "" || intention == "" {
		if current, err := h.usecase.Current(ctx); err == nil {
			if goal == "" {
				goal = current.Goal
			}
			if intention == "" {
				intention = current.Intention
			}
		}
	}
	return h.usecase.RecordFeedback(ctx, sessiondto.FeedbackInput{Goal: goal, Intention: intention, Rating: rating, Comment: comment})
}

func (h CLIHandler) History(ctx context.Context, limit int) ([]sessiondto.EventOutput, error) {
	return h.usecase.History(ctx, limit)
}
