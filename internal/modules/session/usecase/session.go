package usecase

import (
	"context"

	"hyprfocus/internal/modules/session/domain"
	sessiondto "hyprfocus/internal/modules/session/dto"
	sessionin "hyprfocus/internal/modules/session/port/in"
	"hyprfocus/internal/modules/session/service"
)

type Interactor struct {
	svc        *service.SessionService
	controller *service.Controller
}

func NewInteractor(svc *service.SessionService, controller *service.Controller) sessionin.Usecase {
	return &Interactor{svc: svc, controller: controller}
}

func (i *Interactor) Run(ctx context.Context, input sessiondto.RunInput) (sessiondto.RunOutput, error) {
	outcome, err := i.controller.Run(ctx, service.RunOptions{SkipShutdown: input.SkipShutdown})
	out := sessiondto.RunOutput{
		Goal:        outcome.Descriptor.Goal,
		Intention:   outcome.Intention,
		Pomodoro:    outcome.Descriptor.Pomodoro,
		Completed:   outcome.Completed,
		Interrupted: outcome.Interrupted,
	}
	return out, err
}

func (i *Interactor) Launch(ctx context.Context, input sessiondto.LaunchInput) (sessiondto.DescriptorOutput, error) {
	d, err := i.svc.Launch(ctx, domain.Descriptor{
		Goal:      input.Goal,
		Intention: input.Intention,
		Duration:  input.Duration,
		Pomodoro:  input.Pomodoro,
	})
	if err != nil {
		return sessiondto.DescriptorOutput{}, err
	}
	return toDescriptorOutput(d), nil
}

func (i *Interactor) Peek(ctx context.Context) (sessiondto.DescriptorOutput, error) {
	d, err := i.svc.Peek(ctx)
	if err != nil {
		return sessiondto.DescriptorOutput{}, err
	}
	return toDescriptorOutput(d), nil
}

func (i *Interactor) Current(ctx context.Context) (sessiondto.CurrentOutput, error) {
	snap, err := i.svc.Current(ctx)
	if err != nil {
		return sessiondto.CurrentOutput{}, err
	}
	out := sessiondto.CurrentOutput{
		Source:    string(snap.Source),
		Goal:      snap.Goal(),
		Intention: snap.Intention(),
	}
	switch snap.Source {
	case domain.SourceRunning:
		out.State = string(snap.Status.State)
		out.Phase = string(snap.Status.Phase)
		out.Pomodoro = snap.Status.Pomodoro
		out.EndsAt = snap.Status.EndsAt
		out.RemainingSeconds = snap.Status.Remaining
		out.Completed = snap.Status.Completed
		out.TimerLine = snap.Status.TimerLine()
	case domain.SourcePending:
		out.State = string(domain.StateIdle)
		out.Pomodoro = snap.Descriptor.Pomodoro
		out.Duration = snap.Descriptor.Duration
	}
	return out, nil
}

func (i *Interactor) RecordFeedback(ctx context.Context, input sessiondto.FeedbackInput) (sessiondto.EventOutput, error) {
	e, err := i.svc.RecordFeedback(ctx, domain.Feedback{
		Goal:      input.Goal,
		Intention: input.Intention,
		Rating:    input.Rating,
		Comment:   input.Comment,
	})
	if err != nil {
		return sessiondto.EventOutput{}, err
	}
	return toEventOutput(e), nil
}

func (i *Interactor) History(ctx context.Context, limit int) ([]sessiondto.EventOutput, error) {
	events, err := i.svc.History(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]sessiondto.EventOutput, 0, len(events))
	for _, e := range events {
		out = append(out, toEventOutput(e))
	}
	return out, nil
}

func toDescriptorOutput(d domain.Descriptor) sessiondto.DescriptorOutput {
	return sessiondto.DescriptorOutput{Goal: d.Goal, Intention: d.Intention, Duration: d.Duration, Pomodoro: d.Pomodoro}
}

func toEventOutput(e domain.Event) sessiondto.EventOutput {
	out := sessiondto.EventOutput{
		Timestamp: e.Timestamp,
		Type:      string(e.Type),
		Goal:      e.Goal,
		Intention: e.Intention,
	}
	if e.Duration != nil {
		out.Duration = *e.Duration
	}
	if e.Pomodoro != nil {
		out.Pomodoro = *e.Pomodoro
	}
	if e.Rating != nil {
		out.Rating = *e.Rating
	}
	if e.Comment != nil {
		out.Comment = *e.Comment
	}
	return out
}
