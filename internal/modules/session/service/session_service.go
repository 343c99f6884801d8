package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"hyprfocus/internal/modules/session/domain"
	sessionout "hyprfocus/internal/modules/session/port/out"
	"hyprfocus/internal/platform/clock"
	apperrors "hyprfocus/internal/platform/errors"
	"hyprfocus/internal/platform/logging"
)

// A controller republishes at least every second, or every few seconds
// while a prompt is open; anything older than this is a leftover.
const statusStaleAfter = 5 * time.Minute

// SessionService covers everything outside the running controller: the
// descriptor handoff, the live snapshot and the event log.
type SessionService struct {
	descriptors sessionout.DescriptorStore
	events      sessionout.EventLog
	status      sessionout.StatusStore
	clock       clock.Clock
	logger      *slog.Logger
}

func NewSessionService(descriptors sessionout.DescriptorStore, events sessionout.EventLog, status sessionout.StatusStore, clk clock.Clock, logger *slog.Logger) *SessionService {
	return &SessionService{
		descriptors: descriptors,
		events:      events,
		status:      status,
		clock:       clk,
		logger:      logging.OrDiscard(logger),
	}
}

func (s *SessionService) Launch(ctx context.Context, d domain.Descriptor) (domain.Descriptor, error) {
	if d.Intention == "" {
		d.Intention = domain.DefaultIntention
	}
	if err := d.Validate(); err != nil {
		return domain.Descriptor{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	if err := s.descriptors.Save(ctx, d); err != nil {
		return domain.Descriptor{}, err
	}
	s.logger.Info("session descriptor written", "goal", d.Goal, "duration", d.Duration, "pomodoro", d.Pomodoro)
	return d, nil
}

func (s *SessionService) Peek(ctx context.Context) (domain.Descriptor, error) {
	return s.descriptors.Load(ctx)
}

func (s *SessionService) Current(ctx context.Context) (domain.Snapshot, error) {
	status, err := s.status.Load(ctx)
	switch {
	case err == nil:
		if !status.Stale(s.clock.Now(), statusStaleAfter) && status.State != domain.StateTerminated {
			return domain.Snapshot{Source: domain.SourceRunning, Status: status}, nil
		}
	case !errors.Is(err, apperrors.ErrNotFound):
		s.logger.Warn("session status unreadable", "error", err)
	}

	d, err := s.descriptors.Load(ctx)
	switch {
	case err == nil:
		return domain.Snapshot{Source: domain.SourcePending, Descriptor: d}, nil
	case errors.Is(err, apperrors.ErrNotFound):
		return domain.Snapshot{Source: domain.SourceNone}, nil
	default:
		return domain.Snapshot{}, err
	}
}

func (s *SessionService) RecordFeedback(ctx context.Context, f domain.Feedback) (domain.Event, error) {
	e, err := domain.FeedbackEvent(s.clock.Now(), f)
	if err != nil {
		return domain.Event{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	if err := s.events.Append(ctx, e); err != nil {
		return domain.Event{}, err
	}
	return e, nil
}

func (s *SessionService) History(ctx context.Context, limit int) ([]domain.Event, error) {
	return s.events.Tail(ctx, limit)
}
