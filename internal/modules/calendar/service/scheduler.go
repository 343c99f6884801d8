package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"hyprfocus/internal/modules/calendar/domain"
	apperrors "hyprfocus/internal/platform/errors"
)

type gesture struct {
	kind    domain.GestureKind
	grid    domain.Grid
	event   domain.Event
	day     int
	anchor  int
	origEnd int
	start   int
	end     int
	refused bool
}

func (g *gesture) outcome(kind domain.OutcomeKind) domain.Outcome {
	return domain.Outcome{
		Kind:    kind,
		Gesture: g.kind,
		EventID: g.event.ID,
		Day:     g.day,
		Start:   g.start,
		End:     g.end,
		Refused: g.refused,
	}
}

// times converts a slot range to the times a commit stores. Edges the
// gesture does not drag keep their exact time, so an event created off the
// slot grid keeps its odd minutes.
func (g *gesture) times(start, end int) (time.Time, time.Time) {
	from, to := g.event.Start, g.event.End
	switch g.kind {
	case domain.GestureMove:
		from = domain.SlotTime(g.grid.Week, g.day, start)
		to = from.Add(g.event.Duration())
	case domain.GestureResizeTop:
		from = domain.SlotTime(g.grid.Week, g.day, start)
	case domain.GestureResizeBottom:
		to = domain.SlotTime(g.grid.Week, g.day, end)
	}
	return from, to
}

// Scheduler turns pointer input into calendar edits. It holds at most one
// gesture, which is dropped on every end, cancel or error. A Scheduler is
// not safe for concurrent use; feed it from a single loop.
type Scheduler struct {
	calendar *CalendarService
	current  *gesture
	logger   *slog.Logger
}

func NewScheduler(calendar *CalendarService) *Scheduler {
	return &Scheduler{calendar: calendar, logger: calendar.logger}
}

// Active reports whether a gesture is in progress.
func (s *Scheduler) Active() bool { return s.current != nil }

// Run drains inputs until the channel closes or ctx ends, passing every
// outcome to emit. Any unfinished gesture is discarded on return.
func (s *Scheduler) Run(ctx context.Context, inputs <-chan domain.Input, emit func(domain.Outcome)) error {
	defer func() { s.current = nil }()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case in, ok := <-inputs:
			if !ok {
				return nil
			}
			out, err := s.Handle(ctx, in)
			if err != nil {
				return err
			}
			emit(out)
		}
	}
}

func (s *Scheduler) Handle(ctx context.Context, in domain.Input) (domain.Outcome, error) {
	switch in.Kind {
	case domain.InputBegin:
		s.current = nil
		out, err := s.begin(ctx, in)
		if err != nil {
			s.current = nil
		}
		return out, err
	case domain.InputUpdate:
		if s.current == nil {
			return domain.Outcome{Kind: domain.OutcomeIgnored}, nil
		}
		return s.update(s.current, in.SlotDelta()), nil
	case domain.InputEnd:
		g := s.current
		s.current = nil
		if g == nil {
			return domain.Outcome{Kind: domain.OutcomeIgnored}, nil
		}
		return s.finish(ctx, g)
	case domain.InputCancel:
		g := s.current
		s.current = nil
		if g == nil {
			return domain.Outcome{Kind: domain.OutcomeIgnored}, nil
		}
		return g.outcome(domain.OutcomeCancelled), nil
	default:
		s.current = nil
		return domain.Outcome{}, fmt.Errorf("%w: unknown input kind %q", apperrors.ErrInvalidInput, in.Kind)
	}
}

func (s *Scheduler) begin(ctx context.Context, in domain.Input) (domain.Outcome, error) {
	if !in.Gesture.Valid() {
		return domain.Outcome{}, fmt.Errorf("%w: unknown gesture %q", apperrors.ErrInvalidInput, in.Gesture)
	}
	if in.Gesture == domain.GestureCreate {
		grid, _, err := s.calendar.Week(ctx, in.Week)
		if err != nil {
			return domain.Outcome{}, err
		}
		g := &gesture{kind: in.Gesture, grid: grid, day: in.Day, anchor: in.Slot}
		if grid.Collides(in.Day, in.Slot, in.Slot+1, "") {
			g.start, g.end = in.Slot, in.Slot+1
			return g.outcome(domain.OutcomeRejected), nil
		}
		g.start, g.end = domain.CreateRange(grid, in.Day, in.Slot, in.Slot)
		s.current = g
		return g.outcome(domain.OutcomePreview), nil
	}

	grid, event, err := s.calendar.locate(ctx, in.EventID)
	if err != nil {
		return domain.Outcome{}, err
	}
	p := domain.Place(grid.Week, event)
	g := &gesture{
		kind:    in.Gesture,
		grid:    grid,
		event:   event,
		day:     p.Day,
		anchor:  p.Start,
		origEnd: p.End,
		start:   p.Start,
		end:     p.End,
	}
	s.current = g
	return g.outcome(domain.OutcomePreview), nil
}

func (s *Scheduler) update(g *gesture, delta int) domain.Outcome {
	var start, end int
	switch g.kind {
	case domain.GestureCreate:
		g.start, g.end = domain.CreateRange(g.grid, g.day, g.anchor, g.anchor+delta)
		g.refused = false
		return g.outcome(domain.OutcomePreview)
	case domain.GestureMove:
		span := g.origEnd - g.anchor
		start = domain.MoveTarget(g.anchor, span, delta)
		end = start + span
	case domain.GestureResizeTop:
		start, end = domain.ResizeTopTarget(g.anchor, g.origEnd, delta), g.origEnd
	case domain.GestureResizeBottom:
		start, end = g.anchor, domain.ResizeBottomTarget(g.anchor, g.origEnd, delta)
	}
	from, to := g.times(start, end)
	g.refused = to.Sub(from) < domain.MinDuration || g.grid.Collides(g.day, start, end, g.event.ID)
	if !g.refused {
		g.start, g.end = start, end
	}
	return g.outcome(domain.OutcomePreview)
}

func (s *Scheduler) finish(ctx context.Context, g *gesture) (domain.Outcome, error) {
	if g.kind == domain.GestureCreate {
		return g.outcome(domain.OutcomeOpenEditor), nil
	}
	if g.start == g.anchor && g.end == g.origEnd {
		return g.outcome(domain.OutcomeCommitted), nil
	}
	start, end := g.times(g.start, g.end)
	_, placed, err := s.calendar.Reschedule(ctx, g.event.ID, start, end)
	if err != nil && !errors.Is(err, apperrors.ErrInvalidInput) {
		return domain.Outcome{}, err
	}
	if err != nil || !placed {
		s.logger.Info("gesture dropped", "id", g.event.ID, "gesture", g.kind, "error", err)
		g.start, g.end = g.anchor, g.origEnd
		return g.outcome(domain.OutcomeRejected), nil
	}
	return g.outcome(domain.OutcomeCommitted), nil
}

// locate returns an event together with the grid of the week it starts in.
func (s *CalendarService) locate(ctx context.Context, eventID string) (domain.Grid, domain.Event, error) {
	snap, err := s.store.Load(ctx)
	if err != nil {
		return domain.Grid{}, domain.Event{}, err
	}
	i := snap.EventIndex(eventID)
	if i < 0 {
		return domain.Grid{}, domain.Event{}, fmt.Errorf("%w: event %q", apperrors.ErrNotFound, eventID)
	}
	e := snap.Events[i]
	return snap.Grid(domain.WeekStart(e.Start)), e, nil
}
