package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"slices"
	"strings"
	"time"

	"hyprfocus/internal/modules/calendar/domain"
	calendarout "hyprfocus/internal/modules/calendar/port/out"
	"hyprfocus/internal/platform/clock"
	apperrors "hyprfocus/internal/platform/errors"
	"hyprfocus/internal/platform/id"
	"hyprfocus/internal/platform/logging"
)

// CalendarService owns every persisted calendar mutation. Each mutation
// re-checks collisions against a freshly loaded snapshot inside the store
// lock, so a stale view can never write an overlapping event.
type CalendarService struct {
	store    calendarout.Store
	launcher calendarout.SessionLauncher
	clock    clock.Clock
	ids      id.Generator
	logger   *slog.Logger
}

func NewCalendarService(store calendarout.Store, launcher calendarout.SessionLauncher, clk clock.Clock, ids id.Generator, logger *slog.Logger) *CalendarService {
	return &CalendarService{
		store:    store,
		launcher: launcher,
		clock:    clk,
		ids:      ids,
		logger:   logging.OrDiscard(logger),
	}
}

// Week loads the grid for the week containing at. A zero time means the
// current week.
func (s *CalendarService) Week(ctx context.Context, at time.Time) (domain.Grid, []string, error) {
	snap, err := s.store.Load(ctx)
	if err != nil {
		return domain.Grid{}, nil, err
	}
	return snap.Grid(s.weekOf(at)), snap.Goals, nil
}

func (s *CalendarService) weekOf(at time.Time) time.Time {
	if at.IsZero() {
		at = s.clock.Now()
	}
	return domain.WeekStart(at)
}

// Create stores a new event. A range that collides with the sleep window or
// another event fails with apperrors.ErrCollision.
func (s *CalendarService) Create(ctx context.Context, e domain.Event) (domain.Event, error) {
	e.Goal = strings.TrimSpace(e.Goal)
	e.Intention = strings.TrimSpace(e.Intention)
	if err := e.Validate(); err != nil {
		return domain.Event{}, err
	}
	err := s.store.Update(ctx, func(snap *domain.Snapshot) error {
		if len(snap.Goals) > 0 && !slices.Contains(snap.Goals, e.Goal) {
			return fmt.Errorf("%w: unknown goal %q", apperrors.ErrInvalidInput, e.Goal)
		}
		if err := checkFree(snap, e); err != nil {
			return err
		}
		e.ID = s.ids.New()
		snap.Events = append(snap.Events, e)
		return nil
	})
	if err != nil {
		return domain.Event{}, err
	}
	s.logger.Info("calendar event created", "id", e.ID, "goal", e.Goal, "start", e.Start, "end", e.End)
	return e, nil
}

func checkFree(snap *domain.Snapshot, e domain.Event) error {
	week := domain.WeekStart(e.Start)
	p := domain.Place(week, e)
	if daySpan(e) > 0 && !isMidnight(e.End, e.Start) {
		return fmt.Errorf("%w: event must end on the day it starts", apperrors.ErrInvalidInput)
	}
	if snap.Grid(week).Collides(p.Day, p.Start, p.End, e.ID) {
		return apperrors.ErrCollision
	}
	return nil
}

func daySpan(e domain.Event) int {
	sy, sm, sd := e.Start.Date()
	end := e.End.In(e.Start.Location())
	ey, em, ed := end.Date()
	return int(time.Date(ey, em, ed, 0, 0, 0, 0, time.UTC).Sub(time.Date(sy, sm, sd, 0, 0, 0, 0, time.UTC)).Hours() / 24)
}

// isMidnight reports whether end is exactly the midnight after start.
func isMidnight(end, start time.Time) bool {
	y, m, d := start.Date()
	return end.Equal(time.Date(y, m, d+1, 0, 0, 0, 0, start.Location()))
}

func (s *CalendarService) Update(ctx context.Context, eventID, goal, intention string) (domain.Event, error) {
	var updated domain.Event
	err := s.store.Update(ctx, func(snap *domain.Snapshot) error {
		i := snap.EventIndex(eventID)
		if i < 0 {
			return fmt.Errorf("%w: event %q", apperrors.ErrNotFound, eventID)
		}
		if g := strings.TrimSpace(goal); g != "" {
			if len(snap.Goals) > 0 && !slices.Contains(snap.Goals, g) {
				return fmt.Errorf("%w: unknown goal %q", apperrors.ErrInvalidInput, g)
			}
			snap.Events[i].Goal = g
		}
		snap.Events[i].Intention = strings.TrimSpace(intention)
		updated = snap.Events[i]
		return nil
	})
	if err != nil {
		return domain.Event{}, err
	}
	return updated, nil
}

func (s *CalendarService) Delete(ctx context.Context, eventID string) error {
	err := s.store.Update(ctx, func(snap *domain.Snapshot) error {
		i := snap.EventIndex(eventID)
		if i < 0 {
			return fmt.Errorf("%w: event %q", apperrors.ErrNotFound, eventID)
		}
		snap.Events = slices.Delete(snap.Events, i, i+1)
		return nil
	})
	if err != nil {
		return err
	}
	s.logger.Info("calendar event deleted", "id", eventID)
	return nil
}

// Reschedule replaces the start and end of an existing event. A collision
// leaves the stored event untouched and reports false.
func (s *CalendarService) Reschedule(ctx context.Context, eventID string, start, end time.Time) (domain.Event, bool, error) {
	var moved domain.Event
	placed := false
	err := s.store.Update(ctx, func(snap *domain.Snapshot) error {
		i := snap.EventIndex(eventID)
		if i < 0 {
			return fmt.Errorf("%w: event %q", apperrors.ErrNotFound, eventID)
		}
		next := snap.Events[i]
		next.Start, next.End = start, end
		if err := next.Validate(); err != nil {
			return err
		}
		if err := checkFree(snap, next); err != nil {
			if errors.Is(err, apperrors.ErrCollision) {
				moved = snap.Events[i]
				return errUnchanged
			}
			return err
		}
		snap.Events[i] = next
		moved, placed = next, true
		return nil
	})
	if errors.Is(err, errUnchanged) {
		return moved, false, nil
	}
	if err != nil {
		return domain.Event{}, false, err
	}
	s.logger.Info("calendar event rescheduled", "id", eventID, "start", start, "end", end)
	return moved, placed, nil
}

// errUnchanged aborts a store update without surfacing an error.
var errUnchanged = errors.New("calendar unchanged")

// DropTask turns a task into a 30-minute event at the given slot. A
// colliding drop is ignored and reported as not placed.
func (s *CalendarService) DropTask(ctx context.Context, index int, week time.Time, day, slot int) (domain.Event, bool, error) {
	week = s.weekOf(week)
	if day < 0 || day >= domain.Days || slot < 0 || slot >= domain.SlotsPerDay {
		return domain.Event{}, false, fmt.Errorf("%w: slot %d on day %d is off the grid", apperrors.ErrInvalidInput, slot, day)
	}
	slot = min(slot, domain.SlotsPerDay-domain.DropSlots)
	var created domain.Event
	err := s.store.Update(ctx, func(snap *domain.Snapshot) error {
		task, err := taskAt(snap, index)
		if err != nil {
			return err
		}
		if snap.Grid(week).Collides(day, slot, slot+domain.DropSlots, "") {
			return errUnchanged
		}
		goal := task.Goal
		if goal == "" {
			goal = "Default"
		}
		created = domain.Event{
			ID:        s.ids.New(),
			Start:     domain.SlotTime(week, day, slot),
			End:       domain.SlotTime(week, day, slot+domain.DropSlots),
			Goal:      goal,
			Intention: task.Title,
		}
		snap.Events = append(snap.Events, created)
		return nil
	})
	if errors.Is(err, errUnchanged) {
		s.logger.Info("task drop ignored, slot taken", "task", index, "day", day, "slot", slot)
		return domain.Event{}, false, nil
	}
	if err != nil {
		return domain.Event{}, false, err
	}
	return created, true, nil
}

// ─── Tasks ───

func taskAt(snap *domain.Snapshot, index int) (domain.Task, error) {
	if index < 1 || index > len(snap.Tasks) {
		return domain.Task{}, fmt.Errorf("%w: task %d", apperrors.ErrNotFound, index)
	}
	return snap.Tasks[index-1], nil
}

func (s *CalendarService) AddTask(ctx context.Context, title, goal string) (domain.Task, int, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return domain.Task{}, 0, fmt.Errorf("%w: task title is required", apperrors.ErrInvalidInput)
	}
	task := domain.Task{Title: title, Goal: strings.TrimSpace(goal)}
	var index int
	err := s.store.Update(ctx, func(snap *domain.Snapshot) error {
		snap.Tasks = append(snap.Tasks, task)
		index = len(snap.Tasks)
		return nil
	})
	if err != nil {
		return domain.Task{}, 0, err
	}
	return task, index, nil
}

func (s *CalendarService) Tasks(ctx context.Context) ([]domain.Task, error) {
	snap, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	return snap.Tasks, nil
}

func (s *CalendarService) ToggleTask(ctx context.Context, index int) (domain.Task, error) {
	var toggled domain.Task
	err := s.store.Update(ctx, func(snap *domain.Snapshot) error {
		if _, err := taskAt(snap, index); err != nil {
			return err
		}
		snap.Tasks[index-1].Done = !snap.Tasks[index-1].Done
		toggled = snap.Tasks[index-1]
		return nil
	})
	return toggled, err
}

func (s *CalendarService) DeleteTask(ctx context.Context, index int) error {
	return s.store.Update(ctx, func(snap *domain.Snapshot) error {
		if _, err := taskAt(snap, index); err != nil {
			return err
		}
		snap.Tasks = slices.Delete(snap.Tasks, index-1, index)
		return nil
	})
}

// ─── Sleep window and launch ───

// SetSleepWindow changes the global sleep window. Existing events are left
// alone even when the new window covers them.
func (s *CalendarService) SetSleepWindow(ctx context.Context, start, end string) (domain.SleepWindow, error) {
	w, err := domain.ParseSleepWindow(start, end)
	if err != nil {
		return domain.SleepWindow{}, err
	}
	if err := s.store.Update(ctx, func(snap *domain.Snapshot) error {
		snap.Sleep = w
		return nil
	}); err != nil {
		return domain.SleepWindow{}, err
	}
	s.logger.Info("sleep window updated", "start", start, "end", end)
	return w, nil
}

// LaunchDue writes a session descriptor for the event running now. The
// duration covers what is left of the event, rounded up to whole minutes.
func (s *CalendarService) LaunchDue(ctx context.Context) (domain.Event, int, error) {
	snap, err := s.store.Load(ctx)
	if err != nil {
		return domain.Event{}, 0, err
	}
	now := s.clock.Now()
	e, ok := domain.Active(snap.Events, now)
	if !ok {
		return domain.Event{}, 0, fmt.Errorf("%w: no calendar event is active", apperrors.ErrNotFound)
	}
	minutes := int(math.Ceil(e.End.Sub(now).Minutes()))
	if err := s.launcher.Launch(ctx, e.Goal, e.Intention, minutes); err != nil {
		return domain.Event{}, 0, fmt.Errorf("launch calendar session: %w", err)
	}
	s.logger.Info("calendar session launched", "id", e.ID, "goal", e.Goal, "minutes", minutes)
	return e, minutes, nil
}
