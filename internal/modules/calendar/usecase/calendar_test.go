package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"hyprfocus/internal/modules/calendar/domain"
	"hyprfocus/internal/modules/calendar/dto"
	calendarin "hyprfocus/internal/modules/calendar/port/in"
	"hyprfocus/internal/modules/calendar/service"
	"hyprfocus/internal/modules/calendar/usecase"
	"hyprfocus/internal/platform/clock"
	apperrors "hyprfocus/internal/platform/errors"
)

type memoryStore struct {
	snap domain.Snapshot
}

func (s *memoryStore) Load(context.Context) (domain.Snapshot, error) {
	out := s.snap
	out.Events = append([]domain.Event(nil), s.snap.Events...)
	out.Tasks = append([]domain.Task(nil), s.snap.Tasks...)
	return out, nil
}

func (s *memoryStore) Update(ctx context.Context, fn func(*domain.Snapshot) error) error {
	next, _ := s.Load(ctx)
	if err := fn(&next); err != nil {
		return err
	}
	s.snap = next
	return nil
}

type fixedIDs struct{}

func (fixedIDs) New() string { return "new" }

type nopLauncher struct{}

func (nopLauncher) Launch(context.Context, string, string, int) error { return nil }

func newUsecase() (*memoryStore, calendarin.Usecase) {
	tuesday := time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC)
	store := &memoryStore{snap: domain.Snapshot{
		Goals: []string{"Work"},
		Sleep: domain.SleepWindow{Start: 92, End: 20},
		Events: []domain.Event{
			{ID: "deep", Start: tuesday.Add(9 * time.Hour), End: tuesday.Add(10 * time.Hour), Goal: "Work", Intention: "Deep work"},
			{ID: "lunch", Start: tuesday.Add(12 * time.Hour), End: tuesday.Add(13 * time.Hour), Goal: "Work"},
		},
	}}
	svc := service.NewCalendarService(store, nopLauncher{}, clock.NewFake(tuesday.Add(8*time.Hour)), fixedIDs{}, nil)
	return store, usecase.NewInteractor(svc)
}

func TestWeekReportsPlacementsAndSleep(t *testing.T) {
	t.Parallel()
	_, uc := newUsecase()
	week, err := uc.Week(context.Background(), time.Time{})
	if err != nil {
		t.Fatalf("week: %v", err)
	}
	if week.Start.Day() != 2 || !week.SleepEnabled || week.SleepStart != 92 || week.SleepEnd != 20 {
		t.Fatalf("unexpected week %+v", week)
	}
	if len(week.Events) != 2 || week.Events[0].Day != 1 || week.Events[0].StartSlot != 36 || week.Events[0].EndSlot != 40 {
		t.Fatalf("unexpected events %+v", week.Events)
	}
}

func TestShiftFollowsDragRules(t *testing.T) {
	t.Parallel()
	store, uc := newUsecase()
	ctx := context.Background()

	out, err := uc.Shift(ctx, dto.ShiftInput{EventID: "deep", Slots: 4})
	if err != nil || out.Kind != "committed" || out.StartSlot != 40 {
		t.Fatalf("unexpected move %+v (%v)", out, err)
	}
	out, err = uc.Shift(ctx, dto.ShiftInput{EventID: "deep", Slots: 6})
	if err != nil || !out.Refused || out.StartSlot != 40 {
		t.Fatalf("a move onto lunch is refused, got %+v (%v)", out, err)
	}
	out, err = uc.Shift(ctx, dto.ShiftInput{EventID: "deep", Edge: "bottom", Slots: 2})
	if err != nil || out.EndSlot != 46 {
		t.Fatalf("unexpected resize %+v (%v)", out, err)
	}
	if e := store.snap.Events[0]; e.End.Hour() != 11 || e.End.Minute() != 30 {
		t.Fatalf("unexpected stored end %s", e.End)
	}
	if _, err := uc.Shift(ctx, dto.ShiftInput{EventID: "deep", Edge: "left"}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
	if _, err := uc.Shift(ctx, dto.ShiftInput{EventID: "ghost", Slots: 1}); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestGestureThenEditorCommit(t *testing.T) {
	t.Parallel()
	_, uc := newUsecase()
	ctx := context.Background()
	week := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	if _, err := uc.Gesture(ctx, dto.GestureInput{Kind: "begin", Gesture: "create", Week: week, Day: 1, Slot: 56}); err != nil {
		t.Fatalf("begin: %v", err)
	}
	if _, err := uc.Gesture(ctx, dto.GestureInput{Kind: "update", OffsetY: 3, RowHeight: 1}); err != nil {
		t.Fatalf("update: %v", err)
	}
	out, err := uc.Gesture(ctx, dto.GestureInput{Kind: "end"})
	if err != nil || out.Kind != "open-editor" || out.StartSlot != 56 || out.EndSlot != 60 {
		t.Fatalf("unexpected release %+v (%v)", out, err)
	}

	start := domain.SlotTime(week, out.Day, out.StartSlot)
	end := domain.SlotTime(week, out.Day, out.EndSlot)
	view, err := uc.Create(ctx, dto.CreateInput{Start: start, End: end, Goal: "Work", Intention: "Plan"})
	if err != nil || view.ID != "new" || view.StartSlot != 56 {
		t.Fatalf("unexpected commit %+v (%v)", view, err)
	}
	if _, err := uc.Create(ctx, dto.CreateInput{Start: start, End: end, Goal: "Work"}); !errors.Is(err, apperrors.ErrCollision) {
		t.Fatalf("committing the same range twice must collide, got %v", err)
	}
}
