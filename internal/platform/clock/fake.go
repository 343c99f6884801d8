package clock

import (
	"context"
	"sync"
	"time"
)

// Fake is a virtual clock. Sleep advances the clock instantly, so a single
// goroutine driving a polling loop observes exact, repeatable timestamps.
type Fake struct {
	mu      sync.Mutex
	now     time.Time
	sleeps  int
	onSleep func(now time.Time)
}

func NewFake(start time.Time) *Fake {
	return &Fake{now: start}
}

func (f *Fake) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *Fake) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f.mu.Lock()
	if d > 0 {
		f.now = f.now.Add(d)
	}
	f.sleeps++
	hook := f.onSleep
	now := f.now
	f.mu.Unlock()
	if hook != nil {
		hook(now)
	}
	return ctx.Err()
}

// Advance moves the clock forward without counting as a sleep.
func (f *Fake) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

// Sleeps reports how many Sleep calls were made.
func (f *Fake) Sleeps() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sleeps
}

// OnSleep registers a hook invoked after every Sleep with the new time.
func (f *Fake) OnSleep(fn func(now time.Time)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.onSleep = fn
}
