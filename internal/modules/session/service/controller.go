package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"hyprfocus/internal/modules/session/domain"
	sessionout "hyprfocus/internal/modules/session/port/out"
	"hyprfocus/internal/platform/clock"
	apperrors "hyprfocus/internal/platform/errors"
	"hyprfocus/internal/platform/logging"
)

type ControllerOptions struct {
	DescriptorWait time.Duration
	DescriptorPoll time.Duration
	Tick           time.Duration
	LockPoll       time.Duration
	// RelockDelay is the pause after an early unlock and the first backoff
	// step when the lock screen cannot be started.
	RelockDelay    time.Duration
	LockBackoffMax time.Duration
	PromptTimeout  time.Duration
	WarnBefore     time.Duration
	// BreakLead is the pause between the break notification and the lock.
	BreakLead   time.Duration
	EndingPause time.Duration
	// Heartbeat is how often the ending status is republished while the
	// feedback prompt waits on the user. Zero publishes it once.
	Heartbeat time.Duration
}

func DefaultControllerOptions() ControllerOptions {
	return ControllerOptions{
		DescriptorWait: 10 * time.Second,
		DescriptorPoll: 500 * time.Millisecond,
		Tick:           time.Second,
		LockPoll:       500 * time.Millisecond,
		RelockDelay:    time.Second,
		LockBackoffMax: 30 * time.Second,
		PromptTimeout:  10 * time.Second,
		WarnBefore:     time.Minute,
		BreakLead:      2 * time.Second,
		EndingPause:    2 * time.Second,
		Heartbeat:      time.Minute,
	}
}

// Collaborators are the side effects a session triggers outside hyprfocus.
// Each call is isolated: a failure is logged and the session carries on.
type Collaborators struct {
	Theme    sessionout.ThemeSwitcher
	Notifier sessionout.Notifier
	Locker   sessionout.ScreenLocker
	Prompter sessionout.IntentionPrompter
	Feedback sessionout.FeedbackCollector
	Shutdown sessionout.Shutdown
}

type RunOptions struct {
	SkipShutdown bool
}

// Controller drives one session from descriptor to shutdown.
type Controller struct {
	descriptors sessionout.DescriptorStore
	events      sessionout.EventLog
	settings    sessionout.SettingsSource
	status      sessionout.StatusStore
	blocker     sessionout.Blocker
	deny        sessionout.DenyServer
	collab      Collaborators
	clock       clock.Clock
	opts        ControllerOptions
	logger      *slog.Logger

	mu    sync.Mutex
	state domain.State
}

func NewController(
	descriptors sessionout.DescriptorStore,
	events sessionout.EventLog,
	settings sessionout.SettingsSource,
	status sessionout.StatusStore,
	blocker sessionout.Blocker,
	deny sessionout.DenyServer,
	collab Collaborators,
	clk clock.Clock,
	opts ControllerOptions,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		descriptors: descriptors,
		events:      events,
		settings:    settings,
		status:      status,
		blocker:     blocker,
		deny:        deny,
		collab:      collab,
		clock:       clk,
		opts:        opts,
		logger:      logging.OrDiscard(logger),
		state:       domain.StateIdle,
	}
}

func (c *Controller) State() domain.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) setState(s domain.State) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
	c.logger.Debug("session state", "state", s)
}

// run is the explicit context of one session, threaded through every phase.
type run struct {
	session   domain.Descriptor
	prefs     domain.Preferences
	intention string
	completed int
	cleared   bool
}

func (r *run) outcome(interrupted bool) domain.Outcome {
	return domain.Outcome{
		Descriptor:  r.session,
		Intention:   r.intention,
		Completed:   r.completed,
		Interrupted: interrupted,
	}
}

// Run executes the whole session. Whatever way it returns, goal blocks are
// cleared and the published status is removed. A cancelled ctx returns its
// error together with the partial outcome.
func (c *Controller) Run(ctx context.Context, opts RunOptions) (domain.Outcome, error) {
	c.setState(domain.StatePreparing)
	r := c.prepare(ctx)
	defer c.finalize(ctx, r)

	c.setState(domain.StateRunning)
	var err error
	if r.session.Pomodoro {
		err = c.runPomodoro(ctx, r)
	} else {
		err = c.runCountdown(ctx, r)
	}
	if err != nil {
		c.logger.Info("session interrupted", "goal", r.session.Goal, "error", err)
		return r.outcome(true), err
	}

	c.setState(domain.StateEnding)
	c.end(ctx, r, opts)
	return r.outcome(false), nil
}

// ─── Preparing ─────────────────────────────────────────────────────────

func (c *Controller) prepare(ctx context.Context) *run {
	d, err := c.awaitDescriptor(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.logger.Warn("no session descriptor, using default session", "waited", c.opts.DescriptorWait)
		} else {
			c.logger.Error("session descriptor unreadable, using default session", "error", err)
			c.notify(ctx, domain.SessionDegraded("Session descriptor unreadable; running the default session."))
		}
		d = domain.DefaultDescriptor()
	}
	if err := c.descriptors.Remove(ctx); err != nil {
		c.logger.Error("remove session descriptor", "error", err)
	}

	prefs, err := c.settings.Preferences(ctx)
	if err != nil {
		c.logger.Warn("settings unavailable, using defaults", "error", err)
		prefs = domain.Preferences{Cadence: domain.DefaultCadence(), IntentionPopup: true, ShutdownFeedback: true}
	}
	r := &run{session: d, prefs: prefs, intention: d.Intention}

	profile, err := c.settings.Profile(ctx, d.Goal)
	if err != nil {
		c.logger.Warn("goal profile unavailable", "goal", d.Goal, "error", err)
	}
	if profile.Theme != "" {
		if err := c.collab.Theme.Apply(ctx, profile.Theme); err != nil {
			c.logger.Warn("theme switch failed", "theme", profile.Theme, "error", err)
		}
	}
	if len(profile.Domains) > 0 {
		if err := c.blocker.Block(ctx, profile.Domains); err != nil {
			c.logger.Warn("goal blocks not applied", "goal", d.Goal, "error", err)
		}
	} else if err := c.blocker.Clear(ctx); err != nil {
		c.logger.Warn("goal blocks not cleared", "error", err)
	}
	if err := c.blocker.SetAds(ctx, prefs.AdBlocking); err != nil {
		c.logger.Warn("ad blocking not applied", "enabled", prefs.AdBlocking, "error", err)
	}
	if err := c.deny.EnsureRunning(ctx); err != nil {
		c.logger.Warn("deny server unavailable", "error", err)
	}
	c.appendEvent(ctx, domain.LoginEvent(c.clock.Now(), d))
	c.logger.Info("session prepared", "goal", d.Goal, "duration", d.Duration, "pomodoro", d.Pomodoro)
	return r
}

// awaitDescriptor polls until a readable descriptor appears or the wait
// elapses. A descriptor caught mid-write fails to parse and is retried.
func (c *Controller) awaitDescriptor(ctx context.Context) (domain.Descriptor, error) {
	deadline := c.clock.Now().Add(c.opts.DescriptorWait)
	var lastErr error
	for {
		d, err := c.descriptors.Load(ctx)
		if err == nil {
			return d, nil
		}
		lastErr = err
		if !c.clock.Now().Before(deadline) {
			return domain.Descriptor{}, lastErr
		}
		if err := c.clock.Sleep(ctx, c.opts.DescriptorPoll); err != nil {
			return domain.Descriptor{}, lastErr
		}
	}
}

// ─── Running ───────────────────────────────────────────────────────────

func (c *Controller) runCountdown(ctx context.Context, r *run) error {
	end := c.clock.Now().Add(r.session.Length())
	warned := false
	for {
		remaining := end.Sub(c.clock.Now())
		if remaining <= 0 {
			break
		}
		if remaining <= c.opts.WarnBefore && !warned {
			c.notify(ctx, domain.EndingSoon())
			warned = true
		}
		c.publish(ctx, r, domain.PhaseCountdown, end)
		if err := c.clock.Sleep(ctx, c.opts.Tick); err != nil {
			return err
		}
	}
	c.clearBlocks(ctx, r)
	c.notify(ctx, domain.SessionEnded())
	return nil
}

// runPomodoro cycles work and locked breaks until ctx is cancelled.
func (c *Controller) runPomodoro(ctx context.Context, r *run) error {
	cadence := r.prefs.Cadence
	for {
		c.notify(ctx, domain.WorkStarted(r.intention))
		end := c.clock.Now().Add(cadence.Work)
		for c.clock.Now().Before(end) {
			c.publish(ctx, r, domain.PhaseWork, end)
			if err := c.clock.Sleep(ctx, c.opts.Tick); err != nil {
				return err
			}
		}
		r.completed++

		length, long := cadence.BreakAfter(r.completed)
		c.notify(ctx, domain.BreakStarted(length, long))
		if err := c.clock.Sleep(ctx, c.opts.BreakLead); err != nil {
			return err
		}
		breakEnd := c.clock.Now().Add(length)
		if err := c.lockedBreak(ctx, r, breakEnd); err != nil {
			return err
		}

		if r.prefs.IntentionPopup {
			c.checkIn(ctx, r)
		}
		c.appendEvent(ctx, domain.SegmentEvent(c.clock.Now(), r.session.Goal, r.intention))
	}
}

// lockedBreak keeps the screen locked until end. An unlock before end is
// answered with a notification and a fresh lock after RelockDelay. A lock
// screen that fails to start is retried with doubling delays capped at
// LockBackoffMax, never sleeping past end.
func (c *Controller) lockedBreak(ctx context.Context, r *run, end time.Time) error {
	backoff := c.opts.RelockDelay
	for {
		c.publish(ctx, r, domain.PhaseBreak, end)
		lock, err := c.collab.Locker.Lock(ctx)
		if err != nil {
			c.logger.Warn("lock screen failed to start", "retry_in", backoff, "error", err)
			wait := backoff
			if left := end.Sub(c.clock.Now()); left < wait {
				wait = left
			}
			if wait > 0 {
				if err := c.clock.Sleep(ctx, wait); err != nil {
					return err
				}
			}
			if !c.clock.Now().Before(end) {
				c.logger.Warn("break elapsed without a lock screen")
				return nil
			}
			backoff *= 2
			if backoff > c.opts.LockBackoffMax {
				backoff = c.opts.LockBackoffMax
			}
			continue
		}
		backoff = c.opts.RelockDelay

		for !lock.Exited() {
			c.publish(ctx, r, domain.PhaseBreak, end)
			if err := c.clock.Sleep(ctx, c.opts.LockPoll); err != nil {
				return err
			}
		}
		if !c.clock.Now().Before(end) {
			return nil
		}
		c.logger.Info("lock exited before break end", "remaining", end.Sub(c.clock.Now()))
		c.notify(ctx, domain.BreakNotOver())
		if err := c.clock.Sleep(ctx, c.opts.RelockDelay); err != nil {
			return err
		}
	}
}

func (c *Controller) checkIn(ctx context.Context, r *run) {
	pctx, cancel := context.WithTimeout(ctx, c.opts.PromptTimeout)
	defer cancel()
	next, err := c.collab.Prompter.PromptIntention(pctx, r.session.Goal, r.intention)
	switch {
	case err == nil:
		if next = strings.TrimSpace(next); next != "" {
			r.intention = next
		}
	case errors.Is(err, apperrors.ErrPromptCancelled), errors.Is(err, context.DeadlineExceeded):
		c.logger.Debug("check-in kept intention", "intention", r.intention)
	default:
		c.logger.Warn("check-in prompt failed", "error", err)
	}
}

// ─── Ending ────────────────────────────────────────────────────────────

func (c *Controller) end(ctx context.Context, r *run, opts RunOptions) {
	if err := c.clock.Sleep(ctx, c.opts.EndingPause); err != nil {
		return
	}
	if r.prefs.ShutdownFeedback && r.session.Goal != domain.DefaultGoal {
		c.collectFeedback(ctx, r)
	}
	if err := c.status.Clear(ctx); err != nil {
		c.logger.Warn("clear session status", "error", err)
	}
	if opts.SkipShutdown {
		c.logger.Info("shutdown skipped")
		return
	}
	if err := c.collab.Shutdown.PowerOff(ctx); err != nil {
		c.logger.Error("shutdown failed", "error", err)
	}
}

func (c *Controller) collectFeedback(ctx context.Context, r *run) {
	stop := c.heartbeat(ctx, r)
	fb, err := c.collab.Feedback.CollectFeedback(ctx, r.session.Goal, r.intention)
	stop()
	if err != nil {
		if errors.Is(err, apperrors.ErrPromptCancelled) {
			c.logger.Info("feedback skipped")
		} else {
			c.logger.Warn("feedback collection failed", "error", err)
		}
		return
	}
	if fb.Goal == "" {
		fb.Goal = r.session.Goal
	}
	if fb.Intention == "" {
		fb.Intention = r.intention
	}
	e, err := domain.FeedbackEvent(c.clock.Now(), fb)
	if err != nil {
		c.logger.Warn("feedback rejected", "error", err)
		return
	}
	c.appendEvent(ctx, e)
}

// heartbeat publishes the ending status, then republishes it on every
// Heartbeat tick until stop returns. The feedback prompt has no deadline.
func (c *Controller) heartbeat(ctx context.Context, r *run) (stop func()) {
	ended := c.clock.Now()
	c.publish(ctx, r, domain.PhaseNone, ended)
	if c.opts.Heartbeat <= 0 {
		return func() {}
	}
	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		ticker := time.NewTicker(c.opts.Heartbeat)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.publish(ctx, r, domain.PhaseNone, ended)
			}
		}
	}()
	return func() {
		close(done)
		wg.Wait()
	}
}

// finalize runs on every exit path, on a context that outlives the
// cancellation that may have ended the run.
func (c *Controller) finalize(ctx context.Context, r *run) {
	cleanup := context.WithoutCancel(ctx)
	if !r.cleared {
		c.clearBlocks(cleanup, r)
	}
	if err := c.status.Clear(cleanup); err != nil {
		c.logger.Warn("clear session status", "error", err)
	}
	c.setState(domain.StateTerminated)
}

// ─── helpers ───────────────────────────────────────────────────────────

func (c *Controller) clearBlocks(ctx context.Context, r *run) {
	if err := c.blocker.Clear(ctx); err != nil {
		c.logger.Error("goal blocks not cleared", "error", err)
		return
	}
	r.cleared = true
}

func (c *Controller) publish(ctx context.Context, r *run, phase domain.Phase, end time.Time) {
	now := c.clock.Now()
	status := domain.Status{
		Goal:      r.session.Goal,
		Intention: r.intention,
		State:     c.State(),
		Phase:     phase,
		Pomodoro:  r.session.Pomodoro,
		EndsAt:    end,
		Remaining: domain.Remaining(now, end),
		Completed: r.completed,
		UpdatedAt: now,
	}
	if err := c.status.Publish(ctx, status); err != nil {
		c.logger.Debug("publish session status", "error", err)
	}
}

func (c *Controller) notify(ctx context.Context, n domain.Notification) {
	if err := c.collab.Notifier.Notify(ctx, n); err != nil {
		c.logger.Warn("notification failed", "summary", n.Summary, "error", err)
	}
}

func (c *Controller) appendEvent(ctx context.Context, e domain.Event) {
	if err := c.events.Append(ctx, e); err != nil {
		c.logger.Error("event log append failed", "type", e.Type, "error", err)
		c.notify(ctx, domain.SessionDegraded("Session log unavailable: "+err.Error()))
	}
}
