package out

import (
	"context"

	"hyprfocus/internal/modules/session/domain"
)

// DescriptorStore is the file handoff between launchers and the controller.
// Load wraps apperrors.ErrNotFound when no descriptor is waiting.
type DescriptorStore interface {
	Load(ctx context.Context) (domain.Descriptor, error)
	Save(ctx context.Context, d domain.Descriptor) error
	Remove(ctx context.Context) error
}

// EventLog is append-only. Tail returns the last limit records in file
// order; a non-positive limit returns all of them.
type EventLog interface {
	Append(ctx context.Context, e domain.Event) error
	Tail(ctx context.Context, limit int) ([]domain.Event, error)
}

type SettingsSource interface {
	Profile(ctx context.Context, goal string) (domain.Profile, error)
	Preferences(ctx context.Context) (domain.Preferences, error)
}

// StatusStore publishes the live snapshot. Load wraps apperrors.ErrNotFound
// when no controller is running.
type StatusStore interface {
	Publish(ctx context.Context, s domain.Status) error
	Load(ctx context.Context) (domain.Status, error)
	Clear(ctx context.Context) error
}

type Blocker interface {
	Block(ctx context.Context, domains []string) error
	Clear(ctx context.Context) error
	SetAds(ctx context.Context, enabled bool) error
}

type DenyServer interface {
	EnsureRunning(ctx context.Context) error
}

type ThemeSwitcher interface {
	Apply(ctx context.Context, theme string) error
}

type Notifier interface {
	Notify(ctx context.Context, n domain.Notification) error
}

// ScreenLocker starts the lock screen. The returned session is sampled for
// liveness; it does not block.
type ScreenLocker interface {
	Lock(ctx context.Context) (LockSession, error)
}

type LockSession interface {
	Exited() bool
}

// IntentionPrompter asks for a replacement intention. It returns
// apperrors.ErrPromptCancelled when the user keeps the current one.
type IntentionPrompter interface {
	PromptIntention(ctx context.Context, goal, current string) (string, error)
}

// FeedbackCollector returns apperrors.ErrPromptCancelled when the user skips.
type FeedbackCollector interface {
	CollectFeedback(ctx context.Context, goal, intention string) (domain.Feedback, error)
}

type Shutdown interface {
	PowerOff(ctx context.Context) error
}
