package out

import "context"

// HostsFile is the shared system file holding both managed regions.
type HostsFile interface {
	Read(ctx context.Context) (string, error)
	Write(ctx context.Context, content string) error
}

// AdSource downloads the raw third-party hosts list.
type AdSource interface {
	Fetch(ctx context.Context) ([]byte, error)
}

// AdCache persists filtered ad rules. Load reports apperrors.ErrNotFound
// when nothing has been cached yet.
type AdCache interface {
	Load(ctx context.Context) ([]string, error)
	Save(ctx context.Context, rules []string) error
}

// Preferences records whether ad blocking should stay on across sessions.
type Preferences interface {
	SetAdBlocking(ctx context.Context, enabled bool) error
}
