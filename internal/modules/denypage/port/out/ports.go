package out

import (
	"context"
	"crypto/tls"

	"hyprfocus/internal/modules/denypage/domain"
)

// ContextSource resolves the goal and intention shown on the page. It is
// consulted on every request.
type ContextSource interface {
	Current(ctx context.Context) (domain.Context, error)
}

// CertificateSource backs the HTTPS listener. Available reports whether a
// usable bundle exists right now.
type CertificateSource interface {
	Available() error
	GetCertificate(hello *tls.ClientHelloInfo) (*tls.Certificate, error)
}

// Runtime manages the detached server process.
type Runtime interface {
	Reachable(ctx context.Context, addr string) bool
	Spawn(ctx context.Context) (int, error)
	Alive(pid int) bool
	Terminate(pid int) error
	Kill(pid int) error
}

// PIDStore persists the pid of the detached server. Read wraps
// apperrors.ErrNotFound when no pid is recorded.
type PIDStore interface {
	Read(ctx context.Context) (int, error)
	Write(ctx context.Context, pid int) error
	Clear(ctx context.Context) error
}
