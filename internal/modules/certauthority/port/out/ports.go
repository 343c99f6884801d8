package out

import (
	"context"
	"time"

	"hyprfocus/internal/modules/certauthority/domain"
)

// Toolkit performs the cryptographic steps. Every input and output is PEM.
type Toolkit interface {
	GenerateKey(ctx context.Context) ([]byte, error)
	SelfSign(ctx context.Context, keyPEM []byte, subject domain.Subject, validity time.Duration) ([]byte, error)
	CreateCSR(ctx context.Context, keyPEM []byte, subject domain.Subject, sans []string) ([]byte, error)
	SignCSR(ctx context.Context, csrPEM, caCertPEM, caKeyPEM []byte, validity time.Duration, sans []string) ([]byte, error)
}

// ArtifactStore holds the CA directory. Load reports apperrors.ErrNotFound
// for a missing artifact.
type ArtifactStore interface {
	Load(ctx context.Context, name domain.Artifact) ([]byte, error)
	Save(ctx context.Context, name domain.Artifact, data []byte, secret bool) error
	Remove(ctx context.Context, names ...domain.Artifact) error
	Path(name domain.Artifact) string
}
