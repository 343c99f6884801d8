package out

import (
	"context"

	"hyprfocus/internal/modules/plugin/domain"
)

// ManifestStore reads the installed collaborator manifests.
type ManifestStore interface {
	Load(ctx context.Context) ([]domain.Manifest, error)
}

// Host launches a collaborator binary for one call. Invoke bounds the call
// by the capability's budget; interactive prompts get the longer one.
type Host interface {
	CheckLifecycle(ctx context.Context, manifest domain.Manifest) error
	GetMetadata(ctx context.Context, manifest domain.Manifest) (domain.Metadata, error)
	Invoke(ctx context.Context, manifest domain.Manifest, input domain.InvokeRequest) (domain.InvokeResult, error)
}
