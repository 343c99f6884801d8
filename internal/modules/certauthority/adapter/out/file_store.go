package out

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"hyprfocus/internal/modules/certauthority/domain"
	caout "hyprfocus/internal/modules/certauthority/port/out"
	apperrors "hyprfocus/internal/platform/errors"
)

type FileArtifactStore struct {
	dir string
}

func NewFileArtifactStore(dir string) caout.ArtifactStore {
	return &FileArtifactStore{dir: dir}
}

func (s *FileArtifactStore) Path(name domain.Artifact) string {
	return filepath.Join(s.dir, string(name))
}

func (s *FileArtifactStore) Load(_ context.Context, name domain.Artifact) ([]byte, error) {
	b, err := os.ReadFile(s.Path(name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrNotFound, name)
		}
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return b, nil
}

// Save writes key material with owner-only permissions.
func (s *FileArtifactStore) Save(_ context.Context, name domain.Artifact, data []byte, secret bool) error {
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return fmt.Errorf("create certs dir: %w", err)
	}
	mode := os.FileMode(0o644)
	if secret {
		mode = 0o600
	}
	if err := os.WriteFile(s.Path(name), data, mode); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return os.Chmod(s.Path(name), mode)
}

func (s *FileArtifactStore) Remove(_ context.Context, names ...domain.Artifact) error {
	var errs []error
	for _, name := range names {
		if err := os.Remove(s.Path(name)); err != nil && !errors.Is(err, os.ErrNotExist) {
			errs = append(errs, fmt.Errorf("remove %s: %w", name, err))
		}
	}
	return errors.Join(errs...)
}
