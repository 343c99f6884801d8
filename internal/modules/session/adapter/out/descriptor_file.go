package out

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"hyprfocus/internal/modules/session/domain"
	sessionout "hyprfocus/internal/modules/session/port/out"
	apperrors "hyprfocus/internal/platform/errors"
)

type FileDescriptorStore struct {
	path string
}

func NewFileDescriptorStore(path string) sessionout.DescriptorStore {
	return &FileDescriptorStore{path: path}
}

func (s *FileDescriptorStore) Load(_ context.Context) (domain.Descriptor, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.Descriptor{}, fmt.Errorf("%w: session descriptor", apperrors.ErrNotFound)
		}
		return domain.Descriptor{}, fmt.Errorf("read session descriptor: %w", err)
	}
	return domain.ParseDescriptor(raw)
}

// Save replaces the descriptor atomically so a polling controller never
// reads half a file.
func (s *FileDescriptorStore) Save(_ context.Context, d domain.Descriptor) error {
	payload, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("marshal session descriptor: %w", err)
	}
	if err := writeAtomic(s.path, payload, 0o644); err != nil {
		return fmt.Errorf("write session descriptor: %w", err)
	}
	return nil
}

func (s *FileDescriptorStore) Remove(_ context.Context) error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session descriptor: %w", err)
	}
	return nil
}

func writeAtomic(path string, data []byte, mode os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, mode); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
