package out

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	denyout "hyprfocus/internal/modules/denypage/port/out"
	apperrors "hyprfocus/internal/platform/errors"
)

type FilePIDStore struct {
	path string
}

func NewFilePIDStore(path string) denyout.PIDStore {
	return &FilePIDStore{path: path}
}

func (s *FilePIDStore) Write(_ context.Context, pid int) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create pid dir: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(strconv.Itoa(pid)+"\n"), 0o644); err != nil {
		return fmt.Errorf("write deny server pid: %w", err)
	}
	return nil
}

func (s *FilePIDStore) Read(_ context.Context) (int, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0, fmt.Errorf("%w: deny server pid", apperrors.ErrNotFound)
		}
		return 0, fmt.Errorf("read deny server pid: %w", err)
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(raw)))
	if err != nil {
		return 0, fmt.Errorf("decode deny server pid: %w", err)
	}
	return pid, nil
}

func (s *FilePIDStore) Clear(_ context.Context) error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove deny server pid: %w", err)
	}
	return nil
}
