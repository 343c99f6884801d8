package out

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"hyprfocus/internal/modules/session/domain"
	sessionout "hyprfocus/internal/modules/session/port/out"
	apperrors "hyprfocus/internal/platform/errors"
)

// FileStatusStore writes the snapshot as JSON and, when timerPath is set,
// the one-line timer read by status bars.
type FileStatusStore struct {
	path      string
	timerPath string
}

func NewFileStatusStore(path, timerPath string) sessionout.StatusStore {
	return &FileStatusStore{path: path, timerPath: timerPath}
}

func (s *FileStatusStore) Publish(_ context.Context, status domain.Status) error {
	payload, err := json.Marshal(status)
	if err != nil {
		return fmt.Errorf("marshal session status: %w", err)
	}
	if err := writeAtomic(s.path, payload, 0o644); err != nil {
		return fmt.Errorf("write session status: %w", err)
	}
	if s.timerPath != "" {
		if err := os.WriteFile(s.timerPath, []byte(status.TimerLine()), 0o644); err != nil {
			return fmt.Errorf("write session timer: %w", err)
		}
	}
	return nil
}

func (s *FileStatusStore) Load(_ context.Context) (domain.Status, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.Status{}, fmt.Errorf("%w: session status", apperrors.ErrNotFound)
		}
		return domain.Status{}, fmt.Errorf("read session status: %w", err)
	}
	var status domain.Status
	if err := json.Unmarshal(raw, &status); err != nil {
		return domain.Status{}, fmt.Errorf("decode session status: %w", err)
	}
	return status, nil
}

func (s *FileStatusStore) Clear(_ context.Context) error {
	for _, path := range []string{s.path, s.timerPath} {
		if path == "" {
			continue
		}
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("remove %s: %w", path, err)
		}
	}
	return nil
}
