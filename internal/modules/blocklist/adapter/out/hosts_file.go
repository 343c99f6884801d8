package out

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	blocklistout "hyprfocus/internal/modules/blocklist/port/out"
)

type FileHostsStore struct {
	path string
}

func NewFileHostsStore(path string) blocklistout.HostsFile {
	return &FileHostsStore{path: path}
}

func (s *FileHostsStore) Read(_ context.Context) (string, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("read hosts file: %w", err)
	}
	return string(b), nil
}

// Write replaces the file through a sibling temp file and rename. Some
// systems mount /etc/hosts directly, where rename fails; the content is
// then written in place.
func (s *FileHostsStore) Write(_ context.Context, content string) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(s.path); err == nil {
		mode = info.Mode().Perm()
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".hosts-*")
	if err == nil {
		tmpPath := tmp.Name()
		_, werr := tmp.WriteString(content)
		cerr := tmp.Close()
		if werr == nil && cerr == nil {
			_ = os.Chmod(tmpPath, mode)
			if err := os.Rename(tmpPath, s.path); err == nil {
				return nil
			}
		}
		_ = os.Remove(tmpPath)
	}
	if err := os.WriteFile(s.path, []byte(content), mode); err != nil {
		return fmt.Errorf("write hosts file: %w", err)
	}
	return nil
}
