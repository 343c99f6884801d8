package out

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	blocklistout "hyprfocus/internal/modules/blocklist/port/out"
	apperrors "hyprfocus/internal/platform/errors"
)

// FileAdCache stores one "<ip> <domain>" rule per line.
type FileAdCache struct {
	path string
}

func NewFileAdCache(path string) blocklistout.AdCache {
	return &FileAdCache{path: path}
}

func (c *FileAdCache) Load(_ context.Context) ([]string, error) {
	b, err := os.ReadFile(c.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("read ad cache: %w", err)
	}
	var rules []string
	for _, line := range strings.Split(string(b), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			rules = append(rules, line)
		}
	}
	return rules, nil
}

func (c *FileAdCache) Save(_ context.Context, rules []string) error {
	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return fmt.Errorf("create ad cache dir: %w", err)
	}
	var b strings.Builder
	for _, rule := range rules {
		b.WriteString(rule)
		b.WriteByte('\n')
	}
	if err := os.WriteFile(c.path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write ad cache: %w", err)
	}
	return nil
}
