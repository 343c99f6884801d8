package out

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"hyprfocus/internal/modules/plugin/domain"
	pluginout "hyprfocus/internal/modules/plugin/port/out"
)

// FileManifestStore reads <configDir>/plugins/plugins.json. Relative binary
// paths resolve against the plugins directory; "~/" against home.
type FileManifestStore struct {
	dir  string
	home string
}

func NewFileManifestStore(configDir, home string) pluginout.ManifestStore {
	return &FileManifestStore{dir: filepath.Join(configDir, "plugins"), home: home}
}

func (s *FileManifestStore) Path() string { return filepath.Join(s.dir, "plugins.json") }

func (s *FileManifestStore) Load(_ context.Context) ([]domain.Manifest, error) {
	b, err := os.ReadFile(s.Path())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []domain.Manifest{}, nil
		}
		return nil, fmt.Errorf("read plugin manifests: %w", err)
	}
	var manifests []domain.Manifest
	decoder := json.NewDecoder(bytes.NewReader(b))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&manifests); err != nil {
		return nil, fmt.Errorf("decode plugin manifests: %w", err)
	}
	for i := range manifests {
		manifests[i].Binary = s.resolve(manifests[i].Binary)
	}
	return manifests, nil
}

func (s *FileManifestStore) resolve(binary string) string {
	switch {
	case binary == "" || filepath.IsAbs(binary):
		return binary
	case strings.HasPrefix(binary, "~/") && s.home != "":
		return filepath.Join(s.home, binary[2:])
	default:
		return filepath.Clean(filepath.Join(s.dir, binary))
	}
}
