package out_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	pluginout "hyprfocus/internal/modules/plugin/adapter/out"
)

func writeManifests(t *testing.T, configDir, raw string) {
	t.Helper()
	pluginsDir := filepath.Join(configDir, "plugins")
	if err := os.MkdirAll(pluginsDir, 0o755); err != nil {
		t.Fatalf("mkdir plugins: %v", err)
	}
	if err := os.WriteFile(filepath.Join(pluginsDir, "plugins.json"), []byte(raw), 0o644); err != nil {
		t.Fatalf("write plugins.json: %v", err)
	}
}

func TestFileManifestStoreLoadMissingReturnsEmpty(t *testing.T) {
	t.Parallel()
	store := pluginout.NewFileManifestStore(t.TempDir(), "")
	manifests, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("load manifests: %v", err)
	}
	if len(manifests) != 0 {
		t.Fatalf("expected empty manifests, got %d", len(manifests))
	}
}

func TestFileManifestStoreResolvesBinaryPaths(t *testing.T) {
	t.Parallel()
	configDir := t.TempDir()
	home := t.TempDir()
	writeManifests(t, configDir, `[
  {
    "name": "local",
    "version": "1.0.0",
    "binary": "reference/reference-plugin",
    "sha256": "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
    "enabled": true,
    "capabilities": ["notify"]
  },
  {
    "name": "home",
    "version": "1.0.0",
    "binary": "~/bin/collab",
    "sha256": "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
    "enabled": false,
    "capabilities": ["theme"]
  }
]`)
	manifests, err := pluginout.NewFileManifestStore(configDir, home).Load(context.Background())
	if err != nil {
		t.Fatalf("load manifests: %v", err)
	}
	if len(manifests) != 2 {
		t.Fatalf("expected two manifests, got %d", len(manifests))
	}
	if want := filepath.Join(configDir, "plugins", "reference", "reference-plugin"); manifests[0].Binary != want {
		t.Fatalf("expected %s, got %s", want, manifests[0].Binary)
	}
	if want := filepath.Join(home, "bin", "collab"); manifests[1].Binary != want {
		t.Fatalf("expected %s, got %s", want, manifests[1].Binary)
	}
}

func TestFileManifestStoreRejectsUnknownField(t *testing.T) {
	t.Parallel()
	configDir := t.TempDir()
	writeManifests(t, configDir, `[
  {
    "name": "reference",
    "version": "1.0.0",
    "binary": "/tmp/reference-plugin",
    "sha256": "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
    "enabled": true,
    "capabilities": ["notify"],
    "unknown_field": true
  }
]`)
	if _, err := pluginout.NewFileManifestStore(configDir, "").Load(context.Background()); err == nil {
		t.Fatalf("expected unknown field error")
	}
}
