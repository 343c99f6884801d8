package lockfile_test

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"hyprfocus/internal/platform/lockfile"
)

func TestAppendLineConcurrentWritersKeepLinesIntact(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "events.jsonl")
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			line := fmt.Sprintf(`{"n":%d,"pad":"%s"}`, i, strings.Repeat("x", 512))
			if err := lockfile.AppendLine(path, []byte(line)); err != nil {
				t.Errorf("append: %v", err)
			}
		}(i)
	}
	wg.Wait()
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	lines := strings.Split(strings.TrimSuffix(string(raw), "\n"), "\n")
	if len(lines) != 16 {
		t.Fatalf("expected 16 lines, got %d", len(lines))
	}
	for _, line := range lines {
		if !strings.HasPrefix(line, `{"n":`) || !strings.HasSuffix(line, `"}`) {
			t.Fatalf("interleaved line: %q", line)
		}
	}
}

func TestWithRunsCallback(t *testing.T) {
	t.Parallel()
	called := false
	err := lockfile.With(filepath.Join(t.TempDir(), "sub", "settings.lock"), func() error {
		called = true
		return nil
	})
	if err != nil {
		t.Fatalf("with lock: %v", err)
	}
	if !called {
		t.Fatalf("expected callback to run")
	}
}
