//go:build unix

package out_test

import (
	"context"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	denyout "hyprfocus/internal/modules/denypage/adapter/out"
)

func TestProcessRuntimeReachable(t *testing.T) {
	t.Parallel()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	addr := ln.Addr().String()
	rt := denyout.NewProcessRuntime(nil, filepath.Join(t.TempDir(), "denypage.log"))

	if !rt.Reachable(context.Background(), addr) {
		t.Fatalf("expected %s reachable", addr)
	}
	_ = ln.Close()
	if rt.Reachable(context.Background(), addr) {
		t.Fatalf("expected %s unreachable after close", addr)
	}
	if rt.Alive(0) {
		t.Fatalf("pid 0 is never alive")
	}
}

func TestProcessRuntimeSpawnsDetachedCommand(t *testing.T) {
	t.Parallel()
	logPath := filepath.Join(t.TempDir(), "denypage.log")
	rt := denyout.NewProcessRuntime([]string{"/bin/sh", "-c", "echo started"}, logPath)

	pid, err := rt.Spawn(context.Background())
	if err != nil {
		t.Fatalf("spawn: %v", err)
	}
	if pid <= 0 {
		t.Fatalf("unexpected pid %d", pid)
	}
	deadline := time.Now().Add(5 * time.Second)
	for rt.Alive(pid) && time.Now().Before(deadline) {
		time.Sleep(20 * time.Millisecond)
	}
	raw, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if string(raw) != "started\n" {
		t.Fatalf("unexpected log %q", raw)
	}
}
