//go:build unix

package out

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/exec"
	"path/filepath"
	"syscall"
	"time"

	denyout "hyprfocus/internal/modules/denypage/port/out"
)

const dialTimeout = 150 * time.Millisecond

// ProcessRuntime starts the deny server as a detached child of the current
// binary, in its own process group so it outlives the session.
type ProcessRuntime struct {
	command []string
	logPath string
}

// NewProcessRuntime runs command (argv, with command[0] the executable). An
// empty command re-executes the running binary with "denypage serve".
func NewProcessRuntime(command []string, logPath string) denyout.Runtime {
	return &ProcessRuntime{command: command, logPath: logPath}
}

func (r *ProcessRuntime) Reachable(ctx context.Context, addr string) bool {
	if addr == "" {
		return false
	}
	d := net.Dialer{Timeout: dialTimeout}
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return false
	}
	_ = conn.Close()
	return true
}

func (r *ProcessRuntime) Spawn(_ context.Context) (int, error) {
	argv := r.command
	if len(argv) == 0 {
		execPath, err := os.Executable()
		if err != nil {
			return 0, fmt.Errorf("resolve executable: %w", err)
		}
		argv = []string{execPath, "denypage", "serve"}
	}
	if err := os.MkdirAll(filepath.Dir(r.logPath), 0o755); err != nil {
		return 0, fmt.Errorf("create deny server log dir: %w", err)
	}
	logFile, err := os.OpenFile(r.logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return 0, fmt.Errorf("open deny server log: %w", err)
	}
	defer logFile.Close()

	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Stdout = logFile
	cmd.Stderr = logFile
	cmd.Stdin = nil
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	if err := cmd.Start(); err != nil {
		return 0, fmt.Errorf("start deny server: %w", err)
	}
	pid := cmd.Process.Pid
	// Reap the child if it dies while we are still around so Alive sees it go.
	go func() { _ = cmd.Wait() }()
	return pid, nil
}

func (r *ProcessRuntime) Alive(pid int) bool {
	if pid <= 0 {
		return false
	}
	err := syscall.Kill(pid, 0)
	return err == nil || errors.Is(err, syscall.EPERM)
}

func (r *ProcessRuntime) Terminate(pid int) error {
	if err := syscall.Kill(pid, syscall.SIGTERM); err != nil && !errors.Is(err, syscall.ESRCH) {
		return err
	}
	return nil
}

func (r *ProcessRuntime) Kill(pid int) error {
	if err := syscall.Kill(pid, syscall.SIGKILL); err != nil && !errors.Is(err, syscall.ESRCH) {
		return err
	}
	return nil
}
