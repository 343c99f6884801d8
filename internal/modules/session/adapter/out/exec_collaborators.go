package out

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
	"sync/atomic"

	"hyprfocus/internal/modules/session/domain"
	sessionout "hyprfocus/internal/modules/session/port/out"
)

// Command is an argv template. A leading "~/" in any element expands to
// the home directory the command was built with.
type Command struct {
	argv []string
}

func NewCommand(argv []string, home string) Command {
	expanded := make([]string, 0, len(argv))
	for _, arg := range argv {
		if home != "" && strings.HasPrefix(arg, "~/") {
			arg = filepath.Join(home, arg[2:])
		}
		expanded = append(expanded, arg)
	}
	return Command{argv: expanded}
}

func (c Command) Empty() bool { return len(c.argv) == 0 }

func (c Command) build(ctx context.Context, extra ...string) (*exec.Cmd, error) {
	if c.Empty() {
		return nil, fmt.Errorf("no command configured")
	}
	args := append(append([]string{}, c.argv[1:]...), extra...)
	return exec.CommandContext(ctx, c.argv[0], args...), nil
}

func (c Command) run(ctx context.Context, extra ...string) error {
	cmd, err := c.build(ctx, extra...)
	if err != nil {
		return err
	}
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s: %w: %s", filepath.Base(c.argv[0]), err, strings.TrimSpace(stderr.String()))
	}
	return nil
}

// ExecNotifier speaks the notify-send argument convention.
type ExecNotifier struct {
	cmd Command
}

func NewExecNotifier(cmd Command) sessionout.Notifier {
	return &ExecNotifier{cmd: cmd}
}

func (n *ExecNotifier) Notify(ctx context.Context, note domain.Notification) error {
	urgency := note.Urgency
	if urgency == "" {
		urgency = domain.UrgencyNormal
	}
	return n.cmd.run(ctx, "-u", string(urgency), note.Summary, note.Body)
}

// ExecThemeSwitcher passes the theme name as the last argument.
type ExecThemeSwitcher struct {
	cmd Command
}

func NewExecThemeSwitcher(cmd Command) sessionout.ThemeSwitcher {
	return &ExecThemeSwitcher{cmd: cmd}
}

func (t *ExecThemeSwitcher) Apply(ctx context.Context, theme string) error {
	return t.cmd.run(ctx, theme)
}

type ExecShutdown struct {
	cmd Command
}

func NewExecShutdown(cmd Command) sessionout.Shutdown {
	return &ExecShutdown{cmd: cmd}
}

func (s *ExecShutdown) PowerOff(ctx context.Context) error {
	return s.cmd.run(ctx)
}

// ExecLocker starts the lock screen without tying it to the caller's
// context: interrupting the controller must not unlock the screen.
type ExecLocker struct {
	cmd Command
}

func NewExecLocker(cmd Command) sessionout.ScreenLocker {
	return &ExecLocker{cmd: cmd}
}

func (l *ExecLocker) Lock(ctx context.Context) (sessionout.LockSession, error) {
	cmd, err := l.cmd.build(context.WithoutCancel(ctx))
	if err != nil {
		return nil, err
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start lock screen: %w", err)
	}
	session := &processSession{}
	go func() {
		_ = cmd.Wait()
		session.exited.Store(true)
	}()
	return session, nil
}

type processSession struct {
	exited atomic.Bool
}

func (p *processSession) Exited() bool { return p.exited.Load() }
