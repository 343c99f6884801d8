package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sys/unix"

	"hyprfocus/internal/bootstrap"
	"hyprfocus/internal/platform/config"
	"hyprfocus/internal/platform/logging"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// globals carries the persistent flags and whatever loadApp opened.
type globals struct {
	home    string
	debug   bool
	logFile string

	app *bootstrap.App
	log *logging.Handle
}

func newRootCmd() *cobra.Command {
	g := &globals{}

	root := &cobra.Command{
		Use:           "hyprfocus",
		Short:         "Focus sessions, site blocking and a week planner for Hyprland",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return g.close()
		},
	}
	root.PersistentFlags().StringVar(&g.home, "home", "", "home directory (defaults to the invoking user's, $SUDO_USER under sudo)")
	root.PersistentFlags().BoolVar(&g.debug, "debug", false, "write structured debug logs")
	root.PersistentFlags().StringVar(&g.logFile, "log-file", "", "log file path (implies logging)")

	root.AddCommand(newTUICmd(g))
	root.AddCommand(newSessionCmd(g))
	root.AddCommand(newBlockCmd(g))
	root.AddCommand(newAdsCmd(g))
	root.AddCommand(newCertCmd(g))
	root.AddCommand(newDenyPageCmd(g))
	root.AddCommand(newCalendarCmd(g))
	root.AddCommand(newTaskCmd(g))
	root.AddCommand(newGoalCmd(g))
	root.AddCommand(newFilterCmd(g))
	root.AddCommand(newPomodoroCmd(g))
	root.AddCommand(newStatsCmd(g))
	root.AddCommand(newPluginCmd(g))
	root.AddCommand(newDoctorCmd(g))
	return root
}

func (g *globals) load() (*bootstrap.App, error) {
	if g.app != nil {
		return g.app, nil
	}
	cfg, err := config.New(g.home)
	if err != nil {
		return nil, err
	}
	handle, err := logging.New(logging.Options{Debug: g.debug, File: g.logFile, Dir: cfg.LogDir()})
	if err != nil {
		return nil, err
	}
	app, err := bootstrap.New(cfg, handle)
	if err != nil {
		_ = handle.Close()
		return nil, err
	}
	g.app, g.log = app, handle
	return app, nil
}

func (g *globals) close() error {
	var err error
	if g.app != nil {
		err = g.app.Close()
		g.app = nil
	}
	if g.log != nil {
		err = errors.Join(err, g.log.Close())
		g.log = nil
	}
	return err
}

// interruptible returns a context cancelled by SIGINT or SIGTERM.
func interruptible() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func newTUICmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the hyprfocus terminal UI",
		RunE: func(_ *cobra.Command, _ []string) error {
			app, err := g.load()
			if err != nil {
				return err
			}
			return bootstrap.RunTUI(app)
		},
	}
}

func newDoctorCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check file permissions and external tools",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := g.load()
			if err != nil {
				return err
			}
			cfg := app.Config
			out := cmd.OutOrStdout()
			failed := 0
			report := func(name string, err error) {
				if err != nil {
					failed++
					_, _ = fmt.Fprintf(out, "FAIL  %-22s %v\n", name, err)
					return
				}
				_, _ = fmt.Fprintf(out, "ok    %s\n", name)
			}

			report("hosts writable", unix.Access(cfg.HostsPath, unix.W_OK))
			report("config dir", unix.Access(cfg.ConfigDir, unix.R_OK|unix.W_OK|unix.X_OK))
			report("event log dir", unix.Access(filepath.Dir(cfg.EventLog), unix.W_OK))
			report("descriptor dir", unix.Access(filepath.Dir(cfg.SessionPath), unix.W_OK))
			_, settingsErr := app.Settings.Load()
			report("settings parse", settingsErr)
			_, opensslErr := exec.LookPath("openssl")
			report("openssl on PATH", opensslErr)
			ca, caErr := app.CertCLI.Status(cmd.Context())
			if caErr == nil && !ca.RootPresent {
				caErr = fmt.Errorf("no root at %s (run: hyprfocus cert init)", ca.RootPath)
			}
			report("certificate authority", caErr)
			if g.log != nil && g.log.Path != "" {
				_, _ = fmt.Fprintf(out, "log   %s\n", g.log.Path)
			}
			if failed > 0 {
				return fmt.Errorf("%d check(s) failed", failed)
			}
			return nil
		},
	}
}
