package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

func newBlockCmd(g *globals) *cobra.Command {
	block := &cobra.Command{Use: "block", Short: "Manage the goal block region of the hosts file"}

	var goalName string
	goal := &cobra.Command{
		Use:   "goal [domain...]",
		Short: "Block the given domains, or the filter list of --goal",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := g.load()
			if err != nil {
				return err
			}
			if goalName != "" {
				prefs, err := app.Settings.Load()
				if err != nil {
					return err
				}
				args = append(args, prefs.Filters[goalName]...)
			}
			out, err := app.BlockCLI.BlockGoal(context.Background(), args)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: %d rule(s)\n", out.Region, out.Rules)
			return nil
		},
	}
	goal.Flags().StringVar(&goalName, "goal", "", "use the filter list configured for this goal")

	clear := &cobra.Command{
		Use:   "clear",
		Short: "Empty the goal block region",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := g.load()
			if err != nil {
				return err
			}
			if err := app.BlockCLI.Clear(context.Background()); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "goal block cleared")
			return nil
		},
	}

	status := &cobra.Command{
		Use:   "status",
		Short: "Show what the hosts file currently blocks",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := g.load()
			if err != nil {
				return err
			}
			st, err := app.BlockCLI.Status(context.Background())
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			ads := "off"
			if st.AdsEnabled {
				ads = fmt.Sprintf("on (%d rules)", st.AdRules)
			}
			_, _ = fmt.Fprintf(w, "ads: %s\n", ads)
			if len(st.GoalDomains) == 0 {
				_, _ = fmt.Fprintln(w, "goal: nothing blocked")
				return nil
			}
			_, _ = fmt.Fprintf(w, "goal: %s\n", strings.Join(st.GoalDomains, ", "))
			return nil
		},
	}

	block.AddCommand(goal, clear, status)
	return block
}

func newAdsCmd(g *globals) *cobra.Command {
	ads := &cobra.Command{Use: "ads", Short: "Manage the ad block region of the hosts file"}

	toggle := func(use string, enabled bool) *cobra.Command {
		return &cobra.Command{
			Use:   use,
			Short: "Turn ad blocking " + use,
			RunE: func(cmd *cobra.Command, _ []string) error {
				app, err := g.load()
				if err != nil {
					return err
				}
				out, err := app.BlockCLI.Ads(context.Background(), enabled)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: %d rule(s)\n", out.Region, out.Rules)
				return nil
			},
		}
	}

	update := &cobra.Command{
		Use:   "update",
		Short: "Download the ad list again and rewrite the region",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := g.load()
			if err != nil {
				return err
			}
			out, err := app.BlockCLI.UpdateAds(context.Background())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: %d rule(s)\n", out.Region, out.Rules)
			return nil
		},
	}

	ads.AddCommand(toggle("on", true), toggle("off", false), update)
	return ads
}

func newCertCmd(g *globals) *cobra.Command {
	cert := &cobra.Command{Use: "cert", Short: "Local certificate authority for the deny page"}

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Create the root certificate if it does not exist",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := g.load()
			if err != nil {
				return err
			}
			out, err := app.CertCLI.Init(context.Background())
			if err != nil {
				return err
			}
			if out.Created {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "created root %s\n", out.RootPath)
				return nil
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "root already present at %s\n", out.RootPath)
			return nil
		},
	}

	issue := &cobra.Command{
		Use:   "issue <domain>...",
		Short: "Issue a server certificate covering the given domains",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := g.load()
			if err != nil {
				return err
			}
			out, err := app.CertCLI.Issue(context.Background(), args)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "issued %s (%d SANs, expires %s)\n", out.BundlePath, len(out.SANs), out.NotAfter.Format(time.DateOnly))
			return nil
		},
	}

	status := &cobra.Command{
		Use:   "status",
		Short: "Show the root and server certificate state",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := g.load()
			if err != nil {
				return err
			}
			st, err := app.CertCLI.Status(context.Background())
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if !st.RootPresent {
				_, _ = fmt.Fprintf(w, "root: missing (%s)\n", st.RootPath)
			} else {
				_, _ = fmt.Fprintf(w, "root: %s (expires %s)\n", st.RootPath, st.RootNotAfter.Format(time.DateOnly))
			}
			if len(st.BundleSANs) == 0 {
				_, _ = fmt.Fprintln(w, "server: none issued")
				return nil
			}
			_, _ = fmt.Fprintf(w, "server: %s (expires %s)\n  %s\n", st.BundlePath, st.BundleExpiry.Format(time.DateOnly), strings.Join(st.BundleSANs, "\n  "))
			return nil
		},
	}

	cert.AddCommand(initCmd, issue, status)
	return cert
}

func newDenyPageCmd(g *globals) *cobra.Command {
	deny := &cobra.Command{Use: "denypage", Short: "Page served to blocked domains"}

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Serve the deny page in the foreground",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := g.load()
			if err != nil {
				return err
			}
			ctx, stop := interruptible()
			defer stop()
			var w io.Writer = cmd.OutOrStdout()
			if g.log != nil && g.log.Path != "" {
				w = g.log.Writer
			}
			return app.DenyPageCLI.Serve(ctx, w)
		},
	}

	start := &cobra.Command{
		Use:   "start",
		Short: "Start the deny page in the background",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := g.load()
			if err != nil {
				return err
			}
			st, err := app.DenyPageCLI.Start(context.Background())
			if err != nil {
				return err
			}
			verb := "already running"
			if st.Spawned {
				verb = "started"
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "deny page %s (pid %d)\n", verb, st.PID)
			return nil
		},
	}

	stopCmd := &cobra.Command{
		Use:   "stop",
		Short: "Stop the background deny page",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := g.load()
			if err != nil {
				return err
			}
			if err := app.DenyPageCLI.Stop(context.Background()); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "deny page stopped")
			return nil
		},
	}

	status := &cobra.Command{
		Use:   "status",
		Short: "Show whether the deny page is running and reachable",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := g.load()
			if err != nil {
				return err
			}
			st, err := app.DenyPageCLI.Status(context.Background())
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if st.Running {
				_, _ = fmt.Fprintf(w, "running (pid %d)\n", st.PID)
			} else {
				_, _ = fmt.Fprintln(w, "not running")
			}
			_, _ = fmt.Fprintf(w, "http  %s reachable=%t\n", st.HTTPAddr, st.HTTPReachable)
			_, _ = fmt.Fprintf(w, "https %s reachable=%t\n", st.HTTPSAddr, st.HTTPSReachable)
			return nil
		},
	}

	deny.AddCommand(serve, start, stopCmd, status)
	return deny
}
