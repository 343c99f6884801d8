package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newStatsCmd(g *globals) *cobra.Command {
	stats := &cobra.Command{Use: "stats", Short: "Focus time statistics from the session log"}

	show := &cobra.Command{
		Use:   "show",
		Short: "Show today's totals and the last week",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := g.load()
			if err != nil {
				return err
			}
			out, err := app.StatsCLI.Show(context.Background())
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(w, "today: %.1fh in %d session(s)\n", out.TodayHours, out.TodaySessions)
			if out.Ratings > 0 {
				_, _ = fmt.Fprintf(w, "rating: %.1f/10 over %d\n", out.AverageRating, out.Ratings)
			}
			for _, d := range out.History {
				_, _ = fmt.Fprintf(w, "%s  %5.1fh\n", d.Date.Format("Mon 01-02"), d.Hours)
			}
			return nil
		},
	}

	reindex := &cobra.Command{
		Use:   "reindex",
		Short: "Rebuild the statistics database from the session log",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := g.load()
			if err != nil {
				return err
			}
			out, err := app.StatsCLI.Reindex(context.Background())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "reindexed %d record(s) into %d span(s)\n", out.Records, out.Spans)
			return nil
		},
	}

	goals := &cobra.Command{
		Use:   "goals",
		Short: "Totals per goal from the last reindex",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := g.load()
			if err != nil {
				return err
			}
			totals, err := app.StatsCLI.Goals(context.Background())
			if err != nil {
				return err
			}
			if len(totals) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no goals indexed (run: hyprfocus stats reindex)")
				return nil
			}
			for _, t := range totals {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%-20s %6.1fh %4d session(s)  rating %.1f\n", t.Goal, t.Hours, t.Sessions, t.AverageRating)
			}
			return nil
		},
	}

	stats.AddCommand(show, reindex, goals)
	return stats
}

func newPluginCmd(g *globals) *cobra.Command {
	plugin := &cobra.Command{Use: "plugin", Short: "Manage collaborator plugins"}

	list := &cobra.Command{
		Use:   "list",
		Short: "List installed plugins",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := g.load()
			if err != nil {
				return err
			}
			plugins, err := app.PluginCLI.List(context.Background())
			if err != nil {
				return err
			}
			if len(plugins) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no plugins installed")
				return nil
			}
			for _, p := range plugins {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\tenabled=%t\t%s\n", p.Name, p.Version, p.Enabled, strings.Join(p.Capabilities, ","))
			}
			return nil
		},
	}

	doctor := &cobra.Command{
		Use:   "doctor",
		Short: "Check plugin checksums, binaries and handshake",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := g.load()
			if err != nil {
				return err
			}
			results, err := app.PluginCLI.Doctor(context.Background())
			if err != nil {
				return err
			}
			failed := 0
			for _, r := range results {
				status := "ok"
				if r.Error != "" {
					status = "error: " + r.Error
					failed++
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\tchecksum=%t\tbinary=%t\tlifecycle=%t\t%s\n", r.Name, r.ChecksumValid, r.BinaryReachable, r.LifecycleOK, status)
			}
			if failed > 0 {
				return fmt.Errorf("%d plugin(s) unhealthy", failed)
			}
			return nil
		},
	}

	var payload string
	invoke := &cobra.Command{
		Use:   "invoke <plugin> <capability>",
		Short: "Call one capability of a plugin with a JSON payload",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := g.load()
			if err != nil {
				return err
			}
			ctx, stop := interruptible()
			defer stop()
			out, err := app.PluginCLI.Invoke(ctx, args[0], args[1], payload)
			if err != nil {
				return err
			}
			if out.Cancelled {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "cancelled")
				return nil
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), out.OutputJSON)
			return nil
		},
	}
	invoke.Flags().StringVar(&payload, "payload", "{}", "capability payload as JSON")

	plugin.AddCommand(list, doctor, invoke)
	return plugin
}
