package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

func newSessionCmd(g *globals) *cobra.Command {
	session := &cobra.Command{Use: "session", Short: "Focus session lifecycle"}

	var goal, intention string
	var minutes int
	var pomodoro bool
	launch := &cobra.Command{
		Use:   "launch --goal <goal> --minutes <n>",
		Short: "Write the session descriptor picked up by the next session run",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := g.load()
			if err != nil {
				return err
			}
			out, err := app.SessionCLI.Launch(context.Background(), goal, intention, minutes, pomodoro)
			if err != nil {
				return err
			}
			mode := "countdown"
			if out.Pomodoro {
				mode = "pomodoro"
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "queued %s for %d min (%s)\n", out.Goal, out.Duration, mode)
			return nil
		},
	}
	launch.Flags().StringVar(&goal, "goal", "", "session goal")
	launch.Flags().StringVar(&intention, "intention", "", "what this session is for")
	launch.Flags().IntVar(&minutes, "minutes", 0, "session length in minutes")
	launch.Flags().BoolVar(&pomodoro, "pomodoro", false, "run work/break cycles instead of one countdown")

	var skipShutdown bool
	run := &cobra.Command{
		Use:   "run",
		Short: "Run the session described by the descriptor (or the default session)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := g.load()
			if err != nil {
				return err
			}
			ctx, stop := interruptible()
			defer stop()
			out, err := app.SessionCLI.Run(ctx, skipShutdown)
			if err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			state := "completed"
			if out.Interrupted {
				state = "interrupted"
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "session %s: goal=%s intention=%q", state, out.Goal, out.Intention)
			if out.Pomodoro {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), " pomodoros=%d", out.Completed)
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout())
			return nil
		},
	}
	run.Flags().BoolVar(&skipShutdown, "skip-shutdown", false, "do not power off when the session ends")

	status := &cobra.Command{
		Use:   "status",
		Short: "Show the running or pending session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := g.load()
			if err != nil {
				return err
			}
			cur, err := app.SessionCLI.Status(context.Background())
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			switch cur.Source {
			case "running":
				_, _ = fmt.Fprintf(w, "running: %s\nintention: %s\nstate: %s\n", cur.Goal, cur.Intention, cur.State)
				if cur.TimerLine != "" {
					_, _ = fmt.Fprintf(w, "timer: %s\n", cur.TimerLine)
				}
				if !cur.EndsAt.IsZero() {
					_, _ = fmt.Fprintf(w, "ends: %s\n", cur.EndsAt.Local().Format(time.Kitchen))
				}
			case "pending":
				_, _ = fmt.Fprintf(w, "pending: %s for %d min\nintention: %s\n", cur.Goal, cur.Duration, cur.Intention)
			default:
				_, _ = fmt.Fprintln(w, "no session")
			}
			return nil
		},
	}

	var rating int
	var comment, fbGoal, fbIntention string
	feedback := &cobra.Command{
		Use:   "feedback --rating <1-10>",
		Short: "Record feedback for the current session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := g.load()
			if err != nil {
				return err
			}
			out, err := app.SessionCLI.Feedback(context.Background(), fbGoal, fbIntention, rating, comment)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "feedback recorded: %s %d/10\n", out.Goal, out.Rating)
			return nil
		},
	}
	feedback.Flags().IntVar(&rating, "rating", 0, "productivity rating 1-10")
	feedback.Flags().StringVar(&comment, "comment", "", "free-form retrospective")
	feedback.Flags().StringVar(&fbGoal, "goal", "", "goal (defaults to the current session)")
	feedback.Flags().StringVar(&fbIntention, "intention", "", "intention (defaults to the current session)")

	var limit int
	history := &cobra.Command{
		Use:   "history",
		Short: "Show recent session log records",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := g.load()
			if err != nil {
				return err
			}
			events, err := app.SessionCLI.History(context.Background(), limit)
			if err != nil {
				return err
			}
			if len(events) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no sessions logged")
				return nil
			}
			for _, e := range events {
				line := fmt.Sprintf("%s\t%s\t%s", e.Timestamp.Local().Format("2006-01-02 15:04"), e.Type, e.Goal)
				switch e.Type {
				case "login":
					line += fmt.Sprintf("\t%dmin\t%s", e.Duration, e.Intention)
				case "feedback":
					line += fmt.Sprintf("\t%d/10\t%s", e.Rating, strings.ReplaceAll(e.Comment, "\n", " "))
				default:
					line += "\t" + e.Intention
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			return nil
		},
	}
	history.Flags().IntVar(&limit, "limit", 20, "records to show (0 for all)")

	session.AddCommand(launch, run, status, feedback, history)
	return session
}
