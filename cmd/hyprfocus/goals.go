package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	preferencesdto "hyprfocus/internal/modules/preferences/dto"
)

func newGoalCmd(g *globals) *cobra.Command {
	goal := &cobra.Command{Use: "goal", Short: "Manage goals and their themes"}

	list := &cobra.Command{
		Use:   "list",
		Short: "List goals with their theme and blocked domains",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := g.load()
			if err != nil {
				return err
			}
			out, err := app.PrefsCLI.Overview(context.Background())
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if len(out.Goals) == 0 {
				_, _ = fmt.Fprintln(w, "no goals")
				return nil
			}
			for _, gv := range out.Goals {
				_, _ = fmt.Fprintf(w, "%-16s theme=%-12s %d domain(s)\n", gv.Name, gv.Theme, len(gv.Domains))
			}
			return nil
		},
	}

	add := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a goal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := g.load()
			if err != nil {
				return err
			}
			added, err := app.PrefsCLI.AddGoal(context.Background(), args[0])
			if err != nil {
				return err
			}
			if !added {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "goal %s already exists\n", args[0])
				return nil
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "added goal %s\n", args[0])
			return nil
		},
	}

	deleteCmd := &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a goal and its theme",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := g.load()
			if err != nil {
				return err
			}
			if err := app.PrefsCLI.DeleteGoal(context.Background(), args[0]); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "deleted goal %s\n", args[0])
			return nil
		},
	}

	themeCmd := &cobra.Command{
		Use:   "theme <name> <theme>",
		Short: "Switch to a theme whenever a session for this goal starts (Default clears it)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := g.load()
			if err != nil {
				return err
			}
			if err := app.PrefsCLI.SetTheme(context.Background(), args[0], args[1]); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s uses theme %s\n", args[0], args[1])
			return nil
		},
	}

	goal.AddCommand(list, add, deleteCmd, themeCmd)
	return goal
}

func newFilterCmd(g *globals) *cobra.Command {
	filter := &cobra.Command{Use: "filter", Short: "Manage the domains blocked for a goal"}
	var goal string
	filter.PersistentFlags().StringVar(&goal, "goal", "", "goal whose block list is edited")
	_ = filter.MarkPersistentFlagRequired("goal")

	list := &cobra.Command{
		Use:   "list",
		Short: "List blocked domains",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := g.load()
			if err != nil {
				return err
			}
			gv, err := app.PrefsCLI.Goal(context.Background(), goal)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if len(gv.Domains) == 0 {
				_, _ = fmt.Fprintf(w, "nothing blocked for %s\n", gv.Name)
				return nil
			}
			_, _ = fmt.Fprintln(w, strings.Join(gv.Domains, "\n"))
			return nil
		},
	}

	add := &cobra.Command{
		Use:   "add <domain>...",
		Short: "Block domains during sessions for the goal",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := g.load()
			if err != nil {
				return err
			}
			n, err := app.PrefsCLI.AddFilters(context.Background(), goal, args)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d domain(s) added to %s\n", n, goal)
			return nil
		},
	}

	deleteCmd := &cobra.Command{
		Use:   "delete <domain>",
		Short: "Stop blocking a domain for the goal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := g.load()
			if err != nil {
				return err
			}
			if err := app.PrefsCLI.DeleteFilter(context.Background(), goal, args[0]); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "unblocked %s for %s\n", args[0], goal)
			return nil
		},
	}

	filter.AddCommand(list, add, deleteCmd)
	return filter
}

func newPomodoroCmd(g *globals) *cobra.Command {
	pomodoro := &cobra.Command{Use: "pomodoro", Short: "Pomodoro cadence and end-of-session prompts"}

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the pomodoro cadence",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := g.load()
			if err != nil {
				return err
			}
			out, err := app.PrefsCLI.Overview(context.Background())
			if err != nil {
				return err
			}
			printPomodoro(cmd, out.Pomodoro)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "shutdown feedback: %t\n", out.ShutdownFeedback)
			return nil
		},
	}

	var (
		work, short, long int
		popup, feedback   bool
	)
	set := &cobra.Command{
		Use:   "set",
		Short: "Change the pomodoro cadence; unset flags keep their value",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := g.load()
			if err != nil {
				return err
			}
			ctx := context.Background()
			flags := cmd.Flags()
			if flags.Changed("shutdown-feedback") {
				if err := app.PrefsCLI.SetShutdownFeedback(ctx, feedback); err != nil {
					return err
				}
				if !flags.Changed("work") && !flags.Changed("short") && !flags.Changed("long") && !flags.Changed("intention-popup") {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "shutdown feedback: %t\n", feedback)
					return nil
				}
			}
			var input preferencesdto.PomodoroInput
			if flags.Changed("work") {
				input.WorkMinutes = &work
			}
			if flags.Changed("short") {
				input.ShortBreakMinutes = &short
			}
			if flags.Changed("long") {
				input.LongBreakMinutes = &long
			}
			if flags.Changed("intention-popup") {
				input.IntentionPopup = &popup
			}
			out, err := app.PrefsCLI.SetPomodoro(ctx, input)
			if err != nil {
				return err
			}
			printPomodoro(cmd, out)
			return nil
		},
	}
	set.Flags().IntVar(&work, "work", 25, "work minutes (1-120)")
	set.Flags().IntVar(&short, "short", 5, "short break minutes (1-120)")
	set.Flags().IntVar(&long, "long", 20, "long break minutes, every fourth break (1-120)")
	set.Flags().BoolVar(&popup, "intention-popup", true, "ask for a new intention after each break")
	set.Flags().BoolVar(&feedback, "shutdown-feedback", true, "ask for a rating when a session ends")

	pomodoro.AddCommand(show, set)
	return pomodoro
}

func printPomodoro(cmd *cobra.Command, p preferencesdto.PomodoroView) {
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "work %dm, short break %dm, long break %dm, intention popup %t\n",
		p.WorkMinutes, p.ShortBreakMinutes, p.LongBreakMinutes, p.IntentionPopup)
}
