package main

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	calendardto "hyprfocus/internal/modules/calendar/dto"
)

func newCalendarCmd(g *globals) *cobra.Command {
	calendar := &cobra.Command{Use: "calendar", Short: "Week planner of focus sessions"}

	var weekDate string
	week := &cobra.Command{
		Use:   "week",
		Short: "List the events of a week",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := g.load()
			if err != nil {
				return err
			}
			out, err := app.CalendarCLI.Week(context.Background(), weekDate)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(w, "week of %s\n", out.Start.Format("Mon 2006-01-02"))
			if out.SleepEnabled {
				_, _ = fmt.Fprintf(w, "sleep %s-%s\n", slotClock(out.SleepStart), slotClock(out.SleepEnd))
			}
			if len(out.Events) == 0 {
				_, _ = fmt.Fprintln(w, "no events")
				return nil
			}
			for _, e := range out.Events {
				printEvent(cmd, e)
			}
			return nil
		},
	}
	week.Flags().StringVar(&weekDate, "date", "", "any date inside the week (YYYY-MM-DD)")

	var date, start, end, goal, intention string
	create := &cobra.Command{
		Use:   "create --start HH:MM --end HH:MM --goal <goal>",
		Short: "Create an event",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := g.load()
			if err != nil {
				return err
			}
			e, err := app.CalendarCLI.Create(context.Background(), date, start, end, goal, intention)
			if err != nil {
				return err
			}
			printEvent(cmd, e)
			return nil
		},
	}
	create.Flags().StringVar(&date, "date", "", "day of the event (YYYY-MM-DD, default today)")
	create.Flags().StringVar(&start, "start", "", "start time (HH:MM)")
	create.Flags().StringVar(&end, "end", "", "end time (HH:MM, 00:00 for midnight)")
	create.Flags().StringVar(&goal, "goal", "", "goal of the session")
	create.Flags().StringVar(&intention, "intention", "", "intention of the session")

	var editGoal, editIntention string
	edit := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change the goal or intention of an event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := g.load()
			if err != nil {
				return err
			}
			e, err := app.CalendarCLI.Edit(context.Background(), args[0], editGoal, editIntention)
			if err != nil {
				return err
			}
			printEvent(cmd, e)
			return nil
		},
	}
	edit.Flags().StringVar(&editGoal, "goal", "", "new goal")
	edit.Flags().StringVar(&editIntention, "intention", "", "new intention")

	deleteCmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := g.load()
			if err != nil {
				return err
			}
			if err := app.CalendarCLI.Delete(context.Background(), args[0]); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
			return nil
		},
	}

	var moveBy int
	move := &cobra.Command{
		Use:   "move <id> --by <slots>",
		Short: "Move an event by whole 15 minute slots",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := g.load()
			if err != nil {
				return err
			}
			out, err := app.CalendarCLI.Move(context.Background(), args[0], moveBy)
			if err != nil {
				return err
			}
			return printOutcome(cmd, out)
		},
	}
	move.Flags().IntVar(&moveBy, "by", 0, "slots to move, negative for earlier")

	var resizeBy int
	resize := &cobra.Command{
		Use:   "resize <id> <top|bottom> --by <slots>",
		Short: "Move one edge of an event by whole 15 minute slots",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := g.load()
			if err != nil {
				return err
			}
			out, err := app.CalendarCLI.Resize(context.Background(), args[0], args[1], resizeBy)
			if err != nil {
				return err
			}
			return printOutcome(cmd, out)
		},
	}
	resize.Flags().IntVar(&resizeBy, "by", 0, "slots to move the edge, negative for earlier")

	var dropDate, dropAt string
	dropTask := &cobra.Command{
		Use:   "drop-task <n> --at HH:MM",
		Short: "Turn task number n into an event at the given time",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := g.load()
			if err != nil {
				return err
			}
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("task number: %w", err)
			}
			out, err := app.CalendarCLI.DropTask(context.Background(), n, dropDate, dropAt)
			if err != nil {
				return err
			}
			if !out.Placed {
				return fmt.Errorf("no free slot at %s", dropAt)
			}
			printEvent(cmd, out.Event)
			return nil
		},
	}
	dropTask.Flags().StringVar(&dropDate, "date", "", "day (YYYY-MM-DD, default today)")
	dropTask.Flags().StringVar(&dropAt, "at", "", "start time (HH:MM)")

	launchDue := &cobra.Command{
		Use:   "launch-due",
		Short: "Queue the event covering the current time as the next session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := g.load()
			if err != nil {
				return err
			}
			out, err := app.CalendarCLI.LaunchDue(context.Background())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "queued %s for %d min (%s)\n", out.Goal, out.Minutes, out.EventID)
			return nil
		},
	}

	sleep := &cobra.Command{
		Use:   "sleep <HH:MM> <HH:MM>",
		Short: "Set the nightly sleep window, equal times disable it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := g.load()
			if err != nil {
				return err
			}
			if err := app.CalendarCLI.Sleep(context.Background(), args[0], args[1]); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "sleep window %s-%s\n", args[0], args[1])
			return nil
		},
	}

	calendar.AddCommand(week, create, edit, deleteCmd, move, resize, dropTask, launchDue, sleep)
	return calendar
}

func newTaskCmd(g *globals) *cobra.Command {
	task := &cobra.Command{Use: "task", Short: "Todo list feeding the week planner"}

	var goal string
	add := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := g.load()
			if err != nil {
				return err
			}
			t, err := app.CalendarCLI.AddTask(context.Background(), args[0], goal)
			if err != nil {
				return err
			}
			printTask(cmd, t)
			return nil
		},
	}
	add.Flags().StringVar(&goal, "goal", "", "goal used when the task is scheduled")

	list := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := g.load()
			if err != nil {
				return err
			}
			tasks, err := app.CalendarCLI.Tasks(context.Background())
			if err != nil {
				return err
			}
			if len(tasks) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no tasks")
				return nil
			}
			for _, t := range tasks {
				printTask(cmd, t)
			}
			return nil
		},
	}

	done := &cobra.Command{
		Use:   "done <n>",
		Short: "Toggle the done flag of task n",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := g.load()
			if err != nil {
				return err
			}
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("task number: %w", err)
			}
			t, err := app.CalendarCLI.ToggleTask(context.Background(), n)
			if err != nil {
				return err
			}
			printTask(cmd, t)
			return nil
		},
	}

	deleteCmd := &cobra.Command{
		Use:   "delete <n>",
		Short: "Delete task n",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := g.load()
			if err != nil {
				return err
			}
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("task number: %w", err)
			}
			if err := app.CalendarCLI.DeleteTask(context.Background(), n); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "deleted task %d\n", n)
			return nil
		},
	}

	task.AddCommand(add, list, done, deleteCmd)
	return task
}

func printEvent(cmd *cobra.Command, e calendardto.EventView) {
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s %s-%s\t%s\t%s\n",
		e.ID, e.Start.Format("Mon 01-02"), e.Start.Format("15:04"), e.End.Format("15:04"), e.Goal, e.Intention)
}

func printOutcome(cmd *cobra.Command, out calendardto.GestureOutcome) error {
	if out.Refused {
		return fmt.Errorf("%s refused: overlaps another event or leaves the day", out.Gesture)
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s-%s\n", out.EventID, slotClock(out.StartSlot), slotClock(out.EndSlot))
	return nil
}

func printTask(cmd *cobra.Command, t calendardto.TaskView) {
	mark := " "
	if t.Done {
		mark = "x"
	}
	line := fmt.Sprintf("%d [%s] %s", t.Index, mark, t.Title)
	if t.Goal != "" {
		line += " @" + t.Goal
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), line)
}

func slotClock(slot int) string {
	d := time.Duration(slot) * 15 * time.Minute
	return fmt.Sprintf("%02d:%02d", int(d.Hours()), int(d.Minutes())%60)
}
