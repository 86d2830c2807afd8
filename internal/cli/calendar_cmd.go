package cli

import (
	"fmt"
	"strconv"

	"cloud.google.com/go/civil"
	"github.com/alexanderramin/chantier/internal/calendar"
	"github.com/alexanderramin/chantier/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newCalendarCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Working-hour calendar arithmetic",
	}

	cmd.AddCommand(
		newCalendarEndCmd(app),
		newCalendarNextCmd(app),
		newCalendarCountCmd(app),
		newCalendarDaysCmd(app),
	)

	return cmd
}

func newCalendarEndCmd(app *App) *cobra.Command {
	var (
		start    civil.Date
		duration int
	)
	hour := calendar.MorningStart

	cmd := &cobra.Command{
		Use:   "end",
		Short: "Compute when a phase of the given duration ends",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cal := app.calendar()
			begin := cal.NormalizeStart(calendar.At(start, hour))
			end, err := cal.ComputeEndInstant(start, hour, duration)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s → %s (%s)\n",
				formatter.FormatInstant(begin), formatter.FormatInstant(end), formatter.FormatHours(duration))
			return nil
		},
	}

	cmd.Flags().Var(newDateValue(&start), "start", "Start date (YYYY-MM-DD)")
	cmd.Flags().Var(newHourValue(&hour), "hour", "Start hour (8-17)")
	cmd.Flags().IntVar(&duration, "duration", calendar.HoursPerDay, "Duration in working hours")
	_ = cmd.MarkFlagRequired("start")

	return cmd
}

func newCalendarNextCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "next DATE",
		Short: "Show the first working day after DATE",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := calendar.ParseDate(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatDate(app.calendar().NextWorkingDay(d)))
			return nil
		},
	}
}

func newCalendarCountCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "count FROM TO",
		Short: "Count working days in [FROM, TO]",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := calendar.ParseDate(args[0])
			if err != nil {
				return err
			}
			to, err := calendar.ParseDate(args[1])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), strconv.Itoa(app.calendar().CountWorkingDays(from, to)))
			return nil
		},
	}
}

func newCalendarDaysCmd(app *App) *cobra.Command {
	var board boardFlags

	cmd := &cobra.Command{
		Use:   "days",
		Short: "List the working days of a board window with their pixel offsets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			from, to, width := board.window(app, calendar.Today())
			days := app.calendar().WorkingDays(from, to)
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatWorkingDays(days, width))
			return nil
		},
	}

	board.register(cmd.Flags())

	return cmd
}
