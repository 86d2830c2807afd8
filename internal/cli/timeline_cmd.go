package cli

import (
	"fmt"

	"cloud.google.com/go/civil"
	"github.com/alexanderramin/chantier/internal/calendar"
	"github.com/alexanderramin/chantier/internal/cli/formatter"
	"github.com/alexanderramin/chantier/internal/timeline"
	"github.com/spf13/cobra"
)

func newTimelineCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "timeline",
		Short: "Convert between board pixels and working-hour instants",
	}

	cmd.AddCommand(
		newTimelineLocateCmd(app),
		newTimelinePlaceCmd(app),
	)

	return cmd
}

func newTimelineLocateCmd(app *App) *cobra.Command {
	var (
		x     float64
		snap  bool
		board boardFlags
	)

	cmd := &cobra.Command{
		Use:   "locate",
		Short: "Resolve a pixel offset to a date and hour",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			layout := boardLayout(app, &board, calendar.Today())
			if snap {
				x = timeline.SnapToGrid(x, layout.ColumnWidth)
			}
			inst, ok := layout.Locate(x)
			if !ok {
				return fmt.Errorf("no working days in the board window")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s → %s\n", formatter.FormatPixels(x), formatter.FormatInstant(inst))
			return nil
		},
	}

	cmd.Flags().Float64Var(&x, "x", 0, "Pixel offset from the board's left edge")
	cmd.Flags().BoolVar(&snap, "snap", false, "Snap x to the board grid first")
	board.register(cmd.Flags())

	return cmd
}

func newTimelinePlaceCmd(app *App) *cobra.Command {
	var (
		start    civil.Date
		duration int
		board    boardFlags
	)
	hour := calendar.MorningStart

	cmd := &cobra.Command{
		Use:   "place",
		Short: "Show where a phase's bar is drawn",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cal := app.calendar()
			begin := cal.NormalizeStart(calendar.At(start, hour))
			end, err := cal.ComputeEndInstant(begin.Date, begin.Hour, duration)
			if err != nil {
				return err
			}
			layout := boardLayout(app, &board, begin.Date)
			x, width := layout.Span(begin, end)
			fmt.Fprintf(cmd.OutOrStdout(), "%s → %s  x=%s width=%s\n",
				formatter.FormatInstant(begin), formatter.FormatInstant(end),
				formatter.FormatPixels(x), formatter.FormatPixels(width))
			return nil
		},
	}

	cmd.Flags().Var(newDateValue(&start), "start", "Start date (YYYY-MM-DD)")
	cmd.Flags().Var(newHourValue(&hour), "hour", "Start hour (8-17)")
	cmd.Flags().IntVar(&duration, "duration", calendar.HoursPerDay, "Duration in working hours")
	board.register(cmd.Flags())
	_ = cmd.MarkFlagRequired("start")

	return cmd
}
