package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"cloud.google.com/go/civil"
	"github.com/alexanderramin/chantier/internal/calendar"
	"github.com/alexanderramin/chantier/internal/cli/formatter"
	"github.com/alexanderramin/chantier/internal/domain"
	"github.com/alexanderramin/chantier/internal/service"
	"github.com/alexanderramin/chantier/internal/timeline"
	"github.com/spf13/cobra"
)

func newPhaseCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "phase",
		Short: "Manage and schedule work phases",
	}

	cmd.AddCommand(
		newPhaseAddCmd(app),
		newPhaseListCmd(app),
		newPhaseShowCmd(app),
		newPhaseRescheduleCmd(app),
		newPhaseMoveCmd(app),
		newPhaseResizeCmd(app),
		newPhaseAssignCmd(app),
		newPhaseBudgetCmd(app),
		newPhaseRenameCmd(app),
		newPhaseRemoveCmd(app),
	)

	return cmd
}

func newPhaseAddCmd(app *App) *cobra.Command {
	var (
		chantier, title, assignee, budget string
		start                             civil.Date
		duration, group, seq              int
	)
	hour := calendar.MorningStart

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a phase on a chantier",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			chantierID, err := resolveChantierID(ctx, app, chantier)
			if err != nil {
				return err
			}
			if !start.IsValid() {
				start = calendar.Today()
			}

			p := &domain.WorkPhase{
				ChantierID:     chantierID,
				Title:          title,
				StartDate:      start,
				StartHour:      hour,
				DurationHours:  duration,
				SequenceNumber: seq,
			}
			if cmd.Flags().Changed("group") {
				p.GroupID = &group
			}
			if assignee != "" {
				id, err := resolvePoseurID(ctx, app, assignee)
				if err != nil {
					return err
				}
				p.AssigneeID = &id
			}
			if p.Budget, err = parseBudget(budget); err != nil {
				return err
			}

			if err := app.Phases.Create(ctx, p); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created phase %s [%s]  %s\n",
				p.Title, formatter.TruncID(p.ID), formatter.FormatSpan(p.Start(), p.End()))
			return nil
		},
	}

	cmd.Flags().StringVar(&chantier, "chantier", "", "Chantier ID, ID prefix or name")
	cmd.Flags().StringVar(&title, "title", "", "Phase title")
	cmd.Flags().Var(newDateValue(&start), "start", "Start date (YYYY-MM-DD, default: today)")
	cmd.Flags().Var(newHourValue(&hour), "hour", "Start hour (8-17)")
	cmd.Flags().IntVar(&duration, "duration", calendar.HoursPerDay, "Duration in working hours")
	cmd.Flags().IntVar(&group, "group", 0, "Chain group number")
	cmd.Flags().IntVar(&seq, "seq", 0, "Position in the chain (default: appended)")
	cmd.Flags().StringVar(&assignee, "assignee", "", "Poseur ID, ID prefix or name")
	cmd.Flags().StringVar(&budget, "budget", "", "Budget in euros")
	_ = cmd.MarkFlagRequired("chantier")
	_ = cmd.MarkFlagRequired("title")

	return cmd
}

func newPhaseListCmd(app *App) *cobra.Command {
	var chantier string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the phases of a chantier",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			chantierID, err := resolveChantierID(ctx, app, chantier)
			if err != nil {
				return err
			}
			c, err := app.Chantiers.GetByID(ctx, chantierID)
			if err != nil {
				return err
			}
			phases, err := app.Phases.ListByChantier(ctx, chantierID)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(phases) == 0 {
				fmt.Fprintln(out, formatter.Dim("No phases on "+c.Name+"."))
				return nil
			}
			names, _, err := poseurNames(ctx, app)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, formatter.FormatPhaseList(c.Name, phases, names))
			return nil
		},
	}

	cmd.Flags().StringVar(&chantier, "chantier", "", "Chantier ID, ID prefix or name")
	_ = cmd.MarkFlagRequired("chantier")

	return cmd
}

func newPhaseShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show a phase and its history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			p, err := resolvePhase(ctx, app, args[0])
			if err != nil {
				return err
			}
			entries, err := app.History.ListByPhase(ctx, p.ID)
			if err != nil {
				return err
			}
			names, _, err := poseurNames(ctx, app)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatPhaseDetail(*p, entries, names))
			return nil
		},
	}
}

func newPhaseRescheduleCmd(app *App) *cobra.Command {
	var (
		start    civil.Date
		hour     int
		duration int
		assignee string
	)

	cmd := &cobra.Command{
		Use:   "reschedule ID",
		Short: "Set a phase's start and duration, shifting later phases of its chain",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			p, err := resolvePhase(ctx, app, args[0])
			if err != nil {
				return err
			}

			req := service.RescheduleRequest{
				PhaseID:       p.ID,
				Start:         p.Start(),
				DurationHours: p.DurationHours,
			}
			if start.IsValid() {
				req.Start.Date = start
			}
			if cmd.Flags().Changed("hour") {
				req.Start.Hour = hour
			}
			if cmd.Flags().Changed("duration") {
				req.DurationHours = duration
			}
			if req.AssigneeID, err = assigneeFlag(ctx, cmd, app, assignee); err != nil {
				return err
			}

			result, err := app.Planning.Reschedule(ctx, req)
			if err != nil {
				return err
			}
			return printPlanResult(ctx, cmd, app, result)
		},
	}

	cmd.Flags().Var(newDateValue(&start), "start", "New start date (YYYY-MM-DD)")
	cmd.Flags().Var(newHourValue(&hour), "hour", "New start hour (8-17)")
	cmd.Flags().IntVar(&duration, "duration", 0, "New duration in working hours")
	cmd.Flags().StringVar(&assignee, "assignee", "", "Poseur to assign, or \"none\"")

	return cmd
}

func newPhaseMoveCmd(app *App) *cobra.Command {
	var (
		x        float64
		assignee string
		board    boardFlags
	)

	cmd := &cobra.Command{
		Use:   "move ID",
		Short: "Drop a phase bar at a board pixel offset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			p, err := resolvePhase(ctx, app, args[0])
			if err != nil {
				return err
			}

			req := service.MoveRequest{
				PhaseID: p.ID,
				X:       x,
				Layout:  boardLayout(app, &board, p.StartDate),
			}
			if req.AssigneeID, err = assigneeFlag(ctx, cmd, app, assignee); err != nil {
				return err
			}

			result, err := app.Planning.Move(ctx, req)
			if err != nil {
				return err
			}
			return printPlanResult(ctx, cmd, app, result)
		},
	}

	cmd.Flags().Float64Var(&x, "x", 0, "Drop offset in pixels from the board's left edge")
	cmd.Flags().StringVar(&assignee, "assignee", "", "Lane to drop into: poseur, or \"none\"")
	board.register(cmd.Flags())
	_ = cmd.MarkFlagRequired("x")

	return cmd
}

func newPhaseResizeCmd(app *App) *cobra.Command {
	var (
		width float64
		board boardFlags
	)

	cmd := &cobra.Command{
		Use:   "resize ID",
		Short: "Resize a phase bar to a pixel width",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			p, err := resolvePhase(ctx, app, args[0])
			if err != nil {
				return err
			}

			result, err := app.Planning.Resize(ctx, service.ResizeRequest{
				PhaseID: p.ID,
				Width:   width,
				Layout:  boardLayout(app, &board, p.StartDate),
			})
			if err != nil {
				return err
			}
			return printPlanResult(ctx, cmd, app, result)
		},
	}

	cmd.Flags().Float64Var(&width, "width", 0, "New bar width in pixels")
	board.register(cmd.Flags())
	_ = cmd.MarkFlagRequired("width")

	return cmd
}

func newPhaseAssignCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "assign ID POSEUR",
		Short: "Assign a phase to a poseur (\"none\" to unassign)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			p, err := resolvePhase(ctx, app, args[0])
			if err != nil {
				return err
			}
			poseurID, err := resolvePoseurID(ctx, app, args[1])
			if err != nil {
				return err
			}
			updated, err := app.Phases.Assign(ctx, p.ID, &poseurID)
			if err != nil {
				return err
			}
			names, _, err := poseurNames(ctx, app)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Phase %s assigned to %s\n",
				updated.Title, formatter.Assignee(updated.AssigneeID, names))
			return nil
		},
	}
}

func newPhaseBudgetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "budget ID AMOUNT",
		Short: "Set a phase's budget in euros (\"none\" to clear)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			p, err := resolvePhase(ctx, app, args[0])
			if err != nil {
				return err
			}
			budget, err := parseBudget(args[1])
			if err != nil {
				return err
			}
			updated, err := app.Phases.SetBudget(ctx, p.ID, budget)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Phase %s budget: %s\n", updated.Title, formatter.FormatBudget(updated.Budget))
			return nil
		},
	}
}

func newPhaseRenameCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rename ID TITLE",
		Short: "Rename a phase",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			p, err := resolvePhase(ctx, app, args[0])
			if err != nil {
				return err
			}
			updated, err := app.Phases.Rename(ctx, p.ID, args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Renamed phase %s to %s\n", formatter.TruncID(updated.ID), updated.Title)
			return nil
		},
	}
}

func newPhaseRemoveCmd(app *App) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "rm ID",
		Short: "Delete a phase",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			p, err := resolvePhase(ctx, app, args[0])
			if err != nil {
				return err
			}
			if !force {
				ok, err := app.confirm(
					fmt.Sprintf("Delete phase %q?", p.Title),
					formatter.FormatSpan(p.Start(), p.End()),
				)
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
					return nil
				}
			}
			if err := app.Phases.Delete(ctx, p.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted phase %s [%s]\n", p.Title, formatter.TruncID(p.ID))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip confirmation")

	return cmd
}

// assigneeFlag returns nil when --assignee was not given, so the current
// assignee is kept.
func assigneeFlag(ctx context.Context, cmd *cobra.Command, app *App, input string) (*string, error) {
	if !cmd.Flags().Changed("assignee") {
		return nil, nil
	}
	id, err := resolvePoseurID(ctx, app, input)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func parseBudget(s string) (*float64, error) {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "€"))
	if s == "" || strings.EqualFold(s, "none") {
		return nil, nil
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid budget %q: %w", s, err)
	}
	return &v, nil
}

func boardLayout(app *App, board *boardFlags, anchor civil.Date) timeline.Layout {
	from, to, width := board.window(app, anchor)
	return timeline.NewLayout(app.calendar(), from, to, width)
}

func printPlanResult(ctx context.Context, cmd *cobra.Command, app *App, result *service.PlanResult) error {
	titles := make(map[string]string, len(result.Cascaded))
	if len(result.Cascaded) > 0 {
		siblings, err := app.Phases.ListByChantier(ctx, result.Phase.ChantierID)
		if err != nil {
			return err
		}
		for _, s := range siblings {
			titles[s.ID] = s.Title
		}
	}
	fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatPlanResult(result.Phase, result.Cascaded, titles))
	return nil
}
