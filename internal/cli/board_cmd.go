package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/chantier/internal/calendar"
	"github.com/alexanderramin/chantier/internal/cli/formatter"
	"github.com/alexanderramin/chantier/internal/domain"
	"github.com/spf13/cobra"
)

func newBoardCmd(app *App) *cobra.Command {
	var (
		chantier string
		board    boardFlags
	)

	cmd := &cobra.Command{
		Use:   "board",
		Short: "Draw the planning board: one lane per poseur plus unassigned",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			layout := boardLayout(app, &board, calendar.Today())
			if !layout.Valid() {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("No working days in range."))
				return nil
			}
			from, to := layout.Days[0].Date, layout.Days[len(layout.Days)-1].Date

			phases, err := app.Phases.ListInRange(ctx, from, to)
			if err != nil {
				return err
			}
			if chantier != "" {
				chantierID, err := resolveChantierID(ctx, app, chantier)
				if err != nil {
					return err
				}
				phases = filterChantier(phases, chantierID)
			}

			_, poseurs, err := poseurNames(ctx, app)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatBoard(layout, boardLanes(poseurs, phases)))
			return nil
		},
	}

	cmd.Flags().StringVar(&chantier, "chantier", "", "Only show phases of this chantier")
	board.register(cmd.Flags())

	return cmd
}

// boardLanes groups phases into one lane per poseur followed by the
// unassigned lane. Phases of unknown poseurs fall into unassigned.
func boardLanes(poseurs []*domain.Poseur, phases []domain.WorkPhase) []formatter.BoardLane {
	lanes := make([]formatter.BoardLane, 0, len(poseurs)+1)
	index := make(map[string]int, len(poseurs))
	for _, p := range poseurs {
		index[p.ID] = len(lanes)
		lanes = append(lanes, formatter.BoardLane{Name: p.Name})
	}
	unassigned := formatter.BoardLane{Name: "unassigned"}
	for _, ph := range phases {
		if !ph.Unassigned() {
			if i, ok := index[*ph.AssigneeID]; ok {
				lanes[i].Phases = append(lanes[i].Phases, ph)
				continue
			}
		}
		unassigned.Phases = append(unassigned.Phases, ph)
	}
	return append(lanes, unassigned)
}

func filterChantier(phases []domain.WorkPhase, chantierID string) []domain.WorkPhase {
	out := phases[:0]
	for _, p := range phases {
		if p.ChantierID == chantierID {
			out = append(out, p)
		}
	}
	return out
}
