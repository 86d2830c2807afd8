package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/chantier/internal/cli/formatter"
	"github.com/alexanderramin/chantier/internal/domain"
	"github.com/spf13/cobra"
)

func newHistoryCmd(app *App) *cobra.Command {
	var (
		chantier, phase string
		limit           int
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show the change history of a chantier or a phase",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			var (
				entries []domain.HistoryEntry
				err     error
			)
			switch {
			case phase != "":
				p, rErr := resolvePhase(ctx, app, phase)
				if rErr != nil {
					return rErr
				}
				entries, err = app.History.ListByPhase(ctx, p.ID)
			case chantier != "":
				chantierID, rErr := resolveChantierID(ctx, app, chantier)
				if rErr != nil {
					return rErr
				}
				entries, err = app.History.ListByChantier(ctx, chantierID, limit)
			default:
				return fmt.Errorf("one of --chantier or --phase is required")
			}
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatHistory(entries))
			return nil
		},
	}

	cmd.Flags().StringVar(&chantier, "chantier", "", "Chantier ID, ID prefix or name (newest first)")
	cmd.Flags().StringVar(&phase, "phase", "", "Phase ID or ID prefix (oldest first)")
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum entries for --chantier (0 for all)")
	cmd.MarkFlagsMutuallyExclusive("chantier", "phase")

	return cmd
}
