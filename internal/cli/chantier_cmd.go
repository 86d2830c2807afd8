package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/chantier/internal/cli/formatter"
	"github.com/alexanderramin/chantier/internal/domain"
	"github.com/spf13/cobra"
)

func newChantierAddCmd(app *App) *cobra.Command {
	var address string

	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Create a new chantier",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := &domain.Chantier{Name: args[0], Address: address}
			if err := app.Chantiers.Create(context.Background(), c); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created chantier %s [%s]\n", c.Name, formatter.TruncID(c.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&address, "address", "", "Site address")

	return cmd
}

func newChantierListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List chantiers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			chantiers, err := app.Chantiers.List(context.Background())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(chantiers) == 0 {
				fmt.Fprintln(out, formatter.Dim("No chantiers yet. Create one with: chantier add NAME"))
				return nil
			}
			rows := make([][]string, 0, len(chantiers))
			for _, c := range chantiers {
				rows = append(rows, []string{formatter.TruncID(c.ID), formatter.Bold(c.Name), c.Address})
			}
			fmt.Fprintln(out, formatter.RenderBox("Chantiers",
				formatter.RenderTable([]string{"ID", "NAME", "ADDRESS"}, rows)))
			return nil
		},
	}
}

func newPoseurCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "poseur",
		Short: "Manage crew members",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "add NAME",
			Short: "Add a poseur",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				p := &domain.Poseur{Name: args[0]}
				if err := app.Poseurs.Create(context.Background(), p); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added poseur %s [%s]\n", p.Name, formatter.TruncID(p.ID))
				return nil
			},
		},
		&cobra.Command{
			Use:   "list",
			Short: "List poseurs",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				poseurs, err := app.Poseurs.List(context.Background())
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(poseurs) == 0 {
					fmt.Fprintln(out, formatter.Dim("No poseurs yet."))
					return nil
				}
				rows := make([][]string, 0, len(poseurs))
				for _, p := range poseurs {
					rows = append(rows, []string{formatter.TruncID(p.ID), p.Name})
				}
				fmt.Fprintln(out, formatter.RenderTable([]string{"ID", "NAME"}, rows))
				return nil
			},
		},
	)

	return cmd
}
