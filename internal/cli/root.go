package cli

import (
	"github.com/alexanderramin/chantier/internal/calendar"
	"github.com/alexanderramin/chantier/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Chantiers service.ChantierService
	Poseurs   service.PoseurService
	Phases    service.PhaseService
	Planning  service.PlanningService
	History   service.HistoryService

	Calendar    *calendar.Calendar
	ColumnWidth float64

	// IsInteractive reports whether prompts can be shown. Nil means never.
	IsInteractive func() bool
	// Confirm asks a yes/no question. Nil uses a huh form.
	Confirm func(title string) (bool, error)
}

func (a *App) calendar() *calendar.Calendar {
	if a.Calendar == nil {
		return calendar.Default()
	}
	return a.Calendar
}

func (a *App) columnWidth() float64 {
	if a.ColumnWidth <= 0 {
		return 120
	}
	return a.ColumnWidth
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "chantier" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "chantier",
		Short:         "Job-site phase planner with working-hour scheduling",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newChantierAddCmd(app),
		newChantierListCmd(app),
		newPoseurCmd(app),
		newPhaseCmd(app),
		newHistoryCmd(app),
		newCalendarCmd(app),
		newTimelineCmd(app),
		newBoardCmd(app),
	)

	return root
}
