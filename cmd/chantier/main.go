package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/alexanderramin/chantier/internal/cli"
	"github.com/alexanderramin/chantier/internal/config"
	"github.com/alexanderramin/chantier/internal/db"
	"github.com/alexanderramin/chantier/internal/repository"
	"github.com/alexanderramin/chantier/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.LoadConfig()

	dbPath, err := cfg.DatabasePath()
	if err != nil {
		return err
	}
	cal, err := cfg.Calendar()
	if err != nil {
		return err
	}

	// Open database
	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	var logger *slog.Logger
	var observers []service.UseCaseObserver
	if cfg.LogCalls {
		logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
		observers = append(observers, service.NewLogUseCaseObserver(os.Stderr))
	}

	// Busy writers from a second process are retried.
	uow := db.NewRetryingUnitOfWork(db.NewSQLiteUnitOfWork(database), cfg.RetryAttempts, cfg.RetryDelay, logger)

	// Wire repositories
	chantierRepo := repository.NewSQLiteChantierRepo(database)
	poseurRepo := repository.NewSQLitePoseurRepo(database)
	phaseRepo := repository.NewSQLitePhaseRepo(database)
	historyRepo := repository.NewSQLiteHistoryRepo(database)

	names := service.NewCachedNameLookup(cfg.NameCacheSize, cfg.NameCacheTTL)
	actor := service.Actor{ID: cfg.Actor}

	app := &cli.App{
		Chantiers: service.NewChantierService(chantierRepo),
		Poseurs:   service.NewPoseurService(poseurRepo, names),
		Phases:    service.NewPhaseService(phaseRepo, uow, cal, names, actor, observers...),
		Planning:  service.NewPlanningService(uow, cal, names, actor, observers...),
		History:   service.NewHistoryService(historyRepo),

		Calendar:    cal,
		ColumnWidth: cfg.ColumnWidth,
	}

	// Detect interactive terminal for delete confirmations.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(app).Execute()
}
