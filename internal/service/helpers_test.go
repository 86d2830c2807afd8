package service

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/alexanderramin/chantier/internal/calendar"
	"github.com/alexanderramin/chantier/internal/db"
	"github.com/alexanderramin/chantier/internal/domain"
	"github.com/alexanderramin/chantier/internal/repository"
	"github.com/alexanderramin/chantier/internal/testutil"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

func march(day int) civil.Date {
	return civil.Date{Year: 2025, Month: time.March, Day: day}
}

type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (r *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recordingObserver) last() UseCaseEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.events[len(r.events)-1]
}

// fixture is a seeded database with one chantier, one poseur and a
// three-phase chain A, B, C on Monday to Wednesday 2025-03-03..05.
type fixture struct {
	db       *sql.DB
	chantier *domain.Chantier
	poseur   *domain.Poseur
	a, b, c  *domain.WorkPhase

	phases   repository.PhaseRepo
	history  repository.HistoryRepo
	names    *CachedNameLookup
	observer *recordingObserver
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	database := testutil.NewTestDB(t)
	ctx := context.Background()

	f := &fixture{
		db:       database,
		phases:   repository.NewSQLitePhaseRepo(database),
		history:  repository.NewSQLiteHistoryRepo(database),
		names:    NewCachedNameLookup(100, time.Minute),
		observer: &recordingObserver{},
	}

	f.chantier = testutil.NewTestChantier("Villa Lemoine")
	require.NoError(t, repository.NewSQLiteChantierRepo(database).Create(ctx, f.chantier))
	f.poseur = testutil.NewTestPoseur("Jean Martin")
	require.NoError(t, repository.NewSQLitePoseurRepo(database).Create(ctx, f.poseur))

	f.a = testutil.NewTestPhase(f.chantier.ID, "Démolition", testutil.WithGroup(1), testutil.WithSequence(1),
		testutil.WithSchedule(march(3), 8, 8))
	f.b = testutil.NewTestPhase(f.chantier.ID, "Cloisons", testutil.WithGroup(1), testutil.WithSequence(2),
		testutil.WithSchedule(march(4), 8, 8))
	f.c = testutil.NewTestPhase(f.chantier.ID, "Peinture", testutil.WithGroup(1), testutil.WithSequence(3),
		testutil.WithSchedule(march(5), 8, 8))
	for _, p := range []*domain.WorkPhase{f.a, f.b, f.c} {
		require.NoError(t, f.phases.Create(ctx, p))
	}
	return f
}

func (f *fixture) actor() Actor {
	return Actor{ID: "alice", Now: func() time.Time { return fixedNow }}
}

func (f *fixture) planning(uow db.UnitOfWork) PlanningService {
	if uow == nil {
		uow = testutil.NewTestUoW(f.db)
	}
	return NewPlanningService(uow, calendar.Default(), f.names, f.actor(), f.observer)
}

func (f *fixture) phaseService(uow db.UnitOfWork) PhaseService {
	if uow == nil {
		uow = testutil.NewTestUoW(f.db)
	}
	return NewPhaseService(f.phases, uow, calendar.Default(), f.names, f.actor(), f.observer)
}

func (f *fixture) get(t *testing.T, id string) *domain.WorkPhase {
	t.Helper()
	p, err := f.phases.GetByID(context.Background(), id)
	require.NoError(t, err)
	return p
}

func (f *fixture) entries(t *testing.T, phaseID string) []domain.HistoryEntry {
	t.Helper()
	got, err := f.history.ListByPhase(context.Background(), phaseID)
	require.NoError(t, err)
	return got
}
