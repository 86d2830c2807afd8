package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/alexanderramin/chantier/internal/calendar"
	"github.com/alexanderramin/chantier/internal/domain"
	"github.com/alexanderramin/chantier/internal/repository"
	"github.com/alexanderramin/chantier/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPhase(chantierID, title string, start calendar.Instant, duration int) *domain.WorkPhase {
	return &domain.WorkPhase{
		ChantierID:    chantierID,
		Title:         title,
		StartDate:     start.Date,
		StartHour:     start.Hour,
		DurationHours: duration,
	}
}

func TestPhaseService_CreateComputesEndAndRecords(t *testing.T) {
	f := newFixture(t)
	svc := f.phaseService(nil)
	ctx := context.Background()

	p := newPhase(f.chantier.ID, "  Carrelage  ", calendar.At(march(11), 11), 2)
	p.AssigneeID = &f.poseur.ID
	require.NoError(t, svc.Create(ctx, p))

	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "Carrelage", p.Title)
	assert.Equal(t, calendar.At(march(11), 14), p.End(), "lunch hour is skipped")

	got := f.get(t, p.ID)
	assert.Equal(t, calendar.At(march(11), 14), got.End())

	hist := f.entries(t, p.ID)
	require.Len(t, hist, 1)
	assert.Equal(t, domain.ChangeCreate, hist[0].ChangeKind)
	assert.Contains(t, hist[0].Description, "Jean Martin")
	assert.Nil(t, hist[0].OldValues)
	assert.True(t, fixedNow.Equal(hist[0].Timestamp))
}

func TestPhaseService_CreateAppendsToChainAndPushesSiblings(t *testing.T) {
	f := newFixture(t)
	svc := f.phaseService(nil)
	ctx := context.Background()

	g := 1
	p := newPhase(f.chantier.ID, "Électricité", calendar.At(march(4), 13), 8)
	p.GroupID = &g
	require.NoError(t, svc.Create(ctx, p))
	assert.Equal(t, 4, p.SequenceNumber)
	assert.Equal(t, calendar.At(march(5), 12), p.End())

	// C started Wednesday 8h, inside the new phase.
	c := f.get(t, f.c.ID)
	assert.Equal(t, calendar.At(march(5), 13), c.Start())

	// B started before the new phase and is left alone.
	assert.Equal(t, calendar.At(march(4), 8), f.get(t, f.b.ID).Start())

	cHist := f.entries(t, f.c.ID)
	require.Len(t, cHist, 1)
	assert.Equal(t, domain.ChangeDateChange, cHist[0].ChangeKind)
}

func TestPhaseService_CreateValidation(t *testing.T) {
	f := newFixture(t)
	svc := f.phaseService(nil)
	ctx := context.Background()

	err := svc.Create(ctx, newPhase(f.chantier.ID, "   ", calendar.At(march(3), 8), 8))
	assert.ErrorIs(t, err, ErrEmptyTitle)

	err = svc.Create(ctx, newPhase(f.chantier.ID, "Negative", calendar.At(march(3), 8), -2))
	assert.ErrorIs(t, err, ErrNonPositiveDuration)

	err = svc.Create(ctx, newPhase("missing", "Orphan", calendar.At(march(3), 8), 8))
	assert.ErrorIs(t, err, repository.ErrNotFound)

	neg := -10.0
	p := newPhase(f.chantier.ID, "Cheap", calendar.At(march(3), 8), 8)
	p.Budget = &neg
	assert.ErrorIs(t, svc.Create(ctx, p), ErrNegativeBudget)
}

func TestPhaseService_CreateRejectsZeroDuration(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p := testutil.NewTestPhase(f.chantier.ID, "Instant", testutil.WithGroup(1),
		testutil.WithSchedule(march(6), 10, 0))
	err := f.phaseService(nil).Create(ctx, p)
	assert.ErrorIs(t, err, ErrNonPositiveDuration)

	phases, err := f.phases.ListByChantier(ctx, f.chantier.ID)
	require.NoError(t, err)
	assert.Len(t, phases, 3, "nothing stored")
}

func TestPhaseService_CreateRollsBackOnHistoryFailure(t *testing.T) {
	f := newFixture(t)
	failUoW := &testutil.FailOnNthExecUoW{DB: f.db, FailOn: 2, Err: fmt.Errorf("injected failure")}
	svc := f.phaseService(failUoW)

	p := newPhase(f.chantier.ID, "Ghost", calendar.At(march(3), 8), 8)
	require.Error(t, svc.Create(context.Background(), p))

	_, err := f.phases.GetByID(context.Background(), p.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestPhaseService_Assign(t *testing.T) {
	f := newFixture(t)
	svc := f.phaseService(nil)
	ctx := context.Background()

	p, err := svc.Assign(ctx, f.b.ID, &f.poseur.ID)
	require.NoError(t, err)
	require.NotNil(t, p.AssigneeID)

	hist := f.entries(t, f.b.ID)
	require.Len(t, hist, 1)
	assert.Equal(t, domain.ChangeAssigneeChange, hist[0].ChangeKind)
	assert.Equal(t, "Assignee unassigned → Jean Martin", hist[0].Description)

	// Same assignee again is a no-op.
	_, err = svc.Assign(ctx, f.b.ID, &f.poseur.ID)
	require.NoError(t, err)
	assert.Len(t, f.entries(t, f.b.ID), 1)

	p, err = svc.Assign(ctx, f.b.ID, nil)
	require.NoError(t, err)
	assert.True(t, p.Unassigned())
	assert.Len(t, f.entries(t, f.b.ID), 2)
	assert.Equal(t, "assign-phase", f.observer.last().Name)
}

func TestPhaseService_SetBudgetAndRename(t *testing.T) {
	f := newFixture(t)
	svc := f.phaseService(nil)
	ctx := context.Background()

	b := 980.5
	p, err := svc.SetBudget(ctx, f.a.ID, &b)
	require.NoError(t, err)
	require.NotNil(t, p.Budget)
	assert.InDelta(t, 980.5, *p.Budget, 1e-9)

	neg := -1.0
	_, err = svc.SetBudget(ctx, f.a.ID, &neg)
	assert.ErrorIs(t, err, ErrNegativeBudget)

	p, err = svc.Rename(ctx, f.a.ID, "Démolition cuisine")
	require.NoError(t, err)
	assert.Equal(t, "Démolition cuisine", p.Title)

	_, err = svc.Rename(ctx, f.a.ID, " ")
	assert.ErrorIs(t, err, ErrEmptyTitle)

	hist := f.entries(t, f.a.ID)
	require.Len(t, hist, 2)
	assert.Equal(t, domain.ChangeBudgetChange, hist[0].ChangeKind)
	assert.Equal(t, domain.ChangeUpdate, hist[1].ChangeKind)
	assert.Equal(t, "Démolition cuisine", f.get(t, f.a.ID).Title)
}

func TestPhaseService_DeleteKeepsHistory(t *testing.T) {
	f := newFixture(t)
	svc := f.phaseService(nil)
	ctx := context.Background()

	require.NoError(t, svc.Delete(ctx, f.b.ID))

	_, err := svc.GetByID(ctx, f.b.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	hist := f.entries(t, f.b.ID)
	require.Len(t, hist, 1)
	assert.Equal(t, domain.ChangeDelete, hist[0].ChangeKind)
	require.NotNil(t, hist[0].OldValues)
	assert.Nil(t, hist[0].NewValues)

	// Siblings are not pulled back.
	assert.Equal(t, calendar.At(march(5), 8), f.get(t, f.c.ID).Start())

	assert.ErrorIs(t, svc.Delete(ctx, f.b.ID), repository.ErrNotFound)
}

func TestPhaseService_ListByChantierAndRange(t *testing.T) {
	f := newFixture(t)
	svc := f.phaseService(nil)
	ctx := context.Background()

	all, err := svc.ListByChantier(ctx, f.chantier.ID)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, f.a.ID, all[0].ID)

	mid, err := svc.ListInRange(ctx, march(4), march(4))
	require.NoError(t, err)
	require.Len(t, mid, 1)
	assert.Equal(t, f.b.ID, mid[0].ID)
}

func TestHistoryService_ListByChantier(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.planning(nil).Reschedule(ctx, RescheduleRequest{
		PhaseID: f.a.ID, Start: calendar.At(march(3), 8), DurationHours: 12,
	})
	require.NoError(t, err)

	svc := NewHistoryService(f.history)
	entries, err := svc.ListByChantier(ctx, f.chantier.ID, 0)
	require.NoError(t, err)
	assert.Len(t, entries, 3)

	one, err := svc.ListByPhase(ctx, f.c.ID)
	require.NoError(t, err)
	require.Len(t, one, 1)
	assert.Equal(t, f.chantier.ID, one[0].ChantierID)
}
