package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/chantier/internal/domain"
	"github.com/alexanderramin/chantier/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryRepo_AppendAndListByPhase(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteHistoryRepo(database)
	ctx := context.Background()

	p := testutil.NewTestPhase("ch-1", "Électricité", testutil.WithBudget(400))
	moved := *p
	moved.Title = "Électricité cuisine"

	t0 := time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC)
	entries := []domain.HistoryEntry{
		{ID: uuid.NewString(), PhaseID: p.ID, ChantierID: "ch-1", ActorID: "alice",
			Timestamp: t0, ChangeKind: domain.ChangeCreate, Description: "created",
			NewValues: domain.SnapshotOf(p)},
		{ID: uuid.NewString(), PhaseID: p.ID, ChantierID: "ch-1", ActorID: "bob",
			Timestamp: t0.Add(time.Hour), ChangeKind: domain.ChangeUpdate, Description: "renamed",
			OldValues: domain.SnapshotOf(p), NewValues: domain.SnapshotOf(&moved)},
	}
	for i := range entries {
		require.NoError(t, repo.Append(ctx, &entries[i]))
	}

	got, err := repo.ListByPhase(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, domain.ChangeCreate, got[0].ChangeKind)
	assert.Nil(t, got[0].OldValues)
	require.NotNil(t, got[0].NewValues)
	assert.Equal(t, p.StartDate, got[0].NewValues.StartDate)
	require.NotNil(t, got[0].NewValues.Budget)
	assert.InDelta(t, 400, *got[0].NewValues.Budget, 1e-9)

	assert.Equal(t, "bob", got[1].ActorID)
	assert.Equal(t, "Électricité cuisine", got[1].NewValues.Title)
	assert.True(t, got[1].Timestamp.Equal(t0.Add(time.Hour)))
}

func TestHistoryRepo_ListByChantier_NewestFirstWithLimit(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteHistoryRepo(database)
	ctx := context.Background()

	t0 := time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		e := domain.HistoryEntry{
			ID: uuid.NewString(), PhaseID: "p", ChantierID: "ch-1",
			Timestamp: t0.Add(time.Duration(i) * time.Minute), ChangeKind: domain.ChangeDateChange,
			Description: string(rune('a' + i)),
		}
		require.NoError(t, repo.Append(ctx, &e))
	}
	other := domain.HistoryEntry{ID: uuid.NewString(), PhaseID: "q", ChantierID: "ch-2",
		Timestamp: t0, ChangeKind: domain.ChangeCreate}
	require.NoError(t, repo.Append(ctx, &other))

	got, err := repo.ListByChantier(ctx, "ch-1", 3)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "e", got[0].Description)
	assert.Equal(t, "c", got[2].Description)

	all, err := repo.ListByChantier(ctx, "ch-1", 0)
	require.NoError(t, err)
	assert.Len(t, all, 5)
}

func TestHistoryRepo_SurvivesPhaseDeletion(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	c := seedChantier(t, database)
	phases := NewSQLitePhaseRepo(database)
	repo := NewSQLiteHistoryRepo(database)

	p := testutil.NewTestPhase(c.ID, "Temporary")
	require.NoError(t, phases.Create(ctx, p))
	e := domain.HistoryEntry{ID: uuid.NewString(), PhaseID: p.ID, ChantierID: c.ID,
		Timestamp: time.Now(), ChangeKind: domain.ChangeDelete, OldValues: domain.SnapshotOf(p)}
	require.NoError(t, repo.Append(ctx, &e))
	require.NoError(t, phases.Delete(ctx, p.ID))

	got, err := repo.ListByPhase(ctx, p.ID)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestHistoryRepo_AppendRejectsUnknownKind(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteHistoryRepo(database)
	ctx := context.Background()

	err := repo.Append(ctx, &domain.HistoryEntry{
		ID: uuid.NewString(), PhaseID: "ph-1", ChantierID: "ch-1",
		Timestamp: time.Now(), ChangeKind: "moved",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown change kind "moved"`)

	got, err := repo.ListByPhase(ctx, "ph-1")
	require.NoError(t, err)
	assert.Empty(t, got)
}
