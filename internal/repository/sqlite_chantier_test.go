package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/chantier/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChantierRepo_CreateGetList(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteChantierRepo(database)
	ctx := context.Background()

	b := testutil.NewTestChantier("Maison Bernard")
	a := testutil.NewTestChantier("Appartement Arnaud")
	require.NoError(t, repo.Create(ctx, b))
	require.NoError(t, repo.Create(ctx, a))

	got, err := repo.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "Maison Bernard", got.Name)
	assert.Equal(t, b.Address, got.Address)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Appartement Arnaud", all[0].Name, "listed by name")
}

func TestChantierRepo_GetByID_NotFound(t *testing.T) {
	database := testutil.NewTestDB(t)
	_, err := NewSQLiteChantierRepo(database).GetByID(context.Background(), "nonexistent")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "not found")
}

func TestChantierRepo_DeleteCascadesToPhases(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	chantiers := NewSQLiteChantierRepo(database)
	phases := NewSQLitePhaseRepo(database)

	c := testutil.NewTestChantier("Démolition")
	require.NoError(t, chantiers.Create(ctx, c))
	p := testutil.NewTestPhase(c.ID, "Gros oeuvre")
	require.NoError(t, phases.Create(ctx, p))

	require.NoError(t, chantiers.Delete(ctx, c.ID))

	_, err := phases.GetByID(ctx, p.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPoseurRepo_DeleteUnassignsPhases(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	c := seedChantier(t, database)

	poseur := testutil.NewTestPoseur("")
	require.NoError(t, NewSQLitePoseurRepo(database).Create(ctx, poseur))
	p := testutil.NewTestPhase(c.ID, "Pose", testutil.WithAssignee(poseur.ID))
	require.NoError(t, NewSQLitePhaseRepo(database).Create(ctx, p))

	_, err := database.Exec(`DELETE FROM poseurs WHERE id = ?`, poseur.ID)
	require.NoError(t, err)

	got, err := NewSQLitePhaseRepo(database).GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Nil(t, got.AssigneeID)
}

func TestPoseurRepo_ListAndGet(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLitePoseurRepo(database)
	ctx := context.Background()

	z := testutil.NewTestPoseur("Zoé Petit")
	m := testutil.NewTestPoseur("Marc Durand")
	require.NoError(t, repo.Create(ctx, z))
	require.NoError(t, repo.Create(ctx, m))

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Marc Durand", all[0].Name)

	got, err := repo.GetByID(ctx, z.ID)
	require.NoError(t, err)
	assert.Equal(t, "Zoé Petit", got.Name)

	_, err = repo.GetByID(ctx, "ghost")
	assert.ErrorIs(t, err, ErrNotFound)
}
