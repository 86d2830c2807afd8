package cli

import (
	"testing"

	"github.com/alexanderramin/chantier/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHourValue(t *testing.T) {
	var h int
	v := newHourValue(&h)
	for in, want := range map[string]int{"14": 14, "14h": 14, "9:00": 9, "": 8, "22": 8} {
		require.NoError(t, v.Set(in))
		assert.Equal(t, want, h, in)
	}
}

func TestDateValue(t *testing.T) {
	d := march(1)
	v := newDateValue(&d)
	require.NoError(t, v.Set("2025-03-10"))
	assert.Equal(t, march(10), d)
	assert.Equal(t, "2025-03-10", v.String())
	assert.Error(t, v.Set("10/03/2025"))
}

func TestMondayOf(t *testing.T) {
	assert.Equal(t, march(3), mondayOf(march(3)))
	assert.Equal(t, march(3), mondayOf(march(7)))
	assert.Equal(t, march(3), mondayOf(march(9)))
}

func TestBoardWindowDefaults(t *testing.T) {
	app := &App{}
	var b boardFlags
	from, to, width := b.window(app, march(5))
	assert.Equal(t, march(3), from)
	assert.Equal(t, march(16), to)
	assert.Equal(t, 120.0, width)
}

func TestParseBudget(t *testing.T) {
	got, err := parseBudget("1250,5")
	require.NoError(t, err)
	assert.InDelta(t, 1250.5, *got, 1e-9)

	got, err = parseBudget("300 €")
	require.NoError(t, err)
	assert.InDelta(t, 300.0, *got, 1e-9)

	got, err = parseBudget("none")
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = parseBudget("lots")
	assert.Error(t, err)
}

func TestBoardLanes(t *testing.T) {
	jean, paul := "p1", "p2"
	ghost := "p9"
	poseurs := []*domain.Poseur{{ID: jean, Name: "Jean"}, {ID: paul, Name: "Paul"}}
	phases := []domain.WorkPhase{
		{ID: "a", AssigneeID: &jean},
		{ID: "b"},
		{ID: "c", AssigneeID: &ghost},
	}

	lanes := boardLanes(poseurs, phases)
	require.Len(t, lanes, 3)
	assert.Equal(t, "Jean", lanes[0].Name)
	assert.Len(t, lanes[0].Phases, 1)
	assert.Empty(t, lanes[1].Phases)
	assert.Equal(t, "unassigned", lanes[2].Name)
	assert.Len(t, lanes[2].Phases, 2)
}
