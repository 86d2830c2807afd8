package formatter

import (
	"strings"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/alexanderramin/chantier/internal/calendar"
	"github.com/alexanderramin/chantier/internal/domain"
	"github.com/alexanderramin/chantier/internal/history"
	"github.com/alexanderramin/chantier/internal/timeline"
	"github.com/stretchr/testify/assert"
)

func date(day int) civil.Date {
	return civil.Date{Year: 2025, Month: time.March, Day: day}
}

func TestFormatHours(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{0, "0h"},
		{-3, "0h"},
		{4, "4h"},
		{8, "1d"},
		{12, "1d 4h"},
		{40, "5d"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatHours(tt.in), "hours %d", tt.in)
	}
}

func TestFormatInstantAndSpan(t *testing.T) {
	assert.Equal(t, "Mon 2025-03-03 08h", FormatInstant(calendar.At(date(3), 8)))
	assert.Equal(t, "Tue 2025-03-04 13h → 17h", FormatSpan(calendar.At(date(4), 13), calendar.At(date(4), 17)))
	assert.Equal(t, "Fri 2025-03-07 16h → Mon 2025-03-10 09h",
		FormatSpan(calendar.At(date(7), 16), calendar.At(date(10), 9)))
}

func TestTrimFloat(t *testing.T) {
	assert.Equal(t, "691.5", trimFloat(691.5))
	assert.Equal(t, "504", trimFloat(504))
	assert.Equal(t, "0", trimFloat(0))
	assert.Equal(t, "33.33", trimFloat(33.333333))
	assert.Equal(t, "120px", FormatPixels(120))
}

func TestRenderTableAligned_RightAlignsColumn(t *testing.T) {
	out := RenderTableAligned([]string{"NAME", "X"}, [][]string{{"a", "5"}, {"b", "500"}}, map[int]bool{1: true})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 4)
	assert.True(t, strings.HasSuffix(lines[2], "  5"), "short value padded on the left: %q", lines[2])
	assert.True(t, strings.HasSuffix(lines[3], "500"))
}

func TestChangeKindBadge(t *testing.T) {
	assert.Contains(t, ChangeKindBadge(domain.ChangeDateChange), "DATES")
	assert.Contains(t, ChangeKindBadge(domain.ChangeCreate), "CREATED")
	assert.Contains(t, ChangeKindBadge(domain.ChangeKind("other")), "UPDATED")
}

func TestFormatPhaseList(t *testing.T) {
	g := 2
	who := "pos-1"
	b := 980.5
	phases := []domain.WorkPhase{{
		ID: "0123456789", Title: "Carrelage", GroupID: &g, SequenceNumber: 3,
		StartDate: date(3), StartHour: 8, EndDate: date(4), EndHour: 12, DurationHours: 12,
		AssigneeID: &who, Budget: &b,
	}}
	out := FormatPhaseList("Chantier", phases, history.Names{"pos-1": "Jean Martin"})
	assert.Contains(t, out, "Carrelage")
	assert.Contains(t, out, "2.3")
	assert.Contains(t, out, "1d 4h")
	assert.Contains(t, out, "Jean Martin")
	assert.Contains(t, out, "980.50 €")
	assert.Contains(t, out, "01234567")
	assert.NotContains(t, out, "0123456789")
}

func TestAssignee(t *testing.T) {
	who := "abcdefghijk"
	assert.Contains(t, Assignee(nil, nil), "unassigned")
	assert.Contains(t, Assignee(&who, history.Names{}), "abcdefgh")
}

func TestFormatPlanResult(t *testing.T) {
	p := domain.WorkPhase{Title: "A", StartDate: date(3), StartHour: 8, EndDate: date(4), EndHour: 12}
	out := FormatPlanResult(p, []domain.PhaseUpdate{
		{PhaseID: "b", Start: calendar.At(date(4), 13), End: calendar.At(date(5), 12)},
	}, map[string]string{"b": "Cloisons"})
	assert.Contains(t, out, "Cloisons")
	assert.Contains(t, out, "Tue 2025-03-04 13h → Wed 2025-03-05 12h")

	assert.Contains(t, FormatPlanResult(p, nil, nil), "no other phase moved")
}

func TestFormatHistory(t *testing.T) {
	assert.Contains(t, FormatHistory(nil), "No history")
	out := FormatHistory([]domain.HistoryEntry{{
		Timestamp: time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC), ChangeKind: domain.ChangeBudgetChange,
		ActorID: "alice", Description: "Budget none → 980.50",
	}})
	assert.Contains(t, out, "BUDGET")
	assert.Contains(t, out, "alice")
	assert.Contains(t, out, "Budget none → 980.50")
}

func TestFormatBoard(t *testing.T) {
	layout := timeline.NewLayout(calendar.Default(), date(3), date(7), 100)
	phases := []domain.WorkPhase{{
		Title: "Cloisons", StartDate: date(4), StartHour: 8, EndDate: date(4), EndHour: 17, DurationHours: 8,
	}}
	out := FormatBoard(layout, []BoardLane{{Name: "Jean Martin", Phases: phases}, {Name: "Unassigned"}})

	assert.Contains(t, out, "BOARD")
	assert.Contains(t, out, "Mo 03")
	assert.Contains(t, out, "Fr 07")
	assert.Contains(t, out, "Jean Martin")
	assert.Contains(t, out, strings.Repeat("█", CellChars))
	assert.Contains(t, out, "Cloisons")
	assert.Contains(t, out, "Unassigned")

	assert.Contains(t, FormatBoard(timeline.Layout{}, nil), "No working days")
}

func TestFormatWorkingDays(t *testing.T) {
	days := calendar.Default().WorkingDays(date(7), date(10))
	out := FormatWorkingDays(days, 100)
	assert.Contains(t, out, "Fri 2025-03-07")
	assert.Contains(t, out, "Mon 2025-03-10")
	assert.Contains(t, out, "104px")
	assert.Contains(t, out, "after weekend")
}
