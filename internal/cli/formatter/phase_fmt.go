package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/chantier/internal/domain"
	"github.com/alexanderramin/chantier/internal/history"
)

// Assignee renders a poseur name, the raw id when unknown, or a dimmed
// "unassigned".
func Assignee(id *string, names history.NameLookup) string {
	if id == nil || *id == "" {
		return Dim("unassigned")
	}
	if names != nil {
		if name, ok := names.PoseurName(*id); ok {
			return name
		}
	}
	return TruncID(*id)
}

func group(p domain.WorkPhase) string {
	if p.GroupID == nil {
		return Dim("--")
	}
	return fmt.Sprintf("%d.%d", *p.GroupID, p.SequenceNumber)
}

// FormatPhaseList renders the phases of one chantier.
func FormatPhaseList(title string, phases []domain.WorkPhase, names history.NameLookup) string {
	headers := []string{"ID", "CHAIN", "TITLE", "SCHEDULE", "DURATION", "ASSIGNEE", "BUDGET"}
	rows := make([][]string, 0, len(phases))
	for _, p := range phases {
		rows = append(rows, []string{
			TruncID(p.ID),
			group(p),
			Bold(p.Title),
			FormatSpan(p.Start(), p.End()),
			FormatHours(p.DurationHours),
			Assignee(p.AssigneeID, names),
			FormatBudget(p.Budget),
		})
	}
	return RenderBox(title, RenderTableAligned(headers, rows, map[int]bool{4: true, 6: true}))
}

// FormatPhaseDetail renders one phase with its history underneath.
func FormatPhaseDetail(p domain.WorkPhase, entries []domain.HistoryEntry, names history.NameLookup) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", Bold(p.Title))
	fmt.Fprintf(&b, "%s %s\n", Dim("id        "), p.ID)
	fmt.Fprintf(&b, "%s %s\n", Dim("chain     "), group(p))
	fmt.Fprintf(&b, "%s %s\n", Dim("start     "), FormatInstant(p.Start()))
	fmt.Fprintf(&b, "%s %s\n", Dim("end       "), FormatInstant(p.End()))
	fmt.Fprintf(&b, "%s %s (%dh)\n", Dim("duration  "), FormatHours(p.DurationHours), p.DurationHours)
	fmt.Fprintf(&b, "%s %s\n", Dim("assignee  "), Assignee(p.AssigneeID, names))
	fmt.Fprintf(&b, "%s %s", Dim("budget    "), FormatBudget(p.Budget))

	out := RenderBox("Phase", b.String())
	if len(entries) > 0 {
		out += "\n\n" + FormatHistory(entries)
	}
	return out
}

// FormatPlanResult summarizes a planning operation: the moved phase and
// every phase shifted after it.
func FormatPlanResult(p domain.WorkPhase, shifted []domain.PhaseUpdate, titles map[string]string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s  %s\n", StyleGreen.Render("✔"), Bold(p.Title), FormatSpan(p.Start(), p.End()))
	if len(shifted) == 0 {
		b.WriteString(Dim("  no other phase moved"))
		return b.String()
	}
	for _, u := range shifted {
		title := titles[u.PhaseID]
		if title == "" {
			title = u.PhaseID
		}
		fmt.Fprintf(&b, "  %s %s  %s\n", StyleYellow.Render("↳"), title, FormatSpan(u.Start, u.End))
	}
	return strings.TrimRight(b.String(), "\n")
}
