package formatter

import "github.com/alexanderramin/chantier/internal/domain"

// FormatHistory renders history entries in the order given.
func FormatHistory(entries []domain.HistoryEntry) string {
	if len(entries) == 0 {
		return Dim("No history.")
	}
	headers := []string{"WHEN", "CHANGE", "ACTOR", "DESCRIPTION"}
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		actor := e.ActorID
		if actor == "" {
			actor = Dim("--")
		}
		rows = append(rows, []string{
			FormatTimestamp(e.Timestamp),
			ChangeKindBadge(e.ChangeKind),
			actor,
			e.Description,
		})
	}
	return Header("History") + "\n" + RenderTable(headers, rows)
}
