package formatter

import (
	"github.com/alexanderramin/chantier/internal/calendar"
	"github.com/alexanderramin/chantier/internal/timeline"
)

// FormatWorkingDays lists working days with their board offset.
func FormatWorkingDays(days []calendar.WorkingDay, columnWidth float64) string {
	if len(days) == 0 {
		return Dim("No working days in range.")
	}
	headers := []string{"DATE", "X", "NOTE"}
	rows := make([][]string, 0, len(days))
	for _, d := range days {
		note := ""
		switch {
		case d.IsHoliday:
			note = StyleRed.Render("holiday")
		case d.FollowsWeekend:
			note = Dim("after weekend")
		}
		x := timeline.DateTimeToPixels(calendar.At(d.Date, calendar.MorningStart), columnWidth, days)
		rows = append(rows, []string{FormatDate(d.Date), formatPx(x), note})
	}
	return RenderTableAligned(headers, rows, map[int]bool{1: true})
}

func formatPx(x float64) string {
	return trimFloat(x) + "px"
}
