package formatter

import (
	"fmt"
	"math"
	"strings"

	"github.com/alexanderramin/chantier/internal/calendar"
	"github.com/alexanderramin/chantier/internal/domain"
	"github.com/alexanderramin/chantier/internal/timeline"
)

// CellChars is how many terminal columns one day occupies on the board.
const CellChars = 10

// BoardLane is one row of the board: a poseur, or the unassigned lane.
type BoardLane struct {
	Name   string
	Phases []domain.WorkPhase
}

// FormatBoard renders lanes of phase bars over the layout's working days.
// Bars are positioned with the same pixel math the planning board uses,
// then scaled to terminal columns.
func FormatBoard(layout timeline.Layout, lanes []BoardLane) string {
	if !layout.Valid() {
		return Dim("No working days in range.")
	}
	total := toChars(layout.Width(), layout.ColumnWidth)

	var b strings.Builder
	b.WriteString(Header("Board") + "\n")

	labelWidth := 12
	for _, l := range lanes {
		labelWidth = max(labelWidth, len([]rune(l.Name)))
	}

	ruler := []rune(strings.Repeat(" ", total+1))
	for _, d := range layout.Days {
		pos := toChars(layout.X(calendar.At(d.Date, calendar.MorningStart)), layout.ColumnWidth)
		label := []rune(fmt.Sprintf("%s %02d", weekdayAbbrev[calendar.Weekday(d.Date)][:2], d.Date.Day))
		if d.IsHoliday {
			label = append(label, '*')
		}
		for i, r := range label {
			if pos+i < len(ruler) {
				ruler[pos+i] = r
			}
		}
	}
	fmt.Fprintf(&b, "%-*s %s\n", labelWidth, "", Dim(string(ruler)))

	for _, lane := range lanes {
		if len(lane.Phases) == 0 {
			fmt.Fprintf(&b, "%-*s %s\n", labelWidth, lane.Name, Dim("·"))
			continue
		}
		for i, p := range lane.Phases {
			name := ""
			if i == 0 {
				name = lane.Name
			}
			fmt.Fprintf(&b, "%-*s %s %s\n", labelWidth, name, bar(layout, p, total), p.Title)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func bar(layout timeline.Layout, p domain.WorkPhase, total int) string {
	x, w := layout.Span(p.Start(), p.End())
	start := toChars(x, layout.ColumnWidth)
	width := max(1, toChars(w, layout.ColumnWidth))
	start = min(start, total)
	width = min(width, total-start)

	line := strings.Repeat(" ", start) + StyleBlue.Render(strings.Repeat("█", max(width, 0)))
	return line + strings.Repeat(" ", max(0, total-start-width))
}

func toChars(px, columnWidth float64) int {
	return int(math.Round(px / columnWidth * CellChars))
}
