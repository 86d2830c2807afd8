package formatter

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/alexanderramin/chantier/internal/calendar"
	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		titleRendered := StyleHeader.Render(strings.ToUpper(title))
		inner := titleRendered + "\n\n" + content
		return boxStyle.Render(inner)
	}

	return boxStyle.Render(content)
}

var weekdayAbbrev = [...]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// FormatDate renders a date with its weekday, e.g. "Mon 2025-03-03".
func FormatDate(d civil.Date) string {
	return fmt.Sprintf("%s %s", weekdayAbbrev[calendar.Weekday(d)], d)
}

// FormatInstant renders an instant as "Mon 2025-03-03 08h".
func FormatInstant(i calendar.Instant) string {
	return fmt.Sprintf("%s %02dh", FormatDate(i.Date), i.Hour)
}

// FormatSpan renders "start → end", collapsing the end date when it is
// the same day.
func FormatSpan(start, end calendar.Instant) string {
	if start.Date == end.Date {
		return fmt.Sprintf("%s → %02dh", FormatInstant(start), end.Hour)
	}
	return fmt.Sprintf("%s → %s", FormatInstant(start), FormatInstant(end))
}

// FormatHours renders a working-hour duration as days and hours, e.g.
// "1d 4h" for 12.
func FormatHours(h int) string {
	if h <= 0 {
		return "0h"
	}
	days, rest := h/calendar.HoursPerDay, h%calendar.HoursPerDay
	switch {
	case days > 0 && rest > 0:
		return fmt.Sprintf("%dd %dh", days, rest)
	case days > 0:
		return fmt.Sprintf("%dd", days)
	default:
		return fmt.Sprintf("%dh", rest)
	}
}

// FormatBudget renders an optional amount in euros.
func FormatBudget(b *float64) string {
	if b == nil {
		return Dim("--")
	}
	return fmt.Sprintf("%.2f €", *b)
}

// FormatTimestamp renders a history timestamp in local time.
func FormatTimestamp(t time.Time) string {
	return t.Local().Format("2006-01-02 15:04")
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// trimFloat renders f with at most two decimals and no trailing zeros.
func trimFloat(f float64) string {
	s := strconv.FormatFloat(f, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

// FormatPixels renders a pixel offset such as "691.5px".
func FormatPixels(x float64) string {
	return formatPx(x)
}
