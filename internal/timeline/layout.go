// Package timeline maps the planning board's horizontal pixel axis to
// working time and back. Each working day occupies one fixed-width column;
// a narrow separator precedes any day that follows a weekend.
package timeline

import (
	"math"

	"cloud.google.com/go/civil"
	"github.com/alexanderramin/chantier/internal/calendar"
)

// SeparatorWidth is the visual gap inserted before a day that follows a weekend.
const SeparatorWidth = 4.0

// MaxPhaseHours bounds the length of a phase when resizing: one working week.
const MaxPhaseHours = 5 * calendar.HoursPerDay

// DateTimeToPixels returns the x offset of (date, hour) on the board. It
// returns 0 when date is not one of the listed days.
func DateTimeToPixels(inst calendar.Instant, columnWidth float64, days []calendar.WorkingDay) float64 {
	idx := -1
	for i, d := range days {
		if d.Date == inst.Date {
			idx = i
			break
		}
	}
	if idx < 0 {
		return 0
	}

	x := 0.0
	for i := 0; i <= idx; i++ {
		if days[i].FollowsWeekend {
			x += SeparatorWidth
		}
		if i < idx {
			x += columnWidth
		}
	}
	return x + HourToFraction(float64(inst.Hour))*columnWidth
}

// PixelsToDateTime resolves an x offset to the day column containing it and
// the nearest valid hour inside that day. Offsets past the last column clamp
// to the end of the last day; offsets before the first column clamp to its
// morning start. The boolean is false when there is no layout to resolve
// against.
func PixelsToDateTime(x, columnWidth float64, days []calendar.WorkingDay) (calendar.Instant, bool) {
	if len(days) == 0 || columnWidth <= 0 {
		return calendar.Instant{}, false
	}

	cursor := 0.0
	for _, d := range days {
		if d.FollowsWeekend {
			cursor += SeparatorWidth
		}
		if x < cursor+columnWidth {
			frac := roundFraction((x - cursor) / columnWidth)
			frac = math.Max(0, math.Min(frac, 1))
			return calendar.At(d.Date, SnapToValidHour(FractionToHour(frac))), true
		}
		cursor += columnWidth
	}

	last := days[len(days)-1]
	return calendar.At(last.Date, calendar.AfternoonEnd), true
}

// SnapGrid is the drag/resize increment: one working hour.
func SnapGrid(columnWidth float64) float64 {
	return columnWidth / calendar.HoursPerDay
}

// SnapToGrid rounds x to the nearest grid increment.
func SnapToGrid(x, columnWidth float64) float64 {
	g := SnapGrid(columnWidth)
	if g <= 0 {
		return x
	}
	return math.Round(x/g) * g
}

// MinPhaseWidth is the width of a one-hour phase.
func MinPhaseWidth(columnWidth float64) float64 {
	return HoursToPixels(1, columnWidth)
}

// MaxPhaseWidth is the width of a MaxPhaseHours phase.
func MaxPhaseWidth(columnWidth float64) float64 {
	return HoursToPixels(MaxPhaseHours, columnWidth)
}

// ClampPhaseWidth bounds a resize width to [MinPhaseWidth, MaxPhaseWidth].
func ClampPhaseWidth(width, columnWidth float64) float64 {
	return math.Max(MinPhaseWidth(columnWidth), math.Min(width, MaxPhaseWidth(columnWidth)))
}

// Layout bundles a column width with the visible working days.
type Layout struct {
	ColumnWidth float64
	Days        []calendar.WorkingDay
}

// NewLayout builds the layout for the visible range [from, to].
func NewLayout(cal *calendar.Calendar, from, to civil.Date, columnWidth float64) Layout {
	return Layout{ColumnWidth: columnWidth, Days: cal.WorkingDays(from, to)}
}

// Valid reports whether the layout can resolve positions.
func (l Layout) Valid() bool {
	return len(l.Days) > 0 && l.ColumnWidth > 0
}

// X returns the x offset of inst.
func (l Layout) X(inst calendar.Instant) float64 {
	return DateTimeToPixels(inst, l.ColumnWidth, l.Days)
}

// Locate resolves x to a snapped instant.
func (l Layout) Locate(x float64) (calendar.Instant, bool) {
	return PixelsToDateTime(x, l.ColumnWidth, l.Days)
}

// Span returns the x offset and width of the bar drawn from start to end.
func (l Layout) Span(start, end calendar.Instant) (x, width float64) {
	x = l.X(start)
	return x, math.Max(0, l.X(end)-x)
}

// Width returns the total width of the board.
func (l Layout) Width() float64 {
	w := 0.0
	for _, d := range l.Days {
		if d.FollowsWeekend {
			w += SeparatorWidth
		}
		w += l.ColumnWidth
	}
	return w
}
