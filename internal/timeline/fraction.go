package timeline

import (
	"math"

	"github.com/alexanderramin/chantier/internal/calendar"
)

// HourToFraction maps an hour to its horizontal position inside a day
// column, 0 at the morning start and 1 at the end of the afternoon. The
// morning and the afternoon each take half the column; the lunch hour
// collapses onto the midpoint.
func HourToFraction(hour float64) float64 {
	switch {
	case hour <= calendar.MorningStart:
		return 0
	case hour >= calendar.AfternoonEnd:
		return 1
	case hour <= calendar.MorningEnd:
		return (hour - calendar.MorningStart) / calendar.HoursPerDay
	case hour < calendar.AfternoonStart:
		return 0.5
	default:
		return 0.5 + (hour-calendar.AfternoonStart)/calendar.HoursPerDay
	}
}

// FractionToHour is the inverse of HourToFraction. The midpoint resolves to
// the afternoon start, so 0.5 reads as 13 rather than 12.
func FractionToHour(fraction float64) float64 {
	switch {
	case fraction <= 0:
		return calendar.MorningStart
	case fraction >= 1:
		return calendar.AfternoonEnd
	case fraction < 0.5:
		return calendar.MorningStart + fraction*calendar.HoursPerDay
	default:
		return calendar.AfternoonStart + (fraction-0.5)*calendar.HoursPerDay
	}
}

// SnapToValidHour returns the member of calendar.ValidHours closest to hour.
// Ties go to the smaller hour.
func SnapToValidHour(hour float64) int {
	best := calendar.ValidHours[0]
	bestDist := math.Abs(hour - float64(best))
	for _, h := range calendar.ValidHours[1:] {
		if d := math.Abs(hour - float64(h)); d < bestDist {
			best, bestDist = h, d
		}
	}
	return best
}

// HoursToPixels converts a duration in working hours into a width.
func HoursToPixels(hours, columnWidth float64) float64 {
	return hours / calendar.HoursPerDay * columnWidth
}

// PixelsToHours converts a width into a whole number of working hours,
// never less than one.
func PixelsToHours(width, columnWidth float64) int {
	if columnWidth <= 0 {
		return 1
	}
	h := int(math.Round(width / columnWidth * calendar.HoursPerDay))
	return max(1, h)
}

// roundFraction trims float noise so that a fraction computed from a pixel
// offset lands exactly on the slot it was derived from.
func roundFraction(f float64) float64 {
	return math.Round(f*1e9) / 1e9
}
