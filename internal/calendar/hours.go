package calendar

import (
	"strconv"
	"strings"
)

// Working-day boundaries. The morning and afternoon blocks are four hours each;
// the hour between MorningEnd and AfternoonStart is an unpaid lunch break.
const (
	MorningStart   = 8
	MorningEnd     = 12
	AfternoonStart = 13
	AfternoonEnd   = 17

	HoursPerDay = (MorningEnd - MorningStart) + (AfternoonEnd - AfternoonStart)
)

// ValidHours is the ascending set of hours a phase may start on once snapped.
var ValidHours = []int{8, 9, 10, 11, 13, 14, 15, 16}

// NormalizeHour returns h when it lies inside the working window [8,17],
// MorningStart otherwise.
func NormalizeHour(h int) int {
	if h < MorningStart || h > AfternoonEnd {
		return MorningStart
	}
	return h
}

// ParseHour reads an hour field coming from UI or storage. Empty and
// unparseable values fall back to MorningStart. Values such as "8:00" or
// "08h" are accepted by reading the leading digits.
func ParseHour(s string) int {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return MorningStart
	}
	h, err := strconv.Atoi(s[:end])
	if err != nil {
		return MorningStart
	}
	return NormalizeHour(h)
}

// clampStartHour moves an hour into the working window. The second return
// value is true when the hour rolled over to the next day.
func clampStartHour(h int) (int, bool) {
	switch {
	case h < MorningStart:
		return MorningStart, false
	case h >= MorningEnd && h < AfternoonStart:
		return AfternoonStart, false
	case h >= AfternoonEnd:
		return MorningStart, true
	default:
		return h, false
	}
}
