// Package calendar models the working calendar used to place phases: which
// days are worked, how a duration in working hours is consumed across
// mornings, afternoons and days, and how working days are enumerated for a
// visible range.
package calendar

import (
	"errors"
	"fmt"

	"cloud.google.com/go/civil"
)

// ErrNegativeDuration is returned when a duration below zero is consumed.
var ErrNegativeDuration = errors.New("duration must not be negative")

// Calendar answers working-day questions against a fixed holiday set.
// A Calendar is immutable once built and safe for concurrent use.
type Calendar struct {
	holidays map[string]struct{}
}

// New builds a Calendar from YYYY-MM-DD holiday strings.
func New(holidays ...string) (*Calendar, error) {
	c := &Calendar{holidays: make(map[string]struct{}, len(holidays))}
	for _, h := range holidays {
		d, err := ParseDate(h)
		if err != nil {
			return nil, fmt.Errorf("holiday: %w", err)
		}
		c.holidays[d.String()] = struct{}{}
	}
	return c, nil
}

var defaultCalendar = mustDefault()

func mustDefault() *Calendar {
	c, err := New(frenchHolidays...)
	if err != nil {
		panic(err)
	}
	return c
}

// Default returns the calendar backed by the built-in holiday table.
func Default() *Calendar {
	return defaultCalendar
}

// Holidays returns the holiday dates in no particular order.
func (c *Calendar) Holidays() []string {
	out := make([]string, 0, len(c.holidays))
	for k := range c.holidays {
		out = append(out, k)
	}
	return out
}

// IsHoliday reports whether d is in the holiday table.
func (c *Calendar) IsHoliday(d civil.Date) bool {
	_, ok := c.holidays[d.String()]
	return ok
}

// IsWorkingDay reports whether d is a weekday that is not a holiday.
func (c *Calendar) IsWorkingDay(d civil.Date) bool {
	return !isWeekend(d) && !c.IsHoliday(d)
}

// NextWorkingDay returns the first working day strictly after d.
func (c *Calendar) NextWorkingDay(d civil.Date) civil.Date {
	next := d.AddDays(1)
	for !c.IsWorkingDay(next) {
		next = next.AddDays(1)
	}
	return next
}

// firstWorkingDay returns d itself when it is worked, the next working day otherwise.
func (c *Calendar) firstWorkingDay(d civil.Date) civil.Date {
	for !c.IsWorkingDay(d) {
		d = d.AddDays(1)
	}
	return d
}

// NormalizeStart moves a start instant onto the first workable hour at or
// after it: hours before the morning snap to 8, the lunch gap snaps to 13,
// hours at or past 17 roll to the next day, and non-working days are skipped.
func (c *Calendar) NormalizeStart(start Instant) Instant {
	hour, rolled := clampStartHour(start.Hour)
	d := start.Date
	if rolled {
		d = d.AddDays(1)
	}
	return Instant{Date: c.firstWorkingDay(d), Hour: hour}
}

// ComputeEndInstant consumes durationHours working hours starting at
// (startDate, startHour) and returns the instant at which the remaining
// duration reaches zero. The lunch hour never counts toward the duration.
// A zero duration returns the normalized start.
func (c *Calendar) ComputeEndInstant(startDate civil.Date, startHour, durationHours int) (Instant, error) {
	if durationHours < 0 {
		return Instant{}, fmt.Errorf("computing end from %s: %w", startDate, ErrNegativeDuration)
	}

	cur := c.NormalizeStart(Instant{Date: startDate, Hour: startHour})
	remaining := durationHours
	for remaining > 0 {
		if cur.Hour < MorningEnd {
			avail := MorningEnd - cur.Hour
			if remaining <= avail {
				cur.Hour += remaining
				return cur, nil
			}
			remaining -= avail
			cur.Hour = AfternoonStart
		}

		avail := AfternoonEnd - cur.Hour
		if remaining <= avail {
			cur.Hour += remaining
			return cur, nil
		}
		remaining -= avail
		cur = Instant{Date: c.NextWorkingDay(cur.Date), Hour: MorningStart}
	}
	return cur, nil
}

// CountWorkingDays counts working days in the inclusive range [start, end].
func (c *Calendar) CountWorkingDays(start, end civil.Date) int {
	n := 0
	for d := start; !d.After(end); d = d.AddDays(1) {
		if c.IsWorkingDay(d) {
			n++
		}
	}
	return n
}

// WorkingDay is one column of the planning timeline.
type WorkingDay struct {
	Date           civil.Date
	IsHoliday      bool
	FollowsWeekend bool
}

// WorkingDays lists the weekdays in [from, to] in calendar order. Weekends
// are elided; holidays stay in the list and are flagged. FollowsWeekend marks
// a day whose predecessor in the list is not the previous calendar day.
func (c *Calendar) WorkingDays(from, to civil.Date) []WorkingDay {
	var days []WorkingDay
	var prev civil.Date
	for d := from; !d.After(to); d = d.AddDays(1) {
		if isWeekend(d) {
			continue
		}
		wd := WorkingDay{Date: d, IsHoliday: c.IsHoliday(d)}
		if len(days) > 0 && d.DaysSince(prev) > 1 {
			wd.FollowsWeekend = true
		}
		days = append(days, wd)
		prev = d
	}
	return days
}

// Package-level helpers on the default calendar.

func IsHoliday(d civil.Date) bool            { return defaultCalendar.IsHoliday(d) }
func IsWorkingDay(d civil.Date) bool         { return defaultCalendar.IsWorkingDay(d) }
func NextWorkingDay(d civil.Date) civil.Date { return defaultCalendar.NextWorkingDay(d) }
func CountWorkingDays(start, end civil.Date) int {
	return defaultCalendar.CountWorkingDays(start, end)
}

func ComputeEndInstant(startDate civil.Date, startHour, durationHours int) (Instant, error) {
	return defaultCalendar.ComputeEndInstant(startDate, startHour, durationHours)
}
