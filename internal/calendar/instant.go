package calendar

import (
	"fmt"
	"time"

	"cloud.google.com/go/civil"
)

// Instant is a calendar date plus a whole working hour.
type Instant struct {
	Date civil.Date
	Hour int
}

// At builds an Instant.
func At(d civil.Date, hour int) Instant {
	return Instant{Date: d, Hour: hour}
}

// Before reports whether i is strictly earlier than o.
func (i Instant) Before(o Instant) bool {
	if i.Date != o.Date {
		return i.Date.Before(o.Date)
	}
	return i.Hour < o.Hour
}

// After reports whether i is strictly later than o.
func (i Instant) After(o Instant) bool {
	return o.Before(i)
}

// Equal reports whether both instants denote the same date and hour.
func (i Instant) Equal(o Instant) bool {
	return i.Date == o.Date && i.Hour == o.Hour
}

func (i Instant) String() string {
	return fmt.Sprintf("%s %02dh", i.Date, i.Hour)
}

// ParseDate parses a YYYY-MM-DD calendar string without any time zone math.
func ParseDate(s string) (civil.Date, error) {
	d, err := civil.ParseDate(s)
	if err != nil {
		return civil.Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return d, nil
}

// Today returns the local calendar date.
func Today() civil.Date {
	return civil.DateOf(time.Now())
}

// Weekday returns the day of the week for d.
func Weekday(d civil.Date) time.Weekday {
	return d.In(time.UTC).Weekday()
}

func isWeekend(d civil.Date) bool {
	wd := Weekday(d)
	return wd == time.Saturday || wd == time.Sunday
}
