package calendar

import (
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(t *testing.T, s string) civil.Date {
	t.Helper()
	d, err := ParseDate(s)
	require.NoError(t, err)
	return d
}

func TestIsWorkingDay(t *testing.T) {
	tests := []struct {
		name string
		date string
		want bool
	}{
		{"monday", "2025-03-03", true},
		{"friday", "2025-03-07", true},
		{"saturday", "2025-03-08", false},
		{"sunday", "2025-03-09", false},
		{"labour day", "2025-05-01", false},
		{"easter monday", "2025-04-21", false},
		{"christmas 2026", "2026-12-25", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsWorkingDay(date(t, tt.date)))
		})
	}
}

func TestIsHoliday_KeyedByCalendarDate(t *testing.T) {
	assert.True(t, IsHoliday(civil.Date{Year: 2025, Month: time.July, Day: 14}))
	assert.False(t, IsHoliday(civil.Date{Year: 2025, Month: time.July, Day: 15}))
}

func TestNextWorkingDay(t *testing.T) {
	assert.Equal(t, date(t, "2025-03-04"), NextWorkingDay(date(t, "2025-03-03")))
	assert.Equal(t, date(t, "2025-03-10"), NextWorkingDay(date(t, "2025-03-07")), "friday rolls to monday")
	// Friday before Whit Monday 2025-06-09.
	assert.Equal(t, date(t, "2025-06-10"), NextWorkingDay(date(t, "2025-06-06")))
}

func TestComputeEndInstant_EightHourDay(t *testing.T) {
	for _, d := range []string{"2025-03-03", "2025-03-04", "2025-03-07"} {
		end, err := ComputeEndInstant(date(t, d), MorningStart, 8)
		require.NoError(t, err)
		assert.Equal(t, At(date(t, d), AfternoonEnd), end, d)
	}
}

func TestComputeEndInstant_LunchSkip(t *testing.T) {
	end, err := ComputeEndInstant(date(t, "2025-03-03"), 11, 2)
	require.NoError(t, err)
	assert.Equal(t, At(date(t, "2025-03-03"), 14), end)
}

func TestComputeEndInstant_MorningEndsAtNoon(t *testing.T) {
	end, err := ComputeEndInstant(date(t, "2025-03-03"), 8, 4)
	require.NoError(t, err)
	assert.Equal(t, At(date(t, "2025-03-03"), 12), end)
}

func TestComputeEndInstant_WeekendSkip(t *testing.T) {
	end, err := ComputeEndInstant(date(t, "2025-03-07"), 16, 2)
	require.NoError(t, err)
	assert.Equal(t, At(date(t, "2025-03-10"), 9), end)
}

// A single hour from Friday 16h is used up at 17h the same day. The end
// only rolls over the weekend once hours remain past the evening close.
func TestComputeEndInstant_LastFridayHourEndsFriday(t *testing.T) {
	end, err := ComputeEndInstant(date(t, "2025-03-07"), 16, 1)
	require.NoError(t, err)
	assert.Equal(t, At(date(t, "2025-03-07"), 17), end)
	assert.NotEqual(t, At(date(t, "2025-03-10"), 9), end)
}

func TestComputeEndInstant_HolidayMondaySkipped(t *testing.T) {
	end, err := ComputeEndInstant(date(t, "2025-06-06"), 16, 2)
	require.NoError(t, err)
	assert.Equal(t, At(date(t, "2025-06-10"), 9), end)
}

func TestComputeEndInstant_NormalizesStart(t *testing.T) {
	d := date(t, "2025-03-03")

	tests := []struct {
		name      string
		startDate civil.Date
		startHour int
		want      Instant
	}{
		{"before morning", d, 6, At(d, 10)},
		{"lunch gap", d, 12, At(d, 15)},
		{"after hours", d, 17, At(date(t, "2025-03-04"), 10)},
		{"after hours friday", date(t, "2025-03-07"), 18, At(date(t, "2025-03-10"), 10)},
		{"saturday start", date(t, "2025-03-08"), 8, At(date(t, "2025-03-10"), 10)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			end, err := ComputeEndInstant(tt.startDate, tt.startHour, 2)
			require.NoError(t, err)
			assert.Equal(t, tt.want, end)
		})
	}
}

func TestComputeEndInstant_ZeroDurationReturnsAdjustedStart(t *testing.T) {
	end, err := ComputeEndInstant(date(t, "2025-03-08"), 12, 0)
	require.NoError(t, err)
	assert.Equal(t, At(date(t, "2025-03-10"), 13), end)
}

func TestComputeEndInstant_NegativeDuration(t *testing.T) {
	_, err := ComputeEndInstant(date(t, "2025-03-03"), 8, -1)
	assert.ErrorIs(t, err, ErrNegativeDuration)
}

func TestComputeEndInstant_MultiDay(t *testing.T) {
	// 8h Monday afternoon-start: 4h Monday, 4h Tuesday morning.
	end, err := ComputeEndInstant(date(t, "2025-03-03"), 13, 8)
	require.NoError(t, err)
	assert.Equal(t, At(date(t, "2025-03-04"), 12), end)

	// 40h is a full working week.
	end, err = ComputeEndInstant(date(t, "2025-03-03"), 8, 40)
	require.NoError(t, err)
	assert.Equal(t, At(date(t, "2025-03-07"), 17), end)
}

func TestComputeEndInstant_MonotonicInDuration(t *testing.T) {
	starts := []Instant{
		At(date(t, "2025-03-03"), 8),
		At(date(t, "2025-03-05"), 11),
		At(date(t, "2025-03-07"), 15),
		At(date(t, "2025-04-30"), 13),
	}
	for _, s := range starts {
		prev, err := ComputeEndInstant(s.Date, s.Hour, 0)
		require.NoError(t, err)
		for h := 1; h <= 60; h++ {
			end, err := ComputeEndInstant(s.Date, s.Hour, h)
			require.NoError(t, err)
			assert.False(t, end.Before(prev), "start %s duration %d: %s before %s", s, h, end, prev)
			prev = end
		}
	}
}

func TestComputeEndInstant_EndsOnWorkingDay(t *testing.T) {
	start := date(t, "2025-04-28")
	for h := 1; h <= 80; h++ {
		end, err := ComputeEndInstant(start, 9, h)
		require.NoError(t, err)
		assert.True(t, IsWorkingDay(end.Date), "duration %d ended on %s", h, end.Date)
	}
}

func TestCountWorkingDays(t *testing.T) {
	assert.Equal(t, 5, CountWorkingDays(date(t, "2025-03-03"), date(t, "2025-03-09")))
	assert.Equal(t, 1, CountWorkingDays(date(t, "2025-03-03"), date(t, "2025-03-03")))
	assert.Equal(t, 0, CountWorkingDays(date(t, "2025-03-08"), date(t, "2025-03-09")))
	// Week of 2025-05-05 contains 8 May and is otherwise intact.
	assert.Equal(t, 4, CountWorkingDays(date(t, "2025-05-05"), date(t, "2025-05-09")))
	assert.Equal(t, 0, CountWorkingDays(date(t, "2025-03-05"), date(t, "2025-03-03")))
}

func TestWorkingDays_ElidesWeekendsAndFlags(t *testing.T) {
	days := Default().WorkingDays(date(t, "2025-05-01"), date(t, "2025-05-13"))

	var got []string
	for _, d := range days {
		got = append(got, d.Date.String())
	}
	assert.Equal(t, []string{
		"2025-05-01", "2025-05-02",
		"2025-05-05", "2025-05-06", "2025-05-07", "2025-05-08", "2025-05-09",
		"2025-05-12", "2025-05-13",
	}, got)

	assert.True(t, days[0].IsHoliday)
	assert.False(t, days[0].FollowsWeekend, "first day never carries a separator")
	assert.True(t, days[2].FollowsWeekend)
	assert.True(t, days[5].IsHoliday)
	assert.False(t, days[5].FollowsWeekend)
	assert.True(t, days[7].FollowsWeekend)
}

func TestNew_CustomHolidays(t *testing.T) {
	c, err := New("2025-03-04")
	require.NoError(t, err)
	assert.False(t, c.IsWorkingDay(date(t, "2025-03-04")))
	assert.True(t, c.IsWorkingDay(date(t, "2025-05-01")), "built-in table not included")

	end, err := c.ComputeEndInstant(date(t, "2025-03-03"), 16, 2)
	require.NoError(t, err)
	assert.Equal(t, At(date(t, "2025-03-05"), 9), end)
}

func TestNew_RejectsMalformedHoliday(t *testing.T) {
	_, err := New("2025-13-01")
	assert.Error(t, err)
}

func TestParseHour(t *testing.T) {
	assert.Equal(t, 8, ParseHour(""))
	assert.Equal(t, 8, ParseHour("abc"))
	assert.Equal(t, 14, ParseHour("14"))
	assert.Equal(t, 9, ParseHour("09:00"))
	assert.Equal(t, 13, ParseHour(" 13h "))
	assert.Equal(t, 8, ParseHour("23"))
}

func TestInstantOrdering(t *testing.T) {
	a := At(date(t, "2025-03-03"), 16)
	b := At(date(t, "2025-03-04"), 8)
	assert.True(t, a.Before(b))
	assert.True(t, b.After(a))
	assert.False(t, a.Before(a))
	assert.True(t, a.Equal(At(date(t, "2025-03-03"), 16)))
	assert.Equal(t, "2025-03-04 08h", b.String())
}
