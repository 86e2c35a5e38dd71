// Package timeseries holds the day-sequence helpers shared by the
// snapshot-based and replay-based balance reconstruction strategies, so both
// handle the same edge cases one way.
package timeseries

import (
	"time"

	"github.com/shopspring/decimal"
)

// ForwardFill builds one value per day position 1..days. Days with a direct
// value (reported by valueAt) take it; days without repeat the last known
// value. Positions before the first known value, and positions past limit,
// stay nil so a rendered line does not extend into the future.
func ForwardFill(days int, limit int, valueAt func(day int) (decimal.Decimal, bool)) []*decimal.Decimal {
	series := make([]*decimal.Decimal, days)
	var last *decimal.Decimal
	for day := 1; day <= days; day++ {
		if day > limit {
			break
		}
		if v, ok := valueAt(day); ok {
			value := v
			last = &value
		}
		series[day-1] = last
	}
	return series
}

// DaysInMonth returns the number of days in the given month.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// DayDate returns the UTC midnight timestamp of a day within a month.
func DayDate(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// EndOfDay returns the last nanosecond of the given day in UTC.
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 23, 59, 59, int(time.Second-time.Nanosecond), time.UTC)
}

// TruncateToDay strips the time-of-day component in UTC.
func TruncateToDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
