package timeseries_test

import (
	"testing"
	"time"

	"github.com/fintrack/fintrack_backend/internal/utils/timeseries"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func valuesFrom(byDay map[int]string) func(day int) (decimal.Decimal, bool) {
	return func(day int) (decimal.Decimal, bool) {
		raw, ok := byDay[day]
		if !ok {
			return decimal.Zero, false
		}
		return decimal.RequireFromString(raw), true
	}
}

func TestForwardFill_RepeatsLastKnownValue(t *testing.T) {
	series := timeseries.ForwardFill(7, 7, valuesFrom(map[int]string{
		1: "100",
		4: "70",
	}))

	require.Len(t, series, 7)
	assert.Equal(t, "100", series[0].String())
	assert.Equal(t, "100", series[1].String())
	assert.Equal(t, "100", series[2].String())
	assert.Equal(t, "70", series[3].String())
	assert.Equal(t, "70", series[6].String())
}

func TestForwardFill_NilBeforeFirstValue(t *testing.T) {
	series := timeseries.ForwardFill(5, 5, valuesFrom(map[int]string{3: "42"}))

	assert.Nil(t, series[0])
	assert.Nil(t, series[1])
	require.NotNil(t, series[2])
	assert.Equal(t, "42", series[2].String())
	assert.Equal(t, "42", series[4].String())
}

func TestForwardFill_StopsAtLimit(t *testing.T) {
	series := timeseries.ForwardFill(10, 4, valuesFrom(map[int]string{1: "9"}))

	require.Len(t, series, 10)
	assert.NotNil(t, series[3])
	for i := 4; i < 10; i++ {
		assert.Nil(t, series[i], "positions past the limit must stay nil")
	}
}

func TestForwardFill_NoValues(t *testing.T) {
	series := timeseries.ForwardFill(3, 3, valuesFrom(nil))

	require.Len(t, series, 3)
	for _, v := range series {
		assert.Nil(t, v)
	}
}

func TestDaysInMonth(t *testing.T) {
	assert.Equal(t, 31, timeseries.DaysInMonth(2024, time.January))
	assert.Equal(t, 29, timeseries.DaysInMonth(2024, time.February))
	assert.Equal(t, 28, timeseries.DaysInMonth(2023, time.February))
	assert.Equal(t, 30, timeseries.DaysInMonth(2024, time.April))
	assert.Equal(t, 31, timeseries.DaysInMonth(2024, time.December))
}

func TestDayBoundaries(t *testing.T) {
	instant := time.Date(2024, time.March, 15, 13, 45, 12, 0, time.UTC)

	truncated := timeseries.TruncateToDay(instant)
	assert.Equal(t, time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC), truncated)

	end := timeseries.EndOfDay(instant)
	assert.Equal(t, 23, end.Hour())
	assert.Equal(t, 15, end.Day())
	assert.True(t, end.Before(time.Date(2024, time.March, 16, 0, 0, 0, 0, time.UTC)))
	assert.True(t, end.After(instant))
}
