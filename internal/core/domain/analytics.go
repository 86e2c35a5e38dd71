package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DailyBalance is one point of a derived per-day balance series. Derived
// series are computed on demand from operations and snapshots and are never
// persisted.
type DailyBalance struct {
	Day     int             `json:"day"`
	Date    time.Time       `json:"date"`
	Balance decimal.Decimal `json:"balance"`
}

// PositionalMean is the average balance at one day-of-month position across
// a window of previous months.
type PositionalMean struct {
	Day         int             `json:"day"`
	MeanBalance decimal.Decimal `json:"meanBalance"`
}

// BurndownData is the replay-based month view: observed daily balances for
// the current and previous months, a planned linear decay from the month's
// peak to zero, and the positional mean over the trailing window.
type BurndownData struct {
	Current        []DailyBalance    `json:"current"`
	Previous       []DailyBalance    `json:"previous"`
	Planned        []decimal.Decimal `json:"planned"`
	Mean           []PositionalMean  `json:"mean"`
	DaysInMonth    int               `json:"daysInMonth"`
	CurrentDay     int               `json:"currentDay"`
	IsCurrentMonth bool              `json:"isCurrentMonth"`
}

// SnapshotChartData is the snapshot-based month view. Nil points mean "no
// value for that day": actual has values only on snapshot days, the chart
// line forward-fills up to the truncation day, and nothing extends past it.
type SnapshotChartData struct {
	Actual         []*decimal.Decimal `json:"actual"`
	ActualForChart []*decimal.Decimal `json:"actualForChart"`
	Trend          []*decimal.Decimal `json:"trend"`
	Burndown       []*decimal.Decimal `json:"burndown"`
	PrevMonth      []*decimal.Decimal `json:"prevMonth"`
	Labels         []int              `json:"labels"`
}
