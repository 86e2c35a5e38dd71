package dto

import (
	"time"

	"github.com/fintrack/fintrack_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DailyBalanceResponse is one day of a derived balance series.
type DailyBalanceResponse struct {
	Day     int       `json:"day"`
	Date    time.Time `json:"date"`
	Balance string    `json:"balance"`
}

// PositionalMeanResponse is one day-of-month position of an N-month mean.
type PositionalMeanResponse struct {
	Day         int    `json:"day"`
	MeanBalance string `json:"meanBalance"`
}

// BurndownResponse is the caller-facing replay-based month view.
type BurndownResponse struct {
	Current        []DailyBalanceResponse   `json:"current"`
	Previous       []DailyBalanceResponse   `json:"previous"`
	Planned        []string                 `json:"planned"`
	Mean           []PositionalMeanResponse `json:"mean"`
	DaysInMonth    int                      `json:"daysInMonth"`
	CurrentDay     int                      `json:"currentDay"`
	IsCurrentMonth bool                     `json:"isCurrentMonth"`
}

// SnapshotChartResponse is the caller-facing snapshot-based month view.
// Nil entries stay null in JSON so the chart can leave those days blank.
type SnapshotChartResponse struct {
	Actual         []*string `json:"actual"`
	ActualForChart []*string `json:"actualForChart"`
	Trend          []*string `json:"trend"`
	Burndown       []*string `json:"burndown"`
	PrevMonth      []*string `json:"prevMonth"`
	Labels         []int     `json:"labels"`
}

// ToDailyBalanceResponses maps a derived daily series.
func ToDailyBalanceResponses(series []domain.DailyBalance) []DailyBalanceResponse {
	out := make([]DailyBalanceResponse, len(series))
	for i, p := range series {
		out[i] = DailyBalanceResponse{Day: p.Day, Date: p.Date, Balance: p.Balance.String()}
	}
	return out
}

// ToBurndownResponse maps replay-based burndown data.
func ToBurndownResponse(data *domain.BurndownData) BurndownResponse {
	planned := make([]string, len(data.Planned))
	for i, v := range data.Planned {
		planned[i] = v.String()
	}
	mean := make([]PositionalMeanResponse, len(data.Mean))
	for i, m := range data.Mean {
		mean[i] = PositionalMeanResponse{Day: m.Day, MeanBalance: m.MeanBalance.String()}
	}
	return BurndownResponse{
		Current:        ToDailyBalanceResponses(data.Current),
		Previous:       ToDailyBalanceResponses(data.Previous),
		Planned:        planned,
		Mean:           mean,
		DaysInMonth:    data.DaysInMonth,
		CurrentDay:     data.CurrentDay,
		IsCurrentMonth: data.IsCurrentMonth,
	}
}

func toNullableStrings(series []*decimal.Decimal) []*string {
	out := make([]*string, len(series))
	for i, v := range series {
		if v != nil {
			s := v.String()
			out[i] = &s
		}
	}
	return out
}

// ToSnapshotChartResponse maps snapshot-based chart data.
func ToSnapshotChartResponse(data *domain.SnapshotChartData) SnapshotChartResponse {
	return SnapshotChartResponse{
		Actual:         toNullableStrings(data.Actual),
		ActualForChart: toNullableStrings(data.ActualForChart),
		Trend:          toNullableStrings(data.Trend),
		Burndown:       toNullableStrings(data.Burndown),
		PrevMonth:      toNullableStrings(data.PrevMonth),
		Labels:         data.Labels,
	}
}
