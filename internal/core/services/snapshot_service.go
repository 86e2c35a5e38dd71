package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fintrack/fintrack_backend/internal/apperrors"
	"github.com/fintrack/fintrack_backend/internal/core/domain"
	portsrepo "github.com/fintrack/fintrack_backend/internal/core/ports/repositories"
	portssvc "github.com/fintrack/fintrack_backend/internal/core/ports/services"
	"github.com/fintrack/fintrack_backend/internal/dto"
	"github.com/fintrack/fintrack_backend/internal/utils/timeseries"
)

// snapshotService owns manual balance snapshots and derives the
// snapshot-based month chart from them. Snapshots are user-asserted truth
// values, independent of operation replay, and read-only to every other
// consumer.
type snapshotService struct {
	BaseService
	snapshotRepo portsrepo.SnapshotRepositoryFacade
	now          func() time.Time
}

// SnapshotServiceOption is a functional option for configuring the snapshot service.
type SnapshotServiceOption func(*snapshotService)

// WithSnapshotClock overrides the wall clock, for tests.
func WithSnapshotClock(now func() time.Time) SnapshotServiceOption {
	return func(s *snapshotService) {
		s.now = now
	}
}

// NewSnapshotService creates a new snapshot service.
func NewSnapshotService(snapshotRepo portsrepo.SnapshotRepositoryFacade, options ...SnapshotServiceOption) portssvc.SnapshotSvcFacade {
	svc := &snapshotService{
		snapshotRepo: snapshotRepo,
		now:          time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.SnapshotSvcFacade = (*snapshotService)(nil)

// UpsertSnapshot records or replaces the snapshot for (account, date).
func (s *snapshotService) UpsertSnapshot(ctx context.Context, accountID string, req dto.UpsertSnapshotRequest) (*domain.BalanceSnapshot, error) {
	now := s.now().UTC()
	snapshot := domain.BalanceSnapshot{
		SnapshotID: uuid.NewString(),
		AccountID:  accountID,
		Date:       timeseries.TruncateToDay(req.Date),
		Balance:    req.Balance,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}
	if err := s.snapshotRepo.UpsertSnapshot(ctx, snapshot); err != nil {
		s.LogError(ctx, err, "Failed to upsert snapshot", slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to save snapshot: %w", err)
	}
	return &snapshot, nil
}

// DeleteSnapshot removes the snapshot for (account, date).
func (s *snapshotService) DeleteSnapshot(ctx context.Context, accountID string, date time.Time) error {
	err := s.snapshotRepo.DeleteSnapshot(ctx, accountID, timeseries.TruncateToDay(date))
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete snapshot", slog.String("account_id", accountID))
		}
		return err
	}
	return nil
}

// ListSnapshots returns snapshots for the account in [from, to].
func (s *snapshotService) ListSnapshots(ctx context.Context, accountID string, from, to time.Time) ([]domain.BalanceSnapshot, error) {
	snapshots, err := s.snapshotRepo.FindSnapshotsByAccountBetween(ctx, accountID, timeseries.TruncateToDay(from), timeseries.EndOfDay(to))
	if err != nil {
		s.LogError(ctx, err, "Failed to list snapshots", slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to retrieve snapshots: %w", err)
	}
	return snapshots, nil
}

// GetSnapshotChart builds the month view from manual snapshots:
//
//	actual         — snapshot days only, truncated to today in the current month
//	actualForChart — actual forward-filled up to the truncation day, nil beyond
//	trend          — least-squares projection over the actual points (≥2 needed)
//	burndown       — straight line from the month's peak actual value to zero
//	prevMonth      — previous month forward-filled, independent of truncation
func (s *snapshotService) GetSnapshotChart(ctx context.Context, accountID string, year int, month time.Month) (*domain.SnapshotChartData, error) {
	daysInMonth := timeseries.DaysInMonth(year, month)
	monthStart := timeseries.DayDate(year, month, 1)
	prevStart := monthStart.AddDate(0, -1, 0)
	prevDays := timeseries.DaysInMonth(prevStart.Year(), prevStart.Month())

	// One read covers both months.
	snapshots, err := s.snapshotRepo.FindSnapshotsByAccountBetween(ctx, accountID, prevStart, timeseries.EndOfDay(timeseries.DayDate(year, month, daysInMonth)))
	if err != nil {
		s.LogError(ctx, err, "Failed to load snapshots for chart", slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to retrieve snapshots: %w", err)
	}

	currentByDay := make(map[int]decimal.Decimal)
	prevByDay := make(map[int]decimal.Decimal)
	for _, snap := range snapshots {
		d := snap.Date.UTC()
		switch {
		case d.Year() == year && d.Month() == month:
			currentByDay[d.Day()] = snap.Balance
		case d.Year() == prevStart.Year() && d.Month() == prevStart.Month():
			prevByDay[d.Day()] = snap.Balance
		}
	}

	now := s.now().UTC()
	truncDay := daysInMonth
	if now.Year() == year && now.Month() == month {
		truncDay = now.Day()
	}

	actual := make([]*decimal.Decimal, daysInMonth)
	for day, balance := range currentByDay {
		if day < 1 || day > daysInMonth || day > truncDay {
			continue
		}
		v := balance
		actual[day-1] = &v
	}

	actualForChart := timeseries.ForwardFill(daysInMonth, truncDay, func(day int) (decimal.Decimal, bool) {
		v, ok := currentByDay[day]
		return v, ok
	})

	// Previous month fills across its own length, unaffected by the current
	// month's truncation; positions past its length stay nil.
	prevLimit := prevDays
	if prevLimit > daysInMonth {
		prevLimit = daysInMonth
	}
	prevMonth := timeseries.ForwardFill(daysInMonth, prevLimit, func(day int) (decimal.Decimal, bool) {
		v, ok := prevByDay[day]
		return v, ok
	})

	labels := make([]int, daysInMonth)
	for i := range labels {
		labels[i] = i + 1
	}

	return &domain.SnapshotChartData{
		Actual:         actual,
		ActualForChart: actualForChart,
		Trend:          trendLine(actual, daysInMonth),
		Burndown:       burndownLine(actual, daysInMonth),
		PrevMonth:      prevMonth,
		Labels:         labels,
	}, nil
}

// trendLine fits an ordinary least-squares regression over the (index, value)
// pairs of the observed points and projects it across every day of the month,
// floored at zero. Fewer than two points produce an empty line.
func trendLine(actual []*decimal.Decimal, days int) []*decimal.Decimal {
	var xs, ys []decimal.Decimal
	for i, v := range actual {
		if v != nil {
			xs = append(xs, decimal.NewFromInt(int64(i)))
			ys = append(ys, *v)
		}
	}
	if len(xs) < 2 {
		return []*decimal.Decimal{}
	}

	n := decimal.NewFromInt(int64(len(xs)))
	sumX, sumY, sumXY, sumXX := decimal.Zero, decimal.Zero, decimal.Zero, decimal.Zero
	for i := range xs {
		sumX = sumX.Add(xs[i])
		sumY = sumY.Add(ys[i])
		sumXY = sumXY.Add(xs[i].Mul(ys[i]))
		sumXX = sumXX.Add(xs[i].Mul(xs[i]))
	}

	denom := n.Mul(sumXX).Sub(sumX.Mul(sumX))
	if denom.IsZero() {
		return []*decimal.Decimal{}
	}
	slope := n.Mul(sumXY).Sub(sumX.Mul(sumY)).Div(denom)
	intercept := sumY.Sub(slope.Mul(sumX)).Div(n)

	line := make([]*decimal.Decimal, days)
	for i := 0; i < days; i++ {
		v := intercept.Add(slope.Mul(decimal.NewFromInt(int64(i)))).Round(2)
		if v.IsNegative() {
			v = decimal.Zero
		}
		line[i] = &v
	}
	return line
}

// burndownLine draws a straight line from the month's maximum observed value
// down toward zero across daysInMonth-1 steps, floored at zero. No observed
// points produce an empty line.
func burndownLine(actual []*decimal.Decimal, days int) []*decimal.Decimal {
	var peak *decimal.Decimal
	for _, v := range actual {
		if v != nil && (peak == nil || v.GreaterThan(*peak)) {
			peak = v
		}
	}
	if peak == nil {
		return []*decimal.Decimal{}
	}

	line := make([]*decimal.Decimal, days)
	if days == 1 {
		line[0] = peak
		return line
	}
	decrement := peak.Div(decimal.NewFromInt(int64(days - 1)))
	for i := 0; i < days; i++ {
		v := peak.Sub(decrement.Mul(decimal.NewFromInt(int64(i)))).Round(2)
		if v.IsNegative() {
			v = decimal.Zero
		}
		line[i] = &v
	}
	return line
}
