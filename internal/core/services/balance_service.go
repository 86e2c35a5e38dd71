package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fintrack/fintrack_backend/internal/core/domain"
	portsrepo "github.com/fintrack/fintrack_backend/internal/core/ports/repositories"
	portssvc "github.com/fintrack/fintrack_backend/internal/core/ports/services"
	"github.com/fintrack/fintrack_backend/internal/utils/accounting"
	"github.com/fintrack/fintrack_backend/internal/utils/timeseries"
)

// balanceService reconstructs historical balances by replaying ledger
// operations against the account's current balance. The balance as of any
// past date is the current balance with every operation strictly after that
// date reverse-applied, newest first — no per-day running totals are stored.
type balanceService struct {
	BaseService
	operationRepo portsrepo.OperationReader
	accountRepo   portsrepo.AccountReader
	now           func() time.Time
}

// BalanceServiceOption is a functional option for configuring the balance service.
type BalanceServiceOption func(*balanceService)

// WithBalanceClock overrides the wall clock, for tests.
func WithBalanceClock(now func() time.Time) BalanceServiceOption {
	return func(s *balanceService) {
		s.now = now
	}
}

// NewBalanceService creates a new balance service.
func NewBalanceService(operationRepo portsrepo.OperationReader, accountRepo portsrepo.AccountReader, options ...BalanceServiceOption) portssvc.BalanceSvcFacade {
	svc := &balanceService{
		operationRepo: operationRepo,
		accountRepo:   accountRepo,
		now:           time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.BalanceSvcFacade = (*balanceService)(nil)

// replayState is one batched read of everything replay needs: the current
// balance and all operations after a horizon, newest first.
type replayState struct {
	accountID string
	current   decimal.Decimal
	ops       []domain.Operation // newest first
}

func (s *balanceService) loadReplayState(ctx context.Context, accountID string, horizon time.Time) (*replayState, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to load account %s: %w", accountID, err)
	}
	ops, err := s.operationRepo.FindOperationsByAccountAfter(ctx, accountID, horizon)
	if err != nil {
		return nil, fmt.Errorf("failed to load operations for account %s: %w", accountID, err)
	}
	return &replayState{accountID: accountID, current: account.Balance, ops: ops}, nil
}

// balanceAsOf reverse-applies every loaded operation dated after the given
// instant.
func (st *replayState) balanceAsOf(at time.Time) decimal.Decimal {
	balance := st.current
	for _, op := range st.ops {
		if !op.Date.After(at) {
			break // ops are newest first; everything further back already applied
		}
		balance = balance.Sub(accounting.EffectOn(op, st.accountID))
	}
	return balance
}

// GetBalanceAtDate returns the account balance at the end of the given date.
func (s *balanceService) GetBalanceAtDate(ctx context.Context, accountID string, date time.Time) (decimal.Decimal, error) {
	at := timeseries.EndOfDay(date)
	state, err := s.loadReplayState(ctx, accountID, at)
	if err != nil {
		return decimal.Zero, err
	}
	return state.balanceAsOf(at), nil
}

// GetDailyBalances returns one end-of-day balance per day in [start, end].
// The balance at the day before start is computed first, then each day's
// operations are applied forward in date order. A single batched read covers
// the whole range; an account with no history yields a flat series at the
// current balance.
func (s *balanceService) GetDailyBalances(ctx context.Context, accountID string, start, end time.Time) ([]domain.DailyBalance, error) {
	startDay := timeseries.TruncateToDay(start)
	endDay := timeseries.TruncateToDay(end)
	if endDay.Before(startDay) {
		return []domain.DailyBalance{}, nil
	}

	horizon := timeseries.EndOfDay(startDay.AddDate(0, 0, -1))
	state, err := s.loadReplayState(ctx, accountID, horizon)
	if err != nil {
		return nil, err
	}
	balance := state.balanceAsOf(horizon)

	// Group the in-window effects per day for the forward pass.
	effectsByDay := make(map[time.Time]decimal.Decimal)
	for _, op := range state.ops {
		day := timeseries.TruncateToDay(op.Date)
		if day.Before(startDay) || day.After(endDay) {
			continue
		}
		effectsByDay[day] = effectsByDay[day].Add(accounting.EffectOn(op, accountID))
	}

	series := make([]domain.DailyBalance, 0, int(endDay.Sub(startDay).Hours()/24)+1)
	dayNum := 1
	for day := startDay; !day.After(endDay); day = day.AddDate(0, 0, 1) {
		balance = balance.Add(effectsByDay[day])
		series = append(series, domain.DailyBalance{Day: dayNum, Date: day, Balance: balance})
		dayNum++
	}
	return series, nil
}

// GetNMonthMean computes, for each day-of-month position of the given month,
// the mean end-of-day balance at that position across the previous `months`
// months. Months lacking the position (e.g. day 30 in February) are skipped;
// a position with zero comparable months yields zero.
func (s *balanceService) GetNMonthMean(ctx context.Context, accountID string, year int, month time.Month, months int) ([]domain.PositionalMean, error) {
	daysInMonth := timeseries.DaysInMonth(year, month)
	if months <= 0 {
		return []domain.PositionalMean{}, nil
	}

	// One batched read back to the start of the oldest month in the window.
	oldestMonthStart := timeseries.DayDate(year, month, 1).AddDate(0, -months, 0)
	horizon := timeseries.EndOfDay(oldestMonthStart.AddDate(0, 0, -1))
	state, err := s.loadReplayState(ctx, accountID, horizon)
	if err != nil {
		return nil, err
	}

	means := make([]domain.PositionalMean, 0, daysInMonth)
	for day := 1; day <= daysInMonth; day++ {
		sum := decimal.Zero
		count := 0
		for back := 1; back <= months; back++ {
			monthStart := timeseries.DayDate(year, month, 1).AddDate(0, -back, 0)
			if day > timeseries.DaysInMonth(monthStart.Year(), monthStart.Month()) {
				continue
			}
			at := timeseries.EndOfDay(timeseries.DayDate(monthStart.Year(), monthStart.Month(), day))
			sum = sum.Add(state.balanceAsOf(at))
			count++
		}
		mean := decimal.Zero
		if count > 0 {
			mean = sum.Div(decimal.NewFromInt(int64(count))).Round(2)
		}
		means = append(means, domain.PositionalMean{Day: day, MeanBalance: mean})
	}
	return means, nil
}

// GetBurndownData assembles the replay-based month view: observed daily
// balances for the requested and previous months, a planned straight-line
// decay from the month's peak to zero, and the trailing positional mean.
func (s *balanceService) GetBurndownData(ctx context.Context, accountID string, year int, month time.Month, months int) (*domain.BurndownData, error) {
	daysInMonth := timeseries.DaysInMonth(year, month)
	monthStart := timeseries.DayDate(year, month, 1)
	monthEnd := timeseries.DayDate(year, month, daysInMonth)

	current, err := s.GetDailyBalances(ctx, accountID, monthStart, monthEnd)
	if err != nil {
		return nil, err
	}

	prevStart := monthStart.AddDate(0, -1, 0)
	prevEnd := timeseries.DayDate(prevStart.Year(), prevStart.Month(), timeseries.DaysInMonth(prevStart.Year(), prevStart.Month()))
	previous, err := s.GetDailyBalances(ctx, accountID, prevStart, prevEnd)
	if err != nil {
		return nil, err
	}

	mean, err := s.GetNMonthMean(ctx, accountID, year, month, months)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	isCurrentMonth := now.Year() == year && now.Month() == month
	currentDay := daysInMonth
	if isCurrentMonth {
		currentDay = now.Day()
	}

	// Planned burndown: straight line from the month's peak observed balance
	// to zero across daysInMonth-1 steps, floored at zero.
	maxBalance := decimal.Zero
	for i, p := range current {
		if isCurrentMonth && p.Day > currentDay {
			break
		}
		if i == 0 || p.Balance.GreaterThan(maxBalance) {
			maxBalance = p.Balance
		}
	}
	planned := plannedLine(maxBalance, daysInMonth)

	s.LogDebug(ctx, "Burndown data assembled",
		slog.String("account_id", accountID), slog.Int("days", daysInMonth))

	return &domain.BurndownData{
		Current:        current,
		Previous:       previous,
		Planned:        planned,
		Mean:           mean,
		DaysInMonth:    daysInMonth,
		CurrentDay:     currentDay,
		IsCurrentMonth: isCurrentMonth,
	}, nil
}

// plannedLine produces the linear decay from peak to zero. With a single-day
// month the line is just the peak.
func plannedLine(peak decimal.Decimal, days int) []decimal.Decimal {
	line := make([]decimal.Decimal, days)
	if days == 1 {
		line[0] = peak
		return line
	}
	steps := decimal.NewFromInt(int64(days - 1))
	decrement := peak.Div(steps)
	for i := 0; i < days; i++ {
		v := peak.Sub(decrement.Mul(decimal.NewFromInt(int64(i)))).Round(2)
		if v.IsNegative() {
			v = decimal.Zero
		}
		line[i] = v
	}
	return line
}
