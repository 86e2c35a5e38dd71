package services

import (
	"context"
	"time"

	"github.com/fintrack/fintrack_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BalanceSvcFacade derives read-only balance views by replaying ledger
// operations against the account's current balance. It never mutates ledger
// state.
type BalanceSvcFacade interface {
	GetBalanceAtDate(ctx context.Context, accountID string, date time.Time) (decimal.Decimal, error)
	GetDailyBalances(ctx context.Context, accountID string, start, end time.Time) ([]domain.DailyBalance, error)
	GetNMonthMean(ctx context.Context, accountID string, year int, month time.Month, months int) ([]domain.PositionalMean, error)
	GetBurndownData(ctx context.Context, accountID string, year int, month time.Month, months int) (*domain.BurndownData, error)
}
