package services

import (
	"context"

	"github.com/fintrack/fintrack_backend/internal/core/domain"
)

// AccountSvcFacade exposes read access to accounts.
type AccountSvcFacade interface {
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)
	ListAccounts(ctx context.Context) ([]domain.Account, error)
}

// CurrencySvcFacade exposes read access to currency reference data and
// offline conversions.
type CurrencySvcFacade interface {
	GetCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error)
	ListCurrencies(ctx context.Context) ([]domain.Currency, error)
}
