package repositories

import (
	"context"

	"github.com/fintrack/fintrack_backend/internal/core/domain"
)

// CurrencyReader provides read access to currency reference data.
type CurrencyReader interface {
	FindCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error)
	ListCurrencies(ctx context.Context) ([]domain.Currency, error)
}
