package domain

import (
	"github.com/shopspring/decimal"
)

// Account represents a financial account within the core domain.
// Balance is the single source of truth for the current money position and is
// mutated only by the ledger service.
type Account struct {
	AccountID    string          `json:"accountID"`
	Name         string          `json:"name"`
	CurrencyCode string          `json:"currencyCode"`
	Balance      decimal.Decimal `json:"balance"`
	AuditFields
}
