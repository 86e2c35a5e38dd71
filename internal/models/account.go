package models

import (
	"github.com/shopspring/decimal"
)

// Account is the persisted row shape for a financial account.
type Account struct {
	AccountID    string          `db:"account_id"`
	Name         string          `db:"name"`
	CurrencyCode string          `db:"currency_code"`
	Balance      decimal.Decimal `db:"balance"`
	AuditFields
}
