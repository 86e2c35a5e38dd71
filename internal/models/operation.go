package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Operation is the persisted row shape for a ledger operation. Column naming
// is snake_case at the storage boundary; optional multi-currency fields are
// nullable.
type Operation struct {
	OperationID         string              `db:"operation_id"`
	Type                string              `db:"type"`
	Amount              decimal.Decimal     `db:"amount"`
	AccountID           string              `db:"account_id"`
	CategoryID          *string             `db:"category_id"`
	ToAccountID         *string             `db:"to_account_id"`
	Date                time.Time           `db:"date"`
	Description         string              `db:"description"`
	DestinationAmount   decimal.NullDecimal `db:"destination_amount"`
	ExchangeRate        decimal.NullDecimal `db:"exchange_rate"`
	SourceCurrency      *string             `db:"source_currency"`
	DestinationCurrency *string             `db:"destination_currency"`
	CreatedAt           time.Time           `db:"created_at"`
}
