package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OperationType classifies a ledger entry.
type OperationType string

const (
	Expense  OperationType = "expense"
	Income   OperationType = "income"
	Transfer OperationType = "transfer"
)

// Valid reports whether t is a known operation type.
func (t OperationType) Valid() bool {
	switch t {
	case Expense, Income, Transfer:
		return true
	}
	return false
}

// Operation is a single ledger entry affecting one account (expense, income)
// or two (transfer). Rows are immutable except through the ledger service,
// which reconciles account balance deltas on every mutation.
type Operation struct {
	OperationID string          `json:"operationID"`
	Type        OperationType   `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	AccountID   string          `json:"accountID"`
	CategoryID  *string         `json:"categoryID,omitempty"`  // nil for transfers
	ToAccountID *string         `json:"toAccountID,omitempty"` // transfers only
	Date        time.Time       `json:"date"`
	Description string          `json:"description,omitempty"`

	// Multi-currency transfer fields. DestinationAmount is the credit applied
	// to the destination account when its currency differs from the source.
	DestinationAmount   *decimal.Decimal `json:"destinationAmount,omitempty"`
	ExchangeRate        *decimal.Decimal `json:"exchangeRate,omitempty"`
	SourceCurrency      *string          `json:"sourceCurrency,omitempty"`
	DestinationCurrency *string          `json:"destinationCurrency,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

// DestinationCredit is the amount credited to the destination account of a
// transfer: the explicit destination amount when present, the source amount
// otherwise.
func (o Operation) DestinationCredit() decimal.Decimal {
	if o.DestinationAmount != nil {
		return *o.DestinationAmount
	}
	return o.Amount
}

// IsMultiCurrency reports whether the operation is a cross-currency transfer
// carrying an explicit destination amount.
func (o Operation) IsMultiCurrency() bool {
	return o.Type == Transfer && o.DestinationAmount != nil &&
		o.SourceCurrency != nil && o.DestinationCurrency != nil &&
		*o.SourceCurrency != *o.DestinationCurrency
}
