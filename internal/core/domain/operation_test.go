package domain_test

import (
	"testing"

	"github.com/fintrack/fintrack_backend/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestOperationType_Valid(t *testing.T) {
	assert.True(t, domain.Expense.Valid())
	assert.True(t, domain.Income.Valid())
	assert.True(t, domain.Transfer.Valid())
	assert.False(t, domain.OperationType("withdrawal").Valid())
	assert.False(t, domain.OperationType("").Valid())
}

func TestOperation_DestinationCredit(t *testing.T) {
	amount := decimal.RequireFromString("100")

	op := domain.Operation{Type: domain.Transfer, Amount: amount}
	assert.True(t, op.DestinationCredit().Equal(amount), "without an explicit destination amount the source amount is credited")

	dest := decimal.RequireFromString("92")
	op.DestinationAmount = &dest
	assert.True(t, op.DestinationCredit().Equal(dest))
}

func TestOperation_IsMultiCurrency(t *testing.T) {
	usd := "USD"
	eur := "EUR"
	dest := decimal.RequireFromString("92")

	op := domain.Operation{Type: domain.Transfer}
	assert.False(t, op.IsMultiCurrency())

	op.DestinationAmount = &dest
	op.SourceCurrency = &usd
	op.DestinationCurrency = &usd
	assert.False(t, op.IsMultiCurrency(), "same currency on both legs is not multi-currency")

	op.DestinationCurrency = &eur
	assert.True(t, op.IsMultiCurrency())
}
