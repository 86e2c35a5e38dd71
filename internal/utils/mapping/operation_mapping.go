package mapping

import (
	"github.com/fintrack/fintrack_backend/internal/core/domain"
	"github.com/fintrack/fintrack_backend/internal/models"
	"github.com/shopspring/decimal"
)

// ToModelOperation converts a domain operation to its persisted row shape.
func ToModelOperation(d domain.Operation) models.Operation {
	m := models.Operation{
		OperationID:         d.OperationID,
		Type:                string(d.Type),
		Amount:              d.Amount,
		AccountID:           d.AccountID,
		CategoryID:          d.CategoryID,
		ToAccountID:         d.ToAccountID,
		Date:                d.Date,
		Description:         d.Description,
		SourceCurrency:      d.SourceCurrency,
		DestinationCurrency: d.DestinationCurrency,
		CreatedAt:           d.CreatedAt,
	}
	if d.DestinationAmount != nil {
		m.DestinationAmount = decimal.NullDecimal{Decimal: *d.DestinationAmount, Valid: true}
	}
	if d.ExchangeRate != nil {
		m.ExchangeRate = decimal.NullDecimal{Decimal: *d.ExchangeRate, Valid: true}
	}
	return m
}

// ToDomainOperation converts a persisted row back to the domain shape,
// null-safe for the optional multi-currency columns.
func ToDomainOperation(m models.Operation) domain.Operation {
	d := domain.Operation{
		OperationID:         m.OperationID,
		Type:                domain.OperationType(m.Type),
		Amount:              m.Amount,
		AccountID:           m.AccountID,
		CategoryID:          m.CategoryID,
		ToAccountID:         m.ToAccountID,
		Date:                m.Date,
		Description:         m.Description,
		SourceCurrency:      m.SourceCurrency,
		DestinationCurrency: m.DestinationCurrency,
		CreatedAt:           m.CreatedAt,
	}
	if m.DestinationAmount.Valid {
		amount := m.DestinationAmount.Decimal
		d.DestinationAmount = &amount
	}
	if m.ExchangeRate.Valid {
		rate := m.ExchangeRate.Decimal
		d.ExchangeRate = &rate
	}
	return d
}
