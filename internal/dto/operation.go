package dto

import (
	"time"

	"github.com/fintrack/fintrack_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateOperationRequest carries a new ledger operation. Account and category
// references accept both bare ids and {"id": ...} objects; see
// domain.EntityRef.
type CreateOperationRequest struct {
	Type        string           `json:"type" binding:"required,oneof=expense income transfer"`
	Amount      decimal.Decimal  `json:"amount" binding:"required"`
	AccountID   domain.EntityRef `json:"accountId" binding:"required"`
	CategoryID  *domain.EntityRef `json:"categoryId,omitempty"`
	ToAccountID *domain.EntityRef `json:"toAccountId,omitempty"`
	Date        time.Time        `json:"date" binding:"required"`
	Description string           `json:"description,omitempty"`

	DestinationAmount   *decimal.Decimal `json:"destinationAmount,omitempty"`
	ExchangeRate        *decimal.Decimal `json:"exchangeRate,omitempty"`
	SourceCurrency      *string          `json:"sourceCurrency,omitempty"`
	DestinationCurrency *string          `json:"destinationCurrency,omitempty"`
}

// UpdateOperationRequest patches an existing operation. Only non-nil fields
// are applied; a patch with no recognized fields is a true no-op.
type UpdateOperationRequest struct {
	Type        *string           `json:"type,omitempty" binding:"omitempty,oneof=expense income transfer"`
	Amount      *decimal.Decimal  `json:"amount,omitempty"`
	AccountID   *domain.EntityRef `json:"accountId,omitempty"`
	CategoryID  *domain.EntityRef `json:"categoryId,omitempty"`
	ToAccountID *domain.EntityRef `json:"toAccountId,omitempty"`
	Date        *time.Time        `json:"date,omitempty"`
	Description *string           `json:"description,omitempty"`

	DestinationAmount   *decimal.Decimal `json:"destinationAmount,omitempty"`
	ExchangeRate        *decimal.Decimal `json:"exchangeRate,omitempty"`
	SourceCurrency      *string          `json:"sourceCurrency,omitempty"`
	DestinationCurrency *string          `json:"destinationCurrency,omitempty"`
}

// OperationResponse is the caller-facing shape of an operation. Money is
// serialized as strings, never binary floats.
type OperationResponse struct {
	OperationID string    `json:"operationID"`
	Type        string    `json:"type"`
	Amount      string    `json:"amount"`
	AccountID   string    `json:"accountID"`
	CategoryID  *string   `json:"categoryID,omitempty"`
	ToAccountID *string   `json:"toAccountID,omitempty"`
	Date        time.Time `json:"date"`
	Description string    `json:"description,omitempty"`

	DestinationAmount   *string `json:"destinationAmount,omitempty"`
	ExchangeRate        *string `json:"exchangeRate,omitempty"`
	SourceCurrency      *string `json:"sourceCurrency,omitempty"`
	DestinationCurrency *string `json:"destinationCurrency,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

// ToOperationResponse maps a domain operation to its response shape.
func ToOperationResponse(op *domain.Operation) OperationResponse {
	resp := OperationResponse{
		OperationID:         op.OperationID,
		Type:                string(op.Type),
		Amount:              op.Amount.String(),
		AccountID:           op.AccountID,
		CategoryID:          op.CategoryID,
		ToAccountID:         op.ToAccountID,
		Date:                op.Date,
		Description:         op.Description,
		SourceCurrency:      op.SourceCurrency,
		DestinationCurrency: op.DestinationCurrency,
		CreatedAt:           op.CreatedAt,
	}
	if op.DestinationAmount != nil {
		s := op.DestinationAmount.String()
		resp.DestinationAmount = &s
	}
	if op.ExchangeRate != nil {
		s := op.ExchangeRate.String()
		resp.ExchangeRate = &s
	}
	return resp
}

// ListOperationsParams holds parameters for listing operations.
type ListOperationsParams struct {
	Limit     int
	NextToken *string
}

// ListOperationsResponse is a page of operations plus the keyset token for
// the next page.
type ListOperationsResponse struct {
	Operations []OperationResponse `json:"operations"`
	NextToken  *string             `json:"nextToken,omitempty"`
}
