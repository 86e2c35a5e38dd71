package repositories

import (
	"context"
	"time"

	"github.com/fintrack/fintrack_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// OperationReader provides read access to ledger operations.
type OperationReader interface {
	FindOperationByID(ctx context.Context, operationID string) (*domain.Operation, error)

	// FindOperationsByAccountAfter returns every operation touching the
	// account (as source or destination) dated strictly after the given
	// instant, newest first. One batched read; replay never queries per day.
	FindOperationsByAccountAfter(ctx context.Context, accountID string, after time.Time) ([]domain.Operation, error)

	// ListOperationsByAccount pages operations newest first using a keyset
	// token.
	ListOperationsByAccount(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.Operation, *string, error)
}

// OperationWriter applies ledger mutations. Each method is one atomic unit of
// work: the operation row and every balance delta commit together or not at
// all. Accounts missing during balance application are logged and skipped,
// never fatal.
type OperationWriter interface {
	SaveOperation(ctx context.Context, op domain.Operation, balanceChanges map[string]decimal.Decimal) error
	UpdateOperation(ctx context.Context, op domain.Operation, balanceChanges map[string]decimal.Decimal) error
	DeleteOperation(ctx context.Context, operationID string, balanceChanges map[string]decimal.Decimal) error
}

// OperationRepositoryFacade is the full operation persistence contract.
type OperationRepositoryFacade interface {
	OperationReader
	OperationWriter
}
