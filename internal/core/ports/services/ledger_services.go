package services

import (
	"context"

	"github.com/fintrack/fintrack_backend/internal/core/domain"
	"github.com/fintrack/fintrack_backend/internal/dto"
)

// LedgerSvcFacade is the only code path permitted to change an operation row
// and its associated account balances together.
type LedgerSvcFacade interface {
	CreateOperation(ctx context.Context, req dto.CreateOperationRequest) (*domain.Operation, error)
	UpdateOperation(ctx context.Context, operationID string, req dto.UpdateOperationRequest) (*domain.Operation, error)
	DeleteOperation(ctx context.Context, operationID string) error
	GetOperationByID(ctx context.Context, operationID string) (*domain.Operation, error)
	ListOperationsByAccount(ctx context.Context, accountID string, params dto.ListOperationsParams) (*dto.ListOperationsResponse, error)
}
