package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/fintrack/fintrack_backend/internal/apperrors"
	"github.com/fintrack/fintrack_backend/internal/core/domain"
	portsrepo "github.com/fintrack/fintrack_backend/internal/core/ports/repositories"
	portssvc "github.com/fintrack/fintrack_backend/internal/core/ports/services"
	"github.com/fintrack/fintrack_backend/internal/dto"
	"github.com/fintrack/fintrack_backend/internal/money"
	"github.com/fintrack/fintrack_backend/internal/utils/accounting"
)

var (
	ErrInvalidOperationType = errors.New("unknown operation type")
	ErrTransferTarget       = errors.New("transfer requires a destination account")
)

// ledgerService applies and reverses the balance effect of operations. It is
// the only writer of account balances: every mutation hands the operation row
// and its per-account deltas to the repository as one atomic unit of work.
type ledgerService struct {
	BaseService
	operationRepo portsrepo.OperationRepositoryFacade
	rates         *money.Rates
}

// LedgerServiceOption is a functional option for configuring the ledger service.
type LedgerServiceOption func(*ledgerService)

// WithRates sets the offline exchange-rate table used to derive destination
// amounts for cross-currency transfers.
func WithRates(rates *money.Rates) LedgerServiceOption {
	return func(s *ledgerService) {
		s.rates = rates
	}
}

// NewLedgerService creates a new ledger service.
func NewLedgerService(operationRepo portsrepo.OperationRepositoryFacade, options ...LedgerServiceOption) portssvc.LedgerSvcFacade {
	svc := &ledgerService{
		operationRepo: operationRepo,
		rates:         money.DefaultRates(),
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

// Ensure ledgerService implements the LedgerSvcFacade interface.
var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

func refString(ref *domain.EntityRef) *string {
	if ref == nil {
		return nil
	}
	s := ref.String()
	return &s
}

// CreateOperation inserts a new operation and applies its balance effect.
func (s *ledgerService) CreateOperation(ctx context.Context, req dto.CreateOperationRequest) (*domain.Operation, error) {
	opType := domain.OperationType(req.Type)
	if !opType.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidOperationType, req.Type)
	}
	if opType == domain.Transfer && req.ToAccountID == nil {
		return nil, fmt.Errorf("%w", ErrTransferTarget)
	}

	now := time.Now().UTC()
	op := domain.Operation{
		OperationID:         uuid.NewString(),
		Type:                opType,
		Amount:              req.Amount,
		AccountID:           req.AccountID.String(),
		CategoryID:          refString(req.CategoryID),
		ToAccountID:         refString(req.ToAccountID),
		Date:                req.Date,
		Description:         req.Description,
		DestinationAmount:   req.DestinationAmount,
		ExchangeRate:        req.ExchangeRate,
		SourceCurrency:      req.SourceCurrency,
		DestinationCurrency: req.DestinationCurrency,
		CreatedAt:           now,
	}
	// Transfers are categoryless.
	if opType == domain.Transfer {
		op.CategoryID = nil
	}

	// A cross-currency transfer that carries a rate but no explicit
	// destination amount gets one derived from the rate, so the stored row is
	// self-contained for later reversal.
	if opType == domain.Transfer && op.DestinationAmount == nil &&
		op.ExchangeRate != nil && op.SourceCurrency != nil && op.DestinationCurrency != nil {
		if converted, ok := s.rates.Convert(op.Amount, *op.SourceCurrency, *op.DestinationCurrency, op.ExchangeRate); ok {
			op.DestinationAmount = &converted
		} else {
			s.LogWarn(ctx, "Unresolvable exchange rate, transfer credited at source amount",
				slog.String("operation_id", op.OperationID))
		}
	}

	changes := accounting.BalanceChanges(op)
	if err := s.operationRepo.SaveOperation(ctx, op, changes); err != nil {
		s.LogError(ctx, err, "Failed to save operation", slog.String("operation_id", op.OperationID))
		return nil, fmt.Errorf("failed to save operation: %w", err)
	}

	s.LogInfo(ctx, "Operation created", slog.String("operation_id", op.OperationID), slog.String("type", string(op.Type)))
	return &op, nil
}

// mergePatch applies the recognized fields of the patch over the stored
// operation and reports whether anything changed.
func mergePatch(op domain.Operation, req dto.UpdateOperationRequest) (domain.Operation, bool) {
	updated := false
	if req.Type != nil && domain.OperationType(*req.Type).Valid() {
		op.Type = domain.OperationType(*req.Type)
		updated = true
	}
	if req.Amount != nil {
		op.Amount = *req.Amount
		updated = true
	}
	if req.AccountID != nil {
		op.AccountID = req.AccountID.String()
		updated = true
	}
	if req.CategoryID != nil {
		op.CategoryID = refString(req.CategoryID)
		updated = true
	}
	if req.ToAccountID != nil {
		op.ToAccountID = refString(req.ToAccountID)
		updated = true
	}
	if req.Date != nil {
		op.Date = *req.Date
		updated = true
	}
	if req.Description != nil {
		op.Description = *req.Description
		updated = true
	}
	if req.DestinationAmount != nil {
		op.DestinationAmount = req.DestinationAmount
		updated = true
	}
	if req.ExchangeRate != nil {
		op.ExchangeRate = req.ExchangeRate
		updated = true
	}
	if req.SourceCurrency != nil {
		op.SourceCurrency = req.SourceCurrency
		updated = true
	}
	if req.DestinationCurrency != nil {
		op.DestinationCurrency = req.DestinationCurrency
		updated = true
	}
	if op.Type == domain.Transfer {
		op.CategoryID = nil
	}
	return op, updated
}

// UpdateOperation reconciles an edit: it reverses the stored effect and
// applies the effect of the merged values, touching every account involved in
// either configuration (up to four adjustments).
func (s *ledgerService) UpdateOperation(ctx context.Context, operationID string, req dto.UpdateOperationRequest) (*domain.Operation, error) {
	existing, err := s.operationRepo.FindOperationByID(ctx, operationID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find operation for update", slog.String("operation_id", operationID))
		}
		return nil, err
	}

	merged, updated := mergePatch(*existing, req)
	if !updated {
		s.LogDebug(ctx, "No fields provided for operation update", slog.String("operation_id", operationID))
		return existing, nil
	}

	changes := accounting.MergeChanges(
		accounting.ReversalChanges(*existing),
		accounting.BalanceChanges(merged),
	)

	if err := s.operationRepo.UpdateOperation(ctx, merged, changes); err != nil {
		s.LogError(ctx, err, "Failed to update operation", slog.String("operation_id", operationID))
		return nil, err
	}

	s.LogInfo(ctx, "Operation updated", slog.String("operation_id", operationID))
	return &merged, nil
}

// DeleteOperation reverses the stored effect and removes the row.
func (s *ledgerService) DeleteOperation(ctx context.Context, operationID string) error {
	existing, err := s.operationRepo.FindOperationByID(ctx, operationID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find operation for delete", slog.String("operation_id", operationID))
		}
		return err
	}

	changes := accounting.ReversalChanges(*existing)
	if err := s.operationRepo.DeleteOperation(ctx, operationID, changes); err != nil {
		s.LogError(ctx, err, "Failed to delete operation", slog.String("operation_id", operationID))
		return err
	}

	s.LogInfo(ctx, "Operation deleted", slog.String("operation_id", operationID))
	return nil
}

// GetOperationByID retrieves a single operation.
func (s *ledgerService) GetOperationByID(ctx context.Context, operationID string) (*domain.Operation, error) {
	op, err := s.operationRepo.FindOperationByID(ctx, operationID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find operation", slog.String("operation_id", operationID))
		}
		return nil, err
	}
	return op, nil
}

// ListOperationsByAccount retrieves a page of operations for an account.
func (s *ledgerService) ListOperationsByAccount(ctx context.Context, accountID string, params dto.ListOperationsParams) (*dto.ListOperationsResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	ops, nextToken, err := s.operationRepo.ListOperationsByAccount(ctx, accountID, limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list operations", slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to retrieve operations: %w", err)
	}

	responses := make([]dto.OperationResponse, len(ops))
	for i := range ops {
		responses[i] = dto.ToOperationResponse(&ops[i])
	}
	return &dto.ListOperationsResponse{Operations: responses, NextToken: nextToken}, nil
}
