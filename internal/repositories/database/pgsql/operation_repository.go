package pgsql

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/fintrack/fintrack_backend/internal/apperrors"
	"github.com/fintrack/fintrack_backend/internal/core/domain"
	portsrepo "github.com/fintrack/fintrack_backend/internal/core/ports/repositories"
	"github.com/fintrack/fintrack_backend/internal/models"
	"github.com/fintrack/fintrack_backend/internal/utils/mapping"
	"github.com/fintrack/fintrack_backend/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// PgxOperationRepository persists ledger operations. Every mutation is one
// database transaction: the operation row and all account balance deltas
// commit together or not at all.
type PgxOperationRepository struct {
	BaseRepository
}

// NewOperationRepository creates a new repository for operation data.
func NewOperationRepository(pool *pgxpool.Pool) portsrepo.OperationRepositoryFacade {
	return &PgxOperationRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.OperationRepositoryFacade = (*PgxOperationRepository)(nil)

const operationColumns = `
	operation_id, type, amount, account_id, category_id, to_account_id,
	date, description, destination_amount, exchange_rate,
	source_currency, destination_currency, created_at`

// applyBalanceChanges applies per-account deltas inside the transaction.
// An account that no longer exists is logged and skipped: the operation row
// is valid ledger history even when an involved account was deleted later.
func applyBalanceChanges(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal, now time.Time) error {
	query := `
		UPDATE accounts
		SET balance = balance + $1, last_updated_at = $2
		WHERE account_id = $3;
	`
	for accountID, delta := range balanceChanges {
		if delta.IsZero() {
			continue
		}
		tag, err := tx.Exec(ctx, query, delta, now, accountID)
		if err != nil {
			return apperrors.NewAppError(500, "failed to update balance for account "+accountID, err)
		}
		if tag.RowsAffected() == 0 {
			slog.Warn("Account missing during balance application, skipping",
				slog.String("account_id", accountID),
				slog.String("delta", delta.String()))
		}
	}
	return nil
}

// SaveOperation inserts the operation row and applies its balance effect
// within a single database transaction.
func (r *PgxOperationRepository) SaveOperation(ctx context.Context, op domain.Operation, balanceChanges map[string]decimal.Decimal) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelOperation(op)
	insertQuery := `
		INSERT INTO operations (` + operationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err = tx.Exec(ctx, insertQuery,
		m.OperationID,
		m.Type,
		m.Amount,
		m.AccountID,
		m.CategoryID,
		m.ToAccountID,
		m.Date,
		m.Description,
		m.DestinationAmount,
		m.ExchangeRate,
		m.SourceCurrency,
		m.DestinationCurrency,
		m.CreatedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert operation "+m.OperationID, err)
	}

	if err := applyBalanceChanges(ctx, tx, balanceChanges, m.CreatedAt); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// UpdateOperation rewrites the operation row and applies the reconciliation
// deltas within a single database transaction.
func (r *PgxOperationRepository) UpdateOperation(ctx context.Context, op domain.Operation, balanceChanges map[string]decimal.Decimal) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelOperation(op)
	updateQuery := `
		UPDATE operations
		SET type = $2, amount = $3, account_id = $4, category_id = $5,
		    to_account_id = $6, date = $7, description = $8,
		    destination_amount = $9, exchange_rate = $10,
		    source_currency = $11, destination_currency = $12
		WHERE operation_id = $1;
	`
	tag, err := tx.Exec(ctx, updateQuery,
		m.OperationID,
		m.Type,
		m.Amount,
		m.AccountID,
		m.CategoryID,
		m.ToAccountID,
		m.Date,
		m.Description,
		m.DestinationAmount,
		m.ExchangeRate,
		m.SourceCurrency,
		m.DestinationCurrency,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update operation "+m.OperationID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if err := applyBalanceChanges(ctx, tx, balanceChanges, time.Now().UTC()); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// DeleteOperation reverses the stored effect and removes the row within a
// single database transaction.
func (r *PgxOperationRepository) DeleteOperation(ctx context.Context, operationID string, balanceChanges map[string]decimal.Decimal) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := applyBalanceChanges(ctx, tx, balanceChanges, time.Now().UTC()); err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, `DELETE FROM operations WHERE operation_id = $1;`, operationID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete operation "+operationID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return r.Commit(ctx, tx)
}

func scanOperation(row pgx.Row) (*models.Operation, error) {
	var m models.Operation
	err := row.Scan(
		&m.OperationID,
		&m.Type,
		&m.Amount,
		&m.AccountID,
		&m.CategoryID,
		&m.ToAccountID,
		&m.Date,
		&m.Description,
		&m.DestinationAmount,
		&m.ExchangeRate,
		&m.SourceCurrency,
		&m.DestinationCurrency,
		&m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// FindOperationByID retrieves an operation by its ID.
func (r *PgxOperationRepository) FindOperationByID(ctx context.Context, operationID string) (*domain.Operation, error) {
	query := `SELECT ` + operationColumns + ` FROM operations WHERE operation_id = $1;`

	m, err := scanOperation(r.Pool.QueryRow(ctx, query, operationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find operation by ID "+operationID, err)
	}

	op := mapping.ToDomainOperation(*m)
	return &op, nil
}

// FindOperationsByAccountAfter returns every operation touching the account
// as source or destination, dated strictly after the given instant, newest
// first. One batched read for the whole window.
func (r *PgxOperationRepository) FindOperationsByAccountAfter(ctx context.Context, accountID string, after time.Time) ([]domain.Operation, error) {
	query := `
		SELECT ` + operationColumns + `
		FROM operations
		WHERE (account_id = $1 OR to_account_id = $1) AND date > $2
		ORDER BY date DESC, created_at DESC;
	`
	rows, err := r.Pool.Query(ctx, query, accountID, after)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query operations for account "+accountID, err)
	}
	defer rows.Close()

	return collectOperations(rows)
}

// ListOperationsByAccount pages operations newest first using a keyset token
// over (date, created_at).
func (r *PgxOperationRepository) ListOperationsByAccount(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.Operation, *string, error) {
	args := []any{accountID, limit + 1}
	query := `
		SELECT ` + operationColumns + `
		FROM operations
		WHERE (account_id = $1 OR to_account_id = $1)
	`
	if nextToken != nil {
		date, createdAt, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid pagination token", err)
		}
		query += ` AND (date, created_at) < ($3, $4)`
		args = append(args, date, createdAt)
	}
	query += ` ORDER BY date DESC, created_at DESC LIMIT $2;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to list operations for account "+accountID, err)
	}
	defer rows.Close()

	ops, err := collectOperations(rows)
	if err != nil {
		return nil, nil, err
	}

	var token *string
	if len(ops) > limit {
		ops = ops[:limit]
		last := ops[limit-1]
		t := pagination.EncodeToken(last.Date, last.CreatedAt)
		token = &t
	}
	return ops, token, nil
}

func collectOperations(rows pgx.Rows) ([]domain.Operation, error) {
	ops := []domain.Operation{}
	for rows.Next() {
		m, err := scanOperation(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan operation row", err)
		}
		ops = append(ops, mapping.ToDomainOperation(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate operation rows", err)
	}
	return ops, nil
}
