package pgsql

import (
	"context"
	"time"

	"github.com/fintrack/fintrack_backend/internal/apperrors"
	"github.com/fintrack/fintrack_backend/internal/core/domain"
	portsrepo "github.com/fintrack/fintrack_backend/internal/core/ports/repositories"
	"github.com/fintrack/fintrack_backend/internal/models"
	"github.com/fintrack/fintrack_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxSnapshotRepository persists manual balance snapshots.
type PgxSnapshotRepository struct {
	BaseRepository
}

// NewSnapshotRepository creates a new repository for balance snapshots.
func NewSnapshotRepository(pool *pgxpool.Pool) portsrepo.SnapshotRepositoryFacade {
	return &PgxSnapshotRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.SnapshotRepositoryFacade = (*PgxSnapshotRepository)(nil)

const snapshotColumns = `snapshot_id, account_id, date, balance, created_at, last_updated_at`

func scanSnapshot(row pgx.Row) (*models.BalanceSnapshot, error) {
	var m models.BalanceSnapshot
	err := row.Scan(
		&m.SnapshotID,
		&m.AccountID,
		&m.Date,
		&m.Balance,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// UpsertSnapshot inserts the snapshot, or replaces the balance of an existing
// one for the same (account, date). Relies on the unique constraint on
// (account_id, date).
func (r *PgxSnapshotRepository) UpsertSnapshot(ctx context.Context, snapshot domain.BalanceSnapshot) error {
	m := mapping.ToModelSnapshot(snapshot)

	query := `
		INSERT INTO balance_snapshots (` + snapshotColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (account_id, date) DO UPDATE
		SET balance = EXCLUDED.balance,
		    last_updated_at = EXCLUDED.last_updated_at;`

	_, err := r.Pool.Exec(ctx, query,
		m.SnapshotID,
		m.AccountID,
		m.Date,
		m.Balance,
		m.CreatedAt,
		m.LastUpdatedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to upsert snapshot", err)
	}
	return nil
}

// DeleteSnapshot removes the snapshot for (account, date).
func (r *PgxSnapshotRepository) DeleteSnapshot(ctx context.Context, accountID string, date time.Time) error {
	query := `DELETE FROM balance_snapshots WHERE account_id = $1 AND date = $2;`

	tag, err := r.Pool.Exec(ctx, query, accountID, date)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete snapshot", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindSnapshotsByAccountBetween returns snapshots for the account with date in
// [from, to], oldest first.
func (r *PgxSnapshotRepository) FindSnapshotsByAccountBetween(ctx context.Context, accountID string, from, to time.Time) ([]domain.BalanceSnapshot, error) {
	query := `
		SELECT ` + snapshotColumns + `
		FROM balance_snapshots
		WHERE account_id = $1 AND date >= $2 AND date <= $3
		ORDER BY date ASC;`

	rows, err := r.Pool.Query(ctx, query, accountID, from, to)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query snapshots", err)
	}
	defer rows.Close()

	snapshots := []domain.BalanceSnapshot{}
	for rows.Next() {
		m, err := scanSnapshot(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan snapshot row", err)
		}
		snapshots = append(snapshots, mapping.ToDomainSnapshot(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate snapshot rows", err)
	}
	return snapshots, nil
}
