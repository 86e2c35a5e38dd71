package repositories

import (
	"context"
	"time"

	"github.com/fintrack/fintrack_backend/internal/core/domain"
)

// SnapshotRepositoryFacade persists manual balance snapshots. Snapshots are
// owned by the user-facing edit flow and read-only to the replay path.
type SnapshotRepositoryFacade interface {
	// UpsertSnapshot inserts the snapshot or replaces the balance of an
	// existing one for the same (account, date).
	UpsertSnapshot(ctx context.Context, snapshot domain.BalanceSnapshot) error

	// DeleteSnapshot removes the snapshot for (account, date); ErrNotFound
	// when none exists.
	DeleteSnapshot(ctx context.Context, accountID string, date time.Time) error

	// FindSnapshotsByAccountBetween returns snapshots for the account with
	// date in [from, to], oldest first.
	FindSnapshotsByAccountBetween(ctx context.Context, accountID string, from, to time.Time) ([]domain.BalanceSnapshot, error)
}
