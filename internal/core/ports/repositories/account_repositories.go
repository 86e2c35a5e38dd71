package repositories

import (
	"context"

	"github.com/fintrack/fintrack_backend/internal/core/domain"
)

// AccountReader provides read access to accounts. Account CRUD carries no
// balance side effects and lives outside this core; balances themselves are
// written only through the operation repository's units of work.
type AccountReader interface {
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)
	ListAccounts(ctx context.Context) ([]domain.Account, error)
}
