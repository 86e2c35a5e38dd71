package mapping

import (
	"github.com/fintrack/fintrack_backend/internal/core/domain"
	"github.com/fintrack/fintrack_backend/internal/models"
)

// ToModelSnapshot converts a domain snapshot to its persisted row shape.
func ToModelSnapshot(d domain.BalanceSnapshot) models.BalanceSnapshot {
	return models.BalanceSnapshot{
		SnapshotID: d.SnapshotID,
		AccountID:  d.AccountID,
		Date:       d.Date,
		Balance:    d.Balance,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			LastUpdatedAt: d.LastUpdatedAt,
		},
	}
}

// ToDomainSnapshot converts a persisted snapshot row to the domain shape.
func ToDomainSnapshot(m models.BalanceSnapshot) domain.BalanceSnapshot {
	return domain.BalanceSnapshot{
		SnapshotID: m.SnapshotID,
		AccountID:  m.AccountID,
		Date:       m.Date,
		Balance:    m.Balance,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			LastUpdatedAt: m.LastUpdatedAt,
		},
	}
}
