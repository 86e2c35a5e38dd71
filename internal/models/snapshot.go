package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BalanceSnapshot is the persisted row shape for a manual balance snapshot.
// (account_id, date) carries a unique constraint.
type BalanceSnapshot struct {
	SnapshotID string          `db:"snapshot_id"`
	AccountID  string          `db:"account_id"`
	Date       time.Time       `db:"date"`
	Balance    decimal.Decimal `db:"balance"`
	AuditFields
}
