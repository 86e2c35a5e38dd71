package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BalanceSnapshot is a user-asserted point-in-time balance, independent of
// operation replay. At most one exists per (account, date); the date carries
// day precision only.
type BalanceSnapshot struct {
	SnapshotID string          `json:"snapshotID"`
	AccountID  string          `json:"accountID"`
	Date       time.Time       `json:"date"`
	Balance    decimal.Decimal `json:"balance"`
	AuditFields
}
