package dto

import (
	"time"

	"github.com/fintrack/fintrack_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// UpsertSnapshotRequest records a manual balance snapshot for one day.
type UpsertSnapshotRequest struct {
	Date    time.Time       `json:"date" binding:"required"`
	Balance decimal.Decimal `json:"balance" binding:"required"`
}

// SnapshotResponse is the caller-facing shape of a balance snapshot.
type SnapshotResponse struct {
	SnapshotID string    `json:"snapshotID"`
	AccountID  string    `json:"accountID"`
	Date       time.Time `json:"date"`
	Balance    string    `json:"balance"`
}

// ToSnapshotResponse maps a domain snapshot to its response shape.
func ToSnapshotResponse(s *domain.BalanceSnapshot) SnapshotResponse {
	return SnapshotResponse{
		SnapshotID: s.SnapshotID,
		AccountID:  s.AccountID,
		Date:       s.Date,
		Balance:    s.Balance.String(),
	}
}

// ToSnapshotResponses maps a slice of domain snapshots.
func ToSnapshotResponses(snapshots []domain.BalanceSnapshot) []SnapshotResponse {
	out := make([]SnapshotResponse, len(snapshots))
	for i := range snapshots {
		out[i] = ToSnapshotResponse(&snapshots[i])
	}
	return out
}
