package services

import (
	"context"
	"time"

	"github.com/fintrack/fintrack_backend/internal/core/domain"
	"github.com/fintrack/fintrack_backend/internal/dto"
)

// SnapshotSvcFacade owns manual balance snapshots and the snapshot-based
// chart view built from them.
type SnapshotSvcFacade interface {
	UpsertSnapshot(ctx context.Context, accountID string, req dto.UpsertSnapshotRequest) (*domain.BalanceSnapshot, error)
	DeleteSnapshot(ctx context.Context, accountID string, date time.Time) error
	ListSnapshots(ctx context.Context, accountID string, from, to time.Time) ([]domain.BalanceSnapshot, error)
	GetSnapshotChart(ctx context.Context, accountID string, year int, month time.Month) (*domain.SnapshotChartData, error)
}
