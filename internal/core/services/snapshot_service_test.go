package services_test

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/fintrack/fintrack_backend/internal/apperrors"
	"github.com/fintrack/fintrack_backend/internal/core/domain"
	portssvc "github.com/fintrack/fintrack_backend/internal/core/ports/services"
	"github.com/fintrack/fintrack_backend/internal/core/services"
	"github.com/fintrack/fintrack_backend/internal/dto"
	"github.com/fintrack/fintrack_backend/internal/utils/timeseries"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

// fakeSnapshotStore is an in-memory snapshot repository keyed by
// (account, date), mirroring the unique-constraint upsert semantics.
type fakeSnapshotStore struct {
	snapshots map[string]domain.BalanceSnapshot
}

func newFakeSnapshotStore() *fakeSnapshotStore {
	return &fakeSnapshotStore{snapshots: make(map[string]domain.BalanceSnapshot)}
}

func snapKey(accountID string, date time.Time) string {
	return accountID + "|" + date.UTC().Format("2006-01-02")
}

func (f *fakeSnapshotStore) UpsertSnapshot(ctx context.Context, snapshot domain.BalanceSnapshot) error {
	f.snapshots[snapKey(snapshot.AccountID, snapshot.Date)] = snapshot
	return nil
}

func (f *fakeSnapshotStore) DeleteSnapshot(ctx context.Context, accountID string, date time.Time) error {
	key := snapKey(accountID, date)
	if _, ok := f.snapshots[key]; !ok {
		return apperrors.ErrNotFound
	}
	delete(f.snapshots, key)
	return nil
}

func (f *fakeSnapshotStore) FindSnapshotsByAccountBetween(ctx context.Context, accountID string, from, to time.Time) ([]domain.BalanceSnapshot, error) {
	var out []domain.BalanceSnapshot
	for _, s := range f.snapshots {
		if s.AccountID == accountID && !s.Date.Before(from) && !s.Date.After(to) {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

// --- Test Suite Setup ---

type SnapshotServiceTestSuite struct {
	suite.Suite
	store *fakeSnapshotStore
	now   time.Time
}

func (suite *SnapshotServiceTestSuite) SetupTest() {
	suite.store = newFakeSnapshotStore()
	suite.now = time.Date(2024, time.June, 15, 10, 0, 0, 0, time.UTC)
}

func (suite *SnapshotServiceTestSuite) newService() portssvc.SnapshotSvcFacade {
	return services.NewSnapshotService(suite.store, services.WithSnapshotClock(func() time.Time { return suite.now }))
}

func (suite *SnapshotServiceTestSuite) record(day time.Time, balance string) {
	_, err := suite.newService().UpsertSnapshot(context.Background(), "acc-1", dto.UpsertSnapshotRequest{
		Date:    day,
		Balance: decimal.RequireFromString(balance),
	})
	suite.Require().NoError(err)
}

// --- Snapshot CRUD ---

func (suite *SnapshotServiceTestSuite) TestUpsertSnapshot_ReplacesSameDay() {
	ctx := context.Background()
	svc := suite.newService()
	day := time.Date(2024, time.June, 10, 18, 30, 0, 0, time.UTC)

	suite.record(day, "500")
	suite.record(day, "620") // same calendar day, later entry wins

	snapshots, err := svc.ListSnapshots(ctx, "acc-1",
		time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, time.June, 30, 0, 0, 0, 0, time.UTC))
	suite.Require().NoError(err)
	suite.Require().Len(snapshots, 1)
	suite.Equal("620", snapshots[0].Balance.String())
	suite.Equal(timeseries.TruncateToDay(day), snapshots[0].Date, "snapshot dates are day-granular")
}

func (suite *SnapshotServiceTestSuite) TestDeleteSnapshot() {
	ctx := context.Background()
	svc := suite.newService()
	day := time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC)

	suite.record(day, "500")
	suite.Require().NoError(svc.DeleteSnapshot(ctx, "acc-1", day))
	suite.ErrorIs(svc.DeleteSnapshot(ctx, "acc-1", day), apperrors.ErrNotFound)
}

// --- Snapshot chart ---

func (suite *SnapshotServiceTestSuite) TestGetSnapshotChart_ForwardFillAndTruncation() {
	ctx := context.Background()
	svc := suite.newService()

	// Snapshots on June 1 and June 5; today is June 15 of a 30-day month.
	suite.record(time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC), "1000")
	suite.record(time.Date(2024, time.June, 5, 0, 0, 0, 0, time.UTC), "800")

	chart, err := svc.GetSnapshotChart(ctx, "acc-1", 2024, time.June)
	suite.Require().NoError(err)
	suite.Require().Len(chart.Labels, 30)
	suite.Equal(1, chart.Labels[0])
	suite.Equal(30, chart.Labels[29])

	// Actual holds only the snapshot days.
	suite.Require().NotNil(chart.Actual[0])
	suite.Equal("1000", chart.Actual[0].String())
	suite.Nil(chart.Actual[1])
	suite.Require().NotNil(chart.Actual[4])
	suite.Equal("800", chart.Actual[4].String())

	// The chart line forward-fills between snapshots and stops at today.
	suite.Equal("1000", chart.ActualForChart[3].String())
	suite.Equal("800", chart.ActualForChart[14].String())
	suite.Nil(chart.ActualForChart[15], "no chart values past today")
	suite.Nil(chart.ActualForChart[29])
}

func (suite *SnapshotServiceTestSuite) TestGetSnapshotChart_TrendNeedsTwoPoints() {
	ctx := context.Background()
	svc := suite.newService()

	suite.record(time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC), "1000")

	chart, err := svc.GetSnapshotChart(ctx, "acc-1", 2024, time.June)
	suite.Require().NoError(err)
	suite.Empty(chart.Trend, "a single point cannot support a regression")
}

func (suite *SnapshotServiceTestSuite) TestGetSnapshotChart_TrendProjectsDecline() {
	ctx := context.Background()
	svc := suite.newService()

	// A perfect straight line: 1000 on day 1, 900 on day 6; slope -20/day.
	suite.record(time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC), "1000")
	suite.record(time.Date(2024, time.June, 6, 0, 0, 0, 0, time.UTC), "900")

	chart, err := svc.GetSnapshotChart(ctx, "acc-1", 2024, time.June)
	suite.Require().NoError(err)
	suite.Require().Len(chart.Trend, 30)

	suite.Equal("1000", chart.Trend[0].String())
	suite.Equal("900", chart.Trend[5].String())
	suite.Equal("880", chart.Trend[6].String())
	// The projection keeps declining but never crosses zero.
	suite.Equal("420", chart.Trend[29].String())
	for _, v := range chart.Trend {
		suite.Require().NotNil(v)
		suite.False(v.IsNegative())
	}
}

func (suite *SnapshotServiceTestSuite) TestGetSnapshotChart_TrendFlooredAtZero() {
	ctx := context.Background()
	svc := suite.newService()

	// Steep decline: -300/day crosses zero within the month.
	suite.record(time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC), "600")
	suite.record(time.Date(2024, time.June, 2, 0, 0, 0, 0, time.UTC), "300")

	chart, err := svc.GetSnapshotChart(ctx, "acc-1", 2024, time.June)
	suite.Require().NoError(err)
	suite.Require().Len(chart.Trend, 30)
	suite.Equal("0", chart.Trend[2].String())
	suite.Equal("0", chart.Trend[29].String())
}

func (suite *SnapshotServiceTestSuite) TestGetSnapshotChart_BurndownFromPeak() {
	ctx := context.Background()
	svc := suite.newService()

	suite.record(time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC), "500")
	suite.record(time.Date(2024, time.June, 3, 0, 0, 0, 0, time.UTC), "870")

	chart, err := svc.GetSnapshotChart(ctx, "acc-1", 2024, time.June)
	suite.Require().NoError(err)
	suite.Require().Len(chart.Burndown, 30)

	suite.Equal("870", chart.Burndown[0].String(), "burndown starts at the month's peak")
	suite.True(chart.Burndown[29].IsZero())
	for i := 1; i < len(chart.Burndown); i++ {
		suite.True(chart.Burndown[i].LessThanOrEqual(*chart.Burndown[i-1]))
	}
}

func (suite *SnapshotServiceTestSuite) TestGetSnapshotChart_NoSnapshots() {
	ctx := context.Background()
	svc := suite.newService()

	chart, err := svc.GetSnapshotChart(ctx, "acc-1", 2024, time.June)
	suite.Require().NoError(err)

	suite.Empty(chart.Trend)
	suite.Empty(chart.Burndown)
	for _, v := range chart.Actual {
		suite.Nil(v)
	}
	for _, v := range chart.ActualForChart {
		suite.Nil(v)
	}
}

func (suite *SnapshotServiceTestSuite) TestGetSnapshotChart_PrevMonthIgnoresTruncation() {
	ctx := context.Background()
	svc := suite.newService()

	// One May snapshot; today is June 15 but May fills to its full length.
	suite.record(time.Date(2024, time.May, 2, 0, 0, 0, 0, time.UTC), "700")

	chart, err := svc.GetSnapshotChart(ctx, "acc-1", 2024, time.June)
	suite.Require().NoError(err)
	suite.Require().Len(chart.PrevMonth, 30)

	suite.Nil(chart.PrevMonth[0], "no value before the first snapshot")
	suite.Require().NotNil(chart.PrevMonth[1])
	suite.Equal("700", chart.PrevMonth[1].String())
	suite.Equal("700", chart.PrevMonth[29].String(), "previous month is not truncated to today")
}

func (suite *SnapshotServiceTestSuite) TestGetSnapshotChart_PastMonthNotTruncated() {
	ctx := context.Background()
	suite.now = time.Date(2024, time.September, 3, 0, 0, 0, 0, time.UTC)
	svc := suite.newService()

	suite.record(time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC), "1000")

	chart, err := svc.GetSnapshotChart(ctx, "acc-1", 2024, time.June)
	suite.Require().NoError(err)
	suite.Require().NotNil(chart.ActualForChart[29])
	suite.Equal("1000", chart.ActualForChart[29].String(), "a fully past month fills to its end")
}

func TestSnapshotServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SnapshotServiceTestSuite))
}
