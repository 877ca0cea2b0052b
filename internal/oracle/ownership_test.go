package oracle_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clearlane/ownership-oracle/internal/domain"
	"github.com/clearlane/ownership-oracle/internal/mocks"
	"github.com/clearlane/ownership-oracle/internal/oracle"
)

type oracleMocks struct {
	ctrl       *gomock.Controller
	log        *mocks.MockLog
	timeOracle *mocks.MockTimeOracle
	tracker    *mocks.MockTracker
	feed       *mocks.MockFeed
	clock      *mocks.MockClock
	oracle     oracle.Oracle
}

func setupOracle(t *testing.T, now time.Time) *oracleMocks {
	ctrl := gomock.NewController(t)
	om := &oracleMocks{
		ctrl:       ctrl,
		log:        mocks.NewMockLog(ctrl),
		timeOracle: mocks.NewMockTimeOracle(ctrl),
		tracker:    mocks.NewMockTracker(ctrl),
		feed:       mocks.NewMockFeed(ctrl),
		clock:      mocks.NewMockClock(ctrl),
	}
	om.clock.EXPECT().Now().Return(now).AnyTimes()
	om.oracle = oracle.NewOracle(om.log, om.timeOracle, om.tracker, om.feed, om.clock)
	return om
}

func TestGetCurrentOwner(t *testing.T) {
	now := at(600)
	ctx := context.Background()

	history := []domain.OwnershipEvent{
		mkMint("a1", "X", at(0), 90),
		mkTransfer("a1", "X", "Y", at(10), 95),
	}

	t.Run("answers from the latest events when no timestamp is given", func(t *testing.T) {
		om := setupOracle(t, now)
		defer om.ctrl.Finish()

		om.log.EXPECT().QueryUpTo(ctx, "a1", now).Return(history, nil)
		om.feed.EXPECT().GetValue(ctx, "a1").Return(2000.0, "USD", nil)

		record, err := om.oracle.GetCurrentOwner(ctx, "a1", nil)
		require.NoError(t, err)
		assert.Equal(t, "Y", record.CurrentOwner)
		assert.Equal(t, 95, record.ConsensusLevel)
		assert.False(t, record.IsHistoricalRecord)
		assert.Nil(t, record.AsOfTime)
		require.NotNil(t, record.Encumbrance)
		assert.False(t, record.Encumbrance.IsEncumbered)
		assert.Equal(t, 2000.0, record.Encumbrance.TotalValue)
	})

	t.Run("recent timestamp stays on the fast path", func(t *testing.T) {
		om := setupOracle(t, now)
		defer om.ctrl.Finish()

		recent := now.Add(-time.Minute)
		om.log.EXPECT().QueryUpTo(ctx, "a1", recent).Return(history, nil)
		om.feed.EXPECT().GetValue(ctx, "a1").Return(2000.0, "USD", nil)

		record, err := om.oracle.GetCurrentOwner(ctx, "a1", &recent)
		require.NoError(t, err)
		assert.Equal(t, "Y", record.CurrentOwner)
	})

	t.Run("stale timestamp is delegated to the time-travel oracle", func(t *testing.T) {
		om := setupOracle(t, now)
		defer om.ctrl.Finish()

		stale := now.Add(-10 * time.Minute)
		historical := &domain.OwnershipRecord{
			AssetID:            "a1",
			CurrentOwner:       "X",
			IsHistoricalRecord: true,
			AsOfTime:           &stale,
		}
		om.timeOracle.EXPECT().GetOwnerAtTime(ctx, "a1", stale).Return(historical, nil)

		record, err := om.oracle.GetCurrentOwner(ctx, "a1", &stale)
		require.NoError(t, err)
		assert.Same(t, historical, record)
	})

	t.Run("empty asset id is not found", func(t *testing.T) {
		om := setupOracle(t, now)
		defer om.ctrl.Finish()

		_, err := om.oracle.GetCurrentOwner(ctx, "", nil)
		require.Error(t, err)
		assert.True(t, domain.IsKind(err, domain.KindNotFound))
	})
}

func TestCheckEncumbranceStatus(t *testing.T) {
	now := at(600)
	ctx := context.Background()

	history := []domain.OwnershipEvent{
		mkMint("a1", "Y", at(0), 95),
		mkPledge("a1", "Y", "enc-1", 500, at(10), at(9000), false),
	}

	t.Run("available and encumbered value always sum to the total", func(t *testing.T) {
		om := setupOracle(t, now)
		defer om.ctrl.Finish()

		om.log.EXPECT().QueryUpTo(ctx, "a1", now).Return(history, nil)
		om.feed.EXPECT().GetValue(ctx, "a1").Return(2000.0, "USD", nil)

		status, err := om.oracle.CheckEncumbrance(ctx, "a1")
		require.NoError(t, err)
		assert.True(t, status.IsEncumbered)
		assert.Equal(t, 500.0, status.TotalEncumberedValue)
		assert.Equal(t, 1500.0, status.AvailableValue)
		assert.Equal(t, status.TotalValue, status.AvailableValue+status.TotalEncumberedValue)
		assert.False(t, status.OverEncumbered)
	})

	t.Run("feed failure falls back to the latest event value", func(t *testing.T) {
		om := setupOracle(t, now)
		defer om.ctrl.Finish()

		om.log.EXPECT().QueryUpTo(ctx, "a1", now).Return(history, nil)
		om.feed.EXPECT().GetValue(ctx, "a1").Return(0.0, "", errors.New("quote service down"))

		status, err := om.oracle.CheckEncumbrance(ctx, "a1")
		require.NoError(t, err)
		assert.Equal(t, 1000.0, status.TotalValue)
	})

	t.Run("pledge exceeding asset value clamps available to zero", func(t *testing.T) {
		om := setupOracle(t, now)
		defer om.ctrl.Finish()

		om.log.EXPECT().QueryUpTo(ctx, "a1", now).Return(history, nil)
		om.feed.EXPECT().GetValue(ctx, "a1").Return(300.0, "USD", nil)

		status, err := om.oracle.CheckEncumbrance(ctx, "a1")
		require.NoError(t, err)
		assert.Equal(t, 0.0, status.AvailableValue)
		assert.True(t, status.OverEncumbered)
	})
}

func TestGetOwnershipHistory(t *testing.T) {
	now := at(600)
	ctx := context.Background()

	t.Run("passes the range through in log order", func(t *testing.T) {
		om := setupOracle(t, now)
		defer om.ctrl.Finish()

		events := []domain.OwnershipEvent{
			mkMint("a1", "X", at(0), 90),
			mkTransfer("a1", "X", "Y", at(10), 95),
		}
		om.log.EXPECT().QueryRange(ctx, "a1", at(0), at(100)).Return(events, nil)

		got, err := om.oracle.GetOwnershipHistory(ctx, "a1", at(0), at(100))
		require.NoError(t, err)
		assert.Equal(t, events, got)
	})

	t.Run("empty asset id is invalid", func(t *testing.T) {
		om := setupOracle(t, now)
		defer om.ctrl.Finish()

		_, err := om.oracle.GetOwnershipHistory(ctx, "", at(0), at(100))
		require.Error(t, err)
		assert.True(t, domain.IsKind(err, domain.KindInvalidArgument))
	})
}

func TestGetPortfolio(t *testing.T) {
	now := at(600)
	ctx := context.Background()

	snapshot := &domain.PortfolioSnapshot{
		OwnerID: "Y",
		Assets: []domain.AssetOwnership{
			{AssetID: "a1", OwnerID: "Y", AssetType: "bond", Value: 1000, IsEncumbered: false, AsOfTime: &now},
			{AssetID: "a2", OwnerID: "Y", AssetType: "bond", Value: 2000, IsEncumbered: true, AsOfTime: &now},
		},
	}

	t.Run("filters encumbered assets by default", func(t *testing.T) {
		om := setupOracle(t, now)
		defer om.ctrl.Finish()

		om.timeOracle.EXPECT().GetPortfolioSnapshot(ctx, "Y", now).Return(snapshot, nil)

		portfolio, err := om.oracle.GetPortfolio(ctx, "Y", false)
		require.NoError(t, err)
		require.Len(t, portfolio, 1)
		assert.Equal(t, "a1", portfolio[0].AssetID)
		assert.Nil(t, portfolio[0].AsOfTime)
	})

	t.Run("includes encumbered assets on request", func(t *testing.T) {
		om := setupOracle(t, now)
		defer om.ctrl.Finish()

		om.timeOracle.EXPECT().GetPortfolioSnapshot(ctx, "Y", now).Return(snapshot, nil)

		portfolio, err := om.oracle.GetPortfolio(ctx, "Y", true)
		require.NoError(t, err)
		assert.Len(t, portfolio, 2)
	})

	t.Run("empty owner id is invalid", func(t *testing.T) {
		om := setupOracle(t, now)
		defer om.ctrl.Finish()

		_, err := om.oracle.GetPortfolio(ctx, "", false)
		require.Error(t, err)
		assert.True(t, domain.IsKind(err, domain.KindInvalidArgument))
	})
}

func TestGetAvailableAssets(t *testing.T) {
	now := at(600)
	ctx := context.Background()

	snapshot := &domain.PortfolioSnapshot{
		OwnerID: "Y",
		Assets: []domain.AssetOwnership{
			{AssetID: "a1", OwnerID: "Y", AssetType: "bond", Value: 1000},
			{AssetID: "a2", OwnerID: "Y", AssetType: "bond", Value: 5000},
			{AssetID: "a3", OwnerID: "Y", AssetType: "equity", Value: 3000},
			{AssetID: "a4", OwnerID: "Y", AssetType: "bond", Value: 200},
			{AssetID: "a5", OwnerID: "Y", AssetType: "bond", Value: 4000, IsEncumbered: true},
		},
	}

	om := setupOracle(t, now)
	defer om.ctrl.Finish()

	t.Run("sorts descending by value above the floor", func(t *testing.T) {
		om.timeOracle.EXPECT().GetPortfolioSnapshot(ctx, "Y", now).Return(snapshot, nil)

		available, err := om.oracle.GetAvailableAssets(ctx, "Y", 500, nil)
		require.NoError(t, err)
		require.Len(t, available, 3)
		assert.Equal(t, "a2", available[0].AssetID)
		assert.Equal(t, "a3", available[1].AssetID)
		assert.Equal(t, "a1", available[2].AssetID)
	})

	t.Run("asset type filter narrows the result", func(t *testing.T) {
		om.timeOracle.EXPECT().GetPortfolioSnapshot(ctx, "Y", now).Return(snapshot, nil)

		available, err := om.oracle.GetAvailableAssets(ctx, "Y", 0, []string{"equity"})
		require.NoError(t, err)
		require.Len(t, available, 1)
		assert.Equal(t, "a3", available[0].AssetID)
	})
}

func TestVerifyOwnershipClaim(t *testing.T) {
	now := at(600)
	ctx := context.Background()
	claimTime := at(100)

	t.Run("confirms a matching owner with evidence", func(t *testing.T) {
		om := setupOracle(t, now)
		defer om.ctrl.Finish()

		om.timeOracle.EXPECT().GetOwnerAtTime(ctx, "a1", claimTime).Return(&domain.OwnershipRecord{
			AssetID:            "a1",
			CurrentOwner:       "Y",
			ConsensusLevel:     95,
			LastTransferTime:   at(10),
			LastTransferTxHash: "0xbbb22200bb",
		}, nil)

		verification, err := om.oracle.VerifyOwnershipClaim(ctx, "a1", "Y", claimTime)
		require.NoError(t, err)
		assert.True(t, verification.IsValid)
		assert.Equal(t, 95, verification.ConsensusLevel)
		assert.NotEmpty(t, verification.Evidence)
	})

	t.Run("rejects a claim by the wrong owner", func(t *testing.T) {
		om := setupOracle(t, now)
		defer om.ctrl.Finish()

		om.timeOracle.EXPECT().GetOwnerAtTime(ctx, "a1", claimTime).Return(&domain.OwnershipRecord{
			AssetID:      "a1",
			CurrentOwner: "Y",
		}, nil)

		verification, err := om.oracle.VerifyOwnershipClaim(ctx, "a1", "Z", claimTime)
		require.NoError(t, err)
		assert.False(t, verification.IsValid)
		assert.Contains(t, verification.Reason, "Y")
	})

	t.Run("unresolvable asset is a failed verification, not an error", func(t *testing.T) {
		om := setupOracle(t, now)
		defer om.ctrl.Finish()

		om.timeOracle.EXPECT().GetOwnerAtTime(ctx, "a1", claimTime).
			Return(nil, domain.NewNotFound("no ownership event for asset a1 before %s", claimTime))

		verification, err := om.oracle.VerifyOwnershipClaim(ctx, "a1", "Y", claimTime)
		require.NoError(t, err)
		assert.False(t, verification.IsValid)
		assert.NotEmpty(t, verification.Reason)
	})

	t.Run("log failures still propagate", func(t *testing.T) {
		om := setupOracle(t, now)
		defer om.ctrl.Finish()

		om.timeOracle.EXPECT().GetOwnerAtTime(ctx, "a1", claimTime).
			Return(nil, domain.NewUpstreamFailure("event log unavailable", errors.New("connection refused")))

		_, err := om.oracle.VerifyOwnershipClaim(ctx, "a1", "Y", claimTime)
		require.Error(t, err)
		assert.True(t, domain.IsKind(err, domain.KindUpstreamFailure))
	})
}
