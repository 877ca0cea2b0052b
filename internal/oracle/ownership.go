package oracle

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/clearlane/ownership-oracle/internal/adapter"
	"github.com/clearlane/ownership-oracle/internal/domain"
	"github.com/clearlane/ownership-oracle/internal/eventlog"
	"github.com/clearlane/ownership-oracle/internal/logger"
	"github.com/clearlane/ownership-oracle/internal/valuation"
)

// FreshnessWindow bounds how old an as-of timestamp may be before a current
// ownership query is delegated to the time-travel oracle
const FreshnessWindow = 5 * time.Minute

// Oracle answers present-time ownership, portfolio and availability queries.
// Read-only; all state changes go through the encumbrance tracker or the
// observer bridge.
//
//go:generate mockgen -source=ownership.go -destination=../mocks/ownership.go -package=mocks -mock_names=Oracle=MockOracle
type Oracle interface {
	// GetCurrentOwner returns the ownership record of an asset. A nil or
	// recent at timestamp is answered from the latest events; anything older
	// than the freshness window is delegated to the time-travel oracle.
	GetCurrentOwner(ctx context.Context, assetID string, at *time.Time) (*domain.OwnershipRecord, error)
	// GetOwnershipHistory returns the ordered events for an asset in [from, to]
	GetOwnershipHistory(ctx context.Context, assetID string, from, to time.Time) ([]domain.OwnershipEvent, error)
	// CheckEncumbrance summarizes the encumbrance position of an asset
	CheckEncumbrance(ctx context.Context, assetID string) (*domain.EncumbranceStatus, error)
	// GetPortfolio returns the assets currently owned by ownerID
	GetPortfolio(ctx context.Context, ownerID string, includeEncumbered bool) ([]domain.AssetOwnership, error)
	// GetAvailableAssets returns the owner's unencumbered assets worth at
	// least minValue, sorted descending by value
	GetAvailableAssets(ctx context.Context, ownerID string, minValue float64, assetTypes []string) ([]domain.AssetOwnership, error)
	// VerifyOwnershipClaim checks whether claimedOwner owned the asset at
	// claimTimestamp
	VerifyOwnershipClaim(ctx context.Context, assetID, claimedOwner string, claimTimestamp time.Time) (*domain.OwnershipVerification, error)
}

type oracle struct {
	log        eventlog.Log
	timeOracle TimeOracle
	tracker    Tracker
	feed       valuation.Feed
	clock      adapter.Clock
}

// NewOracle creates a new ownership oracle
func NewOracle(log eventlog.Log, timeOracle TimeOracle, tracker Tracker, feed valuation.Feed, clock adapter.Clock) Oracle {
	return &oracle{
		log:        log,
		timeOracle: timeOracle,
		tracker:    tracker,
		feed:       feed,
		clock:      clock,
	}
}

// GetCurrentOwner returns the ownership record of an asset. Queries older
// than the freshness window delegate to the time-travel oracle so both paths
// project ownership identically.
func (o *oracle) GetCurrentOwner(ctx context.Context, assetID string, at *time.Time) (*domain.OwnershipRecord, error) {
	if assetID == "" {
		return nil, domain.NewNotFound("asset id is required")
	}

	now := o.clock.Now()
	if at != nil && now.Sub(*at) > FreshnessWindow {
		return o.timeOracle.GetOwnerAtTime(ctx, assetID, *at)
	}

	target := now
	if at != nil {
		target = *at
	}

	events, err := o.log.QueryUpTo(ctx, assetID, target)
	if err != nil {
		return nil, err
	}

	record, err := recordAt(events, assetID, target)
	if err != nil {
		return nil, err
	}
	record.IsHistoricalRecord = false
	record.AsOfTime = nil

	status, err := o.encumbranceStatus(ctx, assetID, record.Value, events)
	if err != nil {
		return nil, err
	}
	record.Encumbrance = status

	return record, nil
}

// GetOwnershipHistory returns the ordered events for an asset in [from, to]
func (o *oracle) GetOwnershipHistory(ctx context.Context, assetID string, from, to time.Time) ([]domain.OwnershipEvent, error) {
	if assetID == "" {
		return nil, domain.NewInvalidArgument("asset id is required")
	}
	return o.log.QueryRange(ctx, assetID, from, to)
}

// CheckEncumbrance summarizes the encumbrance position of an asset. The
// total value comes from the valuation feed, falling back to the value on
// the latest ownership event when no quote is available.
func (o *oracle) CheckEncumbrance(ctx context.Context, assetID string) (*domain.EncumbranceStatus, error) {
	if assetID == "" {
		return nil, domain.NewInvalidArgument("asset id is required")
	}

	events, err := o.log.QueryUpTo(ctx, assetID, o.clock.Now())
	if err != nil {
		return nil, err
	}

	var fallbackValue float64
	if decider := ownerAt(events, o.clock.Now()); decider != nil {
		fallbackValue = decider.Value
	}

	return o.encumbranceStatus(ctx, assetID, fallbackValue, events)
}

// encumbranceStatus builds the encumbrance summary from an event window.
// Available value is clamped at zero; a pledged amount exceeding the asset
// value marks the status over-encumbered instead of going negative.
func (o *oracle) encumbranceStatus(ctx context.Context, assetID string, fallbackValue float64, events []domain.OwnershipEvent) (*domain.EncumbranceStatus, error) {
	active := activeEncumbrances(events)

	var encumbered float64
	for i := range active {
		encumbered += active[i].Amount
	}

	totalValue, _, err := o.feed.GetValue(ctx, assetID)
	if err != nil {
		logger.WarnCtx(ctx, "valuation feed unavailable, using latest event value",
			zap.String("asset_id", assetID), zap.Error(err))
		totalValue = fallbackValue
	}

	status := &domain.EncumbranceStatus{
		IsEncumbered:         len(active) > 0,
		ActiveEncumbrances:   active,
		TotalEncumberedValue: encumbered,
		TotalValue:           totalValue,
		AvailableValue:       totalValue - encumbered,
	}
	if status.AvailableValue < 0 {
		status.AvailableValue = 0
		status.OverEncumbered = true
	}
	return status, nil
}

// GetPortfolio returns the assets currently owned by ownerID. Encumbered
// assets are filtered out unless includeEncumbered is set.
func (o *oracle) GetPortfolio(ctx context.Context, ownerID string, includeEncumbered bool) ([]domain.AssetOwnership, error) {
	if ownerID == "" {
		return nil, domain.NewInvalidArgument("owner id is required")
	}

	snapshot, err := o.timeOracle.GetPortfolioSnapshot(ctx, ownerID, o.clock.Now())
	if err != nil {
		return nil, err
	}

	portfolio := make([]domain.AssetOwnership, 0, len(snapshot.Assets))
	for _, asset := range snapshot.Assets {
		if !includeEncumbered && asset.IsEncumbered {
			continue
		}
		asset.AsOfTime = nil
		portfolio = append(portfolio, asset)
	}
	return portfolio, nil
}

// GetAvailableAssets returns the owner's unencumbered assets worth at least
// minValue, sorted descending by value
func (o *oracle) GetAvailableAssets(ctx context.Context, ownerID string, minValue float64, assetTypes []string) ([]domain.AssetOwnership, error) {
	portfolio, err := o.GetPortfolio(ctx, ownerID, false)
	if err != nil {
		return nil, err
	}

	typeFilter := make(map[string]bool, len(assetTypes))
	for _, assetType := range assetTypes {
		typeFilter[assetType] = true
	}

	available := make([]domain.AssetOwnership, 0, len(portfolio))
	for _, asset := range portfolio {
		if asset.Value < minValue {
			continue
		}
		if len(typeFilter) > 0 && !typeFilter[asset.AssetType] {
			continue
		}
		available = append(available, asset)
	}

	sort.Slice(available, func(i, j int) bool {
		return available[i].Value > available[j].Value
	})
	return available, nil
}

// VerifyOwnershipClaim checks whether claimedOwner owned the asset at
// claimTimestamp. An owner that cannot be resolved is a failed verification,
// not an error.
func (o *oracle) VerifyOwnershipClaim(ctx context.Context, assetID, claimedOwner string, claimTimestamp time.Time) (*domain.OwnershipVerification, error) {
	if assetID == "" {
		return nil, domain.NewInvalidArgument("asset id is required")
	}
	if claimedOwner == "" {
		return nil, domain.NewInvalidArgument("claimed owner is required")
	}

	verifiedAt := o.clock.Now().UTC()
	record, err := o.timeOracle.GetOwnerAtTime(ctx, assetID, claimTimestamp)
	if err != nil {
		if domain.IsKind(err, domain.KindNotFound) {
			return &domain.OwnershipVerification{
				IsValid:    false,
				Reason:     err.Error(),
				VerifiedAt: verifiedAt,
			}, nil
		}
		return nil, err
	}

	claimed := domain.NormalizeOwner(claimedOwner)
	verification := &domain.OwnershipVerification{
		IsValid:        record.CurrentOwner == claimed,
		ConsensusLevel: record.ConsensusLevel,
		VerifiedAt:     verifiedAt,
	}
	if verification.IsValid {
		verification.Reason = "ownership confirmed by event log projection"
		verification.Evidence = []string{
			"owner " + record.CurrentOwner + " established at " + record.LastTransferTime.UTC().Format(time.RFC3339),
		}
		if record.LastTransferTxHash != "" {
			verification.Evidence = append(verification.Evidence, "transaction "+record.LastTransferTxHash)
		}
	} else {
		verification.Reason = "asset was owned by " + record.CurrentOwner + " at the claimed time"
	}
	return verification, nil
}
