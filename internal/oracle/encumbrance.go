package oracle

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/clearlane/ownership-oracle/internal/adapter"
	"github.com/clearlane/ownership-oracle/internal/domain"
	"github.com/clearlane/ownership-oracle/internal/eventlog"
	"github.com/clearlane/ownership-oracle/internal/logger"
)

// Tracker maintains pledge and lien state. All state is derived from the
// event log on every read; creating or releasing an encumbrance only appends
// an event.
//
//go:generate mockgen -source=encumbrance.go -destination=../mocks/encumbrance.go -package=mocks -mock_names=Tracker=MockTracker
type Tracker interface {
	// CheckEncumbrance reports whether an asset has any active encumbrance
	CheckEncumbrance(ctx context.Context, assetID string) (bool, error)
	// GetActiveEncumbrances returns the active encumbrances on an asset
	GetActiveEncumbrances(ctx context.Context, assetID string) ([]domain.Encumbrance, error)
	// GetAllPledges returns all active encumbrances pledged by an owner
	GetAllPledges(ctx context.Context, ownerID string) ([]domain.Encumbrance, error)
	// GetMaturitySchedule groups an owner's active pledges maturing within
	// the next hoursAhead hours into hour buckets, ascending by time
	GetMaturitySchedule(ctx context.Context, ownerID string, hoursAhead int) ([]domain.MaturitySchedule, error)
	// CreateEncumbrance validates the request and records a pledge event
	CreateEncumbrance(ctx context.Context, request *domain.CreateEncumbranceRequest) (*domain.Encumbrance, error)
	// ReleaseEncumbrance records a release event for an active encumbrance.
	// Releasing an already-released encumbrance is a no-op returning the
	// recorded release.
	ReleaseEncumbrance(ctx context.Context, encumbranceID, reason string) (*domain.EncumbranceRelease, error)
	// ReleaseMatured releases every active auto-release pledge whose
	// maturity has passed. Returns the number of releases recorded.
	ReleaseMatured(ctx context.Context) (int, error)
}

type tracker struct {
	log   eventlog.Log
	clock adapter.Clock
}

// NewTracker creates a new encumbrance tracker over the given event log
func NewTracker(log eventlog.Log, clock adapter.Clock) Tracker {
	return &tracker{log: log, clock: clock}
}

// CheckEncumbrance reports whether an asset has any active encumbrance
func (t *tracker) CheckEncumbrance(ctx context.Context, assetID string) (bool, error) {
	active, err := t.GetActiveEncumbrances(ctx, assetID)
	if err != nil {
		return false, err
	}
	return len(active) > 0, nil
}

// GetActiveEncumbrances returns the active encumbrances on an asset
func (t *tracker) GetActiveEncumbrances(ctx context.Context, assetID string) ([]domain.Encumbrance, error) {
	if assetID == "" {
		return nil, domain.NewInvalidArgument("asset id is required")
	}

	events, err := t.log.QueryUpTo(ctx, assetID, t.clock.Now())
	if err != nil {
		return nil, err
	}
	return activeEncumbrances(events), nil
}

// GetAllPledges returns all active encumbrances pledged by an owner
func (t *tracker) GetAllPledges(ctx context.Context, ownerID string) ([]domain.Encumbrance, error) {
	if ownerID == "" {
		return nil, domain.NewInvalidArgument("owner id is required")
	}

	events, err := t.log.QueryEncumbranceEvents(ctx, t.clock.Now())
	if err != nil {
		return nil, err
	}

	var pledges []domain.Encumbrance
	for _, enc := range activeEncumbrances(events) {
		if enc.Owner == ownerID {
			pledges = append(pledges, enc)
		}
	}
	return pledges, nil
}

// GetMaturitySchedule groups an owner's active, not-yet-matured pledges
// maturing within [now, now+hoursAhead] into hour buckets, ascending by time.
// Answers "when will how much value become available again".
func (t *tracker) GetMaturitySchedule(ctx context.Context, ownerID string, hoursAhead int) ([]domain.MaturitySchedule, error) {
	if hoursAhead <= 0 {
		return nil, domain.NewInvalidArgument("hours ahead must be positive")
	}

	pledges, err := t.GetAllPledges(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	now := t.clock.Now()
	horizon := now.Add(time.Duration(hoursAhead) * time.Hour)

	buckets := make(map[time.Time][]domain.Encumbrance)
	for _, enc := range pledges {
		if enc.MaturityTime.Before(now) || enc.MaturityTime.After(horizon) {
			continue
		}
		bucket := enc.MaturityTime.UTC().Truncate(time.Hour)
		buckets[bucket] = append(buckets[bucket], enc)
	}

	schedule := make([]domain.MaturitySchedule, 0, len(buckets))
	for bucket, encumbrances := range buckets {
		entry := domain.MaturitySchedule{
			Time:   bucket,
			Assets: encumbrances,
		}
		assetTypes := make(map[string]bool)
		counterparties := make(map[string]bool)
		chains := make(map[domain.Chain]bool)
		for _, enc := range encumbrances {
			entry.TotalValueFreeing += enc.Amount
			if enc.AutoRelease {
				entry.HasAutoRelease = true
			}
			if !assetTypes[string(enc.Type)] {
				assetTypes[string(enc.Type)] = true
				entry.AssetTypes = append(entry.AssetTypes, string(enc.Type))
			}
			if !counterparties[enc.Counterparty] {
				counterparties[enc.Counterparty] = true
				entry.Counterparties = append(entry.Counterparties, enc.Counterparty)
			}
			if !chains[enc.Chain] {
				chains[enc.Chain] = true
				entry.Chains = append(entry.Chains, enc.Chain)
			}
		}
		schedule = append(schedule, entry)
	}

	sort.Slice(schedule, func(i, j int) bool {
		return schedule[i].Time.Before(schedule[j].Time)
	})
	return schedule, nil
}

// CreateEncumbrance validates the request and records a pledge event. The
// full terms ride on the event so the encumbrance remains derivable from the
// log alone.
func (t *tracker) CreateEncumbrance(ctx context.Context, request *domain.CreateEncumbranceRequest) (*domain.Encumbrance, error) {
	if request == nil {
		return nil, domain.NewInvalidArgument("request is required")
	}
	if err := request.Validate(); err != nil {
		return nil, err
	}

	now := t.clock.Now().UTC()
	if !request.MaturityTime.After(now) {
		return nil, domain.NewInvalidArgument("maturity time must be in the future")
	}

	encType := request.Type
	encumbrance := &domain.Encumbrance{
		EncumbranceID: uuid.New().String(),
		AssetID:       request.AssetID,
		Type:          request.Type,
		Owner:         domain.NormalizeOwner(request.Owner),
		Counterparty:  request.Counterparty,
		Amount:        request.Amount,
		StartTime:     now,
		MaturityTime:  request.MaturityTime,
		Priority:      request.Priority,
		Chain:         request.Chain,
		InterestRate:  request.InterestRate,
		Haircut:       request.Haircut,
		AutoRelease:   request.AutoRelease,
		Terms:         request.Terms,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	maturity := request.MaturityTime
	event := &domain.OwnershipEvent{
		EventID:         uuid.New().String(),
		AssetID:         request.AssetID,
		EventType:       domain.EventTypePledge,
		FromOwner:       encumbrance.Owner,
		Value:           request.Amount,
		Chain:           request.Chain,
		Timestamp:       now,
		Counterparty:    &encumbrance.Counterparty,
		EncumbranceType: &encType,
		MaturityTime:    &maturity,
		EncumbranceID:   &encumbrance.EncumbranceID,
		Encumbrance:     encumbrance,
		ConsensusLevel:  100,
		RecordedAt:      now,
	}
	if err := t.log.Append(ctx, event); err != nil {
		return nil, err
	}

	logger.InfoCtx(ctx, "encumbrance created",
		zap.String("encumbrance_id", encumbrance.EncumbranceID),
		zap.String("asset_id", request.AssetID),
		zap.String("type", string(request.Type)),
		zap.Float64("amount", request.Amount))

	return encumbrance, nil
}

// ReleaseEncumbrance records a release event for an active encumbrance.
// Releasing an already-released encumbrance returns the recorded release
// instead of failing.
func (t *tracker) ReleaseEncumbrance(ctx context.Context, encumbranceID, reason string) (*domain.EncumbranceRelease, error) {
	return t.release(ctx, encumbranceID, reason, false)
}

func (t *tracker) release(ctx context.Context, encumbranceID, reason string, automatic bool) (*domain.EncumbranceRelease, error) {
	if encumbranceID == "" {
		return nil, domain.NewInvalidArgument("encumbrance id is required")
	}

	events, err := t.log.QueryEncumbrance(ctx, encumbranceID)
	if err != nil {
		return nil, err
	}

	state, ok := projectEncumbrances(events)[encumbranceID]
	if !ok || state.pledge == nil {
		return nil, domain.NewNotFound("encumbrance %s not found", encumbranceID)
	}
	if state.release != nil {
		// Already released, return what was recorded
		return &domain.EncumbranceRelease{
			EncumbranceID:          encumbranceID,
			AssetID:                state.pledge.AssetID,
			ReleaseTime:            state.release.Timestamp,
			ReleaseTransactionHash: state.release.TransactionHash,
			Reason:                 "previously released",
			WasAutomatic:           false,
		}, nil
	}

	now := t.clock.Now().UTC()
	if reason == "" {
		reason = "released by holder"
		if automatic {
			reason = "matured"
		}
	}

	event := &domain.OwnershipEvent{
		EventID:        uuid.New().String(),
		AssetID:        state.pledge.AssetID,
		EventType:      domain.EventTypeRelease,
		FromOwner:      state.pledge.FromOwner,
		Chain:          state.pledge.Chain,
		Timestamp:      now,
		EncumbranceID:  &encumbranceID,
		ConsensusLevel: 100,
		RecordedAt:     now,
	}
	if err := t.log.Append(ctx, event); err != nil {
		return nil, err
	}

	logger.InfoCtx(ctx, "encumbrance released",
		zap.String("encumbrance_id", encumbranceID),
		zap.String("asset_id", state.pledge.AssetID),
		zap.Bool("automatic", automatic))

	return &domain.EncumbranceRelease{
		EncumbranceID: encumbranceID,
		AssetID:       state.pledge.AssetID,
		ReleaseTime:   now,
		Reason:        reason,
		WasAutomatic:  automatic,
	}, nil
}

// ReleaseMatured releases every active auto-release pledge whose maturity has
// passed. A single failed release is logged and skipped so the rest of the
// batch still completes.
func (t *tracker) ReleaseMatured(ctx context.Context) (int, error) {
	now := t.clock.Now()
	events, err := t.log.QueryEncumbranceEvents(ctx, now)
	if err != nil {
		return 0, err
	}

	released := 0
	for _, enc := range activeEncumbrances(events) {
		if !enc.AutoRelease || enc.MaturityTime.After(now) {
			continue
		}
		if _, err := t.release(ctx, enc.EncumbranceID, fmt.Sprintf("matured at %s", enc.MaturityTime.UTC().Format(time.RFC3339)), true); err != nil {
			logger.ErrorCtx(ctx, err,
				zap.String("message", "failed to auto-release matured encumbrance"),
				zap.String("encumbrance_id", enc.EncumbranceID),
				zap.String("asset_id", enc.AssetID))
			continue
		}
		released++
	}
	return released, nil
}
