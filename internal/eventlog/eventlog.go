package eventlog

import (
	"context"
	"time"

	"github.com/clearlane/ownership-oracle/internal/domain"
)

// Log defines the interface to the append-only ownership event log. All
// query methods return events in the canonical log order
// (timestamp, recorded_at, event_id).
//
//go:generate mockgen -source=eventlog.go -destination=../mocks/eventlog.go -package=mocks -mock_names=Log=MockLog
type Log interface {
	// Append appends a single ownership event. Events are immutable once
	// appended; appending an event with a duplicate event id fails.
	Append(ctx context.Context, event *domain.OwnershipEvent) error

	// QueryRange returns all events for an asset with from <= timestamp <= to
	QueryRange(ctx context.Context, assetID string, from, to time.Time) ([]domain.OwnershipEvent, error)

	// QueryUpTo returns all events for an asset with timestamp <= upTo
	QueryUpTo(ctx context.Context, assetID string, upTo time.Time) ([]domain.OwnershipEvent, error)

	// QueryByOwner returns all events with timestamp <= upTo that reference
	// ownerID as the receiving owner. Used to discover portfolio candidates;
	// the per-asset projection decides actual ownership.
	QueryByOwner(ctx context.Context, ownerID string, upTo time.Time) ([]domain.OwnershipEvent, error)

	// QueryEncumbranceEvents returns all pledge and release events with
	// timestamp <= upTo, across all assets
	QueryEncumbranceEvents(ctx context.Context, upTo time.Time) ([]domain.OwnershipEvent, error)

	// QueryEncumbrance returns the pledge and release events for one
	// encumbrance id
	QueryEncumbrance(ctx context.Context, encumbranceID string) ([]domain.OwnershipEvent, error)

	// SaveDisputeFlag persists an unresolved conflict for human review
	SaveDisputeFlag(ctx context.Context, flag *domain.DisputeFlag) error
}
