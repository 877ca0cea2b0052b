package schema

import (
	"time"

	"gorm.io/datatypes"
)

// OwnershipEvent represents the ownership_events table - the append-only log
// of everything that ever happened to an asset. Rows are inserted once and
// never updated or deleted.
type OwnershipEvent struct {
	// ID is the internal database primary key
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// EventID is the globally unique event identifier
	EventID string `gorm:"column:event_id;not null;uniqueIndex;type:text"`
	// AssetID identifies the asset this event belongs to
	AssetID string `gorm:"column:asset_id;not null;type:text;index:idx_ownership_events_asset_time,priority:1"`
	// EventType is one of mint, transfer, pledge, release
	EventType string `gorm:"column:event_type;not null;type:text"`
	// FromOwner is the previous owner (nil for mint events)
	FromOwner *string `gorm:"column:from_owner;type:text"`
	// ToOwner is the new owner (nil for pledge/release events)
	ToOwner *string `gorm:"column:to_owner;type:text;index:idx_ownership_events_to_owner"`
	// Value is the asset value attached to the event
	Value float64 `gorm:"column:value"`
	// Currency is the ISO currency code of Value
	Currency string `gorm:"column:currency;type:text"`
	// Chain identifies the ledger where this event occurred (CAIP-2)
	Chain string `gorm:"column:chain;type:text"`
	// TransactionHash is the on-chain transaction backing this event
	TransactionHash *string `gorm:"column:transaction_hash;type:text"`
	// BlockNumber is the block where the transaction was confirmed
	BlockNumber *uint64 `gorm:"column:block_number;type:bigint"`
	// Timestamp is the ledger timestamp of the event
	Timestamp time.Time `gorm:"column:timestamp;not null;type:timestamptz;index:idx_ownership_events_asset_time,priority:2"`
	// Counterparty is the other party of a pledge (nil otherwise)
	Counterparty *string `gorm:"column:counterparty;type:text"`
	// EncumbranceType is the pledge kind for pledge events (repo, lien, lock, other)
	EncumbranceType *string `gorm:"column:encumbrance_type;type:text"`
	// MaturityTime is the scheduled end of a pledge (nil otherwise)
	MaturityTime *time.Time `gorm:"column:maturity_time;type:timestamptz"`
	// EncumbranceID links pledge and release events describing the same encumbrance
	EncumbranceID *string `gorm:"column:encumbrance_id;type:text;index:idx_ownership_events_encumbrance"`
	// ConsensusLevel is the oracle consensus percentage (0-100) behind this event
	ConsensusLevel int `gorm:"column:consensus_level;not null;default:0"`
	// VerifiedBy contains the oracle node ids that confirmed this event as JSON
	VerifiedBy datatypes.JSON `gorm:"column:verified_by;type:jsonb"`
	// IsFlagged marks events involved in an unresolved dispute
	IsFlagged bool `gorm:"column:is_flagged;not null;default:false"`
	// Raw carries the full encumbrance terms for pledge events as JSON
	Raw datatypes.JSON `gorm:"column:raw;type:jsonb"`
	// RecordedAt is the wall-clock time this event entered the log
	RecordedAt time.Time `gorm:"column:recorded_at;not null;type:timestamptz"`
	// CreatedAt is the timestamp when this row was inserted
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the OwnershipEvent model
func (OwnershipEvent) TableName() string {
	return "ownership_events"
}
