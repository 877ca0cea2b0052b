package schema

import (
	"time"

	"gorm.io/datatypes"
)

// DisputeFlag represents the dispute_flags table - conflicts that automatic
// consensus could not resolve, queued for human review
type DisputeFlag struct {
	// ID is the internal database primary key
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// FlagID is the globally unique flag identifier
	FlagID string `gorm:"column:flag_id;not null;uniqueIndex;type:text"`
	// AssetID identifies the disputed asset
	AssetID string `gorm:"column:asset_id;not null;type:text;index:idx_dispute_flags_asset"`
	// Reason is the human-readable description of the conflict
	Reason string `gorm:"column:reason;not null;type:text"`
	// ConflictingRecords contains the competing ownership records as JSON
	ConflictingRecords datatypes.JSON `gorm:"column:conflicting_records;type:jsonb"`
	// LowestConsensusLevel is the minimum consensus among the conflicting records
	LowestConsensusLevel int `gorm:"column:lowest_consensus_level;not null;default:0"`
	// IsResolved marks flags that a reviewer has closed
	IsResolved bool `gorm:"column:is_resolved;not null;default:false"`
	// FlaggedAt is when the conflict was flagged
	FlaggedAt time.Time `gorm:"column:flagged_at;not null;type:timestamptz"`
	// CreatedAt is the timestamp when this row was inserted
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the DisputeFlag model
func (DisputeFlag) TableName() string {
	return "dispute_flags"
}
