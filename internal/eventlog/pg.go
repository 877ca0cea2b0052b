package eventlog

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/clearlane/ownership-oracle/internal/domain"
	"github.com/clearlane/ownership-oracle/internal/eventlog/schema"
)

type pgLog struct {
	db *gorm.DB
}

// NewPGLog creates a new PostgreSQL-backed event log
func NewPGLog(db *gorm.DB) Log {
	return &pgLog{db: db}
}

// Migrate creates or updates the event log tables
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&schema.OwnershipEvent{}, &schema.DisputeFlag{})
}

// ConfigureConnectionPool configures the connection pool settings for a GORM
// database connection. Zero values fall back to safe defaults.
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	if maxOpenConns == 0 {
		maxOpenConns = 20
	}
	if maxIdleConns == 0 {
		maxIdleConns = 5
	}
	if connMaxLifetime == 0 {
		connMaxLifetime = 5 * time.Minute
	}
	if connMaxIdleTime == 0 {
		connMaxIdleTime = 10 * time.Minute
	}
	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// logOrder is the canonical total order of the event log
const logOrder = "timestamp ASC, recorded_at ASC, event_id ASC"

// Append appends a single ownership event
func (l *pgLog) Append(ctx context.Context, event *domain.OwnershipEvent) error {
	if event == nil {
		return domain.NewInvalidArgument("event is required")
	}
	if event.RecordedAt.IsZero() {
		event.RecordedAt = time.Now().UTC()
	}
	if !event.Valid() {
		return domain.NewInvalidArgument("invalid %s event for asset %q", event.EventType, event.AssetID)
	}

	row, err := toRow(event)
	if err != nil {
		return domain.NewUpstreamFailure("failed to encode event", err)
	}

	if err := l.db.WithContext(ctx).Create(row).Error; err != nil {
		return domain.NewUpstreamFailure(fmt.Sprintf("failed to append event %s", event.EventID), err)
	}
	return nil
}

// QueryRange returns all events for an asset within [from, to]
func (l *pgLog) QueryRange(ctx context.Context, assetID string, from, to time.Time) ([]domain.OwnershipEvent, error) {
	var rows []schema.OwnershipEvent
	err := l.db.WithContext(ctx).
		Where("asset_id = ? AND timestamp >= ? AND timestamp <= ?", assetID, from, to).
		Order(logOrder).
		Find(&rows).Error
	if err != nil {
		return nil, domain.NewUpstreamFailure(fmt.Sprintf("failed to query events for asset %s", assetID), err)
	}
	return toDomainEvents(rows)
}

// QueryUpTo returns all events for an asset with timestamp <= upTo
func (l *pgLog) QueryUpTo(ctx context.Context, assetID string, upTo time.Time) ([]domain.OwnershipEvent, error) {
	var rows []schema.OwnershipEvent
	err := l.db.WithContext(ctx).
		Where("asset_id = ? AND timestamp <= ?", assetID, upTo).
		Order(logOrder).
		Find(&rows).Error
	if err != nil {
		return nil, domain.NewUpstreamFailure(fmt.Sprintf("failed to query events for asset %s", assetID), err)
	}
	return toDomainEvents(rows)
}

// QueryByOwner returns all events received by ownerID with timestamp <= upTo
func (l *pgLog) QueryByOwner(ctx context.Context, ownerID string, upTo time.Time) ([]domain.OwnershipEvent, error) {
	var rows []schema.OwnershipEvent
	err := l.db.WithContext(ctx).
		Where("to_owner = ? AND timestamp <= ?", ownerID, upTo).
		Order(logOrder).
		Find(&rows).Error
	if err != nil {
		return nil, domain.NewUpstreamFailure(fmt.Sprintf("failed to query events for owner %s", ownerID), err)
	}
	return toDomainEvents(rows)
}

// QueryEncumbranceEvents returns all pledge and release events with timestamp <= upTo
func (l *pgLog) QueryEncumbranceEvents(ctx context.Context, upTo time.Time) ([]domain.OwnershipEvent, error) {
	var rows []schema.OwnershipEvent
	err := l.db.WithContext(ctx).
		Where("event_type IN ? AND timestamp <= ?", []string{string(domain.EventTypePledge), string(domain.EventTypeRelease)}, upTo).
		Order(logOrder).
		Find(&rows).Error
	if err != nil {
		return nil, domain.NewUpstreamFailure("failed to query encumbrance events", err)
	}
	return toDomainEvents(rows)
}

// QueryEncumbrance returns the pledge and release events for one encumbrance id
func (l *pgLog) QueryEncumbrance(ctx context.Context, encumbranceID string) ([]domain.OwnershipEvent, error) {
	var rows []schema.OwnershipEvent
	err := l.db.WithContext(ctx).
		Where("encumbrance_id = ?", encumbranceID).
		Order(logOrder).
		Find(&rows).Error
	if err != nil {
		return nil, domain.NewUpstreamFailure(fmt.Sprintf("failed to query encumbrance %s", encumbranceID), err)
	}
	return toDomainEvents(rows)
}

// SaveDisputeFlag persists an unresolved conflict for human review
func (l *pgLog) SaveDisputeFlag(ctx context.Context, flag *domain.DisputeFlag) error {
	if flag == nil {
		return domain.NewInvalidArgument("flag is required")
	}

	records, err := json.Marshal(flag.ConflictingRecords)
	if err != nil {
		return domain.NewUpstreamFailure("failed to encode conflicting records", err)
	}

	row := schema.DisputeFlag{
		FlagID:               flag.FlagID,
		AssetID:              flag.AssetID,
		Reason:               flag.Reason,
		ConflictingRecords:   datatypes.JSON(records),
		LowestConsensusLevel: flag.LowestConsensusLevel,
		IsResolved:           flag.IsResolved,
		FlaggedAt:            flag.FlaggedAt,
	}
	if err := l.db.WithContext(ctx).Create(&row).Error; err != nil {
		return domain.NewUpstreamFailure(fmt.Sprintf("failed to save dispute flag for asset %s", flag.AssetID), err)
	}
	return nil
}

// toRow converts a domain event to its storage representation
func toRow(event *domain.OwnershipEvent) (*schema.OwnershipEvent, error) {
	row := schema.OwnershipEvent{
		EventID:         event.EventID,
		AssetID:         event.AssetID,
		EventType:       string(event.EventType),
		FromOwner:       optional(event.FromOwner),
		ToOwner:         optional(event.ToOwner),
		Value:           event.Value,
		Currency:        event.Currency,
		Chain:           string(event.Chain),
		TransactionHash: optional(event.TransactionHash),
		Counterparty:    event.Counterparty,
		MaturityTime:    event.MaturityTime,
		EncumbranceID:   event.EncumbranceID,
		ConsensusLevel:  event.ConsensusLevel,
		IsFlagged:       event.IsFlagged,
		Timestamp:       event.Timestamp,
		RecordedAt:      event.RecordedAt,
	}
	if event.BlockNumber != 0 {
		row.BlockNumber = &event.BlockNumber
	}
	if event.EncumbranceType != nil {
		s := string(*event.EncumbranceType)
		row.EncumbranceType = &s
	}
	if len(event.VerifiedBy) > 0 {
		verifiedBy, err := json.Marshal(event.VerifiedBy)
		if err != nil {
			return nil, err
		}
		row.VerifiedBy = datatypes.JSON(verifiedBy)
	}
	if event.Encumbrance != nil {
		raw, err := json.Marshal(event.Encumbrance)
		if err != nil {
			return nil, err
		}
		row.Raw = datatypes.JSON(raw)
	}
	return &row, nil
}

// toDomainEvents converts storage rows to domain events
func toDomainEvents(rows []schema.OwnershipEvent) ([]domain.OwnershipEvent, error) {
	events := make([]domain.OwnershipEvent, 0, len(rows))
	for i := range rows {
		event, err := toDomainEvent(&rows[i])
		if err != nil {
			return nil, domain.NewUpstreamFailure(fmt.Sprintf("failed to decode event %s", rows[i].EventID), err)
		}
		events = append(events, *event)
	}
	return events, nil
}

func toDomainEvent(row *schema.OwnershipEvent) (*domain.OwnershipEvent, error) {
	event := domain.OwnershipEvent{
		EventID:         row.EventID,
		AssetID:         row.AssetID,
		EventType:       domain.EventType(row.EventType),
		FromOwner:       deref(row.FromOwner),
		ToOwner:         deref(row.ToOwner),
		Value:           row.Value,
		Currency:        row.Currency,
		Chain:           domain.Chain(row.Chain),
		TransactionHash: deref(row.TransactionHash),
		Timestamp:       row.Timestamp,
		Counterparty:    row.Counterparty,
		MaturityTime:    row.MaturityTime,
		EncumbranceID:   row.EncumbranceID,
		ConsensusLevel:  row.ConsensusLevel,
		IsFlagged:       row.IsFlagged,
		RecordedAt:      row.RecordedAt,
	}
	if row.BlockNumber != nil {
		event.BlockNumber = *row.BlockNumber
	}
	if row.EncumbranceType != nil {
		t := domain.EncumbranceType(*row.EncumbranceType)
		event.EncumbranceType = &t
	}
	if len(row.VerifiedBy) > 0 {
		if err := json.Unmarshal(row.VerifiedBy, &event.VerifiedBy); err != nil {
			return nil, err
		}
	}
	if len(row.Raw) > 0 {
		var enc domain.Encumbrance
		if err := json.Unmarshal(row.Raw, &enc); err != nil {
			return nil, err
		}
		event.Encumbrance = &enc
	}
	return &event, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
