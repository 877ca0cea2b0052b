package observer

import (
	"context"
	"fmt"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"go.uber.org/zap"

	"github.com/clearlane/ownership-oracle/internal/adapter"
	"github.com/clearlane/ownership-oracle/internal/domain"
	"github.com/clearlane/ownership-oracle/internal/eventlog"
	"github.com/clearlane/ownership-oracle/internal/logger"
)

// Config holds the configuration for the observer bridge
type Config struct {
	URL            string
	StreamName     string
	ConsumerName   string
	MaxReconnects  int
	ReconnectWait  time.Duration
	ConnectionName string
	AckWaitTimeout time.Duration
	MaxDeliver     int
	// OracleNodes is the number of oracle nodes queried per candidate
	// event, the denominator of the consensus-level calculation
	OracleNodes int
	// PoolSize bounds concurrent message handling
	PoolSize  int
	QueueSize int
}

// CandidateEvent is one observer's report of an on-chain ownership event.
// Confirmations counts the oracle nodes that confirmed the observation.
type CandidateEvent struct {
	EventID         string              `json:"event_id"`
	AssetID         string              `json:"asset_id"`
	EventType       domain.EventType    `json:"event_type"`
	FromOwner       string              `json:"from_owner,omitempty"`
	ToOwner         string              `json:"to_owner,omitempty"`
	Value           float64             `json:"value,omitempty"`
	Currency        string              `json:"currency,omitempty"`
	Chain           domain.Chain        `json:"chain"`
	BlockNumber     uint64              `json:"block_number,omitempty"`
	TransactionHash string              `json:"transaction_hash,omitempty"`
	Timestamp       time.Time           `json:"timestamp"`
	ObserverID      string              `json:"observer_id"`
	Confirmations   int                 `json:"confirmations"`
	VerifiedBy      []string            `json:"verified_by,omitempty"`
	Encumbrance     *domain.Encumbrance `json:"encumbrance,omitempty"`
}

// Bridge defines the interface for the observer bridge
type Bridge interface {
	// Run starts the observer bridge
	Run(ctx context.Context) error
	// Close closes the bridge and cleans up resources
	Close()
}

type bridge struct {
	nc     adapter.NatsConn
	js     adapter.JetStream
	log    eventlog.Log
	json   adapter.JSON
	config Config
}

// NewBridge creates a new observer bridge
func NewBridge(
	cfg Config,
	natsJS adapter.NatsJetStream,
	log eventlog.Log,
	jsonAdapter adapter.JSON,
) (Bridge, error) {
	if cfg.OracleNodes <= 0 {
		return nil, fmt.Errorf("oracle nodes must be positive")
	}
	if cfg.PoolSize <= 0 {
		cfg.PoolSize = 4
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 100
	}

	opts := []nats.Option{
		nats.Name(cfg.ConnectionName),
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			if err != nil {
				logger.Error(err, zap.String("message", "Disconnected from NATS"))
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("Reconnected to NATS", zap.String("url", nc.ConnectedUrl()))
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			logger.Info("NATS connection closed")
		}),
	}

	nc, js, err := natsJS.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS and create JetStream: %w", err)
	}

	return &bridge{
		nc:     nc,
		js:     js,
		log:    log,
		json:   jsonAdapter,
		config: cfg,
	}, nil
}

// Run starts the observer bridge
func (b *bridge) Run(ctx context.Context) error {
	logger.InfoCtx(ctx, "Starting observer bridge",
		zap.String("stream", b.config.StreamName),
		zap.String("consumer", b.config.ConsumerName),
		zap.Int("oracle_nodes", b.config.OracleNodes))

	// Subscribe to all candidate event subjects
	subject := "candidates.*.>"

	consumerConfig := jetstream.ConsumerConfig{
		Durable:       b.config.ConsumerName,
		AckPolicy:     jetstream.AckExplicitPolicy,
		AckWait:       b.config.AckWaitTimeout,
		MaxDeliver:    b.config.MaxDeliver,
		FilterSubject: subject,
	}

	consumer, err := b.js.CreateOrUpdateConsumer(ctx, b.config.StreamName, consumerConfig)
	if err != nil {
		return fmt.Errorf("failed to create/update consumer: %w", err)
	}

	pool := pond.NewPool(
		b.config.PoolSize,
		pond.WithQueueSize(b.config.QueueSize),
		pond.WithContext(ctx),
	)

	sub, err := consumer.Consume(func(msg adapter.Message) {
		pool.Submit(func() {
			b.handleMessage(ctx, msg)
		})
	})
	if err != nil {
		pool.StopAndWait()
		return fmt.Errorf("failed to create subscription: %w", err)
	}

	logger.InfoCtx(ctx, "Started consuming candidate events")

	<-ctx.Done()
	logger.InfoCtx(ctx, "Shutting down observer bridge")
	sub.Stop()
	pool.StopAndWait()
	return ctx.Err()
}

// handleMessage processes a single candidate event message. Malformed or
// invalid candidates are terminated; transient append failures are NAKed for
// redelivery.
func (b *bridge) handleMessage(ctx context.Context, msg adapter.Message) {
	metadata, _ := msg.Metadata()

	var candidate CandidateEvent
	if err := b.json.Unmarshal(msg.Data(), &candidate); err != nil {
		logger.ErrorCtx(ctx, err, zap.String("message", "Failed to unmarshal candidate event"))
		if err := msg.Term(); err != nil {
			logger.ErrorCtx(ctx, err, zap.String("message", "Failed to terminate message"))
		}
		return
	}

	event := b.toEvent(&candidate)

	var deliveries uint64
	if metadata != nil {
		deliveries = metadata.NumDelivered
	}
	logger.InfoCtx(ctx, "Received candidate event",
		zap.String("event_id", event.EventID),
		zap.String("asset_id", event.AssetID),
		zap.String("event_type", string(event.EventType)),
		zap.String("chain", string(event.Chain)),
		zap.String("observer", candidate.ObserverID),
		zap.Int("consensus_level", event.ConsensusLevel),
		zap.Uint64("delivery_count", deliveries),
	)

	if !event.Valid() {
		logger.WarnCtx(ctx, "Dropping invalid candidate event",
			zap.String("event_id", event.EventID),
			zap.String("asset_id", event.AssetID))
		if err := msg.Term(); err != nil {
			logger.ErrorCtx(ctx, err, zap.String("message", "Failed to terminate message"))
		}
		return
	}

	if err := b.log.Append(ctx, event); err != nil {
		if domain.IsKind(err, domain.KindInvalidArgument) {
			// Poison message, redelivery cannot fix it
			logger.ErrorCtx(ctx, err, zap.String("message", "Rejected candidate event"))
			if err := msg.Term(); err != nil {
				logger.ErrorCtx(ctx, err, zap.String("message", "Failed to terminate message"))
			}
			return
		}
		logger.ErrorCtx(ctx, err, zap.String("message", "Failed to append candidate event"))
		if err := msg.Nak(); err != nil {
			logger.ErrorCtx(ctx, err, zap.String("message", "Failed to NAK message"))
		}
		return
	}

	if err := msg.Ack(); err != nil {
		logger.ErrorCtx(ctx, err, zap.String("message", "Failed to ACK message"))
	}
}

// toEvent converts a candidate into an ownership event, deriving the
// consensus level from the confirmation count
func (b *bridge) toEvent(candidate *CandidateEvent) *domain.OwnershipEvent {
	consensus := candidate.Confirmations * 100 / b.config.OracleNodes
	if consensus > 100 {
		consensus = 100
	}
	if consensus < 0 {
		consensus = 0
	}

	event := &domain.OwnershipEvent{
		EventID:         candidate.EventID,
		AssetID:         candidate.AssetID,
		EventType:       candidate.EventType,
		FromOwner:       domain.NormalizeOwner(candidate.FromOwner),
		ToOwner:         domain.NormalizeOwner(candidate.ToOwner),
		Value:           candidate.Value,
		Currency:        candidate.Currency,
		Chain:           candidate.Chain,
		BlockNumber:     candidate.BlockNumber,
		TransactionHash: candidate.TransactionHash,
		Timestamp:       candidate.Timestamp,
		ConsensusLevel:  consensus,
		VerifiedBy:      candidate.VerifiedBy,
	}

	if candidate.Encumbrance != nil {
		enc := *candidate.Encumbrance
		event.Encumbrance = &enc
		event.EncumbranceID = &enc.EncumbranceID
		event.EncumbranceType = &enc.Type
		maturity := enc.MaturityTime
		event.MaturityTime = &maturity
		event.Counterparty = &enc.Counterparty
	}
	return event
}

// Close closes the bridge and cleans up resources
func (b *bridge) Close() {
	if b.nc != nil {
		b.nc.Close()
	}
}
