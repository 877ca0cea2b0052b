package eventlog

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/clearlane/ownership-oracle/internal/domain"
)

var (
	testDB      *gorm.DB
	pgContainer *postgres.PostgresContainer
)

// TestMain sets up the test database before running tests
func TestMain(m *testing.M) {
	ctx := context.Background()

	// Check if we should use an external database (for CI or local development)
	dbHost := os.Getenv("TEST_DB_HOST")
	dbPort := os.Getenv("TEST_DB_PORT")
	dbUser := os.Getenv("TEST_DB_USER")
	dbPassword := os.Getenv("TEST_DB_PASSWORD")
	dbName := os.Getenv("TEST_DB_NAME")

	var dsn string
	var err error

	if dbHost != "" {
		// Use external database
		if dbPort == "" {
			dbPort = "5432"
		}
		if dbUser == "" {
			dbUser = "postgres"
		}
		if dbPassword == "" {
			dbPassword = "postgres"
		}
		if dbName == "" {
			dbName = "test_db"
		}

		dsn = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			dbHost, dbPort, dbUser, dbPassword, dbName)

		fmt.Printf("Using external database: %s:%s/%s\n", dbHost, dbPort, dbName)
	} else {
		// Start a PostgreSQL container for testing
		pgContainer, err = postgres.Run(ctx,
			"postgres:18-alpine",
			postgres.WithDatabase("test_db"),
			postgres.WithUsername("postgres"),
			postgres.WithPassword("postgres"),
			testcontainers.WithWaitStrategy(
				wait.ForLog("database system is ready to accept connections").
					WithOccurrence(2).
					WithStartupTimeout(30*time.Second)),
		)
		if err != nil {
			fmt.Printf("Failed to start PostgreSQL container: %v\n", err)
			os.Exit(1)
		}

		dsn, err = pgContainer.ConnectionString(ctx, "sslmode=disable")
		if err != nil {
			fmt.Printf("Failed to get connection string: %v\n", err)
			if err := pgContainer.Terminate(ctx); err != nil {
				fmt.Printf("Failed to terminate PostgreSQL container: %v\n", err)
			}
			os.Exit(1)
		}

		fmt.Printf("Started PostgreSQL container\n")
	}

	// Connect to the database
	testDB, err = gorm.Open(pgdriver.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		fmt.Printf("Failed to connect to database: %v\n", err)
		if pgContainer != nil {
			if err := pgContainer.Terminate(ctx); err != nil {
				fmt.Printf("Failed to terminate PostgreSQL container: %v\n", err)
			}
		}
		os.Exit(1)
	}

	// Initialize the database schema
	if err := Migrate(testDB); err != nil {
		fmt.Printf("Failed to initialize database: %v\n", err)
		if pgContainer != nil {
			if err := pgContainer.Terminate(ctx); err != nil {
				fmt.Printf("Failed to terminate PostgreSQL container: %v\n", err)
			}
		}
		os.Exit(1)
	}

	// Run tests
	code := m.Run()

	// Cleanup
	if pgContainer != nil {
		if err := pgContainer.Terminate(ctx); err != nil {
			fmt.Printf("Failed to terminate PostgreSQL container: %v\n", err)
		}
	}

	os.Exit(code)
}

// initPGTestLog initializes a test event log for each test. Each test runs
// inside a transaction that is rolled back on cleanup.
func initPGTestLog(t *testing.T) Log {
	tx := testDB.Begin()
	require.NotNil(t, tx)
	require.NoError(t, tx.Error)

	t.Cleanup(func() {
		tx.Rollback()
	})

	return NewPGLog(tx)
}

func strPtr(s string) *string {
	return &s
}

func testMintEvent(assetID, owner string, at time.Time) *domain.OwnershipEvent {
	return &domain.OwnershipEvent{
		EventID:         fmt.Sprintf("evt-mint-%s-%d", assetID, at.UnixNano()),
		AssetID:         assetID,
		EventType:       domain.EventTypeMint,
		ToOwner:         owner,
		Value:           1000,
		Currency:        "USD",
		Chain:           domain.ChainEthereumMainnet,
		TransactionHash: "0xabc123def456",
		BlockNumber:     100,
		Timestamp:       at,
		ConsensusLevel:  95,
		VerifiedBy:      []string{"oracle-1", "oracle-2"},
		RecordedAt:      at,
	}
}

func testTransferEvent(assetID, from, to string, at time.Time) *domain.OwnershipEvent {
	return &domain.OwnershipEvent{
		EventID:         fmt.Sprintf("evt-transfer-%s-%d", assetID, at.UnixNano()),
		AssetID:         assetID,
		EventType:       domain.EventTypeTransfer,
		FromOwner:       from,
		ToOwner:         to,
		Value:           1500,
		Currency:        "USD",
		Chain:           domain.ChainEthereumMainnet,
		TransactionHash: "0xdef789abc012",
		BlockNumber:     200,
		Timestamp:       at,
		ConsensusLevel:  90,
		RecordedAt:      at,
	}
}

func testPledgeEvent(assetID, owner, encumbranceID string, at, maturity time.Time) *domain.OwnershipEvent {
	encType := domain.EncumbranceTypeRepo
	return &domain.OwnershipEvent{
		EventID:         fmt.Sprintf("evt-pledge-%s-%d", encumbranceID, at.UnixNano()),
		AssetID:         assetID,
		EventType:       domain.EventTypePledge,
		FromOwner:       owner,
		Value:           500,
		Currency:        "USD",
		Chain:           domain.ChainEthereumMainnet,
		Timestamp:       at,
		Counterparty:    strPtr("dealer-a"),
		EncumbranceType: &encType,
		MaturityTime:    &maturity,
		EncumbranceID:   &encumbranceID,
		Encumbrance: &domain.Encumbrance{
			EncumbranceID: encumbranceID,
			AssetID:       assetID,
			Type:          domain.EncumbranceTypeRepo,
			Owner:         owner,
			Counterparty:  "dealer-a",
			Amount:        500,
			StartTime:     at,
			MaturityTime:  maturity,
			Chain:         domain.ChainEthereumMainnet,
			AutoRelease:   true,
			IsActive:      true,
			CreatedAt:     at,
		},
		ConsensusLevel: 85,
		RecordedAt:     at,
	}
}

func TestPGLogAppendAndQueryUpTo(t *testing.T) {
	log := initPGTestLog(t)
	ctx := context.Background()

	base := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)
	mint := testMintEvent("bond-001", "0x1111111111111111111111111111111111111111", base)
	transfer := testTransferEvent("bond-001",
		"0x1111111111111111111111111111111111111111",
		"0x2222222222222222222222222222222222222222",
		base.Add(time.Hour))

	require.NoError(t, log.Append(ctx, mint))
	require.NoError(t, log.Append(ctx, transfer))

	// Querying before the transfer only sees the mint
	events, err := log.QueryUpTo(ctx, "bond-001", base.Add(30*time.Minute))
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, mint.EventID, events[0].EventID)
	assert.Equal(t, domain.EventTypeMint, events[0].EventType)
	assert.Equal(t, []string{"oracle-1", "oracle-2"}, events[0].VerifiedBy)

	// Querying after both sees them in log order
	events, err = log.QueryUpTo(ctx, "bond-001", base.Add(2*time.Hour))
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, mint.EventID, events[0].EventID)
	assert.Equal(t, transfer.EventID, events[1].EventID)
}

func TestPGLogAppendRejectsInvalidEvent(t *testing.T) {
	log := initPGTestLog(t)
	ctx := context.Background()

	// Transfer without a from owner is structurally invalid
	event := &domain.OwnershipEvent{
		EventID:   "evt-bad-1",
		AssetID:   "bond-002",
		EventType: domain.EventTypeTransfer,
		ToOwner:   "0x2222222222222222222222222222222222222222",
		Timestamp: time.Now().UTC(),
	}
	err := log.Append(ctx, event)
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindInvalidArgument))
}

func TestPGLogAppendRejectsDuplicateEventID(t *testing.T) {
	log := initPGTestLog(t)
	ctx := context.Background()

	base := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)
	mint := testMintEvent("bond-003", "0x1111111111111111111111111111111111111111", base)

	require.NoError(t, log.Append(ctx, mint))

	dup := *mint
	err := log.Append(ctx, &dup)
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindUpstreamFailure))
}

func TestPGLogQueryRange(t *testing.T) {
	log := initPGTestLog(t)
	ctx := context.Background()

	base := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	owner := "0x3333333333333333333333333333333333333333"
	for i := 0; i < 5; i++ {
		event := testMintEvent(fmt.Sprintf("range-%d", i), owner, base.Add(time.Duration(i)*time.Hour))
		event.AssetID = "bond-range"
		if i > 0 {
			event.EventType = domain.EventTypeTransfer
			event.FromOwner = owner
			event.ToOwner = fmt.Sprintf("0x%040d", i)
		}
		require.NoError(t, log.Append(ctx, event))
	}

	events, err := log.QueryRange(ctx, "bond-range", base.Add(time.Hour), base.Add(3*time.Hour))
	require.NoError(t, err)
	assert.Len(t, events, 3)
	for i := 1; i < len(events); i++ {
		assert.True(t, events[i-1].LogOrderBefore(&events[i]))
	}
}

func TestPGLogQueryByOwner(t *testing.T) {
	log := initPGTestLog(t)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	owner := "0x4444444444444444444444444444444444444444"
	other := "0x5555555555555555555555555555555555555555"

	require.NoError(t, log.Append(ctx, testMintEvent("bond-a", owner, base)))
	require.NoError(t, log.Append(ctx, testMintEvent("bond-b", other, base.Add(time.Minute))))
	require.NoError(t, log.Append(ctx, testTransferEvent("bond-b", other, owner, base.Add(time.Hour))))

	events, err := log.QueryByOwner(ctx, owner, base.Add(2*time.Hour))
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "bond-a", events[0].AssetID)
	assert.Equal(t, "bond-b", events[1].AssetID)

	// Before the transfer the owner only received bond-a
	events, err = log.QueryByOwner(ctx, owner, base.Add(30*time.Minute))
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "bond-a", events[0].AssetID)
}

func TestPGLogEncumbranceRoundTrip(t *testing.T) {
	log := initPGTestLog(t)
	ctx := context.Background()

	base := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	maturity := base.Add(24 * time.Hour)
	owner := "0x6666666666666666666666666666666666666666"

	require.NoError(t, log.Append(ctx, testMintEvent("bond-enc", owner, base.Add(-time.Hour))))
	pledge := testPledgeEvent("bond-enc", owner, "enc-001", base, maturity)
	require.NoError(t, log.Append(ctx, pledge))

	events, err := log.QueryEncumbrance(ctx, "enc-001")
	require.NoError(t, err)
	require.Len(t, events, 1)
	require.NotNil(t, events[0].Encumbrance)
	assert.Equal(t, "enc-001", events[0].Encumbrance.EncumbranceID)
	assert.Equal(t, domain.EncumbranceTypeRepo, events[0].Encumbrance.Type)
	assert.Equal(t, 500.0, events[0].Encumbrance.Amount)
	assert.True(t, events[0].Encumbrance.AutoRelease)
	require.NotNil(t, events[0].MaturityTime)
	assert.True(t, maturity.Equal(*events[0].MaturityTime))

	// Release closes the encumbrance
	release := &domain.OwnershipEvent{
		EventID:       "evt-release-enc-001",
		AssetID:       "bond-enc",
		EventType:     domain.EventTypeRelease,
		Timestamp:     maturity,
		EncumbranceID: strPtr("enc-001"),
		RecordedAt:    maturity,
	}
	require.NoError(t, log.Append(ctx, release))

	events, err = log.QueryEncumbrance(ctx, "enc-001")
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, domain.EventTypePledge, events[0].EventType)
	assert.Equal(t, domain.EventTypeRelease, events[1].EventType)
}

func TestPGLogQueryEncumbranceEvents(t *testing.T) {
	log := initPGTestLog(t)
	ctx := context.Background()

	base := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	owner := "0x7777777777777777777777777777777777777777"

	require.NoError(t, log.Append(ctx, testMintEvent("bond-x", owner, base)))
	require.NoError(t, log.Append(ctx, testPledgeEvent("bond-x", owner, "enc-x1", base.Add(time.Hour), base.Add(48*time.Hour))))
	require.NoError(t, log.Append(ctx, testPledgeEvent("bond-x", owner, "enc-x2", base.Add(2*time.Hour), base.Add(72*time.Hour))))

	// Only pledge and release events come back, mints are excluded
	events, err := log.QueryEncumbranceEvents(ctx, base.Add(90*time.Minute))
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, domain.EventTypePledge, events[0].EventType)

	events, err = log.QueryEncumbranceEvents(ctx, base.Add(3*time.Hour))
	require.NoError(t, err)
	assert.Len(t, events, 2)
}

func TestPGLogSaveDisputeFlag(t *testing.T) {
	log := initPGTestLog(t)
	ctx := context.Background()

	flag := &domain.DisputeFlag{
		FlagID:  "flag-001",
		AssetID: "bond-disputed",
		Reason:  "conflicting ownership records across chains",
		ConflictingRecords: []domain.OwnershipRecord{
			{AssetID: "bond-disputed", CurrentOwner: "alice", ConsensusLevel: 60},
			{AssetID: "bond-disputed", CurrentOwner: "bob", ConsensusLevel: 55},
		},
		LowestConsensusLevel: 55,
		FlaggedAt:            time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, log.SaveDisputeFlag(ctx, flag))

	err := log.SaveDisputeFlag(ctx, nil)
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindInvalidArgument))
}
