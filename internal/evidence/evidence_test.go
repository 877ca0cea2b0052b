package evidence_test

import (
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clearlane/ownership-oracle/internal/domain"
	"github.com/clearlane/ownership-oracle/internal/evidence"
	"github.com/clearlane/ownership-oracle/internal/mocks"
)

func TestCanonicalDigest(t *testing.T) {
	t.Run("equal values produce equal digests", func(t *testing.T) {
		a := map[string]any{"asset_id": "bond-001", "owner": "alice", "value": 1000}
		b := map[string]any{"value": 1000, "owner": "alice", "asset_id": "bond-001"}

		digestA, err := evidence.CanonicalDigest(a)
		require.NoError(t, err)
		digestB, err := evidence.CanonicalDigest(b)
		require.NoError(t, err)

		assert.Equal(t, digestA, digestB)
		assert.Len(t, digestA, 64) // hex-encoded SHA-256
	})

	t.Run("different values produce different digests", func(t *testing.T) {
		digestA, err := evidence.CanonicalDigest(map[string]any{"owner": "alice"})
		require.NoError(t, err)
		digestB, err := evidence.CanonicalDigest(map[string]any{"owner": "bob"})
		require.NoError(t, err)

		assert.NotEqual(t, digestA, digestB)
	})
}

func TestBuildProof(t *testing.T) {
	generatedAt := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)
	events := []domain.OwnershipEvent{
		{
			EventID:         "evt-1",
			AssetID:         "bond-001",
			EventType:       domain.EventTypeMint,
			ToOwner:         "alice",
			TransactionHash: "0xaaa11100aa",
			BlockNumber:     100,
			Timestamp:       generatedAt.Add(-time.Hour),
		},
		{
			EventID:   "evt-2",
			AssetID:   "bond-001",
			EventType: domain.EventTypePledge,
			FromOwner: "alice",
			Timestamp: generatedAt.Add(-30 * time.Minute),
		},
	}

	proof, err := evidence.BuildProof(events, generatedAt)
	require.NoError(t, err)

	assert.Equal(t, []string{"0xaaa11100aa"}, proof.TransactionHashes)
	assert.Equal(t, []uint64{100}, proof.BlockNumbers)
	assert.True(t, proof.IsTamperProof)
	assert.Equal(t, generatedAt, proof.GeneratedAt)
	assert.Len(t, proof.Digest, 64)

	// Mutating history invalidates the digest
	events[0].ToOwner = "mallory"
	tampered, err := evidence.BuildProof(events, generatedAt)
	require.NoError(t, err)
	assert.NotEqual(t, proof.Digest, tampered.Digest)
}

func TestHMACSignerAttest(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	signedAt := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)
	clock := mocks.NewMockClock(ctrl)
	clock.EXPECT().Now().Return(signedAt).AnyTimes()

	signer := evidence.NewHMACSigner("oracle-node-1", "test-secret", clock)

	t.Run("produces verifiable attestation", func(t *testing.T) {
		attestation, err := signer.Attest("bond-001 owned by alice as of 2026-01-15T10:00:00Z")
		require.NoError(t, err)

		assert.Equal(t, "oracle-node-1", attestation.OracleNodeID)
		assert.Equal(t, signedAt, attestation.SignedAt)
		assert.Contains(t, attestation.Signature, "sha256=")
		assert.True(t, signer.VerifyAttestation(attestation))
	})

	t.Run("rejects empty statement", func(t *testing.T) {
		_, err := signer.Attest("")
		require.Error(t, err)
		assert.True(t, domain.IsKind(err, domain.KindInvalidArgument))
	})

	t.Run("rejects tampered statement", func(t *testing.T) {
		attestation, err := signer.Attest("bond-001 owned by alice")
		require.NoError(t, err)

		attestation.Statement = "bond-001 owned by mallory"
		assert.False(t, signer.VerifyAttestation(attestation))
	})

	t.Run("rejects attestation from another node", func(t *testing.T) {
		other := evidence.NewHMACSigner("oracle-node-2", "test-secret", clock)
		attestation, err := other.Attest("bond-001 owned by alice")
		require.NoError(t, err)

		assert.False(t, signer.VerifyAttestation(attestation))
	})
}
