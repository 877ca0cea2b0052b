package evidence

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gowebpki/jcs"

	"github.com/clearlane/ownership-oracle/internal/adapter"
	"github.com/clearlane/ownership-oracle/internal/domain"
)

// CanonicalDigest computes a SHA-256 digest over the JCS-canonicalized JSON
// form of v. Two structurally equal values always produce the same digest,
// regardless of key order or whitespace, so the digest changes if and only if
// the underlying data changes.
func CanonicalDigest(v any) (string, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to marshal value: %w", err)
	}

	canonical, err := jcs.Transform(raw)
	if err != nil {
		return "", fmt.Errorf("failed to canonicalize JSON: %w", err)
	}

	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:]), nil
}

// BuildProof assembles a blockchain proof over an ordered event history. The
// digest covers the full event list, so the proof is only valid for exactly
// this history.
func BuildProof(events []domain.OwnershipEvent, generatedAt time.Time) (*domain.BlockchainProof, error) {
	digest, err := CanonicalDigest(events)
	if err != nil {
		return nil, err
	}

	proof := &domain.BlockchainProof{
		Digest:        digest,
		GeneratedAt:   generatedAt,
		IsTamperProof: true,
	}
	for i := range events {
		if events[i].TransactionHash != "" {
			proof.TransactionHashes = append(proof.TransactionHashes, events[i].TransactionHash)
		}
		if events[i].BlockNumber != 0 {
			proof.BlockNumbers = append(proof.BlockNumbers, events[i].BlockNumber)
		}
	}
	return proof, nil
}

// Signer produces oracle attestations over evidence statements
//
//go:generate mockgen -source=evidence.go -destination=../mocks/evidence.go -package=mocks
type Signer interface {
	// Attest signs a statement on behalf of this oracle node
	Attest(statement string) (domain.OracleAttestation, error)
	// VerifyAttestation checks an attestation against this node's secret
	VerifyAttestation(attestation domain.OracleAttestation) bool
}

type hmacSigner struct {
	nodeID string
	secret []byte
	clock  adapter.Clock
}

// NewHMACSigner creates a Signer that attests statements with HMAC-SHA256
func NewHMACSigner(nodeID, secret string, clock adapter.Clock) Signer {
	return &hmacSigner{
		nodeID: nodeID,
		secret: []byte(secret),
		clock:  clock,
	}
}

// Attest signs a statement on behalf of this oracle node. The signature
// covers {timestamp}.{node_id}.{statement} so the same statement signed at a
// different time or by a different node yields a different signature.
func (s *hmacSigner) Attest(statement string) (domain.OracleAttestation, error) {
	if statement == "" {
		return domain.OracleAttestation{}, domain.NewInvalidArgument("statement is required")
	}

	signedAt := s.clock.Now().UTC()
	signature := s.sign(signedAt, statement)

	return domain.OracleAttestation{
		OracleNodeID: s.nodeID,
		Signature:    signature,
		SignedAt:     signedAt,
		Statement:    statement,
	}, nil
}

// VerifyAttestation checks an attestation against this node's secret
func (s *hmacSigner) VerifyAttestation(attestation domain.OracleAttestation) bool {
	if attestation.OracleNodeID != s.nodeID {
		return false
	}
	expected := s.sign(attestation.SignedAt, attestation.Statement)
	return hmac.Equal([]byte(expected), []byte(attestation.Signature))
}

func (s *hmacSigner) sign(signedAt time.Time, statement string) string {
	payload := fmt.Sprintf("%d.%s.%s", signedAt.Unix(), s.nodeID, statement)
	h := hmac.New(sha256.New, s.secret)
	h.Write([]byte(payload))
	return "sha256=" + hex.EncodeToString(h.Sum(nil))
}
