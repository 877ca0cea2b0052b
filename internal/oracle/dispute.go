package oracle

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/clearlane/ownership-oracle/internal/adapter"
	"github.com/clearlane/ownership-oracle/internal/domain"
	"github.com/clearlane/ownership-oracle/internal/eventlog"
	"github.com/clearlane/ownership-oracle/internal/evidence"
	"github.com/clearlane/ownership-oracle/internal/logger"
)

// ResolverConfig carries the reporting constants attached to every
// resolution and the size of the claim verification pool
type ResolverConfig struct {
	// ResolutionCost is the fixed oracle-query cost attached to resolutions
	ResolutionCost float64
	// EstimatedSavings is the fixed estimate of avoided litigation cost
	EstimatedSavings float64
	// VerifyPoolSize bounds concurrent claim verification
	VerifyPoolSize int
}

// Resolver adjudicates competing ownership claims and produces court-grade
// evidence packages
//
//go:generate mockgen -source=dispute.go -destination=../mocks/dispute.go -package=mocks -mock_names=Resolver=MockResolver
type Resolver interface {
	// ResolveOwnershipDispute verifies every claim against one fixed log
	// snapshot and selects the earliest valid claim as the winner
	ResolveOwnershipDispute(ctx context.Context, assetID string, claims []domain.DisputeClaim) (*domain.DisputeResolution, error)
	// VerifyClaim checks a single claim. An owner that cannot be resolved
	// is an invalid claim, not an error.
	VerifyClaim(ctx context.Context, claim domain.DisputeClaim) (*domain.OwnershipClaimVerification, error)
	// GenerateCourtEvidence wraps ownership evidence with oracle
	// attestations and a legal summary
	GenerateCourtEvidence(ctx context.Context, assetID, claimantID string, claimTimestamp time.Time) (*domain.CourtEvidence, error)
	// FlagDispute records a conflict automatic consensus could not resolve
	FlagDispute(ctx context.Context, assetID, reason string, conflictingRecords []domain.OwnershipRecord) (*domain.DisputeFlag, error)
}

type resolver struct {
	log        eventlog.Log
	timeOracle TimeOracle
	signer     evidence.Signer
	clock      adapter.Clock
	config     ResolverConfig
}

// NewResolver creates a new dispute resolver
func NewResolver(log eventlog.Log, timeOracle TimeOracle, signer evidence.Signer, clock adapter.Clock, config ResolverConfig) Resolver {
	if config.VerifyPoolSize <= 0 {
		config.VerifyPoolSize = 4
	}
	return &resolver{
		log:        log,
		timeOracle: timeOracle,
		signer:     signer,
		clock:      clock,
		config:     config,
	}
}

// ResolveOwnershipDispute verifies every claim against one fixed log
// snapshot, filters to claims that are valid with sufficient consensus, and
// selects the earliest claim time as the winner. Ties on claim time go to
// the lexicographically lowest claimant id. One claim failing verification
// never aborts the others.
func (r *resolver) ResolveOwnershipDispute(ctx context.Context, assetID string, claims []domain.DisputeClaim) (*domain.DisputeResolution, error) {
	if assetID == "" {
		return nil, domain.NewInvalidArgument("asset id is required")
	}
	if len(claims) == 0 {
		return nil, domain.NewInvalidArgument("at least one claim is required")
	}
	for i := range claims {
		if claims[i].ClaimantID == "" {
			return nil, domain.NewInvalidArgument("claimant id is required on every claim")
		}
		if claims[i].AssetID != "" && claims[i].AssetID != assetID {
			return nil, domain.NewInvalidArgument("claim for asset %q does not match disputed asset %q", claims[i].AssetID, assetID)
		}
	}

	started := r.clock.Now()

	// One snapshot for the whole resolution so every claim is judged
	// against the same history
	snapshot, err := r.log.QueryUpTo(ctx, assetID, started)
	if err != nil {
		return nil, err
	}

	verifications := r.verifyAgainstSnapshot(assetID, snapshot, claims)

	var valid []domain.OwnershipClaimVerification
	for _, verification := range verifications {
		if verification.IsValid && verification.ConsensusLevel >= domain.ConsensusThreshold {
			valid = append(valid, verification)
		}
	}
	if len(valid) == 0 {
		return nil, domain.NewNoValidClaim("no claim on asset %s passed verification and the consensus threshold", assetID)
	}

	// Earliest claim time wins; ties go to the lowest claimant id
	sort.Slice(valid, func(i, j int) bool {
		if !valid[i].Claim.ClaimTime.Equal(valid[j].Claim.ClaimTime) {
			return valid[i].Claim.ClaimTime.Before(valid[j].Claim.ClaimTime)
		}
		return valid[i].Claim.ClaimantID < valid[j].Claim.ClaimantID
	})
	winner := valid[0]

	resolvedAt := r.clock.Now()
	proof, err := evidence.BuildProof(eventsUpTo(snapshot, winner.Claim.ClaimTime), resolvedAt.UTC())
	if err != nil {
		return nil, domain.NewUpstreamFailure("failed to build blockchain proof", err)
	}

	resolution := &domain.DisputeResolution{
		ResolutionID:    uuid.New().String(),
		AssetID:         assetID,
		WinningClaimant: winner.Claim.ClaimantID,
		ClaimTime:       winner.Claim.ClaimTime,
		ConsensusLevel:  winner.ConsensusLevel,
		Evidence:        winner.Evidence,
		ResolutionReason: fmt.Sprintf(
			"claimant %s holds the earliest valid claim (%s) with consensus %d%%, verified against the asset's full event history",
			winner.Claim.ClaimantID, winner.Claim.ClaimTime.UTC().Format(time.RFC3339), winner.ConsensusLevel),
		IsCourtAdmissible: true,
		BlockchainProof:   proof,
		ResolvedAt:        resolvedAt,
		ResolutionTime:    resolvedAt.Sub(earliestFiledAt(claims)),
		ResolutionCost:    r.config.ResolutionCost,
		EstimatedSavings:  r.config.EstimatedSavings,
	}

	for _, verification := range verifications {
		if verification.Claim.ClaimantID == winner.Claim.ClaimantID && verification.Claim.ClaimTime.Equal(winner.Claim.ClaimTime) {
			continue
		}
		reason := verification.RejectionReason
		if reason == "" {
			if verification.IsValid && verification.ConsensusLevel >= domain.ConsensusThreshold {
				reason = "superseded by earlier valid claim"
			} else if verification.IsValid {
				reason = "rejected by consensus"
			}
		}
		resolution.RejectedClaims = append(resolution.RejectedClaims, domain.RejectedClaim{
			ClaimantID:      verification.Claim.ClaimantID,
			ClaimTime:       verification.Claim.ClaimTime,
			RejectionReason: reason,
			ConsensusLevel:  verification.ConsensusLevel,
		})
	}

	logger.InfoCtx(ctx, "ownership dispute resolved",
		zap.String("asset_id", assetID),
		zap.String("resolution_id", resolution.ResolutionID),
		zap.String("winner", resolution.WinningClaimant),
		zap.Int("claims", len(claims)),
		zap.Int("rejected", len(resolution.RejectedClaims)))

	return resolution, nil
}

// verifyAgainstSnapshot verifies all claims concurrently against the same
// in-memory event window. Results come back in claim order.
func (r *resolver) verifyAgainstSnapshot(assetID string, snapshot []domain.OwnershipEvent, claims []domain.DisputeClaim) []domain.OwnershipClaimVerification {
	pool := pond.NewPool(r.config.VerifyPoolSize)

	// Each task writes its own slot, so no synchronization beyond the pool
	// wait is needed
	verifications := make([]domain.OwnershipClaimVerification, len(claims))
	for i := range claims {
		pool.Submit(func() {
			verifications[i] = r.verifyInSnapshot(assetID, snapshot, claims[i])
		})
	}
	pool.StopAndWait()

	return verifications
}

// verifyInSnapshot checks one claim against the fixed event window
func (r *resolver) verifyInSnapshot(assetID string, snapshot []domain.OwnershipEvent, claim domain.DisputeClaim) domain.OwnershipClaimVerification {
	verification := domain.OwnershipClaimVerification{
		Claim:      claim,
		VerifiedAt: r.clock.Now().UTC(),
	}

	record, err := recordAt(snapshot, assetID, claim.ClaimTime)
	if err != nil {
		verification.RejectionReason = err.Error()
		return verification
	}

	verification.ConsensusLevel = record.ConsensusLevel
	if record.CurrentOwner != domain.NormalizeOwner(claim.ClaimantID) {
		verification.RejectionReason = fmt.Sprintf("asset was owned by %s at the claimed time", record.CurrentOwner)
		return verification
	}

	verification.IsValid = true
	verification.Evidence = []string{
		fmt.Sprintf("ownership established at %s", record.LastTransferTime.UTC().Format(time.RFC3339)),
	}
	if record.LastTransferTxHash != "" {
		verification.Evidence = append(verification.Evidence, fmt.Sprintf("transaction %s", record.LastTransferTxHash))
	}
	return verification
}

// VerifyClaim checks a single claim through the time-travel oracle. An owner
// that cannot be resolved is an invalid claim, not an error.
func (r *resolver) VerifyClaim(ctx context.Context, claim domain.DisputeClaim) (*domain.OwnershipClaimVerification, error) {
	if claim.AssetID == "" {
		return nil, domain.NewInvalidArgument("asset id is required")
	}
	if claim.ClaimantID == "" {
		return nil, domain.NewInvalidArgument("claimant id is required")
	}

	verification := &domain.OwnershipClaimVerification{
		Claim:      claim,
		VerifiedAt: r.clock.Now().UTC(),
	}

	record, err := r.timeOracle.GetOwnerAtTime(ctx, claim.AssetID, claim.ClaimTime)
	if err != nil {
		if domain.IsKind(err, domain.KindNotFound) {
			verification.RejectionReason = err.Error()
			return verification, nil
		}
		return nil, err
	}

	verification.ConsensusLevel = record.ConsensusLevel
	if record.CurrentOwner != domain.NormalizeOwner(claim.ClaimantID) {
		verification.RejectionReason = fmt.Sprintf("asset was owned by %s at the claimed time", record.CurrentOwner)
		return verification, nil
	}

	verification.IsValid = true
	verification.Evidence = []string{
		fmt.Sprintf("ownership established at %s", record.LastTransferTime.UTC().Format(time.RFC3339)),
	}
	if record.LastTransferTxHash != "" {
		verification.Evidence = append(verification.Evidence, fmt.Sprintf("transaction %s", record.LastTransferTxHash))
	}
	return verification, nil
}

// GenerateCourtEvidence wraps ownership evidence with oracle attestations and
// a legal summary listing the chain of custody
func (r *resolver) GenerateCourtEvidence(ctx context.Context, assetID, claimantID string, claimTimestamp time.Time) (*domain.CourtEvidence, error) {
	if assetID == "" {
		return nil, domain.NewInvalidArgument("asset id is required")
	}
	if claimantID == "" {
		return nil, domain.NewInvalidArgument("claimant id is required")
	}

	ownershipEvidence, err := r.timeOracle.GenerateOwnershipEvidence(ctx, assetID, claimTimestamp)
	if err != nil {
		return nil, err
	}

	statement := fmt.Sprintf("asset %s owned by %s as of %s (digest %s)",
		assetID, ownershipEvidence.Record.CurrentOwner,
		claimTimestamp.UTC().Format(time.RFC3339),
		ownershipEvidence.Proof.Digest)
	attestation, err := r.signer.Attest(statement)
	if err != nil {
		return nil, err
	}
	ownershipEvidence.Proof.OracleSignatures = append(ownershipEvidence.Proof.OracleSignatures, attestation.Signature)

	generatedAt := r.clock.Now().UTC()
	return &domain.CourtEvidence{
		EvidenceID:         ulid.Make().String(),
		AssetID:            assetID,
		ClaimantID:         claimantID,
		ClaimTimestamp:     claimTimestamp,
		BlockchainProof:    ownershipEvidence.Proof,
		OracleAttestations: []domain.OracleAttestation{attestation},
		IsCourtAdmissible:  ownershipEvidence.IsCourtAdmissible,
		IsTamperProof:      true,
		LegalSummary:       legalSummary(assetID, claimantID, claimTimestamp, ownershipEvidence),
		GeneratedAt:        generatedAt,
	}, nil
}

// FlagDispute records a conflict automatic consensus could not resolve for
// human review
func (r *resolver) FlagDispute(ctx context.Context, assetID, reason string, conflictingRecords []domain.OwnershipRecord) (*domain.DisputeFlag, error) {
	if assetID == "" {
		return nil, domain.NewInvalidArgument("asset id is required")
	}
	if reason == "" {
		return nil, domain.NewInvalidArgument("reason is required")
	}
	if len(conflictingRecords) == 0 {
		return nil, domain.NewInvalidArgument("at least one conflicting record is required")
	}

	lowest := conflictingRecords[0].ConsensusLevel
	for _, record := range conflictingRecords[1:] {
		if record.ConsensusLevel < lowest {
			lowest = record.ConsensusLevel
		}
	}

	flag := &domain.DisputeFlag{
		FlagID:               uuid.New().String(),
		AssetID:              assetID,
		Reason:               reason,
		ConflictingRecords:   conflictingRecords,
		LowestConsensusLevel: lowest,
		FlaggedAt:            r.clock.Now().UTC(),
	}
	if err := r.log.SaveDisputeFlag(ctx, flag); err != nil {
		return nil, err
	}

	logger.WarnCtx(ctx, "dispute flagged for human review",
		zap.String("asset_id", assetID),
		zap.String("flag_id", flag.FlagID),
		zap.Int("lowest_consensus", lowest))

	return flag, nil
}

// legalSummary renders the human-readable chain of custody attached to court
// evidence
func legalSummary(assetID, claimantID string, claimTimestamp time.Time, ownershipEvidence *domain.OwnershipEvidence) string {
	var b strings.Builder
	fmt.Fprintf(&b, "OWNERSHIP EVIDENCE SUMMARY\n")
	fmt.Fprintf(&b, "Asset: %s\n", assetID)
	fmt.Fprintf(&b, "Claimant: %s\n", claimantID)
	fmt.Fprintf(&b, "Ownership as of: %s\n", claimTimestamp.UTC().Format(time.RFC3339))
	fmt.Fprintf(&b, "Established owner: %s\n", ownershipEvidence.Record.CurrentOwner)
	fmt.Fprintf(&b, "Consensus level: %d%%\n", ownershipEvidence.ConsensusLevel)
	fmt.Fprintf(&b, "Court admissible: %t\n\n", ownershipEvidence.IsCourtAdmissible)
	fmt.Fprintf(&b, "CHAIN OF CUSTODY (%d events):\n", len(ownershipEvidence.OwnershipHistory))
	for i, event := range ownershipEvidence.OwnershipHistory {
		line := fmt.Sprintf("%d. %s %s", i+1, event.Timestamp.UTC().Format(time.RFC3339), event.EventType)
		switch event.EventType {
		case domain.EventTypeMint:
			line += fmt.Sprintf(" to %s", event.ToOwner)
		case domain.EventTypeTransfer:
			line += fmt.Sprintf(" from %s to %s", event.FromOwner, event.ToOwner)
		case domain.EventTypePledge, domain.EventTypeRelease:
			if event.EncumbranceID != nil {
				line += fmt.Sprintf(" encumbrance %s", *event.EncumbranceID)
			}
		}
		if event.TransactionHash != "" {
			line += fmt.Sprintf(" (tx %s)", event.TransactionHash)
		}
		fmt.Fprintf(&b, "%s\n", line)
	}
	fmt.Fprintf(&b, "\nEvent history digest (SHA-256 over canonical JSON): %s\n", ownershipEvidence.Proof.Digest)
	return b.String()
}

// eventsUpTo filters an in-order event window to events with timestamp <= t
func eventsUpTo(events []domain.OwnershipEvent, t time.Time) []domain.OwnershipEvent {
	var filtered []domain.OwnershipEvent
	for i := range events {
		if !events[i].Timestamp.After(t) {
			filtered = append(filtered, events[i])
		}
	}
	return filtered
}

// earliestFiledAt returns the earliest filing time among the claims, falling
// back to the earliest claim time when filing times are unset
func earliestFiledAt(claims []domain.DisputeClaim) time.Time {
	earliest := claims[0].FiledAt
	if earliest.IsZero() {
		earliest = claims[0].ClaimTime
	}
	for _, claim := range claims[1:] {
		candidate := claim.FiledAt
		if candidate.IsZero() {
			candidate = claim.ClaimTime
		}
		if candidate.Before(earliest) {
			earliest = candidate
		}
	}
	return earliest
}
