package domain

import (
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// Chain represents the ledger network identifier using CAIP-2 format
type Chain string

const (
	ChainEthereumMainnet Chain = "eip155:1"
	ChainEthereumSepolia Chain = "eip155:11155111"
	ChainPolygonMainnet  Chain = "eip155:137"
	ChainTezosMainnet    Chain = "tezos:mainnet"
)

// IsValidChain checks if a chain is valid
func IsValidChain(chain Chain) bool {
	return chain == ChainEthereumMainnet ||
		chain == ChainEthereumSepolia ||
		chain == ChainPolygonMainnet ||
		chain == ChainTezosMainnet
}

// EventType represents the type of ownership event
type EventType string

const (
	EventTypeMint     EventType = "mint"
	EventTypeTransfer EventType = "transfer"
	EventTypePledge   EventType = "pledge"
	EventTypeRelease  EventType = "release"
)

// EncumbranceType represents the kind of restriction placed on an asset
type EncumbranceType string

const (
	EncumbranceTypeRepo  EncumbranceType = "repo"
	EncumbranceTypeLien  EncumbranceType = "lien"
	EncumbranceTypeLock  EncumbranceType = "lock"
	EncumbranceTypeOther EncumbranceType = "other"
)

// ConsensusThreshold is the minimum oracle consensus (percent) required for an
// event or claim to be treated as verified
const ConsensusThreshold = 80

var txHashPattern = regexp.MustCompile(`^(0x)?[0-9a-fA-F]{8,64}$`)

// OwnershipEvent is the immutable unit of the append-only log. Events for an
// asset are totally ordered by (Timestamp, RecordedAt, EventID); once appended
// they are never mutated or deleted.
type OwnershipEvent struct {
	EventID         string           `json:"event_id"`
	AssetID         string           `json:"asset_id"`
	EventType       EventType        `json:"event_type"`
	FromOwner       string           `json:"from_owner,omitempty"`
	ToOwner         string           `json:"to_owner,omitempty"`
	Value           float64          `json:"value"`
	Currency        string           `json:"currency"`
	Chain           Chain            `json:"chain"`
	TransactionHash string           `json:"transaction_hash"`
	BlockNumber     uint64           `json:"block_number"`
	Timestamp       time.Time        `json:"timestamp"`
	Counterparty    *string          `json:"counterparty,omitempty"`
	EncumbranceType *EncumbranceType `json:"encumbrance_type,omitempty"`
	MaturityTime    *time.Time       `json:"maturity_time,omitempty"`
	EncumbranceID   *string          `json:"encumbrance_id,omitempty"`
	// Encumbrance carries the full pledge terms for pledge events so the
	// encumbrance state stays derivable from the log alone
	Encumbrance    *Encumbrance `json:"encumbrance,omitempty"`
	ConsensusLevel int          `json:"consensus_level"`
	VerifiedBy     []string     `json:"verified_by,omitempty"`
	IsFlagged      bool         `json:"is_flagged"`
	RecordedAt     time.Time    `json:"recorded_at"`
}

// Valid checks structural validity of an event before it is appended
func (e *OwnershipEvent) Valid() bool {
	if e.EventID == "" || e.AssetID == "" {
		return false
	}
	if e.Timestamp.IsZero() {
		return false
	}
	if e.ConsensusLevel < 0 || e.ConsensusLevel > 100 {
		return false
	}
	if e.TransactionHash != "" && !txHashPattern.MatchString(e.TransactionHash) {
		return false
	}

	switch e.EventType {
	case EventTypeMint:
		return e.ToOwner != ""
	case EventTypeTransfer:
		return e.FromOwner != "" && e.ToOwner != "" && e.FromOwner != e.ToOwner
	case EventTypePledge:
		return e.EncumbranceID != nil && *e.EncumbranceID != ""
	case EventTypeRelease:
		return e.EncumbranceID != nil && *e.EncumbranceID != ""
	default:
		return false
	}
}

// TransfersOwnership reports whether the event moves the asset to a new owner
func (e *OwnershipEvent) TransfersOwnership() bool {
	return e.EventType == EventTypeMint || e.EventType == EventTypeTransfer
}

// LogOrderBefore reports whether e precedes other in the canonical log order
// (timestamp, recorded_at, event_id)
func (e *OwnershipEvent) LogOrderBefore(other *OwnershipEvent) bool {
	if !e.Timestamp.Equal(other.Timestamp) {
		return e.Timestamp.Before(other.Timestamp)
	}
	if !e.RecordedAt.Equal(other.RecordedAt) {
		return e.RecordedAt.Before(other.RecordedAt)
	}
	return e.EventID < other.EventID
}

// SortByLogOrder sorts events into the canonical log order in place
func SortByLogOrder(events []OwnershipEvent) {
	sort.Slice(events, func(i, j int) bool {
		return events[i].LogOrderBefore(&events[j])
	})
}

// NormalizeOwner normalizes an owner address to the format used by its ledger.
// EVM addresses are checksummed; everything else passes through unchanged.
func NormalizeOwner(owner string) string {
	if strings.HasPrefix(owner, "0x") && common.IsHexAddress(owner) {
		return common.HexToAddress(owner).Hex()
	}
	return owner
}

// Encumbrance represents a pledge, lien or lock restricting an asset's
// availability. Created active, released exactly once, never re-activated.
type Encumbrance struct {
	EncumbranceID   string          `json:"encumbrance_id"`
	AssetID         string          `json:"asset_id"`
	Type            EncumbranceType `json:"type"`
	Owner           string          `json:"owner"`
	Counterparty    string          `json:"counterparty"`
	Amount          float64         `json:"amount"`
	StartTime       time.Time       `json:"start_time"`
	MaturityTime    time.Time       `json:"maturity_time"`
	Priority        int             `json:"priority"`
	Chain           Chain           `json:"chain"`
	TransactionHash string          `json:"transaction_hash"`
	InterestRate    float64         `json:"interest_rate"`
	Haircut         float64         `json:"haircut"`
	AutoRelease     bool            `json:"auto_release"`
	Terms           string          `json:"terms,omitempty"`
	IsActive        bool            `json:"is_active"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// CreateEncumbranceRequest holds the parameters for creating a new encumbrance
type CreateEncumbranceRequest struct {
	AssetID      string          `json:"asset_id"`
	Type         EncumbranceType `json:"type"`
	Owner        string          `json:"owner"`
	Counterparty string          `json:"counterparty"`
	Amount       float64         `json:"amount"`
	MaturityTime time.Time       `json:"maturity_time"`
	Priority     int             `json:"priority"`
	Chain        Chain           `json:"chain"`
	InterestRate float64         `json:"interest_rate"`
	Haircut      float64         `json:"haircut"`
	AutoRelease  bool            `json:"auto_release"`
	Terms        string          `json:"terms,omitempty"`
}

// Validate checks that all required fields are present
func (r *CreateEncumbranceRequest) Validate() error {
	switch {
	case r.AssetID == "":
		return NewInvalidArgument("asset id is required")
	case r.Owner == "":
		return NewInvalidArgument("owner is required")
	case r.Counterparty == "":
		return NewInvalidArgument("counterparty is required")
	case r.Amount <= 0:
		return NewInvalidArgument("amount must be positive")
	case r.MaturityTime.IsZero():
		return NewInvalidArgument("maturity time is required")
	case r.Type == "":
		return NewInvalidArgument("encumbrance type is required")
	}
	return nil
}

// EncumbranceRelease describes the outcome of releasing an encumbrance
type EncumbranceRelease struct {
	EncumbranceID          string    `json:"encumbrance_id"`
	AssetID                string    `json:"asset_id"`
	ReleaseTime            time.Time `json:"release_time"`
	ReleaseTransactionHash string    `json:"release_transaction_hash"`
	Reason                 string    `json:"reason"`
	WasAutomatic           bool      `json:"was_automatic"`
}

// EncumbranceStatus summarizes the encumbrance position of a single asset.
// AvailableValue + TotalEncumberedValue == TotalValue always holds; when the
// pledged amount exceeds the asset value the available value is clamped to
// zero and the status is flagged.
type EncumbranceStatus struct {
	IsEncumbered         bool          `json:"is_encumbered"`
	ActiveEncumbrances   []Encumbrance `json:"active_encumbrances"`
	TotalEncumberedValue float64       `json:"total_encumbered_value"`
	TotalValue           float64       `json:"total_value"`
	AvailableValue       float64       `json:"available_value"`
	OverEncumbered       bool          `json:"over_encumbered,omitempty"`
}

// OwnershipRecord is the projected "who owns what" answer for one asset.
// It is derived from the event log on every read, never stored.
type OwnershipRecord struct {
	AssetID            string             `json:"asset_id"`
	CurrentOwner       string             `json:"current_owner"`
	Value              float64            `json:"value"`
	Currency           string             `json:"currency"`
	LastTransferTime   time.Time          `json:"last_transfer_time"`
	LastTransferTxHash string             `json:"last_transfer_tx_hash"`
	LocationChains     []Chain            `json:"location_chains"`
	ConsensusLevel     int                `json:"consensus_level"`
	IsDisputed         bool               `json:"is_disputed"`
	VerifiedBy         []string           `json:"verified_by,omitempty"`
	Encumbrance        *EncumbranceStatus `json:"encumbrance,omitempty"`
	IsHistoricalRecord bool               `json:"is_historical_record"`
	AsOfTime           *time.Time         `json:"as_of_time,omitempty"`
}

// AssetOwnership is one entry of an owner's portfolio
type AssetOwnership struct {
	AssetID      string     `json:"asset_id"`
	OwnerID      string     `json:"owner_id"`
	AssetType    string     `json:"asset_type,omitempty"`
	Value        float64    `json:"value"`
	Currency     string     `json:"currency"`
	Chain        Chain      `json:"chain"`
	IsEncumbered bool       `json:"is_encumbered"`
	AcquiredAt   time.Time  `json:"acquired_at"`
	AsOfTime     *time.Time `json:"as_of_time,omitempty"`
}

// PortfolioSnapshot is a point-in-time reconstruction of an owner's holdings
type PortfolioSnapshot struct {
	OwnerID    string           `json:"owner_id"`
	AsOfTime   time.Time        `json:"as_of_time"`
	Assets     []AssetOwnership `json:"assets"`
	TotalValue float64          `json:"total_value"`
}

// AvailabilityRecord describes whether an asset was free of active pledges at
// a point in time
type AvailabilityRecord struct {
	AssetID            string    `json:"asset_id"`
	AsOfTime           time.Time `json:"as_of_time"`
	WasAvailable       bool      `json:"was_available"`
	ActivePledgeAmount float64   `json:"active_pledge_amount"`
	ActivePledgeCount  int       `json:"active_pledge_count"`
}

// MaturitySchedule groups pledges maturing within the same hour, answering
// "when will $X become available"
type MaturitySchedule struct {
	Time              time.Time     `json:"time"`
	Assets            []Encumbrance `json:"assets"`
	TotalValueFreeing float64       `json:"total_value_freeing"`
	AssetTypes        []string      `json:"asset_types"`
	Counterparties    []string      `json:"counterparties"`
	Chains            []Chain       `json:"chains"`
	HasAutoRelease    bool          `json:"has_auto_release"`
}

// OwnershipVerification is the result of checking a single ownership claim
type OwnershipVerification struct {
	IsValid        bool      `json:"is_valid"`
	ConsensusLevel int       `json:"consensus_level"`
	Evidence       []string  `json:"evidence"`
	Reason         string    `json:"reason"`
	VerifiedAt     time.Time `json:"verified_at"`
}

// DisputeClaim is a competing ownership assertion filed for adjudication
type DisputeClaim struct {
	AssetID    string    `json:"asset_id"`
	ClaimantID string    `json:"claimant_id"`
	ClaimTime  time.Time `json:"claim_time"`
	FiledAt    time.Time `json:"filed_at"`
}

// OwnershipClaimVerification is the per-claim verification outcome inside a
// dispute resolution. A claim that cannot be resolved is invalid, not an error.
type OwnershipClaimVerification struct {
	Claim           DisputeClaim `json:"claim"`
	IsValid         bool         `json:"is_valid"`
	ConsensusLevel  int          `json:"consensus_level"`
	Evidence        []string     `json:"evidence,omitempty"`
	RejectionReason string       `json:"rejection_reason,omitempty"`
	VerifiedAt      time.Time    `json:"verified_at"`
}

// RejectedClaim records a non-winning claim inside a resolution
type RejectedClaim struct {
	ClaimantID      string    `json:"claimant_id"`
	ClaimTime       time.Time `json:"claim_time"`
	RejectionReason string    `json:"rejection_reason"`
	ConsensusLevel  int       `json:"consensus_level"`
}

// DisputeResolution is the immutable result of one dispute adjudication
type DisputeResolution struct {
	ResolutionID      string           `json:"resolution_id"`
	AssetID           string           `json:"asset_id"`
	WinningClaimant   string           `json:"winning_claimant"`
	ClaimTime         time.Time        `json:"claim_time"`
	ConsensusLevel    int              `json:"consensus_level"`
	Evidence          []string         `json:"evidence"`
	RejectedClaims    []RejectedClaim  `json:"rejected_claims"`
	ResolutionReason  string           `json:"resolution_reason"`
	IsCourtAdmissible bool             `json:"is_court_admissible"`
	BlockchainProof   *BlockchainProof `json:"blockchain_proof"`
	ResolvedAt        time.Time        `json:"resolved_at"`
	ResolutionTime    time.Duration    `json:"resolution_time"`
	ResolutionCost    float64          `json:"resolution_cost"`
	EstimatedSavings  float64          `json:"estimated_savings"`
}

// BlockchainProof bundles the on-chain references backing a projection.
// Digest is a SHA-256 over the JCS-canonicalized event list, so any mutation
// of the underlying history invalidates the proof.
type BlockchainProof struct {
	TransactionHashes []string  `json:"transaction_hashes"`
	BlockNumbers      []uint64  `json:"block_numbers"`
	OracleSignatures  []string  `json:"oracle_signatures,omitempty"`
	Digest            string    `json:"digest"`
	GeneratedAt       time.Time `json:"generated_at"`
	IsTamperProof     bool      `json:"is_tamper_proof"`
}

// OwnershipEvidence packages a reconstructed record with its full history and
// proof for audit or legal use
type OwnershipEvidence struct {
	AssetID           string           `json:"asset_id"`
	AsOfTime          time.Time        `json:"as_of_time"`
	Record            OwnershipRecord  `json:"record"`
	OwnershipHistory  []OwnershipEvent `json:"ownership_history"`
	ConsensusLevel    int              `json:"consensus_level"`
	Proof             *BlockchainProof `json:"proof"`
	IsCourtAdmissible bool             `json:"is_court_admissible"`
	GeneratedAt       time.Time        `json:"generated_at"`
}

// OracleAttestation is a signed statement from one oracle node
type OracleAttestation struct {
	OracleNodeID string    `json:"oracle_node_id"`
	Signature    string    `json:"signature"`
	SignedAt     time.Time `json:"signed_at"`
	Statement    string    `json:"statement"`
}

// CourtEvidence is the full court-grade evidence package
type CourtEvidence struct {
	EvidenceID          string              `json:"evidence_id"`
	AssetID             string              `json:"asset_id"`
	ClaimantID          string              `json:"claimant_id"`
	ClaimTimestamp      time.Time           `json:"claim_timestamp"`
	BlockchainProof     *BlockchainProof    `json:"blockchain_proof"`
	OracleAttestations  []OracleAttestation `json:"oracle_attestations"`
	SupportingDocuments []string            `json:"supporting_documents"`
	IsCourtAdmissible   bool                `json:"is_court_admissible"`
	IsTamperProof       bool                `json:"is_tamper_proof"`
	LegalSummary        string              `json:"legal_summary"`
	GeneratedAt         time.Time           `json:"generated_at"`
}

// DisputeFlag records an unresolved conflict for human review
type DisputeFlag struct {
	FlagID               string            `json:"flag_id"`
	AssetID              string            `json:"asset_id"`
	Reason               string            `json:"reason"`
	ConflictingRecords   []OwnershipRecord `json:"conflicting_records"`
	LowestConsensusLevel int               `json:"lowest_consensus_level"`
	FlaggedAt            time.Time         `json:"flagged_at"`
	IsResolved           bool              `json:"is_resolved"`
}
