package rest

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/clearlane/ownership-oracle/internal/domain"
	"github.com/clearlane/ownership-oracle/internal/oracle"
)

// Handler defines the interface for REST API handlers
// This interface allows for easy mocking and testing
//
//go:generate mockgen -source=handler.go -destination=../../mocks/api_handler.go -package=mocks -mock_names=Handler=MockAPIHandler
type Handler interface {
	// GetOwner returns the ownership record of an asset
	// GET /api/v1/assets/:id/owner?at=<RFC3339>
	GetOwner(c *gin.Context)

	// GetHistory returns the ordered ownership events of an asset
	// GET /api/v1/assets/:id/history?from=<RFC3339>&to=<RFC3339>
	GetHistory(c *gin.Context)

	// GetEncumbrance summarizes the encumbrance position of an asset
	// GET /api/v1/assets/:id/encumbrance
	GetEncumbrance(c *gin.Context)

	// GetAvailability reports whether an asset was unencumbered at a time
	// GET /api/v1/assets/:id/availability?at=<RFC3339>
	GetAvailability(c *gin.Context)

	// VerifyClaim checks an ownership claim against the event log
	// POST /api/v1/assets/:id/verify
	VerifyClaim(c *gin.Context)

	// GetEvidence produces a court-grade evidence package for an asset
	// GET /api/v1/assets/:id/evidence?claimant=<id>&at=<RFC3339>
	GetEvidence(c *gin.Context)

	// GetPortfolio returns the assets currently owned by an owner
	// GET /api/v1/owners/:id/portfolio?include_encumbered=<bool>&at=<RFC3339>
	GetPortfolio(c *gin.Context)

	// GetAvailableAssets returns the owner's unencumbered assets
	// GET /api/v1/owners/:id/available?min_value=<float>&asset_types=<a,b>
	GetAvailableAssets(c *gin.Context)

	// GetMaturitySchedule returns the owner's upcoming encumbrance maturities
	// GET /api/v1/owners/:id/maturity-schedule?hours_ahead=<int>
	GetMaturitySchedule(c *gin.Context)

	// CreateEncumbrance records a new pledge (requires authentication)
	// POST /api/v1/encumbrances
	CreateEncumbrance(c *gin.Context)

	// ReleaseEncumbrance releases an active pledge (requires authentication)
	// DELETE /api/v1/encumbrances/:id?reason=<text>
	ReleaseEncumbrance(c *gin.Context)

	// ResolveDispute adjudicates competing ownership claims (requires authentication)
	// POST /api/v1/disputes/resolve
	ResolveDispute(c *gin.Context)

	// FlagDispute records an unresolvable conflict for human review (requires authentication)
	// POST /api/v1/disputes/flag
	FlagDispute(c *gin.Context)

	// HealthCheck returns the health status of the API
	// GET /health
	HealthCheck(c *gin.Context)
}

// handler implements the Handler interface
type handler struct {
	oracle     oracle.Oracle
	timeOracle oracle.TimeOracle
	tracker    oracle.Tracker
	resolver   oracle.Resolver
}

// NewHandler creates a new REST API handler over the four oracle services
func NewHandler(o oracle.Oracle, timeOracle oracle.TimeOracle, tracker oracle.Tracker, resolver oracle.Resolver) Handler {
	return &handler{
		oracle:     o,
		timeOracle: timeOracle,
		tracker:    tracker,
		resolver:   resolver,
	}
}

// verifyClaimRequest is the body of POST /assets/:id/verify
type verifyClaimRequest struct {
	ClaimedOwner   string    `json:"claimed_owner" binding:"required"`
	ClaimTimestamp time.Time `json:"claim_timestamp" binding:"required"`
}

// resolveDisputeRequest is the body of POST /disputes/resolve
type resolveDisputeRequest struct {
	AssetID string                `json:"asset_id" binding:"required"`
	Claims  []domain.DisputeClaim `json:"claims" binding:"required"`
}

// flagDisputeRequest is the body of POST /disputes/flag
type flagDisputeRequest struct {
	AssetID            string                   `json:"asset_id" binding:"required"`
	Reason             string                   `json:"reason" binding:"required"`
	ConflictingRecords []domain.OwnershipRecord `json:"conflicting_records" binding:"required"`
}

// releaseEncumbranceRequest is the optional body of DELETE /encumbrances/:id
type releaseEncumbranceRequest struct {
	Reason string `json:"reason"`
}

// parseTimeParam parses an optional RFC3339 query parameter
func parseTimeParam(c *gin.Context, name string) (*time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// GetOwner returns the ownership record of an asset
func (h *handler) GetOwner(c *gin.Context) {
	assetID := c.Param("id")
	if assetID == "" {
		respondBadRequest(c, "Asset ID is required")
		return
	}

	at, err := parseTimeParam(c, "at")
	if err != nil {
		respondValidationError(c, "at must be an RFC3339 timestamp")
		return
	}

	record, err := h.oracle.GetCurrentOwner(c.Request.Context(), assetID, at)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

// GetHistory returns the ordered ownership events of an asset
func (h *handler) GetHistory(c *gin.Context) {
	assetID := c.Param("id")
	if assetID == "" {
		respondBadRequest(c, "Asset ID is required")
		return
	}

	from, err := parseTimeParam(c, "from")
	if err != nil {
		respondValidationError(c, "from must be an RFC3339 timestamp")
		return
	}
	to, err := parseTimeParam(c, "to")
	if err != nil {
		respondValidationError(c, "to must be an RFC3339 timestamp")
		return
	}

	fromTime := time.Time{}
	if from != nil {
		fromTime = *from
	}
	toTime := time.Now().UTC()
	if to != nil {
		toTime = *to
	}

	events, err := h.oracle.GetOwnershipHistory(c.Request.Context(), assetID, fromTime, toTime)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"asset_id": assetID,
		"events":   events,
	})
}

// GetEncumbrance summarizes the encumbrance position of an asset
func (h *handler) GetEncumbrance(c *gin.Context) {
	assetID := c.Param("id")
	if assetID == "" {
		respondBadRequest(c, "Asset ID is required")
		return
	}

	status, err := h.oracle.CheckEncumbrance(c.Request.Context(), assetID)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}

// GetAvailability reports whether an asset was unencumbered at a time
func (h *handler) GetAvailability(c *gin.Context) {
	assetID := c.Param("id")
	if assetID == "" {
		respondBadRequest(c, "Asset ID is required")
		return
	}

	at, err := parseTimeParam(c, "at")
	if err != nil {
		respondValidationError(c, "at must be an RFC3339 timestamp")
		return
	}
	target := time.Now().UTC()
	if at != nil {
		target = *at
	}

	record, err := h.timeOracle.CheckAvailabilityAtTime(c.Request.Context(), assetID, target)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

// VerifyClaim checks an ownership claim against the event log
func (h *handler) VerifyClaim(c *gin.Context) {
	assetID := c.Param("id")
	if assetID == "" {
		respondBadRequest(c, "Asset ID is required")
		return
	}

	var req verifyClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	verification, err := h.oracle.VerifyOwnershipClaim(c.Request.Context(), assetID, req.ClaimedOwner, req.ClaimTimestamp)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, verification)
}

// GetEvidence produces a court-grade evidence package for an asset
func (h *handler) GetEvidence(c *gin.Context) {
	assetID := c.Param("id")
	if assetID == "" {
		respondBadRequest(c, "Asset ID is required")
		return
	}

	claimantID := c.Query("claimant")
	if claimantID == "" {
		respondBadRequest(c, "claimant is required")
		return
	}

	at, err := parseTimeParam(c, "at")
	if err != nil {
		respondValidationError(c, "at must be an RFC3339 timestamp")
		return
	}
	target := time.Now().UTC()
	if at != nil {
		target = *at
	}

	evidence, err := h.resolver.GenerateCourtEvidence(c.Request.Context(), assetID, claimantID, target)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, evidence)
}

// GetPortfolio returns the assets currently owned by an owner. With an at
// parameter the historical snapshot is returned instead.
func (h *handler) GetPortfolio(c *gin.Context) {
	ownerID := c.Param("id")
	if ownerID == "" {
		respondBadRequest(c, "Owner ID is required")
		return
	}

	at, err := parseTimeParam(c, "at")
	if err != nil {
		respondValidationError(c, "at must be an RFC3339 timestamp")
		return
	}

	if at != nil {
		snapshot, err := h.timeOracle.GetPortfolioSnapshot(c.Request.Context(), ownerID, *at)
		if err != nil {
			respondDomainError(c, err)
			return
		}
		c.JSON(http.StatusOK, snapshot)
		return
	}

	includeEncumbered := c.Query("include_encumbered") == "true"
	portfolio, err := h.oracle.GetPortfolio(c.Request.Context(), ownerID, includeEncumbered)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"owner_id": ownerID,
		"assets":   portfolio,
	})
}

// GetAvailableAssets returns the owner's unencumbered assets
func (h *handler) GetAvailableAssets(c *gin.Context) {
	ownerID := c.Param("id")
	if ownerID == "" {
		respondBadRequest(c, "Owner ID is required")
		return
	}

	var minValue float64
	if raw := c.Query("min_value"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || parsed < 0 {
			respondValidationError(c, "min_value must be a non-negative number")
			return
		}
		minValue = parsed
	}

	var assetTypes []string
	if raw := c.Query("asset_types"); raw != "" {
		assetTypes = strings.Split(raw, ",")
	}

	assets, err := h.oracle.GetAvailableAssets(c.Request.Context(), ownerID, minValue, assetTypes)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"owner_id": ownerID,
		"assets":   assets,
	})
}

// GetMaturitySchedule returns the owner's upcoming encumbrance maturities
func (h *handler) GetMaturitySchedule(c *gin.Context) {
	ownerID := c.Param("id")
	if ownerID == "" {
		respondBadRequest(c, "Owner ID is required")
		return
	}

	hoursAhead := 24
	if raw := c.Query("hours_ahead"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			respondValidationError(c, "hours_ahead must be a positive integer")
			return
		}
		hoursAhead = parsed
	}

	schedule, err := h.tracker.GetMaturitySchedule(c.Request.Context(), ownerID, hoursAhead)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"owner_id":    ownerID,
		"hours_ahead": hoursAhead,
		"schedule":    schedule,
	})
}

// CreateEncumbrance records a new pledge
func (h *handler) CreateEncumbrance(c *gin.Context) {
	var req domain.CreateEncumbranceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	encumbrance, err := h.tracker.CreateEncumbrance(c.Request.Context(), &req)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, encumbrance)
}

// ReleaseEncumbrance releases an active pledge
func (h *handler) ReleaseEncumbrance(c *gin.Context) {
	encumbranceID := c.Param("id")
	if encumbranceID == "" {
		respondBadRequest(c, "Encumbrance ID is required")
		return
	}

	reason := c.Query("reason")
	if reason == "" {
		var req releaseEncumbranceRequest
		if err := c.ShouldBindJSON(&req); err == nil {
			reason = req.Reason
		}
	}

	release, err := h.tracker.ReleaseEncumbrance(c.Request.Context(), encumbranceID, reason)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, release)
}

// ResolveDispute adjudicates competing ownership claims
func (h *handler) ResolveDispute(c *gin.Context) {
	var req resolveDisputeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	resolution, err := h.resolver.ResolveOwnershipDispute(c.Request.Context(), req.AssetID, req.Claims)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resolution)
}

// FlagDispute records an unresolvable conflict for human review
func (h *handler) FlagDispute(c *gin.Context) {
	var req flagDisputeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	flag, err := h.resolver.FlagDispute(c.Request.Context(), req.AssetID, req.Reason, req.ConflictingRecords)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, flag)
}

// HealthCheck returns the health status of the API
func (h *handler) HealthCheck(c *gin.Context) {
	c.JSON(200, gin.H{
		"status":  "ok",
		"service": "ownership-oracle-api",
	})
}
