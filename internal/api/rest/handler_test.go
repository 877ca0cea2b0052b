package rest_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clearlane/ownership-oracle/internal/api/middleware"
	"github.com/clearlane/ownership-oracle/internal/api/rest"
	"github.com/clearlane/ownership-oracle/internal/domain"
	"github.com/clearlane/ownership-oracle/internal/logger"
	"github.com/clearlane/ownership-oracle/internal/mocks"
)

const testAPIKey = "test-api-key"

func TestMain(m *testing.M) {
	// Initialize logger for tests
	err := logger.Initialize(logger.Config{
		Debug: false,
	})
	if err != nil {
		panic(err)
	}

	gin.SetMode(gin.TestMode)
	code := m.Run()
	os.Exit(code)
}

// testAPIMocks contains all the mocks needed for testing the handlers
type testAPIMocks struct {
	ctrl       *gomock.Controller
	oracle     *mocks.MockOracle
	timeOracle *mocks.MockTimeOracle
	tracker    *mocks.MockTracker
	resolver   *mocks.MockResolver
	router     *gin.Engine
}

// setupTestAPI creates the mocks and a router with all routes registered
func setupTestAPI(t *testing.T) *testAPIMocks {
	ctrl := gomock.NewController(t)

	tm := &testAPIMocks{
		ctrl:       ctrl,
		oracle:     mocks.NewMockOracle(ctrl),
		timeOracle: mocks.NewMockTimeOracle(ctrl),
		tracker:    mocks.NewMockTracker(ctrl),
		resolver:   mocks.NewMockResolver(ctrl),
	}

	handler := rest.NewHandler(tm.oracle, tm.timeOracle, tm.tracker, tm.resolver)
	tm.router = gin.New()
	rest.SetupRoutes(tm.router, handler, middleware.AuthConfig{
		APIKeys: []string{testAPIKey},
	})
	return tm
}

func tearDownTestAPI(tm *testAPIMocks) {
	tm.ctrl.Finish()
}

// request performs one request against the test router
func request(tm *testAPIMocks, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp := httptest.NewRecorder()
	tm.router.ServeHTTP(resp, req)
	return resp
}

func authHeader() map[string]string {
	return map[string]string{"Authorization": "APIKey " + testAPIKey}
}

func TestHealthCheck(t *testing.T) {
	tm := setupTestAPI(t)
	defer tearDownTestAPI(tm)

	resp := request(tm, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "ok")
}

func TestGetOwner(t *testing.T) {
	t.Run("returns the current record", func(t *testing.T) {
		tm := setupTestAPI(t)
		defer tearDownTestAPI(tm)

		tm.oracle.EXPECT().
			GetCurrentOwner(gomock.Any(), "a1", nil).
			Return(&domain.OwnershipRecord{AssetID: "a1", CurrentOwner: "Y", ConsensusLevel: 95}, nil)

		resp := request(tm, http.MethodGet, "/api/v1/assets/a1/owner", "", nil)
		require.Equal(t, http.StatusOK, resp.Code)

		var record domain.OwnershipRecord
		require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &record))
		assert.Equal(t, "Y", record.CurrentOwner)
	})

	t.Run("passes the at parameter through", func(t *testing.T) {
		tm := setupTestAPI(t)
		defer tearDownTestAPI(tm)

		at := time.Date(2026, 1, 1, 0, 0, 5, 0, time.UTC)
		tm.oracle.EXPECT().
			GetCurrentOwner(gomock.Any(), "a1", &at).
			Return(&domain.OwnershipRecord{AssetID: "a1", CurrentOwner: "X"}, nil)

		resp := request(tm, http.MethodGet, "/api/v1/assets/a1/owner?at=2026-01-01T00:00:05Z", "", nil)
		assert.Equal(t, http.StatusOK, resp.Code)
	})

	t.Run("rejects a malformed timestamp", func(t *testing.T) {
		tm := setupTestAPI(t)
		defer tearDownTestAPI(tm)

		resp := request(tm, http.MethodGet, "/api/v1/assets/a1/owner?at=yesterday", "", nil)
		assert.Equal(t, http.StatusBadRequest, resp.Code)
	})

	t.Run("maps not found onto 404", func(t *testing.T) {
		tm := setupTestAPI(t)
		defer tearDownTestAPI(tm)

		tm.oracle.EXPECT().
			GetCurrentOwner(gomock.Any(), "missing", nil).
			Return(nil, domain.NewNotFound("no ownership record for asset missing"))

		resp := request(tm, http.MethodGet, "/api/v1/assets/missing/owner", "", nil)
		assert.Equal(t, http.StatusNotFound, resp.Code)
		assert.Contains(t, resp.Body.String(), "not_found")
	})
}

func TestGetEncumbrance(t *testing.T) {
	t.Run("returns the status", func(t *testing.T) {
		tm := setupTestAPI(t)
		defer tearDownTestAPI(tm)

		tm.oracle.EXPECT().
			CheckEncumbrance(gomock.Any(), "a1").
			Return(&domain.EncumbranceStatus{IsEncumbered: true, TotalValue: 2000, TotalEncumberedValue: 500, AvailableValue: 1500}, nil)

		resp := request(tm, http.MethodGet, "/api/v1/assets/a1/encumbrance", "", nil)
		require.Equal(t, http.StatusOK, resp.Code)

		var status domain.EncumbranceStatus
		require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &status))
		assert.True(t, status.IsEncumbered)
		assert.Equal(t, 1500.0, status.AvailableValue)
	})

	t.Run("maps upstream failures onto 502", func(t *testing.T) {
		tm := setupTestAPI(t)
		defer tearDownTestAPI(tm)

		tm.oracle.EXPECT().
			CheckEncumbrance(gomock.Any(), "a1").
			Return(nil, domain.NewUpstreamFailure("event log unavailable", assert.AnError))

		resp := request(tm, http.MethodGet, "/api/v1/assets/a1/encumbrance", "", nil)
		assert.Equal(t, http.StatusBadGateway, resp.Code)
	})
}

func TestVerifyClaim(t *testing.T) {
	t.Run("verifies a well-formed claim", func(t *testing.T) {
		tm := setupTestAPI(t)
		defer tearDownTestAPI(tm)

		claimTime := time.Date(2026, 1, 1, 0, 0, 15, 0, time.UTC)
		tm.oracle.EXPECT().
			VerifyOwnershipClaim(gomock.Any(), "a1", "Y", claimTime).
			Return(&domain.OwnershipVerification{IsValid: true, ConsensusLevel: 95}, nil)

		body := `{"claimed_owner":"Y","claim_timestamp":"2026-01-01T00:00:15Z"}`
		resp := request(tm, http.MethodPost, "/api/v1/assets/a1/verify", body, nil)
		require.Equal(t, http.StatusOK, resp.Code)

		var verification domain.OwnershipVerification
		require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &verification))
		assert.True(t, verification.IsValid)
	})

	t.Run("rejects a body without a claimed owner", func(t *testing.T) {
		tm := setupTestAPI(t)
		defer tearDownTestAPI(tm)

		body := `{"claim_timestamp":"2026-01-01T00:00:15Z"}`
		resp := request(tm, http.MethodPost, "/api/v1/assets/a1/verify", body, nil)
		assert.Equal(t, http.StatusBadRequest, resp.Code)
	})
}

func TestGetMaturitySchedule(t *testing.T) {
	t.Run("defaults to a 24 hour horizon", func(t *testing.T) {
		tm := setupTestAPI(t)
		defer tearDownTestAPI(tm)

		tm.tracker.EXPECT().
			GetMaturitySchedule(gomock.Any(), "Y", 24).
			Return([]domain.MaturitySchedule{}, nil)

		resp := request(tm, http.MethodGet, "/api/v1/owners/Y/maturity-schedule", "", nil)
		assert.Equal(t, http.StatusOK, resp.Code)
	})

	t.Run("rejects a non-positive horizon", func(t *testing.T) {
		tm := setupTestAPI(t)
		defer tearDownTestAPI(tm)

		resp := request(tm, http.MethodGet, "/api/v1/owners/Y/maturity-schedule?hours_ahead=0", "", nil)
		assert.Equal(t, http.StatusBadRequest, resp.Code)
	})
}

func TestCreateEncumbrance(t *testing.T) {
	body := `{
		"asset_id": "a1",
		"type": "repo",
		"owner": "Y",
		"counterparty": "dealer-a",
		"amount": 500000,
		"maturity_time": "2026-06-01T00:00:00Z",
		"chain": "eip155:1",
		"auto_release": true
	}`

	t.Run("requires authentication", func(t *testing.T) {
		tm := setupTestAPI(t)
		defer tearDownTestAPI(tm)

		resp := request(tm, http.MethodPost, "/api/v1/encumbrances", body, nil)
		assert.Equal(t, http.StatusUnauthorized, resp.Code)
	})

	t.Run("creates a pledge with a valid API key", func(t *testing.T) {
		tm := setupTestAPI(t)
		defer tearDownTestAPI(tm)

		tm.tracker.EXPECT().
			CreateEncumbrance(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ interface{}, req *domain.CreateEncumbranceRequest) (*domain.Encumbrance, error) {
				assert.Equal(t, "a1", req.AssetID)
				assert.Equal(t, domain.EncumbranceTypeRepo, req.Type)
				return &domain.Encumbrance{EncumbranceID: "enc-1", AssetID: "a1", IsActive: true}, nil
			})

		resp := request(tm, http.MethodPost, "/api/v1/encumbrances", body, authHeader())
		require.Equal(t, http.StatusCreated, resp.Code)
		assert.Contains(t, resp.Body.String(), "enc-1")
	})

	t.Run("maps validation failures onto 400", func(t *testing.T) {
		tm := setupTestAPI(t)
		defer tearDownTestAPI(tm)

		tm.tracker.EXPECT().
			CreateEncumbrance(gomock.Any(), gomock.Any()).
			Return(nil, domain.NewInvalidArgument("maturity time must be in the future"))

		resp := request(tm, http.MethodPost, "/api/v1/encumbrances", body, authHeader())
		assert.Equal(t, http.StatusBadRequest, resp.Code)
	})
}

func TestReleaseEncumbrance(t *testing.T) {
	tm := setupTestAPI(t)
	defer tearDownTestAPI(tm)

	tm.tracker.EXPECT().
		ReleaseEncumbrance(gomock.Any(), "enc-1", "substituted").
		Return(&domain.EncumbranceRelease{EncumbranceID: "enc-1", AssetID: "a1", Reason: "substituted"}, nil)

	resp := request(tm, http.MethodDelete, "/api/v1/encumbrances/enc-1?reason=substituted", "", authHeader())
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "substituted")
}

func TestResolveDispute(t *testing.T) {
	body := `{
		"asset_id": "a1",
		"claims": [
			{"asset_id": "a1", "claimant_id": "X", "claim_time": "2026-01-01T00:00:05Z"},
			{"asset_id": "a1", "claimant_id": "Y", "claim_time": "2026-01-01T00:00:15Z"}
		]
	}`

	t.Run("returns the resolution", func(t *testing.T) {
		tm := setupTestAPI(t)
		defer tearDownTestAPI(tm)

		tm.resolver.EXPECT().
			ResolveOwnershipDispute(gomock.Any(), "a1", gomock.Len(2)).
			Return(&domain.DisputeResolution{ResolutionID: "res-1", AssetID: "a1", WinningClaimant: "X"}, nil)

		resp := request(tm, http.MethodPost, "/api/v1/disputes/resolve", body, authHeader())
		require.Equal(t, http.StatusOK, resp.Code)
		assert.Contains(t, resp.Body.String(), "res-1")
	})

	t.Run("maps no valid claim onto 422", func(t *testing.T) {
		tm := setupTestAPI(t)
		defer tearDownTestAPI(tm)

		tm.resolver.EXPECT().
			ResolveOwnershipDispute(gomock.Any(), "a1", gomock.Any()).
			Return(nil, domain.NewNoValidClaim("no claim on asset a1 passed verification"))

		resp := request(tm, http.MethodPost, "/api/v1/disputes/resolve", body, authHeader())
		assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
		assert.Contains(t, resp.Body.String(), "no_valid_claim")
	})

	t.Run("requires authentication", func(t *testing.T) {
		tm := setupTestAPI(t)
		defer tearDownTestAPI(tm)

		resp := request(tm, http.MethodPost, "/api/v1/disputes/resolve", body, nil)
		assert.Equal(t, http.StatusUnauthorized, resp.Code)
	})
}

func TestFlagDispute(t *testing.T) {
	tm := setupTestAPI(t)
	defer tearDownTestAPI(tm)

	body := `{
		"asset_id": "a1",
		"reason": "observers disagree on current owner",
		"conflicting_records": [
			{"asset_id": "a1", "current_owner": "X", "consensus_level": 60},
			{"asset_id": "a1", "current_owner": "Y", "consensus_level": 45}
		]
	}`

	tm.resolver.EXPECT().
		FlagDispute(gomock.Any(), "a1", "observers disagree on current owner", gomock.Len(2)).
		Return(&domain.DisputeFlag{FlagID: "flag-1", AssetID: "a1", LowestConsensusLevel: 45}, nil)

	resp := request(tm, http.MethodPost, "/api/v1/disputes/flag", body, authHeader())
	require.Equal(t, http.StatusCreated, resp.Code)
	assert.Contains(t, resp.Body.String(), "flag-1")
}

func TestGetEvidence(t *testing.T) {
	t.Run("requires a claimant", func(t *testing.T) {
		tm := setupTestAPI(t)
		defer tearDownTestAPI(tm)

		resp := request(tm, http.MethodGet, "/api/v1/assets/a1/evidence", "", nil)
		assert.Equal(t, http.StatusBadRequest, resp.Code)
	})

	t.Run("returns the evidence package", func(t *testing.T) {
		tm := setupTestAPI(t)
		defer tearDownTestAPI(tm)

		at := time.Date(2026, 1, 1, 0, 0, 15, 0, time.UTC)
		tm.resolver.EXPECT().
			GenerateCourtEvidence(gomock.Any(), "a1", "Y", at).
			Return(&domain.CourtEvidence{EvidenceID: "ev-1", AssetID: "a1", IsCourtAdmissible: true}, nil)

		resp := request(tm, http.MethodGet, "/api/v1/assets/a1/evidence?claimant=Y&at=2026-01-01T00:00:15Z", "", nil)
		require.Equal(t, http.StatusOK, resp.Code)
		assert.Contains(t, resp.Body.String(), "ev-1")
	})
}

func TestGetPortfolio(t *testing.T) {
	t.Run("returns the live portfolio", func(t *testing.T) {
		tm := setupTestAPI(t)
		defer tearDownTestAPI(tm)

		tm.oracle.EXPECT().
			GetPortfolio(gomock.Any(), "Y", false).
			Return([]domain.AssetOwnership{{AssetID: "a1", OwnerID: "Y", Value: 1000}}, nil)

		resp := request(tm, http.MethodGet, "/api/v1/owners/Y/portfolio", "", nil)
		require.Equal(t, http.StatusOK, resp.Code)
		assert.Contains(t, resp.Body.String(), "a1")
	})

	t.Run("at parameter returns the historical snapshot", func(t *testing.T) {
		tm := setupTestAPI(t)
		defer tearDownTestAPI(tm)

		at := time.Date(2026, 1, 1, 0, 0, 5, 0, time.UTC)
		tm.timeOracle.EXPECT().
			GetPortfolioSnapshot(gomock.Any(), "Y", at).
			Return(&domain.PortfolioSnapshot{OwnerID: "Y"}, nil)

		resp := request(tm, http.MethodGet, "/api/v1/owners/Y/portfolio?at=2026-01-01T00:00:05Z", "", nil)
		assert.Equal(t, http.StatusOK, resp.Code)
	})
}

func TestGetAvailableAssets(t *testing.T) {
	tm := setupTestAPI(t)
	defer tearDownTestAPI(tm)

	tm.oracle.EXPECT().
		GetAvailableAssets(gomock.Any(), "Y", 500.0, []string{"bond"}).
		Return([]domain.AssetOwnership{{AssetID: "a2", OwnerID: "Y", Value: 5000}}, nil)

	resp := request(tm, http.MethodGet, "/api/v1/owners/Y/available?min_value=500&asset_types=bond", "", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "a2")
}
