package valuation

import (
	"context"
	"fmt"
	"net/url"

	"go.uber.org/zap"

	"github.com/clearlane/ownership-oracle/internal/adapter"
	"github.com/clearlane/ownership-oracle/internal/domain"
	"github.com/clearlane/ownership-oracle/internal/logger"
)

// Feed provides current asset valuations. Projections fall back to the value
// carried on the latest ownership event when the feed has no quote.
//
//go:generate mockgen -source=valuation.go -destination=../mocks/valuation.go -package=mocks -mock_names=Feed=MockFeed
type Feed interface {
	// GetValue returns the current value and currency of an asset
	GetValue(ctx context.Context, assetID string) (float64, string, error)
}

type quoteResponse struct {
	AssetID  string  `json:"asset_id"`
	Value    float64 `json:"value"`
	Currency string  `json:"currency"`
}

type httpFeed struct {
	httpClient adapter.HTTPClient
	baseURL    string
}

// NewHTTPFeed creates a Feed backed by a pricing service REST endpoint
func NewHTTPFeed(httpClient adapter.HTTPClient, baseURL string) Feed {
	return &httpFeed{httpClient: httpClient, baseURL: baseURL}
}

// GetValue returns the current value and currency of an asset
func (f *httpFeed) GetValue(ctx context.Context, assetID string) (float64, string, error) {
	endpoint := fmt.Sprintf("%s/v1/quotes/%s", f.baseURL, url.PathEscape(assetID))

	var quote quoteResponse
	if err := f.httpClient.Get(ctx, endpoint, &quote); err != nil {
		return 0, "", domain.NewUpstreamFailure(fmt.Sprintf("failed to fetch quote for asset %s", assetID), err)
	}
	if quote.Value <= 0 {
		return 0, "", domain.NewNotFound("no quote available for asset %s", assetID)
	}

	return quote.Value, quote.Currency, nil
}

type staticFeed struct {
	value    float64
	currency string
}

// NewStaticFeed creates a Feed that returns a fixed value for every asset.
// Used when no pricing service is configured.
func NewStaticFeed(value float64, currency string) Feed {
	return &staticFeed{value: value, currency: currency}
}

func (f *staticFeed) GetValue(_ context.Context, _ string) (float64, string, error) {
	return f.value, f.currency, nil
}

type fallbackFeed struct {
	primary  Feed
	fallback Feed
}

// NewFallbackFeed creates a Feed that tries primary first and falls back on
// any error
func NewFallbackFeed(primary, fallback Feed) Feed {
	return &fallbackFeed{primary: primary, fallback: fallback}
}

func (f *fallbackFeed) GetValue(ctx context.Context, assetID string) (float64, string, error) {
	value, currency, err := f.primary.GetValue(ctx, assetID)
	if err == nil {
		return value, currency, nil
	}
	logger.WarnCtx(ctx, "primary valuation feed failed, using fallback",
		zap.String("asset_id", assetID), zap.Error(err))
	return f.fallback.GetValue(ctx, assetID)
}
