package feed

import (
	"context"
	"fmt"
	"time"

	"dsc/core"
	"dsc/pkg/resthttp"

	"github.com/fox-one/pkg/logger"
	"github.com/shopspring/decimal"
)

type ticker struct {
	Provider  string          `json:"provider,omitempty"`
	Symbol    string          `json:"symbol,omitempty"`
	Price     decimal.Decimal `json:"price,omitempty"`
	Timestamp int64           `json:"timestamp,omitempty"`
}

type tickerResponse struct {
	Data ticker `json:"data"`
}

// HTTPFeed price tickers served by an oracle api
type HTTPFeed struct {
	endpoint string
}

// NewHTTP new http price feed
func NewHTTP(cfg core.PriceOracle) *HTTPFeed {
	return &HTTPFeed{endpoint: cfg.EndPoint}
}

// LatestQuote GET {endpoint}/api/v2/tickers/{feed}
func (f *HTTPFeed) LatestQuote(ctx context.Context, feedID string) (*core.PriceQuote, error) {
	url := fmt.Sprintf("%s/api/v2/tickers/%s", f.endpoint, feedID)
	logger.FromContext(ctx).Debugln("pull price:", url)

	resp, err := resthttp.Request(ctx).Get(url)
	if err != nil {
		return nil, err
	}

	var body tickerResponse
	if err := resthttp.ParseResponse(resp, &body); err != nil {
		return nil, err
	}

	quote := &core.PriceQuote{
		FeedID: feedID,
		Price:  body.Data.Price,
	}

	// a missing timestamp stays zero and is rejected as stale
	if body.Data.Timestamp > 0 {
		quote.UpdatedAt = time.Unix(body.Data.Timestamp, 0)
	}

	return quote, nil
}
