package core

import (
	"context"
	"time"

	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"
)

// PriceQuote usd price of one whole unit, as reported by a feed
type PriceQuote struct {
	FeedID    string          `json:"feed_id,omitempty"`
	Price     decimal.Decimal `json:"price"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// IPriceFeed external price source
type IPriceFeed interface {
	LatestQuote(ctx context.Context, feedID string) (*PriceQuote, error)
}

// IPriceOracleService price oracle adapter
type IPriceOracleService interface {
	// CurrentPrice usd price of one whole unit of the asset, 18 decimals
	CurrentPrice(ctx context.Context, assetID string) (*uint256.Int, error)
	Quote(ctx context.Context, assetID string) (*PriceQuote, error)
}
