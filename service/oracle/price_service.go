package oracle

import (
	"context"
	"fmt"
	"time"

	"dsc/core"
	"dsc/pkg/fixedpoint"

	"github.com/fox-one/pkg/logger"
	"github.com/holiman/uint256"
)

// MaxPriceAge quotes older than this are treated as absent
const MaxPriceAge = 3 * time.Hour

// Option price service option
type Option func(s *PriceService)

// WithClock override the clock used for staleness checks
func WithClock(now func() time.Time) Option {
	return func(s *PriceService) {
		s.now = now
	}
}

// WithMaxAge override the staleness window
func WithMaxAge(age time.Duration) Option {
	return func(s *PriceService) {
		s.maxAge = age
	}
}

// PriceService price oracle adapter, one feed per supported asset
type PriceService struct {
	assets *core.AssetSet
	feed   core.IPriceFeed
	maxAge time.Duration
	now    func() time.Time
}

// New new oracle price service
func New(assets *core.AssetSet, feed core.IPriceFeed, opts ...Option) *PriceService {
	s := &PriceService{
		assets: assets,
		feed:   feed,
		maxAge: MaxPriceAge,
		now:    time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Quote latest validated quote of the asset
func (s *PriceService) Quote(ctx context.Context, assetID string) (*core.PriceQuote, error) {
	asset, ok := s.assets.Find(assetID)
	if !ok {
		return nil, core.ErrUnsupportedAsset
	}

	quote, err := s.feed.LatestQuote(ctx, asset.FeedID)
	if err != nil {
		logger.FromContext(ctx).WithError(err).Errorln("feed.LatestQuote", asset.FeedID)
		return nil, fmt.Errorf("oracle: quote %s: %w", asset.FeedID, err)
	}

	if !quote.Price.IsPositive() {
		return nil, core.ErrInvalidPrice
	}

	if quote.UpdatedAt.IsZero() || s.now().Sub(quote.UpdatedAt) > s.maxAge {
		logger.FromContext(ctx).WithField("updated_at", quote.UpdatedAt).Warnln("stale price", asset.FeedID)
		return nil, core.ErrStalePrice
	}

	return quote, nil
}

// CurrentPrice usd price of one whole unit normalised to 18 decimals
func (s *PriceService) CurrentPrice(ctx context.Context, assetID string) (*uint256.Int, error) {
	quote, err := s.Quote(ctx, assetID)
	if err != nil {
		return nil, err
	}

	// digits beyond 18 decimals are dropped
	price, err := fixedpoint.FromDecimal(quote.Price.Shift(fixedpoint.Decimals).Truncate(0))
	if err != nil {
		return nil, err
	}

	if price.IsZero() {
		return nil, core.ErrInvalidPrice
	}

	return price, nil
}
