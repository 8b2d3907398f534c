package feed

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"dsc/core"

	"github.com/shopspring/decimal"
)

// ErrNoQuote feed has never been set
var ErrNoQuote = errors.New("feed: no quote")

// Static in-process feed, prices are pushed with Set
type Static struct {
	mu     sync.RWMutex
	quotes map[string]core.PriceQuote
}

// NewStatic new static feed
func NewStatic() *Static {
	return &Static{
		quotes: map[string]core.PriceQuote{},
	}
}

// Set set the latest quote of feed
func (f *Static) Set(feedID string, price decimal.Decimal, updatedAt time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.quotes[feedID] = core.PriceQuote{
		FeedID:    feedID,
		Price:     price,
		UpdatedAt: updatedAt,
	}
}

// LatestQuote implement core.IPriceFeed
func (f *Static) LatestQuote(ctx context.Context, feedID string) (*core.PriceQuote, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	q, ok := f.quotes[feedID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoQuote, feedID)
	}

	return &q, nil
}
