package core

import (
	"context"
	"fmt"
	"sort"
	"time"
)

// MaxAssetDecimals upper bound for asset decimals, 10^77 is the largest power of ten below 2^256
const MaxAssetDecimals = 77

// Asset supported collateral asset
type Asset struct {
	ID        string    `sql:"size:36;PRIMARY_KEY" json:"id"`
	Symbol    string    `sql:"size:32" json:"symbol,omitempty"`
	Decimals  uint8     `sql:"default:18" json:"decimals"`
	FeedID    string    `sql:"size:64" json:"feed_id"`
	CreatedAt time.Time `sql:"default:CURRENT_TIMESTAMP" json:"created_at,omitempty"`
	UpdatedAt time.Time `sql:"default:CURRENT_TIMESTAMP" json:"updated_at,omitempty"`
}

// IAssetStore asset store interface
type IAssetStore interface {
	Save(ctx context.Context, asset *Asset) error
	Find(ctx context.Context, id string) (*Asset, error)
	All(ctx context.Context) ([]*Asset, error)
}

// AssetSet the supported collateral assets, fixed once built
type AssetSet struct {
	assets map[string]Asset
	ids    []string
}

// NewAssetSet validate assets and build the set
func NewAssetSet(assets []*Asset) (*AssetSet, error) {
	if len(assets) == 0 {
		return nil, fmt.Errorf("%w: no assets", ErrAssetConfig)
	}

	set := &AssetSet{
		assets: make(map[string]Asset, len(assets)),
	}

	feeds := make(map[string]string, len(assets))
	for _, a := range assets {
		switch {
		case a == nil || a.ID == "":
			return nil, fmt.Errorf("%w: empty asset id", ErrAssetConfig)
		case a.FeedID == "":
			return nil, fmt.Errorf("%w: asset %s has no price feed", ErrAssetConfig, a.ID)
		case a.Decimals > MaxAssetDecimals:
			return nil, fmt.Errorf("%w: asset %s decimals %d", ErrAssetConfig, a.ID, a.Decimals)
		}

		if _, ok := set.assets[a.ID]; ok {
			return nil, fmt.Errorf("%w: duplicated asset %s", ErrAssetConfig, a.ID)
		}

		if other, ok := feeds[a.FeedID]; ok {
			return nil, fmt.Errorf("%w: feed %s bound to %s and %s", ErrAssetConfig, a.FeedID, other, a.ID)
		}

		feeds[a.FeedID] = a.ID
		set.assets[a.ID] = *a
		set.ids = append(set.ids, a.ID)
	}

	sort.Strings(set.ids)
	return set, nil
}

// Find return a copy of the asset
func (s *AssetSet) Find(id string) (*Asset, bool) {
	a, ok := s.assets[id]
	if !ok {
		return nil, false
	}

	return &a, true
}

// Contains check if asset is supported
func (s *AssetSet) Contains(id string) bool {
	_, ok := s.assets[id]
	return ok
}

// IDs sorted asset ids
func (s *AssetSet) IDs() []string {
	ids := make([]string, len(s.ids))
	copy(ids, s.ids)
	return ids
}

// List copies of all assets, sorted by id
func (s *AssetSet) List() []*Asset {
	assets := make([]*Asset, 0, len(s.ids))
	for _, id := range s.ids {
		a := s.assets[id]
		assets = append(assets, &a)
	}

	return assets
}
