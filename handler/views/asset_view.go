package views

import (
	"dsc/core"
)

// Asset supported collateral view
type Asset struct {
	ID       string `json:"id"`
	Symbol   string `json:"symbol"`
	Decimals uint8  `json:"decimals"`
	FeedID   string `json:"feed_id"`
}

// AssetView render asset
func AssetView(asset *core.Asset) *Asset {
	return &Asset{
		ID:       asset.ID,
		Symbol:   asset.Symbol,
		Decimals: asset.Decimals,
		FeedID:   asset.FeedID,
	}
}

// AssetsView render assets
func AssetsView(assets []*core.Asset) []*Asset {
	views := make([]*Asset, 0, len(assets))
	for _, asset := range assets {
		views = append(views, AssetView(asset))
	}

	return views
}
