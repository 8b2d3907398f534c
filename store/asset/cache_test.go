package asset

import (
	"context"
	"testing"

	"dsc/core"
	"dsc/store/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingStore struct {
	core.IAssetStore
	finds, alls int
}

func (s *countingStore) Find(ctx context.Context, id string) (*core.Asset, error) {
	s.finds++
	return s.IAssetStore.Find(ctx, id)
}

func (s *countingStore) All(ctx context.Context) ([]*core.Asset, error) {
	s.alls++
	return s.IAssetStore.All(ctx)
}

func TestCache(t *testing.T) {
	ctx := context.Background()
	inner := &countingStore{IAssetStore: memory.New().Assets()}
	store := Cache(inner)

	require.Nil(t, inner.Save(ctx, &core.Asset{ID: "weth", Symbol: "WETH", Decimals: 18, FeedID: "ETH-USD"}))

	for i := 0; i < 3; i++ {
		a, err := store.Find(ctx, "weth")
		require.Nil(t, err)
		assert.Equal(t, "ETH-USD", a.FeedID)
	}
	assert.Equal(t, 1, inner.finds)

	_, err := store.Find(ctx, "doge")
	assert.ErrorIs(t, err, core.ErrUnsupportedAsset)

	assets, err := store.All(ctx)
	require.Nil(t, err)
	assert.Len(t, assets, 1)

	require.Nil(t, store.Save(ctx, &core.Asset{ID: "wbtc", Symbol: "WBTC", Decimals: 8, FeedID: "BTC-USD"}))
	assets, err = store.All(ctx)
	require.Nil(t, err)
	assert.Len(t, assets, 2)
	assert.Equal(t, 2, inner.alls)
}
