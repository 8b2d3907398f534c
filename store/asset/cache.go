package asset

import (
	"context"
	"fmt"

	"dsc/core"

	"github.com/bluele/gcache"
	"golang.org/x/sync/singleflight"
)

const allKey = "asset:all"

// Cache the supported asset set never changes at runtime, so entries never expire
func Cache(store core.IAssetStore) core.IAssetStore {
	return &cacheAssetStore{
		IAssetStore: store,
		cache:       gcache.New(256).LRU().Build(),
		sf:          &singleflight.Group{},
	}
}

type cacheAssetStore struct {
	core.IAssetStore
	cache gcache.Cache
	sf    *singleflight.Group
}

func (s *cacheAssetStore) Save(ctx context.Context, asset *core.Asset) error {
	if err := s.IAssetStore.Save(ctx, asset); err != nil {
		return err
	}

	s.cache.Remove(allKey)
	return s.cache.Set(s.assetKey(asset.ID), asset)
}

func (s *cacheAssetStore) Find(ctx context.Context, id string) (*core.Asset, error) {
	if v, err := s.cache.Get(s.assetKey(id)); err == nil {
		if asset, ok := v.(*core.Asset); ok {
			return asset, nil
		}
	}

	v, err, _ := s.sf.Do(s.assetKey(id), func() (interface{}, error) {
		asset, err := s.IAssetStore.Find(ctx, id)
		if err != nil {
			return nil, err
		}

		_ = s.cache.Set(s.assetKey(id), asset)
		return asset, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(*core.Asset), nil
}

func (s *cacheAssetStore) All(ctx context.Context) ([]*core.Asset, error) {
	if v, err := s.cache.Get(allKey); err == nil {
		if assets, ok := v.([]*core.Asset); ok {
			return assets, nil
		}
	}

	v, err, _ := s.sf.Do(allKey, func() (interface{}, error) {
		assets, err := s.IAssetStore.All(ctx)
		if err != nil {
			return nil, err
		}

		_ = s.cache.Set(allKey, assets)
		return assets, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]*core.Asset), nil
}

func (s *cacheAssetStore) assetKey(id string) string {
	return fmt.Sprintf("asset:id:%s", id)
}
