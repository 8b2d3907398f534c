package collateral

import (
	"context"

	"dsc/core"
	"dsc/store/session"

	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
	"github.com/shopspring/decimal"
)

type collateralStore struct {
	db *db.DB
}

// New new collateral store
func New(db *db.DB) core.ICollateralStore {
	return &collateralStore{
		db: db,
	}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Collateral{})
		if err := tx.AutoMigrate(core.Collateral{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *collateralStore) Find(ctx context.Context, userID, assetID string) (*core.Collateral, error) {
	collateral := core.Collateral{UserID: userID, AssetID: assetID}
	if err := session.From(ctx, s.db).View().Where("user_id=? and asset_id=?", userID, assetID).First(&collateral).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return &collateral, nil
		}

		return nil, err
	}

	return &collateral, nil
}

func (s *collateralStore) FindByUser(ctx context.Context, userID string) ([]*core.Collateral, error) {
	var collaterals []*core.Collateral
	if err := session.From(ctx, s.db).View().Where("user_id=?", userID).Order("asset_id").Find(&collaterals).Error; err != nil {
		return nil, err
	}

	return collaterals, nil
}

func (s *collateralStore) Save(ctx context.Context, collateral *core.Collateral) error {
	tx := session.From(ctx, s.db)
	if collateral.ID == 0 {
		collateral.Version = 1
		return tx.Update().Create(collateral).Error
	}

	version := collateral.Version
	collateral.Version++
	updates := map[string]interface{}{
		"amount":  collateral.Amount,
		"version": collateral.Version,
	}

	r := tx.Update().Model(collateral).Where("version=?", version).Updates(updates)
	if r.Error != nil {
		return r.Error
	}

	if r.RowsAffected == 0 {
		return core.ErrConcurrentUpdate
	}

	return nil
}

func (s *collateralStore) SumOfAsset(ctx context.Context, assetID string) (decimal.Decimal, error) {
	var sum decimal.Decimal
	if err := session.From(ctx, s.db).View().Model(core.Collateral{}).Select("COALESCE(SUM(amount),0)").Where("asset_id=?", assetID).Row().Scan(&sum); err != nil {
		return decimal.Zero, err
	}

	return sum, nil
}
