package core

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Collateral deposited collateral of one user in one asset, amount in the asset's smallest unit
type Collateral struct {
	ID        int64           `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id,omitempty"`
	UserID    string          `sql:"size:36;unique_index:idx_collaterals_user_asset" json:"user_id"`
	AssetID   string          `sql:"size:36;unique_index:idx_collaterals_user_asset;index:idx_collaterals_asset_id" json:"asset_id"`
	Amount    decimal.Decimal `sql:"type:decimal(65,0)" json:"amount"`
	Version   int64           `sql:"default:0" json:"version"`
	CreatedAt time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// ICollateralStore collateral store interface
//
// Find returns an empty record (ID == 0) when nothing was deposited yet
type ICollateralStore interface {
	Find(ctx context.Context, userID, assetID string) (*Collateral, error)
	FindByUser(ctx context.Context, userID string) ([]*Collateral, error)
	Save(ctx context.Context, collateral *Collateral) error
	SumOfAsset(ctx context.Context, assetID string) (decimal.Decimal, error)
}
