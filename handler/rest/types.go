package rest

import (
	"context"

	"github.com/holiman/uint256"
)

type (
	collateralOperation func(ctx context.Context, userID, assetID string, amount *uint256.Int) error
	debtOperation       func(ctx context.Context, userID string, amount *uint256.Int) error
	combinedOperation   func(ctx context.Context, userID, assetID string, collateral, dsc *uint256.Int) error
)
