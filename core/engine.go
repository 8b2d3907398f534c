package core

import (
	"context"

	"github.com/holiman/uint256"
)

// AccountInformation position summary, values in usd with 18 decimals
type AccountInformation struct {
	UserID          string
	TotalDebt       *uint256.Int
	CollateralValue *uint256.Int
	HealthFactor    *uint256.Int
	Collaterals     []*Collateral
}

// Liquidation result of a successful liquidation
type Liquidation struct {
	TraceID           string
	Liquidator        string
	UserID            string
	AssetID           string
	DebtCovered       *uint256.Int
	BaseCollateral    *uint256.Int
	Bonus             *uint256.Int
	Seized            *uint256.Int
	StartHealthFactor *uint256.Int
	EndHealthFactor   *uint256.Int
}

// IEngineService collateral, debt and liquidation engine
//
// amounts of collateral are in the asset's smallest unit, pegged units and usd
// values carry 18 decimals
type IEngineService interface {
	DepositCollateral(ctx context.Context, userID, assetID string, amount *uint256.Int) error
	WithdrawCollateral(ctx context.Context, userID, assetID string, amount *uint256.Int) error
	MintDSC(ctx context.Context, userID string, amount *uint256.Int) error
	BurnDSC(ctx context.Context, userID string, amount *uint256.Int) error
	DepositCollateralAndMintDSC(ctx context.Context, userID, assetID string, collateral, mint *uint256.Int) error
	RedeemCollateralForDSC(ctx context.Context, userID, assetID string, collateral, burn *uint256.Int) error
	Liquidate(ctx context.Context, liquidator, userID, assetID string, debtToCover *uint256.Int) (*Liquidation, error)

	HealthFactor(ctx context.Context, userID string) (*uint256.Int, error)
	AccountCollateralValue(ctx context.Context, userID string) (*uint256.Int, error)
	AccountInformation(ctx context.Context, userID string) (*AccountInformation, error)
	CollateralBalance(ctx context.Context, userID, assetID string) (*uint256.Int, error)
	UsdValue(ctx context.Context, assetID string, amount *uint256.Int) (*uint256.Int, error)
	TokenAmountFromUsd(ctx context.Context, assetID string, usd *uint256.Int) (*uint256.Int, error)
	CalculateHealthFactor(debt, collateralValue *uint256.Int) (*uint256.Int, error)
	Assets() []*Asset
}
