package engine

import (
	"context"

	"dsc/core"
	"dsc/pkg/fixedpoint"
	"dsc/pkg/risk"

	"github.com/holiman/uint256"
)

// accountCollateralValue sums the usd value of every non-empty balance, one fresh price per asset
func (s *engineService) accountCollateralValue(ctx context.Context, userID string) (*uint256.Int, error) {
	collaterals, err := s.collaterals.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	total := fixedpoint.Zero()
	for _, c := range collaterals {
		asset, ok := s.assets.Find(c.AssetID)
		if !ok {
			continue
		}

		amount, err := fixedpoint.FromDecimal(c.Amount)
		if err != nil {
			return nil, err
		}

		if amount.IsZero() {
			continue
		}

		value, err := s.usdValue(ctx, asset, amount)
		if err != nil {
			return nil, err
		}

		if total, err = fixedpoint.Add(total, value); err != nil {
			return nil, err
		}
	}

	return total, nil
}

func (s *engineService) healthFactor(ctx context.Context, userID string) (*uint256.Int, error) {
	_, debt, err := s.debtOf(ctx, userID)
	if err != nil {
		return nil, err
	}

	value, err := s.accountCollateralValue(ctx, userID)
	if err != nil {
		return nil, err
	}

	return risk.HealthFactor(debt, value)
}

func (s *engineService) usdValue(ctx context.Context, asset *core.Asset, amount *uint256.Int) (*uint256.Int, error) {
	price, err := s.oracle.CurrentPrice(ctx, asset.ID)
	if err != nil {
		return nil, err
	}

	return risk.UsdValue(amount, price, asset.Decimals)
}

func (s *engineService) HealthFactor(ctx context.Context, userID string) (*uint256.Int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.healthFactor(ctx, userID)
}

func (s *engineService) AccountCollateralValue(ctx context.Context, userID string) (*uint256.Int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.accountCollateralValue(ctx, userID)
}

func (s *engineService) AccountInformation(ctx context.Context, userID string) (*core.AccountInformation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, debt, err := s.debtOf(ctx, userID)
	if err != nil {
		return nil, err
	}

	collaterals, err := s.collaterals.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	value, err := s.accountCollateralValue(ctx, userID)
	if err != nil {
		return nil, err
	}

	hf, err := risk.HealthFactor(debt, value)
	if err != nil {
		return nil, err
	}

	return &core.AccountInformation{
		UserID:          userID,
		TotalDebt:       debt,
		CollateralValue: value,
		HealthFactor:    hf,
		Collaterals:     collaterals,
	}, nil
}

func (s *engineService) CollateralBalance(ctx context.Context, userID, assetID string) (*uint256.Int, error) {
	if _, err := s.requireAsset(assetID); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	_, amount, err := s.collateralOf(ctx, userID, assetID)
	return amount, err
}

func (s *engineService) UsdValue(ctx context.Context, assetID string, amount *uint256.Int) (*uint256.Int, error) {
	if amount == nil {
		return nil, core.ErrInvalidAmount
	}

	asset, err := s.requireAsset(assetID)
	if err != nil {
		return nil, err
	}

	return s.usdValue(ctx, asset, amount)
}

func (s *engineService) TokenAmountFromUsd(ctx context.Context, assetID string, usd *uint256.Int) (*uint256.Int, error) {
	if usd == nil {
		return nil, core.ErrInvalidAmount
	}

	asset, err := s.requireAsset(assetID)
	if err != nil {
		return nil, err
	}

	price, err := s.oracle.CurrentPrice(ctx, assetID)
	if err != nil {
		return nil, err
	}

	return risk.TokenAmountFromUsd(usd, price, asset.Decimals)
}

func (s *engineService) CalculateHealthFactor(debt, collateralValue *uint256.Int) (*uint256.Int, error) {
	return risk.HealthFactor(debt, collateralValue)
}
