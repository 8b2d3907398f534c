package engine

import (
	"context"

	"dsc/core"
	"dsc/pkg/fixedpoint"
	"dsc/pkg/risk"

	"github.com/holiman/uint256"
	"github.com/sirupsen/logrus"
)

// Liquidate repay debtToCover of an unsafe position and seize the matching collateral plus bonus
func (s *engineService) Liquidate(ctx context.Context, liquidator, userID, assetID string, debtToCover *uint256.Int) (*core.Liquidation, error) {
	if err := requireAccount(liquidator); err != nil {
		return nil, err
	}

	if err := s.validateCollateral(userID, assetID, debtToCover); err != nil {
		return nil, err
	}

	var result *core.Liquidation
	fields := logrus.Fields{"liquidator": liquidator, "user": userID, "asset": assetID, "debt_to_cover": debtToCover.Dec()}
	err := s.execute(ctx, "liquidate", fields, func(ctx context.Context, traceID string) error {
		l, err := s.liquidate(ctx, traceID, liquidator, userID, assetID, debtToCover)
		if err != nil {
			return err
		}

		result = l
		return nil
	})

	return result, err
}

func (s *engineService) liquidate(ctx context.Context, traceID, liquidator, userID, assetID string, debtToCover *uint256.Int) (*core.Liquidation, error) {
	asset, err := s.requireAsset(assetID)
	if err != nil {
		return nil, err
	}

	startHF, err := s.healthFactor(ctx, userID)
	if err != nil {
		return nil, err
	}

	if risk.IsHealthy(startHF) {
		return nil, core.ErrPositionIsHealthy
	}

	d, debt, err := s.debtOf(ctx, userID)
	if err != nil {
		return nil, err
	}

	if debt.Lt(debtToCover) {
		return nil, core.ErrDebtToCoverExceedsDebt
	}

	price, err := s.oracle.CurrentPrice(ctx, assetID)
	if err != nil {
		return nil, err
	}

	base, err := risk.TokenAmountFromUsd(debtToCover, price, asset.Decimals)
	if err != nil {
		return nil, err
	}

	bonus, seize, err := risk.LiquidationSeize(base)
	if err != nil {
		return nil, err
	}

	c, balance, err := s.collateralOf(ctx, userID, assetID)
	if err != nil {
		return nil, err
	}

	if balance.Lt(seize) {
		return nil, core.ErrInsufficientCollateralForBonus
	}

	// effects
	if balance, err = fixedpoint.Sub(balance, seize); err != nil {
		return nil, err
	}

	c.Amount = fixedpoint.ToDecimal(balance)
	if err := s.collaterals.Save(ctx, c); err != nil {
		return nil, err
	}

	if debt, err = fixedpoint.Sub(debt, debtToCover); err != nil {
		return nil, err
	}

	d.Amount = fixedpoint.ToDecimal(debt)
	if err := s.debts.Save(ctx, d); err != nil {
		return nil, err
	}

	endHF, err := s.healthFactor(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !endHF.Gt(startHF) {
		return nil, core.ErrHealthFactorNotImproved
	}

	liquidatorHF, err := s.healthFactor(ctx, liquidator)
	if err != nil {
		return nil, err
	}

	if !risk.IsHealthy(liquidatorHF) {
		return nil, core.ErrBreaksHealthFactor
	}

	extra := core.NewTransactionExtra()
	extra.Put(core.TransactionKeyLiquidator, liquidator)
	extra.Put(core.TransactionKeyDebtCovered, fixedpoint.ToDecimal(debtToCover))
	extra.Put(core.TransactionKeyBonus, fixedpoint.ToDecimal(bonus))
	extra.Put(core.TransactionKeyStartHealthFactor, fixedpoint.ToDecimal(startHF))
	extra.Put(core.TransactionKeyHealthFactor, fixedpoint.ToDecimal(endHF))
	if err := s.record(ctx, core.ActionTypeLiquidate, traceID, userID, assetID, seize, extra); err != nil {
		return nil, err
	}

	// interactions
	if err := s.token.Burn(ctx, s.config.EngineID, liquidator, debtToCover); err != nil {
		return nil, err
	}

	if err := s.vault.TransferOut(ctx, traceID, liquidator, assetID, seize); err != nil {
		return nil, err
	}

	return &core.Liquidation{
		TraceID:           traceID,
		Liquidator:        liquidator,
		UserID:            userID,
		AssetID:           assetID,
		DebtCovered:       debtToCover.Clone(),
		BaseCollateral:    base,
		Bonus:             bonus,
		Seized:            seize,
		StartHealthFactor: startHF,
		EndHealthFactor:   endHF,
	}, nil
}
