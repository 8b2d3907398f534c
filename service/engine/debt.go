package engine

import (
	"context"

	"dsc/core"
	"dsc/pkg/fixedpoint"
	"dsc/pkg/risk"

	"github.com/fox-one/pkg/uuid"
	"github.com/holiman/uint256"
	"github.com/sirupsen/logrus"
)

func (s *engineService) MintDSC(ctx context.Context, userID string, amount *uint256.Int) error {
	if err := requireAccount(userID); err != nil {
		return err
	}

	if err := requireAmount(amount); err != nil {
		return err
	}

	fields := logrus.Fields{"user": userID, "amount": amount.Dec()}
	return s.execute(ctx, "mint", fields, func(ctx context.Context, traceID string) error {
		return s.mint(ctx, traceID, userID, amount)
	})
}

func (s *engineService) BurnDSC(ctx context.Context, userID string, amount *uint256.Int) error {
	if err := requireAccount(userID); err != nil {
		return err
	}

	if err := requireAmount(amount); err != nil {
		return err
	}

	fields := logrus.Fields{"user": userID, "amount": amount.Dec()}
	return s.execute(ctx, "burn", fields, func(ctx context.Context, traceID string) error {
		return s.burn(ctx, traceID, userID, amount)
	})
}

func (s *engineService) DepositCollateralAndMintDSC(ctx context.Context, userID, assetID string, collateral, mint *uint256.Int) error {
	if err := s.validateCollateral(userID, assetID, collateral); err != nil {
		return err
	}

	if err := requireAmount(mint); err != nil {
		return err
	}

	fields := logrus.Fields{"user": userID, "asset": assetID, "collateral": collateral.Dec(), "mint": mint.Dec()}
	return s.execute(ctx, "deposit_and_mint", fields, func(ctx context.Context, traceID string) error {
		if err := s.deposit(ctx, uuid.Modify(traceID, "deposit"), userID, assetID, collateral); err != nil {
			return err
		}

		return s.mint(ctx, uuid.Modify(traceID, "mint"), userID, mint)
	})
}

func (s *engineService) RedeemCollateralForDSC(ctx context.Context, userID, assetID string, collateral, burn *uint256.Int) error {
	if err := s.validateCollateral(userID, assetID, collateral); err != nil {
		return err
	}

	if err := requireAmount(burn); err != nil {
		return err
	}

	fields := logrus.Fields{"user": userID, "asset": assetID, "collateral": collateral.Dec(), "burn": burn.Dec()}
	return s.execute(ctx, "redeem_for_dsc", fields, func(ctx context.Context, traceID string) error {
		if err := s.burn(ctx, uuid.Modify(traceID, "burn"), userID, burn); err != nil {
			return err
		}

		return s.withdraw(ctx, uuid.Modify(traceID, "withdraw"), userID, assetID, collateral)
	})
}

// mint checks the prospective health factor before anything is written
func (s *engineService) mint(ctx context.Context, traceID, userID string, amount *uint256.Int) error {
	d, debt, err := s.debtOf(ctx, userID)
	if err != nil {
		return err
	}

	if debt, err = fixedpoint.Add(debt, amount); err != nil {
		return err
	}

	if err := fixedpoint.Storable(debt); err != nil {
		return err
	}

	value, err := s.accountCollateralValue(ctx, userID)
	if err != nil {
		return err
	}

	hf, err := risk.HealthFactor(debt, value)
	if err != nil {
		return err
	}

	if !risk.IsHealthy(hf) {
		return core.ErrMintBreaksHealthFactor
	}

	d.Amount = fixedpoint.ToDecimal(debt)
	if err := s.debts.Save(ctx, d); err != nil {
		return err
	}

	extra := core.NewTransactionExtra()
	extra.Put(core.TransactionKeyHealthFactor, fixedpoint.ToDecimal(hf))
	if err := s.record(ctx, core.ActionTypeMint, traceID, userID, "", amount, extra); err != nil {
		return err
	}

	return s.token.Mint(ctx, s.config.EngineID, userID, amount)
}

// burn repays debt with the user's own pegged units, burning can only improve health
func (s *engineService) burn(ctx context.Context, traceID, userID string, amount *uint256.Int) error {
	d, debt, err := s.debtOf(ctx, userID)
	if err != nil {
		return err
	}

	if debt.Lt(amount) {
		return core.ErrBurnExceedsDebt
	}

	if debt, err = fixedpoint.Sub(debt, amount); err != nil {
		return err
	}

	d.Amount = fixedpoint.ToDecimal(debt)
	if err := s.debts.Save(ctx, d); err != nil {
		return err
	}

	if err := s.record(ctx, core.ActionTypeBurn, traceID, userID, "", amount, nil); err != nil {
		return err
	}

	return s.token.Burn(ctx, s.config.EngineID, userID, amount)
}
