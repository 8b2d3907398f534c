package engine

import (
	"context"

	"dsc/core"
	"dsc/pkg/fixedpoint"
	"dsc/pkg/risk"

	"github.com/holiman/uint256"
	"github.com/sirupsen/logrus"
)

func (s *engineService) DepositCollateral(ctx context.Context, userID, assetID string, amount *uint256.Int) error {
	if err := s.validateCollateral(userID, assetID, amount); err != nil {
		return err
	}

	fields := logrus.Fields{"user": userID, "asset": assetID, "amount": amount.Dec()}
	return s.execute(ctx, "deposit", fields, func(ctx context.Context, traceID string) error {
		return s.deposit(ctx, traceID, userID, assetID, amount)
	})
}

func (s *engineService) WithdrawCollateral(ctx context.Context, userID, assetID string, amount *uint256.Int) error {
	if err := s.validateCollateral(userID, assetID, amount); err != nil {
		return err
	}

	fields := logrus.Fields{"user": userID, "asset": assetID, "amount": amount.Dec()}
	return s.execute(ctx, "withdraw", fields, func(ctx context.Context, traceID string) error {
		return s.withdraw(ctx, traceID, userID, assetID, amount)
	})
}

func (s *engineService) validateCollateral(userID, assetID string, amount *uint256.Int) error {
	if err := requireAccount(userID); err != nil {
		return err
	}

	if err := requireAmount(amount); err != nil {
		return err
	}

	_, err := s.requireAsset(assetID)
	return err
}

func (s *engineService) deposit(ctx context.Context, traceID, userID, assetID string, amount *uint256.Int) error {
	c, balance, err := s.collateralOf(ctx, userID, assetID)
	if err != nil {
		return err
	}

	if balance, err = fixedpoint.Add(balance, amount); err != nil {
		return err
	}

	if err := fixedpoint.Storable(balance); err != nil {
		return err
	}

	c.Amount = fixedpoint.ToDecimal(balance)
	if err := s.collaterals.Save(ctx, c); err != nil {
		return err
	}

	if err := s.record(ctx, core.ActionTypeDeposit, traceID, userID, assetID, amount, nil); err != nil {
		return err
	}

	return s.vault.TransferIn(ctx, traceID, userID, assetID, amount)
}

// withdraw takes the collateral out first, then requires the remaining position to be safe
func (s *engineService) withdraw(ctx context.Context, traceID, userID, assetID string, amount *uint256.Int) error {
	c, balance, err := s.collateralOf(ctx, userID, assetID)
	if err != nil {
		return err
	}

	if balance.Lt(amount) {
		return core.ErrInsufficientCollateral
	}

	if balance, err = fixedpoint.Sub(balance, amount); err != nil {
		return err
	}

	c.Amount = fixedpoint.ToDecimal(balance)
	if err := s.collaterals.Save(ctx, c); err != nil {
		return err
	}

	hf, err := s.healthFactor(ctx, userID)
	if err != nil {
		return err
	}

	if !risk.IsHealthy(hf) {
		return core.ErrWithdrawalBreaksHealthFactor
	}

	extra := core.NewTransactionExtra()
	extra.Put(core.TransactionKeyHealthFactor, fixedpoint.ToDecimal(hf))
	if err := s.record(ctx, core.ActionTypeWithdraw, traceID, userID, assetID, amount, extra); err != nil {
		return err
	}

	return s.vault.TransferOut(ctx, traceID, userID, assetID, amount)
}
