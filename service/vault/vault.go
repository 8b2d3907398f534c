package vault

import (
	"context"

	"dsc/core"
	"dsc/pkg/fixedpoint"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/uuid"
	"github.com/holiman/uint256"
)

type vaultService struct {
	transfers core.ITransferStore
}

// New collateral custody, every movement is persisted as a transfer for the cashier
func New(transfers core.ITransferStore) core.IVault {
	return &vaultService{transfers: transfers}
}

func (s *vaultService) TransferIn(ctx context.Context, traceID, userID, assetID string, amount *uint256.Int) error {
	return s.create(ctx, core.TransferDirectionIn, traceID, userID, assetID, amount)
}

func (s *vaultService) TransferOut(ctx context.Context, traceID, userID, assetID string, amount *uint256.Int) error {
	return s.create(ctx, core.TransferDirectionOut, traceID, userID, assetID, amount)
}

func (s *vaultService) create(ctx context.Context, direction core.TransferDirection, traceID, userID, assetID string, amount *uint256.Int) error {
	if amount.IsZero() {
		return core.ErrInvalidAmount
	}

	transfer := &core.Transfer{
		TraceID:   uuid.Modify(traceID, "vault:"+direction.String()),
		UserID:    userID,
		AssetID:   assetID,
		Amount:    fixedpoint.ToDecimal(amount),
		Direction: direction,
		Memo:      traceID,
	}

	if err := s.transfers.Create(ctx, transfer); err != nil {
		logger.FromContext(ctx).WithError(err).Errorln("transfers.Create", transfer.TraceID)
		return err
	}

	return nil
}
