package core

import (
	"context"
	"time"

	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"
)

// TransferDirection in or out of custody
type TransferDirection int

const (
	_ TransferDirection = iota
	// TransferDirectionIn collateral moved into custody
	TransferDirectionIn
	// TransferDirectionOut collateral released to a user
	TransferDirectionOut
)

func (d TransferDirection) String() string {
	switch d {
	case TransferDirectionIn:
		return "in"
	case TransferDirectionOut:
		return "out"
	default:
		return "unknown"
	}
}

// Transfer collateral custody transfer
type Transfer struct {
	ID        int64             `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id,omitempty"`
	CreatedAt time.Time         `sql:"default:CURRENT_TIMESTAMP" json:"created_at,omitempty"`
	TraceID   string            `sql:"size:36;unique_index:idx_transfers_trace_id" json:"trace_id,omitempty"`
	UserID    string            `sql:"size:36" json:"user_id,omitempty"`
	AssetID   string            `sql:"size:36" json:"asset_id,omitempty"`
	Amount    decimal.Decimal   `sql:"type:decimal(65,0)" json:"amount,omitempty"`
	Direction TransferDirection `json:"direction,omitempty"`
	Memo      string            `sql:"size:140" json:"memo,omitempty"`
}

// ITransferStore transfer store interface
type ITransferStore interface {
	Create(ctx context.Context, transfer *Transfer) error
	List(ctx context.Context, fromID int64, limit int) ([]*Transfer, error)
}

// IVault collateral custody
type IVault interface {
	TransferIn(ctx context.Context, traceID, userID, assetID string, amount *uint256.Int) error
	TransferOut(ctx context.Context, traceID, userID, assetID string, amount *uint256.Int) error
}

// ICustodian custody api executing vault transfers, calls must be idempotent on trace id
type ICustodian interface {
	Forward(ctx context.Context, transfer *Transfer) error
}
