package core

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jmoiron/sqlx/types"
	"github.com/shopspring/decimal"
)

const (
	// TransactionKeyHealthFactor health factor after the operation
	TransactionKeyHealthFactor = "health_factor"
	// TransactionKeyLiquidator liquidator
	TransactionKeyLiquidator = "liquidator"
	// TransactionKeyDebtCovered debt covered by the liquidator
	TransactionKeyDebtCovered = "debt_covered"
	// TransactionKeyBonus bonus collateral
	TransactionKeyBonus = "bonus"
	// TransactionKeyStartHealthFactor health factor before liquidation
	TransactionKeyStartHealthFactor = "start_health_factor"
)

// TransactionExtraData extra data
type TransactionExtraData map[string]interface{}

// NewTransactionExtra new transaction extra instance
func NewTransactionExtra() TransactionExtraData {
	return make(TransactionExtraData)
}

// Put put data
func (t TransactionExtraData) Put(key string, value interface{}) {
	t[key] = value
}

// Format format as []byte by default
func (t TransactionExtraData) Format() []byte {
	bs, e := json.Marshal(t)
	if e != nil {
		return []byte("{}")
	}

	return bs
}

// Transaction audit record of a committed engine operation
type Transaction struct {
	ID        int64           `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id,omitempty"`
	Action    ActionType      `json:"action,omitempty"`
	TraceID   string          `sql:"size:36;unique_index:idx_transactions_trace_id" json:"trace_id,omitempty"`
	UserID    string          `sql:"size:36;index:idx_transactions_user_id" json:"user_id,omitempty"`
	AssetID   string          `sql:"size:36" json:"asset_id,omitempty"`
	Amount    decimal.Decimal `sql:"type:decimal(65,0)" json:"amount,omitempty"`
	Data      types.JSONText  `sql:"type:TEXT" json:"data,omitempty"`
	CreatedAt time.Time       `sql:"default:CURRENT_TIMESTAMP;index:idx_transactions_created_at" json:"created_at,omitempty"`
}

// SetExtraData set extra data
func (t *Transaction) SetExtraData(extra TransactionExtraData) {
	data := []byte("{}")
	if extra != nil {
		data = extra.Format()
	}

	t.Data = data
}

// ExtraData decode extra data
func (t *Transaction) ExtraData() TransactionExtraData {
	extra := NewTransactionExtra()
	if len(t.Data) > 0 {
		_ = json.Unmarshal(t.Data, &extra)
	}

	return extra
}

// ITransactionStore transaction store interface
type ITransactionStore interface {
	Create(ctx context.Context, transaction *Transaction) error
	FindByTraceID(ctx context.Context, traceID string) (*Transaction, error)
	ListByUser(ctx context.Context, userID string, fromID int64, limit int) ([]*Transaction, error)
}
