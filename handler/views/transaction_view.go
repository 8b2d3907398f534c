package views

import (
	"encoding/json"
	"time"

	"dsc/core"
)

// Transaction audit record view
type Transaction struct {
	ID        int64           `json:"id"`
	Action    string          `json:"action"`
	TraceID   string          `json:"trace_id"`
	UserID    string          `json:"user_id"`
	AssetID   string          `json:"asset_id,omitempty"`
	Amount    string          `json:"amount"`
	Data      json.RawMessage `json:"data,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

func TransactionView(t *core.Transaction) *Transaction {
	view := &Transaction{
		ID:        t.ID,
		Action:    t.Action.String(),
		TraceID:   t.TraceID,
		UserID:    t.UserID,
		AssetID:   t.AssetID,
		Amount:    t.Amount.String(),
		CreatedAt: t.CreatedAt,
	}

	if len(t.Data) > 0 {
		view.Data = json.RawMessage(t.Data)
	}

	return view
}

// TransactionsView render transactions
func TransactionsView(transactions []*core.Transaction) []*Transaction {
	views := make([]*Transaction, 0, len(transactions))
	for _, t := range transactions {
		views = append(views, TransactionView(t))
	}

	return views
}
