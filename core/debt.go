package core

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Debt outstanding minted pegged units of one user
type Debt struct {
	ID        int64           `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id,omitempty"`
	UserID    string          `sql:"size:36;unique_index:idx_debts_user_id" json:"user_id"`
	Amount    decimal.Decimal `sql:"type:decimal(65,0)" json:"amount"`
	Version   int64           `sql:"default:0" json:"version"`
	CreatedAt time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// IDebtStore debt store interface
type IDebtStore interface {
	// Find returns an empty record (ID == 0) for users that never minted
	Find(ctx context.Context, userID string) (*Debt, error)
	Save(ctx context.Context, debt *Debt) error
	// Debtors list debts with a positive amount, ordered by id
	Debtors(ctx context.Context, fromID int64, limit int) ([]*Debt, error)
	Total(ctx context.Context) (decimal.Decimal, error)
}
