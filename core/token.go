package core

import (
	"context"
	"time"

	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"
)

// TokenBalance pegged unit balance of a holder
type TokenBalance struct {
	ID        int64           `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id,omitempty"`
	Holder    string          `sql:"size:36;unique_index:idx_token_balances_holder" json:"holder"`
	Amount    decimal.Decimal `sql:"type:decimal(65,0)" json:"amount"`
	Version   int64           `sql:"default:0" json:"version"`
	CreatedAt time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// ITokenStore token balance store interface
type ITokenStore interface {
	// Find returns an empty record (ID == 0) for unknown holders
	Find(ctx context.Context, holder string) (*TokenBalance, error)
	Save(ctx context.Context, balance *TokenBalance) error
	TotalSupply(ctx context.Context) (decimal.Decimal, error)
}

// IPeggedToken the pegged unit ledger
//
// Every invalid call returns an error, there is no false success
type IPeggedToken interface {
	Mint(ctx context.Context, caller, to string, amount *uint256.Int) error
	Burn(ctx context.Context, caller, from string, amount *uint256.Int) error
	Transfer(ctx context.Context, from, to string, amount *uint256.Int) error
	BalanceOf(ctx context.Context, holder string) (*uint256.Int, error)
	TotalSupply(ctx context.Context) (*uint256.Int, error)
}
