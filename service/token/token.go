package token

import (
	"context"
	"fmt"

	"dsc/core"
	"dsc/pkg/fixedpoint"

	"github.com/fox-one/pkg/logger"
	"github.com/holiman/uint256"
)

type tokenService struct {
	tokens  core.ITokenStore
	tx      core.Transactor
	minters map[string]bool
	burners map[string]bool
}

// New pegged unit ledger, only minters may mint, burners may burn on behalf of any holder
func New(tokens core.ITokenStore, tx core.Transactor, minters, burners []string) core.IPeggedToken {
	s := &tokenService{
		tokens:  tokens,
		tx:      tx,
		minters: map[string]bool{},
		burners: map[string]bool{},
	}

	for _, m := range minters {
		s.minters[m] = true
	}

	for _, b := range burners {
		s.burners[b] = true
	}

	return s
}

func (s *tokenService) Mint(ctx context.Context, caller, to string, amount *uint256.Int) error {
	if !s.minters[caller] {
		return fmt.Errorf("token: %s mint: %w", caller, core.ErrOperationForbidden)
	}

	if to == "" {
		return core.ErrInvalidAccount
	}

	if amount.IsZero() {
		return core.ErrInvalidAmount
	}

	return s.tx.Tx(ctx, func(ctx context.Context) error {
		return s.add(ctx, to, amount)
	})
}

func (s *tokenService) Burn(ctx context.Context, caller, from string, amount *uint256.Int) error {
	if caller != from && !s.burners[caller] {
		return fmt.Errorf("token: %s burn from %s: %w", caller, from, core.ErrOperationForbidden)
	}

	if amount.IsZero() {
		return core.ErrInvalidAmount
	}

	return s.tx.Tx(ctx, func(ctx context.Context) error {
		return s.sub(ctx, from, amount)
	})
}

func (s *tokenService) Transfer(ctx context.Context, from, to string, amount *uint256.Int) error {
	if to == "" {
		return core.ErrInvalidAccount
	}

	if amount.IsZero() {
		return core.ErrInvalidAmount
	}

	return s.tx.Tx(ctx, func(ctx context.Context) error {
		if err := s.sub(ctx, from, amount); err != nil {
			return err
		}

		return s.add(ctx, to, amount)
	})
}

func (s *tokenService) BalanceOf(ctx context.Context, holder string) (*uint256.Int, error) {
	b, err := s.tokens.Find(ctx, holder)
	if err != nil {
		return nil, err
	}

	return fixedpoint.FromDecimal(b.Amount)
}

func (s *tokenService) TotalSupply(ctx context.Context) (*uint256.Int, error) {
	total, err := s.tokens.TotalSupply(ctx)
	if err != nil {
		return nil, err
	}

	return fixedpoint.FromDecimal(total)
}

func (s *tokenService) add(ctx context.Context, holder string, amount *uint256.Int) error {
	b, err := s.tokens.Find(ctx, holder)
	if err != nil {
		return err
	}

	balance, err := fixedpoint.FromDecimal(b.Amount)
	if err != nil {
		return err
	}

	if balance, err = fixedpoint.Add(balance, amount); err != nil {
		return err
	}

	if err := fixedpoint.Storable(balance); err != nil {
		return err
	}

	b.Holder = holder
	b.Amount = fixedpoint.ToDecimal(balance)
	return s.tokens.Save(ctx, b)
}

func (s *tokenService) sub(ctx context.Context, holder string, amount *uint256.Int) error {
	b, err := s.tokens.Find(ctx, holder)
	if err != nil {
		return err
	}

	balance, err := fixedpoint.FromDecimal(b.Amount)
	if err != nil {
		return err
	}

	if balance.Lt(amount) {
		logger.FromContext(ctx).WithField("holder", holder).Debugln("insufficient balance", balance.Dec(), amount.Dec())
		return core.ErrInsufficientBalance
	}

	b.Amount = fixedpoint.ToDecimal(new(uint256.Int).Sub(balance, amount))
	return s.tokens.Save(ctx, b)
}
