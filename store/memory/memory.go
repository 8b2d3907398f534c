package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"dsc/core"
)

// ErrDuplicated unique key conflict
var ErrDuplicated = errors.New("memory: duplicated key")

type txKey struct{}

// State mapping-backed engine state, every store shares it
//
// Tx takes a snapshot of all maps and puts it back when fn fails. Only one
// transaction runs at a time; writes made outside Tx while a transaction is
// open are lost if it rolls back.
type State struct {
	mu   sync.RWMutex
	txMu sync.Mutex
	seq  int64
	data *tables
	now  func() time.Time
}

type tables struct {
	assets       map[string]core.Asset
	collaterals  map[string]core.Collateral
	debts        map[string]core.Debt
	tokens       map[string]core.TokenBalance
	transactions []core.Transaction
	transfers    []core.Transfer
}

// New new empty state
func New() *State {
	return &State{
		data: &tables{
			assets:      map[string]core.Asset{},
			collaterals: map[string]core.Collateral{},
			debts:       map[string]core.Debt{},
			tokens:      map[string]core.TokenBalance{},
		},
		now: time.Now,
	}
}

// Tx implement core.Transactor, nested calls join the outer transaction
func (s *State) Tx(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if owner, ok := ctx.Value(txKey{}).(*State); ok && owner == s {
		return fn(ctx)
	}

	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.RLock()
	snapshot := s.data.clone()
	seq := s.seq
	s.mu.RUnlock()

	committed := false
	defer func() {
		if committed {
			return
		}

		s.mu.Lock()
		s.data, s.seq = snapshot, seq
		s.mu.Unlock()
	}()

	if err = fn(context.WithValue(ctx, txKey{}, s)); err != nil {
		return err
	}

	committed = true
	return nil
}

func (s *State) nextID() int64 {
	s.seq++
	return s.seq
}

func (t *tables) clone() *tables {
	c := &tables{
		assets:       make(map[string]core.Asset, len(t.assets)),
		collaterals:  make(map[string]core.Collateral, len(t.collaterals)),
		debts:        make(map[string]core.Debt, len(t.debts)),
		tokens:       make(map[string]core.TokenBalance, len(t.tokens)),
		transactions: make([]core.Transaction, len(t.transactions)),
		transfers:    make([]core.Transfer, len(t.transfers)),
	}

	for k, v := range t.assets {
		c.assets[k] = v
	}

	for k, v := range t.collaterals {
		c.collaterals[k] = v
	}

	for k, v := range t.debts {
		c.debts[k] = v
	}

	for k, v := range t.tokens {
		c.tokens[k] = v
	}

	copy(c.transactions, t.transactions)
	copy(c.transfers, t.transfers)
	return c
}
