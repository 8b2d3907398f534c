package memory

import (
	"context"
	"fmt"
	"sort"

	"dsc/core"
)

// Assets asset store over the state
func (s *State) Assets() core.IAssetStore {
	return &assetStore{s}
}

// Transactions audit trail over the state
func (s *State) Transactions() core.ITransactionStore {
	return &transactionStore{s}
}

// Transfers transfer store over the state
func (s *State) Transfers() core.ITransferStore {
	return &transferStore{s}
}

type assetStore struct{ s *State }

func (a *assetStore) Save(ctx context.Context, asset *core.Asset) error {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()

	now := a.s.now()
	if row, ok := a.s.data.assets[asset.ID]; ok {
		asset.CreatedAt = row.CreatedAt
	} else {
		asset.CreatedAt = now
	}

	asset.UpdatedAt = now
	a.s.data.assets[asset.ID] = *asset
	return nil
}

func (a *assetStore) Find(ctx context.Context, id string) (*core.Asset, error) {
	a.s.mu.RLock()
	defer a.s.mu.RUnlock()

	row, ok := a.s.data.assets[id]
	if !ok {
		return nil, core.ErrUnsupportedAsset
	}

	return &row, nil
}

func (a *assetStore) All(ctx context.Context) ([]*core.Asset, error) {
	a.s.mu.RLock()
	defer a.s.mu.RUnlock()

	assets := make([]*core.Asset, 0, len(a.s.data.assets))
	for _, row := range a.s.data.assets {
		row := row
		assets = append(assets, &row)
	}

	sort.Slice(assets, func(i, j int) bool {
		return assets[i].ID < assets[j].ID
	})

	return assets, nil
}

type transactionStore struct{ s *State }

func (t *transactionStore) Create(ctx context.Context, transaction *core.Transaction) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	for _, row := range t.s.data.transactions {
		if row.TraceID == transaction.TraceID {
			return fmt.Errorf("%w: transaction %s", ErrDuplicated, transaction.TraceID)
		}
	}

	transaction.ID = t.s.nextID()
	transaction.CreatedAt = t.s.now()

	row := *transaction
	row.Data = append([]byte(nil), transaction.Data...)
	t.s.data.transactions = append(t.s.data.transactions, row)
	return nil
}

func (t *transactionStore) FindByTraceID(ctx context.Context, traceID string) (*core.Transaction, error) {
	t.s.mu.RLock()
	defer t.s.mu.RUnlock()

	for _, row := range t.s.data.transactions {
		if row.TraceID == traceID {
			row.Data = append([]byte(nil), row.Data...)
			return &row, nil
		}
	}

	return &core.Transaction{}, nil
}

func (t *transactionStore) ListByUser(ctx context.Context, userID string, fromID int64, limit int) ([]*core.Transaction, error) {
	t.s.mu.RLock()
	defer t.s.mu.RUnlock()

	var transactions []*core.Transaction
	for _, row := range t.s.data.transactions {
		if row.UserID != userID || row.ID <= fromID {
			continue
		}

		row := row
		row.Data = append([]byte(nil), row.Data...)
		transactions = append(transactions, &row)
		if limit > 0 && len(transactions) == limit {
			break
		}
	}

	return transactions, nil
}

type transferStore struct{ s *State }

func (t *transferStore) Create(ctx context.Context, transfer *core.Transfer) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	for _, row := range t.s.data.transfers {
		if row.TraceID == transfer.TraceID {
			return fmt.Errorf("%w: transfer %s", ErrDuplicated, transfer.TraceID)
		}
	}

	transfer.ID = t.s.nextID()
	transfer.CreatedAt = t.s.now()
	t.s.data.transfers = append(t.s.data.transfers, *transfer)
	return nil
}

func (t *transferStore) List(ctx context.Context, fromID int64, limit int) ([]*core.Transfer, error) {
	t.s.mu.RLock()
	defer t.s.mu.RUnlock()

	var transfers []*core.Transfer
	for _, row := range t.s.data.transfers {
		if row.ID <= fromID {
			continue
		}

		row := row
		transfers = append(transfers, &row)
		if limit > 0 && len(transfers) == limit {
			break
		}
	}

	return transfers, nil
}
