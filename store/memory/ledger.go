package memory

import (
	"context"
	"sort"

	"dsc/core"

	"github.com/shopspring/decimal"
)

// Collaterals collateral store over the state
func (s *State) Collaterals() core.ICollateralStore {
	return &collateralStore{s}
}

// Debts debt store over the state
func (s *State) Debts() core.IDebtStore {
	return &debtStore{s}
}

// Tokens token balance store over the state
func (s *State) Tokens() core.ITokenStore {
	return &tokenStore{s}
}

type collateralStore struct{ s *State }

func collateralKey(userID, assetID string) string {
	return userID + "/" + assetID
}

func (c *collateralStore) Find(ctx context.Context, userID, assetID string) (*core.Collateral, error) {
	c.s.mu.RLock()
	defer c.s.mu.RUnlock()

	row, ok := c.s.data.collaterals[collateralKey(userID, assetID)]
	if !ok {
		return &core.Collateral{UserID: userID, AssetID: assetID}, nil
	}

	return &row, nil
}

func (c *collateralStore) FindByUser(ctx context.Context, userID string) ([]*core.Collateral, error) {
	c.s.mu.RLock()
	defer c.s.mu.RUnlock()

	var collaterals []*core.Collateral
	for _, row := range c.s.data.collaterals {
		if row.UserID == userID {
			row := row
			collaterals = append(collaterals, &row)
		}
	}

	sort.Slice(collaterals, func(i, j int) bool {
		return collaterals[i].AssetID < collaterals[j].AssetID
	})

	return collaterals, nil
}

func (c *collateralStore) Save(ctx context.Context, collateral *core.Collateral) error {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	key := collateralKey(collateral.UserID, collateral.AssetID)
	row, ok := c.s.data.collaterals[key]
	if ok != (collateral.ID > 0) || row.Version != collateral.Version {
		return core.ErrConcurrentUpdate
	}

	now := c.s.now()
	if !ok {
		collateral.ID = c.s.nextID()
		collateral.CreatedAt = now
	}

	collateral.Version++
	collateral.UpdatedAt = now
	c.s.data.collaterals[key] = *collateral
	return nil
}

func (c *collateralStore) SumOfAsset(ctx context.Context, assetID string) (decimal.Decimal, error) {
	c.s.mu.RLock()
	defer c.s.mu.RUnlock()

	sum := decimal.Zero
	for _, row := range c.s.data.collaterals {
		if row.AssetID == assetID {
			sum = sum.Add(row.Amount)
		}
	}

	return sum, nil
}

type debtStore struct{ s *State }

func (d *debtStore) Find(ctx context.Context, userID string) (*core.Debt, error) {
	d.s.mu.RLock()
	defer d.s.mu.RUnlock()

	row, ok := d.s.data.debts[userID]
	if !ok {
		return &core.Debt{UserID: userID}, nil
	}

	return &row, nil
}

func (d *debtStore) Save(ctx context.Context, debt *core.Debt) error {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()

	row, ok := d.s.data.debts[debt.UserID]
	if ok != (debt.ID > 0) || row.Version != debt.Version {
		return core.ErrConcurrentUpdate
	}

	now := d.s.now()
	if !ok {
		debt.ID = d.s.nextID()
		debt.CreatedAt = now
	}

	debt.Version++
	debt.UpdatedAt = now
	d.s.data.debts[debt.UserID] = *debt
	return nil
}

func (d *debtStore) Debtors(ctx context.Context, fromID int64, limit int) ([]*core.Debt, error) {
	d.s.mu.RLock()
	defer d.s.mu.RUnlock()

	var debts []*core.Debt
	for _, row := range d.s.data.debts {
		if row.ID > fromID && row.Amount.IsPositive() {
			row := row
			debts = append(debts, &row)
		}
	}

	sort.Slice(debts, func(i, j int) bool {
		return debts[i].ID < debts[j].ID
	})

	if limit > 0 && len(debts) > limit {
		debts = debts[:limit]
	}

	return debts, nil
}

func (d *debtStore) Total(ctx context.Context) (decimal.Decimal, error) {
	d.s.mu.RLock()
	defer d.s.mu.RUnlock()

	sum := decimal.Zero
	for _, row := range d.s.data.debts {
		sum = sum.Add(row.Amount)
	}

	return sum, nil
}

type tokenStore struct{ s *State }

func (t *tokenStore) Find(ctx context.Context, holder string) (*core.TokenBalance, error) {
	t.s.mu.RLock()
	defer t.s.mu.RUnlock()

	row, ok := t.s.data.tokens[holder]
	if !ok {
		return &core.TokenBalance{Holder: holder}, nil
	}

	return &row, nil
}

func (t *tokenStore) Save(ctx context.Context, balance *core.TokenBalance) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	row, ok := t.s.data.tokens[balance.Holder]
	if ok != (balance.ID > 0) || row.Version != balance.Version {
		return core.ErrConcurrentUpdate
	}

	now := t.s.now()
	if !ok {
		balance.ID = t.s.nextID()
		balance.CreatedAt = now
	}

	balance.Version++
	balance.UpdatedAt = now
	t.s.data.tokens[balance.Holder] = *balance
	return nil
}

func (t *tokenStore) TotalSupply(ctx context.Context) (decimal.Decimal, error) {
	t.s.mu.RLock()
	defer t.s.mu.RUnlock()

	sum := decimal.Zero
	for _, row := range t.s.data.tokens {
		sum = sum.Add(row.Amount)
	}

	return sum, nil
}
