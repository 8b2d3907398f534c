package token

import (
	"context"

	"dsc/core"
	"dsc/store/session"

	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
	"github.com/shopspring/decimal"
)

type tokenStore struct {
	db *db.DB
}

// New new token balance store
func New(db *db.DB) core.ITokenStore {
	return &tokenStore{
		db: db,
	}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.TokenBalance{})
		if err := tx.AutoMigrate(core.TokenBalance{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *tokenStore) Find(ctx context.Context, holder string) (*core.TokenBalance, error) {
	balance := core.TokenBalance{Holder: holder}
	if err := session.From(ctx, s.db).View().Where("holder=?", holder).First(&balance).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return &balance, nil
		}

		return nil, err
	}

	return &balance, nil
}

func (s *tokenStore) Save(ctx context.Context, balance *core.TokenBalance) error {
	tx := session.From(ctx, s.db)
	if balance.ID == 0 {
		balance.Version = 1
		return tx.Update().Create(balance).Error
	}

	version := balance.Version
	balance.Version++
	r := tx.Update().Model(balance).Where("version=?", version).Updates(map[string]interface{}{
		"amount":  balance.Amount,
		"version": balance.Version,
	})
	if r.Error != nil {
		return r.Error
	}

	if r.RowsAffected == 0 {
		return core.ErrConcurrentUpdate
	}

	return nil
}

func (s *tokenStore) TotalSupply(ctx context.Context) (decimal.Decimal, error) {
	var sum decimal.Decimal
	if err := session.From(ctx, s.db).View().Model(core.TokenBalance{}).Select("COALESCE(SUM(amount),0)").Row().Scan(&sum); err != nil {
		return decimal.Zero, err
	}

	return sum, nil
}
