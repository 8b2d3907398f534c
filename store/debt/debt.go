package debt

import (
	"context"

	"dsc/core"
	"dsc/store/session"

	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
	"github.com/shopspring/decimal"
)

type debtStore struct {
	db *db.DB
}

// New new debt store
func New(db *db.DB) core.IDebtStore {
	return &debtStore{
		db: db,
	}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Debt{})
		if err := tx.AutoMigrate(core.Debt{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *debtStore) Find(ctx context.Context, userID string) (*core.Debt, error) {
	debt := core.Debt{UserID: userID}
	if err := session.From(ctx, s.db).View().Where("user_id=?", userID).First(&debt).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return &debt, nil
		}

		return nil, err
	}

	return &debt, nil
}

func (s *debtStore) Save(ctx context.Context, debt *core.Debt) error {
	tx := session.From(ctx, s.db)
	if debt.ID == 0 {
		debt.Version = 1
		return tx.Update().Create(debt).Error
	}

	version := debt.Version
	debt.Version++
	updates := map[string]interface{}{
		"amount":  debt.Amount,
		"version": debt.Version,
	}

	r := tx.Update().Model(debt).Where("version=?", version).Updates(updates)
	if r.Error != nil {
		return r.Error
	}

	if r.RowsAffected == 0 {
		return core.ErrConcurrentUpdate
	}

	return nil
}

func (s *debtStore) Debtors(ctx context.Context, fromID int64, limit int) ([]*core.Debt, error) {
	if limit <= 0 {
		limit = 500
	}

	var debts []*core.Debt
	if err := session.From(ctx, s.db).View().Where("id > ? and amount > 0", fromID).Order("id ASC").Limit(limit).Find(&debts).Error; err != nil {
		return nil, err
	}

	return debts, nil
}

func (s *debtStore) Total(ctx context.Context) (decimal.Decimal, error) {
	var sum decimal.Decimal
	if err := session.From(ctx, s.db).View().Model(core.Debt{}).Select("COALESCE(SUM(amount),0)").Row().Scan(&sum); err != nil {
		return decimal.Zero, err
	}

	return sum, nil
}
