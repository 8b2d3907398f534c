package transaction

import (
	"context"

	"dsc/core"
	"dsc/store/session"

	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
)

type transactionStore struct {
	db *db.DB
}

// New new transaction store
func New(db *db.DB) core.ITransactionStore {
	return &transactionStore{
		db: db,
	}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Transaction{})
		if err := tx.AutoMigrate(core.Transaction{}).Error; err != nil {
			return err
		}

		return nil
	})
}

// Create insert only, a replayed trace id violates the unique index
func (s *transactionStore) Create(ctx context.Context, transaction *core.Transaction) error {
	return session.From(ctx, s.db).Update().Create(transaction).Error
}

func (s *transactionStore) FindByTraceID(ctx context.Context, traceID string) (*core.Transaction, error) {
	var transaction core.Transaction
	if err := session.From(ctx, s.db).View().Where("trace_id=?", traceID).First(&transaction).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return &transaction, nil
		}

		return nil, err
	}

	return &transaction, nil
}

func (s *transactionStore) ListByUser(ctx context.Context, userID string, fromID int64, limit int) ([]*core.Transaction, error) {
	if limit <= 0 {
		limit = 500
	}

	var transactions []*core.Transaction
	if err := session.From(ctx, s.db).View().Where("user_id=? and id > ?", userID, fromID).Order("id ASC").Limit(limit).Find(&transactions).Error; err != nil {
		return nil, err
	}

	return transactions, nil
}
