package transfer

import (
	"context"

	"dsc/core"
	"dsc/store/session"

	"github.com/fox-one/pkg/store/db"
)

type transferStore struct {
	db *db.DB
}

// New new transfer store
func New(db *db.DB) core.ITransferStore {
	return &transferStore{
		db: db,
	}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Transfer{})
		if err := tx.AutoMigrate(core.Transfer{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *transferStore) Create(ctx context.Context, transfer *core.Transfer) error {
	return session.From(ctx, s.db).Update().Create(transfer).Error
}

func (s *transferStore) List(ctx context.Context, fromID int64, limit int) ([]*core.Transfer, error) {
	if limit <= 0 {
		limit = 500
	}

	var transfers []*core.Transfer
	if err := session.From(ctx, s.db).View().Where("id > ?", fromID).Order("id ASC").Limit(limit).Find(&transfers).Error; err != nil {
		return nil, err
	}

	return transfers, nil
}
