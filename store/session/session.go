package session

import (
	"context"

	"dsc/core"

	"github.com/fox-one/pkg/store/db"
)

type txKey struct{}

// With bind tx to ctx
func With(ctx context.Context, tx *db.DB) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

// From the transaction bound to ctx, or fallback
func From(ctx context.Context, fallback *db.DB) *db.DB {
	if tx, ok := ctx.Value(txKey{}).(*db.DB); ok {
		return tx
	}

	return fallback
}

type transactor struct {
	db *db.DB
}

// New gorm backed core.Transactor
func New(database *db.DB) core.Transactor {
	return &transactor{db: database}
}

func (t *transactor) Tx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*db.DB); ok {
		return fn(ctx)
	}

	return t.db.Tx(func(tx *db.DB) error {
		return fn(With(ctx, tx))
	})
}
