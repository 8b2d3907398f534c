package core

import (
	"context"
)

// Transactor run fn atomically
//
// Stores called with the ctx passed to fn take part in the same transaction.
// If fn returns an error every change made through that ctx is discarded.
type Transactor interface {
	Tx(ctx context.Context, fn func(ctx context.Context) error) error
}
