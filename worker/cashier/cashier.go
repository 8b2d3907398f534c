package cashier

import (
	"context"

	"dsc/core"
	"dsc/worker"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/property"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

const checkpointKey = "cashier_checkpoint"

// checkpoints the part of property.Store the cashier needs
type checkpoints interface {
	Get(ctx context.Context, key string) (property.Value, error)
	Save(ctx context.Context, key string, value interface{}) error
}

// Cashier cashier
//
// forward vault transfers to the custodian in id order
type Cashier struct {
	worker.BaseJob
	transfers core.ITransferStore
	custodian core.ICustodian
	property  checkpoints
	cfg       Config

	// last forwarded transfer id, loaded from property on the first round
	offset *int64
}

type Config struct {
	Location string
	Batch    int   `json:"batch" valid:"required"`
	Capacity int64 `json:"capacity" valid:"required"`
}

// New new cashier
func New(
	transfers core.ITransferStore,
	custodian core.ICustodian,
	property checkpoints,
	cfg Config,
) *Cashier {
	if cfg.Batch <= 0 {
		cfg.Batch = 100
	}

	cashier := &Cashier{
		transfers: transfers,
		custodian: custodian,
		property:  property,
		cfg:       cfg,
	}

	cashier.Cron = worker.NewCron(cfg.Location)
	if _, err := cashier.Cron.AddFunc("@every 1s", cashier.Run); err != nil {
		panic(err)
	}

	f := cashier.sync
	if cfg.Capacity > 1 {
		f = cashier.parallel(cfg.Capacity)
	}

	cashier.OnWork = func() error {
		return cashier.onWork(context.Background(), f)
	}

	return cashier
}

func (w *Cashier) onWork(ctx context.Context, f func(context.Context, []*core.Transfer) error) error {
	log := logger.FromContext(ctx).WithField("worker", "cashier")

	if w.offset == nil {
		v, err := w.property.Get(ctx, checkpointKey)
		if err != nil {
			log.WithError(err).Errorln("property.Get", checkpointKey)
			return err
		}

		offset := v.Int64()
		w.offset = &offset
	}

	transfers, err := w.transfers.List(ctx, *w.offset, w.cfg.Batch)
	if err != nil {
		log.WithError(err).Errorln("list transfers")
		return err
	}

	if len(transfers) == 0 {
		return worker.ErrEOF
	}

	if err := f(ctx, transfers); err != nil {
		return err
	}

	last := transfers[len(transfers)-1].ID
	if err := w.property.Save(ctx, checkpointKey, last); err != nil {
		log.WithError(err).Errorln("property.Save", checkpointKey)
		return err
	}

	*w.offset = last
	return nil
}

func (w *Cashier) sync(ctx context.Context, transfers []*core.Transfer) error {
	for _, transfer := range transfers {
		if err := w.handleTransfer(ctx, transfer); err != nil {
			return err
		}
	}

	return nil
}

// parallel forward a batch concurrently, the checkpoint only moves when all of them succeed
func (w *Cashier) parallel(capacity int64) func(ctx context.Context, transfers []*core.Transfer) error {
	sem := semaphore.NewWeighted(capacity)

	return func(ctx context.Context, transfers []*core.Transfer) error {
		g := errgroup.Group{}

		for idx := range transfers {
			transfer := transfers[idx]

			if err := sem.Acquire(ctx, 1); err != nil {
				_ = g.Wait()
				return err
			}

			g.Go(func() error {
				defer sem.Release(1)
				return w.handleTransfer(ctx, transfer)
			})
		}

		return g.Wait()
	}
}

func (w *Cashier) handleTransfer(ctx context.Context, transfer *core.Transfer) error {
	log := logger.FromContext(ctx).WithField("trace", transfer.TraceID)

	if err := w.custodian.Forward(ctx, transfer); err != nil {
		log.WithError(err).Errorln("custodian.Forward")
		return err
	}

	log.Debugln("transfer forwarded", transfer.Direction, transfer.AssetID, transfer.Amount)
	return nil
}
