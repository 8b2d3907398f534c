package monitor

import (
	"context"

	"dsc/core"
	"dsc/pkg/fixedpoint"
	"dsc/pkg/risk"
	"dsc/worker"

	"github.com/fox-one/pkg/logger"
	"github.com/sirupsen/logrus"
	"github.com/yiplee/structs"
)

// Position an account below the minimum health factor
type Position struct {
	UserID          string `json:"user_id"`
	Debt            string `json:"debt"`
	CollateralValue string `json:"collateral_value"`
	HealthFactor    string `json:"health_factor"`
}

// Config monitor config
type Config struct {
	Location string
	Spec     string
	Batch    int
}

// Monitor list liquidatable positions, liquidation itself is left to liquidators
type Monitor struct {
	worker.BaseJob
	debts  core.IDebtStore
	engine core.IEngineService
	batch  int
}

// New new monitor worker
func New(cfg Config, debts core.IDebtStore, engine core.IEngineService) *Monitor {
	m := &Monitor{
		debts:  debts,
		engine: engine,
		batch:  cfg.Batch,
	}

	if m.batch <= 0 {
		m.batch = 100
	}

	spec := cfg.Spec
	if spec == "" {
		spec = "@every 1m"
	}

	m.Cron = worker.NewCron(cfg.Location)
	if _, err := m.Cron.AddFunc(spec, m.Run); err != nil {
		panic(err)
	}

	m.OnWork = func() error {
		return m.onWork(context.Background())
	}

	return m
}

func (w *Monitor) onWork(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("worker", "monitor")

	positions, err := w.Scan(ctx)
	if err != nil {
		log.WithError(err).Errorln("scan positions")
		return err
	}

	if len(positions) == 0 {
		return worker.ErrEOF
	}

	for _, p := range positions {
		log.WithFields(logrus.Fields(structs.Map(p))).Warnln("position below minimum health factor")
	}

	return nil
}

// Scan walk every debtor and return the unsafe ones
func (w *Monitor) Scan(ctx context.Context) ([]*Position, error) {
	log := logger.FromContext(ctx)

	var (
		positions []*Position
		fromID    int64
	)

	for {
		debts, err := w.debts.Debtors(ctx, fromID, w.batch)
		if err != nil {
			return nil, err
		}

		for _, debt := range debts {
			fromID = debt.ID

			info, err := w.engine.AccountInformation(ctx, debt.UserID)
			if err != nil {
				// one unpriced asset must not hide the other positions
				log.WithError(err).WithField("user", debt.UserID).Infoln("skip position")
				continue
			}

			if risk.IsHealthy(info.HealthFactor) {
				continue
			}

			positions = append(positions, &Position{
				UserID:          info.UserID,
				Debt:            fixedpoint.ToDecimal(info.TotalDebt).String(),
				CollateralValue: fixedpoint.ToDecimal(info.CollateralValue).String(),
				HealthFactor:    info.HealthFactor.Dec(),
			})
		}

		if len(debts) < w.batch {
			break
		}
	}

	return positions, nil
}
