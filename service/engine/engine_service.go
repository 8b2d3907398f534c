package engine

import (
	"context"
	"errors"
	"sync"

	"dsc/core"
	"dsc/pkg/fixedpoint"
	"dsc/pkg/id"

	"github.com/fox-one/pkg/logger"
	"github.com/holiman/uint256"
	"github.com/sirupsen/logrus"
)

// Config engine config
type Config struct {
	// EngineID caller identity used against the token ledger
	EngineID string
}

type engineService struct {
	config       Config
	assets       *core.AssetSet
	oracle       core.IPriceOracleService
	collaterals  core.ICollateralStore
	debts        core.IDebtStore
	transactions core.ITransactionStore
	token        core.IPeggedToken
	vault        core.IVault
	tx           core.Transactor

	// write lock for mutations, read lock for views
	mu sync.RWMutex
}

// New new engine service
func New(
	config Config,
	assets *core.AssetSet,
	oracle core.IPriceOracleService,
	collaterals core.ICollateralStore,
	debts core.IDebtStore,
	transactions core.ITransactionStore,
	token core.IPeggedToken,
	vault core.IVault,
	tx core.Transactor,
) core.IEngineService {
	return &engineService{
		config:       config,
		assets:       assets,
		oracle:       oracle,
		collaterals:  collaterals,
		debts:        debts,
		transactions: transactions,
		token:        token,
		vault:        vault,
		tx:           tx,
	}
}

type traceKey struct{}

// WithTraceID run the next operation under traceID, replaying a trace fails on the unique index
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceKey{}, traceID)
}

func traceFrom(ctx context.Context) string {
	if v, ok := ctx.Value(traceKey{}).(string); ok && v != "" {
		return v
	}

	return id.GenTraceID()
}

// execute run fn serialised with every other mutation, inside one transaction
func (s *engineService) execute(ctx context.Context, action string, fields logrus.Fields, fn func(ctx context.Context, traceID string) error) error {
	traceID := traceFrom(ctx)
	log := logger.FromContext(ctx).WithFields(fields).WithField("trace", traceID)
	ctx = logger.WithContext(ctx, log)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.tx.Tx(ctx, func(ctx context.Context) error {
		return fn(ctx, traceID)
	}); err != nil {
		var code core.ErrorCode
		if errors.As(err, &code) && code.Kind() != core.KindInternal {
			log.WithError(err).Infoln(action, "rejected")
		} else {
			log.WithError(err).Errorln(action, "failed")
		}

		return err
	}

	log.Debugln(action, "done")
	return nil
}

func requireAmount(amount *uint256.Int) error {
	if amount == nil || amount.IsZero() {
		return core.ErrInvalidAmount
	}

	return nil
}

func requireAccount(userID string) error {
	if userID == "" {
		return core.ErrInvalidAccount
	}

	return nil
}

func (s *engineService) requireAsset(assetID string) (*core.Asset, error) {
	asset, ok := s.assets.Find(assetID)
	if !ok {
		return nil, core.ErrUnsupportedAsset
	}

	return asset, nil
}

func (s *engineService) collateralOf(ctx context.Context, userID, assetID string) (*core.Collateral, *uint256.Int, error) {
	c, err := s.collaterals.Find(ctx, userID, assetID)
	if err != nil {
		return nil, nil, err
	}

	amount, err := fixedpoint.FromDecimal(c.Amount)
	if err != nil {
		return nil, nil, err
	}

	c.UserID, c.AssetID = userID, assetID
	return c, amount, nil
}

func (s *engineService) debtOf(ctx context.Context, userID string) (*core.Debt, *uint256.Int, error) {
	d, err := s.debts.Find(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	amount, err := fixedpoint.FromDecimal(d.Amount)
	if err != nil {
		return nil, nil, err
	}

	d.UserID = userID
	return d, amount, nil
}

func (s *engineService) record(ctx context.Context, action core.ActionType, traceID, userID, assetID string, amount *uint256.Int, extra core.TransactionExtraData) error {
	t := &core.Transaction{
		Action:  action,
		TraceID: traceID,
		UserID:  userID,
		AssetID: assetID,
		Amount:  fixedpoint.ToDecimal(amount),
	}
	t.SetExtraData(extra)

	if err := s.transactions.Create(ctx, t); err != nil {
		logger.FromContext(ctx).WithError(err).Errorln("transactions.Create", traceID)
		return err
	}

	return nil
}

func (s *engineService) Assets() []*core.Asset {
	return s.assets.List()
}
