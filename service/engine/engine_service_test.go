package engine

import (
	"context"
	"testing"
	"time"

	"dsc/core"
	"dsc/pkg/fixedpoint"
	"dsc/service/feed"
	"dsc/service/oracle"
	"dsc/service/token"
	"dsc/service/vault"
	"dsc/store/memory"

	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const engineID = "dsc-engine"

type testEngine struct {
	core.IEngineService
	state *memory.State
	feed  *feed.Static
	token core.IPeggedToken
	now   time.Time
}

func newTestEngine(t *testing.T) *testEngine {
	assets, err := core.NewAssetSet([]*core.Asset{
		{ID: "weth", Symbol: "WETH", Decimals: 18, FeedID: "ETH-USD"},
		{ID: "wbtc", Symbol: "WBTC", Decimals: 8, FeedID: "BTC-USD"},
	})
	require.Nil(t, err)

	e := &testEngine{
		state: memory.New(),
		feed:  feed.NewStatic(),
		now:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	e.token = token.New(e.state.Tokens(), e.state, []string{engineID}, []string{engineID})
	priceSrv := oracle.New(assets, e.feed, oracle.WithClock(func() time.Time { return e.now }))
	e.IEngineService = New(
		Config{EngineID: engineID},
		assets,
		priceSrv,
		e.state.Collaterals(),
		e.state.Debts(),
		e.state.Transactions(),
		e.token,
		vault.New(e.state.Transfers()),
		e.state,
	)

	e.setPrice("ETH-USD", 2000)
	e.setPrice("BTC-USD", 30000)
	return e
}

func (e *testEngine) setPrice(feedID string, usd float64) {
	e.feed.Set(feedID, decimal.NewFromFloat(usd), e.now)
}

func ether(n uint64) *uint256.Int {
	return new(uint256.Int).Mul(uint256.NewInt(n), fixedpoint.Precision)
}

func (e *testEngine) balance(t *testing.T, user, asset string) string {
	v, err := e.CollateralBalance(context.Background(), user, asset)
	require.Nil(t, err)
	return v.Dec()
}

// debt reads the ledger directly, it must not depend on a fresh price
func (e *testEngine) debt(t *testing.T, user string) string {
	d, err := e.state.Debts().Find(context.Background(), user)
	require.Nil(t, err)
	return d.Amount.String()
}

func (e *testEngine) tokens(t *testing.T, holder string) string {
	v, err := e.token.BalanceOf(context.Background(), holder)
	require.Nil(t, err)
	return v.Dec()
}

func (e *testEngine) transfers(t *testing.T) []*core.Transfer {
	transfers, err := e.state.Transfers().List(context.Background(), 0, 0)
	require.Nil(t, err)
	return transfers
}

func TestLiquidationScenario(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t)

	require.Nil(t, e.DepositCollateralAndMintDSC(ctx, "alice", "weth", ether(10), ether(8000)))

	hf, err := e.HealthFactor(ctx, "alice")
	require.Nil(t, err)
	assert.Equal(t, "1250000000000000000", hf.Dec())

	value, err := e.AccountCollateralValue(ctx, "alice")
	require.Nil(t, err)
	assert.Equal(t, ether(20000).Dec(), value.Dec())

	require.Nil(t, e.DepositCollateralAndMintDSC(ctx, "bob", "weth", ether(20), ether(4000)))

	e.setPrice("ETH-USD", 1500)
	hf, err = e.HealthFactor(ctx, "alice")
	require.Nil(t, err)
	assert.Equal(t, "937500000000000000", hf.Dec())

	l, err := e.Liquidate(ctx, "bob", "alice", "weth", ether(4000))
	require.Nil(t, err)
	assert.Equal(t, "2666666666666666666", l.BaseCollateral.Dec())
	assert.Equal(t, "266666666666666666", l.Bonus.Dec())
	assert.Equal(t, "2933333333333333332", l.Seized.Dec())
	assert.Equal(t, "937500000000000000", l.StartHealthFactor.Dec())
	assert.Equal(t, "1325000000000000000", l.EndHealthFactor.Dec())
	assert.True(t, l.EndHealthFactor.Gt(l.StartHealthFactor))

	assert.Equal(t, "7066666666666666668", e.balance(t, "alice", "weth"))
	assert.Equal(t, ether(4000).Dec(), e.debt(t, "alice"))
	assert.Equal(t, ether(8000).Dec(), e.tokens(t, "alice"))
	assert.Equal(t, "0", e.tokens(t, "bob"))
	assert.Equal(t, ether(20).Dec(), e.balance(t, "bob", "weth"))

	supply, err := e.token.TotalSupply(ctx)
	require.Nil(t, err)
	assert.Equal(t, ether(8000).Dec(), supply.Dec())

	transfers := e.transfers(t)
	last := transfers[len(transfers)-1]
	assert.Equal(t, core.TransferDirectionOut, last.Direction)
	assert.Equal(t, "bob", last.UserID)
	assert.Equal(t, "2933333333333333332", last.Amount.String())

	tx, err := e.state.Transactions().FindByTraceID(ctx, l.TraceID)
	require.Nil(t, err)
	assert.Equal(t, core.ActionTypeLiquidate, tx.Action)
	assert.Equal(t, "alice", tx.UserID)
	assert.Equal(t, "bob", tx.ExtraData()[core.TransactionKeyLiquidator])
}

func TestDepositWithdrawRoundTrip(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t)

	require.Nil(t, e.DepositCollateral(ctx, "alice", "wbtc", uint256.NewInt(12_345_678)))
	assert.Equal(t, "12345678", e.balance(t, "alice", "wbtc"))

	require.Nil(t, e.WithdrawCollateral(ctx, "alice", "wbtc", uint256.NewInt(12_345_678)))
	assert.Equal(t, "0", e.balance(t, "alice", "wbtc"))

	transfers := e.transfers(t)
	require.Len(t, transfers, 2)
	assert.Equal(t, core.TransferDirectionIn, transfers[0].Direction)
	assert.Equal(t, core.TransferDirectionOut, transfers[1].Direction)

	txs, err := e.state.Transactions().ListByUser(ctx, "alice", 0, 10)
	require.Nil(t, err)
	require.Len(t, txs, 2)
	assert.Equal(t, core.ActionTypeDeposit, txs[0].Action)
	assert.Equal(t, core.ActionTypeWithdraw, txs[1].Action)
}

func TestMintGate(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t)

	require.Nil(t, e.DepositCollateral(ctx, "alice", "weth", ether(10)))

	err := e.MintDSC(ctx, "alice", new(uint256.Int).AddUint64(ether(10000), 1))
	assert.ErrorIs(t, err, core.ErrMintBreaksHealthFactor)
	assert.Equal(t, "0", e.debt(t, "alice"))
	assert.Equal(t, "0", e.tokens(t, "alice"))

	// exactly 1.0 is safe
	require.Nil(t, e.MintDSC(ctx, "alice", ether(10000)))
	hf, err := e.HealthFactor(ctx, "alice")
	require.Nil(t, err)
	assert.Equal(t, fixedpoint.Precision.Dec(), hf.Dec())

	err = e.MintDSC(ctx, "alice", uint256.NewInt(1))
	assert.ErrorIs(t, err, core.ErrMintBreaksHealthFactor)
	assert.Equal(t, ether(10000).Dec(), e.debt(t, "alice"))
	assert.Equal(t, ether(10000).Dec(), e.tokens(t, "alice"))
}

func TestWithdrawGate(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t)

	require.Nil(t, e.DepositCollateralAndMintDSC(ctx, "alice", "weth", ether(10), ether(8000)))
	before := len(e.transfers(t))

	err := e.WithdrawCollateral(ctx, "alice", "weth", ether(3))
	assert.ErrorIs(t, err, core.ErrWithdrawalBreaksHealthFactor)
	assert.Equal(t, ether(10).Dec(), e.balance(t, "alice", "weth"))
	assert.Len(t, e.transfers(t), before)

	require.Nil(t, e.WithdrawCollateral(ctx, "alice", "weth", ether(2)))
	assert.Equal(t, ether(8).Dec(), e.balance(t, "alice", "weth"))

	err = e.WithdrawCollateral(ctx, "alice", "weth", ether(9))
	assert.ErrorIs(t, err, core.ErrInsufficientCollateral)
}

func TestInputValidation(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t)

	assert.ErrorIs(t, e.DepositCollateral(ctx, "alice", "weth", uint256.NewInt(0)), core.ErrInvalidAmount)
	assert.ErrorIs(t, e.DepositCollateral(ctx, "alice", "weth", nil), core.ErrInvalidAmount)
	assert.ErrorIs(t, e.DepositCollateral(ctx, "alice", "doge", ether(1)), core.ErrUnsupportedAsset)
	assert.ErrorIs(t, e.DepositCollateral(ctx, "", "weth", ether(1)), core.ErrInvalidAccount)
	assert.ErrorIs(t, e.WithdrawCollateral(ctx, "alice", "weth", ether(1)), core.ErrInsufficientCollateral)
	assert.ErrorIs(t, e.MintDSC(ctx, "alice", uint256.NewInt(0)), core.ErrInvalidAmount)
	assert.ErrorIs(t, e.BurnDSC(ctx, "alice", ether(1)), core.ErrBurnExceedsDebt)

	_, err := e.Liquidate(ctx, "bob", "alice", "weth", uint256.NewInt(0))
	assert.ErrorIs(t, err, core.ErrInvalidAmount)

	_, err = e.UsdValue(ctx, "doge", ether(1))
	assert.ErrorIs(t, err, core.ErrUnsupportedAsset)

	assert.Len(t, e.transfers(t), 0)
}

func TestBurn(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t)

	require.Nil(t, e.DepositCollateralAndMintDSC(ctx, "alice", "weth", ether(10), ether(5000)))
	require.Nil(t, e.BurnDSC(ctx, "alice", ether(1000)))
	assert.Equal(t, ether(4000).Dec(), e.debt(t, "alice"))
	assert.Equal(t, ether(4000).Dec(), e.tokens(t, "alice"))

	assert.ErrorIs(t, e.BurnDSC(ctx, "alice", ether(4001)), core.ErrBurnExceedsDebt)

	// debt is only repaid when the pegged units can really be burned
	require.Nil(t, e.token.Transfer(ctx, "alice", "carol", ether(3500)))
	assert.ErrorIs(t, e.BurnDSC(ctx, "alice", ether(1000)), core.ErrInsufficientBalance)
	assert.Equal(t, ether(4000).Dec(), e.debt(t, "alice"))

	require.Nil(t, e.BurnDSC(ctx, "alice", ether(500)))
	assert.Equal(t, ether(3500).Dec(), e.debt(t, "alice"))
	assert.Equal(t, "0", e.tokens(t, "alice"))
}

func TestCombinedOperationsAreAtomic(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t)

	err := e.DepositCollateralAndMintDSC(ctx, "alice", "weth", ether(1), ether(1001))
	assert.ErrorIs(t, err, core.ErrMintBreaksHealthFactor)
	assert.Equal(t, "0", e.balance(t, "alice", "weth"))
	assert.Len(t, e.transfers(t), 0)

	require.Nil(t, e.DepositCollateralAndMintDSC(ctx, "alice", "weth", ether(10), ether(8000)))

	// burning 1000 is not enough to take 4 units out
	err = e.RedeemCollateralForDSC(ctx, "alice", "weth", ether(4), ether(1000))
	assert.ErrorIs(t, err, core.ErrWithdrawalBreaksHealthFactor)
	assert.Equal(t, ether(8000).Dec(), e.debt(t, "alice"))
	assert.Equal(t, ether(8000).Dec(), e.tokens(t, "alice"))

	require.Nil(t, e.RedeemCollateralForDSC(ctx, "alice", "weth", ether(4), ether(2000)))
	assert.Equal(t, ether(6000).Dec(), e.debt(t, "alice"))
	assert.Equal(t, ether(6).Dec(), e.balance(t, "alice", "weth"))

	hf, err := e.HealthFactor(ctx, "alice")
	require.Nil(t, err)
	assert.Equal(t, fixedpoint.Precision.Dec(), hf.Dec())
}

func TestLiquidationFailures(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) *testEngine {
		e := newTestEngine(t)
		require.Nil(t, e.DepositCollateralAndMintDSC(ctx, "alice", "weth", ether(10), ether(8000)))
		require.Nil(t, e.DepositCollateralAndMintDSC(ctx, "bob", "weth", ether(20), ether(4000)))
		return e
	}

	t.Run("healthy", func(t *testing.T) {
		e := setup(t)
		_, err := e.Liquidate(ctx, "bob", "alice", "weth", ether(100))
		assert.ErrorIs(t, err, core.ErrPositionIsHealthy)
	})

	t.Run("exceeds debt", func(t *testing.T) {
		e := setup(t)
		e.setPrice("ETH-USD", 1500)
		_, err := e.Liquidate(ctx, "bob", "alice", "weth", ether(8001))
		assert.ErrorIs(t, err, core.ErrDebtToCoverExceedsDebt)
	})

	t.Run("no collateral for bonus", func(t *testing.T) {
		e := setup(t)
		require.Nil(t, e.DepositCollateral(ctx, "alice", "wbtc", uint256.NewInt(10_000_000)))
		e.setPrice("ETH-USD", 1000)
		e.setPrice("BTC-USD", 10000)

		// 1000 usd of wbtc plus bonus is 0.11 wbtc, alice only holds 0.1
		_, err := e.Liquidate(ctx, "bob", "alice", "wbtc", ether(1000))
		assert.ErrorIs(t, err, core.ErrInsufficientCollateralForBonus)
		assert.Equal(t, "10000000", e.balance(t, "alice", "wbtc"))
	})

	t.Run("not improved", func(t *testing.T) {
		e := setup(t)
		e.setPrice("ETH-USD", 800)
		_, err := e.Liquidate(ctx, "bob", "alice", "weth", ether(1000))
		assert.ErrorIs(t, err, core.ErrHealthFactorNotImproved)
		assert.Equal(t, ether(10).Dec(), e.balance(t, "alice", "weth"))
		assert.Equal(t, ether(8000).Dec(), e.debt(t, "alice"))
		assert.Equal(t, ether(4000).Dec(), e.tokens(t, "bob"))
	})

	t.Run("liquidator unsafe", func(t *testing.T) {
		e := setup(t)
		require.Nil(t, e.DepositCollateralAndMintDSC(ctx, "carol", "weth", ether(5), ether(5000)))
		e.setPrice("ETH-USD", 1500)
		_, err := e.Liquidate(ctx, "carol", "alice", "weth", ether(1000))
		assert.ErrorIs(t, err, core.ErrBreaksHealthFactor)
		assert.Equal(t, ether(10).Dec(), e.balance(t, "alice", "weth"))
		assert.Equal(t, ether(5000).Dec(), e.tokens(t, "carol"))
	})

	t.Run("liquidator without pegged units", func(t *testing.T) {
		e := setup(t)
		e.setPrice("ETH-USD", 1500)
		before := len(e.transfers(t))
		_, err := e.Liquidate(ctx, "dave", "alice", "weth", ether(1000))
		assert.ErrorIs(t, err, core.ErrInsufficientBalance)
		assert.Equal(t, ether(10).Dec(), e.balance(t, "alice", "weth"))
		assert.Equal(t, ether(8000).Dec(), e.debt(t, "alice"))
		assert.Len(t, e.transfers(t), before)
	})

	t.Run("stale price", func(t *testing.T) {
		e := setup(t)
		e.setPrice("ETH-USD", 1500)
		e.now = e.now.Add(oracle.MaxPriceAge + time.Second)
		_, err := e.Liquidate(ctx, "bob", "alice", "weth", ether(1000))
		assert.ErrorIs(t, err, core.ErrStalePrice)
	})
}

func TestLedgerColumnBound(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t)

	limit, err := fixedpoint.Pow10(fixedpoint.StorageDigits)
	require.Nil(t, err)
	largest := new(uint256.Int).Sub(limit, uint256.NewInt(1))

	require.Nil(t, e.DepositCollateral(ctx, "alice", "weth", largest))
	assert.ErrorIs(t, e.DepositCollateral(ctx, "alice", "weth", uint256.NewInt(1)), core.ErrArithmeticOverflow)
	assert.Equal(t, largest.Dec(), e.balance(t, "alice", "weth"))

	assert.ErrorIs(t, e.MintDSC(ctx, "alice", limit), core.ErrArithmeticOverflow)
	assert.Equal(t, "0", e.debt(t, "alice"))

	require.Nil(t, e.MintDSC(ctx, "alice", largest))
	assert.Equal(t, largest.Dec(), e.debt(t, "alice"))
}

func TestStalePriceBlocksSolvencyChecks(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t)

	require.Nil(t, e.DepositCollateral(ctx, "alice", "weth", ether(10)))
	e.now = e.now.Add(oracle.MaxPriceAge)
	require.Nil(t, e.MintDSC(ctx, "alice", ether(100)))

	e.now = e.now.Add(time.Second)
	assert.ErrorIs(t, e.MintDSC(ctx, "alice", ether(100)), core.ErrStalePrice)
	assert.ErrorIs(t, e.WithdrawCollateral(ctx, "alice", "weth", ether(1)), core.ErrStalePrice)
	assert.Equal(t, ether(100).Dec(), e.debt(t, "alice"))

	// deposits and burns never need a price
	require.Nil(t, e.DepositCollateral(ctx, "alice", "weth", ether(1)))
	require.Nil(t, e.BurnDSC(ctx, "alice", ether(100)))

	e.feed.Set("ETH-USD", decimal.Zero, e.now)
	assert.ErrorIs(t, e.MintDSC(ctx, "alice", ether(1)), core.ErrInvalidPrice)
}

func TestViews(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t)

	v, err := e.UsdValue(ctx, "weth", ether(15))
	require.Nil(t, err)
	assert.Equal(t, ether(30000).Dec(), v.Dec())

	v, err = e.UsdValue(ctx, "wbtc", uint256.NewInt(50_000_000))
	require.Nil(t, err)
	assert.Equal(t, ether(15000).Dec(), v.Dec())

	v, err = e.TokenAmountFromUsd(ctx, "weth", ether(100))
	require.Nil(t, err)
	assert.Equal(t, "50000000000000000", v.Dec())

	v, err = e.TokenAmountFromUsd(ctx, "wbtc", ether(15000))
	require.Nil(t, err)
	assert.Equal(t, "50000000", v.Dec())

	_, err = e.UsdValue(ctx, "weth", nil)
	assert.ErrorIs(t, err, core.ErrInvalidAmount)

	_, err = e.TokenAmountFromUsd(ctx, "weth", nil)
	assert.ErrorIs(t, err, core.ErrInvalidAmount)

	hf, err := e.HealthFactor(ctx, "nobody")
	require.Nil(t, err)
	assert.True(t, hf.Eq(fixedpoint.Max()))

	hf, err = e.CalculateHealthFactor(ether(100), ether(150))
	require.Nil(t, err)
	assert.Equal(t, "750000000000000000", hf.Dec())

	require.Nil(t, e.DepositCollateral(ctx, "alice", "weth", ether(1)))
	require.Nil(t, e.DepositCollateral(ctx, "alice", "wbtc", uint256.NewInt(100_000_000)))
	require.Nil(t, e.MintDSC(ctx, "alice", ether(1000)))

	info, err := e.AccountInformation(ctx, "alice")
	require.Nil(t, err)
	assert.Equal(t, ether(1000).Dec(), info.TotalDebt.Dec())
	assert.Equal(t, ether(32000).Dec(), info.CollateralValue.Dec())
	assert.Equal(t, "16000000000000000000", info.HealthFactor.Dec())
	assert.Len(t, info.Collaterals, 2)

	assets := e.Assets()
	require.Len(t, assets, 2)
	assert.Equal(t, "wbtc", assets[0].ID)
}

func TestReplayedTraceIsRejected(t *testing.T) {
	ctx := WithTraceID(context.Background(), "5f2a3b1c-0000-4000-8000-000000000001")
	e := newTestEngine(t)

	require.Nil(t, e.DepositCollateral(ctx, "alice", "weth", ether(1)))
	assert.NotNil(t, e.DepositCollateral(ctx, "alice", "weth", ether(1)))
	assert.Equal(t, ether(1).Dec(), e.balance(t, "alice", "weth"))
}
