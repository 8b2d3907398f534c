package cmd

import (
	"context"
	"sync"

	"dsc/core"
	"dsc/service/custodian"
	"dsc/service/engine"
	"dsc/service/feed"
	"dsc/service/oracle"
	"dsc/service/token"
	"dsc/service/vault"
	"dsc/store/asset"
	"dsc/store/collateral"
	"dsc/store/debt"
	"dsc/store/session"
	tokenstore "dsc/store/token"
	"dsc/store/transaction"
	"dsc/store/transfer"

	"github.com/fox-one/pkg/property"
	"github.com/fox-one/pkg/store/db"
	propertystore "github.com/fox-one/pkg/store/property"
)

var (
	databaseOnce sync.Once
	database     *db.DB
)

func provideDatabase() *db.DB {
	databaseOnce.Do(func() {
		database = db.MustOpen(cfg.DB)
	})

	return database
}

func provideConfig() *core.Config {
	return &cfg
}

// ---------------store-----------------------------------------

func provideTransactor(db *db.DB) core.Transactor {
	return session.New(db)
}

func providePropertyStore(db *db.DB) property.Store {
	return propertystore.New(db)
}

func provideAssetStore(db *db.DB) core.IAssetStore {
	return asset.Cache(asset.New(db))
}

func provideCollateralStore(db *db.DB) core.ICollateralStore {
	return collateral.New(db)
}

func provideDebtStore(db *db.DB) core.IDebtStore {
	return debt.New(db)
}

func provideTokenStore(db *db.DB) core.ITokenStore {
	return tokenstore.New(db)
}

func provideTransactionStore(db *db.DB) core.ITransactionStore {
	return transaction.New(db)
}

func provideTransferStore(db *db.DB) core.ITransferStore {
	return transfer.New(db)
}

// ------------------service------------------------------------

// provideAssetSet sync the configured assets into the asset store, the store is the source of the set
func provideAssetSet(ctx context.Context, assets core.IAssetStore) *core.AssetSet {
	if _, err := core.NewAssetSet(cfg.Assets); err != nil {
		panic(err)
	}

	for _, a := range cfg.Assets {
		if err := assets.Save(ctx, a); err != nil {
			panic(err)
		}
	}

	all, err := assets.All(ctx)
	if err != nil {
		panic(err)
	}

	set, err := core.NewAssetSet(all)
	if err != nil {
		panic(err)
	}

	return set
}

func providePriceFeed() core.IPriceFeed {
	return feed.NewHTTP(cfg.PriceOracle)
}

func providePriceService(assets *core.AssetSet, priceFeed core.IPriceFeed) core.IPriceOracleService {
	return oracle.New(assets, priceFeed)
}

func provideTokenService(tokens core.ITokenStore, tx core.Transactor) core.IPeggedToken {
	engineID := cfg.App.EngineID
	return token.New(tokens, tx, []string{engineID}, append([]string{engineID}, cfg.Token.Burners...))
}

func provideVault(transfers core.ITransferStore) core.IVault {
	return vault.New(transfers)
}

func provideCustodian() core.ICustodian {
	return custodian.New(cfg.Custodian)
}

type services struct {
	assets       *core.AssetSet
	assetStore   core.IAssetStore
	engine       core.IEngineService
	token        core.IPeggedToken
	debts        core.IDebtStore
	transactions core.ITransactionStore
	transfers    core.ITransferStore
}

func provideServices(ctx context.Context) *services {
	database := provideDatabase()
	tx := provideTransactor(database)

	assetStore := provideAssetStore(database)
	assets := provideAssetSet(ctx, assetStore)
	transactions := provideTransactionStore(database)
	transfers := provideTransferStore(database)
	debts := provideDebtStore(database)
	tokenSrv := provideTokenService(provideTokenStore(database), tx)

	engineSrv := engine.New(
		engine.Config{EngineID: cfg.App.EngineID},
		assets,
		providePriceService(assets, providePriceFeed()),
		provideCollateralStore(database),
		debts,
		transactions,
		tokenSrv,
		provideVault(transfers),
		tx,
	)

	return &services{
		assets:       assets,
		assetStore:   assetStore,
		engine:       engineSrv,
		token:        tokenSrv,
		debts:        debts,
		transactions: transactions,
		transfers:    transfers,
	}
}
