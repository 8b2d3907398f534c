package rest

import (
	"context"
	"errors"
	"net/http"

	"dsc/core"
	"dsc/handler/render"
	"dsc/pkg/fixedpoint"
	"dsc/pkg/id"
	"dsc/service/engine"

	"github.com/go-chi/chi"
	"github.com/holiman/uint256"
)

// Handle handle rest api request
func Handle(
	engineSrv core.IEngineService,
	assetStore core.IAssetStore,
	token core.IPeggedToken,
	transactions core.ITransactionStore,
) http.Handler {
	assets, err := core.NewAssetSet(engineSrv.Assets())
	if err != nil {
		panic(err)
	}

	router := chi.NewRouter()

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		render.NotFoundRequest(w, errors.New("not found"))
	})

	router.Get("/assets", assetsHandler(assetStore))
	router.Route("/assets/{asset}", func(r chi.Router) {
		r.Get("/", assetHandler(assetStore))
		r.Get("/usd-value", usdValueHandler(engineSrv))
		r.Get("/token-amount", tokenAmountHandler(engineSrv, assets))
	})

	router.Get("/health-factor", calculateHealthFactorHandler(engineSrv))
	router.Get("/total-supply", totalSupplyHandler(token))
	router.Post("/liquidations", liquidateHandler(engineSrv, assets))
	router.Get("/transactions/{trace_id}", transactionHandler(transactions))

	router.Route("/accounts/{user}", func(r chi.Router) {
		r.Get("/", accountHandler(engineSrv, assets))
		r.Get("/health-factor", healthFactorHandler(engineSrv))
		r.Get("/collateral-value", collateralValueHandler(engineSrv))
		r.Get("/collaterals/{asset}", collateralBalanceHandler(engineSrv, assets))
		r.Get("/balance", balanceHandler(token))
		r.Get("/transactions", transactionsHandler(transactions))

		r.Post("/deposit", depositHandler(engineSrv))
		r.Post("/withdraw", withdrawHandler(engineSrv))
		r.Post("/mint", mintHandler(engineSrv))
		r.Post("/burn", burnHandler(engineSrv))
		r.Post("/deposit-and-mint", depositAndMintHandler(engineSrv))
		r.Post("/redeem-for-dsc", redeemForDSCHandler(engineSrv))
	})

	return router
}

// traceContext bind the caller supplied trace id, or a fresh one, to the operation
func traceContext(ctx context.Context, traceID string) (context.Context, string) {
	if traceID == "" {
		traceID = id.GenTraceID()
	}

	return engine.WithTraceID(ctx, traceID), traceID
}

func parseAmount(s string) (*uint256.Int, error) {
	if s == "" {
		return nil, core.ErrInvalidAmount
	}

	v, err := fixedpoint.Parse(s)
	if err != nil {
		return nil, core.ErrInvalidAmount
	}

	return v, nil
}

func parseOptional(s string) (*uint256.Int, error) {
	if s == "" {
		return fixedpoint.Zero(), nil
	}

	return parseAmount(s)
}
