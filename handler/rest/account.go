package rest

import (
	"errors"
	"net/http"

	"dsc/core"
	"dsc/handler/param"
	"dsc/handler/render"
	"dsc/handler/views"
	"dsc/pkg/risk"

	"github.com/go-chi/chi"
	"github.com/spf13/cast"
)

func accountHandler(engineSrv core.IEngineService, assets *core.AssetSet) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		info, err := engineSrv.AccountInformation(r.Context(), chi.URLParam(r, "user"))
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, views.AccountView(info, assets))
	}
}

func healthFactorHandler(engineSrv core.IEngineService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		hf, err := engineSrv.HealthFactor(r.Context(), chi.URLParam(r, "user"))
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, views.NewHealthFactor(hf, risk.IsHealthy(hf)))
	}
}

func collateralValueHandler(engineSrv core.IEngineService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		value, err := engineSrv.AccountCollateralValue(r.Context(), chi.URLParam(r, "user"))
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, views.Usd(value))
	}
}

func collateralBalanceHandler(engineSrv core.IEngineService, assets *core.AssetSet) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		assetID := chi.URLParam(r, "asset")
		asset, ok := assets.Find(assetID)
		if !ok {
			render.Error(w, core.ErrUnsupportedAsset)
			return
		}

		amount, err := engineSrv.CollateralBalance(r.Context(), chi.URLParam(r, "user"), assetID)
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, views.NewAmount(amount, asset.Decimals))
	}
}

func balanceHandler(token core.IPeggedToken) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		balance, err := token.BalanceOf(r.Context(), chi.URLParam(r, "user"))
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, views.Usd(balance))
	}
}

func totalSupplyHandler(token core.IPeggedToken) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		supply, err := token.TotalSupply(r.Context())
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, views.Usd(supply))
	}
}

// response user transactions
func transactionsHandler(transactions core.ITransactionStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params struct {
			From  string `json:"from"`
			Limit string `json:"limit"`
		}

		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		limit := cast.ToInt(params.Limit)
		if limit <= 0 || limit > 500 {
			limit = 500
		}

		list, err := transactions.ListByUser(r.Context(), chi.URLParam(r, "user"), cast.ToInt64(params.From), limit)
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, views.TransactionsView(list))
	}
}

func transactionHandler(transactions core.ITransactionStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t, err := transactions.FindByTraceID(r.Context(), chi.URLParam(r, "trace_id"))
		if err != nil {
			render.Error(w, err)
			return
		}

		if t.ID == 0 {
			render.NotFoundRequest(w, errors.New("transaction not found"))
			return
		}

		render.JSON(w, views.TransactionView(t))
	}
}
