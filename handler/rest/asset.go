package rest

import (
	"net/http"

	"dsc/core"
	"dsc/handler/param"
	"dsc/handler/render"
	"dsc/handler/views"
	"dsc/pkg/risk"

	"github.com/go-chi/chi"
)

func assetsHandler(assets core.IAssetStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := assets.All(r.Context())
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, views.AssetsView(list))
	}
}

func assetHandler(assets core.IAssetStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		asset, err := assets.Find(r.Context(), chi.URLParam(r, "asset"))
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, views.AssetView(asset))
	}
}

func usdValueHandler(engineSrv core.IEngineService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params struct {
			Amount string `json:"amount" valid:"required"`
		}

		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		amount, err := parseAmount(params.Amount)
		if err != nil {
			render.Error(w, err)
			return
		}

		value, err := engineSrv.UsdValue(r.Context(), chi.URLParam(r, "asset"), amount)
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, views.Usd(value))
	}
}

func tokenAmountHandler(engineSrv core.IEngineService, assets *core.AssetSet) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params struct {
			Usd string `json:"usd" valid:"required"`
		}

		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		usd, err := parseAmount(params.Usd)
		if err != nil {
			render.Error(w, err)
			return
		}

		asset, ok := assets.Find(chi.URLParam(r, "asset"))
		if !ok {
			render.Error(w, core.ErrUnsupportedAsset)
			return
		}

		amount, err := engineSrv.TokenAmountFromUsd(r.Context(), asset.ID, usd)
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, views.NewAmount(amount, asset.Decimals))
	}
}

func calculateHealthFactorHandler(engineSrv core.IEngineService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params struct {
			Debt            string `json:"debt"`
			CollateralValue string `json:"collateral_value"`
		}

		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		debt, err := parseOptional(params.Debt)
		if err != nil {
			render.Error(w, err)
			return
		}

		value, err := parseOptional(params.CollateralValue)
		if err != nil {
			render.Error(w, err)
			return
		}

		hf, err := engineSrv.CalculateHealthFactor(debt, value)
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, views.NewHealthFactor(hf, risk.IsHealthy(hf)))
	}
}
