package rest

import (
	"net/http"

	"dsc/core"
	"dsc/handler/param"
	"dsc/handler/render"
	"dsc/handler/views"
)

func liquidateHandler(engineSrv core.IEngineService, assets *core.AssetSet) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params struct {
			TraceID     string `json:"trace_id" valid:"uuid"`
			Liquidator  string `json:"liquidator" valid:"required"`
			UserID      string `json:"user_id" valid:"required"`
			AssetID     string `json:"asset_id" valid:"required"`
			DebtToCover string `json:"debt_to_cover" valid:"required"`
		}

		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		debtToCover, err := parseAmount(params.DebtToCover)
		if err != nil {
			render.Error(w, err)
			return
		}

		ctx, _ := traceContext(r.Context(), params.TraceID)
		l, err := engineSrv.Liquidate(ctx, params.Liquidator, params.UserID, params.AssetID, debtToCover)
		if err != nil {
			render.Error(w, err)
			return
		}

		asset, _ := assets.Find(l.AssetID)
		render.JSON(w, views.LiquidationView(l, asset))
	}
}
