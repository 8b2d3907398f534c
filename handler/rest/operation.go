package rest

import (
	"net/http"

	"dsc/core"
	"dsc/handler/param"
	"dsc/handler/render"
	"dsc/handler/views"

	"github.com/go-chi/chi"
)

type collateralParams struct {
	TraceID string `json:"trace_id" valid:"uuid"`
	AssetID string `json:"asset_id" valid:"required"`
	Amount  string `json:"amount" valid:"required"`
}

type debtParams struct {
	TraceID string `json:"trace_id" valid:"uuid"`
	Amount  string `json:"amount" valid:"required"`
}

type combinedParams struct {
	TraceID    string `json:"trace_id" valid:"uuid"`
	AssetID    string `json:"asset_id" valid:"required"`
	Collateral string `json:"collateral" valid:"required"`
	DSC        string `json:"dsc" valid:"required"`
}

func depositHandler(engineSrv core.IEngineService) http.HandlerFunc {
	return collateralHandler(engineSrv.DepositCollateral)
}

func withdrawHandler(engineSrv core.IEngineService) http.HandlerFunc {
	return collateralHandler(engineSrv.WithdrawCollateral)
}

func mintHandler(engineSrv core.IEngineService) http.HandlerFunc {
	return debtHandler(engineSrv.MintDSC)
}

func burnHandler(engineSrv core.IEngineService) http.HandlerFunc {
	return debtHandler(engineSrv.BurnDSC)
}

func depositAndMintHandler(engineSrv core.IEngineService) http.HandlerFunc {
	return combinedHandler(engineSrv.DepositCollateralAndMintDSC)
}

func redeemForDSCHandler(engineSrv core.IEngineService) http.HandlerFunc {
	return combinedHandler(engineSrv.RedeemCollateralForDSC)
}

func collateralHandler(op collateralOperation) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params collateralParams
		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		amount, err := parseAmount(params.Amount)
		if err != nil {
			render.Error(w, err)
			return
		}

		ctx, traceID := traceContext(r.Context(), params.TraceID)
		if err := op(ctx, chi.URLParam(r, "user"), params.AssetID, amount); err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, views.OperationSuccess(traceID))
	}
}

func debtHandler(op debtOperation) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params debtParams
		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		amount, err := parseAmount(params.Amount)
		if err != nil {
			render.Error(w, err)
			return
		}

		ctx, traceID := traceContext(r.Context(), params.TraceID)
		if err := op(ctx, chi.URLParam(r, "user"), amount); err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, views.OperationSuccess(traceID))
	}
}

func combinedHandler(op combinedOperation) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params combinedParams
		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		collateral, err := parseAmount(params.Collateral)
		if err != nil {
			render.Error(w, err)
			return
		}

		dsc, err := parseAmount(params.DSC)
		if err != nil {
			render.Error(w, err)
			return
		}

		ctx, traceID := traceContext(r.Context(), params.TraceID)
		if err := op(ctx, chi.URLParam(r, "user"), params.AssetID, collateral, dsc); err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, views.OperationSuccess(traceID))
	}
}
