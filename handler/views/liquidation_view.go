package views

import (
	"dsc/core"
	"dsc/pkg/fixedpoint"
)

// Liquidation liquidation result view
type Liquidation struct {
	TraceID           string       `json:"trace_id"`
	Liquidator        string       `json:"liquidator"`
	UserID            string       `json:"user_id"`
	AssetID           string       `json:"asset_id"`
	DebtCovered       Amount       `json:"debt_covered"`
	BaseCollateral    Amount       `json:"base_collateral"`
	Bonus             Amount       `json:"bonus"`
	Seized            Amount       `json:"seized"`
	StartHealthFactor HealthFactor `json:"start_health_factor"`
	EndHealthFactor   HealthFactor `json:"end_health_factor"`
}

// LiquidationView render l, collateral amounts use the seized asset's decimals
func LiquidationView(l *core.Liquidation, asset *core.Asset) Liquidation {
	decimals := uint8(fixedpoint.Decimals)
	if asset != nil {
		decimals = asset.Decimals
	}

	return Liquidation{
		TraceID:           l.TraceID,
		Liquidator:        l.Liquidator,
		UserID:            l.UserID,
		AssetID:           l.AssetID,
		DebtCovered:       Usd(l.DebtCovered),
		BaseCollateral:    NewAmount(l.BaseCollateral, decimals),
		Bonus:             NewAmount(l.Bonus, decimals),
		Seized:            NewAmount(l.Seized, decimals),
		StartHealthFactor: NewHealthFactor(l.StartHealthFactor, false),
		EndHealthFactor:   NewHealthFactor(l.EndHealthFactor, !l.EndHealthFactor.Lt(fixedpoint.Precision)),
	}
}
