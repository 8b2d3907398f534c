package views

import (
	"dsc/core"
	"dsc/pkg/fixedpoint"
	"dsc/pkg/risk"
)

// Collateral collateral balance view
type Collateral struct {
	AssetID string `json:"asset_id"`
	Symbol  string `json:"symbol"`
	Amount  Amount `json:"amount"`
}

// Account position view
type Account struct {
	UserID          string        `json:"user_id"`
	TotalDebt       Amount        `json:"total_debt"`
	CollateralValue Amount        `json:"collateral_value"`
	HealthFactor    HealthFactor  `json:"health_factor"`
	Collaterals     []*Collateral `json:"collaterals"`
}

// AccountView render account information, records of unknown assets are dropped
func AccountView(info *core.AccountInformation, assets *core.AssetSet) Account {
	view := Account{
		UserID:          info.UserID,
		TotalDebt:       Usd(info.TotalDebt),
		CollateralValue: Usd(info.CollateralValue),
		HealthFactor:    NewHealthFactor(info.HealthFactor, risk.IsHealthy(info.HealthFactor)),
		Collaterals:     []*Collateral{},
	}

	for _, c := range info.Collaterals {
		asset, ok := assets.Find(c.AssetID)
		if !ok {
			continue
		}

		amount, err := fixedpoint.FromDecimal(c.Amount)
		if err != nil {
			continue
		}

		view.Collaterals = append(view.Collaterals, &Collateral{
			AssetID: asset.ID,
			Symbol:  asset.Symbol,
			Amount:  NewAmount(amount, asset.Decimals),
		})
	}

	return view
}
