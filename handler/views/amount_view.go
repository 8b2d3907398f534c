package views

import (
	"dsc/pkg/fixedpoint"
	"dsc/pkg/number"

	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"
)

const displayPlaces = 8

// Amount an integer in smallest units, with a human readable rendering
type Amount struct {
	Value   string          `json:"value"`
	Display decimal.Decimal `json:"display"`
}

// NewAmount render v with decimals
func NewAmount(v *uint256.Int, decimals uint8) Amount {
	if v == nil {
		v = fixedpoint.Zero()
	}

	return Amount{
		Value:   v.Dec(),
		Display: number.Floor(fixedpoint.ToUnits(v, decimals), displayPlaces),
	}
}

// Usd 18 decimals usd value
func Usd(v *uint256.Int) Amount {
	return NewAmount(v, fixedpoint.Decimals)
}

// HealthFactor health factor view, an account without debt has no finite factor
type HealthFactor struct {
	Amount
	Infinite bool `json:"infinite"`
	Healthy  bool `json:"healthy"`
}

// NewHealthFactor render an 18 decimals health factor
func NewHealthFactor(hf *uint256.Int, healthy bool) HealthFactor {
	view := HealthFactor{
		Amount:  NewAmount(hf, fixedpoint.Decimals),
		Healthy: healthy,
	}

	if hf != nil && hf.Eq(fixedpoint.Max()) {
		view.Infinite = true
		view.Display = decimal.Zero
	}

	return view
}
