package risk

import (
	"dsc/pkg/fixedpoint"

	"github.com/holiman/uint256"
)

const (
	// LiquidationThreshold percent of collateral value counted toward solvency, 200% overcollateralized
	LiquidationThreshold = 50
	// LiquidationBonus percent of extra collateral paid to liquidators
	LiquidationBonus = 10
	// LiquidationPrecision denominator of threshold and bonus
	LiquidationPrecision = 100
)

var (
	threshold = uint256.NewInt(LiquidationThreshold)
	bonus     = uint256.NewInt(LiquidationBonus)
	precision = uint256.NewInt(LiquidationPrecision)
)

// MinHealthFactor 1.0 with 18 decimals
func MinHealthFactor() *uint256.Int {
	return fixedpoint.Precision.Clone()
}

// UsdValue value of amount smallest units, price18 is the usd price of one whole unit with 18 decimals
//
// value = amount * price18 / 10^decimals
func UsdValue(amount, price18 *uint256.Int, decimals uint8) (*uint256.Int, error) {
	scale, err := fixedpoint.Pow10(decimals)
	if err != nil {
		return nil, err
	}

	return fixedpoint.MulDiv(amount, price18, scale)
}

// TokenAmountFromUsd smallest units worth usd (18 decimals), rounded down
//
// amount = usd * 10^decimals / price18
func TokenAmountFromUsd(usd, price18 *uint256.Int, decimals uint8) (*uint256.Int, error) {
	scale, err := fixedpoint.Pow10(decimals)
	if err != nil {
		return nil, err
	}

	return fixedpoint.MulDiv(usd, scale, price18)
}

// AdjustedCollateral value * threshold / precision
func AdjustedCollateral(value *uint256.Int) (*uint256.Int, error) {
	return fixedpoint.MulDiv(value, threshold, precision)
}

// HealthFactor adjusted collateral * 1e18 / debt, max uint256 when there is no debt
func HealthFactor(debt, collateralValue *uint256.Int) (*uint256.Int, error) {
	if debt.IsZero() {
		return fixedpoint.Max(), nil
	}

	adjusted, err := AdjustedCollateral(collateralValue)
	if err != nil {
		return nil, err
	}

	return fixedpoint.MulDiv(adjusted, fixedpoint.Precision, debt)
}

// IsHealthy hf >= 1e18
func IsHealthy(hf *uint256.Int) bool {
	return !hf.Lt(fixedpoint.Precision)
}

// LiquidationSeize split the collateral a liquidator receives for base units
//
// returns the bonus and base + bonus
func LiquidationSeize(base *uint256.Int) (*uint256.Int, *uint256.Int, error) {
	b, err := fixedpoint.MulDiv(base, bonus, precision)
	if err != nil {
		return nil, nil, err
	}

	total, err := fixedpoint.Add(base, b)
	if err != nil {
		return nil, nil, err
	}

	return b, total, nil
}
