package fixedpoint

import (
	"fmt"

	"dsc/core"

	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"
)

// Decimals internal scale of prices, usd values and pegged units
const Decimals = 18

// StorageDigits width of the decimal(65,0) ledger columns
const StorageDigits = 65

var (
	// Precision 1e18
	Precision = uint256.NewInt(1_000_000_000_000_000_000)

	pow10 [core.MaxAssetDecimals + 1]*uint256.Int
)

func init() {
	pow10[0] = uint256.NewInt(1)
	ten := uint256.NewInt(10)
	for i := 1; i < len(pow10); i++ {
		pow10[i] = new(uint256.Int).Mul(pow10[i-1], ten)
	}
}

// Max the largest representable value
func Max() *uint256.Int {
	return new(uint256.Int).SetAllOne()
}

// Zero new zero value
func Zero() *uint256.Int {
	return new(uint256.Int)
}

// Pow10 10^n, n <= 77
func Pow10(n uint8) (*uint256.Int, error) {
	if int(n) >= len(pow10) {
		return nil, core.ErrArithmeticOverflow
	}

	return pow10[n].Clone(), nil
}

// Storable rejects values the ledger columns cannot hold
func Storable(v *uint256.Int) error {
	if v.Cmp(pow10[StorageDigits]) >= 0 {
		return core.ErrArithmeticOverflow
	}

	return nil
}

// Add x + y
func Add(x, y *uint256.Int) (*uint256.Int, error) {
	z, overflow := new(uint256.Int).AddOverflow(x, y)
	if overflow {
		return nil, core.ErrArithmeticOverflow
	}

	return z, nil
}

// Sub x - y, never wraps
func Sub(x, y *uint256.Int) (*uint256.Int, error) {
	z, underflow := new(uint256.Int).SubOverflow(x, y)
	if underflow {
		return nil, core.ErrArithmeticUnderflow
	}

	return z, nil
}

// Mul x * y
func Mul(x, y *uint256.Int) (*uint256.Int, error) {
	z, overflow := new(uint256.Int).MulOverflow(x, y)
	if overflow {
		return nil, core.ErrArithmeticOverflow
	}

	return z, nil
}

// MulDiv x * y / d rounded down, the product is kept in 512 bits
func MulDiv(x, y, d *uint256.Int) (*uint256.Int, error) {
	if d.IsZero() {
		return nil, core.ErrDivisionByZero
	}

	z, overflow := new(uint256.Int).MulDivOverflow(x, y, d)
	if overflow {
		return nil, core.ErrArithmeticOverflow
	}

	return z, nil
}

// FromDecimal convert a non-negative integer decimal
func FromDecimal(d decimal.Decimal) (*uint256.Int, error) {
	if d.IsNegative() {
		return nil, core.ErrArithmeticUnderflow
	}

	if !d.Equal(d.Truncate(0)) {
		return nil, fmt.Errorf("fixedpoint: %s is not an integer", d)
	}

	v, overflow := uint256.FromBig(d.BigInt())
	if overflow {
		return nil, core.ErrArithmeticOverflow
	}

	return v, nil
}

// ToDecimal convert to an integer decimal
func ToDecimal(v *uint256.Int) decimal.Decimal {
	if v == nil {
		return decimal.Zero
	}

	return decimal.NewFromBigInt(v.ToBig(), 0)
}

// FromUnits scale a human amount like "1.5" by 10^decimals, extra digits are rejected
func FromUnits(d decimal.Decimal, decimals uint8) (*uint256.Int, error) {
	return FromDecimal(d.Shift(int32(decimals)))
}

// ToUnits human amount of v with decimals
func ToUnits(v *uint256.Int, decimals uint8) decimal.Decimal {
	return ToDecimal(v).Shift(-int32(decimals))
}

// Parse parse a base-10 integer string
func Parse(s string) (*uint256.Int, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, err
	}

	return FromDecimal(d)
}
