package number

import (
	"testing"

	"github.com/bmizerany/assert"
)

func TestCeil(t *testing.T) {
	data := map[string]string{
		"0.10304":     "0.11",
		"0.100000001": "0.11",
		"0.108":       "0.11",
		"1.25":        "1.25",
	}

	for k, v := range data {
		t.Run(k, func(t *testing.T) {
			c := Ceil(Decimal(k), 2)
			assert.Equal(t, v, c.String(), "should be ceil")
		})
	}
}

func TestFloor(t *testing.T) {
	data := map[string]string{
		"0.10304":              "0.1",
		"0.108":                "0.1",
		"0.9375":               "0.93",
		"1.325000000000000001": "1.32",
	}

	for k, v := range data {
		t.Run(k, func(t *testing.T) {
			c := Floor(Decimal(k), 2)
			assert.Equal(t, v, c.String(), "should be floor")
		})
	}
}

func TestDecimalInvalid(t *testing.T) {
	assert.Equal(t, "0", Decimal("abc").String())
}
