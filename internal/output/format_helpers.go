package output

import (
	"strconv"

	"github.com/shopspring/decimal"

	pkgdecimal "github.com/npfs/pension-simulator/pkg/decimal"
)

// FormatTrillion formats a fund figure in trillion KRW with one decimal.
func FormatTrillion(amount float64) string {
	return pkgdecimal.NewMoney(amount).Round().Format()
}

// FormatRate formats a fraction as a percentage with one decimal, e.g. 0.09 -> "9.0%".
func FormatRate(rate float64) string {
	return decimal.NewFromFloat(rate).Mul(decimal.NewFromInt(100)).StringFixed(1) + "%"
}

// FormatYear renders an optional year; nil means the event did not happen.
func FormatYear(year *int, none string) string {
	if year == nil {
		return none
	}
	return strconv.Itoa(*year)
}
