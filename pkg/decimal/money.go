package decimal

import (
	"github.com/shopspring/decimal"
)

// ReportingPlaces is the number of decimals kept for reported fund figures.
const ReportingPlaces = 1

// Money is an amount in the reporting unit (trillion KRW).
type Money struct {
	decimal.Decimal
}

// NewMoney creates a new Money instance from a float64
func NewMoney(value float64) Money {
	return Money{decimal.NewFromFloat(value)}
}

// Round rounds to the reporting precision (half away from zero).
func (m Money) Round() Money {
	return Money{m.Decimal.Round(ReportingPlaces)}
}

// Float64 returns the nearest float64 value.
func (m Money) Float64() float64 {
	return m.Decimal.InexactFloat64()
}

// RoundReport rounds a float amount to the reporting precision.
func RoundReport(value float64) float64 {
	return NewMoney(value).Round().Float64()
}

// String returns the amount with reporting precision.
func (m Money) String() string {
	return m.Decimal.StringFixed(ReportingPlaces)
}

// Format renders the amount with its unit, e.g. "1036.0 tn KRW".
func (m Money) Format() string {
	return m.String() + " tn KRW"
}
