package calculation

import (
	"math/rand"
)

// Bounds applied to every sampled yearly return.
const (
	MinYearlyReturn = -0.30
	MaxYearlyReturn = 0.30
)

// DefaultReturnStdDev is the volatility of the flat normal return model.
const DefaultReturnStdDev = 0.08

// Regime parameters of the boom/bust model.
const (
	BoomProbability = 0.70
	boomMean        = 0.07
	boomStdDev      = 0.05
	bustMean        = 0.02
	bustStdDev      = 0.12
)

// Regime is the macro state of one simulated year.
type Regime int

const (
	RegimeBoom Regime = iota
	RegimeBust
)

func (r Regime) String() string {
	if r == RegimeBust {
		return "bust"
	}
	return "boom"
}

// ReturnGenerator produces a series of yearly fund returns. The rng is owned by
// the caller and must not be shared across goroutines.
type ReturnGenerator interface {
	Generate(rng *rand.Rand, nYears int, meanReturn float64) []float64
}

// NewReturnGenerator selects the regime-switching model or the flat normal model.
func NewReturnGenerator(regimeSwitching bool) ReturnGenerator {
	if regimeSwitching {
		return RegimeSwitchingReturns{}
	}
	return NormalReturns{StdDev: DefaultReturnStdDev}
}

// NormalReturns draws i.i.d. normal returns around meanReturn.
type NormalReturns struct {
	StdDev float64
}

func (g NormalReturns) Generate(rng *rand.Rand, nYears int, meanReturn float64) []float64 {
	out := make([]float64, nYears)
	for i := range out {
		out[i] = clampReturn(meanReturn + rng.NormFloat64()*g.StdDev)
	}
	return out
}

// RegimeSwitchingReturns draws each year from a boom or bust distribution.
// The regimes are fixed macro scenarios, so meanReturn is ignored.
type RegimeSwitchingReturns struct{}

func (g RegimeSwitchingReturns) Generate(rng *rand.Rand, nYears int, _ float64) []float64 {
	returns, _ := g.GenerateWithRegimes(rng, nYears)
	return returns
}

// GenerateWithRegimes returns the return series together with the regime of each year.
func (RegimeSwitchingReturns) GenerateWithRegimes(rng *rand.Rand, nYears int) ([]float64, []Regime) {
	returns := make([]float64, nYears)
	regimes := make([]Regime, nYears)
	for i := range returns {
		if rng.Float64() < BoomProbability {
			regimes[i] = RegimeBoom
			returns[i] = clampReturn(boomMean + rng.NormFloat64()*boomStdDev)
		} else {
			regimes[i] = RegimeBust
			returns[i] = clampReturn(bustMean + rng.NormFloat64()*bustStdDev)
		}
	}
	return returns, regimes
}

// FixedReturns replays a predetermined series. Years beyond the series repeat
// meanReturn.
type FixedReturns struct {
	Series []float64
}

func (g FixedReturns) Generate(_ *rand.Rand, nYears int, meanReturn float64) []float64 {
	out := make([]float64, nYears)
	for i := range out {
		if i < len(g.Series) {
			out[i] = clampReturn(g.Series[i])
		} else {
			out[i] = clampReturn(meanReturn)
		}
	}
	return out
}

func clampReturn(r float64) float64 {
	if r < MinYearlyReturn {
		return MinYearlyReturn
	}
	if r > MaxYearlyReturn {
		return MaxYearlyReturn
	}
	return r
}
