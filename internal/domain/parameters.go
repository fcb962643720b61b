package domain

// Reform parameters of the national pension scheme. Ranges are enforced at the
// input boundary (config.ValidateParameters); the calculation packages assume
// pre-validated values.
type SimulationParameters struct {
	ContributionRate float64 `json:"contribution_rate" yaml:"contribution_rate"` // 0.09 = 9%
	ReplacementRate  float64 `json:"replacement_rate" yaml:"replacement_rate"`   // 0.40 = 40%
	PensionAge       int     `json:"pension_age" yaml:"pension_age"`
	FundReturnRate   float64 `json:"fund_return_rate" yaml:"fund_return_rate"` // mean return when no series is given
	StartYear        int     `json:"start_year" yaml:"start_year"`
	EndYear          int     `json:"end_year" yaml:"end_year"` // inclusive
}

// Parameter bounds accepted at the input boundary.
const (
	MinContributionRate = 0.05
	MaxContributionRate = 0.20
	MinReplacementRate  = 0.20
	MaxReplacementRate  = 0.60
	MinPensionAge       = 60
	MaxPensionAge       = 70
	MinFundReturnRate   = 0.01
	MaxFundReturnRate   = 0.10
)

// DefaultParameters returns the current (2024) scheme settings.
func DefaultParameters() SimulationParameters {
	return SimulationParameters{
		ContributionRate: 0.09,
		ReplacementRate:  0.40,
		PensionAge:       65,
		FundReturnRate:   0.055,
		StartYear:        2024,
		EndYear:          2093,
	}
}

// Years returns the number of simulated years (inclusive bounds).
func (p SimulationParameters) Years() int {
	return p.EndYear - p.StartYear + 1
}

// NotDepletedYear is the sentinel depletion year used when the fund survives
// the whole horizon.
func (p SimulationParameters) NotDepletedYear() int {
	return p.EndYear + 1
}
