package domain

// DepletionSample is the outcome of one Monte Carlo trial: the depletion year,
// or EndYear+1 when the fund survived the horizon.
type DepletionSample int

// MonteCarloSummary reduces the depletion samples of a Monte Carlo run.
type MonteCarloSummary struct {
	MedianDepletionYear int `json:"median_depletion_year"`
	CI90Lower           int `json:"ci_90_lower"` // 5th percentile
	CI90Upper           int `json:"ci_90_upper"` // 95th percentile
	CI50Lower           int `json:"ci_50_lower"` // 25th percentile
	CI50Upper           int `json:"ci_50_upper"` // 75th percentile

	// Distribution holds histogram counts; bin i covers [BinEdges[i], BinEdges[i+1]).
	// The last bin also includes its right edge.
	Distribution []int `json:"distribution"`
	BinEdges     []int `json:"bin_edges"`

	NSimulations    int  `json:"n_simulations"`
	RegimeSwitching bool `json:"regime_switching"`
}

// DepletedShare returns the fraction of samples that depleted before the
// sentinel year.
func DepletedShare(samples []DepletionSample, sentinel int) float64 {
	if len(samples) == 0 {
		return 0
	}
	depleted := 0
	for _, s := range samples {
		if int(s) < sentinel {
			depleted++
		}
	}
	return float64(depleted) / float64(len(samples))
}
