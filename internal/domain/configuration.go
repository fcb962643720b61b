package domain

// Configuration is the content of a scenario file.
type Configuration struct {
	Name       string               `yaml:"name" json:"name"`
	Parameters SimulationParameters `yaml:"parameters" json:"parameters"`
	MonteCarlo MonteCarloSettings   `yaml:"monte_carlo" json:"monte_carlo"`
}

// MonteCarloSettings configures stochastic runs for a scenario file.
type MonteCarloSettings struct {
	Simulations       int    `yaml:"simulations" json:"simulations"`
	RegimeSwitching   *bool  `yaml:"regime_switching" json:"regime_switching"`
	Seed              int64  `yaml:"seed" json:"seed"`
	HistoricalReturns string `yaml:"historical_returns" json:"historical_returns"` // optional year,return CSV
}

// UseRegimeSwitching reports whether the regime model is selected (default on).
func (s MonteCarloSettings) UseRegimeSwitching() bool {
	return s.RegimeSwitching == nil || *s.RegimeSwitching
}

// Scenario is a named reform preset.
type Scenario struct {
	ID          string               `yaml:"id" json:"id"`
	Name        string               `yaml:"name" json:"name"`
	Description string               `yaml:"description" json:"description"`
	Params      SimulationParameters `yaml:"params" json:"params"`
}
