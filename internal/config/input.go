package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/npfs/pension-simulator/internal/domain"
)

// ErrParameterOutOfRange is returned when a reform parameter falls outside
// the range the population model is calibrated for.
var ErrParameterOutOfRange = errors.New("parameter out of range")

// MaxHorizonYears bounds the projection window accepted from user input.
const MaxHorizonYears = 200

// DefaultSimulations is the Monte Carlo trial count used when none is configured.
const DefaultSimulations = 1000

// InputParser handles parsing of scenario configuration files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a scenario configuration from a YAML file. Fields missing
// from the file take the current scheme defaults.
func (ip *InputParser) LoadFromFile(filename string) (*domain.Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes YAML content over the defaults and validates it.
func (ip *InputParser) Parse(data []byte) (*domain.Configuration, error) {
	config := DefaultConfiguration()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if config.MonteCarlo.Simulations == 0 {
		config.MonteCarlo.Simulations = DefaultSimulations
	}

	if err := ip.ValidateConfiguration(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return config, nil
}

// DefaultConfiguration returns the configuration used when no file is given.
func DefaultConfiguration() *domain.Configuration {
	return &domain.Configuration{
		Name:       "current",
		Parameters: domain.DefaultParameters(),
		MonteCarlo: domain.MonteCarloSettings{Simulations: DefaultSimulations},
	}
}

// ValidateConfiguration validates the loaded configuration
func (ip *InputParser) ValidateConfiguration(config *domain.Configuration) error {
	if err := ValidateParameters(config.Parameters); err != nil {
		return fmt.Errorf("parameters: %w", err)
	}
	if config.MonteCarlo.Simulations < 0 {
		return fmt.Errorf("monte_carlo.simulations must not be negative, got %d", config.MonteCarlo.Simulations)
	}
	if path := config.MonteCarlo.HistoricalReturns; path != "" {
		if _, err := os.Stat(path); err != nil {
			return fmt.Errorf("monte_carlo.historical_returns: %w", err)
		}
	}
	return nil
}

// ValidateParameters checks every reform parameter against its accepted range.
// Errors wrap ErrParameterOutOfRange.
func ValidateParameters(p domain.SimulationParameters) error {
	if p.ContributionRate < domain.MinContributionRate || p.ContributionRate > domain.MaxContributionRate {
		return fmt.Errorf("%w: contribution_rate %.4f not in [%.2f, %.2f]",
			ErrParameterOutOfRange, p.ContributionRate, domain.MinContributionRate, domain.MaxContributionRate)
	}
	if p.ReplacementRate < domain.MinReplacementRate || p.ReplacementRate > domain.MaxReplacementRate {
		return fmt.Errorf("%w: replacement_rate %.4f not in [%.2f, %.2f]",
			ErrParameterOutOfRange, p.ReplacementRate, domain.MinReplacementRate, domain.MaxReplacementRate)
	}
	if p.PensionAge < domain.MinPensionAge || p.PensionAge > domain.MaxPensionAge {
		return fmt.Errorf("%w: pension_age %d not in [%d, %d]",
			ErrParameterOutOfRange, p.PensionAge, domain.MinPensionAge, domain.MaxPensionAge)
	}
	if p.FundReturnRate < domain.MinFundReturnRate || p.FundReturnRate > domain.MaxFundReturnRate {
		return fmt.Errorf("%w: fund_return_rate %.4f not in [%.2f, %.2f]",
			ErrParameterOutOfRange, p.FundReturnRate, domain.MinFundReturnRate, domain.MaxFundReturnRate)
	}
	if p.StartYear > p.EndYear {
		return fmt.Errorf("%w: start_year %d is after end_year %d", ErrParameterOutOfRange, p.StartYear, p.EndYear)
	}
	if p.Years() > MaxHorizonYears {
		return fmt.Errorf("%w: projection spans %d years, at most %d allowed", ErrParameterOutOfRange, p.Years(), MaxHorizonYears)
	}
	return nil
}
