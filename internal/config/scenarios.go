package config

import (
	"fmt"

	"github.com/npfs/pension-simulator/internal/domain"
)

// Scenarios returns the named reform presets in display order.
func Scenarios() []domain.Scenario {
	base := domain.DefaultParameters()
	with := func(mutate func(p *domain.SimulationParameters)) domain.SimulationParameters {
		p := base
		mutate(&p)
		return p
	}

	return []domain.Scenario{
		{
			ID:          "current",
			Name:        "Status quo",
			Description: "Keep the current scheme unchanged",
			Params:      base,
		},
		{
			ID:          "contribution-up",
			Name:        "Contribution increase",
			Description: "Raise the contribution rate to 13%, keep the replacement rate",
			Params:      with(func(p *domain.SimulationParameters) { p.ContributionRate = 0.13 }),
		},
		{
			ID:          "benefit-down",
			Name:        "Benefit adjustment",
			Description: "Lower the replacement rate to 35%, keep the contribution rate",
			Params:      with(func(p *domain.SimulationParameters) { p.ReplacementRate = 0.35 }),
		},
		{
			ID:          "balanced",
			Name:        "Balanced reform",
			Description: "Contribution rate 12%, replacement rate 43% (pay more, receive more)",
			Params: with(func(p *domain.SimulationParameters) {
				p.ContributionRate = 0.12
				p.ReplacementRate = 0.43
			}),
		},
		{
			ID:          "pension-age-up",
			Name:        "Pension age increase",
			Description: "Raise the pension starting age to 68",
			Params:      with(func(p *domain.SimulationParameters) { p.PensionAge = 68 }),
		},
	}
}

// ScenarioByID looks up a reform preset.
func ScenarioByID(id string) (domain.Scenario, error) {
	for _, s := range Scenarios() {
		if s.ID == id {
			return s, nil
		}
	}
	return domain.Scenario{}, fmt.Errorf("unknown scenario %q", id)
}
