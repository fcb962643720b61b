package analysis

import (
	"context"
	"fmt"
	"math"

	"github.com/npfs/pension-simulator/internal/calculation"
	"github.com/npfs/pension-simulator/internal/domain"
)

// Feature effect keys reported by Sensitivity.Analyze.
const (
	EffectContributionUp  = "contribution_rate_1pp"
	EffectReplacementDown = "replacement_rate_1pp_down"
	EffectPensionAgeUp    = "pension_age_1yr"
	EffectFundReturnUp    = "fund_return_rate_1pp"
)

type perturbation struct {
	key    string
	mutate func(p *domain.SimulationParameters)
}

// One-step reform levers, each applied alone to the caller's parameters.
var perturbations = []perturbation{
	{EffectContributionUp, func(p *domain.SimulationParameters) { p.ContributionRate += 0.01 }},
	{EffectReplacementDown, func(p *domain.SimulationParameters) { p.ReplacementRate -= 0.01 }},
	{EffectPensionAgeUp, func(p *domain.SimulationParameters) { p.PensionAge++ }},
	{EffectFundReturnUp, func(p *domain.SimulationParameters) { p.FundReturnRate += 0.01 }},
}

// Sensitivity measures how single reform levers move the depletion year.
type Sensitivity struct {
	Projector *calculation.Projector
	Models    *ModelStore
}

// NewSensitivity creates a sensitivity analysis backed by the given model store.
func NewSensitivity(models *ModelStore) *Sensitivity {
	return &Sensitivity{Projector: calculation.NewProjector(), Models: models}
}

// FeatureEffects returns the depletion-year change of each lever relative to
// params. Perturbed values may leave the validated ranges; the projection is
// still well defined there.
func (s *Sensitivity) FeatureEffects(params domain.SimulationParameters) map[string]int {
	base := s.Projector.DepletionYear(params, nil)
	effects := make(map[string]int, len(perturbations))
	for _, pt := range perturbations {
		changed := params
		pt.mutate(&changed)
		effects[pt.key] = s.Projector.DepletionYear(changed, nil) - base
	}
	return effects
}

// Analyze combines the local lever effects with the global feature importance.
func (s *Sensitivity) Analyze(ctx context.Context, params domain.SimulationParameters) (*domain.SensitivityResult, error) {
	model, err := s.Models.Ensure(ctx)
	if err != nil {
		return nil, fmt.Errorf("importance model: %w", err)
	}

	importance := make(map[string]float64, len(model.Importance))
	for k, v := range model.Importance {
		importance[k] = v
	}

	return &domain.SensitivityResult{
		FeatureImportance:      importance,
		FeatureEffects:         s.FeatureEffects(params),
		BaseDepletionYear:      s.Projector.DepletionYear(domain.DefaultParameters(), nil),
		CurrentDepletionYear:   s.Projector.DepletionYear(params, nil),
		PredictedDepletionYear: int(math.Round(model.Predict(params))),
	}, nil
}
