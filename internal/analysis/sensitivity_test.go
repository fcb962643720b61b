package analysis

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/npfs/pension-simulator/internal/domain"
)

func TestFeatureEffectsAtDefaults(t *testing.T) {
	s := NewSensitivity(NewModelStore(""))
	effects := s.FeatureEffects(domain.DefaultParameters())

	assert.Equal(t, map[string]int{
		EffectContributionUp:  4,
		EffectReplacementDown: 2,
		EffectPensionAgeUp:    3,
		EffectFundReturnUp:    7,
	}, effects)
}

func TestAnalyze(t *testing.T) {
	store := NewModelStore("")
	s := NewSensitivity(store)

	params := domain.DefaultParameters()
	params.ContributionRate = 0.13

	result, err := s.Analyze(context.Background(), params)
	require.NoError(t, err)

	assert.Equal(t, 2056, result.BaseDepletionYear)
	assert.Equal(t, 2079, result.CurrentDepletionYear)

	model, err := store.Ensure(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int(math.Round(model.Predict(params))), result.PredictedDepletionYear)
	assert.InDelta(t, 2070, result.PredictedDepletionYear, 30)
	assert.Len(t, result.FeatureEffects, 4)
	assert.Len(t, result.FeatureImportance, 4)
	for _, name := range FeatureNames {
		assert.Contains(t, result.FeatureImportance, name)
	}
}

func TestAnalyzeUsesCallerHorizon(t *testing.T) {
	s := NewSensitivity(NewModelStore(""))

	params := domain.DefaultParameters()
	params.EndYear = 2050
	effects := s.FeatureEffects(params)

	// The fund survives a horizon ending in 2050 with or without any lever.
	for key, effect := range effects {
		assert.Zero(t, effect, key)
	}
}

func TestAnalyzeModelFailure(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewSensitivity(NewModelStore("")).Analyze(ctx, domain.DefaultParameters())
	assert.ErrorIs(t, err, context.Canceled)
}
