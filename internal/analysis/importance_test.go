package analysis

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/npfs/pension-simulator/internal/calculation"
	"github.com/npfs/pension-simulator/internal/domain"
)

func TestTrainImportanceModel(t *testing.T) {
	model, err := TrainImportanceModel(context.Background(), calculation.NewProjector(), DefaultTrainingSamples, DefaultTrainingSeed)
	require.NoError(t, err)

	total := 0.0
	for _, name := range FeatureNames {
		v := model.Importance[name]
		assert.Greater(t, v, 0.1, name)
		total += v
	}
	assert.InDelta(t, 1.0, total, 1e-9)

	// fund return dominates the other levers
	for _, name := range FeatureNames[:3] {
		assert.Greater(t, model.Importance["fund_return_rate"], model.Importance[name], name)
	}

	// Coefficient signs follow the direction of each lever.
	assert.Greater(t, model.Coefficients[0], 0.0)
	assert.Less(t, model.Coefficients[1], 0.0)
	assert.Greater(t, model.Coefficients[2], 0.0)
	assert.Greater(t, model.Coefficients[3], 0.0)

	// The surrogate lands near the projected depletion year in the middle of
	// the training box.
	mid := domain.DefaultParameters()
	mid.ContributionRate, mid.ReplacementRate, mid.PensionAge, mid.FundReturnRate = 0.12, 0.425, 66, 0.055
	actual := calculation.NewProjector().DepletionYear(mid, nil)
	assert.InDelta(t, float64(actual), model.Predict(mid), 10)
}

func TestTrainImportanceModelIsDeterministic(t *testing.T) {
	p := calculation.NewProjector()
	a, err := TrainImportanceModel(context.Background(), p, 400, 7)
	require.NoError(t, err)
	b, err := TrainImportanceModel(context.Background(), p, 400, 7)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestTrainImportanceModelTooFewSamples(t *testing.T) {
	_, err := TrainImportanceModel(context.Background(), calculation.NewProjector(), 3, 1)
	assert.Error(t, err)
}

func TestModelStoreCachesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "models", "importance.yaml")

	store := NewModelStore(path)
	store.Samples = 500
	trained, err := store.Ensure(context.Background())
	require.NoError(t, err)
	require.FileExists(t, path)

	again, err := store.Ensure(context.Background())
	require.NoError(t, err)
	assert.Same(t, trained, again)

	// A fresh store reads the cache instead of training.
	cached := NewModelStore(path)
	cached.Samples = 0
	loaded, err := cached.Ensure(context.Background())
	require.NoError(t, err)
	for _, name := range FeatureNames {
		assert.InDelta(t, trained.Importance[name], loaded.Importance[name], 1e-12, name)
	}
	assert.Equal(t, 500, loaded.Samples)
}

func TestModelStoreRetrainsOnCorruptCache(t *testing.T) {
	path := filepath.Join(t.TempDir(), "importance.yaml")
	require.NoError(t, os.WriteFile(path, []byte("features: [only_one]\n"), 0o644))

	store := NewModelStore(path)
	store.Samples = 200
	model, err := store.Ensure(context.Background())
	require.NoError(t, err)
	assert.Len(t, model.Importance, len(FeatureNames))

	reloaded, err := loadModel(path)
	require.NoError(t, err)
	assert.Equal(t, 200, reloaded.Samples)
}

func TestModelStoreRetriesAfterFailure(t *testing.T) {
	store := NewModelStore("")
	store.Samples = 200

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := store.Ensure(ctx)
	require.Error(t, err)

	model, err := store.Ensure(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, model)
}

func TestLeastSquares(t *testing.T) {
	x, err := leastSquares([][]float64{{2, 1}, {1, 3}}, []float64{3, 5})
	require.NoError(t, err)
	assert.InDelta(t, 0.8, x[0], 1e-12)
	assert.InDelta(t, 1.4, x[1], 1e-12)

	// overdetermined but consistent
	x, err = leastSquares([][]float64{{1, 0}, {0, 1}, {1, 1}}, []float64{2, 3, 5})
	require.NoError(t, err)
	assert.InDelta(t, 2.0, x[0], 1e-9)
	assert.InDelta(t, 3.0, x[1], 1e-9)

	_, err = leastSquares([][]float64{{1, 2}, {2, 4}}, []float64{1, 2})
	assert.Error(t, err)

	_, err = leastSquares(nil, nil)
	assert.Error(t, err)
}
