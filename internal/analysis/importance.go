package analysis

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"sync"

	"gonum.org/v1/gonum/stat"
	"gopkg.in/yaml.v3"

	"github.com/npfs/pension-simulator/internal/calculation"
	"github.com/npfs/pension-simulator/internal/domain"
)

// Feature names of the importance model, in design-matrix order.
var FeatureNames = []string{"contribution_rate", "replacement_rate", "pension_age", "fund_return_rate"}

// Training defaults.
const (
	DefaultTrainingSamples = 5000
	DefaultTrainingSeed    = 42
)

// ImportanceModel is a linear surrogate of the depletion year fitted on
// standardised reform parameters.
type ImportanceModel struct {
	Features     []string           `yaml:"features"`
	Means        []float64          `yaml:"means"`
	StdDevs      []float64          `yaml:"std_devs"`
	Intercept    float64            `yaml:"intercept"`
	Coefficients []float64          `yaml:"coefficients"` // per standardised feature
	Importance   map[string]float64 `yaml:"importance"`   // sums to 1
	Samples      int                `yaml:"samples"`
	Seed         int64              `yaml:"seed"`
}

// Predict estimates the depletion year of params.
func (m *ImportanceModel) Predict(params domain.SimulationParameters) float64 {
	x := featureVector(params)
	y := m.Intercept
	for j := range x {
		y += m.Coefficients[j] * (x[j] - m.Means[j]) / m.StdDevs[j]
	}
	return y
}

func (m *ImportanceModel) validate() error {
	n := len(FeatureNames)
	if len(m.Features) != n || len(m.Means) != n || len(m.StdDevs) != n || len(m.Coefficients) != n {
		return fmt.Errorf("model has %d features, want %d", len(m.Coefficients), n)
	}
	for i, name := range FeatureNames {
		if m.Features[i] != name {
			return fmt.Errorf("feature %d is %q, want %q", i, m.Features[i], name)
		}
	}
	return nil
}

func featureVector(p domain.SimulationParameters) []float64 {
	return []float64{p.ContributionRate, p.ReplacementRate, float64(p.PensionAge), p.FundReturnRate}
}

// TrainImportanceModel draws n random reform scenarios, projects their
// depletion years, and fits ordinary least squares on standardised features.
func TrainImportanceModel(ctx context.Context, projector *calculation.Projector, n int, seed int64) (*ImportanceModel, error) {
	if n < len(FeatureNames)+1 {
		return nil, fmt.Errorf("need at least %d samples, got %d", len(FeatureNames)+1, n)
	}

	rng := rand.New(rand.NewSource(seed))
	X := make([][]float64, n)
	y := make([]float64, n)
	for i := 0; i < n; i++ {
		if i%500 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		params := domain.DefaultParameters()
		params.ContributionRate = 0.09 + rng.Float64()*0.06
		params.ReplacementRate = 0.35 + rng.Float64()*0.15
		params.PensionAge = 63 + rng.Intn(7)
		params.FundReturnRate = 0.03 + rng.Float64()*0.05

		X[i] = featureVector(params)
		y[i] = float64(projector.DepletionYear(params, nil))
	}

	means, stds := columnStats(X)
	yMean := stat.Mean(y, nil)
	centered := make([]float64, n)
	for i, v := range y {
		centered[i] = v - yMean
	}
	beta, err := leastSquares(standardize(X, means, stds), centered)
	if err != nil {
		return nil, fmt.Errorf("least squares: %w", err)
	}

	k := len(FeatureNames)

	total := 0.0
	for _, b := range beta {
		total += math.Abs(b)
	}
	importance := make(map[string]float64, k)
	for j, name := range FeatureNames {
		if total > 0 {
			importance[name] = math.Abs(beta[j]) / total
		} else {
			importance[name] = 0
		}
	}

	return &ImportanceModel{
		Features:     append([]string(nil), FeatureNames...),
		Means:        means,
		StdDevs:      stds,
		Intercept:    yMean,
		Coefficients: beta,
		Importance:   importance,
		Samples:      n,
		Seed:         seed,
	}, nil
}

// ModelStore caches the importance model in memory and on disk. The first
// Ensure call loads the cache file or trains and writes it; later calls reuse
// the result. A failed initialisation is retried on the next call.
type ModelStore struct {
	Path      string
	Samples   int
	Seed      int64
	Projector *calculation.Projector
	Logger    calculation.Logger

	mu    sync.Mutex
	model *ImportanceModel
}

// NewModelStore creates a store backed by the cache file at path. An empty
// path keeps the model in memory only.
func NewModelStore(path string) *ModelStore {
	return &ModelStore{
		Path:      path,
		Samples:   DefaultTrainingSamples,
		Seed:      DefaultTrainingSeed,
		Projector: calculation.NewProjector(),
		Logger:    calculation.NopLogger{},
	}
}

// Ensure returns the importance model, loading or training it on first use.
func (s *ModelStore) Ensure(ctx context.Context) (*ImportanceModel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.model != nil {
		return s.model, nil
	}

	if s.Path != "" {
		model, err := loadModel(s.Path)
		switch {
		case err == nil:
			s.logger().Debugf("importance model loaded from %s", s.Path)
			s.model = model
			return model, nil
		case errors.Is(err, fs.ErrNotExist):
			// first run
		default:
			s.logger().Warnf("ignoring importance model cache %s: %v", s.Path, err)
		}
	}

	s.logger().Infof("training importance model on %d scenarios", s.Samples)
	model, err := TrainImportanceModel(ctx, s.Projector, s.Samples, s.Seed)
	if err != nil {
		return nil, err
	}

	if s.Path != "" {
		if err := saveModel(s.Path, model); err != nil {
			s.logger().Warnf("failed to cache importance model: %v", err)
		} else {
			s.logger().Infof("importance model saved to %s", s.Path)
		}
	}
	s.model = model
	return model, nil
}

func (s *ModelStore) logger() calculation.Logger {
	if s.Logger == nil {
		return calculation.NopLogger{}
	}
	return s.Logger
}

func loadModel(path string) (*ImportanceModel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var model ImportanceModel
	if err := yaml.Unmarshal(data, &model); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := model.validate(); err != nil {
		return nil, err
	}
	return &model, nil
}

func saveModel(path string, model *ImportanceModel) error {
	data, err := yaml.Marshal(model)
	if err != nil {
		return fmt.Errorf("failed to encode model: %w", err)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", path, err)
	}
	return nil
}
