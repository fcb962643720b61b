package calculation

import (
	"context"
	"fmt"
	"math/rand"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/npfs/pension-simulator/internal/domain"
)

// MonteCarloConfig holds configuration for Monte Carlo simulations
type MonteCarloConfig struct {
	NumSimulations  int
	RegimeSwitching bool
	// Seed is the base seed; trial i uses Seed+i. Zero draws a fresh seed.
	Seed int64
	// Generator overrides the return model selected by RegimeSwitching.
	Generator ReturnGenerator
}

// MonteCarloSimulator resamples fund returns and aggregates depletion years.
type MonteCarloSimulator struct {
	Projector *Projector
	// Workers bounds trial concurrency; zero means runtime.NumCPU().
	Workers int
	Logger  Logger
}

// NewMonteCarloSimulator creates a simulator over a fresh projector.
func NewMonteCarloSimulator() *MonteCarloSimulator {
	return &MonteCarloSimulator{
		Projector: NewProjector(),
		Logger:    NopLogger{},
	}
}

// SetLogger sets the logger. If nil is provided, a no-op logger is used.
func (mcs *MonteCarloSimulator) SetLogger(l Logger) {
	if l == nil {
		l = NopLogger{}
	}
	mcs.Logger = l
	if mcs.Projector != nil {
		mcs.Projector.SetLogger(l)
	}
}

// Run executes cfg.NumSimulations independent trials and reduces their
// depletion years. Cancelling ctx aborts the run between trials.
func (mcs *MonteCarloSimulator) Run(ctx context.Context, params domain.SimulationParameters, cfg MonteCarloConfig) (*domain.MonteCarloSummary, error) {
	samples, err := mcs.Sample(ctx, params, cfg)
	if err != nil {
		return nil, err
	}
	summary := Summarize(samples)
	summary.RegimeSwitching = cfg.RegimeSwitching
	mcs.logger().Infof("monte carlo: %d trials, median depletion %d (90%% CI %d-%d)",
		summary.NSimulations, summary.MedianDepletionYear, summary.CI90Lower, summary.CI90Upper)
	return summary, nil
}

// Sample runs the trials and returns the raw depletion samples in trial order.
func (mcs *MonteCarloSimulator) Sample(ctx context.Context, params domain.SimulationParameters, cfg MonteCarloConfig) ([]domain.DepletionSample, error) {
	if cfg.NumSimulations <= 0 {
		return nil, ErrNoSimulations
	}
	if params.StartYear > params.EndYear {
		return nil, fmt.Errorf("%w: %d > %d", ErrInvalidHorizon, params.StartYear, params.EndYear)
	}

	generator := cfg.Generator
	if generator == nil {
		generator = NewReturnGenerator(cfg.RegimeSwitching)
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = seedFunc()
	}
	projector := mcs.Projector
	if projector == nil {
		projector = NewProjector()
	}
	workers := mcs.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	mcs.logger().Debugf("monte carlo: %d trials on %d workers, seed %d, generator %T",
		cfg.NumSimulations, workers, seed, generator)

	nYears := params.Years()
	results := make([]domain.DepletionSample, cfg.NumSimulations)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < cfg.NumSimulations; i++ {
		if err := gctx.Err(); err != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rng := rand.New(rand.NewSource(seed + int64(i)))
			returns := generator.Generate(rng, nYears, params.FundReturnRate)
			results[i] = domain.DepletionSample(projector.DepletionYear(params, returns))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("monte carlo aborted: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("monte carlo aborted: %w", err)
	}
	return results, nil
}

// Summarize reduces depletion samples to order statistics and a histogram.
// An empty sample yields a zero summary with an empty distribution.
func Summarize(samples []domain.DepletionSample) *domain.MonteCarloSummary {
	if len(samples) == 0 {
		return &domain.MonteCarloSummary{Distribution: []int{}, BinEdges: []int{}}
	}
	sorted := make([]int, len(samples))
	for i, s := range samples {
		sorted[i] = int(s)
	}
	sort.Ints(sorted)

	counts, edges := histogram(sorted)
	return &domain.MonteCarloSummary{
		MedianDepletionYear: int(percentile(sorted, 50)),
		CI90Lower:           int(percentile(sorted, 5)),
		CI90Upper:           int(percentile(sorted, 95)),
		CI50Lower:           int(percentile(sorted, 25)),
		CI50Upper:           int(percentile(sorted, 75)),
		Distribution:        counts,
		BinEdges:            edges,
		NSimulations:        len(samples),
	}
}

func (mcs *MonteCarloSimulator) logger() Logger {
	if mcs.Logger == nil {
		return NopLogger{}
	}
	return mcs.Logger
}
