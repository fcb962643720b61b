package analysis

import (
	"context"
	"math"
	"sync"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/npfs/pension-simulator/internal/calculation"
	"github.com/npfs/pension-simulator/internal/config"
	"github.com/npfs/pension-simulator/internal/domain"
)

// Cohort model assumptions.
const (
	FirstBirthYear      = 1950
	LastBirthYear       = 2025
	BirthYearStep       = 5
	ContributionStart   = 22 // age
	LifeExpectancy      = 85
	careerMidAge        = 45
	fullPensionYears    = 40
	reducedBenefitShare = 0.5 // benefit level once the fund is depleted
	contributionFloor   = 2024
	contributionCeiling = 2093

	NumClusters    = 4
	clusterRestart = 10
	clusterSeed    = 42
)

// ClusterNames labels clusters ordered by mean ROI, highest first.
var ClusterNames = map[int]string{
	0: "Beneficiary generation",
	1: "Transition generation",
	2: "Burdened generation",
	3: "Crisis generation",
}

// comparedScenarios are the reform presets used by CompareScenarios.
var comparedScenarios = []string{"current", "contribution-up", "benefit-down", "balanced"}

// GenerationAnalyzer estimates lifetime contributions and benefits by birth cohort.
type GenerationAnalyzer struct {
	Projector *calculation.Projector
}

// NewGenerationAnalyzer creates an analyzer over a fresh projector.
func NewGenerationAnalyzer() *GenerationAnalyzer {
	return &GenerationAnalyzer{Projector: calculation.NewProjector()}
}

// Analyze projects the fund for params and evaluates every birth cohort
// against the resulting depletion year.
func (a *GenerationAnalyzer) Analyze(params domain.SimulationParameters) *domain.GenerationAnalysisResult {
	projection := a.Projector.Project(params)

	var generations []domain.GenerationData
	for birthYear := FirstBirthYear; birthYear <= LastBirthYear; birthYear += BirthYearStep {
		generations = append(generations, CohortData(birthYear, params, projection.DepletionYear))
	}
	ClusterGenerations(generations)

	clusters := make(map[int]string, len(ClusterNames))
	for k, v := range ClusterNames {
		clusters[k] = v
	}
	return &domain.GenerationAnalysisResult{
		Generations: generations,
		Clusters:    clusters,
		EquityIndex: EquityIndex(generations),
	}
}

// CohortData computes the lifetime position of the cohort born in birthYear.
// Contributions run from age 22 to the pension age within the projection
// window; benefits run from the pension age to age 85 and drop to half once
// the fund is depleted. Amounts are in 10 thousand KRW.
func CohortData(birthYear int, params domain.SimulationParameters, depletionYear *int) domain.GenerationData {
	contributionFrom := max(birthYear+ContributionStart, contributionFloor)
	contributionTo := min(birthYear+params.PensionAge, contributionCeiling)
	contributionYears := float64(max(0, contributionTo-contributionFrom))

	benefitStart := birthYear + params.PensionAge
	benefitEnd := birthYear + LifeExpectancy
	replacement := params.ReplacementRate
	benefitYears := float64(max(0, benefitEnd-benefitStart))

	if depletionYear != nil {
		depleted := *depletionYear
		switch {
		case benefitStart >= depleted:
			replacement *= reducedBenefitShare
		case depleted < benefitEnd:
			benefitYears = float64(depleted-benefitStart) + float64(benefitEnd-depleted)*reducedBenefitShare
		}
	}

	income := calculation.AverageIncome(birthYear + careerMidAge)
	annualContribution := income * params.ContributionRate * 12
	totalContribution := annualContribution * contributionYears

	accrual := math.Min(contributionYears, fullPensionYears) / fullPensionYears
	annualBenefit := income * replacement * accrual * 12
	totalBenefit := annualBenefit * benefitYears

	roi := 0.0
	if totalContribution > 0 {
		roi = totalBenefit / totalContribution
	}

	return domain.GenerationData{
		BirthYear:         birthYear,
		ContributionYears: roundTo(contributionYears, 1),
		BenefitYears:      roundTo(benefitYears, 1),
		TotalContribution: math.Round(totalContribution),
		TotalBenefit:      math.Round(totalBenefit),
		ROI:               roundTo(roi, 2),
	}
}

// ClusterGenerations assigns each cohort to one of NumClusters groups by
// standardised (roi, contribution years, benefit years). Cluster 0 has the
// highest mean ROI. With fewer cohorts than clusters nothing is assigned.
func ClusterGenerations(generations []domain.GenerationData) {
	if len(generations) < NumClusters {
		return
	}

	features := make([][]float64, len(generations))
	for i, g := range generations {
		features[i] = []float64{g.ROI, g.ContributionYears, g.BenefitYears}
	}
	means, stds := columnStats(features)
	labels := kmeans(standardize(features, means, stds), NumClusters, clusterRestart, clusterSeed)

	sums := make([]float64, NumClusters)
	counts := make([]int, NumClusters)
	for i, l := range labels {
		sums[l] += generations[i].ROI
		counts[l]++
	}
	avg := make([]float64, NumClusters)
	for c := range avg {
		avg[c] = math.Inf(-1)
		if counts[c] > 0 {
			avg[c] = sums[c] / float64(counts[c])
		}
	}

	// rank clusters by mean ROI, descending; ties keep the lower label first
	rank := make([]int, NumClusters)
	for c := range rank {
		for other := range avg {
			if avg[other] > avg[c] || (avg[other] == avg[c] && other < c) {
				rank[c]++
			}
		}
	}

	for i := range generations {
		cluster := rank[labels[i]]
		name := ClusterNames[cluster]
		generations[i].Cluster = &cluster
		generations[i].ClusterName = &name
	}
}

// EquityIndex is 1 minus the coefficient of variation of positive ROIs,
// floored at 0 and rounded to three decimals. Fewer than two positive ROIs
// count as perfectly even.
func EquityIndex(generations []domain.GenerationData) float64 {
	var rois []float64
	for _, g := range generations {
		if g.ROI > 0 {
			rois = append(rois, g.ROI)
		}
	}
	if len(rois) < 2 {
		return 1.0
	}

	m, sd := stat.PopMeanStdDev(rois, nil)
	if m == 0 {
		return 0
	}
	cv := sd / m
	return roundTo(math.Max(0, 1-cv), 3)
}

// Summarize reduces a cohort analysis to its headline figures.
func Summarize(result *domain.GenerationAnalysisResult) domain.GenerationComparison {
	summary := domain.GenerationComparison{EquityIndex: result.EquityIndex}
	if len(result.Generations) == 0 {
		return summary
	}

	rois := make([]float64, len(result.Generations))
	for i, g := range result.Generations {
		rois[i] = g.ROI
	}
	summary.AvgROI = roundTo(stat.Mean(rois, nil), 2)
	summary.MinROI = roundTo(floats.Min(rois), 2)
	summary.MaxROI = roundTo(floats.Max(rois), 2)
	return summary
}

// CompareScenarios runs the cohort analysis for the main reform presets
// concurrently, keyed by preset id.
func (a *GenerationAnalyzer) CompareScenarios(ctx context.Context) (map[string]domain.GenerationComparison, error) {
	var mu sync.Mutex
	results := make(map[string]domain.GenerationComparison, len(comparedScenarios))

	g, gctx := errgroup.WithContext(ctx)
	for _, id := range comparedScenarios {
		scenario, err := config.ScenarioByID(id)
		if err != nil {
			return nil, err
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			summary := Summarize(a.Analyze(scenario.Params))
			mu.Lock()
			results[scenario.ID] = summary
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
