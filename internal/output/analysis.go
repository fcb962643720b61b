package output

import (
	"sort"

	"github.com/npfs/pension-simulator/internal/domain"
)

// ScenarioProjection pairs a preset with its projection.
type ScenarioProjection struct {
	Scenario domain.Scenario
	Result   *domain.ProjectionResult
}

// Recommendation encapsulates the selection result of the best scenario.
type Recommendation struct {
	ScenarioID    string
	ScenarioName  string
	DepletionYear int // sentinel EndYear+1 when not depleted
	YearsGained   int // relative to the baseline
}

// AnalyzeScenarios picks the scenario whose fund lasts longest. The first
// entry is the baseline. Ties keep the earlier scenario.
func AnalyzeScenarios(projections []ScenarioProjection) Recommendation {
	if len(projections) == 0 {
		return Recommendation{}
	}
	ranked := append([]ScenarioProjection(nil), projections...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Result.DepletionYearOrSentinel() > ranked[j].Result.DepletionYearOrSentinel()
	})
	best := ranked[0]
	year := best.Result.DepletionYearOrSentinel()
	return Recommendation{
		ScenarioID:    best.Scenario.ID,
		ScenarioName:  best.Scenario.Name,
		DepletionYear: year,
		YearsGained:   year - projections[0].Result.DepletionYearOrSentinel(),
	}
}
