package domain

// SensitivityResult reports how each reform lever moves the depletion year.
type SensitivityResult struct {
	FeatureImportance      map[string]float64 `json:"feature_importance"`
	FeatureEffects         map[string]int     `json:"feature_effects"` // years gained (+) or lost (-)
	BaseDepletionYear      int                `json:"base_depletion_year"`
	CurrentDepletionYear   int                `json:"current_depletion_year"`
	PredictedDepletionYear int                `json:"predicted_depletion_year"` // importance model estimate
}

// GenerationData describes the lifetime pension position of one birth cohort.
// Monetary totals are in 10 thousand KRW.
type GenerationData struct {
	BirthYear         int     `json:"birth_year"`
	ContributionYears float64 `json:"contribution_years"`
	BenefitYears      float64 `json:"benefit_years"`
	TotalContribution float64 `json:"total_contribution"`
	TotalBenefit      float64 `json:"total_benefit"`
	ROI               float64 `json:"roi"` // total benefit / total contribution
	Cluster           *int    `json:"cluster"`
	ClusterName       *string `json:"cluster_name"`
}

// GenerationAnalysisResult is the cohort analysis of one parameter set.
type GenerationAnalysisResult struct {
	Generations []GenerationData `json:"generations"`
	Clusters    map[int]string   `json:"clusters"`
	EquityIndex float64          `json:"equity_index"` // 1 = perfectly even ROI across cohorts
}

// GenerationComparison summarises the cohort analysis of one named scenario.
type GenerationComparison struct {
	EquityIndex float64 `json:"equity_index"`
	AvgROI      float64 `json:"avg_roi"`
	MinROI      float64 `json:"min_roi"`
	MaxROI      float64 `json:"max_roi"`
}
