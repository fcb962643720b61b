package calculation

import "math"

// Demographic and economic anchors of the simplified population model
// (Statistics Korea 2022 projection, 2024 base year).
const (
	BaseYear = 2024

	baseAverageIncome = 4200 // 10 thousand KRW per year
	incomeGrowthRate  = 0.02

	minWorkingAgePop = 17000 // thousands
	maxElderlyPop    = 20000 // thousands

	minParticipationRate  = 0.50
	baseParticipationRate = 0.58

	referencePensionAge = 65
	pensionAgeEffect    = 0.04 // beneficiary share removed per year of later pension age
)

// PopulationEstimate holds headcounts in thousands of persons.
type PopulationEstimate struct {
	WorkingAgePop float64 `json:"working_age_pop"`
	ElderlyPop    float64 `json:"elderly_pop"`
	Contributors  float64 `json:"contributors"`
	Beneficiaries float64 `json:"beneficiaries"`
}

// EstimatePopulation returns the contributor and beneficiary base of a year.
func EstimatePopulation(year, pensionAge int) PopulationEstimate {
	yearDiff := float64(year - BaseYear)

	// Working age (15-64): slow decline, steep decline from the mid 2030s, then easing.
	var workingAgePop float64
	switch {
	case yearDiff <= 10:
		workingAgePop = 36000 - yearDiff*150
	case yearDiff <= 30:
		workingAgePop = 34500 - (yearDiff-10)*400
	default:
		workingAgePop = 26500 - (yearDiff-30)*200
	}
	workingAgePop = math.Max(workingAgePop, minWorkingAgePop)

	// Elderly (65+): baby boomer retirement waves, then stabilising.
	var elderlyPop float64
	switch {
	case yearDiff <= 10:
		elderlyPop = 9500 + yearDiff*350
	case yearDiff <= 25:
		elderlyPop = 13000 + (yearDiff-10)*400
	default:
		elderlyPop = 19000 + (yearDiff-25)*50
	}
	elderlyPop = math.Min(elderlyPop, maxElderlyPop)

	participationRate := math.Max(minParticipationRate, baseParticipationRate-yearDiff*0.001)
	contributors := workingAgePop * participationRate

	var beneficiaryRate float64
	switch {
	case yearDiff <= 0:
		beneficiaryRate = 0.70
	case yearDiff <= 10:
		beneficiaryRate = 0.70 + yearDiff*0.015
	case yearDiff <= 25:
		beneficiaryRate = 0.85 + (yearDiff-10)*0.003
	default:
		beneficiaryRate = 0.90
	}
	ageEffect := float64(pensionAge-referencePensionAge) * pensionAgeEffect
	beneficiaryRate = math.Max(0, beneficiaryRate-ageEffect)

	return PopulationEstimate{
		WorkingAgePop: workingAgePop,
		ElderlyPop:    elderlyPop,
		Contributors:  contributors,
		Beneficiaries: elderlyPop * beneficiaryRate,
	}
}

// AverageIncome returns the average annual income of a year in 10 thousand KRW.
func AverageIncome(year int) float64 {
	return baseAverageIncome * math.Pow(1+incomeGrowthRate, float64(year-BaseYear))
}
