package domain

// YearlyLedgerEntry is one simulated year. Headcounts are in thousands of
// persons, monetary values in trillion KRW rounded to one decimal.
type YearlyLedgerEntry struct {
	Year               int     `json:"year"`
	Contributors       int     `json:"contributors"`
	Beneficiaries      int     `json:"beneficiaries"`
	ContributionIncome float64 `json:"contribution_income"`
	BenefitExpenditure float64 `json:"benefit_expenditure"`
	InvestmentIncome   float64 `json:"investment_income"`
	FundBalance        float64 `json:"fund_balance"`
	NetBalance         float64 `json:"net_balance"`
}

// ProjectionResult is the full year-by-year projection of one parameter set.
type ProjectionResult struct {
	Params        SimulationParameters `json:"params"`
	YearlyResults []YearlyLedgerEntry  `json:"yearly_results"`

	// DeficitYear is the first year net cash flow turned negative.
	DeficitYear *int `json:"deficit_year"`
	// DepletionYear is the first year the fund balance reached zero or below.
	// The balance stays at zero for every later year.
	DepletionYear *int `json:"depletion_year"`

	MaxFundYear    int     `json:"max_fund_year"`
	MaxFundBalance float64 `json:"max_fund_balance"`
}

// DepletionYearOrSentinel returns the depletion year, or EndYear+1 when the
// fund was not depleted within the horizon.
func (r *ProjectionResult) DepletionYearOrSentinel() int {
	if r.DepletionYear != nil {
		return *r.DepletionYear
	}
	return r.Params.NotDepletedYear()
}

// FinalBalance returns the fund balance of the last simulated year.
func (r *ProjectionResult) FinalBalance() float64 {
	if len(r.YearlyResults) == 0 {
		return 0
	}
	return r.YearlyResults[len(r.YearlyResults)-1].FundBalance
}
