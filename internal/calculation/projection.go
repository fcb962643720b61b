package calculation

import (
	"math"

	"github.com/npfs/pension-simulator/internal/domain"
	pkgdecimal "github.com/npfs/pension-simulator/pkg/decimal"
)

const (
	// InitialFundBalance is the fund reserve at the start of the projection (trillion KRW).
	InitialFundBalance = 1036
	// AverageContributionYears is the average insured period used for the benefit formula.
	AverageContributionYears = 25
	// fullContributionYears is the insured period that earns the full replacement rate.
	fullContributionYears = 40
)

// Projector runs the year-by-year fund projection.
type Projector struct {
	Logger Logger
}

// NewProjector creates a projector with a no-op logger.
func NewProjector() *Projector {
	return &Projector{Logger: NopLogger{}}
}

// SetLogger sets the logger. If nil is provided, a no-op logger is used.
func (p *Projector) SetLogger(l Logger) {
	if l == nil {
		p.Logger = NopLogger{}
		return
	}
	p.Logger = l
}

// yearFlows are the unrounded cash flows of one simulated year.
type yearFlows struct {
	year         int
	population   PopulationEstimate
	contribution float64
	benefit      float64
	investment   float64
	net          float64
}

// projectionState is the carried state of one projection path.
type projectionState struct {
	balance       float64
	deficitYear   *int
	depletionYear *int
	maxYear       int
	maxBalance    float64
	ledger        []domain.YearlyLedgerEntry
}

// Project runs the full projection and returns the year-by-year ledger.
// Parameters must be pre-validated; the projection itself cannot fail.
func (p *Projector) Project(params domain.SimulationParameters) *domain.ProjectionResult {
	state := p.simulate(params, nil, true)

	result := &domain.ProjectionResult{
		Params:         params,
		YearlyResults:  state.ledger,
		DeficitYear:    state.deficitYear,
		DepletionYear:  state.depletionYear,
		MaxFundYear:    state.maxYear,
		MaxFundBalance: pkgdecimal.RoundReport(state.maxBalance),
	}
	p.logger().Debugf("projection %d-%d: deficit=%s depletion=%s max=%.1f (%d)",
		params.StartYear, params.EndYear, yearString(state.deficitYear), yearString(state.depletionYear),
		result.MaxFundBalance, result.MaxFundYear)
	return result
}

// DepletionYear returns the first year the fund balance drops to zero or below,
// or EndYear+1 if it never does. returns supplies the investment return of each
// simulated year by index; missing entries fall back to params.FundReturnRate.
func (p *Projector) DepletionYear(params domain.SimulationParameters, returns []float64) int {
	state := p.simulate(params, returns, false)
	if state.depletionYear != nil {
		return *state.depletionYear
	}
	return params.NotDepletedYear()
}

// simulate is the shared stepping loop of both call modes. Without emitLedger
// it skips ledger construction and stops at the first depletion.
func (p *Projector) simulate(params domain.SimulationParameters, returns []float64, emitLedger bool) projectionState {
	state := projectionState{
		balance:    InitialFundBalance,
		maxYear:    params.StartYear,
		maxBalance: InitialFundBalance,
	}
	if emitLedger && params.EndYear >= params.StartYear {
		state.ledger = make([]domain.YearlyLedgerEntry, 0, params.Years())
	}

	for i, year := 0, params.StartYear; year <= params.EndYear; i, year = i+1, year+1 {
		rate := params.FundReturnRate
		if i < len(returns) {
			rate = returns[i]
		}
		flows := stepYear(params, year, state.balance, rate)
		state.balance += flows.net

		if state.balance > state.maxBalance {
			state.maxBalance = state.balance
			state.maxYear = year
		}
		if flows.net < 0 && state.deficitYear == nil {
			y := year
			state.deficitYear = &y
		}
		if state.depletionYear != nil {
			state.balance = 0
		} else if state.balance <= 0 {
			y := year
			state.depletionYear = &y
			state.balance = 0
			if !emitLedger {
				return state
			}
		}

		if emitLedger {
			state.ledger = append(state.ledger, ledgerEntry(flows, state.balance))
		}
	}
	return state
}

// stepYear computes the cash flows of one year from the balance carried in.
func stepYear(params domain.SimulationParameters, year int, balance, returnRate float64) yearFlows {
	pop := EstimatePopulation(year, params.PensionAge)
	averageIncome := AverageIncome(year)

	// thousands of persons -> persons, 10 thousand KRW -> KRW, KRW -> trillion KRW
	contribution := (pop.Contributors * 1000) * (averageIncome * 10000) * params.ContributionRate / 1e12

	averagePension := averageIncome * 10000 * params.ReplacementRate * (AverageContributionYears / float64(fullContributionYears))
	benefit := (pop.Beneficiaries * 1000) * averagePension / 1e12

	investment := 0.0
	if balance > 0 {
		investment = balance * returnRate
	}

	return yearFlows{
		year:         year,
		population:   pop,
		contribution: contribution,
		benefit:      benefit,
		investment:   investment,
		net:          contribution + investment - benefit,
	}
}

func ledgerEntry(f yearFlows, balance float64) domain.YearlyLedgerEntry {
	return domain.YearlyLedgerEntry{
		Year:               f.year,
		Contributors:       int(math.Round(f.population.Contributors)),
		Beneficiaries:      int(math.Round(f.population.Beneficiaries)),
		ContributionIncome: pkgdecimal.RoundReport(f.contribution),
		BenefitExpenditure: pkgdecimal.RoundReport(f.benefit),
		InvestmentIncome:   pkgdecimal.RoundReport(f.investment),
		FundBalance:        pkgdecimal.RoundReport(balance),
		NetBalance:         pkgdecimal.RoundReport(f.net),
	}
}

func (p *Projector) logger() Logger {
	if p.Logger == nil {
		return NopLogger{}
	}
	return p.Logger
}
