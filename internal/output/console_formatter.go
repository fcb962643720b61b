package output

import (
	"bytes"
	"fmt"

	"github.com/npfs/pension-simulator/internal/domain"
)

// ConsoleFormatter prints the projection headline and the yearly ledger.
type ConsoleFormatter struct {
	// Step prints every Step-th year of the ledger; 0 or 1 prints all years.
	Step int
}

func (c ConsoleFormatter) Name() string      { return "console" }
func (c ConsoleFormatter) Extension() string { return "txt" }

func (c ConsoleFormatter) Format(result *domain.ProjectionResult) ([]byte, error) {
	var buf bytes.Buffer
	p := result.Params
	fmt.Fprintln(&buf, "NATIONAL PENSION FUND PROJECTION")
	fmt.Fprintln(&buf, "================================")
	fmt.Fprintf(&buf, "Contribution rate: %s  Replacement rate: %s  Pension age: %d  Fund return: %s\n",
		FormatRate(p.ContributionRate), FormatRate(p.ReplacementRate), p.PensionAge, FormatRate(p.FundReturnRate))
	fmt.Fprintf(&buf, "Horizon: %d-%d\n", p.StartYear, p.EndYear)
	fmt.Fprintln(&buf)
	fmt.Fprintf(&buf, "First deficit year: %s\n", FormatYear(result.DeficitYear, "none"))
	fmt.Fprintf(&buf, "Fund depletion year: %s\n", FormatYear(result.DepletionYear, "not depleted"))
	fmt.Fprintf(&buf, "Peak fund: %s (%d)\n", FormatTrillion(result.MaxFundBalance), result.MaxFundYear)
	fmt.Fprintf(&buf, "Balance at %d: %s\n", p.EndYear, FormatTrillion(result.FinalBalance()))
	fmt.Fprintln(&buf)

	fmt.Fprintf(&buf, "%-6s %12s %13s %12s %12s %12s %12s %12s\n",
		"Year", "Contributors", "Beneficiaries", "Income", "Benefits", "Investment", "Net", "Balance")
	step := c.Step
	if step < 1 {
		step = 1
	}
	last := len(result.YearlyResults) - 1
	for i, y := range result.YearlyResults {
		if i%step != 0 && i != last {
			continue
		}
		fmt.Fprintf(&buf, "%-6d %12d %13d %12.1f %12.1f %12.1f %12.1f %12.1f\n",
			y.Year, y.Contributors, y.Beneficiaries, y.ContributionIncome, y.BenefitExpenditure,
			y.InvestmentIncome, y.NetBalance, y.FundBalance)
	}
	return buf.Bytes(), nil
}
