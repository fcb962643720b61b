package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/npfs/pension-simulator/internal/domain"
	pkgdecimal "github.com/npfs/pension-simulator/pkg/decimal"
)

// CSVLedgerFormatter writes one row per simulated year.
type CSVLedgerFormatter struct{}

func (c CSVLedgerFormatter) Name() string      { return "csv" }
func (c CSVLedgerFormatter) Extension() string { return "csv" }

func (c CSVLedgerFormatter) Format(result *domain.ProjectionResult) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Year", "Contributors", "Beneficiaries", "ContributionIncome", "BenefitExpenditure", "InvestmentIncome", "NetBalance", "FundBalance"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, y := range result.YearlyResults {
		row := []string{
			strconv.Itoa(y.Year),
			strconv.Itoa(y.Contributors),
			strconv.Itoa(y.Beneficiaries),
			pkgdecimal.NewMoney(y.ContributionIncome).String(),
			pkgdecimal.NewMoney(y.BenefitExpenditure).String(),
			pkgdecimal.NewMoney(y.InvestmentIncome).String(),
			pkgdecimal.NewMoney(y.NetBalance).String(),
			pkgdecimal.NewMoney(y.FundBalance).String(),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
