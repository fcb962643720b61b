package output

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/npfs/pension-simulator/internal/domain"
)

// Monte Carlo CSV file names written by GenerateAllCSVReports.
const (
	MonteCarloSummaryFile   = "monte_carlo_summary.csv"
	MonteCarloHistogramFile = "monte_carlo_histogram.csv"
	MonteCarloSamplesFile   = "monte_carlo_samples.csv"
)

// MonteCarloCSVReport generates CSV exports for Monte Carlo depletion results
type MonteCarloCSVReport struct {
	Summary *domain.MonteCarloSummary
	Params  domain.SimulationParameters
	// Samples are optional; the samples CSV is skipped without them.
	Samples []domain.DepletionSample
}

func writeCSV(outputPath string, header []string, rows [][]string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write data row: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// GenerateSummaryCSV creates a summary CSV with aggregate statistics
func (m *MonteCarloCSVReport) GenerateSummaryCSV(outputPath string) error {
	s := m.Summary
	model := map[bool]string{true: "Regime switching", false: "Normal"}[s.RegimeSwitching]
	rows := [][]string{
		{"Median Depletion Year", strconv.Itoa(s.MedianDepletionYear), "50th percentile of depletion years"},
		{"CI 50% Lower", strconv.Itoa(s.CI50Lower), "25th percentile"},
		{"CI 50% Upper", strconv.Itoa(s.CI50Upper), "75th percentile"},
		{"CI 90% Lower", strconv.Itoa(s.CI90Lower), "5th percentile"},
		{"CI 90% Upper", strconv.Itoa(s.CI90Upper), "95th percentile"},
		{"Number of Simulations", strconv.Itoa(s.NSimulations), "Total number of simulations run"},
		{"Return Model", model, "Source of yearly fund returns"},
		{"Contribution Rate", FormatRate(m.Params.ContributionRate), "Scenario parameter"},
		{"Replacement Rate", FormatRate(m.Params.ReplacementRate), "Scenario parameter"},
		{"Pension Age", strconv.Itoa(m.Params.PensionAge), "Scenario parameter"},
	}
	if len(m.Samples) > 0 {
		share := decimal.NewFromFloat(domain.DepletedShare(m.Samples, m.Params.NotDepletedYear()))
		rows = append(rows, []string{
			"Depletion Rate",
			share.Mul(decimal.NewFromInt(100)).StringFixed(2) + "%",
			fmt.Sprintf("Share of simulations depleted by %d", m.Params.EndYear),
		})
	}
	return writeCSV(outputPath, []string{"Metric", "Value", "Description"}, rows)
}

// GenerateHistogramCSV writes one row per histogram bin.
func (m *MonteCarloCSVReport) GenerateHistogramCSV(outputPath string) error {
	s := m.Summary
	total := 0
	for _, c := range s.Distribution {
		total += c
	}
	rows := make([][]string, 0, len(s.Distribution))
	for i, c := range s.Distribution {
		share := decimal.Zero
		if total > 0 {
			share = decimal.NewFromInt(int64(c)).Div(decimal.NewFromInt(int64(total))).Mul(decimal.NewFromInt(100))
		}
		rows = append(rows, []string{
			strconv.Itoa(s.BinEdges[i]),
			strconv.Itoa(s.BinEdges[i+1]),
			strconv.Itoa(c),
			share.StringFixed(2),
		})
	}
	return writeCSV(outputPath, []string{"BinStart", "BinEnd", "Count", "Percent"}, rows)
}

// GenerateSamplesCSV writes the depletion year of every trial.
func (m *MonteCarloCSVReport) GenerateSamplesCSV(outputPath string) error {
	sentinel := m.Params.NotDepletedYear()
	rows := make([][]string, 0, len(m.Samples))
	for i, s := range m.Samples {
		rows = append(rows, []string{
			strconv.Itoa(i),
			strconv.Itoa(int(s)),
			strconv.FormatBool(int(s) < sentinel),
		})
	}
	return writeCSV(outputPath, []string{"SimulationID", "DepletionYear", "Depleted"}, rows)
}

// GenerateAllCSVReports creates all CSV reports in a single directory
func (m *MonteCarloCSVReport) GenerateAllCSVReports(outputDir string) error {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if err := m.GenerateSummaryCSV(filepath.Join(outputDir, MonteCarloSummaryFile)); err != nil {
		return fmt.Errorf("failed to generate summary CSV: %w", err)
	}
	if err := m.GenerateHistogramCSV(filepath.Join(outputDir, MonteCarloHistogramFile)); err != nil {
		return fmt.Errorf("failed to generate histogram CSV: %w", err)
	}
	if len(m.Samples) == 0 {
		return nil
	}
	if err := m.GenerateSamplesCSV(filepath.Join(outputDir, MonteCarloSamplesFile)); err != nil {
		return fmt.Errorf("failed to generate samples CSV: %w", err)
	}
	return nil
}
