package calculation

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"math/rand"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// HistoricalDataPoint represents a single year's realised fund return
type HistoricalDataPoint struct {
	Year   int             `json:"year"`
	Return decimal.Decimal `json:"return"`
}

// HistoricalStatistics provides statistical summary of the dataset
type HistoricalStatistics struct {
	Mean         decimal.Decimal `json:"mean"`
	Median       decimal.Decimal `json:"median"`
	StdDev       decimal.Decimal `json:"std_dev"`
	Min          decimal.Decimal `json:"min"`
	Max          decimal.Decimal `json:"max"`
	Count        int             `json:"count"`
	MissingYears []int           `json:"missing_years"`
}

// HistoricalReturns bootstraps yearly returns from a realised return history.
// Each simulated year draws one historical year uniformly with replacement.
type HistoricalReturns struct {
	Source     string                `json:"source"`
	DataPoints []HistoricalDataPoint `json:"data_points"`
	MinYear    int                   `json:"min_year"`
	MaxYear    int                   `json:"max_year"`
	Statistics HistoricalStatistics  `json:"statistics"`

	returns []float64
}

// LoadHistoricalReturns reads a "year,return" CSV file with a header row.
func LoadHistoricalReturns(filePath string) (*HistoricalReturns, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", filePath, err)
	}
	defer file.Close()

	h, err := ParseHistoricalReturns(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filePath, err)
	}
	h.Source = filePath
	return h, nil
}

// ParseHistoricalReturns parses "year,return" rows. Returns may be written as
// fractions (0.055) or percentages (5.5%).
func ParseHistoricalReturns(r io.Reader) (*HistoricalReturns, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	if len(header) < 2 {
		return nil, fmt.Errorf("invalid CSV format: expected at least 2 columns")
	}

	var dataPoints []HistoricalDataPoint
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read data row: %w", err)
		}
		if len(record) < 2 {
			continue // Skip malformed rows
		}

		year, err := strconv.Atoi(strings.TrimSpace(record[0]))
		if err != nil {
			continue // Skip rows with invalid year
		}
		value, err := parseReturn(record[1])
		if err != nil {
			continue // Skip rows with invalid value
		}

		dataPoints = append(dataPoints, HistoricalDataPoint{Year: year, Return: value})
	}

	if len(dataPoints) == 0 {
		return nil, fmt.Errorf("no valid data points found")
	}

	sort.Slice(dataPoints, func(i, j int) bool { return dataPoints[i].Year < dataPoints[j].Year })

	h := &HistoricalReturns{
		DataPoints: dataPoints,
		MinYear:    dataPoints[0].Year,
		MaxYear:    dataPoints[len(dataPoints)-1].Year,
		Statistics: calculateStatistics(dataPoints),
		returns:    make([]float64, len(dataPoints)),
	}
	for i, dp := range dataPoints {
		h.returns[i] = dp.Return.InexactFloat64()
	}
	return h, nil
}

func parseReturn(raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if pct, ok := strings.CutSuffix(raw, "%"); ok {
		d, err := decimal.NewFromString(strings.TrimSpace(pct))
		if err != nil {
			return decimal.Zero, err
		}
		return d.Div(decimal.NewFromInt(100)), nil
	}
	return decimal.NewFromString(raw)
}

// Generate bootstraps nYears returns. meanReturn is ignored; the history
// carries its own level.
func (h *HistoricalReturns) Generate(rng *rand.Rand, nYears int, _ float64) []float64 {
	out := make([]float64, nYears)
	for i := range out {
		out[i] = clampReturn(h.returns[rng.Intn(len(h.returns))])
	}
	return out
}

// ValidateDataQuality performs quality checks on the loaded data
func (h *HistoricalReturns) ValidateDataQuality() []string {
	var issues []string

	if len(h.Statistics.MissingYears) > 0 {
		issues = append(issues, fmt.Sprintf("Missing years in return history: %v", h.Statistics.MissingYears))
	}

	upper := decimal.NewFromFloat(MaxYearlyReturn)
	lower := decimal.NewFromFloat(MinYearlyReturn)
	for _, dp := range h.DataPoints {
		if dp.Return.GreaterThan(upper) {
			issues = append(issues, fmt.Sprintf("Return above cap in year %d: %s (clamped to %s)", dp.Year, dp.Return.String(), upper.String()))
		}
		if dp.Return.LessThan(lower) {
			issues = append(issues, fmt.Sprintf("Return below floor in year %d: %s (clamped to %s)", dp.Year, dp.Return.String(), lower.String()))
		}
	}
	return issues
}

// calculateStatistics calculates statistical measures for year-sorted data points
func calculateStatistics(dataPoints []HistoricalDataPoint) HistoricalStatistics {
	n := len(dataPoints)
	if n == 0 {
		return HistoricalStatistics{}
	}

	values := make([]decimal.Decimal, n)
	sum := decimal.Zero
	for i, dp := range dataPoints {
		values[i] = dp.Return
		sum = sum.Add(dp.Return)
	}
	mean := sum.Div(decimal.NewFromInt(int64(n)))

	varianceSum := decimal.Zero
	for _, v := range values {
		diff := v.Sub(mean)
		varianceSum = varianceSum.Add(diff.Mul(diff))
	}
	variance := varianceSum.Div(decimal.NewFromInt(int64(n)))
	stdDev := decimal.NewFromFloat(math.Sqrt(variance.InexactFloat64()))

	sort.Slice(values, func(i, j int) bool { return values[i].LessThan(values[j]) })
	median := values[n/2]
	if n%2 == 0 {
		median = values[n/2-1].Add(values[n/2]).Div(decimal.NewFromInt(2))
	}

	var missingYears []int
	next := dataPoints[0].Year
	for _, dp := range dataPoints {
		for ; next < dp.Year; next++ {
			missingYears = append(missingYears, next)
		}
		next = dp.Year + 1
	}

	return HistoricalStatistics{
		Mean:         mean,
		Median:       median,
		StdDev:       stdDev,
		Min:          values[0],
		Max:          values[n-1],
		Count:        n,
		MissingYears: missingYears,
	}
}
