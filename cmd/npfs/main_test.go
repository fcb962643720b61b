package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/npfs/pension-simulator/internal/config"
	"github.com/npfs/pension-simulator/internal/domain"
	"github.com/npfs/pension-simulator/internal/output"
	"github.com/npfs/pension-simulator/internal/voterreach"
)

// run executes the CLI with args and returns stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := newRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "npfs version "+version+"\n", out)

	out, err = run(t, "version", "--json")
	require.NoError(t, err)
	assert.Contains(t, out, `"version": "`+version+`"`)
}

func TestProjectJSON(t *testing.T) {
	out, err := run(t, "project", "--json")
	require.NoError(t, err)

	var result domain.ProjectionResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	require.NotNil(t, result.DepletionYear)
	assert.Equal(t, 2056, *result.DepletionYear)
}

func TestProjectScenarioCSV(t *testing.T) {
	out, err := run(t, "project", "--scenario", "contribution-up", "--format", "csv")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, 71)
	assert.True(t, strings.HasPrefix(lines[1], "2024,"))
}

func TestProjectConsole(t *testing.T) {
	out, err := run(t, "project", "--step", "10")
	require.NoError(t, err)
	assert.Contains(t, out, "Fund depletion year: 2056")
	assert.Contains(t, out, "\n2034 ")
	assert.NotContains(t, out, "\n2035 ")
}

func TestProjectWritesReports(t *testing.T) {
	dir := t.TempDir()
	out, err := run(t, "project", "--format", "all", "--out", dir)
	require.NoError(t, err)
	assert.Equal(t, 3, strings.Count(out, "Wrote "))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}

func TestProjectErrors(t *testing.T) {
	_, err := run(t, "project", "--format", "pdf")
	assert.ErrorIs(t, err, output.ErrUnsupportedFormat)

	_, err = run(t, "project", "--scenario", "nope")
	assert.ErrorContains(t, err, `unknown scenario "nope"`)

	path := writeFile(t, "bad.yaml", "parameters:\n  replacement_rate: 0.9\n")
	_, err = run(t, "project", "--config", path)
	assert.ErrorIs(t, err, config.ErrParameterOutOfRange)
}

func TestProjectConfigFileWithScenario(t *testing.T) {
	path := writeFile(t, "short.yaml", "name: short\nparameters:\n  start_year: 2024\n  end_year: 2040\n")

	out, err := run(t, "project", "--config", path, "--scenario", "benefit-down", "--json")
	require.NoError(t, err)
	var result domain.ProjectionResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Len(t, result.YearlyResults, 17)
	assert.Equal(t, 0.35, result.Params.ReplacementRate)
}

func TestMonteCarloHistoricalBootstrap(t *testing.T) {
	history := writeFile(t, "returns.csv", "year,return\n2020,0\n2021,0%\n")
	csvDir := filepath.Join(t.TempDir(), "mc")

	out, err := run(t, "montecarlo", "-n", "20", "--seed", "3", "--historical", history, "--csv-dir", csvDir, "--json")
	require.NoError(t, err)

	var summary domain.MonteCarloSummary
	require.NoError(t, json.Unmarshal([]byte(out), &summary))
	assert.Equal(t, 20, summary.NSimulations)
	assert.False(t, summary.RegimeSwitching)
	// zero returns deplete the fund in 2044 on every path
	assert.Equal(t, 2044, summary.MedianDepletionYear)
	assert.Equal(t, 2044, summary.CI90Lower)
	assert.Equal(t, 2044, summary.CI90Upper)
	assert.Equal(t, []int{20}, summary.Distribution)

	for _, name := range []string{output.MonteCarloSummaryFile, output.MonteCarloHistogramFile, output.MonteCarloSamplesFile} {
		_, err := os.Stat(filepath.Join(csvDir, name))
		assert.NoError(t, err, name)
	}
}

func TestMonteCarloConsole(t *testing.T) {
	out, err := run(t, "mc", "-n", "50", "--seed", "11", "--regime=false")
	require.NoError(t, err)
	assert.Contains(t, out, "Simulations: 50 (normal returns)")
	assert.Contains(t, out, "Depleted by 2093:")

	_, err = run(t, "mc", "--simulations=-1")
	assert.Error(t, err)
}

func TestScenarios(t *testing.T) {
	out, err := run(t, "scenarios")
	require.NoError(t, err)
	for _, s := range config.Scenarios() {
		assert.Contains(t, out, s.ID)
	}
	assert.Contains(t, out, "Longest lasting:")

	out, err = run(t, "scenarios", "--json")
	require.NoError(t, err)
	var rows []scenarioRow
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	require.Len(t, rows, len(config.Scenarios()))
	assert.Equal(t, "current", rows[0].ID)
	require.NotNil(t, rows[0].DepletionYear)
	assert.Equal(t, 2056, *rows[0].DepletionYear)
}

func TestScenariosExport(t *testing.T) {
	dir := t.TempDir()
	_, err := run(t, "scenarios", "--export", dir)
	require.NoError(t, err)

	cfg, err := config.NewInputParser().LoadFromFile(filepath.Join(dir, "balanced.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "balanced", cfg.Name)
	assert.Equal(t, 0.12, cfg.Parameters.ContributionRate)
	assert.Equal(t, 0.43, cfg.Parameters.ReplacementRate)
}

func TestSensitivity(t *testing.T) {
	out, err := run(t, "sensitivity", "--model", "", "--samples", "200", "--json")
	require.NoError(t, err)

	var result domain.SensitivityResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, 2056, result.BaseDepletionYear)
	assert.Len(t, result.FeatureEffects, 4)
	assert.Len(t, result.FeatureImportance, 4)

	model := filepath.Join(t.TempDir(), "model.yaml")
	out, err = run(t, "sensitivity", "--model", model, "--samples", "200")
	require.NoError(t, err)
	assert.Contains(t, out, "Lever effects (years):")
	_, err = os.Stat(model)
	assert.NoError(t, err)
}

func TestGenerations(t *testing.T) {
	out, err := run(t, "generations")
	require.NoError(t, err)
	assert.Contains(t, out, "Equity index: 0.662")

	out, err = run(t, "generations", "--compare", "--json")
	require.NoError(t, err)
	var results map[string]domain.GenerationComparison
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	assert.Len(t, results, 4)
}

func TestVoter(t *testing.T) {
	data := t.TempDir()

	out, err := run(t, "voter", "optimize", "--data", data, "--hour", "8", "--top", "3", "--json")
	require.NoError(t, err)
	var resp voterreach.OptimizeResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.Len(t, resp.Recommendations, 3)
	assert.Equal(t, "Gangnam", resp.Recommendations[0].StationName)

	out, err = run(t, "voter", "heatmap", "--data", data, "--hour", "8")
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 5)

	_, err = run(t, "voter", "heatmap", "--data", data, "--hour", "25")
	assert.ErrorIs(t, err, voterreach.ErrInvalidHour)
}
