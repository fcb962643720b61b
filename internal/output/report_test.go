package output_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/npfs/pension-simulator/internal/calculation"
	"github.com/npfs/pension-simulator/internal/config"
	"github.com/npfs/pension-simulator/internal/domain"
	"github.com/npfs/pension-simulator/internal/output"
)

func TestFormatHelpers(t *testing.T) {
	if got := output.FormatTrillion(1036); got != "1036.0 tn KRW" {
		t.Fatalf("FormatTrillion = %q", got)
	}
	if got := output.FormatTrillion(12.345); got != "12.3 tn KRW" {
		t.Fatalf("FormatTrillion = %q", got)
	}
	if got := output.FormatRate(0.09); got != "9.0%" {
		t.Fatalf("FormatRate = %q", got)
	}
	if got := output.FormatRate(0.055); got != "5.5%" {
		t.Fatalf("FormatRate = %q", got)
	}
	if got := output.FormatYear(nil, "never"); got != "never" {
		t.Fatalf("FormatYear = %q", got)
	}
}

func TestGenerateReport(t *testing.T) {
	result := calculation.NewProjector().Project(domain.DefaultParameters())
	dir := t.TempDir()

	files, err := output.GenerateReport(result, "json", dir)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, ".json", filepath.Ext(files[0]))

	files, err = output.GenerateReport(result, "all", filepath.Join(dir, "all"))
	require.NoError(t, err)
	assert.Len(t, files, 3)

	_, err = output.GenerateReport(result, "pdf", dir)
	assert.ErrorIs(t, err, output.ErrUnsupportedFormat)
	assert.ErrorContains(t, err, "console, csv, json")
}

func TestSaveConfigurationRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	params := domain.DefaultParameters()
	params.ContributionRate = 0.12
	cfg := &domain.Configuration{
		Name:       "saved",
		Parameters: params,
		MonteCarlo: domain.MonteCarloSettings{Simulations: 200, Seed: 7},
	}
	require.NoError(t, output.SaveConfiguration(cfg, path))

	loaded, err := config.NewInputParser().LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "saved", loaded.Name)
	assert.Equal(t, params, loaded.Parameters)
	assert.Equal(t, 200, loaded.MonteCarlo.Simulations)
	assert.True(t, loaded.MonteCarlo.UseRegimeSwitching())

	_, err = os.Stat(path)
	assert.NoError(t, err)
}
