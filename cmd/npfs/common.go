package main

import (
	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/npfs/pension-simulator/internal/calculation"
	"github.com/npfs/pension-simulator/internal/config"
	"github.com/npfs/pension-simulator/internal/domain"
)

func jsonOutput(cmd *cobra.Command) bool {
	v, _ := cmd.Flags().GetBool("json")
	return v
}

func newLogger(cmd *cobra.Command) calculation.Logger {
	debug, _ := cmd.Flags().GetBool("debug")
	return calculation.NewStdLogger(cmd.ErrOrStderr(), debug)
}

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// loadConfiguration reads --config (or the defaults) and applies --scenario.
// A preset replaces the reform levers but keeps the configured horizon.
func loadConfiguration(cmd *cobra.Command) (*domain.Configuration, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg := config.DefaultConfiguration()
	if path != "" {
		loaded, err := config.NewInputParser().LoadFromFile(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	id, _ := cmd.Flags().GetString("scenario")
	if id == "" {
		return cfg, nil
	}
	scenario, err := config.ScenarioByID(id)
	if err != nil {
		return nil, err
	}
	p := scenario.Params
	p.StartYear, p.EndYear = cfg.Parameters.StartYear, cfg.Parameters.EndYear
	if err := config.ValidateParameters(p); err != nil {
		return nil, err
	}
	cfg.Name = scenario.ID
	cfg.Parameters = p
	return cfg, nil
}
