package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/npfs/pension-simulator/internal/calculation"
	"github.com/npfs/pension-simulator/internal/config"
	"github.com/npfs/pension-simulator/internal/domain"
	"github.com/npfs/pension-simulator/internal/output"
)

type scenarioRow struct {
	domain.Scenario
	DepletionYear *int `json:"depletion_year"`
}

func newScenariosCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scenarios",
		Short: "List the reform presets and their depletion years",
		RunE: func(cmd *cobra.Command, args []string) error {
			scenarios := config.Scenarios()

			if dir, _ := cmd.Flags().GetString("export"); dir != "" {
				if err := os.MkdirAll(dir, 0755); err != nil {
					return fmt.Errorf("failed to create export directory: %w", err)
				}
				for _, s := range scenarios {
					cfg := config.DefaultConfiguration()
					cfg.Name = s.ID
					cfg.Parameters = s.Params
					path := filepath.Join(dir, s.ID+".yaml")
					if err := output.SaveConfiguration(cfg, path); err != nil {
						return fmt.Errorf("failed to export %s: %w", s.ID, err)
					}
					fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
				}
				return nil
			}

			projector := calculation.NewProjector()
			projections := make([]output.ScenarioProjection, 0, len(scenarios))
			rows := make([]scenarioRow, 0, len(scenarios))
			for _, s := range scenarios {
				result := projector.Project(s.Params)
				projections = append(projections, output.ScenarioProjection{Scenario: s, Result: result})
				rows = append(rows, scenarioRow{Scenario: s, DepletionYear: result.DepletionYear})
			}
			if jsonOutput(cmd) {
				return writeJSON(cmd, rows)
			}

			out := cmd.OutOrStdout()
			for _, r := range rows {
				fmt.Fprintf(out, "%-16s %-22s depletion %-12s %s\n",
					r.ID, r.Name, output.FormatYear(r.DepletionYear, "not depleted"), r.Description)
			}
			rec := output.AnalyzeScenarios(projections)
			fmt.Fprintf(out, "\nLongest lasting: %s (%d, %+d years vs status quo)\n", rec.ScenarioName, rec.DepletionYear, rec.YearsGained)
			return nil
		},
	}
	cmd.Flags().String("export", "", "Write every preset as a scenario file into this directory")
	return cmd
}
