package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/npfs/pension-simulator/internal/calculation"
	"github.com/npfs/pension-simulator/internal/domain"
	"github.com/npfs/pension-simulator/internal/output"
)

func newMonteCarloCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "montecarlo",
		Aliases: []string{"mc"},
		Short:   "Estimate the depletion-year distribution under random returns",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfiguration(cmd)
			if err != nil {
				return err
			}
			logger := newLogger(cmd)

			settings := cfg.MonteCarlo
			mcCfg := calculation.MonteCarloConfig{
				NumSimulations:  settings.Simulations,
				RegimeSwitching: settings.UseRegimeSwitching(),
				Seed:            settings.Seed,
			}
			if cmd.Flags().Changed("simulations") {
				mcCfg.NumSimulations, _ = cmd.Flags().GetInt("simulations")
			}
			if cmd.Flags().Changed("regime") {
				mcCfg.RegimeSwitching, _ = cmd.Flags().GetBool("regime")
			}
			if cmd.Flags().Changed("seed") {
				mcCfg.Seed, _ = cmd.Flags().GetInt64("seed")
			}

			historical := settings.HistoricalReturns
			if cmd.Flags().Changed("historical") {
				historical, _ = cmd.Flags().GetString("historical")
			}
			if historical != "" {
				h, err := calculation.LoadHistoricalReturns(historical)
				if err != nil {
					return err
				}
				for _, issue := range h.ValidateDataQuality() {
					logger.Warnf("historical returns: %s", issue)
				}
				logger.Infof("bootstrapping %d historical returns (%d-%d)", len(h.DataPoints), h.MinYear, h.MaxYear)
				mcCfg.Generator = h
			}

			sim := calculation.NewMonteCarloSimulator()
			sim.SetLogger(logger)
			samples, err := sim.Sample(cmd.Context(), cfg.Parameters, mcCfg)
			if err != nil {
				return err
			}
			summary := calculation.Summarize(samples)
			summary.RegimeSwitching = mcCfg.RegimeSwitching && mcCfg.Generator == nil

			if dir, _ := cmd.Flags().GetString("csv-dir"); dir != "" {
				report := &output.MonteCarloCSVReport{Summary: summary, Params: cfg.Parameters, Samples: samples}
				if err := report.GenerateAllCSVReports(dir); err != nil {
					return err
				}
				logger.Infof("monte carlo CSV reports written to %s", dir)
			}

			if jsonOutput(cmd) {
				return writeJSON(cmd, summary)
			}
			_, err = cmd.OutOrStdout().Write(output.FormatMonteCarloSummary(summary))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Depleted by %d: %s\n", cfg.Parameters.EndYear,
				output.FormatRate(domain.DepletedShare(samples, cfg.Parameters.NotDepletedYear())))
			return nil
		},
	}
	cmd.Flags().IntP("simulations", "n", 0, "Number of simulations (default from config)")
	cmd.Flags().Bool("regime", true, "Use the boom/bust regime-switching return model")
	cmd.Flags().Int64("seed", 0, "Random seed (0 = time based)")
	cmd.Flags().String("historical", "", "Bootstrap returns from a year,return CSV file")
	cmd.Flags().String("csv-dir", "", "Write summary, histogram and sample CSVs to this directory")
	return cmd
}
