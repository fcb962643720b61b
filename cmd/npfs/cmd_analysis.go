package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/npfs/pension-simulator/internal/analysis"
	"github.com/npfs/pension-simulator/internal/domain"
)

func newSensitivityCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sensitivity",
		Short: "Show how each reform lever moves the depletion year",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfiguration(cmd)
			if err != nil {
				return err
			}
			path, _ := cmd.Flags().GetString("model")
			store := analysis.NewModelStore(path)
			store.Logger = newLogger(cmd)
			store.Samples, _ = cmd.Flags().GetInt("samples")

			result, err := analysis.NewSensitivity(store).Analyze(cmd.Context(), cfg.Parameters)
			if err != nil {
				return err
			}
			if jsonOutput(cmd) {
				return writeJSON(cmd, result)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Depletion year: %d (current scheme %d, model estimate %d)\n\n",
				result.CurrentDepletionYear, result.BaseDepletionYear, result.PredictedDepletionYear)
			fmt.Fprintln(out, "Lever effects (years):")
			for _, key := range sortedKeys(result.FeatureEffects) {
				fmt.Fprintf(out, "  %-28s %+d\n", key, result.FeatureEffects[key])
			}
			fmt.Fprintln(out, "\nFeature importance:")
			for _, key := range sortedKeys(result.FeatureImportance) {
				fmt.Fprintf(out, "  %-28s %.3f\n", key, result.FeatureImportance[key])
			}
			return nil
		},
	}
	cmd.Flags().String("model", "importance_model.yaml", "Importance model cache file (empty = do not cache)")
	cmd.Flags().Int("samples", analysis.DefaultTrainingSamples, "Training scenarios when the model is trained")
	return cmd
}

func newGenerationsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generations",
		Short: "Analyse lifetime pension returns per birth cohort",
		RunE: func(cmd *cobra.Command, args []string) error {
			analyzer := analysis.NewGenerationAnalyzer()
			out := cmd.OutOrStdout()

			if compare, _ := cmd.Flags().GetBool("compare"); compare {
				results, err := analyzer.CompareScenarios(cmd.Context())
				if err != nil {
					return err
				}
				if jsonOutput(cmd) {
					return writeJSON(cmd, results)
				}
				fmt.Fprintf(out, "%-18s %8s %8s %8s %8s\n", "Scenario", "Equity", "AvgROI", "MinROI", "MaxROI")
				for _, id := range sortedKeys(results) {
					r := results[id]
					fmt.Fprintf(out, "%-18s %8.3f %8.2f %8.2f %8.2f\n", id, r.EquityIndex, r.AvgROI, r.MinROI, r.MaxROI)
				}
				return nil
			}

			cfg, err := loadConfiguration(cmd)
			if err != nil {
				return err
			}
			result := analyzer.Analyze(cfg.Parameters)
			if jsonOutput(cmd) {
				return writeJSON(cmd, result)
			}
			fmt.Fprintf(out, "Equity index: %.3f\n\n", result.EquityIndex)
			fmt.Fprintf(out, "%-6s %8s %8s %12s %12s %6s  %s\n", "Birth", "ContYrs", "BenYrs", "Contrib", "Benefit", "ROI", "Cluster")
			for _, g := range result.Generations {
				fmt.Fprintf(out, "%-6d %8.1f %8.1f %12.0f %12.0f %6.2f  %s\n",
					g.BirthYear, g.ContributionYears, g.BenefitYears, g.TotalContribution, g.TotalBenefit, g.ROI, clusterLabel(g))
			}
			return nil
		},
	}
	cmd.Flags().Bool("compare", false, "Compare the reform presets instead")
	return cmd
}

func clusterLabel(g domain.GenerationData) string {
	if g.ClusterName == nil {
		return "-"
	}
	return *g.ClusterName
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
