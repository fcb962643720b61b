package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/npfs/pension-simulator/internal/voterreach"
)

func newVoterCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "voter",
		Short: "Rank subway stations by voter reach",
	}
	cmd.PersistentFlags().String("data", "data", "Directory with the voter-reach JSON files")
	cmd.PersistentFlags().Int("hour", 8, "Hour of day (0-23)")
	cmd.AddCommand(newVoterOptimizeCmd(), newVoterHeatmapCmd())
	return cmd
}

func voterService(cmd *cobra.Command) (*voterreach.Service, error) {
	dir, _ := cmd.Flags().GetString("data")
	ds, err := voterreach.LoadDataset(dir)
	if err != nil {
		return nil, err
	}
	return voterreach.NewService(ds), nil
}

func newVoterOptimizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "optimize",
		Short: "List the stations with the highest ridership times turnout",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := voterService(cmd)
			if err != nil {
				return err
			}
			req := voterreach.OptimizeRequest{}
			req.TargetHour, _ = cmd.Flags().GetInt("hour")
			req.TopN, _ = cmd.Flags().GetInt("top")
			req.Gu, _ = cmd.Flags().GetString("gu")
			req.ElectoralDistrict, _ = cmd.Flags().GetString("district")

			resp, err := svc.Optimize(req)
			if err != nil {
				return err
			}
			if jsonOutput(cmd) {
				return writeJSON(cmd, resp)
			}
			out := cmd.OutOrStdout()
			for i, r := range resp.Recommendations {
				fmt.Fprintf(out, "%3d. %-20s score %10.2f  riders %8.0f  turnout %.4f  %s\n",
					i+1, r.StationName, r.Score, r.Ridership, r.TurnoutRate, r.Reason)
			}
			return nil
		},
	}
	cmd.Flags().Int("top", voterreach.DefaultTopN, "Number of stations")
	cmd.Flags().String("gu", "", "Only stations in this administrative district")
	cmd.Flags().String("district", "", "Use the turnout of this electoral district")
	return cmd
}

func newVoterHeatmapCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "heatmap",
		Short: "Print normalised station ridership for a map heatmap",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := voterService(cmd)
			if err != nil {
				return err
			}
			hour, _ := cmd.Flags().GetInt("hour")
			points, err := svc.Heatmap(hour)
			if err != nil {
				return err
			}
			if jsonOutput(cmd) {
				return writeJSON(cmd, points)
			}
			for _, p := range points {
				fmt.Fprintf(cmd.OutOrStdout(), "%.4f,%.4f,%.4f\n", p.Lat, p.Lng, p.Weight)
			}
			return nil
		},
	}
}
