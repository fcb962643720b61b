package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/npfs/pension-simulator/internal/calculation"
	"github.com/npfs/pension-simulator/internal/output"
)

func newProjectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Project the fund year by year",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfiguration(cmd)
			if err != nil {
				return err
			}
			projector := calculation.NewProjector()
			projector.SetLogger(newLogger(cmd))
			result := projector.Project(cfg.Parameters)

			format, _ := cmd.Flags().GetString("format")
			if jsonOutput(cmd) {
				format = "json"
			}
			if dir, _ := cmd.Flags().GetString("out"); dir != "" {
				files, err := output.GenerateReport(result, format, dir)
				if err != nil {
					return err
				}
				for _, f := range files {
					fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", f)
				}
				return nil
			}

			f := output.GetFormatterByName(format)
			if f == nil {
				return fmt.Errorf("%w: %q", output.ErrUnsupportedFormat, format)
			}
			if console, ok := f.(output.ConsoleFormatter); ok {
				console.Step, _ = cmd.Flags().GetInt("step")
				f = console
			}
			data, err := f.Format(result)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().String("format", "console", "Output format (console, csv, json, all with --out)")
	cmd.Flags().String("out", "", "Write the report to a timestamped file in this directory")
	cmd.Flags().Int("step", 1, "Print every n-th year in the console ledger")
	return cmd
}
