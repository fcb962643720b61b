package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var version = "0.1.0-dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "npfs",
		Short: "National pension fund simulator",
		Long: `npfs projects the national pension fund year by year under reform
parameters and estimates when the fund is depleted.

It also runs Monte Carlo return simulations, lever sensitivity, generational
equity analysis and serves everything over an HTTP API.`,
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "Scenario file (YAML)")
	rootCmd.PersistentFlags().String("scenario", "", "Reform preset id (see 'npfs scenarios')")
	rootCmd.PersistentFlags().Bool("json", false, "Output as JSON")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")

	rootCmd.AddCommand(
		newVersionCmd(),
		newProjectCmd(),
		newMonteCarloCmd(),
		newSensitivityCmd(),
		newGenerationsCmd(),
		newScenariosCmd(),
		newVoterCmd(),
		newServeCmd(),
	)
	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			if jsonOutput(cmd) {
				return writeJSON(cmd, map[string]string{"version": version})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "npfs version %s\n", version)
			return nil
		},
	}
}
