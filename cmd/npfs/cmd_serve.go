package main

import (
	"github.com/spf13/cobra"

	"github.com/npfs/pension-simulator/internal/calculation"
	"github.com/npfs/pension-simulator/internal/config"
	"github.com/npfs/pension-simulator/internal/server"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		Long: `Serve the HTTP API until interrupted.

Settings come from PORT, CORS_ALLOWED_ORIGIN, IMPORTANCE_MODEL_PATH,
VOTER_DATA_DIR and DEBUG; --port overrides PORT.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadServerConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") {
				cfg.Port, _ = cmd.Flags().GetString("port")
			}
			debug, _ := cmd.Flags().GetBool("debug")
			logger := calculation.NewStdLogger(cmd.ErrOrStderr(), debug || cfg.Debug)

			srv, err := server.New(cfg, logger)
			if err != nil {
				return err
			}
			return srv.ListenAndServe(cmd.Context())
		},
	}
	cmd.Flags().String("port", "", "Listen port")
	return cmd
}
