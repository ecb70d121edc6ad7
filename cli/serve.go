package cli

import (
	"context"

	"github.com/spf13/cobra"

	"uqbar/acta/runner"
	"uqbar/config"
	"uqbar/serve"
	"uqbar/serve/state"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "run the pipeline daemon",
	Long: "Serves the HTTP API (POST /run, GET /status, GET /healthz) and, " +
		"when UQBAR_CRON is set, fires full pipeline runs on that schedule.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		deps, closers, err := buildDeps(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer closers.close()

		manager := state.NewManager()
		deps.Reporter = manager

		run := func(ctx context.Context) error {
			return runner.New(cfg, deps).Run(ctx, runner.AllOn())
		}
		return serve.NewServer(cfg, manager, run).Start()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
