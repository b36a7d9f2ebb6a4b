package main

import (
	"github.com/aretw0/abenteuer/internal/cli"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Serves stories and sessions as a JSON API. Deferred feedback transitions
are pushed to /sessions/{id}/events; Prometheus metrics are on /metrics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := engineOptions(cmd)
		if err != nil {
			return err
		}
		return cli.RunServe(cli.ServeOptions{EngineOptions: opts})
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", "", "Address to listen on (overrides ABENTEUER_ADDR)")
	serveCmd.Flags().Bool("metrics", true, "Expose /metrics (overrides ABENTEUER_METRICS)")
	serveCmd.Flags().Duration("feedback-delay", 0, "How long feedback stays before the scene changes (overrides ABENTEUER_FEEDBACK_DELAY)")
}
