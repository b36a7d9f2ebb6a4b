package main

import (
	"os"

	"github.com/aretw0/abenteuer/internal/cli"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph <story|path>",
	Short: "Export the story graph visualization",
	Long:  `Outputs a Mermaid diagram (graph TD) of a catalog story or of a story on disk.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := engineOptions(cmd)
		if err != nil {
			return err
		}
		return cli.RunGraph(cmd.Context(), os.Stdout, opts, args[0])
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
}
