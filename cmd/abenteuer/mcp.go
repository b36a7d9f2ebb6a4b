package main

import (
	"github.com/aretw0/abenteuer/internal/cli"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Starts Abenteuer as an MCP Server on Stdin/Stdout.
This allows AI agents (like Claude Desktop) to play stories with the learner
through tools such as start_story, choose and translate.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := engineOptions(cmd)
		if err != nil {
			return err
		}
		return cli.RunMCP(opts)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
	mcpCmd.Flags().Duration("feedback-delay", 0, "How long feedback stays before the scene changes (overrides ABENTEUER_FEEDBACK_DELAY)")
}
