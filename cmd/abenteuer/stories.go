package main

import (
	"os"

	"github.com/aretw0/abenteuer/internal/cli"
	"github.com/spf13/cobra"
)

var storiesCmd = &cobra.Command{
	Use:   "stories",
	Short: "List the available stories",
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := engineOptions(cmd)
		if err != nil {
			return err
		}
		return cli.RunStories(os.Stdout, opts)
	},
}

func init() {
	rootCmd.AddCommand(storiesCmd)
}
