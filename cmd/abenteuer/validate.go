package main

import (
	"fmt"
	"os"

	"github.com/aretw0/abenteuer/internal/cli"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <path>",
	Short: "Check a story for consistency",
	Long: `Loads a story (a YAML document or a directory of scene files) and reports
dangling choices, a bad start scene and duplicate ids. Unreachable scenes are
reported as warnings.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cli.RunValidate(cmd.Context(), os.Stdout, args[0]); err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
