package main

import (
	"os"
	"strings"

	"github.com/aretw0/abenteuer/internal/cli"
	"github.com/aretw0/abenteuer/pkg/lexicon"
	"github.com/spf13/cobra"
)

var translateCmd = &cobra.Command{
	Use:   "translate [text...]",
	Short: "Gloss German text word by word",
	Long: `Translates each word with the built-in glossary. Unknown words are marked
with '?'. Use --reading to gloss one of the graded readings, or --list to see them.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if list, _ := cmd.Flags().GetBool("list"); list {
			cli.RunReadings(os.Stdout)
			return nil
		}
		reading, _ := cmd.Flags().GetString("reading")
		return cli.RunTranslate(os.Stdout, lexicon.Default(), strings.Join(args, " "), reading)
	},
}

func init() {
	rootCmd.AddCommand(translateCmd)
	translateCmd.Flags().String("reading", "", "Reading id to gloss (see --list)")
	translateCmd.Flags().Bool("list", false, "List the graded readings")
}
