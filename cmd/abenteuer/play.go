package main

import (
	"github.com/aretw0/abenteuer/internal/cli"
	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:   "play [story]",
	Short: "Play a story in the terminal",
	Long: `Starts an interactive session. Type the number of a choice, b to go back,
r to restart and q to quit. The default story is the café.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := engineOptions(cmd)
		if err != nil {
			return err
		}
		story := "cafe"
		if len(args) > 0 {
			story = args[0]
		}
		start, _ := cmd.Flags().GetString("start")
		jsonMode, _ := cmd.Flags().GetBool("json")

		return cli.RunPlay(cli.PlayOptions{
			EngineOptions: opts,
			Story:         story,
			Start:         start,
			JSON:          jsonMode,
		})
	},
}

func init() {
	rootCmd.AddCommand(playCmd)

	playCmd.Flags().String("start", "", "Scene id to start at")
	playCmd.Flags().Bool("json", false, "Run in JSON mode (NDJSON input/output)")
	playCmd.Flags().Duration("feedback-delay", 0, "How long feedback stays before the scene changes (overrides ABENTEUER_FEEDBACK_DELAY)")

	// 'play' is the default if no command is provided.
	rootCmd.RunE = playCmd.RunE
	rootCmd.Flags().AddFlagSet(playCmd.Flags())
}
