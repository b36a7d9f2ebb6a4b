package main

import (
	"math/rand/v2"
	"os"
	"time"

	"github.com/aretw0/abenteuer/internal/cli"
	"github.com/aretw0/abenteuer/pkg/drill"
	"github.com/spf13/cobra"
)

var drillCmd = &cobra.Command{
	Use:   "drill",
	Short: "Practice word order with the café sentence builder",
	Long: `Rebuild German sentences from a shuffled pool of words. Enter word numbers
in order (e.g. "3 1 2"), c to check, h for a hint, u N to put a word back,
x to reshuffle and q to quit.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		seed, _ := cmd.Flags().GetUint64("seed")
		if seed == 0 {
			seed = uint64(time.Now().UnixNano())
		}
		game := drill.NewGame(drill.CafePuzzles(), rand.New(rand.NewPCG(seed, seed>>1)))
		return cli.RunDrill(cmd.Context(), game, cli.DrillOptions{In: os.Stdin, Out: os.Stdout})
	},
}

func init() {
	rootCmd.AddCommand(drillCmd)
	drillCmd.Flags().Uint64("seed", 0, "Shuffle seed for a reproducible game (0 picks one)")
}
