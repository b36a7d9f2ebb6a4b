package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/abenteuer"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of abenteuer",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("abenteuer version %s\n", strings.TrimSpace(abenteuer.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
