package main

import (
	"fmt"
	"os"

	"github.com/aretw0/abenteuer/internal/cli"
	"github.com/aretw0/abenteuer/internal/config"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "abenteuer",
	Short: "Abenteuer is a branching-story engine for practicing German",
	Long: `Abenteuer plays short interactive scenarios (ordering at a café, buying a
train ticket) where every choice is a German phrase and feedback explains it.

Settings come from ABENTEUER_* environment variables; flags override them.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("stories-dir", "", "Directory with extra stories (overrides ABENTEUER_STORIES_DIR)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error (overrides ABENTEUER_LOG_LEVEL)")
	rootCmd.PersistentFlags().Bool("debug", false, "Log navigator events to stderr")
}

// engineOptions loads the environment and applies flag overrides.
func engineOptions(cmd *cobra.Command) (cli.EngineOptions, error) {
	cfg, err := config.Load()
	if err != nil {
		return cli.EngineOptions{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("stories-dir") {
		cfg.StoriesDir, _ = flags.GetString("stories-dir")
	}
	if flags.Changed("log-level") {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}
	if flags.Lookup("feedback-delay") != nil && flags.Changed("feedback-delay") {
		cfg.FeedbackDelay, _ = flags.GetDuration("feedback-delay")
	}
	if flags.Lookup("addr") != nil && flags.Changed("addr") {
		cfg.Addr, _ = flags.GetString("addr")
	}
	if flags.Lookup("metrics") != nil && flags.Changed("metrics") {
		cfg.Metrics, _ = flags.GetBool("metrics")
	}
	if err := cfg.Validate(); err != nil {
		return cli.EngineOptions{}, err
	}

	debug, _ := flags.GetBool("debug")
	return cli.EngineOptions{Config: cfg, Debug: debug}, nil
}
