package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/osa1/mmsim/internal/logging"
)

var version = "0.1.0-dev"

// logger is replaced once the persistent flags are parsed.
var logger = logging.Discard()

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "mmsim",
		Short: "Simulate heap growth under GC scheduling policies",
		Long: `mmsim models how a heap pointer and the peak memory footprint evolve
over a sequence of allocating calls, for a choice of collection trigger
(scheduler) and collection algorithm (strategy).`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level, _ := cmd.Flags().GetString("log-level")
			logger = logging.NewLogger(level, cmd.ErrOrStderr())
		},
	}

	rootCmd.PersistentFlags().Bool("json", false, "Output as JSON")
	rootCmd.PersistentFlags().String("log-level", "info", "Log verbosity: error, warn, info, debug or trace")

	rootCmd.AddCommand(
		newRunCmd(),
		newListCmd(),
		newSweepCmd(),
		newTuneCmd(),
		newGenCmd(),
	)
	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func jsonOutput(cmd *cobra.Command) bool {
	v, _ := cmd.Flags().GetBool("json")
	return v
}
