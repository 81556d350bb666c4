/*
Package main is the entry point for the swipepilot CLI.

swipepilot automates swipe sessions on a dating profile: it drives a real
Chrome instance, reads each candidate card, scores it, executes the swipe
and records the outcome for later reporting, A/B comparison and model
training.

Usage:
  swipepilot [command]

Available Commands:
  run         Launch the browser and run an autoswipe session
  report      Summarize an account's swipe history
  abtest      Compare match rates between two profile variants
  train       Train the scoring model on recorded swipe outcomes
  help        Help about any command
*/
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"swipepilot/internal/cli"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "swipepilot",
		Short:         "Automated swipe sessions with scoring, reporting and A/B testing",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		cli.NewRunCmd(),
		cli.NewReportCmd(),
		cli.NewABTestCmd(),
		cli.NewTrainCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
