package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "lineflow",
	Short: "An indicator evaluation engine for historical bar data",
	Long: `Lineflow replays historical bar data through a set of technical
indicators and journals the results.

It provides tools for:
  - Replaying CSV bar files bar by bar or in one batch pass
  - Evaluating moving averages, oscillators and volatility measures
  - Resampling a fast feed to a slower cadence
  - Journaling run results to CSV or SQLite

Complete documentation is available at https://github.com/rustyeddy/lineflow`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}
