package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/lineflow/journal"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Inspect journaled replay runs",
	Long: `Query a SQLite run journal.

Subcommands:
  list - List recorded runs, newest first
  show - Show the column summaries of one run

Examples:
  lineflow runs list --db runs.db
  lineflow runs show 01J5... --db runs.db`,
}

var runsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded runs",
	RunE:  runRunsList,
}

var runsShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show the column summaries of one run",
	Args:  cobra.ExactArgs(1),
	RunE:  runRunsShow,
}

var runsDBPath string

func init() {
	rootCmd.AddCommand(runsCmd)
	runsCmd.AddCommand(runsListCmd)
	runsCmd.AddCommand(runsShowCmd)
	runsCmd.PersistentFlags().StringVar(&runsDBPath, "db", "runs.db", "run journal database")
}

func runRunsList(cmd *cobra.Command, args []string) error {
	j, err := journal.NewSQLite(runsDBPath)
	if err != nil {
		return err
	}
	defer j.Close()

	runs, err := j.ListRuns()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "RUN ID\tFEED\tMODE\tBARS\tINDICATORS\tELAPSED")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%s\n",
			r.RunID, r.Feed, r.Mode, r.Bars, r.Indicators, r.Finished.Sub(r.Started))
	}
	return w.Flush()
}

func runRunsShow(cmd *cobra.Command, args []string) error {
	j, err := journal.NewSQLite(runsDBPath)
	if err != nil {
		return err
	}
	defer j.Close()

	run, err := j.GetRun(args[0])
	if err != nil {
		return err
	}
	sums, err := j.ListSummaries(run.RunID)
	if err != nil {
		return err
	}

	fmt.Printf("run %s: %s over %s, %d bars\n\n", run.RunID, run.Mode, run.Feed, run.Bars)
	w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "INDICATOR\tLINE\tWARMUP\tDEFINED\tMEAN\tSTDDEV\tMIN\tMAX")
	for _, s := range sums {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%.4f\t%.4f\t%.4f\t%.4f\n",
			s.Indicator, s.Line, s.MinPeriod, s.Defined, s.Mean, s.StdDev, s.Min, s.Max)
	}
	return w.Flush()
}
