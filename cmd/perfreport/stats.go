// cmd/perfreport/stats.go
package perfreport

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mwiater/perfreport/internal/report"
)

var statsCSV bool

// statsCmd implements 'stats', which prints the statistics table only.
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print the statistics table",
	Long:  `The 'stats' command aggregates the measurements and prints one row per test and metric with the iteration count, mean, standard deviation, minimum and maximum. The first iteration of each metric is skipped as warmup when there is more than one.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := prepare(cmd)
		if err != nil {
			return err
		}
		defer r.close()

		stats := report.NewStatsTable(r.collection, r.reportOptions()...)
		if statsCSV {
			return stats.WriteCSV(cmd.OutOrStdout())
		}
		fmt.Fprintln(cmd.OutOrStdout(), stats.Render())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().BoolVar(&statsCSV, "csv", false, "print CSV instead of a table")
}
