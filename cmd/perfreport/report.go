// cmd/perfreport/report.go
package perfreport

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mwiater/perfreport/internal/report"
)

var doneStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))

// reportCmd implements 'report', which aggregates the measurements and writes
// the XML report and the statistics CSV.
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Write the XML report and statistics table",
	Long: `The 'report' command aggregates the measurement CSV against the test registry, writes the
hierarchical XML report (--out) and the flat statistics table as CSV (--stats), then prints the
statistics table. Each output file is replaced only once it has been written completely.`,
	RunE: runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.Flags().StringP("out", "o", "", "XML report destination")
	reportCmd.Flags().String("stats", "", "statistics CSV destination")
	viper.BindPFlag("out", reportCmd.Flags().Lookup("out"))
	viper.BindPFlag("stats", reportCmd.Flags().Lookup("stats"))
}

func runReport(cmd *cobra.Command, args []string) error {
	r, err := prepare(cmd)
	if err != nil {
		return err
	}
	defer r.close()

	out := cmd.OutOrStdout()
	opts := r.reportOptions()

	if r.cfg.Output != "" {
		if err := report.WriteReport(r.cfg.Output, report.Render(r.collection, opts...)); err != nil {
			return err
		}
		fmt.Fprintln(out, doneStyle.Render("Report written to "+r.cfg.Output))
	}

	stats := report.NewStatsTable(r.collection, opts...)
	if r.cfg.StatsOutput != "" {
		if err := report.WriteStatsCSV(r.cfg.StatsOutput, stats); err != nil {
			return err
		}
		fmt.Fprintln(out, doneStyle.Render("Statistics written to "+r.cfg.StatsOutput))
	}

	fmt.Fprintln(out, stats.Render())
	return nil
}
