// cmd/perfreport/view.go
package perfreport

import (
	"github.com/spf13/cobra"

	"github.com/mwiater/perfreport/internal/cli"
	"github.com/mwiater/perfreport/internal/report"
)

var startViewer = cli.StartViewer

// viewCmd represents the 'view' command.
var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Browse the statistics interactively",
	Long:  `The 'view' command opens an interactive table of the statistics. Press enter on a row to see its details, including the median, and q to quit.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := prepare(cmd)
		if err != nil {
			return err
		}
		defer r.close()

		title := r.collection.Name
		if r.collection.Namespace != "" {
			title = r.collection.Namespace + " / " + title
		}
		return startViewer(title, report.NewStatsTable(r.collection, r.reportOptions()...))
	},
}

func init() {
	rootCmd.AddCommand(viewCmd)
}
