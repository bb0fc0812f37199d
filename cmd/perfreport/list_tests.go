// cmd/perfreport/list_tests.go
package perfreport

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/mwiater/perfreport/internal/perf"
)

// listTestsCmd implements 'list tests', which shows every registry entry and
// whether the measurement source has samples for it.
var listTestsCmd = &cobra.Command{
	Use:   "tests",
	Short: "List registry tests and whether they were measured",
	Long:  `The 'tests' subcommand lists every test in the registry with its type and method, marking the tests that have measurements. Tests without measurements are left out of reports.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := prepare(cmd)
		if err != nil {
			return err
		}
		defer r.close()

		measuredStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
		missingStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("244"))

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, lipgloss.NewStyle().Bold(true).Render(r.collection.Name+":"))
		for _, tc := range r.registry {
			line := fmt.Sprintf("- %s (%s.%s)", tc.Name, tc.ClassName, tc.Method)
			if entry := r.collection.Test(perf.TestCaseID(tc.Name)); entry != nil {
				fmt.Fprintln(out, "  "+measuredStyle.Render(fmt.Sprintf("%s [%d iterations]", line, len(entry.Iterations))))
			} else {
				fmt.Fprintln(out, "  "+missingStyle.Render(line+" [NO MEASUREMENTS]"))
			}
		}
		return nil
	},
}

func init() {
	listCmd.AddCommand(listTestsCmd)
}
