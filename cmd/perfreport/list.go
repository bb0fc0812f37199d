// cmd/perfreport/list.go
package perfreport

import (
	"github.com/spf13/cobra"
)

// listCmd is the 'list' command group for subcommands that print the CLI
// tree or the registry.
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Group commands for listing commands and tests",
	Long:  `The 'list' command groups subcommands that list the available commands or the tests of the registry. It performs no action on its own.`,
}

func init() {
	rootCmd.AddCommand(listCmd)
}
