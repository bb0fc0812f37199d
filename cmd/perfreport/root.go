// cmd/perfreport/root.go
package perfreport

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// rootCmd is the base Cobra command for the perfreport application.
// All subcommands are attached to this root to form the complete CLI.
var rootCmd = &cobra.Command{
	Use:   "perfreport",
	Short: "Aggregate iteration measurements into performance reports",
	Long: `perfreport joins raw per-iteration metric samples with the registry of known tests,
computes per-metric statistics (the first iteration is treated as warmup) and writes an
XML report plus a flat statistics table.`,
	SilenceUsage: true,
}

// Execute runs the root Cobra command and all registered subcommands.
// It prints any returned error and exits the process with a non-zero
// status code on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringP("config", "c", "", "config file (YAML or JSON)")
	flags.StringP("source", "s", "", "measurement CSV (test,metric,value)")
	flags.StringP("registry", "r", "", "test registry (YAML or JSON list of name/type/method)")
	flags.String("name", "perf", "benchmark collection name")
	flags.String("namespace", "", "benchmark collection namespace")
	flags.String("format", "f", "number format verb: f, g or e")
	flags.Int("precision", -1, "digits after the decimal point (-1 for shortest)")
	flags.Bool("debug", false, "enable debug logging and dump the resolved config")
	flags.String("log-file", "", "also write JSON logs to this file")

	// Bind the persistent flags to viper under the config file keys.
	for key, flag := range map[string]string{
		"config":    "config",
		"source":    "source",
		"registry":  "registry",
		"name":      "name",
		"namespace": "namespace",
		"format":    "format",
		"precision": "precision",
		"debug":     "debug",
		"log_file":  "log-file",
	} {
		viper.BindPFlag(key, flags.Lookup(flag))
	}
}
