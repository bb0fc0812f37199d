// cmd/perfreport/run.go
package perfreport

import (
	"log/slog"

	"github.com/k0kubun/pp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mwiater/perfreport/internal/config"
	"github.com/mwiater/perfreport/internal/perf"
	"github.com/mwiater/perfreport/internal/report"
	"github.com/mwiater/perfreport/internal/source"
	"github.com/mwiater/perfreport/internal/telemetry"
)

// run is the state shared by the commands that build a report.
type run struct {
	cfg        config.Config
	registry   []perf.TestCase
	collection *perf.Collection
	closeLog   func() error
}

// prepare resolves the configuration, installs the logger and aggregates the
// configured source against the registry.
func prepare(cmd *cobra.Command) (*run, error) {
	cfg, err := config.Load(viper.GetViper(), viper.GetString("config"))
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	closeLog, err := telemetry.InitLogger(cfg.Debug, cfg.LogFile)
	if err != nil {
		return nil, err
	}
	if cfg.Debug {
		pp.Fprintln(cmd.ErrOrStderr(), cfg)
	}

	registry, err := source.LoadRegistry(cfg.Registry)
	if err != nil {
		closeLog()
		return nil, err
	}
	src, err := source.LoadCSV(cfg.Source)
	if err != nil {
		closeLog()
		return nil, err
	}
	slog.Debug("inputs loaded", "registry", cfg.Registry, "tests", len(registry), "source", cfg.Source, "measured", len(src.TestCases()))

	opts := []perf.Option{perf.WithLogger(slog.Default()), perf.WithNamespace(cfg.Namespace)}
	if units := cfg.UnitTable(); units != nil {
		opts = append(opts, perf.WithUnitTable(units))
	}
	return &run{
		cfg:        cfg,
		registry:   registry,
		collection: perf.Aggregate(cfg.Name, registry, src, opts...),
		closeLog:   closeLog,
	}, nil
}

func (r *run) reportOptions() []report.Option {
	return []report.Option{report.WithNumberFormat(r.cfg.NumberFormat())}
}

func (r *run) close() {
	if err := r.closeLog(); err != nil {
		slog.Error("failed to close log file", "error", err)
	}
}
