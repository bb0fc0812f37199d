// internal/config/config.go
// Package: config

// Package config resolves perfreport settings from flags, an optional config
// file and PERFREPORT_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/mwiater/perfreport/internal/perf"
	"github.com/mwiater/perfreport/internal/report"
)

var (
	ErrMissingSource   = errors.New("a measurement source is required (--source)")
	ErrMissingRegistry = errors.New("a test registry is required (--registry)")
)

// UnitMapping assigns a unit label to a metric. It is a list entry rather
// than a map key because viper lowercases map keys.
type UnitMapping struct {
	Metric string `mapstructure:"metric"`
	Unit   string `mapstructure:"unit"`
}

// Config holds the resolved settings of one run.
type Config struct {
	Name        string        `mapstructure:"name"`
	Namespace   string        `mapstructure:"namespace"`
	Source      string        `mapstructure:"source"`
	Registry    string        `mapstructure:"registry"`
	Output      string        `mapstructure:"out"`
	StatsOutput string        `mapstructure:"stats"`
	Format      string        `mapstructure:"format"`
	Precision   int           `mapstructure:"precision"`
	Units       []UnitMapping `mapstructure:"units"`
	Debug       bool          `mapstructure:"debug"`
	LogFile     string        `mapstructure:"log_file"`
}

// SetDefaults registers default values on v. Every key gets one so that
// environment overrides reach Unmarshal.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("name", "perf")
	v.SetDefault("namespace", "")
	v.SetDefault("source", "")
	v.SetDefault("registry", "")
	v.SetDefault("out", "")
	v.SetDefault("stats", "")
	v.SetDefault("log_file", "")
	v.SetDefault("format", "f")
	v.SetDefault("precision", -1)
	v.SetDefault("debug", false)
}

// Load reads cfgFile (when set) and the environment into v and returns the
// resolved configuration.
func Load(v *viper.Viper, cfgFile string) (Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix("PERFREPORT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("could not read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("could not decode config: %w", err)
	}
	return cfg, nil
}

// Validate checks the settings needed to build a report.
func (c Config) Validate() error {
	if c.Source == "" {
		return ErrMissingSource
	}
	if c.Registry == "" {
		return ErrMissingRegistry
	}
	return c.NumberFormat().Validate()
}

// NumberFormat returns the configured number format.
func (c Config) NumberFormat() report.NumberFormat {
	nf := report.NumberFormat{Verb: 'f', Precision: c.Precision}
	if c.Format != "" {
		nf.Verb = c.Format[0]
		if len(c.Format) > 1 {
			nf.Verb = 0
		}
	}
	return nf
}

// UnitTable converts the configured unit labels.
func (c Config) UnitTable() map[string]perf.Unit {
	if len(c.Units) == 0 {
		return nil
	}
	out := make(map[string]perf.Unit, len(c.Units))
	for _, m := range c.Units {
		out[m.Metric] = perf.ParseUnit(m.Unit)
	}
	return out
}
