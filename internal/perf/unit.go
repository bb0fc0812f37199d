// internal/perf/unit.go
// Package: perf
package perf

import "strings"

// Unit is the measurement unit of a metric.
type Unit int

const (
	UnitUnknown Unit = iota
	UnitMilliseconds
)

// DurationMetric is the metric name recognized as a wall-clock duration.
const DurationMetric = "Duration"

// String returns the label written to reports.
func (u Unit) String() string {
	switch u {
	case UnitMilliseconds:
		return "msec"
	default:
		return "unknown"
	}
}

// ParseUnit maps a label back to a Unit. Unrecognized labels are UnitUnknown.
func ParseUnit(label string) Unit {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "msec", "ms", "millisecond", "milliseconds":
		return UnitMilliseconds
	default:
		return UnitUnknown
	}
}

// UnitResolver picks the unit for a metric name.
type UnitResolver func(metric string) Unit

// InferUnit is the default heuristic: only a metric literally named
// "Duration" is treated as milliseconds. It is a guess, not a contract with
// the measurement source.
func InferUnit(metric string) Unit {
	if metric == DurationMetric {
		return UnitMilliseconds
	}
	return UnitUnknown
}

// TableResolver looks metric names up in table and falls back to InferUnit.
func TableResolver(table map[string]Unit) UnitResolver {
	return func(metric string) Unit {
		if u, ok := table[metric]; ok {
			return u
		}
		return InferUnit(metric)
	}
}
