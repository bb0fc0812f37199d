// internal/perf/aggregate.go
// Package: perf
package perf

import "log/slog"

// Series is the ordered sample sequence of one metric for one test case.
type Series struct {
	Metric string
	Values []float64
}

// Source supplies raw measurements keyed by test-case name.
type Source interface {
	// TestCases returns the names the source holds measurements for.
	TestCases() []string
	// Series returns the metric series recorded for testCase, in source order.
	Series(testCase string) []Series
}

type aggregateOptions struct {
	namespace string
	resolve   UnitResolver
	logger    *slog.Logger
}

// Option configures Aggregate.
type Option func(*aggregateOptions)

// WithUnitResolver replaces the unit heuristic.
func WithUnitResolver(r UnitResolver) Option {
	return func(o *aggregateOptions) {
		if r != nil {
			o.resolve = r
		}
	}
}

// WithUnitTable resolves units from table first, then InferUnit.
func WithUnitTable(table map[string]Unit) Option {
	return WithUnitResolver(TableResolver(table))
}

// WithNamespace sets the namespace of the built collection.
func WithNamespace(ns string) Option {
	return func(o *aggregateOptions) {
		o.namespace = ns
	}
}

// WithLogger sets the logger used for skipped entries.
func WithLogger(l *slog.Logger) Option {
	return func(o *aggregateOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// Aggregate joins registry entries against src by exact test-case name and
// builds the report model for one collection.
//
// The first registry record seen for a name decides its ClassName and Method.
// A repeated name reuses that entry and is not read from the source again.
// Registry entries the source has nothing for are left out.
func Aggregate(name string, registry []TestCase, src Source, opts ...Option) *Collection {
	o := aggregateOptions{resolve: InferUnit, logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}

	c := &Collection{Name: name, Namespace: o.namespace}
	seen := make(map[TestCaseID]bool, len(registry))

	for _, tc := range registry {
		id := TestCaseID(tc.Name)
		if seen[id] {
			o.logger.Debug("duplicate registry entry merged", "test", tc.Name, "type", tc.ClassName, "method", tc.Method)
			continue
		}
		seen[id] = true

		series := src.Series(tc.Name)
		if len(series) == 0 {
			o.logger.Debug("no measurements for test", "test", tc.Name)
			continue
		}

		entry := &TestEntry{ID: id, ClassName: tc.ClassName, Method: tc.Method}
		c.Tests = append(c.Tests, entry)
		for _, s := range series {
			entry.ensureMetric(s.Metric, o.resolve(s.Metric))
			for _, v := range s.Values {
				entry.appendSample(s.Metric, v)
			}
		}
	}

	for _, n := range src.TestCases() {
		if !seen[TestCaseID(n)] {
			o.logger.Debug("measurements without registry entry ignored", "test", n)
		}
	}

	o.logger.Info("aggregation complete", "collection", name, "registry", len(registry), "tests", len(c.Tests))
	return c
}
