// internal/perf/model.go
// Package: perf
package perf

// TestCaseID names a logical test within one benchmark collection.
type TestCaseID string

// TestCase is one record from the test registry.
type TestCase struct {
	Name      string `yaml:"name" json:"name"`     // display name, joined against the source
	ClassName string `yaml:"type" json:"type"`     // enclosing type, e.g. "NS.ClassA"
	Method    string `yaml:"method" json:"method"` // method name
}

// MetricValue is a single (metric, value) pair carried by an IterationRecord.
type MetricValue struct {
	Metric string
	Value  float64
}

// IterationRecord is one executed iteration. Values keeps insertion order.
type IterationRecord struct {
	Index  int
	Values []MetricValue
}

// Value returns the sample recorded for metric, if any.
func (r IterationRecord) Value(metric string) (float64, bool) {
	for _, v := range r.Values {
		if v.Metric == metric {
			return v.Value, true
		}
	}
	return 0, false
}

// MetricDescriptor is the metadata for one metric of a test.
type MetricDescriptor struct {
	Name        string
	DisplayName string
	Unit        Unit
}

// TestEntry holds everything recorded for one test case.
//
// Every metric referenced by an IterationRecord has a descriptor in Metrics,
// and Iterations is kept in the order samples were observed.
type TestEntry struct {
	ID         TestCaseID
	ClassName  string
	Method     string
	Metrics    []MetricDescriptor
	Iterations []IterationRecord
}

// Metric returns the descriptor for name.
func (e *TestEntry) Metric(name string) (MetricDescriptor, bool) {
	for _, m := range e.Metrics {
		if m.Name == name {
			return m, true
		}
	}
	return MetricDescriptor{}, false
}

// Samples returns the ordered samples recorded for metric.
func (e *TestEntry) Samples(metric string) []float64 {
	var out []float64
	for _, it := range e.Iterations {
		if v, ok := it.Value(metric); ok {
			out = append(out, v)
		}
	}
	return out
}

func (e *TestEntry) ensureMetric(name string, unit Unit) {
	if _, ok := e.Metric(name); ok {
		return
	}
	e.Metrics = append(e.Metrics, MetricDescriptor{Name: name, DisplayName: name, Unit: unit})
}

func (e *TestEntry) appendSample(metric string, value float64) {
	e.Iterations = append(e.Iterations, IterationRecord{
		Index:  len(e.Iterations),
		Values: []MetricValue{{Metric: metric, Value: value}},
	})
}

// Collection is the top-level container of a report. Tests are unique by ID.
type Collection struct {
	Name      string
	Namespace string
	Tests     []*TestEntry
}

// Test returns the entry for id, or nil.
func (c *Collection) Test(id TestCaseID) *TestEntry {
	for _, t := range c.Tests {
		if t.ID == id {
			return t
		}
	}
	return nil
}
