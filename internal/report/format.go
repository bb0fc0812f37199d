// internal/report/format.go
// Package: report

// Package report renders an aggregated perf.Collection as an XML document and
// as a flat statistics table.
package report

import (
	"fmt"
	"strconv"
)

// NumberFormat controls how numbers are written. The output never depends on
// the process locale: '.' is the decimal point and there is no grouping.
type NumberFormat struct {
	Verb      byte // strconv verb: 'f', 'g' or 'e'
	Precision int  // -1 for the shortest representation that round-trips
}

// DefaultNumberFormat writes plain decimals such as "11" or "0.125".
var DefaultNumberFormat = NumberFormat{Verb: 'f', Precision: -1}

// Format renders v. NaN and infinities come out as "NaN", "+Inf" and "-Inf".
func (f NumberFormat) Format(v float64) string {
	return strconv.FormatFloat(v, f.Verb, f.Precision, 64)
}

// Validate reports whether the verb is one Format supports.
func (f NumberFormat) Validate() error {
	switch f.Verb {
	case 'f', 'g', 'e':
		return nil
	default:
		return fmt.Errorf("unsupported number format %q (want f, g or e)", f.Verb)
	}
}

type options struct {
	format NumberFormat
}

// Option configures rendering.
type Option func(*options)

// WithNumberFormat sets the number format used for sample and statistic values.
func WithNumberFormat(f NumberFormat) Option {
	return func(o *options) {
		o.format = f
	}
}

func newOptions(opts []Option) options {
	o := options{format: DefaultNumberFormat}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
