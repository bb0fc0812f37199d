// internal/perf/stats.go
// Package: perf
package perf

import (
	"math"
	"slices"
)

// Stats summarizes one metric of one test after the warmup skip.
type Stats struct {
	Count  int
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
	Median float64
}

// StatRow is one line of the flat statistics table.
type StatRow struct {
	Test   string
	Metric string // display name
	Stats
}

// ComputeStats applies the warmup policy and summarizes samples.
//
// With more than one sample the first one is dropped. A single sample is used
// as is, which leaves StdDev as NaN (0/0 with Bessel's correction). ok is
// false when samples is empty.
func ComputeStats(samples []float64) (s Stats, ok bool) {
	if len(samples) == 0 {
		return Stats{}, false
	}
	if len(samples) > 1 {
		samples = samples[1:]
	}

	s.Count = len(samples)
	s.Mean, s.StdDev = meanStd(samples)
	s.Min = slices.Min(samples)
	s.Max = slices.Max(samples)
	s.Median = simpleQuantile(samples, 0.5)
	return s, true
}

// Stats returns one row per (test, metric) pair that has samples, in test
// then descriptor order.
func (c *Collection) Stats() []StatRow {
	var rows []StatRow
	for _, t := range c.Tests {
		for _, m := range t.Metrics {
			st, ok := ComputeStats(t.Samples(m.Name))
			if !ok {
				continue
			}
			rows = append(rows, StatRow{Test: string(t.ID), Metric: m.DisplayName, Stats: st})
		}
	}
	return rows
}

// simpleQuantile returns the q-quantile (0..1) of a slice (copy-safe).
func simpleQuantile(values []float64, q float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	cp := slices.Clone(values)
	slices.Sort(cp)
	if q <= 0 {
		return cp[0]
	}
	if q >= 1 {
		return cp[len(cp)-1]
	}
	pos := q * float64(len(cp)-1)
	l := int(math.Floor(pos))
	r := int(math.Ceil(pos))
	if l == r {
		return cp[l]
	}
	frac := pos - float64(l)
	return cp[l]*(1-frac) + cp[r]*frac
}

// meanStd returns the mean and the sample standard deviation (n-1).
func meanStd(values []float64) (mean, std float64) {
	n := float64(len(values))
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean = sum / n
	var varsum float64
	for _, v := range values {
		d := v - mean
		varsum += d * d
	}
	std = math.Sqrt(varsum / (n - 1))
	return
}
