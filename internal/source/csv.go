// internal/source/csv.go
// Package: source

// Package source reads raw measurements and the test registry from files.
package source

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mwiater/perfreport/internal/perf"
)

// CSV is an in-memory measurement source loaded from rows of
// "test,metric,value". An empty value registers the metric without a sample.
type CSV struct {
	names  []string
	series map[string][]perf.Series
}

// ReadCSV parses measurement rows from r. A first row equal to
// "Test,Metric,Value" (any case) is treated as a header.
func ReadCSV(r io.Reader) (*CSV, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 3
	cr.TrimLeadingSpace = true

	src := &CSV{series: map[string][]perf.Series{}}
	for line := 1; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read measurements: %w", err)
		}
		if line == 1 && isHeader(rec) {
			continue
		}
		test, metric, raw := strings.TrimSpace(rec[0]), strings.TrimSpace(rec[1]), strings.TrimSpace(rec[2])
		if test == "" || metric == "" {
			pos, _ := cr.FieldPos(0)
			return nil, fmt.Errorf("read measurements: line %d: test and metric are required", pos)
		}
		if raw == "" {
			src.add(test, metric)
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			pos, _ := cr.FieldPos(2)
			return nil, fmt.Errorf("read measurements: line %d: invalid value %q: %w", pos, raw, err)
		}
		src.add(test, metric, v)
	}
	return src, nil
}

// LoadCSV reads a measurement file.
func LoadCSV(path string) (*CSV, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open measurements: %w", err)
	}
	defer f.Close()
	return ReadCSV(f)
}

func isHeader(rec []string) bool {
	return strings.EqualFold(strings.TrimSpace(rec[0]), "test") &&
		strings.EqualFold(strings.TrimSpace(rec[1]), "metric") &&
		strings.EqualFold(strings.TrimSpace(rec[2]), "value")
}

func (s *CSV) add(test, metric string, values ...float64) {
	list, ok := s.series[test]
	if !ok {
		s.names = append(s.names, test)
	}
	for i := range list {
		if list[i].Metric == metric {
			list[i].Values = append(list[i].Values, values...)
			return
		}
	}
	s.series[test] = append(list, perf.Series{Metric: metric, Values: values})
}

// TestCases returns test-case names in first-seen order.
func (s *CSV) TestCases() []string {
	return s.names
}

// Series returns the metric series of testCase in first-seen metric order.
func (s *CSV) Series(testCase string) []perf.Series {
	return s.series[testCase]
}
