package report

import (
	"bytes"
	"encoding/csv"
	"encoding/xml"
	"errors"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwiater/perfreport/internal/perf"
)

func sample(metric string, v float64) []perf.MetricValue {
	return []perf.MetricValue{{Metric: metric, Value: v}}
}

// testCollection mirrors what the aggregator builds for TestA plus a test
// with an unsampled metric.
func testCollection() *perf.Collection {
	return &perf.Collection{
		Name:      "perf",
		Namespace: "NS",
		Tests: []*perf.TestEntry{
			{
				ID:        "TestA",
				ClassName: "NS.ClassA",
				Method:    "MethodA",
				Metrics: []perf.MetricDescriptor{
					{Name: "Duration", DisplayName: "Duration", Unit: perf.UnitMilliseconds},
				},
				Iterations: []perf.IterationRecord{
					{Index: 0, Values: sample("Duration", 100)},
					{Index: 1, Values: sample("Duration", 10)},
					{Index: 2, Values: sample("Duration", 12)},
					{Index: 3, Values: sample("Duration", 11)},
				},
			},
			{
				ID:        "TestB",
				ClassName: "NS.ClassB",
				Method:    "MethodB",
				Metrics: []perf.MetricDescriptor{
					{Name: "Duration", DisplayName: "Duration", Unit: perf.UnitMilliseconds},
					{Name: "Allocs", DisplayName: "Allocs", Unit: perf.UnitUnknown},
				},
				Iterations: []perf.IterationRecord{
					{Index: 7, Values: sample("Duration", 0.5)},
				},
			},
		},
	}
}

func renderString(t *testing.T, d *Document) string {
	t.Helper()
	var buf bytes.Buffer
	n, err := d.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)
	return buf.String()
}

// iterationIndices collects the index attribute of every iteration element
// per test name.
func iterationIndices(t *testing.T, doc string) map[string][]int {
	t.Helper()
	out := map[string][]int{}
	dec := xml.NewDecoder(strings.NewReader(doc))
	var current string
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		switch se.Name.Local {
		case "test":
			for _, a := range se.Attr {
				if a.Name.Local == "name" {
					current = a.Value
				}
			}
		case "iteration":
			for _, a := range se.Attr {
				if a.Name.Local == "index" {
					i, err := strconv.Atoi(a.Value)
					require.NoError(t, err)
					out[current] = append(out[current], i)
				}
			}
		}
	}
	return out
}

func TestRender_Layout(t *testing.T) {
	doc := renderString(t, Render(testCollection()))

	assert.True(t, strings.HasPrefix(doc, xml.Header))
	assert.Contains(t, doc, `<benchmark name="perf" namespace="NS">`)
	assert.Contains(t, doc, `<test name="TestA" type="NS.ClassA" method="MethodA">`)
	assert.Contains(t, doc, `<Duration displayName="Duration" unit="msec"></Duration>`)
	assert.Contains(t, doc, `<Allocs displayName="Allocs" unit="unknown"></Allocs>`)
	assert.Contains(t, doc, `<iteration index="0" Duration="100"></iteration>`)
	assert.Contains(t, doc, `<iteration index="3" Duration="11"></iteration>`)
	assert.Contains(t, doc, `<iteration index="0" Duration="0.5"></iteration>`)
	assert.NotContains(t, doc, `Allocs="`)
}

func TestRender_OmitsEmptyNamespace(t *testing.T) {
	c := testCollection()
	c.Namespace = ""
	doc := renderString(t, Render(c))
	assert.Contains(t, doc, `<benchmark name="perf">`)
}

func TestRender_IndicesAreContiguous(t *testing.T) {
	c := testCollection()
	c.Tests[0].Iterations[0].Index = 9
	c.Tests[0].Iterations[2].Index = 9
	c.Tests[0].Iterations = append(c.Tests[0].Iterations, perf.IterationRecord{
		Index:  42,
		Values: []perf.MetricValue{{Metric: "Duration", Value: 1}, {Metric: "Allocs", Value: 64}},
	})

	doc := renderString(t, Render(c))
	idx := iterationIndices(t, doc)
	assert.Equal(t, []int{0, 1, 2, 3, 4}, idx["TestA"])
	assert.Equal(t, []int{0}, idx["TestB"])
	assert.Contains(t, doc, `<iteration index="4" Duration="1" Allocs="64"></iteration>`)
}

func TestRender_SanitizesMetricNames(t *testing.T) {
	c := &perf.Collection{
		Name: "perf",
		Tests: []*perf.TestEntry{{
			ID: "T",
			Metrics: []perf.MetricDescriptor{
				{Name: "GC Gen0", DisplayName: "GC Gen0"},
				{Name: "index", DisplayName: "index"},
				{Name: "99th", DisplayName: "99th"},
				{Name: "µs", DisplayName: "µs"},
				{Name: "Größe", DisplayName: "Größe"},
			},
			Iterations: []perf.IterationRecord{
				{Values: sample("GC Gen0", 3)},
				{Values: sample("index", 4)},
				{Values: sample("99th", 5)},
				{Values: sample("µs", 6)},
				{Values: sample("Größe", 7)},
			},
		}},
	}
	doc := renderString(t, Render(c))

	assert.Contains(t, doc, `<GC_Gen0 name="GC Gen0" displayName="GC Gen0" unit="unknown"></GC_Gen0>`)
	assert.Contains(t, doc, `<index_1 name="index" displayName="index" unit="unknown"></index_1>`)
	assert.Contains(t, doc, `<_99th name="99th" displayName="99th" unit="unknown"></_99th>`)
	assert.Contains(t, doc, `<_s name="µs" displayName="µs" unit="unknown"></_s>`)
	assert.Contains(t, doc, `<Größe displayName="Größe" unit="unknown"></Größe>`)
	assert.Contains(t, doc, `<iteration index="0" GC_Gen0="3"></iteration>`)
	assert.Contains(t, doc, `<iteration index="1" index_1="4"></iteration>`)
	assert.Contains(t, doc, `<iteration index="3" _s="6"></iteration>`)

	// the output must stay well-formed
	idx := iterationIndices(t, doc)
	assert.Equal(t, []int{0, 1, 2, 3, 4}, idx["T"])
}

// decodeMetricNames reads back every metric element of the first test and
// maps its XML name to the original metric name.
func decodeMetricNames(t *testing.T, doc string) (names map[string]string, attrs [][]xml.Attr) {
	t.Helper()
	names = map[string]string{}
	dec := xml.NewDecoder(strings.NewReader(doc))
	inMetrics := false
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return names, attrs
		}
		require.NoError(t, err)
		switch el := tok.(type) {
		case xml.StartElement:
			switch {
			case el.Name.Local == "metrics":
				inMetrics = true
			case el.Name.Local == "iteration":
				attrs = append(attrs, el.Attr)
			case inMetrics:
				orig := el.Name.Local
				for _, a := range el.Attr {
					if a.Name.Local == "name" {
						orig = a.Value
					}
				}
				names[el.Name.Local] = orig
			}
		case xml.EndElement:
			if el.Name.Local == "metrics" {
				inMetrics = false
			}
		}
	}
}

func TestRender_MetricNamesStayDistinct(t *testing.T) {
	metrics := []string{"GC Gen0", "GC_Gen0", "index", "_index", "index_1", "µs", "ºC", "ªx"}
	entry := &perf.TestEntry{ID: "T"}
	var values []perf.MetricValue
	for i, m := range metrics {
		entry.Metrics = append(entry.Metrics, perf.MetricDescriptor{Name: m, DisplayName: m})
		values = append(values, perf.MetricValue{Metric: m, Value: float64(i)})
	}
	entry.Iterations = []perf.IterationRecord{{Values: values}}

	doc := renderString(t, Render(&perf.Collection{Name: "perf", Tests: []*perf.TestEntry{entry}}))
	names, attrs := decodeMetricNames(t, doc)

	require.Len(t, names, len(metrics), "every metric needs its own element:\n%s", doc)
	require.Len(t, attrs, 1)

	// every iteration attribute traces back to exactly one metric and value
	got := map[string]string{}
	for _, a := range attrs[0] {
		if a.Name.Local == "index" {
			assert.Equal(t, "0", a.Value)
			continue
		}
		orig, ok := names[a.Name.Local]
		require.True(t, ok, "attribute %s has no metric element", a.Name.Local)
		got[orig] = a.Value
	}
	for i, m := range metrics {
		assert.Equal(t, strconv.Itoa(i), got[m], "value of %s", m)
	}
}

func TestXMLName(t *testing.T) {
	tests := map[string]string{
		"Duration": "Duration",
		"":         "_",
		"9lives":   "_9lives",
		"-x":       "_-x",
		"a:b":      "a_b",
		"µs":       "_s",
		"ºC":       "_C",
		"xmlThing": "_xmlThing",
		"時間":       "時間",
		"a·b":      "a·b",
		"go🚀":      "go_",
	}
	for in, want := range tests {
		assert.Equal(t, want, xmlName(in), "xmlName(%q)", in)
	}
}

func TestRender_NumberFormat(t *testing.T) {
	doc := renderString(t, Render(testCollection(), WithNumberFormat(NumberFormat{Verb: 'f', Precision: 2})))
	assert.Contains(t, doc, `<iteration index="0" Duration="100.00"></iteration>`)
}

func TestRender_NonFiniteValuesPassThrough(t *testing.T) {
	c := testCollection()
	c.Tests[0].Iterations[1].Values = sample("Duration", math.Inf(1))
	c.Tests[0].Iterations[2].Values = sample("Duration", math.NaN())

	doc := renderString(t, Render(c))
	assert.Contains(t, doc, `<iteration index="1" Duration="+Inf"></iteration>`)
	assert.Contains(t, doc, `<iteration index="2" Duration="NaN"></iteration>`)
}

func TestDecodeIsUnsupported(t *testing.T) {
	doc := renderString(t, Render(testCollection()))

	var d Document
	err := xml.Unmarshal([]byte(doc), &d)
	assert.ErrorIs(t, err, ErrReadUnsupported)

	c, err := Parse(strings.NewReader(doc))
	assert.Nil(t, c)
	assert.ErrorIs(t, err, ErrReadUnsupported)
}

func TestStatsTable_Rows(t *testing.T) {
	tbl := NewStatsTable(testCollection())
	rows := tbl.Rows()

	require.Len(t, rows, 2)
	assert.Equal(t, []string{"TestA", "Duration", "3", "11", "1", "10", "12"}, rows[0])
	// one sample: no warmup skip, stddev undefined
	assert.Equal(t, []string{"TestB", "Duration", "1", "0.5", "NaN", "0.5", "0.5"}, rows[1])
}

func TestStatsTable_WriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewStatsTable(testCollection()).WriteCSV(&buf))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"Test Name", "Metric", "Iterations", "AVG", "SD", "MIN", "MAX"}, records[0])
	assert.Equal(t, "TestA", records[1][0])
}

func TestStatsTable_Render(t *testing.T) {
	out := NewStatsTable(testCollection()).Render()
	for _, want := range append(Headers, "TestA", "TestB", "NaN") {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "Allocs")
}

func TestNumberFormat_Validate(t *testing.T) {
	assert.NoError(t, DefaultNumberFormat.Validate())
	assert.NoError(t, NumberFormat{Verb: 'g', Precision: 6}.Validate())
	assert.Error(t, NumberFormat{Verb: 'x'}.Validate())
	assert.Equal(t, "1234567.5", DefaultNumberFormat.Format(1234567.5))
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("success", func(t *testing.T) {
		path := filepath.Join(dir, "out", "report.xml")
		require.NoError(t, WriteReport(path, Render(testCollection())))

		b, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(b), `<benchmark name="perf"`)
	})

	t.Run("render failure leaves nothing behind", func(t *testing.T) {
		sub := filepath.Join(dir, "failing")
		path := filepath.Join(sub, "stats.csv")
		boom := errors.New("boom")
		err := WriteFile(path, func(w io.Writer) error {
			_, _ = io.WriteString(w, "partial")
			return boom
		})
		require.ErrorIs(t, err, boom)

		entries, err := os.ReadDir(sub)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("unwritable destination", func(t *testing.T) {
		blocker := filepath.Join(dir, "blocker")
		require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

		err := WriteStatsCSV(filepath.Join(blocker, "stats.csv"), NewStatsTable(testCollection()))
		assert.Error(t, err)
	})
}
