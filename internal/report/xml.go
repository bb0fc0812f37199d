// internal/report/xml.go
// Package: report
package report

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/mwiater/perfreport/internal/perf"
)

// ErrReadUnsupported is returned by every attempt to decode a report.
var ErrReadUnsupported = errors.New("report: reading the XML report format is not supported")

// Document is the rendered, write-only form of a collection.
type Document struct {
	collection *perf.Collection
	opts       options
}

// Render builds the XML document for c.
func Render(c *perf.Collection, opts ...Option) *Document {
	return &Document{collection: c, opts: newOptions(opts)}
}

// Parse always fails with ErrReadUnsupported.
func Parse(io.Reader) (*perf.Collection, error) {
	return nil, ErrReadUnsupported
}

// UnmarshalXML always fails with ErrReadUnsupported.
func (d *Document) UnmarshalXML(*xml.Decoder, xml.StartElement) error {
	return ErrReadUnsupported
}

// MarshalXML writes the benchmark element. Iteration indices are assigned in
// emission order starting at 0.
func (d *Document) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	c := d.collection
	root := xml.StartElement{
		Name: xml.Name{Local: "benchmark"},
		Attr: []xml.Attr{attr("name", c.Name)},
	}
	if c.Namespace != "" {
		root.Attr = append(root.Attr, attr("namespace", c.Namespace))
	}
	if err := e.EncodeToken(root); err != nil {
		return err
	}
	for _, t := range c.Tests {
		if err := d.encodeTest(e, t); err != nil {
			return fmt.Errorf("encode test %s: %w", t.ID, err)
		}
	}
	return e.EncodeToken(root.End())
}

func (d *Document) encodeTest(e *xml.Encoder, t *perf.TestEntry) error {
	test := xml.StartElement{
		Name: xml.Name{Local: "test"},
		Attr: []xml.Attr{
			attr("name", string(t.ID)),
			attr("type", t.ClassName),
			attr("method", t.Method),
		},
	}
	if err := e.EncodeToken(test); err != nil {
		return err
	}

	names := newNameTable(t.Metrics)

	metrics := xml.StartElement{Name: xml.Name{Local: "metrics"}}
	if err := e.EncodeToken(metrics); err != nil {
		return err
	}
	for _, m := range t.Metrics {
		local := names.name(m.Name)
		el := xml.StartElement{
			Name: xml.Name{Local: local},
			Attr: []xml.Attr{
				attr("displayName", m.DisplayName),
				attr("unit", m.Unit.String()),
			},
		}
		if local != m.Name {
			el.Attr = append([]xml.Attr{attr("name", m.Name)}, el.Attr...)
		}
		if err := encodeEmpty(e, el); err != nil {
			return err
		}
	}
	if err := e.EncodeToken(metrics.End()); err != nil {
		return err
	}

	iterations := xml.StartElement{Name: xml.Name{Local: "iterations"}}
	if err := e.EncodeToken(iterations); err != nil {
		return err
	}
	for i, it := range t.Iterations {
		el := xml.StartElement{
			Name: xml.Name{Local: "iteration"},
			Attr: []xml.Attr{attr("index", strconv.Itoa(i))},
		}
		for _, v := range it.Values {
			el.Attr = append(el.Attr, attr(names.name(v.Metric), d.opts.format.Format(v.Value)))
		}
		if err := encodeEmpty(e, el); err != nil {
			return err
		}
	}
	if err := e.EncodeToken(iterations.End()); err != nil {
		return err
	}

	return e.EncodeToken(test.End())
}

// WriteTo writes the XML declaration followed by the indented document.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	if _, err := io.WriteString(cw, xml.Header); err != nil {
		return cw.n, err
	}
	enc := xml.NewEncoder(cw)
	enc.Indent("", "  ")
	if err := enc.Encode(d); err != nil {
		return cw.n, fmt.Errorf("encode report: %w", err)
	}
	if err := enc.Close(); err != nil {
		return cw.n, err
	}
	_, err := io.WriteString(cw, "\n")
	return cw.n, err
}

func encodeEmpty(e *xml.Encoder, el xml.StartElement) error {
	if err := e.EncodeToken(el); err != nil {
		return err
	}
	return e.EncodeToken(el.End())
}

func attr(name, value string) xml.Attr {
	return xml.Attr{Name: xml.Name{Local: name}, Value: value}
}

// nameTable maps the metric names of one test to distinct XML names. The
// same name is used for the metric element and the iteration attribute.
// "index" is reserved for the iteration index.
type nameTable struct {
	byMetric map[string]string
	taken    map[string]bool
}

func newNameTable(metrics []perf.MetricDescriptor) *nameTable {
	nt := &nameTable{
		byMetric: make(map[string]string, len(metrics)),
		taken:    map[string]bool{"index": true},
	}
	for _, m := range metrics {
		nt.name(m.Name)
	}
	return nt
}

// name returns the XML name of metric, assigning one on first use. A
// sanitized name that is already taken gets a numeric suffix.
func (nt *nameTable) name(metric string) string {
	if n, ok := nt.byMetric[metric]; ok {
		return n
	}
	base := xmlName(metric)
	n := base
	for i := 1; nt.taken[n]; i++ {
		n = base + "_" + strconv.Itoa(i)
	}
	nt.taken[n] = true
	nt.byMetric[metric] = n
	return n
}

// xmlName turns a metric name into a valid XML name. Runes outside the XML
// NameChar production become '_' and a name that cannot start an XML name
// gets a '_' prefix. ':' is replaced so the name stays free of namespaces.
func xmlName(s string) string {
	if s == "" {
		return "_"
	}
	var b strings.Builder
	for i, r := range s {
		switch {
		case isNameStartChar(r):
			b.WriteRune(r)
		case isNameChar(r):
			if i == 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	out := b.String()
	if len(out) >= 3 && strings.EqualFold(out[:3], "xml") {
		out = "_" + out
	}
	return out
}

// nameStartRanges is the non-ASCII part of the XML 1.0 NameStartChar
// production.
var nameStartRanges = [][2]rune{
	{0xC0, 0xD6}, {0xD8, 0xF6}, {0xF8, 0x2FF}, {0x370, 0x37D},
	{0x37F, 0x1FFF}, {0x200C, 0x200D}, {0x2070, 0x218F}, {0x2C00, 0x2FEF},
	{0x3001, 0xD7FF}, {0xF900, 0xFDCF}, {0xFDF0, 0xFFFD}, {0x10000, 0xEFFFF},
}

func inNameStartRanges(r rune) bool {
	for _, rg := range nameStartRanges {
		if r >= rg[0] && r <= rg[1] {
			return true
		}
	}
	return false
}

// isNameStartChar reports whether r may start a name. Non-ASCII runes must
// also be letters, which keeps symbols such as emoji out even where the
// production would admit them and encoding/xml would not.
func isNameStartChar(r rune) bool {
	switch {
	case r == '_', 'a' <= r && r <= 'z', 'A' <= r && r <= 'Z':
		return true
	case r < 0x80:
		return false
	}
	return inNameStartRanges(r) && unicode.IsLetter(r)
}

func isNameChar(r rune) bool {
	switch {
	case isNameStartChar(r):
		return true
	case r == '-', r == '.', '0' <= r && r <= '9':
		return true
	case r == 0xB7, 0x300 <= r && r <= 0x36F:
		return true
	case r < 0x80:
		return false
	}
	return inNameStartRanges(r) && (unicode.IsDigit(r) || unicode.IsMark(r))
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
