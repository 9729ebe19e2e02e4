// Package report reads JUnit-style XML test reports.
//
// A report is addressed positionally: the root's first child element is the summary
// (usually "testsuite"), and the summary's first child element holds the properties.
package report

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// VersionProperty is the property name carrying the build version.
const VersionProperty = "version"

// Element is a generic XML element.
type Element struct {
	XMLName  xml.Name
	Attrs    []xml.Attr `xml:",any,attr"`
	Children []Element  `xml:",any"`
}

// Attr returns the value of the attribute with the given local name.
func (e *Element) Attr(name string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

// FirstChild returns the first child element, or nil.
func (e *Element) FirstChild() *Element {
	if len(e.Children) == 0 {
		return nil
	}
	return &e.Children[0]
}

// Property is a name/value pair from the report's properties block.
type Property struct {
	Name  string
	Value string
}

// Report is a parsed test report together with its raw bytes.
type Report struct {
	path    string
	raw     []byte
	root    Element
	summary *Element
}

var byteOrderMarks = [][]byte{
	{0xEF, 0xBB, 0xBF},
	{0xFF, 0xFE},
	{0xFE, 0xFF},
}

func hasBOM(data []byte) bool {
	for _, bom := range byteOrderMarks {
		if bytes.HasPrefix(data, bom) {
			return true
		}
	}
	return false
}

// charsetReader decodes documents that declare a non UTF-8 encoding. Input already
// transcoded from a byte order mark is passed through whatever its declaration says.
func charsetReader(transcoded bool) func(string, io.Reader) (io.Reader, error) {
	return func(label string, input io.Reader) (io.Reader, error) {
		if transcoded {
			return input, nil
		}
		enc, err := htmlindex.Get(label)
		if err != nil {
			return nil, fmt.Errorf("unsupported encoding %q: %w", label, err)
		}
		return enc.NewDecoder().Reader(input), nil
	}
}

// Parse decodes data as a test report. Documents starting with a byte order mark are
// decoded as UTF-8 or UTF-16 accordingly; other encodings come from the XML declaration.
func Parse(data []byte) (*Report, error) {
	var in io.Reader = bytes.NewReader(data)
	transcoded := hasBOM(data)
	if transcoded {
		in = transform.NewReader(in, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
	}

	var root Element
	dec := xml.NewDecoder(in)
	dec.Strict = true
	dec.CharsetReader = charsetReader(transcoded)
	if err := dec.Decode(&root); err != nil {
		return nil, fmt.Errorf("parsing XML report: %w", err)
	}

	r := &Report{raw: data, root: root}
	r.summary = r.root.FirstChild()
	if r.summary == nil {
		return nil, fmt.Errorf("report root <%s> has no summary element", root.XMLName.Local)
	}
	return r, nil
}

// Load reads and parses the report at path. Compressed inputs are expanded first.
func Load(path string) (*Report, error) {
	data, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	r, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	r.path = path
	return r, nil
}

// Path returns the file the report was loaded from, if any.
func (r *Report) Path() string { return r.path }

// Raw returns the report's XML bytes exactly as read.
func (r *Report) Raw() []byte { return r.raw }

// Summary returns the root's first child element.
func (r *Report) Summary() *Element { return r.summary }

// Name returns the summary's name attribute, which is the platform the report was produced on.
func (r *Report) Name() (string, error) {
	return r.summaryAttr("name")
}

// Count returns an integer attribute of the summary, such as "errors" or "failures".
func (r *Report) Count(attr string) (int, error) {
	v, err := r.summaryAttr(attr)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, fmt.Errorf("attribute %q of <%s> is not an integer: %w", attr, r.summary.XMLName.Local, err)
	}
	return n, nil
}

// Properties returns the children of the summary's first child element.
// Every child must carry a name attribute.
func (r *Report) Properties() ([]Property, error) {
	block := r.summary.FirstChild()
	if block == nil {
		return nil, nil
	}

	props := make([]Property, 0, len(block.Children))
	for i := range block.Children {
		child := &block.Children[i]
		name, ok := child.Attr("name")
		if !ok {
			return nil, fmt.Errorf("<%s> #%d in <%s> has no name attribute", child.XMLName.Local, i, block.XMLName.Local)
		}
		value, _ := child.Attr("value")
		props = append(props, Property{Name: name, Value: value})
	}
	return props, nil
}

// Version returns the value of the version property. When several are present the last wins.
func (r *Report) Version() (string, bool, error) {
	props, err := r.Properties()
	if err != nil {
		return "", false, err
	}

	version, found := "", false
	for _, p := range props {
		if p.Name == VersionProperty {
			version, found = p.Value, true
		}
	}
	return version, found, nil
}

func (r *Report) summaryAttr(name string) (string, error) {
	v, ok := r.summary.Attr(name)
	if !ok {
		return "", fmt.Errorf("attribute %q missing on <%s>", name, r.summary.XMLName.Local)
	}
	return v, nil
}
