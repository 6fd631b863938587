package formatter

import (
	"regexp"
	"strings"

	"github.com/go-xmlfmt/xmlfmt"

	"github.com/mcncl/jxview/internal/models"
)

// XML formatting engines.
const (
	XMLEngineBuiltin = "builtin"
	XMLEngineXMLFmt  = "xmlfmt"
)

// DefaultIndent matches JSON.stringify(value, null, 2).
const DefaultIndent = 2

// Formatter pretty-prints and compacts JSON values and XML text.
type Formatter struct {
	indent    string
	xmlEngine string
}

// Option configures a Formatter.
type Option func(*Formatter)

// WithIndent sets the number of spaces per nesting level. Values below 1
// produce compact output, like JSON.stringify with a zero indent.
func WithIndent(spaces int) Option {
	return func(f *Formatter) {
		if spaces < 0 {
			spaces = 0
		}
		f.indent = strings.Repeat(" ", spaces)
	}
}

// WithXMLEngine selects the XML pretty printer.
func WithXMLEngine(engine string) Option {
	return func(f *Formatter) {
		f.xmlEngine = engine
	}
}

// NewFormatter creates a new Formatter instance
func NewFormatter(opts ...Option) *Formatter {
	f := &Formatter{
		indent:    strings.Repeat(" ", DefaultIndent),
		xmlEngine: XMLEngineBuiltin,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// FormatJSON renders v with the configured indentation.
func (f *Formatter) FormatJSON(v models.JSONValue) string {
	var b strings.Builder
	writeValue(&b, v, f.indent, 0)
	return b.String()
}

// MinifyJSON renders v without any insignificant whitespace.
func (f *Formatter) MinifyJSON(v models.JSONValue) string {
	var b strings.Builder
	writeValue(&b, v, "", 0)
	return b.String()
}

var (
	tagBoundary   = regexp.MustCompile(`(>)\s*(<)`)
	closingTag    = regexp.MustCompile(`^</\w`)
	openingTag    = regexp.MustCompile(`^<\w[^>]*[^/]>.*$`)
	inlineElement = regexp.MustCompile(`^<\w[^>]*>.*</\w`)
	spaceBetween  = regexp.MustCompile(`>\s+<`)
	spaceRun      = regexp.MustCompile(`\s+`)
)

// FormatXML indents XML text. The builtin engine is a line-based heuristic:
// every tag starts a line, a closing tag dedents, and an opening tag that is
// not closed on the same line indents what follows. It never parses the
// document, so malformed input is reformatted rather than rejected.
func (f *Formatter) FormatXML(text string) string {
	if f.xmlEngine == XMLEngineXMLFmt {
		formatted := xmlfmt.FormatXML(text, "", "  ")
		return strings.TrimSpace(strings.ReplaceAll(formatted, "\r\n", "\n"))
	}

	tab := "  "
	indent := 0
	var b strings.Builder
	for _, line := range strings.Split(tagBoundary.ReplaceAllString(text, "$1\n$2"), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if closingTag.MatchString(line) {
			indent--
		}
		b.WriteString(strings.Repeat(tab, max(0, indent)))
		b.WriteString(line)
		b.WriteString("\n")
		if openingTag.MatchString(line) && !inlineElement.MatchString(line) {
			indent++
		}
	}
	return strings.TrimSpace(b.String())
}

// MinifyXML removes whitespace between tags and collapses whitespace runs.
func (f *Formatter) MinifyXML(text string) string {
	text = spaceBetween.ReplaceAllString(text, "><")
	return strings.TrimSpace(spaceRun.ReplaceAllString(text, " "))
}
