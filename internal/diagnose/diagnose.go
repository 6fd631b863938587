// Package diagnose turns parser failures into a positioned, human-readable
// report and attaches the auto-fixer's suggestion when one exists.
package diagnose

import (
	stderrors "errors"
	"regexp"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/mcncl/jxview/internal/errors"
	"github.com/mcncl/jxview/internal/fixer"
	"github.com/mcncl/jxview/internal/models"
)

const (
	DefaultContextLines = 2
	DefaultMaxDiffLines = 30

	// gutterWidth is the width of "NNNN │ → " in front of every context line.
	gutterWidth = 9
)

var (
	positionPattern = regexp.MustCompile(`(?i)position\s+(\d+)`)
	columnPattern   = regexp.MustCompile(`(?i)column\s+(\d+)`)
)

// ContextLine is one source line shown around the failure.
type ContextLine struct {
	Number int
	Text   string
	Error  bool
}

// DiffLine is one line of the fixed document.
type DiffLine struct {
	Text  string
	Added bool
}

// Diagnosis is the content of the error panel.
type Diagnosis struct {
	Type    models.DocType
	Title   string
	Message string

	// Position is the character offset of the failure, or -1.
	Position int
	Line     int
	Column   int
	Context  []ContextLine
	// CaretIndent is the number of columns before the caret under the
	// erroring character.
	CaretIndent int

	Fix           *fixer.Result
	Diff          []DiffLine
	DiffTotal     int
	DiffTruncated bool
}

// HasContext reports whether a source excerpt is available.
func (d *Diagnosis) HasContext() bool {
	return len(d.Context) > 0
}

// HasFix reports whether an automatic repair was found.
func (d *Diagnosis) HasFix() bool {
	return d.Fix != nil
}

// Diagnoser builds diagnoses for JSON and XML failures.
type Diagnoser struct {
	fixer        *fixer.Fixer
	contextLines int
	maxDiffLines int
}

// Option configures a Diagnoser.
type Option func(*Diagnoser)

// WithContextLines sets how many lines are shown on each side of the failure.
func WithContextLines(n int) Option {
	return func(d *Diagnoser) {
		if n >= 0 {
			d.contextLines = n
		}
	}
}

// WithMaxDiffLines caps the number of fix lines shown.
func WithMaxDiffLines(n int) Option {
	return func(d *Diagnoser) {
		if n > 0 {
			d.maxDiffLines = n
		}
	}
}

// New creates a Diagnoser. A nil fixer disables fix suggestions.
func New(f *fixer.Fixer, opts ...Option) *Diagnoser {
	d := &Diagnoser{
		fixer:        f,
		contextLines: DefaultContextLines,
		maxDiffLines: DefaultMaxDiffLines,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Diagnose explains a JSON parse failure of text.
func (d *Diagnoser) Diagnose(text string, err error) *Diagnosis {
	message := messageOf(err)
	diag := &Diagnosis{
		Type:     models.DocJSON,
		Title:    "JSON parse error",
		Message:  message,
		Position: -1,
	}

	if offset, ok := ExtractOffset(message); ok {
		diag.Position = offset
		diag.Line, diag.Column = LineColumn(text, offset)

		lines := strings.Split(text, "\n")
		if diag.Line <= len(lines) {
			start := max(0, diag.Line-1-d.contextLines)
			end := min(len(lines), diag.Line+d.contextLines)
			for i := start; i < end; i++ {
				diag.Context = append(diag.Context, ContextLine{
					Number: i + 1,
					Text:   lines[i],
					Error:  i+1 == diag.Line,
				})
			}
			diag.CaretIndent = caretIndent(lines[diag.Line-1], diag.Column)
		}
	}

	if d.fixer != nil {
		if result, ok := d.fixer.Fix(text); ok {
			diag.Fix = &result
			diag.Diff, diag.DiffTotal = Diff(text, result.Output, d.maxDiffLines)
			diag.DiffTruncated = diag.DiffTotal > len(diag.Diff)
		}
	}
	return diag
}

// XML explains an XML well-formedness failure. XML is never auto-fixed.
func (d *Diagnoser) XML(err error) *Diagnosis {
	return &Diagnosis{
		Type:     models.DocXML,
		Title:    "XML parse error",
		Message:  messageOf(err),
		Position: -1,
	}
}

func messageOf(err error) string {
	if err == nil {
		return "unknown error"
	}
	var appErr *errors.AppError
	if stderrors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}

// ExtractOffset finds the character offset in a parser message, trying
// "position N" before "column N".
func ExtractOffset(message string) (int, bool) {
	for _, pattern := range []*regexp.Regexp{positionPattern, columnPattern} {
		if m := pattern.FindStringSubmatch(message); m != nil {
			n, err := strconv.Atoi(m[1])
			if err == nil {
				return n, true
			}
		}
	}
	return 0, false
}

// LineColumn converts a character offset into a 1-based line and column.
// Offsets past the end are clamped to the end of the text.
func LineColumn(text string, offset int) (line, col int) {
	line, col = 1, 1
	i := 0
	for _, r := range text {
		if i >= offset {
			break
		}
		if r == '\n' {
			line++
			col = 1
		} else {
			col++
		}
		i++
	}
	return line, col
}

func caretIndent(line string, col int) int {
	runes := []rune(line)
	if col-1 < len(runes) {
		runes = runes[:col-1]
	}
	return gutterWidth + runewidth.StringWidth(string(runes)) + max(0, col-1-len(runes))
}

// Diff marks each line of fixed as added when its trimmed content is not
// empty and appears nowhere in original. It returns at most limit lines and
// the total line count of fixed.
func Diff(original, fixed string, limit int) ([]DiffLine, int) {
	seen := make(map[string]struct{})
	for _, line := range strings.Split(original, "\n") {
		seen[strings.TrimSpace(line)] = struct{}{}
	}

	lines := strings.Split(fixed, "\n")
	shown := lines
	if limit > 0 && len(shown) > limit {
		shown = shown[:limit]
	}

	diff := make([]DiffLine, len(shown))
	for i, line := range shown {
		trimmed := strings.TrimSpace(line)
		_, old := seen[trimmed]
		diff[i] = DiffLine{Text: line, Added: trimmed != "" && !old}
	}
	return diff, len(lines)
}
