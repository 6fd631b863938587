package formatter

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/mcncl/jxview/internal/models"
)

// Highlighter colors formatted JSON or XML for a 256-color terminal.
type Highlighter struct {
	chromaFormatter chroma.Formatter
	chromaStyle     *chroma.Style
}

// NewHighlighter creates a highlighter using the named chroma style,
// falling back to chroma's default style when the name is unknown.
func NewHighlighter(styleName string) *Highlighter {
	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	style := styles.Get(styleName)
	if style == nil {
		style = styles.Fallback
	}

	return &Highlighter{
		chromaFormatter: formatter,
		chromaStyle:     style,
	}
}

// Highlight returns code with ANSI color sequences. Unknown document types
// and lexer failures return the code unchanged.
func (h *Highlighter) Highlight(code string, docType models.DocType) string {
	var language string
	switch docType {
	case models.DocJSON:
		language = "json"
	case models.DocXML:
		language = "xml"
	default:
		return code
	}

	lexer := lexers.Get(language)
	if lexer == nil {
		return code
	}
	lexer = chroma.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return code
	}

	var buf strings.Builder
	if err := h.chromaFormatter.Format(&buf, h.chromaStyle, iterator); err != nil {
		return code
	}
	return buf.String()
}
