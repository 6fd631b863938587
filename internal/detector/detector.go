// Package detector classifies raw text as JSON, XML or unknown.
package detector

import (
	"regexp"
	"strings"

	"github.com/mcncl/jxview/internal/models"
	"github.com/mcncl/jxview/internal/parser"
)

// tagPattern matches an opening angle bracket followed by a word character.
var tagPattern = regexp.MustCompile(`<\w`)

// Detect returns the document type of text. Leading markup wins over a parse
// attempt, so "<" is always XML and "{" or "[" is always JSON even when the
// rest of the document is malformed.
func Detect(text string) models.DocType {
	trimmed := strings.TrimSpace(text)
	switch {
	case strings.HasPrefix(trimmed, "<"):
		return models.DocXML
	case strings.HasPrefix(trimmed, "{"), strings.HasPrefix(trimmed, "["):
		return models.DocJSON
	}

	if parser.Valid(trimmed) {
		return models.DocJSON
	}
	if tagPattern.MatchString(trimmed) {
		return models.DocXML
	}
	return models.DocUnknown
}
