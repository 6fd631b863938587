package fixer

import (
	"regexp"
	"strings"
)

// Rule is a single named text transform. Apply returns the transformed text
// and whether anything changed.
type Rule struct {
	ID          string
	Name        string
	Description string
	Apply       func(text string) (string, bool)
}

// Rule identifiers, in priority order.
const (
	RuleTrailingCommas   = "trailing-commas"
	RuleSingleQuotes     = "single-quotes"
	RuleUnquotedKeys     = "unquoted-keys"
	RuleComments         = "comments"
	RuleMissingCommas    = "missing-commas"
	RuleUnclosedBrackets = "unclosed-brackets"
)

var (
	trailingComma    = regexp.MustCompile(`,\s*([\]}])`)
	firstBareKey     = regexp.MustCompile(`{\s*(\w+)\s*:`)
	nextBareKey      = regexp.MustCompile(`,\s*(\w+)\s*:`)
	lineComment      = regexp.MustCompile(`(?m)//.*$`)
	blockComment     = regexp.MustCompile(`/\*[\s\S]*?\*/`)
	stringThenString = regexp.MustCompile(`"\s*\n\s*"`)
	objectThenString = regexp.MustCompile(`}\s*\n\s*"`)
	arrayThenString  = regexp.MustCompile(`]\s*\n\s*"`)
)

// DefaultRules returns the built-in rules in the order they are tried.
//
// The rules are textual heuristics, not a parser. The key-quoting rule quotes
// anything shaped like `word:` after { or , and can therefore touch string
// contents; the bracket rule only counts characters and cannot repair
// interleaved nesting.
func DefaultRules() []Rule {
	return []Rule{
		{
			ID:          RuleTrailingCommas,
			Name:        "Remove trailing commas",
			Description: "Removed trailing commas before a closing brace or bracket",
			Apply:       replacer(trailingComma, "$1"),
		},
		{
			ID:          RuleSingleQuotes,
			Name:        "Single quotes to double quotes",
			Description: "Replaced single quotes with standard double quotes",
			Apply: func(text string) (string, bool) {
				out := strings.ReplaceAll(text, "'", `"`)
				return out, out != text
			},
		},
		{
			ID:          RuleUnquotedKeys,
			Name:        "Quote object keys",
			Description: "Added double quotes around unquoted keys",
			Apply: func(text string) (string, bool) {
				out := firstBareKey.ReplaceAllString(text, `{"$1":`)
				out = nextBareKey.ReplaceAllString(out, `,"$1":`)
				return out, out != text
			},
		},
		{
			ID:          RuleComments,
			Name:        "Remove comments",
			Description: "Removed comments, which JSON does not allow",
			Apply: func(text string) (string, bool) {
				out := lineComment.ReplaceAllString(text, "")
				out = blockComment.ReplaceAllString(out, "")
				return out, out != text
			},
		},
		{
			ID:          RuleMissingCommas,
			Name:        "Insert missing commas",
			Description: "Inserted missing commas between adjacent elements",
			Apply: func(text string) (string, bool) {
				out := stringThenString.ReplaceAllString(text, "\",\n\"")
				out = objectThenString.ReplaceAllString(out, "},\n\"")
				out = arrayThenString.ReplaceAllString(out, "],\n\"")
				return out, out != text
			},
		},
		{
			ID:          RuleUnclosedBrackets,
			Name:        "Close brackets",
			Description: "Appended missing closing brackets",
			Apply:       closeBrackets,
		},
	}
}

func replacer(re *regexp.Regexp, repl string) func(string) (string, bool) {
	return func(text string) (string, bool) {
		out := re.ReplaceAllString(text, repl)
		return out, out != text
	}
}

// closeBrackets counts braces and brackets independently and appends the
// missing closers, brackets first, so that the common case of an array left
// open inside an object ends as "]}". Characters inside strings are counted too.
func closeBrackets(text string) (string, bool) {
	openBraces := strings.Count(text, "{") - strings.Count(text, "}")
	openBrackets := strings.Count(text, "[") - strings.Count(text, "]")
	if openBraces <= 0 && openBrackets <= 0 {
		return text, false
	}

	var b strings.Builder
	b.WriteString(text)
	if openBrackets > 0 {
		b.WriteString(strings.Repeat("]", openBrackets))
	}
	if openBraces > 0 {
		b.WriteString(strings.Repeat("}", openBraces))
	}
	return b.String(), true
}
