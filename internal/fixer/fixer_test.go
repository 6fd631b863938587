package fixer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcncl/jxview/internal/parser"
)

func TestFix_SingleRules(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		rule     string
		expected string
	}{
		{
			name:     "trailing comma in object",
			input:    `{"a":1,}`,
			rule:     RuleTrailingCommas,
			expected: "{\n  \"a\": 1\n}",
		},
		{
			name:     "trailing comma in array",
			input:    `[1, 2, ]`,
			rule:     RuleTrailingCommas,
			expected: "[\n  1,\n  2\n]",
		},
		{
			name:     "single quotes",
			input:    `{'a': 'b'}`,
			rule:     RuleSingleQuotes,
			expected: "{\n  \"a\": \"b\"\n}",
		},
		{
			name:     "unquoted keys",
			input:    `{a: 1, b: 2}`,
			rule:     RuleUnquotedKeys,
			expected: "{\n  \"a\": 1,\n  \"b\": 2\n}",
		},
		{
			name:     "line comment",
			input:    "{\n  \"a\": 1 // note\n}",
			rule:     RuleComments,
			expected: "{\n  \"a\": 1\n}",
		},
		{
			name:     "block comment",
			input:    "{\n  /* header\n  spans lines */\n  \"a\": true\n}",
			rule:     RuleComments,
			expected: "{\n  \"a\": true\n}",
		},
		{
			name:     "missing comma between members",
			input:    "{\n\"a\": \"x\"\n\"b\": 2\n}",
			rule:     RuleMissingCommas,
			expected: "{\n  \"a\": \"x\",\n  \"b\": 2\n}",
		},
		{
			name:     "unclosed array inside object",
			input:    `{"a":[1,2`,
			rule:     RuleUnclosedBrackets,
			expected: "{\n  \"a\": [\n    1,\n    2\n  ]\n}",
		},
	}

	f := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, ok := f.Fix(tt.input)
			require.True(t, ok, "expected a fix for %q", tt.input)

			assert.Equal(t, tt.expected, result.Output)
			assert.Equal(t, []string{tt.rule}, result.Applied)
			assert.False(t, result.Combined)
			assert.True(t, parser.Valid(result.Output))
		})
	}
}

func TestFix_TrailingCommaDescription(t *testing.T) {
	result, ok := New().Fix(`{"a":1,}`)
	require.True(t, ok)
	assert.Equal(t, "Removed trailing commas before a closing brace or bracket", result.Description)
}

func TestFix_Combined(t *testing.T) {
	result, ok := New().Fix(`{a: 1, 'b': [1,2,],}`)
	require.True(t, ok)

	assert.True(t, result.Combined)
	assert.Equal(t, []string{RuleTrailingCommas, RuleSingleQuotes, RuleUnquotedKeys}, result.Applied)
	assert.Equal(t,
		"Combined fix: Removed trailing commas before a closing brace or bracket; "+
			"Replaced single quotes with standard double quotes; "+
			"Added double quotes around unquoted keys",
		result.Description)
	assert.Equal(t, "{\n  \"a\": 1,\n  \"b\": [\n    1,\n    2\n  ]\n}", result.Output)
}

func TestFix_NoFix(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "missing value", input: `{"a": }`},
		{name: "plain text", input: "plain text"},
		// The key-quoting rule reaches into the string value and breaks it.
		{name: "key pattern inside a string", input: `{"msg": "a, b: c", d: 1}`},
	}

	f := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, ok := f.Fix(tt.input)
			assert.False(t, ok)
			assert.Empty(t, result.Output)
		})
	}
}

func TestFix_OutputAlwaysParses(t *testing.T) {
	inputs := []string{
		`{"a":1,}`,
		`{'a': 1}`,
		`{a: [1, 2,]}`,
		"[\n{\"a\": 1}\n\"b\"\n]",
		`{"a": {"b": [1`,
		`[[[`,
		`{"a": 1 /* x */}`,
		`{"a": "b" "c"}`,
	}

	f := New()
	for _, input := range inputs {
		result, ok := f.Fix(input)
		if ok {
			assert.True(t, parser.Valid(result.Output), "output for %q does not parse: %s", input, result.Output)
		}
	}
}

func TestWithDisabled(t *testing.T) {
	for _, id := range []string{"trailing-commas", "TrailingCommas", "trailing_commas", " trailing-commas "} {
		t.Run(id, func(t *testing.T) {
			f := New(WithDisabled(id))
			for _, rule := range f.Rules() {
				assert.NotEqual(t, RuleTrailingCommas, rule.ID)
			}
			assert.Len(t, f.Rules(), len(DefaultRules())-1)

			_, ok := f.Fix(`{"a":1,}`)
			assert.False(t, ok)
		})
	}
}

func TestWithRules(t *testing.T) {
	f := New(WithRules([]Rule{DefaultRules()[5]}))

	_, ok := f.Fix(`{"a":1,}`)
	assert.False(t, ok)

	result, ok := f.Fix(`[1`)
	require.True(t, ok)
	assert.Equal(t, "[\n  1\n]", result.Output)
}

func TestCloseBrackets(t *testing.T) {
	tests := []struct {
		input    string
		expected string
		changed  bool
	}{
		{input: `{"a":[1,2`, expected: `{"a":[1,2]}`, changed: true},
		{input: `[{"a":1`, expected: `[{"a":1]}`, changed: true},
		{input: `{"a":{"b":1`, expected: `{"a":{"b":1}}`, changed: true},
		{input: `{"a":1}`, expected: `{"a":1}`, changed: false},
		{input: `{"a":1}}`, expected: `{"a":1}}`, changed: false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			out, changed := closeBrackets(tt.input)
			assert.Equal(t, tt.changed, changed)
			assert.Equal(t, tt.expected, out)
		})
	}
}
