package formatter

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcncl/jxview/internal/parser"
)

func TestIntegration_FormatMinifyRoundTrip(t *testing.T) {
	// Format, minify and format again must preserve the value
	samples := []string{
		`{"user_id": 123, "username": "johndoe", "profile": {"full_name": "John Doe", "tags": ["a", "b"]}}`,
		`[1.50, 2e3, -0, {"nested": [[], {}]}, null, true, "x<y>&z"]`,
		`"just a string"`,
		`{"zeta": {"b": 1, "a": 2}, "alpha": [3, 2, 1]}`,
	}

	f := NewFormatter()
	for _, src := range samples {
		t.Run(src, func(t *testing.T) {
			first, err := parser.ParseString(src)
			require.NoError(t, err)
			formatted := f.FormatJSON(first.Root)

			reparsed, err := parser.ParseString(formatted)
			require.NoError(t, err)
			minified := f.MinifyJSON(reparsed.Root)

			compact, err := parser.ParseString(minified)
			require.NoError(t, err)
			again := f.FormatJSON(compact.Root)

			assert.Equal(t, formatted, again)
			if diff := cmp.Diff(reparsed.Root, compact.Root); diff != "" {
				t.Errorf("value changed through minify (-formatted +minified):\n%s", diff)
			}
		})
	}
}

func TestIntegration_SortKeysThenFormat(t *testing.T) {
	parsed, err := parser.ParseString(`{"b": 1, "a": {"d": 1, "c": 2}}`)
	require.NoError(t, err)

	out := NewFormatter().FormatJSON(SortKeys(parsed.Root))
	assert.Equal(t, "{\n  \"a\": {\n    \"c\": 2,\n    \"d\": 1\n  },\n  \"b\": 1\n}", out)
}
