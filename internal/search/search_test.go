package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcncl/jxview/internal/parser"
	"github.com/mcncl/jxview/internal/tree"
)

const document = `{
  "user": {"Name": "ada", "username": "ada1", "tags": ["x", "y"]},
  "meta": {"name": null},
  "count": 2
}`

func buildTree(t *testing.T, text string) *tree.Node {
	t.Helper()
	parsed, err := parser.ParseString(text)
	require.NoError(t, err)
	return tree.Build(parsed.Root)
}

func matchPaths(e *Engine) []string {
	var out []string
	for _, n := range e.Matches() {
		out = append(out, n.Path)
	}
	return out
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		label    string
		expected string
	}{
		{label: `"Name": `, expected: "name"},
		{label: `"a:b": `, expected: "a:b"},
		{label: `"root":`, expected: "root"},
		{label: "plain", expected: "plain"},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.label))
		})
	}
}

func TestSearch_Matches(t *testing.T) {
	root := buildTree(t, document)
	e := New(root)

	count := e.Search("  NAME ")
	assert.Equal(t, 3, count)
	assert.Equal(t, "name", e.Keyword())
	assert.Equal(t, []string{"$.user.Name", "$.user.username", "$.meta.name"}, matchPaths(e))
	assert.Equal(t, "1/3", e.Counter())
	assert.Equal(t, "$.user.Name", e.Path())

	for _, n := range e.Matches() {
		assert.True(t, n.Highlighted)
	}
	assert.True(t, e.Active().Active)
	assert.False(t, e.Matches()[1].Active)
}

func TestSearch_IndexKeys(t *testing.T) {
	e := New(buildTree(t, document))

	assert.Equal(t, 1, e.Search("1"))
	assert.Equal(t, "$.user.tags.1", e.Path())
}

func TestSearch_NoMatches(t *testing.T) {
	e := New(buildTree(t, document))

	assert.Equal(t, 0, e.Search("zzz"))
	assert.Equal(t, NoMatches, e.Counter())
	assert.Equal(t, "", e.Path())
	assert.Equal(t, -1, e.Index())
	assert.Nil(t, e.Next())
	assert.Nil(t, e.Prev())
}

func TestSearch_EmptyKeywordClears(t *testing.T) {
	root := buildTree(t, document)
	e := New(root)
	e.Search("name")

	assert.Equal(t, 0, e.Search("   "))
	assert.Equal(t, "", e.Counter())
	assert.Empty(t, e.Matches())
	for _, n := range root.KeyNodes() {
		assert.False(t, n.Highlighted)
		assert.False(t, n.Active)
	}
}

func TestSearch_NewKeywordClearsPreviousHighlights(t *testing.T) {
	root := buildTree(t, document)
	e := New(root)

	e.Search("user")
	user := root.Find("$.user")
	require.True(t, user.Highlighted)

	e.Search("count")
	assert.False(t, user.Highlighted)
	assert.False(t, user.Active)
	assert.True(t, root.Find("$.count").Highlighted)
}

func TestSearch_ExpandsAncestors(t *testing.T) {
	root := buildTree(t, document)
	root.CollapseAll()
	e := New(root)

	e.Search("tags")
	for _, path := range []string{"$", "$.user"} {
		assert.False(t, root.Find(path).Collapsed, path)
	}
	assert.True(t, root.Find("$.meta").Collapsed)
}

func TestNextPrev_Cycle(t *testing.T) {
	e := New(buildTree(t, document))
	n := e.Search("name")
	require.Equal(t, 3, n)

	start := e.Path()
	for i := 0; i < n; i++ {
		e.Next()
	}
	assert.Equal(t, start, e.Path())

	e.Next()
	assert.Equal(t, "2/3", e.Counter())
	assert.Equal(t, "$.user.username", e.Path())
	assert.False(t, e.Matches()[0].Active)
	assert.True(t, e.Matches()[1].Active)

	e.Prev()
	e.Prev()
	assert.Equal(t, "3/3", e.Counter())
	assert.Equal(t, "$.meta.name", e.Path())

	for i := 0; i < n; i++ {
		e.Prev()
	}
	assert.Equal(t, "$.meta.name", e.Path())
}

func TestClear(t *testing.T) {
	root := buildTree(t, document)
	e := New(root)
	e.Search("name")

	e.Clear()
	assert.Equal(t, 0, e.Count())
	assert.Equal(t, "", e.Counter())
	assert.False(t, root.Find("$.user.Name").Highlighted)
}

func TestNilRoot(t *testing.T) {
	e := New(nil)
	assert.Equal(t, 0, e.Search("x"))
	assert.Equal(t, NoMatches, e.Counter())
}
