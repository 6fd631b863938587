// Package search finds tree nodes by key and steps through the matches.
package search

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/mcncl/jxview/internal/tree"
)

// NoMatches is the counter text when a keyword matches nothing.
const NoMatches = "no matches"

var labelSuffix = regexp.MustCompile(`:\s*$`)

// Engine searches the key labels of one tree. A rebuilt tree needs a new Engine.
type Engine struct {
	root    *tree.Node
	keyword string
	matches []*tree.Node
	index   int
}

// New creates an Engine over root. A nil root never matches.
func New(root *tree.Node) *Engine {
	return &Engine{root: root, index: -1}
}

// Normalize lower-cases a key label and strips its quotes and trailing colon.
func Normalize(label string) string {
	label = strings.ReplaceAll(label, `"`, "")
	label = labelSuffix.ReplaceAllString(label, "")
	return strings.ToLower(label)
}

// Search replaces the current matches with the nodes whose key contains
// keyword, case-insensitively. It highlights every match, expands its
// ancestors and activates the first one. It returns the match count.
func (e *Engine) Search(keyword string) int {
	e.Clear()
	e.keyword = strings.ToLower(strings.TrimSpace(keyword))
	if e.keyword == "" || e.root == nil {
		return 0
	}

	for _, node := range e.root.KeyNodes() {
		if strings.Contains(Normalize(node.Label), e.keyword) {
			node.Highlighted = true
			node.ExpandAncestors()
			e.matches = append(e.matches, node)
		}
	}
	if len(e.matches) > 0 {
		e.activate(0)
	}
	return len(e.matches)
}

// Next activates the following match, wrapping to the first.
func (e *Engine) Next() *tree.Node {
	if len(e.matches) == 0 {
		return nil
	}
	e.activate((e.index + 1) % len(e.matches))
	return e.Active()
}

// Prev activates the preceding match, wrapping to the last.
func (e *Engine) Prev() *tree.Node {
	if len(e.matches) == 0 {
		return nil
	}
	e.activate((e.index - 1 + len(e.matches)) % len(e.matches))
	return e.Active()
}

func (e *Engine) activate(i int) {
	if e.index >= 0 && e.index < len(e.matches) {
		e.matches[e.index].Active = false
	}
	e.index = i
	e.matches[i].Active = true
}

// Clear drops the keyword, the matches and their highlights.
func (e *Engine) Clear() {
	if e.root != nil {
		e.root.ClearHighlights()
	}
	e.keyword = ""
	e.matches = nil
	e.index = -1
}

// Keyword returns the normalized keyword of the last search.
func (e *Engine) Keyword() string {
	return e.keyword
}

// Matches returns the matching nodes in document order.
func (e *Engine) Matches() []*tree.Node {
	return e.matches
}

// Count returns the number of matches.
func (e *Engine) Count() int {
	return len(e.matches)
}

// Index returns the 0-based position of the active match, or -1.
func (e *Engine) Index() int {
	return e.index
}

// Active returns the active match, or nil.
func (e *Engine) Active() *tree.Node {
	if e.index < 0 || e.index >= len(e.matches) {
		return nil
	}
	return e.matches[e.index]
}

// Counter returns "i/total" for the active match, NoMatches after a search
// that found nothing and an empty string when there is no keyword.
func (e *Engine) Counter() string {
	switch {
	case e.keyword == "":
		return ""
	case len(e.matches) == 0:
		return NoMatches
	default:
		return fmt.Sprintf("%d/%d", e.index+1, len(e.matches))
	}
}

// Path returns the path of the active match.
func (e *Engine) Path() string {
	if active := e.Active(); active != nil {
		return active.Path
	}
	return ""
}
