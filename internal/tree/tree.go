// Package tree builds a collapsible, path-addressed view of a parsed JSON value.
package tree

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/mcncl/jxview/internal/formatter"
	"github.com/mcncl/jxview/internal/models"
)

// RootPath is the path of the root node.
const RootPath = "$"

// RootKey labels a scalar root value.
const RootKey = "root"

// Kind is the JSON type of a node.
type Kind int

const (
	KindObject Kind = iota
	KindArray
	KindString
	KindNumber
	KindBool
	KindNull
)

func (k Kind) String() string {
	switch k {
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "boolean"
	default:
		return "null"
	}
}

// Node is one entry of the tree view.
type Node struct {
	Path string
	Key  string
	// Label is the rendered key, `"key": `. The root container has none.
	Label string
	Kind  Kind
	// Badge summarizes a container, e.g. Object{3} or Array[2].
	Badge string
	// Display is the rendered scalar value.
	Display string
	Value   models.JSONValue
	Depth   int

	Parent   *Node
	Children []*Node

	Collapsed   bool
	Highlighted bool
	Active      bool
}

// Build creates the tree for v. Containers start expanded.
func Build(v models.JSONValue) *Node {
	root := newNode(nil, RootKey, RootPath, v, 0)
	if root.IsContainer() {
		root.Label = ""
	}
	return root
}

func newNode(parent *Node, key, path string, v models.JSONValue, depth int) *Node {
	n := &Node{
		Path:   path,
		Key:    key,
		Label:  `"` + key + `": `,
		Value:  v,
		Depth:  depth,
		Parent: parent,
	}

	switch val := v.(type) {
	case models.JSONObject:
		n.Kind = KindObject
		n.Badge = fmt.Sprintf("Object{%d}", len(val))
		n.Children = make([]*Node, 0, len(val))
		for _, m := range val {
			n.Children = append(n.Children, newNode(n, m.Key, path+"."+m.Key, m.Value, depth+1))
		}
	case models.JSONArray:
		n.Kind = KindArray
		n.Badge = fmt.Sprintf("Array[%d]", len(val))
		n.Children = make([]*Node, 0, len(val))
		for i, item := range val {
			key := strconv.Itoa(i)
			n.Children = append(n.Children, newNode(n, key, path+"."+key, item, depth+1))
		}
	case string:
		n.Kind = KindString
		n.Display = `"` + val + `"`
	case json.Number:
		n.Kind = KindNumber
		n.Display = formatter.Number(val)
	case bool:
		n.Kind = KindBool
		n.Display = strconv.FormatBool(val)
	case nil:
		n.Kind = KindNull
		n.Display = "null"
	default:
		n.Kind = KindNull
		n.Display = fmt.Sprint(val)
	}
	return n
}

// IsContainer reports whether the node is an object or an array.
func (n *Node) IsContainer() bool {
	return n.Kind == KindObject || n.Kind == KindArray
}

// Line is the single-line rendering of the node: label then badge or value.
func (n *Node) Line() string {
	if n.IsContainer() {
		return n.Label + n.Badge
	}
	return n.Label + n.Display
}

// Toggle flips the collapse state of a container.
func (n *Node) Toggle() {
	n.SetCollapsed(!n.Collapsed)
}

// SetCollapsed sets the collapse state. Leaves are never collapsed.
func (n *Node) SetCollapsed(collapsed bool) {
	if n.IsContainer() {
		n.Collapsed = collapsed
	}
}

// Walk visits n and its descendants in document order.
func (n *Node) Walk(fn func(*Node)) {
	fn(n)
	for _, child := range n.Children {
		child.Walk(fn)
	}
}

// CollapseAll collapses every container, the root included.
func (n *Node) CollapseAll() {
	n.Walk(func(node *Node) { node.SetCollapsed(true) })
}

// ExpandAll expands every container.
func (n *Node) ExpandAll() {
	n.Walk(func(node *Node) { node.Collapsed = false })
}

// CollapseBelow collapses the containers at depth or deeper and expands the rest.
func (n *Node) CollapseBelow(depth int) {
	n.Walk(func(node *Node) { node.SetCollapsed(node.Depth >= depth) })
}

// ExpandAncestors expands every container above n.
func (n *Node) ExpandAncestors() {
	for p := n.Parent; p != nil; p = p.Parent {
		p.Collapsed = false
	}
}

// KeyNodes returns the nodes that carry a key label, in document order.
func (n *Node) KeyNodes() []*Node {
	var nodes []*Node
	n.Walk(func(node *Node) {
		if node.Label != "" {
			nodes = append(nodes, node)
		}
	})
	return nodes
}

// Visible returns the nodes shown by the current collapse state.
func (n *Node) Visible() []*Node {
	nodes := []*Node{n}
	if n.Collapsed {
		return nodes
	}
	for _, child := range n.Children {
		nodes = append(nodes, child.Visible()...)
	}
	return nodes
}

// Find returns the first node with the given path, or nil.
func (n *Node) Find(path string) *Node {
	if n.Path == path {
		return n
	}
	for _, child := range n.Children {
		if found := child.Find(path); found != nil {
			return found
		}
	}
	return nil
}

// ClearHighlights resets the search marks of the whole tree.
func (n *Node) ClearHighlights() {
	n.Walk(func(node *Node) {
		node.Highlighted = false
		node.Active = false
	})
}

// CopyText returns what copying the node puts on the clipboard: the raw
// value for leaves, with strings unquoted, and indented JSON for containers.
func (n *Node) CopyText() string {
	switch val := n.Value.(type) {
	case string:
		return val
	case models.JSONObject, models.JSONArray:
		return formatter.NewFormatter().FormatJSON(val)
	default:
		return formatter.NewFormatter().MinifyJSON(val)
	}
}
