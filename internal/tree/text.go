package tree

import (
	"strings"

	"github.com/xlab/treeprint"
)

// Text renders the tree as ASCII art. Collapsed containers are shown
// without their children.
func Text(root *Node) string {
	printer := treeprint.NewWithRoot(root.Line())
	if !root.Collapsed {
		addChildren(printer, root)
	}
	return strings.TrimRight(printer.String(), "\n")
}

func addChildren(branch treeprint.Tree, n *Node) {
	for _, child := range n.Children {
		if child.IsContainer() && !child.Collapsed && len(child.Children) > 0 {
			addChildren(branch.AddBranch(child.Line()), child)
			continue
		}
		branch.AddNode(child.Line())
	}
}
