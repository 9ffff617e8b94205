package md

import "github.com/structdown/structdown/internal/textutil"

// TreeNode is one node of a rendered tree.
type TreeNode struct {
	Label    string
	Children []TreeNode
}

// Tree renders nodes with Unicode box-drawing connectors. Rendering is a
// deterministic, stateless recursion: connectors depend only on each node's
// last-sibling position.
func (w *Writer) Tree(nodes []TreeNode) error {
	if w.err != nil {
		return w.err
	}
	if !w.active {
		return nil
	}
	w.blockSep()
	for i := range nodes {
		w.print(textutil.Line(nodes[i].Label) + "\n")
		w.treeChildren(nodes[i].Children, "")
	}
	w.wroteAny = true
	w.pendingBlank = true
	return w.err
}

func (w *Writer) treeChildren(children []TreeNode, prefix string) {
	for i := range children {
		last := i == len(children)-1
		connector := "├─ "
		childPrefix := prefix + "│  "
		if last {
			connector = "└─ "
			childPrefix = prefix + "   "
		}
		w.print(prefix + connector + textutil.Line(children[i].Label) + "\n")
		w.treeChildren(children[i].Children, childPrefix)
	}
}
