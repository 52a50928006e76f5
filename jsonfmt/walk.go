package jsonfmt

import (
	tree_sitter "github.com/tree-sitter/go-tree-sitter"
)

// visit walks the tree depth-first, calling fn for every node. fn returns
// false to prune the subtree under that node.
func visit(n *tree_sitter.Node, fn func(*tree_sitter.Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for i := uint(0); i < uint(n.ChildCount()); i++ {
		visit(n.Child(i), fn)
	}
}

// childByKind finds the first child with the given kind.
func childByKind(n *tree_sitter.Node, kind string) *tree_sitter.Node {
	for i := uint(0); i < uint(n.ChildCount()); i++ {
		c := n.Child(i)
		if c.Kind() == kind {
			return c
		}
	}
	return nil
}

// nodeText returns the source text for a node.
func nodeText(n *tree_sitter.Node, source string) string {
	return source[n.StartByte():n.EndByte()]
}
