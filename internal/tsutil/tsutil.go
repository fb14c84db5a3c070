// Package tsutil adapts go-tree-sitter-bare's cursor-based traversal
// (the only navigation primitive the teacher's own tests exercise,
// see pkg/uast/parser_dsl_test.go's TreeCursor + IsNamed() walk) into
// the named-sibling and named-parent helpers the search pipeline
// needs but the bindings don't expose as direct Node methods.
package tsutil

import sitter "github.com/alexaandru/go-tree-sitter-bare"

// Parent returns n's named parent node, if any.
func Parent(n sitter.Node) (sitter.Node, bool) {
	cursor := sitter.NewTreeCursor(n)
	defer cursor.Close()

	if !cursor.GoToParent() {
		return sitter.Node{}, false
	}

	return cursor.CurrentNode(), true
}

// PrevNamedSibling returns n's previous named sibling, if any.
func PrevNamedSibling(n sitter.Node) (sitter.Node, bool) {
	parent, ok := Parent(n)
	if !ok {
		return sitter.Node{}, false
	}

	var prev sitter.Node

	found := false

	cursor := sitter.NewTreeCursor(parent)
	defer cursor.Close()

	if !cursor.GoToFirstChild() {
		return sitter.Node{}, false
	}

	for {
		current := cursor.CurrentNode()
		if current.StartByte() == n.StartByte() && current.EndByte() == n.EndByte() {
			return prev, found
		}

		if current.IsNamed() {
			prev = current
			found = true
		}

		if !cursor.GoToNextSibling() {
			return sitter.Node{}, false
		}
	}
}

// NamedChildren returns every named child of n, in order.
func NamedChildren(n sitter.Node) []sitter.Node {
	count := n.NamedChildCount()
	children := make([]sitter.Node, 0, count)

	for i := range count {
		children = append(children, n.NamedChild(i))
	}

	return children
}

// Ancestors yields n's named ancestors from nearest to farthest.
func Ancestors(n sitter.Node) []sitter.Node {
	var out []sitter.Node

	current := n
	for {
		parent, ok := Parent(current)
		if !ok {
			return out
		}

		out = append(out, parent)
		current = parent
	}
}
