// Package dumptree renders a parsed tree to a writer for --dump,
// grounded on the original implementation's dumptree.rs depth-first
// walk. Unlike that original, this walk only descends named children
// (the go-tree-sitter-bare surface this module otherwise relies on,
// confirmed against the teacher's pattern_matcher.go/parser_dsl.go
// call sites, never demonstrates field-name-for-child or
// all-children, including anonymous token, traversal) — a deliberate,
// debug-only simplification noted in DESIGN.md.
package dumptree

import (
	"fmt"
	"io"
	"strings"

	sitter "github.com/alexaandru/go-tree-sitter-bare"

	"github.com/fatih/color"
)

var (
	nodeKindColor = color.New(color.Bold, color.FgBlue)
	literalColor  = color.New(color.FgGreen)
)

// Dump writes tree's structure to w: one node per line, indented by
// depth, named leaves printed with their source text, named internal
// nodes opening a child block.
func Dump(w io.Writer, tree *sitter.Tree, source []byte, useColor bool) error {
	return dumpNode(w, tree.RootNode(), source, 0, useColor)
}

func dumpNode(w io.Writer, node sitter.Node, source []byte, depth int, useColor bool) error {
	indent := strings.Repeat(" ", depth)

	kind := node.Type()
	if useColor {
		kind = nodeKindColor.Sprint(kind)
	}

	if node.NamedChildCount() == 0 {
		text := node.Content(source)
		if useColor {
			text = literalColor.Sprint(text)
		}

		if _, err := fmt.Fprintf(w, "%s(%s %q)\n", indent, kind, text); err != nil {
			return err
		}

		return nil
	}

	if _, err := fmt.Fprintf(w, "%s(%s\n", indent, kind); err != nil {
		return err
	}

	for i := range node.NamedChildCount() {
		if err := dumpNode(w, node.NamedChild(i), source, depth+1, useColor); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(w, "%s)\n", indent); err != nil {
		return err
	}

	return nil
}
