package main

import (
	"context"
	"fmt"
	"io"

	sitter "github.com/alexaandru/go-tree-sitter-bare"

	"github.com/kraklabs/dook/internal/dumptree"
	"github.com/kraklabs/dook/internal/inputs"
	"github.com/kraklabs/dook/internal/querycompiler"
)

// runDump implements --dump: parse target with the language its path
// detects to, and print its syntax tree for debugging extraction
// queries, without running a search at all.
func runDump(ctx context.Context, w io.Writer, qc *querycompiler.QueryCompiler, target string, useColor bool) error {
	file, err := inputs.Load(target)
	if err != nil {
		return err
	}

	info, err := qc.GetLanguageInfo(file.Language)
	if err != nil {
		return err
	}

	parser := sitter.NewParser()
	parser.SetLanguage(info.Language)

	tree, err := parser.ParseString(ctx, nil, file.Bytes)
	if err != nil {
		return fmt.Errorf("parse %s: %w", target, err)
	}

	defer tree.Close()

	return dumptree.Dump(w, tree, file.Bytes, useColor)
}
