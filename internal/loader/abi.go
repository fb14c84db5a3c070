package loader

import sitter "github.com/alexaandru/go-tree-sitter-bare"

// ABI version window this build accepts for dynamically loaded
// grammars. Grammars generated by tree-sitter versions whose ABI falls
// outside [minCompatibleABIVersion, latestABIVersion] are rejected,
// triggering a rebuild-from-source fast-path miss per §4.2.
const (
	minCompatibleABIVersion = 13
	latestABIVersion        = 15
)

// abiInWindow reports whether lang's ABI version is one this build
// knows how to drive. go-tree-sitter-bare surfaces the compiled
// grammar's ABI via Language.Version(), matching upstream tree-sitter
// bindings' convention (e.g. node-tree-sitter's `Language#version`).
func abiInWindow(lang *sitter.Language) bool {
	if lang == nil {
		return false
	}

	v := int(lang.Version())

	return v >= minCompatibleABIVersion && v <= latestABIVersion
}
