package querycompiler

import sitter "github.com/alexaandru/go-tree-sitter-bare"

// injectionHintKind distinguishes the three ways an injection pattern
// may name the language of the content it captures (§5).
type injectionHintKind int

const (
	hintAbsent injectionHintKind = iota
	hintFixed
	hintCapture
)

// injectionHint resolves the language of one injection_query pattern.
type injectionHint struct {
	kind          injectionHintKind
	fixedLanguage string
	captureIndex  uint32
}

// LanguageInfo is everything the search pipeline needs to run against
// one language: the compiled grammar, every compiled query with its
// capture indices pre-resolved, and the matching node-kind set for
// preceding-sibling context.
type LanguageInfo struct {
	Language *sitter.Language

	DefinitionQuery *sitter.Query
	DefNameCapture  uint32
	DefCapture      uint32

	ParentQuery          *sitter.Query
	ParentCapture        uint32
	ParentExcludeCapture uint32
	HasParentExclude     bool

	RecurseQuery       *sitter.Query
	RecurseNameCapture uint32

	ImportQuery         *sitter.Query
	ImportNameCapture   uint32
	ImportOriginCapture uint32

	InjectionQuery          *sitter.Query
	InjectionContentCapture uint32
	InjectionHints          map[uint32]injectionHint // pattern index -> hint

	SiblingNodeTypes map[string]bool

	// NameTransform post-processes a matched @name capture's text
	// before it is compared against the user's regex (§3's per-
	// language name transforms: TeX strips a leading backslash, YAML
	// and TOML strip surrounding quotes).
	NameTransform func(string) string
}

// InjectionLanguageCapture returns the capture index holding the
// language-hint text for the pattern that produced a given injection
// match, if that pattern resolves its hint from a capture rather than
// being hint-less.
func (li *LanguageInfo) InjectionLanguageCapture(patternIndex uint32) (uint32, bool) {
	hint, ok := li.InjectionHints[patternIndex]
	if !ok || hint.kind != hintCapture {
		return 0, false
	}

	return hint.captureIndex, true
}

func captureIndex(q *sitter.Query, name string) (uint32, bool) {
	for i := range q.CaptureCount() {
		if q.CaptureNameForID(i) == name {
			return i, true
		}
	}

	return 0, false
}
