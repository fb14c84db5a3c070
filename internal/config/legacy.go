package config

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// rawLanguageLegacy is the shared shape of the v1 and v2 on-disk
// schemas: the query-bearing fields keep their pre-v3 names and forms.
// v1 has no `extends` and ignores the field; v2 honors it. Both tolerate
// legacy language-key aliases, unlike v3.
type rawLanguageLegacy struct {
	Parser           *yaml.Node `yaml:"parser"`
	Extends          *string    `yaml:"extends"`
	MatchPatterns    *[]string  `yaml:"match_patterns"`
	ParentNodeTypes  *[]string  `yaml:"parent_node_types"`
	SiblingNodeTypes *[]string  `yaml:"sibling_node_types"`
	RecursePatterns  *[]string  `yaml:"recurse_patterns"`
	ImportPatterns   *[]string  `yaml:"import_patterns"`
}

// toLanguageConfig converts a legacy record to the canonical
// LanguageConfig shape per §4.3's conversion rules:
//   - match_patterns (list) -> newline-joined definition_query
//   - parent_node_types (list) -> OR of parenthesized node-kind patterns
//   - sibling_node_types -> passed through unchanged
//   - recurse_patterns / import_patterns (list) -> newline-joined queries
//
// allowExtends is false for v1 (extends was not yet part of the
// schema); a non-nil Extends field on a v1 document is ignored rather
// than rejected, matching forward-compatible parsing.
func (r rawLanguageLegacy) toLanguageConfig(allowExtends bool) (LanguageConfig, error) {
	lc := LanguageConfig{SiblingNodeTypes: r.SiblingNodeTypes}

	if allowExtends {
		lc.Extends = r.Extends
	}

	if r.Parser != nil {
		src, err := decodeParserSource(r.Parser)
		if err != nil {
			return LanguageConfig{}, err
		}

		lc.Parser = src
	}

	if r.MatchPatterns != nil {
		s := strings.Join(*r.MatchPatterns, "\n")
		lc.DefinitionQuery = &s
	}

	if r.ParentNodeTypes != nil {
		s := parenthesizedOR(*r.ParentNodeTypes)
		lc.ParentQuery = &s
	}

	if r.RecursePatterns != nil {
		s := strings.Join(*r.RecursePatterns, "\n")
		lc.RecurseQuery = &s
	}

	if r.ImportPatterns != nil {
		s := strings.Join(*r.ImportPatterns, "\n")
		lc.ImportQuery = &s
	}

	return lc, nil
}

// parenthesizedOR renders a list of node-kind names as a tree-sitter
// alternation of parenthesized node patterns: ["a", "b"] -> "[(a) (b)]".
func parenthesizedOR(names []string) string {
	parts := make([]string, len(names))
	for i, n := range names {
		parts[i] = "(" + n + ")"
	}

	return "[" + strings.Join(parts, " ") + "]"
}
