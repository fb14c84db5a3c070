package config

import (
	"strings"

	"github.com/kraklabs/dook/internal/langname"
)

// maxExtendsDepth bounds the `extends` chase so a cyclic config (a
// extends b extends a) fails fast with ErrExtendsCycle instead of
// looping forever.
const maxExtendsDepth = 64

// appendSentinel is the `sibling_node_types` entry that means "keep
// the base's list and append mine", mirroring the `...`-prefix
// convention used by the query-string fields.
const appendSentinel = "..."

// concatPrefix marks a query-string field as "concatenate after the
// base's value" rather than "replace it outright".
const concatPrefix = "..."

// Resolve walks every language's `extends` chain to produce an
// effective, extends-free LanguageConfig per language: starting from
// an empty record whose extends names the language itself, each hop
// rebases the current record onto the named base and adopts the
// base's own extends target, until a language with no extends is
// reached or the configured base is unknown.
func (c *Config) Resolve() (map[langname.Name]LanguageConfig, error) {
	resolved := make(map[langname.Name]LanguageConfig, len(c.Languages))

	for name := range c.Languages {
		lc, err := c.resolveOne(name)
		if err != nil {
			return nil, err
		}

		resolved[name] = lc
	}

	return resolved, nil
}

func (c *Config) resolveOne(start langname.Name) (LanguageConfig, error) {
	current := c.Languages[start].clone()
	target := start

	for depth := 0; ; depth++ {
		if depth >= maxExtendsDepth {
			return LanguageConfig{}, &ErrExtendsCycle{Language: start.String()}
		}

		if current.Extends == nil {
			return current, nil
		}

		baseName, err := langname.Parse(*current.Extends)
		if err != nil {
			return LanguageConfig{}, &ErrExtendsUnknownLanguage{Language: target.String(), Target: *current.Extends}
		}

		base, ok := c.Languages[baseName]
		if !ok {
			return LanguageConfig{}, &ErrExtendsUnknownLanguage{Language: target.String(), Target: *current.Extends}
		}

		current = rebase(current, base)
		target = baseName
	}
}

// rebase produces the effective record for child given its declared
// base, applying each field's own inherit/replace/concat rule. The
// result's Extends is reassigned to the base's own Extends so the
// caller can keep walking the chain.
func rebase(child, base LanguageConfig) LanguageConfig {
	out := LanguageConfig{
		Parser:           child.Parser,
		DefinitionQuery:  rebaseQueryField(child.DefinitionQuery, base.DefinitionQuery),
		ParentQuery:      rebaseQueryField(child.ParentQuery, base.ParentQuery),
		RecurseQuery:     rebaseQueryField(child.RecurseQuery, base.RecurseQuery),
		ImportQuery:      rebaseQueryField(child.ImportQuery, base.ImportQuery),
		InjectionQuery:   rebaseQueryField(child.InjectionQuery, base.InjectionQuery),
		SiblingNodeTypes: rebaseSiblingTypes(child.SiblingNodeTypes, base.SiblingNodeTypes),
		Extends:          base.Extends,
	}

	if out.Parser == nil {
		out.Parser = base.Parser
	}

	return out
}

// rebaseQueryField implements the query-string inherit rule: absent
// inherits the base unchanged; a value prefixed with `...` means
// "base, then a newline, then the rest of my value"; anything else
// replaces the base outright.
func rebaseQueryField(child, base *string) *string {
	if child == nil {
		return base
	}

	trimmed := strings.TrimLeft(*child, " \t\n\r")

	if strings.HasPrefix(trimmed, concatPrefix) {
		rest := strings.TrimPrefix(trimmed, concatPrefix)
		rest = strings.TrimPrefix(rest, "\n")

		merged := rest
		if base != nil {
			merged = *base + "\n" + rest
		}

		return &merged
	}

	value := *child

	return &value
}

// rebaseSiblingTypes implements the list-field inherit rule: absent
// inherits the base; a list containing the "..." sentinel keeps the
// base's entries (in place of the sentinel) plus the rest of the
// child's entries; otherwise the child's list replaces the base's.
func rebaseSiblingTypes(child, base *[]string) *[]string {
	if child == nil {
		return base
	}

	merged := make([]string, 0, len(*child))

	sawSentinel := false

	for _, entry := range *child {
		if entry == appendSentinel {
			sawSentinel = true

			if base != nil {
				merged = append(merged, *base...)
			}

			continue
		}

		merged = append(merged, entry)
	}

	if !sawSentinel {
		direct := append([]string(nil), (*child)...)

		return &direct
	}

	return &merged
}
