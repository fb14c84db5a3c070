package config

import "github.com/kraklabs/dook/internal/langname"

// Merge layers override on top of base: for every language present in
// either config, each field the override sets replaces the base's
// field outright (the override's own `...`-prefix/sentinel values are
// preserved as-is and only take effect once Resolve walks `extends`).
// A language absent from override is taken from base unchanged; a
// language absent from base is taken from override unchanged.
func Merge(base, override *Config) *Config {
	out := &Config{Languages: make(map[langname.Name]LanguageConfig, len(base.Languages))}

	for name, lc := range base.Languages {
		out.Languages[name] = lc
	}

	for name, lc := range override.Languages {
		existing, ok := out.Languages[name]
		if !ok {
			out.Languages[name] = lc

			continue
		}

		out.Languages[name] = mergeLanguageConfig(existing, lc)
	}

	return out
}

func mergeLanguageConfig(base, override LanguageConfig) LanguageConfig {
	merged := base

	if override.Parser != nil {
		merged.Parser = override.Parser
	}

	if override.Extends != nil {
		merged.Extends = override.Extends
	}

	if override.DefinitionQuery != nil {
		merged.DefinitionQuery = override.DefinitionQuery
	}

	if override.SiblingNodeTypes != nil {
		merged.SiblingNodeTypes = override.SiblingNodeTypes
	}

	if override.ParentQuery != nil {
		merged.ParentQuery = override.ParentQuery
	}

	if override.RecurseQuery != nil {
		merged.RecurseQuery = override.RecurseQuery
	}

	if override.ImportQuery != nil {
		merged.ImportQuery = override.ImportQuery
	}

	if override.InjectionQuery != nil {
		merged.InjectionQuery = override.InjectionQuery
	}

	return merged
}
