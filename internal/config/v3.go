package config

import "gopkg.in/yaml.v3"

// rawLanguageV3 is the canonical on-disk shape described in §6: field
// names match LanguageConfig directly, sibling_node_types is already a
// list, and every query field accepts the string-or-list-of-strings
// MultiLineString convenience.
type rawLanguageV3 struct {
	Parser           *yaml.Node       `yaml:"parser"`
	Extends          *string          `yaml:"extends"`
	DefinitionQuery  *MultiLineString `yaml:"definition_query"`
	SiblingNodeTypes *[]string        `yaml:"sibling_node_types"`
	ParentQuery      *MultiLineString `yaml:"parent_query"`
	RecurseQuery     *MultiLineString `yaml:"recurse_query"`
	ImportQuery      *MultiLineString `yaml:"import_query"`
	InjectionQuery   *MultiLineString `yaml:"injection_query"`
}

func (r rawLanguageV3) toLanguageConfig() (LanguageConfig, error) {
	lc := LanguageConfig{
		Extends:          r.Extends,
		SiblingNodeTypes: r.SiblingNodeTypes,
	}

	if r.Parser != nil {
		src, err := decodeParserSource(r.Parser)
		if err != nil {
			return LanguageConfig{}, err
		}

		lc.Parser = src
	}

	if r.DefinitionQuery != nil {
		s := r.DefinitionQuery.String()
		lc.DefinitionQuery = &s
	}

	if r.ParentQuery != nil {
		s := r.ParentQuery.String()
		lc.ParentQuery = &s
	}

	if r.RecurseQuery != nil {
		s := r.RecurseQuery.String()
		lc.RecurseQuery = &s
	}

	if r.ImportQuery != nil {
		s := r.ImportQuery.String()
		lc.ImportQuery = &s
	}

	if r.InjectionQuery != nil {
		s := r.InjectionQuery.String()
		lc.InjectionQuery = &s
	}

	return lc, nil
}
