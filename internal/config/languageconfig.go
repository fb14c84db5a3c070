package config

import "github.com/kraklabs/dook/internal/loader"

// LanguageConfig is the in-memory effective record for one language:
// every field is optional until rebase resolution fills it in from an
// `extends` base.
type LanguageConfig struct {
	Parser           *loader.Source
	Extends          *string
	DefinitionQuery  *string
	SiblingNodeTypes *[]string
	ParentQuery      *string
	RecurseQuery     *string
	ImportQuery      *string
	InjectionQuery   *string
}

// clone returns a shallow copy safe to mutate during rebase without
// aliasing the original record's pointers into the config map.
func (c LanguageConfig) clone() LanguageConfig {
	return c
}
