package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kraklabs/dook/internal/config"
	"github.com/kraklabs/dook/internal/langname"
)

const v1Doc = `
python:
  match_patterns:
    - "(function_definition name: (identifier) @name) @def"
  parent_node_types: [function_definition, class_definition]
  sibling_node_types: [comment]
`

const v2Doc = `
_version: 2
c:
  match_patterns:
    - "(function_definition name: (identifier) @name) @def"
  parent_node_types: [function_definition]
python:
  extends: c
  match_patterns:
    - "(class_definition name: (identifier) @name) @def"
`

const v3Doc = `
_version: 3
python:
  definition_query: |
    (function_definition name: (identifier) @name) @def
  parent_query: |
    (function_definition) @parent
`

func TestParseV1HasNoExtends(t *testing.T) {
	cfg, err := config.Parse([]byte(v1Doc))
	require.NoError(t, err)

	lc, ok := cfg.Get(langname.Python)
	require.True(t, ok)
	assert.Nil(t, lc.Extends)
	require.NotNil(t, lc.DefinitionQuery)
	assert.Contains(t, *lc.DefinitionQuery, "function_definition")
	require.NotNil(t, lc.ParentQuery)
	assert.Equal(t, "[(function_definition) (class_definition)]", *lc.ParentQuery)
}

func TestParseV2ResolvesExtends(t *testing.T) {
	cfg, err := config.Parse([]byte(v2Doc))
	require.NoError(t, err)

	resolved, err := cfg.Resolve()
	require.NoError(t, err)

	py := resolved[langname.Python]
	require.NotNil(t, py.DefinitionQuery)
	assert.Contains(t, *py.DefinitionQuery, "class_definition")
	assert.Contains(t, *py.ParentQuery, "function_definition")
}

func TestParseV3RejectsAliasKeys(t *testing.T) {
	_, err := config.Parse([]byte("_version: 3\npy:\n  definition_query: \"x\"\n"))
	require.Error(t, err)
}

func TestParseV3(t *testing.T) {
	cfg, err := config.Parse([]byte(v3Doc))
	require.NoError(t, err)

	lc, ok := cfg.Get(langname.Python)
	require.True(t, ok)
	require.NotNil(t, lc.DefinitionQuery)
	assert.Contains(t, *lc.DefinitionQuery, "function_definition")
}

func TestRebaseConcatPrefix(t *testing.T) {
	doc := `
_version: 2
c:
  match_patterns: ["(a) @def"]
cpp:
  extends: c
  match_patterns: ["...", "(b) @def"]
`
	cfg, err := config.Parse([]byte(doc))
	require.NoError(t, err)

	resolved, err := cfg.Resolve()
	require.NoError(t, err)

	child, ok := resolved[langname.CPlusPlus]
	require.True(t, ok)
	require.NotNil(t, child.DefinitionQuery)
	assert.Equal(t, "(a) @def\n(b) @def", *child.DefinitionQuery)
}

func TestRebaseCycleDetected(t *testing.T) {
	doc := `
_version: 2
c:
  extends: cpp
cpp:
  extends: c
`
	cfg, err := config.Parse([]byte(doc))
	require.NoError(t, err)

	_, err = cfg.Resolve()
	require.Error(t, err)
}

func TestMergeOverridesSingleField(t *testing.T) {
	base := config.Default()

	overrideDoc := `
_version: 3
python:
  sibling_node_types: [comment, decorator, match_statement]
`
	override, err := config.Parse([]byte(overrideDoc))
	require.NoError(t, err)

	merged := config.Merge(base, override)

	py, ok := merged.Get(langname.Python)
	require.True(t, ok)
	require.NotNil(t, py.SiblingNodeTypes)
	assert.Equal(t, []string{"comment", "decorator", "match_statement"}, *py.SiblingNodeTypes)
	require.NotNil(t, py.DefinitionQuery)
}

func TestDefaultConfigResolves(t *testing.T) {
	resolved, err := config.Default().Resolve()
	require.NoError(t, err)

	tsx, ok := resolved[langname.TSX]
	require.True(t, ok)
	require.NotNil(t, tsx.DefinitionQuery)
	assert.Contains(t, *tsx.DefinitionQuery, "interface_declaration")
}
