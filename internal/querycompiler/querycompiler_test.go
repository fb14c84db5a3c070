package querycompiler_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kraklabs/dook/internal/config"
	"github.com/kraklabs/dook/internal/downloadpolicy"
	"github.com/kraklabs/dook/internal/langname"
	"github.com/kraklabs/dook/internal/loader"
	"github.com/kraklabs/dook/internal/querycompiler"
)

func newTestCompiler(t *testing.T) *querycompiler.QueryCompiler {
	t.Helper()

	cfg := config.Default()

	resolved, err := cfg.Resolve()
	require.NoError(t, err)

	l := loader.New(t.TempDir(), t.TempDir(), downloadpolicy.No, nil)

	return querycompiler.New(l, resolved)
}

func TestGetLanguageInfoPython(t *testing.T) {
	qc := newTestCompiler(t)

	info, err := qc.GetLanguageInfo(langname.Python)
	require.NoError(t, err)
	assert.NotNil(t, info.DefinitionQuery)
	assert.True(t, info.SiblingNodeTypes["comment"])
}

func TestGetLanguageInfoUnknownLanguage(t *testing.T) {
	qc := newTestCompiler(t)

	_, err := qc.GetLanguageInfo(langname.Name("NOT_A_LANGUAGE"))
	require.Error(t, err)

	var glie *querycompiler.GetLanguageInfoError
	require.ErrorAs(t, err, &glie)
	assert.Equal(t, querycompiler.LanguageIsNotInConfig, glie.Kind)
}

func TestGetLanguageInfoMemoizesFailure(t *testing.T) {
	qc := newTestCompiler(t)

	_, err1 := qc.GetLanguageInfo(langname.Name("NOT_A_LANGUAGE"))
	require.Error(t, err1)

	_, err2 := qc.GetLanguageInfo(langname.Name("NOT_A_LANGUAGE"))
	require.Error(t, err2)

	var hf *querycompiler.HasFailedBeforeError
	require.ErrorAs(t, err2, &hf)
}
