package loader_test

import (
	"errors"
	"testing"

	"github.com/kraklabs/dook/internal/langname"
	"github.com/kraklabs/dook/internal/loader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadStaticKnownLanguage(t *testing.T) {
	lang, err := loader.LoadStatic(langname.Python)
	require.NoError(t, err)
	assert.NotNil(t, lang)
}

func TestLoadStaticUnknownLanguage(t *testing.T) {
	_, err := loader.LoadStatic(langname.Name("COBOL"))
	require.Error(t, err)

	var loaderErr *loader.Error
	require.True(t, errors.As(err, &loaderErr))
	assert.Equal(t, loader.LanguageWasNotBuiltIn, loaderErr.Kind)
}
