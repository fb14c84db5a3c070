package main

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// uncaseMatches compiles pattern the same way run does for -ii (case
// insensitive), since uncase itself only normalizes word-boundary
// delimiters, not letter case.
func uncaseMatches(t *testing.T, pattern, s string) bool {
	t.Helper()

	re, err := regexp.Compile("(?i)" + pattern)
	require.NoError(t, err)

	return re.MatchString(s)
}

func TestUncaseProducesPatternMatchingEveryCaseStyle(t *testing.T) {
	pattern, err := uncase("loadFile")
	require.NoError(t, err)

	assert.True(t, uncaseMatches(t, pattern, "loadFile"))
	assert.True(t, uncaseMatches(t, pattern, "load_file"))
	assert.True(t, uncaseMatches(t, pattern, "load-file"))
	assert.True(t, uncaseMatches(t, pattern, "LoadFile"))
}

func TestUncaseSnakeAndKebabInputsRoundTrip(t *testing.T) {
	for _, in := range []string{"load_file", "load-file", "LOAD_FILE"} {
		pattern, err := uncase(in)
		require.NoError(t, err)
		assert.True(t, uncaseMatches(t, pattern, "loadFile"), "input %q", in)
	}
}

func TestUncaseRejectsNonIdentifierCharacters(t *testing.T) {
	_, err := uncase("load.file")
	require.Error(t, err)

	var badErr *NotRecaseableError
	require.ErrorAs(t, err, &badErr)
	assert.Equal(t, 4, badErr.BadPosition)
}
