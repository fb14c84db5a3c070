package mainsearch_test

import (
	"context"
	"io"
	"log/slog"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kraklabs/dook/internal/config"
	"github.com/kraklabs/dook/internal/downloadpolicy"
	"github.com/kraklabs/dook/internal/inputs"
	"github.com/kraklabs/dook/internal/langname"
	"github.com/kraklabs/dook/internal/loader"
	"github.com/kraklabs/dook/internal/mainsearch"
	"github.com/kraklabs/dook/internal/querycompiler"
)

const pythonSample = `def combinations(n, r):
    # choose r items out of n
    return factorial(n) // (factorial(r) * factorial(n - r))


def factorial(n):
    if n == 0:
        return 1
    return n * factorial(n - 1)
`

const markdownWithPython = "# Notes\n\n" +
	"```python\n" +
	"def combinations(n, r):\n" +
	"    return factorial(n)\n" +
	"```\n"

func newTestCompiler(t *testing.T) *querycompiler.QueryCompiler {
	t.Helper()

	resolved, err := config.Default().Resolve()
	require.NoError(t, err)

	l := loader.New(t.TempDir(), t.TempDir(), downloadpolicy.No, nil)

	return querycompiler.New(l, resolved)
}

func silentLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSearchFileFindsDefinitionAndRecurseCandidate(t *testing.T) {
	qc := newTestCompiler(t)

	file := &inputs.LoadedFile{
		Bytes:    []byte(pythonSample),
		Language: langname.Python,
		Recipe:   "sample.py",
	}

	params := mainsearch.Params{
		Pattern: regexp.MustCompile("combinations"),
		Recurse: true,
	}

	results, err := mainsearch.SearchFile(context.Background(), silentLogger(), qc, file, params)
	require.NoError(t, err)

	assert.False(t, results.Ranges.IsEmpty())
	assert.Contains(t, results.RecurseNames, "factorial")
}

func TestSearchFileOnlyNamesSkipsRanges(t *testing.T) {
	qc := newTestCompiler(t)

	file := &inputs.LoadedFile{
		Bytes:    []byte(pythonSample),
		Language: langname.Python,
		Recipe:   "sample.py",
	}

	params := mainsearch.Params{
		Pattern:   regexp.MustCompile("factorial"),
		OnlyNames: true,
	}

	results, err := mainsearch.SearchFile(context.Background(), silentLogger(), qc, file, params)
	require.NoError(t, err)

	assert.True(t, results.Ranges.IsEmpty())
	assert.Contains(t, results.MatchedNames, "factorial")
}

func TestSearchFileFollowsMarkdownPythonInjection(t *testing.T) {
	qc := newTestCompiler(t)

	file := &inputs.LoadedFile{
		Bytes:    []byte(markdownWithPython),
		Language: langname.Markdown,
		Recipe:   "notes.md",
	}

	params := mainsearch.Params{
		Pattern: regexp.MustCompile("combinations"),
	}

	results, err := mainsearch.SearchFile(context.Background(), silentLogger(), qc, file, params)
	require.NoError(t, err)

	assert.False(t, results.Ranges.IsEmpty())
}

// markdownHeadingNamesInjectedFunction is a minimal §8-style fixture
// where the enclosing section heading's text equals the name of the
// function defined in the fenced code block it introduces, so a single
// pattern matches both the markdown-level "definition" (the heading)
// and the nested Python definition. This exercises the propagated
// header context described for the injection scenarios.
const markdownHeadingNamesInjectedFunction = "# combinations\n\n" +
	"```python\n" +
	"def combinations(n, r):\n" +
	"    return factorial(n)\n" +
	"```\n"

func TestSearchFileMarkdownInjectionPropagatesHeadingContext(t *testing.T) {
	qc := newTestCompiler(t)

	file := &inputs.LoadedFile{
		Bytes:    []byte(markdownHeadingNamesInjectedFunction),
		Language: langname.Markdown,
		Recipe:   "injection.md",
	}

	params := mainsearch.Params{
		Pattern: regexp.MustCompile("combinations"),
	}

	results, err := mainsearch.SearchFile(context.Background(), silentLogger(), qc, file, params)
	require.NoError(t, err)

	// Row 0 is the "# combinations" heading, matched directly as a
	// markdown-level definition. Rows 3-4 are the nested Python
	// function; because it sits inside the injected region, discovery
	// of it must also carry forward the heading range as context (the
	// fix for the header-propagation bug), so both appear in the
	// merged output even though the heading and the function are not
	// contiguous.
	got := results.Ranges.Iter()
	require.Len(t, got, 2)
	assert.Equal(t, 0, got[0].Start)
	assert.Equal(t, 1, got[0].End)
	assert.Equal(t, 3, got[1].Start)
	assert.Equal(t, 5, got[1].End)
}
