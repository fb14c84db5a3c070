package searches_test

import (
	"context"
	"regexp"
	"testing"

	sitter "github.com/alexaandru/go-tree-sitter-bare"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kraklabs/dook/internal/config"
	"github.com/kraklabs/dook/internal/downloadpolicy"
	"github.com/kraklabs/dook/internal/langname"
	"github.com/kraklabs/dook/internal/loader"
	"github.com/kraklabs/dook/internal/querycompiler"
	"github.com/kraklabs/dook/internal/searches"
)

const pythonSample = `
def helper():
    pass

# explains combinations
def combinations(n, r):
    return factorial(n) // (factorial(r) * factorial(n - r))
`

func TestFindDefinitionPythonWithCommentContext(t *testing.T) {
	resolved, err := config.Default().Resolve()
	require.NoError(t, err)

	l := loader.New(t.TempDir(), t.TempDir(), downloadpolicy.No, nil)
	qc := querycompiler.New(l, resolved)

	info, err := qc.GetLanguageInfo(langname.Python)
	require.NoError(t, err)

	parser := sitter.NewParser()
	parser.SetLanguage(info.Language)

	tree, err := parser.ParseString(context.Background(), nil, []byte(pythonSample))
	require.NoError(t, err)

	defer tree.Close()

	pattern := regexp.MustCompile(`^combinations$`)

	result := searches.Find(info, tree, []byte(pythonSample), pattern, false, nil)

	require.NotEmpty(t, result.Ranges)
	require.Contains(t, result.RecurseCandidates, "factorial")
}

func TestFindPythonCommentContextExactRanges(t *testing.T) {
	resolved, err := config.Default().Resolve()
	require.NoError(t, err)

	l := loader.New(t.TempDir(), t.TempDir(), downloadpolicy.No, nil)
	qc := querycompiler.New(l, resolved)

	info, err := qc.GetLanguageInfo(langname.Python)
	require.NoError(t, err)

	parser := sitter.NewParser()
	parser.SetLanguage(info.Language)

	tree, err := parser.ParseString(context.Background(), nil, []byte(pythonSample))
	require.NoError(t, err)

	defer tree.Close()

	pattern := regexp.MustCompile(`^combinations$`)

	result := searches.Find(info, tree, []byte(pythonSample), pattern, false, nil)

	// pythonSample, 0-indexed:
	// row0 ""                                row4 "# explains combinations"
	// row1 "def helper():"                    row5 "def combinations(n, r):"
	// row2 "    pass"                         row6 "    return factorial(...)"
	// row3 ""
	// The comment at row4 abuts the def at row5, so it is kept as
	// context (half-open [4,5)); the def itself spans rows 5-6
	// (half-open [5,7)).
	require.Len(t, result.Ranges, 2)
	assert.Contains(t, result.Ranges, searches.LineRange{Start: 4, End: 5})
	assert.Contains(t, result.Ranges, searches.LineRange{Start: 5, End: 7})
	assert.Equal(t, []string{"factorial"}, result.RecurseCandidates)
}

const javascriptSample = `function helper() {
  return 1;
}

// computes four
function four() {
  return helper() + 3;
}
`

func TestFindJavaScriptCommentContextExactRanges(t *testing.T) {
	resolved, err := config.Default().Resolve()
	require.NoError(t, err)

	l := loader.New(t.TempDir(), t.TempDir(), downloadpolicy.No, nil)
	qc := querycompiler.New(l, resolved)

	info, err := qc.GetLanguageInfo(langname.JavaScript)
	require.NoError(t, err)

	parser := sitter.NewParser()
	parser.SetLanguage(info.Language)

	tree, err := parser.ParseString(context.Background(), nil, []byte(javascriptSample))
	require.NoError(t, err)

	defer tree.Close()

	pattern := regexp.MustCompile(`^four$`)

	result := searches.Find(info, tree, []byte(javascriptSample), pattern, false, nil)

	// javascriptSample, 0-indexed:
	// row0 "function helper() {"      row4 "// computes four"
	// row1 "  return 1;"              row5 "function four() {"
	// row2 "}"                        row6 "  return helper() + 3;"
	// row3 ""                         row7 "}"
	// four() has no enclosing class/function (top-level), so only its
	// own range (rows 5-7) and the abutting comment (row4) are kept.
	require.Len(t, result.Ranges, 2)
	assert.Contains(t, result.Ranges, searches.LineRange{Start: 5, End: 8})
	assert.Contains(t, result.Ranges, searches.LineRange{Start: 4, End: 5})
	assert.Equal(t, []string{"helper"}, result.RecurseCandidates)
}

const cSample = `#include <stdio.h>

#define SEVEN 7

int main(void) {
    return SEVEN;
}
`

func TestFindCMacroDefinitionExactRanges(t *testing.T) {
	resolved, err := config.Default().Resolve()
	require.NoError(t, err)

	l := loader.New(t.TempDir(), t.TempDir(), downloadpolicy.No, nil)
	qc := querycompiler.New(l, resolved)

	info, err := qc.GetLanguageInfo(langname.C)
	require.NoError(t, err)

	parser := sitter.NewParser()
	parser.SetLanguage(info.Language)

	tree, err := parser.ParseString(context.Background(), nil, []byte(cSample))
	require.NoError(t, err)

	defer tree.Close()

	pattern := regexp.MustCompile(`^SEVEN$`)

	result := searches.Find(info, tree, []byte(cSample), pattern, false, nil)

	// cSample, 0-indexed: row2 is "#define SEVEN 7", a preproc_def with
	// no parent and no preceding comment/preproc sibling, so it should
	// produce exactly its own single-line range.
	require.Len(t, result.Ranges, 1)
	assert.Equal(t, searches.LineRange{Start: 2, End: 3}, result.Ranges[0])
}

func TestFindNameOnlySkipsContext(t *testing.T) {
	resolved, err := config.Default().Resolve()
	require.NoError(t, err)

	l := loader.New(t.TempDir(), t.TempDir(), downloadpolicy.No, nil)
	qc := querycompiler.New(l, resolved)

	info, err := qc.GetLanguageInfo(langname.Python)
	require.NoError(t, err)

	parser := sitter.NewParser()
	parser.SetLanguage(info.Language)

	tree, err := parser.ParseString(context.Background(), nil, []byte(pythonSample))
	require.NoError(t, err)

	defer tree.Close()

	pattern := regexp.MustCompile(`.*`)

	result := searches.Find(info, tree, []byte(pythonSample), pattern, true, nil)

	require.Empty(t, result.Ranges)
	require.Contains(t, result.Names, "combinations")
	require.Contains(t, result.Names, "helper")
}
