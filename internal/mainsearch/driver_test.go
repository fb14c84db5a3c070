package mainsearch_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kraklabs/dook/internal/mainsearch"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func TestRunFindsDefinitionAcrossCandidates(t *testing.T) {
	qc := newTestCompiler(t)
	dir := t.TempDir()

	writeFile(t, dir, "a.py", "def helper():\n    pass\n")
	path := writeFile(t, dir, "b.py", pythonSample)

	finder := func(_ context.Context, _ string, _ string) ([]string, error) {
		return []string{path}, nil
	}

	var outcomes []mainsearch.FileOutcome

	err := mainsearch.Run(context.Background(), silentLogger(), qc, finder, nil,
		mainsearch.RunParams{RawPattern: "combinations", Root: dir},
		func(o mainsearch.FileOutcome) error {
			outcomes = append(outcomes, o)

			return nil
		},
	)
	require.NoError(t, err)
	require.Len(t, outcomes, 1)
	assert.Contains(t, outcomes[0].Recipe, path)
	assert.False(t, outcomes[0].Results.Ranges.IsEmpty())
}

func TestRunOnlyNamesDeduplicatesAcrossFiles(t *testing.T) {
	qc := newTestCompiler(t)
	dir := t.TempDir()

	p1 := writeFile(t, dir, "a.py", "def factorial(n):\n    return 1\n")
	p2 := writeFile(t, dir, "b.py", "def factorial(n):\n    return 1\n")

	finder := func(_ context.Context, _ string, _ string) ([]string, error) {
		return []string{p1, p2}, nil
	}

	var names []string

	err := mainsearch.Run(context.Background(), silentLogger(), qc, finder, nil,
		mainsearch.RunParams{RawPattern: "factorial", OnlyNames: true, Root: dir},
		func(o mainsearch.FileOutcome) error {
			names = append(names, o.Results.MatchedNames...)

			return nil
		},
	)
	require.NoError(t, err)
	assert.Equal(t, []string{"factorial"}, names)
}

func TestDissimilarityScoresTrailingPathMatch(t *testing.T) {
	assert.Equal(t, -2, mainsearch.Dissimilarity("PYTHON", "foo.bar", filepath.Join("x", "foo", "bar.py")))
	assert.Equal(t, 0, mainsearch.Dissimilarity("PYTHON", "foo.bar", filepath.Join("x", "unrelated.py")))
	assert.Equal(t, 0, mainsearch.Dissimilarity("JAVASCRIPT", "foo.bar", filepath.Join("x", "foo", "bar.js")))
}
