package inputs_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kraklabs/dook/internal/inputs"
	"github.com/kraklabs/dook/internal/langname"
)

func TestDetectLanguageFromPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.py")

	content := []byte("def f():\n    pass\n")

	name, err := inputs.DetectLanguageFromPath(path, content)
	require.NoError(t, err)
	assert.Equal(t, langname.Python, name)
}

func TestLoadStdinEmpty(t *testing.T) {
	_, err := inputs.LoadStdin(strings.NewReader(""))
	require.Error(t, err)

	var inputErr *inputs.Error
	require.ErrorAs(t, err, &inputErr)
	assert.Equal(t, inputs.EmptyStdin, inputErr.Kind)
}

func TestLoadConvertsNotebookToMarkdown(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scratch.ipynb")

	notebook := `{
		"cells": [
			{"cell_type": "markdown", "source": ["# Title"]},
			{"cell_type": "code", "source": ["def f():\n", "    pass\n"], "outputs": []}
		],
		"metadata": {"language_info": {"name": "python"}}
	}`

	require.NoError(t, os.WriteFile(path, []byte(notebook), 0o644))

	file, err := inputs.Load(path)
	require.NoError(t, err)

	assert.Equal(t, langname.Markdown, file.Language)
	assert.Contains(t, string(file.Bytes), "# Title")
	assert.Contains(t, string(file.Bytes), "```python")
	assert.Contains(t, string(file.Bytes), "def f():")
}

func TestFilterCandidatesIntersectionFallback(t *testing.T) {
	result := inputs.FilterCandidates([]string{"Python", "Ruby"}, []string{"Go"})
	assert.Equal(t, []string{"Python", "Ruby"}, result)

	result = inputs.FilterCandidates([]string{"Python", "Ruby"}, []string{"Ruby"})
	assert.Equal(t, []string{"Ruby"}, result)

	result = inputs.FilterCandidates(nil, []string{"Go"})
	assert.Equal(t, []string{"Go"}, result)
}
