package subfiles_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kraklabs/dook/internal/subfiles"
)

const sampleNotebook = `{
  "cells": [
    {"cell_type": "markdown", "source": ["# Title\n"], "outputs": []},
    {"cell_type": "code", "source": "print('hi')", "outputs": [
      {"output_type": "stream", "text": "hi\n"}
    ]}
  ],
  "metadata": {"language_info": {"name": "python"}}
}`

func TestToUnalignedMarkdown(t *testing.T) {
	md, err := subfiles.ToUnalignedMarkdown([]byte(sampleNotebook))
	require.NoError(t, err)

	text := string(md)
	assert.Contains(t, text, "# Title")
	assert.Contains(t, text, "```python\nprint('hi')\n```")
	assert.Contains(t, text, "```\nhi\n\n```\n\n")
}
