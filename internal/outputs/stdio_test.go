package outputs

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kraklabs/dook/internal/rangeset"
)

func TestWriteRangesStdIONumbersLinesAndSeparatesGaps(t *testing.T) {
	content := []byte("one\ntwo\nthree\nfour\nfive\nsix\n")

	ranges := rangeset.New()
	ranges.Push(0, 1)
	ranges.Push(4, 5)

	var buf bytes.Buffer

	err := writeRangesStdIO(&buf, "example.py", content, ranges, Options{TerminalCols: 11})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "example.py")
	assert.Contains(t, out, " 1 | one")
	assert.Contains(t, out, " 5 | five")
	assert.NotContains(t, out, "two")
	assert.True(t, strings.Contains(out, strings.Repeat("-", 10)), "expected a dashed gap separator")
}

func TestWriteRangesStdIOPlainTwoOmitsLineNumbers(t *testing.T) {
	content := []byte("alpha\nbeta\n")

	ranges := rangeset.New()
	ranges.Push(0, 2)

	var buf bytes.Buffer

	err := writeRangesStdIO(&buf, "stdin", content, ranges, Options{Plain: 2})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "alpha")
	assert.NotContains(t, out, "|")
}

func TestWriteRangesStdIOEmptyRangesWritesNothing(t *testing.T) {
	var buf bytes.Buffer

	err := writeRangesStdIO(&buf, "stdin", []byte("a\nb\n"), rangeset.New(), Options{})
	require.NoError(t, err)
	assert.Empty(t, buf.String())
}
