package outputs

import (
	"context"
	"io"

	"github.com/kraklabs/dook/internal/rangeset"
)

// WriteRanges renders ranges from content (label identifies the
// source in headers — a path, or "stdin") to w, preferring bat when it
// is on PATH and falling back to the plain renderer otherwise, per
// §5's HasBat policy.
//
// path is the on-disk location of content, or empty when content came
// from stdin or an injection and was never written to disk; recipeName
// and languageHint are only consulted in the no-path case, to give bat
// a sensible --file-name and -l.
func WriteRanges(ctx context.Context, w io.Writer, path, label, recipeName, languageHint string, content []byte, ranges *rangeset.RangeUnion, opts Options) error {
	if HasBat() {
		return writeRangesWithBat(ctx, w, path, recipeName, languageHint, content, ranges, opts)
	}

	return writeRangesStdIO(w, label, content, ranges, opts)
}
