package outputs

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"

	"github.com/kraklabs/dook/internal/rangeset"
)

// writeRangesStdIO is the plain, dependency-free fallback: a header
// naming the source, then each matched (gap-filled by 1 line) range
// with optional line numbers, separated by a dashed rule.
func writeRangesStdIO(w io.Writer, label string, content []byte, ranges *rangeset.RangeUnion, opts Options) error {
	numberLines := opts.Plain == 0

	cols := opts.TerminalCols
	if cols <= 0 {
		cols = 40
	}

	sep1 := dashes(cols-1, '-')
	sep2 := dashes(cols-1, '=')

	maxLine, ok := ranges.End()
	if !ok {
		return nil
	}

	lineWidth := len(strconv.Itoa(maxLine))

	if _, err := fmt.Fprintf(w, "%s\n%s\n%s\n", sep2, label, sep2); err != nil {
		return wrapIOError(err)
	}

	filled := ranges.IterFillingGaps(1)
	if len(filled) == 0 {
		return nil
	}

	current := filled[0]
	filled = filled[1:]

	scanner := bufio.NewScanner(bytes.NewReader(content))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for lineIdx := 0; scanner.Scan(); lineIdx++ {
		if lineIdx < current.Start {
			continue
		}

		if lineIdx >= current.End {
			if len(filled) == 0 {
				return nil
			}

			current = filled[0]
			filled = filled[1:]

			if _, err := fmt.Fprintf(w, "%s\n", sep1); err != nil {
				return wrapIOError(err)
			}

			if lineIdx < current.Start {
				continue
			}
		}

		if numberLines {
			if _, err := fmt.Fprintf(w, " %*d | ", lineWidth, lineIdx+1); err != nil {
				return wrapIOError(err)
			}
		}

		if _, err := fmt.Fprintf(w, "%s\n", scanner.Text()); err != nil {
			return wrapIOError(err)
		}
	}

	return nil
}
