package outputs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/kraklabs/dook/internal/rangeset"
)

// writeRangesWithBat shells out to `bat` for syntax-highlighted
// output, piping stdin's bytes to the child when there is no path on
// disk to hand it directly, matching the original implementation's
// write_ranges_with_bat.
func writeRangesWithBat(ctx context.Context, w io.Writer, path string, recipeName string, languageExt string, content []byte, ranges *rangeset.RangeUnion, opts Options) error {
	args := []string{
		"--paging=never",
		"--wrap=" + opts.Wrap.String(),
	}

	if opts.UseColor {
		args = append(args, "--color=always")
	} else {
		args = append(args, "--color=never")
	}

	if opts.TerminalCols > 0 {
		args = append(args, fmt.Sprintf("--terminal-width=%d", opts.TerminalCols))
	}

	if opts.Plain > 0 {
		args = append(args, "--plain")
	}

	for _, r := range ranges.IterFillingGaps(1) {
		args = append(args, fmt.Sprintf("--line-range=%d:%d", r.Start+1, r.End))
	}

	var stdinPipe io.WriteCloser

	if path != "" {
		args = append(args, path)
	} else {
		if recipeName != "" {
			args = append(args, "--file-name", recipeName)
		}

		if languageExt != "" {
			args = append(args, "-l", languageExt)
		}
	}

	cmd := exec.CommandContext(ctx, "bat", args...)
	cmd.Stderr = os.Stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return wrapIOError(err)
	}

	if path == "" {
		stdinPipe, err = cmd.StdinPipe()
		if err != nil {
			return wrapIOError(err)
		}
	}

	if err := cmd.Start(); err != nil {
		return wrapIOError(err)
	}

	if stdinPipe != nil {
		go func() {
			defer stdinPipe.Close()

			if _, err := stdinPipe.Write(content); err != nil && !IsBrokenPipe(wrapIOError(err)) {
				return
			}
		}()
	}

	// std::io::copy's rationale applies here too: reading bat's stdout
	// ourselves and writing it to w means a reader that hangs up (e.g.
	// the user quits a pager downstream) surfaces as a normal EPIPE on
	// our side instead of silently burning CPU.
	copyErr := func() error {
		_, err := io.Copy(w, stdout)

		return err
	}()

	waitErr := cmd.Wait()

	if copyErr != nil {
		return wrapIOError(copyErr)
	}

	var exitErr *exec.ExitError
	if errors.As(waitErr, &exitErr) {
		return &PagerWriteError{Kind: string(ReaderDied), Err: fmt.Errorf("bat exited %s", exitErr.String())}
	}

	if waitErr != nil {
		return wrapIOError(waitErr)
	}

	return nil
}
