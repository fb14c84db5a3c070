package outputs

import (
	"errors"
	"fmt"
	"io"
	"syscall"
)

// PagerWriteErrorKind enumerates why writing results out failed,
// matching §7's PagerWrite taxonomy.
type PagerWriteErrorKind string

const (
	IoError    PagerWriteErrorKind = "IoError"
	BrokenPipe PagerWriteErrorKind = "BrokenPipe"
	ReaderDied PagerWriteErrorKind = "ReaderDied"
)

// PagerWriteError reports a failure writing matched ranges to the
// user, whether through bat or the plain fallback.
type PagerWriteError struct {
	Kind string
	Err  error
}

func (e *PagerWriteError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}

	return e.Kind
}

func (e *PagerWriteError) Unwrap() error { return e.Err }

// IsBrokenPipe reports whether err represents EPIPE anywhere in its
// chain, the signal cmd/dook uses to exit 141 quietly instead of
// printing a scary error.
func IsBrokenPipe(err error) bool {
	if err == nil {
		return false
	}

	var pwe *PagerWriteError
	if errors.As(err, &pwe) && pwe.Kind == string(BrokenPipe) {
		return true
	}

	return errors.Is(err, syscall.EPIPE) || errors.Is(err, io.ErrClosedPipe)
}

func wrapIOError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, syscall.EPIPE) {
		return &PagerWriteError{Kind: string(BrokenPipe), Err: err}
	}

	return &PagerWriteError{Kind: string(IoError), Err: err}
}
