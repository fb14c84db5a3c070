package mainsearch

import (
	"context"
	"os/exec"
	"strings"
)

// CandidateFinder seeds the driver's candidate-path deque, matching
// §4.6's "grep collaborator". GrepCandidates below is the production
// implementation (rg, falling back to grep -lIErZ); tests substitute
// their own to avoid depending on either binary being on PATH.
type CandidateFinder func(ctx context.Context, pattern string, root string) ([]string, error)

// GrepCandidates shells out to rg if it's on PATH, else grep -lIErZ,
// and returns the matching file paths under root.
//
// The pattern passed here is intentionally broader than the
// tree-sitter-time name match in internal/searches: grep has no notion
// of "this capture is a definition name", so it simply looks for
// pattern occurring anywhere in the file, case-sensitively, the same
// regex flavor as the eventual definition_query name match. An
// overly-broad grep hit costs nothing beyond one wasted parse (the
// tree-sitter pass filters it out); an overly-narrow grep pattern
// would risk a false negative, which is why no anchoring is added
// here beyond what the caller's pattern itself specifies (§9's first
// open question).
func GrepCandidates(ctx context.Context, pattern string, root string) ([]string, error) {
	if path, err := exec.LookPath("rg"); err == nil {
		return runGrep(ctx, path, []string{"--files-with-matches", "--no-heading", "-e", pattern, root})
	}

	if path, err := exec.LookPath("grep"); err == nil {
		return runGrep(ctx, path, []string{"-lIErZ", pattern, root})
	}

	return nil, &GrepUnavailableError{}
}

func runGrep(ctx context.Context, path string, args []string) ([]string, error) {
	cmd := exec.CommandContext(ctx, path, args...)

	out, err := cmd.Output()
	if err != nil {
		// Both rg and grep exit 1 for "no matches", which is not a
		// failure the driver should surface.
		if exitErr, ok := err.(*exec.ExitError); ok && exitErr.ExitCode() == 1 {
			return nil, nil
		}

		return nil, &GrepUnavailableError{Err: err}
	}

	// rg prints one path per line; grep -Z ends each path with a NUL.
	paths := strings.FieldsFunc(string(out), func(r rune) bool { return r == '\n' || r == 0 })

	return paths, nil
}

// GrepUnavailableError reports that neither rg nor grep could be
// invoked to seed the candidate queue.
type GrepUnavailableError struct {
	Err error
}

func (e *GrepUnavailableError) Error() string {
	if e.Err != nil {
		return "ripgrep/grep collaborator failed: " + e.Err.Error()
	}

	return "neither rg nor grep is available on PATH"
}

func (e *GrepUnavailableError) Unwrap() error { return e.Err }
