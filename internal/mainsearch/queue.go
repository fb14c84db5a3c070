package mainsearch

import (
	"context"
	"regexp"
	"sort"

	"github.com/kraklabs/dook/internal/inputs"
	"github.com/kraklabs/dook/internal/querycompiler"
)

// queueEntry is one pending search target: either stdin (path == "",
// stdinFile non-nil) or a candidate path still to be loaded.
type queueEntry struct {
	path      string
	stdinFile *inputs.LoadedFile
}

func (e queueEntry) describe() string {
	if e.stdinFile != nil {
		return e.stdinFile.Recipe
	}

	return e.path
}

// seedQueue builds the per-pass candidate deque. On the first pass,
// stdin input (if any) is searched alone, skipping the grep
// collaborator entirely, mirroring the original's "don't bother
// grepping the whole tree if the user explicitly piped something in"
// shortcut; every later recursion pass greps again (the pattern has
// changed) and re-includes stdin ahead of the grep results.
func seedQueue(
	ctx context.Context,
	finder CandidateFinder,
	grepPattern *regexp.Regexp,
	stdin *inputs.LoadedFile,
	isFirstPass bool,
	params RunParams,
) ([]queueEntry, error) {
	if stdin != nil && isFirstPass {
		return []queueEntry{{stdinFile: stdin}}, nil
	}

	var queue []queueEntry
	if stdin != nil {
		queue = append(queue, queueEntry{stdinFile: stdin})
	}

	paths, err := finder(ctx, grepPattern.String(), params.Root)
	if err != nil {
		return nil, err
	}

	for _, p := range paths {
		queue = append(queue, queueEntry{path: p})
	}

	return queue, nil
}

func loadQueueEntry(entry queueEntry, qc *querycompiler.QueryCompiler) (*inputs.LoadedFile, error) {
	if entry.stdinFile != nil {
		return entry.stdinFile, nil
	}

	return inputs.LoadIfParseable(entry.path, qc)
}

// stableSortQueue re-sorts queue in place by ascending key, preserving
// the relative order of entries with equal keys (Go's sort.SliceStable
// is the direct analogue of the original's sort_by_cached_key on a
// VecDeque).
func stableSortQueue(queue []queueEntry, key func(queueEntry) int) {
	sort.SliceStable(queue, func(i, j int) bool {
		return key(queue[i]) < key(queue[j])
	})
}
