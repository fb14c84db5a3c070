// Package mainsearch also hosts the across-files driver described by
// §4.6's second half: a deque of candidate paths seeded by a grep
// collaborator, import-origin-triggered reordering, and the
// single-callee recursion loop that keeps re-searching with a new
// literal pattern until it stops finding exactly one candidate.
// Grounded on the original implementation's main.rs outer loop
// (the ripgrep/recursion/import-reorder machinery that lived directly
// in its `main_inner`, since that original has no separate "driver"
// module of its own).
package mainsearch

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"

	"github.com/kraklabs/dook/internal/inputs"
	"github.com/kraklabs/dook/internal/langname"
	"github.com/kraklabs/dook/internal/querycompiler"
)

// RunParams configures one invocation of Run: the user's raw pattern
// text and every CLI-level policy that shapes the search, independent
// of terminal/output concerns (those live in cmd/dook).
type RunParams struct {
	RawPattern string
	IgnoreCase int // 0, 1, or 2 (2 implies 1 plus case recasing, applied by the caller before Run)
	Recurse    bool
	OnlyNames  bool
	UseStdin   bool
	Root       string
}

// FileOutcome is one file's contribution to a run, handed to Emit as
// soon as it is available so results stream rather than batch.
type FileOutcome struct {
	Recipe  string
	Path    string // empty for stdin, otherwise the searched file's path
	File    *inputs.LoadedFile
	Results *FileResults
}

// Emit is called once per searched file (or once for stdin) with that
// file's accumulated results, in the order the driver finishes with
// each one.
type Emit func(FileOutcome) error

// Run drives the full across-files algorithm: seed the candidate
// queue from finder (skipped entirely in favor of a single stdin
// pass when params.UseStdin is set), search each file, reorder the
// remaining queue whenever a new import origin is observed, and, if
// recursion is enabled, repeat the whole pass with the pattern
// replaced by the sole new recurse candidate until no single
// candidate remains or the candidate would reintroduce a pattern
// already tried (§4.6, §8's cycle-break property).
func Run(
	ctx context.Context,
	logger *slog.Logger,
	qc *querycompiler.QueryCompiler,
	finder CandidateFinder,
	stdin *inputs.LoadedFile,
	params RunParams,
	emit Emit,
) error {
	currentPattern, err := regexp.Compile(withCaseFlag(params.RawPattern, params.IgnoreCase > 0))
	if err != nil {
		return fmt.Errorf("compile pattern: %w", err)
	}

	var triedPatterns []*regexp.Regexp

	seenNames := make(map[string]bool)

	for pass := 0; ; pass++ {
		localPattern, err := regexp.Compile(anchoredCaseFlag(currentPattern.String(), pass == 0 && params.IgnoreCase > 0))
		if err != nil {
			return fmt.Errorf("compile anchored pattern: %w", err)
		}

		triedPatterns = append(triedPatterns, localPattern)

		fileParams := Params{
			Pattern:   localPattern,
			OnlyNames: params.OnlyNames,
			Recurse:   params.Recurse,
		}

		recurseCandidates, err := runOnePass(ctx, logger, qc, finder, stdin, pass == 0, params, currentPattern, fileParams, seenNames, triedPatterns, emit)
		if err != nil {
			return err
		}

		if !params.Recurse || params.OnlyNames || len(recurseCandidates) != 1 {
			return nil
		}

		currentPattern = regexp.MustCompile(regexp.QuoteMeta(recurseCandidates[0]))
	}
}

// runOnePass performs one full sweep over stdin (if requested) and
// every grep-seeded candidate path, returning the distinct recurse
// candidates collected that are not already matched by any
// previously-tried pattern (the cycle-break rule).
func runOnePass(
	ctx context.Context,
	logger *slog.Logger,
	qc *querycompiler.QueryCompiler,
	finder CandidateFinder,
	stdin *inputs.LoadedFile,
	isFirstPass bool,
	runParams RunParams,
	grepPattern *regexp.Regexp,
	fileParams Params,
	seenNames map[string]bool,
	triedPatterns []*regexp.Regexp,
	emit Emit,
) ([]string, error) {
	queue, err := seedQueue(ctx, finder, grepPattern, stdin, isFirstPass, runParams)
	if err != nil {
		return nil, err
	}

	seenOrigins := make(map[langname.Name]map[string]bool)

	var recurseDefs []string

	recurseSeen := make(map[string]bool)

	for len(queue) > 0 {
		entry := queue[0]
		queue = queue[1:]

		file, err := loadQueueEntry(entry, qc)
		if err != nil {
			logger.Warn("skip input", "input", entry.describe(), "err", err)

			continue
		}

		results, err := SearchFile(ctx, logger, qc, file, fileParams)
		if err != nil {
			logger.Warn("skip input", "input", entry.describe(), "err", err)

			continue
		}

		if err := emitResults(entry.path, file, results, runParams.OnlyNames, seenNames, emit); err != nil {
			return nil, err
		}

		for _, name := range results.RecurseNames {
			if matchesAny(triedPatterns, name) {
				continue
			}

			if !recurseSeen[name] {
				recurseSeen[name] = true

				recurseDefs = append(recurseDefs, name)
			}
		}

		queue = reorderByImports(queue, results.ImportOrigins, seenOrigins, logger)
	}

	return recurseDefs, nil
}

func emitResults(path string, file *inputs.LoadedFile, results *FileResults, onlyNames bool, seenNames map[string]bool, emit Emit) error {
	if onlyNames {
		var fresh []string

		for _, n := range results.MatchedNames {
			if !seenNames[n] {
				seenNames[n] = true

				fresh = append(fresh, n)
			}
		}

		if len(fresh) == 0 {
			return nil
		}

		return emit(FileOutcome{Recipe: file.Recipe, Path: path, File: file, Results: &FileResults{MatchedNames: fresh}})
	}

	if results.Ranges.IsEmpty() {
		return nil
	}

	return emit(FileOutcome{Recipe: file.Recipe, Path: path, File: file, Results: results})
}

func matchesAny(patterns []*regexp.Regexp, name string) bool {
	for _, p := range patterns {
		if p.MatchString(name) {
			return true
		}
	}

	return false
}

// reorderByImports implements §4.6's one-shot-per-origin reorder: the
// first time a given (language, origin) pair is observed, every still
// queued path is stably re-sorted by ascending Dissimilarity against
// it.
func reorderByImports(
	queue []queueEntry,
	origins []ImportOrigin,
	seen map[langname.Name]map[string]bool,
	logger *slog.Logger,
) []queueEntry {
	for _, o := range origins {
		if seen[o.Language] == nil {
			seen[o.Language] = make(map[string]bool)
		}

		if seen[o.Language][o.Origin] {
			continue
		}

		seen[o.Language][o.Origin] = true

		logger.Debug("sorting candidates", "import", o.Origin, "language", o.Language)

		lang, origin := o.Language, o.Origin
		stableSortQueue(queue, func(e queueEntry) int {
			if e.path == "" {
				return 0
			}

			return Dissimilarity(lang, origin, e.path)
		})
	}

	return queue
}

func withCaseFlag(pattern string, ignoreCase bool) string {
	if ignoreCase {
		return "(?i)" + pattern
	}

	return pattern
}

// anchoredCaseFlag builds the fully-anchored `^(...)$` pattern used to
// match captured names (as opposed to the grep-time pattern, which is
// unanchored) per §9's documented grep-vs-tree-sitter mismatch.
func anchoredCaseFlag(pattern string, ignoreCase bool) string {
	return withCaseFlag("^("+pattern+")$", ignoreCase)
}
