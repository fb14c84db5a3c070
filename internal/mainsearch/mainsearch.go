// Package mainsearch drives one file through the full search
// pipeline: parse, match definitions (or just names), discover
// injections, and push each injection onto a work-stack so its own
// content gets the same treatment — a language-agnostic loop that
// terminates because every injection is consumed exactly once.
// Grounded on the original implementation's main_search.rs
// search_one_file / search_one_file_with_one_injection.
package mainsearch

import (
	"context"
	"fmt"
	"log/slog"

	sitter "github.com/alexaandru/go-tree-sitter-bare"

	"github.com/kraklabs/dook/internal/inputs"
	"github.com/kraklabs/dook/internal/langname"
	"github.com/kraklabs/dook/internal/querycompiler"
	"github.com/kraklabs/dook/internal/rangeset"
	"github.com/kraklabs/dook/internal/searches"
)

// ImportOrigin pairs an import_query capture with the language of the
// file it was found in, since different languages resolve origins
// differently (the driver's candidate-reordering pass, reorderByImports,
// uses the language to decide how to score them).
type ImportOrigin struct {
	Language langname.Name
	Origin   string
}

// FileResults accumulates every definition, name, recurse candidate,
// and import origin found across a file and all of its nested
// injections.
type FileResults struct {
	Ranges        *rangeset.RangeUnion
	MatchedNames  []string
	RecurseNames  []string
	ImportOrigins []ImportOrigin
}

func newFileResults() *FileResults {
	return &FileResults{Ranges: rangeset.New()}
}

// pendingInjection is a work-stack entry: nil means "the whole file",
// grounded on the original's `Vec<Option<InjectionRange>>` stack.
type pendingInjection struct {
	injection *searches.InjectionRange
}

// SearchFile runs params against one already-classified, in-memory
// file, following every injection it discovers until the work-stack is
// empty. Every pass's failure — including the root file itself — is
// logged at warn level and simply skipped, matching §7's propagation
// policy: a bad region never aborts the rest of the search.
func SearchFile(
	ctx context.Context,
	logger *slog.Logger,
	qc *querycompiler.QueryCompiler,
	file *inputs.LoadedFile,
	params Params,
) (*FileResults, error) {
	results := newFileResults()

	stack := []pendingInjection{{injection: nil}}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		pass, err := searchOnePass(ctx, qc, file.Bytes, file.Language, top.injection, params)
		if err != nil {
			logger.Warn("skip region", "input", file.Recipe, "err", err)

			continue
		}

		mergeInto(results, pass, top.injection, params.OnlyNames)

		for i := range pass.injections {
			stack = append(stack, pendingInjection{injection: &pass.injections[i]})
		}
	}

	return results, nil
}

type passResult struct {
	language   langname.Name
	names      []string
	ranges     []searches.LineRange
	recurse    []string
	imports    []string
	injections []searches.InjectionRange
}

func searchOnePass(
	ctx context.Context,
	qc *querycompiler.QueryCompiler,
	fileBytes []byte,
	rootLanguage langname.Name,
	injection *searches.InjectionRange,
	params Params,
) (*passResult, error) {
	language, region, err := resolveRegion(fileBytes, rootLanguage, injection)
	if err != nil {
		return nil, err
	}

	info, err := qc.GetLanguageInfo(language)
	if err != nil {
		return nil, err
	}

	if !params.Recurse {
		info = withoutRecurseQuery(info)
	}

	parser := sitter.NewParser()
	parser.SetLanguage(info.Language)

	tree, err := parser.ParseString(ctx, nil, region)
	if err != nil {
		return nil, fmt.Errorf("parse %s region: %w", language, err)
	}

	defer tree.Close()

	var inheritedContext []searches.LineRange
	if injection != nil {
		inheritedContext = injection.Context
	}

	result := searches.Find(info, tree, region, params.Pattern, params.OnlyNames, inheritedContext)

	return &passResult{
		language:   language,
		ranges:     result.Ranges,
		names:      result.Names,
		recurse:    result.RecurseCandidates,
		imports:    result.ImportOrigins,
		injections: result.Injections,
	}, nil
}

// resolveRegion determines which language governs this pass and
// slices out the bytes it should parse: the whole file for the root
// pass, or an injection's captured byte range for a nested one. A
// present language hint short-circuits detection; otherwise the slice
// is classified from its own content.
func resolveRegion(fileBytes []byte, rootLanguage langname.Name, injection *searches.InjectionRange) (langname.Name, []byte, error) {
	if injection == nil {
		return rootLanguage, fileBytes, nil
	}

	region := fileBytes[injection.StartByte:injection.EndByte]

	if injection.Language != "" {
		if name, err := langname.Parse(injection.Language); err == nil {
			return name, region, nil
		}
	}

	name, err := inputs.DetectLanguageFromBytes(region, injection.Language)
	if err != nil {
		return "", nil, err
	}

	return name, region, nil
}

// withoutRecurseQuery returns a shallow copy of info with its recurse
// query cleared, so searches.Find skips recursion-candidate discovery
// entirely for a pass that doesn't need it — cheaper than discarding
// the results after the fact.
func withoutRecurseQuery(info *querycompiler.LanguageInfo) *querycompiler.LanguageInfo {
	clone := *info
	clone.RecurseQuery = nil

	return &clone
}

func mergeInto(results *FileResults, pass *passResult, injection *searches.InjectionRange, onlyNames bool) {
	if onlyNames {
		results.MatchedNames = append(results.MatchedNames, pass.names...)

		return
	}

	rowOffset := uint32(0)
	if injection != nil {
		rowOffset = injection.StartPoint.Row
	}

	for _, r := range pass.ranges {
		results.Ranges.Push(int(r.Start+rowOffset), int(r.End+rowOffset))
	}

	if injection != nil && len(pass.ranges) > 0 {
		for _, ctxRange := range injection.Context {
			results.Ranges.Push(int(ctxRange.Start), int(ctxRange.End))
		}
	}

	for _, n := range pass.recurse {
		results.RecurseNames = append(results.RecurseNames, n)
	}

	for _, origin := range pass.imports {
		results.ImportOrigins = append(results.ImportOrigins, ImportOrigin{Language: pass.language, Origin: origin})
	}
}
