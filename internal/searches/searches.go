// Package searches implements the per-file search pipeline: matching
// definition_query against a parsed tree, expanding each match with
// sibling and ancestor header context, collecting recurse and import
// candidates, and discovering cross-language injections. Grounded on
// the teacher's pattern_matcher.go query/cursor usage, generalized
// from "match one pattern against one node" to the full pipeline.
package searches

import (
	"regexp"
	"slices"
	"sort"

	sitter "github.com/alexaandru/go-tree-sitter-bare"

	"github.com/kraklabs/dook/internal/querycompiler"
	"github.com/kraklabs/dook/internal/tsutil"
)

// Result accumulates everything one Find pass over one parsed file
// discovers.
type Result struct {
	// Ranges are the printed line ranges for every definition that
	// matched, before caller-side coalescing via rangeset.RangeUnion.
	Ranges []LineRange

	// Names holds matched name strings when NameOnly is requested;
	// context expansion and recursion are skipped in that mode.
	Names []string

	// RecurseCandidates are distinct callee names found inside the
	// matched definitions' bodies, sorted and deduplicated.
	RecurseCandidates []string

	// ImportOrigins are the distinct module/path strings captured by
	// import_query anywhere in the file (not scoped to a match).
	ImportOrigins []string

	Injections []InjectionRange
}

// rowRange is an inclusive-row interval used only while computing
// context; it is converted to the half-open LineRange on output.
type rowRange struct {
	start, end uint32
}

// Find runs info's queries against tree, matching definitions whose
// (possibly transformed) @name text satisfies pattern. inheritedContext
// is the set of line ranges any discovered injection should carry
// forward in addition to its own enclosing headers (§5).
func Find(
	info *querycompiler.LanguageInfo,
	tree *sitter.Tree,
	source []byte,
	pattern *regexp.Regexp,
	nameOnly bool,
	inheritedContext []LineRange,
) *Result {
	root := tree.RootNode()
	result := &Result{}

	var matchHeaders []matchHeaderEntry

	cursor := sitter.NewQueryCursor()
	matches := cursor.Matches(info.DefinitionQuery, root, source)

	for {
		match := matches.Next()
		if match == nil {
			break
		}

		var nameNode, defNode sitter.Node

		var foundName, foundDef bool

		for _, cap := range match.Captures {
			switch cap.Index {
			case info.DefNameCapture:
				nameNode = cap.Node
				foundName = true
			case info.DefCapture:
				defNode = cap.Node
				foundDef = true
			}
		}

		if !foundName || !foundDef {
			continue
		}

		nameText := info.NameTransform(nameNode.Content(source))
		if !pattern.MatchString(nameText) {
			continue
		}

		if nameOnly {
			result.Names = append(result.Names, nameText)

			continue
		}

		// A node whose text ends with its line break (a C #define, a
		// markdown heading) ends at column 0 of the next row, which is
		// not part of it.
		defEnd := defNode.EndPoint().Row
		if defNode.EndPoint().Column == 0 && defEnd > defNode.StartPoint().Row {
			defEnd--
		}

		ranges := []rowRange{{start: defNode.StartPoint().Row, end: defEnd}}

		if sib, ok := precedingSiblingContext(info, defNode); ok {
			ranges = append(ranges, sib)
		}

		ancestorHeaders := ancestorHeaderContext(info, defNode, source)
		ranges = append(ranges, ancestorHeaders...)

		for _, r := range ranges {
			result.Ranges = append(result.Ranges, rangeOf(r.start, r.end))
		}

		// A language with no parent_query has no separate notion of
		// "header" distinct from the match itself (markdown's headings
		// are exactly this: the whole @def *is* the header), so the
		// match's own range stands in as what later injections inherit.
		propagated := ancestorHeaders
		if info.ParentQuery == nil {
			propagated = []rowRange{{start: defNode.StartPoint().Row, end: defEnd}}
		}

		matchHeaders = append(matchHeaders, matchHeaderEntry{startByte: defNode.StartByte(), headers: propagated})

		if info.RecurseQuery != nil {
			result.RecurseCandidates = append(result.RecurseCandidates, recurseNames(info, defNode, source)...)
		}
	}

	if info.ImportQuery != nil {
		result.ImportOrigins = importOrigins(info, root, source)
	}

	if info.InjectionQuery != nil {
		result.Injections = discoverInjections(info, root, source, inheritedContext, matchHeaders)
	}

	sort.Strings(result.RecurseCandidates)
	result.RecurseCandidates = slices.Compact(result.RecurseCandidates)

	return result
}

// precedingSiblingContext implements §5's sibling-context rule: walk
// leftward from defNode over named siblings whose kind is in
// sibling_node_types, merging a contiguous run into one tentative
// range; the first non-matching sibling encountered either discards
// the tentative range (if that sibling ends on or after the range's
// last row) or tightens its start to just past that sibling.
func precedingSiblingContext(info *querycompiler.LanguageInfo, defNode sitter.Node) (rowRange, bool) {
	if len(info.SiblingNodeTypes) == 0 {
		return rowRange{}, false
	}

	var tentative *rowRange

	cursor := defNode

	for {
		prev, ok := tsutil.PrevNamedSibling(cursor)
		if !ok {
			break
		}

		if info.SiblingNodeTypes[prev.Type()] {
			start := prev.StartPoint().Row
			end := prev.EndPoint().Row

			if tentative == nil {
				tentative = &rowRange{start: start, end: end}
			} else {
				tentative.start = start
			}

			cursor = prev

			continue
		}

		if tentative != nil {
			nonMatchEnd := prev.EndPoint().Row
			if nonMatchEnd >= tentative.end {
				tentative = nil
			} else {
				tentative.start = max(nonMatchEnd+1, tentative.start)
			}
		}

		break
	}

	if tentative == nil {
		return rowRange{}, false
	}

	return *tentative, true
}

// ancestorHeaderContext implements §5's ancestor-header rule: walk up
// parents and, for each one matched by parent_query at its own root,
// emit a header range from its start row to just before its excluded
// child (typically the body), or spanning the whole node if
// parent_query has no @exclude capture.
func ancestorHeaderContext(info *querycompiler.LanguageInfo, node sitter.Node, source []byte) []rowRange {
	if info.ParentQuery == nil {
		return nil
	}

	var headers []rowRange

	for _, ancestor := range tsutil.Ancestors(node) {
		header, ok := matchParentHeader(info, ancestor, source)
		if ok {
			headers = append(headers, header)
		}
	}

	return headers
}

func matchParentHeader(info *querycompiler.LanguageInfo, ancestor sitter.Node, source []byte) (rowRange, bool) {
	cursor := sitter.NewQueryCursor()
	matches := cursor.Matches(info.ParentQuery, ancestor, source)

	for {
		match := matches.Next()
		if match == nil {
			return rowRange{}, false
		}

		var parentNode sitter.Node

		var excludeNode sitter.Node

		hasParent, hasExclude := false, false

		for _, cap := range match.Captures {
			switch cap.Index {
			case info.ParentCapture:
				parentNode = cap.Node
				hasParent = true
			case info.ParentExcludeCapture:
				if info.HasParentExclude {
					excludeNode = cap.Node
					hasExclude = true
				}
			}
		}

		if !hasParent || parentNode.StartByte() != ancestor.StartByte() || parentNode.EndByte() != ancestor.EndByte() {
			continue
		}

		start := parentNode.StartPoint().Row
		end := parentNode.EndPoint().Row

		if hasExclude && excludeNode.StartPoint().Row > start {
			end = excludeNode.StartPoint().Row - 1
		}

		return rowRange{start: start, end: end}, true
	}
}

// recurseNames runs recurse_query scoped to defNode and returns every
// captured @name text, raw and unsorted; Find collects these across
// every match and sorts+dedups once at the end, matching
// searches.rs:175-176's single `recurse_names.sort(); dedup();` rather
// than a per-match sort.
func recurseNames(info *querycompiler.LanguageInfo, defNode sitter.Node, source []byte) []string {
	cursor := sitter.NewQueryCursor()
	matches := cursor.Matches(info.RecurseQuery, defNode, source)

	var names []string

	for {
		match := matches.Next()
		if match == nil {
			break
		}

		for _, cap := range match.Captures {
			if cap.Index != info.RecurseNameCapture {
				continue
			}

			names = append(names, cap.Node.Content(source))
		}
	}

	return names
}

func importOrigins(info *querycompiler.LanguageInfo, root sitter.Node, source []byte) []string {
	cursor := sitter.NewQueryCursor()
	matches := cursor.Matches(info.ImportQuery, root, source)

	seen := make(map[string]bool)

	var origins []string

	for {
		match := matches.Next()
		if match == nil {
			break
		}

		for _, cap := range match.Captures {
			if cap.Index != info.ImportOriginCapture {
				continue
			}

			text := cap.Node.Content(source)
			if !seen[text] {
				seen[text] = true

				origins = append(origins, text)
			}
		}
	}

	return origins
}

// matchHeaderEntry is one definition match's contribution to later
// injection-context propagation (§4.5): its own header range(s) and
// the byte offset used to find which match most closely surrounds a
// given injection.
type matchHeaderEntry struct {
	startByte uint32
	headers   []rowRange
}

// surroundingHeaders returns the header ranges of whichever recorded
// definition match most closely precedes contentStart — the nearest
// enclosing section heading, the nearest enclosing function/class
// header, or nil if no definition match precedes the injection at
// all.
func surroundingHeaders(matchHeaders []matchHeaderEntry, contentStart uint32) []rowRange {
	var best *matchHeaderEntry

	for i := range matchHeaders {
		m := &matchHeaders[i]
		if m.startByte > contentStart {
			continue
		}

		if best == nil || m.startByte > best.startByte {
			best = m
		}
	}

	if best == nil {
		return nil
	}

	return best.headers
}

func discoverInjections(
	info *querycompiler.LanguageInfo,
	root sitter.Node,
	source []byte,
	inheritedContext []LineRange,
	matchHeaders []matchHeaderEntry,
) []InjectionRange {
	cursor := sitter.NewQueryCursor()
	matches := cursor.Matches(info.InjectionQuery, root, source)

	var injections []InjectionRange

	for {
		match := matches.Next()
		if match == nil {
			break
		}

		var contentNode sitter.Node

		hasContent := false

		var langHintText string

		langCaptureIdx, hasLangHint := info.InjectionLanguageCapture(match.PatternIndex)

		for _, cap := range match.Captures {
			if cap.Index == info.InjectionContentCapture {
				contentNode = cap.Node
				hasContent = true
			}

			if hasLangHint && cap.Index == langCaptureIdx {
				langHintText = cap.Node.Content(source)
			}
		}

		if !hasContent {
			continue
		}

		headers := surroundingHeaders(matchHeaders, contentNode.StartByte())

		ctx := make([]LineRange, 0, len(inheritedContext)+len(headers))
		ctx = append(ctx, inheritedContext...)

		for _, h := range headers {
			ctx = append(ctx, rangeOf(h.start, h.end))
		}

		injections = append(injections, InjectionRange{
			StartByte:  contentNode.StartByte(),
			EndByte:    contentNode.EndByte(),
			StartPoint: contentNode.StartPoint(),
			EndPoint:   contentNode.EndPoint(),
			Language:   langHintText,
			Context:    ctx,
		})
	}

	return injections
}
