// Package querycompiler builds and caches a LanguageInfo — compiled
// tree-sitter queries with their capture indices pre-resolved — for
// each language a dook run touches, grounded on the teacher's
// PatternMatcher (pkg/uast/pkg/mapping/pattern_matcher.go): one
// *sitter.Query compiled per pattern string and kept for the life of
// the process.
package querycompiler

import (
	"strings"
	"sync"

	sitter "github.com/alexaandru/go-tree-sitter-bare"

	"github.com/kraklabs/dook/internal/config"
	"github.com/kraklabs/dook/internal/langname"
	"github.com/kraklabs/dook/internal/loader"
)

const (
	captureName      = "name"
	captureDef       = "def"
	captureExclude   = "exclude"
	captureParent    = "parent"
	captureOrigin    = "origin"
	captureInjection = "injection.content"
	captureInjLang   = "injection.language"
)

// QueryCompiler memoizes LanguageInfo per language, including
// permanent failures, and falls back to a language's Family once
// before giving up (§4.4).
type QueryCompiler struct {
	loader *loader.Loader
	langs  map[langname.Name]config.LanguageConfig

	mu     sync.Mutex
	cache  map[langname.Name]*LanguageInfo
	failed map[langname.Name]struct{}
}

// New builds a QueryCompiler over a resolved (extends-free) language
// configuration map.
func New(l *loader.Loader, resolved map[langname.Name]config.LanguageConfig) *QueryCompiler {
	return &QueryCompiler{
		loader: l,
		langs:  resolved,
		cache:  make(map[langname.Name]*LanguageInfo),
		failed: make(map[langname.Name]struct{}),
	}
}

// GetLanguageInfo returns the cached LanguageInfo for name, building
// and caching it on first use. A language that has already failed
// once this process returns HasFailedBeforeError immediately without
// retrying.
func (qc *QueryCompiler) GetLanguageInfo(name langname.Name) (*LanguageInfo, error) {
	qc.mu.Lock()
	defer qc.mu.Unlock()

	if _, failed := qc.failed[name]; failed {
		return nil, &HasFailedBeforeError{Language: name.String()}
	}

	if info, ok := qc.cache[name]; ok {
		return info, nil
	}

	info, err := qc.build(name)
	if err != nil {
		fallback, ok := langname.Family(name)
		if ok {
			if fbInfo, fbErr := qc.build(fallback); fbErr == nil {
				qc.cache[name] = fbInfo

				return fbInfo, nil
			}
		}

		qc.failed[name] = struct{}{}

		return nil, err
	}

	qc.cache[name] = info

	return info, nil
}

func (qc *QueryCompiler) build(name langname.Name) (*LanguageInfo, error) {
	lc, ok := qc.langs[name]
	if !ok {
		return nil, &GetLanguageInfoError{Kind: LanguageIsNotInConfig, Language: name.String()}
	}

	if lc.Parser == nil {
		return nil, &GetLanguageInfoError{Kind: ParserNotConfigured, Language: name.String()}
	}

	lang, err := qc.loader.Load(*lc.Parser)
	if err != nil {
		return nil, &GetLanguageInfoError{Kind: LoaderErrorKind, Language: name.String(), Err: err}
	}

	if lc.DefinitionQuery == nil {
		return nil, &GetLanguageInfoError{Kind: DefinitionQueryMissing, Language: name.String()}
	}

	info := &LanguageInfo{Language: lang, NameTransform: nameTransformFor(name)}

	defQuery, err := compileQuery(lang, *lc.DefinitionQuery, name.String())
	if err != nil {
		return nil, err
	}

	info.DefinitionQuery = defQuery

	nameIdx, ok := captureIndex(defQuery, captureName)
	if !ok {
		return nil, &GetLanguageInfoError{Kind: RequiredCaptureMissing, Language: name.String(), Detail: "definition_query missing @name"}
	}

	defIdx, ok := captureIndex(defQuery, captureDef)
	if !ok {
		return nil, &GetLanguageInfoError{Kind: RequiredCaptureMissing, Language: name.String(), Detail: "definition_query missing @def"}
	}

	info.DefNameCapture = nameIdx
	info.DefCapture = defIdx

	if lc.ParentQuery != nil {
		pq, err := compileQuery(lang, *lc.ParentQuery, name.String())
		if err != nil {
			return nil, err
		}

		info.ParentQuery = pq
		if idx, ok := captureIndex(pq, captureParent); ok {
			info.ParentCapture = idx
		}

		if idx, ok := captureIndex(pq, captureExclude); ok {
			info.ParentExcludeCapture = idx
			info.HasParentExclude = true
		}
	}

	if lc.RecurseQuery != nil {
		rq, err := compileQuery(lang, *lc.RecurseQuery, name.String())
		if err != nil {
			return nil, err
		}

		idx, ok := captureIndex(rq, captureName)
		if !ok {
			return nil, &GetLanguageInfoError{Kind: RequiredCaptureMissing, Language: name.String(), Detail: "recurse_query missing @name"}
		}

		info.RecurseQuery = rq
		info.RecurseNameCapture = idx
	}

	if lc.ImportQuery != nil {
		iq, err := compileQuery(lang, *lc.ImportQuery, name.String())
		if err != nil {
			return nil, err
		}

		nameIdx, nameOK := captureIndex(iq, captureName)
		originIdx, originOK := captureIndex(iq, captureOrigin)

		if !nameOK || !originOK {
			return nil, &GetLanguageInfoError{Kind: RequiredCaptureMissing, Language: name.String(), Detail: "import_query missing @name/@origin"}
		}

		info.ImportQuery = iq
		info.ImportNameCapture = nameIdx
		info.ImportOriginCapture = originIdx
	}

	if lc.InjectionQuery != nil {
		jq, err := compileQuery(lang, *lc.InjectionQuery, name.String())
		if err != nil {
			return nil, err
		}

		contentIdx, ok := captureIndex(jq, captureInjection)
		if !ok {
			return nil, &GetLanguageInfoError{Kind: RequiredCaptureMissing, Language: name.String(), Detail: "injection_query missing @injection.content"}
		}

		info.InjectionQuery = jq
		info.InjectionContentCapture = contentIdx
		info.InjectionHints = buildInjectionHints(jq)
	}

	if lc.SiblingNodeTypes != nil {
		set, err := validateSiblingNodeTypes(lang, *lc.SiblingNodeTypes, name.String())
		if err != nil {
			return nil, err
		}

		info.SiblingNodeTypes = set
	}

	return info, nil
}

// compileQuery wraps sitter.NewQuery, classifying a compile failure
// whose message mentions an unknown node kind as UnrecognizedNodeType
// rather than a generic QueryCompileFailed.
func compileQuery(lang *sitter.Language, src, langName string) (*sitter.Query, error) {
	q, err := sitter.NewQuery(lang, []byte(src))
	if err != nil {
		if looksLikeUnrecognizedNodeType(err) {
			return nil, &GetLanguageInfoError{Kind: UnrecognizedNodeType, Language: langName, Err: err}
		}

		return nil, &GetLanguageInfoError{Kind: QueryCompileFailed, Language: langName, Err: err}
	}

	return q, nil
}

func looksLikeUnrecognizedNodeType(err error) bool {
	msg := strings.ToLower(err.Error())

	return strings.Contains(msg, "node type") || strings.Contains(msg, "invalid node")
}

// validateSiblingNodeTypes compiles a throwaway alternation query over
// the requested node kinds purely to let the grammar itself reject an
// unknown kind name; the returned set is matched at search time by
// direct sitter.Node.Type() string comparison.
func validateSiblingNodeTypes(lang *sitter.Language, kinds []string, langName string) (map[string]bool, error) {
	if len(kinds) == 0 {
		return map[string]bool{}, nil
	}

	parts := make([]string, len(kinds))
	for i, k := range kinds {
		parts[i] = "(" + k + ")"
	}

	probe := "[" + strings.Join(parts, " ") + "]"

	if _, err := compileQuery(lang, probe, langName); err != nil {
		return nil, err
	}

	set := make(map[string]bool, len(kinds))
	for _, k := range kinds {
		set[k] = true
	}

	return set, nil
}

func buildInjectionHints(q *sitter.Query) map[uint32]injectionHint {
	hints := make(map[uint32]injectionHint, q.PatternCount())

	langIdx, hasLangCapture := captureIndex(q, captureInjLang)

	for p := range q.PatternCount() {
		if !hasLangCapture {
			hints[p] = injectionHint{kind: hintAbsent}

			continue
		}

		hints[p] = injectionHint{kind: hintCapture, captureIndex: langIdx}
	}

	return hints
}

func nameTransformFor(name langname.Name) func(string) string {
	switch name {
	case langname.TeX:
		return stripLeadingBackslash
	case langname.YAML, langname.TOML:
		return stripSurroundingQuotes
	default:
		return func(s string) string { return s }
	}
}
