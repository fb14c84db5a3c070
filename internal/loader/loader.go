package loader

import (
	"path/filepath"
	"sync"

	sitter "github.com/alexaandru/go-tree-sitter-bare"

	"github.com/kraklabs/dook/internal/downloadpolicy"
)

// Loader resolves ParserSource values into loaded grammars, backed by
// a filesystem cache rooted at sourcesDir (cloned repos, downloaded
// tarballs) and libDir (compiled shared libraries). One Loader is
// created per process and shared read-only through QueryCompiler.
type Loader struct {
	sourcesDir string
	libDir     string
	policy     downloadpolicy.Policy
	prompter   downloadpolicy.Prompter

	mu    sync.Mutex
	cache map[Source]*sitter.Language
}

// New creates a Loader rooted at sourcesDir/libDir, gated by policy.
func New(sourcesDir, libDir string, policy downloadpolicy.Policy, prompter downloadpolicy.Prompter) *Loader {
	if prompter == nil {
		prompter = downloadpolicy.TerminalPrompter{}
	}

	return &Loader{
		sourcesDir: sourcesDir,
		libDir:     libDir,
		policy:     policy,
		prompter:   prompter,
		cache:      make(map[Source]*sitter.Language),
	}
}

// Load resolves src to a grammar, memoizing successful results for the
// lifetime of the Loader. Unlike QueryCompiler's "has failed before"
// memoization, failed loads are not cached here: a transient network
// or compile failure should not permanently poison a later retry with
// a different download policy.
func (l *Loader) Load(src Source) (*sitter.Language, error) {
	l.mu.Lock()
	if cached, ok := l.cache[src]; ok {
		l.mu.Unlock()

		return cached, nil
	}
	l.mu.Unlock()

	lang, err := l.loadUncached(src)
	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	l.cache[src] = lang
	l.mu.Unlock()

	return lang, nil
}

func (l *Loader) loadUncached(src Source) (*sitter.Language, error) {
	switch src.Kind {
	case KindStatic:
		return LoadStatic(src.StaticName)
	case KindAbsolutePath:
		libPath := filepath.Join(l.libDir, filepath.Base(src.Path)+"."+dllExtension())

		return loadGrammarAtPath(src.Path, libPath, filepath.Base(src.Path), false)
	case KindGit:
		return l.loadGitGrammar(src)
	case KindTarball:
		return l.loadTarballGrammar(src)
	default:
		return nil, &Error{Kind: LanguageWasNotBuiltIn, Detail: "unrecognized parser source kind"}
	}
}
