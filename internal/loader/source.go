// Package loader resolves a declarative ParserSource to a loaded
// tree-sitter grammar, maintaining the on-disk source/library caches
// described by the parser-acquisition component.
package loader

import "github.com/kraklabs/dook/internal/langname"

// Kind discriminates the ParserSource variants.
type Kind int

const (
	// KindStatic names a grammar statically linked into this binary.
	KindStatic Kind = iota
	// KindAbsolutePath points at a local tree-sitter grammar source tree.
	KindAbsolutePath
	// KindGit clones (or reuses a cached clone of) a grammar repository.
	KindGit
	// KindTarball downloads (or reuses a cached copy of) a grammar tarball.
	KindTarball
)

// Source is a tagged ParserSource value. Only the fields relevant to
// Kind are meaningful; this mirrors the original tagged-union contract
// while staying a plain comparable struct suitable as a cache key once
// its slice-free fields are compared field-by-field (see Key).
type Source struct {
	Kind Kind

	// KindStatic
	StaticName langname.Name

	// KindAbsolutePath
	Path string

	// KindGit
	CloneURL  string
	Commit    string
	SubdirGit string

	// KindTarball
	TarballName string
	URL         string
	SHA256Hex   string
	SubdirTar   string
}

// Key returns a value usable as a map key for the Loader's grammar
// cache; Source itself is already comparable (all fields are strings
// or ints), so Key is just an identity helper kept for readability at
// call sites.
func (s Source) Key() Source {
	return s
}
