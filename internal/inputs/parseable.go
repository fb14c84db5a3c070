package inputs

import (
	"github.com/kraklabs/dook/internal/langname"
	"github.com/kraklabs/dook/internal/querycompiler"
)

// languageInfoGetter is the one querycompiler.QueryCompiler method
// LoadIfParseable needs, kept as an interface to avoid inputs
// depending on querycompiler's concrete cache/locking internals.
type languageInfoGetter interface {
	GetLanguageInfo(name langname.Name) (*querycompiler.LanguageInfo, error)
}

// LoadIfParseable detects path's language and, unless it is the IPYNB
// notebook container (which has no grammar of its own — see
// internal/subfiles), confirms the query compiler can actually ready
// that language before reading the file. This is the gate the
// first-pass grep candidate queue uses: don't bother loading a file
// dook could never search anyway.
func LoadIfParseable(path string, qc languageInfoGetter) (*LoadedFile, error) {
	name, err := DetectLanguageFromPath(path, nil)
	if err != nil {
		return nil, err
	}

	if name != langname.IPYNB {
		if _, err := qc.GetLanguageInfo(name); err != nil {
			return nil, &Error{Kind: UnconfiguredLanguage, Detail: name.String(), Err: err}
		}
	}

	return loadAs(path, name)
}
