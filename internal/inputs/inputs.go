// Package inputs loads and language-classifies the files dook will
// search: by path (via src-d/enry/v2, replacing the original's
// hyperpolyglot), by raw bytes (for injected content and stdin), and
// from stdin directly. Grounded on the original implementation's
// inputs.rs LoadedFile/detect_language_from_path/
// detect_language_from_bytes contract.
package inputs

import (
	"io"
	"os"

	"github.com/src-d/enry/v2"

	"github.com/kraklabs/dook/internal/langname"
	"github.com/kraklabs/dook/internal/subfiles"
)

// LoadedFile is a file already read into memory along with its
// classified language and a human-readable description used in log
// and error messages.
type LoadedFile struct {
	Bytes    []byte
	Language langname.Name
	Recipe   string
}

// Load detects path's language and reads it into memory.
func Load(path string) (*LoadedFile, error) {
	name, err := DetectLanguageFromPath(path, nil)
	if err != nil {
		return nil, err
	}

	return loadAs(path, name)
}

func loadAs(path string, name langname.Name) (*LoadedFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &Error{Kind: UnreadableFile, Detail: path, Err: err}
	}

	if name == langname.IPYNB {
		converted, err := subfiles.ToUnalignedMarkdown(data)
		if err != nil {
			return nil, &Error{Kind: UnreadableFile, Detail: path, Err: err}
		}

		return &LoadedFile{Bytes: converted, Language: langname.Markdown, Recipe: "cat " + path}, nil
	}

	return &LoadedFile{Bytes: data, Language: name, Recipe: "cat " + path}, nil
}

// LoadStdin reads all of stdin and classifies it purely from content,
// since there is no path to consult.
func LoadStdin(r io.Reader) (*LoadedFile, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &Error{Kind: UnreadableFile, Err: err}
	}

	if len(data) == 0 {
		return nil, &Error{Kind: EmptyStdin}
	}

	name, err := DetectLanguageFromBytes(data, "")
	if err != nil {
		return nil, err
	}

	if name == langname.IPYNB {
		converted, err := subfiles.ToUnalignedMarkdown(data)
		if err != nil {
			return nil, &Error{Kind: UnreadableFile, Err: err}
		}

		return &LoadedFile{Bytes: converted, Language: langname.Markdown}, nil
	}

	return &LoadedFile{Bytes: data, Language: name}, nil
}

// DetectLanguageFromPath classifies path using enry's extension,
// shebang, content-heuristic, and statistical-classifier chain (the
// same cascade hyperpolyglot implements), restricted to languages
// dook knows how to search. content may be nil, in which case the file
// is read before classification.
func DetectLanguageFromPath(path string, content []byte) (langname.Name, error) {
	if content == nil {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", &Error{Kind: UnreadableFile, Detail: path, Err: err}
		}

		content = data
	}

	str := enry.GetLanguage(path, content)
	if str == "" {
		return "", &Error{Kind: UnknownLanguage, Detail: path}
	}

	name, err := langname.Parse(str)
	if err != nil {
		return "", &Error{Kind: UnsupportedLanguage, Detail: str}
	}

	return name, nil
}

// DetectLanguageFromBytes classifies raw bytes with no filesystem
// path available: an injection's captured content, or stdin. hint is
// an extension-like string (e.g. an injection_query language hint, or
// a fenced code block's info string), passed to enry as the extension
// of a "stdin.<hint>" file name; empty means no hint.
func DetectLanguageFromBytes(content []byte, hint string) (langname.Name, error) {
	filename := "stdin"
	if hint != "" {
		filename = "stdin." + hint
	}

	str := enry.GetLanguage(filename, content)
	if str == "" {
		return "", &Error{Kind: UnknownLanguage}
	}

	name, err := langname.Parse(str)
	if err != nil {
		return "", &Error{Kind: UnsupportedLanguage, Detail: str}
	}

	return name, nil
}

// FilterCandidates narrows old down to the intersection with new,
// unless that intersection is empty — in which case old (the more
// specific signal gathered so far) is kept rather than discarded, the
// same fallback rule hyperpolyglot's own filter_candidates applies.
func FilterCandidates(old, new []string) []string {
	if len(old) == 0 {
		return new
	}

	oldSet := make(map[string]bool, len(old))
	for _, o := range old {
		oldSet[o] = true
	}

	var intersection []string

	for _, n := range new {
		if oldSet[n] {
			intersection = append(intersection, n)
		}
	}

	if len(intersection) == 0 {
		return old
	}

	return intersection
}
