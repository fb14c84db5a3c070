// Package langname defines the closed set of languages dook knows how
// to parse, along with canonical-name and legacy-alias resolution.
package langname

import (
	"fmt"
	"strings"
)

// Name is a closed, comparable tag identifying a supported language.
type Name string

// The full set of languages recognized by the default configuration.
// IPYNB is a sentinel for the notebook container format: it is never
// given a tree-sitter grammar directly, only ever pre-converted by the
// Subfiles collaborator into Markdown.
const (
	Python     Name = "PYTHON"
	JavaScript Name = "JAVASCRIPT"
	TypeScript Name = "TYPESCRIPT"
	TSX        Name = "TSX"
	C          Name = "C"
	CPlusPlus  Name = "C_PLUS_PLUS"
	Go         Name = "GO"
	Rust       Name = "RUST"
	Markdown   Name = "MARKDOWN"
	YAML       Name = "YAML"
	TOML       Name = "TOML"
	HTML       Name = "HTML"
	CSS        Name = "CSS"
	Java       Name = "JAVA"
	Ruby       Name = "RUBY"
	PHP        Name = "PHP"
	Bash       Name = "BASH"
	TeX        Name = "TEX"
	IPYNB      Name = "IPYNB"
)

// All lists every known language in a stable order, used for
// config-validation iteration and for documentation generation.
var All = []Name{
	Python, JavaScript, TypeScript, TSX, C, CPlusPlus, Go, Rust,
	Markdown, YAML, TOML, HTML, CSS, Java, Ruby, PHP, Bash, TeX, IPYNB,
}

// aliases maps legacy/alternate spellings (case-insensitive, as seen in
// v1/v2 configs and in hyperpolyglot/enry's vocabulary) to the
// canonical Name.
var aliases = map[string]Name{
	"python":          Python,
	"py":              Python,
	"js":              JavaScript,
	"javascript":      JavaScript,
	"ts":              TypeScript,
	"typescript":      TypeScript,
	"tsx":             TSX,
	"c":               C,
	"cpp":             CPlusPlus,
	"c++":             CPlusPlus,
	"cplusplus":       CPlusPlus,
	"go":              Go,
	"golang":          Go,
	"rust":            Rust,
	"rs":              Rust,
	"markdown":        Markdown,
	"md":              Markdown,
	"yaml":            YAML,
	"yml":             YAML,
	"toml":            TOML,
	"html":            HTML,
	"css":             CSS,
	"java":            Java,
	"ruby":            Ruby,
	"rb":              Ruby,
	"php":             PHP,
	"bash":            Bash,
	"shell":           Bash,
	"sh":              Bash,
	"tex":             TeX,
	"latex":           TeX,
	"ipynb":           IPYNB,
	"jupyter notebook": IPYNB,
}

// errUnknownLanguage reports a name not present in aliases or All.
type errUnknownLanguage struct {
	raw string
}

func (e *errUnknownLanguage) Error() string {
	return fmt.Sprintf("unknown language name %q", e.raw)
}

// Parse resolves a canonical name or legacy alias (case-insensitively)
// to a Name. Returns an error wrapping errUnknownLanguage on failure.
func Parse(raw string) (Name, error) {
	trimmed := strings.TrimSpace(raw)
	if n, ok := aliases[strings.ToLower(trimmed)]; ok {
		return n, nil
	}

	for _, n := range All {
		if strings.EqualFold(string(n), trimmed) {
			return n, nil
		}
	}

	return "", &errUnknownLanguage{raw: raw}
}

// String returns the canonical spelling.
func (n Name) String() string {
	return string(n)
}

// configKey is the lowercase spelling a v3 config must use as its
// language key — the same spelling a human would reach for first,
// distinct from the internal Name constant's SCREAMING_SNAKE form.
var configKey = map[Name]string{
	Python:     "python",
	JavaScript: "javascript",
	TypeScript: "typescript",
	TSX:        "tsx",
	C:          "c",
	CPlusPlus:  "cpp",
	Go:         "go",
	Rust:       "rust",
	Markdown:   "markdown",
	YAML:       "yaml",
	TOML:       "toml",
	HTML:       "html",
	CSS:        "css",
	Java:       "java",
	Ruby:       "ruby",
	PHP:        "php",
	Bash:       "bash",
	TeX:        "tex",
	IPYNB:      "ipynb",
}

// ConfigKey returns the canonical v3 YAML key for n.
func (n Name) ConfigKey() string {
	return configKey[n]
}

// family maps a language to the more generic grammar family it should
// fall back to when its own grammar fails to build (§4.4's
// "family fallback" step). Languages absent from this map have no
// fallback.
var family = map[Name]Name{
	TSX:       TypeScript,
	CPlusPlus: C,
}

// Family returns the fallback language for n, and whether one exists.
func Family(n Name) (Name, bool) {
	f, ok := family[n]
	return f, ok
}
