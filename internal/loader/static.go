package loader

import (
	"unsafe"

	sitter "github.com/alexaandru/go-tree-sitter-bare"

	tsBash "github.com/alexaandru/go-sitter-forest/bash"
	tsC "github.com/alexaandru/go-sitter-forest/c"
	tsCPlusPlus "github.com/alexaandru/go-sitter-forest/cpp"
	tsCSS "github.com/alexaandru/go-sitter-forest/css"
	tsGo "github.com/alexaandru/go-sitter-forest/go"
	tsHTML "github.com/alexaandru/go-sitter-forest/html"
	tsJava "github.com/alexaandru/go-sitter-forest/java"
	tsJavaScript "github.com/alexaandru/go-sitter-forest/javascript"
	tsJSON "github.com/alexaandru/go-sitter-forest/json"
	tsLatex "github.com/alexaandru/go-sitter-forest/latex"
	tsMarkdown "github.com/alexaandru/go-sitter-forest/markdown"
	tsPHP "github.com/alexaandru/go-sitter-forest/php"
	tsPython "github.com/alexaandru/go-sitter-forest/python"
	tsRuby "github.com/alexaandru/go-sitter-forest/ruby"
	tsRust "github.com/alexaandru/go-sitter-forest/rust"
	tsTOML "github.com/alexaandru/go-sitter-forest/toml"
	tsTSX "github.com/alexaandru/go-sitter-forest/tsx"
	tsTypeScript "github.com/alexaandru/go-sitter-forest/typescript"
	tsYAML "github.com/alexaandru/go-sitter-forest/yaml"

	"github.com/kraklabs/dook/internal/langname"
)

// staticGrammars is the closed table of languages compiled statically
// into this binary, one entry per supported go-sitter-forest grammar.
// JSON is kept for injection/embed use even though it has no top-level
// LanguageName entry of its own in the default config.
var staticGrammars = map[langname.Name]func() unsafe.Pointer{
	langname.Python:     tsPython.GetLanguage,
	langname.JavaScript: tsJavaScript.GetLanguage,
	langname.TypeScript: tsTypeScript.GetLanguage,
	langname.TSX:        tsTSX.GetLanguage,
	langname.C:          tsC.GetLanguage,
	langname.CPlusPlus:  tsCPlusPlus.GetLanguage,
	langname.Go:         tsGo.GetLanguage,
	langname.Rust:       tsRust.GetLanguage,
	langname.Markdown:   tsMarkdown.GetLanguage,
	langname.YAML:       tsYAML.GetLanguage,
	langname.TOML:       tsTOML.GetLanguage,
	langname.HTML:       tsHTML.GetLanguage,
	langname.CSS:        tsCSS.GetLanguage,
	langname.Java:       tsJava.GetLanguage,
	langname.Ruby:       tsRuby.GetLanguage,
	langname.PHP:        tsPHP.GetLanguage,
	langname.Bash:       tsBash.GetLanguage,
	langname.TeX:        tsLatex.GetLanguage,
}

var _ = tsJSON.GetLanguage // reserved for future injection-only grammar use

// LoadStatic returns the statically linked grammar for name, or
// LanguageWasNotBuiltIn if this binary was not compiled with it.
func LoadStatic(name langname.Name) (*sitter.Language, error) {
	fn, ok := staticGrammars[name]
	if !ok {
		return nil, &Error{Kind: LanguageWasNotBuiltIn, Detail: string(name)}
	}

	return sitter.NewLanguage(fn()), nil
}
