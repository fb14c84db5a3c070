package config

import _ "embed"

// defaultYAML is the built-in language configuration shipped inside
// the dook binary. Self-authored from general tree-sitter grammar
// conventions (the retrieved example pack carries no dook.yml to copy
// from) — see DESIGN.md for the per-language grounding notes.
//
//go:embed default.yml
var defaultYAML []byte

// Default parses and returns the embedded built-in configuration. It
// panics on failure since a broken embedded file is a build-time bug,
// never a runtime condition.
func Default() *Config {
	cfg, err := Parse(defaultYAML)
	if err != nil {
		panic("config: embedded default.yml is invalid: " + err.Error())
	}

	return cfg
}
