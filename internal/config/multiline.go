package config

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// MultiLineString decodes a YAML scalar or a YAML sequence of scalars
// into a single newline-joined string, trimming trailing CR/LF from
// each element before joining. Every v3 tree-sitter query field accepts
// either form on disk.
type MultiLineString string

// UnmarshalYAML implements the string-or-list-of-strings decoding rule
// for every query field in the v3 config schema (the v1/v2 schemas
// decode their list fields as plain []string).
func (m *MultiLineString) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var s string
		if err := node.Decode(&s); err != nil {
			return err
		}

		*m = MultiLineString(s)

		return nil
	case yaml.SequenceNode:
		var lines []string
		if err := node.Decode(&lines); err != nil {
			return err
		}

		for i, l := range lines {
			lines[i] = strings.TrimRight(l, "\r\n")
		}

		*m = MultiLineString(strings.Join(lines, "\n"))

		return nil
	default:
		return &ConfigParseError{Detail: "expected string or list of strings for query field"}
	}
}

// String returns the joined text.
func (m MultiLineString) String() string {
	return string(m)
}
