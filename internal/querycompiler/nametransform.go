package querycompiler

import "strings"

// nameTransforms holds the small set of per-language post-processing
// rules applied to a matched @name capture's text before it is
// compared against the user's regex: TeX macro names are captured
// with their leading backslash, and YAML/TOML keys are captured with
// their surrounding quotes, neither of which a user expects to type
// in a name pattern.
func stripLeadingBackslash(s string) string {
	return strings.TrimPrefix(s, `\`)
}

func stripSurroundingQuotes(s string) string {
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if (first == '"' && last == '"') || (first == '\'' && last == '\'') {
			return s[1 : len(s)-1]
		}
	}

	return s
}
