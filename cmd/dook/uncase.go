package main

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/iancoleman/strcase"
)

// NotRecaseableError reports that a -ii pattern contained a character
// uncase can't safely reinterpret as a case-style delimiter.
type NotRecaseableError struct {
	Input       string
	BadPosition int
}

func (e *NotRecaseableError) Error() string {
	return fmt.Sprintf("input %q contained non-alphanumeric character at byte %d", e.Input, e.BadPosition)
}

// uncase turns a plain identifier into a pattern that matches it
// however it's spelled — snake_case, kebab-case, or camelCase — by
// kebab-casing it and letting any run of underscores or dashes stand
// in for each word boundary. Used for -ii (ignore-case level 2).
func uncase(identifier string) (string, error) {
	for i, r := range identifier {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '-' && r != '_' {
			return "", &NotRecaseableError{Input: identifier, BadPosition: i}
		}
	}

	wrapped := "-" + strcase.ToKebab(identifier) + "-"

	return strings.ReplaceAll(wrapped, "-", "[_-]*"), nil
}
