package searches

import sitter "github.com/alexaandru/go-tree-sitter-bare"

// InjectionRange is a region inside a parsed file discovered by an
// injection_query match: a byte range, its start/end points, an
// optional language hint, and every ancestor header range seen by the
// time the injection was discovered (§3/§5).
type InjectionRange struct {
	StartByte, EndByte uint32
	StartPoint         sitter.Point
	EndPoint           sitter.Point
	Language           string // empty means "no hint, detect from content"
	Context            []LineRange
}
