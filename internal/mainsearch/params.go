package mainsearch

import "regexp"

// Params configures one search_one_file-equivalent pass: the pattern
// used to match definition/injection names inside the file currently
// being searched, whether to stop at name-only matching, and whether
// recursion into callees is requested at all (the outer recursion
// loop in Run decides how many hops to take; this flag only says
// whether recurse_query is worth running per file).
type Params struct {
	Pattern   *regexp.Regexp
	OnlyNames bool
	Recurse   bool
}
