package mainsearch

import (
	"path/filepath"
	"strings"

	"github.com/kraklabs/dook/internal/langname"
)

// Dissimilarity scores how unlikely path is to be the file that
// defines the Python dotted import dep, by counting how many trailing
// path components (split on the path separator, with the file
// extension removed from the last component) equal dep's trailing
// dotted components, read from the right. A
// longer matching run scores more negative, so sorting candidate
// paths by this score (ascending) puts the likeliest definition sites
// first. Every other language scores 0, a tie-preserving no-op.
func Dissimilarity(language langname.Name, dep string, path string) int {
	if language != langname.Python {
		return 0
	}

	depParts := strings.Split(dep, ".")
	pathParts := strings.Split(filepath.ToSlash(path), "/")
	last := pathParts[len(pathParts)-1]
	pathParts[len(pathParts)-1] = strings.TrimSuffix(last, filepath.Ext(last))

	matches := 0

	for i, j := len(depParts)-1, len(pathParts)-1; i >= 0 && j >= 0; i, j = i-1, j-1 {
		if depParts[i] != pathParts[j] {
			break
		}

		matches++
	}

	return -matches
}
