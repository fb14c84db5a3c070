package main

import (
	"os"
	"path/filepath"
)

// parserCacheDirs returns the directories the grammar loader uses to
// cache cloned/downloaded parser sources and their compiled shared
// libraries, rooted under the user's standard cache directory.
func parserCacheDirs() (sourcesDir, libDir string, err error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", "", err
	}

	root := filepath.Join(base, "dook")

	return filepath.Join(root, "sources"), filepath.Join(root, "lib"), nil
}

// downloadsPolicyPath is where the persisted answer to "may dook
// download parsers" lives, consulted when --download isn't given.
func downloadsPolicyPath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(base, "dook", "downloads-policy"), nil
}
