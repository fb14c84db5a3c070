package config

import (
	"gopkg.in/yaml.v3"

	"github.com/kraklabs/dook/internal/langname"
	"github.com/kraklabs/dook/internal/loader"
)

// rawParserSource mirrors the four YAML shapes a `parser:` field may
// take:
//
//	{ static: Python }
//	{ path: /abs/path }
//	{ git: { clone, commit, subdirectory? } }
//	{ tarball: { name, url, sha256hex, subdirectory? } }
type rawParserSource struct {
	Static  *string       `yaml:"static"`
	Path    *string       `yaml:"path"`
	Git     *rawGitSource `yaml:"git"`
	Tarball *rawTarball   `yaml:"tarball"`
}

type rawGitSource struct {
	Clone      string `yaml:"clone"`
	Commit     string `yaml:"commit"`
	Subdirectory string `yaml:"subdirectory"`
}

type rawTarball struct {
	Name         string `yaml:"name"`
	URL          string `yaml:"url"`
	SHA256Hex    string `yaml:"sha256hex"`
	Subdirectory string `yaml:"subdirectory"`
}

// decodeParserSource converts a YAML node into a loader.Source.
func decodeParserSource(node *yaml.Node) (*loader.Source, error) {
	var raw rawParserSource
	if err := node.Decode(&raw); err != nil {
		return nil, &ConfigParseError{Detail: "invalid parser field", Err: err}
	}

	switch {
	case raw.Static != nil:
		name, err := langname.Parse(*raw.Static)
		if err != nil {
			return nil, &ConfigParseError{Detail: "unknown static parser language", Err: err}
		}

		return &loader.Source{Kind: loader.KindStatic, StaticName: name}, nil
	case raw.Path != nil:
		return &loader.Source{Kind: loader.KindAbsolutePath, Path: *raw.Path}, nil
	case raw.Git != nil:
		return &loader.Source{
			Kind:      loader.KindGit,
			CloneURL:  raw.Git.Clone,
			Commit:    raw.Git.Commit,
			SubdirGit: raw.Git.Subdirectory,
		}, nil
	case raw.Tarball != nil:
		return &loader.Source{
			Kind:        loader.KindTarball,
			TarballName: raw.Tarball.Name,
			URL:         raw.Tarball.URL,
			SHA256Hex:   raw.Tarball.SHA256Hex,
			SubdirTar:   raw.Tarball.Subdirectory,
		}, nil
	default:
		return nil, &ConfigParseError{Detail: "parser field must set one of static/path/git/tarball"}
	}
}
