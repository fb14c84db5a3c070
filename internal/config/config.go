// Package config implements dook's layered, versioned YAML
// configuration: the v1/v2/v3 on-disk schemas, `extends`-based
// per-language inheritance, and merging of a user override over the
// built-in default.
package config

import (
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kraklabs/dook/internal/langname"
)

// Config is a versioned mapping from language name to LanguageConfig,
// prior to `extends` resolution.
type Config struct {
	Languages map[langname.Name]LanguageConfig
}

// versionProbe reads just the top-level _version key to decide which
// schema the rest of the document should be decoded with.
type versionProbe struct {
	Version *int `yaml:"_version"`
}

// Parse decodes a YAML document into a Config, dispatching on the
// `_version` key. Its absence means v1 (§8's version-invariance rule).
func Parse(data []byte) (*Config, error) {
	var probe versionProbe
	if err := yaml.Unmarshal(data, &probe); err != nil {
		return nil, &ConfigParseError{Detail: "invalid YAML document", Err: err}
	}

	version := 1
	if probe.Version != nil {
		version = *probe.Version
	}

	switch version {
	case 1:
		return parseLegacy(data, false)
	case 2:
		return parseLegacy(data, true)
	case 3:
		return parseV3(data)
	default:
		return nil, &ConfigParseError{Detail: "unsupported config _version"}
	}
}

func parseLegacy(data []byte, allowExtends bool) (*Config, error) {
	raw, err := decodeLanguageMap(data)
	if err != nil {
		return nil, err
	}

	cfg := &Config{Languages: make(map[langname.Name]LanguageConfig, len(raw))}

	for key, node := range raw {
		name, err := langname.Parse(key)
		if err != nil {
			return nil, &ConfigParseError{Detail: "unknown language key " + key, Err: err}
		}

		var legacy rawLanguageLegacy
		if err := node.Decode(&legacy); err != nil {
			return nil, &ConfigParseError{Detail: "invalid language record for " + key, Err: err}
		}

		lc, err := legacy.toLanguageConfig(allowExtends)
		if err != nil {
			return nil, err
		}

		cfg.Languages[name] = lc
	}

	return cfg, nil
}

func parseV3(data []byte) (*Config, error) {
	raw, err := decodeLanguageMap(data)
	if err != nil {
		return nil, err
	}

	cfg := &Config{Languages: make(map[langname.Name]LanguageConfig, len(raw))}

	for key, node := range raw {
		name, err := langname.Parse(key)
		if err != nil {
			return nil, &ConfigParseError{Detail: "unknown language key " + key, Err: err}
		}

		if !strings.EqualFold(name.ConfigKey(), key) {
			return nil, &ConfigParseError{Detail: "v3 config requires canonical language keys, got alias " + key}
		}

		var v3 rawLanguageV3
		if err := node.Decode(&v3); err != nil {
			return nil, &ConfigParseError{Detail: "invalid language record for " + key, Err: err}
		}

		lc, err := v3.toLanguageConfig()
		if err != nil {
			return nil, err
		}

		cfg.Languages[name] = lc
	}

	return cfg, nil
}

// decodeLanguageMap decodes the top-level document into a map from
// language key to its raw YAML node, skipping the `_version` key.
func decodeLanguageMap(data []byte) (map[string]yaml.Node, error) {
	var doc map[string]yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &ConfigParseError{Detail: "invalid YAML document", Err: err}
	}

	delete(doc, "_version")

	return doc, nil
}

// Get returns the raw (pre-rebase) LanguageConfig for name, if present.
func (c *Config) Get(name langname.Name) (LanguageConfig, bool) {
	lc, ok := c.Languages[name]

	return lc, ok
}
