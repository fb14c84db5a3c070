package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// configFileName is the dook config file's base name, without extension.
const configFileName = "dook"

// configFileType is the format the file is parsed as once located.
const configFileType = "yaml"

// envPrefix namespaces dook's own environment variable overrides
// (DOOK_CONFIG, DOOK_DOWNLOAD, ...) away from unrelated variables.
const envPrefix = "DOOK"

// Locate resolves the path to the active dook.yml, honoring an
// explicit --config flag first, then DOOK_CONFIG, then the
// conventional search path: the working directory, then
// XDG_CONFIG_HOME/dook (or ~/.config/dook), then $HOME. A missing
// file anywhere in the search path is not an error — callers fall
// back to the embedded default configuration.
func Locate(explicitPath string) (string, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	if explicitPath != "" {
		return explicitPath, nil
	}

	if fromEnv := v.GetString("config"); fromEnv != "" {
		return fromEnv, nil
	}

	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(".")

	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		v.AddConfigPath(filepath.Join(xdg, "dook"))
	}

	home, err := os.UserHomeDir()
	if err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "dook"))
		v.AddConfigPath(home)
	}

	readErr := v.ReadInConfig()
	if readErr != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(readErr, &notFound) {
			return "", nil
		}

		return "", fmt.Errorf("locate dook config: %w", readErr)
	}

	return v.ConfigFileUsed(), nil
}

// LoadFile locates and parses the active config file, if any. A
// missing file is not an error: it returns a nil *Config so the
// caller can fall back to the embedded default.
func LoadFile(explicitPath string) (*Config, error) {
	path, err := Locate(explicitPath)
	if err != nil {
		return nil, err
	}

	if path == "" {
		return nil, nil //nolint:nilnil // absence of a user config is not an error
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	return Parse(data)
}
