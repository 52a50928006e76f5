package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/corey/fmtkit/parser"
)

// ConfigExtensions is the set of file extensions accepted for config files.
var ConfigExtensions = parser.NewExtensionSet("yml", "yaml")

// LoadConfig reads a YAML config file into a value of the consumer's config
// type. A missing file is not an error: the fallback value is returned so a
// formatter works out of the box. A path that exists but is a directory or
// carries a non-YAML extension is rejected.
func LoadConfig[C any](path string, fallback C) (C, error) {
	if !ConfigExtensions.Matches(path) {
		return fallback, fmt.Errorf("config %s: unsupported extension (want .yml or .yaml)", path)
	}

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return fallback, nil
	}
	if err != nil {
		return fallback, fmt.Errorf("config %s: %w", path, err)
	}
	if info.IsDir() {
		return fallback, fmt.Errorf("config %s: is a directory", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fallback, fmt.Errorf("config %s: %w", path, err)
	}

	config := fallback
	if err := yaml.Unmarshal(data, &config); err != nil {
		return fallback, fmt.Errorf("config %s: %w", path, err)
	}
	return config, nil
}

// WriteDefaultConfig serializes the default config to YAML at path, creating
// parent directories as needed. Refuses to overwrite an existing file.
func WriteDefaultConfig[C any](path string, defaultConfig C) error {
	if !ConfigExtensions.Matches(path) {
		return fmt.Errorf("config %s: unsupported extension (want .yml or .yaml)", path)
	}
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config %s: already exists", path)
	}

	data, err := yaml.Marshal(defaultConfig)
	if err != nil {
		return fmt.Errorf("config %s: %w", path, err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("config %s: %w", path, err)
		}
	}
	return os.WriteFile(path, data, 0o644)
}
