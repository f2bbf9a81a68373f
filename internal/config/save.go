package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// WriteDefault writes the default config to <dir>/config.yaml, creating
// the directory as needed. Refuses to clobber an existing file.
func WriteDefault(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating config dir: %w", err)
	}

	path := filepath.Join(dir, "config.yaml")
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("config file already exists at %s", path)
	}

	data, err := yaml.Marshal(Default())
	if err != nil {
		return "", fmt.Errorf("marshaling default config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing config: %w", err)
	}
	return path, nil
}
