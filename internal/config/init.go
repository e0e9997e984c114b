package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrConfigExists indicates WriteDefault found a config file and was not
// asked to overwrite it.
var ErrConfigExists = errors.New("config file already exists")

const configHeader = `# fileicons build configuration.
# Every value can be overridden with a FILEICONS_* environment variable,
# e.g. FILEICONS_FETCH_CONCURRENCY=8.
`

// WriteDefault writes the default configuration to
// <rootDir>/.fileicons/config.yml and returns its path.
func WriteDefault(rootDir string, force bool) (string, error) {
	dir := filepath.Join(rootDir, ".fileicons")
	path := filepath.Join(dir, "config.yml")

	if _, err := os.Stat(path); err == nil && !force {
		return path, fmt.Errorf("%w: %s", ErrConfigExists, path)
	}

	data, err := yaml.Marshal(Default())
	if err != nil {
		return "", fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, append([]byte(configHeader), data...), 0644); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}
	return path, nil
}
