package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ConfigFileName is looked up from the working directory upwards.
const ConfigFileName = "cstool.toml"

// ErrConfigNotFound is returned by Find when no cstool.toml exists between
// startDir and the filesystem root.
var ErrConfigNotFound = errors.New("no " + ConfigFileName + " found")

// FindConfig walks up from startDir to locate cstool.toml.
func FindConfig(startDir string) (string, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrConfigNotFound
		}
		dir = parent
	}
}

// FindProjectRoot returns the directory holding cstool.toml.
func FindProjectRoot(startDir string) (string, error) {
	path, err := FindConfig(startDir)
	if err != nil {
		return "", err
	}
	return filepath.Dir(path), nil
}
