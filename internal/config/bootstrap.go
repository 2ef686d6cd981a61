package config

import (
	_ "embed"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
)

//go:embed default.yml
var defaultConfig []byte

// EnsureUserConfig returns the path of config.yml inside dataDir, writing the
// built-in defaults there first if the file does not exist yet.
func EnsureUserConfig(dataDir string) (string, error) {
	userPath := filepath.Join(dataDir, "config.yml")

	_, err := os.Stat(userPath)
	if err == nil {
		return userPath, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return "", err
	}

	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(userPath, defaultConfig, 0o644); err != nil {
		return "", errors.Wrap(err, "write default config")
	}
	return userPath, nil
}

// Default returns the built-in configuration.
func Default() Config {
	cfg, err := parse(defaultConfig)
	if err != nil {
		panic(err) // embedded file is part of the build
	}
	return cfg
}
