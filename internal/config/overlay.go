package config

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Environment variables that override the file.
const (
	EnvAPIBaseURL = "JOBBOARD_API_BASE_URL"
	EnvAppEnv     = "APP_ENV"
	EnvLogLevel   = "LOG_LEVEL"
	EnvDataDir    = "JOBBOARD_DATA_DIR"
)

// ApplyEnv overlays environment settings onto cfg. Empty variables are ignored.
func ApplyEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv(EnvAPIBaseURL)); v != "" {
		cfg.API.BaseURL = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvAppEnv)); v != "" {
		cfg.App.Env = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.Log.Level = v
	}
}

func parse(b []byte) (Config, error) {
	var cfg Config
	err := yaml.Unmarshal(b, &cfg)
	return cfg, err
}
