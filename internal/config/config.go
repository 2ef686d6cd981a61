// Package config loads the engine's YAML configuration.
package config

import (
	"os"
	"time"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

type Config struct {
	App struct {
		Port    int    `yaml:"port" json:"port"`
		Env     string `yaml:"env" json:"env"` // dev | production
		DataDir string `yaml:"data_dir" json:"data_dir"`
	} `yaml:"app" json:"app"`

	API struct {
		BaseURL           string  `yaml:"base_url" json:"base_url"`
		DevBaseURL        string  `yaml:"dev_base_url" json:"dev_base_url"`
		ProdBaseURL       string  `yaml:"prod_base_url" json:"prod_base_url"`
		RequestsPerSecond float64 `yaml:"requests_per_second" json:"requests_per_second"`
		Burst             int     `yaml:"burst" json:"burst"`
		TimeoutSeconds    int     `yaml:"timeout_seconds" json:"timeout_seconds"` // 0 = transport default
	} `yaml:"api" json:"api"`

	Feed struct {
		DebounceMS int `yaml:"debounce_ms" json:"debounce_ms"`
		PageSize   int `yaml:"page_size" json:"page_size"`
	} `yaml:"feed" json:"feed"`

	Images struct {
		UseProxy       bool     `yaml:"use_proxy" json:"use_proxy"`
		Proxies        []string `yaml:"proxies" json:"proxies"`
		TimeoutSeconds int      `yaml:"timeout_seconds" json:"timeout_seconds"`
		MaxBytes       int      `yaml:"max_bytes" json:"max_bytes"`
	} `yaml:"images" json:"images"`

	Live struct {
		Kind        string `yaml:"kind" json:"kind"`
		RefreshSpec string `yaml:"refresh_spec" json:"refresh_spec"`
	} `yaml:"live" json:"live"`

	Log struct {
		JSON  bool   `yaml:"json" json:"json"`
		Level string `yaml:"level" json:"level"`
	} `yaml:"log" json:"log"`
}

func Load(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrapf(err, "read config %s", path)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "parse config %s", path)
	}
	ApplyEnv(&cfg)
	return cfg, nil
}

// Debounce returns the quiet period for filter edits.
func (c Config) Debounce() time.Duration {
	if c.Feed.DebounceMS <= 0 {
		return 500 * time.Millisecond
	}
	return time.Duration(c.Feed.DebounceMS) * time.Millisecond
}

func (c Config) PageSize() int {
	if c.Feed.PageSize <= 0 {
		return 12
	}
	return c.Feed.PageSize
}

func (c Config) APITimeout() time.Duration {
	return time.Duration(c.API.TimeoutSeconds) * time.Second
}

func (c Config) ImageTimeout() time.Duration {
	if c.Images.TimeoutSeconds <= 0 {
		return 15 * time.Second
	}
	return time.Duration(c.Images.TimeoutSeconds) * time.Second
}

// IsDev reports whether the engine runs for local development.
func (c Config) IsDev() bool {
	switch c.App.Env {
	case "dev", "development", "local":
		return true
	}
	return false
}
