package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureUserConfig_WritesDefaults(t *testing.T) {
	dir := t.TempDir()

	path, err := EnsureUserConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "config.yml"), path)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 38471, cfg.App.Port)
	assert.Equal(t, 500*time.Millisecond, cfg.Debounce())
	assert.Equal(t, 12, cfg.PageSize())
	assert.True(t, cfg.Images.UseProxy)
	require.NotEmpty(t, cfg.Images.Proxies)
	assert.Contains(t, cfg.Images.Proxies[0], "images.weserv.nl")
}

func TestEnsureUserConfig_KeepsExistingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("app:\n  port: 9000\n"), 0o644))

	got, err := EnsureUserConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, path, got)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.App.Port)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("app: [unterminated"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

func TestLoad_EnvOverridesBaseURL(t *testing.T) {
	t.Setenv(EnvAPIBaseURL, "https://api.example.com/v1")
	t.Setenv(EnvAppEnv, "dev")

	path, err := EnsureUserConfig(t.TempDir())
	require.NoError(t, err)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://api.example.com/v1", cfg.API.BaseURL)
	assert.True(t, cfg.IsDev())
}

func TestDefaults_ZeroValues(t *testing.T) {
	var cfg Config
	assert.Equal(t, 500*time.Millisecond, cfg.Debounce())
	assert.Equal(t, 12, cfg.PageSize())
	assert.Equal(t, time.Duration(0), cfg.APITimeout())
	assert.Equal(t, 15*time.Second, cfg.ImageTimeout())
}

func TestNormalizeAndValidate_Default(t *testing.T) {
	_, vr := NormalizeAndValidate(Default())
	assert.True(t, vr.OK(), "errors: %v", vr.Errors)
}

func TestNormalizeAndValidate_Problems(t *testing.T) {
	cfg := Default()
	cfg.App.Port = 0
	cfg.Images.Proxies = []string{"https://proxy.example.com/"}
	cfg.Live.Kind = "popular"
	cfg.Live.RefreshSpec = "every now and then"
	cfg.Log.Level = "loud"

	_, vr := NormalizeAndValidate(cfg)
	assert.False(t, vr.OK())
	assert.Len(t, vr.Errors, 5)
}

func TestNormalizeAndValidate_TrimsProxies(t *testing.T) {
	cfg := Default()
	cfg.Images.Proxies = []string{" https://a/?u={url} ", "", "https://a/?u={url}"}

	out, vr := NormalizeAndValidate(cfg)
	assert.True(t, vr.OK())
	assert.Equal(t, []string{"https://a/?u={url}"}, out.Images.Proxies)
}

func TestSaveAtomic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	cfg := Default()
	cfg.Feed.PageSize = 24

	require.NoError(t, SaveAtomic(path, cfg))
	require.NoError(t, SaveAtomic(path, cfg))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 24, got.Feed.PageSize)
	assert.FileExists(t, path+".bak")
}

func TestSaveAtomic_RejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	cfg := Default()
	cfg.App.Port = -1

	err := SaveAtomic(path, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "app.port")
	assert.NoFileExists(t, path)
}
