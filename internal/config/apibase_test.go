package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveAPIBaseURL(t *testing.T) {
	tests := []struct {
		name    string
		base    string
		env     string
		want    string
		wantSrc BaseURLSource
	}{
		{"explicit wins", "https://api.example.com/api/v1", "dev", "https://api.example.com/api/v1", SourceExplicit},
		{"dev default", "", "dev", DefaultDevBaseURL, SourceDev},
		{"undefined counts as unset", "undefined", "development", DefaultDevBaseURL, SourceDev},
		{"null counts as unset", "null", "production", DefaultProdBaseURL, SourceProduction},
		{"production fallback", "", "", DefaultProdBaseURL, SourceProduction},
		{"trailing slash stripped", "https://api.example.com/v1/", "", "https://api.example.com/v1", SourceExplicit},
		{"duplicate slashes collapsed", "https://api.example.com//api///v1", "", "https://api.example.com/api/v1", SourceExplicit},
		{"bare domain gets https", "api.example.com/v1", "", "https://api.example.com/v1", SourceExplicit},
		{"malformed falls back", "not-a-url", "dev", DefaultProdBaseURL, SourceProduction},
		{"http kept", "http://10.0.0.5:5000/api/v1", "", "http://10.0.0.5:5000/api/v1", SourceExplicit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cfg Config
			cfg.API.BaseURL = tt.base
			cfg.App.Env = tt.env

			got, src := ResolveAPIBaseURL(cfg)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantSrc, src)
		})
	}
}

func TestResolveAPIBaseURL_ConfiguredFallbacks(t *testing.T) {
	var cfg Config
	cfg.App.Env = "dev"
	cfg.API.DevBaseURL = "http://127.0.0.1:9000/api/v1/"

	got, src := ResolveAPIBaseURL(cfg)
	assert.Equal(t, "http://127.0.0.1:9000/api/v1", got)
	assert.Equal(t, SourceDev, src)
}

func TestJoinURL(t *testing.T) {
	assert.Equal(t, "https://a.io/api/v1/mixed-jobs/random", JoinURL("https://a.io/api/v1/", "/mixed-jobs/random"))
	assert.Equal(t, "https://a.io/api/v1/x", JoinURL("https://a.io/api/v1", "x"))
}
