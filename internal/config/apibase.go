package config

import (
	"regexp"
	"strings"
)

// Fallback base urls used when the file leaves them empty.
const (
	DefaultDevBaseURL  = "http://localhost:5000/api/v1"
	DefaultProdBaseURL = "https://jobhunt-server-six.vercel.app/api/v1"
)

var duplicateSlashes = regexp.MustCompile(`([^:]/)/+`)

// BaseURLSource names where the resolved base url came from.
type BaseURLSource string

const (
	SourceExplicit   BaseURLSource = "explicit"
	SourceDev        BaseURLSource = "dev-default"
	SourceProduction BaseURLSource = "production-fallback"
)

// ResolveAPIBaseURL picks the API base url once at startup: the explicit
// value, else the local development default, else the production fallback.
// The result always carries a scheme and no trailing slash.
func ResolveAPIBaseURL(cfg Config) (string, BaseURLSource) {
	prod := firstNonEmpty(cfg.API.ProdBaseURL, DefaultProdBaseURL)

	raw, src := cfg.API.BaseURL, SourceExplicit
	if unset(raw) {
		if cfg.IsDev() {
			raw, src = firstNonEmpty(cfg.API.DevBaseURL, DefaultDevBaseURL), SourceDev
		} else {
			raw, src = prod, SourceProduction
		}
	}

	u := duplicateSlashes.ReplaceAllString(strings.TrimSpace(raw), "$1")

	if !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
		if strings.Contains(u, ".") {
			u = "https://" + u
		} else {
			u, src = prod, SourceProduction
		}
	}

	return strings.TrimSuffix(u, "/"), src
}

// JoinURL joins base and endpoint with exactly one slash.
func JoinURL(base, endpoint string) string {
	return strings.TrimSuffix(base, "/") + "/" + strings.TrimPrefix(endpoint, "/")
}

func unset(v string) bool {
	switch strings.TrimSpace(v) {
	case "", "undefined", "null":
		return true
	}
	return false
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
