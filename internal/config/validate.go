package config

import (
	"fmt"
	"strings"

	"github.com/robfig/cron/v3"
)

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

var liveKinds = map[string]bool{"trending": true, "search": true, "external": true}

// NormalizeAndValidate returns a normalized copy of cfg and the problems found.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	var out = cfg
	var res Validation

	trimList := func(xs []string) []string {
		seen := map[string]bool{}
		var ys []string
		for _, x := range xs {
			x = strings.TrimSpace(x)
			if x == "" || seen[x] {
				continue
			}
			seen[x] = true
			ys = append(ys, x)
		}
		return ys
	}

	out.API.BaseURL = strings.TrimSpace(out.API.BaseURL)
	out.API.DevBaseURL = strings.TrimSpace(out.API.DevBaseURL)
	out.API.ProdBaseURL = strings.TrimSpace(out.API.ProdBaseURL)
	out.Images.Proxies = trimList(out.Images.Proxies)
	out.Live.Kind = strings.ToLower(strings.TrimSpace(out.Live.Kind))
	out.Log.Level = strings.ToLower(strings.TrimSpace(out.Log.Level))

	if out.App.Port <= 0 || out.App.Port > 65535 {
		res.addErr("app.port must be 1..65535")
	}

	if out.API.ProdBaseURL == "" {
		res.addErr("api.prod_base_url is required")
	}
	if out.API.RequestsPerSecond < 0 {
		res.addErr("api.requests_per_second must be >= 0")
	} else if out.API.RequestsPerSecond == 0 {
		res.addWarn("api.requests_per_second is 0; backend requests will not be throttled.")
	}
	if out.API.Burst < 0 {
		res.addErr("api.burst must be >= 0")
	}
	if out.API.TimeoutSeconds < 0 {
		res.addErr("api.timeout_seconds must be >= 0")
	}

	if out.Feed.DebounceMS < 0 {
		res.addErr("feed.debounce_ms must be >= 0")
	} else if out.Feed.DebounceMS > 0 && out.Feed.DebounceMS < 100 {
		res.addWarn("feed.debounce_ms is very low (%d); typing will fire a request per keystroke.", out.Feed.DebounceMS)
	}
	if out.Feed.PageSize < 0 || out.Feed.PageSize > 100 {
		res.addErr("feed.page_size must be 0..100")
	}

	if out.Images.UseProxy && len(out.Images.Proxies) == 0 {
		res.addWarn("images.use_proxy is true but images.proxies is empty; images load directly.")
	}
	for i, p := range out.Images.Proxies {
		if !strings.Contains(p, "{url}") && !strings.Contains(p, "{raw}") {
			res.addErr("images.proxies[%d] must contain {url} or {raw}", i)
		}
	}
	if out.Images.MaxBytes < 0 {
		res.addErr("images.max_bytes must be >= 0")
	}

	if out.Live.Kind != "" && !liveKinds[out.Live.Kind] {
		res.addErr("live.kind must be one of trending, search, external")
	}
	if out.Live.RefreshSpec != "" {
		if _, err := cron.ParseStandard(out.Live.RefreshSpec); err != nil {
			res.addErr("live.refresh_spec is not a valid cron spec: %v", err)
		}
	}

	switch out.Log.Level {
	case "", "debug", "info", "warn", "error":
	default:
		res.addErr("log.level must be debug, info, warn or error")
	}

	return out, res
}
