package imgload

import (
	"net/url"
	"strings"
)

// ProxyTemplate rewrites an image url through a proxy. {url} is replaced by
// the query-escaped original and {raw} by the original as is.
type ProxyTemplate string

// DefaultProxy is the rewrite used when none is configured.
const DefaultProxy ProxyTemplate = "https://images.weserv.nl/?url={url}"

func (t ProxyTemplate) Rewrite(raw string) string {
	s := strings.ReplaceAll(string(t), "{url}", url.QueryEscape(raw))
	return strings.ReplaceAll(s, "{raw}", raw)
}

// Templates converts configured strings, skipping blanks.
func Templates(xs []string) []ProxyTemplate {
	out := make([]ProxyTemplate, 0, len(xs))
	for _, x := range xs {
		if x = strings.TrimSpace(x); x != "" {
			out = append(out, ProxyTemplate(x))
		}
	}
	return out
}

// IsAbsolute reports whether raw carries an http or https scheme.
func IsAbsolute(raw string) bool {
	return strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://")
}

// IsLocal reports whether raw points at this machine.
func IsLocal(raw string) bool {
	return strings.Contains(raw, "localhost") || strings.Contains(raw, "127.0.0.1")
}

// firstAddress picks the address of the first attempt: the first proxy
// rewrite for remote absolute urls when proxying is on, otherwise raw.
func firstAddress(raw string, proxies []ProxyTemplate, useProxy bool) string {
	if useProxy && len(proxies) > 0 && IsAbsolute(raw) && !IsLocal(raw) {
		return proxies[0].Rewrite(raw)
	}
	return raw
}
