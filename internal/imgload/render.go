package imgload

import (
	"bytes"
	"html/template"
	"strings"
	"unicode"
	"unicode/utf8"
)

const svgContentType = "image/svg+xml"

var fallbackTmpl = template.Must(template.New("fallback").Parse(`
{{- define "icon" -}}
<svg xmlns="http://www.w3.org/2000/svg" width="64" height="64" viewBox="0 0 24 24" fill="none" stroke="#9ca3af" stroke-width="2" stroke-linecap="round" stroke-linejoin="round" role="img" aria-label="{{.Alt}}"><path d="M6 22V4a2 2 0 0 1 2-2h8a2 2 0 0 1 2 2v18Z"/><path d="M6 12H4a2 2 0 0 0-2 2v6a2 2 0 0 0 2 2h2"/><path d="M18 9h2a2 2 0 0 1 2 2v9a2 2 0 0 1-2 2h-2"/><path d="M10 6h4"/><path d="M10 10h4"/><path d="M10 14h4"/><path d="M10 18h4"/></svg>
{{- end -}}
{{- define "initial" -}}
<svg xmlns="http://www.w3.org/2000/svg" width="64" height="64" viewBox="0 0 64 64" role="img" aria-label="{{.Alt}}"><defs><linearGradient id="g" x1="0" y1="0" x2="1" y2="1"><stop offset="0" stop-color="#3b82f6"/><stop offset="1" stop-color="#9333ea"/></linearGradient></defs><rect width="64" height="64" rx="6" fill="url(#g)"/><text x="32" y="32" dy=".35em" text-anchor="middle" font-family="sans-serif" font-size="28" font-weight="700" fill="#ffffff">{{.Initial}}</text></svg>
{{- end -}}
{{- define "placeholder" -}}
<svg xmlns="http://www.w3.org/2000/svg" width="64" height="64" viewBox="0 0 64 64" role="img" aria-label="{{.Alt}}"><rect width="64" height="64" rx="6" fill="#f3f4f6"/><g transform="translate(20 20)" fill="none" stroke="#9ca3af" stroke-width="2" stroke-linecap="round" stroke-linejoin="round"><rect x="1" y="1" width="22" height="22" rx="2"/><circle cx="8" cy="8" r="2"/><path d="m23 15-4-4L6 23"/></g></svg>
{{- end -}}
{{- define "loading" -}}
<svg xmlns="http://www.w3.org/2000/svg" width="64" height="64" viewBox="0 0 64 64" role="img" aria-label="loading"><rect width="64" height="64" rx="6" fill="#f3f4f6"><animate attributeName="opacity" values="1;.5;1" dur="2s" repeatCount="indefinite"/></rect><g transform="translate(20 20)" fill="none" stroke="#9ca3af" stroke-width="2"><rect x="1" y="1" width="22" height="22" rx="2"/><circle cx="8" cy="8" r="2"/></g></svg>
{{- end -}}
`))

type fallbackData struct {
	Alt     string
	Initial string
}

// Initial returns the uppercased first letter of label, or "" for a blank
// label.
func Initial(label string) string {
	label = strings.TrimSpace(label)
	r, _ := utf8.DecodeRuneInString(label)
	if r == utf8.RuneError {
		return ""
	}
	return string(unicode.ToUpper(r))
}

// Effective returns the strategy actually drawn for label: the initial-letter
// fallback needs a label and degrades to the icon without one.
func (s Strategy) Effective(label string) Strategy {
	switch s {
	case StrategyInitial:
		if Initial(label) == "" {
			return StrategyIcon
		}
		return s
	case StrategyPlaceholder:
		return s
	}
	return StrategyIcon
}

// RenderFallback draws the terminal fallback as SVG.
func RenderFallback(s Strategy, label, alt string) (contentType string, body []byte) {
	name := string(s.Effective(label))
	return svgContentType, render(name, fallbackData{Alt: alt, Initial: Initial(label)})
}

// RenderLoading draws the placeholder shown while a load is pending.
func RenderLoading() (contentType string, body []byte) {
	return svgContentType, render("loading", fallbackData{})
}

func render(name string, data fallbackData) []byte {
	var buf bytes.Buffer
	if err := fallbackTmpl.ExecuteTemplate(&buf, name, data); err != nil {
		// templates are static; only a programming error gets here
		panic(err)
	}
	return buf.Bytes()
}
