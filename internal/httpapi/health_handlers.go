package httpapi

import (
	"net/http"
	"time"

	"jobboard-engine/internal/config"
	"jobboard-engine/internal/events"
)

type HealthHandler struct {
	Views      *ViewRegistry
	Hub        *events.Hub
	APIBaseURL string
	APIBaseSrc config.BaseURLSource
}

func (h HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	out := map[string]any{
		"ok":              true,
		"time":            time.Now().UTC().Format(time.RFC3339),
		"api_base_url":    h.APIBaseURL,
		"api_base_source": h.APIBaseSrc,
	}
	if h.Views != nil {
		out["views"] = h.Views.Len()
	}
	if h.Hub != nil {
		out["subscribers"] = h.Hub.Subscribers()
	}
	writeJSON(w, out)
}
