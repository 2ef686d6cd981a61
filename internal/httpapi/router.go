package httpapi

import "net/http"

// NewMux returns the raw mux so main() can still attach /shutdown (needs srv+token).
func NewMux(d Deps) *http.ServeMux {
	mux := http.NewServeMux()

	// Feed views
	vh := ViewsHandler{Views: d.Views}
	mux.HandleFunc("POST /views", vh.Create)
	mux.HandleFunc("GET /views/{id}", vh.Get)
	mux.HandleFunc("DELETE /views/{id}", vh.Delete)
	mux.HandleFunc("PATCH /views/{id}/filters", vh.UpdateFilters)
	mux.HandleFunc("POST /views/{id}/clear", vh.Clear)
	mux.HandleFunc("POST /views/{id}/page", vh.Page)
	mux.HandleFunc("POST /views/{id}/refresh", vh.Refresh)
	mux.HandleFunc("POST /views/{id}/retry", vh.Retry)

	// Logos
	lh := LogosHandler{Loader: d.Loader, Store: d.Logos, Log: d.Log, Cfg: d.config}
	mux.HandleFunc("/logo", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: lh.Load,
	}))
	mux.HandleFunc("/logo/", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: lh.GetByPath,
	}))

	// Live board
	bh := LiveHandler{Board: d.Board}
	mux.HandleFunc("GET /live/{kind}", bh.Get)
	mux.HandleFunc("POST /live/refresh", bh.Refresh)

	// Config
	ch := ConfigHandler{
		CfgVal:      d.CfgVal,
		UserCfgPath: d.UserCfgPath,
		LoadCfg:     d.LoadCfg,
	}
	mux.HandleFunc("/config", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Get,
		http.MethodPut: ch.Put,
	}))
	mux.HandleFunc("/config/path", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Path,
	}))
	mux.HandleFunc("/config/validate", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Validate,
	}))

	// SSE events
	eh := EventsHandler{Hub: d.Hub}
	mux.HandleFunc("/events", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: eh.ServeSSE,
	}))

	hh := HealthHandler{Views: d.Views, Hub: d.Hub, APIBaseURL: d.APIBaseURL, APIBaseSrc: d.APIBaseSrc}
	mux.HandleFunc("/health", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: hh.Health,
	}))

	return mux
}

// Handler wraps mux with the standard middleware stack.
func Handler(mux http.Handler, d Deps) http.Handler {
	return Chain(mux, RequestID, Recover(d.Log), AccessLog(d.Log), Cors)
}
