package httpapi

import (
	"net/http"
	"strconv"
	"strings"

	"jobboard-engine/internal/config"
	"jobboard-engine/internal/imgload"
	"jobboard-engine/internal/logging"
	"jobboard-engine/internal/store"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

const loadingKey = "loading.svg"

type LogosHandler struct {
	Loader *imgload.Loader
	Store  LogoStore
	Log    *zap.SugaredLogger
	Cfg    func() config.Config
}

// Load runs a fresh image instance for ?u= and answers with the image or
// the terminal fallback. Both answers are 200; X-Image-State tells them apart.
func (h LogosHandler) Load(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := imgload.Request{
		URL:      q.Get("u"), // already decoded by net/http
		Alt:      q.Get("alt"),
		Label:    q.Get("text"),
		Fallback: imgload.ParseStrategy(q.Get("fallback")),
		UseProxy: h.useProxy(q.Get("proxy")),
	}

	res := h.Loader.Load(r.Context(), req)
	w.Header().Set("X-Image-State", res.Phase.String())
	w.Header().Set("X-Image-Attempts", strconv.Itoa(len(res.Attempts)))

	if res.Phase == imgload.Loaded && res.Image != nil {
		if key := h.cache(r, res); key != "" {
			w.Header().Set("X-Logo-Key", key)
		}
		w.Header().Set("Content-Type", res.Image.ContentType)
		w.Header().Set("Cache-Control", "public, max-age=86400")
		_, _ = w.Write(res.Image.Bytes)
		return
	}

	logging.OrNop(h.Log).Debugw("[logo] fallback", "url", res.Original, "attempts", res.Attempts, "err", res.Err)
	eff := res.Fallback.Effective(req.Label)
	ct, body := imgload.RenderFallback(eff, req.Label, req.Alt)
	w.Header().Set("X-Image-Fallback", string(eff))
	w.Header().Set("Content-Type", ct)
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(body)
}

// GetByPath serves cached bytes for /logo/{key}, or the loading
// placeholder for /logo/loading.svg.
func (h LogosHandler) GetByPath(w http.ResponseWriter, r *http.Request) {
	key := strings.TrimSpace(strings.TrimPrefix(r.URL.Path, "/logo/"))
	if key == "" {
		WriteError(w, r, http.StatusBadRequest, "bad_request", "missing key")
		return
	}
	if key == loadingKey {
		ct, body := imgload.RenderLoading()
		w.Header().Set("Content-Type", ct)
		w.Header().Set("Cache-Control", "public, max-age=604800")
		_, _ = w.Write(body)
		return
	}
	if h.Store == nil {
		WriteError(w, r, http.StatusNotFound, "not_found", "logo cache disabled")
		return
	}

	logo, err := h.Store.GetLogo(r.Context(), key)
	if errors.Is(err, store.ErrLogoNotFound) {
		WriteError(w, r, http.StatusNotFound, "not_found", "logo not cached")
		return
	}
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "store_error", err.Error())
		return
	}

	ct := logo.ContentType
	if ct == "" {
		ct = "image/*"
	}
	w.Header().Set("Content-Type", ct)
	w.Header().Set("Cache-Control", "public, max-age=604800")
	_, _ = w.Write(logo.Bytes)
}

func (h LogosHandler) useProxy(v string) bool {
	if b, err := strconv.ParseBool(v); err == nil {
		return b
	}
	if h.Cfg != nil {
		return h.Cfg().Images.UseProxy
	}
	return true
}

func (h LogosHandler) cache(r *http.Request, res imgload.Result) string {
	if h.Store == nil {
		return ""
	}
	key, err := h.Store.PutLogo(r.Context(), res.Original, res.Image.ContentType, res.Image.Bytes)
	if err != nil {
		logging.OrNop(h.Log).Warnw("[logo] cache put failed", "url", res.Original, "err", err)
		return ""
	}
	return key
}
