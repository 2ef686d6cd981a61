// Package imgload loads company logos from untrusted urls. A load goes
// through at most one proxy rewrite, then the original url, then a drawn
// fallback.
package imgload

import (
	"context"
	"net/url"

	"jobboard-engine/internal/logging"

	"go.uber.org/zap"
)

// Request describes one logo to render.
type Request struct {
	URL      string
	Alt      string
	Label    string // text for the initial-letter fallback
	Fallback Strategy
	UseProxy bool
}

// Result is the terminal outcome of one load.
type Result struct {
	Phase    Phase    `json:"phase"`
	Original string   `json:"original"`
	Address  string   `json:"address,omitempty"` // address that loaded
	Attempts []string `json:"attempts"`
	Fallback Strategy `json:"fallback"`
	Image    *Image   `json:"-"`
	Err      error    `json:"-"`
}

type Loader struct {
	fetch   Fetcher
	proxies []ProxyTemplate
	base    *url.URL
	log     *zap.SugaredLogger
}

type Option func(*Loader)

func WithProxies(ps []ProxyTemplate) Option { return func(l *Loader) { l.proxies = ps } }
func WithLogger(lg *zap.SugaredLogger) Option { return func(l *Loader) { l.log = lg } }

// WithBaseURL resolves relative addresses (the backend's own proxy route,
// site-relative logos) against base.
func WithBaseURL(base string) Option {
	return func(l *Loader) {
		if u, err := url.Parse(base); err == nil && u.IsAbs() {
			l.base = u
		}
	}
}

func NewLoader(f Fetcher, opts ...Option) *Loader {
	l := &Loader{fetch: f, proxies: []ProxyTemplate{DefaultProxy}}
	for _, o := range opts {
		o(l)
	}
	l.log = logging.OrNop(l.log)
	return l
}

// Load runs a fresh instance for req to completion. Load failures never
// escape: they end in a Failed result carrying the fallback to draw.
func (l *Loader) Load(ctx context.Context, req Request) Result {
	in := NewInstance(req.URL, l.proxies, req.UseProxy)
	res := Result{Original: in.Original(), Fallback: req.Fallback}
	if res.Fallback == "" {
		res.Fallback = StrategyIcon
	}

	for in.Phase() == Loading {
		addr := in.Address()
		img, err := l.fetch.Fetch(ctx, l.resolve(addr))
		if err == nil {
			in.OnLoad()
			res.Address = addr
			res.Image = &img
			break
		}
		res.Err = err
		l.log.Debugw("[img] load failed", "address", addr, "err", err)
		if ctx.Err() != nil {
			in.Abandon()
			break
		}
		in.OnError()
	}

	res.Phase = in.Phase()
	res.Attempts = in.Attempts()
	if res.Phase == Loaded {
		res.Err = nil
	}
	return res
}

func (l *Loader) resolve(addr string) string {
	if IsAbsolute(addr) || l.base == nil {
		return addr
	}
	ref, err := url.Parse(addr)
	if err != nil {
		return addr
	}
	return l.base.ResolveReference(ref).String()
}
