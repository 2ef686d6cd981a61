package httpapi

import (
	"context"
	"sync/atomic"

	"jobboard-engine/internal/config"
	"jobboard-engine/internal/events"
	"jobboard-engine/internal/imgload"
	"jobboard-engine/internal/live"
	"jobboard-engine/internal/store"

	"go.uber.org/zap"
)

// LogoStore caches logo bytes that loaded. *store.DB satisfies it.
type LogoStore interface {
	PutLogo(ctx context.Context, sourceURL, contentType string, b []byte) (string, error)
	GetLogo(ctx context.Context, key string) (store.Logo, error)
}

type Deps struct {
	Log *zap.SugaredLogger
	Hub *events.Hub

	Views  *ViewRegistry
	Board  *live.Board
	Loader *imgload.Loader
	Logos  LogoStore // optional

	// Atomic store of config.Config
	CfgVal *atomic.Value

	// Config persistence
	UserCfgPath string
	LoadCfg     func() (config.Config, error)

	// Resolved once at startup
	APIBaseURL string
	APIBaseSrc config.BaseURLSource
}

func (d Deps) config() config.Config {
	if d.CfgVal == nil {
		return config.Default()
	}
	if c, ok := d.CfgVal.Load().(config.Config); ok {
		return c
	}
	return config.Default()
}
