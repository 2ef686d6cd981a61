package main

import (
	"os"
	"strings"

	"jobboard-engine/internal/api"
	"jobboard-engine/internal/config"
	"jobboard-engine/internal/imgload"
	"jobboard-engine/internal/logging"
	"jobboard-engine/internal/netutil"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

var (
	dataDirFlag  string
	logLevelFlag string
	jsonLogsFlag bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&dataDirFlag, "data-dir", "", "Engine data directory (default $"+config.EnvDataDir+" or .)")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Override log.level")
	rootCmd.PersistentFlags().BoolVar(&jsonLogsFlag, "json-logs", false, "Log JSON lines instead of console output")
}

// runtime is what every command needs: the loaded config, a logger and the
// resolved backend base url.
type runtime struct {
	dataDir string
	cfgPath string
	cfg     config.Config
	zl      *zap.Logger
	log     *zap.SugaredLogger
	baseURL string
	baseSrc config.BaseURLSource
}

func resolveDataDir() string {
	if v := strings.TrimSpace(dataDirFlag); v != "" {
		return v
	}
	// the desktop shell passes its app data dir here
	if v := strings.TrimSpace(os.Getenv(config.EnvDataDir)); v != "" {
		return v
	}
	return "."
}

func bootstrap() (*runtime, error) {
	dataDir := resolveDataDir()
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, errors.Wrap(err, "create data dir")
	}

	cfgPath, err := config.EnsureUserConfig(dataDir)
	if err != nil {
		return nil, errors.Wrap(err, "config bootstrap failed")
	}
	raw, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	cfg, vr := config.NormalizeAndValidate(raw)
	if !vr.OK() {
		return nil, errors.Newf("invalid config %s:\n- %s", cfgPath, strings.Join(vr.Errors, "\n- "))
	}

	level := cfg.Log.Level
	if logLevelFlag != "" {
		level = logLevelFlag
	}
	zl, err := logging.New(cfg.Log.JSON || jsonLogsFlag, level)
	if err != nil {
		return nil, err
	}
	log := zl.Sugar()
	for _, w := range vr.Warnings {
		log.Warnw("[config] " + w)
	}

	base, src := config.ResolveAPIBaseURL(cfg)
	return &runtime{
		dataDir: dataDir,
		cfgPath: cfgPath,
		cfg:     cfg,
		zl:      zl,
		log:     log,
		baseURL: base,
		baseSrc: src,
	}, nil
}

func (rt *runtime) sync() { _ = rt.zl.Sync() }

func (rt *runtime) client() *api.Client {
	return api.New(rt.baseURL,
		api.WithTimeout(rt.cfg.APITimeout()),
		api.WithLimiter(netutil.NewHostLimiter(rt.cfg.API.RequestsPerSecond, rt.cfg.API.Burst)),
		api.WithLogger(rt.log.Named("api")),
	)
}

func (rt *runtime) loader() *imgload.Loader {
	// image hosts get their own limiter so logo storms can't starve the API
	lim := netutil.NewHostLimiter(10, 10)
	fetch := imgload.NewHTTPFetcher(rt.cfg.ImageTimeout(), rt.cfg.Images.MaxBytes, lim)
	return imgload.NewLoader(fetch,
		imgload.WithProxies(imgload.Templates(rt.cfg.Images.Proxies)),
		imgload.WithBaseURL(rt.baseURL),
		imgload.WithLogger(rt.log.Named("img")),
	)
}
