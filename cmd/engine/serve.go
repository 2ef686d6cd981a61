package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sync/atomic"
	"syscall"
	"time"

	"jobboard-engine/internal/api"
	"jobboard-engine/internal/config"
	"jobboard-engine/internal/events"
	"jobboard-engine/internal/feed"
	"jobboard-engine/internal/httpapi"
	"jobboard-engine/internal/live"
	"jobboard-engine/internal/scheduler"
	"jobboard-engine/internal/store"

	"github.com/cockroachdb/errors"
	"github.com/gofrs/flock"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const logoMaxAge = 30 * 24 * time.Hour

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the local engine API (default)",
	Long:  `Start the HTTP server the desktop UI talks to. It binds to 127.0.0.1 only.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default app.port)")
	rootCmd.Flags().AddFlagSet(serveCmd.Flags())
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	rt, err := bootstrap()
	if err != nil {
		return err
	}
	defer rt.sync()
	log := rt.log
	cfg := rt.cfg

	lock := flock.New(filepath.Join(rt.dataDir, "engine.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return errors.Wrap(err, "lock data dir")
	}
	if !locked {
		return errors.Newf("another engine is already using %s", rt.dataDir)
	}
	defer func() { _ = lock.Unlock() }()

	dbPath := filepath.Join(rt.dataDir, "jobboard.db")
	db, err := store.Open(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	var cfgVal atomic.Value // stores config.Config
	cfgVal.Store(cfg)
	loadCfg := func() (config.Config, error) {
		c, err := config.Load(rt.cfgPath)
		if err != nil {
			return c, err
		}
		c, _ = config.NormalizeAndValidate(c)
		return c, nil
	}

	hub := events.NewHub()
	client := rt.client()

	views := httpapi.NewViewRegistry(client, hub, log.Named("feed"),
		feed.WithDebounce(cfg.Debounce()),
		feed.WithPageSize(cfg.PageSize()),
	)
	board := live.New(client,
		live.WithLogger(log.Named("live")),
		live.WithOnUpdate(func(s live.Snapshot) {
			hub.Publish(events.MakeEvent(string(s.Kind), events.TypeLiveUpdated, s.Version, s))
		}),
	)

	sched := scheduler.New(log.Named("scheduler"))
	if spec := cfg.Live.RefreshSpec; spec != "" {
		if err := sched.Add(spec, "live-refresh", board.RefreshTask(api.LiveKinds...), false); err != nil {
			return err
		}
	}
	err = sched.Add("@daily", "logo-prune", func(ctx context.Context) error {
		n, err := db.PruneLogos(ctx, time.Now().Add(-logoMaxAge))
		if err != nil {
			return err
		}
		if n > 0 {
			log.Infow("[logo] pruned", "rows", n)
		}
		return nil
	}, true)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	d := httpapi.Deps{
		Log:         log,
		Hub:         hub,
		Views:       views,
		Board:       board,
		Loader:      rt.loader(),
		Logos:       db,
		CfgVal:      &cfgVal,
		UserCfgPath: rt.cfgPath,
		LoadCfg:     loadCfg,
		APIBaseURL:  rt.baseURL,
		APIBaseSrc:  rt.baseSrc,
	}

	token, err := httpapi.RandomToken(16)
	if err != nil {
		return err
	}
	mux := httpapi.NewMux(d)
	mux.HandleFunc("/shutdown", httpapi.ShutdownHandler(token, stop))

	port := cfg.App.Port
	if servePort > 0 {
		port = servePort
	}
	addr := fmt.Sprintf("127.0.0.1:%d", port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return errors.Wrapf(err, "listen %s", addr)
	}

	srv := &http.Server{
		Handler:           httpapi.Handler(mux, d),
		ReadHeaderTimeout: 5 * time.Second,
		// SSE streams end when the engine stops
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	log.Infow("engine listening",
		"addr", "http://"+addr,
		"db", dbPath,
		"config", rt.cfgPath,
		"api_base_url", rt.baseURL,
		"api_base_source", rt.baseSrc,
	)
	// the desktop shell reads this line to be able to stop us
	fmt.Fprintf(cmd.OutOrStdout(), "SHUTDOWN_TOKEN=%s\n", token)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error { return sched.Run(gctx) })
	g.Go(func() error {
		if err := board.LoadAll(gctx, api.LiveKinds...); err != nil {
			log.Warnw("[live] initial load failed", "err", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Infow("engine shutting down")
		views.CloseAll()
		shCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shCtx)
	})
	return g.Wait()
}
