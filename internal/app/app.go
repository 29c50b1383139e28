package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dxwatch/dxwatch/internal/bandplan"
	"github.com/dxwatch/dxwatch/internal/cache"
	"github.com/dxwatch/dxwatch/internal/cluster"
	"github.com/dxwatch/dxwatch/internal/config"
	"github.com/dxwatch/dxwatch/internal/httpserver"
	"github.com/dxwatch/dxwatch/internal/httpserver/deps"
	"github.com/dxwatch/dxwatch/internal/logger"
	"github.com/dxwatch/dxwatch/internal/status"
	"github.com/dxwatch/dxwatch/internal/version"
)

type App struct {
	cfg     *config.Config
	logger  logger.Logger
	server  *httpserver.Server
	manager *cluster.Manager
	cache   *cache.SpotCache
}

func New() *App {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	spotCache := cache.New(cfg.CacheCapacity)

	manager, err := cluster.New(cluster.Options{
		Host:           cfg.ClusterHost,
		Port:           cfg.ClusterPort,
		Callsign:       cfg.Callsign,
		Region:         bandplan.Region(cfg.IARURegion),
		ConnectTimeout: cfg.ConnectTimeout,
		IdleTimeout:    cfg.IdleTimeout,
		BackoffBase:    cfg.BackoffBase,
		BackoffMax:     cfg.BackoffMax,
	}, spotCache, loggerClient)
	if err != nil {
		loggerClient.Errorf("invalid cluster configuration: %v", err)
		os.Exit(1)
	}

	reporter := status.New(manager, spotCache)

	d := deps.Deps{
		Logger:    loggerClient,
		StartTime: time.Now(),
		Version:   version.Version,
		Commit:    version.Commit,
		BuildDate: version.BuildDate,
		GoVersion: version.GoVersion,
		TimeNow:   time.Now,
		Cache:     spotCache,
		Reporter:  reporter,
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:     cfg,
		logger:  loggerClient,
		server:  server,
		manager: manager,
		cache:   spotCache,
	}
}

func (a *App) Run() error {
	a.logger.Infof("starting dxwatch %s (commit=%s, built=%s, go=%s)",
		version.Version, version.Commit, version.BuildDate, version.GoVersion)
	a.logger.Info("cluster target",
		logger.String("host", a.cfg.ClusterHost),
		logger.Int("port", a.cfg.ClusterPort),
		logger.String("callsign", a.cfg.Callsign),
		logger.Int("iaru_region", a.cfg.IARURegion))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Start the cluster session. The manager keeps reconnecting on its
	// own; queries are served from the cache either way.
	a.manager.Start(ctx)

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutting down gracefully...")
	case err := <-errCh:
		a.manager.Stop()
		return err
	}

	// Stop ingestion first so the query surface drains against a
	// frozen cache, then shut the HTTP server down.
	a.manager.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	a.logger.Info("dxwatch stopped cleanly")
	return nil
}
