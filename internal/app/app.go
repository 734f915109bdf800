// Package app wires the service together: config, logger, storage, the
// optional cache and the HTTP server, plus signal-driven teardown.
package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/pinbox/pinbox/internal/config"
	"github.com/pinbox/pinbox/internal/httpserver"
	"github.com/pinbox/pinbox/internal/httpserver/deps"
	"github.com/pinbox/pinbox/internal/logger"
	"github.com/pinbox/pinbox/internal/redis"
	"github.com/pinbox/pinbox/internal/store"
	"github.com/pinbox/pinbox/internal/store/rediscache"
	"github.com/pinbox/pinbox/internal/store/sqlite"
	"github.com/pinbox/pinbox/internal/version"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	store       store.BookmarkStore
	redisClient *goredis.Client
}

func New() (*App, error) {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	// Primary store - fail fast when the database cannot be opened.
	bookmarkStore, err := sqlite.New(cfg.DBPath, cfg.DBMaxConns)
	if err != nil {
		return nil, fmt.Errorf("failed to open bookmark store: %w", err)
	}
	loggerClient.Info("bookmark store ready",
		logger.String("path", cfg.DBPath),
		logger.Int("max_conns", cfg.DBMaxConns))

	// Optional Redis read cache. The service runs without it; a configured
	// but unreachable Redis is a startup failure so misconfiguration is
	// caught early.
	var (
		redisClient *goredis.Client
		cache       *rediscache.Cache
	)
	if cfg.CacheEnabled() {
		redisClient, err = redis.New(redis.ConnectOptions{
			Addr:           cfg.RedisAddr,
			Password:       cfg.RedisPassword,
			DB:             cfg.RedisDB,
			DialTimeout:    cfg.RedisDialTimeout,
			ReadTimeout:    cfg.RedisReadTimeout,
			WriteTimeout:   cfg.RedisWriteTimeout,
			PoolSize:       cfg.RedisPoolSize,
			ConnectTimeout: cfg.RedisConnectTimeout,
			RetryInterval:  cfg.RedisRetryInterval,
			MaxWait:        cfg.RedisMaxWait,
			PingTimeout:    cfg.RedisPingTimeout,
		}, loggerClient)
		if err != nil {
			_ = bookmarkStore.Close()
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		cache = rediscache.New(redisClient, cfg.CacheTTL)
		loggerClient.Info("owner-list cache enabled",
			logger.String("addr", cfg.RedisAddr),
			logger.Duration("ttl", cfg.CacheTTL))
	} else {
		loggerClient.Info("redis not configured, owner-list cache disabled")
	}

	// Dependencies passed to routes.
	d := deps.Deps{
		Logger:        loggerClient,
		StartTime:     time.Now(),
		Version:       version.Version,
		Commit:        version.Commit,
		BuildDate:     version.BuildDate,
		GoVersion:     version.GoVersion,
		TimeNow:       time.Now,
		Store:         bookmarkStore,
		Cache:         cache,
		AllowedOrigin: cfg.AllowedOrigin,
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		server:      server,
		store:       bookmarkStore,
		redisClient: redisClient,
	}, nil
}

func (a *App) Run() error {
	a.logger.Infof("starting pinboxd %s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Infof("pinboxd %s (commit=%s, built=%s, go=%s)",
		version.Version, version.Commit, version.BuildDate, version.GoVersion)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

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
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	if err := a.store.Close(); err != nil {
		a.logger.Warnf("failed to close bookmark store: %v", err)
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warnf("failed to close redis: %v", err)
		}
	}

	a.logger.Info("pinboxd stopped cleanly")
	return nil
}
