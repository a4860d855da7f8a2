package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/garrettladley/liftoff/internal/migrations/postgres"
	xredis "github.com/garrettladley/liftoff/internal/redis"
	"github.com/garrettladley/liftoff/internal/server"
	"github.com/garrettladley/liftoff/internal/server/handler"
	"github.com/garrettladley/liftoff/internal/service/remoteconfig"
	"github.com/garrettladley/liftoff/internal/storage"
	"github.com/garrettladley/liftoff/internal/xslog"
)

const (
	keyPort        = "port"
	keyEnv         = "env"
	keyGracePeriod = "grace_period"

	streamShutdownGracePeriod = 2 * time.Second
)

func main() {
	_ = godotenv.Load()

	logger := xslog.NewLoggerFromEnv(os.Stdout)
	slog.SetDefault(logger)

	ctx := context.Background()
	if err := run(ctx, logger); err != nil {
		logger.ErrorContext(ctx, "fatal error", xslog.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger) error {
	cfg, err := server.ReadConfig()
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}
	if cfg.AdminAPIKey == "" {
		logger.WarnContext(ctx, "ADMIN_API_KEY is not set, experiment updates are disabled")
	}

	pool, err := initPostgres(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize postgres: %w", err)
	}
	defer pool.Close()

	store := storage.NewPostgresExperimentsStore(pool)
	health := map[string]handler.Pinger{"postgres": store}

	cache, limiter, closeRedis, err := initCache(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize cache: %w", err)
	}
	defer closeRedis()
	health["cache"] = cache

	shutdownCoordinator := server.NewShutdownCoordinator(streamShutdownGracePeriod)

	h := server.NewHandler(server.Deps{
		Logger:      logger,
		Service:     remoteconfig.NewCachedService(store, cache, cfg.CacheTTL),
		Limiter:     limiter,
		Health:      health,
		AdminAPIKey: cfg.AdminAPIKey,
		Draining:    shutdownCoordinator.Draining(),

		MinClientVersion: cfg.MinClientVersion,
	})

	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      0, // streams set per-write deadlines
		IdleTimeout:       60 * time.Second,
		BaseContext: func(_ net.Listener) context.Context {
			return shutdownCoordinator.BaseContext()
		},
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	serveErr := make(chan error, 1)
	go func() {
		logger.InfoContext(ctx, "starting server",
			xslog.Version(),
			slog.String(keyPort, cfg.Port),
			slog.String(keyEnv, string(cfg.Env)))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case <-done:
		logger.InfoContext(ctx, "shutdown signal received, initiating graceful shutdown")
	case err := <-serveErr:
		return fmt.Errorf("server error: %w", err)
	}

	shutdownCoordinator.InitiateShutdown()
	logger.InfoContext(ctx, "stream grace period complete, shutting down server",
		slog.Duration(keyGracePeriod, streamShutdownGracePeriod))

	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	logger.InfoContext(ctx, "server stopped")
	return nil
}

func initPostgres(ctx context.Context, cfg server.Config, logger *slog.Logger) (*pgxpool.Pool, error) {
	logger.InfoContext(ctx, "initializing PostgreSQL")

	pool, err := pgxpool.New(ctx, cfg.Database.URL)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}

	if err := postgres.Apply(ctx, pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}

	return pool, nil
}

// initCache uses Redis when configured. Production requires it so that every
// instance shares the cache, pub/sub and rate limits.
func initCache(ctx context.Context, cfg server.Config, logger *slog.Logger) (storage.ExperimentsCache, storage.RateLimiter, func(), error) {
	if cfg.Redis.URL == "" {
		if cfg.Env.IsProduction() {
			return nil, nil, nil, errors.New("REDIS_URL is required in production")
		}
		logger.InfoContext(ctx, "initializing in-memory cache (REDIS_URL not set)")
		return storage.NewMemoryExperimentsCache(),
			storage.NewMemoryRateLimiter(cfg.RateLimit.Limit, cfg.RateLimit.Window),
			func() {},
			nil
	}

	logger.InfoContext(ctx, "initializing Redis cache")
	client, err := xredis.New(ctx, xredis.Config{URL: cfg.Redis.URL})
	if err != nil {
		return nil, nil, nil, err
	}

	redisCfg := storage.RedisConfig{Client: client}
	closeFn := func() {
		if err := client.Close(); err != nil {
			logger.ErrorContext(ctx, "failed to close redis", xslog.Error(err))
		}
	}
	return storage.NewRedisExperimentsCache(redisCfg),
		storage.NewRedisRateLimiter(redisCfg, cfg.RateLimit.Limit, cfg.RateLimit.Window),
		closeFn,
		nil
}
