package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/CAPRI-CORP/desinfec-backend/internal/api"
	"github.com/CAPRI-CORP/desinfec-backend/internal/catalog"
	"github.com/CAPRI-CORP/desinfec-backend/internal/config"
	"github.com/CAPRI-CORP/desinfec-backend/internal/db"
	redisclient "github.com/CAPRI-CORP/desinfec-backend/internal/redis"
	"github.com/CAPRI-CORP/desinfec-backend/internal/scheduling"
)

const version = "1.0.0"

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})).With("service", "api-server")

	cfg, err := config.Load()
	if err != nil {
		logger.Error("config load error", "err", err)
		os.Exit(1)
	}

	logger.Info("api-server starting", "env", cfg.Env, "http_port", cfg.HTTPPort)

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pgCtx, cancelPg := context.WithTimeout(rootCtx, 10*time.Second)
	pgPool, err := db.ConnectPostgres(pgCtx, cfg.PostgresDSN)
	cancelPg()
	if err != nil {
		logger.Error("postgres connection error", "err", err)
		os.Exit(1)
	}
	defer pgPool.Close()
	logger.Info("connected to Postgres")

	if err := db.Migrate(rootCtx, pgPool); err != nil {
		logger.Error("schema migration error", "err", err)
		os.Exit(1)
	}

	rdb, err := redisclient.NewRedisClient(cfg.RedisAddr, cfg.RedisUsername, cfg.RedisPassword)
	if err != nil {
		logger.Error("redis connection error", "err", err)
		os.Exit(1)
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			logger.Warn("error closing redis", "err", err)
		}
	}()
	logger.Info("connected to Redis")

	catalogRepo := catalog.NewPgRepository(pgPool)
	catalogMgr := catalog.NewManager(catalogRepo)

	schedulingRepo := scheduling.NewPgRepository(pgPool)
	directory := scheduling.NewCatalogDirectory(catalogRepo)
	locker := redisclient.NewRedisSchedulingLocker(rdb, cfg.LockTTL)
	schedulingSvc := scheduling.NewService(schedulingRepo, directory, locker, logger)

	handler := api.NewRouter(api.RouterConfig{
		Scheduling: schedulingSvc,
		Catalog:    catalogMgr,
		Logger:     logger,
		PgPool:     pgPool,
		Redis:      rdb,
		Env:        cfg.Env,
		Version:    version,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-rootCtx.Done():
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "err", err)
			os.Exit(1)
		}
	}

	logger.Info("shutting down api-server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "err", err)
	}
}
