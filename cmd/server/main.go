package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/maxviazov/accounts-service/internal/config"
	"github.com/maxviazov/accounts-service/internal/handler"
	"github.com/maxviazov/accounts-service/internal/logger"
	"github.com/maxviazov/accounts-service/internal/repository"
	"github.com/maxviazov/accounts-service/internal/repository/migrations"
	"github.com/maxviazov/accounts-service/internal/repository/postgres"
	"github.com/maxviazov/accounts-service/internal/repository/redis"
	"github.com/maxviazov/accounts-service/internal/service"
)

var configPath = flag.String("config", envOr("CONFIG_PATH", "config.yaml"), "path to the YAML config file")

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func main() {
	flag.Parse()

	// Load application config
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("❌ Config loading failed: %v", err)
	}

	// Initialize logger
	appLogger, err := logger.New(&cfg.Logger)
	if err != nil {
		log.Fatalf("❌ Logger initialization failed: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, appLogger); err != nil {
		appLogger.Fatal().Err(err).Msg("service stopped with error")
	}
	appLogger.Info().Msg("👋 Service stopped")
}

func run(ctx context.Context, cfg *config.Config, appLogger zerolog.Logger) error {
	if cfg.Postgres.AutoMigrate {
		if err := migrations.MigrateDSN(ctx, repository.DSN(cfg.Postgres), migrations.Latest, appLogger); err != nil {
			return err
		}
	}

	connectPgx, err := repository.New(ctx, cfg.Postgres, &appLogger)
	if err != nil {
		return err
	}
	defer connectPgx.Close()
	pool := connectPgx.Pool()

	accounts := postgres.NewAccountRepository(pool)
	opts := service.AccountServiceOptions{MaxRecordCount: cfg.Pagination.MaxRecordCount}
	switch {
	case cfg.Pagination.ConsistentSnapshot:
		// A cached total could disagree with the page read in the snapshot.
		opts.Snapshot = postgres.NewTxManager(pool)
		if cfg.Redis.Enabled {
			appLogger.Warn().Msg("redis count cache ignored in consistent snapshot mode")
		}
	case cfg.Redis.Enabled:
		client, err := redis.NewClient(ctx, cfg.Redis, appLogger)
		if err != nil {
			return err
		}
		defer func() { _ = client.Close() }()
		accounts = redis.NewCountCachedRepository(accounts, client, cfg.Redis.CountTTLDuration(), appLogger)
	}
	accountSvc := service.NewAccountService(accounts, opts, appLogger)

	if cfg.App.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := handler.NewEngine(appLogger, time.Duration(cfg.App.RequestTimeout)*time.Second)
	handler.Register(engine, postgres.NewPinger(pool), accountSvc, handler.Options{
		DefaultRecordCount: cfg.Pagination.DefaultRecordCount,
	})

	srv := &http.Server{
		Addr:              cfg.App.Addr(),
		Handler:           engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		appLogger.Info().Str("addr", srv.Addr).Str("version", cfg.App.Version).Msg("🚀 Service started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	appLogger.Info().Msg("shutdown signal received")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.App.ShutdownTimeout)*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
