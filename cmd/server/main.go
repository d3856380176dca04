package main

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/maltedev/marketplace-product-extractor/internal/api"
	"github.com/maltedev/marketplace-product-extractor/internal/cache"
	"github.com/maltedev/marketplace-product-extractor/internal/config"
	"github.com/maltedev/marketplace-product-extractor/internal/database"
	"github.com/maltedev/marketplace-product-extractor/internal/extractor"
	"github.com/maltedev/marketplace-product-extractor/internal/fetcher"
	"github.com/maltedev/marketplace-product-extractor/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid config", "error", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.Logging)
	slog.SetDefault(logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	selectors := extractor.DefaultSelectors()
	if cfg.Extractor.SelectorsFile != "" {
		selectors, err = extractor.LoadSelectors(cfg.Extractor.SelectorsFile)
		if err != nil {
			logger.Error("failed to load selectors", "error", err)
			os.Exit(1)
		}
	}

	var db *database.DB
	if cfg.Database.Enabled {
		db, err = database.New(ctx, database.Config{
			Host:     cfg.Database.Host,
			Port:     cfg.Database.Port,
			User:     cfg.Database.User,
			Password: cfg.Database.Password,
			Database: cfg.Database.DBName,
			SSLMode:  cfg.Database.SSLMode,
		})
		if err != nil {
			logger.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer db.Close()

		if err := db.Migrate(ctx); err != nil {
			logger.Error("failed to migrate database", "error", err)
			os.Exit(1)
		}
	}

	var recordCache *cache.RecordCache
	if cfg.Redis.Enabled {
		recordCache = cache.New(cfg.Redis.Addr, cfg.Redis.DB, cfg.Redis.TTL)
		defer recordCache.Close()

		if err := recordCache.Ping(ctx); err != nil {
			logger.Error("failed to connect to Redis", "error", err)
			os.Exit(1)
		}
	}

	svc := service.New(
		fetcher.New(cfg.Fetcher.Timeout, cfg.Fetcher.UserAgents),
		extractor.New(selectors),
		recordCache,
		db,
		logger,
	)

	var store api.RecordStore
	if db != nil {
		store = db
	}
	handlers := api.NewHandlers(svc, store, logger)
	router := api.NewRouter(handlers)

	server := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Info("server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server failed", "error", err)
			cancel()
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case <-stop:
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", "error", err)
	}
}

func newLogger(cfg config.LoggingConfig) *slog.Logger {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "text" {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}
