// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package main is the entry point for the bannerkit server.
// It loads configuration, connects to services, sets up routing, and starts
// the HTTP server with graceful shutdown support.
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

	"github.com/redis/go-redis/v9"

	"bannerkit/internal/banner"
	"bannerkit/internal/cache"
	"bannerkit/internal/config"
	"bannerkit/internal/database"
	"bannerkit/internal/handlers"
	"bannerkit/internal/health"
	"bannerkit/internal/middleware"
	"bannerkit/internal/render"
	"bannerkit/internal/router"
	"bannerkit/internal/storage"
	"bannerkit/internal/store"
)

func main() {
	// Load configuration from environment variables (and .env, if present).
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Structured logger: text in development, JSON elsewhere.
	var logHandler slog.Handler
	if cfg.IsDev() {
		logHandler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	} else {
		logHandler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	}
	slog.SetDefault(slog.New(logHandler))

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
		"db_driver", cfg.DBDriver,
		"base_url", cfg.BaseURL,
	)

	db, err := database.Connect(cfg.DBDriver, cfg.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(db, cfg.DBDriver); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Seed a demo banner in development (no-op if banners already exist).
	if cfg.IsDev() {
		if err := database.Seed(context.Background(), db); err != nil {
			slog.Error("failed to seed database", "error", err)
			os.Exit(1)
		}
	}

	reporter := health.NewReporter(
		health.NewPingCheck("Database", db.PingContext),
		health.NewMemoryHeapCheck(),
	)

	// Connect to Valkey for the render cache (optional).
	var valkeyClient *redis.Client
	if cfg.CacheEnabled() {
		valkeyClient, err = cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
		if err != nil {
			slog.Error("failed to connect to valkey", "error", err)
			os.Exit(1)
		}
		defer valkeyClient.Close()

		reporter.Register(health.NewPingCheck("Valkey", func(ctx context.Context) error {
			return valkeyClient.Ping(ctx).Err()
		}))
		slog.Info("render cache enabled", "ttl", cfg.RenderCacheTTL)
	} else {
		slog.Warn("valkey not configured, render cache disabled")
	}
	renderCache := cache.NewRenderCache(valkeyClient, cfg.RenderCacheTTL)

	// Connect to S3-compatible object storage for snapshots (optional).
	var snapshots handlers.SnapshotStore
	if cfg.StorageEnabled() {
		storageClient, err := storage.New(
			cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey,
			cfg.S3Bucket, cfg.S3PublicURL,
		)
		if err != nil {
			slog.Error("failed to initialize S3 storage", "error", err)
			os.Exit(1)
		}
		if storageClient != nil {
			snapshots = storageClient
			reporter.Register(health.NewPingCheck("Object storage", storageClient.Ping))
			slog.Info("s3 storage connected", "endpoint", cfg.S3Endpoint, "bucket", storageClient.Bucket())
		}
	} else {
		slog.Warn("s3 storage not configured, snapshots disabled")
	}

	pages, err := render.New()
	if err != nil {
		slog.Error("failed to initialize template renderer", "error", err)
		os.Exit(1)
	}

	pagesHandlers, err := handlers.NewPages(pages)
	if err != nil {
		slog.Error("failed to initialize pages", "error", err)
		os.Exit(1)
	}
	healthHandlers := handlers.NewHealth(reporter, pages)
	bannerHandlers := handlers.NewBanners(
		store.NewBannerStore(db), banner.NewRenderer(), renderCache, snapshots, cfg.BaseURL,
	)

	writeLimiter := middleware.NewRateLimiter(cfg.RateLimitWrites, time.Minute)
	defer writeLimiter.Stop()

	r := router.New(pagesHandlers, healthHandlers, bannerHandlers, writeLimiter)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		return
	}

	slog.Info("server stopped gracefully")
}
