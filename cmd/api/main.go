package main

import (
	"context"
	"crypto/tls"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/junovet/booking-engine/internal/api/router"
	"github.com/junovet/booking-engine/internal/availability"
	appconfig "github.com/junovet/booking-engine/internal/config"
	"github.com/junovet/booking-engine/internal/observability/metrics"
	"github.com/junovet/booking-engine/internal/schedule"
	"github.com/junovet/booking-engine/internal/selection"
	"github.com/junovet/booking-engine/internal/versions"
	"github.com/junovet/booking-engine/pkg/logging"
)

func main() {
	// Load .env in development; production relies on real env vars.
	_ = godotenv.Load()

	cfg := appconfig.Load()

	logger := logging.NewWithWriter(cfg.LogLevel, cfg.LogFormat, os.Stdout)
	logger.Info("starting booking-engine API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	registry := prometheus.NewRegistry()
	bookingMetrics := metrics.NewBookingMetrics(registry)

	sched := schedule.New(schedule.Hours{
		StartHour:       cfg.ClinicOpenHour,
		EndHour:         cfg.ClinicCloseHour,
		IntervalMinutes: cfg.SlotIntervalMinutes,
	})
	closedRule := availability.DefaultClosure
	if cfg.ClosedDayRule == "weekends" {
		closedRule = availability.WeekendsClosed
	}
	oracle := availability.NewOracle(sched, closedRule, time.Now)
	availabilitySvc := availability.NewService(oracle, cfg.WeekStart())

	anchor := selection.AnchorFirstAvailable
	if cfg.AnchorPolicy == "today" {
		anchor = selection.AnchorToday
	}
	sessionManager := selection.NewManager(availabilitySvc, anchor, cfg.SessionTTL)

	versionStore, cleanup, err := buildVersionStore(cfg, logger)
	if err != nil {
		logger.Error("failed to initialize version store", "error", err)
		os.Exit(1)
	}
	defer cleanup()
	versionsSvc := versions.NewService(versionStore, bookingMetrics, logger, time.Now)

	routerCfg := &router.Config{
		Logger:              logger,
		AvailabilityHandler: availability.NewHandler(availabilitySvc, bookingMetrics, logger),
		SelectionHandler:    selection.NewHandler(sessionManager, bookingMetrics, logger),
		VersionsHandler:     versions.NewHandler(versionsSvc, logger),
		StatsHandler:        metrics.NewStatsHandler(registry, logger),
		MetricsHandler:      promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		CORSAllowedOrigins:  cfg.CORSAllowedOrigins,
	}
	r := router.New(routerCfg)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}

// buildVersionStore picks the design-version backend from config. The cleanup
// func closes whatever connections the chosen backend opened.
func buildVersionStore(cfg *appconfig.Config, logger *logging.Logger) (versions.Store, func(), error) {
	noop := func() {}
	switch cfg.VersionsStore {
	case "postgres":
		pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
		if err != nil {
			return nil, noop, err
		}
		logger.Info("design versions stored in postgres")
		return versions.NewPostgresStore(pool), pool.Close, nil
	case "redis":
		opts := &redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		}
		if cfg.RedisTLS {
			opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
		}
		client := redis.NewClient(opts)
		logger.Info("design versions stored in redis", "addr", cfg.RedisAddr)
		return versions.NewRedisStore(client), func() { client.Close() }, nil
	case "memory":
		logger.Info("design versions stored in memory")
		return versions.NewInMemoryStore(), noop, nil
	default:
		logger.Info("design versions stored on disk", "path", cfg.VersionsFile)
		return versions.NewFileStore(cfg.VersionsFile), noop, nil
	}
}
