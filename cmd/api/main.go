package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/kosherspect/kosherspect-backend/api/routes"
	"github.com/kosherspect/kosherspect-backend/internal/factories"
	"github.com/kosherspect/kosherspect-backend/internal/inspections"
	"github.com/kosherspect/kosherspect-backend/internal/reports"
	"github.com/kosherspect/kosherspect-backend/internal/uploads"
	"github.com/kosherspect/kosherspect-backend/internal/wizard"
	"github.com/kosherspect/kosherspect-backend/pkg/config"
	"github.com/kosherspect/kosherspect-backend/pkg/db"
	"github.com/kosherspect/kosherspect-backend/pkg/logger"
	"github.com/kosherspect/kosherspect-backend/pkg/metrics"
	"github.com/kosherspect/kosherspect-backend/pkg/migrate"
	"github.com/kosherspect/kosherspect-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, cfg.FeatureFlags.UseSQLite, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	factoryService, err := factories.NewService(factories.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create factory service", err)
		os.Exit(1)
	}

	inspectionService, err := inspections.NewService(inspections.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create inspection service", err)
		os.Exit(1)
	}

	sessionStore, err := wizard.NewRedisStore(redisClient, cfg.Wizard.SessionTTL, cfg.Wizard.HandoffTTL)
	if err != nil {
		logg.Error(context.Background(), "failed to create wizard session store", err)
		os.Exit(1)
	}

	wizardService, err := wizard.NewService(sessionStore, factoryService, inspectionService, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create wizard service", err)
		os.Exit(1)
	}

	previewCache, err := reports.NewRedisPreviewCache(redisClient, cfg.Reports.PreviewTTL)
	if err != nil {
		logg.Error(context.Background(), "failed to create report preview cache", err)
		os.Exit(1)
	}

	reportService, err := reports.NewService(inspectionService, previewCache, reports.DefaultTemplate(), logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create report service", err)
		os.Exit(1)
	}

	uploadService, err := uploads.NewService(cfg.Uploads)
	if err != nil {
		logg.Error(context.Background(), "failed to create upload service", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics := metrics.NewHTTPMetrics(registry)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbClient,
			redisClient,
			registry,
			httpMetrics,
			factoryService,
			inspectionService,
			wizardService,
			reportService,
			uploadService,
		),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
