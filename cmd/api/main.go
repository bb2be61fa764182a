package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/multierr"

	"github.com/stitchfold/admin-gateway/api/middleware"
	"github.com/stitchfold/admin-gateway/api/routes"
	"github.com/stitchfold/admin-gateway/internal/forms"
	"github.com/stitchfold/admin-gateway/internal/storefront"
	"github.com/stitchfold/admin-gateway/pkg/catalog"
	"github.com/stitchfold/admin-gateway/pkg/config"
	"github.com/stitchfold/admin-gateway/pkg/logger"
	"github.com/stitchfold/admin-gateway/pkg/metrics"
	"github.com/stitchfold/admin-gateway/pkg/redis"
)

const shutdownTimeout = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "admin-gateway"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "admin-gateway",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	redisClient, err := redis.New(context.Background(), cfg.Redis)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	formMetrics := metrics.NewFormMetrics(registry)

	catalogClient := catalog.NewClient(cfg.Catalog, middleware.ContextTokenProvider{}, formMetrics)
	sessionStore := forms.NewRedisStore(redisClient, cfg.Form.SessionTTL)
	formsService := forms.NewService(sessionStore, catalogClient, cfg.Form, logg, formMetrics)
	storefrontService := storefront.NewService(catalogClient, logg)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting admin gateway")

	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, redisClient, catalogClient, formsService, storefrontService, registry),
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			logg.Error(ctx, "gateway stopped unexpectedly", err)
			os.Exit(1)
		}
	case sig := <-stop:
		logg.Info(logg.WithField(ctx, "signal", sig.String()), "shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		var closeErr error
		closeErr = multierr.Append(closeErr, server.Shutdown(shutdownCtx))
		closeErr = multierr.Append(closeErr, redisClient.Close())
		if closeErr != nil {
			logg.Error(ctx, "shutdown finished with errors", closeErr)
			os.Exit(1)
		}
		logg.Info(ctx, "shutdown complete")
	}
}
