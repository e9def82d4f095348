// Command api serves the Snake BnB marketplace over HTTP.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/VB6Enjoyer/snakebnb/internal/di"
	"github.com/VB6Enjoyer/snakebnb/internal/handler"
	"github.com/VB6Enjoyer/snakebnb/pkg/config"
	"github.com/VB6Enjoyer/snakebnb/pkg/logger"
	"github.com/VB6Enjoyer/snakebnb/pkg/middleware"
	"github.com/VB6Enjoyer/snakebnb/pkg/telemetry"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	level := cfg.Log.Level
	if cfg.App.Debug {
		level = "debug"
	}
	if err := logger.Init(&logger.Config{
		Level:       level,
		ServiceName: cfg.App.Name + "-api",
		Development: cfg.IsDevelopment(),
		OutputPaths: []string{"stdout"},
	}); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	appLog := logger.Get()
	appLog.Info("starting api", zap.String("version", cfg.App.Version), zap.String("store", cfg.Store.Driver))

	ctx := context.Background()

	if _, err := telemetry.Init(ctx, &telemetry.Config{
		Enabled:        cfg.OTel.Enabled,
		ServiceName:    cfg.OTel.ServiceName,
		ServiceVersion: cfg.App.Version,
		Environment:    cfg.App.Environment,
		CollectorAddr:  cfg.OTel.CollectorAddr,
		SampleRatio:    cfg.OTel.SampleRatio,
	}); err != nil {
		appLog.Warn("tracing disabled", zap.Error(err))
	}

	container, err := di.Build(ctx, cfg, true)
	if err != nil {
		appLog.Fatal("failed to build container", zap.Error(err))
	}

	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(
		middleware.Recovery(appLog),
		telemetry.TracingMiddleware(),
		middleware.RequestLogger(appLog),
	)

	var bookingMiddleware []gin.HandlerFunc
	if container.Redis != nil {
		bookingMiddleware = append(bookingMiddleware, middleware.Idempotency(middleware.DefaultIdempotencyConfig(container.Redis)))
	} else {
		appLog.Warn("redis unavailable, booking requests are not idempotent")
	}
	handler.RegisterRoutes(router, container.Handlers, bookingMiddleware...)

	srv := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		appLog.Info("api listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLog.Fatal("failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLog.Error("server forced to shutdown", zap.Error(err))
	}
	if err := container.Close(shutdownCtx); err != nil {
		appLog.Error("failed to close dependencies", zap.Error(err))
	}
	if err := telemetry.Shutdown(shutdownCtx); err != nil {
		appLog.Error("failed to flush traces", zap.Error(err))
	}

	appLog.Info("server exited gracefully")
}
