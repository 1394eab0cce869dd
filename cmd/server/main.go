package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"kitchen-dashboard/internal/commons"
	"kitchen-dashboard/internal/infrastructure/logger"
	"kitchen-dashboard/internal/kitchen"
	"kitchen-dashboard/internal/kitchen/ws"
	"kitchen-dashboard/internal/server"
)

func main() {
	cfg, err := commons.LoadConfig(os.Getenv("CONFIG_FILE"))
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	zapLogger, err := logger.New("kitchen-dashboard", cfg.Log.Level)
	if err != nil {
		log.Fatalf("creating logger: %v", err)
	}
	defer zapLogger.Sync()

	module := kitchen.NewModule(cfg, zapLogger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go module.Hub.Run(ctx)

	updates, unsubscribe := module.Dashboard.Subscribe()
	defer unsubscribe()
	go ws.Forward(ctx, module.Hub, updates, module.Options, zapLogger)

	handle, err := module.Dashboard.Start(ctx)
	if err != nil {
		zapLogger.Fatal("starting dashboard refresh", zap.Error(err))
	}
	zapLogger.Info("dashboard backend configured",
		zap.String("backend", cfg.Backend.BaseURL),
		zap.Duration("interval", cfg.Dashboard.RefreshInterval),
	)

	router := server.NewRouter(
		module.Controller,
		ws.Handler(module.Hub, cfg.Server.CORSAllowedOrigins, zapLogger),
		cfg.Server.CORSAllowedOrigins,
		zapLogger,
	)

	srv := server.New(cfg.Server.Port, router, zapLogger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Start(); err != nil {
			zapLogger.Fatal("server error", zap.Error(err))
		}
	}()

	<-quit
	zapLogger.Info("received shutdown signal")

	handle.Stop()
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLogger.Fatal("server shutdown failed", zap.Error(err))
	}

	<-module.Hub.Done()
	zapLogger.Info("server stopped gracefully")
}
