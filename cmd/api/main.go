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

	"go.uber.org/zap"

	"github.com/oggyb/zenvia-sms/internal/config"
	"github.com/oggyb/zenvia-sms/internal/handler"
	"github.com/oggyb/zenvia-sms/internal/logger"
	routes "github.com/oggyb/zenvia-sms/internal/router"
	"github.com/oggyb/zenvia-sms/internal/server"
	"github.com/oggyb/zenvia-sms/pkg/sms"
)

// @title       Zenvia SMS Relay API
// @version     1.0
// @description Relays SMS send requests to the Zenvia send-sms endpoint.
// @host        localhost:8080
// @BasePath    /
func main() {
	// Load configuration from file/env/.env.
	cfg, err := config.New()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	lg, err := logger.New(logger.Options{
		Level:       cfg.Log.Level,
		FileName:    cfg.Log.FileName,
		MaxSize:     cfg.Log.MaxSize,
		MaxBackups:  cfg.Log.MaxBackups,
		MaxAge:      cfg.Log.MaxAge,
		Development: cfg.IsDevelopment(),
	})
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer func() { _ = lg.Sync() }()

	if cfg.Zenvia.User == "" || cfg.Zenvia.Password == "" {
		lg.Warn("zenvia credentials not configured; requests must carry user/password")
	}

	// Init SMS provider client.
	smsCfg := cfg.SMS()
	smsCfg.Log = logger.EventLogger(lg.Named("zenvia"))
	smsCfg.Tracer = lg.Named("zenvia.trace")
	smsClient := sms.NewZenviaClient(smsCfg)

	deps := routes.AppDeps{
		Home: handler.NewHomeHandler(),
		SMS:  handler.NewSMSHandler(smsClient, lg),
	}

	addr := cfg.Addr()
	srv := server.New(addr, deps, lg)

	// Create a context that is cancelled on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		lg.Info("HTTP server listening", zap.String("addr", addr))

		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			lg.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	lg.Info("shutdown signal received, starting graceful shutdown")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		lg.Error("HTTP server graceful shutdown failed", zap.Error(err))
		return
	}
	lg.Info("shutdown complete")
}
