package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"marketlens/internal/gateway/app"
	"marketlens/internal/gateway/config"
	"marketlens/internal/logging"
)

func main() {
	port := flag.String("port", "", "server port (overrides PORT)")
	offline := flag.Bool("offline", false, "answer analyses with canned data instead of calling the model")
	flag.Parse()

	if *offline {
		// Skips the API key requirement during validation.
		_ = os.Setenv("LLM_PROVIDER", "fake")
	}
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *offline {
		cfg.Offline()
	}
	if *port != "" {
		cfg.Port = *port
	}

	logger := logging.New(cfg.LogLevel, cfg.LogFormat)
	defer func() { _ = logger.Sync() }()

	a, err := app.New(context.Background(), cfg, logger)
	if err != nil {
		logger.Fatal("failed to initialize app", zap.Error(err))
	}
	defer a.Close()

	go func() {
		if err := a.Start(); err != nil {
			logger.Error("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := a.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
	}
	logger.Info("server exiting")
}
