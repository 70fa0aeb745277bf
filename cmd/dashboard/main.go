package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/eXemoumen/datascrapfront/internal/dashboard/api"
	"github.com/eXemoumen/datascrapfront/internal/dashboard/client"
	"github.com/eXemoumen/datascrapfront/internal/dashboard/monitor"
	"github.com/eXemoumen/datascrapfront/internal/dashboard/store"
	"github.com/eXemoumen/datascrapfront/internal/middleware/logger"
	"github.com/eXemoumen/datascrapfront/pkg/config"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using system environment variables")
	}

	cfg, err := config.Load("config/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zlog, err := logger.NewLogger(cfg.App.Env)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func(zlog *zap.Logger) {
		_ = zlog.Sync()
	}(zlog)

	zlog.Info("Starting dashboard service",
		zap.String("app", cfg.App.Name),
		zap.String("backend", cfg.Backend.BaseURL),
	)

	backend := client.New(zlog, cfg.Backend.BaseURL, cfg.BackendTimeout())
	st := store.New()

	srv := &api.Server{
		Log:     zlog,
		Store:   st,
		Client:  backend,
		AppName: cfg.App.Name,
	}
	srv.Monitor = monitor.New(zlog, backend, cfg.PollInterval(), func(message string) {
		zlog.Info("Scrape cycle finished", zap.String("message", message))
		if err := srv.Refresh(context.Background()); err != nil {
			zlog.Error("Post-scrape refresh failed", zap.Error(err))
		}
	})

	// Initial load; the dashboard starts empty if the backend is down.
	if err := srv.Refresh(context.Background()); err != nil {
		zlog.Warn("Initial refresh failed", zap.Error(err))
	}

	r := srv.Router()
	_ = r.SetTrustedProxies(nil)
	zlog.Info("Dashboard service is running", zap.String("address", cfg.Addr()))
	if err := r.Run(cfg.Addr()); err != nil {
		zlog.Fatal("Server exited", zap.Error(err))
	}
}
