package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/tysencreager/MicroMentor/api"
	migrations "github.com/tysencreager/MicroMentor/db"
	"github.com/tysencreager/MicroMentor/internal/config"
	"github.com/tysencreager/MicroMentor/internal/db"
	"github.com/tysencreager/MicroMentor/internal/insights"
	"github.com/tysencreager/MicroMentor/pkg/ollama"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

func main() {
	var configPath = flag.String("config", "", "Path to config YAML file")
	flag.Parse()

	// .env is optional; environment overrides still apply without it
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)
	api.SetLogger(logger)
	ollama.SetLogger(logger)

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		logger.Error("failed to load config", slog.Any("err", err))
		os.Exit(1)
	}

	logger.Info("starting micromentor server",
		slog.String("version", version),
		slog.String("build_time", buildTime),
		slog.String("auth_mode", cfg.AuthMode),
	)

	ctx := context.Background()

	database, err := db.New(ctx, cfg.DatabasePath)
	if err != nil {
		logger.Error("failed to open db", slog.Any("err", err))
		os.Exit(1)
	}

	if err := db.Migrate(ctx, database, migrations.Migrations); err != nil {
		logger.Error("failed to migrate db", slog.Any("err", err))
		os.Exit(1)
	}

	engine, err := insights.NewEngine(cfg.AI, logger)
	if err != nil {
		logger.Error("failed to create insights engine", slog.Any("err", err))
		os.Exit(1)
	}

	handler := api.SetupRoutes(cfg, version, buildTime, database, engine)

	server := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		ReadTimeout:  cfg.APITimeout,
		WriteTimeout: cfg.APITimeout,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", slog.String("addr", cfg.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server failed", slog.Any("err", err))
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	// Give outstanding requests 30 seconds to complete
	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("forced shutdown", slog.Any("err", err))
	}

	if err := engine.Close(); err != nil {
		logger.Error("error closing insights engine", slog.Any("err", err))
	}
	if err := database.Close(); err != nil {
		logger.Error("error closing db", slog.Any("err", err))
	}

	logger.Info("server exited")
}
