package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/akolanti/CampusAI/internal/bootstrap"
	"github.com/akolanti/CampusAI/internal/config"
	"github.com/akolanti/CampusAI/internal/server"
	"github.com/akolanti/CampusAI/pkg/logger_i"
)

func main() {
	listenAddr := flag.String("listen-addr", "", "server listen address, overrides LISTEN_ADDR")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logger_i.Init(config.IS_PROD, config.LOG_LEVEL)
		logger_i.NewLogger("main").Error("Invalid configuration", "error", err)
		os.Exit(1)
	}
	if *listenAddr != "" {
		cfg.ListenAddr = *listenAddr
	}

	logger_i.Init(cfg.IsProd, cfg.LogLevel)
	logger := logger_i.NewLogger("main")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.Build(ctx, cfg)
	if err != nil {
		logger.Error("One or more external services failed to initialize. Shutting down.", "error", err)
		os.Exit(1)
	}

	runErr := server.CreateServer(cfg.ListenAddr, app.Router).Run(ctx)

	if err := app.Close(); err != nil {
		logger.Warn("Some services did not close cleanly", "error", err)
	}
	if runErr != nil {
		os.Exit(1)
	}
	logger.Info("Server stopped")
}
