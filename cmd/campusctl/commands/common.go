package commands

import (
	"context"
	"fmt"

	"github.com/akolanti/CampusAI/internal/bootstrap"
	"github.com/akolanti/CampusAI/internal/config"
	"github.com/akolanti/CampusAI/pkg/logger_i"
)

// openApp loads the same configuration as the API server and wires the same services.
func openApp(ctx context.Context) (*bootstrap.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	// keep stdout for command output
	logger_i.Init(cfg.IsProd, "warn")

	app, err := bootstrap.Build(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("initializing services: %w", err)
	}
	return app, nil
}
